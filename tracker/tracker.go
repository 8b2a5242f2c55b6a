// Package tracker runs the sampling loop that turns foreground window
// observations into categorized sessions. It owns the tracking state
// machine, hands closed sessions to the store through a bounded
// buffer, and reacts to idle time, manual pauses, and day changes.
package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/lapseapp/lapse/category"
	"github.com/lapseapp/lapse/config"
	"github.com/lapseapp/lapse/goal"
	"github.com/lapseapp/lapse/internal/models"
	"github.com/lapseapp/lapse/internal/notify"
	"github.com/lapseapp/lapse/internal/probe"
	"github.com/lapseapp/lapse/internal/timeutil"
	"github.com/lapseapp/lapse/pomodoro"
	"github.com/lapseapp/lapse/store"
)

const (
	flushInterval    = 10 * time.Second
	flushBatchSize   = 64
	maxFlushBackoff  = 5 * time.Minute
	compactThreshold = 32
	statusInterval   = 30 * time.Second
	blockNotifyEvery = 5 * time.Minute
)

type command int

const (
	cmdPause command = iota
	cmdResume
)

// Tracker is the tracking engine. State transitions and session
// boundaries are decided on the Run goroutine only; commands from
// other goroutines are queued to it.
type Tracker struct {
	db       store.DB
	prober   probe.Prober
	notifier notify.Notifier
	hook     *notify.Hook
	clock    timeutil.Clock
	goals    *goal.Engine
	pom      *pomodoro.Timer

	cfg        *config.Config
	statusPath string

	state        State
	open         *models.Session
	lastSample   time.Time
	activeSince  time.Time
	lastReminder time.Time
	lastStatus   time.Time
	curDate      string
	probeFailing bool

	blockedNotified map[string]time.Time

	unknownMu sync.Mutex
	unknown   map[string]int

	buf          *buffer
	flushMu      sync.Mutex
	sinceCompact int

	flushReq chan struct{}
	commands chan command
	reloads  chan *config.Config

	statusMu sync.Mutex
}

// Option configures optional Tracker collaborators.
type Option func(*Tracker)

// WithClock substitutes the time source.
func WithClock(c timeutil.Clock) Option {
	return func(t *Tracker) { t.clock = c }
}

// WithStatusPath enables status file snapshots at the given path.
func WithStatusPath(path string) Option {
	return func(t *Tracker) { t.statusPath = path }
}

// WithPomodoro includes the Pomodoro cycle state in status snapshots.
func WithPomodoro(p *pomodoro.Timer) Option {
	return func(t *Tracker) { t.pom = p }
}

func New(
	db store.DB,
	prober probe.Prober,
	notifier notify.Notifier,
	hook *notify.Hook,
	goals *goal.Engine,
	cfg *config.Config,
	opts ...Option,
) *Tracker {
	t := &Tracker{
		db:              db,
		prober:          prober,
		notifier:        notifier,
		hook:            hook,
		goals:           goals,
		cfg:             cfg,
		clock:           timeutil.RealClock{},
		state:           Stopped,
		blockedNotified: make(map[string]time.Time),
		unknown:         make(map[string]int),
		buf:             newBuffer(cfg.Tracking.BufferSize),
		flushReq:        make(chan struct{}, 1),
		commands:        make(chan command, 4),
		reloads:         make(chan *config.Config, 1),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Pause suspends tracking until Resume; the open session closes at the
// pause time.
func (t *Tracker) Pause() {
	t.commands <- cmdPause
}

// Resume restarts tracking after a manual or idle pause.
func (t *Tracker) Resume() {
	t.commands <- cmdResume
}

// Reload hands a freshly validated config to the engine.
func (t *Tracker) Reload(cfg *config.Config) {
	select {
	case <-t.reloads:
	default:
	}

	t.reloads <- cfg
}

// Run samples until the context ends, then closes the open session,
// flushes everything, and compacts. It is the only goroutine that
// mutates tracking state.
func (t *Tracker) Run(ctx context.Context) error {
	t.startup(t.clock.Now())

	fctx, cancelFlusher := context.WithCancel(context.Background())

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		t.flushLoop(fctx)
	}()

	ticker := time.NewTicker(t.sampleInterval())
	defer ticker.Stop()

	t.tick(t.clock.Now())

	for {
		select {
		case <-ctx.Done():
			cancelFlusher()
			wg.Wait()

			return t.shutdown(t.clock.Now())
		case cmd := <-t.commands:
			t.handleCommand(cmd)
		case cfg := <-t.reloads:
			t.applyConfig(cfg)
			ticker.Reset(t.sampleInterval())
		case <-ticker.C:
			t.tick(t.clock.Now())
		}
	}
}

// startup recovers store state from a previous run: folds any log
// tail, finalizes the streak if the date changed while stopped.
func (t *Tracker) startup(now time.Time) {
	today := timeutil.DateID(now)

	n, err := t.db.Compact()
	if err != nil {
		slog.Error("unable to compact session log", slog.Any("error", err))
	} else if n > 0 {
		slog.Info("recovered unsummarized sessions", slog.Int("count", n))
	}

	last, err := t.db.GetLastActiveDate()
	if err != nil {
		slog.Error("unable to read last active date", slog.Any("error", err))
	}

	if last != "" && last != today {
		if _, err := t.goals.Rollover(last, today); err != nil {
			slog.Error("streak rollover failed", slog.Any("error", err))
		}
	}

	if err := t.db.SaveLastActiveDate(today); err != nil {
		slog.Error("unable to save last active date", slog.Any("error", err))
	}

	t.curDate = today
	t.setState(Running, now)

	slog.Info("tracking started", slog.String("date", today))
}

// shutdown closes the open session at the stop time and synchronously
// drains all pending aggregation.
func (t *Tracker) shutdown(now time.Time) error {
	t.closeSessionAt(now)
	t.setState(Stopped, now)

	t.flushAll()

	if m := t.drainUnknown(); len(m) > 0 {
		if err := t.db.RecordUnknownApps(m); err != nil {
			slog.Warn("unable to record unknown apps", slog.Any("error", err))
		}
	}

	if _, err := t.db.Compact(); err != nil {
		return err
	}

	t.removeStatusFile()

	slog.Info("tracking stopped")

	return nil
}

func (t *Tracker) handleCommand(cmd command) {
	now := t.clock.Now()

	switch cmd {
	case cmdPause:
		if t.state != Running && t.state != PausedIdle {
			slog.Info("pause requested but tracking is not running")
			return
		}

		t.closeSessionAt(now)
		t.setState(PausedManual, now)
	case cmdResume:
		if t.state != PausedManual && t.state != PausedIdle {
			slog.Info("resume requested but tracking is not paused")
			return
		}

		t.setState(Running, now)

		// open the next session right away instead of waiting out a
		// full sample interval
		t.tick(now)
	}
}

// tick takes one sample and advances the state machine. A failed
// sample is skipped without touching state.
func (t *Tracker) tick(now time.Time) {
	t.rolloverIfNeeded(now)

	if t.state == Stopped {
		return
	}

	ctx, cancel := context.WithTimeout(
		context.Background(),
		t.sampleInterval(),
	)

	sample, err := t.prober.Sample(ctx)

	cancel()

	if err != nil {
		t.logSampleError(err)
		t.maybeWriteStatus(now)

		return
	}

	t.probeFailing = false

	slog.Debug(spew.Sdump(sample))

	t.handleSample(sample, now)

	t.maybeWriteStatus(now)
}

// handleSample applies one observation to the state machine.
func (t *Tracker) handleSample(s probe.Sample, now time.Time) {
	// A quiet stretch longer than the idle threshold (suspend, probe
	// outage) is implicit idle time: the open session actually ended
	// at the last good sample.
	if t.state == Running && !t.lastSample.IsZero() &&
		now.Sub(t.lastSample) > t.idleThreshold() {
		t.closeSessionAt(t.lastSample)
		t.setState(PausedIdle, now)
	}

	t.lastSample = now

	idle := time.Duration(s.IdleSeconds) * time.Second

	switch t.state {
	case Running:
		if idle >= t.idleThreshold() {
			// activity stopped idle seconds ago, not now
			t.closeSessionAt(now.Add(-idle))
			t.setState(PausedIdle, now)

			return
		}

		t.trackSample(s, now)
		t.maybeRemindBreak(now)
	case PausedIdle:
		if idle < t.idleThreshold() {
			t.setState(Running, now)
			t.trackSample(s, now)
		}
	case PausedManual, Stopped:
		// observed, never tracked
	}
}

// trackSample attributes the sample to a session, closing and opening
// sessions at category or app boundaries.
func (t *Tracker) trackSample(s probe.Sample, now time.Time) {
	url := s.URL
	if url == "" {
		url = probe.URLFromTitle(s.Title)
	}

	cat, excluded := t.cfg.Resolver().Resolve(s.App, s.Title, url)
	if excluded {
		t.closeSessionAt(now)
		return
	}

	if t.blockedByFocus(s) {
		t.closeSessionAt(now)
		t.notifyBlocked(s.App, now)

		return
	}

	if cat == category.Uncategorized {
		t.noteUnknown(category.NormalizeApp(s.App))
	}

	if t.open != nil &&
		(t.open.App != s.App || t.open.Category != string(cat)) {
		t.closeSessionAt(now)
	}

	if t.open == nil {
		t.open = &models.Session{
			StartTime: now,
			App:       s.App,
			Title:     s.Title,
			Category:  string(cat),
			Project:   t.cfg.Tracking.DefaultProject,
			Tags:      models.NormalizeTags(t.cfg.Tracking.DefaultTags),
		}

		return
	}

	t.open.Title = s.Title
}

// closeSessionAt ends the open session, if any. Zero-length sessions
// are dropped, not stored.
func (t *Tracker) closeSessionAt(end time.Time) {
	if t.open == nil {
		return
	}

	sess := *t.open
	t.open = nil

	sess.EndTime = end

	if !sess.EndTime.After(sess.StartTime) {
		return
	}

	t.buf.Push(sess)
	t.requestFlush()

	go t.runSessionHook(sess)
}

func (t *Tracker) runSessionHook(sess models.Session) {
	err := t.hook.Run(map[string]string{
		"LAPSE_EVENT":    "session_closed",
		"LAPSE_APP":      sess.App,
		"LAPSE_CATEGORY": sess.Category,
		"LAPSE_PROJECT":  sess.Project,
		"LAPSE_SECONDS": strconv.Itoa(
			timeutil.Round(sess.Duration().Seconds()),
		),
	})
	if err != nil {
		slog.Warn("session hook failed", slog.Any("error", err))
	}
}

// rolloverIfNeeded finalizes the previous date when the local date
// changes mid-run: pending sessions are flushed and folded first so
// the streak check sees the full day.
func (t *Tracker) rolloverIfNeeded(now time.Time) {
	date := timeutil.DateID(now)
	if t.curDate == date {
		return
	}

	prev := t.curDate
	t.curDate = date

	slog.Info(
		"day rollover",
		slog.String("from", prev),
		slog.String("to", date),
	)

	if t.open != nil {
		boundary := timeutil.RoundToStart(now)

		switch {
		case !t.lastSample.IsZero() &&
			now.Sub(t.lastSample) > t.idleThreshold():
			// the machine slept through midnight; activity actually
			// ended at the last good sample on the previous day
			t.closeSessionAt(t.lastSample)
			t.setState(PausedIdle, now)
		case t.open.StartTime.Before(boundary):
			// split at the boundary so the closed part counts toward
			// the day being finalized
			reopen := *t.open
			t.closeSessionAt(boundary)
			reopen.StartTime = boundary
			t.open = &reopen
		}
	}

	t.flushAll()

	if _, err := t.db.Compact(); err != nil {
		slog.Error("unable to compact session log", slog.Any("error", err))
	}

	if _, err := t.goals.Rollover(prev, date); err != nil {
		slog.Error("streak rollover failed", slog.Any("error", err))
	}

	if err := t.db.SaveLastActiveDate(date); err != nil {
		slog.Error("unable to save last active date", slog.Any("error", err))
	}
}

func (t *Tracker) setState(s State, now time.Time) {
	if t.state == s {
		return
	}

	slog.Info(
		"tracking state changed",
		slog.String("from", string(t.state)),
		slog.String("to", string(s)),
	)

	t.state = s

	if s == Running {
		t.activeSince = now
	} else {
		t.activeSince = time.Time{}
	}

	t.lastReminder = time.Time{}

	t.publishStatus()
}

func (t *Tracker) blockedByFocus(s probe.Sample) bool {
	fc := t.cfg.Focus
	if !fc.Enabled {
		return false
	}

	app := category.NormalizeApp(s.App)
	title := strings.ToLower(s.Title)

	for _, pat := range fc.Blocked {
		p := strings.ToLower(pat)
		if strings.Contains(app, p) || strings.Contains(title, p) {
			return true
		}
	}

	return false
}

func (t *Tracker) notifyBlocked(app string, now time.Time) {
	key := category.NormalizeApp(app)

	if last, ok := t.blockedNotified[key]; ok &&
		now.Sub(last) < blockNotifyEvery {
		return
	}

	t.blockedNotified[key] = now

	t.notifier.Notify(
		"Focus mode",
		fmt.Sprintf("%s is blocked while focus mode is on", app),
	)
}

func (t *Tracker) maybeRemindBreak(now time.Time) {
	interval := t.cfg.Notifications.BreakReminderInterval
	if interval <= 0 || t.activeSince.IsZero() {
		return
	}

	active := now.Sub(t.activeSince)
	if active < interval {
		return
	}

	if !t.lastReminder.IsZero() && now.Sub(t.lastReminder) < interval {
		return
	}

	t.lastReminder = now

	t.notifier.Notify(
		"Break reminder",
		fmt.Sprintf(
			"You have been active for %s, consider taking a break",
			timeutil.FormatSeconds(timeutil.Round(active.Seconds())),
		),
	)
}

func (t *Tracker) logSampleError(err error) {
	if t.probeFailing {
		slog.Debug("sample unavailable", slog.Any("error", err))
		return
	}

	t.probeFailing = true

	slog.Warn("sample unavailable", slog.Any("error", err))
}

func (t *Tracker) noteUnknown(app string) {
	if app == "" {
		return
	}

	t.unknownMu.Lock()
	t.unknown[app]++
	t.unknownMu.Unlock()
}

func (t *Tracker) drainUnknown() map[string]int {
	t.unknownMu.Lock()
	defer t.unknownMu.Unlock()

	if len(t.unknown) == 0 {
		return nil
	}

	out := t.unknown
	t.unknown = make(map[string]int)

	return out
}

func (t *Tracker) applyConfig(cfg *config.Config) {
	t.cfg = cfg

	t.goals.SetGoals(cfg.Goals)

	if t.pom != nil {
		t.pom.SetOptions(cfg.Pomodoro)
	}

	slog.Info("configuration reloaded")
}

func (t *Tracker) sampleInterval() time.Duration {
	return t.cfg.Tracking.SampleInterval
}

func (t *Tracker) idleThreshold() time.Duration {
	return t.cfg.Tracking.IdleThreshold
}
