package pomodoro

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/lapseapp/lapse/config"
	"github.com/lapseapp/lapse/internal/models"
	"github.com/lapseapp/lapse/internal/notify"
	"github.com/lapseapp/lapse/internal/timeutil"
	"github.com/lapseapp/lapse/store"
)

// Timer drives the Pomodoro cycle. A completed work phase increments
// the persisted daily counter exactly once; stopping or resetting an
// unfinished phase never counts.
type Timer struct {
	mu       sync.Mutex
	db       store.DB
	notifier notify.Notifier
	hook     *notify.Hook
	clock    timeutil.Clock
	opts     config.PomodoroConfig

	phase    Phase
	phaseEnd time.Time

	// waiting marks a phase that has been announced but not begun
	// because the matching auto-start flag is off. pendingRemaining
	// carries a restored phase's leftover time.
	waiting          bool
	pendingRemaining time.Duration

	completedInCycle int
}

func New(
	db store.DB,
	notifier notify.Notifier,
	hook *notify.Hook,
	clock timeutil.Clock,
	opts config.PomodoroConfig,
) *Timer {
	return &Timer{
		db:       db,
		notifier: notifier,
		hook:     hook,
		clock:    clock,
		opts:     opts,
		phase:    Idle,
	}
}

// SetOptions swaps the cycle settings after a config reload. The
// current phase keeps its original end time.
func (t *Timer) SetOptions(opts config.PomodoroConfig) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.opts = opts
}

// Start begins a work phase from Idle.
func (t *Timer) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.phase != Idle {
		return errAlreadyRunning
	}

	t.beginPhase(Work, t.opts.WorkDuration)

	return nil
}

// Next begins a waiting phase.
func (t *Timer) Next() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.waiting {
		return errNotWaiting
	}

	d := t.pendingRemaining
	if d <= 0 {
		d = t.phaseDuration(t.phase)
	}

	t.beginPhase(t.phase, d)

	return nil
}

// Stop abandons the cycle and returns to Idle. An interrupted work
// phase does not count towards the daily total.
func (t *Timer) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.phase == Idle {
		return errNotRunning
	}

	t.phase = Idle
	t.phaseEnd = time.Time{}
	t.waiting = false
	t.pendingRemaining = 0
	t.completedInCycle = 0

	if err := t.db.DeletePomodoroSnapshot(); err != nil {
		slog.Warn(
			"unable to clear pomodoro snapshot",
			slog.Any("error", err),
		)
	}

	return nil
}

// Tick advances the cycle when the current phase has run out.
func (t *Timer) Tick() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()

	if t.phase == Idle || t.waiting || now.Before(t.phaseEnd) {
		return
	}

	if t.phase == Work {
		t.completeWork(now)
		return
	}

	t.completeBreak()
}

// Run ticks the cycle until the context ends, saving a resumable
// snapshot periodically and on shutdown.
func (t *Timer) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	var counter int

	for {
		select {
		case <-ctx.Done():
			t.Suspend()
			return
		case <-ticker.C:
			t.Tick()

			// checkpoint once a minute so a crash can resume
			counter++
			if counter%60 == 0 {
				t.Suspend()
			}
		}
	}
}

// Suspend persists the in-progress phase so a later run can resume it.
// An idle cycle clears any stale snapshot instead.
func (t *Timer) Suspend() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.phase == Idle {
		if err := t.db.DeletePomodoroSnapshot(); err != nil {
			slog.Warn(
				"unable to clear pomodoro snapshot",
				slog.Any("error", err),
			)
		}

		return
	}

	remaining := t.pendingRemaining
	if !t.waiting {
		remaining = t.phaseEnd.Sub(t.clock.Now())
	}

	if remaining < 0 {
		remaining = 0
	}

	snap := &models.PomodoroSnapshot{
		Phase:      string(t.phase),
		StartTime:  t.clock.Now(),
		Remaining:  remaining,
		CycleCount: t.completedInCycle,
	}

	if err := t.db.SavePomodoroSnapshot(snap); err != nil {
		slog.Error(
			"unable to save pomodoro snapshot",
			slog.Any("error", err),
		)
	}
}

// Restore picks up a phase saved by a previous run. The phase holds in
// the waiting state until Next begins it.
func (t *Timer) Restore() (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap, err := t.db.GetPomodoroSnapshot()
	if err != nil || snap == nil {
		return false, err
	}

	if err := t.db.DeletePomodoroSnapshot(); err != nil {
		return false, err
	}

	t.phase = Phase(snap.Phase)
	t.waiting = true
	t.pendingRemaining = snap.Remaining
	t.completedInCycle = snap.CycleCount

	t.notifier.Notify(
		"Pomodoro restored",
		fmt.Sprintf(
			"%s with %s left is waiting to resume",
			t.phase,
			timeutil.FormatSeconds(int(snap.Remaining.Seconds())),
		),
	)

	return true, nil
}

// Status reports the current cycle state.
func (t *Timer) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()

	s := Status{
		Phase:             t.phase,
		Waiting:           t.waiting,
		CycleCount:        t.completedInCycle,
		LongBreakInterval: t.opts.LongBreakInterval,
	}

	if t.phase != Idle && !t.waiting {
		s.EndTime = t.phaseEnd
		s.Remaining = t.phaseEnd.Sub(now)

		if s.Remaining < 0 {
			s.Remaining = 0
		}
	}

	if t.waiting {
		s.Remaining = t.pendingRemaining
		if s.Remaining <= 0 {
			s.Remaining = t.phaseDuration(t.phase)
		}
	}

	count, err := t.db.GetPomodoroCount(timeutil.DateID(now))
	if err != nil {
		slog.Warn("unable to read pomodoro count", slog.Any("error", err))
	}

	s.CompletedToday = count

	return s
}

// beginPhase starts the countdown for a phase. Callers hold the lock.
func (t *Timer) beginPhase(phase Phase, d time.Duration) {
	t.phase = phase
	t.phaseEnd = t.clock.Now().Add(d)
	t.waiting = false
	t.pendingRemaining = 0
}

// completeWork finishes a work phase: bumps the daily counter, picks
// the break type from the cycle position, and announces it. Callers
// hold the lock.
func (t *Timer) completeWork(now time.Time) {
	count, err := t.db.IncrementPomodoroCount(timeutil.DateID(now))
	if err != nil {
		slog.Error(
			"unable to record completed work session",
			slog.Any("error", err),
		)
	}

	t.completedInCycle++

	next := ShortBreak
	if t.completedInCycle >= t.opts.LongBreakInterval {
		next = LongBreak
		t.completedInCycle = 0
	}

	t.announce(Work, next, count)
	t.settle(next, t.opts.AutoStartBreak)
}

// completeBreak finishes a break phase and lines up the next work
// phase. Callers hold the lock.
func (t *Timer) completeBreak() {
	t.announce(t.phase, Work, 0)
	t.settle(Work, t.opts.AutoStartWork)
}

// settle either begins the next phase or parks it in the waiting
// state, depending on the auto-start flag. Callers hold the lock.
func (t *Timer) settle(next Phase, auto bool) {
	if auto {
		t.beginPhase(next, t.phaseDuration(next))
		return
	}

	t.phase = next
	t.phaseEnd = time.Time{}
	t.waiting = true
	t.pendingRemaining = 0
}

func (t *Timer) phaseDuration(phase Phase) time.Duration {
	switch phase {
	case Work:
		return t.opts.WorkDuration
	case ShortBreak:
		return t.opts.ShortBreak
	case LongBreak:
		return t.opts.LongBreak
	default:
		return 0
	}
}

// announce notifies the end of a phase and runs the session hook.
func (t *Timer) announce(completed, next Phase, workCount int) {
	msg := phaseMessages[next]

	if completed == Work && workCount > 0 {
		unit := "sessions"
		if workCount == 1 {
			unit = "session"
		}

		msg = fmt.Sprintf(
			"%s (%d work %s completed today)",
			msg,
			workCount,
			unit,
		)
	}

	t.notifier.Notify(string(completed)+" is finished", msg)

	go func() {
		err := t.hook.Run(map[string]string{
			"LAPSE_PHASE":      string(completed),
			"LAPSE_NEXT_PHASE": string(next),
			"LAPSE_WORK_COUNT": strconv.Itoa(workCount),
		})
		if err != nil {
			slog.Warn("session hook failed", slog.Any("error", err))
		}
	}()
}
