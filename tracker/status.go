package tracker

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/lapseapp/lapse/internal/timeutil"
)

// ErrNotRunning indicates that no engine is publishing status
// snapshots, either because none is running or because its snapshot
// has gone stale.
var ErrNotRunning = errors.New(
	"the tracking engine is not running: start it with 'lapse'",
)

// publishStatus writes a snapshot immediately, outside the periodic
// cadence. Used on state changes so pauses show up right away.
func (t *Tracker) publishStatus() {
	if t.statusPath == "" {
		return
	}

	t.writeStatus(t.clock.Now())
}

// maybeWriteStatus refreshes the status file on the periodic cadence.
func (t *Tracker) maybeWriteStatus(now time.Time) {
	if t.statusPath == "" {
		return
	}

	if now.Sub(t.lastStatus) < statusInterval {
		return
	}

	t.writeStatus(now)
}

func (t *Tracker) writeStatus(now time.Time) {
	t.lastStatus = now

	s := Status{
		State:     t.state,
		UpdatedAt: now,
	}

	if t.open != nil {
		s.App = t.open.App
		s.Title = t.open.Title
		s.Category = t.open.Category
		s.Project = t.open.Project
		s.Tags = t.open.Tags
		s.SessionStart = t.open.StartTime
	}

	if totals, err := t.db.DayCategorySeconds(timeutil.DateID(now)); err == nil {
		s.TodaySeconds = totals
	}

	if streak, err := t.goals.Streak(); err == nil {
		s.Streak = streak
	}

	if t.pom != nil {
		ps := t.pom.Status()
		s.Pomodoro = &ps
	}

	t.statusMu.Lock()
	defer t.statusMu.Unlock()

	data, err := json.MarshalIndent(&s, "", "  ")
	if err != nil {
		slog.Error("unable to encode status", slog.Any("error", err))
		return
	}

	// write-then-rename so readers never observe a partial snapshot
	tmp := t.statusPath + ".tmp"

	if err := os.WriteFile(tmp, data, os.ModePerm); err != nil {
		slog.Warn("unable to write status file", slog.Any("error", err))
		return
	}

	if err := os.Rename(tmp, t.statusPath); err != nil {
		slog.Warn("unable to update status file", slog.Any("error", err))
	}
}

func (t *Tracker) removeStatusFile() {
	if t.statusPath == "" {
		return
	}

	if err := os.Remove(t.statusPath); err != nil &&
		!errors.Is(err, fs.ErrNotExist) {
		slog.Warn("unable to remove status file", slog.Any("error", err))
	}
}

// ReadStatus loads the snapshot a running engine publishes. It returns
// ErrNotRunning when no engine has written one, or when the snapshot
// is older than maxAge (a crashed engine leaves its file behind).
func ReadStatus(path string, maxAge time.Duration) (*Status, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotRunning
		}

		return nil, err
	}

	var s Status

	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}

	if time.Since(s.UpdatedAt) > maxAge {
		return nil, ErrNotRunning
	}

	return &s, nil
}
