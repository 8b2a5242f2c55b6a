package app

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lapseapp/lapse/config"
	"github.com/lapseapp/lapse/tracker"
)

// Control commands understood by a running engine.
const (
	ctlPause         = "pause"
	ctlResume        = "resume"
	ctlStop          = "stop"
	ctlPomodoroStart = "pomodoro start"
	ctlPomodoroStop  = "pomodoro stop"
	ctlPomodoroNext  = "pomodoro next"
)

// The engine refreshes its status file at least twice a minute; a
// snapshot older than this belongs to a dead engine.
const statusMaxAge = 2 * time.Minute

// sendControl hands a command to the running engine through the
// control file. It fails with tracker.ErrNotRunning when no engine is
// publishing a fresh status snapshot.
func sendControl(cmd string) error {
	_, err := tracker.ReadStatus(config.StatusFilePath(), statusMaxAge)
	if err != nil {
		return err
	}

	return os.WriteFile(
		config.ControlFilePath(),
		[]byte(cmd+"\n"),
		os.ModePerm,
	)
}

// engineRunning reports whether an engine is publishing status
// snapshots.
func engineRunning() bool {
	_, err := tracker.ReadStatus(config.StatusFilePath(), statusMaxAge)
	return err == nil
}

// watchControl dispatches commands written to the control file until
// the context ends. The file is truncated after each command so a
// stale command is never replayed on the next start.
func watchControl(ctx context.Context, path string, dispatch func(string)) error {
	if err := os.WriteFile(path, nil, os.ModePerm); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// watch the directory: editors and os.WriteFile may replace the
	// file rather than write in place
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return err
	}

	go func() {
		defer func() {
			_ = watcher.Close()
		}()

		for {
			select {
			case <-ctx.Done():
				_ = os.Remove(path)
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				if event.Name != path ||
					!event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
					continue
				}

				cmd := consumeControl(path)
				if cmd != "" {
					dispatch(cmd)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}

				slog.Warn("control watch error", slog.Any("error", err))
			}
		}
	}()

	return nil
}

// consumeControl reads and clears the pending command. Clearing
// triggers one more (empty) event, which the caller ignores.
func consumeControl(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("unable to read control file", slog.Any("error", err))
		return ""
	}

	cmd := strings.TrimSpace(string(data))
	if cmd == "" {
		return ""
	}

	if err := os.WriteFile(path, nil, os.ModePerm); err != nil {
		slog.Warn("unable to clear control file", slog.Any("error", err))
	}

	return cmd
}
