//go:build darwin

package probe

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// darwinProber reads the frontmost app and window through System
// Events, and idle time from the IOKit HID system. Requires the
// accessibility/automation permission for the host terminal.
type darwinProber struct{}

func newPlatformProber() Prober {
	return &darwinProber{}
}

const (
	frontAppScript = `tell application "System Events" to get name of first application process whose frontmost is true`

	frontTitleScript = `tell application "System Events" to tell (first application process whose frontmost is true) to get title of front window`
)

func (p *darwinProber) Sample(ctx context.Context) (Sample, error) {
	s := Sample{Time: time.Now()}

	app, err := osascript(ctx, frontAppScript)
	if err != nil {
		return s, fmt.Errorf("%w: frontmost app: %v", ErrUnavailable, err)
	}

	if app == "" {
		return s, fmt.Errorf("%w: no frontmost app", ErrUnavailable)
	}

	s.App = app

	// Some processes expose no window; the app name alone still
	// identifies the activity.
	title, err := osascript(ctx, frontTitleScript)
	if err == nil {
		s.Title = title
	}

	idle, err := hidIdleSeconds(ctx)
	if err != nil {
		return s, fmt.Errorf("%w: idle time: %v", ErrUnavailable, err)
	}

	s.IdleSeconds = idle
	s.URL = URLFromTitle(s.Title)

	return s, nil
}

func osascript(ctx context.Context, script string) (string, error) {
	out, err := exec.CommandContext(ctx, "osascript", "-e", script).Output()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(out)), nil
}

// hidIdleSeconds parses HIDIdleTime (nanoseconds) out of the IOKit
// registry.
func hidIdleSeconds(ctx context.Context) (int, error) {
	out, err := exec.CommandContext(
		ctx,
		"ioreg",
		"-c",
		"IOHIDSystem",
		"-d",
		"4",
	).Output()
	if err != nil {
		return 0, err
	}

	for _, line := range strings.Split(string(out), "\n") {
		if !strings.Contains(line, "HIDIdleTime") {
			continue
		}

		_, val, found := strings.Cut(line, "=")
		if !found {
			continue
		}

		ns, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			continue
		}

		return int(ns / int64(time.Second)), nil
	}

	return 0, fmt.Errorf("HIDIdleTime not found")
}
