//go:build linux

package probe

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// linuxProber reads the active window through xdotool and xprop, and
// idle time through xprintidle. X11 only; Wayland compositors that do
// not expose these tools yield ErrUnavailable.
type linuxProber struct{}

func newPlatformProber() Prober {
	return &linuxProber{}
}

func (p *linuxProber) Sample(ctx context.Context) (Sample, error) {
	s := Sample{Time: time.Now()}

	windowID, err := run(ctx, "xdotool", "getactivewindow")
	if err != nil {
		return s, fmt.Errorf("%w: active window: %v", ErrUnavailable, err)
	}

	class, err := run(ctx, "xprop", "-id", windowID, "WM_CLASS")
	if err != nil {
		return s, fmt.Errorf("%w: window class: %v", ErrUnavailable, err)
	}

	s.App = parseWindowClass(class)
	if s.App == "" {
		return s, fmt.Errorf("%w: window has no class", ErrUnavailable)
	}

	title, err := run(ctx, "xdotool", "getwindowname", windowID)
	if err != nil {
		return s, fmt.Errorf("%w: window title: %v", ErrUnavailable, err)
	}

	s.Title = title

	idleMs, err := run(ctx, "xprintidle")
	if err != nil {
		return s, fmt.Errorf("%w: idle time: %v", ErrUnavailable, err)
	}

	ms, err := strconv.Atoi(idleMs)
	if err != nil {
		return s, fmt.Errorf("%w: idle time: %v", ErrUnavailable, err)
	}

	s.IdleSeconds = ms / 1000
	s.URL = URLFromTitle(s.Title)

	return s, nil
}

func run(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(out)), nil
}

// parseWindowClass extracts the class name from xprop output of the
// form: WM_CLASS(STRING) = "instance", "Class".
func parseWindowClass(out string) string {
	_, val, found := strings.Cut(out, "=")
	if !found {
		return ""
	}

	parts := strings.Split(val, ",")
	last := strings.TrimSpace(parts[len(parts)-1])

	return strings.Trim(last, `"`)
}
