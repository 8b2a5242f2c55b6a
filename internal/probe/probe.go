// Package probe observes the foreground window: the app that owns it,
// its title, how long the system has been idle, and (for browsers) a
// best-effort URL for the active tab.
package probe

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrUnavailable indicates that a sample could not be taken. Callers
// skip the tick and try again; a failed sample never changes tracking
// state on its own.
var ErrUnavailable = errors.New("sample unavailable")

// Sample is a single observation of foreground activity.
type Sample struct {
	App         string
	Title       string
	IdleSeconds int
	URL         string
	Time        time.Time
}

// Prober takes foreground activity samples.
type Prober interface {
	Sample(ctx context.Context) (Sample, error)
}

// New returns the prober for the current platform.
func New() Prober {
	return newPlatformProber()
}

// URLFromTitle extracts a URL-looking token from a window title. Most
// browsers do not expose the tab URL in the title, so an empty result
// is the common case, not an error.
func URLFromTitle(title string) string {
	for _, tok := range strings.Fields(title) {
		if strings.Contains(tok, "://") {
			return strings.Trim(tok, `"'()[]<>`)
		}

		if looksLikeHost(tok) {
			return tok
		}
	}

	return ""
}

// looksLikeHost reports whether a bare token such as "github.com/foo"
// is plausibly a URL without a scheme.
func looksLikeHost(tok string) bool {
	host, _, _ := strings.Cut(tok, "/")

	i := strings.LastIndex(host, ".")
	if i <= 0 || i == len(host)-1 {
		return false
	}

	tld := host[i+1:]
	if len(tld) < 2 {
		return false
	}

	for _, r := range host {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '-':
		default:
			return false
		}
	}

	for _, r := range tld {
		if r < 'a' || r > 'z' {
			return false
		}
	}

	return true
}
