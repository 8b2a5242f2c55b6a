// Package goal evaluates daily time goals against tracked totals and
// maintains the consecutive-day streak.
package goal

import (
	"strings"
	"time"
)

// Progress is one goal's standing for a single date.
type Progress struct {
	Category  string
	Direction string
	Target    time.Duration
	Actual    time.Duration
	Ratio     float64
}

// Reached reports whether the tracked time crossed the target. For a
// min goal that means the goal was achieved; for a max goal it means
// the limit was exceeded.
func (p Progress) Reached() bool {
	return p.Ratio >= 1
}

// latchKey identifies a goal in the per-day notification latch.
func latchKey(category, direction string) string {
	return strings.ToLower(category) + "|" + direction
}
