// Package pomodoro runs the Pomodoro cycle alongside activity
// tracking. The cycle keeps its own clock and never alters tracking
// state.
package pomodoro

import (
	"time"
)

// Phase is one stage of the Pomodoro cycle.
type Phase string

const (
	Idle       Phase = "Idle"
	Work       Phase = "Work session"
	ShortBreak Phase = "Short break"
	LongBreak  Phase = "Long break"
)

var phaseMessages = map[Phase]string{
	Work:       "Time to focus",
	ShortBreak: "Take a short break",
	LongBreak:  "Take a long break",
}

// Status reports the cycle state for the status file and the CLI.
type Status struct {
	Phase             Phase         `json:"phase"`
	Waiting           bool          `json:"waiting"`
	EndTime           time.Time     `json:"end_time"`
	Remaining         time.Duration `json:"remaining"`
	CompletedToday    int           `json:"completed_today"`
	CycleCount        int           `json:"cycle_count"`
	LongBreakInterval int           `json:"long_break_interval"`
}
