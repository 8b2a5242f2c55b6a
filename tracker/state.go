package tracker

import (
	"time"

	"github.com/lapseapp/lapse/internal/models"
	"github.com/lapseapp/lapse/pomodoro"
)

// State is the tracking machine's current mode.
type State string

const (
	Stopped      State = "stopped"
	Running      State = "running"
	PausedIdle   State = "paused (idle)"
	PausedManual State = "paused"
)

// Status is the live snapshot written to the status file so other
// lapse processes can report on a running engine.
type Status struct {
	State        State            `json:"state"`
	App          string           `json:"app,omitempty"`
	Title        string           `json:"title,omitempty"`
	Category     string           `json:"category,omitempty"`
	Project      string           `json:"project,omitempty"`
	Tags         []string         `json:"tags,omitempty"`
	SessionStart time.Time        `json:"session_start"`
	TodaySeconds map[string]int   `json:"today_seconds,omitempty"`
	Streak       *models.Streak   `json:"streak,omitempty"`
	Pomodoro     *pomodoro.Status `json:"pomodoro,omitempty"`
	UpdatedAt    time.Time        `json:"updated_at"`
}
