package store

import (
	"time"

	"github.com/lapseapp/lapse/internal/models"
)

// DB is the database storage interface.
type DB interface {
	// AppendSessions writes a batch of closed sessions to the log in
	// one transaction. Re-writing a batch is harmless.
	AppendSessions(sessions []models.Session) error
	// GetSessions returns logged sessions overlapping the time bounds,
	// optionally filtered by tag.
	GetSessions(
		startTime, endTime time.Time,
		tags []string,
	) ([]models.Session, error)
	// Compact folds logged sessions past the checkpoint into per-date
	// summaries and reports how many records were folded.
	Compact() (int, error)
	// GetSummaries returns per-date summaries for the time bounds,
	// including the un-folded log tail.
	GetSummaries(startTime, endTime time.Time) ([]models.DaySummary, error)
	// DayCategorySeconds returns per-category seconds for one date.
	DayCategorySeconds(date string) (map[string]int, error)
	// GetStreak returns the persisted streak state.
	GetStreak() (*models.Streak, error)
	// SaveStreak stores the streak state.
	SaveStreak(streak *models.Streak) error
	// GetGoalEvents returns the goal notification latches for a date.
	GetGoalEvents(date string) ([]string, error)
	// SaveGoalEvents stores the goal notification latches for a date.
	SaveGoalEvents(date string, fired []string) error
	// GetPomodoroCount returns completed work sessions for a date.
	GetPomodoroCount(date string) (int, error)
	// IncrementPomodoroCount records one completed work session.
	IncrementPomodoroCount(date string) (int, error)
	// GetPomodoroSnapshot returns an interrupted phase, if any.
	GetPomodoroSnapshot() (*models.PomodoroSnapshot, error)
	// SavePomodoroSnapshot stores an interrupted phase.
	SavePomodoroSnapshot(snap *models.PomodoroSnapshot) error
	// DeletePomodoroSnapshot clears the interrupted phase.
	DeletePomodoroSnapshot() error
	// RecordUnknownApps merges uncategorized app observations.
	RecordUnknownApps(apps map[string]int) error
	// GetUnknownApps returns uncategorized app observations.
	GetUnknownApps() (map[string]int, error)
	// GetLastActiveDate returns the last date with tracked activity.
	GetLastActiveDate() (string, error)
	// SaveLastActiveDate stores the last date with tracked activity.
	SaveLastActiveDate(date string) error
	// Close ends the database connection.
	Close() error
}
