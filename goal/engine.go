package goal

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/lapseapp/lapse/config"
	"github.com/lapseapp/lapse/internal/models"
	"github.com/lapseapp/lapse/internal/notify"
	"github.com/lapseapp/lapse/internal/timeutil"
	"github.com/lapseapp/lapse/store"
)

// Engine checks tracked totals against the configured goals and
// persists the streak and notification latches in the store.
type Engine struct {
	mu       sync.Mutex
	db       store.DB
	notifier notify.Notifier
	goals    []config.GoalConfig
}

func NewEngine(
	db store.DB,
	notifier notify.Notifier,
	goals []config.GoalConfig,
) *Engine {
	return &Engine{
		db:       db,
		notifier: notifier,
		goals:    goals,
	}
}

// SetGoals swaps the active goals after a config reload.
func (e *Engine) SetGoals(goals []config.GoalConfig) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.goals = goals
}

func (e *Engine) activeGoals() []config.GoalConfig {
	e.mu.Lock()
	defer e.mu.Unlock()

	return slices.Clone(e.goals)
}

// Progress returns each goal's standing for the given date.
func (e *Engine) Progress(date string) ([]Progress, error) {
	totals, err := e.db.DayCategorySeconds(date)
	if err != nil {
		return nil, err
	}

	goals := e.activeGoals()

	progress := make([]Progress, 0, len(goals))

	for _, g := range goals {
		var actualSecs int

		for cat, secs := range totals {
			if strings.EqualFold(cat, g.Category) {
				actualSecs += secs
			}
		}

		actual := time.Duration(actualSecs) * time.Second

		progress = append(progress, Progress{
			Category:  g.Category,
			Direction: g.Direction,
			Target:    g.Target,
			Actual:    actual,
			Ratio:     float64(actual) / float64(g.Target),
		})
	}

	return progress, nil
}

// Evaluate checks the date's totals against every goal and sends the
// crossing notifications that have not fired yet that day. Totals only
// grow within a day, so each goal crosses its target at most once; the
// persisted latch keeps a crossing from notifying again after a
// restart.
func (e *Engine) Evaluate(date string) error {
	progress, err := e.Progress(date)
	if err != nil {
		return err
	}

	fired, err := e.db.GetGoalEvents(date)
	if err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(fired))
	for _, key := range fired {
		seen[key] = struct{}{}
	}

	changed := false

	for _, p := range progress {
		if !p.Reached() {
			continue
		}

		key := latchKey(p.Category, p.Direction)
		if _, ok := seen[key]; ok {
			continue
		}

		e.notifyCrossing(p)

		fired = append(fired, key)
		seen[key] = struct{}{}
		changed = true
	}

	if !changed {
		return nil
	}

	return e.db.SaveGoalEvents(date, fired)
}

func (e *Engine) notifyCrossing(p Progress) {
	actual := timeutil.FormatSeconds(int(p.Actual.Seconds()))
	target := timeutil.FormatSeconds(int(p.Target.Seconds()))

	if p.Direction == config.DirectionMax {
		e.notifier.Notify(
			"Time limit exceeded",
			fmt.Sprintf(
				"%s is at %s today, past your %s limit",
				p.Category,
				actual,
				target,
			),
		)

		return
	}

	e.notifier.Notify(
		"Goal achieved",
		fmt.Sprintf(
			"%s reached %s today, meeting your %s goal",
			p.Category,
			actual,
			target,
		),
	)
}

// Rollover finalizes prevDate against the min goals and updates the
// persisted streak. Days between prevDate and today had goals and no
// activity, so a gap of more than one day resets the streak.
func (e *Engine) Rollover(prevDate, today string) (*models.Streak, error) {
	streak, err := e.db.GetStreak()
	if err != nil {
		return nil, err
	}

	if prevDate == "" || !e.hasMinGoals() {
		return streak, nil
	}

	gap, err := timeutil.DaysBetween(prevDate, today)
	if err != nil {
		return nil, err
	}

	if gap < 1 {
		return streak, nil
	}

	met, err := e.minGoalsMet(prevDate)
	if err != nil {
		return nil, err
	}

	before := streak.Current

	if met {
		streak.Current++
	} else {
		streak.Current = 0
	}

	if streak.Current > streak.Longest {
		streak.Longest = streak.Current

		if streak.Current > 1 {
			e.notifier.Notify(
				"New streak record",
				fmt.Sprintf(
					"%d days in a row of meeting your goals",
					streak.Current,
				),
			)
		}
	}

	reached := streak.Current

	if gap > 1 {
		streak.Current = 0
	}

	if streak.Current == 0 && max(before, reached) > 0 {
		e.notifier.Notify(
			"Streak broken",
			fmt.Sprintf("Your %d-day streak has ended", max(before, reached)),
		)
	}

	streak.LastDate = prevDate

	if err := e.db.SaveStreak(streak); err != nil {
		return nil, err
	}

	return streak, nil
}

// Streak returns the persisted streak.
func (e *Engine) Streak() (*models.Streak, error) {
	return e.db.GetStreak()
}

func (e *Engine) hasMinGoals() bool {
	for _, g := range e.activeGoals() {
		if g.Direction != config.DirectionMax {
			return true
		}
	}

	return false
}

// minGoalsMet reports whether every min goal's target was reached on
// the given date.
func (e *Engine) minGoalsMet(date string) (bool, error) {
	progress, err := e.Progress(date)
	if err != nil {
		return false, err
	}

	for _, p := range progress {
		if p.Direction != config.DirectionMax && !p.Reached() {
			return false, nil
		}
	}

	return true, nil
}
