// Package stats computes and reports time-usage statistics from the
// store: per-category and per-app totals, daily series, goal
// progress, and the streak. It only ever reads.
package stats

import (
	"slices"
	"strings"
	"time"

	"github.com/maruel/natural"

	"github.com/lapseapp/lapse/config"
	"github.com/lapseapp/lapse/goal"
	"github.com/lapseapp/lapse/internal/models"
	"github.com/lapseapp/lapse/store"
)

// Total is an accumulated duration for one reporting dimension, such
// as a category or an app.
type Total struct {
	Name    string
	Seconds int
}

// DayTotal is the tracked total for one date.
type DayTotal struct {
	Date    string
	Seconds int
}

// Report holds everything the report command displays.
type Report struct {
	StartTime  time.Time
	EndTime    time.Time
	Categories []Total
	Apps       []Total
	Projects   []Total
	Days       []DayTotal
	Total      int
}

// Stats computes reports over a time range.
type Stats struct {
	db    store.DB
	goals *goal.Engine
	opts  *config.FilterConfig
}

func New(db store.DB, goals *goal.Engine, opts *config.FilterConfig) *Stats {
	return &Stats{
		db:    db,
		goals: goals,
		opts:  opts,
	}
}

// Compute aggregates the range's summaries into a report. When tags
// or a category are filtered, only matching buckets count.
func (s *Stats) Compute() (*Report, error) {
	summaries, err := s.db.GetSummaries(s.opts.StartTime, s.opts.EndTime)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		StartTime: s.opts.StartTime,
		EndTime:   s.opts.EndTime,
	}

	categories := make(map[string]int)
	apps := make(map[string]int)
	projects := make(map[string]int)

	for i := range summaries {
		day := &summaries[i]

		var daySecs int

		for j := range day.Buckets {
			b := &day.Buckets[j]

			if len(s.opts.Tags) != 0 && !hasAnyTag(b, s.opts.Tags) {
				continue
			}

			if s.opts.Category != "" &&
				!strings.EqualFold(b.Category, s.opts.Category) {
				continue
			}

			categories[b.Category] += b.Seconds
			apps[b.App] += b.Seconds

			if b.Project != "" {
				projects[b.Project] += b.Seconds
			}

			daySecs += b.Seconds
			rep.Total += b.Seconds
		}

		if daySecs > 0 {
			rep.Days = append(rep.Days, DayTotal{
				Date:    day.Date,
				Seconds: daySecs,
			})
		}
	}

	rep.Categories = sortTotals(categories)
	rep.Apps = sortTotals(apps)
	rep.Projects = sortTotals(projects)

	return rep, nil
}

// Progress returns goal progress for a single date.
func (s *Stats) Progress(date string) ([]goal.Progress, error) {
	return s.goals.Progress(date)
}

// Streak returns the persisted streak.
func (s *Stats) Streak() (*models.Streak, error) {
	return s.goals.Streak()
}

func hasAnyTag(b *models.Bucket, tags []string) bool {
	for _, t := range b.Tags {
		if slices.Contains(tags, t) {
			return true
		}
	}

	return false
}

// sortTotals orders totals by duration, longest first. Equal durations
// fall back to natural name order so reports are stable.
func sortTotals(m map[string]int) []Total {
	totals := make([]Total, 0, len(m))

	for name, secs := range m {
		if secs == 0 {
			continue
		}

		totals = append(totals, Total{Name: name, Seconds: secs})
	}

	slices.SortFunc(totals, func(a, b Total) int {
		if a.Seconds != b.Seconds {
			return b.Seconds - a.Seconds
		}

		if natural.Less(strings.ToLower(a.Name), strings.ToLower(b.Name)) {
			return -1
		}

		return 1
	})

	return totals
}
