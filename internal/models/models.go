// Package models defines the records shared between the tracking engine,
// the store, and the query layer.
package models

import (
	"errors"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/lapseapp/lapse/internal/timeutil"
)

var errSessionInverted = errors.New("session end time precedes its start time")

// Session is a closed interval of foreground activity attributed to a
// single app and category.
type Session struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	App       string    `json:"app"`
	Title     string    `json:"title,omitempty"`
	Category  string    `json:"category"`
	Project   string    `json:"project,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	Manual    bool      `json:"manual,omitempty"`
}

// DaySlice is the portion of a session that falls on a single local date.
type DaySlice struct {
	Date    string
	Seconds int
}

// Duration returns the session length.
func (s *Session) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// Validate reports whether the session interval is well formed.
func (s *Session) Validate() error {
	if s.EndTime.Before(s.StartTime) {
		return errSessionInverted
	}

	return nil
}

// SplitByDay divides the session into per-date slices at local midnight
// boundaries. The slice seconds always sum to the rounded session
// duration; any rounding remainder lands in the final slice.
func (s *Session) SplitByDay() []DaySlice {
	var parts []DaySlice

	totalSecs := int(math.Round(s.Duration().Seconds()))
	if totalSecs <= 0 {
		return parts
	}

	cur := s.StartTime
	prevOffset := 0

	for cur.Before(s.EndTime) {
		next := timeutil.NextMidnight(cur)
		if next.After(s.EndTime) {
			next = s.EndTime
		}

		offset := int(math.Round(next.Sub(s.StartTime).Seconds()))
		if next.Equal(s.EndTime) {
			offset = totalSecs
		}

		if secs := offset - prevOffset; secs > 0 {
			parts = append(parts, DaySlice{
				Date:    timeutil.DateID(cur),
				Seconds: secs,
			})
		}

		prevOffset = offset
		cur = next
	}

	return parts
}

// Bucket accumulates tracked seconds for one (category, app, project,
// tag set) combination within a single date.
type Bucket struct {
	Category string   `json:"category"`
	App      string   `json:"app"`
	Project  string   `json:"project,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Seconds  int      `json:"seconds"`
}

// Matches reports whether two buckets share the same dimensions.
func (b *Bucket) Matches(other *Bucket) bool {
	return b.Category == other.Category &&
		b.App == other.App &&
		b.Project == other.Project &&
		slices.Equal(b.Tags, other.Tags)
}

// DaySummary holds the folded buckets for one local date.
type DaySummary struct {
	Date    string   `json:"date"`
	Buckets []Bucket `json:"buckets"`
}

// Add merges secs into the bucket matching the given dimensions,
// appending a new bucket when none matches.
func (d *DaySummary) Add(dims Bucket, secs int) {
	for i := range d.Buckets {
		if d.Buckets[i].Matches(&dims) {
			d.Buckets[i].Seconds += secs
			return
		}
	}

	dims.Seconds = secs
	d.Buckets = append(d.Buckets, dims)
}

// TotalSeconds returns the tracked seconds across all buckets.
func (d *DaySummary) TotalSeconds() int {
	var total int
	for i := range d.Buckets {
		total += d.Buckets[i].Seconds
	}

	return total
}

// CategorySeconds returns the tracked seconds grouped by category.
func (d *DaySummary) CategorySeconds() map[string]int {
	totals := make(map[string]int)
	for i := range d.Buckets {
		totals[d.Buckets[i].Category] += d.Buckets[i].Seconds
	}

	return totals
}

// Streak records consecutive days on which every minimum goal was met.
type Streak struct {
	Current  int    `json:"current"`
	Longest  int    `json:"longest"`
	LastDate string `json:"last_date"`
}

// PomodoroSnapshot preserves an interrupted work phase so it can be
// resumed after a restart.
type PomodoroSnapshot struct {
	Phase      string        `json:"phase"`
	StartTime  time.Time     `json:"start_time"`
	Remaining  time.Duration `json:"remaining"`
	CycleCount int           `json:"cycle_count"`
}

// NormalizeTags sorts and dedupes a tag list so equal tag sets always
// compare equal inside bucket dimensions.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}

	out := make([]string, 0, len(tags))

	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}

		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}

	if len(out) == 0 {
		return nil
	}

	slices.Sort(out)

	return out
}
