// Package timeutil provides utility functions and types for working with
// dates, reporting periods, and Bolt time keys.
package timeutil

import (
	"fmt"
	"math"
	"time"
)

// DateFormat is the layout for local calendar date keys.
const DateFormat = "2006-01-02"

// Clock abstracts time retrieval so tracking logic is deterministic in
// tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

type Period string

const (
	PeriodAllTime   Period = "all-time"
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	Period7Days     Period = "7days"
	Period14Days    Period = "14days"
	Period30Days    Period = "30days"
	Period90Days    Period = "90days"
	Period180Days   Period = "180days"
	Period365Days   Period = "365days"
)

var Range = map[Period]int{
	PeriodAllTime:   0,
	PeriodToday:     0,
	PeriodYesterday: -1,
	Period7Days:     -6,
	Period14Days:    -13,
	Period30Days:    -29,
	Period90Days:    -89,
	Period180Days:   -179,
	Period365Days:   -364,
}

var PeriodCollection = []Period{
	PeriodAllTime,
	PeriodToday,
	PeriodYesterday,
	Period7Days,
	Period14Days,
	Period30Days,
	Period90Days,
	Period180Days,
	Period365Days,
}

// Round rounds a time value in seconds, minutes, or hours to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// RoundToEnd resets the given time to the end of the day.
func RoundToEnd(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		23,
		59,
		59,
		0,
		t.Location(),
	)
}

// DateID returns the local calendar date key for a time value.
func DateID(t time.Time) string {
	return t.Format(DateFormat)
}

// SameDay reports whether two time values fall on the same local date.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// NextMidnight returns the first instant of the day after t.
func NextMidnight(t time.Time) time.Time {
	return RoundToStart(t).AddDate(0, 0, 1)
}

// PrevDateID returns the date key for the day before the given key.
func PrevDateID(dateID string) (string, error) {
	t, err := time.ParseInLocation(DateFormat, dateID, time.Local)
	if err != nil {
		return "", err
	}

	return DateID(t.AddDate(0, 0, -1)), nil
}

// DaysBetween returns the number of calendar days from one date key to
// another. It returns a negative count if b precedes a.
func DaysBetween(a, b string) (int, error) {
	ta, err := time.ParseInLocation(DateFormat, a, time.Local)
	if err != nil {
		return 0, err
	}

	tb, err := time.ParseInLocation(DateFormat, b, time.Local)
	if err != nil {
		return 0, err
	}

	return int(tb.Sub(ta).Hours() / 24), nil
}

// keyLayout pads fractional seconds to full width so the byte order
// of keys matches their chronological order.
const keyLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ToKey converts a time value to a database key for Bolt.
func ToKey(t time.Time) []byte {
	return []byte(t.Format(keyLayout))
}

// FormatSeconds expresses a duration in seconds as a compact string
// such as "2h 35m" or "45s".
func FormatSeconds(secs int) string {
	if secs < 0 {
		secs = 0
	}

	hrs := secs / 3600
	mins := (secs % 3600) / 60

	switch {
	case hrs > 0:
		return fmt.Sprintf("%dh %02dm", hrs, mins)
	case mins > 0:
		return fmt.Sprintf("%dm", mins)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}
