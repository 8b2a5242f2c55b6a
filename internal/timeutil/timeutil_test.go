package timeutil_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/lapseapp/lapse/internal/timeutil"
)

// Key byte order must match chronological order, including sub-second
// neighbors whose fractional parts have different printed widths.
func TestToKeyPreservesOrder(t *testing.T) {
	base := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	times := []time.Time{
		base,
		base.Add(100 * time.Microsecond),
		base.Add(500 * time.Millisecond),
		base.Add(500*time.Millisecond + 100*time.Microsecond),
		base.Add(time.Second),
		base.Add(time.Minute),
		base.Add(24 * time.Hour),
	}

	for i := 1; i < len(times); i++ {
		prev := timeutil.ToKey(times[i-1])
		cur := timeutil.ToKey(times[i])

		if bytes.Compare(prev, cur) >= 0 {
			t.Errorf(
				"key for %v (%s) does not sort before key for %v (%s)",
				times[i-1], prev, times[i], cur,
			)
		}
	}
}

func TestToKeyIsFixedWidth(t *testing.T) {
	a := timeutil.ToKey(time.Date(2024, 6, 10, 9, 0, 0, 500_000_000, time.UTC))
	b := timeutil.ToKey(time.Date(2024, 6, 10, 9, 0, 0, 1, time.UTC))

	if len(a) != len(b) {
		t.Errorf("key widths differ: %q vs %q", a, b)
	}
}
