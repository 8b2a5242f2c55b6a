package config

import (
	"errors"
	"flag"
	"testing"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/lapseapp/lapse/internal/timeutil"
)

func filterContext(t *testing.T, flags map[string]string) *cli.Context {
	t.Helper()

	f := flag.NewFlagSet("report", flag.PanicOnError)

	for k, v := range flags {
		_ = f.String(k, "", "")

		if err := f.Set(k, v); err != nil {
			t.Fatal(err)
		}
	}

	return cli.NewContext(&cli.App{}, f, nil)
}

func TestFilterPeriods(t *testing.T) {
	cases := []struct {
		name     string
		period   string
		daysBack int
	}{
		{name: "today", period: "today", daysBack: 0},
		{name: "yesterday", period: "yesterday", daysBack: 1},
		{name: "last 7 days", period: "7days", daysBack: 6},
		{name: "last 30 days", period: "30days", daysBack: 29},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := filterContext(t, map[string]string{"period": tc.period})

			cfg, err := setFilterConfig(ctx)
			if err != nil {
				t.Fatal(err)
			}

			wantStart := timeutil.RoundToStart(
				time.Now().AddDate(0, 0, -tc.daysBack),
			)

			if !cfg.StartTime.Equal(wantStart) {
				t.Errorf(
					"want start time %v, got %v",
					wantStart,
					cfg.StartTime,
				)
			}

			if !cfg.EndTime.After(cfg.StartTime) {
				t.Errorf(
					"end time %v must be after start time %v",
					cfg.EndTime,
					cfg.StartTime,
				)
			}
		})
	}
}

func TestFilterAllTime(t *testing.T) {
	ctx := filterContext(t, map[string]string{"period": "all-time"})

	cfg, err := setFilterConfig(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if !cfg.StartTime.IsZero() {
		t.Errorf("want zero start time for all-time, got %v", cfg.StartTime)
	}
}

func TestFilterExplicitDates(t *testing.T) {
	ctx := filterContext(t, map[string]string{
		"start": "2024-06-01",
		"end":   "2024-06-15",
	})

	cfg, err := setFilterConfig(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if got := cfg.StartTime.Format(timeutil.DateFormat); got != "2024-06-01" {
		t.Errorf("want start date 2024-06-01, got %s", got)
	}

	if got := cfg.EndTime.Format(timeutil.DateFormat); got != "2024-06-15" {
		t.Errorf("want end date 2024-06-15, got %s", got)
	}
}

func TestFilterTags(t *testing.T) {
	ctx := filterContext(t, map[string]string{
		"period": "today",
		"tag":    "work,writing",
	})

	cfg, err := setFilterConfig(ctx)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"work", "writing"}

	if len(cfg.Tags) != len(want) {
		t.Fatalf("want tags %v, got %v", want, cfg.Tags)
	}

	for i := range want {
		if cfg.Tags[i] != want[i] {
			t.Fatalf("want tags %v, got %v", want, cfg.Tags)
		}
	}
}

func TestFilterErrors(t *testing.T) {
	cases := []struct {
		name    string
		flags   map[string]string
		wantErr error
	}{
		{
			name:    "unknown period",
			flags:   map[string]string{"period": "fortnight"},
			wantErr: errInvalidPeriod,
		},
		{
			name:    "missing start date",
			flags:   map[string]string{"tag": "work"},
			wantErr: errInvalidStartDate,
		},
		{
			name: "end before start",
			flags: map[string]string{
				"start": "2024-06-15",
				"end":   "2024-06-01",
			},
			wantErr: errInvalidDateRange,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := filterContext(t, tc.flags)

			_, err := setFilterConfig(ctx)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("want %v, got %v", tc.wantErr, err)
			}
		})
	}
}
