package goal_test

import (
	"testing"
	"time"

	"github.com/lapseapp/lapse/config"
	"github.com/lapseapp/lapse/goal"
	"github.com/lapseapp/lapse/internal/models"
	"github.com/lapseapp/lapse/internal/testutil"
	"github.com/lapseapp/lapse/internal/timeutil"
)

var base = time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local)

func session(start time.Time, d time.Duration, category string) models.Session {
	return models.Session{
		StartTime: start,
		EndTime:   start.Add(d),
		App:       "test-app",
		Category:  category,
	}
}

func TestMaxGoalNotifiesOncePerDay(t *testing.T) {
	db := testutil.NewDB(t)
	rec := &testutil.Recorder{}

	goals := []config.GoalConfig{{
		Category:  "Entertainment",
		Target:    2 * time.Hour,
		Direction: config.DirectionMax,
	}}

	engine := goal.NewEngine(db, rec, goals)

	date := timeutil.DateID(base)

	err := db.AppendSessions([]models.Session{
		session(base, 110*time.Minute, "Entertainment"),
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := engine.Evaluate(date); err != nil {
		t.Fatal(err)
	}

	if n := len(rec.Sent()); n != 0 {
		t.Fatalf("under the limit, expected no notifications, got %d", n)
	}

	err = db.AppendSessions([]models.Session{
		session(base.Add(2*time.Hour), 25*time.Minute, "Entertainment"),
	})
	if err != nil {
		t.Fatal(err)
	}

	for range 3 {
		if err := engine.Evaluate(date); err != nil {
			t.Fatal(err)
		}
	}

	sent := rec.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(sent))
	}

	if sent[0].Title != "Time limit exceeded" {
		t.Errorf("unexpected notification title: %q", sent[0].Title)
	}

	// The latch is persisted, so a fresh engine on the same store must
	// not notify again.
	restarted := goal.NewEngine(db, rec, goals)

	if err := restarted.Evaluate(date); err != nil {
		t.Fatal(err)
	}

	if n := len(rec.Sent()); n != 1 {
		t.Fatalf("latch did not survive restart: %d notifications", n)
	}
}

func TestMinGoalAchieved(t *testing.T) {
	db := testutil.NewDB(t)
	rec := &testutil.Recorder{}

	goals := []config.GoalConfig{{
		Category:  "Coding",
		Target:    time.Hour,
		Direction: config.DirectionMin,
	}}

	engine := goal.NewEngine(db, rec, goals)

	date := timeutil.DateID(base)

	err := db.AppendSessions([]models.Session{
		session(base, 50*time.Minute, "Coding"),
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := engine.Evaluate(date); err != nil {
		t.Fatal(err)
	}

	if n := len(rec.Sent()); n != 0 {
		t.Fatalf("goal not yet met, expected no notifications, got %d", n)
	}

	err = db.AppendSessions([]models.Session{
		session(base.Add(time.Hour), 15*time.Minute, "Coding"),
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := engine.Evaluate(date); err != nil {
		t.Fatal(err)
	}

	sent := rec.Sent()
	if len(sent) != 1 || sent[0].Title != "Goal achieved" {
		t.Fatalf("expected one achievement notification, got %v", sent)
	}
}

func TestProgress(t *testing.T) {
	db := testutil.NewDB(t)

	goals := []config.GoalConfig{{
		Category:  "Coding",
		Target:    2 * time.Hour,
		Direction: config.DirectionMin,
	}}

	engine := goal.NewEngine(db, &testutil.Recorder{}, goals)

	err := db.AppendSessions([]models.Session{
		session(base, time.Hour, "Coding"),
	})
	if err != nil {
		t.Fatal(err)
	}

	progress, err := engine.Progress(timeutil.DateID(base))
	if err != nil {
		t.Fatal(err)
	}

	if len(progress) != 1 {
		t.Fatalf("expected one progress entry, got %d", len(progress))
	}

	p := progress[0]

	if p.Actual != time.Hour {
		t.Errorf("want actual 1h, got %v", p.Actual)
	}

	if p.Ratio != 0.5 {
		t.Errorf("want ratio 0.5, got %v", p.Ratio)
	}

	if p.Reached() {
		t.Error("goal should not be reached at half the target")
	}
}

func TestRollover(t *testing.T) {
	minCoding := []config.GoalConfig{{
		Category:  "Coding",
		Target:    time.Hour,
		Direction: config.DirectionMin,
	}}

	cases := []struct {
		name        string
		goals       []config.GoalConfig
		prevTracked time.Duration
		initial     models.Streak
		gapDays     int
		wantCurrent int
		wantLongest int
	}{
		{
			name:        "meeting all min goals extends the streak",
			goals:       minCoding,
			prevTracked: 90 * time.Minute,
			initial:     models.Streak{Current: 2, Longest: 5},
			gapDays:     1,
			wantCurrent: 3,
			wantLongest: 5,
		},
		{
			name:        "missing a min goal resets the streak",
			goals:       minCoding,
			prevTracked: 30 * time.Minute,
			initial:     models.Streak{Current: 2, Longest: 5},
			gapDays:     1,
			wantCurrent: 0,
			wantLongest: 5,
		},
		{
			name: "max-only goals leave the streak alone",
			goals: []config.GoalConfig{{
				Category:  "Entertainment",
				Target:    time.Hour,
				Direction: config.DirectionMax,
			}},
			prevTracked: 0,
			initial:     models.Streak{Current: 2, Longest: 5},
			gapDays:     1,
			wantCurrent: 2,
			wantLongest: 5,
		},
		{
			name:        "extending past the longest sets a new record",
			goals:       minCoding,
			prevTracked: 2 * time.Hour,
			initial:     models.Streak{Current: 5, Longest: 5},
			gapDays:     1,
			wantCurrent: 6,
			wantLongest: 6,
		},
		{
			name:        "multi-day gap resets even when the last day was met",
			goals:       minCoding,
			prevTracked: 2 * time.Hour,
			initial:     models.Streak{Current: 3, Longest: 3},
			gapDays:     3,
			wantCurrent: 0,
			wantLongest: 4,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := testutil.NewDB(t)

			if err := db.SaveStreak(&tc.initial); err != nil {
				t.Fatal(err)
			}

			if tc.prevTracked > 0 {
				err := db.AppendSessions([]models.Session{
					session(base, tc.prevTracked, "Coding"),
				})
				if err != nil {
					t.Fatal(err)
				}
			}

			engine := goal.NewEngine(db, &testutil.Recorder{}, tc.goals)

			prevDate := timeutil.DateID(base)
			today := timeutil.DateID(base.AddDate(0, 0, tc.gapDays))

			streak, err := engine.Rollover(prevDate, today)
			if err != nil {
				t.Fatal(err)
			}

			if streak.Current != tc.wantCurrent {
				t.Errorf(
					"want current %d, got %d",
					tc.wantCurrent,
					streak.Current,
				)
			}

			if streak.Longest != tc.wantLongest {
				t.Errorf(
					"want longest %d, got %d",
					tc.wantLongest,
					streak.Longest,
				)
			}

			persisted, err := db.GetStreak()
			if err != nil {
				t.Fatal(err)
			}

			if persisted.Current != streak.Current ||
				persisted.Longest != streak.Longest {
				t.Errorf(
					"persisted streak %+v does not match returned %+v",
					persisted,
					streak,
				)
			}
		})
	}
}

func TestStreakBrokenNotification(t *testing.T) {
	db := testutil.NewDB(t)
	rec := &testutil.Recorder{}

	goals := []config.GoalConfig{{
		Category:  "Coding",
		Target:    time.Hour,
		Direction: config.DirectionMin,
	}}

	if err := db.SaveStreak(&models.Streak{Current: 4, Longest: 6}); err != nil {
		t.Fatal(err)
	}

	engine := goal.NewEngine(db, rec, goals)

	prevDate := timeutil.DateID(base)
	today := timeutil.DateID(base.AddDate(0, 0, 1))

	// No sessions on prevDate at all, so the goal was missed.
	if _, err := engine.Rollover(prevDate, today); err != nil {
		t.Fatal(err)
	}

	titles := rec.Titles()
	if len(titles) != 1 || titles[0] != "Streak broken" {
		t.Fatalf("expected a streak broken notification, got %v", titles)
	}
}
