package tracker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/lapseapp/lapse/config"
	"github.com/lapseapp/lapse/goal"
	"github.com/lapseapp/lapse/internal/models"
	"github.com/lapseapp/lapse/internal/notify"
	"github.com/lapseapp/lapse/internal/probe"
	"github.com/lapseapp/lapse/internal/testutil"
	"github.com/lapseapp/lapse/store"
)

var base = time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local)

type fakeProber struct {
	mu   sync.Mutex
	next probe.Sample
	err  error
}

func (f *fakeProber) Sample(_ context.Context) (probe.Sample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.next, f.err
}

func (f *fakeProber) set(s probe.Sample) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.next = s
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{
		Tracking: config.TrackingConfig{
			SampleInterval: 5 * time.Second,
			IdleThreshold:  300 * time.Second,
			BufferSize:     64,
		},
		Pomodoro: config.PomodoroConfig{
			WorkDuration:      25 * time.Minute,
			ShortBreak:        5 * time.Minute,
			LongBreak:         15 * time.Minute,
			LongBreakInterval: 4,
		},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	return cfg
}

func newTestTracker(
	t *testing.T,
	cfg *config.Config,
) (*Tracker, *fakeProber, *testutil.StubClock, store.DB) {
	t.Helper()

	db := testutil.NewDB(t)
	prober := &fakeProber{}
	clock := testutil.NewStubClock(base)
	rec := &testutil.Recorder{}
	goals := goal.NewEngine(db, rec, cfg.Goals)

	tr := New(
		db,
		prober,
		rec,
		notify.NewHook(""),
		goals,
		cfg,
		WithClock(clock),
	)

	tr.startup(clock.Now())

	return tr, prober, clock, db
}

func sample(app string, idleSecs int) probe.Sample {
	return probe.Sample{App: app, Title: app + " window", IdleSeconds: idleSecs}
}

func sessions(t *testing.T, tr *Tracker, db store.DB) []models.Session {
	t.Helper()

	tr.flushAll()

	got, err := db.GetSessions(base.Add(-24*time.Hour), base.Add(24*time.Hour), nil)
	if err != nil {
		t.Fatal(err)
	}

	return got
}

// Idle climbing past the threshold pauses tracking retroactively; the
// next active sample resumes it. The stream produces two sessions.
func TestIdleThresholdSplitsSessions(t *testing.T) {
	tr, _, clock, db := newTestTracker(t, testConfig(t))

	tr.handleSample(sample("code", 0), clock.Now())

	clock.Advance(100 * time.Second)
	tr.handleSample(sample("code", 0), clock.Now())

	clock.Advance(250 * time.Second)
	tr.handleSample(sample("code", 250), clock.Now())

	if tr.state != Running {
		t.Fatalf("state = %q, want %q", tr.state, Running)
	}

	clock.Advance(60 * time.Second)
	tr.handleSample(sample("code", 310), clock.Now())

	if tr.state != PausedIdle {
		t.Fatalf("state = %q, want %q", tr.state, PausedIdle)
	}

	clock.Advance(5 * time.Second)
	tr.handleSample(sample("code", 0), clock.Now())

	if tr.state != Running {
		t.Fatalf("state = %q, want %q", tr.state, Running)
	}

	clock.Advance(30 * time.Second)
	tr.closeSessionAt(clock.Now())

	got := sessions(t, tr, db)
	if len(got) != 2 {
		t.Fatalf("got %d sessions, want 2", len(got))
	}

	// the first session ends when activity stopped, not at tick time
	wantEnd := base.Add(100 * time.Second)
	if !got[0].EndTime.Equal(wantEnd) {
		t.Errorf("first session end = %v, want %v", got[0].EndTime, wantEnd)
	}

	wantStart := base.Add(415 * time.Second)
	if !got[1].StartTime.Equal(wantStart) {
		t.Errorf("second session start = %v, want %v", got[1].StartTime, wantStart)
	}
}

func TestAppChangeClosesSessionWithoutGap(t *testing.T) {
	tr, _, clock, db := newTestTracker(t, testConfig(t))

	tr.handleSample(sample("code", 0), clock.Now())

	clock.Advance(60 * time.Second)
	tr.handleSample(sample("slack", 0), clock.Now())

	clock.Advance(60 * time.Second)
	tr.closeSessionAt(clock.Now())

	got := sessions(t, tr, db)
	if len(got) != 2 {
		t.Fatalf("got %d sessions, want 2", len(got))
	}

	if !got[0].EndTime.Equal(got[1].StartTime) {
		t.Errorf(
			"boundary mismatch: first ends %v, second starts %v",
			got[0].EndTime,
			got[1].StartTime,
		)
	}

	if got[0].App != "code" || got[1].App != "slack" {
		t.Errorf("apps = %q, %q", got[0].App, got[1].App)
	}
}

// A quiet stretch longer than the idle threshold (system sleep, probe
// outage) closes the session at the last good sample, not at wake.
func TestSampleGapPausesRetroactively(t *testing.T) {
	tr, _, clock, db := newTestTracker(t, testConfig(t))

	tr.handleSample(sample("code", 0), clock.Now())

	clock.Advance(60 * time.Second)
	tr.handleSample(sample("code", 0), clock.Now())

	clock.Advance(600 * time.Second)
	tr.handleSample(sample("code", 0), clock.Now())

	clock.Advance(30 * time.Second)
	tr.closeSessionAt(clock.Now())

	got := sessions(t, tr, db)
	if len(got) != 2 {
		t.Fatalf("got %d sessions, want 2", len(got))
	}

	wantEnd := base.Add(60 * time.Second)
	if !got[0].EndTime.Equal(wantEnd) {
		t.Errorf("first session end = %v, want %v", got[0].EndTime, wantEnd)
	}

	wantStart := base.Add(660 * time.Second)
	if !got[1].StartTime.Equal(wantStart) {
		t.Errorf("second session start = %v, want %v", got[1].StartTime, wantStart)
	}
}

// A manual pause holds through activity; only an explicit resume
// reopens tracking.
func TestManualPauseRequiresResume(t *testing.T) {
	tr, prober, clock, db := newTestTracker(t, testConfig(t))

	tr.handleSample(sample("code", 0), clock.Now())

	clock.Advance(120 * time.Second)
	tr.handleCommand(cmdPause)

	if tr.state != PausedManual {
		t.Fatalf("state = %q, want %q", tr.state, PausedManual)
	}

	clock.Advance(60 * time.Second)
	tr.handleSample(sample("code", 0), clock.Now())

	if tr.open != nil {
		t.Fatal("session opened while manually paused")
	}

	clock.Advance(60 * time.Second)
	prober.set(sample("code", 0))
	tr.handleCommand(cmdResume)

	if tr.state != Running {
		t.Fatalf("state = %q, want %q", tr.state, Running)
	}

	if tr.open == nil {
		t.Fatal("no session opened after resume")
	}

	clock.Advance(30 * time.Second)
	tr.closeSessionAt(clock.Now())

	got := sessions(t, tr, db)
	if len(got) != 2 {
		t.Fatalf("got %d sessions, want 2", len(got))
	}

	want := []time.Duration{120 * time.Second, 30 * time.Second}
	for i, sess := range got {
		if sess.Duration() != want[i] {
			t.Errorf(
				"session %d duration = %v, want %v",
				i,
				sess.Duration(),
				want[i],
			)
		}
	}
}

func TestExcludedAppContributesNothing(t *testing.T) {
	cfg := testConfig(t)
	cfg.Tracking.ExcludedApps = []string{"1password"}

	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	tr, _, clock, db := newTestTracker(t, cfg)

	tr.handleSample(sample("code", 0), clock.Now())

	clock.Advance(60 * time.Second)
	tr.handleSample(sample("1Password.exe", 0), clock.Now())

	clock.Advance(60 * time.Second)
	tr.handleSample(sample("1Password.exe", 0), clock.Now())

	clock.Advance(60 * time.Second)
	tr.closeSessionAt(clock.Now())

	got := sessions(t, tr, db)
	if len(got) != 1 {
		t.Fatalf("got %d sessions, want 1", len(got))
	}

	if got[0].App != "code" || got[0].Duration() != 60*time.Second {
		t.Errorf(
			"session = %s for %v, want code for 1m0s",
			got[0].App,
			got[0].Duration(),
		)
	}
}

func TestFocusModeBlocksAndNotifiesOnce(t *testing.T) {
	cfg := testConfig(t)
	cfg.Focus.Enabled = true
	cfg.Focus.Blocked = []string{"steam"}

	tr, _, clock, db := newTestTracker(t, cfg)
	rec := tr.notifier.(*testutil.Recorder)

	for i := 0; i < 3; i++ {
		tr.handleSample(sample("steam", 0), clock.Now())
		clock.Advance(5 * time.Second)
	}

	if got := sessions(t, tr, db); len(got) != 0 {
		t.Fatalf("got %d sessions, want 0", len(got))
	}

	titles := rec.Titles()
	if diff := cmp.Diff([]string{"Focus mode"}, titles); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestUnknownAppsAreRecorded(t *testing.T) {
	tr, _, clock, db := newTestTracker(t, testConfig(t))

	tr.handleSample(sample("someobscuretool", 0), clock.Now())

	clock.Advance(60 * time.Second)
	tr.closeSessionAt(clock.Now())
	tr.flushAll()

	apps, err := db.GetUnknownApps()
	if err != nil {
		t.Fatal(err)
	}

	if apps["someobscuretool"] == 0 {
		t.Errorf("unknown apps = %v, want someobscuretool recorded", apps)
	}
}

func TestAddManual(t *testing.T) {
	db := testutil.NewDB(t)

	sess := models.Session{
		StartTime: base,
		EndTime:   base.Add(90 * time.Minute),
		Category:  "Coding",
		Project:   "lapse",
		Tags:      []string{"deep-work"},
	}

	if err := AddManual(db, sess); err != nil {
		t.Fatal(err)
	}

	totals, err := db.DayCategorySeconds(base.Format("2006-01-02"))
	if err != nil {
		t.Fatal(err)
	}

	if totals["Coding"] != 90*60 {
		t.Errorf("Coding seconds = %d, want %d", totals["Coding"], 90*60)
	}

	if err := AddManual(db, models.Session{
		StartTime: base,
		EndTime:   base,
		Category:  "Coding",
	}); err == nil {
		t.Error("zero-length manual entry accepted")
	}

	if err := AddManual(db, models.Session{
		StartTime: base,
		EndTime:   base.Add(time.Minute),
	}); err == nil {
		t.Error("manual entry without category accepted")
	}
}

// A session spanning midnight splits at the boundary during rollover,
// so the finished day's minimum goals see its pre-midnight time and
// the streak advances.
func TestRolloverCountsOpenSessionBeforeMidnight(t *testing.T) {
	cfg := testConfig(t)
	cfg.Goals = []config.GoalConfig{
		{
			Category:  "Coding",
			Target:    2 * time.Minute,
			Direction: config.DirectionMin,
		},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	tr, prober, clock, db := newTestTracker(t, cfg)

	start := time.Date(2024, 6, 10, 23, 55, 0, 0, time.Local)
	midnight := time.Date(2024, 6, 11, 0, 0, 0, 0, time.Local)

	clock.Set(start)
	prober.set(sample("code", 0))

	// sample every 5s from 23:55:00 through 00:00:05
	for i := 0; i <= 61; i++ {
		tr.tick(clock.Now())
		clock.Advance(5 * time.Second)
	}

	streak, err := db.GetStreak()
	if err != nil {
		t.Fatal(err)
	}

	if streak.Current != 1 {
		t.Errorf("streak after rollover = %d, want 1", streak.Current)
	}

	totals, err := db.DayCategorySeconds("2024-06-10")
	if err != nil {
		t.Fatal(err)
	}

	if totals["Coding"] != 300 {
		t.Errorf("Coding seconds on 2024-06-10 = %d, want 300", totals["Coding"])
	}

	// the session keeps running into the new day
	if tr.open == nil {
		t.Fatal("no session open after rollover")
	}

	if !tr.open.StartTime.Equal(midnight) {
		t.Errorf(
			"reopened session starts %v, want %v",
			tr.open.StartTime,
			midnight,
		)
	}
}
