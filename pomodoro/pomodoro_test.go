package pomodoro_test

import (
	"testing"
	"time"

	"github.com/lapseapp/lapse/config"
	"github.com/lapseapp/lapse/internal/notify"
	"github.com/lapseapp/lapse/internal/testutil"
	"github.com/lapseapp/lapse/internal/timeutil"
	"github.com/lapseapp/lapse/pomodoro"
	"github.com/lapseapp/lapse/store"
)

var base = time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local)

func defaultOpts() config.PomodoroConfig {
	return config.PomodoroConfig{
		WorkDuration:      25 * time.Minute,
		ShortBreak:        5 * time.Minute,
		LongBreak:         15 * time.Minute,
		LongBreakInterval: 4,
		AutoStartBreak:    true,
		AutoStartWork:     true,
	}
}

func newTimer(
	t *testing.T,
	db store.DB,
	opts config.PomodoroConfig,
) (*pomodoro.Timer, *testutil.StubClock, *testutil.Recorder) {
	t.Helper()

	clock := testutil.NewStubClock(base)
	rec := &testutil.Recorder{}

	timer := pomodoro.New(db, rec, notify.NewHook(""), clock, opts)

	return timer, clock, rec
}

func TestFourthWorkSessionTriggersLongBreak(t *testing.T) {
	db := testutil.NewDB(t)
	timer, clock, _ := newTimer(t, db, defaultOpts())

	if err := timer.Start(); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		clock.Advance(25 * time.Minute)
		timer.Tick()

		st := timer.Status()
		if st.Phase != pomodoro.ShortBreak {
			t.Fatalf(
				"after work session %d, want %s, got %s",
				i+1,
				pomodoro.ShortBreak,
				st.Phase,
			)
		}

		clock.Advance(5 * time.Minute)
		timer.Tick()

		if st := timer.Status(); st.Phase != pomodoro.Work {
			t.Fatalf("after break %d, want work phase, got %s", i+1, st.Phase)
		}
	}

	clock.Advance(25 * time.Minute)
	timer.Tick()

	st := timer.Status()

	if st.Phase != pomodoro.LongBreak {
		t.Fatalf(
			"fourth completed work session must start a long break, got %s",
			st.Phase,
		)
	}

	if st.CycleCount != 0 {
		t.Errorf("cycle count should reset at the long break, got %d", st.CycleCount)
	}

	if st.CompletedToday != 4 {
		t.Errorf("want 4 completed sessions today, got %d", st.CompletedToday)
	}

	count, err := db.GetPomodoroCount(timeutil.DateID(base))
	if err != nil {
		t.Fatal(err)
	}

	if count != 4 {
		t.Errorf("want persisted count 4, got %d", count)
	}
}

func TestInterruptedWorkDoesNotCount(t *testing.T) {
	db := testutil.NewDB(t)
	timer, clock, _ := newTimer(t, db, defaultOpts())

	if err := timer.Start(); err != nil {
		t.Fatal(err)
	}

	clock.Advance(10 * time.Minute)

	if err := timer.Stop(); err != nil {
		t.Fatal(err)
	}

	count, err := db.GetPomodoroCount(timeutil.DateID(base))
	if err != nil {
		t.Fatal(err)
	}

	if count != 0 {
		t.Errorf("an interrupted work session must not count, got %d", count)
	}

	if st := timer.Status(); st.Phase != pomodoro.Idle {
		t.Errorf("want idle after stop, got %s", st.Phase)
	}

	// A stopped cycle can be started again.
	if err := timer.Start(); err != nil {
		t.Fatal(err)
	}
}

func TestStartWhileRunningFails(t *testing.T) {
	db := testutil.NewDB(t)
	timer, _, _ := newTimer(t, db, defaultOpts())

	if err := timer.Start(); err != nil {
		t.Fatal(err)
	}

	if err := timer.Start(); err == nil {
		t.Fatal("starting a running cycle must fail")
	}
}

func TestManualAdvanceHoldsInWaiting(t *testing.T) {
	db := testutil.NewDB(t)

	opts := defaultOpts()
	opts.AutoStartBreak = false

	timer, clock, _ := newTimer(t, db, opts)

	if err := timer.Start(); err != nil {
		t.Fatal(err)
	}

	clock.Advance(25 * time.Minute)
	timer.Tick()

	st := timer.Status()

	if st.Phase != pomodoro.ShortBreak || !st.Waiting {
		t.Fatalf("want a waiting short break, got %s (waiting=%v)", st.Phase, st.Waiting)
	}

	// Ticks during the waiting state change nothing.
	clock.Advance(30 * time.Minute)
	timer.Tick()

	if st := timer.Status(); st.Phase != pomodoro.ShortBreak || !st.Waiting {
		t.Fatal("waiting phase must hold until Next")
	}

	if count, _ := db.GetPomodoroCount(timeutil.DateID(base)); count != 1 {
		t.Errorf("want exactly one completed session, got %d", count)
	}

	if err := timer.Next(); err != nil {
		t.Fatal(err)
	}

	st = timer.Status()

	if st.Waiting {
		t.Fatal("phase should be running after Next")
	}

	if st.Remaining != 5*time.Minute {
		t.Errorf("want a full short break remaining, got %v", st.Remaining)
	}

	if err := timer.Next(); err == nil {
		t.Fatal("Next with no waiting phase must fail")
	}
}

func TestSuspendAndRestore(t *testing.T) {
	db := testutil.NewDB(t)
	timer, clock, _ := newTimer(t, db, defaultOpts())

	if err := timer.Start(); err != nil {
		t.Fatal(err)
	}

	clock.Advance(10 * time.Minute)
	timer.Suspend()

	restarted, _, rec := newTimer(t, db, defaultOpts())

	ok, err := restarted.Restore()
	if err != nil {
		t.Fatal(err)
	}

	if !ok {
		t.Fatal("expected a snapshot to restore")
	}

	st := restarted.Status()

	if st.Phase != pomodoro.Work || !st.Waiting {
		t.Fatalf("want a waiting work phase, got %s (waiting=%v)", st.Phase, st.Waiting)
	}

	if st.Remaining != 15*time.Minute {
		t.Errorf("want 15m left of the restored phase, got %v", st.Remaining)
	}

	if len(rec.Sent()) != 1 {
		t.Errorf("expected a restore notification, got %v", rec.Sent())
	}

	if err := restarted.Next(); err != nil {
		t.Fatal(err)
	}

	if st := restarted.Status(); st.Remaining != 15*time.Minute {
		t.Errorf("restored phase should resume with its leftover time, got %v", st.Remaining)
	}

	// The snapshot is consumed by the restore.
	again, _, _ := newTimer(t, db, defaultOpts())

	ok, err = again.Restore()
	if err != nil {
		t.Fatal(err)
	}

	if ok {
		t.Fatal("a consumed snapshot must not restore twice")
	}
}

func TestRestoreWithoutSnapshot(t *testing.T) {
	db := testutil.NewDB(t)
	timer, _, rec := newTimer(t, db, defaultOpts())

	ok, err := timer.Restore()
	if err != nil {
		t.Fatal(err)
	}

	if ok {
		t.Fatal("nothing to restore on a fresh store")
	}

	if len(rec.Sent()) != 0 {
		t.Errorf("no notification expected, got %v", rec.Sent())
	}
}
