package tracker

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lapseapp/lapse/goal"
	"github.com/lapseapp/lapse/internal/models"
	"github.com/lapseapp/lapse/internal/notify"
	"github.com/lapseapp/lapse/internal/testutil"
	"github.com/lapseapp/lapse/store"
)

func bufSession(i int) models.Session {
	start := base.Add(time.Duration(i) * time.Minute)

	return models.Session{
		StartTime: start,
		EndTime:   start.Add(time.Minute),
		App:       "code",
		Category:  "Coding",
	}
}

func TestBufferEvictsOldestOnOverflow(t *testing.T) {
	b := newBuffer(10)

	for i := 0; i < 13; i++ {
		b.Push(bufSession(i))
	}

	if b.Len() != 10 {
		t.Fatalf("len = %d, want capacity 10", b.Len())
	}

	kept := b.Peek(10)

	if !kept[0].StartTime.Equal(bufSession(3).StartTime) {
		t.Errorf(
			"oldest kept session starts %v, want %v (three evicted)",
			kept[0].StartTime,
			bufSession(3).StartTime,
		)
	}

	if !kept[9].StartTime.Equal(bufSession(12).StartTime) {
		t.Errorf("newest session starts %v, want %v",
			kept[9].StartTime,
			bufSession(12).StartTime,
		)
	}
}

// The near-capacity warning fires once per episode: it arms at 80%
// occupancy and re-arms only after draining below it.
func TestBufferWarnsOncePerEpisode(t *testing.T) {
	b := newBuffer(10)

	for i := 0; i < 7; i++ {
		b.Push(bufSession(i))
	}

	if b.warned {
		t.Fatal("warned below the high-water mark")
	}

	b.Push(bufSession(7))

	if !b.warned {
		t.Fatal("no warning at 80% occupancy")
	}

	b.Ack(2)

	if b.warned {
		t.Fatal("warning still armed after draining below the mark")
	}
}

// flakyDB fails AppendSessions on demand, passing everything else to
// a real store.
type flakyDB struct {
	store.DB
	mu   sync.Mutex
	fail bool
}

func (f *flakyDB) setFail(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fail = v
}

func (f *flakyDB) AppendSessions(sessions []models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail {
		return errors.New("store unavailable")
	}

	return f.DB.AppendSessions(sessions)
}

// While the store is down, closed sessions stay buffered without being
// acknowledged; once it recovers they all persist.
func TestFlushKeepsSessionsUntilStoreRecovers(t *testing.T) {
	cfg := testConfig(t)

	db := testutil.NewDB(t)
	fdb := &flakyDB{DB: db}
	prober := &fakeProber{}
	clock := testutil.NewStubClock(base)
	rec := &testutil.Recorder{}

	tr := New(
		fdb,
		prober,
		rec,
		notify.NewHook(""),
		goal.NewEngine(fdb, rec, cfg.Goals),
		cfg,
		WithClock(clock),
	)

	tr.startup(clock.Now())

	fdb.setFail(true)

	tr.handleSample(sample("code", 0), clock.Now())
	clock.Advance(60 * time.Second)
	tr.handleSample(sample("slack", 0), clock.Now())
	clock.Advance(60 * time.Second)
	tr.closeSessionAt(clock.Now())

	if err := tr.flushBatch(); err == nil {
		t.Fatal("expected the flush to fail while the store is down")
	}

	if tr.buf.Len() != 2 {
		t.Fatalf(
			"buffered = %d, want 2 (failed flush must not acknowledge)",
			tr.buf.Len(),
		)
	}

	fdb.setFail(false)
	tr.flushAll()

	if tr.buf.Len() != 0 {
		t.Fatalf("buffered = %d after recovery, want 0", tr.buf.Len())
	}

	got, err := db.GetSessions(base.Add(-time.Hour), base.Add(time.Hour), nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 2 {
		t.Errorf("persisted %d sessions after recovery, want 2", len(got))
	}
}
