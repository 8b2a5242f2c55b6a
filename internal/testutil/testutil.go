// Package testutil provides shared helpers for package tests: a real
// store on a temp directory, a stub clock, and a notifier that records
// instead of displaying.
package testutil

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/lapseapp/lapse/store"
)

// NewDB opens a store client on a temp directory that is closed and
// removed when the test ends.
func NewDB(t *testing.T) *store.Client {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "lapse.db")

	client, err := store.NewClient(dbPath)
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}

// StubClock returns a fixed time. Safe for concurrent use.
type StubClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewStubClock creates a StubClock set to the given time.
func NewStubClock(t time.Time) *StubClock {
	return &StubClock{now: t}
}

func (c *StubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

// Advance moves the clock forward by d.
func (c *StubClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

// Set moves the clock to an absolute time.
func (c *StubClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = t
}

// Notification is one recorded notification.
type Notification struct {
	Title   string
	Message string
}

// Recorder records notifications instead of displaying them. Safe for
// concurrent use.
type Recorder struct {
	mu   sync.Mutex
	sent []Notification
}

func (r *Recorder) Notify(title, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sent = append(r.sent, Notification{Title: title, Message: msg})
}

// Sent returns a copy of the recorded notifications.
func (r *Recorder) Sent() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Notification, len(r.sent))
	copy(out, r.sent)

	return out
}

// Titles returns the recorded notification titles in order.
func (r *Recorder) Titles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.sent))
	for _, n := range r.sent {
		out = append(out, n.Title)
	}

	return out
}

// Reset clears the recorded notifications.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sent = nil
}
