package tracker

import (
	"log/slog"
	"sync"

	"github.com/lapseapp/lapse/internal/models"
)

// buffer is a bounded FIFO of closed sessions awaiting persistence.
// The engine pushes and never blocks; the flusher drains in batches.
// When the store is down long enough to fill the buffer, the oldest
// session is dropped so sampling can continue.
type buffer struct {
	mu       sync.Mutex
	items    []models.Session
	capacity int
	warned   bool
}

func newBuffer(capacity int) *buffer {
	return &buffer{capacity: capacity}
}

// Push appends a session, evicting the oldest entry on overflow.
func (b *buffer) Push(s models.Session) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.items) >= b.capacity {
		dropped := b.items[0]
		b.items = append(b.items[:0], b.items[1:]...)

		slog.Error(
			"session buffer overflow: dropping oldest unsaved session",
			slog.String("app", dropped.App),
			slog.Time("start_time", dropped.StartTime),
		)
	}

	b.items = append(b.items, s)

	// warn once per episode when occupancy reaches 80%
	if !b.warned && len(b.items)*5 >= b.capacity*4 {
		b.warned = true

		slog.Warn(
			"session buffer nearing capacity",
			slog.Int("len", len(b.items)),
			slog.Int("cap", b.capacity),
		)
	}
}

// Peek returns a copy of up to max of the oldest sessions without
// removing them. The flusher acknowledges them only after the store
// accepts the batch.
func (b *buffer) Peek(max int) []models.Session {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := min(max, len(b.items))
	if n == 0 {
		return nil
	}

	out := make([]models.Session, n)
	copy(out, b.items[:n])

	return out
}

// Ack removes the n oldest sessions after a successful flush.
func (b *buffer) Ack(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n > len(b.items) {
		n = len(b.items)
	}

	b.items = append(b.items[:0], b.items[n:]...)

	if b.warned && len(b.items)*5 < b.capacity*4 {
		b.warned = false
	}
}

func (b *buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.items)
}
