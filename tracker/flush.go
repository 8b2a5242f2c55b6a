package tracker

import (
	"context"
	"log/slog"
	"time"

	"github.com/lapseapp/lapse/internal/timeutil"
)

// flushLoop drains the session buffer to the store in batches. Store
// failures are retried with exponential backoff while sampling keeps
// running; the buffer absorbs the backlog in the meantime.
func (t *Tracker) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	var (
		backoff time.Duration
		retryAt time.Time
	)

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.flushReq:
		case <-ticker.C:
		}

		if !retryAt.IsZero() && t.clock.Now().Before(retryAt) {
			continue
		}

		err := t.flushBatch()
		if err == nil {
			backoff = 0
			retryAt = time.Time{}

			continue
		}

		if backoff == 0 {
			backoff = time.Second
		} else {
			backoff *= 2
		}

		if backoff > maxFlushBackoff {
			backoff = maxFlushBackoff
		}

		retryAt = t.clock.Now().Add(backoff)

		slog.Warn(
			"unable to persist sessions, tracking continues degraded",
			slog.Any("error", err),
			slog.Int("buffered", t.buf.Len()),
			slog.Duration("retry_in", backoff),
		)
	}
}

// requestFlush nudges the flusher without blocking the engine loop.
func (t *Tracker) requestFlush() {
	select {
	case t.flushReq <- struct{}{}:
	default:
	}
}

// flushBatch persists one batch of buffered sessions. Sessions are
// acknowledged only after the store accepts them, so a failed write
// leaves them queued for the retry. After a successful write the
// day's goals are re-evaluated against the new totals.
func (t *Tracker) flushBatch() error {
	t.flushMu.Lock()
	defer t.flushMu.Unlock()

	batch := t.buf.Peek(flushBatchSize)
	if len(batch) == 0 {
		return nil
	}

	if err := t.db.AppendSessions(batch); err != nil {
		return err
	}

	t.buf.Ack(len(batch))
	t.sinceCompact += len(batch)

	if t.sinceCompact >= compactThreshold {
		t.sinceCompact = 0

		if _, err := t.db.Compact(); err != nil {
			slog.Error(
				"unable to compact session log",
				slog.Any("error", err),
			)
		}
	}

	if m := t.drainUnknown(); len(m) > 0 {
		if err := t.db.RecordUnknownApps(m); err != nil {
			slog.Warn(
				"unable to record unknown apps",
				slog.Any("error", err),
			)
		}
	}

	err := t.goals.Evaluate(timeutil.DateID(t.clock.Now()))
	if err != nil {
		slog.Warn("goal evaluation failed", slog.Any("error", err))
	}

	return nil
}

// flushAll drains the buffer synchronously. A store failure here is
// final for the affected sessions, so it is logged loudly.
func (t *Tracker) flushAll() {
	for t.buf.Len() > 0 {
		if err := t.flushBatch(); err != nil {
			slog.Error(
				"unable to flush session buffer, unsaved sessions lost",
				slog.Any("error", err),
				slog.Int("lost", t.buf.Len()),
			)

			return
		}
	}
}
