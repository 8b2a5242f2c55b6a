// Package store persists tracked sessions and their aggregates in a
// BoltDB file. Sessions land in an append-only log which is folded
// into per-date summaries behind a checkpoint, so replay after a crash
// never double-counts.
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/lapseapp/lapse/internal/models"
)

const (
	sessionBucket = "sessions"
	summaryBucket = "summaries"
	stateBucket   = "state"
)

var (
	checkpointKey       = []byte("checkpoint")
	streakKey           = []byte("streak")
	goalEventsKey       = []byte("goal_events")
	pomodoroCountsKey   = []byte("pomodoro_counts")
	pomodoroSnapshotKey = []byte("pomodoro_snapshot")
	unknownAppsKey      = []byte("unknown_apps")
	lastActiveKey       = []byte("last_active_date")
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

// NewClient opens or creates the data file, creates any missing
// buckets, and repairs a corrupt log tail before returning.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{sessionBucket, summaryBucket, stateBucket} {
			_, err = tx.CreateBucketIfNotExists([]byte(name))
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	c := &Client{db}

	dropped, err := c.repairLog()
	if err != nil {
		return nil, err
	}

	if dropped > 0 {
		slog.Error(
			"session log was corrupt and has been truncated",
			slog.Int("dropped_records", dropped),
		)
	}

	return c, nil
}

// openDB creates or opens a database and locks it.
func openDB(dbPath string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		dbPath,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, errAlreadyRunning
		}

		return nil, err
	}

	return db, nil
}

// repairLog scans the un-summarized tail of the session log and drops
// everything from the first undecodable record onward. Records behind
// the checkpoint are already folded and are left untouched.
func (c *Client) repairLog() (int, error) {
	var dropped int

	err := c.Update(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(sessionBucket)).Cursor()
		checkpoint := tx.Bucket([]byte(stateBucket)).Get(checkpointKey)

		k, v := tailStart(cur, checkpoint)

		var corrupt bool

		for ; k != nil; k, v = cur.Next() {
			if !corrupt {
				var sess models.Session
				if json.Unmarshal(v, &sess) != nil {
					corrupt = true
				}
			}

			if corrupt {
				if err := cur.Delete(); err != nil {
					return err
				}

				dropped++
			}
		}

		return nil
	})

	return dropped, err
}

// tailStart positions a session cursor on the first record after the
// checkpoint.
func tailStart(cur *bolt.Cursor, checkpoint []byte) (k, v []byte) {
	if len(checkpoint) == 0 {
		return cur.First()
	}

	k, v = cur.Seek(checkpoint)
	if k != nil && string(k) == string(checkpoint) {
		k, v = cur.Next()
	}

	return k, v
}
