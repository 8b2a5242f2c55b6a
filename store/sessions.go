package store

import (
	"bytes"
	"encoding/json"
	"slices"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/lapseapp/lapse/internal/models"
	"github.com/lapseapp/lapse/internal/timeutil"
)

// AppendSessions writes a batch of closed sessions to the log in a
// single transaction. Keys are derived from the start time, so
// re-flushing a batch after a failed acknowledgement is harmless.
func (c *Client) AppendSessions(sessions []models.Session) error {
	if len(sessions) == 0 {
		return nil
	}

	return c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(sessionBucket))

		for i := range sessions {
			value, err := json.Marshal(&sessions[i])
			if err != nil {
				return err
			}

			key := timeutil.ToKey(sessions[i].StartTime)

			if err := b.Put(key, value); err != nil {
				return err
			}
		}

		return nil
	})
}

// GetSessions returns logged sessions whose interval overlaps the
// given time bounds, optionally restricted to sessions carrying at
// least one of the given tags.
func (c *Client) GetSessions(
	startTime, endTime time.Time,
	tags []string,
) ([]models.Session, error) {
	var sessions []models.Session

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(sessionBucket)).Cursor()
		min := timeutil.ToKey(startTime)
		max := timeutil.ToKey(endTime)

		sk, sv := cur.Seek(min)

		// A session that started before the lower bound may still end
		// inside it. Check the record just before the seek position.
		if pk, pv := cur.Prev(); pk != nil {
			var sess models.Session
			if err := json.Unmarshal(pv, &sess); err != nil {
				return err
			}

			if sess.EndTime.After(startTime) {
				sk, sv = pk, pv
			} else {
				sk, sv = cur.Next()
			}
		} else if sk != nil {
			sk, sv = cur.Seek(min)
		}

		for k, v := sk, sv; k != nil && bytes.Compare(k, max) <= 0; k, v = cur.Next() {
			var sess models.Session

			if err := json.Unmarshal(v, &sess); err != nil {
				return err
			}

			if len(tags) != 0 && !hasAnyTag(&sess, tags) {
				continue
			}

			sessions = append(sessions, sess)
		}

		return nil
	})

	return sessions, err
}

func hasAnyTag(sess *models.Session, tags []string) bool {
	for _, t := range sess.Tags {
		if slices.Contains(tags, t) {
			return true
		}
	}

	return false
}
