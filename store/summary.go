package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/lapseapp/lapse/internal/models"
	"github.com/lapseapp/lapse/internal/timeutil"
)

// Compact folds every logged session past the checkpoint into its
// per-date summaries. The fold and the checkpoint advance commit in
// one transaction, so a crash mid-compaction replays cleanly without
// double-counting. Running it on startup doubles as replay.
func (c *Client) Compact() (int, error) {
	var folded int

	err := c.Update(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(sessionBucket)).Cursor()
		sums := tx.Bucket([]byte(summaryBucket))
		state := tx.Bucket([]byte(stateBucket))

		cache := make(map[string]*models.DaySummary)

		var lastKey []byte

		for k, v := tailStart(cur, state.Get(checkpointKey)); k != nil; k, v = cur.Next() {
			var sess models.Session

			if err := json.Unmarshal(v, &sess); err != nil {
				return fmt.Errorf("%w: %s", errCorruptRecord, k)
			}

			if err := foldSession(sums, cache, &sess); err != nil {
				return err
			}

			folded++
			lastKey = k
		}

		if folded == 0 {
			return nil
		}

		for date, summary := range cache {
			data, err := json.Marshal(summary)
			if err != nil {
				return err
			}

			if err := sums.Put([]byte(date), data); err != nil {
				return err
			}
		}

		return state.Put(checkpointKey, lastKey)
	})

	return folded, err
}

// foldSession merges a session's per-day slices into the summary
// cache, loading existing summaries from the bucket on first touch.
func foldSession(
	sums *bolt.Bucket,
	cache map[string]*models.DaySummary,
	sess *models.Session,
) error {
	for _, part := range sess.SplitByDay() {
		summary, ok := cache[part.Date]
		if !ok {
			summary = &models.DaySummary{Date: part.Date}

			if data := sums.Get([]byte(part.Date)); data != nil {
				if err := json.Unmarshal(data, summary); err != nil {
					return err
				}
			}

			cache[part.Date] = summary
		}

		summary.Add(models.Bucket{
			Category: sess.Category,
			App:      sess.App,
			Project:  sess.Project,
			Tags:     sess.Tags,
		}, part.Seconds)
	}

	return nil
}

// GetSummaries returns one summary per date in the given bounds,
// sorted by date. Logged sessions that have not been folded yet are
// merged in, so a summary is complete as soon as its sessions are
// persisted.
func (c *Client) GetSummaries(
	startTime, endTime time.Time,
) ([]models.DaySummary, error) {
	minDate := timeutil.DateID(startTime)
	maxDate := timeutil.DateID(endTime)

	byDate := make(map[string]*models.DaySummary)

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(summaryBucket)).Cursor()
		min := []byte(minDate)
		max := []byte(maxDate)

		for k, v := cur.Seek(min); k != nil && bytes.Compare(k, max) <= 0; k, v = cur.Next() {
			var summary models.DaySummary

			if err := json.Unmarshal(v, &summary); err != nil {
				return err
			}

			byDate[summary.Date] = &summary
		}

		return c.mergeTail(tx, byDate, minDate, maxDate)
	})
	if err != nil {
		return nil, err
	}

	summaries := make([]models.DaySummary, 0, len(byDate))
	for _, summary := range byDate {
		summaries = append(summaries, *summary)
	}

	slices.SortFunc(summaries, func(a, b models.DaySummary) int {
		return bytes.Compare([]byte(a.Date), []byte(b.Date))
	})

	return summaries, nil
}

// DayCategorySeconds returns the tracked seconds per category for a
// single date, including any un-folded log tail.
func (c *Client) DayCategorySeconds(date string) (map[string]int, error) {
	byDate := make(map[string]*models.DaySummary)

	err := c.View(func(tx *bolt.Tx) error {
		if data := tx.Bucket([]byte(summaryBucket)).Get([]byte(date)); data != nil {
			var summary models.DaySummary

			if err := json.Unmarshal(data, &summary); err != nil {
				return err
			}

			byDate[date] = &summary
		}

		return c.mergeTail(tx, byDate, date, date)
	})
	if err != nil {
		return nil, err
	}

	summary, ok := byDate[date]
	if !ok {
		return map[string]int{}, nil
	}

	return summary.CategorySeconds(), nil
}

// mergeTail folds un-summarized log records overlapping the date
// bounds into the given map without mutating the database.
func (c *Client) mergeTail(
	tx *bolt.Tx,
	byDate map[string]*models.DaySummary,
	minDate, maxDate string,
) error {
	cur := tx.Bucket([]byte(sessionBucket)).Cursor()
	checkpoint := tx.Bucket([]byte(stateBucket)).Get(checkpointKey)

	for k, v := tailStart(cur, checkpoint); k != nil; k, v = cur.Next() {
		var sess models.Session

		if err := json.Unmarshal(v, &sess); err != nil {
			return err
		}

		for _, part := range sess.SplitByDay() {
			if part.Date < minDate || part.Date > maxDate {
				continue
			}

			summary, ok := byDate[part.Date]
			if !ok {
				summary = &models.DaySummary{Date: part.Date}
				byDate[part.Date] = summary
			}

			summary.Add(models.Bucket{
				Category: sess.Category,
				App:      sess.App,
				Project:  sess.Project,
				Tags:     sess.Tags,
			}, part.Seconds)
		}
	}

	return nil
}
