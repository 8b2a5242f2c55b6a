package store

import (
	"encoding/json"

	bolt "go.etcd.io/bbolt"

	"github.com/lapseapp/lapse/internal/models"
)

func (c *Client) getState(key []byte, out any) (bool, error) {
	var found bool

	err := c.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(stateBucket)).Get(key)
		if data == nil {
			return nil
		}

		found = true

		return json.Unmarshal(data, out)
	})

	return found, err
}

func (c *Client) putState(key []byte, val any) error {
	data, err := json.Marshal(val)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(stateBucket)).Put(key, data)
	})
}

// GetStreak returns the persisted streak, or a zero streak when none
// has been recorded yet.
func (c *Client) GetStreak() (*models.Streak, error) {
	var streak models.Streak

	_, err := c.getState(streakKey, &streak)
	if err != nil {
		return nil, err
	}

	return &streak, nil
}

func (c *Client) SaveStreak(streak *models.Streak) error {
	return c.putState(streakKey, streak)
}

// goalEvents latches which goal notifications already fired on a date,
// so a crossing notifies at most once per goal per day even across
// restarts.
type goalEvents struct {
	Date  string   `json:"date"`
	Fired []string `json:"fired"`
}

// GetGoalEvents returns the notification latches for the given date.
// Latches from an earlier date are discarded.
func (c *Client) GetGoalEvents(date string) ([]string, error) {
	var events goalEvents

	_, err := c.getState(goalEventsKey, &events)
	if err != nil {
		return nil, err
	}

	if events.Date != date {
		return nil, nil
	}

	return events.Fired, nil
}

func (c *Client) SaveGoalEvents(date string, fired []string) error {
	return c.putState(goalEventsKey, &goalEvents{Date: date, Fired: fired})
}

// GetPomodoroCount returns the number of completed work sessions for
// the given date.
func (c *Client) GetPomodoroCount(date string) (int, error) {
	counts := make(map[string]int)

	_, err := c.getState(pomodoroCountsKey, &counts)
	if err != nil {
		return 0, err
	}

	return counts[date], nil
}

// IncrementPomodoroCount adds one completed work session to the given
// date and returns the new count.
func (c *Client) IncrementPomodoroCount(date string) (int, error) {
	counts := make(map[string]int)

	_, err := c.getState(pomodoroCountsKey, &counts)
	if err != nil {
		return 0, err
	}

	counts[date]++

	return counts[date], c.putState(pomodoroCountsKey, counts)
}

// GetPomodoroSnapshot returns the interrupted phase saved by a
// previous run, or nil when there is none.
func (c *Client) GetPomodoroSnapshot() (*models.PomodoroSnapshot, error) {
	var snap models.PomodoroSnapshot

	found, err := c.getState(pomodoroSnapshotKey, &snap)
	if err != nil || !found {
		return nil, err
	}

	return &snap, nil
}

func (c *Client) SavePomodoroSnapshot(snap *models.PomodoroSnapshot) error {
	return c.putState(pomodoroSnapshotKey, snap)
}

func (c *Client) DeletePomodoroSnapshot() error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(stateBucket)).Delete(pomodoroSnapshotKey)
	})
}

// RecordUnknownApps merges observed-but-uncategorized app counts into
// the persisted set, so users can discover candidates for new rules.
func (c *Client) RecordUnknownApps(apps map[string]int) error {
	if len(apps) == 0 {
		return nil
	}

	known := make(map[string]int)

	_, err := c.getState(unknownAppsKey, &known)
	if err != nil {
		return err
	}

	for app, n := range apps {
		known[app] += n
	}

	return c.putState(unknownAppsKey, known)
}

func (c *Client) GetUnknownApps() (map[string]int, error) {
	apps := make(map[string]int)

	_, err := c.getState(unknownAppsKey, &apps)
	if err != nil {
		return nil, err
	}

	return apps, nil
}

// GetLastActiveDate returns the most recent date with tracked
// activity. Day rollover is detected by comparing it to the current
// date.
func (c *Client) GetLastActiveDate() (string, error) {
	var date string

	_, err := c.getState(lastActiveKey, &date)
	if err != nil {
		return "", err
	}

	return date, nil
}

func (c *Client) SaveLastActiveDate(date string) error {
	return c.putState(lastActiveKey, date)
}
