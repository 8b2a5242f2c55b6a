package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/lapseapp/lapse/category"
)

const minBufferSize = 16

// Validate performs validation checks on the Config struct and its
// fields, and builds the category resolver. Broken custom rules are
// collected as warnings rather than errors; conflicting goals reject
// the whole config.
func (c *Config) Validate() error {
	if c.Tracking.SampleInterval < time.Second {
		return errInvalidSampleInterval
	}

	if c.Tracking.IdleThreshold <= c.Tracking.SampleInterval {
		return errInvalidIdleThreshold
	}

	if c.Tracking.BufferSize < minBufferSize {
		return errInvalidBufferSize
	}

	if err := c.validateGoals(); err != nil {
		return err
	}

	if err := c.validatePomodoro(); err != nil {
		return err
	}

	c.Focus.Blocked = trimmed(c.Focus.Blocked)

	resolver, warnings := category.New(
		c.Tracking.ExcludedApps,
		c.Tracking.Rules,
	)

	c.resolver = resolver
	c.Warnings = append(c.Warnings, warnings...)

	return nil
}

// validateGoals normalizes directions and rejects duplicate
// (category, direction) pairs.
func (c *Config) validateGoals() error {
	seen := make(map[string]struct{})

	for i := range c.Goals {
		g := &c.Goals[i]

		g.Category = strings.TrimSpace(g.Category)
		if g.Category == "" {
			return errInvalidGoalCategory
		}

		if g.Target <= 0 {
			return fmt.Errorf("%w: %s", errInvalidGoalTarget, g.Category)
		}

		g.Direction = strings.ToLower(strings.TrimSpace(g.Direction))
		if g.Direction == "" {
			g.Direction = DirectionMin
		}

		if g.Direction != DirectionMin && g.Direction != DirectionMax {
			return fmt.Errorf(
				"%w: %s: %s",
				errInvalidGoalDirection,
				g.Category,
				g.Direction,
			)
		}

		key := strings.ToLower(g.Category) + "|" + g.Direction

		if _, ok := seen[key]; ok {
			return fmt.Errorf(
				"%w: %s (%s)",
				ErrGoalConflict,
				g.Category,
				g.Direction,
			)
		}

		seen[key] = struct{}{}
	}

	return nil
}

func (c *Config) validatePomodoro() error {
	p := &c.Pomodoro

	if p.WorkDuration <= 0 || p.ShortBreak <= 0 || p.LongBreak <= 0 ||
		p.LongBreakInterval < 1 {
		return errInvalidPomodoro
	}

	return nil
}

func trimmed(values []string) []string {
	var out []string

	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}

	return out
}
