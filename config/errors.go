package config

import "errors"

var (
	errInvalidPeriod = errors.New(
		"please provide a valid time period",
	)

	errInvalidDateRange = errors.New(
		"the start time must be earlier than the end time",
	)

	errInvalidStartDate = errors.New(
		"please provide a valid start date",
	)

	// ErrGoalConflict is returned when a config declares more than one
	// goal for the same category and direction. The config is rejected
	// and any previously loaded config stays in effect.
	ErrGoalConflict = errors.New(
		"conflicting goals: only one goal per category and direction is allowed",
	)

	errInvalidSampleInterval = errors.New(
		"tracking.sample_interval must be at least 1 second",
	)

	errInvalidIdleThreshold = errors.New(
		"tracking.idle_threshold must be greater than the sample interval",
	)

	errInvalidBufferSize = errors.New(
		"tracking.buffer_size must be at least 16",
	)

	errInvalidGoalTarget = errors.New(
		"goal targets must be positive durations",
	)

	errInvalidGoalCategory = errors.New(
		"goals must name a category",
	)

	errInvalidGoalDirection = errors.New(
		"goal direction must be either min or max",
	)

	errInvalidPomodoro = errors.New(
		"pomodoro durations must be positive and the long break interval at least 1",
	)
)
