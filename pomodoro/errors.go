package pomodoro

import "errors"

var (
	errAlreadyRunning = errors.New(
		"a Pomodoro cycle is already running",
	)

	errNotRunning = errors.New(
		"no Pomodoro cycle is running",
	)

	errNotWaiting = errors.New(
		"no phase is waiting to begin",
	)
)
