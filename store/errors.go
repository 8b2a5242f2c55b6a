package store

import "errors"

var (
	errAlreadyRunning = errors.New(
		"is lapse already running? Only one instance can access the data file at a time",
	)

	errCorruptRecord = errors.New("corrupt session record")
)
