package tracker

import "errors"

var (
	errInvalidDuration = errors.New(
		"the session duration must be positive",
	)

	errMissingCategory = errors.New(
		"a category is required for manual entries",
	)
)
