package category

import "errors"

var (
	// ErrInvalidRule is reported once at load for each rule that cannot
	// be applied. The offending rule is skipped.
	ErrInvalidRule = errors.New("invalid category rule")
)
