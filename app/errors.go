package app

import "errors"

var errProjectNameRequired = errors.New(
	"a project name is required: lapse project set <name>",
)
