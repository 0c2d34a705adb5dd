package core

import (
	"fmt"
	"regexp"

	"github.com/sirupsen/logrus"
)

type Named interface {
	// Returns the unique name of the entity
	Name() string
}

type Argumented interface {
	// Returns a pointer to an instance of a kong-annotated struct to parse
	// additional command line arguments into.
	Args() any
}

type LoggerProvider interface {
	// Logger returns the logger to be used for logging.
	Logger() *logrus.Logger
}

var entityNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateEntityName checks that a group or test case name only contains
// letters, digits, underscores and dashes.
func ValidateEntityName(name string, kind string) error {
	if name == "" {
		return fmt.Errorf("%s name cannot be empty", kind)
	}

	if !entityNameRegex.MatchString(name) {
		return fmt.Errorf("%s name '%s' is invalid, it must match '%s'", kind, name, entityNameRegex.String())
	}

	return nil
}
