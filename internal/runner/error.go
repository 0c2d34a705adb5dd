package runner

import (
	"fmt"

	"bufrunner/pkg/bufrunner/core"
)

type runnerError struct {
	err   error
	group core.Named
}

func (re *runnerError) Error() string {
	return fmt.Sprintf("error in group '%s': %v", re.group.Name(), re.err)
}

func (re *runnerError) Unwrap() error {
	return re.err
}

type setupError struct {
	runnerError
}

func newSetupError(group core.Named, err error) *setupError {
	return &setupError{
		runnerError: runnerError{
			err:   err,
			group: group,
		},
	}
}

func (se *setupError) Error() string {
	return fmt.Sprintf("setup error in group '%s': %v", se.group.Name(), se.err)
}

type cleanupError struct {
	runnerError
}

func newCleanupError(group core.Named, err error) *cleanupError {
	return &cleanupError{
		runnerError: runnerError{
			err:   err,
			group: group,
		},
	}
}

func (ce *cleanupError) Error() string {
	return fmt.Sprintf("cleanup error in group '%s': %v", ce.group.Name(), ce.err)
}
