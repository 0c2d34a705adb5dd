package testmgr

import (
	"fmt"
	"time"

	"bufrunner/internal/capture"
	"bufrunner/internal/collector"
	"bufrunner/pkg/bufrunner/core"
	"bufrunner/pkg/bufrunner/utils"
)

// GroupRun is a test group together with the test cases selected from it.
type GroupRun struct {
	Group     core.TestGroup
	TestCases []*TestCase
}

type Options struct {
	// Tee test case log entries to the suite logger as they are produced.
	TeeLogs bool

	// Selects test cases by name or by group-qualified name. An empty filter
	// selects everything.
	TestFilter *utils.StringFilter
}

// GroupError is a failure of a group's setup or cleanup.
type GroupError struct {
	Group  string
	Phase  string
	Err    error
	Output capture.Output
}

type TestManager struct {
	suite       core.SuiteContext
	startTime   time.Time
	groups      []*GroupRun
	groupErrors []GroupError
	teeLogs     bool
}

// NewTestManager collects the test cases of every group. Groups left without
// any selected test case are dropped.
func NewTestManager(suite core.SuiteContext, groups []core.TestGroup, opts Options) (*TestManager, error) {
	tm := &TestManager{
		suite:     suite,
		startTime: time.Now(),
		groups:    make([]*GroupRun, 0, len(groups)),
		teeLogs:   opts.TeeLogs,
	}

	filter := opts.TestFilter
	if filter == nil {
		filter = utils.NewStringFilterFromSlice(nil)
	}

	var index uint
	for _, group := range groups {
		metadata, err := collector.CollectTestCases(group)
		if err != nil {
			return nil, fmt.Errorf("failed to collect test cases: %w", err)
		}

		run := &GroupRun{Group: group}
		for _, m := range metadata {
			if !filter.MatchAny([]string{m.Name, group.Name() + "/" + m.Name}) {
				suite.Logger().Tracef("Skipping test case '%s/%s' because it does not match the filter", group.Name(), m.Name)
				continue
			}

			run.TestCases = append(run.TestCases, newTestCase(m.Name, group.Name(), index, m.F, tm))
			index++
		}

		if len(run.TestCases) == 0 {
			suite.Logger().Debugf("No test cases selected from '%s'", group.Name())
			continue
		}

		tm.groups = append(tm.groups, run)
	}

	return tm, nil
}

// Groups returns the groups in execution order. The runner reorders the
// returned slice in place before executing anything.
func (r *TestManager) Groups() []*GroupRun {
	return r.groups
}

// TestCases returns all test cases in execution order.
func (r *TestManager) TestCases() []*TestCase {
	testCases := make([]*TestCase, 0)
	for _, group := range r.groups {
		testCases = append(testCases, group.TestCases...)
	}
	return testCases
}

// RecordGroupError keeps a setup or cleanup failure for the report.
func (r *TestManager) RecordGroupError(group string, phase string, err error, output capture.Output) {
	r.groupErrors = append(r.groupErrors, GroupError{
		Group:  group,
		Phase:  phase,
		Err:    err,
		Output: output,
	})
}

func (r *TestManager) GroupErrors() []GroupError {
	return r.groupErrors
}

func (r *TestManager) Suite() core.SuiteContext {
	return r.suite
}

func (r *TestManager) StartTime() time.Time {
	return r.startTime
}
