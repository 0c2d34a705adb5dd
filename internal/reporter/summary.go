package reporter

import (
	"fmt"
	"strings"

	"bufrunner/internal/testmgr"

	"github.com/fatih/color"
)

// TestSummaryStatus is the overall result of a run.
type TestSummaryStatus int

const (
	TestStatusOk TestSummaryStatus = iota
	TestStatusFailed
	TestStatusError
	// Every test case passed or was skipped but a group cleanup failed.
	TestStatusGroupError
)

func (ts TestSummaryStatus) String() string {
	switch ts {
	case TestStatusOk:
		return "OK"
	case TestStatusFailed:
		return "FAILED"
	case TestStatusError:
		return "ERROR"
	case TestStatusGroupError:
		return "GROUP ERROR"
	default:
		return "UNKNOWN"
	}
}

func (ts TestSummaryStatus) StringColor() string {
	switch ts {
	case TestStatusOk:
		return color.GreenString(ts.String())
	case TestStatusFailed:
		return color.RedString(ts.String())
	case TestStatusError:
		return color.New(color.FgRed, color.Bold).Sprint(ts.String())
	case TestStatusGroupError:
		return color.MagentaString(ts.String())
	default:
		return ts.String()
	}
}

// IsBad returns true for every result that makes the run exit with an error.
func (ts TestSummaryStatus) IsBad() bool {
	return ts != TestStatusOk
}

// MarshalYAML writes the status as its display string.
func (ts TestSummaryStatus) MarshalYAML() (any, error) {
	return ts.String(), nil
}

type TestSummary struct {
	Total       int `yaml:"total"`
	Passed      int `yaml:"passed"`
	Failed      int `yaml:"failed"`
	Skipped     int `yaml:"skipped"`
	NotRun      int `yaml:"not_run"`
	Errored     int `yaml:"errored"`
	GroupErrors int `yaml:"group_errors"`
}

func newSummary(report *RunReport) TestSummary {
	var summary TestSummary

	for _, testCase := range report.TestCases {
		summary.Total++
		switch testCase.Status {
		case testmgr.TestCaseStatusPassed:
			summary.Passed++
		case testmgr.TestCaseStatusFailed:
			summary.Failed++
		case testmgr.TestCaseStatusSkipped:
			summary.Skipped++
		case testmgr.TestCaseStatusNotRun:
			summary.NotRun++
		case testmgr.TestCaseStatusError:
			summary.Errored++
		default:
			panic("Invalid test case status")
		}
	}

	summary.GroupErrors = len(report.GroupErrors)

	return summary
}

// Status returns the worst outcome of the run. Test case errors outrank
// failures, which outrank group errors.
func (s TestSummary) Status() TestSummaryStatus {
	if s.Errored > 0 {
		return TestStatusError
	}
	if s.Failed > 0 {
		return TestStatusFailed
	}
	if s.GroupErrors > 0 {
		return TestStatusGroupError
	}
	return TestStatusOk
}

func (s TestSummary) Summary() string {
	var out []string

	if s.Failed > 0 {
		out = append(out, fmt.Sprintf("failed: %d", s.Failed))
	}

	if s.Errored > 0 {
		out = append(out, fmt.Sprintf("errored: %d", s.Errored))
	}
	if s.Skipped > 0 {
		out = append(out, fmt.Sprintf("skipped: %d", s.Skipped))
	}
	if s.NotRun > 0 {
		out = append(out, fmt.Sprintf("notrun: %d", s.NotRun))
	}
	if s.GroupErrors > 0 {
		out = append(out, fmt.Sprintf("group errors: %d", s.GroupErrors))
	}

	out = append(out, fmt.Sprintf("passed: %d", s.Passed))
	out = append(out, fmt.Sprintf("total: %d", s.Total))

	return strings.Join(out, "; ")
}
