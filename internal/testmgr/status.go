package testmgr

import (
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

type TestCaseStatus int

const (
	TestCaseStatusRunning TestCaseStatus = iota
	TestCaseStatusPassed
	TestCaseStatusFailed
	TestCaseStatusSkipped
	TestCaseStatusError
	TestCaseStatusNotRun
)

func (tcs TestCaseStatus) String() string {
	switch tcs {
	case TestCaseStatusRunning:
		return "RUNNING"
	case TestCaseStatusPassed:
		return "PASS"
	case TestCaseStatusFailed:
		return "FAIL"
	case TestCaseStatusSkipped:
		return "SKIP"
	case TestCaseStatusError:
		return "ERROR"
	case TestCaseStatusNotRun:
		return "NOT RUN"
	default:
		return "UNKNOWN"
	}
}

func (tcs TestCaseStatus) ColorString() string {
	switch tcs {
	case TestCaseStatusPassed:
		return color.GreenString(tcs.String())
	case TestCaseStatusFailed:
		return color.RedString(tcs.String())
	case TestCaseStatusSkipped, TestCaseStatusNotRun:
		return color.YellowString(tcs.String())
	case TestCaseStatusError:
		return color.New(color.FgRed, color.Bold).Sprint(tcs.String())
	default:
		return tcs.String()
	}
}

func (tcs TestCaseStatus) logLevel() logrus.Level {
	switch tcs {
	case TestCaseStatusPassed:
		return logrus.InfoLevel
	case TestCaseStatusFailed:
		return logrus.ErrorLevel
	case TestCaseStatusSkipped, TestCaseStatusNotRun:
		return logrus.WarnLevel
	case TestCaseStatusError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func (tcs TestCaseStatus) IsRunning() bool {
	return tcs == TestCaseStatusRunning
}

func (tcs TestCaseStatus) Passed() bool {
	return tcs == TestCaseStatusPassed
}

func (tcs TestCaseStatus) Failed() bool {
	return tcs == TestCaseStatusFailed
}

func (tcs TestCaseStatus) Skipped() bool {
	return tcs == TestCaseStatusSkipped
}

func (tcs TestCaseStatus) Errored() bool {
	return tcs == TestCaseStatusError
}

func (tcs TestCaseStatus) NotRun() bool {
	return tcs == TestCaseStatusNotRun
}

// IsBad returns true if the test case status is either Failed or Error.
func (tcs TestCaseStatus) IsBad() bool {
	return tcs == TestCaseStatusFailed || tcs == TestCaseStatusError
}

// MarshalYAML writes the status as its display string.
func (tcs TestCaseStatus) MarshalYAML() (any, error) {
	return tcs.String(), nil
}
