package reporter

import (
	"time"

	"bufrunner/internal/testmgr"
)

// RunReport is the outcome of one suite run. Captured output and test case
// logs are only ever copied into the entries of failed or errored test cases.
type RunReport struct {
	RunID       string             `yaml:"run_id"`
	Suite       string             `yaml:"suite"`
	StartTime   time.Time          `yaml:"start_time"`
	Duration    time.Duration      `yaml:"duration"`
	Summary     TestSummary        `yaml:"summary"`
	TestCases   []CaseReport       `yaml:"test_cases"`
	GroupErrors []GroupErrorReport `yaml:"group_errors,omitempty"`
}

type CaseReport struct {
	Group     string                 `yaml:"group"`
	Name      string                 `yaml:"name"`
	Status    testmgr.TestCaseStatus `yaml:"status"`
	StartTime time.Time              `yaml:"start_time,omitempty"`
	Duration  time.Duration          `yaml:"duration"`
	Reason    string                 `yaml:"reason,omitempty"`
	Error     string                 `yaml:"error,omitempty"`
	Trace     string                 `yaml:"trace,omitempty"`
	Output    CapturedOutput         `yaml:",inline"`
	Logs      []string               `yaml:"logs,omitempty"`
}

type CapturedOutput struct {
	Stdout          string `yaml:"stdout,omitempty"`
	Stderr          string `yaml:"stderr,omitempty"`
	StdoutTotal     int64  `yaml:"stdout_bytes,omitempty"`
	StderrTotal     int64  `yaml:"stderr_bytes,omitempty"`
	StdoutTruncated bool   `yaml:"stdout_truncated,omitempty"`
	StderrTruncated bool   `yaml:"stderr_truncated,omitempty"`
}

type GroupErrorReport struct {
	Group  string         `yaml:"group"`
	Phase  string         `yaml:"phase"`
	Error  string         `yaml:"error"`
	Output CapturedOutput `yaml:",inline"`
}

func (c CaseReport) FullName() string {
	return c.Group + "/" + c.Name
}

// NewRunReport builds the report of a finished run.
func NewRunReport(tm *testmgr.TestManager, runID string) *RunReport {
	report := &RunReport{
		RunID:     runID,
		Suite:     tm.Suite().Name(),
		StartTime: tm.StartTime(),
		Duration:  time.Since(tm.StartTime()),
		TestCases: make([]CaseReport, 0),
	}

	for _, testCase := range tm.TestCases() {
		report.TestCases = append(report.TestCases, newCaseReport(testCase))
	}

	for _, groupErr := range tm.GroupErrors() {
		report.GroupErrors = append(report.GroupErrors, GroupErrorReport{
			Group: groupErr.Group,
			Phase: groupErr.Phase,
			Error: groupErr.Err.Error(),
			Output: CapturedOutput{
				Stdout:          string(groupErr.Output.Stdout),
				Stderr:          string(groupErr.Output.Stderr),
				StdoutTotal:     groupErr.Output.StdoutTotal,
				StderrTotal:     groupErr.Output.StderrTotal,
				StdoutTruncated: groupErr.Output.StdoutTruncated,
				StderrTruncated: groupErr.Output.StderrTruncated,
			},
		})
	}

	report.Summary = newSummary(report)

	return report
}

func newCaseReport(testCase *testmgr.TestCase) CaseReport {
	status := testCase.Status()
	report := CaseReport{
		Group:     testCase.Group(),
		Name:      testCase.Name(),
		Status:    status,
		StartTime: testCase.StartTime(),
		Duration:  testCase.RunTime(),
		Reason:    testCase.Reason(),
	}

	if err := testCase.Err(); err != nil {
		report.Error = err.Error()
	}

	// Output of anything that did not fail or error is dropped here.
	if !status.IsBad() {
		return report
	}

	output := testCase.Output()
	report.Trace = testCase.Trace()
	report.Logs = testCase.LogLines()
	report.Output = CapturedOutput{
		Stdout:          string(output.Stdout),
		Stderr:          string(output.Stderr),
		StdoutTotal:     output.StdoutTotal,
		StderrTotal:     output.StderrTotal,
		StdoutTruncated: output.StdoutTruncated,
		StderrTruncated: output.StderrTruncated,
	}

	return report
}
