package reporter

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"bufrunner/internal/testmgr"

	"github.com/acarl005/stripansi"
)

type junitTestSuites struct {
	XMLName  xml.Name         `xml:"testsuites"`
	Name     string           `xml:"name,attr"`
	Tests    int              `xml:"tests,attr"`
	Failures int              `xml:"failures,attr"`
	Errors   int              `xml:"errors,attr"`
	Skipped  int              `xml:"skipped,attr"`
	Time     string           `xml:"time,attr"`
	Suites   []junitTestSuite `xml:"testsuite"`
}

type junitTestSuite struct {
	Name      string          `xml:"name,attr"`
	Tests     int             `xml:"tests,attr"`
	Failures  int             `xml:"failures,attr"`
	Errors    int             `xml:"errors,attr"`
	Skipped   int             `xml:"skipped,attr"`
	Timestamp string          `xml:"timestamp,attr,omitempty"`
	TestCases []junitTestCase `xml:"testcase"`
}

type junitTestCase struct {
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Time      string        `xml:"time,attr"`
	Failure   *junitMessage `xml:"failure,omitempty"`
	Error     *junitMessage `xml:"error,omitempty"`
	Skipped   *junitMessage `xml:"skipped,omitempty"`
	SystemOut string        `xml:"system-out,omitempty"`
	SystemErr string        `xml:"system-err,omitempty"`
}

type junitMessage struct {
	Message string `xml:"message,attr,omitempty"`
	Body    string `xml:",chardata"`
}

// WriteJUnit writes the run report as JUnit XML, one testsuite per group.
// Like the console report, system-out and system-err are only filled in for
// failed or errored test cases.
func (r *TestReporter) WriteJUnit(path string) error {
	root := junitTestSuites{
		Name:     r.report.Suite,
		Tests:    r.report.Summary.Total,
		Failures: r.report.Summary.Failed,
		Errors:   r.report.Summary.Errored,
		Skipped:  r.report.Summary.Skipped + r.report.Summary.NotRun,
		Time:     seconds(r.report.Duration.Seconds()),
	}

	suiteIndex := make(map[string]int)
	for _, testCase := range r.report.TestCases {
		index, ok := suiteIndex[testCase.Group]
		if !ok {
			index = len(root.Suites)
			suiteIndex[testCase.Group] = index
			root.Suites = append(root.Suites, junitTestSuite{Name: testCase.Group})
			if !testCase.StartTime.IsZero() {
				root.Suites[index].Timestamp = testCase.StartTime.UTC().Format("2006-01-02T15:04:05")
			}
		}

		suite := &root.Suites[index]
		suite.Tests++
		suite.TestCases = append(suite.TestCases, newJUnitTestCase(testCase, suite))
	}

	data, err := xml.MarshalIndent(root, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JUnit report: %w", err)
	}

	data = append([]byte(xml.Header), data...)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write JUnit report %s: %w", path, err)
	}

	return nil
}

func newJUnitTestCase(testCase CaseReport, suite *junitTestSuite) junitTestCase {
	jc := junitTestCase{
		Name:      testCase.Name,
		ClassName: testCase.Group,
		Time:      seconds(testCase.Duration.Seconds()),
	}

	message := testCase.Reason
	if testCase.Error != "" {
		message = testCase.Error
	}

	switch testCase.Status {
	case testmgr.TestCaseStatusFailed:
		suite.Failures++
		jc.Failure = &junitMessage{Message: message, Body: failureBody(testCase)}
	case testmgr.TestCaseStatusError:
		suite.Errors++
		jc.Error = &junitMessage{Message: message, Body: failureBody(testCase)}
	case testmgr.TestCaseStatusSkipped, testmgr.TestCaseStatusNotRun:
		suite.Skipped++
		jc.Skipped = &junitMessage{Message: message}
	}

	jc.SystemOut = stripansi.Strip(testCase.Output.Stdout)
	jc.SystemErr = stripansi.Strip(testCase.Output.Stderr)

	return jc
}

func failureBody(testCase CaseReport) string {
	var parts []string
	if testCase.Trace != "" {
		parts = append(parts, testCase.Trace)
	}
	if len(testCase.Logs) > 0 {
		parts = append(parts, stripansi.Strip(strings.Join(testCase.Logs, "\n")))
	}
	return strings.Join(parts, "\n\n")
}

func seconds(s float64) string {
	return fmt.Sprintf("%.3f", s)
}
