package reporter

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bufrunner/internal/runner"
	"bufrunner/internal/testhelpers"
	"bufrunner/internal/testmgr"
	"bufrunner/pkg/bufrunner/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func runReport(t *testing.T, cases ...testhelpers.Case) *TestReporter {
	t.Helper()

	group := &testhelpers.Group{GroupName: "group", Cases: cases}
	suite := testhelpers.NewSuite("report-test", group)
	tm, err := runner.Run(suite, suite.Groups(), runner.Options{})
	require.NoError(t, err)

	return NewTestReporter(NewRunReport(tm, "run-1"), false)
}

func printed(r *TestReporter) string {
	var buf bytes.Buffer
	r.PrintReport(&buf)
	return buf.String()
}

var (
	passHello = testhelpers.Case{Name: "pass", F: func(core.TestCase) error {
		fmt.Println("hello from pass")
		return nil
	}}
	failHello = testhelpers.Case{Name: "fail", F: func(tc core.TestCase) error {
		fmt.Println("hello from fail")
		tc.Fail("values differ")
		return nil
	}}
	errorOops = testhelpers.Case{Name: "error", F: func(core.TestCase) error {
		fmt.Fprintln(os.Stderr, "oops")
		return errors.New("unexpected runtime error")
	}}
)

func TestPassingOutputIsNotReported(t *testing.T) {
	r := runReport(t, passHello)
	out := printed(r)

	assert.NotContains(t, out, "hello from pass")
	assert.Empty(t, r.Report().TestCases[0].Output.Stdout)
	assert.NoError(t, r.ExitError())
}

func TestFailingOutputIsReported(t *testing.T) {
	r := runReport(t, failHello)
	out := printed(r)

	assert.Contains(t, out, "hello from fail")
	assert.Contains(t, out, "Stdout:")
	assert.Contains(t, out, "Reason: values differ")
	assert.Contains(t, out, "reporter_test.go")
	assert.Error(t, r.ExitError())
}

func TestErrorOutputIsReportedAndRunContinues(t *testing.T) {
	after := testhelpers.Case{Name: "after", F: func(core.TestCase) error { return nil }}
	r := runReport(t, errorOops, after)
	out := printed(r)

	require.Len(t, r.Report().TestCases, 2)
	assert.Equal(t, testmgr.TestCaseStatusError, r.Report().TestCases[0].Status)
	assert.Equal(t, testmgr.TestCaseStatusPassed, r.Report().TestCases[1].Status)
	assert.Contains(t, out, "oops")
	assert.Contains(t, out, "Stderr:")
	assert.Contains(t, out, "unexpected runtime error")
}

func TestMixedSuiteCounts(t *testing.T) {
	r := runReport(t, passHello, failHello, errorOops)
	out := printed(r)

	summary := r.Report().Summary
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Passed)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Errored)
	assert.Equal(t, TestStatusError, summary.Status())

	assert.NotContains(t, out, "hello from pass")
	assert.Contains(t, out, "hello from fail")
	assert.Contains(t, out, "oops")
	assert.Contains(t, out, "TEST RESULT:")

	for _, testCase := range r.Report().TestCases {
		hasOutput := testCase.Output.Stdout != "" || testCase.Output.Stderr != ""
		assert.Equal(t, testCase.Status.IsBad(), hasOutput, testCase.Name)
	}
}

func TestOutputIsVerbatim(t *testing.T) {
	r := runReport(t, testhelpers.Case{Name: "ordered", F: func(tc core.TestCase) error {
		fmt.Print("first ")
		fmt.Print("second\n")
		fmt.Print("  third")
		tc.Fail("order")
		return nil
	}})

	assert.Equal(t, "first second\n  third", r.Report().TestCases[0].Output.Stdout)
	assert.Contains(t, printed(r), "first second\n  third\n")
}

func TestNoTestCases(t *testing.T) {
	r := runReport(t)
	assert.EqualError(t, r.ExitError(), "no test cases were run")
}

func TestAzureDevopsMarkers(t *testing.T) {
	group := &testhelpers.Group{GroupName: "group", Cases: []testhelpers.Case{failHello}}
	suite := testhelpers.NewSuite("report-test", group)
	tm, err := runner.Run(suite, suite.Groups(), runner.Options{})
	require.NoError(t, err)

	out := printed(NewTestReporter(NewRunReport(tm, "run-1"), true))
	assert.Contains(t, out, "##vso[task.logissue type=error]group/fail: FAIL")
	assert.Contains(t, out, "##[group]group/fail: FAIL")
	assert.Contains(t, out, "##[endgroup]")
}

func TestWriteYAML(t *testing.T) {
	r := runReport(t, passHello, failHello)
	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, r.WriteYAML(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "run-1", decoded["run_id"])
	assert.Contains(t, string(data), "status: FAIL")
	assert.Contains(t, string(data), "hello from fail")
	assert.NotContains(t, string(data), "hello from pass")
}

func TestWriteJUnit(t *testing.T) {
	r := runReport(t, passHello, failHello, errorOops)
	path := filepath.Join(t.TempDir(), "junit.xml")
	require.NoError(t, r.WriteJUnit(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded junitTestSuites
	require.NoError(t, xml.Unmarshal(data, &decoded))
	assert.Equal(t, 3, decoded.Tests)
	assert.Equal(t, 1, decoded.Failures)
	assert.Equal(t, 1, decoded.Errors)
	require.Len(t, decoded.Suites, 1)

	cases := decoded.Suites[0].TestCases
	require.Len(t, cases, 3)
	assert.Empty(t, cases[0].SystemOut)
	assert.NotNil(t, cases[1].Failure)
	assert.Equal(t, "hello from fail\n", cases[1].SystemOut)
	assert.NotNil(t, cases[2].Error)
	assert.Equal(t, "oops\n", cases[2].SystemErr)
}

func TestWriteLogDir(t *testing.T) {
	r := runReport(t, passHello, failHello)
	dir, err := r.WriteLogDir(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "testrun-run-1", filepath.Base(dir))

	summary, err := os.ReadFile(filepath.Join(dir, "summary.log"))
	require.NoError(t, err)
	assert.Contains(t, string(summary), "TEST RESULT:")
	assert.NotContains(t, string(summary), "\x1b[")

	failLog, err := os.ReadFile(filepath.Join(dir, "group.fail.log"))
	require.NoError(t, err)
	assert.Contains(t, string(failLog), "hello from fail")

	_, err = os.Stat(filepath.Join(dir, "group.pass.log"))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteMetrics(t *testing.T) {
	r := runReport(t, passHello, failHello)
	path := filepath.Join(t.TempDir(), "bufrunner.prom")
	require.NoError(t, r.WriteMetrics(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.True(t, strings.Contains(content, `bufrunner_test_cases{status="pass",suite="report-test"} 1`), content)
	assert.True(t, strings.Contains(content, `bufrunner_test_cases{status="fail",suite="report-test"} 1`), content)
	assert.Contains(t, content, "bufrunner_run_duration_seconds")
}

func TestWriteLogDirKeepsCasesApart(t *testing.T) {
	failWith := func(name string, message string) testhelpers.Case {
		return testhelpers.Case{Name: name, F: func(tc core.TestCase) error {
			fmt.Println(message)
			tc.Fail(message)
			return nil
		}}
	}

	first := failWith("c", "from a_b/c")
	second := failWith("b_c", "from a/b_c")

	suite := testhelpers.NewSuite("report-test",
		&testhelpers.Group{GroupName: "a_b", Cases: []testhelpers.Case{first}},
		&testhelpers.Group{GroupName: "a", Cases: []testhelpers.Case{second}},
	)
	tm, err := runner.Run(suite, suite.Groups(), runner.Options{})
	require.NoError(t, err)

	dir, err := NewTestReporter(NewRunReport(tm, "run-1"), false).WriteLogDir(t.TempDir())
	require.NoError(t, err)

	firstLog, err := os.ReadFile(filepath.Join(dir, "a_b.c.log"))
	require.NoError(t, err)
	assert.Contains(t, string(firstLog), "from a_b/c")

	secondLog, err := os.ReadFile(filepath.Join(dir, "a.b_c.log"))
	require.NoError(t, err)
	assert.Contains(t, string(secondLog), "from a/b_c")
}

func TestSummaryStatusOrdering(t *testing.T) {
	assert.Equal(t, TestStatusOk, TestSummary{Total: 2, Passed: 1, Skipped: 1}.Status())
	assert.Equal(t, TestStatusGroupError, TestSummary{Total: 1, Passed: 1, GroupErrors: 1}.Status())
	assert.Equal(t, TestStatusFailed, TestSummary{Total: 1, Failed: 1, GroupErrors: 1}.Status())
	assert.Equal(t, TestStatusError, TestSummary{Total: 2, Failed: 1, Errored: 1}.Status())

	assert.False(t, TestStatusOk.IsBad())
	assert.True(t, TestStatusGroupError.IsBad())
	assert.Equal(t, "GROUP ERROR", TestStatusGroupError.String())
}

func TestCleanupFailureFailsTheRun(t *testing.T) {
	group := &testhelpers.GroupWithSetup{Group: testhelpers.Group{
		GroupName:   "group",
		Cases:       []testhelpers.Case{passHello},
		CleanupFunc: func() error { return errors.New("left overs") },
	}}
	suite := testhelpers.NewSuite("report-test", group)
	tm, err := runner.Run(suite, suite.Groups(), runner.Options{})
	require.NoError(t, err)

	r := NewTestReporter(NewRunReport(tm, "run-1"), false)
	assert.Equal(t, TestStatusGroupError, r.Report().Summary.Status())
	assert.Contains(t, printed(r), "TEST RESULT: ")
	assert.Contains(t, printed(r), "left overs")
	assert.Error(t, r.ExitError())
}
