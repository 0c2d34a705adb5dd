package reporter

import (
	"fmt"
	"io"
	"strings"

	"bufrunner/internal/devops"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type TestReporter struct {
	report      *RunReport
	azureDevops bool
}

func NewTestReporter(report *RunReport, azureDevops bool) *TestReporter {
	return &TestReporter{
		report:      report,
		azureDevops: azureDevops,
	}
}

func (r *TestReporter) Report() *RunReport {
	return r.report
}

// PrintReport writes the details of every failed or errored test case,
// followed by a summary table and the overall result line.
func (r *TestReporter) PrintReport(w io.Writer) {
	for _, testCase := range r.report.TestCases {
		if !testCase.Status.IsBad() {
			continue
		}

		var group *devops.Group
		if r.azureDevops {
			devops.LogError(w, "%s: %s", testCase.FullName(), testCase.Status.String())
			group = devops.OpenGroup(w, fmt.Sprintf("%s: %s", testCase.FullName(), testCase.Status.String()))
		}

		printCaseDetails(w, testCase)

		if group != nil {
			group.Close()
		}
	}

	for _, groupErr := range r.report.GroupErrors {
		if r.azureDevops {
			devops.LogError(w, "%s %s failed: %s", groupErr.Group, groupErr.Phase, groupErr.Error)
		}

		printSeparatorWithTitle(w, fmt.Sprintf("%s (%s): %s", groupErr.Group, groupErr.Phase, color.RedString("ERROR")))
		fmt.Fprintf(w, "Error: %s\n", groupErr.Error)
		printOutput(w, groupErr.Output)
	}

	printSeparator(w)
	io.WriteString(w, r.summaryTable())

	summary := r.report.Summary
	printSeparator(w)
	fmt.Fprintf(w, "TEST RESULT: %s. %s\n", summary.Status().StringColor(), summary.Summary())
}

func printCaseDetails(w io.Writer, testCase CaseReport) {
	printSeparatorWithTitle(w, fmt.Sprintf("%s: %s", testCase.FullName(), testCase.Status.ColorString()))

	if testCase.Reason != "" {
		fmt.Fprintf(w, "Reason: %s\n", testCase.Reason)
	}

	if testCase.Error != "" {
		fmt.Fprintf(w, "Error: %s\n", testCase.Error)
	}

	if testCase.Trace != "" {
		printIndented(w, "Trace", testCase.Trace)
	}

	printOutput(w, testCase.Output)

	if len(testCase.Logs) > 0 {
		printIndented(w, "Logs", strings.Join(testCase.Logs, "\n"))
	}
}

func printOutput(w io.Writer, output CapturedOutput) {
	if output.Stdout != "" {
		printStream(w, "Stdout", output.Stdout, output.StdoutTotal, output.StdoutTruncated)
	}

	if output.Stderr != "" {
		printStream(w, "Stderr", output.Stderr, output.StderrTotal, output.StderrTruncated)
	}
}

func (r *TestReporter) summaryTable() string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle(fmt.Sprintf("%s (%s)", r.report.Suite, formatDuration(r.report.Duration)))
	t.AppendHeader(table.Row{"Group", "Test case", "Duration", "Status"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Group", AutoMerge: true},
		{Name: "Test case", WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Duration", Align: text.AlignRight},
	})

	for _, testCase := range r.report.TestCases {
		t.AppendRow(table.Row{
			testCase.Group,
			testCase.Name,
			formatDuration(testCase.Duration),
			testCase.Status.ColorString(),
		})
	}

	summary := r.report.Summary
	t.AppendFooter(table.Row{
		"TOTAL",
		summary.Total,
		formatDuration(r.report.Duration),
		summary.Status().StringColor(),
	})

	return t.Render() + "\n"
}

// ExitError returns an error if any test case failed or errored, or if a
// group could not be cleaned up.
func (r *TestReporter) ExitError() error {
	summary := r.report.Summary

	if summary.Total == 0 {
		return fmt.Errorf("no test cases were run")
	}

	if summary.Status().IsBad() {
		return fmt.Errorf("test suite finished with %d failed, %d errored test cases and %d group errors",
			summary.Failed, summary.Errored, summary.GroupErrors)
	}

	return nil
}
