package reporter

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "bufrunner"

// WriteMetrics writes the run outcome in the Prometheus text format, suitable
// for the node exporter textfile collector.
func (r *TestReporter) WriteMetrics(path string) error {
	registry := prometheus.NewRegistry()

	testCases := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "test_cases",
		Help:      "Number of test cases by status in the last run",
	}, []string{"suite", "status"})

	testCaseDuration := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "test_case_duration_seconds",
		Help:      "Duration of each test case in the last run",
	}, []string{"suite", "group", "test", "status"})

	runDuration := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "run_duration_seconds",
		Help:      "Duration of the last run",
	}, []string{"suite"})

	runTimestamp := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "run_start_timestamp_seconds",
		Help:      "Unix time the last run started at",
	}, []string{"suite", "run_id"})

	registry.MustRegister(testCases, testCaseDuration, runDuration, runTimestamp)

	suite := r.report.Suite
	summary := r.report.Summary
	testCases.WithLabelValues(suite, "pass").Set(float64(summary.Passed))
	testCases.WithLabelValues(suite, "fail").Set(float64(summary.Failed))
	testCases.WithLabelValues(suite, "error").Set(float64(summary.Errored))
	testCases.WithLabelValues(suite, "skip").Set(float64(summary.Skipped))
	testCases.WithLabelValues(suite, "notrun").Set(float64(summary.NotRun))

	for _, testCase := range r.report.TestCases {
		testCaseDuration.
			WithLabelValues(suite, testCase.Group, testCase.Name, testCase.Status.String()).
			Set(testCase.Duration.Seconds())
	}

	runDuration.WithLabelValues(suite).Set(r.report.Duration.Seconds())
	runTimestamp.WithLabelValues(suite, r.report.RunID).Set(float64(r.report.StartTime.Unix()))

	if err := prometheus.WriteToTextfile(path, registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}

	return nil
}
