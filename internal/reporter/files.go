package reporter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/acarl005/stripansi"
	"gopkg.in/yaml.v3"
)

// WriteYAML writes the full run report to path.
func (r *TestReporter) WriteYAML(path string) error {
	data, err := yaml.Marshal(r.report)
	if err != nil {
		return fmt.Errorf("failed to marshal run report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run report %s: %w", path, err)
	}

	return nil
}

// WriteLogDir writes the plain-text report to summary.log and one log file per
// failed or errored test case, in baseDir/testrun-<run id>. It returns the
// directory that was written.
func (r *TestReporter) WriteLogDir(baseDir string) (string, error) {
	outputDir := filepath.Join(baseDir, "testrun-"+r.report.RunID)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	var summary bytes.Buffer
	// Devops markers only make sense in the live console.
	NewTestReporter(r.report, false).PrintReport(&summary)
	if err := writeStripped(filepath.Join(outputDir, "summary.log"), summary.String()); err != nil {
		return "", err
	}

	for _, testCase := range r.report.TestCases {
		if !testCase.Status.IsBad() {
			continue
		}

		var content bytes.Buffer
		printCaseDetails(&content, testCase)

		// Names cannot contain dots, so this cannot collide.
		name := fmt.Sprintf("%s.%s.log", testCase.Group, testCase.Name)
		if err := writeStripped(filepath.Join(outputDir, name), content.String()); err != nil {
			return "", err
		}
	}

	return outputDir, nil
}

func writeStripped(path string, content string) error {
	if err := os.WriteFile(path, []byte(stripansi.Strip(content)), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
