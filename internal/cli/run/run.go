package run

import (
	"fmt"
	"os"
	"time"

	"bufrunner/internal/reporter"
	"bufrunner/internal/runner"
	"bufrunner/pkg/bufrunner/core"
	"bufrunner/pkg/bufrunner/utils"

	"github.com/google/uuid"
)

type RunCmd struct {
	Groups          []string `short:"g" name:"group" help:"Group to run, may be repeated. Runs all groups when omitted."`
	Tags            []string `short:"t" name:"tag" help:"Only run groups carrying one of these tags"`
	Tests           []string `short:"T" name:"test" help:"Only run these test cases, given as 'name' or 'group/name'"`
	Order           string   `help:"Order to run groups and test cases in" enum:"declared,alphabetical,random" default:"declared"`
	Seed            int64    `help:"Seed for the random order, 0 picks one from the clock"`
	FailFast        bool     `help:"Stop at the first failed or errored test case"`
	NoCapture       bool     `help:"Do not buffer standard output and standard error"`
	Watch           bool     `short:"w" help:"Also show the output of test cases live while it is buffered"`
	MaxCaptureBytes int      `help:"Maximum number of bytes kept per stream and test case" default:"5242880"`
	LogDir          *string  `short:"l" help:"Optional directory to save logs to. Will be created if it does not exist." type:"path"`
	Report          *string  `help:"Write a YAML report of the run to this file" type:"path"`
	JUnit           *string  `name:"junit" help:"Write a JUnit XML report of the run to this file" type:"path"`
	MetricsFile     *string  `help:"Write Prometheus metrics of the run to this file" type:"path"`
	GroupArgs       []string `arg:"" passthrough:"all" help:"Arguments to pass to the groups as '--<group>.<flag>', you may use '--' to force passthrough." optional:""`
}

func (cmd *RunCmd) Run(suite core.SuiteContext) error {
	log := suite.Logger()

	groups, err := cmd.selectGroups(suite)
	if err != nil {
		return err
	}

	if len(groups) == 0 {
		return fmt.Errorf("no groups match the selection")
	}

	seed := cmd.Seed
	if cmd.Order == string(runner.OrderRandom) && seed == 0 {
		seed = time.Now().UnixNano()
	}

	log.Infof("Running %d groups", len(groups))
	tm, err := runner.Run(suite, groups, runner.Options{
		NoCapture:       cmd.NoCapture,
		Watch:           cmd.Watch,
		MaxCaptureBytes: cmd.MaxCaptureBytes,
		Order:           runner.Order(cmd.Order),
		Seed:            seed,
		FailFast:        cmd.FailFast,
		TestFilter:      utils.NewStringFilterFromSlice(cmd.Tests),
		Args:            cmd.GroupArgs,
	})
	if err != nil {
		return err
	}

	rep := reporter.NewTestReporter(reporter.NewRunReport(tm, uuid.New().String()), suite.AzureDevops())
	rep.PrintReport(os.Stdout)

	if err := cmd.writeOutputs(suite, rep); err != nil {
		return err
	}

	return rep.ExitError()
}

func (cmd *RunCmd) selectGroups(suite core.SuiteContext) ([]core.TestGroup, error) {
	tagFilter := utils.NewStringFilterFromSlice(cmd.Tags)

	candidates := suite.Groups()
	if len(cmd.Groups) > 0 {
		candidates = make([]core.TestGroup, 0, len(cmd.Groups))
		for _, name := range cmd.Groups {
			group, err := suite.Group(name)
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, group)
		}
	}

	selected := make([]core.TestGroup, 0, len(candidates))
	for _, group := range candidates {
		if !tagFilter.MatchAny(group.Tags()) {
			suite.Logger().Tracef("Skipping group '%s' because it does not match any tags", group.Name())
			continue
		}
		selected = append(selected, group)
	}

	return selected, nil
}

// writeOutputs writes every report file that was asked for on the command
// line.
func (cmd *RunCmd) writeOutputs(suite core.SuiteContext, rep *reporter.TestReporter) error {
	log := suite.Logger()

	if cmd.LogDir != nil {
		dir, err := rep.WriteLogDir(*cmd.LogDir)
		if err != nil {
			return fmt.Errorf("failed to write logs: %w", err)
		}
		log.Infof("Logs saved to '%s'", dir)
	}

	if cmd.Report != nil {
		if err := rep.WriteYAML(*cmd.Report); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		log.Infof("Report saved to '%s'", *cmd.Report)
	}

	if cmd.JUnit != nil {
		if err := rep.WriteJUnit(*cmd.JUnit); err != nil {
			return fmt.Errorf("failed to write JUnit report: %w", err)
		}
		log.Infof("JUnit report saved to '%s'", *cmd.JUnit)
	}

	if cmd.MetricsFile != nil {
		if err := rep.WriteMetrics(*cmd.MetricsFile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		log.Infof("Metrics saved to '%s'", *cmd.MetricsFile)
	}

	return nil
}
