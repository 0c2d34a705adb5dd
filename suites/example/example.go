// Package example implements test groups demonstrating how output is buffered
// per test case and only shown for failures and errors.
package example

import (
	"fmt"
	"os"
	"time"

	"bufrunner/pkg/bufrunner"

	"github.com/sirupsen/logrus"
)

// OutcomesGroup registers one test case per possible outcome. Each of them
// writes to both standard streams.
type OutcomesGroup struct {
	bufrunner.BaseGroup
	args struct {
		Greeting string `help:"Greeting printed by the test cases" default:"hello"`
	}
}

func (g *OutcomesGroup) Name() string {
	return "outcomes"
}

func (g *OutcomesGroup) Tags() []string {
	return []string{"example", "outcomes"}
}

func (g *OutcomesGroup) Args() any {
	return &g.args
}

func (g *OutcomesGroup) RegisterTestCases(r bufrunner.TestRegistrar) error {
	r.RegisterTestCase("passing", g.passing)
	r.RegisterTestCase("failing", g.failing)
	r.RegisterTestCase("erroring", g.erroring)
	r.RegisterTestCase("panicking", g.panicking)
	r.RegisterTestCase("skipped", g.skipped)
	r.RegisterTestCase("background", g.background)
	return nil
}

func (g *OutcomesGroup) passing(tc bufrunner.TestCase) error {
	// Nothing printed here shows up in the report since the test case passes.
	fmt.Printf("%s from %s\n", g.args.Greeting, tc.Name())
	fmt.Fprintln(os.Stderr, "some diagnostics nobody will read")
	logrus.Info("The standard logger writes to the captured stderr too")
	return nil
}

func (g *OutcomesGroup) failing(tc bufrunner.TestCase) error {
	fmt.Printf("%s from %s\n", g.args.Greeting, tc.Name())
	tc.Logger().Info("Test case logs are shown with the failure")

	// A failure stops execution of this test case here and marks it as
	// failed. The rest of the group still runs.
	tc.Fail("expected 2, got 3")

	fmt.Println("This message will never be printed!")
	return nil
}

func (g *OutcomesGroup) erroring(tc bufrunner.TestCase) error {
	fmt.Fprintln(os.Stderr, "connecting to a server that is not there")

	// Returning an error marks the test case as errored: the test itself
	// could not do its job, as opposed to the tested code misbehaving.
	return fmt.Errorf("connection refused")
}

func (g *OutcomesGroup) panicking(tc bufrunner.TestCase) error {
	fmt.Println("about to panic")
	var values map[string]int
	values["boom"] = 1
	return nil
}

func (g *OutcomesGroup) skipped(tc bufrunner.TestCase) error {
	fmt.Println("Output of skipped test cases is discarded")
	tc.Skip("nothing to test on this platform")
	return nil
}

func (g *OutcomesGroup) background(tc bufrunner.TestCase) error {
	wg := tc.BackgroundWaitGroup()
	wg.Add(1)
	go func() {
		defer wg.Done()
		// Output written before Done is still attributed to this test case.
		time.Sleep(10 * time.Millisecond)
		fmt.Println("background work finished")
		<-tc.Context().Done()
	}()

	tc.SuiteCleanup(func() {
		logrus.Info("Suite cleanup registered by the background test case")
	})

	return nil
}

// FixtureGroup shows a group with setup and cleanup around its test cases.
type FixtureGroup struct {
	bufrunner.BaseGroup
	dir string
}

func (g *FixtureGroup) Name() string {
	return "fixture"
}

func (g *FixtureGroup) Tags() []string {
	return []string{"example", "fixture"}
}

func (g *FixtureGroup) Setup(ctx bufrunner.SetupCleanupContext) error {
	dir, err := os.MkdirTemp("", "bufrunner-example-")
	if err != nil {
		return fmt.Errorf("failed to create fixture directory: %w", err)
	}

	ctx.Logger().Debugf("Created fixture directory '%s'", dir)
	g.dir = dir
	return nil
}

func (g *FixtureGroup) Cleanup(ctx bufrunner.SetupCleanupContext) error {
	ctx.Logger().Debugf("Removing fixture directory '%s'", g.dir)
	return os.RemoveAll(g.dir)
}

func (g *FixtureGroup) RegisterTestCases(r bufrunner.TestRegistrar) error {
	r.RegisterTestCase("write-file", g.writeFile)
	r.RegisterTestCase("read-missing-file", g.readMissingFile)
	return nil
}

func (g *FixtureGroup) writeFile(tc bufrunner.TestCase) error {
	path := g.dir + "/data.txt"
	fmt.Printf("writing %s\n", path)
	return os.WriteFile(path, []byte("data"), 0o644)
}

func (g *FixtureGroup) readMissingFile(tc bufrunner.TestCase) error {
	_, err := os.ReadFile(g.dir + "/missing.txt")
	if err != nil {
		fmt.Fprintf(os.Stderr, "read failed: %v\n", err)
		tc.FailFromError(err)
	}
	return nil
}
