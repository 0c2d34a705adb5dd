package runner

import (
	"errors"
	"fmt"
	"runtime/debug"
	"slices"
	"sync"

	"bufrunner/internal/capture"
	"bufrunner/internal/runerror"
	"bufrunner/internal/testmgr"
	"bufrunner/pkg/bufrunner/core"
	"bufrunner/pkg/bufrunner/utils"
)

type Options struct {
	// Run test cases with the process streams untouched.
	NoCapture bool

	// Forward captured output to the console while it is being captured.
	Watch bool

	// Maximum number of bytes kept per stream and test case.
	MaxCaptureBytes int

	Order Order
	Seed  int64

	// Mark every remaining test case as not run after the first failure or
	// error.
	FailFast bool

	TestFilter *utils.StringFilter

	// Extra arguments parsed into the groups' Args() structs.
	Args []string
}

func (o Options) captureOptions() capture.Options {
	return capture.Options{
		Tee:      o.Watch,
		MaxBytes: o.MaxCaptureBytes,
	}
}

// Run executes the test cases of the given groups one after the other and
// returns the test manager holding their results. Failing test cases never
// stop the run unless FailFast is set. An error is returned only when the run
// could not be set up.
func Run(suite core.SuiteContext, groups []core.TestGroup, opts Options) (*testmgr.TestManager, error) {
	if opts.Order == "" {
		opts.Order = OrderDeclared
	}

	if err := opts.Order.validate(); err != nil {
		return nil, err
	}

	if err := parseExtraArguments(suite, opts.Args, groups); err != nil {
		return nil, err
	}

	testMgr, err := testmgr.NewTestManager(suite, groups, testmgr.Options{
		TeeLogs:    opts.Watch,
		TestFilter: opts.TestFilter,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create test manager: %w", err)
	}

	if opts.Order != OrderDeclared {
		suite.Logger().Infof("Running test cases in %s order (seed %d)", opts.Order, opts.Seed)
	}
	applyOrder(testMgr.Groups(), opts.Order, opts.Seed)

	executeTestCases(suite, testMgr, opts)

	return testMgr, nil
}

func executeTestCases(suite core.SuiteContext, testManager *testmgr.TestManager, opts Options) {
	cleanupFuncs := make([]func(), 0)

	bail := false

	for _, group := range testManager.Groups() {
		if bail {
			for _, testCase := range group.TestCases {
				testCase.MarkNotRun("stopped after a previous failure")
			}
			continue
		}

		ctx := newSetupCleanupContext(suite, group.Group)
		setupCleanup, hasSetupCleanup := group.Group.(core.SetupCleanup)

		// If the group implements the SetupCleanup interface, we call the
		// setup method before running its test cases.
		if hasSetupCleanup {
			output, err := runCaptured(opts, func() error { return setupCleanup.Setup(ctx) })
			if err != nil {
				err = newSetupError(group.Group, err)
				suite.Logger().Error(err)
				for _, testCase := range group.TestCases {
					testCase.SetOutput(output)
					testCase.MarkError(err)
				}
				bail = opts.FailFast
				continue
			}
		}

		for _, testCase := range group.TestCases {
			if bail {
				testCase.MarkNotRun("stopped after a previous failure")
				continue
			}

			suite.Logger().Infof("%s (started)", testCase.FullName())
			// Run the test case.
			executeTestCase(testCase, opts)

			// Grab and store the cleanup functions for this test case.
			cleanupFuncs = append(cleanupFuncs, testCase.SuiteCleanupList()...)

			bail = opts.FailFast && testCase.Status().IsBad()
			suite.Logger().Infof("%s %s", testCase.FullName(), testCase.Status().ColorString())
		}

		// If the group implements the SetupCleanup interface, we call the
		// cleanup method after running its test cases.
		if hasSetupCleanup {
			output, err := runCaptured(opts, func() error { return setupCleanup.Cleanup(ctx) })
			if err != nil {
				err = newCleanupError(group.Group, err)
				suite.Logger().Error(err)
				testManager.RecordGroupError(group.Group.Name(), "cleanup", err, output)
			}
		}
	}

	// If we have any cleanup functions, run them in reverse order.
	slices.Reverse(cleanupFuncs)
	for _, f := range cleanupFuncs {
		err := runCatchPanic(func() error {
			f()
			return nil
		})
		if err != nil {
			suite.Logger().WithError(err).Error("Suite cleanup function failed")
		}
	}
}

// executeTestCase runs a single test case with both process streams captured,
// then closes it with whatever outcome it produced.
func executeTestCase(testCase *testmgr.TestCase, opts Options) {
	var err error

	run := func() {
		var wg sync.WaitGroup

		// Run the test case in a separate goroutine so that runtime.Goexit()
		// can be called to stop the test execution.
		wg.Add(1)
		go func() {
			defer wg.Done()
			err = runCatchPanic(testCase.Execute)
		}()

		// Wait for the goroutine to finish, then for any background work the
		// test case started, so all of its output lands in this capture.
		wg.Wait()
		testCase.Finish()
	}

	if opts.NoCapture {
		run()
	} else {
		output, captureErr := capture.Run(opts.captureOptions(), run)
		if captureErr != nil {
			testCase.MarkError(fmt.Errorf("failed to capture output: %w", captureErr))
			return
		}
		testCase.SetOutput(output)
	}

	var panicErr runerror.PanicError
	if errors.As(err, &panicErr) {
		testCase.MarkError(err)
	} else if err != nil {
		testCase.MarkReturnedError(err)
	} else if testCase.Status().IsRunning() {
		testCase.Pass()
	}
}

// runCaptured runs f like a test case body: panics become errors and, unless
// capture is disabled, the process streams are captured meanwhile.
func runCaptured(opts Options, f func() error) (capture.Output, error) {
	if opts.NoCapture {
		return capture.Output{}, runCatchPanic(f)
	}

	var err error
	output, captureErr := capture.Run(opts.captureOptions(), func() {
		err = runCatchPanic(f)
	})
	if captureErr != nil {
		return output, fmt.Errorf("failed to capture output: %w", captureErr)
	}

	return output, err
}

func runCatchPanic(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = runerror.NewPanicError(r, debug.Stack())
		}
	}()

	return f()
}
