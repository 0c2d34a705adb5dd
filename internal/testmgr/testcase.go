package testmgr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"runtime"
	"sync"
	"time"

	"bufrunner/internal/capture"
	"bufrunner/internal/runerror"
	"bufrunner/pkg/bufrunner/core"

	"github.com/sirupsen/logrus"
)

type TestCase struct {
	name      string
	group     string
	index     uint
	f         core.TestCaseFunction
	parent    *TestManager
	startTime time.Time
	endTime   time.Time

	// Guards the result fields below; the test function may close the test
	// case from any goroutine it started.
	mu     sync.Mutex
	status TestCaseStatus
	reason string
	err    error
	trace  string

	output    capture.Output
	log       *logrus.Logger
	logBuffer bytes.Buffer

	cleanupFuncs []func()
	ctx          context.Context
	cancel       context.CancelFunc
	background   sync.WaitGroup
}

// Implementer of logrus.Hook interface to tee log messages from the test case
// logger to the suite logger
type testCaseLogTee struct {
	suiteLogger *logrus.Logger
	testCaseId  string
}

func (tee testCaseLogTee) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (tee testCaseLogTee) Fire(entry *logrus.Entry) error {
	// Make a shallow copy so that we can modify the logger pointer
	newEntry := tee.suiteLogger.WithFields(entry.Data)
	newEntry.Caller = entry.Caller
	newEntry.Log(entry.Level, fmt.Sprintf("[%s] > %s", tee.testCaseId, entry.Message))
	return nil
}

func newTestCase(name string, group string, index uint, f core.TestCaseFunction, parent *TestManager) *TestCase {
	ctx, cancel := context.WithCancel(parent.suite.Context())
	tc := &TestCase{
		name:   name,
		group:  group,
		index:  index,
		f:      f,
		parent: parent,
		status: TestCaseStatusRunning,
		log:    logrus.New(),
		ctx:    ctx,
		cancel: cancel,
	}

	tc.log.SetLevel(logrus.TraceLevel)
	tc.log.SetOutput(&tc.logBuffer)
	tc.log.SetFormatter(&logrus.TextFormatter{
		ForceColors:      true,
		DisableTimestamp: false,
	})
	if parent.teeLogs {
		tc.log.AddHook(testCaseLogTee{
			suiteLogger: parent.suite.Logger(),
			testCaseId:  tc.id(),
		})
	}
	tc.log.SetReportCaller(true)

	return tc
}

func (tc *TestCase) id() string {
	return fmt.Sprintf("%04d:%s", tc.index, tc.FullName())
}

func (tc *TestCase) Name() string {
	return tc.name
}

func (tc *TestCase) Group() string {
	return tc.group
}

// FullName returns the name of the test case qualified by its group.
func (tc *TestCase) FullName() string {
	return tc.group + "/" + tc.name
}

func (tc *TestCase) Status() TestCaseStatus {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.status
}

// Reason returns the reason given when the test case was failed or skipped.
func (tc *TestCase) Reason() string {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.reason
}

// Err returns the error the test case was closed with, if any.
func (tc *TestCase) Err() error {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.err
}

// Trace returns where the test case failed: the caller location for explicit
// failures, or the goroutine stack for panics.
func (tc *TestCase) Trace() string {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.trace
}

func (tc *TestCase) LogLines() []string {
	if tc.logBuffer.Len() == 0 {
		return nil
	}

	rawLines := bytes.Split(bytes.TrimRight(tc.logBuffer.Bytes(), "\n"), []byte("\n"))
	lines := make([]string, len(rawLines))
	for i, line := range rawLines {
		lines[i] = string(line)
	}

	return lines
}

// Output returns the standard output and standard error captured while the
// test case was running.
func (tc *TestCase) Output() capture.Output {
	return tc.output
}

// SetOutput attaches the captured streams to the test case. Called by the
// runner once the capture has been stopped.
func (tc *TestCase) SetOutput(output capture.Output) {
	tc.output = output
}

// Execute runs the test case function. It must be called from a dedicated
// goroutine: closing the test case with a non-passing status from within the
// function ends that goroutine.
func (tc *TestCase) Execute() error {
	tc.mu.Lock()
	tc.startTime = time.Now()
	tc.mu.Unlock()

	return tc.f(tc)
}

// Finish cancels the test case context and waits for the background wait
// group.
func (tc *TestCase) Finish() {
	tc.cancel()
	tc.background.Wait()
}

func (tc *TestCase) close(status TestCaseStatus, reason string, err error, trace string) {
	tc.mu.Lock()
	if tc.status != TestCaseStatusRunning {
		previous := tc.status
		tc.mu.Unlock()
		tc.parent.suite.
			Logger().
			Warnf(
				"Attempted to close test case '%s' with status '%s', but it was already closed with status '%s'. Ignoring.",
				tc.FullName(),
				status.String(),
				previous.String(),
			)
		return
	}

	if status == TestCaseStatusRunning {
		tc.mu.Unlock()
		panic("cannot close test case with status running")
	}

	tc.status = status
	tc.reason = reason
	tc.err = err
	tc.trace = trace
	tc.endTime = time.Now()
	tc.mu.Unlock()

	// Log the status to the test case logger
	tc.log.SetReportCaller(false)
	localEntry := logrus.NewEntry(tc.log)

	if reason != "" {
		localEntry = localEntry.WithField("reason", reason)
	}

	if err != nil {
		localEntry = localEntry.WithError(err)
	}

	localEntry.Log(status.logLevel(), status.String())

	// Close this logger
	tc.log.SetOutput(io.Discard)

	// Log the status to the suite logger
	tc.parent.suite.Logger().
		WithField("testCase", tc.FullName()).
		WithField("status", status.String()).
		Debugf("%s: %s", tc.FullName(), status.String())
}

func (tc *TestCase) Logger() *logrus.Logger {
	return tc.log
}

func (tc *TestCase) Fail(reason string) {
	tc.close(TestCaseStatusFailed, reason, nil, callerLocation(2))
	tc.stopTestExecution()
}

func (tc *TestCase) FailFromError(err error) {
	tc.close(TestCaseStatusFailed, "", err, callerLocation(2))
	tc.stopTestExecution()
}

func (tc *TestCase) Pass() {
	tc.close(TestCaseStatusPassed, "", nil, "")
}

func (tc *TestCase) Error(err error) {
	tc.close(TestCaseStatusError, "", err, callerLocation(2))
	tc.stopTestExecution()
}

func (tc *TestCase) Skip(reason string) {
	tc.close(TestCaseStatusSkipped, reason, nil, "")
	tc.stopTestExecution()
}

func (tc *TestCase) SkipAndContinue(reason string) {
	tc.close(TestCaseStatusSkipped, reason, nil, "")
}

// MarkError closes the test case with an error caught by the runner: a
// returned error, a panic or a failed group setup.
func (tc *TestCase) MarkError(err error) {
	var trace string
	var pe runerror.PanicError
	if errors.As(err, &pe) {
		trace = string(pe.Stack)
	}
	tc.close(TestCaseStatusError, "", err, trace)
}

// MarkReturnedError closes the test case with the error returned by its
// function. The trace points at that function since no stack is left to
// record.
func (tc *TestCase) MarkReturnedError(err error) {
	tc.close(TestCaseStatusError, "", err, functionLocation(tc.f))
}

// MarkNotRun closes a test case that was never started.
func (tc *TestCase) MarkNotRun(reason string) {
	tc.close(TestCaseStatusNotRun, reason, nil, "")
}

func (tc *TestCase) RunTime() time.Duration {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if tc.startTime.IsZero() {
		return 0
	}

	if tc.status == TestCaseStatusRunning {
		return time.Since(tc.startTime)
	}

	return tc.endTime.Sub(tc.startTime)
}

func (tc *TestCase) StartTime() time.Time {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.startTime
}

func (tc *TestCase) SuiteCleanup(f func()) {
	tc.cleanupFuncs = append(tc.cleanupFuncs, f)
}

// SuiteCleanupList returns the cleanup functions registered by this test
// case, in registration order.
func (tc *TestCase) SuiteCleanupList() []func() {
	return tc.cleanupFuncs
}

func (tc *TestCase) Context() context.Context {
	return tc.ctx
}

func (tc *TestCase) BackgroundWaitGroup() *sync.WaitGroup {
	return &tc.background
}

// Calls runtime.Goexit() if the test case status is not passed.
// THIS SHOULD ONLY BE CALLED AFTER CLOSING THE TEST CASE!
func (tc *TestCase) stopTestExecution() {
	status := tc.Status()
	if status == TestCaseStatusPassed {
		// A pass should never stop the execution of the test runner!
		return
	}

	if status == TestCaseStatusRunning {
		panic("cannot stop test case execution with status running")
	}

	tc.parent.suite.Logger().Tracef(
		"Stopping execution of [%s] due to test case status '%s'",
		tc.id(),
		status.String(),
	)
	runtime.Goexit()
}

func callerLocation(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", file, line)
}

func functionLocation(f any) string {
	fn := runtime.FuncForPC(reflect.ValueOf(f).Pointer())
	if fn == nil {
		return ""
	}
	file, line := fn.FileLine(fn.Entry())
	return fmt.Sprintf("%s (%s:%d)", fn.Name(), file, line)
}
