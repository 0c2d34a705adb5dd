package suite

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"bufrunner/internal/cli"
	"bufrunner/pkg/bufrunner/core"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
)

type BufferedSuite struct {
	name        string
	groups      []core.TestGroup
	ctx         *kong.Context
	Log         *logrus.Logger
	azureDevops bool

	runCtx context.Context
	stop   context.CancelFunc
}

func CreateSuite(name string) *BufferedSuite {
	name = fmt.Sprintf("bufrunner-%s", name)
	ctx, global := cli.ParseCommandLine(name)
	logger := logrus.New()
	logger.SetLevel(global.Verbosity)
	logger.SetFormatter(&logrus.TextFormatter{
		ForceColors: true,
	})

	logger.Infof("Creating suite '%s'", name)

	s := newSuite(name, logger)
	s.ctx = ctx
	s.azureDevops = global.AzureDevops
	return s
}

func newSuite(name string, logger *logrus.Logger) *BufferedSuite {
	return &BufferedSuite{
		name:   name,
		groups: make([]core.TestGroup, 0),
		Log:    logger,
		runCtx: context.Background(),
	}
}

// Run the suite, this never returns.
func (s *BufferedSuite) Run() {
	if s.ctx == nil {
		s.Log.Fatalf("Suite '%s' not initialized", s.name)
	}

	// Interrupting the run cancels the context handed to test cases.
	s.runCtx, s.stop = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer s.stop()

	s.Log.Infof("Running suite '%s' - %d groups collected.", s.name, len(s.groups))
	s.ctx.BindTo(s, (*core.SuiteContext)(nil))
	s.reportExitStatus(s.ctx.Run())
}

// Adds a group to the suite
func (s *BufferedSuite) AddGroup(group core.TestGroup) {
	if err := s.addGroup(group); err != nil {
		s.Log.Fatal(err)
	}
}

func (s *BufferedSuite) addGroup(newGroup core.TestGroup) error {
	if err := core.ValidateEntityName(newGroup.Name(), "group"); err != nil {
		return err
	}

	if slices.ContainsFunc(s.groups, func(group core.TestGroup) bool {
		return group.Name() == newGroup.Name()
	}) {
		return fmt.Errorf("group '%s' already exists", newGroup.Name())
	}

	s.Log.Debugf("Registering group '%s'", newGroup.Name())
	s.Log.Tracef("Tags: %v", newGroup.Tags())
	s.groups = append(s.groups, newGroup)
	return nil
}

// Returns the name of the suite
func (s *BufferedSuite) Name() string {
	return s.name
}

// Returns a list of all groups
func (s *BufferedSuite) Groups() []core.TestGroup {
	return s.groups
}

// Returns a group by name
func (s *BufferedSuite) Group(name string) (core.TestGroup, error) {
	for _, group := range s.groups {
		if group.Name() == name {
			return group, nil
		}
	}

	return nil, fmt.Errorf("group '%s' not found", name)
}

func (s *BufferedSuite) Logger() *logrus.Logger {
	return s.Log
}

func (s *BufferedSuite) AzureDevops() bool {
	return s.azureDevops
}

func (s *BufferedSuite) Context() context.Context {
	return s.runCtx
}
