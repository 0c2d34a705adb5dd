// Package testhelpers provides an in-memory suite for exercising the runner
// and the reporter from tests.
package testhelpers

import (
	"bytes"
	"context"
	"fmt"

	"bufrunner/pkg/bufrunner/core"

	"github.com/sirupsen/logrus"
)

type Suite struct {
	name   string
	groups []core.TestGroup
	log    *logrus.Logger
	devops bool

	// Everything logged through the suite logger.
	LogBuffer bytes.Buffer
}

func NewSuite(name string, groups ...core.TestGroup) *Suite {
	s := &Suite{
		name:   name,
		groups: groups,
		log:    logrus.New(),
	}
	s.log.SetOutput(&s.LogBuffer)
	s.log.SetLevel(logrus.TraceLevel)
	s.log.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	return s
}

func (s *Suite) SetAzureDevops(enabled bool) {
	s.devops = enabled
}

func (s *Suite) Name() string {
	return s.name
}

func (s *Suite) Logger() *logrus.Logger {
	return s.log
}

func (s *Suite) Groups() []core.TestGroup {
	return s.groups
}

func (s *Suite) Group(name string) (core.TestGroup, error) {
	for _, group := range s.groups {
		if group.Name() == name {
			return group, nil
		}
	}
	return nil, fmt.Errorf("group '%s' not found", name)
}

func (s *Suite) AzureDevops() bool {
	return s.devops
}

func (s *Suite) Context() context.Context {
	return context.Background()
}

// Group is a test group built from a list of named functions.
type Group struct {
	core.BaseGroup
	GroupName string
	GroupTags []string
	Cases     []Case

	// Optional kong-annotated struct returned by Args.
	GroupArgs any

	// Optional setup and cleanup bodies.
	SetupFunc   func() error
	CleanupFunc func() error
}

type Case struct {
	Name string
	F    core.TestCaseFunction
}

func (g *Group) Name() string {
	return g.GroupName
}

func (g *Group) Tags() []string {
	return g.GroupTags
}

func (g *Group) Args() any {
	return g.GroupArgs
}

func (g *Group) RegisterTestCases(r core.TestRegistrar) error {
	for _, c := range g.Cases {
		r.RegisterTestCase(c.Name, c.F)
	}
	return nil
}

// GroupWithSetup is a Group that also implements core.SetupCleanup.
type GroupWithSetup struct {
	Group
}

func (g *GroupWithSetup) Setup(core.SetupCleanupContext) error {
	if g.SetupFunc == nil {
		return nil
	}
	return g.SetupFunc()
}

func (g *GroupWithSetup) Cleanup(core.SetupCleanupContext) error {
	if g.CleanupFunc == nil {
		return nil
	}
	return g.CleanupFunc()
}
