package bufrunner

import (
	"bufrunner/pkg/bufrunner/core"
	"bufrunner/pkg/bufrunner/suite"
)

type TestGroup = core.TestGroup
type BaseGroup = core.BaseGroup

type SetupCleanup = core.SetupCleanup
type SetupCleanupContext = core.SetupCleanupContext

type TestRegistrar = core.TestRegistrar
type TestCase = core.TestCase
type TestCaseFunction = core.TestCaseFunction

type LoggerProvider = core.LoggerProvider

// Creates a new suite with the given name.
func CreateSuite(name string) *suite.BufferedSuite {
	return suite.CreateSuite(name)
}
