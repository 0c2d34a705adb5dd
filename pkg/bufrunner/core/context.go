package core

import "context"

type SuiteContext interface {
	Named

	LoggerProvider

	// Returns a list of all test groups
	Groups() []TestGroup

	// Returns a test group by name, or an error if no group with that name
	// was added to the suite.
	Group(name string) (TestGroup, error)

	// Returns whether the suite has Azure DevOps integration enabled
	AzureDevops() bool

	// Returns a context for the suite.
	Context() context.Context
}
