package core

// TestGroup is a named collection of test cases, the unit a suite is built
// from. Groups that also implement SetupCleanup get Setup called once before
// their first test case and Cleanup once after their last one.
type TestGroup interface {
	Argumented
	TestRegistrant

	// Tags associated with the group, the implementation should ensure that
	// the tags are unique.
	Tags() []string
}

type SetupCleanupContext interface {
	LoggerProvider
	Named
}

type SetupCleanup interface {
	/// Setup before running the group's test cases
	Setup(SetupCleanupContext) error

	/// Cleanup after running the group's test cases
	Cleanup(SetupCleanupContext) error
}

// BaseGroup is a partial implementation of the TestGroup interface. It is
// meant to be used for composition when not all methods of the TestGroup
// interface are needed. It does NOT provide a default implementation for the
// Name() and RegisterTestCases() methods.
type BaseGroup struct{}

func (g BaseGroup) Tags() []string {
	return nil
}

func (g BaseGroup) Args() any {
	return nil
}
