package core

type TestRegistrant interface {
	Named
	RegisterTestCases(r TestRegistrar) error
}

type TestCaseFunction = func(TestCase) error

type TestRegistrar interface {
	// Register a test case with the given name. The name is used to identify
	// the test case in the test suite. The name should be unique within the
	// group. Test names MUST be accepted by the regular expression
	// `^[a-zA-Z0-9_-]+$`.
	RegisterTestCase(name string, runner TestCaseFunction)
}
