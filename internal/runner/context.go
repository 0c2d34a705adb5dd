package runner

import "bufrunner/pkg/bufrunner/core"

type setupCleanupContext struct {
	core.LoggerProvider
	group core.TestGroup
}

func (c *setupCleanupContext) Name() string {
	return c.group.Name()
}

func newSetupCleanupContext(suite core.SuiteContext, group core.TestGroup) *setupCleanupContext {
	return &setupCleanupContext{
		LoggerProvider: suite,
		group:          group,
	}
}
