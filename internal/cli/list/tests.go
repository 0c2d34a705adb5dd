package list

import (
	"fmt"

	"bufrunner/internal/collector"
	"bufrunner/pkg/bufrunner/core"
)

type ListTestsCmd struct {
	Group string `arg:"" optional:"" help:"Only list the test cases of this group"`
}

func (cmd *ListTestsCmd) Run(suite core.SuiteContext) error {
	log := suite.Logger()

	groups := suite.Groups()
	if cmd.Group != "" {
		group, err := suite.Group(cmd.Group)
		if err != nil {
			return err
		}
		groups = []core.TestGroup{group}
	}

	collected := 0
	for _, group := range groups {
		testCases, err := collector.CollectTestCases(group)
		if err != nil {
			return fmt.Errorf("failed to collect test cases of group '%s': %w", group.Name(), err)
		}

		for _, testCase := range testCases {
			collected++
			fmt.Printf("%s/%s\n", group.Name(), testCase.Name)
		}
	}

	log.Infof("Found %d test cases", collected)
	return nil
}
