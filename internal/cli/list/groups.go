package list

import (
	"fmt"

	"bufrunner/pkg/bufrunner/core"
	"bufrunner/pkg/bufrunner/utils"
)

type ListGroupsCmd struct {
	Tags []string `short:"t" name:"tag" help:"Filter groups by tags"`
}

func (cmd *ListGroupsCmd) Run(suite core.SuiteContext) error {
	log := suite.Logger()
	log.Info("Listing groups")

	tagFilter := utils.NewStringFilterFromSlice(cmd.Tags)

	collected := 0
	for _, group := range suite.Groups() {
		log.Tracef("Checking group '%s'", group.Name())

		if !tagFilter.MatchAny(group.Tags()) {
			log.Tracef("Skipping group '%s' because it does not match any tags", group.Name())
			continue
		}

		collected++
		fmt.Println(group.Name())
	}

	log.Infof("Selected %d groups", collected)
	return nil
}
