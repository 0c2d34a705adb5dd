package list

import (
	"fmt"
	"slices"

	"bufrunner/pkg/bufrunner/core"
)

type ListTagsCmd struct{}

func (cmd *ListTagsCmd) Run(suite core.SuiteContext) error {
	log := suite.Logger()
	log.Info("Listing all tags")

	tagSet := make(map[string]bool)
	for _, group := range suite.Groups() {
		for _, tag := range group.Tags() {
			tagSet[tag] = true
		}
	}

	tags := make([]string, 0, len(tagSet))
	for tag := range tagSet {
		tags = append(tags, tag)
	}
	slices.Sort(tags)

	for _, tag := range tags {
		fmt.Println(tag)
	}
	return nil
}
