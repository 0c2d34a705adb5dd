package list

type ListCmd struct {
	Groups ListGroupsCmd `cmd:"" help:"List available test groups"`
	Tags   ListTagsCmd   `cmd:"" help:"List all tags"`
	Tests  ListTestsCmd  `cmd:"" help:"List the test cases of one or all groups"`
}
