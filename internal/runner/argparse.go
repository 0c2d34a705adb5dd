package runner

import (
	"fmt"

	"bufrunner/pkg/bufrunner/core"

	"github.com/alecthomas/kong"
)

// parseExtraArguments parses the arguments given after '--' into the
// kong-annotated structs of the groups that declare one. Each group's flags
// are namespaced with the group name, so '--<group>.<flag>' only ever reaches
// that group.
func parseExtraArguments(
	suite core.SuiteContext,
	argList []string,
	groups []core.TestGroup,
) error {
	// If the first argument is '--', we skip it
	var startArg = 0
	if len(argList) != 0 && argList[0] == "--" {
		startArg = 1
	}

	actualArgs := argList[startArg:]

	options := []kong.Option{
		kong.Name(suite.Name()),
		kong.Description(fmt.Sprintf("Group arguments in the '%s' suite.", suite.Name())),
		kong.ConfigureHelp(kong.HelpOptions{NoAppSummary: true}),
	}

	argumented := 0
	for _, group := range groups {
		if group.Args() == nil {
			continue
		}

		argumented++
		options = append(options, kong.Embed(
			group.Args(),
			fmt.Sprintf(`prefix:"%s."`, group.Name()),
		))
	}

	if argumented == 0 && len(actualArgs) == 0 {
		return nil
	}

	// Create a new parser
	parser, err := kong.New(&struct{}{}, options...)
	if err != nil {
		return fmt.Errorf("failed to create parser for group arguments: %w", err)
	}

	suite.Logger().Debugf("Parsing extra arguments for %d groups: %v", argumented, actualArgs)

	_, err = parser.Parse(actualArgs)
	if err != nil {
		return fmt.Errorf("failed to parse group arguments: %w", err)
	}

	return nil
}
