package cli

import (
	"os"

	"bufrunner/internal/cli/list"
	"bufrunner/internal/cli/run"

	"github.com/alecthomas/kong"
	log "github.com/sirupsen/logrus"
)

// Environment variable naming the configuration file to load defaults from.
const ConfigEnvVar = "BUFRUNNER_CONFIG"

type GlobalOpts struct {
	Verbosity   log.Level       `short:"v" help:"Set log level" default:"info"`
	AzureDevops bool            `short:"a" help:"Enable Azure DevOps integration" env:"TF_BUILD"`
	Config      kong.ConfigFlag `short:"c" help:"YAML file to load default flag values from"`
}

type cli struct {
	Global GlobalOpts   `embed:""`
	List   list.ListCmd `cmd:"" help:"List groups, tags and test cases"`
	Run    run.RunCmd   `cmd:"" help:"Run test cases, showing output only for failures"`
}

func ParseCommandLine(name string) (*kong.Context, GlobalOpts) {
	// Force display help if no arguments are provided
	if len(os.Args) < 2 {
		os.Args = append(os.Args, "--help")
	}

	cli := cli{}
	ctx := kong.Parse(&cli,
		kong.Name(name),
		kong.Description("Runs test cases with standard output and standard error buffered per test case."),
		kong.Configuration(YAMLConfig, configPaths(name)...),
	)
	return ctx, cli.Global
}

// configPaths returns the configuration files read on startup. Missing files
// are ignored.
func configPaths(name string) []string {
	if path := os.Getenv(ConfigEnvVar); path != "" {
		return []string{path}
	}

	return []string{
		name + ".yaml",
		"~/.config/" + name + ".yaml",
	}
}
