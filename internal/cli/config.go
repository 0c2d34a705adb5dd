package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// YAMLConfig is a kong.ConfigurationLoader reading flag defaults from YAML.
//
// Flags are looked up by name, with dashes replaced by underscores, first at
// the top level of the document and then under the name of the command they
// belong to:
//
//	verbosity: debug
//	run:
//	  order: random
//	  fail_fast: true
func YAMLConfig(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	err := yaml.NewDecoder(r).Decode(&values)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	var f kong.ResolverFunc = func(context *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		name := strings.ReplaceAll(flag.Name, "-", "_")

		if raw, ok := values[name]; ok {
			return flagValue(raw), nil
		}

		if parent != nil && parent.Command != nil {
			if section, ok := values[parent.Command.Name].(map[string]any); ok {
				if raw, ok := section[name]; ok {
					return flagValue(raw), nil
				}
			}
		}

		return nil, nil
	}

	return f, nil
}

// Kong parses resolved values like command line tokens, so everything is
// handed over as a string and lists are joined with kong's default separator.
func flagValue(raw any) any {
	switch v := raw.(type) {
	case nil:
		return nil
	case []any:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = fmt.Sprint(item)
		}
		return strings.Join(items, ",")
	default:
		return fmt.Sprint(v)
	}
}
