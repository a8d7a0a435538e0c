package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve returns a [kong.ConfigurationLoader] that reads flag values from
// the named section of a YAML config file.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve("config"), "/path/to/config.yaml")
//
// The YAML document is converted as follows:
//   - Only mappings under the named top-level section are considered
//   - Flag names with hyphens (e.g., "log-level") may use underscores
//     in the config file (e.g., "log_level")
//   - Numbers are converted to strings for Kong's flag parsing
//   - Sequences are applied to repeatable flags element by element
//
// Example config file:
//
//	config:
//	  log_level: debug
//	  log_template: default
//	  log_caller: true
//
// This configuration will be applied to Kong flags:
//
//	--log-level=debug
//	--log-template=default
//	--log-caller=true
//
// Command-line flags override config file values.
func resolve(name string) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		var root map[string]any

		err := yaml.NewDecoder(r).Decode(&root)
		if err != nil {
			// Unreadable config - return empty config
			return config{}, nil
		}

		section, ok := root[name].(map[string]any)
		if !ok {
			// Section not found - return empty config
			return config{}, nil
		}

		return config(sectionToMap(section)), nil
	}
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - the config was already decoded successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but YAML keys
	// may use underscores. Try both forms.
	name := flag.Name
	underscoreName := strings.ReplaceAll(name, "-", "_")

	// Look up the value in our config
	if value, ok := r[name]; ok {
		return value, nil
	}

	// Try underscore variant
	if value, ok := r[underscoreName]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// sectionToMap converts one decoded YAML section to a flat flag-value map.
func sectionToMap(section map[string]any) map[string]any {
	result := make(map[string]any, len(section))

	for key, value := range section {
		result[key] = flagValue(value)
	}

	return result
}

// flagValue converts one decoded YAML value for Kong's flag parsing.
// Kong requires numbers as strings; sequence elements are converted
// recursively.
func flagValue(value any) any {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v)

	case int64:
		return strconv.FormatInt(v, 10)

	case uint64:
		return strconv.FormatUint(v, 10)

	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)

	case []any:
		seq := make([]any, len(v))
		for i, elem := range v {
			seq[i] = flagValue(elem)
		}

		return seq

	default:
		return v
	}
}
