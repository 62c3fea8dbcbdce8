package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// loadYAML is a [kong.ConfigurationLoader] that parses config files written
// in YAML.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(loadYAML, "/path/to/config.yaml")
//
// The YAML document is converted as follows:
//   - The top-level mapping holds flag values keyed by flag name
//   - Nested mappings join their keys with hyphens, so a "log" mapping
//     holding "level" sets --log-level
//   - Keys may use underscores in place of hyphens
//   - Sequences become comma-separated lists
//
// Example config file:
//
//	max-token: 120
//	log:
//	  level: debug
//	  pretty: false
//
// This configuration will be applied to Kong flags:
//
//	--max-token=120
//	--log-level=debug
//	--log-pretty=false
//
// Command-line flags override config file values. An empty file is an empty
// configuration.
func loadYAML(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrConfig.Wrap(err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, ErrConfig.Wrap(err)
	}

	cfg := make(config)
	cfg.flatten("", doc)

	return cfg, nil
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// flatten stores each leaf of m under its hyphen-joined key path.
func (r config) flatten(prefix string, m map[string]any) {
	for key, val := range m {
		name := strings.ReplaceAll(key, "_", "-")
		if prefix != "" {
			name = prefix + "-" + name
		}

		if sub, ok := val.(map[string]any); ok {
			r.flatten(name, sub)

			continue
		}

		r[name] = configValue(val)
	}
}

// configValue converts a decoded YAML scalar or sequence into a form kong
// can parse. Kong requires numbers as strings for parsing.
func configValue(val any) any {
	switch v := val.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		elems := make([]string, len(v))
		for i, e := range v {
			elems[i] = fmt.Sprint(configValue(e))
		}

		return strings.Join(elems, ",")
	default:
		return v
	}
}

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed; unknown keys are ignored
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}
