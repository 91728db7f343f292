package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/slicerini/ini"
)

// resolve returns a [kong.ConfigurationLoader] that reads flag values from
// the named section of an INI settings file.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve("slicerini"), "/path/to/config.ini")
//
// Keys name flags with hyphens (log-level) or underscores (log_level).
// Multiple values (a, b) fill slice flags, and keys without a value are
// ignored. The file is written by the init command:
//
//	[slicerini]
//	log-level = debug
//	log-pretty = false
//	file = /home/me/.config/PrusaSlicer/PrusaSlicer.ini
//
// Command-line flags override settings file values. A file that does not
// parse, or lacks the section, contributes nothing.
func resolve(section string) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}

		doc, err := ini.Parse(string(data))
		if err != nil {
			// Parse error - return empty config
			return config{}, nil
		}

		sec, ok := doc.ToMap().Section(section)
		if !ok {
			return config{}, nil
		}

		cfg := make(config, sec.Len())
		for key, v := range sec.All() {
			cfg[key] = v
		}

		return cfg, nil
	}
}

// config implements [kong.Resolver] for INI settings sections.
type config map[string]ini.Values

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - the config was already parsed successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	v, ok := r[flag.Name]
	if !ok {
		v, ok = r[strings.ReplaceAll(flag.Name, "-", "_")]
	}

	// Not found - return nil to let Kong use defaults
	if !ok || v.IsNone() {
		return nil, nil
	}

	if len(v) > 1 {
		return strings.Join(v, ","), nil
	}

	if flag.IsBool() {
		if b, err := strconv.ParseBool(v[0]); err == nil {
			return b, nil
		}
	}

	return v[0], nil
}
