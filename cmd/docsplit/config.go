package main

import (
	"bytes"
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/spf13/pflag"
)

// maxConfigSize limits the size of the --config file.
const maxConfigSize = 1 << 20

// fileConfig is the YAML document read by --config. Every field is the
// default for the flag of the same meaning; flags set on the command line
// win.
type fileConfig struct {
	Jobs   *int       `yaml:"jobs"`
	Log    logFile    `yaml:"log"`
	Parser parserFile `yaml:"parser"`
	Render renderFile `yaml:"render"`
}

type logFile struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type parserFile struct {
	ExactLines     *bool  `yaml:"exactLines"`
	SplitOnComment *bool  `yaml:"splitOnComment"`
	CacheSize      *int   `yaml:"cacheSize"`
	DuplicateRefs  string `yaml:"duplicateRefs"`
}

type renderFile struct {
	Highlight      *bool  `yaml:"highlight"`
	HighlightStyle string `yaml:"highlightStyle"`
}

// loadFileConfig reads and strictly decodes the config file at path.
// Unknown keys are errors.
func loadFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Config path from CLI flag is expected.
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errConfig, err)
	}

	if len(data) > maxConfigSize {
		return nil, fmt.Errorf("%w: %s: %d bytes (max %d)", errConfig, path, len(data), maxConfigSize)
	}

	fc := &fileConfig{}
	if len(bytes.TrimSpace(data)) == 0 {
		return fc, nil
	}

	err = yaml.UnmarshalWithOptions(data, fc, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errConfig, path, err)
	}

	return fc, nil
}

// flagValues maps the flag names of a's configs to the values set in the
// file. Fields left out of the file are left out of the map.
func (fc *fileConfig) flagValues(a *app) map[string]string {
	values := make(map[string]string)

	put := func(name, value string) {
		if value != "" {
			values[name] = value
		}
	}

	putBool := func(name string, value *bool) {
		if value != nil {
			values[name] = strconv.FormatBool(*value)
		}
	}

	putInt := func(name string, value *int) {
		if value != nil {
			values[name] = strconv.Itoa(*value)
		}
	}

	putInt("jobs", fc.Jobs)
	put(a.log.Flags.Level, fc.Log.Level)
	put(a.log.Flags.Format, fc.Log.Format)
	putBool(a.parser.Flags.ExactLines, fc.Parser.ExactLines)
	putBool(a.parser.Flags.SplitOnComment, fc.Parser.SplitOnComment)
	putInt(a.parser.Flags.CacheSize, fc.Parser.CacheSize)
	put(a.parser.Flags.DuplicateRefs, fc.Parser.DuplicateRefs)
	putBool(a.render.Flags.Highlight, fc.Render.Highlight)
	put(a.render.Flags.HighlightStyle, fc.Render.HighlightStyle)

	return values
}

// applyFileConfig sets each flag in values that was not given on the
// command line.
func applyFileConfig(flags *pflag.FlagSet, values map[string]string) error {
	for _, name := range slices.Sorted(maps.Keys(values)) {
		f := flags.Lookup(name)
		if f == nil || f.Changed {
			continue
		}

		err := flags.Set(name, values[name])
		if err != nil {
			return fmt.Errorf("%w: %s: %w", errConfig, name, err)
		}
	}

	return nil
}
