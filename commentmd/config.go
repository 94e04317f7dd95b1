package commentmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for renderer configuration.
type Flags struct {
	Highlight      string
	HighlightStyle string
}

// Config holds CLI flag values for renderer configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewRenderer] to build the renderer.
type Config struct {
	Flags          Flags
	HighlightStyle string
	Highlight      bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	return &Config{
		Flags: Flags{
			Highlight:      "highlight",
			HighlightStyle: "highlight-style",
		},
		HighlightStyle: DefaultHighlightStyle,
	}
}

// RegisterFlags adds renderer flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.BoolVar(&c.Highlight, c.Flags.Highlight, c.Highlight,
		"syntax highlight fenced code with CSS classes")
	flags.StringVar(&c.HighlightStyle, c.Flags.HighlightStyle, c.HighlightStyle,
		"chroma style for highlighted code")
}

// RegisterCompletions registers shell completions for renderer flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.HighlightStyle,
		cobra.FixedCompletions(HighlightStyles(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.HighlightStyle, err)
	}

	return nil
}

// NewHighlighter returns the configured [ChromaHighlighter], or nil when
// highlighting is off.
func (c *Config) NewHighlighter() (*ChromaHighlighter, error) {
	if !c.Highlight {
		return nil, nil //nolint:nilnil // Highlighting is optional.
	}

	return NewChromaHighlighter(c.HighlightStyle)
}

// NewRenderer creates a [Renderer] using this [Config].
func (c *Config) NewRenderer() (*Renderer, error) {
	h, err := c.NewHighlighter()
	if err != nil {
		return nil, err
	}

	if h == nil {
		return NewRenderer(), nil
	}

	return NewRenderer(WithHighlighter(h)), nil
}
