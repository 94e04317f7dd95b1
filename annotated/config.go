package annotated

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for parser configuration, allowing callers to
// customize flag names while keeping sensible defaults.
type Flags struct {
	ExactLines     string
	SplitOnComment string
	DuplicateRefs  string
	CacheSize      string
}

// Config holds CLI flag values for parser configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewParser] or [Config.NewCache] to
// build the parser.
type Config struct {
	Flags          Flags
	DuplicateRefs  string
	CacheSize      int
	ExactLines     bool
	SplitOnComment bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		ExactLines:     "exact-lines",
		SplitOnComment: "split-on-comment",
		DuplicateRefs:  "duplicate-refs",
		CacheSize:      "cache-size",
	}

	return &Config{
		Flags:         f,
		DuplicateRefs: string(DuplicateRefsLast),
		CacheSize:     DefaultCacheSize,
	}
}

// RegisterFlags adds parser flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.BoolVar(&c.ExactLines, c.Flags.ExactLines, c.ExactLines,
		"track clean-code line ranges during the scan instead of matching content")
	flags.BoolVar(&c.SplitOnComment, c.Flags.SplitOnComment, c.SplitOnComment,
		"start a new section at every comment run, even without a blank line")
	flags.StringVar(&c.DuplicateRefs, c.Flags.DuplicateRefs, c.DuplicateRefs,
		fmt.Sprintf("which section a repeated REF id addresses, one of: %v", AllDuplicateRefPolicies()))
	flags.IntVar(&c.CacheSize, c.Flags.CacheSize, c.CacheSize,
		"number of parse results kept in memory")
}

// RegisterCompletions registers shell completions for parser flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	policies := make([]string, 0, len(AllDuplicateRefPolicies()))
	for _, p := range AllDuplicateRefPolicies() {
		policies = append(policies, string(p))
	}

	err := cmd.RegisterFlagCompletionFunc(c.Flags.DuplicateRefs,
		cobra.FixedCompletions(policies, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.DuplicateRefs, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.CacheSize,
		cobra.NoFileCompletions)
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.CacheSize, err)
	}

	return nil
}

// NewParser creates a [Parser] using this [Config].
func (c *Config) NewParser() (*Parser, error) {
	policy, err := ParseDuplicateRefPolicy(c.DuplicateRefs)
	if err != nil {
		return nil, err
	}

	return NewParser(
		WithExactLines(c.ExactLines),
		WithSplitOnComment(c.SplitOnComment),
		WithDuplicateRefs(policy),
	), nil
}

// NewCache creates a [Cache] around a parser built from this [Config].
func (c *Config) NewCache() (*Cache, error) {
	p, err := c.NewParser()
	if err != nil {
		return nil, err
	}

	return NewCache(p, c.CacheSize)
}
