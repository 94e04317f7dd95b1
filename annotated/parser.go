package annotated

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidOption indicates an invalid parser or cache setting.
var ErrInvalidOption = errors.New("invalid option")

// DuplicateRefPolicy decides which section a REF id addresses when several
// sections carry it.
type DuplicateRefPolicy string

const (
	// DuplicateRefsLast lets the last section carrying an id win.
	DuplicateRefsLast DuplicateRefPolicy = "last"
	// DuplicateRefsFirst keeps the first section carrying an id.
	DuplicateRefsFirst DuplicateRefPolicy = "first"
)

// ParseDuplicateRefPolicy parses a policy name.
func ParseDuplicateRefPolicy(s string) (DuplicateRefPolicy, error) {
	p := DuplicateRefPolicy(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(AllDuplicateRefPolicies(), p) {
		return p, nil
	}

	return "", fmt.Errorf("%w: unknown duplicate ref policy %q", ErrInvalidOption, s)
}

// AllDuplicateRefPolicies returns every accepted policy.
func AllDuplicateRefPolicies() []DuplicateRefPolicy {
	return []DuplicateRefPolicy{DuplicateRefsLast, DuplicateRefsFirst}
}

// Parser splits annotated source into sections.
//
// A Parser holds only settings; [Parser.Parse] keeps all scan state local
// to the call, so one Parser may be shared between goroutines.
type Parser struct {
	duplicateRefs  DuplicateRefPolicy
	exactLines     bool
	splitOnComment bool
}

// Option configures a [Parser].
type Option func(*Parser)

// NewParser creates a [Parser] with the given options.
func NewParser(opts ...Option) *Parser {
	p := &Parser{duplicateRefs: DuplicateRefsLast}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// WithExactLines makes the parser take clean-code ranges from positions
// tracked during the forward pass instead of matching content afterwards.
func WithExactLines(exact bool) Option {
	return func(p *Parser) {
		p.exactLines = exact
	}
}

// WithSplitOnComment makes every new comment run end the pending section,
// even when no blank line separates it from the code above. A // line then
// stays in the code only when it directly follows a code line. By default
// documentation keeps accumulating until a blank line or CLOSE.
func WithSplitOnComment(split bool) Option {
	return func(p *Parser) {
		p.splitOnComment = split
	}
}

// WithDuplicateRefs sets the [DuplicateRefPolicy]. The default is
// [DuplicateRefsLast].
func WithDuplicateRefs(policy DuplicateRefPolicy) Option {
	return func(p *Parser) {
		if policy != "" {
			p.duplicateRefs = policy
		}
	}
}

// Parse splits src using default settings. See [Parser.Parse].
func Parse(src string) *ParseResult {
	return NewParser().Parse(src)
}

// Parse classifies every line of src, builds the ordered sections and
// their [RefMap], then reconciles each section's clean-code range.
// It never fails: malformed markers fall back to heuristics and are
// reported in [ParseResult.Diagnostics].
func (p *Parser) Parse(src string) *ParseResult {
	lines := classifyLines(src)
	st := newState(lines, p.duplicateRefs, p.splitOnComment)

	for i, l := range lines {
		st.step(i+1, l)
	}

	st.finish(len(lines))

	if p.exactLines {
		reconcileExact(st.sections, st.ranges)
	} else {
		reconcile(st.sections, st.clean)
	}

	sections := st.sections
	if sections == nil {
		sections = []Section{}
	}

	return &ParseResult{
		Sections:            sections,
		CodeWithoutComments: strings.Join(st.clean, "\n"),
		OriginalCode:        src,
		RefMap:              st.refs,
		Diagnostics:         st.diags,
	}
}
