package commentmd

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidOption indicates an invalid renderer setting.
var ErrInvalidOption = errors.New("invalid option")

var crlfOrCR = regexp.MustCompile(`\r\n?`)

// Renderer converts the documentation text of a section to an HTML
// fragment.
//
// A Renderer holds only settings; one may be shared between goroutines.
type Renderer struct {
	highlighter Highlighter
}

// Option configures a [Renderer].
type Option func(*Renderer)

// NewRenderer creates a [Renderer] with the given options.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// WithHighlighter sets a [Highlighter] for fenced code. Fences whose
// language the highlighter declines fall back to escaped plain text.
func WithHighlighter(h Highlighter) Option {
	return func(r *Renderer) {
		r.highlighter = h
	}
}

// Render converts text using default settings. See [Renderer.Render].
func Render(text string) string {
	return NewRenderer().Render(text)
}

// Render runs the rendering pipeline over text:
//
//  1. Line endings are normalized and annotation markers are stripped.
//  2. Fenced code and existing block-level HTML are parked.
//  3. Pipe tables are converted.
//  4. Headers, rules, quotes and list items are converted.
//  5. Remaining lines are grouped into paragraphs, with inline markup.
//
// Parked output is restored last, so no stage sees the output of an
// earlier one. Rendering rendered output returns it unchanged.
func (r *Renderer) Render(text string) string {
	text = crlfOrCR.ReplaceAllString(text, "\n")
	text = stripAnnotations(text)

	st := &stash{}
	lines := strings.Split(text, "\n")

	lines = r.parkBlocks(lines, st)
	lines = parkTables(lines, st)
	lines = parkBlockElements(lines, st)
	lines = paragraphs(lines, st)

	return st.expand(strings.Join(lines, "\n"))
}
