package commentmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// Highlighter turns the body of a fenced code block into HTML. The result
// is placed inside <pre><code> as is, so it must be escaped already.
// Highlight returns false to fall back to plain escaped text.
type Highlighter interface {
	Highlight(code, lang string) (string, bool)
}

// ChromaHighlighter highlights code with chroma, emitting CSS classes
// rather than inline styles. Pair the output with [ChromaHighlighter.CSS].
type ChromaHighlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewChromaHighlighter creates a [ChromaHighlighter] for the named chroma
// style.
func NewChromaHighlighter(style string) (*ChromaHighlighter, error) {
	s, ok := styles.Registry[style]
	if !ok {
		return nil, fmt.Errorf("%w: unknown highlight style %q", ErrInvalidOption, style)
	}

	return &ChromaHighlighter{
		style: s,
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
		),
	}, nil
}

// Highlight implements [Highlighter]. Languages chroma does not know are
// declined.
func (h *ChromaHighlighter) Highlight(code, lang string) (string, bool) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", false
	}

	it, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		slog.Debug("tokenising fence",
			slog.String("lang", lang),
			slog.Any("err", err),
		)

		return "", false
	}

	var b strings.Builder

	err = h.formatter.Format(&b, h.style, it)
	if err != nil {
		slog.Debug("formatting fence",
			slog.String("lang", lang),
			slog.Any("err", err),
		)

		return "", false
	}

	return b.String(), true
}

// CSS returns the stylesheet for the classes emitted by
// [ChromaHighlighter.Highlight].
func (h *ChromaHighlighter) CSS() (string, error) {
	var b strings.Builder

	err := h.formatter.WriteCSS(&b, h.style)
	if err != nil {
		return "", fmt.Errorf("writing highlight css: %w", err)
	}

	return b.String(), nil
}

// HighlightStyles returns the names of the available chroma styles.
func HighlightStyles() []string {
	return styles.Names()
}
