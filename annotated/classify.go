package annotated

import (
	"regexp"
	"strings"
)

var (
	// RefDirectiveRegex matches the stripped text of a REF marker line.
	refDirectiveRegex = regexp.MustCompile(`^REF:\s*([A-Za-z0-9-]+)\s*$`)

	// CloseMarkerRegex matches a whole CLOSE marker line in any of its
	// accepted forms: "// CLOSE: id", "{/* CLOSE: id */}" and
	// "/* CLOSE: id */".
	closeMarkerRegex = regexp.MustCompile(
		`^\s*(?://\s*CLOSE:\s*([A-Za-z0-9-]+)|\{?/\*+\s*CLOSE:\s*([A-Za-z0-9-]+)\s*\*/\}?)\s*$`,
	)
)

// lineKind is the role a single source line plays.
type lineKind int

const (
	kindCode lineKind = iota
	kindBlank
	kindCloseMarker
	kindBlockOpen
	kindBlockSingle
	kindBlockBody
	kindBlockClose
	kindLineComment
	kindLineRef
)

func (k lineKind) String() string {
	switch k {
	case kindCode:
		return "code"
	case kindBlank:
		return "blank"
	case kindCloseMarker:
		return "close-marker"
	case kindBlockOpen:
		return "block-open"
	case kindBlockSingle:
		return "block-single"
	case kindBlockBody:
		return "block-body"
	case kindBlockClose:
		return "block-close"
	case kindLineComment:
		return "line-comment"
	case kindLineRef:
		return "line-ref"
	}

	return "unknown"
}

// classifiedLine is one input line with its kind and extracted payload.
type classifiedLine struct {
	// Raw is the line without its trailing carriage return.
	raw string
	// Text is the documentation text with comment decoration removed. It is
	// empty for code, blank, and marker lines.
	text string
	// RefID is set for REF directives (on any comment kind) and CLOSE
	// markers.
	refID string
	kind  lineKind
}

// classifyLines splits src into lines and classifies each one, tracking
// whether a block comment is open across lines.
func classifyLines(src string) []classifiedLine {
	rawLines := strings.Split(src, "\n")
	out := make([]classifiedLine, 0, len(rawLines))
	inBlock := false

	for _, raw := range rawLines {
		c := classifyLine(strings.TrimSuffix(raw, "\r"), inBlock)

		switch c.kind {
		case kindBlockOpen:
			inBlock = true
		case kindBlockClose:
			inBlock = false
		}

		out = append(out, c)
	}

	return out
}

// classifyLine determines the kind of a single line. The inBlock flag says
// whether a multi-line block comment is currently open.
func classifyLine(line string, inBlock bool) classifiedLine {
	if inBlock {
		return classifyBlockLine(line)
	}

	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return classifiedLine{kind: kindBlank, raw: line}
	}

	if m := closeMarkerRegex.FindStringSubmatch(line); m != nil {
		id := m[1]
		if id == "" {
			id = m[2]
		}

		return classifiedLine{kind: kindCloseMarker, raw: line, refID: id}
	}

	if strings.HasPrefix(trimmed, "//") {
		text := strings.TrimPrefix(trimmed, "//")
		text = strings.TrimRight(strings.TrimPrefix(text, " "), " \t")

		if m := refDirectiveRegex.FindStringSubmatch(strings.TrimSpace(text)); m != nil {
			return classifiedLine{kind: kindLineRef, raw: line, refID: m[1]}
		}

		return classifiedLine{kind: kindLineComment, raw: line, text: text}
	}

	if strings.HasPrefix(trimmed, "/*") || strings.HasPrefix(trimmed, "{/*") {
		return classifyBlockOpen(line, trimmed)
	}

	return classifiedLine{kind: kindCode, raw: line}
}

// classifyBlockOpen handles a line starting a block comment. A line whose
// comment closes and is followed by more code is treated as code.
func classifyBlockOpen(line, trimmed string) classifiedLine {
	rest := strings.TrimPrefix(trimmed, "{")
	rest = strings.TrimPrefix(rest, "/*")

	kind := kindBlockOpen
	body := rest

	if idx := strings.Index(rest, "*/"); idx >= 0 {
		tail := strings.TrimSpace(rest[idx+2:])
		if tail != "" && tail != "}" {
			return classifiedLine{kind: kindCode, raw: line}
		}

		kind = kindBlockSingle
		body = rest[:idx]
	}

	body = strings.TrimSpace(strings.TrimLeft(body, "*"))

	return withDirective(classifiedLine{kind: kind, raw: line, text: body})
}

// classifyBlockLine handles a line inside an open block comment.
func classifyBlockLine(line string) classifiedLine {
	trimmed := strings.TrimSpace(line)

	if idx := strings.Index(trimmed, "*/"); idx >= 0 {
		return withDirective(classifiedLine{
			kind: kindBlockClose,
			raw:  line,
			text: stripDecoration(trimmed[:idx]),
		})
	}

	return withDirective(classifiedLine{
		kind: kindBlockBody,
		raw:  line,
		text: stripDecoration(line),
	})
}

// withDirective moves a REF directive found in the comment text into the
// refID field, leaving the text empty.
func withDirective(c classifiedLine) classifiedLine {
	if m := refDirectiveRegex.FindStringSubmatch(strings.TrimSpace(c.text)); m != nil {
		c.refID = m[1]
		c.text = ""
	}

	return c
}

// stripDecoration removes the leading whitespace, one "*" and one following
// space from a block comment line. Indentation beyond that is kept so that
// indented and fenced content survives.
func stripDecoration(s string) string {
	s = strings.TrimLeft(s, " \t")
	if strings.HasPrefix(s, "*") {
		s = strings.TrimPrefix(s[1:], " ")
	}

	return strings.TrimRight(s, " \t")
}

// isBlankText reports whether s contains only whitespace.
func isBlankText(s string) bool {
	return strings.TrimSpace(s) == ""
}
