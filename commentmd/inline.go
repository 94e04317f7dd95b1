package commentmd

import (
	"regexp"
	"strings"
)

var (
	codeSpanRegex   = regexp.MustCompile("`([^`\n]+)`")
	boldStarRegex   = regexp.MustCompile(`\*\*([^*\n]+?)\*\*`)
	boldUnderRegex  = regexp.MustCompile(`__([^_\n]+?)__`)
	linkRegex       = regexp.MustCompile(`\[([^\]\n]+)\]\(([^()\s]+)\)`)
	linkQuoteEscape = strings.NewReplacer(`"`, "%22")
)

// inline applies inline markup in order: code spans (parked, content kept
// verbatim), bold, italic, then links.
func inline(text string, st *stash) string {
	text = codeSpanRegex.ReplaceAllStringFunc(text, func(m string) string {
		return st.park("<code>" + m[1:len(m)-1] + "</code>")
	})

	text = boldStarRegex.ReplaceAllString(text, "<strong>$1</strong>")
	text = boldUnderRegex.ReplaceAllString(text, "<strong>$1</strong>")

	text = emphasize(text, '*')
	text = emphasize(text, '_')

	return linkRegex.ReplaceAllStringFunc(text, func(m string) string {
		sub := linkRegex.FindStringSubmatch(m)

		return `<a href="` + linkQuoteEscape.Replace(sub[2]) + `">` + sub[1] + "</a>"
	})
}

// emphasize wraps marker-delimited runs in <em>. A run opens on a marker
// not preceded by a word character and followed by a non-space, and closes
// on a marker preceded by a non-space and not followed by a word
// character. Runs do not cross lines.
func emphasize(text string, marker byte) string {
	if strings.IndexByte(text, marker) < 0 {
		return text
	}

	var b strings.Builder

	for i := 0; i < len(text); i++ {
		if text[i] == marker && canOpen(text, i, marker) {
			if j := closeIndex(text, i+1, marker); j > 0 {
				b.WriteString("<em>" + text[i+1:j] + "</em>")
				i = j

				continue
			}
		}

		b.WriteByte(text[i])
	}

	return b.String()
}

func canOpen(text string, i int, marker byte) bool {
	if i > 0 && (isWordByte(text[i-1]) || text[i-1] == marker) {
		return false
	}

	return i+1 < len(text) && !isSpaceByte(text[i+1]) && text[i+1] != marker
}

// closeIndex returns the index of the marker closing a run whose content
// starts at from, or -1.
func closeIndex(text string, from int, marker byte) int {
	for j := from + 1; j < len(text); j++ {
		switch {
		case text[j] == '\n':
			return -1
		case text[j] != marker || isSpaceByte(text[j-1]):
			continue
		case j+1 == len(text):
			return j
		case !isWordByte(text[j+1]) && text[j+1] != marker:
			return j
		}
	}

	return -1
}

// isWordByte reports whether c belongs to a word. Bytes of multi-byte
// characters count as word bytes.
func isWordByte(c byte) bool {
	return c == '_' || c >= 0x80 ||
		(c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}
