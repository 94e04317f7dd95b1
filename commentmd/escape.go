package commentmd

import (
	"regexp"
	"strings"
)

// entityRegex matches a character reference at the start of a string.
var entityRegex = regexp.MustCompile(`^&(?:[A-Za-z][A-Za-z0-9]{1,31}|#[0-9]{1,7}|#[xX][0-9A-Fa-f]{1,6});`)

// EscapeHTML escapes & < > " and ' for use in HTML text. An ampersand that
// already starts a character reference (&amp;, &#39;, &#x27; ...) is kept,
// so escaping escaped text is a no-op.
func EscapeHTML(s string) string {
	if !strings.ContainsAny(s, `&<>"'`) {
		return s
	}

	var b strings.Builder

	b.Grow(len(s) + len(s)/8)

	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '&':
			if m := entityRegex.FindString(s[i:]); m != "" {
				b.WriteString(m)

				i += len(m) - 1

				continue
			}

			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&#39;")
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}
