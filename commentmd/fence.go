package commentmd

import (
	"log/slog"
	"regexp"
	"strings"
)

var (
	fenceOpenRegex = regexp.MustCompile("^\\s*```\\s*([^`\\s]*)[^`]*$")
	fenceLangRegex = regexp.MustCompile(`^[A-Za-z0-9_+#.-]+$`)

	// HTMLBlockRegex matches a line opening block-level HTML, which is
	// passed through untouched.
	htmlBlockRegex = regexp.MustCompile(`^\s*<(table|pre|h[1-6]|hr|blockquote|li|p|ul|ol|div)(?:[\s>/]|$)`)
)

// parkBlocks parks fenced code blocks and existing block-level HTML, each
// as a single placeholder line.
func (r *Renderer) parkBlocks(lines []string, st *stash) []string {
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		if m := fenceOpenRegex.FindStringSubmatch(lines[i]); m != nil {
			end := fenceEnd(lines, i+1)
			out = append(out, st.park(r.fence(m[1], lines[i+1:end])))
			i = end

			continue
		}

		if m := htmlBlockRegex.FindStringSubmatch(lines[i]); m != nil {
			end := htmlBlockEnd(lines, i, m[1])
			out = append(out, st.park(strings.Join(lines[i:end+1], "\n")))
			i = end

			continue
		}

		out = append(out, lines[i])
	}

	return out
}

// fenceEnd returns the index of the closing fence at or after from, or
// len(lines) when the fence runs to the end of the text.
func fenceEnd(lines []string, from int) int {
	for j := from; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) == "```" {
			return j
		}
	}

	return len(lines)
}

// htmlBlockEnd returns the index of the line closing the element opened at
// lines[i]. Void elements, and elements whose closing tag never appears,
// span only their first line.
func htmlBlockEnd(lines []string, i int, tag string) int {
	if tag == "hr" {
		return i
	}

	closing := "</" + tag + ">"
	for j := i; j < len(lines); j++ {
		if strings.Contains(lines[j], closing) {
			return j
		}
	}

	return i
}

// fence renders one fenced code block.
func (r *Renderer) fence(lang string, body []string) string {
	code := strings.Join(body, "\n")

	if !fenceLangRegex.MatchString(lang) {
		lang = ""
	}

	open := "<pre><code>"
	if lang != "" {
		open = `<pre><code class="language-` + lang + `">`
	}

	if r.highlighter != nil && lang != "" {
		if html, ok := r.highlighter.Highlight(code, lang); ok {
			return open + strings.TrimSuffix(html, "\n") + "</code></pre>"
		}

		slog.Debug("no highlighting for fence", slog.String("lang", lang))
	}

	return open + EscapeHTML(code) + "</code></pre>"
}
