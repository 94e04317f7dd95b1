package commentmd

import (
	"regexp"
	"strconv"
)

var (
	headerRegex     = regexp.MustCompile(`^\s*(#{1,4})\s+(.*?)\s*$`)
	ruleRegex       = regexp.MustCompile(`^\s*(?:(?:-\s*){3,}|(?:\*\s*){3,}|(?:_\s*){3,})$`)
	blockquoteRegex = regexp.MustCompile(`^\s*>\s?(.*)$`)
	listItemRegex   = regexp.MustCompile(`^\s*(?:[-*+]|\d+\.)\s+(.*)$`)
)

// parkBlockElements converts single-line block elements and parks each.
// Rules are checked before list items, so "* * *" is a rule.
func parkBlockElements(lines []string, st *stash) []string {
	out := make([]string, len(lines))

	for i, line := range lines {
		out[i] = line

		if isParked(line) {
			continue
		}

		if html, ok := blockElement(line, st); ok {
			out[i] = st.park(html)
		}
	}

	return out
}

func blockElement(line string, st *stash) (string, bool) {
	if m := headerRegex.FindStringSubmatch(line); m != nil {
		tag := "h" + strconv.Itoa(len(m[1]))

		return "<" + tag + ">" + inline(m[2], st) + "</" + tag + ">", true
	}

	if ruleRegex.MatchString(line) {
		return "<hr>", true
	}

	if m := blockquoteRegex.FindStringSubmatch(line); m != nil {
		return "<blockquote>" + inline(m[1], st) + "</blockquote>", true
	}

	if m := listItemRegex.FindStringSubmatch(line); m != nil {
		return "<li>" + inline(m[1], st) + "</li>", true
	}

	return "", false
}
