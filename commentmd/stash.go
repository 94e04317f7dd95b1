package commentmd

import (
	"regexp"
	"strconv"
	"strings"
)

// Parked fragments are replaced by placeholders built from Unicode Private
// Use Area characters, which never occur in documentation text and pass
// through every regular expression stage untouched.
const (
	placeholderStart = "\uE000" // U+E000: Private Use Area start
	placeholderEnd   = "\uE001" // U+E001: Private Use Area end
)

var (
	placeholderRegex     = regexp.MustCompile(placeholderStart + `(\d+)` + placeholderEnd)
	placeholderLineRegex = regexp.MustCompile(`^\s*` + placeholderStart + `\d+` + placeholderEnd + `\s*$`)
)

// stash holds finished HTML fragments until the end of a render.
type stash struct {
	items []string
}

// park stores html and returns its placeholder. Placeholders already inside
// html are expanded first, so a single expand pass restores everything.
func (s *stash) park(html string) string {
	s.items = append(s.items, s.expand(html))

	return placeholderStart + strconv.Itoa(len(s.items)-1) + placeholderEnd
}

// expand replaces every placeholder in text with its parked fragment.
func (s *stash) expand(text string) string {
	if !strings.Contains(text, placeholderStart) {
		return text
	}

	return placeholderRegex.ReplaceAllStringFunc(text, func(m string) string {
		n, err := strconv.Atoi(m[len(placeholderStart) : len(m)-len(placeholderEnd)])
		if err != nil || n >= len(s.items) {
			return m
		}

		return s.items[n]
	})
}

// isParked reports whether line holds nothing but one placeholder.
func isParked(line string) bool {
	return placeholderLineRegex.MatchString(line)
}
