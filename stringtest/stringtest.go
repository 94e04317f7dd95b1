// Package stringtest builds multi-line test fixtures.
package stringtest

import "strings"

// Input dedents a raw string literal so fixtures can be indented with the
// surrounding test code.
//
// One leading newline and one trailing whitespace-only line are removed,
// then the longest whitespace prefix shared by all non-blank lines is
// stripped. Whitespace-only lines become empty.
//
// Example:
//
//	src := stringtest.Input(`
//		/**
//		 * Hello
//		 */
//		const x = 1
//	`) // -> "/**\n * Hello\n */\nconst x = 1"
func Input(s string) string {
	lines := strings.Split(s, "\n")

	if len(lines) > 1 && lines[0] == "" {
		lines = lines[1:]
	}

	if len(lines) > 1 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	prefix, found := "", false

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if !found {
			prefix, found = indent, true

			continue
		}

		prefix = commonPrefix(prefix, indent)
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""

			continue
		}

		lines[i] = strings.TrimPrefix(line, prefix)
	}

	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))

	i := 0
	for i < n && a[i] == b[i] {
		i++
	}

	return a[:i]
}

// JoinLF joins multiple strings with LF line endings.
// Use this to construct expected test output with explicit line endings.
//
// Example:
//
//	want := stringtest.JoinLF(
//		"line1",
//		"line2",
//	) // -> "line1\nline2"
func JoinLF(ss ...string) string {
	return strings.Join(ss, "\n")
}

// JoinCRLF joins multiple strings with CRLF line endings, for inputs
// written on Windows.
func JoinCRLF(ss ...string) string {
	return strings.Join(ss, "\r\n")
}
