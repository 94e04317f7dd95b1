package commentmd

import (
	"regexp"
	"strings"
)

var (
	refLineRegex   = regexp.MustCompile(`^\s*REF:\s*[A-Za-z0-9-]+\s*$`)
	closeLineRegex = regexp.MustCompile(`^\s*CLOSE:\s*[A-Za-z0-9-]+\s*$`)
	audioLineRegex = regexp.MustCompile(`^\s*AUDIO:\s*\S+\s*$`)

	// AudioTokenRegex matches an inline audio reference such as
	// "[audio:intro-3]".
	audioTokenRegex = regexp.MustCompile(`\[audio:[^\]\n]*\]`)
)

// stripAnnotations removes markers that address tooling rather than the
// reader: a REF line heading the text, CLOSE lines, AUDIO lines and inline
// audio tokens.
func stripAnnotations(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	leading := true

	for _, line := range lines {
		switch {
		case leading && refLineRegex.MatchString(line):
			leading = false

			continue
		case closeLineRegex.MatchString(line), audioLineRegex.MatchString(line):
			continue
		}

		if strings.TrimSpace(line) != "" {
			leading = false
		}

		out = append(out, audioTokenRegex.ReplaceAllString(line, ""))
	}

	return strings.Join(out, "\n")
}
