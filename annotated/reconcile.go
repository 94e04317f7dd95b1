package annotated

import "strings"

// reconcile fills the clean-code ranges of sections by content matching:
// the first non-blank code line of each section is looked up in clean and
// the range is laid out from there. It is approximate by nature; a line
// that also appears earlier in clean matches the earlier copy.
func reconcile(sections []Section, clean []string) {
	trimmed := make([]string, len(clean))
	for i, l := range clean {
		trimmed[i] = strings.TrimSpace(l)
	}

	for i := range sections {
		sec := &sections[i]

		if !sec.HasCode() {
			sec.StartLineInCleanCode, sec.EndLineInCleanCode = 1, 1

			continue
		}

		lines := strings.Split(sec.Code, "\n")

		offset := 0
		for offset < len(lines) && isBlankText(lines[offset]) {
			offset++
		}

		target := strings.TrimSpace(lines[offset])
		start := 1

		for j, l := range trimmed {
			if l == target {
				start = max(j+1-offset, 1)

				break
			}
		}

		sec.StartLineInCleanCode = start
		sec.EndLineInCleanCode = start + len(lines) - 1
	}
}

// reconcileExact fills the clean-code ranges of sections from positions
// recorded while the sections were built.
func reconcileExact(sections []Section, ranges []cleanRange) {
	for i := range sections {
		sec := &sections[i]

		if !sec.HasCode() || ranges[i].first == 0 {
			sec.StartLineInCleanCode, sec.EndLineInCleanCode = 1, 1

			continue
		}

		sec.StartLineInCleanCode = ranges[i].first
		sec.EndLineInCleanCode = ranges[i].last
	}
}
