package commentmd

import "strings"

// paragraphs groups runs of plain lines into <p> elements at blank lines
// and parked blocks. Blank lines are dropped from the output.
func paragraphs(lines []string, st *stash) []string {
	var (
		out []string
		run []string
	)

	flush := func() {
		if len(run) == 0 {
			return
		}

		text := strings.Join(run, "\n")
		out = append(out, "<p>"+inline(text, st)+"</p>")
		run = nil
	}

	for _, line := range lines {
		switch {
		case strings.TrimSpace(line) == "":
			flush()
		case isParked(line):
			flush()

			out = append(out, strings.TrimSpace(line))
		default:
			run = append(run, strings.TrimSpace(line))
		}
	}

	flush()

	return out
}
