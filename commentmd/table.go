package commentmd

import (
	"regexp"
	"strings"
)

var tableAlignRegex = regexp.MustCompile(`^\s*\|?\s*:?-+:?\s*(?:\|\s*:?-+:?\s*)*\|?\s*$`)

// parkTables converts pipe tables to HTML and parks each as a single line.
// A table is a header row, an alignment row, and any number of body rows;
// the alignment row is discarded.
func parkTables(lines []string, st *stash) []string {
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		if !isTableHead(lines, i) {
			out = append(out, lines[i])

			continue
		}

		end := i + 2
		for end < len(lines) && isTableRow(lines[end]) {
			end++
		}

		out = append(out, st.park(table(lines[i], lines[i+2:end], st)))
		i = end - 1
	}

	return out
}

func isTableHead(lines []string, i int) bool {
	if i+1 >= len(lines) || !isTableRow(lines[i]) {
		return false
	}

	align := lines[i+1]

	return strings.Contains(align, "|") && tableAlignRegex.MatchString(align)
}

func isTableRow(line string) bool {
	return strings.Contains(line, "|") && strings.TrimSpace(line) != "" && !isParked(line)
}

func table(head string, body []string, st *stash) string {
	var b strings.Builder

	b.WriteString("<table><thead><tr>")

	for _, cell := range splitRow(head) {
		b.WriteString("<th>" + inline(cell, st) + "</th>")
	}

	b.WriteString("</tr></thead><tbody>")

	for n, row := range body {
		class := "odd"
		if n%2 == 1 {
			class = "even"
		}

		b.WriteString(`<tr class="` + class + `">`)

		for _, cell := range splitRow(row) {
			b.WriteString("<td>" + inline(cell, st) + "</td>")
		}

		b.WriteString("</tr>")
	}

	b.WriteString("</tbody></table>")

	return b.String()
}

// splitRow splits a table row into trimmed cells, ignoring the optional
// outer pipes.
func splitRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")

	cells := strings.Split(line, "|")
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}

	return cells
}
