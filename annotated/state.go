package annotated

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// role is the effective part the previous line played, which can differ
// from its lineKind (a line comment inside a code run acts as code).
type role int

const (
	roleNone role = iota
	roleCode
	roleLineDoc
	roleBlockDoc
	roleBlank
	roleMarker
)

// cleanRange is the clean-code span of a section's code, recorded at
// emission time.
type cleanRange struct {
	first int
	last  int
}

// state is the section builder's scan state. Each transition method
// handles one line kind; nothing outside the struct is mutated.
type state struct {
	closes map[string][]int
	refs   RefMap
	policy DuplicateRefPolicy

	sections []Section
	ranges   []cleanRange
	diags    []Diagnostic
	clean    []string

	comment   []string
	code      []string
	codeClean []int

	refID string
	// ScopeEnd is the line of the CLOSE governing refID, or 0 when the
	// section falls back to the blank-line heuristic.
	scopeEnd int

	commentStart int
	codeStart    int
	// BlockStart and blockLine locate the current comment run inside
	// comment, so a nested REF can carry it into a new section.
	blockStart int
	blockLine  int

	prev            role
	inBlock         bool
	gapAfterComment bool
	splitOnComment  bool
}

func newState(lines []classifiedLine, policy DuplicateRefPolicy, splitOnComment bool) *state {
	closes := make(map[string][]int)

	for i, l := range lines {
		if l.kind == kindCloseMarker {
			closes[l.refID] = append(closes[l.refID], i+1)
		}
	}

	return &state{
		closes:         closes,
		refs:           make(RefMap),
		policy:         policy,
		splitOnComment: splitOnComment,
	}
}

// step applies the transition for line n (1-based).
func (s *state) step(n int, l classifiedLine) {
	switch l.kind {
	case kindCloseMarker:
		s.onClose(n, l.refID)
	case kindBlockOpen, kindBlockSingle:
		s.onBlockOpen(n, l)
	case kindBlockBody:
		s.onBlockBody(n, l)
	case kindBlockClose:
		s.onBlockClose(n, l)
	case kindLineRef:
		s.onLineRef(n, l)
	case kindLineComment:
		s.onLineComment(n, l)
	case kindBlank:
		s.onBlank(n)
	case kindCode:
		s.onCode(n, l.raw)
	}
}

// finish flushes whatever is pending at end of input. A non-empty input
// made only of blank lines still yields its one comment-less section.
func (s *state) finish(lastLine int) {
	if s.inBlock {
		s.diag(lastLine, DiagnosticUnterminatedComment, s.refID,
			"block comment is not closed before end of input")
	}

	code := strings.Join(s.code, "\n")
	if len(s.sections) == 0 && s.commentStart == 0 && code != "" && isBlankText(code) {
		s.sections = append(s.sections, Section{
			StartLine: s.codeStart,
			EndLine:   lastLine,
			Code:      code,
		})
		s.ranges = append(s.ranges, cleanRange{})
		s.reset()

		return
	}

	s.emit(lastLine)
}

func (s *state) scoped() bool {
	return s.scopeEnd != 0
}

func (s *state) onClose(n int, id string) {
	s.prev = roleMarker

	if s.refID == id && s.scoped() {
		s.emit(n - 1)

		return
	}

	s.diag(n, DiagnosticOrphanClose, id, fmt.Sprintf("CLOSE %q has no open REF", id))
}

func (s *state) onBlockOpen(n int, l classifiedLine) {
	s.beginComment(n)

	s.inBlock = l.kind == kindBlockOpen
	s.prev = roleBlockDoc

	s.absorb(n, l)
}

func (s *state) onBlockBody(n int, l classifiedLine) {
	s.absorb(n, l)
}

func (s *state) onBlockClose(n int, l classifiedLine) {
	s.absorb(n, l)

	s.inBlock = false
	s.prev = roleBlockDoc
}

// absorb adds one comment line's payload: a REF directive is captured,
// anything else becomes documentation text.
func (s *state) absorb(n int, l classifiedLine) {
	if l.refID != "" {
		s.captureRef(n, l.refID)

		return
	}

	if l.kind == kindBlockOpen || l.kind == kindBlockSingle {
		if l.text == "" {
			return
		}
	}

	s.comment = append(s.comment, l.text)
}

func (s *state) onLineRef(n int, l classifiedLine) {
	if s.prev != roleLineDoc {
		s.beginComment(n)
	}

	s.prev = roleLineDoc
	s.captureRef(n, l.refID)
}

func (s *state) onLineComment(n int, l classifiedLine) {
	if s.inCodeRun() {
		s.onCode(n, l.raw)

		return
	}

	if s.prev != roleLineDoc {
		s.beginComment(n)
	}

	s.prev = roleLineDoc
	s.comment = append(s.comment, l.text)
}

func (s *state) onBlank(n int) {
	s.clean = append(s.clean, "")
	s.prev = roleBlank

	switch {
	case s.codeStart != 0 && s.commentStart != 0 && !s.scoped():
		s.emit(n - 1)
	case s.codeStart != 0:
		s.appendCode(n, "")
	case s.commentStart != 0:
		s.gapAfterComment = true
	default:
		s.appendCode(n, "")
	}
}

func (s *state) onCode(n int, text string) {
	s.clean = append(s.clean, text)
	s.prev = roleCode
	s.gapAfterComment = false

	s.appendCode(n, text)
}

// appendCode adds a line that was just appended to clean to the pending
// section code.
func (s *state) appendCode(n int, text string) {
	if s.codeStart == 0 {
		s.codeStart = n
	}

	s.code = append(s.code, text)
	s.codeClean = append(s.codeClean, len(s.clean))
}

// inCodeRun reports whether a // line belongs to the pending code. Any
// non-blank pending code claims it; with splitOnComment only a line
// directly below code does.
func (s *state) inCodeRun() bool {
	if s.splitOnComment {
		return s.prev == roleCode
	}

	return slices.ContainsFunc(s.code, func(line string) bool {
		return !isBlankText(line)
	})
}

// beginComment prepares for a new comment run starting at line n. A bare
// code run is flushed first as a comment-less section; pending
// documentation keeps accumulating until a blank line or CLOSE ends it.
func (s *state) beginComment(n int) {
	if s.flushBeforeComment() {
		s.emit(n - 1)
	}

	if s.commentStart == 0 {
		s.commentStart = n
	} else if len(s.comment) > 0 && (s.gapAfterComment || s.codeStart != 0) {
		s.comment = append(s.comment, "")
	}

	s.gapAfterComment = false
	s.blockStart = len(s.comment)
	s.blockLine = n
}

// flushBeforeComment reports whether the pending run ends where a new
// comment run starts. With splitOnComment, documented code and a comment
// run followed by a blank line end there too. CLOSE-scoped sections never
// end early.
func (s *state) flushBeforeComment() bool {
	switch {
	case s.scoped():
		return false
	case s.codeStart != 0:
		return s.commentStart == 0 || s.splitOnComment
	default:
		return s.splitOnComment && s.commentStart != 0 && s.gapAfterComment
	}
}

// captureRef records a REF directive found at line n.
func (s *state) captureRef(n int, id string) {
	if s.refID != "" && s.refID != id {
		if s.codeStart != 0 {
			s.diag(n, DiagnosticNestedRef, s.refID,
				fmt.Sprintf("REF %q ends section %q before its CLOSE", id, s.refID))

			carry := slices.Clone(s.comment[s.blockStart:])
			runStart := s.blockLine
			s.comment = s.comment[:s.blockStart]

			s.emit(runStart - 1)

			s.comment = carry
			s.commentStart = runStart
			s.blockLine = runStart
		} else {
			slog.Debug("REF replaced within one comment run",
				slog.String("previous", s.refID),
				slog.String("ref", id),
				slog.Int("line", n),
			)
		}
	}

	s.refID = id
	s.scopeEnd = 0

	for _, line := range s.closes[id] {
		if line > n {
			s.scopeEnd = line

			break
		}
	}
}

// emit closes the pending section at original line end and resets the
// accumulators. A section with no documentation, no REF and only blank
// code is dropped.
func (s *state) emit(end int) {
	defer s.reset()

	if s.commentStart == 0 && s.codeStart == 0 {
		return
	}

	comment := joinComment(s.comment)
	code := strings.Join(s.code, "\n")

	if comment == "" && s.refID == "" && isBlankText(code) {
		return
	}

	start := s.commentStart
	if start == 0 || (s.codeStart != 0 && s.codeStart < start) {
		start = s.codeStart
	}

	sec := Section{
		StartLine: start,
		EndLine:   max(end, start),
		Comment:   comment,
		Code:      code,
		RefID:     s.refID,
	}

	var rng cleanRange
	if len(s.codeClean) > 0 {
		rng = cleanRange{first: s.codeClean[0], last: s.codeClean[len(s.codeClean)-1]}
	}

	idx := len(s.sections)
	s.sections = append(s.sections, sec)
	s.ranges = append(s.ranges, rng)

	if s.refID != "" {
		s.register(s.refID, idx, start)
	}
}

// register records id in the RefMap according to the duplicate policy.
func (s *state) register(id string, idx, line int) {
	prev, dup := s.refs[id]
	if !dup {
		s.refs[id] = idx

		return
	}

	s.diag(line, DiagnosticDuplicateRef, id,
		fmt.Sprintf("REF %q already addresses section %d", id, prev))

	if s.policy == DuplicateRefsFirst {
		return
	}

	s.refs[id] = idx
}

func (s *state) reset() {
	s.comment = nil
	s.code = nil
	s.codeClean = nil
	s.refID = ""
	s.scopeEnd = 0
	s.commentStart = 0
	s.codeStart = 0
	s.blockStart = 0
	s.blockLine = 0
	s.gapAfterComment = false
}

func (s *state) diag(line int, kind DiagnosticKind, id, msg string) {
	slog.Debug("annotation fallback",
		slog.Int("line", line),
		slog.String("kind", string(kind)),
		slog.String("ref", id),
	)

	s.diags = append(s.diags, Diagnostic{
		Line:    line,
		Kind:    kind,
		RefID:   id,
		Message: msg,
	})
}

// joinComment joins documentation lines, dropping leading and trailing
// blank lines.
func joinComment(lines []string) string {
	first, last := 0, len(lines)
	for first < last && isBlankText(lines[first]) {
		first++
	}

	for last > first && isBlankText(lines[last-1]) {
		last--
	}

	return strings.Join(lines[first:last], "\n")
}
