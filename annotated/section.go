package annotated

// Section pairs a run of documentation with the code it explains.
//
// StartLine and EndLine address the original file. StartLineInCleanCode and
// EndLineInCleanCode address [ParseResult.CodeWithoutComments]. All four are
// 1-based and inclusive.
type Section struct {
	Comment              string `json:"comment"              yaml:"comment"`
	Code                 string `json:"code"                 yaml:"code"`
	RefID                string `json:"refId,omitempty"      yaml:"refId,omitempty"`
	StartLine            int    `json:"startLine"            yaml:"startLine"`
	EndLine              int    `json:"endLine"              yaml:"endLine"`
	StartLineInCleanCode int    `json:"startLineInCleanCode" yaml:"startLineInCleanCode"`
	EndLineInCleanCode   int    `json:"endLineInCleanCode"   yaml:"endLineInCleanCode"`
}

// HasCode reports whether the section carries any non-whitespace code.
func (s Section) HasCode() bool {
	return !isBlankText(s.Code)
}

// RefMap maps a REF marker identifier to its index in
// [ParseResult.Sections].
type RefMap map[string]int

// ParseResult is the output of a single parse. It is built once from an
// immutable input and must be treated as read-only; a changed source is
// parsed again from scratch.
type ParseResult struct {
	RefMap              RefMap       `json:"refMap"                yaml:"refMap"`
	OriginalCode        string       `json:"originalCode"          yaml:"originalCode"`
	CodeWithoutComments string       `json:"codeWithoutComments"   yaml:"codeWithoutComments"`
	Sections            []Section    `json:"sections"              yaml:"sections"`
	Diagnostics         []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// Section returns the section addressed by refID. The second return value
// is false when the id is unknown, which callers should treat as "no deep
// link available".
func (r *ParseResult) Section(refID string) (Section, bool) {
	idx, ok := r.RefMap[refID]
	if !ok || idx < 0 || idx >= len(r.Sections) {
		return Section{}, false
	}

	return r.Sections[idx], true
}

// SectionAt returns the index of the section containing the given original
// line, or -1 when the line falls between sections.
func (r *ParseResult) SectionAt(line int) int {
	for i, s := range r.Sections {
		if line >= s.StartLine && line <= s.EndLine {
			return i
		}

		if s.StartLine > line {
			break
		}
	}

	return -1
}
