package annotated

import "fmt"

// DiagnosticKind names a fallback taken while parsing.
type DiagnosticKind string

const (
	// DiagnosticOrphanClose is a CLOSE marker with no open REF of that id.
	DiagnosticOrphanClose DiagnosticKind = "orphan-close"
	// DiagnosticDuplicateRef is a REF id that an earlier section already
	// registered in the [RefMap].
	DiagnosticDuplicateRef DiagnosticKind = "duplicate-ref"
	// DiagnosticNestedRef is a REF that cut a CLOSE-scoped section short.
	DiagnosticNestedRef DiagnosticKind = "nested-ref"
	// DiagnosticUnterminatedComment is a block comment still open at end of
	// input.
	DiagnosticUnterminatedComment DiagnosticKind = "unterminated-comment"
)

// Diagnostic reports a recoverable oddity in the input. Diagnostics never
// change the parse output.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"            yaml:"kind"`
	RefID   string         `json:"refId,omitempty" yaml:"refId,omitempty"`
	Message string         `json:"message"         yaml:"message"`
	Line    int            `json:"line"            yaml:"line"`
}

// String formats the diagnostic as "line N: kind: message".
func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s: %s", d.Line, d.Kind, d.Message)
}
