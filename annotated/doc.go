// Package annotated splits a hand-annotated source file into sections of
// documentation and the code it explains.
//
// A section is a run of documentation comments followed by the code below
// it. Each [Section] carries two coordinate systems: its line range in the
// original file, and its line range in the "clean" view of the file, which
// is the same text with documentation comments removed but comments
// embedded in code kept.
//
// Parsing never fails. Hand-written annotations cannot be trusted to be
// well formed, so every odd case has a fallback: sections close on blank
// lines when no marker says otherwise, unknown CLOSE markers are ignored,
// and clean-code ranges that cannot be matched default to the top of the
// file. Fallbacks are reported in [ParseResult.Diagnostics] and logged at
// debug level via [log/slog]; callers should treat a missing [RefMap] entry
// as "no deep link available" rather than as an error.
//
// # Markers
//
// A REF marker gives a section a stable id that callers can link to. It is
// written as the content of a comment line:
//
//	/**
//	 * REF: setup-client
//	 * Build the client once and share it.
//	 */
//
//	// REF: setup-client
//
// JSX comments ({/* REF: id */}) are accepted too. Ids are letters, digits
// and hyphens. The marker line itself never appears in the section comment.
//
// A CLOSE marker ends the section of the same id at an explicit line, on a
// line of its own:
//
//	// CLOSE: setup-client
//	{/* CLOSE: setup-client */}
//
// A REF with a later CLOSE is "scoped": its section ignores the blank-line
// heuristic, absorbs interior comments into its documentation, and ends on
// the line before the CLOSE. The CLOSE line is dropped from both the
// section and the clean code.
//
// # Line Handling
//
// [Parser.Parse] makes one forward pass over the classified lines:
//
//   - Block comments (/** */, /* */ and their JSX forms) and standalone //
//     lines are documentation. A // line met while code is pending is
//     kept as code.
//   - Starting a documentation run flushes pending bare code as its own
//     section, so undocumented code between documented blocks becomes a
//     comment-less section. Documentation that already has code keeps
//     accumulating.
//   - A blank line closes a section once it has both documentation and
//     code, unless a CLOSE scopes it. The CLOSE ends a scoped section.
//   - Whatever is pending at end of input becomes the last section.
//
// A file without comments therefore yields exactly one section whose code
// is the whole input. Empty input yields no sections.
//
// [WithSplitOnComment] ends the pending section at every new comment run
// instead, and keeps a // line as code only directly below a code line.
//
// # Clean-Code Ranges
//
// By default clean-code ranges are reconciled after the scan by content
// matching: the first non-blank line of each section's code is looked up
// in the clean text. This is approximate when a line repeats earlier in the
// file. [WithExactLines] records each code line's clean position during
// the scan instead, which is exact. Sections without code get the range
// [1, 1].
//
// # Duplicate Ids
//
// When several sections carry the same REF id, the last one wins the
// [RefMap] entry. [WithDuplicateRefs] with [DuplicateRefsFirst] keeps the
// first instead. Either way a [DiagnosticDuplicateRef] is reported.
//
// # Caching
//
// [Cache] keeps recent results keyed by a BLAKE3 digest of the source, for
// callers such as file watchers that reparse often. Results are immutable
// and shared.
//
// # Basic Usage
//
//	res := annotated.Parse(src)
//	for _, sec := range res.Sections {
//	    fmt.Println(sec.StartLine, sec.EndLine, sec.RefID)
//	}
//
//	if sec, ok := res.Section("setup-client"); ok {
//	    html := commentmd.Render(sec.Comment)
//	}
package annotated
