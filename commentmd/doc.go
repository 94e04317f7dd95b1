// Package commentmd renders the small markdown dialect used in source
// documentation comments to an HTML fragment.
//
// The dialect is deliberately bounded: fenced code, pipe tables, headers up
// to h4, rules, block quotes, list items, code spans, bold, italic and
// links. List items render as bare <li> elements without a surrounding list.
// Table body rows carry class="odd" or class="even" for striping.
//
// Rendering is an ordered pipeline of line transforms rather than a parse
// tree. Finished fragments are parked behind placeholders so that later
// stages cannot rewrite them. Only fenced code is HTML-escaped, and
// escaping keeps existing character references, so rendering is stable:
//
//	out := commentmd.Render(sec.Comment)
//	commentmd.Render(out) == out // true
//
// Annotation markers meant for tooling (a leading "REF: id" line, "CLOSE:
// id" lines, "AUDIO: ref" lines and inline "[audio:ref]" tokens) are
// removed before rendering.
//
// Fenced code can be syntax highlighted with [WithHighlighter] and a
// [ChromaHighlighter].
package commentmd
