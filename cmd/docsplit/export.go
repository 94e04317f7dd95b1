package main

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"path/filepath"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/spf13/cobra"

	"go.jacobcolvin.com/docsplit/annotated"
	"go.jacobcolvin.com/docsplit/commentmd"
)

const pageCSS = `body { margin: 0; font-family: system-ui, sans-serif; }
table.docsplit { border-collapse: collapse; width: 100%; }
table.docsplit > tbody > tr > td { vertical-align: top; padding: 0.5em 1em; }
td.doc { width: 40%; border-right: 1px solid #d0d7de; }
td.doc table { border-collapse: collapse; }
td.doc th, td.doc td { border: 1px solid #d0d7de; padding: 0.2em 0.5em; }
td.doc tr.even { background: #f6f8fa; }
td.code pre { margin: 0; }
a.anchor { color: #8c959f; text-decoration: none; font-size: 0.8em; }
`

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
{{.CSS}}</style>
</head>
<body>
<table class="docsplit">
<tbody>
{{- range .Sections}}
<tr id="{{.Anchor}}">
<td class="doc"><a class="anchor" href="#{{.Anchor}}">{{.Lines}}</a>
{{.Doc}}</td>
<td class="code"><pre class="chroma"><code>{{if .Highlighted}}{{.Highlighted}}{{else}}{{.Code}}{{end}}</code></pre></td>
</tr>
{{- end}}
</tbody>
</table>
</body>
</html>
`))

type exportPage struct {
	Title    string
	CSS      template.CSS
	Sections []exportSection
}

type exportSection struct {
	Anchor      string
	Lines       string
	Code        string
	Doc         template.HTML
	Highlighted template.HTML
}

func (a *app) exportCommand() *cobra.Command {
	var output, title, lang string

	cmd := &cobra.Command{
		Use:   "export [flags] <file|->",
		Short: "Write a standalone HTML page with documentation beside its code",
		Long: `export renders every section's comment as HTML and places it next to the
section's code. Sections with a REF id get a "ref-<id>" anchor; the rest
are numbered "section-<n>".`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			src, err := a.readInput(args[0])
			if err != nil {
				return err
			}

			if title == "" {
				title = filepath.Base(args[0])
			}

			if lang == "" {
				lang = detectLanguage(args[0])
			}

			h, err := a.render.NewHighlighter()
			if err != nil {
				return err
			}

			out, err := exportHTML(a.cache.Parse(src), h, title, lang)
			if err != nil {
				return err
			}

			return a.writeOutput(output, out)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&title, "title", "", "page title (default the file name)")
	cmd.Flags().StringVar(&lang, "lang", "", "code language for highlighting (default detected from the file name)")

	return cmd
}

// detectLanguage returns the chroma lexer name for path, or "" when no
// lexer matches.
func detectLanguage(path string) string {
	if path == "-" {
		return ""
	}

	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		return ""
	}

	return lexer.Config().Name
}

// exportHTML builds the page for res. A nil highlighter leaves code and
// fences unhighlighted.
func exportHTML(res *annotated.ParseResult, h *commentmd.ChromaHighlighter, title, lang string) ([]byte, error) {
	page := exportPage{
		Title: title,
		CSS:   template.CSS(pageCSS), //nolint:gosec // Constant stylesheet.
	}

	r := commentmd.NewRenderer()

	if h != nil {
		r = commentmd.NewRenderer(commentmd.WithHighlighter(h))

		css, err := h.CSS()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errWriteOutput, err)
		}

		page.CSS += template.CSS(css) //nolint:gosec // Generated by chroma.
	}

	for i, s := range res.Sections {
		sec := exportSection{
			Anchor: sectionAnchor(s, i),
			Lines:  fmt.Sprintf("%d-%d", s.StartLine, s.EndLine),
			Code:   s.Code,
			Doc:    template.HTML(r.Render(s.Comment)), //nolint:gosec // Comments are trusted author content.
		}

		if h != nil && lang != "" {
			if code, ok := h.Highlight(s.Code, lang); ok {
				sec.Highlighted = template.HTML(code) //nolint:gosec // Generated by chroma.
			} else {
				slog.Debug("code not highlighted",
					slog.String("lang", lang),
					slog.String("anchor", sec.Anchor),
				)
			}
		}

		page.Sections = append(page.Sections, sec)
	}

	var buf bytes.Buffer

	err := pageTemplate.Execute(&buf, page)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errWriteOutput, err)
	}

	return buf.Bytes(), nil
}

// sectionAnchor returns the HTML id of the i-th section.
func sectionAnchor(s annotated.Section, i int) string {
	if s.RefID != "" {
		return "ref-" + s.RefID
	}

	return fmt.Sprintf("section-%d", i+1)
}
