package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatText = "text"
)

func outputFormats() []string {
	return []string{formatJSON, formatYAML, formatText}
}

func (a *app) parseCommand() *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "parse [flags] [file|-]...",
		Short: "Print the sections of annotated source files",
		Long: `parse splits each file into documentation and code sections and prints
one document per file, in argument order. With no arguments it reads stdin.`,
		RunE: func(_ *cobra.Command, args []string) error {
			f, err := a.outputFormat(format)
			if err != nil {
				return err
			}

			files, err := a.parseFiles(args)
			if err != nil {
				return err
			}

			out, err := formatParsed(f, files)
			if err != nil {
				return err
			}

			return a.writeOutput(output, out)
		},
	}

	cmd.Flags().StringVar(&format, "format", "",
		fmt.Sprintf("output format, one of: %s (default text on a terminal, json otherwise)", outputFormats()))
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	err := cmd.RegisterFlagCompletionFunc("format",
		cobra.FixedCompletions(outputFormats(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		fmt.Fprintf(a.stderr, "register completions: %v\n", err)
	}

	return cmd
}

// outputFormat resolves the --format value, picking text for terminals
// when it is empty.
func (a *app) outputFormat(format string) (string, error) {
	if format == "" {
		if isTerminal(a.stdout) {
			return formatText, nil
		}

		return formatJSON, nil
	}

	format = strings.ToLower(format)
	if slices.Contains(outputFormats(), format) {
		return format, nil
	}

	return "", fmt.Errorf("unknown format %q, want one of: %s", format, outputFormats())
}

func formatParsed(format string, files []parsedFile) ([]byte, error) {
	var buf bytes.Buffer

	for i, f := range files {
		var err error

		switch format {
		case formatJSON:
			enc := json.NewEncoder(&buf)
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			err = enc.Encode(f.result)

		case formatYAML:
			if i > 0 {
				buf.WriteString("---\n")
			}

			var out []byte

			out, err = yaml.Marshal(f.result)
			buf.Write(out)

		default:
			writeText(&buf, f)
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", errWriteOutput, f.path, err)
		}
	}

	return buf.Bytes(), nil
}

// writeText writes a short human-readable summary of f.
func writeText(buf *bytes.Buffer, f parsedFile) {
	res := f.result

	fmt.Fprintf(buf, "%s: %d sections\n", f.path, len(res.Sections))

	for i, s := range res.Sections {
		fmt.Fprintf(buf, "  [%d] lines %d-%d, clean %d-%d",
			i, s.StartLine, s.EndLine, s.StartLineInCleanCode, s.EndLineInCleanCode)

		if s.RefID != "" {
			fmt.Fprintf(buf, ", ref %s", s.RefID)
		}

		buf.WriteByte('\n')

		if title := firstLine(s.Comment); title != "" {
			fmt.Fprintf(buf, "      %s\n", title)
		}
	}

	for _, d := range res.Diagnostics {
		fmt.Fprintf(buf, "  %s\n", d)
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}

	return strings.TrimSpace(s)
}
