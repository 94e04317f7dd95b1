package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/docsplit/annotated"
)

func (a *app) renderCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render [flags] [file|-]",
		Short: "Render comment markdown to an HTML fragment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			arg := "-"
			if len(args) == 1 {
				arg = args[0]
			}

			src, err := a.readInput(arg)
			if err != nil {
				return err
			}

			r, err := a.render.NewRenderer()
			if err != nil {
				return err
			}

			out := r.Render(src)
			if out != "" {
				out += "\n"
			}

			return a.writeOutput(output, []byte(out))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func (a *app) checkCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check [flags] [file|-]...",
		Short: "Report REF/CLOSE markers and comments the parser had to repair",
		Long: `check prints one line per diagnostic as "file:line: kind: message".
Diagnostics never change the parse output; with --strict any diagnostic is
an error.`,
		RunE: func(_ *cobra.Command, args []string) error {
			files, err := a.parseFiles(args)
			if err != nil {
				return err
			}

			var (
				out   []byte
				count int
			)

			for _, f := range files {
				for _, d := range f.result.Diagnostics {
					out = fmt.Appendf(out, "%s:%d: %s: %s\n", f.path, d.Line, d.Kind, d.Message)
					count++
				}
			}

			err = a.writeOutput("", out)
			if err != nil {
				return err
			}

			if strict && count > 0 {
				return fmt.Errorf("%w: %d", errDiagnostics, count)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error when any diagnostic is reported")

	return cmd
}

func (a *app) schemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the parse JSON output",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			schema, err := annotated.JSONSchema()
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(schema, "", "  ")
			if err != nil {
				return fmt.Errorf("%w: %w", errWriteOutput, err)
			}

			return a.writeOutput("", append(out, '\n'))
		},
	}
}
