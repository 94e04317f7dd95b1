package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"go.jacobcolvin.com/docsplit/annotated"
	"go.jacobcolvin.com/docsplit/commentmd"
	"go.jacobcolvin.com/docsplit/log"
	"go.jacobcolvin.com/docsplit/profile"
	"go.jacobcolvin.com/docsplit/version"
)

var (
	errReadInput   = errors.New("read input")
	errWriteOutput = errors.New("write output")
	errConfig      = errors.New("config file")
	errDiagnostics = errors.New("diagnostics reported")
)

// app holds the state shared by every subcommand.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	log     *log.Config
	profile *profile.Config
	parser  *annotated.Config
	render  *commentmd.Config

	profiler *profile.Profiler
	cache    *annotated.Cache

	configPath string
	jobs       int
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
		log:     log.NewConfig(),
		profile: profile.NewConfig(),
		parser:  annotated.NewConfig(),
		render:  commentmd.NewConfig(),
	}
}

func (a *app) command() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "docsplit",
		Short: "Split annotated source files into documentation and code sections",
		Long: `docsplit reads source files whose comments carry documentation and
splits them into sections that pair each comment with the code it explains.
REF markers name sections for deep links and CLOSE markers end them.`,
		Version:           version.String(),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.SetIn(a.stdin)
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML file providing defaults for unset flags")
	flags.IntVar(&a.jobs, "jobs", 0, "files processed in parallel, 0 for one per CPU")
	a.log.RegisterFlags(flags)
	a.profile.RegisterFlags(flags)
	a.parser.RegisterFlags(flags)
	a.render.RegisterFlags(flags)

	rootCmd.AddCommand(
		a.parseCommand(),
		a.renderCommand(),
		a.exportCommand(),
		a.checkCommand(),
		a.viewCommand(),
		a.schemaCommand(),
	)

	completions := []func(*cobra.Command) error{
		a.log.RegisterCompletions,
		a.profile.RegisterCompletions,
		a.parser.RegisterCompletions,
		a.render.RegisterCompletions,
		func(cmd *cobra.Command) error {
			return cmd.RegisterFlagCompletionFunc("config",
				cobra.FixedCompletions([]string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt))
		},
	}

	for _, register := range completions {
		err := register(rootCmd)
		if err != nil {
			fmt.Fprintf(a.stderr, "register completions: %v\n", err)
		}
	}

	return rootCmd
}

// run executes the command line and stops any profiling started for it.
func (a *app) run(args []string) error {
	rootCmd := a.command()
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	if a.profiler != nil {
		err = errors.Join(err, a.profiler.Stop())
		a.profiler = nil
	}

	return err
}

// setup applies the config file, installs the logger, builds the parse
// cache and starts profiling. It runs before every subcommand.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.configPath != "" {
		fc, err := loadFileConfig(a.configPath)
		if err != nil {
			return err
		}

		err = applyFileConfig(cmd.Flags(), fc.flagValues(a))
		if err != nil {
			return err
		}
	}

	handler, err := a.log.NewHandler(a.stderr)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(handler))

	a.cache, err = a.parser.NewCache()
	if err != nil {
		return err
	}

	if !a.profile.Enabled() {
		return nil
	}

	p := a.profile.NewProfiler()

	err = p.Start()
	if err != nil {
		return err
	}

	a.profiler = p

	return nil
}

// readInput reads a file, or standard input when arg is "-".
func (a *app) readInput(arg string) (string, error) {
	if arg == "-" {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return "", fmt.Errorf("%w: stdin: %w", errReadInput, err)
		}

		return string(data), nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errReadInput, err)
	}

	return string(data), nil
}

// writeOutput writes out to stdout, or to path when one is given.
func (a *app) writeOutput(path string, out []byte) error {
	if path == "" || path == "-" {
		_, err := a.stdout.Write(out)
		if err != nil {
			return fmt.Errorf("%w: %w", errWriteOutput, err)
		}

		return nil
	}

	err := os.WriteFile(path, out, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", errWriteOutput, err)
	}

	return nil
}

type parsedFile struct {
	result *annotated.ParseResult
	path   string
}

// parseFiles parses every argument through the shared cache, at most
// --jobs at a time. Results keep argument order. No arguments means stdin;
// stdin is read once however often "-" is given.
func (a *app) parseFiles(args []string) ([]parsedFile, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}

	limit := a.jobs
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	files := make([]parsedFile, len(args))
	stdin := sync.OnceValues(func() (string, error) {
		return a.readInput("-")
	})

	read := func(arg string) (string, error) {
		if arg == "-" {
			return stdin()
		}

		return a.readInput(arg)
	}

	var g errgroup.Group

	g.SetLimit(limit)

	for i, arg := range args {
		g.Go(func() error {
			src, err := read(arg)
			if err != nil {
				return err
			}

			files[i] = parsedFile{path: arg, result: a.cache.Parse(src)}

			slog.Debug("parsed file",
				slog.String("path", arg),
				slog.Int("sections", len(files[i].result.Sections)),
				slog.Int("diagnostics", len(files[i].result.Diagnostics)),
			)

			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		return nil, err
	}

	return files, nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // File descriptors fit in int.
}
