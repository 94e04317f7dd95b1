package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"go.jacobcolvin.com/docsplit/annotated"
	"go.jacobcolvin.com/docsplit/log"
)

const viewHelp = "n/p move  / jump to ref  q quit"

func (a *app) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view [flags] <file>",
		Short: "Browse the sections of a file in the terminal",
		Long: `view shows one section at a time and parses the file again whenever it
changes on disk. Keys: n/p or the arrow keys move between sections, / then
a REF id and enter jumps to it, q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runView(cmd.Context(), args[0])
		},
	}
}

func (a *app) runView(ctx context.Context, path string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// The terminal belongs to the viewer, so logs go to the status bar.
	pub := log.NewPublisher()
	defer pub.Close() //nolint:errcheck // Close never fails.

	handler, err := a.log.NewHandler(pub)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(handler))

	sub := pub.Subscribe()
	defer sub.Close()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	defer watcher.Close() //nolint:errcheck // Best effort on exit.

	// Editors often replace the file on save, so watch its directory.
	err = watcher.Add(filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	m := newViewModel(path, a.cache)
	m.ctx = ctx
	m.watcher = watcher
	m.logs = sub

	_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("running viewer: %w", err)
	}

	return m.err
}

type (
	// fileChangedMsg reports a write to the viewed file.
	fileChangedMsg struct{}

	// parsedMsg carries the result of the parse started for generation gen.
	parsedMsg struct {
		result *annotated.ParseResult
		err    error
		gen    int
	}

	watchErrMsg struct{ err error }

	logMsg string
)

// viewModel is the bubbletea model of the section viewer. Each file change
// bumps gen; parse results from older generations are dropped.
type viewModel struct {
	ctx     context.Context
	cache   *annotated.Cache
	watcher *fsnotify.Watcher
	logs    *log.Subscription
	result  *annotated.ParseResult
	err     error

	path   string
	query  string
	status string

	gen    int
	index  int
	width  int
	height int

	searching bool
}

func newViewModel(path string, cache *annotated.Cache) *viewModel {
	return &viewModel{
		ctx:   context.Background(),
		cache: cache,
		path:  path,
	}
}

// Init parses the file and starts listening for changes and log lines.
func (m *viewModel) Init() tea.Cmd {
	return tea.Batch(m.parse(), m.waitForChange(), m.waitForLog())
}

// Update handles keys, resizes, parse results, file changes and log lines.
func (m *viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if m.searching {
			return m.updateSearch(msg)
		}

		return m.updateKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case fileChangedMsg:
		m.gen++

		return m, tea.Batch(m.parse(), m.waitForChange())

	case parsedMsg:
		if msg.gen != m.gen {
			slog.Debug("dropping stale parse",
				slog.Int("generation", msg.gen),
				slog.Int("latest", m.gen),
			)

			return m, nil
		}

		m.err = msg.err
		if msg.err != nil {
			return m, nil
		}

		m.result = msg.result
		m.index = min(m.index, max(len(m.result.Sections)-1, 0))

		slog.Info("parsed",
			slog.String("path", m.path),
			slog.Int("sections", len(m.result.Sections)),
		)

	case watchErrMsg:
		slog.Warn("watching file", slog.Any("err", msg.err))

		return m, m.waitForChange()

	case logMsg:
		m.status = string(msg)

		return m, m.waitForLog()
	}

	return m, nil
}

func (m *viewModel) updateKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "n", "down", "right", "j":
		m.move(1)

	case "p", "up", "left", "k":
		m.move(-1)

	case "g", "home":
		m.index = 0

	case "G", "end":
		if m.result != nil {
			m.index = max(len(m.result.Sections)-1, 0)
		}

	case "/":
		m.searching = true
		m.query = ""
	}

	return m, nil
}

func (m *viewModel) updateSearch(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.searching = false
		m.query = ""

	case "enter":
		m.searching = false
		m.jump(m.query)
		m.query = ""

	case "backspace":
		_, size := utf8.DecodeLastRuneInString(m.query)
		m.query = m.query[:len(m.query)-size]

	default:
		m.query += msg.Text
	}

	return m, nil
}

func (m *viewModel) move(delta int) {
	if m.result == nil {
		return
	}

	m.index = min(max(m.index+delta, 0), max(len(m.result.Sections)-1, 0))
}

// jump moves to the section registered for ref in the RefMap.
func (m *viewModel) jump(ref string) {
	if m.result == nil || ref == "" {
		return
	}

	idx, ok := m.result.RefMap[ref]
	if !ok || idx < 0 || idx >= len(m.result.Sections) {
		m.status = fmt.Sprintf("unknown ref %q", ref)
		slog.Debug("unknown ref", slog.String("ref", ref))

		return
	}

	m.index = idx
	m.status = ""
}

// parse returns a command that reads and parses the file for the current
// generation.
func (m *viewModel) parse() tea.Cmd {
	gen, path, cache := m.gen, m.path, m.cache

	return func() tea.Msg {
		data, err := os.ReadFile(path) //nolint:gosec // Path from CLI argument is expected.
		if err != nil {
			return parsedMsg{gen: gen, err: fmt.Errorf("%w: %w", errReadInput, err)}
		}

		return parsedMsg{gen: gen, result: cache.Parse(string(data))}
	}
}

// waitForChange returns a command that blocks until the viewed file is
// written or created.
func (m *viewModel) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}

	ctx, w, target := m.ctx, m.watcher, filepath.Clean(m.path)

	return func() tea.Msg {
		for {
			select {
			case <-ctx.Done():
				return nil

			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}

				if filepath.Clean(ev.Name) != target {
					continue
				}

				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					return fileChangedMsg{}
				}

			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}

				return watchErrMsg{err: err}
			}
		}
	}
}

// waitForLog returns a command that delivers the next published log line.
func (m *viewModel) waitForLog() tea.Cmd {
	if m.logs == nil {
		return nil
	}

	ctx, sub := m.ctx, m.logs

	return func() tea.Msg {
		line, ok := sub.Next(ctx)
		if !ok {
			return nil
		}

		return logMsg(line)
	}
}

// View renders the current section with a status bar.
func (m *viewModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true

	return v
}

func (m *viewModel) render() string {
	var body strings.Builder

	switch {
	case m.result == nil && m.err != nil:
		fmt.Fprintf(&body, "%s\n", m.path)

	case m.result == nil:
		fmt.Fprintf(&body, "%s\n\nloading...\n", m.path)

	case len(m.result.Sections) == 0:
		fmt.Fprintf(&body, "%s\n\nno sections\n", m.path)

	default:
		s := m.result.Sections[m.index]

		fmt.Fprintf(&body, "%s  section %d/%d  lines %d-%d",
			m.path, m.index+1, len(m.result.Sections), s.StartLine, s.EndLine)

		if s.RefID != "" {
			fmt.Fprintf(&body, "  ref %s", s.RefID)
		}

		body.WriteString("\n\n")

		if s.Comment != "" {
			body.WriteString(s.Comment)
			body.WriteString("\n\n")
		}

		for line := range strings.SplitSeq(strings.TrimRight(s.Code, "\n"), "\n") {
			fmt.Fprintf(&body, "  | %s\n", line)
		}
	}

	lines := strings.Split(strings.TrimRight(body.String(), "\n"), "\n")
	if m.height > 1 && len(lines) > m.height-1 {
		lines = lines[:m.height-1]
	}

	return strings.Join(append(lines, m.statusLine()), "\n")
}

func (m *viewModel) statusLine() string {
	switch {
	case m.searching:
		return "/" + m.query
	case m.err != nil:
		return "error: " + m.err.Error()
	case m.status != "":
		return m.status
	}

	return viewHelp
}
