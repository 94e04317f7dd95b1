package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/docsplit/annotated"
	"go.jacobcolvin.com/docsplit/log"
	"go.jacobcolvin.com/docsplit/stringtest"
)

var viewSource = stringtest.Input(`
	// REF: intro
	// Intro
	const a = 1

	// REF: body
	// Body
	const b = 2

	// Tail
	const c = 3
`)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	}

	r, _ := utf8.DecodeRuneInString(s)

	return tea.KeyPressMsg{Code: r, Text: s}
}

func newTestViewModel(t *testing.T, src string) *viewModel {
	t.Helper()

	path := writeFile(t, t.TempDir(), "view.ts", src)

	cache, err := annotated.NewCache(annotated.NewParser(), 4)
	require.NoError(t, err)

	m := newViewModel(path, cache)
	m.Update(m.parse()())

	return m
}

func press(m *viewModel, keys ...string) tea.Cmd {
	var cmd tea.Cmd

	for _, k := range keys {
		_, cmd = m.Update(key(k))
	}

	return cmd
}

func TestViewModelNavigation(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		keys []string
		want int
	}{
		"starts at the first section": {
			want: 0,
		},
		"next": {
			keys: []string{"n"},
			want: 1,
		},
		"next stops at the last section": {
			keys: []string{"n", "n", "n", "n"},
			want: 2,
		},
		"previous stops at the first section": {
			keys: []string{"p", "p"},
			want: 0,
		},
		"arrows": {
			keys: []string{"down", "down", "up"},
			want: 1,
		},
		"end": {
			keys: []string{"G"},
			want: 2,
		},
		"home": {
			keys: []string{"G", "g"},
			want: 0,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			m := newTestViewModel(t, viewSource)
			require.NotNil(t, m.result)
			require.Len(t, m.result.Sections, 3)

			press(m, tc.keys...)
			assert.Equal(t, tc.want, m.index)
		})
	}
}

func TestViewModelSearch(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		wantStatus string
		keys       []string
		want       int
	}{
		"jump to ref": {
			keys: []string{"/", "b", "o", "d", "y", "enter"},
			want: 1,
		},
		"backspace edits the query": {
			keys: []string{"/", "b", "x", "backspace", "o", "d", "y", "enter"},
			want: 1,
		},
		"escape cancels": {
			keys: []string{"/", "b", "o", "d", "y", "esc"},
			want: 0,
		},
		"unknown ref": {
			keys:       []string{"n", "n", "/", "n", "o", "p", "e", "enter"},
			want:       2,
			wantStatus: `unknown ref "nope"`,
		},
		"navigation keys are query text while searching": {
			keys: []string{"/", "n", "p"},
			want: 0,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			m := newTestViewModel(t, viewSource)

			press(m, tc.keys...)
			assert.Equal(t, tc.want, m.index)
			assert.Equal(t, tc.wantStatus, m.status)
		})
	}
}

func TestViewModelSearchPrompt(t *testing.T) {
	t.Parallel()

	m := newTestViewModel(t, viewSource)

	press(m, "/", "i", "n")
	assert.True(t, m.searching)
	assert.Equal(t, "/in", m.statusLine())

	press(m, "t", "r", "o", "enter")
	assert.False(t, m.searching)
	assert.Equal(t, viewHelp, m.statusLine())
}

func TestViewModelQuit(t *testing.T) {
	t.Parallel()

	tcs := map[string][]string{
		"q":                     {"q"},
		"ctrl+c":                {"ctrl+c"},
		"ctrl+c in search":      {"/", "ctrl+c"},
		"escape outside search": {"esc"},
	}

	for name, keys := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			m := newTestViewModel(t, viewSource)

			cmd := press(m, keys...)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
		})
	}
}

func TestViewModelDropsStaleParse(t *testing.T) {
	t.Parallel()

	m := newTestViewModel(t, viewSource)
	press(m, "G")

	first := m.result

	_, cmd := m.Update(fileChangedMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, 1, m.gen)

	require.NoError(t, os.WriteFile(m.path, []byte("// Only\nconst z = 1"), 0o644))

	stale := parsedMsg{gen: 0, result: annotated.Parse("const other = 1")}
	m.Update(stale)
	assert.Same(t, first, m.result)

	m.Update(m.parse()())
	require.Len(t, m.result.Sections, 1)
	assert.Equal(t, "Only", m.result.Sections[0].Comment)
	assert.Equal(t, 0, m.index)
}

func TestViewModelParseError(t *testing.T) {
	t.Parallel()

	cache, err := annotated.NewCache(annotated.NewParser(), 1)
	require.NoError(t, err)

	m := newViewModel(filepath.Join(t.TempDir(), "missing.ts"), cache)
	m.Update(m.parse()())

	require.ErrorIs(t, m.err, errReadInput)
	assert.Nil(t, m.result)
	assert.True(t, strings.HasPrefix(m.statusLine(), "error: "))

	press(m, "n", "G", "/", "x", "enter")
	assert.Equal(t, 0, m.index)
}

func TestViewModelRender(t *testing.T) {
	t.Parallel()

	m := newTestViewModel(t, viewSource)

	got := m.render()
	assert.Equal(t, stringtest.JoinLF(
		m.path+"  section 1/3  lines 1-3  ref intro",
		"",
		"Intro",
		"",
		"  | const a = 1",
		viewHelp,
	), got)

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 3})

	lines := strings.Split(m.render(), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, viewHelp, lines[2])

	m.Update(logMsg("INFO parsed"))
	assert.Equal(t, "INFO parsed", m.statusLine())
}

func TestViewModelRenderEmpty(t *testing.T) {
	t.Parallel()

	m := newTestViewModel(t, "")

	assert.Contains(t, m.render(), "no sections")
	press(m, "n", "G")
	assert.Equal(t, 0, m.index)
}

func TestViewModelWaitForLog(t *testing.T) {
	t.Parallel()

	m := newTestViewModel(t, viewSource)
	assert.Nil(t, m.waitForLog())

	pub := log.NewPublisher()
	t.Cleanup(func() { require.NoError(t, pub.Close()) })

	m.logs = pub.Subscribe()

	_, err := pub.Write([]byte("level=INFO msg=parsed\n"))
	require.NoError(t, err)

	cmd := m.waitForLog()
	require.NotNil(t, cmd)
	assert.Equal(t, logMsg("level=INFO msg=parsed"), cmd())

	_, next := m.Update(logMsg("x"))
	assert.NotNil(t, next)
}

func TestViewModelWaitForChange(t *testing.T) {
	t.Parallel()

	m := newTestViewModel(t, viewSource)
	assert.Nil(t, m.waitForChange())

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, watcher.Close()) })
	require.NoError(t, watcher.Add(filepath.Dir(m.path)))

	ctx, cancel := context.WithCancel(t.Context())
	t.Cleanup(cancel)

	m.ctx = ctx
	m.watcher = watcher

	msgs := make(chan tea.Msg, 1)

	go func() { msgs <- m.waitForChange()() }()

	writeFile(t, filepath.Dir(m.path), "other.ts", "ignored")
	require.NoError(t, os.WriteFile(m.path, []byte("const changed = 1"), 0o644))

	select {
	case msg := <-msgs:
		assert.Equal(t, fileChangedMsg{}, msg)
	case <-time.After(10 * time.Second):
		t.Fatal("no change event")
	}
}
