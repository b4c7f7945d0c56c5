package app

import (
	"context"
	"strings"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/hookchat/hookchat/internal/config"
	"github.com/hookchat/hookchat/internal/keys"
	"github.com/hookchat/hookchat/internal/session"
	"github.com/hookchat/hookchat/internal/storage"
	"github.com/hookchat/hookchat/internal/theme"
	"github.com/hookchat/hookchat/internal/ui"
)

// fakeSender records submissions and answers with a fixed reply or error.
type fakeSender struct {
	mu    sync.Mutex
	reply string
	err   error
	calls []string
}

func (f *fakeSender) Send(ctx context.Context, text string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, text)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeSender) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// testEnv bundles a model with the services behind it.
type testEnv struct {
	m      *Model
	store  *storage.MemoryStore
	sender *fakeSender
	cfg    *config.Config
	queue  []tea.Msg // messages forwarded by Watch, not yet delivered
}

// testConfig creates a config that never touches the user's files.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.StorageBackend = storage.BackendMemory
	return cfg
}

// newTestEnv creates a model that has not been hydrated yet.
func newTestEnv(t *testing.T, cfg *config.Config, seed map[string]string) *testEnv {
	t.Helper()
	t.Cleanup(func() { ui.ApplyPalette(theme.ColorsFor(theme.Dark)) })

	store := storage.NewMemoryStore()
	for k, v := range seed {
		if err := store.Set(context.Background(), k, v); err != nil {
			t.Fatalf("seed %s: %v", k, err)
		}
	}
	sender := &fakeSender{reply: "world"}
	m := New(context.Background(), Deps{
		Config:  cfg,
		Session: session.New(store),
		Theme:   theme.New(store),
		Sender:  sender,
	}, "0.0.0-test")
	e := &testEnv{m: m, store: store, sender: sender, cfg: cfg}
	t.Cleanup(m.Watch(func(msg tea.Msg) { e.queue = append(e.queue, msg) }))
	return e
}

// flush delivers forwarded messages to the model, as the program would.
func (e *testEnv) flush() {
	for len(e.queue) > 0 {
		msg := e.queue[0]
		e.queue = e.queue[1:]
		e.m.Update(msg)
	}
}

// run executes the i-th command of a batch (see runAt), delivers its message
// and anything forwarded while it ran.
func (e *testEnv) run(t *testing.T, cmd tea.Cmd, i int) {
	t.Helper()
	if msg := runAt(t, cmd, i); msg != nil {
		e.m.Update(msg)
	}
	e.flush()
}

// hydrate runs the startup commands the way the program would, with a dark
// terminal background and an 80x24 window.
func (e *testEnv) hydrate(t *testing.T) {
	t.Helper()
	e.run(t, e.m.hydrateSession(), 0)
	e.run(t, e.m.resolveTheme(theme.Dark), 0)
	e.m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if !e.m.Ready() {
		t.Fatal("model not ready after hydration")
	}
}

// signedInEnv returns a hydrated model on the chat screen.
func signedInEnv(t *testing.T, cfg *config.Config) *testEnv {
	t.Helper()
	e := newTestEnv(t, cfg, map[string]string{session.Key: "true"})
	e.hydrate(t)
	return e
}

func (e *testEnv) stored(t *testing.T, key string) (string, bool) {
	t.Helper()
	v, ok, err := e.store.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("Get(%s): %v", key, err)
	}
	return v, ok
}

// keyPress creates a tea.KeyPressMsg for the given key string.
// Examples: "a", "enter", "esc", "shift+enter", "ctrl+n"
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.ShiftEnter:
		return tea.KeyPressMsg{Code: tea.KeyEnter, Mod: tea.ModShift}
	case keys.Escape:
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	}
	if r, ok := strings.CutPrefix(key, "ctrl+"); ok {
		return tea.KeyPressMsg{Code: rune(r[0]), Mod: tea.ModCtrl}
	}
	r := []rune(key)[0]
	return tea.KeyPressMsg{Code: r, Text: key}
}

// press sends key to the model and returns the resulting command.
func press(m *Model, key string) tea.Cmd {
	_, cmd := m.Update(keyPress(key))
	return cmd
}

// typeText types s into the focused input one rune at a time.
func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

// runAt executes the i-th command of a batch, or cmd itself when it is not a
// batch. Timer commands in a batch are skipped by choosing i.
func runAt(t *testing.T, cmd tea.Cmd, i int) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		if i != 0 {
			t.Fatalf("expected a batch, got %T", msg)
		}
		return msg
	}
	if i >= len(batch) {
		t.Fatalf("batch has %d commands, want index %d", len(batch), i)
	}
	return batch[i]()
}

// send types text, presses enter and delivers the reply.
func send(t *testing.T, m *Model, text string) {
	t.Helper()
	typeText(m, text)
	cmd := press(m, keys.Enter)
	m.Update(runAt(t, cmd, 0))
}
