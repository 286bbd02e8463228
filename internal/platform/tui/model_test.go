package tui

import (
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-lode/internal/config"
	"github.com/vovakirdan/tui-lode/internal/games/lode"
)

type memStore struct {
	mu       sync.Mutex
	slots    map[string][]byte
	outcomes int
}

func (m *memStore) LoadSlot(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.slots[name]
	if !ok {
		return nil, fmt.Errorf("slot %s: %w", name, fs.ErrNotExist)
	}
	return data, nil
}

func (m *memStore) SaveSlot(name string, record []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.slots == nil {
		m.slots = make(map[string][]byte)
	}
	m.slots[name] = append([]byte(nil), record...)
	return nil
}

func (m *memStore) RecordOutcome(string, int, bool, int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes++
	return nil
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "f2":
		return tea.KeyMsg{Type: tea.KeyF2}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestRuntime(t *testing.T, store *memStore) *Runtime {
	t.Helper()
	rt, err := NewRuntime(RuntimeOptions{
		Config: config.DefaultConfig(),
		GameID: "lode",
		Store:  store,
		Width:  40,
		Height: 21,
		Logger: log.New(io.Discard),
	})
	if err != nil {
		t.Fatalf("NewRuntime() failed: %v", err)
	}
	t.Cleanup(rt.Stop)
	return rt
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func progressOf(t *testing.T, rt *Runtime) *lode.Game {
	t.Helper()
	g, ok := rt.game.(*lode.Game)
	if !ok {
		t.Fatalf("Expected a lode game, got %T", rt.game)
	}
	return g
}

func TestNewRuntimeNeedsStore(t *testing.T) {
	if _, err := NewRuntime(RuntimeOptions{Config: config.DefaultConfig(), GameID: "lode"}); err == nil {
		t.Error("Expected an error without a store")
	}
}

func TestNewRuntimeUnknownGame(t *testing.T) {
	_, err := NewRuntime(RuntimeOptions{Config: config.DefaultConfig(), GameID: "nope", Store: &memStore{}})
	if err == nil {
		t.Error("Expected an error for an unknown game")
	}
}

func TestNewRuntimeDefaultSize(t *testing.T) {
	rt, err := NewRuntime(RuntimeOptions{
		Config: config.DefaultConfig(),
		GameID: "lode",
		Store:  &memStore{},
		Logger: log.New(io.Discard),
	})
	if err != nil {
		t.Fatalf("NewRuntime() failed: %v", err)
	}
	t.Cleanup(rt.Stop)

	// 80x24 minus the legend row
	if w, h := rt.Device().Size(); w != 80 || h != 23 {
		t.Errorf("Expected an 80x23 device, got %dx%d", w, h)
	}
}

func TestModelDigitsPickLevel(t *testing.T) {
	rt := newTestRuntime(t, &memStore{})
	m := rt.Model()

	update(t, m, keyPress("2"))
	if got := progressOf(t, rt).Progress().Snapshot().Level; got != 1 {
		t.Errorf("Expected level 1, got %d", got)
	}
	if !rt.Session().Paused() {
		t.Error("digits should keep the session paused")
	}
}

func TestModelMenuKeyToggles(t *testing.T) {
	rt := newTestRuntime(t, &memStore{})
	m := rt.Model()

	m, _ = update(t, m, keyPress("esc"))
	if rt.Session().Paused() {
		t.Fatal("an unconsumed key should resume a visible session")
	}

	update(t, m, keyPress("esc"))
	if !rt.Session().Paused() {
		t.Error("Menu should pause a running session")
	}
}

func TestModelSuicideSaves(t *testing.T) {
	store := &memStore{}
	rt := newTestRuntime(t, store)
	m := rt.Model()

	update(t, m, keyPress("f2"))

	if _, err := store.LoadSlot("LodeRunner"); err != nil {
		t.Errorf("Expected the slot to be saved: %v", err)
	}
	if store.outcomes != 1 {
		t.Errorf("Expected 1 outcome, got %d", store.outcomes)
	}
}

func TestModelQuit(t *testing.T) {
	rt := newTestRuntime(t, &memStore{})
	m := rt.Model()

	m, cmd := update(t, m, keyPress("ctrl+c"))
	if cmd == nil {
		t.Fatal("Expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
	if m.View() != "" {
		t.Error("a quitting model renders nothing")
	}
}

func TestModelExitKey(t *testing.T) {
	rt := newTestRuntime(t, &memStore{})
	m := rt.Model()

	m, _ = update(t, m, keyPress("#"))

	msg := m.Init()()
	if _, ok := msg.(exitMsg); !ok {
		t.Fatalf("Expected the exit hook to fire, got %T", msg)
	}
	_, cmd := update(t, m, msg)
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("exit should quit the program")
	}
}

func TestModelFrames(t *testing.T) {
	rt := newTestRuntime(t, &memStore{})
	m := rt.Model()

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 21})
	rt.Device().Render()
	msg := m.Init()()
	m, cmd := update(t, m, msg)
	if cmd == nil {
		t.Error("Expected to keep waiting for frames")
	}

	view := m.View()
	for _, want := range []string{"Level 001", "Fire=Play", "fire/play"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected %q in the view:\n%s", want, view)
		}
	}

	m, _ = update(t, m, keyPress("?"))
	if full := m.View(); !strings.Contains(full, "dig left") {
		t.Errorf("Expected the full legend:\n%s", full)
	}
}

func TestModelResizeAndFocus(t *testing.T) {
	rt := newTestRuntime(t, &memStore{})
	m := rt.Model()

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 25})
	if w, h := rt.Device().Size(); w != 60 || h != 24 {
		t.Errorf("Expected 60x24, got %dx%d", w, h)
	}

	m, _ = update(t, m, tea.BlurMsg{})
	if rt.Device().Visible() {
		t.Error("blur should hide the device")
	}
	update(t, m, tea.FocusMsg{})
	if !rt.Device().Visible() {
		t.Error("focus should show the device")
	}
}

func TestPlayerSlot(t *testing.T) {
	if got := PlayerSlot("LodeRunner", "ada"); got != "LodeRunner/ada" {
		t.Errorf("Expected LodeRunner/ada, got %q", got)
	}
	if got := PlayerSlot("LodeRunner", ""); got != "LodeRunner" {
		t.Errorf("Expected LodeRunner, got %q", got)
	}
}
