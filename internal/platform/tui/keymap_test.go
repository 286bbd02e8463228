package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"

	"github.com/vovakirdan/tui-lode/internal/config"
	"github.com/vovakirdan/tui-lode/internal/core"
)

func TestCapabilitiesFromConfig(t *testing.T) {
	caps, err := NewCapabilities(config.DefaultConfig())
	if err != nil {
		t.Fatalf("NewCapabilities() failed: %v", err)
	}

	left, right := caps.SoftKeys()
	if left != "f1" || right != "f2" {
		t.Errorf("Expected soft keys f1/f2, got %q/%q", left, right)
	}

	tests := []struct {
		code core.KeyCode
		want core.Action
	}{
		{"left", core.ActionLeft},
		{"enter", core.ActionFire},
		{" ", core.ActionFire},
		{"esc", core.ActionMenu},
		{"*", core.ActionClear},
		{"#", core.ActionExit},
		{"f1", core.ActionNone},
	}
	for _, tt := range tests {
		if got := caps.KeyMap().Resolve(tt.code); got != tt.want {
			t.Errorf("Resolve(%q): Expected %v, got %v", tt.code, tt.want, got)
		}
	}
}

func TestCapabilitiesRejectConflicts(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Keys.Bindings = map[string][]string{
		"Left":  {"a"},
		"Right": {"a"},
	}
	if _, err := NewCapabilities(cfg); err == nil {
		t.Error("a key bound twice should be rejected")
	}
}

func TestLegend(t *testing.T) {
	caps, err := NewCapabilities(config.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	l := NewLegend(caps)

	soft, ok := l.actions[core.ActionContextA]
	if !ok {
		t.Fatal("Expected a ContextA binding")
	}
	found := false
	for _, k := range soft.Keys() {
		if k == "f1" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected the soft key in the ContextA binding, got %v", soft.Keys())
	}

	fire := l.actions[core.ActionFire]
	if fire.Help().Key != "enter" {
		t.Errorf("Expected enter as the Fire legend key, got %q", fire.Help().Key)
	}

	if got := len(l.ShortHelp()); got != 4 {
		t.Errorf("Expected 4 short help entries, got %d", got)
	}
	if got := len(l.FullHelp()); got != 3 {
		t.Errorf("Expected 3 help columns, got %d", got)
	}

	if !key.Matches(keyPress("ctrl+c"), l.Quit) {
		t.Error("ctrl+c should quit")
	}
}

func TestKeyNames(t *testing.T) {
	got := keyNames([]core.KeyCode{"5", "", " ", "enter"})
	want := []string{"enter", " ", "5"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, got)
			break
		}
	}
	if displayKey(" ") != "space" {
		t.Error("space should be spelled out")
	}
}
