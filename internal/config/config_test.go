package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-lode/internal/core"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lode.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("embedded defaults differ from DefaultConfig():\n%+v\n%+v", cfg, DefaultConfig())
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig() is invalid: %v", err)
	}
	if got := DefaultConfig().FramePeriod(); got != 66*time.Millisecond {
		t.Errorf("Expected 66ms frame period, got %v", got)
	}
	if got := DefaultConfig().KeepAwakePeriod(); got != time.Second {
		t.Errorf("Expected 1s keep-awake period, got %v", got)
	}
}

func TestLoadCustomPartial(t *testing.T) {
	path := writeConfig(t, `
runtime:
  frame_ms: 40
storage:
  slot: Custom
keys:
  bindings:
    Fire: [f]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Runtime.FrameMS != 40 {
		t.Errorf("Expected frame_ms 40, got %d", cfg.Runtime.FrameMS)
	}
	if cfg.Storage.Slot != "Custom" {
		t.Errorf("Expected slot Custom, got %q", cfg.Storage.Slot)
	}
	// Untouched fields keep their defaults
	if cfg.Runtime.KeepAwakeMax != 16 || cfg.SSH.Port != 2323 {
		t.Errorf("defaults lost: %+v", cfg)
	}

	km, err := cfg.KeyMap()
	if err != nil {
		t.Fatalf("KeyMap() failed: %v", err)
	}
	if km.Resolve("f") != core.ActionFire {
		t.Error("Expected f to fire")
	}
	if km.Resolve("enter") != core.ActionNone {
		t.Error("overriding Fire should drop its default keys")
	}
	if km.Resolve("left") != core.ActionLeft {
		t.Error("other bindings should keep their defaults")
	}
}

func TestLoadMovesKeyBetweenActions(t *testing.T) {
	path := writeConfig(t, `
keys:
  bindings:
    Menu: [esc, p, "0", q]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	km, err := cfg.KeyMap()
	if err != nil {
		t.Fatalf("KeyMap() failed: %v", err)
	}
	if got := km.Resolve("q"); got != core.ActionMenu {
		t.Errorf("Expected q to open the menu, got %v", got)
	}
	if got := km.Resolve("#"); got != core.ActionExit {
		t.Errorf("Expected # to keep exiting, got %v", got)
	}
}

func TestMergeBindings(t *testing.T) {
	base := map[string][]string{
		"Fire": {"enter", "space"},
		"Exit": {"#", "q"},
		"Left": {"left"},
	}
	over := map[string][]string{
		"Fire": {"f", "left"},
	}

	got := mergeBindings(base, over)
	want := map[string][]string{
		"Fire": {"f", "left"},
		"Exit": {"#", "q"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if got := mergeBindings(base, nil); !reflect.DeepEqual(got, base) {
		t.Errorf("Expected the base bindings without overrides, got %v", got)
	}
}

func TestCoreConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Runtime.FrameMS = 40

	rc := cfg.CoreConfig()
	if rc.FramePeriod != 40*time.Millisecond {
		t.Errorf("Expected 40ms frame period, got %v", rc.FramePeriod)
	}
	if rc.ScreenW != 80 || rc.ScreenH != 24 {
		t.Errorf("Expected an 80x24 screen, got %dx%d", rc.ScreenW, rc.ScreenH)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected an error for a missing custom config")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "runtime: [")
	if _, err := Load(path); err == nil {
		t.Error("Expected a parse error")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"zero frame", "runtime:\n  frame_ms: 0\n", "frame_ms"},
		{"empty slot", "storage:\n  slot: \"\"\n", "slot"},
		{"bad port", "ssh:\n  port: 70000\n", "port"},
		{"unknown action", "keys:\n  bindings:\n    Jump: [w]\n", "unknown action"},
		{"conflict", "keys:\n  bindings:\n    Fire: [left]\n", "bound to both"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LODE_DB", "/tmp/other.db")
	t.Setenv("LODE_SLOT", "FromEnv")
	t.Setenv("LODE_FRAME_MS", "33")
	t.Setenv("LODE_LOG_LEVEL", "debug")

	cfg, err := Load(writeConfig(t, "storage:\n  slot: FromFile\n"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Storage.DB != "/tmp/other.db" {
		t.Errorf("Expected db from env, got %q", cfg.Storage.DB)
	}
	if cfg.Storage.Slot != "FromEnv" {
		t.Errorf("env should win over the file, got %q", cfg.Storage.Slot)
	}
	if cfg.FramePeriod() != 33*time.Millisecond {
		t.Errorf("Expected 33ms, got %v", cfg.FramePeriod())
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected debug level, got %q", cfg.Log.Level)
	}
}

func TestEnvInvalidNumber(t *testing.T) {
	t.Setenv("LODE_FRAME_MS", "fast")
	if _, err := Load(writeConfig(t, "")); err == nil {
		t.Error("Expected an error for a non-numeric LODE_FRAME_MS")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in, want string
	}{
		{"~/.lode/lode.db", filepath.Join(home, ".lode/lode.db")},
		{"~", home},
		{"/abs/path", "/abs/path"},
		{"rel/~x", "rel/~x"},
	}
	for _, tt := range tests {
		got, err := ExpandHome(tt.in)
		if err != nil {
			t.Fatalf("ExpandHome(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
