package config

import (
	_ "embed"
)

//go:embed defaults/lode.yaml
var defaultYAML []byte

// DefaultConfig returns the hard-coded configuration, identical to the
// embedded defaults/lode.yaml.
func DefaultConfig() Config {
	return Config{
		Runtime: RuntimeConfig{
			FrameMS:      66,
			KeepAwakeMS:  1000,
			KeepAwakeMax: 16,
		},
		Keys: KeysConfig{
			SoftLeft:  "f1",
			SoftRight: "f2",
			Bindings: map[string][]string{
				"Up":       {"up", "k", "2"},
				"Down":     {"down", "j", "8"},
				"Left":     {"left", "h", "4"},
				"Right":    {"right", "l", "6"},
				"Fire":     {"enter", " ", "5"},
				"ContextA": {"z", "1"},
				"ContextB": {"x", "3"},
				"Menu":     {"esc", "p", "0"},
				"Clear":    {"*"},
				"Exit":     {"#", "q"},
			},
		},
		Storage: StorageConfig{
			DB:   "~/.lode/lode.db",
			Slot: "LodeRunner",
		},
		Log: LogConfig{
			File:  "~/.lode/lode.log",
			Level: "info",
		},
		SSH: SSHConfig{
			Host:    "0.0.0.0",
			Port:    2323,
			HostKey: ".ssh/lode_ed25519",
		},
	}
}
