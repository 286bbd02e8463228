package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Load loads the configuration.
// Search order: customPath -> ~/.lode/config.yaml -> ./configs/lode.yaml -> embedded default.
// Files are laid over the hard-coded defaults, so a partial file is fine.
// Environment variables are applied last.
func Load(customPath string) (Config, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(customPath string) (Config, error) {
	cfg := DefaultConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := decode(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := decode(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/lode.yaml"); err == nil {
		if err := decode(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultConfig()
	}

	// Use embedded default YAML
	if err := decode(defaultYAML, &cfg); err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// decode lays a YAML document over cfg. An action the document binds loses
// its previous keys, and a key the document binds is taken away from the
// actions it does not name.
func decode(data []byte, cfg *Config) error {
	base := cfg.Keys.Bindings
	cfg.Keys.Bindings = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg.Keys.Bindings = base
		return err
	}
	cfg.Keys.Bindings = mergeBindings(base, cfg.Keys.Bindings)
	return nil
}

func mergeBindings(base, over map[string][]string) map[string][]string {
	if len(over) == 0 {
		return base
	}
	taken := make(map[string]bool)
	for _, keys := range over {
		for _, k := range keys {
			taken[k] = true
		}
	}

	out := make(map[string][]string, len(base)+len(over))
	for action, keys := range base {
		if _, ok := over[action]; ok {
			continue
		}
		var kept []string
		for _, k := range keys {
			if !taken[k] {
				kept = append(kept, k)
			}
		}
		if len(kept) > 0 {
			out[action] = kept
		}
	}
	for action, keys := range over {
		out[action] = keys
	}
	return out
}

// applyEnv overrides fields from LODE_* environment variables. Unset
// variables leave the loaded values alone.
func applyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// UserPath returns the path of a file in ~/.lode, or empty if home is unavailable.
func UserPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lode", filename)
}

// ExpandHome expands a leading ~ to the home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
