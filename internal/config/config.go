// Package config provides YAML-based runtime configuration with environment
// overrides.
package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/vovakirdan/tui-lode/internal/core"
)

// Config is the whole configuration of the runtime.
type Config struct {
	Runtime RuntimeConfig `yaml:"runtime"`
	Keys    KeysConfig    `yaml:"keys"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	SSH     SSHConfig     `yaml:"ssh"`
}

// RuntimeConfig defines the scheduler cadences.
type RuntimeConfig struct {
	FrameMS      int `yaml:"frame_ms" env:"LODE_FRAME_MS"`
	KeepAwakeMS  int `yaml:"keep_awake_ms" env:"LODE_KEEP_AWAKE_MS"`
	KeepAwakeMax int `yaml:"keep_awake_max"`
}

// KeysConfig is the device key table. Bindings map an action name to the
// key codes that trigger it.
type KeysConfig struct {
	SoftLeft  string              `yaml:"soft_left"`
	SoftRight string              `yaml:"soft_right"`
	Bindings  map[string][]string `yaml:"bindings"`
}

// StorageConfig locates the save database.
type StorageConfig struct {
	DB   string `yaml:"db" env:"LODE_DB"`
	Slot string `yaml:"slot" env:"LODE_SLOT"`
}

// LogConfig controls the log output.
type LogConfig struct {
	File  string `yaml:"file" env:"LODE_LOG_FILE"`
	Level string `yaml:"level" env:"LODE_LOG_LEVEL"`
}

// SSHConfig controls the remote play server.
type SSHConfig struct {
	Host    string `yaml:"host" env:"LODE_SSH_HOST"`
	Port    int    `yaml:"port" env:"LODE_SSH_PORT"`
	HostKey string `yaml:"host_key" env:"LODE_SSH_HOST_KEY"`
}

// FramePeriod returns the frame cadence.
func (c Config) FramePeriod() time.Duration {
	return time.Duration(c.Runtime.FrameMS) * time.Millisecond
}

// KeepAwakePeriod returns the keep-awake cadence.
func (c Config) KeepAwakePeriod() time.Duration {
	return time.Duration(c.Runtime.KeepAwakeMS) * time.Millisecond
}

// CoreConfig converts the config into the core runtime settings.
func (c Config) CoreConfig() core.RuntimeConfig {
	rc := core.DefaultConfig()
	rc.FramePeriod = c.FramePeriod()
	return rc
}

// KeyMap builds the key table. A key bound to two actions is an error.
func (c Config) KeyMap() (core.KeyMap, error) {
	km := make(core.KeyMap)

	// Sorted so a conflict is always reported the same way.
	names := make([]string, 0, len(c.Keys.Bindings))
	for name := range c.Keys.Bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		action, ok := core.ParseAction(name)
		if !ok || action == core.ActionNone {
			return nil, fmt.Errorf("config: unknown action %q", name)
		}
		for _, key := range c.Keys.Bindings[name] {
			code := core.KeyCode(key)
			if prev, ok := km[code]; ok && prev != action {
				return nil, fmt.Errorf("config: key %q bound to both %s and %s", key, prev, action)
			}
			km.Bind(action, code)
		}
	}
	return km, nil
}

// Validate checks the values that would break the runtime.
func (c Config) Validate() error {
	if c.Runtime.FrameMS <= 0 {
		return fmt.Errorf("config: runtime.frame_ms must be positive, got %d", c.Runtime.FrameMS)
	}
	if c.Runtime.KeepAwakeMS <= 0 {
		return fmt.Errorf("config: runtime.keep_awake_ms must be positive, got %d", c.Runtime.KeepAwakeMS)
	}
	if c.Runtime.KeepAwakeMax <= 0 {
		return fmt.Errorf("config: runtime.keep_awake_max must be positive, got %d", c.Runtime.KeepAwakeMax)
	}
	if c.Storage.Slot == "" {
		return fmt.Errorf("config: storage.slot must not be empty")
	}
	if c.SSH.Port <= 0 || c.SSH.Port > 65535 {
		return fmt.Errorf("config: ssh.port out of range: %d", c.SSH.Port)
	}
	if _, err := c.KeyMap(); err != nil {
		return err
	}
	return nil
}
