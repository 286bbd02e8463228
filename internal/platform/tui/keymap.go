package tui

import (
	"sort"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"

	"github.com/vovakirdan/tui-lode/internal/config"
	"github.com/vovakirdan/tui-lode/internal/core"
	"github.com/vovakirdan/tui-lode/internal/engine"
)

// Capabilities is the terminal's key table, read once from the config.
type Capabilities struct {
	softLeft  core.KeyCode
	softRight core.KeyCode
	keys      core.KeyMap
}

var _ engine.Capabilities = (*Capabilities)(nil)

// NewCapabilities builds the key table from the config.
func NewCapabilities(cfg config.Config) (*Capabilities, error) {
	km, err := cfg.KeyMap()
	if err != nil {
		return nil, err
	}
	return &Capabilities{
		softLeft:  core.KeyCode(cfg.Keys.SoftLeft),
		softRight: core.KeyCode(cfg.Keys.SoftRight),
		keys:      km,
	}, nil
}

// SoftKeys implements engine.Capabilities.
func (c *Capabilities) SoftKeys() (left, right core.KeyCode) {
	return c.softLeft, c.softRight
}

// KeyMap implements engine.Capabilities.
func (c *Capabilities) KeyMap() core.KeyMap {
	return c.keys
}

// Legend is the key help drawn under the game. It implements help.KeyMap.
type Legend struct {
	Quit key.Binding
	Help key.Binding

	actions map[core.Action]key.Binding
}

var _ help.KeyMap = Legend{}

// legendText names each action the way the player sees it.
var legendText = map[core.Action]string{
	core.ActionUp:       "up",
	core.ActionDown:     "down",
	core.ActionLeft:     "left",
	core.ActionRight:    "right",
	core.ActionFire:     "fire/play",
	core.ActionContextA: "dig left/next level",
	core.ActionContextB: "dig right/suicide",
	core.ActionMenu:     "menu",
	core.ActionClear:    "clear solved",
	core.ActionExit:     "exit",
}

// NewLegend builds the key help from the capabilities.
func NewLegend(caps *Capabilities) Legend {
	l := Legend{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		actions: make(map[core.Action]key.Binding),
	}

	for a, text := range legendText {
		codes := caps.keys.Keys(a)
		switch a {
		case core.ActionContextA:
			codes = append(codes, caps.softLeft)
		case core.ActionContextB:
			codes = append(codes, caps.softRight)
		}
		keys := keyNames(codes)
		if len(keys) == 0 {
			continue
		}
		l.actions[a] = key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(displayKey(keys[0]), text),
		)
	}
	return l
}

// keyNames returns the non-empty codes, named keys before single characters.
func keyNames(codes []core.KeyCode) []string {
	var keys []string
	for _, c := range codes {
		if c != "" {
			keys = append(keys, string(c))
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

func displayKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func (l Legend) bindings(actions ...core.Action) []key.Binding {
	var out []key.Binding
	for _, a := range actions {
		if b, ok := l.actions[a]; ok {
			out = append(out, b)
		}
	}
	return out
}

// ShortHelp implements help.KeyMap.
func (l Legend) ShortHelp() []key.Binding {
	return append(l.bindings(core.ActionFire, core.ActionMenu), l.Help, l.Quit)
}

// FullHelp implements help.KeyMap.
func (l Legend) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		l.bindings(core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight),
		l.bindings(core.ActionFire, core.ActionContextA, core.ActionContextB),
		append(l.bindings(core.ActionMenu, core.ActionClear, core.ActionExit), l.Help, l.Quit),
	}
}
