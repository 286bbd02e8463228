package engine

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-lode/internal/core"
)

// Capabilities describes the input device. It is probed once, at startup,
// by the platform adapter.
type Capabilities interface {
	// SoftKeys returns the codes of the two context keys. Either may be
	// empty when the device has none.
	SoftKeys() (left, right core.KeyCode)

	// KeyMap returns the raw-to-action mapping table.
	KeyMap() core.KeyMap
}

// Controls receives actions while the session is running.
type Controls interface {
	// Act forwards an action to the playable entity. It returns false when
	// the action was rejected, e.g. no entity is loaded.
	Act(a core.Action) bool
}

// Key is one key press as a pause menu sees it.
type Key struct {
	Code core.KeyCode

	// Action is the resolved action, with context actions suppressed.
	Action core.Action

	// Soft is ContextA or ContextB when Code is one of the soft keys.
	Soft core.Action
}

// PauseMenu handles keys while the session is paused.
type PauseMenu interface {
	// PausedKey returns true when the key was consumed.
	PausedKey(k Key) bool
}

// Dispatcher turns raw key codes into actions, gated by the session state.
type Dispatcher struct {
	session  *Session
	caps     Capabilities
	controls Controls
	menu     PauseMenu
	logger   *log.Logger

	keys        core.KeyMap
	left, right core.KeyCode
}

// NewDispatcher creates a dispatcher. menu may be nil.
func NewDispatcher(s *Session, caps Capabilities, controls Controls, menu PauseMenu) *Dispatcher {
	d := &Dispatcher{
		session:  s,
		caps:     caps,
		controls: controls,
		menu:     menu,
		logger:   s.logger,
		keys:     caps.KeyMap(),
	}
	d.left, d.right = caps.SoftKeys()
	return d
}

// Resolve maps a key code to an action. While paused, context actions
// resolve to ActionNone.
func (d *Dispatcher) Resolve(code core.KeyCode) core.Action {
	a := d.resolve(code)
	if a.IsContext() && d.session.Paused() {
		return core.ActionNone
	}
	return a
}

func (d *Dispatcher) resolve(code core.KeyCode) core.Action {
	if a := d.keys.Resolve(code); a != core.ActionNone {
		return a
	}
	return d.soft(code)
}

func (d *Dispatcher) soft(code core.KeyCode) core.Action {
	switch {
	case code == "":
		return core.ActionNone
	case code == d.left:
		return core.ActionContextA
	case code == d.right:
		return core.ActionContextB
	default:
		return core.ActionNone
	}
}

// KeyPressed handles one key press.
func (d *Dispatcher) KeyPressed(code core.KeyCode) {
	action := d.Resolve(code)

	if !d.session.Paused() && action == core.ActionMenu {
		d.session.Pause()
		return
	}

	if d.session.Paused() {
		if d.menu != nil && d.menu.PausedKey(Key{Code: code, Action: action, Soft: d.soft(code)}) {
			d.session.RequestRepaint(UrgencyKey)
			return
		}
		if d.session.surface.Visible() {
			d.session.Resume()
		}
	}

	if action != core.ActionNone && !d.session.Paused() {
		if !d.controls.Act(action) {
			d.logger.Debug("action rejected", "action", action)
		}
	}

	d.session.RequestRepaint(UrgencyKey)
}
