package core

// Action represents an abstract game action, resolved from a raw device key.
// Games only ever see actions; the key codes behind them come from the device.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // climb up
	ActionDown            // climb down
	ActionLeft            // run left
	ActionRight           // run right
	ActionFire            // primary action
	ActionContextA        // first context action (soft-left)
	ActionContextB        // second context action (soft-right)
	ActionMenu            // pause request while running
	ActionClear           // pause menu: clear solved levels
	ActionExit            // pause menu: leave the game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionFire:
		return "Fire"
	case ActionContextA:
		return "ContextA"
	case ActionContextB:
		return "ContextB"
	case ActionMenu:
		return "Menu"
	case ActionClear:
		return "Clear"
	case ActionExit:
		return "Exit"
	default:
		return "Unknown"
	}
}

// ParseAction is the inverse of Action.String. Matching is exact.
func ParseAction(s string) (Action, bool) {
	for a := ActionNone; a <= ActionExit; a++ {
		if a.String() == s {
			return a, true
		}
	}
	return ActionNone, false
}

// IsContext reports whether the action is one of the two context actions.
func (a Action) IsContext() bool {
	return a == ActionContextA || a == ActionContextB
}

// KeyCode is a raw key identifier as reported by the device ("left", "5", "*").
type KeyCode string

// Digit returns the numeric value of a digit key.
func (k KeyCode) Digit() (int, bool) {
	if len(k) != 1 || k[0] < '0' || k[0] > '9' {
		return 0, false
	}
	return int(k[0] - '0'), true
}

// KeyMap translates raw key codes to abstract actions.
type KeyMap map[KeyCode]Action

// Resolve returns the action bound to the key, or ActionNone.
func (m KeyMap) Resolve(k KeyCode) Action {
	if m == nil {
		return ActionNone
	}
	return m[k]
}

// Bind adds bindings for an action, replacing previous owners of the keys.
func (m KeyMap) Bind(a Action, keys ...KeyCode) {
	for _, k := range keys {
		m[k] = a
	}
}

// Keys returns every key bound to the action.
func (m KeyMap) Keys(a Action) []KeyCode {
	var keys []KeyCode
	for k, v := range m {
		if v == a {
			keys = append(keys, k)
		}
	}
	return keys
}
