package core

import "testing"

func TestKeyCodeDigit(t *testing.T) {
	tests := []struct {
		key   KeyCode
		digit int
		ok    bool
	}{
		{"0", 0, true},
		{"7", 7, true},
		{"9", 9, true},
		{"a", 0, false},
		{"10", 0, false},
		{"", 0, false},
		{"*", 0, false},
	}

	for _, tc := range tests {
		d, ok := tc.key.Digit()
		if d != tc.digit || ok != tc.ok {
			t.Errorf("Digit(%q) = (%d, %v), expected (%d, %v)", tc.key, d, ok, tc.digit, tc.ok)
		}
	}
}

func TestKeyMapResolve(t *testing.T) {
	m := KeyMap{}
	m.Bind(ActionLeft, "left", "4")
	m.Bind(ActionFire, "enter")

	if m.Resolve("4") != ActionLeft {
		t.Errorf("Resolve(4) = %v, expected Left", m.Resolve("4"))
	}
	if m.Resolve("x") != ActionNone {
		t.Errorf("Resolve(x) = %v, expected None", m.Resolve("x"))
	}

	var empty KeyMap
	if empty.Resolve("left") != ActionNone {
		t.Error("nil KeyMap should resolve to None")
	}

	if keys := m.Keys(ActionLeft); len(keys) != 2 {
		t.Errorf("Keys(Left) = %v, expected 2 keys", keys)
	}
}

func TestParseAction(t *testing.T) {
	for a := ActionNone; a <= ActionExit; a++ {
		got, ok := ParseAction(a.String())
		if !ok || got != a {
			t.Errorf("ParseAction(%q) = (%v, %v)", a.String(), got, ok)
		}
	}
	if _, ok := ParseAction("Jump"); ok {
		t.Error("ParseAction(Jump) should fail")
	}
}
