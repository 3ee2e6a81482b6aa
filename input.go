package cascade

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// --- Key table ---

// keyNames maps virtual key codes to the names used in key combos.
var keyNames = map[int]string{
	8:  "BACKSPACE",
	13: "ENTER",
	16: "SHIFT",
	17: "CTRL",
	18: "ALT",
	20: "CAPSLOCK",
	27: "ESC",
	33: "PGUP",
	34: "PGDOWN",
	35: "END",
	36: "HOME",
	37: "LEFT",
	38: "UP",
	39: "RIGHT",
	40: "DOWN",
	44: "PRINTSCREEN",
	45: "INSERT",
	46: "DEL",
	91: "WIN",
}

var keyCodes = map[string]int{}

func init() {
	for c := '0'; c <= '9'; c++ {
		keyNames[int(c)] = string(c)
	}
	for c := 'A'; c <= 'Z'; c++ {
		keyNames[int(c)] = string(c)
	}
	for i := 1; i <= 12; i++ {
		keyNames[111+i] = "F" + strconv.Itoa(i)
	}
	for code, name := range keyNames {
		keyCodes[name] = code
	}
}

// KeyName returns the combo name of a virtual key code.
func KeyName(code int) (string, bool) {
	name, ok := keyNames[code]
	return name, ok
}

// KeyCode returns the virtual key code of a combo name, case-insensitively.
func KeyCode(name string) (int, bool) {
	code, ok := keyCodes[normalizeKeys(name)]
	return code, ok
}

// KeyEvent is the payload of "keydown" and "keyup" events. Name is empty for
// codes outside the key table.
type KeyEvent struct {
	Code int
	Name string
}

// normalizeKeys upper-cases a combo and strips all whitespace.
func normalizeKeys(s string) string {
	s = cases.Upper(language.Und).String(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// parseCombo splits a "+"-joined combo such as "Ctrl + Up + A".
func parseCombo(keys string) []string {
	return strings.Split(normalizeKeys(keys), "+")
}

// --- Key state ---

type keyState struct {
	pressed map[string]bool
}

func newKeyState() keyState {
	return keyState{pressed: make(map[string]bool)}
}

// KeyDown records a key press and triggers "keydown" with a KeyEvent. The
// pressed set is updated even while the world is paused.
func (w *World) KeyDown(code int) {
	name, ok := KeyName(code)
	if ok {
		w.keys.pressed[name] = true
	}
	w.Trigger(EventKeyDown, KeyEvent{Code: code, Name: name})
}

// KeyUp records a key release and triggers "keyup" with a KeyEvent.
func (w *World) KeyUp(code int) {
	name, ok := KeyName(code)
	if ok {
		delete(w.keys.pressed, name)
	}
	w.Trigger(EventKeyUp, KeyEvent{Code: code, Name: name})
}

// PressKey is KeyDown by combo name. Unknown names are ignored.
func (w *World) PressKey(name string) {
	if code, ok := KeyCode(name); ok {
		w.KeyDown(code)
	}
}

// ReleaseKey is KeyUp by combo name. Unknown names are ignored.
func (w *World) ReleaseKey(name string) {
	if code, ok := KeyCode(name); ok {
		w.KeyUp(code)
	}
}

// PressedKeys returns how many keys are held.
func (w *World) PressedKeys() int { return len(w.keys.pressed) }

// IsNoKeyPressed reports whether no key is held.
func (w *World) IsNoKeyPressed() bool { return len(w.keys.pressed) == 0 }

// IsKeysPressed reports whether every key of the combo is held.
func (w *World) IsKeysPressed(keys string) bool {
	for _, k := range parseCombo(keys) {
		if !w.keys.pressed[k] {
			return false
		}
	}
	return true
}

// IsKeysPressedOnly reports whether every key of the combo is held and no
// other key is.
func (w *World) IsKeysPressedOnly(keys string) bool {
	want := make(map[string]bool)
	for _, k := range parseCombo(keys) {
		if !w.keys.pressed[k] {
			return false
		}
		want[k] = true
	}
	for k := range w.keys.pressed {
		if !want[k] {
			return false
		}
	}
	return true
}

// OnKeysDown calls fn on every keydown while the whole combo is held.
func (w *World) OnKeysDown(keys string, fn func(KeyEvent)) Binding {
	return w.Bind(EventKeyDown, func(ev Event) {
		if w.IsKeysPressed(keys) {
			fn(keyEventOf(ev))
		}
	})
}

// OnKeysDownOnly calls fn on every keydown while exactly the combo is held.
func (w *World) OnKeysDownOnly(keys string, fn func(KeyEvent)) Binding {
	return w.Bind(EventKeyDown, func(ev Event) {
		if w.IsKeysPressedOnly(keys) {
			fn(keyEventOf(ev))
		}
	})
}

// OnKeysComboEnd calls fn when a key of the combo is released while the rest
// of the combo is still held and nothing outside the combo is.
func (w *World) OnKeysComboEnd(keys string, fn func(KeyEvent)) Binding {
	return w.Bind(EventKeyUp, func(ev Event) {
		ke := keyEventOf(ev)
		want := make(map[string]bool)
		for _, k := range parseCombo(keys) {
			if !w.keys.pressed[k] && k != ke.Name {
				return
			}
			want[k] = true
		}
		if !want[ke.Name] {
			return
		}
		for k := range w.keys.pressed {
			if !want[k] {
				return
			}
		}
		fn(ke)
	})
}

func keyEventOf(ev Event) KeyEvent {
	ke, _ := ev.Arg(0).(KeyEvent)
	return ke
}

// --- Pointer ---

// Click triggers "click" with a left-button Pointer at (x, y).
func (w *World) Click(x, y float64) {
	w.Trigger(EventClick, Pointer{X: x, Y: y, Button: MouseButtonLeft})
}

// RightClick triggers "rightclick" with a right-button Pointer at (x, y).
func (w *World) RightClick(x, y float64) {
	w.Trigger(EventRightClick, Pointer{X: x, Y: y, Button: MouseButtonRight})
}
