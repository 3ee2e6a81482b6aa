package ebitenhost

import "github.com/hajimehoshi/ebiten/v2"

// keyCodes maps ebiten keys to the virtual key codes cascade uses. Keys
// without an entry are ignored.
var keyCodes = map[ebiten.Key]int{
	ebiten.KeyBackspace:    8,
	ebiten.KeyEnter:        13,
	ebiten.KeyNumpadEnter:  13,
	ebiten.KeyShiftLeft:    16,
	ebiten.KeyShiftRight:   16,
	ebiten.KeyControlLeft:  17,
	ebiten.KeyControlRight: 17,
	ebiten.KeyAltLeft:      18,
	ebiten.KeyAltRight:     18,
	ebiten.KeyCapsLock:     20,
	ebiten.KeyEscape:       27,
	ebiten.KeyPageUp:       33,
	ebiten.KeyPageDown:     34,
	ebiten.KeyEnd:          35,
	ebiten.KeyHome:         36,
	ebiten.KeyArrowLeft:    37,
	ebiten.KeyArrowUp:      38,
	ebiten.KeyArrowRight:   39,
	ebiten.KeyArrowDown:    40,
	ebiten.KeyPrintScreen:  44,
	ebiten.KeyInsert:       45,
	ebiten.KeyDelete:       46,
	ebiten.KeyMetaLeft:     91,
	ebiten.KeyMetaRight:    91,
}

func init() {
	for i, k := range []ebiten.Key{
		ebiten.KeyDigit0, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
		ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
	} {
		keyCodes[k] = '0' + i
	}
	for i, k := range []ebiten.Key{
		ebiten.KeyA, ebiten.KeyB, ebiten.KeyC, ebiten.KeyD, ebiten.KeyE, ebiten.KeyF, ebiten.KeyG,
		ebiten.KeyH, ebiten.KeyI, ebiten.KeyJ, ebiten.KeyK, ebiten.KeyL, ebiten.KeyM, ebiten.KeyN,
		ebiten.KeyO, ebiten.KeyP, ebiten.KeyQ, ebiten.KeyR, ebiten.KeyS, ebiten.KeyT, ebiten.KeyU,
		ebiten.KeyV, ebiten.KeyW, ebiten.KeyX, ebiten.KeyY, ebiten.KeyZ,
	} {
		keyCodes[k] = 'A' + i
	}
	for i, k := range []ebiten.Key{
		ebiten.KeyF1, ebiten.KeyF2, ebiten.KeyF3, ebiten.KeyF4, ebiten.KeyF5, ebiten.KeyF6,
		ebiten.KeyF7, ebiten.KeyF8, ebiten.KeyF9, ebiten.KeyF10, ebiten.KeyF11, ebiten.KeyF12,
	} {
		keyCodes[k] = 112 + i
	}
}

// KeyCode returns the virtual key code of an ebiten key.
func KeyCode(k ebiten.Key) (int, bool) {
	code, ok := keyCodes[k]
	return code, ok
}
