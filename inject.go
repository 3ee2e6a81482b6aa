package cascade

// syntheticKind tags one queued input.
type syntheticKind uint8

const (
	syntheticClick syntheticKind = iota
	syntheticRightClick
	syntheticKeyDown
	syntheticKeyUp
)

// syntheticInput is a single injected input, applied at the start of a
// frame exactly like host input.
type syntheticInput struct {
	kind syntheticKind
	x, y float64
	code int
}

type injectQueue []syntheticInput

// InjectClick queues a left click at surface coordinates. Queued input is
// applied one event per frame, before "enterframe".
func (w *World) InjectClick(x, y float64) {
	w.inject = append(w.inject, syntheticInput{kind: syntheticClick, x: x, y: y})
}

// InjectRightClick queues a right click.
func (w *World) InjectRightClick(x, y float64) {
	w.inject = append(w.inject, syntheticInput{kind: syntheticRightClick, x: x, y: y})
}

// InjectKeyDown queues a key press by combo name, e.g. "LEFT" or "a".
// Unknown names are dropped.
func (w *World) InjectKeyDown(name string) {
	if code, ok := KeyCode(name); ok {
		w.inject = append(w.inject, syntheticInput{kind: syntheticKeyDown, code: code})
	}
}

// InjectKeyUp queues a key release by combo name.
func (w *World) InjectKeyUp(name string) {
	if code, ok := KeyCode(name); ok {
		w.inject = append(w.inject, syntheticInput{kind: syntheticKeyUp, code: code})
	}
}

// InjectKeyTap queues a press followed by a release. Consumes two frames.
func (w *World) InjectKeyTap(name string) {
	w.InjectKeyDown(name)
	w.InjectKeyUp(name)
}

// PendingInput returns how many injected inputs are still queued.
func (w *World) PendingInput() int { return len(w.inject) }

// processInjectedInput pops and applies one queued input. Returns true if an
// input was consumed.
func (w *World) processInjectedInput() bool {
	if len(w.inject) == 0 {
		return false
	}
	in := w.inject[0]
	copy(w.inject, w.inject[1:])
	w.inject = w.inject[:len(w.inject)-1]

	switch in.kind {
	case syntheticClick:
		w.Click(in.x, in.y)
	case syntheticRightClick:
		w.RightClick(in.x, in.y)
	case syntheticKeyDown:
		w.KeyDown(in.code)
	case syntheticKeyUp:
		w.KeyUp(in.code)
	}
	return true
}
