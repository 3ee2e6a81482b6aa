package cascade

import (
	"maps"
	"slices"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenNamespace is the enterframe namespace tweens bind under, so
// World.Unbind("enterframe.tween") stops every running tween.
const TweenNamespace = "tween"

// Tween animates numeric attributes of an element. Durations are counted in
// frame ticks. Values are written through Element.Merge, so geometry fields
// and free attributes animate alike. If the element is removed the tween
// stops without further writes.
type Tween struct {
	tweens []*gween.Tween
	attrs  []string
	ends   []float64
	target *Element
	Done   bool
}

// NewTween creates a tween from the element's current values to the values
// in to over the given number of frames. Attributes without a numeric value
// start from 0. A nil fn eases linearly.
func NewTween(e *Element, to map[string]float64, frames int, fn ease.TweenFunc) *Tween {
	if fn == nil {
		fn = ease.Linear
	}
	t := &Tween{target: e}
	for _, name := range slices.Sorted(maps.Keys(to)) {
		var from float64
		if v, ok := e.Attr(name); ok {
			from, _ = toFloat(v)
		}
		t.attrs = append(t.attrs, name)
		t.ends = append(t.ends, to[name])
		t.tweens = append(t.tweens, gween.New(float32(from), float32(to[name]), float32(max(frames, 0)), fn))
	}
	return t
}

// Update advances the tween by the given number of frames and writes the
// values. The final write is the exact target value.
func (t *Tween) Update(frames float32) {
	if t.Done {
		return
	}
	if t.target == nil || t.target.removed {
		t.Done = true
		return
	}
	values := make(map[string]any, len(t.attrs))
	allDone := true
	for i, tw := range t.tweens {
		val, finished := tw.Update(frames)
		if finished {
			values[t.attrs[i]] = t.ends[i]
			continue
		}
		values[t.attrs[i]] = float64(val)
		allDone = false
	}
	t.target.Merge(values)
	t.Done = allDone
}

// TweenTo animates one attribute to a value over frames ticks, advancing once
// per "enterframe". The returned Binding cancels the tween; it also unbinds
// itself when done or when the element is removed.
func (e *Element) TweenTo(attr string, to float64, frames int, fn ease.TweenFunc) Binding {
	return e.TweenAttrs(map[string]float64{attr: to}, frames, fn)
}

// TweenAttrs animates several attributes together.
func (e *Element) TweenAttrs(to map[string]float64, frames int, fn ease.TweenFunc) Binding {
	if e.removed || len(to) == 0 {
		return Binding{}
	}
	if frames <= 0 {
		values := make(map[string]any, len(to))
		for k, v := range to {
			values[k] = v
		}
		e.Merge(values)
		return Binding{}
	}
	t := NewTween(e, to, frames, fn)
	var b Binding
	b = e.world.Bind(EventEnterFrame+"."+TweenNamespace, func(Event) {
		t.Update(1)
		if t.Done {
			b.Unbind()
		}
	})
	return b
}
