package cascade

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Vec2 is a 2D vector used for positions, anchors, offsets, and polygon points.
type Vec2 struct {
	X, Y float64
}

// Attr exposes the components as "x" and "y" so nested match specs can
// descend into anchors and other point-valued attributes.
func (v Vec2) Attr(name string) (any, bool) {
	switch name {
	case "x":
		return v.X, true
	case "y":
		return v.Y, true
	}
	return nil, false
}

// UnmarshalJSON accepts both the object form {"x": 1, "y": 2} and the
// array form [1, 2].
func (v *Vec2) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var pair []float64
		if err := json.Unmarshal(data, &pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("point: want 2 coordinates, got %d", len(pair))
		}
		v.X, v.Y = pair[0], pair[1]
		return nil
	}
	var obj struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	v.X, v.Y = obj.X, obj.Y
	return nil
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Optional holds a value that may be absent. An absent value is distinct from
// the zero value: an element with no z-order sorts differently from one with
// z-order 0.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// Or returns the value, or def when absent.
func (o Optional[T]) Or(def T) T {
	if !o.set {
		return def
	}
	return o.value
}

// IsSet reports whether a value is present.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// MarshalJSON encodes an absent value as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON decodes null as absent.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*o = Optional[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// Flip is a bitmask of mirror axes.
type Flip uint8

const (
	FlipX Flip = 1 << iota // mirror horizontally
	FlipY                  // mirror vertically
)

// ParseFlip reads the axis letters of s: any "x" sets FlipX and any "y" sets
// FlipY. Other characters are ignored.
func ParseFlip(s string) Flip {
	var f Flip
	if strings.ContainsAny(s, "xX") {
		f |= FlipX
	}
	if strings.ContainsAny(s, "yY") {
		f |= FlipY
	}
	return f
}

// Has reports whether every axis in axis is set.
func (f Flip) Has(axis Flip) bool {
	return f&axis == axis
}

// String returns the axis letters, e.g. "xy".
func (f Flip) String() string {
	var b strings.Builder
	if f.Has(FlipX) {
		b.WriteByte('x')
	}
	if f.Has(FlipY) {
		b.WriteByte('y')
	}
	return b.String()
}

// MarshalJSON encodes the flip as its axis letters.
func (f Flip) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// UnmarshalJSON decodes axis letters such as "x", "y", or "xy".
func (f *Flip) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("flip: %w", err)
	}
	*f = ParseFlip(s)
	return nil
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft  MouseButton = iota // primary (left) mouse button
	MouseButtonRight                    // secondary (right) mouse button
)

// Pointer is the payload of "click" and "rightclick" events, in surface
// coordinates.
type Pointer struct {
	X, Y   float64
	Button MouseButton
}

// Reserved event names dispatched by the framework itself.
const (
	EventEnterFrame = "enterframe" // once per frame tick, before drawing
	EventClick      = "click"      // primary pointer click; args[0] is a Pointer
	EventRightClick = "rightclick" // secondary pointer click; args[0] is a Pointer
	EventKeyDown    = "keydown"    // args[0] is a KeyEvent
	EventKeyUp      = "keyup"      // args[0] is a KeyEvent
	EventRemove     = "remove"     // fired on an element exactly once, on removal
)
