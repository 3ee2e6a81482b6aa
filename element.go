package cascade

import (
	"maps"
	"slices"
)

// Constructor initializes an element that inherits a class. Every
// constructor of a class runs once per element, in registration order.
type Constructor func(e *Element, opts Options)

// Class is a named behavior: an ordered list of constructors. A class may be
// inherited before any constructor is defined for it; constructors defined
// afterwards only run on elements that inherit the class later.
type Class struct {
	Name         string
	constructors []Constructor
}

// Constructors returns how many constructors the class currently holds.
func (c *Class) Constructors() int {
	if c == nil {
		return 0
	}
	return len(c.constructors)
}

// Options are the creation parameters of an element. The geometry fields
// seed the element; Params carries free-form values for class constructors.
type Options struct {
	X      Optional[float64] `json:"x"`
	Y      Optional[float64] `json:"y"`
	W      Optional[float64] `json:"w"`
	H      Optional[float64] `json:"h"`
	Angle  Optional[float64] `json:"angle"`
	ZIndex Optional[float64] `json:"zIndex"`
	Anchor Optional[Vec2]    `json:"anchor"`
	Flip   Flip              `json:"flip"`
	Hidden Optional[bool]    `json:"hidden"`
	Params map[string]any    `json:"params,omitempty"`
}

// Param returns a constructor parameter, or nil if unset.
func (o Options) Param(name string) any {
	return o.Params[name]
}

// Element is a positioned, drawable entity with composed behavior and its own
// event table. Every geometry field is optional: an unset value is distinct
// from zero.
type Element struct {
	// ID is the stable identity given with "#id" at creation, without the
	// leading '#'. Empty for anonymous elements.
	ID string

	X, Y   Optional[float64]
	W, H   Optional[float64]
	Angle  Optional[float64] // degrees, clockwise
	ZIndex Optional[float64] // higher draws first (further back)
	Anchor Optional[Vec2]    // rotation pivot relative to X, Y
	Flip   Flip
	Hidden Optional[bool]

	// Attrs holds every attribute merged in that is not a geometry field.
	Attrs Attrs

	world    *World
	key      string
	classes  map[string]*Class
	drawings []drawingEntry
	events   eventTable
	removed  bool
}

type drawingEntry struct {
	key string
	d   *Drawing
}

// Attr implements Attributer. Geometry fields report under their lower-case
// names ("x", "y", "w", "h", "angle", "zIndex", "anchor", "flip", "hidden")
// and are missing while unset. Everything else comes from Attrs.
func (e *Element) Attr(name string) (any, bool) {
	switch name {
	case "id":
		if e.ID == "" {
			return nil, false
		}
		return e.ID, true
	case "x":
		return optionalAttr(e.X)
	case "y":
		return optionalAttr(e.Y)
	case "w":
		return optionalAttr(e.W)
	case "h":
		return optionalAttr(e.H)
	case "angle":
		return optionalAttr(e.Angle)
	case "zIndex":
		return optionalAttr(e.ZIndex)
	case "anchor":
		return optionalAttr(e.Anchor)
	case "flip":
		if e.Flip == 0 {
			return nil, false
		}
		return e.Flip.String(), true
	case "hidden":
		return optionalAttr(e.Hidden)
	}
	return e.Attrs.Attr(name)
}

func optionalAttr[T any](o Optional[T]) (any, bool) {
	v, ok := o.Get()
	if !ok {
		return nil, false
	}
	return v, true
}

// World returns the world the element was created in.
func (e *Element) World() *World { return e.world }

// Removed reports whether the element has been removed.
func (e *Element) Removed() bool { return e.removed }

// Classes returns the names of the inherited classes, sorted.
func (e *Element) Classes() []string {
	return slices.Sorted(maps.Keys(e.classes))
}

// Is reports whether the element inherits the class.
func (e *Element) Is(class string) bool {
	_, ok := e.classes[class]
	return ok
}

// Len implements Selection; an element is a selection of one.
func (e *Element) Len() int { return 1 }

// Elements implements Selection.
func (e *Element) Elements() []*Element { return []*Element{e} }

// Inherit applies every class of the space-separated list that the element
// does not inherit yet, running the constructors registered at this moment.
// Inheriting a class twice is a no-op. A constructor that removes the
// element stops the remaining constructors and classes.
func (e *Element) Inherit(classes string, opts Options) {
	for _, name := range splitClasses(classes) {
		if e.removed {
			return
		}
		if _, ok := e.classes[name]; ok {
			continue
		}
		c := e.world.class(name)
		e.classes[name] = c
		for _, fn := range slices.Clone(c.constructors) {
			if e.removed {
				return
			}
			fn(e, opts)
		}
	}
}

// Merge deep-merges attrs into the element. The keys "x", "y", "w", "h",
// "angle", "zIndex", "anchor", "flip" and "hidden" set the typed fields (a
// nil value unsets them); "id" is ignored; every other key merges into Attrs.
func (e *Element) Merge(attrs map[string]any) {
	if e.removed || attrs == nil {
		return
	}
	rest := make(map[string]any)
	for k, v := range attrs {
		if !e.mergeField(k, v) {
			rest[k] = v
		}
	}
	if len(rest) == 0 {
		return
	}
	if e.Attrs == nil {
		e.Attrs = make(Attrs)
	}
	Merge(e.Attrs, rest)
}

func (e *Element) mergeField(k string, v any) bool {
	var field *Optional[float64]
	switch k {
	case "id":
		return true
	case "x":
		field = &e.X
	case "y":
		field = &e.Y
	case "w":
		field = &e.W
	case "h":
		field = &e.H
	case "angle":
		field = &e.Angle
	case "zIndex":
		field = &e.ZIndex
	case "anchor":
		if p, ok := toVec2(v); ok {
			e.Anchor = Some(p)
		} else if v == nil {
			e.Anchor = Optional[Vec2]{}
		}
		return true
	case "flip":
		switch f := v.(type) {
		case string:
			e.Flip = ParseFlip(f)
		case Flip:
			e.Flip = f
		case nil:
			e.Flip = 0
		}
		return true
	case "hidden":
		switch b := v.(type) {
		case bool:
			e.Hidden = Some(b)
		case nil:
			e.Hidden = Optional[bool]{}
		}
		return true
	default:
		return false
	}
	if f, ok := toFloat(v); ok {
		*field = Some(f)
	} else if v == nil {
		*field = Optional[float64]{}
	}
	return true
}

// toVec2 reads a point given as a Vec2, an {x, y} object, or an [x, y] pair.
func toVec2(v any) (Vec2, bool) {
	switch p := v.(type) {
	case Vec2:
		return p, true
	case *Vec2:
		if p != nil {
			return *p, true
		}
	case map[string]any:
		x, xok := toFloat(p["x"])
		y, yok := toFloat(p["y"])
		if xok && yok {
			return Vec2{x, y}, true
		}
	case []float64:
		if len(p) == 2 {
			return Vec2{p[0], p[1]}, true
		}
	case []any:
		if len(p) == 2 {
			x, xok := toFloat(p[0])
			y, yok := toFloat(p[1])
			if xok && yok {
				return Vec2{x, y}, true
			}
		}
	}
	return Vec2{}, false
}

// Remove fires "remove" on the element and takes it out of the world. Every
// later call on the element is a no-op.
func (e *Element) Remove() {
	if e.removed {
		return
	}
	e.removed = true
	e.Trigger(EventRemove)
	e.world.unregister(e)
}

// Bind registers fn on an element event "name[.namespace]".
func (e *Element) Bind(spec string, fn Handler) Binding {
	if e.removed || fn == nil {
		return Binding{}
	}
	return e.events.bind(spec, fn)
}

// Unbind deletes the handler list of one namespace of an element event. With
// no namespace in spec the default namespace is deleted.
func (e *Element) Unbind(spec string) {
	if e.removed {
		return
	}
	e.events.unbindNamespace(spec)
}

// UnbindAll deletes every namespace of an element event.
func (e *Element) UnbindAll(spec string) {
	if e.removed {
		return
	}
	e.events.unbindEvent(spec)
}

// Trigger synchronously fires an element event with args. Element events are
// not paused with the world. A removed element only fires "remove".
func (e *Element) Trigger(spec string, args ...any) {
	if e.removed && spec != EventRemove {
		return
	}
	e.events.dispatch(spec, e, args)
}

// Became calls fn on the frame the element starts matching spec, evaluated
// once per frame tick. It fires again only after the element stopped
// matching in between.
func (e *Element) Became(spec Spec, fn func(e *Element)) Binding {
	if e.removed || fn == nil {
		return Binding{}
	}
	matched := false
	return e.watch(EventEnterFrame, func(Event) {
		now := spec.Matches(e)
		if !matched && now {
			fn(e)
		}
		matched = now
	})
}

// While calls fn on every frame tick the element matches spec.
func (e *Element) While(spec Spec, fn func(e *Element)) Binding {
	if e.removed || fn == nil {
		return Binding{}
	}
	return e.watch(EventEnterFrame, func(Event) {
		if spec.Matches(e) {
			fn(e)
		}
	})
}

// OnClick calls fn on every global click that lands inside the element's
// box, edges included. Elements without a full box never match.
func (e *Element) OnClick(fn func(e *Element)) Binding {
	if e.removed || fn == nil {
		return Binding{}
	}
	return e.watch(EventClick, func(ev Event) {
		p, ok := ev.Arg(0).(Pointer)
		if !ok {
			return
		}
		if box, ok := e.Bounds(); ok && box.Contains(p.X, p.Y) {
			fn(e)
		}
	})
}

// watch binds fn on a global event and drops the binding once the element
// has been removed.
func (e *Element) watch(event string, fn Handler) Binding {
	var b Binding
	b = e.world.Bind(event, func(ev Event) {
		if e.removed {
			b.Unbind()
			return
		}
		fn(ev)
	})
	return b
}

// Bounds returns the element's axis-aligned box. ok is false unless X, Y, W
// and H are all set.
func (e *Element) Bounds() (r Rect, ok bool) {
	x, xok := e.X.Get()
	y, yok := e.Y.Get()
	w, wok := e.W.Get()
	h, hok := e.H.Get()
	if !xok || !yok || !wok || !hok {
		return Rect{}, false
	}
	return Rect{X: x, Y: y, Width: w, Height: h}, true
}

// --- Drawings ---

// SetDrawing adds or replaces the drawing stored under key. Drawings keep the
// order they were first added in.
func (e *Element) SetDrawing(key string, d *Drawing) {
	if e.removed || d == nil {
		return
	}
	for i := range e.drawings {
		if e.drawings[i].key == key {
			e.drawings[i].d = d
			return
		}
	}
	e.drawings = append(e.drawings, drawingEntry{key: key, d: d})
}

// SetDrawFunc stores a draw callback under key.
func (e *Element) SetDrawFunc(key string, fn DrawFunc) {
	if fn == nil {
		return
	}
	e.SetDrawing(key, &Drawing{Func: fn})
}

// Drawing returns the drawing stored under key, or nil.
func (e *Element) Drawing(key string) *Drawing {
	for _, en := range e.drawings {
		if en.key == key {
			return en.d
		}
	}
	return nil
}

// DeleteDrawing removes the drawing stored under key.
func (e *Element) DeleteDrawing(key string) {
	if e.removed {
		return
	}
	e.drawings = slices.DeleteFunc(e.drawings, func(en drawingEntry) bool {
		return en.key == key
	})
}

// DrawingKeys returns the drawing keys in insertion order.
func (e *Element) DrawingKeys() []string {
	keys := make([]string, len(e.drawings))
	for i, en := range e.drawings {
		keys[i] = en.key
	}
	return keys
}

// HideAllDrawings hides every drawing of the element.
func (e *Element) HideAllDrawings() {
	if e.removed {
		return
	}
	for _, en := range e.drawings {
		en.d.Hidden = true
	}
}

// ToggleDrawings hides the drawing under hide and shows the one under show.
// Missing keys are ignored.
func (e *Element) ToggleDrawings(hide, show string) {
	if e.removed {
		return
	}
	if d := e.Drawing(hide); d != nil {
		d.Hidden = true
	}
	if d := e.Drawing(show); d != nil {
		d.Hidden = false
	}
}
