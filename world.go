package cascade

import (
	"slices"
	"strconv"
	"strings"
)

// World owns everything a scene needs: the element registry, the class
// table, the global event bus with its running flag, the frame counter, the
// screen, input state, and the resource cache. Worlds are independent; all
// calls on one world must come from a single goroutine (the frame thread).
type World struct {
	elements map[string]*Element
	order    []string
	nextKey  int

	classes map[string]*Class

	handlerIDs uint64
	bus        eventTable
	running    bool

	step   int
	screen Rect

	graphics  Graphics
	keys      keyState
	resources *ResourceCache
	sink      EventSink
	debug     bool

	inject     injectQueue
	script     *ScriptRunner
	snapshots  []string
	onSnapshot SnapshotFunc
}

// NewWorld creates a running world that draws onto g. g may be nil for a
// world that only runs behavior; SetGraphics can attach one later.
func NewWorld(g Graphics) *World {
	w := &World{
		elements: make(map[string]*Element),
		classes:  make(map[string]*Class),
		running:  true,
		graphics: g,
		keys:     newKeyState(),
	}
	w.bus = newEventTable(&w.handlerIDs)
	w.resources = NewResourceCache(FileLoader{})
	if g != nil {
		sw, sh := g.Size()
		w.screen.Width, w.screen.Height = sw, sh
	}
	return w
}

// SetGraphics attaches the drawing surface.
func (w *World) SetGraphics(g Graphics) { w.graphics = g }

// Graphics returns the drawing surface, or nil.
func (w *World) Graphics() Graphics { return w.graphics }

// SetEventSink forwards every dispatched global event to sink. Pass nil to
// stop forwarding.
func (w *World) SetEventSink(sink EventSink) { w.sink = sink }

// SetDebugMode enables per-frame timing and skipped-sprite logs.
func (w *World) SetDebugMode(on bool) { w.debug = on }

// Step returns the number of frames drawn so far.
func (w *World) Step() int { return w.step }

// Screen returns the logical screen: X and Y are the camera offset applied to
// every element, Width and Height the surface size seen at the last frame.
func (w *World) Screen() Rect { return w.screen }

// SetScreenSize overrides the logical screen size until the next frame reads
// it from the surface.
func (w *World) SetScreenSize(width, height float64) {
	w.screen.Width, w.screen.Height = width, height
}

// SetScreenCenter moves the camera so that the world point (x, y) is drawn at
// the center of the screen.
func (w *World) SetScreenCenter(x, y float64) {
	w.screen.X = w.screen.Width/2 - x
	w.screen.Y = w.screen.Height/2 - y
}

// --- Running state ---

// Pause stops global triggers and frame ticks. Input state keeps tracking.
func (w *World) Pause() { w.running = false }

// Play resumes global triggers and frame ticks.
func (w *World) Play() { w.running = true }

// Running reports whether the world is playing.
func (w *World) Running() bool { return w.running }

// --- Global events ---

// Bind registers fn on a global event "name[.namespace]". Handlers of one
// namespace run in registration order.
func (w *World) Bind(spec string, fn Handler) Binding {
	if fn == nil {
		return Binding{}
	}
	return w.bus.bind(spec, fn)
}

// Unbind deletes the handler list of one namespace of a global event. With no
// namespace in spec the default namespace is deleted; other namespaces keep
// firing.
func (w *World) Unbind(spec string) {
	w.bus.unbindNamespace(spec)
}

// UnbindAll deletes every namespace of a global event.
func (w *World) UnbindAll(spec string) {
	w.bus.unbindEvent(spec)
}

// Trigger synchronously fires a global event with args. Nothing fires while
// the world is paused. Triggering the default namespace fires every
// namespace of the event; a named namespace fires only its own handlers.
func (w *World) Trigger(spec string, args ...any) {
	if !w.running {
		return
	}
	ev, _ := w.bus.dispatch(spec, nil, args)
	if w.sink != nil {
		w.sink.EmitEvent(ev)
	}
}

// Handlers returns how many handlers a trigger of spec would fire right now.
func (w *World) Handlers(spec string) int {
	return w.bus.count(spec)
}

// --- Classes ---

// Def appends fn to the constructors of every class in the space-separated
// list. Elements that already inherit a class are not affected.
func (w *World) Def(classes string, fn Constructor) {
	if fn == nil {
		return
	}
	for _, name := range splitClasses(classes) {
		c := w.class(name)
		c.constructors = append(c.constructors, fn)
	}
}

// Class returns the class record of name, or nil if it was never defined or
// inherited.
func (w *World) Class(name string) *Class {
	return w.classes[name]
}

// class returns the record of name, creating an empty one for forward
// references.
func (w *World) class(name string) *Class {
	c, ok := w.classes[name]
	if !ok {
		c = &Class{Name: name}
		w.classes[name] = c
	}
	return c
}

func splitClasses(s string) []string {
	return strings.Fields(s)
}

// --- Elements ---

// New creates and registers an element. specs is "[#id] [Class ...]": the id
// token names the element and every other token is a class it inherits, in
// order, with opts passed to each constructor. Creating an element with the
// id of a live element removes the old one first.
func (w *World) New(specs string, opts Options) *Element {
	id, classes := parseSpecs(specs)
	e := &Element{
		ID:      id,
		X:       opts.X,
		Y:       opts.Y,
		W:       opts.W,
		H:       opts.H,
		Angle:   opts.Angle,
		ZIndex:  opts.ZIndex,
		Anchor:  opts.Anchor,
		Flip:    opts.Flip,
		Hidden:  opts.Hidden,
		world:   w,
		classes: make(map[string]*Class),
		events:  newEventTable(&w.handlerIDs),
	}
	if id != "" {
		if old, ok := w.elements["#"+id]; ok {
			old.Remove()
		}
		e.key = "#" + id
	} else {
		e.key = strconv.Itoa(w.nextKey)
		w.nextKey++
	}
	w.elements[e.key] = e
	w.order = append(w.order, e.key)
	e.Inherit(strings.Join(classes, " "), opts)
	return e
}

// Get returns the live element with the id, or nil.
func (w *World) Get(id string) *Element {
	return w.elements["#"+strings.TrimPrefix(id, "#")]
}

// Len returns the number of live elements.
func (w *World) Len() int { return len(w.order) }

// all returns the live elements in creation order.
func (w *World) all() []*Element {
	out := make([]*Element, 0, len(w.order))
	for _, k := range w.order {
		out = append(out, w.elements[k])
	}
	return out
}

func (w *World) unregister(e *Element) {
	if w.elements[e.key] != e {
		return
	}
	delete(w.elements, e.key)
	if i := slices.Index(w.order, e.key); i >= 0 {
		w.order = slices.Delete(w.order, i, i+1)
	}
}

// Clear forgets every element, class and global handler. Existing elements
// are marked removed without firing "remove". The running state, frame
// counter, screen and loaded resources are kept.
func (w *World) Clear() {
	for _, e := range w.elements {
		e.removed = true
	}
	w.elements = make(map[string]*Element)
	w.order = nil
	w.nextKey = 0
	w.classes = make(map[string]*Class)
	w.bus = newEventTable(&w.handlerIDs)
}
