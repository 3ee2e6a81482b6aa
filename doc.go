// Package cascade is a small retained-mode 2D scene framework: elements with
// attributes, string-named classes, namespaced events, declarative drawings
// and a per-frame loop that draws onto an abstract [Graphics] surface.
//
// # Quick start
//
// A [World] owns every element, class and global handler. The simplest way to
// see one on screen is ebitenhost.Run, which opens an Ebitengine window and
// drives the loop:
//
//	w := cascade.NewWorld(nil)
//	w.Def("Box", func(e *cascade.Element, _ cascade.Options) {
//		e.SetDrawing("body", &cascade.Drawing{
//			Shape: cascade.Rectangle(),
//			Fill:  &cascade.Paint{Color: "#330099"},
//		})
//	})
//	w.New("#player Box", cascade.Options{
//		X: cascade.Some(10.0), Y: cascade.Some(20.0),
//		W: cascade.Some(16.0), H: cascade.Some(24.0),
//	})
//	ebitenhost.Run(ctx, w, ebitenhost.RunConfig{Title: "Demo", Width: 320, Height: 240})
//
// For headless rendering, attach a ggcanvas.Canvas and call [World.Frame]
// yourself, or drive it with a [Loop] and any [Scheduler].
//
// # Elements and classes
//
// [World.New] takes a spec string "[#id] [Class ...]". The id is unique; a
// new element with the id of a live one replaces it. Each class name runs the
// constructors registered with [World.Def], in order, exactly once per
// element. Classes referenced before they are defined are created empty.
//
// Elements expose typed fields (X, Y, W, H, Angle, ZIndex, Anchor, Flip,
// Hidden) next to free-form Attrs. [Element.Merge] updates both from a map and
// deep-merges nested objects.
//
// # Selecting
//
// [World.Select] takes "#id", "ClassA ClassB" (elements having every class)
// or "*". A single match comes back as the *Element itself, more as an
// [ElementList] that broadcasts every call. [ElementList.Search] filters with
// a [Spec] of comparison operators such as {"x": Gt(10)} or, in string form,
// {"x": ">10"}.
//
// # Events
//
// Events are named "name[.namespace]". Binding without a namespace uses
// [DefaultNamespace]. Triggering the default namespace fires every namespace
// of the event, a named one fires only its own handlers. Global triggers are
// dropped while the world is paused. "enterframe" fires once per frame before
// drawing; "remove" fires on an element exactly once.
//
// # Drawings
//
// Each element holds keyed [Drawing] descriptors: a rect, circle or polygon
// shape with optional fill, stroke and sprite, drawn in z-order around the
// element's anchor with its rotation and mirroring applied. A [DrawFunc]
// drawing hands the surface to custom code instead.
//
// # Scenes
//
// [SceneConfig] describes a whole scene in JSON. [LoadSceneConfig] validates
// it and reports bad drawings as [*ConfigError] values matching [ErrConfig].
//
// # Logging
//
// cascade logs through [log/slog]. Nothing is logged until [SetLogger] is
// called.
package cascade
