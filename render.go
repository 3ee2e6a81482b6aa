package cascade

import (
	"errors"
	"math"
)

// Attr lets drawing entries sort by their drawing's attributes.
func (en drawingEntry) Attr(name string) (any, bool) { return en.d.Attr(name) }

// label names the element in errors and logs.
func (e *Element) label() string {
	if e.ID != "" {
		return "#" + e.ID
	}
	return e.key
}

// Draw renders every visible drawing of the element onto g, highest z-order
// first. Drawings with invalid configuration are skipped and reported
// together in the returned error; the other drawings still render. A hidden
// or removed element draws nothing.
func (e *Element) Draw(g Graphics) error {
	if e.removed || e.Hidden.Or(false) || g == nil {
		return nil
	}
	var errs []error
	for _, en := range Sort(e.drawings, "zIndex", true) {
		d := en.d
		if d.Hidden {
			continue
		}
		if d.Func != nil {
			d.Func(e, g)
			continue
		}
		if err := d.Validate(); err != nil {
			errs = append(errs, withLocation(err, e.label(), en.key))
			continue
		}
		e.drawShape(g, d)
	}
	return errors.Join(errs...)
}

// drawShape runs the descriptor pipeline for one validated drawing. The
// surface state is saved first and always restored.
func (e *Element) drawShape(g Graphics, d *Drawing) {
	ew, eh := e.W.Or(0), e.H.Or(0)
	if d.Shape.Kind == ShapePolygon && (ew == 0 || eh == 0) {
		pw, ph := d.Shape.bounds()
		ew, eh = math.Max(ew, pw), math.Max(eh, ph)
	}
	fw, fh := d.W.Or(ew), d.H.Or(eh)

	g.Save()
	defer g.Restore()

	screen := e.world.screen
	g.Translate(screen.X, screen.Y)
	g.Translate(e.X.Or(0), e.Y.Or(0))

	center := Vec2{ew / 2, eh / 2}
	if angle := e.Angle.Or(0); angle != 0 {
		rotateAbout(g, e.Anchor.Or(center), angle)
	}
	if angle := d.Angle.Or(0); angle != 0 {
		rotateAbout(g, d.Anchor.Or(e.Anchor.Or(center)), angle)
	}

	// Keep a resized drawing centered on the element box.
	g.Translate(d.OffsetX-(fw-ew)/2, d.OffsetY-(fh-eh)/2)

	mirror(g, e.Flip, fw, fh)
	mirror(g, d.Flip, fw, fh)
	if d.Scale.X != 0 || d.Scale.Y != 0 {
		sx, sy := d.Scale.X, d.Scale.Y
		if sx == 0 {
			sx = 1
		}
		if sy == 0 {
			sy = 1
		}
		g.Translate(fw/2, fh/2)
		g.Scale(sx, sy)
		g.Translate(-fw/2, -fh/2)
	}

	if d.Fill != nil {
		if style, ok := d.Fill.style(fw, fh); ok {
			g.SetFillStyle(style)
		}
		fillShape(g, d.Shape, fw, fh)
	}

	if s := d.Stroke; s != nil {
		if style, ok := s.style(fw, fh); ok {
			g.SetStrokeStyle(style)
		}
		if s.Thickness > 0 {
			g.SetLineWidth(s.Thickness)
		}
		if s.Cap != LineCapDefault {
			g.SetLineCap(s.Cap)
		}
		if s.Join != LineJoinDefault {
			g.SetLineJoin(s.Join)
		}
		strokeShape(g, d.Shape, fw, fh)
	}

	if d.Sprite != nil {
		if tracePath(g, d.Shape, fw, fh) {
			g.Clip()
		}
		e.drawSprite(g, d.Sprite, ew, eh, fw, fh)
	}
}

func rotateAbout(g Graphics, anchor Vec2, degrees float64) {
	g.Translate(anchor.X, anchor.Y)
	g.Rotate(degrees * math.Pi / 180)
	g.Translate(-anchor.X, -anchor.Y)
}

// mirror flips the box of size w x h in place.
func mirror(g Graphics, f Flip, w, h float64) {
	if f == 0 {
		return
	}
	sx, sy := 1.0, 1.0
	if f.Has(FlipX) {
		sx = -1
	}
	if f.Has(FlipY) {
		sy = -1
	}
	g.Translate(w/2, h/2)
	g.Scale(sx, sy)
	g.Translate(-w/2, -h/2)
}

// tracePath builds the outline of s as the current path. It reports false
// for shapes without an outline.
func tracePath(g Graphics, s Shape, w, h float64) bool {
	switch s.Kind {
	case ShapeRect:
		g.BeginPath()
		g.MoveTo(0, 0)
		g.LineTo(w, 0)
		g.LineTo(w, h)
		g.LineTo(0, h)
	case ShapeCircle:
		g.BeginPath()
		g.Arc(w/2, w/2, w/2, 0, 2*math.Pi)
	case ShapePolygon:
		g.BeginPath()
		g.MoveTo(s.Points[0].X, s.Points[0].Y)
		for _, p := range s.Points {
			g.LineTo(p.X, p.Y)
		}
	default:
		return false
	}
	g.ClosePath()
	return true
}

func fillShape(g Graphics, s Shape, w, h float64) {
	if s.Kind == ShapeRect {
		g.FillRect(0, 0, w, h)
		return
	}
	if tracePath(g, s, w, h) {
		g.Fill()
	}
}

func strokeShape(g Graphics, s Shape, w, h float64) {
	if s.Kind == ShapeRect {
		g.StrokeRect(0, 0, w, h)
		return
	}
	if tracePath(g, s, w, h) {
		g.Stroke()
	}
}

// drawSprite blits the current animation frame of s, tiling it across the
// element box along the repeat axes. A resource that has not finished
// loading is skipped.
func (e *Element) drawSprite(g Graphics, s *Sprite, ew, eh, fw, fh float64) {
	w := e.world
	img := w.resources.Get(s.URL)
	if img == nil {
		Logger().Debug("sprite skipped, resource not loaded", "element", e.label(), "url", s.URL)
		return
	}
	b := img.Bounds()
	sw, sh := s.W, s.H
	if sw <= 0 {
		sw = math.Min(fw, float64(b.Dx()))
	}
	if sh <= 0 {
		sh = math.Min(fh, float64(b.Dy()))
	}
	if sw <= 0 || sh <= 0 {
		return
	}
	sx, sy := s.X, s.Y
	if f := float64(s.frame(w.step)); s.Vertical {
		sy += f * sh
	} else {
		sx += f * sw
	}
	src := Rect{X: sx, Y: sy, Width: sw, Height: sh}

	repeatX, repeatY := s.Repeat.Has(FlipX), s.Repeat.Has(FlipY)
	for x := 0.0; ; x += sw {
		for y := 0.0; ; y += sh {
			g.DrawImage(img, src, Rect{X: x, Y: y, Width: sw, Height: sh})
			if !repeatY || y+sh >= eh {
				break
			}
		}
		if !repeatX || x+sw >= ew {
			break
		}
	}
}
