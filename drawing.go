package cascade

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
)

// DrawFunc is a raw drawing callback. It runs with the surface in screen
// space; the callback owns any transform it applies.
type DrawFunc func(e *Element, g Graphics)

// Drawing is one declarative layer of an element's rendering. Every field is
// optional. A drawing with Func set is a raw callback and ignores the other
// fields except ZIndex.
type Drawing struct {
	Hidden bool              `json:"hidden"`
	ZIndex Optional[float64] `json:"zIndex"` // layering inside the element, higher first

	OffsetX float64           `json:"offsetX"`
	OffsetY float64           `json:"offsetY"`
	W       Optional[float64] `json:"w"` // overrides the element width
	H       Optional[float64] `json:"h"` // overrides the element height

	Shape  Shape             `json:"shape"`
	Angle  Optional[float64] `json:"angle"`
	Anchor Optional[Vec2]    `json:"anchor"`
	Flip   Flip              `json:"flip"`
	// Scale stretches the drawing about its center. A zero component means 1;
	// both zero means no scaling.
	Scale Vec2 `json:"scale"`

	Fill   *Paint  `json:"fill"`
	Stroke *Stroke `json:"stroke"`
	Sprite *Sprite `json:"sprite"`

	Func DrawFunc `json:"-"`
}

// Attr implements Attributer for sorting and matching drawings.
func (d *Drawing) Attr(name string) (any, bool) {
	switch name {
	case "zIndex":
		return optionalAttr(d.ZIndex)
	case "hidden":
		return d.Hidden, true
	case "angle":
		return optionalAttr(d.Angle)
	case "offsetX":
		return d.OffsetX, true
	case "offsetY":
		return d.OffsetY, true
	}
	return nil, false
}

// ShapeKind tags the outline of a drawing.
type ShapeKind uint8

const (
	ShapeNone ShapeKind = iota
	ShapeRect
	ShapeCircle
	ShapePolygon
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeNone:
		return "none"
	case ShapeRect:
		return "rect"
	case ShapeCircle:
		return "circle"
	case ShapePolygon:
		return "polygon"
	}
	return "ShapeKind(" + strconv.Itoa(int(k)) + ")"
}

// Shape is the outline filled, stroked and used as sprite clip. Points are
// the polygon vertices in drawing-local coordinates.
type Shape struct {
	Kind   ShapeKind
	Points []Vec2
}

// Rectangle returns the box shape covering the drawing.
func Rectangle() Shape { return Shape{Kind: ShapeRect} }

// Circle returns the circle inscribed at the top-left of the drawing box,
// with radius half the drawing width.
func Circle() Shape { return Shape{Kind: ShapeCircle} }

// Polygon returns a closed polygon through pts.
func Polygon(pts ...Vec2) Shape { return Shape{Kind: ShapePolygon, Points: pts} }

// UnmarshalJSON decodes "rect", "circle", or a point list such as
// [[0,0],[50,50],[0,50]].
func (s *Shape) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		*s = Shape{}
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var pts []Vec2
		if err := json.Unmarshal(data, &pts); err != nil {
			return &ConfigError{Field: "shape", Reason: err.Error()}
		}
		*s = Polygon(pts...)
		return nil
	}
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return &ConfigError{Field: "shape", Reason: err.Error()}
	}
	switch tag {
	case "":
		*s = Shape{}
	case "rect":
		*s = Rectangle()
	case "circle":
		*s = Circle()
	default:
		return configErrorf("shape", "unknown shape %q", tag)
	}
	return nil
}

// MarshalJSON encodes the shape in the form UnmarshalJSON reads.
func (s Shape) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case ShapeRect, ShapeCircle:
		return json.Marshal(s.Kind.String())
	case ShapePolygon:
		pairs := make([][2]float64, len(s.Points))
		for i, p := range s.Points {
			pairs[i] = [2]float64{p.X, p.Y}
		}
		return json.Marshal(pairs)
	}
	return []byte("null"), nil
}

// bounds returns the largest x and y among the points.
func (s Shape) bounds() (w, h float64) {
	for _, p := range s.Points {
		w = math.Max(w, p.X)
		h = math.Max(h, p.Y)
	}
	return w, h
}

// Paint is a solid color or a linear gradient. Color wins when both are set.
// An empty Paint keeps whatever style the surface already has.
type Paint struct {
	Color          string          `json:"color"`
	LinearGradient *LinearGradient `json:"linearGradient"`
}

// Stroke is an outline paint with line settings. Zero values keep the
// surface's current settings.
type Stroke struct {
	Paint
	Thickness float64  `json:"thickness"`
	Cap       LineCap  `json:"cap"`
	Join      LineJoin `json:"join"`
}

// LinearGradient runs from Start to End, both in percent of the drawing box.
// Start defaults to (0, 0) and End to (100, 0).
type LinearGradient struct {
	Start Optional[Vec2]
	End   Optional[Vec2]
	Stops []ColorStop
}

// UnmarshalJSON reads "start" and "end" points and takes every key that
// parses as a number as a color stop, e.g. {"0": "#f00", "0.5": "#0f0"}.
// Stops are ordered by offset.
func (g *LinearGradient) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return &ConfigError{Field: "linearGradient", Reason: err.Error()}
	}
	*g = LinearGradient{}
	for k, v := range raw {
		switch k {
		case "start", "end":
			var p Vec2
			if err := json.Unmarshal(v, &p); err != nil {
				return configErrorf("linearGradient."+k, "%v", err)
			}
			if k == "start" {
				g.Start = Some(p)
			} else {
				g.End = Some(p)
			}
			continue
		}
		off, err := strconv.ParseFloat(k, 64)
		if err != nil || math.IsInf(off, 0) || math.IsNaN(off) {
			continue
		}
		var color string
		if err := json.Unmarshal(v, &color); err != nil {
			return configErrorf("linearGradient."+k, "stop color: %v", err)
		}
		g.Stops = append(g.Stops, ColorStop{Offset: off, Color: color})
	}
	slices.SortStableFunc(g.Stops, func(a, b ColorStop) int { return cmp.Compare(a.Offset, b.Offset) })
	return nil
}

// MarshalJSON encodes the gradient in the form UnmarshalJSON reads.
func (g LinearGradient) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(g.Stops)+2)
	if p, ok := g.Start.Get(); ok {
		out["start"] = [2]float64{p.X, p.Y}
	}
	if p, ok := g.End.Get(); ok {
		out["end"] = [2]float64{p.X, p.Y}
	}
	for _, s := range g.Stops {
		out[strconv.FormatFloat(s.Offset, 'g', -1, 64)] = s.Color
	}
	return json.Marshal(out)
}

// resolve turns the percent geometry into absolute drawing coordinates.
func (g *LinearGradient) resolve(fw, fh float64) *Gradient {
	start := g.Start.Or(Vec2{0, 0})
	end := g.End.Or(Vec2{100, 0})
	return &Gradient{
		X0:    start.X / 100 * fw,
		Y0:    start.Y / 100 * fh,
		X1:    end.X / 100 * fw,
		Y1:    end.Y / 100 * fh,
		Stops: slices.Clone(g.Stops),
	}
}

// style resolves the paint for a drawing box. ok is false for an empty paint.
func (p *Paint) style(fw, fh float64) (Style, bool) {
	switch {
	case p == nil:
		return Style{}, false
	case p.Color != "":
		return Style{Color: p.Color}, true
	case p.LinearGradient != nil:
		return Style{Gradient: p.LinearGradient.resolve(fw, fh)}, true
	}
	return Style{}, false
}

// Sprite blits part of a loaded image resource. W and H default to the
// smaller of the drawing size and the image size.
type Sprite struct {
	URL string  `json:"url"`
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	W   float64 `json:"w"`
	H   float64 `json:"h"`
	// Repeat tiles the blit along the axes until the element box is covered.
	Repeat Flip `json:"repeat"`
	// Frames > 0 animates the sprite: the source advances one frame every
	// Delay frame ticks, wrapping after Frames frames.
	Frames   int  `json:"frames"`
	Delay    int  `json:"delay"`
	Vertical bool `json:"vertical"` // frames advance along y
}

// frame returns the animation frame shown at step.
func (s *Sprite) frame(step int) int {
	if s.Frames <= 0 || s.Delay <= 0 {
		return 0
	}
	return (step / s.Delay) % s.Frames
}

// Validate reports configuration the renderer cannot honor as a
// *ConfigError.
func (d *Drawing) Validate() error {
	if d.Func != nil {
		return nil
	}
	switch d.Shape.Kind {
	case ShapeNone, ShapeRect, ShapeCircle:
	case ShapePolygon:
		if len(d.Shape.Points) < 2 {
			return configErrorf("shape", "polygon needs at least 2 points, got %d", len(d.Shape.Points))
		}
	default:
		return configErrorf("shape", "unknown shape %s", d.Shape.Kind)
	}
	if d.Fill != nil {
		if err := d.Fill.validate("fill"); err != nil {
			return err
		}
	}
	if d.Stroke != nil {
		if err := d.Stroke.validate("stroke"); err != nil {
			return err
		}
		if d.Stroke.Thickness < 0 {
			return configErrorf("stroke.thickness", "negative thickness %g", d.Stroke.Thickness)
		}
	}
	if s := d.Sprite; s != nil {
		switch {
		case s.URL == "":
			return configErrorf("sprite.url", "missing resource url")
		case s.Frames < 0:
			return configErrorf("sprite.frames", "negative frame count %d", s.Frames)
		case s.Frames > 0 && s.Delay <= 0:
			return configErrorf("sprite.delay", "animated sprite needs a positive delay, got %d", s.Delay)
		}
	}
	return nil
}

func (p *Paint) validate(field string) error {
	g := p.LinearGradient
	if p.Color != "" || g == nil {
		return nil
	}
	for _, s := range g.Stops {
		key := fmt.Sprintf("%s.linearGradient.%g", field, s.Offset)
		if s.Offset < 0 || s.Offset > 1 {
			return configErrorf(key, "stop offset outside [0, 1]")
		}
		if s.Color == "" {
			return configErrorf(key, "empty stop color")
		}
	}
	return nil
}
