package cascade

import (
	"encoding/json"
	"fmt"
	"image"
)

// Graphics is the 2D drawing surface the renderer targets. It mirrors the
// immediate-mode canvas model: a transform stack with Save and Restore, path
// construction, and fill, stroke, and clip of the current path. Save must
// also capture the styles set through SetFillStyle, SetStrokeStyle and the
// line settings, and Restore must put them back.
//
// ggcanvas.Canvas is the bundled implementation.
type Graphics interface {
	Save()
	Restore()

	Translate(x, y float64)
	Rotate(radians float64)
	Scale(x, y float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Arc(x, y, radius, startAngle, endAngle float64)
	ClosePath()
	Fill()
	Stroke()
	Clip()

	FillRect(x, y, w, h float64)
	StrokeRect(x, y, w, h float64)
	ClearRect(x, y, w, h float64)

	SetFillStyle(s Style)
	SetStrokeStyle(s Style)
	SetLineWidth(w float64)
	SetLineCap(c LineCap)
	SetLineJoin(j LineJoin)

	// DrawImage copies the src rectangle of img into dst, in current
	// transform space.
	DrawImage(img image.Image, src, dst Rect)

	// Size reports the current surface size.
	Size() (w, h float64)
}

// Style is a resolved fill or stroke paint: a CSS color, or a linear
// gradient in the local coordinates of the shape being painted.
type Style struct {
	Color    string
	Gradient *Gradient
}

// Gradient is a linear gradient between two absolute points.
type Gradient struct {
	X0, Y0, X1, Y1 float64
	Stops          []ColorStop
}

// ColorStop is one color of a gradient at a fractional position in [0, 1].
type ColorStop struct {
	Offset float64
	Color  string
}

// LineCap is the shape of stroke end points. The zero value leaves the
// surface's current setting untouched.
type LineCap uint8

const (
	LineCapDefault LineCap = iota
	LineCapButt
	LineCapRound
	LineCapSquare
)

var lineCapNames = map[string]LineCap{"butt": LineCapButt, "round": LineCapRound, "square": LineCapSquare}

func (c LineCap) String() string {
	for name, v := range lineCapNames {
		if v == c {
			return name
		}
	}
	return ""
}

// UnmarshalJSON decodes "butt", "round" or "square".
func (c *LineCap) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("cap: %w", err)
	}
	v, ok := lineCapNames[s]
	if !ok && s != "" {
		return configErrorf("stroke.cap", "unknown cap style %q", s)
	}
	*c = v
	return nil
}

// LineJoin is the shape of stroke corners. The zero value leaves the
// surface's current setting untouched.
type LineJoin uint8

const (
	LineJoinDefault LineJoin = iota
	LineJoinMiter
	LineJoinRound
	LineJoinBevel
)

var lineJoinNames = map[string]LineJoin{"miter": LineJoinMiter, "round": LineJoinRound, "bevel": LineJoinBevel}

func (j LineJoin) String() string {
	for name, v := range lineJoinNames {
		if v == j {
			return name
		}
	}
	return ""
}

// UnmarshalJSON decodes "miter", "round" or "bevel".
func (j *LineJoin) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("join: %w", err)
	}
	v, ok := lineJoinNames[s]
	if !ok && s != "" {
		return configErrorf("stroke.join", "unknown join style %q", s)
	}
	*j = v
	return nil
}
