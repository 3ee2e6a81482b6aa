// Package ggcanvas implements cascade.Graphics on a gogpu/gg CPU context.
package ggcanvas

import (
	"image"
	"io"
	"math"

	"github.com/gogpu/gg"

	"github.com/phanxgames/cascade"
)

// paintState is the part of the canvas state gg's Push and Pop do not keep.
type paintState struct {
	fill      gg.Brush
	stroke    gg.Brush
	lineWidth float64
	lineCap   gg.LineCap
	lineJoin  gg.LineJoin
}

// Canvas is an offscreen 2D surface. It is not safe for concurrent use.
type Canvas struct {
	ctx    *gg.Context
	state  paintState
	stack  []paintState
	images map[image.Image]*gg.ImageBuf

	// hasPoint tracks whether the current path has a current point, which
	// decides how Arc joins the path.
	hasPoint bool
}

var _ cascade.Graphics = (*Canvas)(nil)

// New creates a transparent canvas of the given pixel size.
func New(width, height int) *Canvas {
	c := &Canvas{
		ctx:    gg.NewContext(width, height),
		images: make(map[image.Image]*gg.ImageBuf),
		state: paintState{
			fill:      gg.Solid(gg.RGBA2(0, 0, 0, 1)),
			stroke:    gg.Solid(gg.RGBA2(0, 0, 0, 1)),
			lineWidth: 1,
			lineCap:   gg.LineCapButt,
			lineJoin:  gg.LineJoinMiter,
		},
	}
	c.applyLine()
	return c
}

// Context exposes the underlying gg context.
func (c *Canvas) Context() *gg.Context { return c.ctx }

// Image returns a copy of the current pixels.
func (c *Canvas) Image() image.Image { return c.ctx.Image() }

// SavePNG writes the current pixels to a PNG file.
func (c *Canvas) SavePNG(path string) error { return c.ctx.SavePNG(path) }

// WritePNG encodes the current pixels as PNG to w.
func (c *Canvas) WritePNG(w io.Writer) error { return c.ctx.EncodePNG(w) }

// Size implements cascade.Graphics.
func (c *Canvas) Size() (w, h float64) {
	return float64(c.ctx.Width()), float64(c.ctx.Height())
}

// Resize changes the pixel size. The content is cleared.
func (c *Canvas) Resize(width, height int) error {
	if width == c.ctx.Width() && height == c.ctx.Height() {
		return nil
	}
	return c.ctx.Resize(width, height)
}

// Close releases the context.
func (c *Canvas) Close() error { return c.ctx.Close() }

// --- State ---

func (c *Canvas) Save() {
	c.ctx.Push()
	c.stack = append(c.stack, c.state)
}

func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.ctx.Pop()
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.applyLine()
}

func (c *Canvas) applyLine() {
	c.ctx.SetLineWidth(c.state.lineWidth)
	c.ctx.SetLineCap(c.state.lineCap)
	c.ctx.SetLineJoin(c.state.lineJoin)
}

func (c *Canvas) Translate(x, y float64) { c.ctx.Translate(x, y) }
func (c *Canvas) Rotate(radians float64) { c.ctx.Rotate(radians) }
func (c *Canvas) Scale(x, y float64)     { c.ctx.Scale(x, y) }

// --- Paths ---

func (c *Canvas) BeginPath() {
	c.ctx.ClearPath()
	c.hasPoint = false
}

func (c *Canvas) MoveTo(x, y float64) {
	c.ctx.MoveTo(x, y)
	c.hasPoint = true
}

func (c *Canvas) LineTo(x, y float64) {
	if !c.hasPoint {
		c.MoveTo(x, y)
		return
	}
	c.ctx.LineTo(x, y)
}

// Arc adds a clockwise circular arc. Like the HTML canvas, a line joins the
// current point to the arc start. The arc is built from cubic segments in
// local space so every transform applies to it.
func (c *Canvas) Arc(x, y, radius, startAngle, endAngle float64) {
	if radius <= 0 {
		return
	}
	sweep := endAngle - startAngle
	if sweep >= 2*math.Pi {
		sweep = 2 * math.Pi
	}
	for sweep < 0 {
		sweep += 2 * math.Pi
	}
	x0 := x + radius*math.Cos(startAngle)
	y0 := y + radius*math.Sin(startAngle)
	if c.hasPoint {
		c.ctx.LineTo(x0, y0)
	} else {
		c.MoveTo(x0, y0)
	}
	if sweep == 0 {
		return
	}
	n := int(math.Ceil(sweep / (math.Pi / 2)))
	step := sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	for i := range n {
		a1 := startAngle + float64(i)*step
		a2 := a1 + step
		sin1, cos1 := math.Sincos(a1)
		sin2, cos2 := math.Sincos(a2)
		c.ctx.CubicTo(
			x+radius*(cos1-k*sin1), y+radius*(sin1+k*cos1),
			x+radius*(cos2+k*sin2), y+radius*(sin2-k*cos2),
			x+radius*cos2, y+radius*sin2,
		)
	}
}

func (c *Canvas) ClosePath() { c.ctx.ClosePath() }

func (c *Canvas) Fill() {
	c.ctx.SetFillBrush(c.state.fill)
	if err := c.ctx.Fill(); err != nil {
		cascade.Logger().Warn("ggcanvas: fill failed", "err", err)
	}
	c.hasPoint = false
}

func (c *Canvas) Stroke() {
	c.ctx.SetStrokeBrush(c.state.stroke)
	if err := c.ctx.Stroke(); err != nil {
		cascade.Logger().Warn("ggcanvas: stroke failed", "err", err)
	}
	c.hasPoint = false
}

func (c *Canvas) Clip() {
	c.ctx.Clip()
	c.hasPoint = false
}

// --- Rectangles ---

func (c *Canvas) FillRect(x, y, w, h float64) {
	c.ctx.ClearPath()
	c.ctx.DrawRectangle(x, y, w, h)
	c.hasPoint = true
	c.Fill()
}

func (c *Canvas) StrokeRect(x, y, w, h float64) {
	c.ctx.ClearPath()
	c.ctx.DrawRectangle(x, y, w, h)
	c.hasPoint = true
	c.Stroke()
}

// ClearRect resets the pixels of the rectangle to transparent. The rectangle
// is in device pixels; the transform does not apply.
func (c *Canvas) ClearRect(x, y, w, h float64) {
	cw, ch := c.ctx.Width(), c.ctx.Height()
	x0, y0 := max(int(math.Floor(x)), 0), max(int(math.Floor(y)), 0)
	x1, y1 := min(int(math.Ceil(x+w)), cw), min(int(math.Ceil(y+h)), ch)
	if x0 == 0 && y0 == 0 && x1 >= cw && y1 >= ch {
		c.ctx.Clear()
		return
	}
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.ctx.SetPixel(px, py, gg.Transparent)
		}
	}
}

// --- Styles ---

func (c *Canvas) SetFillStyle(s cascade.Style) {
	c.state.fill = c.brush(s)
}

func (c *Canvas) SetStrokeStyle(s cascade.Style) {
	c.state.stroke = c.brush(s)
}

// brush resolves a style. Gradient end points are given in local space and
// gg samples brushes in device space, so they are transformed here.
func (c *Canvas) brush(s cascade.Style) gg.Brush {
	if s.Gradient == nil {
		col, ok := ParseColor(s.Color)
		if !ok {
			cascade.Logger().Debug("ggcanvas: unreadable color", "color", s.Color)
		}
		return gg.Solid(col)
	}
	g := s.Gradient
	x0, y0 := c.ctx.TransformPoint(g.X0, g.Y0)
	x1, y1 := c.ctx.TransformPoint(g.X1, g.Y1)
	b := gg.NewLinearGradientBrush(x0, y0, x1, y1)
	for _, stop := range g.Stops {
		col, _ := ParseColor(stop.Color)
		b.AddColorStop(stop.Offset, col)
	}
	return b
}

func (c *Canvas) SetLineWidth(w float64) {
	c.state.lineWidth = w
	c.ctx.SetLineWidth(w)
}

func (c *Canvas) SetLineCap(lc cascade.LineCap) {
	switch lc {
	case cascade.LineCapButt:
		c.state.lineCap = gg.LineCapButt
	case cascade.LineCapRound:
		c.state.lineCap = gg.LineCapRound
	case cascade.LineCapSquare:
		c.state.lineCap = gg.LineCapSquare
	default:
		return
	}
	c.ctx.SetLineCap(c.state.lineCap)
}

func (c *Canvas) SetLineJoin(lj cascade.LineJoin) {
	switch lj {
	case cascade.LineJoinMiter:
		c.state.lineJoin = gg.LineJoinMiter
	case cascade.LineJoinRound:
		c.state.lineJoin = gg.LineJoinRound
	case cascade.LineJoinBevel:
		c.state.lineJoin = gg.LineJoinBevel
	default:
		return
	}
	c.ctx.SetLineJoin(c.state.lineJoin)
}

// --- Images ---

// DrawImage blits the src rectangle of img scaled into dst. Converted image
// buffers are cached per image.
func (c *Canvas) DrawImage(img image.Image, src, dst cascade.Rect) {
	if img == nil || dst.Width <= 0 || dst.Height <= 0 {
		return
	}
	b := img.Bounds()
	sr := image.Rect(
		int(math.Floor(src.X)), int(math.Floor(src.Y)),
		int(math.Ceil(src.X+src.Width)), int(math.Ceil(src.Y+src.Height)),
	).Intersect(image.Rect(0, 0, b.Dx(), b.Dy()))
	if sr.Empty() {
		return
	}
	buf, ok := c.images[img]
	if !ok {
		buf = gg.ImageBufFromImage(img)
		c.images[img] = buf
	}
	if buf == nil {
		return
	}
	c.ctx.DrawImageEx(buf, gg.DrawImageOptions{
		X:         dst.X,
		Y:         dst.Y,
		DstWidth:  dst.Width * float64(sr.Dx()) / src.Width,
		DstHeight: dst.Height * float64(sr.Dy()) / src.Height,
		SrcRect:   &sr,
	})
}

// Forget drops the cached buffer of img.
func (c *Canvas) Forget(img image.Image) {
	delete(c.images, img)
}
