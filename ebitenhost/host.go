// Package ebitenhost runs a cascade world in an Ebitengine window. The host
// is a cascade.Scheduler: every ebiten tick polls keyboard and mouse input
// into the world, runs one frame on a ggcanvas surface, and presents the
// canvas pixels on the window.
package ebitenhost

import (
	"context"
	"image"
	"image/draw"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/cascade"
	"github.com/phanxgames/cascade/ggcanvas"
)

// RunConfig configures the window.
type RunConfig struct {
	// Title is the window title.
	Title string
	// Width and Height are the logical screen size in pixels. Default 640x480.
	Width, Height int
	// ShowFPS draws an FPS/TPS counter over the scene.
	ShowFPS bool
	// TPS is the tick rate. Ebitengine's default (60) is used when zero.
	TPS int
}

// Host presents a world on an Ebitengine window.
type Host struct {
	cfg    RunConfig
	world  *cascade.World
	canvas *ggcanvas.Canvas

	ctx   context.Context
	frame func()

	pixels *image.RGBA
	keys   []ebiten.Key
	fps    fpsOverlay
}

var _ cascade.Scheduler = (*Host)(nil)

// New creates a host for w and attaches its canvas as the world's surface.
func New(w *cascade.World, cfg RunConfig) *Host {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	h := &Host{
		cfg:    cfg,
		world:  w,
		canvas: ggcanvas.New(cfg.Width, cfg.Height),
		pixels: image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height)),
	}
	w.SetGraphics(h.canvas)
	w.SetScreenSize(float64(cfg.Width), float64(cfg.Height))
	return h
}

// Canvas returns the surface the world draws on.
func (h *Host) Canvas() *ggcanvas.Canvas { return h.canvas }

// Run opens the window and calls frame once per tick until ctx is done or
// the window is closed. It must be called from the main goroutine.
func (h *Host) Run(ctx context.Context, frame func()) error {
	h.ctx = ctx
	h.frame = frame
	if h.cfg.Title != "" {
		ebiten.SetWindowTitle(h.cfg.Title)
	}
	if h.cfg.TPS > 0 {
		ebiten.SetTPS(h.cfg.TPS)
	}
	ebiten.SetWindowSize(h.cfg.Width, h.cfg.Height)
	if err := ebiten.RunGame(h); err != nil {
		return err
	}
	return ctx.Err()
}

// Run opens a window for w and runs its loop until ctx is done or the window
// is closed.
func Run(ctx context.Context, w *cascade.World, cfg RunConfig) error {
	return cascade.NewLoop(w, cascade.LoopConfig{Scheduler: New(w, cfg)}).Run(ctx)
}

// Update implements ebiten.Game.
func (h *Host) Update() error {
	if h.ctx != nil && h.ctx.Err() != nil {
		return ebiten.Termination
	}
	h.pollInput()
	if h.frame != nil {
		h.frame()
	}
	if h.cfg.ShowFPS {
		h.fps.update(1 / float64(ebiten.TPS()))
	}
	return nil
}

// pollInput forwards the key and mouse transitions of this tick.
func (h *Host) pollInput() {
	h.keys = inpututil.AppendJustPressedKeys(h.keys[:0])
	for _, k := range h.keys {
		if code, ok := KeyCode(k); ok {
			h.world.KeyDown(code)
		}
	}
	h.keys = inpututil.AppendJustReleasedKeys(h.keys[:0])
	for _, k := range h.keys {
		if code, ok := KeyCode(k); ok {
			h.world.KeyUp(code)
		}
	}

	mx, my := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		h.world.Click(float64(mx), float64(my))
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight) {
		h.world.RightClick(float64(mx), float64(my))
	}
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	screen.WritePixels(h.present())
	if h.cfg.ShowFPS {
		h.fps.draw(screen)
	}
}

// present returns the canvas pixels as premultiplied RGBA.
func (h *Host) present() []byte {
	img := h.canvas.Image()
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect == h.pixels.Rect && rgba.Stride == h.pixels.Stride {
		return rgba.Pix
	}
	draw.Draw(h.pixels, h.pixels.Rect, img, img.Bounds().Min, draw.Src)
	return h.pixels.Pix
}

// Layout implements ebiten.Game. The logical screen keeps the configured
// size and ebiten scales it to the window.
func (h *Host) Layout(_, _ int) (int, int) {
	return h.cfg.Width, h.cfg.Height
}
