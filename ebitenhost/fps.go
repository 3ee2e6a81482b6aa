package ebitenhost

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay draws the current FPS and TPS in the top-left corner. The text
// is re-rendered every ~0.5 seconds.
type fpsOverlay struct {
	img     *ebiten.Image
	elapsed float64
}

func (o *fpsOverlay) update(dt float64) {
	if o.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		o.img = ebiten.NewImage(100, 32)
		o.elapsed = 0.5
	}
	o.elapsed += dt
	if o.elapsed < 0.5 {
		return
	}
	o.elapsed = 0

	o.img.Clear()
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	if o.img == nil {
		return
	}
	screen.DrawImage(o.img, nil)
}
