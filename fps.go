package backdrop

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay draws the current FPS and TPS in the top-left corner. The text
// is refreshed every ~0.5 seconds.
type fpsOverlay struct {
	img   *ebiten.Image
	acc   float64
	dirty bool
}

func newFPSOverlay() *fpsOverlay {
	return &fpsOverlay{dirty: true}
}

func (f *fpsOverlay) update(dt float64) {
	f.acc += dt
	if f.acc < 0.5 {
		return
	}
	f.acc = 0
	f.dirty = true
}

func (f *fpsOverlay) draw(dst *ebiten.Image) {
	if f.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		f.img = ebiten.NewImage(100, 32)
	}
	if f.dirty {
		f.dirty = false
		f.img.Clear()
		// Semi-transparent background for readability
		f.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(f.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	dst.DrawImage(f.img, nil)
}

func (f *fpsOverlay) dispose() {
	if f.img != nil {
		f.img.Deallocate()
		f.img = nil
	}
}
