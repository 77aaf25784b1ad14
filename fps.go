package hopper

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay displays the current FPS and TPS on top of the scene.
// The text is redrawn every ~0.5 seconds.
type fpsOverlay struct {
	img   *ebiten.Image
	since float64
	text  string
}

func (f *fpsOverlay) update(dt float64) {
	f.since += dt
	if f.since < 0.5 && f.text != "" {
		return
	}
	f.since = 0
	f.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	if f.img != nil {
		f.redraw()
	}
}

func (f *fpsOverlay) redraw() {
	f.img.Clear()
	// Semi-transparent background for readability
	f.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(f.img, f.text)
}

func (f *fpsOverlay) draw(screen *ebiten.Image) {
	if f.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		f.img = ebiten.NewImage(100, 32)
		f.redraw()
	}
	screen.DrawImage(f.img, nil)
}
