package folio

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay displays the current FPS and TPS plus the page's frame-loop
// activity. The text is refreshed every ~0.5 seconds.
type fpsOverlay struct {
	img        *ebiten.Image
	lastUpdate float64
}

func newFPSOverlay() *fpsOverlay {
	// 160x48 is enough for three short lines.
	return &fpsOverlay{img: ebiten.NewImage(160, 48), lastUpdate: 0.5}
}

func (o *fpsOverlay) update(dt float64, p *Page) {
	o.lastUpdate += dt
	if o.lastUpdate < 0.5 {
		return
	}
	o.lastUpdate = 0

	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nsettling: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), p.countSettling()))
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(4, 4)
	screen.DrawImage(o.img, &op)
}
