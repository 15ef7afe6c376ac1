package app

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/sprout"
)

var statsBackdrop = color.RGBA{0, 0, 0, 128}

var statsImage *ebiten.Image

// drawStats prints frame rates and session counts in the top-right corner.
func drawStats(screen *ebiten.Image, c *sprout.Controller) {
	if statsImage == nil {
		statsImage = ebiten.NewImage(160, 64)
	}
	statsImage.Fill(statsBackdrop)
	segments := 0
	for _, t := range c.Trees() {
		segments += len(t.Segments)
	}
	ebitenutil.DebugPrint(statsImage, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nTrees: %d\nSegs: %d / %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), c.Active(), segments, c.Occupancy().Len()))
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(screen.Bounds().Dx()-160), 0)
	screen.DrawImage(statsImage, op)
}
