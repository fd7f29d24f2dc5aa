//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"mad-sand/internal/render"
)

var (
	brushColor   = color.RGBA{R: 255, G: 255, B: 255, A: 160}
	densityColor = color.RGBA{R: 255, G: 80, B: 40, A: 170}
)

// Overlay draws the brush outline under the cursor and, when enabled, a
// density heat tint over the grid.
type Overlay struct {
	sim     Sim
	painter *render.GridPainter
	scale   int
	pixel   *ebiten.Image
	weights []float64
}

// NewOverlay constructs an overlay sharing the grid painter.
func NewOverlay(sim Sim, painter *render.GridPainter, scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	o := &Overlay{sim: sim, painter: painter, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Draw renders the overlay. gx, gy is the cursor in grid coordinates;
// density toggles the heat tint.
func (o *Overlay) Draw(screen *ebiten.Image, gx, gy, radius int, density bool) {
	if density {
		o.weights = DensityWeights(o.sim.Cells(), o.weights)
		o.painter.Tint(screen, o.weights, densityColor, o.scale)
	}
	size := o.sim.Size()
	if gx < 0 || gy < 0 || gx >= size.W || gy >= size.H {
		return
	}
	s := float64(o.scale)
	for _, p := range BrushOutline(gx, gy, radius) {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(s, s)
		op.GeoM.Translate(float64(p.X)*s, float64(p.Y)*s)
		op.ColorScale.ScaleWithColor(brushColor)
		screen.DrawImage(o.pixel, op)
	}
}
