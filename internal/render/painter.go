//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads palette-indexed cells into a single image and draws it
// scaled onto the screen.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte

	tint    *ebiten.Image
	tintBuf []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	return &GridPainter{
		w:   w,
		h:   h,
		img: ebiten.NewImage(w, h),
		buf: make([]byte, 4*w*h),
	}
}

// Blit converts cells through the palette and draws them at the given scale.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []uint8, palette []color.RGBA, scale int) {
	if len(cells) != gp.w*gp.h {
		return
	}
	fillPaletteRGBA(gp.buf, cells, palette)
	gp.img.WritePixels(gp.buf)
	gp.draw(dst, gp.img, scale)
}

// Tint draws a translucent layer over the grid, one weight per cell.
func (gp *GridPainter) Tint(dst *ebiten.Image, weights []float64, tint color.RGBA, scale int) {
	if len(weights) != gp.w*gp.h {
		return
	}
	if gp.tint == nil {
		gp.tint = ebiten.NewImage(gp.w, gp.h)
		gp.tintBuf = make([]byte, 4*gp.w*gp.h)
	}
	tintRGBA(gp.tintBuf, weights, tint)
	gp.tint.WritePixels(gp.tintBuf)
	gp.draw(dst, gp.tint, scale)
}

func (gp *GridPainter) draw(dst, img *ebiten.Image, scale int) {
	if scale <= 0 {
		scale = 1
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(img, op)
}
