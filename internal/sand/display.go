package sand

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"mad-sand/internal/material"
)

// shadeOffsets nudges HSLuv lightness per shade so neighbouring grains of the
// same material read as texture instead of a flat fill.
var shadeOffsets = [Shades]float64{0, -0.05, 0.04, -0.09}

// CellColor is one entry of a color snapshot.
type CellColor struct {
	X, Y  int
	Color color.RGBA
}

// Palette returns the color table indexed by the values of Cells.
func (w *World) Palette() []color.RGBA { return w.palette }

// PaletteIndex maps a material and shade to its palette entry.
func PaletteIndex(m material.Material, shade uint8) uint8 {
	if !m.Valid() {
		m = material.Empty
	}
	return uint8(m)*Shades + shade%Shades
}

// Cells returns the palette-indexed display buffer in row-major order. The
// slice is reused between calls.
func (w *World) Cells() []uint8 {
	for i, c := range w.grid.cells {
		w.display[i] = PaletteIndex(c.Material, c.Shade)
	}
	return w.display
}

// Colors writes the color of every cell in row-major order into dst, growing
// it if needed, and returns it.
func (w *World) Colors(dst []color.RGBA) []color.RGBA {
	n := len(w.grid.cells)
	if cap(dst) < n {
		dst = make([]color.RGBA, n)
	}
	dst = dst[:n]
	for i, c := range w.grid.cells {
		dst[i] = w.palette[PaletteIndex(c.Material, c.Shade)]
	}
	return dst
}

// Snapshot returns the position and color of every cell. It does not mutate
// the world.
func (w *World) Snapshot() []CellColor {
	out := make([]CellColor, 0, len(w.grid.cells))
	for i, c := range w.grid.cells {
		out = append(out, CellColor{
			X:     i % w.grid.w,
			Y:     i / w.grid.w,
			Color: w.palette[PaletteIndex(c.Material, c.Shade)],
		})
	}
	return out
}

func buildPalette() []color.RGBA {
	palette := make([]color.RGBA, material.Count()*Shades)
	for _, m := range material.All() {
		base := m.Color()
		for s := uint8(0); s < Shades; s++ {
			col := base
			if s > 0 && m != material.Empty {
				col = shade(base, shadeOffsets[s])
			}
			palette[PaletteIndex(m, s)] = col
		}
	}
	return palette
}

func shade(base color.RGBA, offset float64) color.RGBA {
	c, _ := colorful.MakeColor(base)
	h, s, l := c.HSLuv()
	l += offset
	if l < 0 {
		l = 0
	}
	if l > 1 {
		l = 1
	}
	r, g, b := colorful.HSLuv(h, s, l).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: base.A}
}
