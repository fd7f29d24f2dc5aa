package scene

import (
	"github.com/ojrac/opensimplex-go"

	"mad-sand/internal/core"
	"mad-sand/internal/material"
	"mad-sand/internal/sand"
)

func init() {
	Register("empty", func(*sand.World, int64) {})
	Register("hourglass", hourglass)
	Register("basin", basin)
	Register("terrain", terrain)
}

// hourglass draws two stone funnels meeting at a one-cell neck in the middle
// row, with the upper funnel partly filled with sand.
func hourglass(w *sand.World, _ int64) {
	size := w.Size()
	mid := size.H / 2
	cx := size.W / 2
	span := maxInt(size.W/2-2, 1)
	fill := mid * 2 / 3
	for y := 0; y < size.H; y++ {
		d := absInt(y - mid)
		hw := d * span / maxInt(mid, 1)
		left, right := cx-hw-1, cx+hw+1
		w.Paint(left, y, material.Stone)
		w.Paint(right, y, material.Stone)
		if y < fill {
			for x := left + 1; x < right; x++ {
				w.Paint(x, y, material.Sand)
			}
		}
	}
}

// basin is a stone tub with a layer of oil under a layer of water, so the two
// liquids have to trade places.
func basin(w *sand.World, _ int64) {
	size := w.Size()
	top := size.H / 3
	for y := top; y < size.H; y++ {
		w.Paint(0, y, material.Stone)
		w.Paint(size.W-1, y, material.Stone)
	}
	for x := 0; x < size.W; x++ {
		w.Paint(x, size.H-1, material.Stone)
	}
	depth := maxInt((size.H-1-top)/3, 1)
	oilTop := size.H - 1 - depth
	waterTop := oilTop - depth
	for y := waterTop; y < size.H-1; y++ {
		m := material.Water
		if y >= oilTop {
			m = material.Oil
		}
		for x := 1; x < size.W-1; x++ {
			w.Paint(x, y, m)
		}
	}
}

const (
	terrainScale   = 1.0 / 24
	terrainSandCap = 3
	terrainSpouts  = 3
)

// terrain builds rolling stone hills from simplex noise with a sand cap and a
// few distinct spouts hanging from the top row. The bottom row is always stone.
func terrain(w *sand.World, seed int64) {
	size := w.Size()
	noise := opensimplex.New(seed)
	base := size.H * 2 / 3
	amp := float64(size.H) / 4
	for x := 0; x < size.W; x++ {
		n := noise.Eval2(float64(x)*terrainScale, 0) + 0.5*noise.Eval2(float64(x)*terrainScale*2, 7.5)
		surface := base - int(n*amp/1.5)
		if surface < 1 {
			surface = 1
		}
		for y := surface; y < size.H; y++ {
			m := material.Stone
			if y < surface+terrainSandCap && y < size.H-1 {
				m = material.Sand
			}
			w.Paint(x, y, m)
		}
	}
	rng := core.NewRNG(seed)
	for i := 0; i < terrainSpouts && i < size.W; i++ {
		x := rng.IntN(size.W)
		for {
			m, _ := w.Get(x, 0)
			if m != material.Spout {
				break
			}
			x = (x + 1) % size.W
		}
		w.Paint(x, 0, material.Spout)
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
