package sand

import "mad-sand/internal/material"

// Paint places m at (x, y). Coordinates outside the grid are ignored: pointer
// positions routinely overshoot the canvas edge while dragging.
func (w *World) Paint(x, y int, m material.Material) {
	if !w.grid.InBounds(x, y) || !m.Valid() {
		return
	}
	_ = w.grid.SetCell(x, y, w.newCell(m))
}

// PaintBrush places m on every cell of the Euclidean disk of the given radius
// centred on (x, y), clipped to the grid. A radius of zero or less paints only
// the centre cell.
func (w *World) PaintBrush(x, y, radius int, m material.Material) {
	if radius <= 0 {
		w.Paint(x, y, m)
		return
	}
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > r2 {
				continue
			}
			w.Paint(x+dx, y+dy, m)
		}
	}
}

// PaintLine stamps the brush along the straight line from (x0, y0) to
// (x1, y1) so fast pointer drags leave a continuous stroke.
func (w *World) PaintLine(x0, y0, x1, y1, radius int, m material.Material) {
	line(x0, y0, x1, y1, func(x, y int) {
		w.PaintBrush(x, y, radius, m)
	})
}

func (w *World) newCell(m material.Material) Cell {
	c := Cell{Material: m}
	if m != material.Empty {
		c.Shade = w.paintRNG.Uint8n(Shades)
	}
	return c
}

// line visits every point of a Bresenham line including both endpoints.
func line(x0, y0, x1, y1 int, visit func(x, y int)) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		visit(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
