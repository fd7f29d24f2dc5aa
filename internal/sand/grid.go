package sand

import (
	"errors"
	"fmt"

	"mad-sand/internal/material"
)

var (
	// ErrInvalidSize is returned when a grid is constructed with a
	// non-positive dimension.
	ErrInvalidSize = errors.New("sand: invalid grid size")
	// ErrOutOfBounds is returned by the strict accessors for coordinates
	// outside the grid.
	ErrOutOfBounds = errors.New("sand: coordinates out of bounds")
)

// Grid stores cells in row-major order with the origin at the top-left.
type Grid struct {
	w, h  int
	cells []Cell
}

// NewGrid allocates a grid of empty cells.
func NewGrid(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	return &Grid{w: w, h: h, cells: make([]Cell, w*h)}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

func (g *Grid) index(x, y int) int { return y*g.w + x }

func (g *Grid) check(x, y int) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, x, y, g.w, g.h)
	}
	return nil
}

// Get returns the material at (x, y).
func (g *Grid) Get(x, y int) (material.Material, error) {
	if err := g.check(x, y); err != nil {
		return material.Empty, err
	}
	return g.cells[g.index(x, y)].Material, nil
}

// Cell returns the full cell state at (x, y).
func (g *Grid) Cell(x, y int) (Cell, error) {
	if err := g.check(x, y); err != nil {
		return Cell{}, err
	}
	return g.cells[g.index(x, y)], nil
}

// Set overwrites the material at (x, y) and clears its dirty flag.
func (g *Grid) Set(x, y int, m material.Material) error {
	return g.SetCell(x, y, Cell{Material: m})
}

// SetCell overwrites the cell at (x, y). The dirty flag is always cleared.
// Unknown material tags are rejected with material.ErrUnknownMaterial.
func (g *Grid) SetCell(x, y int, c Cell) error {
	if err := g.check(x, y); err != nil {
		return err
	}
	if !c.Material.Valid() {
		return fmt.Errorf("%w: tag %d", material.ErrUnknownMaterial, uint8(c.Material))
	}
	c.Dirty = false
	c.Shade %= Shades
	g.cells[g.index(x, y)] = c
	return nil
}

// Swap exchanges the cells at a and b and marks both as processed for the
// current tick.
func (g *Grid) Swap(ax, ay, bx, by int) error {
	if err := g.check(ax, ay); err != nil {
		return err
	}
	if err := g.check(bx, by); err != nil {
		return err
	}
	g.swapIndex(g.index(ax, ay), g.index(bx, by))
	return nil
}

func (g *Grid) swapIndex(i, j int) {
	g.cells[i], g.cells[j] = g.cells[j], g.cells[i]
	g.cells[i].Dirty = true
	g.cells[j].Dirty = true
}

// ResetDirty clears every dirty flag.
func (g *Grid) ResetDirty() {
	for i := range g.cells {
		g.cells[i].Dirty = false
	}
}

// Clear empties every cell.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Cell{}
	}
}

// Count returns how many cells hold m.
func (g *Grid) Count(m material.Material) int {
	n := 0
	for i := range g.cells {
		if g.cells[i].Material == m {
			n++
		}
	}
	return n
}

// Census returns the number of cells per material, indexed by tag.
func (g *Grid) Census() []int {
	counts := make([]int, material.Count())
	for i := range g.cells {
		if m := g.cells[i].Material; m.Valid() {
			counts[m]++
		}
	}
	return counts
}
