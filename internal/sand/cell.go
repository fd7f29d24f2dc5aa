package sand

import "mad-sand/internal/material"

// Shades is the number of cosmetic color variants per material.
const Shades = 4

// Cell is the state of one grid position.
type Cell struct {
	Material material.Material
	// Dirty marks a cell that already moved during the current tick.
	Dirty bool
	// Shade selects a color variant; it travels with the cell when it moves.
	Shade uint8
}

// Props returns the static properties of the cell's material.
func (c Cell) Props() material.Properties { return material.Lookup(c.Material) }

// IsEmpty reports whether the cell holds no material.
func (c Cell) IsEmpty() bool { return c.Material == material.Empty }
