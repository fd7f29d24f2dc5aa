package sand

import "mad-sand/internal/material"

// Config controls the sandbox dimensions, seeding and rules.
type Config struct {
	Width  int
	Height int

	Seed int64

	// Material is the initially selected paint material.
	Material material.Material

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:    226,
		Height:   126,
		Seed:     42,
		Material: material.Water,
		Params:   DefaultParams(),
	}
}
