package sand

import (
	"image/color"

	"mad-sand/internal/core"
	"mad-sand/internal/material"
)

// World couples a Grid with its update engine and the paint state the input
// layer drives. It is not safe for concurrent use: ticks and paint calls must
// be interleaved by a single owner.
type World struct {
	cfg    Config
	grid   *Grid
	engine *Engine
	active material.Material

	paintRNG *core.RNG
	display  []uint8
	palette  []color.RGBA
}

// New returns a World with the provided dimensions using defaults.
func New(w, h int) (*World, error) {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a World configured from the provided options. It
// fails only when the dimensions are not positive.
func NewWithConfig(cfg Config) (*World, error) {
	grid, err := NewGrid(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	if !cfg.Material.Valid() {
		cfg.Material = material.Sand
	}
	cfg.Params = cfg.Params.normalized()
	return &World{
		cfg:      cfg,
		grid:     grid,
		engine:   NewEngine(cfg.Params, cfg.Seed),
		active:   cfg.Material,
		paintRNG: core.NewRNG(cfg.Seed + 1),
		display:  make([]uint8, cfg.Width*cfg.Height),
		palette:  buildPalette(),
	}, nil
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "sand" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.grid.w, H: w.grid.h} }

// Config returns the configuration the world was built with, with the
// current rule parameters.
func (w *World) Config() Config {
	cfg := w.cfg
	cfg.Params = w.engine.Params()
	return cfg
}

// Grid exposes the underlying grid store.
func (w *World) Grid() *Grid { return w.grid }

// Reset empties the grid and rewinds the tick counter. A zero seed reuses the
// configured seed. The active material is kept.
func (w *World) Reset(seed int64) {
	if seed == 0 {
		seed = w.cfg.Seed
	}
	w.grid.Clear()
	w.engine.Reset(seed)
	w.paintRNG = core.NewRNG(seed + 1)
}

// Step advances the simulation by one tick.
func (w *World) Step() { w.engine.Step(w.grid) }

// Tick returns the number of ticks since the last reset.
func (w *World) Tick() uint64 { return w.engine.Tick() }

// RestoreTick sets the tick counter, used when loading a saved scene so the
// sideways alternation resumes with the same parity.
func (w *World) RestoreTick(t uint64) { w.engine.tick = t }

// Moves returns how many swaps the last tick performed. Zero means the grid
// is at rest apart from emitters and fire burning out.
func (w *World) Moves() int { return w.engine.Moves() }

// Params returns the active rule parameters.
func (w *World) Params() Params { return w.engine.Params() }

// SetParams replaces the rule parameters.
func (w *World) SetParams(p Params) { w.engine.SetParams(p) }

// Active returns the material subsequent paint calls place.
func (w *World) Active() material.Material { return w.active }

// SelectMaterial changes the active material. Unknown tags are ignored.
func (w *World) SelectMaterial(m material.Material) {
	if !m.Valid() {
		return
	}
	w.active = m
}

// Get returns the material at (x, y) or ErrOutOfBounds.
func (w *World) Get(x, y int) (material.Material, error) { return w.grid.Get(x, y) }

// Set overwrites the material at (x, y) or returns ErrOutOfBounds.
func (w *World) Set(x, y int, m material.Material) error { return w.grid.Set(x, y, m) }
