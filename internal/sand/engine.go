package sand

import (
	"mad-sand/internal/core"
	"mad-sand/internal/material"
)

const maxFlowDistance = 8

// Params holds the tunable fidelity knobs of the update rules.
type Params struct {
	// FlowDistance is how many empty cells a fluid may slide sideways in a
	// single displacement. 1 is the plain one-step leveling rule.
	FlowDistance int
	// FireRiseChance is the per-tick probability that fire rises into the
	// empty cell above it.
	FireRiseChance float64
}

// DefaultParams returns the baseline rule set.
func DefaultParams() Params {
	return Params{FlowDistance: 1, FireRiseChance: 0.7}
}

func (p Params) normalized() Params {
	if p.FlowDistance < 1 {
		p.FlowDistance = 1
	}
	if p.FlowDistance > maxFlowDistance {
		p.FlowDistance = maxFlowDistance
	}
	if p.FireRiseChance < 0 {
		p.FireRiseChance = 0
	}
	if p.FireRiseChance > 1 {
		p.FireRiseChance = 1
	}
	return p
}

// Engine advances a Grid one tick at a time.
//
// Rows are scanned bottom to top and columns left to right. Every cell that
// moves is marked dirty and skipped for the rest of the tick, so no cell is
// displaced twice. The sideways preference flips with tick parity to avoid a
// directional drift.
type Engine struct {
	params Params
	rng    *core.RNG
	tick   uint64
	moves  int

	onMove func(from, to int)
}

// NewEngine constructs an engine with the given rules and RNG seed. The seed
// drives fire drift, buoyant wandering and the shade of spawned cells.
func NewEngine(p Params, seed int64) *Engine {
	return &Engine{params: p.normalized(), rng: core.NewRNG(seed)}
}

// Params returns the active rule parameters.
func (e *Engine) Params() Params { return e.params }

// SetParams replaces the rule parameters, clamping them to sane ranges.
func (e *Engine) SetParams(p Params) { e.params = p.normalized() }

// Tick returns how many steps have run since the last reset.
func (e *Engine) Tick() uint64 { return e.tick }

// Moves returns how many swaps the previous step performed.
func (e *Engine) Moves() int { return e.moves }

// Reset rewinds the tick counter and reseeds the RNG.
func (e *Engine) Reset(seed int64) {
	e.tick = 0
	e.moves = 0
	e.rng = core.NewRNG(seed)
}

// Step advances g by exactly one tick.
func (e *Engine) Step(g *Grid) {
	g.ResetDirty()
	e.moves = 0
	dir := e.preferredDir()
	for y := g.h - 1; y >= 0; y-- {
		row := y * g.w
		for x := 0; x < g.w; x++ {
			c := g.cells[row+x]
			if c.Dirty {
				continue
			}
			switch c.Material.Mobility() {
			case material.Granular:
				e.fall(g, x, y, dir)
			case material.Fluid:
				if !e.fall(g, x, y, dir) {
					e.spread(g, x, y, dir)
				}
			case material.Gas:
				e.rise(g, x, y)
			case material.Emitter:
				e.emit(g, x, y)
			case material.Buoyant:
				e.float(g, x, y)
			case material.Automaton:
				e.grow(g, x, y)
			}
		}
	}
	e.tick++
}

// preferredDir is -1 (left) on even ticks and +1 (right) on odd ticks.
func (e *Engine) preferredDir() int {
	if e.tick%2 == 0 {
		return -1
	}
	return 1
}

// canEnter reports whether mover may move into (x, y). Empty cells are always
// enterable; occupied cells only when strictly lighter and not already moved
// this tick.
func (e *Engine) canEnter(g *Grid, mover material.Material, x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	target := g.cells[g.index(x, y)]
	if target.IsEmpty() {
		return true
	}
	if target.Dirty {
		return false
	}
	return mover.Density() > target.Material.Density()
}

func (e *Engine) fall(g *Grid, x, y, dir int) bool {
	if y+1 >= g.h {
		return false
	}
	m := g.cells[g.index(x, y)].Material
	if e.canEnter(g, m, x, y+1) {
		e.move(g, x, y, x, y+1)
		return true
	}
	for _, dx := range [2]int{dir, -dir} {
		if e.canEnter(g, m, x+dx, y+1) {
			e.move(g, x, y, x+dx, y+1)
			return true
		}
	}
	return false
}

func (e *Engine) spread(g *Grid, x, y, dir int) bool {
	for _, dx := range [2]int{dir, -dir} {
		target := -1
		for step := 1; step <= e.params.FlowDistance; step++ {
			nx := x + dx*step
			if !g.InBounds(nx, y) || !g.cells[g.index(nx, y)].IsEmpty() {
				break
			}
			target = nx
		}
		if target >= 0 {
			e.move(g, x, y, target, y)
			return true
		}
	}
	return false
}

func (e *Engine) rise(g *Grid, x, y int) {
	if y > 0 && g.cells[g.index(x, y-1)].IsEmpty() && e.rng.Chance(e.params.FireRiseChance) {
		e.move(g, x, y, x, y-1)
		return
	}
	nx := x + e.rng.Dir()
	if nx != x && g.InBounds(nx, y) && g.cells[g.index(nx, y)].IsEmpty() {
		e.move(g, x, y, nx, y)
		return
	}
	// Trapped fire burns out.
	g.cells[g.index(x, y)] = Cell{Dirty: true}
}

func (e *Engine) emit(g *Grid, x, y int) {
	if y+1 >= g.h {
		return
	}
	below := g.index(x, y+1)
	if !g.cells[below].IsEmpty() {
		return
	}
	g.cells[below] = Cell{Material: material.Water, Shade: e.rng.Uint8n(Shades), Dirty: true}
}

// float lifts a buoyant cell one row through empty or fluid cells and lets it
// wander one column to a random side when that cell is passable too.
func (e *Engine) float(g *Grid, x, y int) {
	ty := y
	if y > 0 && e.passable(g, x, y-1) {
		ty = y - 1
	}
	tx := x
	side := -1
	if e.rng.Bool() {
		side = 1
	}
	if e.passable(g, x+side, ty) {
		tx = x + side
	}
	if tx != x || ty != y {
		e.move(g, x, y, tx, ty)
	}
}

func (e *Engine) passable(g *Grid, x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	c := g.cells[g.index(x, y)]
	if c.IsEmpty() {
		return true
	}
	return !c.Dirty && c.Material.Mobility() == material.Fluid
}

// grow applies the neighbour-count rule around an automaton cell: empty
// neighbours with exactly three automaton neighbours are born, and the cell
// itself dies with fewer than one or more than five. Births and deaths are not
// moves.
func (e *Engine) grow(g *Grid, x, y int) {
	m := g.cells[g.index(x, y)].Material
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			nx, ny := x+dx, y+dy
			if (dx == 0 && dy == 0) || !g.InBounds(nx, ny) {
				continue
			}
			i := g.index(nx, ny)
			if g.cells[i].IsEmpty() && neighbours(g, nx, ny, m) == 3 {
				g.cells[i] = Cell{Material: m, Shade: e.rng.Uint8n(Shades), Dirty: true}
			}
		}
	}
	if n := neighbours(g, x, y, m); n < 1 || n > 5 {
		g.cells[g.index(x, y)] = Cell{Dirty: true}
	}
}

func neighbours(g *Grid, x, y int, m material.Material) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if g.InBounds(x+dx, y+dy) && g.cells[g.index(x+dx, y+dy)].Material == m {
				n++
			}
		}
	}
	return n
}

func (e *Engine) move(g *Grid, x0, y0, x1, y1 int) {
	from, to := g.index(x0, y0), g.index(x1, y1)
	if e.onMove != nil {
		e.onMove(from, to)
		if !g.cells[to].IsEmpty() {
			e.onMove(to, from)
		}
	}
	g.swapIndex(from, to)
	e.moves++
}
