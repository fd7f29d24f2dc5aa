package material

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// Material tags the contents of a single grid cell.
type Material uint8

const (
	Empty Material = iota
	Sand
	Water
	Stone
	Oil
	Fire
	Spout
	Magic
	Maze

	count
)

// Mobility selects which movement rule the engine applies to a material.
type Mobility uint8

const (
	// Static materials never move on their own.
	Static Mobility = iota
	// Granular materials fall and pile up at an angle of repose.
	Granular
	// Fluid materials fall and level out sideways.
	Fluid
	// Gas materials rise and burn out when trapped.
	Gas
	// Emitter materials spawn water into the empty cell below them.
	Emitter
	// Buoyant materials rise and wander sideways through empty or fluid cells.
	Buoyant
	// Automaton materials grow and die by counting like neighbours.
	Automaton
)

// ErrUnknownMaterial is returned by Parse for names outside the material set.
var ErrUnknownMaterial = errors.New("material: unknown material")

// Properties holds the static attributes of a material.
type Properties struct {
	Name     string
	Density  uint8
	Mobility Mobility
	Color    color.RGBA
}

var table = [count]Properties{
	Empty: {Name: "empty", Density: 0, Mobility: Static, Color: color.RGBA{R: 0, G: 0, B: 0, A: 255}},
	Sand:  {Name: "sand", Density: 160, Mobility: Granular, Color: color.RGBA{R: 255, G: 215, B: 0, A: 255}},
	Water: {Name: "water", Density: 100, Mobility: Fluid, Color: color.RGBA{R: 4, G: 59, B: 92, A: 255}},
	Stone: {Name: "stone", Density: 255, Mobility: Static, Color: color.RGBA{R: 169, G: 169, B: 169, A: 255}},
	Oil:   {Name: "oil", Density: 80, Mobility: Fluid, Color: color.RGBA{R: 92, G: 64, B: 28, A: 255}},
	Fire:  {Name: "fire", Density: 1, Mobility: Gas, Color: color.RGBA{R: 255, G: 0, B: 0, A: 255}},
	Spout: {Name: "spout", Density: 255, Mobility: Emitter, Color: color.RGBA{R: 90, G: 140, B: 220, A: 255}},
	Magic: {Name: "magic", Density: 50, Mobility: Buoyant, Color: color.RGBA{R: 0, G: 255, B: 0, A: 255}},
	Maze:  {Name: "maze", Density: 255, Mobility: Automaton, Color: color.RGBA{R: 255, G: 255, B: 255, A: 255}},
}

// Count reports how many materials exist.
func Count() int { return int(count) }

// All returns every material in tag order.
func All() []Material {
	out := make([]Material, count)
	for i := range out {
		out[i] = Material(i)
	}
	return out
}

// Lookup returns the static properties of m. Invalid tags resolve to Empty.
func Lookup(m Material) Properties {
	if m >= count {
		return table[Empty]
	}
	return table[m]
}

// Valid reports whether m is a known material tag.
func (m Material) Valid() bool { return m < count }

// Density is shorthand for Lookup(m).Density.
func (m Material) Density() uint8 { return Lookup(m).Density }

// Mobility is shorthand for Lookup(m).Mobility.
func (m Material) Mobility() Mobility { return Lookup(m).Mobility }

// Color is shorthand for Lookup(m).Color.
func (m Material) Color() color.RGBA { return Lookup(m).Color }

func (m Material) String() string {
	if !m.Valid() {
		return fmt.Sprintf("material(%d)", uint8(m))
	}
	return table[m].Name
}

// Parse resolves a material by name, ignoring case and surrounding space.
func Parse(name string) (Material, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i := range table {
		if table[i].Name == key {
			return Material(i), nil
		}
	}
	return Empty, fmt.Errorf("%w: %q", ErrUnknownMaterial, name)
}

// MarshalText encodes the material by name.
func (m Material) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: tag %d", ErrUnknownMaterial, uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText decodes a material name.
func (m *Material) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (mb Mobility) String() string {
	switch mb {
	case Static:
		return "static"
	case Granular:
		return "granular"
	case Fluid:
		return "fluid"
	case Gas:
		return "gas"
	case Emitter:
		return "emitter"
	case Buoyant:
		return "buoyant"
	case Automaton:
		return "automaton"
	default:
		return fmt.Sprintf("mobility(%d)", uint8(mb))
	}
}
