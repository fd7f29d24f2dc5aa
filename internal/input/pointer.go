package input

// Stroke is a segment of pointer motion in grid coordinates.
type Stroke struct {
	X0, Y0 int
	X1, Y1 int
}

// Pointer tracks the last known pointer position while a button is held so
// consecutive samples can be joined into strokes.
type Pointer struct {
	down bool
	x, y int
}

// Down reports whether the button is held.
func (p *Pointer) Down() bool { return p.down }

// Position returns the last recorded position.
func (p *Pointer) Position() (int, int) { return p.x, p.y }

// Press starts a stroke at (x, y). The returned stroke is a single point.
func (p *Pointer) Press(x, y int) Stroke {
	p.down = true
	p.x, p.y = x, y
	return Stroke{X0: x, Y0: y, X1: x, Y1: y}
}

// Move records a new sample. While the button is held it returns the segment
// from the previous sample.
func (p *Pointer) Move(x, y int) (Stroke, bool) {
	prevX, prevY := p.x, p.y
	p.x, p.y = x, y
	if !p.down {
		return Stroke{}, false
	}
	return Stroke{X0: prevX, Y0: prevY, X1: x, Y1: y}, true
}

// Release ends the stroke.
func (p *Pointer) Release() { p.down = false }

// Brush is the paint radius selected by the user.
type Brush struct {
	Radius int
	Min    int
	Max    int
}

// NewBrush returns a brush with the given radius clamped to [min, max].
func NewBrush(radius, min, max int) Brush {
	if max < min {
		max = min
	}
	b := Brush{Min: min, Max: max}
	b.set(radius)
	return b
}

// Grow increases the radius by one, up to Max.
func (b *Brush) Grow() { b.set(b.Radius + 1) }

// Shrink decreases the radius by one, down to Min.
func (b *Brush) Shrink() { b.set(b.Radius - 1) }

func (b *Brush) set(r int) {
	if r < b.Min {
		r = b.Min
	}
	if r > b.Max {
		r = b.Max
	}
	b.Radius = r
}
