package app

import (
	"fmt"
	"log"
	"strings"

	"mad-sand/internal/input"
	"mad-sand/internal/material"
	"mad-sand/internal/sand"
	"mad-sand/internal/scene"
)

// Clicker receives material selections, typically to play a sound.
type Clicker interface {
	Select(material.Material)
}

type nopClicker struct{}

func (nopClicker) Select(material.Material) {}

// Options configures a Controller.
type Options struct {
	// Scene is repainted on reset. Empty resets to a blank grid.
	Scene    string
	SavePath string
	Bindings input.Bindings
	Brush    input.Brush
	Clicker  Clicker
	Logger   *log.Logger
}

// Controller turns frontend-neutral input into world mutations. Frontends
// translate their native events into key names and pointer samples in grid
// coordinates and call the controller from their update loop.
type Controller struct {
	world *sand.World
	opts  Options

	brush   input.Brush
	pointer input.Pointer
	paused  bool
	overlay bool
	status  string
}

// NewController wraps w.
func NewController(w *sand.World, opts Options) *Controller {
	if opts.Bindings == nil {
		opts.Bindings = input.DefaultBindings()
	}
	if opts.Clicker == nil {
		opts.Clicker = nopClicker{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Brush.Max == 0 {
		opts.Brush = input.NewBrush(2, 0, 16)
	}
	return &Controller{world: w, opts: opts, brush: opts.Brush}
}

// World returns the controlled world.
func (c *Controller) World() *sand.World { return c.world }

// Bindings returns the active keymap.
func (c *Controller) Bindings() input.Bindings { return c.opts.Bindings }

// Brush returns the current brush.
func (c *Controller) Brush() input.Brush { return c.brush }

// Paused reports whether Advance is suspended.
func (c *Controller) Paused() bool { return c.paused }

// Overlay reports whether the key overlay is shown.
func (c *Controller) Overlay() bool { return c.overlay }

// Status returns the outcome of the last reset or save.
func (c *Controller) Status() string { return c.status }

// PointerPosition returns the last pointer sample in grid coordinates.
func (c *Controller) PointerPosition() (int, int) { return c.pointer.Position() }

// Key applies the command bound to a key name. It returns false when the
// frontend should exit.
func (c *Controller) Key(name string) bool {
	cmd, ok := c.opts.Bindings.Lookup(name)
	if !ok {
		return true
	}
	return c.Apply(cmd)
}

// Apply executes cmd. It returns false for the quit action.
func (c *Controller) Apply(cmd input.Command) bool {
	switch cmd.Action {
	case input.ActionSelectMaterial:
		c.Select(cmd.Material)
	case input.ActionBrushGrow:
		c.brush.Grow()
	case input.ActionBrushShrink:
		c.brush.Shrink()
	case input.ActionReset:
		c.Reset()
	case input.ActionPause:
		c.paused = !c.paused
	case input.ActionStep:
		if c.paused {
			c.world.Step()
		}
	case input.ActionSave:
		c.Save()
	case input.ActionOverlay:
		c.overlay = !c.overlay
	case input.ActionQuit:
		return false
	}
	return true
}

// Select changes the paint material.
func (c *Controller) Select(m material.Material) {
	if !m.Valid() {
		return
	}
	c.world.SelectMaterial(m)
	c.opts.Clicker.Select(m)
}

// Reset clears the world and repaints the configured scene.
func (c *Controller) Reset() {
	if c.opts.Scene != "" {
		err := scene.Apply(c.opts.Scene, c.world, 0)
		if err == nil {
			c.status = "reset " + c.opts.Scene
			return
		}
		c.opts.Logger.Printf("reset: %v", err)
	}
	c.world.Reset(0)
	c.status = "reset"
}

// Save writes the world to the configured save path.
func (c *Controller) Save() {
	if c.opts.SavePath == "" {
		c.status = "no save path"
		return
	}
	if err := scene.SaveFile(c.opts.SavePath, c.world); err != nil {
		c.opts.Logger.Printf("save %s: %v", c.opts.SavePath, err)
		c.status = "save failed"
		return
	}
	c.status = "saved " + c.opts.SavePath
}

// Pointer feeds a pointer sample in grid coordinates. While down is true,
// consecutive samples are joined with brush strokes so fast drags leave no
// gaps.
func (c *Controller) Pointer(x, y int, down bool) {
	c.PointerRows(x, y, 1, down)
}

// PointerRows is Pointer for frontends whose pointer cells cover several grid
// rows starting at y. Strokes are painted on every covered row.
func (c *Controller) PointerRows(x, y, rows int, down bool) {
	if !down {
		c.pointer.Release()
		c.pointer.Move(x, y)
		return
	}
	var s input.Stroke
	if c.pointer.Down() {
		s, _ = c.pointer.Move(x, y)
	} else {
		s = c.pointer.Press(x, y)
	}
	for r := 0; r < max(rows, 1); r++ {
		c.world.PaintLine(s.X0, s.Y0+r, s.X1, s.Y1+r, c.brush.Radius, c.world.Active())
	}
}

// Advance runs n ticks unless paused.
func (c *Controller) Advance(n int) {
	if c.paused {
		return
	}
	for ; n > 0; n-- {
		c.world.Step()
	}
}

// StatusLine summarises the session, or lists the key bindings while the
// overlay is on.
func (c *Controller) StatusLine() string {
	if c.overlay {
		var b strings.Builder
		for _, k := range c.opts.Bindings.Keys() {
			fmt.Fprintf(&b, "%s:%s ", k, c.opts.Bindings[k])
		}
		return strings.TrimSpace(b.String())
	}
	state := "running"
	if c.paused {
		state = "paused"
	}
	active := c.world.Active().String()
	if k, ok := c.opts.Bindings.KeyFor(input.Command{Action: input.ActionSelectMaterial, Material: c.world.Active()}); ok {
		active += " [" + k + "]"
	}
	line := fmt.Sprintf("%s  brush %d  tick %d  moves %d  %s",
		active, c.brush.Radius, c.world.Tick(), c.world.Moves(), state)
	if c.status != "" {
		line += "  " + c.status
	}
	return line
}
