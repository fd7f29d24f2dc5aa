//go:build ebiten

package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"mad-sand/internal/input"
	"mad-sand/internal/render"
	"mad-sand/internal/ui"
)

// HUDWidth is the width in pixels of the panel right of the grid.
const HUDWidth = 200

// Game adapts a Controller to the ebiten.Game interface.
type Game struct {
	ctl     *Controller
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay

	scale int
	runes []rune
}

// New constructs a Game drawing each cell as a scale x scale square.
func New(ctl *Controller, scale int) *Game {
	if scale <= 0 {
		scale = 1
	}
	w := ctl.World()
	size := w.Size()
	gp := render.NewGridPainter(size.W, size.H)
	return &Game{
		ctl:     ctl,
		painter: gp,
		hud:     ui.NewHUD(w, HUDWidth, ctl.Select),
		overlay: ui.NewOverlay(w, gp, scale),
		scale:   scale,
	}
}

// Update handles per-frame input and advances the world one tick. ebiten's
// TPS setting paces the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && !g.ctl.Key("escape") {
		return ebiten.Termination
	}
	g.runes = ebiten.AppendInputChars(g.runes[:0])
	for _, r := range g.runes {
		if !g.ctl.Key(input.KeyName(r)) {
			return ebiten.Termination
		}
	}

	size := g.ctl.World().Size()
	g.hud.Update(size.W * g.scale)

	mx, my := ebiten.CursorPosition()
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && !g.hud.Contains(mx, my)
	g.ctl.Pointer(mx/g.scale, my/g.scale, down)

	g.ctl.Advance(1)
	return nil
}

// Draw renders the grid, overlay and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	w := g.ctl.World()
	g.painter.Blit(screen, w.Cells(), w.Palette(), g.scale)
	gx, gy := g.ctl.PointerPosition()
	g.overlay.Draw(screen, gx, gy, g.ctl.Brush().Radius, g.ctl.Overlay())
	g.hud.SetStatus(g.ctl.StatusLine())
	g.hud.Draw(screen, w.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.ctl.World().Size()
	return s.W*g.scale + HUDWidth, s.H * g.scale
}
