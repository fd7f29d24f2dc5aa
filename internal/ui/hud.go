//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"mad-sand/internal/core"
	"mad-sand/internal/material"
	"mad-sand/internal/sand"
)

// Sim is what the HUD reads from the world.
type Sim interface {
	core.Sim
	Parameters() core.ParameterSnapshot
	Active() material.Material
}

var (
	panelBG    = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	textColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor   = color.RGBA{R: 150, G: 150, B: 160, A: 255}
	buttonBG   = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	buttonOff  = color.RGBA{R: 32, G: 34, B: 40, A: 255}
	selectRing = color.RGBA{R: 240, G: 240, B: 120, A: 255}
)

// HUD renders the material picker and parameter panel to the right of the
// grid.
type HUD struct {
	sim      Sim
	width    int
	onSelect func(material.Material)

	panel    *ebiten.Image
	pixel    *ebiten.Image
	offsetX  int
	snapshot core.ParameterSnapshot

	swatches []swatch
	controls []controlState
	ints     core.IntParameterSetter
	floats   core.FloatParameterSetter

	status string
}

type swatch struct {
	m    material.Material
	rect image.Rectangle
}

type controlState struct {
	ctrl      core.ParameterControl
	value     float64
	hasValue  bool
	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// NewHUD builds a panel of the given width. onSelect is called when a
// material swatch is clicked.
func NewHUD(sim Sim, width int, onSelect func(material.Material)) *HUD {
	h := &HUD{sim: sim, width: width, onSelect: onSelect}
	if width <= 0 {
		return h
	}
	h.pixel = ebiten.NewImage(1, 1)
	h.pixel.Fill(color.White)

	y := panelPadding + headerBaseline + 8
	for _, m := range material.All() {
		h.swatches = append(h.swatches, swatch{m: m, rect: image.Rect(panelPadding, y, panelPadding+swatchSize, y+swatchSize)})
		y += swatchSize + swatchGap
	}
	if p, ok := sim.(core.ParameterControlsProvider); ok {
		y += sectionGap
		for _, c := range p.ParameterControls() {
			buttonY := y + (lineHeight-buttonSize)/2
			plus := image.Rect(width-panelPadding-buttonSize, buttonY, width-panelPadding, buttonY+buttonSize)
			minus := plus.Sub(image.Pt(buttonSize+buttonGap, 0))
			h.controls = append(h.controls, controlState{ctrl: c, top: y, minusRect: minus, plusRect: plus})
			y += lineHeight
		}
	}
	h.ints, _ = sim.(core.IntParameterSetter)
	h.floats, _ = sim.(core.FloatParameterSetter)
	return h
}

// SetStatus sets the line drawn at the bottom of the panel.
func (h *HUD) SetStatus(s string) { h.status = s }

// Contains reports whether the screen point falls on the panel.
func (h *HUD) Contains(x, y int) bool {
	return h != nil && h.width > 0 && x >= h.offsetX && x < h.offsetX+h.width
}

// Update refreshes parameter values and handles clicks on the panel.
func (h *HUD) Update(offsetX int) {
	if h == nil || h.width <= 0 {
		return
	}
	h.offsetX = offsetX
	h.snapshot = h.sim.Parameters()
	for i := range h.controls {
		c := &h.controls[i]
		p, ok := h.snapshot.Lookup(c.ctrl.Key)
		if !ok {
			c.hasValue = false
			continue
		}
		c.value, c.hasValue = parseValue(c.ctrl, p.Value)
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	h.click(mx-offsetX, my)
}

func (h *HUD) click(px, py int) {
	for _, s := range h.swatches {
		hit := s.rect
		hit.Max.X = h.width - panelPadding
		if pointInRect(px, py, hit) {
			if h.onSelect != nil {
				h.onSelect(s.m)
			}
			return
		}
	}
	for i := range h.controls {
		c := &h.controls[i]
		if !c.hasValue {
			continue
		}
		switch {
		case pointInRect(px, py, c.minusRect):
			h.adjust(c, -1)
		case pointInRect(px, py, c.plusRect):
			h.adjust(c, 1)
		default:
			continue
		}
		return
	}
}

func (h *HUD) adjust(c *controlState, dir int) {
	target, ok := nextValue(c.ctrl, c.value, dir)
	if !ok {
		return
	}
	switch c.ctrl.Type {
	case core.ParamTypeInt:
		if h.ints != nil && h.ints.SetIntParameter(c.ctrl.Key, int(target)) {
			c.value = target
		}
	case core.ParamTypeFloat:
		if h.floats != nil && h.floats.SetFloatParameter(c.ctrl.Key, target) {
			c.value = target
		}
	}
}

// Draw paints the panel at offsetX. The panel is as tall as the scaled grid.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.sim.Size().H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelBG)

	face := basicfont.Face7x13
	text.Draw(h.panel, "Materials", face, panelPadding, panelPadding+headerBaseline, textColor)
	palette := h.palette()
	active := h.sim.Active()
	for _, s := range h.swatches {
		if s.m == active {
			h.fillRect(s.rect.Inset(-2), selectRing)
		}
		h.fillRect(s.rect, swatchColor(palette, s.m))
		label := s.m.String()
		if s.m == material.Empty {
			label = "eraser"
		}
		text.Draw(h.panel, label, face, s.rect.Max.X+8, s.rect.Max.Y-4, textColor)
	}

	for i := range h.controls {
		c := &h.controls[i]
		y := c.top + labelBaseline
		text.Draw(h.panel, c.ctrl.Label, face, panelPadding, y, textColor)
		value, col := "--", dimColor
		if c.hasValue {
			value, col = formatValue(c.ctrl, c.value), textColor
		}
		w := text.BoundString(face, value).Dx()
		text.Draw(h.panel, value, face, c.minusRect.Min.X-buttonGap-w, y, col)
		_, canDown := nextValue(c.ctrl, c.value, -1)
		_, canUp := nextValue(c.ctrl, c.value, 1)
		h.drawButton(c.minusRect, "-", c.hasValue && canDown)
		h.drawButton(c.plusRect, "+", c.hasValue && canUp)
	}

	if h.status != "" {
		text.Draw(h.panel, h.status, face, panelPadding, height-panelPadding, dimColor)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) palette() []color.RGBA {
	if p, ok := h.sim.(core.PaletteSim); ok {
		return p.Palette()
	}
	return nil
}

func swatchColor(palette []color.RGBA, m material.Material) color.RGBA {
	idx := int(sand.PaletteIndex(m, 0))
	if idx < len(palette) {
		return palette[idx]
	}
	return m.Color()
}

func (h *HUD) fillRect(r image.Rectangle, c color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(r.Dx()), float64(r.Dy()))
	op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
	op.ColorScale.ScaleWithColor(c)
	h.panel.DrawImage(h.pixel, op)
}

func (h *HUD) drawButton(r image.Rectangle, label string, enabled bool) {
	bg, fg := buttonBG, textColor
	if !enabled {
		bg, fg = buttonOff, dimColor
	}
	h.fillRect(r, bg)
	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	x := r.Min.X + (r.Dx()-b.Dx())/2
	y := r.Min.Y + (r.Dy()-b.Dy())/2 + b.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

const (
	panelPadding   = 12
	headerBaseline = 14
	labelBaseline  = 24
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	swatchSize     = 18
	swatchGap      = 6
	sectionGap     = 12
)
