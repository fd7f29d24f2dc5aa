package tui

import (
	"io"
	"log"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mad-sand/internal/app"
	"mad-sand/internal/input"
	"mad-sand/internal/material"
	"mad-sand/internal/sand"
)

func newApp(t *testing.T, opts app.Options) (*App, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(20, 6)

	w, err := sand.New(20, 10)
	require.NoError(t, err)
	opts.Logger = log.New(io.Discard, "", 0)
	return New(screen, app.NewController(w, opts), 60), screen
}

func screenLine(s tcell.SimulationScreen, y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestKeysReachController(t *testing.T) {
	a, _ := newApp(t, app.Options{})

	assert.True(t, a.handleKey(tcell.KeyRune, 'Q'))
	assert.Equal(t, material.Sand, a.ctl.World().Active())
	assert.True(t, a.handleKey(tcell.KeyRune, ' '))
	assert.True(t, a.ctl.Paused())
	assert.True(t, a.handleKey(tcell.KeyF1, 0), "non-rune keys are ignored")

	assert.False(t, a.handleKey(tcell.KeyEscape, 0))
	assert.False(t, a.handleKey(tcell.KeyCtrlC, 0))
}

func TestMouseRowsMapToHalfBlocks(t *testing.T) {
	a, _ := newApp(t, app.Options{Brush: input.NewBrush(0, 0, 3)})
	a.ctl.Select(material.Stone)

	a.handleMouse(2, 1, tcell.Button1)
	a.handleMouse(6, 1, tcell.Button1)
	a.handleMouse(9, 1, tcell.ButtonNone)

	g := a.ctl.World().Grid()
	assert.Equal(t, 10, g.Count(material.Stone))
	for x := 2; x <= 6; x++ {
		for _, y := range []int{2, 3} {
			m, err := g.Get(x, y)
			require.NoError(t, err)
			assert.Equal(t, material.Stone, m, "cell %d,%d", x, y)
		}
	}
}

func TestDrawUsesHalfBlocks(t *testing.T) {
	a, screen := newApp(t, app.Options{})
	w := a.ctl.World()
	require.NoError(t, w.Set(3, 0, material.Stone))
	require.NoError(t, w.Set(3, 1, material.Water))
	a.draw()

	r, _, style, _ := screen.GetContent(3, 0)
	assert.Equal(t, halfBlock, r)
	fg, bg, _ := style.Decompose()
	pal := w.Palette()
	assert.Equal(t, rgb(pal[sand.PaletteIndex(material.Stone, 0)]), fg)
	assert.Equal(t, rgb(pal[sand.PaletteIndex(material.Water, 0)]), bg)

	status := screenLine(screen, 5, 20)
	assert.True(t, strings.HasPrefix(status, "water"), "status line %q", status)
}
