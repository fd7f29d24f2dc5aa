package tui

import (
	"context"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"

	"mad-sand/internal/app"
	"mad-sand/internal/core"
	"mad-sand/internal/input"
)

// halfBlock draws the upper grid row in the foreground and the lower one in
// the background, so each terminal row shows two grid rows.
const halfBlock = '▀'

// App runs a controller in a terminal.
type App struct {
	screen tcell.Screen
	ctl    *app.Controller
	clock  *core.FixedStep

	colors []color.RGBA
}

// New wires a controller to an initialised screen.
func New(screen tcell.Screen, ctl *app.Controller, tps int) *App {
	screen.EnableMouse()
	return &App{screen: screen, ctl: ctl, clock: core.NewFixedStep(tps)}
}

// Run processes input and advances the world until ctx is cancelled or the
// quit action is triggered.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(a.clock.Interval())
	defer ticker.Stop()
	a.draw()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !a.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			a.ctl.Advance(a.clock.Due())
			a.draw()
		}
	}
}

func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		x, y := ev.Position()
		a.handleMouse(x, y, ev.Buttons())
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

// handleKey applies a key press and reports whether the app keeps running.
func (a *App) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEscape:
		return a.ctl.Key("escape")
	case tcell.KeyRune:
		return a.ctl.Key(input.KeyName(r))
	}
	return true
}

// handleMouse maps a terminal cell to both grid rows of its half-block pair
// and paints while the primary button is held.
func (a *App) handleMouse(x, y int, buttons tcell.ButtonMask) {
	a.ctl.PointerRows(x, y*2, 2, buttons&tcell.Button1 != 0)
}

func (a *App) draw() {
	a.screen.Clear()
	sw, sh := a.screen.Size()
	w := a.ctl.World()
	size := w.Size()
	a.colors = w.Colors(a.colors)

	for ty := 0; ty < sh-1 && ty*2 < size.H; ty++ {
		for x := 0; x < sw && x < size.W; x++ {
			top := a.colors[ty*2*size.W+x]
			bottom := color.RGBA{A: 255}
			if ty*2+1 < size.H {
				bottom = a.colors[(ty*2+1)*size.W+x]
			}
			style := tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom))
			a.screen.SetContent(x, ty, halfBlock, nil, style)
		}
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	x := 0
	for _, r := range a.ctl.StatusLine() {
		if x >= sw {
			break
		}
		a.screen.SetContent(x, sh-1, r, nil, style)
		x++
	}
	a.screen.Show()
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
