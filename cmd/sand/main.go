//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"mad-sand/internal/app"
	"mad-sand/internal/config"
)

func main() {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	world, err := cfg.World()
	if err != nil {
		log.Fatalf("build world: %v", err)
	}
	bindings, err := cfg.Bindings()
	if err != nil {
		log.Fatal(err)
	}

	ctl := app.NewController(world, app.Options{
		Scene:    cfg.Scene,
		SavePath: cfg.SaveFile,
		Bindings: bindings,
		Brush:    cfg.Brush(),
	})
	game := app.New(ctl, cfg.CellSize)
	size := world.Size()

	ebiten.SetWindowTitle("mad-sand")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.CellSize+app.HUDWidth, size.H*cfg.CellSize)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
