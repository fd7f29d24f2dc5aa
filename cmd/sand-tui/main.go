package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"mad-sand/internal/app"
	"mad-sand/internal/audio"
	"mad-sand/internal/config"
	"mad-sand/internal/tui"
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

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	player := audio.NewPlayer()
	if err := player.Init(); err != nil {
		// Non-fatal, the sandbox runs without sound
		log.Printf("audio initialization failed: %v", err)
	}
	defer player.Close()

	ctl := app.NewController(world, app.Options{
		Scene:    cfg.Scene,
		SavePath: cfg.SaveFile,
		Bindings: bindings,
		Brush:    cfg.Brush(),
		Clicker:  player,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := tui.New(screen, ctl, cfg.TPS).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		screen.Fini()
		log.Fatal(err)
	}
}
