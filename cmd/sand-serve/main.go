package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mad-sand/internal/config"
	"mad-sand/internal/observer"
)

func main() {
	fs := flag.CommandLine
	addr := fs.String("addr", "127.0.0.1:8090", "listen address")
	allowRemote := fs.Bool("allow-remote", false, "accept non-loopback clients")
	cfg, err := config.Parse(fs, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	logger := log.New(os.Stderr, "sand-serve ", log.LstdFlags)
	world, err := cfg.World()
	if err != nil {
		logger.Fatalf("build world: %v", err)
	}

	session := observer.NewSession(world, cfg.TPS, logger)
	srv := observer.NewServer(session, logger)
	srv.AllowRemote = *allowRemote

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		if err := session.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Printf("session: %v", err)
		}
	}()

	httpSrv := &http.Server{Addr: *addr, Handler: srv.Handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	size := world.Size()
	logger.Printf("serving %dx%d at %d tps on http://%s (/bootstrap, /ws)", size.W, size.H, cfg.TPS, *addr)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal(err)
	}
}
