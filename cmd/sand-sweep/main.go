package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"mad-sand/internal/scene"
	"mad-sand/internal/sweep"
)

func main() {
	width := flag.Int("width", 160, "grid width")
	height := flag.Int("height", 120, "grid height")
	steps := flag.Int("steps", 600, "ticks to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	scenes := flag.String("scenes", "hourglass,basin,terrain", "comma separated scene names")
	flows := flag.String("flows", "1,2,4,8", "comma separated flow distances")
	seeds := flag.Int("seeds", 3, "seeds per combination, starting at 1")
	dump := flag.String("dump", "", "directory to write the final state of every scenario")
	flag.Parse()

	flowList, err := parseInts(*flows)
	if err != nil {
		log.Fatalf("flows: %v", err)
	}
	seedList := make([]int64, 0, *seeds)
	for i := 1; i <= *seeds; i++ {
		seedList = append(seedList, int64(i))
	}
	names := strings.Split(*scenes, ",")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
		if _, err := scene.Lookup(names[i]); err != nil {
			log.Fatal(err)
		}
	}

	jobs := sweep.Grid(names, flowList, seedList)
	fmt.Printf("Sweeping %d scenarios (%d workers, %d steps, %dx%d)\n", len(jobs), *workers, *steps, *width, *height)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results := sweep.Run(ctx, jobs, sweep.Options{
		Width:   *width,
		Height:  *height,
		Steps:   *steps,
		Workers: *workers,
		Keep:    *dump != "",
	})
	elapsed := time.Since(start)

	drifted := 0
	for i, res := range results {
		settle := "moving"
		if res.SettleTick >= 0 {
			settle = strconv.Itoa(res.SettleTick)
		}
		status := ""
		if res.Err != nil {
			status = " err=" + res.Err.Error()
		}
		if res.MassDrift != 0 {
			drifted++
		}
		fmt.Printf("%3d) %-36s settle=%-7s drift=%d tick=%s%s\n",
			i+1, res.Job, settle, res.MassDrift, res.PerTick().Round(time.Microsecond), status)

		if *dump != "" && res.World != nil {
			path := filepath.Join(*dump, fmt.Sprintf("%s-flow%d-seed%d.scene", res.Job.Scene, res.Job.Flow, res.Job.Seed))
			if err := scene.SaveFile(path, res.World); err != nil {
				log.Printf("dump %s: %v", path, err)
			}
		}
	}

	fmt.Printf("\n%d scenarios in %s, %d with mass drift\n", len(results), elapsed.Round(time.Millisecond), drifted)
	if drifted > 0 {
		os.Exit(1)
	}
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
