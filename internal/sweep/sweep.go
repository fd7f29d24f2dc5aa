package sweep

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"mad-sand/internal/material"
	"mad-sand/internal/sand"
	"mad-sand/internal/scene"
)

// Job is one scenario: a scene painted with a seed and run with a flow
// distance.
type Job struct {
	Scene string
	Flow  int
	Seed  int64
}

func (j Job) String() string {
	return fmt.Sprintf("scene=%s flow=%d seed=%d", j.Scene, j.Flow, j.Seed)
}

// Result summarises a finished scenario.
type Result struct {
	Job Job
	// SettleTick is the first tick after which nothing moved, or -1 when the
	// world was still moving at the end.
	SettleTick int
	Ticks      int
	// MassDrift sums the change in count of every material the rules
	// conserve. It is zero for a correct engine.
	MassDrift int
	Elapsed   time.Duration
	Err       error

	// World is the final state, kept only when Options.Keep is set.
	World *sand.World
}

// PerTick reports the mean wall time of one tick.
func (r Result) PerTick() time.Duration {
	if r.Ticks == 0 {
		return 0
	}
	return r.Elapsed / time.Duration(r.Ticks)
}

// Options control a sweep.
type Options struct {
	Width, Height int
	Steps         int
	Workers       int
	Keep          bool
}

// Grid expands every combination of scenes, flow distances and seeds.
func Grid(scenes []string, flows []int, seeds []int64) []Job {
	jobs := make([]Job, 0, len(scenes)*len(flows)*len(seeds))
	for _, s := range scenes {
		for _, f := range flows {
			for _, seed := range seeds {
				jobs = append(jobs, Job{Scene: s, Flow: f, Seed: seed})
			}
		}
	}
	return jobs
}

// Run executes jobs on a pool of workers and returns the results sorted by
// settle tick (settled first, then fastest). Cancelling ctx stops workers
// between ticks.
func Run(ctx context.Context, jobs []Job, opts Options) []Result {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	in := make(chan Job)
	out := make(chan Result)
	var wg sync.WaitGroup
	for i := 0; i < opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range in {
				out <- runJob(ctx, job, opts)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	go func() {
		defer close(in)
		for _, job := range jobs {
			select {
			case in <- job:
			case <-ctx.Done():
				return
			}
		}
	}()

	var all []Result
	for res := range out {
		all = append(all, res)
	}
	sort.SliceStable(all, func(i, j int) bool { return less(all[i], all[j]) })
	return all
}

func less(a, b Result) bool {
	if (a.Err == nil) != (b.Err == nil) {
		return a.Err == nil
	}
	if (a.SettleTick >= 0) != (b.SettleTick >= 0) {
		return a.SettleTick >= 0
	}
	if a.SettleTick != b.SettleTick {
		return a.SettleTick < b.SettleTick
	}
	return a.Job.String() < b.Job.String()
}

func runJob(ctx context.Context, job Job, opts Options) Result {
	res := Result{Job: job, SettleTick: -1}
	cfg := sand.DefaultConfig()
	cfg.Width, cfg.Height = opts.Width, opts.Height
	cfg.Seed = job.Seed
	cfg.Params.FlowDistance = job.Flow
	w, err := scene.Build(job.Scene, cfg)
	if err != nil {
		res.Err = err
		return res
	}

	before := w.Grid().Census()
	start := time.Now()
	for res.Ticks < opts.Steps {
		if ctx.Err() != nil {
			res.Err = ctx.Err()
			break
		}
		w.Step()
		res.Ticks++
		if w.Moves() == 0 && res.SettleTick < 0 {
			res.SettleTick = res.Ticks
		} else if w.Moves() > 0 {
			res.SettleTick = -1
		}
	}
	res.Elapsed = time.Since(start)
	res.MassDrift = drift(before, w.Grid().Census())
	if opts.Keep {
		res.World = w
	}
	return res
}

// drift compares the materials the rules never create or destroy. Water is
// skipped when spouts are present, fire always burns out and maze grows and
// dies by neighbour count.
func drift(before, after []int) int {
	total := 0
	for _, m := range material.All() {
		switch {
		case m == material.Empty, m == material.Fire, m == material.Maze:
			continue
		case m == material.Water && before[material.Spout] > 0:
			continue
		}
		d := after[m] - before[m]
		if d < 0 {
			d = -d
		}
		total += d
	}
	return total
}
