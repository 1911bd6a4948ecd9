// Package batch repeats a simulation over consecutive seeds and aggregates
// the results.
package batch

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/kilianp07/fleetsim/core/metrics"
	"github.com/kilianp07/fleetsim/core/world"
)

// Config controls a batch of runs.
type Config struct {
	Runs        int `json:"runs"`
	Parallelism int `json:"parallelism"`
}

// SetDefaults applies the default of ten runs, one per CPU.
func (c *Config) SetDefaults() {
	if c.Runs == 0 {
		c.Runs = 10
	}
	if c.Parallelism == 0 {
		c.Parallelism = runtime.GOMAXPROCS(0)
	}
}

// Validate checks the batch bounds.
func (c Config) Validate() error {
	if c.Runs < 1 {
		return fmt.Errorf("runs must be positive")
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("parallelism must be positive")
	}
	return nil
}

// RunFunc executes one complete run of the given world configuration.
type RunFunc func(ctx context.Context, cfg world.Config) (metrics.RunSummary, error)

// Coordinator executes independent runs with seeds seed, seed+1, ...
type Coordinator struct {
	cfg Config
	run RunFunc
}

// NewCoordinator returns a Coordinator using run for each seed.
func NewCoordinator(cfg Config, run RunFunc) *Coordinator {
	cfg.SetDefaults()
	return &Coordinator{cfg: cfg, run: run}
}

// Start executes every run and returns the summaries ordered by seed. The
// first failing run cancels the others.
func (c *Coordinator) Start(ctx context.Context, base world.Config) ([]metrics.RunSummary, error) {
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}
	out := make([]metrics.RunSummary, c.cfg.Runs)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Parallelism)
	for i := 0; i < c.cfg.Runs; i++ {
		cfg := base
		cfg.Seed = base.Seed + int64(i)
		g.Go(func() error {
			sum, err := c.run(ctx, cfg)
			if err != nil {
				return fmt.Errorf("seed %d: %w", cfg.Seed, err)
			}
			out[i] = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
