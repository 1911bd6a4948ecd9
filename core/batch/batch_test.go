package batch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/fleetsim/core/engine"
	"github.com/kilianp07/fleetsim/core/metrics"
	"github.com/kilianp07/fleetsim/core/world"
)

func TestCoordinatorSeedsAndOrder(t *testing.T) {
	var inflight, peak int32
	run := func(ctx context.Context, cfg world.Config) (metrics.RunSummary, error) {
		n := atomic.AddInt32(&inflight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		atomic.AddInt32(&inflight, -1)
		return metrics.RunSummary{Seed: cfg.Seed, Ticks: int(cfg.Seed)}, nil
	}
	c := NewCoordinator(Config{Runs: 6, Parallelism: 2}, run)
	sums, err := c.Start(context.Background(), world.Config{Seed: 100})
	require.NoError(t, err)
	require.Len(t, sums, 6)
	for i, s := range sums {
		assert.Equal(t, int64(100+i), s.Seed)
	}
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestCoordinatorStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	run := func(ctx context.Context, cfg world.Config) (metrics.RunSummary, error) {
		if cfg.Seed == 2 {
			return metrics.RunSummary{}, boom
		}
		return metrics.RunSummary{Seed: cfg.Seed}, nil
	}
	_, err := NewCoordinator(Config{Runs: 4, Parallelism: 1}, run).Start(context.Background(), world.Config{})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "seed 2")
}

func TestCoordinatorValidates(t *testing.T) {
	c := NewCoordinator(Config{Runs: -1}, nil)
	_, err := c.Start(context.Background(), world.Config{})
	assert.Error(t, err)
}

func TestCoordinatorWithEngine(t *testing.T) {
	base := world.Config{Small: 1, Medium: 1, Large: 1, OrdersPerVehicle: 3, Depots: 4, Width: 100, Height: 100, Seed: 1}
	base.SetDefaults()
	run := func(ctx context.Context, cfg world.Config) (metrics.RunSummary, error) {
		w, err := world.Generate(cfg)
		if err != nil {
			return metrics.RunSummary{}, err
		}
		return engine.New(w).Run(ctx)
	}
	sums, err := NewCoordinator(Config{Runs: 3, Parallelism: 3}, run).Start(context.Background(), base)
	require.NoError(t, err)
	for i, s := range sums {
		assert.Equal(t, int64(1+i), s.Seed)
		assert.Greater(t, s.Ticks, 0)
	}
	rep := Aggregate(sums, 6)
	assert.Equal(t, 3, rep.Runs)
	assert.Equal(t, "sequential", rep.Router)
	assert.LessOrEqual(t, rep.Ticks.Min, rep.Ticks.Mean)
	assert.GreaterOrEqual(t, rep.Ticks.Max, rep.Ticks.Mean)
	assert.Greater(t, rep.Utilization, 0.0)
	assert.LessOrEqual(t, rep.Utilization, 1.0)
}

func TestAggregate(t *testing.T) {
	sums := []metrics.RunSummary{
		{Router: "nearest", Ticks: 10, CargoTicks: 10, RouterTime: time.Millisecond},
		{Router: "nearest", Ticks: 20, CargoTicks: 30, RouterTime: 3 * time.Millisecond},
	}
	rep := Aggregate(sums, 2)
	assert.Equal(t, 15.0, rep.Ticks.Mean)
	assert.InDelta(t, 7.0710678, rep.Ticks.StdDev, 1e-6)
	assert.Equal(t, 10.0, rep.Ticks.Min)
	assert.Equal(t, 20.0, rep.Ticks.Max)
	assert.Equal(t, 2.0, rep.RouterMillis.Mean)
	assert.InDelta(t, 0.625, rep.Utilization, 1e-9)

	single := Aggregate(sums[:1], 2)
	assert.Equal(t, 0.0, single.Ticks.StdDev)
	assert.Equal(t, Report{}, Aggregate(nil, 1))
}
