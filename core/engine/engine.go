// Package engine drives a generated world tick by tick until every vehicle
// has completed its manifest.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/fleetsim/core/logger"
	"github.com/kilianp07/fleetsim/core/metrics"
	"github.com/kilianp07/fleetsim/core/monitoring"
	"github.com/kilianp07/fleetsim/core/report"
	"github.com/kilianp07/fleetsim/core/world"
)

// ErrStalled is returned when a run exceeds its tick limit.
var ErrStalled = errors.New("simulation did not complete within the tick limit")

// Engine is the tick driver of one run. It is not safe for concurrent use;
// independent runs use independent engines.
type Engine struct {
	world *world.World

	log       logger.Logger
	store     report.Store
	frames    FramePublisher
	sink      metrics.Sink
	runID     string
	tickDelay time.Duration
	maxTicks  int
	now       func() time.Time

	tick       int
	cargoTicks int
	active     time.Duration
	idle       time.Duration
	started    time.Time
}

// New prepares a run over w.
func New(w *world.World, opts ...Option) *Engine {
	e := &Engine{
		world: w,
		log:   nopLogger{},
		store: report.NopStore{},
		sink:  metrics.NopSink{},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.runID == "" {
		e.runID = uuid.NewString()
	}
	return e
}

// RunID identifies this run in records, frames and summaries.
func (e *Engine) RunID() string { return e.runID }

// Tick is the number of ticks executed so far.
func (e *Engine) Tick() int { return e.tick }

// Step executes one tick: every depot acts, then every vehicle. It reports
// whether any vehicle is still working.
func (e *Engine) Step(ctx context.Context) (bool, error) {
	start := e.now()
	e.tick++

	for _, d := range e.world.Depots {
		if err := d.Action(); err != nil {
			return false, fmt.Errorf("tick %d: %w", e.tick, err)
		}
	}
	running := false
	loaded := 0
	for _, v := range e.world.Vehicles {
		if err := v.Action(); err != nil {
			return false, fmt.Errorf("tick %d: %w", e.tick, err)
		}
		if !v.IsComplete() {
			running = true
		}
		loaded += v.Loaded()
	}
	e.cargoTicks += loaded

	if err := e.store.Append(ctx, e.record(start)); err != nil {
		return false, fmt.Errorf("tick %d: report: %w", e.tick, err)
	}
	if e.frames != nil {
		if err := e.frames.PublishWait(ctx, e.Frame()); err != nil {
			return false, fmt.Errorf("tick %d: frame: %w", e.tick, err)
		}
	}
	e.active += e.now().Sub(start)
	e.log.Debugw("tick", map[string]any{"run_id": e.runID, "tick": e.tick, "loaded": loaded, "running": running})

	if running && e.maxTicks > 0 && e.tick >= e.maxTicks {
		return false, fmt.Errorf("%w: %d ticks", ErrStalled, e.tick)
	}
	return running, nil
}

// Run steps until every vehicle is complete and records the summary. The
// context is only checked between ticks.
func (e *Engine) Run(ctx context.Context) (metrics.RunSummary, error) {
	e.started = e.now()
	e.log.Infof("run %s started: seed=%d router=%s vehicles=%d depots=%d orders=%d",
		e.runID, e.world.Seed, e.world.Router, len(e.world.Vehicles), len(e.world.Depots), e.world.Orders())
	for {
		if err := ctx.Err(); err != nil {
			return e.Summary(), err
		}
		running, err := e.Step(ctx)
		if err != nil {
			monitoring.CaptureException(err, map[string]string{"run_id": e.runID, "component": "engine"})
			e.log.Errorf("run %s aborted: %v", e.runID, err)
			return e.Summary(), err
		}
		if !running {
			break
		}
		if err := e.pause(ctx); err != nil {
			return e.Summary(), err
		}
	}
	sum := e.Summary()
	if err := e.sink.RecordRun(sum); err != nil {
		e.log.Warnf("record run %s: %v", e.runID, err)
	}
	e.log.Infof("run %s finished after %d ticks (cargo ticks %d, router time %s)",
		e.runID, sum.Ticks, sum.CargoTicks, sum.RouterTime)
	return sum, nil
}

// Summary reports the statistics gathered so far.
func (e *Engine) Summary() metrics.RunSummary {
	per := make(map[string]time.Duration, len(e.world.Vehicles))
	var total time.Duration
	for _, v := range e.world.Vehicles {
		rt := v.RouterTime()
		per[v.ID()] = rt
		total += rt
	}
	return metrics.RunSummary{
		RunID:                e.runID,
		Seed:                 e.world.Seed,
		Router:               e.world.Router,
		Vehicles:             len(e.world.Vehicles),
		Depots:               len(e.world.Depots),
		Orders:               e.world.Orders(),
		Ticks:                e.tick,
		RouterTime:           total,
		PerVehicleRouterTime: per,
		CargoTicks:           e.cargoTicks,
		ActiveTime:           e.active,
		IdleTime:             e.idle,
		Started:              e.started,
	}
}

func (e *Engine) pause(ctx context.Context) error {
	if e.tickDelay <= 0 {
		return nil
	}
	start := e.now()
	timer := time.NewTimer(e.tickDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		e.idle += e.now().Sub(start)
		return ctx.Err()
	case <-timer.C:
	}
	e.idle += e.now().Sub(start)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
