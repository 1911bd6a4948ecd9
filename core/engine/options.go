package engine

import (
	"context"
	"time"

	"github.com/kilianp07/fleetsim/core/logger"
	"github.com/kilianp07/fleetsim/core/metrics"
	"github.com/kilianp07/fleetsim/core/report"
)

// FramePublisher receives a snapshot after every tick.
type FramePublisher interface {
	PublishWait(ctx context.Context, f report.Frame) error
}

// Option configures an Engine.
type Option func(*Engine)

func WithLogger(l logger.Logger) Option { return func(e *Engine) { e.log = l } }

func WithReportStore(s report.Store) Option { return func(e *Engine) { e.store = s } }

func WithFrames(p FramePublisher) Option { return func(e *Engine) { e.frames = p } }

func WithMetrics(s metrics.Sink) Option { return func(e *Engine) { e.sink = s } }

func WithRunID(id string) Option { return func(e *Engine) { e.runID = id } }

// WithTickDelay paces the run by sleeping between ticks. The time slept is
// reported as idle time.
func WithTickDelay(d time.Duration) Option { return func(e *Engine) { e.tickDelay = d } }

// WithMaxTicks aborts a run with ErrStalled once n ticks have passed without
// completion. Zero disables the guard.
func WithMaxTicks(n int) Option { return func(e *Engine) { e.maxTicks = n } }

func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }
