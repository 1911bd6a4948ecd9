package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kilianp07/fleetsim/app/plugins"
	"github.com/kilianp07/fleetsim/config"
	"github.com/kilianp07/fleetsim/core/batch"
	"github.com/kilianp07/fleetsim/core/engine"
	coremetrics "github.com/kilianp07/fleetsim/core/metrics"
	coremon "github.com/kilianp07/fleetsim/core/monitoring"
	"github.com/kilianp07/fleetsim/core/report"
	"github.com/kilianp07/fleetsim/core/world"
	"github.com/kilianp07/fleetsim/infra/logger"
	"github.com/kilianp07/fleetsim/infra/metrics"
	"github.com/kilianp07/fleetsim/infra/monitoring"
	"github.com/kilianp07/fleetsim/infra/mqtt"
	"github.com/kilianp07/fleetsim/infra/render"
	"github.com/kilianp07/fleetsim/internal/eventbus"
)

// Service turns a configuration into simulation runs. It owns the metrics
// sinks and the MQTT connection shared by every run.
type Service struct {
	cfg  *config.Config
	log  logger.Logger
	sink coremetrics.Sink
	mqtt *mqtt.PahoClient
}

// BatchResult holds the summaries of a batch and their aggregate.
type BatchResult struct {
	Report batch.Report
	Runs   []coremetrics.RunSummary
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	if err := logger.Configure(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return nil, err
	}
	logg := logger.New("service")

	mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	coremon.Init(mon)

	sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	svc := &Service{cfg: cfg, log: logg, sink: sink}
	if cfg.MQTT.Enabled() {
		client, err := mqtt.NewPahoClient(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt client: %w", err)
		}
		svc.mqtt = client
		svc.sink = coremetrics.NewMultiSink(sink, client)
	}
	logg.Debugw("service ready", map[string]any{
		"report":  cfg.Report.Type,
		"sinks":   len(cfg.Metrics.Sinks),
		"mqtt":    cfg.MQTT.Enabled(),
		"render":  cfg.Render.Path,
		"routers": plugins.Available().Routers,
	})
	return svc, nil
}

// Run executes one run of the configured world with every collaborator
// attached: report store, tick metrics, HTML renderer and MQTT frames.
func (s *Service) Run(ctx context.Context) (coremetrics.RunSummary, error) {
	w, err := world.Generate(s.cfg.World)
	if err != nil {
		return coremetrics.RunSummary{}, err
	}
	store, err := report.NewStore(s.cfg.Report)
	if err != nil {
		return coremetrics.RunSummary{}, fmt.Errorf("report store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			s.log.Errorf("report store close: %v", err)
		}
	}()

	// Collaborators stop when the bus closes; a separate context keeps them
	// draining if ctx is canceled mid-run.
	collabCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bus := eventbus.NewTyped[report.Frame]()
	var done []<-chan struct{}
	done = append(done, metrics.StartFrameCollector(collabCtx, bus, s.sink, s.log))
	if s.cfg.Render.Path != "" {
		r := render.New(s.cfg.Render, logger.New("render"))
		done = append(done, r.Start(collabCtx, bus))
	}
	if s.mqtt != nil {
		done = append(done, s.mqtt.Start(collabCtx, bus))
	}

	opts := []engine.Option{
		engine.WithLogger(logger.New("engine")),
		engine.WithReportStore(store),
		engine.WithMetrics(s.sink),
		engine.WithTickDelay(s.cfg.Engine.TickDelay),
		engine.WithMaxTicks(s.cfg.Engine.MaxTicks),
	}
	if bus.Subscribers() > 0 {
		opts = append(opts, engine.WithFrames(bus))
	}
	sum, runErr := engine.New(w, opts...).Run(ctx)
	bus.Close()
	for _, ch := range done {
		<-ch
	}
	if err := s.flush(); err != nil {
		s.log.Warnf("metrics flush: %v", err)
	}
	return sum, runErr
}

// Batch executes the configured number of headless runs over consecutive
// seeds. Batch runs skip the report store and frame collaborators; only
// summaries reach the metrics sinks.
func (s *Service) Batch(ctx context.Context) (BatchResult, error) {
	coord := batch.NewCoordinator(s.cfg.Batch, s.runHeadless)
	start := time.Now()
	sums, err := coord.Start(ctx, s.cfg.World)
	if err != nil {
		return BatchResult{}, err
	}
	if err := s.flush(); err != nil {
		s.log.Warnf("metrics flush: %v", err)
	}
	res := BatchResult{Report: batch.Aggregate(sums, s.cfg.World.Capacity()), Runs: sums}
	s.log.Infof("batch of %d runs finished in %s", len(sums), time.Since(start).Round(time.Millisecond))
	return res, nil
}

func (s *Service) runHeadless(ctx context.Context, wcfg world.Config) (coremetrics.RunSummary, error) {
	w, err := world.Generate(wcfg)
	if err != nil {
		return coremetrics.RunSummary{}, err
	}
	return engine.New(w,
		engine.WithLogger(logger.New("engine")),
		engine.WithMetrics(s.sink),
		engine.WithMaxTicks(s.cfg.Engine.MaxTicks),
	).Run(ctx)
}

func (s *Service) flush() error {
	if f, ok := s.sink.(coremetrics.Flusher); ok {
		return f.Flush()
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	var errs []error
	if err := s.flush(); err != nil {
		errs = append(errs, err)
	}
	if s.mqtt != nil {
		s.mqtt.Disconnect()
	}
	coremon.Flush(2 * time.Second)
	return errors.Join(errs...)
}
