package metrics

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/fleetsim/core/metrics"
)

// PromSink records run summaries in Prometheus collectors. A simulation is a
// batch job, so instead of serving /metrics the registry is written to a
// node_exporter textfile on Flush.
type PromSink struct {
	gatherer prometheus.Gatherer
	textfile string

	runs       *prometheus.CounterVec
	ticks      *prometheus.HistogramVec
	cargoTicks *prometheus.GaugeVec
	routerTime *prometheus.CounterVec
	wallTime   *prometheus.GaugeVec
	loaded     prometheus.Gauge

	mu sync.Mutex
}

// NewPromSink registers the collectors on a fresh registry.
func NewPromSink(textfile string) (*PromSink, error) {
	reg := prometheus.NewRegistry()
	return NewPromSinkWithRegistry(textfile, reg, reg)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(textfile string, reg prometheus.Registerer, g prometheus.Gatherer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	labels := []string{"router"}
	s := &PromSink{gatherer: g, textfile: textfile}

	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fleetsim_runs_total",
		Help: "Number of completed simulation runs",
	}, labels)
	ticks := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fleetsim_run_ticks",
		Help:    "Ticks needed to deliver every order",
		Buckets: prometheus.ExponentialBuckets(16, 2, 12),
	}, labels)
	cargo := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "fleetsim_run_cargo_ticks",
		Help: "Occupied cargo slots summed over the ticks of the last run",
	}, []string{"router", "seed"})
	router := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fleetsim_router_seconds_total",
		Help: "Wall time spent choosing orders",
	}, labels)
	wall := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "fleetsim_run_wall_seconds",
		Help: "Wall time of the last run split into active and idle",
	}, []string{"router", "kind"})
	loaded := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fleetsim_fleet_loaded_slots",
		Help: "Occupied cargo slots after the last recorded tick",
	})

	var err error
	if s.runs, err = register(reg, runs); err != nil {
		return nil, err
	}
	if s.ticks, err = register(reg, ticks); err != nil {
		return nil, err
	}
	if s.cargoTicks, err = register(reg, cargo); err != nil {
		return nil, err
	}
	if s.routerTime, err = register(reg, router); err != nil {
		return nil, err
	}
	if s.wallTime, err = register(reg, wall); err != nil {
		return nil, err
	}
	if s.loaded, err = register(reg, loaded); err != nil {
		return nil, err
	}
	return s, nil
}

// register returns the already registered collector when c is a duplicate.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordRun updates the run collectors.
func (s *PromSink) RecordRun(r coremetrics.RunSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs.WithLabelValues(r.Router).Inc()
	s.ticks.WithLabelValues(r.Router).Observe(float64(r.Ticks))
	s.cargoTicks.WithLabelValues(r.Router, strconv.FormatInt(r.Seed, 10)).Set(float64(r.CargoTicks))
	s.routerTime.WithLabelValues(r.Router).Add(r.RouterTime.Seconds())
	s.wallTime.WithLabelValues(r.Router, "active").Set(r.ActiveTime.Seconds())
	s.wallTime.WithLabelValues(r.Router, "idle").Set(r.IdleTime.Seconds())
	return nil
}

// RecordTick sets the fleet load gauge.
func (s *PromSink) RecordTick(t coremetrics.TickSample) error {
	s.loaded.Set(float64(t.Loaded))
	return nil
}

// Flush writes the registry to the configured textfile, if any.
func (s *PromSink) Flush() error {
	if s.textfile == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := prometheus.WriteToTextfile(s.textfile, s.gatherer); err != nil {
		return fmt.Errorf("write textfile: %w", err)
	}
	return nil
}
