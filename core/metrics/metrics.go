package metrics

import "time"

// RunSummary is the end-of-run record of one simulation.
type RunSummary struct {
	RunID                string                   `json:"run_id" yaml:"run_id"`
	Seed                 int64                    `json:"seed" yaml:"seed"`
	Router               string                   `json:"router" yaml:"router"`
	Vehicles             int                      `json:"vehicles" yaml:"vehicles"`
	Depots               int                      `json:"depots" yaml:"depots"`
	Orders               int                      `json:"orders" yaml:"orders"`
	Ticks                int                      `json:"ticks" yaml:"ticks"`
	RouterTime           time.Duration            `json:"router_time" yaml:"router_time"`
	PerVehicleRouterTime map[string]time.Duration `json:"per_vehicle_router_time" yaml:"per_vehicle_router_time"`
	CargoTicks           int                      `json:"cargo_ticks" yaml:"cargo_ticks"`
	ActiveTime           time.Duration            `json:"active_time" yaml:"active_time"`
	IdleTime             time.Duration            `json:"idle_time" yaml:"idle_time"`
	Started              time.Time                `json:"started" yaml:"started"`
}

// WallTime is the total elapsed wall time of the run.
func (s RunSummary) WallTime() time.Duration { return s.ActiveTime + s.IdleTime }

// CargoUtilization is the average fraction of occupied cargo slots per tick.
func (s RunSummary) CargoUtilization(capacity int) float64 {
	if s.Ticks == 0 || capacity == 0 {
		return 0
	}
	return float64(s.CargoTicks) / float64(s.Ticks*capacity)
}

// TickSample is the fleet-wide state after one tick.
type TickSample struct {
	RunID     string
	Tick      int
	Loaded    int
	Docked    int
	Completed int
	Time      time.Time
}

// Sink records run summaries.
type Sink interface {
	RecordRun(s RunSummary) error
}

// TickRecorder is implemented by sinks that also record per-tick samples.
type TickRecorder interface {
	RecordTick(s TickSample) error
}

// Flusher is implemented by sinks that buffer until explicitly flushed.
type Flusher interface {
	Flush() error
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) RecordRun(RunSummary) error  { return nil }
func (NopSink) RecordTick(TickSample) error { return nil }
func (NopSink) Flush() error                { return nil }
