package batch

import (
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/fleetsim/core/metrics"
)

// Stats describes one measured quantity across runs.
type Stats struct {
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"stddev" yaml:"stddev"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
}

// Report aggregates the summaries of a batch.
type Report struct {
	Runs         int     `json:"runs" yaml:"runs"`
	Router       string  `json:"router" yaml:"router"`
	Ticks        Stats   `json:"ticks" yaml:"ticks"`
	CargoTicks   Stats   `json:"cargo_ticks" yaml:"cargo_ticks"`
	RouterMillis Stats   `json:"router_ms" yaml:"router_ms"`
	ActiveMillis Stats   `json:"active_ms" yaml:"active_ms"`
	Utilization  float64 `json:"utilization" yaml:"utilization"`
}

// Aggregate computes the batch statistics. capacity is the fleet's total
// number of cargo slots and is used for the utilization ratio.
func Aggregate(sums []metrics.RunSummary, capacity int) Report {
	r := Report{Runs: len(sums)}
	if len(sums) == 0 {
		return r
	}
	r.Router = sums[0].Router
	ticks := make([]float64, len(sums))
	cargo := make([]float64, len(sums))
	router := make([]float64, len(sums))
	active := make([]float64, len(sums))
	var util float64
	for i, s := range sums {
		ticks[i] = float64(s.Ticks)
		cargo[i] = float64(s.CargoTicks)
		router[i] = millis(s.RouterTime)
		active[i] = millis(s.ActiveTime)
		util += s.CargoUtilization(capacity)
	}
	r.Ticks = describe(ticks)
	r.CargoTicks = describe(cargo)
	r.RouterMillis = describe(router)
	r.ActiveMillis = describe(active)
	r.Utilization = util / float64(len(sums))
	return r
}

func describe(xs []float64) Stats {
	mean, std := stat.MeanStdDev(xs, nil)
	if len(xs) < 2 {
		std = 0
	}
	return Stats{Mean: mean, StdDev: std, Min: floats.Min(xs), Max: floats.Max(xs)}
}

func millis(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }
