package scenarios

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/fleetsim/core/engine"
	"github.com/kilianp07/fleetsim/core/fleet"
	coremetrics "github.com/kilianp07/fleetsim/core/metrics"
	"github.com/kilianp07/fleetsim/core/report"
	"github.com/kilianp07/fleetsim/core/world"
	"github.com/kilianp07/fleetsim/infra/metrics"
	infrareport "github.com/kilianp07/fleetsim/infra/report"
)

// defaultMaxTicks bounds scenarios that give no explicit limit.
const defaultMaxTicks = 10000

func RunScenario(t *testing.T, sc *Scenario) {
	t.Helper()
	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry("", reg, reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}
	store, err := infrareport.NewZstdStore(filepath.Join(t.TempDir(), "ticks.jsonl.zst"))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	defer store.Close()

	first, w := runOnce(t, sc, sink, store)
	checkDelivered(t, sc, w)
	checkExpected(t, sc, first)

	recs, err := store.Query(context.Background(), report.Query{RunID: first.RunID})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recs) != first.Ticks {
		t.Errorf("scenario %s stored %d tick records for %d ticks", sc.Name, len(recs), first.Ticks)
	}

	for i := 0; i < sc.Repeat; i++ {
		again, _ := runOnce(t, sc, sink, report.NopStore{})
		if again.Ticks != first.Ticks || again.CargoTicks != first.CargoTicks {
			t.Errorf("scenario %s not reproducible: %d/%d ticks, %d/%d cargo ticks",
				sc.Name, again.Ticks, first.Ticks, again.CargoTicks, first.CargoTicks)
		}
	}

	runs := countRuns(t, reg)
	if int(runs) != 1+sc.Repeat {
		t.Errorf("scenario %s recorded %v runs, want %d", sc.Name, runs, 1+sc.Repeat)
	}
}

func runOnce(t *testing.T, sc *Scenario, sink coremetrics.Sink, store report.Store) (coremetrics.RunSummary, *world.World) {
	t.Helper()
	w, err := sc.Build()
	if err != nil {
		t.Fatalf("scenario %s: build: %v", sc.Name, err)
	}
	limit := sc.Expected.MaxTicks
	if limit == 0 {
		limit = defaultMaxTicks
	}
	sum, err := engine.New(w,
		engine.WithMetrics(sink),
		engine.WithReportStore(store),
		engine.WithMaxTicks(limit),
	).Run(context.Background())
	if err != nil {
		t.Fatalf("scenario %s: run: %v", sc.Name, err)
	}
	return sum, w
}

func checkDelivered(t *testing.T, sc *Scenario, w *world.World) {
	t.Helper()
	for _, v := range w.Vehicles {
		if !v.IsComplete() {
			t.Errorf("scenario %s: vehicle %s not complete", sc.Name, v.ID())
		}
		if v.Loaded() != 0 {
			t.Errorf("scenario %s: vehicle %s still carries %d orders", sc.Name, v.ID(), v.Loaded())
		}
		for _, o := range v.Manifest().Values() {
			if o.State() != fleet.DroppedOff {
				t.Errorf("scenario %s: order %s of %s not delivered", sc.Name, o, v.ID())
			}
		}
	}
}

func checkExpected(t *testing.T, sc *Scenario, sum coremetrics.RunSummary) {
	t.Helper()
	exp := sc.Expected
	if exp.Ticks != 0 && sum.Ticks != exp.Ticks {
		t.Errorf("scenario %s expected %d ticks, got %d", sc.Name, exp.Ticks, sum.Ticks)
	}
	if exp.CargoTicks != 0 && sum.CargoTicks != exp.CargoTicks {
		t.Errorf("scenario %s expected %d cargo ticks, got %d", sc.Name, exp.CargoTicks, sum.CargoTicks)
	}
	if exp.Orders != 0 && sum.Orders != exp.Orders {
		t.Errorf("scenario %s expected %d orders, got %d", sc.Name, exp.Orders, sum.Orders)
	}
}

func countRuns(t *testing.T, g prometheus.Gatherer) float64 {
	t.Helper()
	families, err := g.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	total := 0.0
	for _, mf := range families {
		if mf.GetName() != "fleetsim_runs_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}
