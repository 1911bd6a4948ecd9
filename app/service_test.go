package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/fleetsim/config"
	"github.com/kilianp07/fleetsim/core/factory"
	"github.com/kilianp07/fleetsim/core/report"
	infrareport "github.com/kilianp07/fleetsim/infra/report"
)

func smallConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.World.Small, cfg.World.Medium, cfg.World.Large = 1, 1, 1
	cfg.World.OrdersPerVehicle = 3
	cfg.World.Depots = 3
	cfg.World.Width, cfg.World.Height = 100, 100
	cfg.World.Seed = 11
	cfg.Logging.Level = "error"
	return cfg
}

func TestRunWiresCollaborators(t *testing.T) {
	dir := t.TempDir()
	cfg := smallConfig(t)
	cfg.Report = factory.ModuleConfig{Type: "jsonl", Conf: map[string]any{"path": filepath.Join(dir, "ticks.jsonl")}}
	cfg.Render.Path = filepath.Join(dir, "run.html")
	cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "prometheus", Conf: map[string]any{"textfile": filepath.Join(dir, "fleetsim.prom")}}}

	svc, err := New(cfg)
	require.NoError(t, err)
	defer func() { require.NoError(t, svc.Close()) }()

	sum, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 9, sum.Orders)
	assert.Greater(t, sum.Ticks, 0)

	store, err := infrareport.NewJSONLStore(filepath.Join(dir, "ticks.jsonl"))
	require.NoError(t, err)
	defer store.Close()
	recs, err := store.Query(context.Background(), report.Query{RunID: sum.RunID})
	require.NoError(t, err)
	assert.Len(t, recs, sum.Ticks)

	html, err := os.ReadFile(cfg.Render.Path)
	require.NoError(t, err)
	assert.Contains(t, string(html), sum.RunID)

	prom, err := os.ReadFile(filepath.Join(dir, "fleetsim.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(prom), "fleetsim_runs_total")
}

func TestRunCanceled(t *testing.T) {
	svc, err := New(smallConfig(t))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestUnknownStore(t *testing.T) {
	cfg := smallConfig(t)
	cfg.Report.Type = "missing"
	svc, err := New(cfg)
	require.NoError(t, err)
	_, err = svc.Run(context.Background())
	require.Error(t, err)
}

func TestBatch(t *testing.T) {
	cfg := smallConfig(t)
	cfg.Batch.Runs = 4
	cfg.Batch.Parallelism = 2
	svc, err := New(cfg)
	require.NoError(t, err)

	res, err := svc.Batch(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Runs, 4)
	for i, r := range res.Runs {
		assert.Equal(t, cfg.World.Seed+int64(i), r.Seed)
	}
	assert.Equal(t, 4, res.Report.Runs)
	assert.Equal(t, "sequential", res.Report.Router)
	assert.Greater(t, res.Report.Ticks.Mean, 0.0)
	assert.Greater(t, res.Report.Utilization, 0.0)
}
