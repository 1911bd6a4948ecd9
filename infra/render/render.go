// Package render draws simulation frames as a standalone HTML page using
// go-echarts. It only reads frames and never touches engine state.
package render

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kilianp07/fleetsim/core/logger"
	"github.com/kilianp07/fleetsim/core/monitoring"
	"github.com/kilianp07/fleetsim/core/report"
	"github.com/kilianp07/fleetsim/internal/eventbus"
)

// Config controls the HTML renderer.
type Config struct {
	Path   string `json:"path"`
	Trails int    `json:"trails"`
	Every  int    `json:"every"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.Path == "" {
		c.Path = "fleetsim.html"
	}
	if c.Trails <= 0 {
		c.Trails = 10
	}
	if c.Every <= 0 {
		c.Every = 1
	}
}

type sample struct{ x, y float64 }

// Renderer accumulates frames and renders them as charts.
type Renderer struct {
	cfg    Config
	logger logger.Logger

	mu     sync.Mutex
	runID  string
	last   report.Frame
	seen   bool
	trails map[string][]sample
	ticks  []string
	cargo  []opts.LineData
	docked []opts.LineData
}

// New returns a Renderer for cfg.
func New(cfg Config, log logger.Logger) *Renderer {
	cfg.SetDefaults()
	return &Renderer{cfg: cfg, logger: log, trails: make(map[string][]sample)}
}

// Consume records f. Frames not on the sampling interval only update the
// final snapshot.
func (r *Renderer) Consume(f report.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runID = f.RunID
	r.last, r.seen = f, true
	if f.Tick%r.cfg.Every != 0 {
		return
	}
	r.ticks = append(r.ticks, fmt.Sprint(f.Tick))
	r.cargo = append(r.cargo, opts.LineData{Value: f.Loaded()})
	r.docked = append(r.docked, opts.LineData{Value: f.Docked()})
	for _, v := range f.Vehicles {
		r.trails[v.ID] = append(r.trails[v.ID], sample{v.X, v.Y})
	}
}

// Render writes the page to w.
func (r *Renderer) Render(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.seen {
		return fmt.Errorf("render: no frames received")
	}
	page := components.NewPage().SetPageTitle("fleetsim " + r.runID)
	page.AddCharts(r.mapChart(), r.trailChart(), r.loadChart())
	return page.Render(w)
}

// WriteFile renders the page to path, creating parent directories.
func (r *Renderer) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Render(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Start consumes frames from bus and writes the configured file when the bus
// closes. The returned channel is closed once the page is written or ctx is
// canceled.
func (r *Renderer) Start(ctx context.Context, bus *eventbus.TypedBus[report.Frame]) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil {
		close(done)
		return done
	}
	sub := bus.SubscribeSize(64)
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case f, ok := <-sub:
				if !ok {
					r.flush()
					return
				}
				r.Consume(f)
			}
		}
	}()
	return done
}

func (r *Renderer) flush() {
	if err := r.WriteFile(r.cfg.Path); err != nil {
		r.logger.Errorf("render %s: %v", r.cfg.Path, err)
		monitoring.CaptureException(err, map[string]string{"run_id": r.runID, "module": "render"})
		return
	}
	r.logger.Infof("rendered run %s to %s", r.runID, r.cfg.Path)
}

func (r *Renderer) mapChart() *charts.Scatter {
	f := r.last
	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Depots and vehicles", Subtitle: fmt.Sprintf("tick %d", f.Tick)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "x", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "y", Type: "value"}),
	)
	depots := make([]opts.ScatterData, 0, len(f.Depots))
	for _, d := range f.Depots {
		depots = append(depots, opts.ScatterData{
			Name:       fmt.Sprintf("%s docks=%d entering=%d leaving=%d", d.ID, d.Docks, d.Entering, d.Leaving),
			Value:      []float64{d.X, d.Y},
			SymbolSize: 12 + 4*d.Docks,
		})
	}
	vehicles := make([]opts.ScatterData, 0, len(f.Vehicles))
	for _, v := range f.Vehicles {
		vehicles = append(vehicles, opts.ScatterData{
			Name:       fmt.Sprintf("%s %s %d/%d %s", v.ID, v.Class, v.Loaded, v.Capacity, v.Phase),
			Value:      []float64{v.X, v.Y},
			SymbolSize: 6,
		})
	}
	sc.AddSeries("Depots", depots).AddSeries("Vehicles", vehicles)
	return sc
}

func (r *Renderer) trailChart() *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Vehicle trails"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "x", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "y", Type: "value"}),
	)
	ids := make([]string, 0, len(r.trails))
	for id := range r.trails {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if len(ids) > r.cfg.Trails {
		ids = ids[:r.cfg.Trails]
	}
	for _, id := range ids {
		pts := r.trails[id]
		data := make([]opts.LineData, 0, len(pts))
		for _, p := range pts {
			data = append(data, opts.LineData{Value: []float64{p.x, p.y}})
		}
		line.AddSeries(id, data)
	}
	return line
}

func (r *Renderer) loadChart() *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Cargo occupancy"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "tick"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "slots"}),
	)
	line.SetXAxis(r.ticks).
		AddSeries("Loaded", r.cargo).
		AddSeries("At depots", r.docked)
	return line
}
