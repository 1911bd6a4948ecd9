package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/fleetsim/core/metrics"
	"github.com/kilianp07/fleetsim/infra/logger"
)

// InfluxConfig holds the connection settings of an InfluxSink.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
	// Ticks enables one point per tick in addition to the run summary.
	Ticks bool `json:"ticks"`
}

// InfluxSink writes run summaries to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	ticks    bool
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		ticks:    cfg.Ticks,
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg InfluxConfig) coremetrics.Sink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordRun writes the summary as a single point.
func (s *InfluxSink) RecordRun(r coremetrics.RunSummary) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	ts := r.Started
	if ts.IsZero() {
		ts = time.Now()
	}
	p := write.NewPointWithMeasurement("fleetsim_run").
		AddTag("run_id", r.RunID).
		AddTag("router", r.Router).
		AddTag("seed", strconv.FormatInt(r.Seed, 10)).
		AddField("ticks", r.Ticks).
		AddField("cargo_ticks", r.CargoTicks).
		AddField("vehicles", r.Vehicles).
		AddField("orders", r.Orders).
		AddField("router_ms", round3(msec(r.RouterTime))).
		AddField("active_ms", round3(msec(r.ActiveTime))).
		AddField("idle_ms", round3(msec(r.IdleTime))).
		SetTime(ts)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordTick writes a per-tick point when enabled.
func (s *InfluxSink) RecordTick(t coremetrics.TickSample) error {
	if !s.ticks {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("fleetsim_tick").
		AddTag("run_id", t.RunID).
		AddField("tick", t.Tick).
		AddField("loaded", t.Loaded).
		AddField("docked", t.Docked).
		AddField("completed", t.Completed).
		SetTime(t.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Flush pushes any batched points.
func (s *InfluxSink) Flush() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.writeAPI.Flush(ctx)
}

func msec(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
