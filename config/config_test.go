package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

//nolint:gocyclo
func TestLoad(t *testing.T) {
	path := writeFile(t, "config.yaml", `world:
  small: 1
  medium: 0
  large: 3
  orders_per_vehicle: 6
  depots: 4
  width: 200
  height: 100
  seed: 42
  router:
    type: nearest
batch:
  runs: 5
  parallelism: 2
engine:
  tick_delay: 20ms
  max_ticks: 500
report:
  type: sqlite
  conf:
    path: out/report.db
metrics:
  sinks:
    - type: "nop"
logging:
  level: debug
  format: console
render:
  path: out/run.html
mqtt:
  broker: "tcp://localhost:1883"
  client_id: "cli"
  username: "user"
  password: "pass"
  topic_prefix: sim
  use_tls: false
sentry:
  dsn: ""
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"world.large", cfg.World.Large, 3},
		{"world.medium", cfg.World.Medium, 0},
		{"world.seed", cfg.World.Seed, int64(42)},
		{"world.router", cfg.World.Router.Type, "nearest"},
		{"world.width", cfg.World.Width, 200.0},
		{"batch.runs", cfg.Batch.Runs, 5},
		{"engine.tick_delay", cfg.Engine.TickDelay, 20 * time.Millisecond},
		{"engine.max_ticks", cfg.Engine.MaxTicks, 500},
		{"report.type", cfg.Report.Type, "sqlite"},
		{"report.path", cfg.Report.Conf["path"], "out/report.db"},
		{"metrics_sink", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "nop", true},
		{"logging.level", cfg.Logging.Level, "debug"},
		{"render.path", cfg.Render.Path, "out/run.html"},
		{"broker", cfg.MQTT.Broker, "tcp://localhost:1883"},
		{"client_id", cfg.MQTT.ClientID, "cli"},
		{"topic_prefix", cfg.MQTT.TopicPrefix, "sim"},
		{"mqtt.max_retries default", cfg.MQTT.MaxRetries, 3},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.World.Vehicles())
	assert.Equal(t, "sequential", cfg.World.Router.Type)
	assert.Equal(t, 10, cfg.Batch.Runs)
	assert.Equal(t, "nop", cfg.Report.Type)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.False(t, cfg.MQTT.Enabled())
	assert.Zero(t, cfg.MQTT.MaxRetries)
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{"world": {"seed": 9, "depots": 3}, "engine": {"max_ticks": 10}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(9), cfg.World.Seed)
	assert.Equal(t, 3, cfg.World.Depots)
	assert.Equal(t, 10, cfg.Engine.MaxTicks)
}

func TestEnvOverrides(t *testing.T) {
	path := writeFile(t, "config.yaml", "world:\n  seed: 1\n")
	t.Setenv("FLEETSIM_WORLD__SEED", "77")
	t.Setenv("FLEETSIM_WORLD__ROUTER__TYPE", "nearest")
	t.Setenv("FLEETSIM_ENGINE__TICK_DELAY", "5ms")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(77), cfg.World.Seed)
	assert.Equal(t, "nearest", cfg.World.Router.Type)
	assert.Equal(t, 5*time.Millisecond, cfg.Engine.TickDelay)
}

func TestSchemaRejectsUnknownKeys(t *testing.T) {
	path := writeFile(t, "config.yaml", "world:\n  sead: 1\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestSchemaRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"one depot":    "world:\n  depots: 1\n",
		"bad level":    "logging:\n  level: loud\n",
		"bad qos":      "mqtt:\n  broker: tcp://b:1883\n  qos: 3\n",
		"bad delay":    "engine:\n  tick_delay: soon\n",
		"string count": "world:\n  small: two\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, "config.yaml", doc))
			require.Error(t, err)
		})
	}
}

func TestValidateDocument(t *testing.T) {
	valid := map[string]any{
		"world": map[string]any{"seed": int64(7), "depots": 3, "width": 12.5, "height": 40},
	}
	require.NoError(t, validateDocument(valid))

	err := validateDocument(map[string]any{"world": map[string]any{"width": -1.5}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestLoadSchemaInvalidFile(t *testing.T) {
	path := writeFile(t, "fleet.yaml", `world:
  seed: 3
  depots: 4
  orders_per_vehicle: 0
engine:
  max_ticks: 50
`)
	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected schema error for %s", path)
	}
	assert.Contains(t, err.Error(), path)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestUnsupportedFormat(t *testing.T) {
	_, err := Load(writeFile(t, "config.toml", "x = 1"))
	require.Error(t, err)
}

func TestValidateSections(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	bad := *cfg
	bad.Engine.MaxTicks = -1
	assert.ErrorContains(t, bad.Validate(), "engine")

	bad = *cfg
	bad.Logging.Format = "xml"
	assert.ErrorContains(t, bad.Validate(), "logging")

	bad = *cfg
	bad.World.Depots = 1
	assert.ErrorContains(t, bad.Validate(), "world")
}

func TestExampleConfigLoads(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "config.example.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "nearest", cfg.World.Router.Type)
	assert.Equal(t, "rotating", cfg.Report.Type)
	assert.False(t, cfg.MQTT.Enabled())
}
