package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/fleetsim/core/batch"
	"github.com/kilianp07/fleetsim/core/factory"
	"github.com/kilianp07/fleetsim/core/metrics"
	"github.com/kilianp07/fleetsim/core/world"
	"github.com/kilianp07/fleetsim/infra/mqtt"
	"github.com/kilianp07/fleetsim/infra/render"
)

// EnvPrefix marks environment variables that override file values.
// FLEETSIM_WORLD__SEED=7 sets world.seed.
const EnvPrefix = "FLEETSIM_"

type Config struct {
	World   world.Config         `json:"world"`
	Batch   batch.Config         `json:"batch"`
	Engine  EngineConfig         `json:"engine"`
	Report  factory.ModuleConfig `json:"report"`
	Metrics metrics.Config       `json:"metrics"`
	Logging LoggingConfig        `json:"logging"`
	Render  render.Config        `json:"render"`
	MQTT    mqtt.Config          `json:"mqtt"`
	Sentry  SentryConfig         `json:"sentry"`
}

// Load reads path, validates it against the embedded schema, applies
// environment overrides and section defaults. An empty path loads defaults
// and environment overrides only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
		if err := validateDocument(k.Raw()); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	// Optional environment overrides
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults applies defaults to every section.
func (c *Config) SetDefaults() {
	c.World.SetDefaults()
	c.Batch.SetDefaults()
	c.Engine.SetDefaults()
	c.Logging.SetDefaults()
	if c.Report.Type == "" {
		c.Report.Type = "nop"
	}
	if c.MQTT.Enabled() {
		c.MQTT.SetDefaults()
	}
}

// Validate checks every section and prefixes errors with the section name.
func (c Config) Validate() error {
	if err := c.World.Validate(); err != nil {
		return fmt.Errorf("world: %w", err)
	}
	if err := c.Batch.Validate(); err != nil {
		return fmt.Errorf("batch: %w", err)
	}
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if c.MQTT.Enabled() {
		if err := c.MQTT.Validate(); err != nil {
			return err
		}
	}
	return nil
}
