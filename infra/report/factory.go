package report

import (
	"fmt"

	"github.com/kilianp07/fleetsim/core/factory"
	corereport "github.com/kilianp07/fleetsim/core/report"
)

// FileConfig configures the file and database backed stores.
type FileConfig struct {
	Path       string `json:"path"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
}

func decodeFileConfig(conf map[string]any, defaultPath string) (FileConfig, error) {
	var c FileConfig
	if err := factory.Decode(conf, &c); err != nil {
		return c, err
	}
	if c.Path == "" {
		c.Path = defaultPath
	}
	if c.MaxSizeMB <= 0 {
		c.MaxSizeMB = 10
	}
	return c, nil
}

func init() {
	register("jsonl", func(conf map[string]any) (corereport.Store, error) {
		c, err := decodeFileConfig(conf, "fleetsim-ticks.jsonl")
		if err != nil {
			return nil, err
		}
		return NewJSONLStore(c.Path)
	})
	register("rotating", func(conf map[string]any) (corereport.Store, error) {
		c, err := decodeFileConfig(conf, "fleetsim-ticks.jsonl")
		if err != nil {
			return nil, err
		}
		return NewRotatingJSONLStore(c.Path, c.MaxSizeMB, c.MaxBackups, c.MaxAgeDays)
	})
	register("sqlite", func(conf map[string]any) (corereport.Store, error) {
		c, err := decodeFileConfig(conf, "fleetsim.db")
		if err != nil {
			return nil, err
		}
		return NewSQLiteStore(c.Path)
	})
	register("zstd", func(conf map[string]any) (corereport.Store, error) {
		c, err := decodeFileConfig(conf, "fleetsim-ticks.jsonl.zst")
		if err != nil {
			return nil, err
		}
		return NewZstdStore(c.Path)
	})
}

func register(name string, f factory.Factory[corereport.Store]) {
	if err := corereport.RegisterStore(name, f); err != nil {
		panic(fmt.Sprintf("report store %s: %v", name, err))
	}
}
