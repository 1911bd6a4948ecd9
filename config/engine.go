package config

import (
	"fmt"
	"time"
)

// EngineConfig controls the tick loop.
type EngineConfig struct {
	// TickDelay paces the loop; zero runs as fast as possible.
	TickDelay time.Duration `json:"tick_delay"`
	// MaxTicks aborts a run that has not finished. Zero disables the guard.
	MaxTicks int `json:"max_ticks"`
}

// SetDefaults applies the stall guard default.
func (c *EngineConfig) SetDefaults() {
	if c.MaxTicks == 0 {
		c.MaxTicks = 100000
	}
}

// Validate rejects negative values.
func (c EngineConfig) Validate() error {
	if c.TickDelay < 0 {
		return fmt.Errorf("tick_delay must not be negative")
	}
	if c.MaxTicks < 0 {
		return fmt.Errorf("max_ticks must not be negative")
	}
	return nil
}
