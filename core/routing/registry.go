package routing

import (
	"fmt"

	"github.com/kilianp07/fleetsim/core/factory"
	"github.com/kilianp07/fleetsim/core/fleet"
)

// Default is the strategy used when no type is configured.
const Default = "sequential"

var registry = factory.NewRegistry[fleet.RouterFactory]()

func init() {
	mustRegister("sequential", NewSequential)
	mustRegister("nearest", NewNearest)
}

// Register adds a routing strategy under name.
func Register(name string, f factory.Factory[fleet.RouterFactory]) error {
	return registry.Register(name, f)
}

// New resolves cfg to a RouterFactory. An empty type selects Default.
func New(cfg factory.ModuleConfig) (fleet.RouterFactory, error) {
	if cfg.Type == "" {
		cfg.Type = Default
	}
	f, err := registry.Create(cfg)
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}
	return f, nil
}

// Names lists the registered strategies.
func Names() []string { return registry.Names() }

func mustRegister(name string, rf fleet.RouterFactory) {
	err := Register(name, func(map[string]any) (fleet.RouterFactory, error) { return rf, nil })
	if err != nil {
		panic(err)
	}
}
