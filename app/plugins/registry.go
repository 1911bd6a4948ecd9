// Package plugins links every built-in module into the binary and lists what
// each extension point offers.
package plugins

import (
	coremetrics "github.com/kilianp07/fleetsim/core/metrics"
	"github.com/kilianp07/fleetsim/core/report"
	"github.com/kilianp07/fleetsim/core/routing"

	// Built-in report stores and metrics sinks register themselves on import.
	_ "github.com/kilianp07/fleetsim/infra/metrics"
	_ "github.com/kilianp07/fleetsim/infra/report"
)

// Catalog names the module types registered per extension point.
type Catalog struct {
	Routers []string `json:"routers" yaml:"routers"`
	Stores  []string `json:"stores" yaml:"stores"`
	Sinks   []string `json:"sinks" yaml:"sinks"`
}

// Available returns the sorted module names of every registry.
func Available() Catalog {
	return Catalog{
		Routers: routing.Names(),
		Stores:  append([]string{"nop"}, report.StoreTypes()...),
		Sinks:   coremetrics.SinkTypes(),
	}
}
