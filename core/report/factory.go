package report

import "github.com/kilianp07/fleetsim/core/factory"

var storeRegistry = factory.NewRegistry[Store]()

// RegisterStore adds a store factory identified by name.
func RegisterStore(name string, f factory.Factory[Store]) error {
	return storeRegistry.Register(name, f)
}

// NewStore creates the configured store. An empty type yields a NopStore.
func NewStore(cfg factory.ModuleConfig) (Store, error) {
	if cfg.Type == "" || cfg.Type == "nop" {
		return NopStore{}, nil
	}
	return storeRegistry.Create(cfg)
}

// StoreTypes lists registered store types.
func StoreTypes() []string { return storeRegistry.Names() }
