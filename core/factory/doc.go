// Package factory provides a small generic registry used to instantiate modules
// from configuration. A module is named by a type string and carries a map of
// raw settings that its factory decodes into a typed struct.
//
// Routing strategies are registered this way:
//
//	reg := factory.NewRegistry[fleet.RouterFactory]()
//	reg.Register("nearest", func(conf map[string]any) (fleet.RouterFactory, error) {
//	    var c struct{ Timed bool `json:"timed"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return routing.NewNearest, nil
//	})
//	newRouter, err := reg.Create(factory.ModuleConfig{Type: "nearest"})
package factory
