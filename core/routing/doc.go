// Package routing provides the strategies that decide which order a vehicle
// pursues next. Strategies are selected by name through a registry:
//
//	newRouter, err := routing.New(factory.ModuleConfig{Type: "nearest"})
//	v, err := fleet.NewVehicle("veh0001", fleet.Small, manifest, newRouter, start)
package routing
