package scenarios

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/fleetsim/core/factory"
	"github.com/kilianp07/fleetsim/core/fleet"
	"github.com/kilianp07/fleetsim/core/geo"
	"github.com/kilianp07/fleetsim/core/list"
	"github.com/kilianp07/fleetsim/core/routing"
	"github.com/kilianp07/fleetsim/core/world"
)

type DepotDef struct {
	ID    string  `yaml:"id"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Docks int     `yaml:"docks"`
}

// VehicleDef places a vehicle. Each order is a [pickup, destination] pair of
// depot ids.
type VehicleDef struct {
	ID     string     `yaml:"id"`
	Class  string     `yaml:"class"`
	X      float64    `yaml:"x"`
	Y      float64    `yaml:"y"`
	Orders [][]string `yaml:"orders"`
}

// GeneratedDef describes a seeded random world instead of explicit depots
// and vehicles.
type GeneratedDef struct {
	Small            int     `yaml:"small"`
	Medium           int     `yaml:"medium"`
	Large            int     `yaml:"large"`
	OrdersPerVehicle int     `yaml:"orders_per_vehicle"`
	Depots           int     `yaml:"depots"`
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	Seed             int64   `yaml:"seed"`
}

// Expected holds the checks run after the simulation. Zero values are not
// checked, except that every order must always be delivered.
type Expected struct {
	Ticks      int `yaml:"ticks,omitempty"`
	CargoTicks int `yaml:"cargo_ticks,omitempty"`
	MaxTicks   int `yaml:"max_ticks,omitempty"`
	Orders     int `yaml:"orders,omitempty"`
}

type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Router      string        `yaml:"router"`
	Generated   *GeneratedDef `yaml:"generated,omitempty"`
	Depots      []DepotDef    `yaml:"depots,omitempty"`
	Vehicles    []VehicleDef  `yaml:"vehicles,omitempty"`
	// Repeat reruns the world and requires identical results.
	Repeat   int      `yaml:"repeat,omitempty"`
	Expected Expected `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("%s: scenario has no name", path)
	}
	return &sc, nil
}

// Build creates a fresh world for the scenario.
func (sc *Scenario) Build() (*world.World, error) {
	if sc.Generated != nil {
		g := sc.Generated
		cfg := world.Config{
			Small: g.Small, Medium: g.Medium, Large: g.Large,
			OrdersPerVehicle: g.OrdersPerVehicle, Depots: g.Depots,
			Width: g.Width, Height: g.Height, Seed: g.Seed,
			Router: factory.ModuleConfig{Type: sc.Router},
		}
		cfg.SetDefaults()
		return world.Generate(cfg)
	}

	newRouter, err := routing.New(factory.ModuleConfig{Type: sc.Router})
	if err != nil {
		return nil, err
	}
	w := &world.World{Router: sc.Router}
	if w.Router == "" {
		w.Router = routing.Default
	}
	byID := make(map[string]*fleet.Depot, len(sc.Depots))
	for _, d := range sc.Depots {
		dep, err := fleet.NewDepot(d.ID, geo.NewPoint(d.X, d.Y), d.Docks)
		if err != nil {
			return nil, fmt.Errorf("depot %s: %w", d.ID, err)
		}
		byID[d.ID] = dep
		w.Depots = append(w.Depots, dep)
	}
	for _, v := range sc.Vehicles {
		manifest := list.New[*fleet.Order]()
		for _, pair := range v.Orders {
			if len(pair) != 2 {
				return nil, fmt.Errorf("vehicle %s: order %v is not a [pickup, destination] pair", v.ID, pair)
			}
			o, err := fleet.NewOrder(byID[pair[0]], byID[pair[1]])
			if err != nil {
				return nil, fmt.Errorf("vehicle %s: %w", v.ID, err)
			}
			if err := manifest.Add(o); err != nil {
				return nil, err
			}
		}
		veh, err := fleet.NewVehicle(v.ID, fleet.Class(v.Class), manifest, newRouter, geo.NewPoint(v.X, v.Y))
		if err != nil {
			return nil, err
		}
		w.Vehicles = append(w.Vehicles, veh)
	}
	return w, nil
}
