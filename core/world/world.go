// Package world generates the depots and vehicles of a run from a seed.
package world

import (
	"fmt"
	"math/rand"

	"github.com/kilianp07/fleetsim/core/fleet"
	"github.com/kilianp07/fleetsim/core/geo"
	"github.com/kilianp07/fleetsim/core/list"
	"github.com/kilianp07/fleetsim/core/routing"
)

const maxDocks = 3

// World is the full set of entities of one run.
type World struct {
	Seed     int64
	Router   string
	Width    float64
	Height   float64
	Depots   []*fleet.Depot
	Vehicles []*fleet.Vehicle
}

// Generate seeds a generator from cfg.Seed, resolves the configured router
// and builds the world.
func Generate(cfg Config) (*World, error) {
	newRouter, err := routing.New(cfg.Router)
	if err != nil {
		return nil, err
	}
	w, err := Build(cfg, rand.New(rand.NewSource(cfg.Seed)), newRouter)
	if err != nil {
		return nil, err
	}
	w.Router = cfg.Router.Type
	return w, nil
}

// Build creates the depots and then the vehicles, drawing every random value
// from rng in a fixed order so a seed reproduces the same world.
func Build(cfg Config, rng *rand.Rand, newRouter fleet.RouterFactory) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("world: %w", err)
	}
	w := &World{Seed: cfg.Seed, Width: cfg.Width, Height: cfg.Height}

	for i := 0; i < cfg.Depots; i++ {
		loc := randomPoint(rng, cfg)
		d, err := fleet.NewDepot(fmt.Sprintf("dep%03d", i), loc, rng.Intn(maxDocks)+1)
		if err != nil {
			return nil, fmt.Errorf("world: %w", err)
		}
		w.Depots = append(w.Depots, d)
	}

	counts := cfg.Counts()
	for _, class := range fleet.Classes() {
		for n := 0; n < counts[class]; n++ {
			manifest, err := w.manifest(rng, cfg.OrdersPerVehicle)
			if err != nil {
				return nil, fmt.Errorf("world: %w", err)
			}
			id := fmt.Sprintf("veh%04d", len(w.Vehicles))
			v, err := fleet.NewVehicle(id, class, manifest, newRouter, randomPoint(rng, cfg))
			if err != nil {
				return nil, fmt.Errorf("world: %w", err)
			}
			w.Vehicles = append(w.Vehicles, v)
		}
	}
	return w, nil
}

// Orders counts every order across all manifests.
func (w *World) Orders() int {
	n := 0
	for _, v := range w.Vehicles {
		n += v.Manifest().Len()
	}
	return n
}

func (w *World) manifest(rng *rand.Rand, n int) (*list.List[*fleet.Order], error) {
	out := list.New[*fleet.Order]()
	for i := 0; i < n; i++ {
		from := rng.Intn(len(w.Depots))
		to := rng.Intn(len(w.Depots) - 1)
		if to >= from {
			to++
		}
		o, err := fleet.NewOrder(w.Depots[from], w.Depots[to])
		if err != nil {
			return nil, err
		}
		if err := out.Add(o); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func randomPoint(rng *rand.Rand, cfg Config) geo.Point {
	return geo.NewPoint(rng.Float64()*cfg.Width, rng.Float64()*cfg.Height)
}
