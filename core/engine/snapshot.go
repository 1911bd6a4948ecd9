package engine

import (
	"time"

	"github.com/kilianp07/fleetsim/core/report"
)

// Frame snapshots every entity for render collaborators.
func (e *Engine) Frame() report.Frame {
	f := report.Frame{
		RunID:    e.runID,
		Tick:     e.tick,
		Time:     e.now(),
		Width:    e.world.Width,
		Height:   e.world.Height,
		Depots:   make([]report.DepotView, 0, len(e.world.Depots)),
		Vehicles: make([]report.VehicleView, 0, len(e.world.Vehicles)),
	}
	for _, d := range e.world.Depots {
		f.Depots = append(f.Depots, report.DepotView{
			ID:       d.ID(),
			X:        d.Location().X(),
			Y:        d.Location().Y(),
			Docks:    d.Docks(),
			Entering: d.Entering(),
			Leaving:  d.Leaving(),
		})
	}
	for _, v := range e.world.Vehicles {
		f.Vehicles = append(f.Vehicles, report.VehicleView{
			ID:       v.ID(),
			Class:    string(v.Class()),
			X:        v.Location().X(),
			Y:        v.Location().Y(),
			Loaded:   v.Loaded(),
			Capacity: v.Capacity(),
			Phase:    v.Phase().String(),
		})
	}
	return f
}

func (e *Engine) record(at time.Time) report.Record {
	rec := report.Record{
		RunID:    e.runID,
		Tick:     e.tick,
		Time:     at,
		Depots:   make([]report.Line, 0, len(e.world.Depots)),
		Vehicles: make([]report.Line, 0, len(e.world.Vehicles)),
	}
	for _, d := range e.world.Depots {
		rec.Depots = append(rec.Depots, report.Line{ID: d.ID(), Status: d.Status()})
	}
	for _, v := range e.world.Vehicles {
		rec.Vehicles = append(rec.Vehicles, report.Line{ID: v.ID(), Status: v.Status()})
	}
	return rec
}
