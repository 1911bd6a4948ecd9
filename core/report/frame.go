package report

import "time"

// DepotView is a read-only snapshot of a depot.
type DepotView struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Docks    int     `json:"docks"`
	Entering int     `json:"entering"`
	Leaving  int     `json:"leaving"`
}

// VehicleView is a read-only snapshot of a vehicle.
type VehicleView struct {
	ID       string  `json:"id"`
	Class    string  `json:"class"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Loaded   int     `json:"loaded"`
	Capacity int     `json:"capacity"`
	Phase    string  `json:"phase"`
}

// Frame is what render collaborators receive after every tick.
type Frame struct {
	RunID    string        `json:"run_id"`
	Tick     int           `json:"tick"`
	Time     time.Time     `json:"time"`
	Width    float64       `json:"width"`
	Height   float64       `json:"height"`
	Depots   []DepotView   `json:"depots"`
	Vehicles []VehicleView `json:"vehicles"`
}

// Loaded sums occupied cargo slots across the fleet.
func (f Frame) Loaded() int {
	n := 0
	for _, v := range f.Vehicles {
		n += v.Loaded
	}
	return n
}

// Completed counts vehicles in the complete phase.
func (f Frame) Completed() int {
	n := 0
	for _, v := range f.Vehicles {
		if v.Phase == "complete" {
			n++
		}
	}
	return n
}

// Docked counts vehicles queued or docked at any depot.
func (f Frame) Docked() int {
	n := 0
	for _, d := range f.Depots {
		n += d.Entering + d.Leaving
	}
	return n
}
