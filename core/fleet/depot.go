package fleet

import (
	"fmt"

	"github.com/kilianp07/fleetsim/core/geo"
	"github.com/kilianp07/fleetsim/core/list"
)

// Depot is a fixed location with a number of loading docks. Vehicles that
// arrive queue for a dock; at most Docks() vehicles are admitted per tick and
// each admitted vehicle is released on the following tick.
type Depot struct {
	id       string
	location geo.Point
	docks    int
	entry    *list.List[*Vehicle]
	release  *list.List[*Vehicle]
}

// NewDepot creates a depot with the given number of docks.
func NewDepot(id string, location geo.Point, docks int) (*Depot, error) {
	if docks < 1 {
		return nil, fmt.Errorf("depot %s: %w (got %d)", id, ErrInvalidDocks, docks)
	}
	return &Depot{
		id:       id,
		location: location,
		docks:    docks,
		entry:    list.New[*Vehicle](),
		release:  list.New[*Vehicle](),
	}, nil
}

func (d *Depot) ID() string          { return d.id }
func (d *Depot) Location() geo.Point { return d.location }
func (d *Depot) Docks() int          { return d.docks }

// Entering is the number of vehicles waiting for a dock.
func (d *Depot) Entering() int { return d.entry.Len() }

// Leaving is the number of vehicles docked and due for release next tick.
func (d *Depot) Leaving() int { return d.release.Len() }

// Join queues v for a dock.
func (d *Depot) Join(v *Vehicle) error {
	if err := d.entry.Add(v); err != nil {
		return fmt.Errorf("depot %s: join %s: %w", d.id, v.ID(), err)
	}
	return nil
}

// Action releases every vehicle admitted on the previous tick and then
// admits up to Docks() vehicles from the entry queue.
func (d *Depot) Action() error {
	for d.release.Len() > 0 {
		v, err := d.release.PopFront()
		if err != nil {
			return fmt.Errorf("depot %s: %w", d.id, err)
		}
		if err := v.LoadingComplete(); err != nil {
			return fmt.Errorf("depot %s: release %s: %w", d.id, v.ID(), err)
		}
	}
	for i := 0; i < d.docks && d.entry.Len() > 0; i++ {
		v, err := d.entry.PopFront()
		if err != nil {
			return fmt.Errorf("depot %s: %w", d.id, err)
		}
		if err := d.release.Add(v); err != nil {
			return fmt.Errorf("depot %s: %w", d.id, err)
		}
	}
	return nil
}

// Status renders the queue lengths as a report line.
func (d *Depot) Status() string {
	return fmt.Sprintf("%d Trucks entering, %d Trucks leaving", d.Entering(), d.Leaving())
}
