package fleet

import (
	"fmt"
	"strings"
	"time"

	"github.com/kilianp07/fleetsim/core/geo"
	"github.com/kilianp07/fleetsim/core/list"
)

// Phase is the externally visible state of a vehicle.
type Phase int

const (
	NeedsOrder Phase = iota
	Traveling
	AtDock
	Complete
)

func (p Phase) String() string {
	switch p {
	case NeedsOrder:
		return "needs_order"
	case Traveling:
		return "traveling"
	case AtDock:
		return "at_dock"
	case Complete:
		return "complete"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Vehicle carries orders from their pickup depot to their destination. It
// moves at a fixed speed per tick and waits at a depot dock on every arrival.
type Vehicle struct {
	id       string
	class    Class
	profile  Profile
	manifest *list.List[*Order]
	hold     Hold
	router   Router
	location geo.Point
	current  *Order
	paused   bool
	complete bool
}

// NewVehicle builds a vehicle of the given class at start. The manifest is
// locked for the rest of the run and handed to the router built by newRouter.
func NewVehicle(id string, class Class, manifest *list.List[*Order], newRouter RouterFactory, start geo.Point) (*Vehicle, error) {
	profile, err := ProfileOf(class)
	if err != nil {
		return nil, fmt.Errorf("vehicle %s: %w", id, err)
	}
	if newRouter == nil {
		return nil, fmt.Errorf("vehicle %s: router factory is nil", id)
	}
	manifest.Lock()
	hold := make(Hold, profile.Capacity)
	r, err := newRouter(manifest, hold)
	if err != nil {
		return nil, fmt.Errorf("vehicle %s: build router: %w", id, err)
	}
	return &Vehicle{
		id:       id,
		class:    class,
		profile:  profile,
		manifest: manifest,
		hold:     hold,
		router:   r,
		location: start,
	}, nil
}

func (v *Vehicle) ID() string                { return v.id }
func (v *Vehicle) Class() Class              { return v.class }
func (v *Vehicle) Capacity() int             { return v.profile.Capacity }
func (v *Vehicle) Speed() float64            { return v.profile.Speed }
func (v *Vehicle) Location() geo.Point       { return v.location }
func (v *Vehicle) Loaded() int               { return v.hold.Loaded() }
func (v *Vehicle) IsPaused() bool            { return v.paused }
func (v *Vehicle) IsComplete() bool          { return v.complete }
func (v *Vehicle) RouterTime() time.Duration { return v.router.Elapsed() }

// Manifest returns the locked manifest.
func (v *Vehicle) Manifest() *list.List[*Order] { return v.manifest }

// Current returns the order being pursued, or nil.
func (v *Vehicle) Current() *Order { return v.current }

// Phase derives the state machine position from the vehicle's flags.
func (v *Vehicle) Phase() Phase {
	switch {
	case v.complete:
		return Complete
	case v.paused:
		return AtDock
	case v.current == nil:
		return NeedsOrder
	default:
		return Traveling
	}
}

// Action advances the vehicle by one tick.
func (v *Vehicle) Action() error {
	if v.paused {
		return nil
	}
	if v.current == nil {
		next, err := v.router.NextOrder(v.location)
		if err != nil {
			return fmt.Errorf("vehicle %s: next order: %w", v.id, err)
		}
		if next == nil {
			v.finish()
			return nil
		}
		v.current = next
	}
	target, err := v.current.Target()
	if err != nil {
		return fmt.Errorf("vehicle %s: %w", v.id, err)
	}
	v.location = v.location.StepToward(target.Location(), v.profile.Speed)
	if v.location.Equal(target.Location()) {
		v.paused = true
		return target.Join(v)
	}
	return nil
}

// LoadingComplete is called by a depot when the vehicle leaves its dock. The
// current order is loaded or unloaded and the next order is chosen at once.
func (v *Vehicle) LoadingComplete() error {
	if !v.paused || v.complete || v.current == nil {
		return fmt.Errorf("vehicle %s: %w", v.id, ErrNotPaused)
	}
	if err := v.current.Advance(); err != nil {
		return fmt.Errorf("vehicle %s: %w", v.id, err)
	}
	switch v.current.State() {
	case Moving:
		i := v.hold.indexOf(nil)
		if i < 0 {
			return fmt.Errorf("vehicle %s: load %s: %w", v.id, v.current, ErrHoldFull)
		}
		v.hold[i] = v.current
	case DroppedOff:
		i := v.hold.indexOf(v.current)
		if i < 0 {
			return fmt.Errorf("vehicle %s: unload %s: %w", v.id, v.current, ErrNotInHold)
		}
		v.hold[i] = nil
	}
	next, err := v.router.NextOrder(v.location)
	if err != nil {
		return fmt.Errorf("vehicle %s: next order: %w", v.id, err)
	}
	if next == nil {
		v.finish()
		return nil
	}
	v.current = next
	v.paused = false
	return nil
}

func (v *Vehicle) finish() {
	v.current = nil
	v.complete = true
	v.paused = true
}

// Status renders the vehicle as a report line.
func (v *Vehicle) Status() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Location: %s Destination: ", v.location)
	if v.current == nil {
		b.WriteString("none")
	} else if target, err := v.current.Target(); err == nil {
		fmt.Fprintf(&b, "%s %s", target.ID(), target.Location())
	} else {
		b.WriteString("none")
	}
	fmt.Fprintf(&b, " Cargo: %d/%d", v.Loaded(), v.Capacity())
	switch {
	case v.complete:
		b.WriteString(" Paused, complete")
	case v.paused:
		b.WriteString(" Paused, docked")
	}
	return b.String()
}
