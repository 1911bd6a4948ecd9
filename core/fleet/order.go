package fleet

import "fmt"

// State is the lifecycle position of an Order. It only moves forward.
type State int

const (
	AwaitingPickup State = iota
	Moving
	DroppedOff
)

func (s State) String() string {
	switch s {
	case AwaitingPickup:
		return "awaiting_pickup"
	case Moving:
		return "moving"
	case DroppedOff:
		return "dropped_off"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Order is a shipment travelling from a pickup depot to a destination depot.
type Order struct {
	pickup      *Depot
	destination *Depot
	state       State
}

// NewOrder creates an order awaiting pickup.
func NewOrder(pickup, destination *Depot) (*Order, error) {
	if pickup == nil || destination == nil {
		return nil, fmt.Errorf("order needs a pickup and a destination depot")
	}
	if pickup == destination {
		return nil, fmt.Errorf("%w: %s", ErrSameDepot, pickup.ID())
	}
	return &Order{pickup: pickup, destination: destination}, nil
}

func (o *Order) Pickup() *Depot      { return o.pickup }
func (o *Order) Destination() *Depot { return o.destination }
func (o *Order) State() State        { return o.state }

// Target returns the depot the order has to be taken to next: the pickup
// depot while awaiting pickup and the destination while moving.
func (o *Order) Target() (*Depot, error) {
	switch o.state {
	case AwaitingPickup:
		return o.pickup, nil
	case Moving:
		return o.destination, nil
	default:
		return nil, fmt.Errorf("target of %s: %w", o, ErrAlreadyDelivered)
	}
}

// Advance moves the order one step along its lifecycle.
func (o *Order) Advance() error {
	if o.state == DroppedOff {
		return fmt.Errorf("advance %s: %w", o, ErrAlreadyDelivered)
	}
	o.state++
	return nil
}

func (o *Order) String() string {
	return fmt.Sprintf("%s->%s[%s]", o.pickup.ID(), o.destination.ID(), o.state)
}
