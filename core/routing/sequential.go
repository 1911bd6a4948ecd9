package routing

import (
	"time"

	"github.com/kilianp07/fleetsim/core/fleet"
	"github.com/kilianp07/fleetsim/core/geo"
	"github.com/kilianp07/fleetsim/core/list"
)

// Sequential finishes delivering whatever is loaded before picking up the
// next order in manifest order.
type Sequential struct {
	pending *list.List[*fleet.Order]
	hold    fleet.Hold
	watch   Stopwatch
}

// NewSequential builds a Sequential router over a private copy of manifest.
func NewSequential(manifest *list.List[*fleet.Order], hold fleet.Hold) (fleet.Router, error) {
	return &Sequential{pending: manifest.Clone(), hold: hold}, nil
}

func (s *Sequential) NextOrder(geo.Point) (*fleet.Order, error) {
	defer s.watch.Start()()
	if o := s.hold.First(); o != nil {
		return o, nil
	}
	for s.pending.Len() > 0 {
		o, err := s.pending.PopFront()
		if err != nil {
			return nil, err
		}
		if o.State() != fleet.DroppedOff {
			return o, nil
		}
	}
	return nil, nil
}

func (s *Sequential) Elapsed() time.Duration { return s.watch.Elapsed() }
