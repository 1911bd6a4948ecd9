package fleet

import (
	"testing"
	"time"

	"github.com/kilianp07/fleetsim/core/geo"
	"github.com/kilianp07/fleetsim/core/list"
	"github.com/stretchr/testify/require"
)

// fifoRouter delivers whatever is loaded first, otherwise picks up the next
// manifest entry.
type fifoRouter struct {
	pending *list.List[*Order]
	hold    Hold
	calls   int
}

func newFIFO(manifest *list.List[*Order], hold Hold) (Router, error) {
	return &fifoRouter{pending: manifest.Clone(), hold: hold}, nil
}

func (r *fifoRouter) NextOrder(geo.Point) (*Order, error) {
	r.calls++
	if o := r.hold.First(); o != nil {
		return o, nil
	}
	if r.pending.Len() == 0 {
		return nil, nil
	}
	return r.pending.PopFront()
}

func (r *fifoRouter) Elapsed() time.Duration { return time.Duration(r.calls) }

func mustDepot(t *testing.T, id string, x, y float64, docks int) *Depot {
	t.Helper()
	d, err := NewDepot(id, geo.NewPoint(x, y), docks)
	require.NoError(t, err)
	return d
}

func mustOrder(t *testing.T, from, to *Depot) *Order {
	t.Helper()
	o, err := NewOrder(from, to)
	require.NoError(t, err)
	return o
}

// runUntilComplete drives the given depots and vehicles the way the engine
// does and returns the number of ticks taken.
func runUntilComplete(t *testing.T, depots []*Depot, vehicles []*Vehicle, limit int) int {
	t.Helper()
	for tick := 1; tick <= limit; tick++ {
		for _, d := range depots {
			require.NoError(t, d.Action())
		}
		done := true
		for _, v := range vehicles {
			require.NoError(t, v.Action())
			done = done && v.IsComplete()
		}
		if done {
			return tick
		}
	}
	t.Fatalf("not complete after %d ticks", limit)
	return 0
}
