package fleet

import (
	"time"

	"github.com/kilianp07/fleetsim/core/geo"
	"github.com/kilianp07/fleetsim/core/list"
)

// Router decides which order a vehicle pursues next.
type Router interface {
	// NextOrder returns the order to pursue from at. A nil order means every
	// order in the manifest is delivered and the hold is empty.
	NextOrder(at geo.Point) (*Order, error)
	// Elapsed is the cumulative wall time spent inside NextOrder.
	Elapsed() time.Duration
}

// RouterFactory builds a router for one vehicle. The manifest is locked; the
// hold is the vehicle's live cargo slice and reflects loads and unloads.
type RouterFactory func(manifest *list.List[*Order], hold Hold) (Router, error)

// Hold is a fixed-length set of cargo slots. Empty slots are nil.
type Hold []*Order

// Loaded counts occupied slots.
func (h Hold) Loaded() int {
	n := 0
	for _, o := range h {
		if o != nil {
			n++
		}
	}
	return n
}

// Full reports whether every slot is occupied.
func (h Hold) Full() bool { return h.Loaded() == len(h) }

// First returns the first occupied slot, or nil.
func (h Hold) First() *Order {
	for _, o := range h {
		if o != nil {
			return o
		}
	}
	return nil
}

func (h Hold) indexOf(o *Order) int {
	for i, s := range h {
		if s == o {
			return i
		}
	}
	return -1
}
