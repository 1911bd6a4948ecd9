package routing

import (
	"math"
	"time"

	"github.com/kilianp07/fleetsim/core/fleet"
	"github.com/kilianp07/fleetsim/core/geo"
	"github.com/kilianp07/fleetsim/core/list"
)

// delivered marks a candidate that can no longer be selected.
const delivered = -1.0

// Nearest heads for the closest target among its candidates. With a full
// hold the candidates are the loaded orders, otherwise the whole manifest.
// Ties go to the candidate seen first.
type Nearest struct {
	manifest *list.List[*fleet.Order]
	hold     fleet.Hold
	watch    Stopwatch
}

// NewNearest builds a Nearest router over a private copy of manifest.
func NewNearest(manifest *list.List[*fleet.Order], hold fleet.Hold) (fleet.Router, error) {
	return &Nearest{manifest: manifest.Clone(), hold: hold}, nil
}

func (n *Nearest) NextOrder(at geo.Point) (*fleet.Order, error) {
	defer n.watch.Start()()
	candidates := n.manifest
	if n.hold.Full() {
		candidates = list.Of(n.hold...)
	}
	distances := list.Map(candidates, func(o *fleet.Order) float64 {
		target, err := o.Target()
		if err != nil {
			return delivered
		}
		return at.Distance(target.Location())
	})

	var best *fleet.Order
	bestDist := math.Inf(1)
	orders, dists := candidates.Cursor(), distances.Cursor()
	for orders.HasNext() {
		o, err := orders.Next()
		if err != nil {
			return nil, err
		}
		d, err := dists.Next()
		if err != nil {
			return nil, err
		}
		if d == delivered {
			continue
		}
		if d < bestDist {
			best, bestDist = o, d
		}
	}
	return best, nil
}

func (n *Nearest) Elapsed() time.Duration { return n.watch.Elapsed() }
