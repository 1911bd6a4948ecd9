package routing

import (
	"testing"
	"time"

	"github.com/kilianp07/fleetsim/core/factory"
	"github.com/kilianp07/fleetsim/core/fleet"
	"github.com/kilianp07/fleetsim/core/geo"
	"github.com/kilianp07/fleetsim/core/list"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func depot(t *testing.T, id string, x, y float64) *fleet.Depot {
	t.Helper()
	d, err := fleet.NewDepot(id, geo.NewPoint(x, y), 1)
	require.NoError(t, err)
	return d
}

func order(t *testing.T, from, to *fleet.Depot) *fleet.Order {
	t.Helper()
	o, err := fleet.NewOrder(from, to)
	require.NoError(t, err)
	return o
}

func next(t *testing.T, r fleet.Router, at geo.Point) *fleet.Order {
	t.Helper()
	o, err := r.NextOrder(at)
	require.NoError(t, err)
	return o
}

func TestSequentialFinishesLoadBeforeNextPickup(t *testing.T) {
	w1, w2, w3 := depot(t, "w1", 0, 0), depot(t, "w2", 10, 0), depot(t, "w3", 0, 10)
	a, b := order(t, w1, w2), order(t, w1, w3)
	manifest := list.Of(a, b)
	manifest.Lock()
	hold := make(fleet.Hold, 1)

	r, err := NewSequential(manifest, hold)
	require.NoError(t, err)
	origin := geo.NewPoint(0, 0)

	assert.Same(t, a, next(t, r, origin))

	require.NoError(t, a.Advance())
	hold[0] = a
	for i := 0; i < 3; i++ {
		assert.Same(t, a, next(t, r, origin))
	}

	require.NoError(t, a.Advance())
	hold[0] = nil
	assert.Same(t, b, next(t, r, origin))

	require.NoError(t, b.Advance())
	hold[0] = b
	require.NoError(t, b.Advance())
	hold[0] = nil
	assert.Nil(t, next(t, r, origin))
	assert.Equal(t, 2, manifest.Len(), "router must not consume the vehicle's manifest")
}

func TestSequentialSkipsDelivered(t *testing.T) {
	w1, w2 := depot(t, "w1", 0, 0), depot(t, "w2", 1, 0)
	a, b := order(t, w1, w2), order(t, w2, w1)
	require.NoError(t, a.Advance())
	require.NoError(t, a.Advance())

	r, err := NewSequential(list.Of(a, b), make(fleet.Hold, 2))
	require.NoError(t, err)
	assert.Same(t, b, next(t, r, geo.NewPoint(0, 0)))
}

func TestNearestPicksClosestTarget(t *testing.T) {
	near, mid, far := depot(t, "near", 1, 0), depot(t, "mid", 5, 0), depot(t, "far", 50, 0)
	other := depot(t, "other", 0, 20)
	farPickup := order(t, far, near)
	nearPickup := order(t, near, other)
	midPickup := order(t, mid, far)

	r, err := NewNearest(list.Of(farPickup, midPickup, nearPickup), make(fleet.Hold, 2))
	require.NoError(t, err)
	assert.Same(t, nearPickup, next(t, r, geo.NewPoint(0, 0)))

	// once moving the target becomes the destination depot
	require.NoError(t, nearPickup.Advance())
	assert.Same(t, nearPickup, next(t, r, geo.NewPoint(0, 19)))
	assert.Same(t, midPickup, next(t, r, geo.NewPoint(5.5, 0)))
}

func TestNearestTieGoesToFirstEncountered(t *testing.T) {
	left, right, home := depot(t, "left", -3, 0), depot(t, "right", 3, 0), depot(t, "home", 0, 100)
	first := order(t, right, home)
	second := order(t, left, home)

	r, err := NewNearest(list.Of(first, second), make(fleet.Hold, 1))
	require.NoError(t, err)
	assert.Same(t, first, next(t, r, geo.NewPoint(0, 0)))

	r, err = NewNearest(list.Of(second, first), make(fleet.Hold, 1))
	require.NoError(t, err)
	assert.Same(t, second, next(t, r, geo.NewPoint(0, 0)))
}

func TestNearestNeverSelectsDelivered(t *testing.T) {
	here, there := depot(t, "here", 0, 0), depot(t, "there", 80, 0)
	done := order(t, here, there)
	require.NoError(t, done.Advance())
	require.NoError(t, done.Advance())
	open := order(t, there, here)

	r, err := NewNearest(list.Of(done, open), make(fleet.Hold, 1))
	require.NoError(t, err)
	assert.Same(t, open, next(t, r, geo.NewPoint(0, 0)))

	require.NoError(t, open.Advance())
	require.NoError(t, open.Advance())
	assert.Nil(t, next(t, r, geo.NewPoint(0, 0)))
}

func TestNearestFullHoldOnlyConsidersCargo(t *testing.T) {
	a, b, c := depot(t, "a", 0, 0), depot(t, "b", 100, 0), depot(t, "c", 1, 0)
	loaded := order(t, a, b)
	waiting := order(t, c, a)
	require.NoError(t, loaded.Advance())
	hold := fleet.Hold{loaded}

	r, err := NewNearest(list.Of(loaded, waiting), hold)
	require.NoError(t, err)
	assert.Same(t, loaded, next(t, r, geo.NewPoint(0, 0)))

	hold[0] = nil
	require.NoError(t, loaded.Advance())
	assert.Same(t, waiting, next(t, r, geo.NewPoint(0, 0)))
}

func TestStopwatchAccumulates(t *testing.T) {
	now := time.Unix(0, 0)
	sw := Stopwatch{now: func() time.Time { return now }}
	stop := sw.Start()
	now = now.Add(3 * time.Millisecond)
	stop()
	stop = sw.Start()
	now = now.Add(2 * time.Millisecond)
	stop()
	assert.Equal(t, 5*time.Millisecond, sw.Elapsed())
}

func TestRegistry(t *testing.T) {
	assert.Contains(t, Names(), "sequential")
	assert.Contains(t, Names(), "nearest")

	rf, err := New(factory.ModuleConfig{})
	require.NoError(t, err)
	r, err := rf(list.New[*fleet.Order](), make(fleet.Hold, 1))
	require.NoError(t, err)
	assert.IsType(t, &Sequential{}, r)

	rf, err = New(factory.ModuleConfig{Type: "nearest"})
	require.NoError(t, err)
	r, err = rf(list.New[*fleet.Order](), make(fleet.Hold, 1))
	require.NoError(t, err)
	assert.IsType(t, &Nearest{}, r)

	_, err = New(factory.ModuleConfig{Type: "teleport"})
	assert.Error(t, err)
	assert.Error(t, Register("nearest", func(map[string]any) (fleet.RouterFactory, error) { return nil, nil }))
}
