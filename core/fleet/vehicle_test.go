package fleet

import (
	"errors"
	"testing"

	"github.com/kilianp07/fleetsim/core/geo"
	"github.com/kilianp07/fleetsim/core/list"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVehicleLocksManifest(t *testing.T) {
	a := mustDepot(t, "a", 0, 0, 1)
	b := mustDepot(t, "b", 10, 0, 1)
	manifest := list.Of(mustOrder(t, a, b))

	v, err := NewVehicle("v1", Medium, manifest, newFIFO, geo.NewPoint(0, 0))
	require.NoError(t, err)
	assert.True(t, manifest.IsLocked())
	assert.ErrorIs(t, manifest.Add(mustOrder(t, b, a)), list.ErrLocked)
	assert.Equal(t, 2, v.Capacity())
	assert.Equal(t, 6.0, v.Speed())
	assert.Equal(t, NeedsOrder, v.Phase())
}

func TestNewVehicleErrors(t *testing.T) {
	_, err := NewVehicle("v", Class("huge"), list.New[*Order](), newFIFO, geo.NewPoint(0, 0))
	assert.ErrorIs(t, err, ErrUnknownClass)

	boom := errors.New("boom")
	_, err = NewVehicle("v", Small, list.New[*Order](), func(*list.List[*Order], Hold) (Router, error) {
		return nil, boom
	}, geo.NewPoint(0, 0))
	assert.ErrorIs(t, err, boom)
}

func TestEmptyManifestCompletesImmediately(t *testing.T) {
	v, err := NewVehicle("v", Small, list.New[*Order](), newFIFO, geo.NewPoint(1, 1))
	require.NoError(t, err)

	require.NoError(t, v.Action())
	assert.True(t, v.IsComplete())
	assert.True(t, v.IsPaused())
	assert.Equal(t, Complete, v.Phase())

	// terminal state is idempotent
	for i := 0; i < 3; i++ {
		require.NoError(t, v.Action())
		assert.True(t, v.IsComplete())
		assert.True(t, v.IsPaused())
	}
	assert.ErrorIs(t, v.LoadingComplete(), ErrNotPaused)
}

func TestLoadingCompleteRequiresPause(t *testing.T) {
	a := mustDepot(t, "a", 0, 0, 1)
	b := mustDepot(t, "b", 100, 0, 1)
	v, err := NewVehicle("v", Small, list.Of(mustOrder(t, a, b)), newFIFO, geo.NewPoint(50, 0))
	require.NoError(t, err)

	require.NoError(t, v.Action())
	assert.Equal(t, Traveling, v.Phase())
	assert.ErrorIs(t, v.LoadingComplete(), ErrNotPaused)
}

func TestSingleDeliveryTimeline(t *testing.T) {
	a := mustDepot(t, "a", 0, 0, 1)
	b := mustDepot(t, "b", 18, 0, 1)
	o := mustOrder(t, a, b)
	v, err := NewVehicle("v", Small, list.Of(o), newFIFO, geo.NewPoint(0, 0))
	require.NoError(t, err)

	ticks := runUntilComplete(t, []*Depot{a, b}, []*Vehicle{v}, 50)
	// 1 arrive at a, 2 admitted, 3 released and moved 9, 4 arrive at b,
	// 5 admitted, 6 released with no more work
	assert.Equal(t, 6, ticks)
	assert.Equal(t, DroppedOff, o.State())
	assert.Equal(t, 0, v.Loaded())
	assert.True(t, v.Location().Equal(b.Location()))
}

func TestEveryOrderDeliveredOnce(t *testing.T) {
	depots := []*Depot{
		mustDepot(t, "a", 0, 0, 1),
		mustDepot(t, "b", 40, 10, 2),
		mustDepot(t, "c", 13, 77, 3),
	}
	var orders []*Order
	var vehicles []*Vehicle
	for i, class := range Classes() {
		manifest := list.New[*Order]()
		for j := 0; j < 4; j++ {
			from := depots[(i+j)%3]
			to := depots[(i+j+1)%3]
			o := mustOrder(t, from, to)
			orders = append(orders, o)
			require.NoError(t, manifest.Add(o))
		}
		v, err := NewVehicle(string(class), class, manifest, newFIFO, geo.NewPoint(5, 5))
		require.NoError(t, err)
		vehicles = append(vehicles, v)
	}

	runUntilComplete(t, depots, vehicles, 1000)
	for _, o := range orders {
		assert.Equal(t, DroppedOff, o.State(), o.String())
	}
	for _, v := range vehicles {
		assert.Equal(t, 0, v.Loaded())
		assert.Equal(t, Complete, v.Phase())
	}
}

func TestVehicleStatus(t *testing.T) {
	a := mustDepot(t, "a", 0, 0, 1)
	b := mustDepot(t, "b", 30, 40, 1)
	v, err := NewVehicle("v", Large, list.Of(mustOrder(t, b, a)), newFIFO, geo.NewPoint(0, 0))
	require.NoError(t, err)

	assert.Equal(t, "Location: (0.00, 0.00) Destination: none Cargo: 0/3", v.Status())
	require.NoError(t, v.Action())
	assert.Equal(t, "Location: (1.80, 2.40) Destination: b (30.00, 40.00) Cargo: 0/3", v.Status())

	done, err := NewVehicle("w", Small, list.New[*Order](), newFIFO, geo.NewPoint(0, 0))
	require.NoError(t, err)
	require.NoError(t, done.Action())
	assert.Equal(t, "Location: (0.00, 0.00) Destination: none Cargo: 0/1 Paused, complete", done.Status())
}
