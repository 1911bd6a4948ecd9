package report

import (
	"context"
	"testing"

	"github.com/kilianp07/fleetsim/core/factory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryMatch(t *testing.T) {
	rec := Record{
		RunID:    "r1",
		Tick:     5,
		Depots:   []Line{{ID: "dep000", Status: "0 Trucks entering, 0 Trucks leaving"}},
		Vehicles: []Line{{ID: "veh0001"}},
	}
	assert.True(t, Query{}.Match(rec))
	assert.True(t, Query{RunID: "r1", FromTick: 5, ToTick: 5}.Match(rec))
	assert.False(t, Query{RunID: "r2"}.Match(rec))
	assert.False(t, Query{FromTick: 6}.Match(rec))
	assert.False(t, Query{ToTick: 4}.Match(rec))
	assert.True(t, Query{EntityID: "dep000"}.Match(rec))
	assert.True(t, Query{EntityID: "veh0001"}.Match(rec))
	assert.False(t, Query{EntityID: "veh0002"}.Match(rec))
}

func TestFrameAggregates(t *testing.T) {
	f := Frame{
		Depots: []DepotView{{Entering: 2, Leaving: 1}, {Leaving: 1}},
		Vehicles: []VehicleView{
			{Loaded: 1, Phase: "traveling"},
			{Loaded: 2, Phase: "at_dock"},
			{Phase: "complete"},
		},
	}
	assert.Equal(t, 3, f.Loaded())
	assert.Equal(t, 1, f.Completed())
	assert.Equal(t, 4, f.Docked())
}

func TestNewStoreDefaultsToNop(t *testing.T) {
	s, err := NewStore(factory.ModuleConfig{})
	require.NoError(t, err)
	assert.IsType(t, NopStore{}, s)
	require.NoError(t, s.Append(context.Background(), Record{}))

	_, err = NewStore(factory.ModuleConfig{Type: "carrier-pigeon"})
	assert.Error(t, err)
}
