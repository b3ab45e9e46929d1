package connectivity_test

import (
	"testing"
	"time"

	"github.com/lintang-b-s/osm-reachability/pkg/connectivity"
	"github.com/lintang-b-s/osm-reachability/pkg/datastructure"
	"github.com/lintang-b-s/osm-reachability/pkg/maptest"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestAllVehicleCostsFrom(t *testing.T) {
	b, _ := maptest.ThreeRoads()
	m, err := b.Build()
	require.NoError(t, err)

	tests := []struct {
		name      string
		timeLimit time.Duration
		want      map[datastructure.BuildingID]time.Duration
	}{
		{
			name:      "within limit",
			timeLimit: 100 * time.Second,
			want:      map[datastructure.BuildingID]time.Duration{0: 0, 1: 70 * time.Second},
		},
		{
			name:      "limit on the boundary",
			timeLimit: 70 * time.Second,
			want:      map[datastructure.BuildingID]time.Duration{0: 0, 1: 70 * time.Second},
		},
		{
			name:      "B2 beyond limit",
			timeLimit: 50 * time.Second,
			want:      map[datastructure.BuildingID]time.Duration{0: 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, connectivity.AllVehicleCostsFrom(m, 0, tt.timeLimit, datastructure.CAR))
		})
	}
}

func TestAllVehicleCostsFromPedestrianPanics(t *testing.T) {
	b, _ := maptest.ThreeRoads()
	m, err := b.Build()
	require.NoError(t, err)

	assert.Panics(t, func() {
		connectivity.AllVehicleCostsFrom(m, 0, time.Hour, datastructure.PEDESTRIAN)
	})
}

func TestAllVehicleCostsFromWithoutAnchor(t *testing.T) {
	b, c := maptest.ThreeRoads()
	noAnchor := b.AddBuilding(3, "B3", orb.Point{0, 0.001}, nil, nil)
	biker := b.AddBuilding(4, "B4", orb.Point{0, 0.001}, nil,
		datastructure.NewAnchor(datastructure.NewPosition(c.Lane(0, 0), 0), 5))
	m, err := b.Build()
	require.NoError(t, err)

	assert.Empty(t, connectivity.AllVehicleCostsFrom(m, noAnchor, time.Hour, datastructure.CAR))
	// B1 and B2 only have driving anchors
	assert.Empty(t, connectivity.AllVehicleCostsFrom(m, 0, time.Hour, datastructure.BIKE))
	assert.Equal(t, map[datastructure.BuildingID]time.Duration{biker: 0},
		connectivity.AllVehicleCostsFrom(m, biker, time.Hour, datastructure.BIKE))
	// buses have no building connection at all
	assert.Empty(t, connectivity.AllVehicleCostsFrom(m, 0, time.Hour, datastructure.BUS))
}

func TestAllVehicleCostsFromSharedAnchorRoad(t *testing.T) {
	b, c := maptest.ThreeRoads()
	twin := b.AddBuilding(5, "B2 twin", orb.Point{0.01, 0.0002},
		datastructure.NewAnchor(datastructure.NewPosition(c.Lane(2, 0), 10), 20), nil)
	m, err := b.Build()
	require.NoError(t, err)

	costs := connectivity.AllVehicleCostsFrom(m, 0, time.Hour, datastructure.CAR)
	assert.Equal(t, costs[1], costs[twin])
}

func TestAllVehicleCostsFromRespectsLimit(t *testing.T) {
	rd := rand.New(rand.NewSource(9))
	for iter := 0; iter < 20; iter++ {
		m, err := maptest.Random(rd, maptest.RandomOptions{
			Intersections: 20,
			Roads:         50,
			TurnProb:      0.8,
			Buildings:     15,
			WithZone:      true,
		}).Build()
		require.NoError(t, err)

		limit := time.Duration(rd.Intn(600)) * time.Second
		for _, c := range []datastructure.PathConstraints{datastructure.CAR, datastructure.BIKE} {
			for _, bld := range m.AllBuildings() {
				costs := connectivity.AllVehicleCostsFrom(m, bld.GetID(), limit, c)
				for _, cost := range costs {
					assert.LessOrEqual(t, cost, limit)
				}
				if _, ok := c.Anchor(bld); ok {
					assert.Contains(t, costs, bld.GetID())
					assert.Zero(t, costs[bld.GetID()])
				} else {
					assert.Empty(t, costs)
				}
			}
		}
	}
}
