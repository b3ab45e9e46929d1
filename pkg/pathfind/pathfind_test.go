package pathfind_test

import (
	"testing"
	"time"

	"github.com/lintang-b-s/osm-reachability/pkg/algorithm"
	"github.com/lintang-b-s/osm-reachability/pkg/datastructure"
	"github.com/lintang-b-s/osm-reachability/pkg/maptest"
	"github.com/lintang-b-s/osm-reachability/pkg/pathfind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestPathfind(t *testing.T) {
	b, c := maptest.ThreeRoads()
	m, err := b.Build()
	require.NoError(t, err)

	req := pathfind.PathRequest{
		Start:       datastructure.NewPosition(c.Lane(0, 0), 100),
		End:         datastructure.NewPosition(c.Lane(2, 0), 250),
		Constraints: datastructure.CAR,
	}
	path, ok := pathfind.Pathfind(req, m.RoutingParams(), m)
	require.True(t, ok)

	// 30s + 40s for R1 and R2, 25s along R3
	assert.Equal(t, 95*time.Second, path.Cost())
	assert.Len(t, path.Movements(), 2)
	assert.Equal(t, []datastructure.DirectedRoadID{fwd(c.Roads[0]), fwd(c.Roads[1]), fwd(c.Roads[2])}, path.Roads())
	assert.Equal(t, req, path.Request())
}

func TestPathfindNoPath(t *testing.T) {
	b, c := maptest.ThreeRoads()
	m, err := b.Build()
	require.NoError(t, err)

	tests := []struct {
		name string
		req  pathfind.PathRequest
	}{
		{
			name: "against one-way",
			req: pathfind.PathRequest{
				Start:       datastructure.NewPosition(c.Lane(2, 0), 0),
				End:         datastructure.NewPosition(c.Lane(0, 0), 0),
				Constraints: datastructure.CAR,
			},
		},
		{
			name: "mode cannot use lanes",
			req: pathfind.PathRequest{
				Start:       datastructure.NewPosition(c.Lane(0, 0), 0),
				End:         datastructure.NewPosition(c.Lane(2, 0), 0),
				Constraints: datastructure.TRAIN,
			},
		},
		{
			name: "unknown lane",
			req: pathfind.PathRequest{
				Start:       datastructure.NewPosition(c.Lane(0, 0), 0),
				End:         datastructure.NewPosition(99, 0),
				Constraints: datastructure.CAR,
			},
		},
		{
			name: "behind on a dead-end road",
			req: pathfind.PathRequest{
				Start:       datastructure.NewPosition(c.Lane(1, 0), 300),
				End:         datastructure.NewPosition(c.Lane(1, 0), 100),
				Constraints: datastructure.CAR,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := pathfind.Pathfind(tt.req, m.RoutingParams(), m)
			assert.False(t, ok)
		})
	}
}

func TestPathfindSameRoad(t *testing.T) {
	b, c := maptest.ThreeRoads()
	m, err := b.Build()
	require.NoError(t, err)

	path, ok := pathfind.Pathfind(pathfind.PathRequest{
		Start:       datastructure.NewPosition(c.Lane(1, 0), 100),
		End:         datastructure.NewPosition(c.Lane(1, 0), 300),
		Constraints: datastructure.CAR,
	}, m.RoutingParams(), m)
	require.True(t, ok)
	assert.Equal(t, 30*time.Second, path.Cost())
	assert.Empty(t, path.Movements())
	assert.Equal(t, []datastructure.DirectedRoadID{fwd(c.Roads[1])}, path.Roads())
}

// the realized cost never undercuts the frontier at the end road, and the path walks real movements.
func TestPathfindAgainstFrontier(t *testing.T) {
	rd := rand.New(rand.NewSource(11))
	for iter := 0; iter < 20; iter++ {
		m, err := maptest.Random(rd, maptest.RandomOptions{
			Intersections: 25,
			Roads:         60,
			TurnProb:      0.7,
			WithZone:      true,
		}).Build()
		require.NoError(t, err)

		for _, c := range []datastructure.PathConstraints{datastructure.CAR, datastructure.BIKE, datastructure.BUS} {
			eligible := make([]*datastructure.Lane, 0)
			m.ForEachLane(func(l *datastructure.Lane) {
				if c.CanUse(l, m) {
					eligible = append(eligible, l)
				}
			})
			if len(eligible) == 0 {
				continue
			}
			g := pathfind.BuildGraphForVehicles(m, c)

			for q := 0; q < 10; q++ {
				start := eligible[rd.Intn(len(eligible))]
				end := eligible[rd.Intn(len(eligible))]
				req := pathfind.PathRequest{
					Start:       datastructure.NewPosition(start.GetID(), rd.Float64()*start.GetLength()),
					End:         datastructure.NewPosition(end.GetID(), rd.Float64()*end.GetLength()),
					Constraints: c,
				}
				path, ok := pathfind.Pathfind(req, m.RoutingParams(), m)
				if !ok {
					continue
				}

				frontier := algorithm.Dijkstra(g, start.GetDirectedParent(), pathfind.EdgeCost(c, m.RoutingParams(), m))
				cost, reached := frontier.Dist[end.GetDirectedParent()]
				require.True(t, reached)
				assert.LessOrEqual(t, cost, path.Cost())

				roads := path.Roads()
				assert.Equal(t, start.GetDirectedParent(), roads[0])
				assert.Equal(t, end.GetDirectedParent(), roads[len(roads)-1])
				for _, mv := range path.Movements() {
					assert.True(t, g.ContainsEdge(mv.ID.From, mv.ID.To))
				}
			}
		}
	}
}
