package connectivity

import (
	"fmt"
	"time"

	"github.com/lintang-b-s/osm-reachability/pkg/algorithm"
	"github.com/lintang-b-s/osm-reachability/pkg/datastructure"
	"github.com/lintang-b-s/osm-reachability/pkg/pathfind"
)

// AllVehicleCostsFrom returns the cost of reaching every building within timeLimit from start, by
// mode c. a building costs what its anchor road costs, so the start building is included at 0.
// buildings without an anchor for c are left out, and a start without one yields an empty map.
// c must be a vehicle mode.
func AllVehicleCostsFrom(m *datastructure.Map, start datastructure.BuildingID, timeLimit time.Duration,
	c datastructure.PathConstraints) map[datastructure.BuildingID]time.Duration {
	if !c.IsVehicle() {
		panic(fmt.Sprintf("AllVehicleCostsFrom: %s is not a vehicle mode", c))
	}

	results := make(map[datastructure.BuildingID]time.Duration)
	anchorRoads := make(map[datastructure.BuildingID]datastructure.DirectedRoadID)
	for _, b := range m.AllBuildings() {
		if a, ok := c.Anchor(b); ok {
			anchorRoads[b.GetID()] = m.GetLane(a.GetPosition().Lane()).GetDirectedParent()
		}
	}
	startRoad, ok := anchorRoads[start]
	if !ok {
		return results
	}

	g := pathfind.BuildGraphForVehicles(m, c)
	sp := algorithm.Dijkstra(g, startRoad, pathfind.EdgeCost(c, m.RoutingParams(), m))

	for b, road := range anchorRoads {
		if cost, ok := sp.Dist[road]; ok && cost <= timeLimit {
			results[b] = cost
		}
	}
	return results
}
