package connectivity

import (
	"time"

	"github.com/lintang-b-s/osm-reachability/pkg/algorithm"
	"github.com/lintang-b-s/osm-reachability/pkg/datastructure"
	"github.com/lintang-b-s/osm-reachability/pkg/pathfind"
)

// Outcome is how DebugVehicleCosts resolved a request.
type Outcome uint8

const (
	// Found means a path exists and DebugResult carries its cost.
	Found Outcome = iota
	// UnsupportedMode means the mode is not a vehicle mode.
	UnsupportedMode
	// Unreachable means no path joins the request endpoints.
	Unreachable
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case UnsupportedMode:
		return "unsupported_mode"
	default:
		return "unreachable"
	}
}

// DebugResult explains one route choice. Cost is the realized cost of the chosen path and Frontier
// the cheapest known cost of every road reachable from the start road. comparing Frontier at a
// competing road with Cost tells why that road was or wasn't taken.
type DebugResult struct {
	Outcome  Outcome
	Cost     time.Duration
	Frontier map[datastructure.DirectedRoadID]time.Duration
	Path     *pathfind.Path
}

// Ok collapses UnsupportedMode and Unreachable into a single negative answer.
func (r DebugResult) Ok() bool {
	return r.Outcome == Found
}

// FrontierCost returns the frontier cost of road.
func (r DebugResult) FrontierCost(road datastructure.DirectedRoadID) (time.Duration, bool) {
	cost, ok := r.Frontier[road]
	return cost, ok
}

// DebugVehicleCosts routes req and computes the cost frontier from the same start road. pedestrian
// requests are UnsupportedMode.
func DebugVehicleCosts(req pathfind.PathRequest, m *datastructure.Map) DebugResult {
	c := req.Constraints
	if !c.IsVehicle() {
		return DebugResult{Outcome: UnsupportedMode}
	}

	path, ok := pathfind.Pathfind(req, m.RoutingParams(), m)
	if !ok {
		return DebugResult{Outcome: Unreachable}
	}

	g := pathfind.BuildGraphForVehicles(m, c)
	start := m.GetLane(req.Start.Lane()).GetDirectedParent()
	sp := algorithm.Dijkstra(g, start, pathfind.EdgeCost(c, m.RoutingParams(), m))

	return DebugResult{
		Outcome:  Found,
		Cost:     path.Cost(),
		Frontier: sp.Dist,
		Path:     path,
	}
}
