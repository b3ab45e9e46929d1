package pathfind

import (
	"time"

	"github.com/lintang-b-s/osm-reachability/pkg/algorithm"
	"github.com/lintang-b-s/osm-reachability/pkg/datastructure"
)

type PathRequest struct {
	Start       datastructure.Position
	End         datastructure.Position
	Constraints datastructure.PathConstraints
}

// Path is one concrete route found for a PathRequest.
type Path struct {
	req       PathRequest
	cost      time.Duration
	movements []datastructure.Movement
	roads     []datastructure.DirectedRoadID
}

func (p *Path) Request() PathRequest {
	return p.req
}

// Cost is the realized cost: every road left along the way plus the part of the end lane driven
// before reaching End. like the road-level costs it is measured from the beginning of the start road.
func (p *Path) Cost() time.Duration {
	return p.cost
}

func (p *Path) Movements() []datastructure.Movement {
	return p.movements
}

// Roads lists the directed roads visited, start road first.
func (p *Path) Roads() []datastructure.DirectedRoadID {
	return p.roads
}

// Pathfind finds the cheapest road-level route for req. false when either endpoint lane is unknown or
// unusable by the requested mode, or when the end road cannot be reached.
func Pathfind(req PathRequest, params datastructure.RoutingParams, m *datastructure.Map) (*Path, bool) {
	c := req.Constraints
	if !m.HasLane(req.Start.Lane()) || !m.HasLane(req.End.Lane()) {
		return nil, false
	}
	startLane, endLane := m.GetLane(req.Start.Lane()), m.GetLane(req.End.Lane())
	if !c.CanUse(startLane, m) || !c.CanUse(endLane, m) {
		return nil, false
	}
	from, to := startLane.GetDirectedParent(), endLane.GetDirectedParent()
	if from == to && req.Start.DistAlong() > req.End.DistAlong() {
		// behind us on the same road, the route has to leave and come back
		return pathfindLoop(req, params, m)
	}

	g := BuildGraphForVehicles(m, c)
	sp := algorithm.Dijkstra(g, from, EdgeCost(c, params, m),
		algorithm.WithGoal(to), algorithm.WithReturnPath[datastructure.DirectedRoadID]())
	roadCost, ok := sp.Dist[to]
	if !ok {
		return nil, false
	}
	movements, _ := sp.PathTo(to)

	return newPath(req, roadCost+partialCost(req.End.DistAlong(), m.GetRoad(to.Road), c), from, movements), true
}

// pathfindLoop routes back onto the start road through its cheapest movement out.
func pathfindLoop(req PathRequest, params datastructure.RoutingParams, m *datastructure.Map) (*Path, bool) {
	c := req.Constraints
	from := m.GetLane(req.Start.Lane()).GetDirectedParent()
	g := BuildGraphForVehicles(m, c)
	cost := EdgeCost(c, params, m)

	sp := algorithm.Dijkstra(g, from, cost, algorithm.WithReturnPath[datastructure.DirectedRoadID]())
	var (
		best     time.Duration
		bestPath []datastructure.Movement
		found    bool
	)
	// cheapest way of re-entering from
	g.ForEdges(func(u, v datastructure.DirectedRoadID, mvmnt datastructure.Movement) {
		if v != from {
			return
		}
		du, ok := sp.Dist[u]
		if !ok {
			return
		}
		total := du + cost(u, v, mvmnt)
		if found && total >= best {
			return
		}
		prefix, _ := sp.PathTo(u)
		best, found = total, true
		bestPath = append(append([]datastructure.Movement{}, prefix...), mvmnt)
	})
	if !found {
		return nil, false
	}
	return newPath(req, best+partialCost(req.End.DistAlong(), m.GetRoad(from.Road), c), from, bestPath), true
}

func newPath(req PathRequest, cost time.Duration, start datastructure.DirectedRoadID,
	movements []datastructure.Movement) *Path {
	roads := make([]datastructure.DirectedRoadID, 0, len(movements)+1)
	roads = append(roads, start)
	for _, mv := range movements {
		roads = append(roads, mv.ID.To)
	}
	return &Path{req: req, cost: cost, movements: movements, roads: roads}
}

// partialCost is the time to drive dist meters along road r.
func partialCost(dist float64, r *datastructure.Road, c datastructure.PathConstraints) time.Duration {
	if dist <= 0 {
		return 0
	}
	return secondsToDuration(dist / travelSpeed(r, c.Profile()))
}
