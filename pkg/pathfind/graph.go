package pathfind

import (
	"github.com/lintang-b-s/osm-reachability/pkg/datastructure"
)

// BuildGraphForVehicles returns the road-level graph of mode c. nodes are the directed roads with at
// least one lane c can use, edges the movements with at least one turn between two such lanes.
// roads and turns are visited in id order, so the same map always yields the same graph.
func BuildGraphForVehicles(m *datastructure.Map,
	c datastructure.PathConstraints) *datastructure.DiGraphMap[datastructure.DirectedRoadID, datastructure.Movement] {
	g := datastructure.NewDiGraphMap[datastructure.DirectedRoadID, datastructure.Movement]()

	for _, r := range m.AllRoads() {
		for _, dir := range []datastructure.Direction{datastructure.Fwd, datastructure.Back} {
			for _, l := range r.GetLanes(dir) {
				if c.CanUse(m.GetLane(l), m) {
					g.AddNode(datastructure.NewDirectedRoadID(r.GetID(), dir))
					break
				}
			}
		}
	}

	for _, t := range m.AllTurns() {
		id := t.GetID()
		if !c.CanUse(m.GetLane(id.Src), m) || !c.CanUse(m.GetLane(id.Dst), m) {
			continue
		}
		mvmnt := m.MovementOf(id)
		if g.ContainsEdge(mvmnt.ID.From, mvmnt.ID.To) {
			continue
		}
		g.AddEdge(mvmnt.ID.From, mvmnt.ID.To, mvmnt)
	}
	return g
}

// BuildLaneGraph returns the lane-level graph of mode c: one edge per turn between two lanes c can
// use. lanes without such a turn are absent.
func BuildLaneGraph(m *datastructure.Map,
	c datastructure.PathConstraints) *datastructure.DiGraphMap[datastructure.LaneID, datastructure.TurnID] {
	g := datastructure.NewDiGraphMap[datastructure.LaneID, datastructure.TurnID]()
	for _, t := range m.AllTurns() {
		id := t.GetID()
		if c.CanUse(m.GetLane(id.Src), m) && c.CanUse(m.GetLane(id.Dst), m) {
			g.AddEdge(id.Src, id.Dst, id)
		}
	}
	return g
}
