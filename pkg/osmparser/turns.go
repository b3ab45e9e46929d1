package osmparser

import (
	"github.com/lintang-b-s/osm-reachability/pkg"
	"github.com/lintang-b-s/osm-reachability/pkg/datastructure"
	"github.com/lintang-b-s/osm-reachability/pkg/geo"
)

// vehicleCompatible reports whether a vehicle turn may join a lane of type a to a lane of type b.
func vehicleCompatible(a, b datastructure.LaneType) bool {
	switch {
	case a == b:
		return a == datastructure.DRIVING || a == datastructure.BUS_LANE || a == datastructure.BIKING ||
			a == datastructure.LIGHT_RAIL
	case a == datastructure.DRIVING:
		return b == datastructure.BUS_LANE || b == datastructure.BIKING
	case b == datastructure.DRIVING:
		return a == datastructure.BUS_LANE || a == datastructure.BIKING
	default:
		return false
	}
}

// buildTurns connects the lanes meeting at every intersection. vehicle lanes turn from the lanes ending
// there to the lanes starting there, U-turns onto the same road only at dead ends. sidewalks connect in
// both directions.
func (p *OsmParser) buildTurns() {
	n := len(p.intersections)
	incoming := make([][]datastructure.LaneID, n)
	outgoing := make([][]datastructure.LaneID, n)
	walkable := make([][]datastructure.LaneID, n)
	for id := 0; id < p.builder.NumberOfLanes(); id++ {
		l := p.builder.GetLane(datastructure.LaneID(id))
		start, end := p.builder.GetRoad(l.GetRoad()).EndpointsOf(l.GetDir())
		if l.IsWalkable() {
			walkable[start] = append(walkable[start], l.GetID())
			walkable[end] = append(walkable[end], l.GetID())
			continue
		}
		outgoing[start] = append(outgoing[start], l.GetID())
		incoming[end] = append(incoming[end], l.GetID())
	}

	for i := 0; i < n; i++ {
		in := datastructure.IntersectionID(i)
		deadEnd := p.builder.GetIntersection(in).IsDeadEnd()

		for _, srcID := range incoming[i] {
			src := p.builder.GetLane(srcID)
			for _, dstID := range outgoing[i] {
				dst := p.builder.GetLane(dstID)
				if !vehicleCompatible(src.GetLaneType(), dst.GetLaneType()) {
					continue
				}
				sameRoad := src.GetRoad() == dst.GetRoad()
				if sameRoad && !deadEnd {
					continue
				}
				if p.restricted(in, src.GetRoad(), dst.GetRoad()) {
					continue
				}

				turnType := pkg.U_TURN
				if !sameRoad {
					turnType = classify(src, dst)
				}
				p.builder.AddTurn(in, srcID, dstID, turnType)
			}
		}

		for _, a := range walkable[i] {
			for _, b := range walkable[i] {
				if a == b {
					continue
				}
				turnType := pkg.SHARED_SIDEWALK_CORNER
				if p.builder.GetLane(a).GetRoad() == p.builder.GetLane(b).GetRoad() {
					turnType = pkg.CROSSWALK
				}
				p.builder.AddTurn(in, a, b, turnType)
			}
		}
	}
}

func classify(src, dst *datastructure.Lane) pkg.TurnType {
	if len(src.GetGeometry()) < 2 || len(dst.GetGeometry()) < 2 {
		return pkg.STRAIGHT_ON
	}
	return geo.ClassifyTurn(geo.ExitBearing(src.GetGeometry()), geo.EntryBearing(dst.GetGeometry()))
}

// restricted applies the turn restriction relations at intersection in: a no_* relation bans its own
// turn, an only_* relation bans every other turn out of its from way.
func (p *OsmParser) restricted(in datastructure.IntersectionID, from, to datastructure.RoadID) bool {
	via := p.builder.GetIntersection(in).GetOsmID()
	fromWay, toWay := p.roads[from].wayID, p.roads[to].wayID
	for _, r := range p.restrictions[via] {
		if r.from != fromWay {
			continue
		}
		if r.turnRestriction.isBan() && r.to == toWay {
			return true
		}
		if r.turnRestriction.isOnly() && r.to != toWay {
			return true
		}
	}
	return false
}
