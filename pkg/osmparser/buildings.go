package osmparser

import (
	"fmt"

	"github.com/lintang-b-s/osm-reachability/pkg/datastructure"
	"github.com/lintang-b-s/osm-reachability/pkg/geo"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"go.uber.org/multierr"
)

// buildBuildings adds every building at the centroid of its outline, anchored to the nearest lane
// each mode can use within MaxAnchorDistance.
func (p *OsmParser) buildBuildings() {
	idx := geo.NewLineIndex()
	for id := 0; id < p.builder.NumberOfLanes(); id++ {
		idx.Insert(id, p.builder.GetLane(datastructure.LaneID(id)).GetGeometry())
	}

	for _, bw := range p.buildings {
		ring := make(orb.Ring, 0, len(bw.nodes))
		for _, n := range bw.nodes {
			if coord, ok := p.acceptedNodeMap[n]; ok {
				ring = append(ring, coord)
			}
		}
		if len(ring) < 4 {
			p.warnings = multierr.Append(p.warnings, fmt.Errorf("building %d: outline has %d known nodes", bw.id, len(ring)))
			continue
		}
		center, _ := planar.CentroidArea(orb.Polygon{ring})

		driving := p.anchor(idx, center, func(l *datastructure.Lane) bool {
			return l.IsDriving()
		})
		biking := p.anchor(idx, center, func(l *datastructure.Lane) bool {
			return l.IsBiking() || (l.IsDriving() && p.builder.GetRoad(l.GetRoad()).BikesAllowed())
		})
		p.builder.AddBuilding(bw.id, bw.name, center, driving, biking)
	}
}

func (p *OsmParser) anchor(idx *geo.LineIndex, center orb.Point, accept func(l *datastructure.Lane) bool) *datastructure.Anchor {
	id, distAlong, dist, ok := idx.Nearest(center, p.opts.MaxAnchorDistance, func(id int) bool {
		return accept(p.builder.GetLane(datastructure.LaneID(id)))
	})
	if !ok {
		return nil
	}
	return datastructure.NewAnchor(datastructure.NewPosition(datastructure.LaneID(id), distAlong), dist)
}

// buildZones groups connected roads with private or destination access into zones. through traffic
// of cars and buses pays the zone penalty, bikes too when any road of the zone is private.
func (p *OsmParser) buildZones() {
	byIntersection := make(map[datastructure.IntersectionID][]datastructure.RoadID)
	for id, info := range p.roads {
		if info.access == publicAccess {
			continue
		}
		r := p.builder.GetRoad(datastructure.RoadID(id))
		byIntersection[r.GetSrc()] = append(byIntersection[r.GetSrc()], r.GetID())
		byIntersection[r.GetDst()] = append(byIntersection[r.GetDst()], r.GetID())
	}

	visited := make(map[datastructure.RoadID]bool)
	for id, info := range p.roads {
		start := datastructure.RoadID(id)
		if info.access == publicAccess || visited[start] {
			continue
		}

		members := make([]datastructure.RoadID, 0)
		private := false
		stack := []datastructure.RoadID{start}
		visited[start] = true
		for len(stack) > 0 {
			r := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			members = append(members, r)
			private = private || p.roads[r].access == privateAccess

			road := p.builder.GetRoad(r)
			for _, in := range []datastructure.IntersectionID{road.GetSrc(), road.GetDst()} {
				for _, next := range byIntersection[in] {
					if !visited[next] {
						visited[next] = true
						stack = append(stack, next)
					}
				}
			}
		}

		restricted := []datastructure.PathConstraints{datastructure.CAR, datastructure.BUS}
		if private {
			restricted = append(restricted, datastructure.BIKE)
		}
		p.builder.AddZone(members, restricted, p.opts.ZonePenalty)
	}
}
