// Package pathfind turns a Map into road-level and lane-level graphs for one travel mode and
// prices traversals over them.
package pathfind

import (
	"time"

	"github.com/lintang-b-s/osm-reachability/pkg/algorithm"
	"github.com/lintang-b-s/osm-reachability/pkg/datastructure"
)

// travelSpeed returns the speed in m/s a mode drives along road r.
func travelSpeed(r *datastructure.Road, profile datastructure.CostProfile) float64 {
	speed := r.GetSpeedLimit()
	if profile.MaxSpeed > 0 && profile.MaxSpeed < speed {
		speed = profile.MaxSpeed
	}
	return speed
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// VehicleCost prices leaving directed road from through mvmnt: the time to drive from end to end,
// scaled on high stress roads for modes that avoid them, plus the turn penalty and the avoided road
// penalty of the destination.
func VehicleCost(from datastructure.DirectedRoadID, mvmnt datastructure.Movement, c datastructure.PathConstraints,
	params datastructure.RoutingParams, m *datastructure.Map) time.Duration {
	road := m.GetRoad(from.Road)
	profile := c.Profile()

	seconds := road.GetLength() / travelSpeed(road, profile)
	if profile.AvoidHighStress && road.IsHighStress() && !m.HasLaneType(from, datastructure.BIKING) {
		seconds *= params.AvoidHighStress
	}

	cost := secondsToDuration(seconds)
	cost += params.TurnPenalty(mvmnt.TurnType)
	if params.Avoids(mvmnt.ID.To.Road) {
		cost += params.AvoidRoadPenalty
	}
	return cost
}

// ZoneCost charges the zone penalty when mvmnt enters, from outside, a zone that restricts through
// traffic of mode c.
func ZoneCost(mvmnt datastructure.Movement, c datastructure.PathConstraints, m *datastructure.Map) time.Duration {
	z, ok := m.ZoneOf(mvmnt.ID.To.Road)
	if !ok || !z.Restricts(c) || z.Contains(mvmnt.ID.From.Road) {
		return 0
	}
	return z.GetPenalty()
}

// EdgeCost is the cost closure of the road-level graph of mode c.
func EdgeCost(c datastructure.PathConstraints, params datastructure.RoutingParams,
	m *datastructure.Map) algorithm.CostFunc[datastructure.DirectedRoadID, datastructure.Movement] {
	return func(_, _ datastructure.DirectedRoadID, mvmnt datastructure.Movement) time.Duration {
		return VehicleCost(mvmnt.ID.From, mvmnt, c, params, m) + ZoneCost(mvmnt, c, m)
	}
}
