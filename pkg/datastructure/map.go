package datastructure

import (
	"errors"

	"github.com/paulmach/orb"
)

var (
	ErrUnknownLane         = errors.New("unknown lane")
	ErrUnknownRoad         = errors.New("unknown road")
	ErrUnknownIntersection = errors.New("unknown intersection")
	ErrDuplicateZoneRoad   = errors.New("road belongs to more than one zone")
	ErrDisjointTurn        = errors.New("turn lanes do not meet at the turn intersection")
	ErrInvalidRoad         = errors.New("invalid road")
	ErrInvalidLane         = errors.New("invalid lane")
	ErrInvalidZone         = errors.New("invalid zone")
)

// Map is an immutable snapshot of the transportation network. it is safe for concurrent readers.
type Map struct {
	name          string
	intersections []*Intersection
	roads         []*Road
	lanes         []*Lane
	turns         []*Turn
	turnIndex     map[TurnID]int
	movements     []Movement // ordered by first turn
	movementIndex map[MovementID]int
	buildings     []*Building
	zones         []*Zone
	roadZone      map[RoadID]ZoneID
	params        RoutingParams
	bound         orb.Bound
}

func (m *Map) GetName() string {
	return m.name
}

func (m *Map) GetBound() orb.Bound {
	return m.bound
}

// RoutingParams returns a copy of the routing params the map was built with.
func (m *Map) RoutingParams() RoutingParams {
	return m.params.Clone()
}

func (m *Map) AllIntersections() []*Intersection {
	return m.intersections
}

func (m *Map) AllRoads() []*Road {
	return m.roads
}

func (m *Map) AllLanes() []*Lane {
	return m.lanes
}

func (m *Map) AllTurns() []*Turn {
	return m.turns
}

func (m *Map) AllMovements() []Movement {
	return m.movements
}

func (m *Map) AllBuildings() []*Building {
	return m.buildings
}

func (m *Map) AllZones() []*Zone {
	return m.zones
}

func (m *Map) NumberOfLanes() int {
	return len(m.lanes)
}

// GetLane panics on an unknown id, ids come from the same snapshot.
func (m *Map) GetLane(id LaneID) *Lane {
	return m.lanes[id]
}

func (m *Map) GetRoad(id RoadID) *Road {
	return m.roads[id]
}

func (m *Map) GetIntersection(id IntersectionID) *Intersection {
	return m.intersections[id]
}

func (m *Map) GetBuilding(id BuildingID) *Building {
	return m.buildings[id]
}

func (m *Map) GetZone(id ZoneID) *Zone {
	return m.zones[id]
}

func (m *Map) HasLane(id LaneID) bool {
	return int(id) < len(m.lanes)
}

func (m *Map) HasBuilding(id BuildingID) bool {
	return int(id) < len(m.buildings)
}

func (m *Map) GetTurn(id TurnID) (*Turn, bool) {
	idx, ok := m.turnIndex[id]
	if !ok {
		return nil, false
	}
	return m.turns[idx], true
}

func (m *Map) GetMovement(id MovementID) (Movement, bool) {
	idx, ok := m.movementIndex[id]
	if !ok {
		return Movement{}, false
	}
	return m.movements[idx], true
}

// MovementOf returns the road-level movement a lane-level turn belongs to.
func (m *Map) MovementOf(t TurnID) Movement {
	id := MovementID{
		From:   m.GetLane(t.Src).GetDirectedParent(),
		To:     m.GetLane(t.Dst).GetDirectedParent(),
		Parent: t.Parent,
	}
	return m.movements[m.movementIndex[id]]
}

// ZoneOf returns the zone containing road r.
func (m *Map) ZoneOf(r RoadID) (*Zone, bool) {
	id, ok := m.roadZone[r]
	if !ok {
		return nil, false
	}
	return m.zones[id], true
}

// HasLaneType reports whether the directed road has a lane of type lt.
func (m *Map) HasLaneType(dr DirectedRoadID, lt LaneType) bool {
	for _, l := range m.GetRoad(dr.Road).GetLanes(dr.Dir) {
		if m.lanes[l].GetLaneType() == lt {
			return true
		}
	}
	return false
}

func (m *Map) ForEachLane(handle func(l *Lane)) {
	for _, l := range m.lanes {
		handle(l)
	}
}
