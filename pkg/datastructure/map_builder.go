package datastructure

import (
	"fmt"
	"math"
	"time"

	"github.com/lintang-b-s/osm-reachability/pkg"
	"github.com/lintang-b-s/osm-reachability/pkg/geo"
	"github.com/paulmach/orb"
	"go.uber.org/multierr"
)

// RoadSpec describes a road to add to a MapBuilder. zero Length is computed from Geometry.
type RoadSpec struct {
	OsmWayID     int64
	Name         string
	Highway      string
	SpeedLimit   float64 // m/s
	Geometry     orb.LineString
	Length       float64 // meter
	Src          IntersectionID
	Dst          IntersectionID
	BikesAllowed bool
}

// MapBuilder assembles a Map. reference errors are collected and reported together by Build.
type MapBuilder struct {
	name          string
	params        RoutingParams
	intersections []*Intersection
	roads         []*Road
	lanes         []*Lane
	turns         []*Turn
	turnIndex     map[TurnID]int
	buildings     []*Building
	zones         []*Zone
	err           error
}

func NewMapBuilder(name string) *MapBuilder {
	return &MapBuilder{
		name:      name,
		params:    DefaultRoutingParams(),
		turnIndex: make(map[TurnID]int),
	}
}

func (b *MapBuilder) SetRoutingParams(params RoutingParams) *MapBuilder {
	b.params = params.Clone()
	return b
}

func (b *MapBuilder) AddIntersection(osmID int64, point orb.Point) IntersectionID {
	id := IntersectionID(len(b.intersections))
	b.intersections = append(b.intersections, NewIntersection(id, osmID, point))
	return id
}

func (b *MapBuilder) AddRoad(spec RoadSpec) RoadID {
	id := RoadID(len(b.roads))
	if !b.hasIntersection(spec.Src) || !b.hasIntersection(spec.Dst) {
		b.err = multierr.Append(b.err, fmt.Errorf("road %d: %w: %d -> %d", id, ErrUnknownIntersection, spec.Src, spec.Dst))
	}

	geometry := spec.Geometry
	if len(geometry) < 2 && b.hasIntersection(spec.Src) && b.hasIntersection(spec.Dst) {
		geometry = orb.LineString{b.intersections[spec.Src].point, b.intersections[spec.Dst].point}
	}
	length := spec.Length
	if length == 0 {
		length = geo.LineStringLength(geometry)
	}
	if length < 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		b.err = multierr.Append(b.err, fmt.Errorf("road %d: %w: length %v", id, ErrInvalidRoad, length))
	}
	speed := spec.SpeedLimit
	if math.IsNaN(speed) || math.IsInf(speed, 0) {
		b.err = multierr.Append(b.err, fmt.Errorf("road %d: %w: speed limit %v", id, ErrInvalidRoad, speed))
	}
	if speed <= 0 {
		speed = pkg.DEFAULT_SPEED / 3.6
	}

	road := NewRoad(id, spec.OsmWayID, spec.Name, spec.Highway, speed, geometry, length, spec.Src, spec.Dst, spec.BikesAllowed)
	b.roads = append(b.roads, road)
	if b.hasIntersection(spec.Src) {
		b.intersections[spec.Src].roads = append(b.intersections[spec.Src].roads, id)
	}
	if b.hasIntersection(spec.Dst) && spec.Dst != spec.Src {
		b.intersections[spec.Dst].roads = append(b.intersections[spec.Dst].roads, id)
	}
	return id
}

// AddLane adds a lane of laneType to road, travelling in dir. the lane inherits the road geometry.
func (b *MapBuilder) AddLane(road RoadID, dir Direction, laneType LaneType) LaneID {
	id := LaneID(len(b.lanes))
	if !dir.IsValid() || !laneType.IsValid() {
		b.err = multierr.Append(b.err, fmt.Errorf("lane %d: %w: direction %d, type %d", id, ErrInvalidLane, dir, laneType))
		b.lanes = append(b.lanes, NewLane(id, road, Fwd, DRIVING, nil, 0))
		return id
	}
	if int(road) >= len(b.roads) {
		b.err = multierr.Append(b.err, fmt.Errorf("lane %d: %w: %d", id, ErrUnknownRoad, road))
		b.lanes = append(b.lanes, NewLane(id, road, dir, laneType, nil, 0))
		return id
	}

	r := b.roads[road]
	geometry := r.geometry
	if dir == Back {
		geometry = geo.Reverse(geometry)
	}
	b.lanes = append(b.lanes, NewLane(id, road, dir, laneType, geometry, r.length))
	r.addLane(id, dir)
	return id
}

// AddTurn permits travel from lane src to lane dst through parent. adding the same turn twice is a no-op.
func (b *MapBuilder) AddTurn(parent IntersectionID, src, dst LaneID, turnType pkg.TurnType) {
	id := TurnID{Parent: parent, Src: src, Dst: dst}
	if _, ok := b.turnIndex[id]; ok {
		return
	}
	if !b.hasIntersection(parent) {
		b.err = multierr.Append(b.err, fmt.Errorf("%s: %w", id, ErrUnknownIntersection))
		return
	}
	if int(src) >= len(b.lanes) || int(dst) >= len(b.lanes) {
		b.err = multierr.Append(b.err, fmt.Errorf("%s: %w", id, ErrUnknownLane))
		return
	}
	if !b.touches(b.lanes[src], parent) || !b.touches(b.lanes[dst], parent) {
		b.err = multierr.Append(b.err, fmt.Errorf("%s: %w", id, ErrDisjointTurn))
		return
	}
	b.turnIndex[id] = len(b.turns)
	b.turns = append(b.turns, NewTurn(id, turnType))
}

func (b *MapBuilder) AddBuilding(osmID int64, name string, center orb.Point, driving, biking *Anchor) BuildingID {
	id := BuildingID(len(b.buildings))
	for _, a := range []*Anchor{driving, biking} {
		if a != nil && int(a.pos.lane) >= len(b.lanes) {
			b.err = multierr.Append(b.err, fmt.Errorf("building %d anchor: %w: %d", id, ErrUnknownLane, a.pos.lane))
		}
	}
	b.buildings = append(b.buildings, NewBuilding(id, osmID, name, center, driving, biking))
	return id
}

// AddZone groups members into a zone that penalizes through traffic of the restricted modes.
func (b *MapBuilder) AddZone(members []RoadID, restricted []PathConstraints, penalty time.Duration) ZoneID {
	id := ZoneID(len(b.zones))
	if penalty < 0 {
		b.err = multierr.Append(b.err, fmt.Errorf("zone %d: %w: penalty %v is negative", id, ErrInvalidZone, penalty))
	}
	for _, c := range restricted {
		if !c.IsValid() {
			b.err = multierr.Append(b.err, fmt.Errorf("zone %d: %w: mode %d", id, ErrInvalidZone, c))
		}
	}
	var bound orb.Bound
	first := true
	for _, r := range members {
		if int(r) >= len(b.roads) {
			b.err = multierr.Append(b.err, fmt.Errorf("zone %d: %w: %d", id, ErrUnknownRoad, r))
			continue
		}
		if first {
			bound = b.roads[r].geometry.Bound()
			first = false
			continue
		}
		bound = bound.Union(b.roads[r].geometry.Bound())
	}
	b.zones = append(b.zones, NewZone(id, members, bound, restricted, penalty))
	return id
}

func (b *MapBuilder) NumberOfLanes() int {
	return len(b.lanes)
}

func (b *MapBuilder) NumberOfRoads() int {
	return len(b.roads)
}

func (b *MapBuilder) GetRoad(id RoadID) *Road {
	return b.roads[id]
}

func (b *MapBuilder) GetLane(id LaneID) *Lane {
	return b.lanes[id]
}

func (b *MapBuilder) GetIntersection(id IntersectionID) *Intersection {
	return b.intersections[id]
}

// Build validates the collected entities and freezes them into a Map.
func (b *MapBuilder) Build() (*Map, error) {
	err := b.err
	if perr := b.params.Validate(); perr != nil {
		err = multierr.Append(err, perr)
	}

	roadZone := make(map[RoadID]ZoneID)
	for _, z := range b.zones {
		for r := range z.members {
			if other, ok := roadZone[r]; ok {
				err = multierr.Append(err, fmt.Errorf("road %d in zones %d and %d: %w", r, other, z.id, ErrDuplicateZoneRoad))
				continue
			}
			roadZone[r] = z.id
		}
	}
	if err != nil {
		return nil, err
	}

	m := &Map{
		name:          b.name,
		intersections: b.intersections,
		roads:         b.roads,
		lanes:         b.lanes,
		turns:         b.turns,
		turnIndex:     b.turnIndex,
		buildings:     b.buildings,
		zones:         b.zones,
		roadZone:      roadZone,
		params:        b.params,
		movementIndex: make(map[MovementID]int),
	}

	for _, t := range b.turns {
		id := MovementID{
			From:   b.lanes[t.id.Src].GetDirectedParent(),
			To:     b.lanes[t.id.Dst].GetDirectedParent(),
			Parent: t.id.Parent,
		}
		if _, ok := m.movementIndex[id]; ok {
			continue
		}
		m.movementIndex[id] = len(m.movements)
		m.movements = append(m.movements, NewMovement(id, t.turnType))
	}

	for i, in := range b.intersections {
		if i == 0 {
			m.bound = in.point.Bound()
			continue
		}
		m.bound = m.bound.Extend(in.point)
	}
	return m, nil
}

func (b *MapBuilder) hasIntersection(id IntersectionID) bool {
	return int(id) < len(b.intersections)
}

// touches reports whether the road of lane l has i as an endpoint.
func (b *MapBuilder) touches(l *Lane, i IntersectionID) bool {
	if int(l.road) >= len(b.roads) {
		return false
	}
	r := b.roads[l.road]
	return r.src == i || r.dst == i
}
