package datastructure

import "github.com/paulmach/orb"

type LaneType uint8

const (
	DRIVING LaneType = iota
	BIKING
	BUS_LANE
	PARKING
	SIDEWALK
	SHOULDER
	LIGHT_RAIL
	CONSTRUCTION
)

func (lt LaneType) IsValid() bool {
	return lt <= CONSTRUCTION
}

func (lt LaneType) String() string {
	return [...]string{"driving", "biking", "bus", "parking", "sidewalk", "shoulder", "light_rail", "construction"}[lt]
}

func (lt LaneType) IsWalkable() bool {
	return lt == SIDEWALK || lt == SHOULDER
}

// Lane is the smallest travel unit of a road. it belongs to exactly one directed road.
type Lane struct {
	id       LaneID
	road     RoadID
	dir      Direction
	laneType LaneType
	geometry orb.LineString
	length   float64 // meter
}

func NewLane(id LaneID, road RoadID, dir Direction, laneType LaneType, geometry orb.LineString, length float64) *Lane {
	return &Lane{
		id:       id,
		road:     road,
		dir:      dir,
		laneType: laneType,
		geometry: geometry,
		length:   length,
	}
}

func (l *Lane) GetID() LaneID {
	return l.id
}

func (l *Lane) GetRoad() RoadID {
	return l.road
}

func (l *Lane) GetDir() Direction {
	return l.dir
}

func (l *Lane) GetLaneType() LaneType {
	return l.laneType
}

func (l *Lane) GetGeometry() orb.LineString {
	return l.geometry
}

func (l *Lane) GetLength() float64 {
	return l.length
}

func (l *Lane) GetDirectedParent() DirectedRoadID {
	return NewDirectedRoadID(l.road, l.dir)
}

func (l *Lane) IsDriving() bool {
	return l.laneType == DRIVING
}

func (l *Lane) IsBiking() bool {
	return l.laneType == BIKING
}

func (l *Lane) IsBus() bool {
	return l.laneType == BUS_LANE
}

func (l *Lane) IsWalkable() bool {
	return l.laneType.IsWalkable()
}
