package datastructure

import "fmt"

type Index uint32

type LaneID Index
type RoadID Index
type IntersectionID Index
type BuildingID Index
type ZoneID Index

type Direction uint8

const (
	Fwd Direction = iota
	Back
)

func (d Direction) IsValid() bool {
	return d == Fwd || d == Back
}

func (d Direction) String() string {
	if d == Fwd {
		return "fwd"
	}
	return "back"
}

// DirectedRoadID is a road travelled in one direction. node of the road-level cost graph.
type DirectedRoadID struct {
	Road RoadID
	Dir  Direction
}

func NewDirectedRoadID(road RoadID, dir Direction) DirectedRoadID {
	return DirectedRoadID{Road: road, Dir: dir}
}

func (dr DirectedRoadID) String() string {
	return fmt.Sprintf("road#%d(%s)", dr.Road, dr.Dir)
}

// Position is a point along a lane, distAlong meters from the lane start.
type Position struct {
	lane      LaneID
	distAlong float64
}

func NewPosition(lane LaneID, distAlong float64) Position {
	return Position{lane: lane, distAlong: distAlong}
}

func (p Position) Lane() LaneID {
	return p.lane
}

func (p Position) DistAlong() float64 {
	return p.distAlong
}
