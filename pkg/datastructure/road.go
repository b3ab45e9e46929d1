package datastructure

import "github.com/paulmach/orb"

// high stress roads for bikes when there is no separated bike lane.
var highStressHighway = map[string]struct{}{
	"trunk":          {},
	"trunk_link":     {},
	"primary":        {},
	"primary_link":   {},
	"secondary":      {},
	"secondary_link": {},
}

type Road struct {
	id           RoadID
	osmWayID     int64
	name         string
	highway      string
	speedLimit   float64 // m/s
	length       float64 // meter
	geometry     orb.LineString
	src          IntersectionID
	dst          IntersectionID
	lanesFwd     []LaneID
	lanesBack    []LaneID
	bikesAllowed bool
}

func NewRoad(id RoadID, osmWayID int64, name, highway string, speedLimit float64, geometry orb.LineString,
	length float64, src, dst IntersectionID, bikesAllowed bool) *Road {
	return &Road{
		id:           id,
		osmWayID:     osmWayID,
		name:         name,
		highway:      highway,
		speedLimit:   speedLimit,
		geometry:     geometry,
		length:       length,
		src:          src,
		dst:          dst,
		bikesAllowed: bikesAllowed,
	}
}

func (r *Road) GetID() RoadID {
	return r.id
}

func (r *Road) GetOsmWayID() int64 {
	return r.osmWayID
}

func (r *Road) GetName() string {
	return r.name
}

func (r *Road) GetHighway() string {
	return r.highway
}

func (r *Road) GetSpeedLimit() float64 {
	return r.speedLimit
}

func (r *Road) GetLength() float64 {
	return r.length
}

func (r *Road) GetGeometry() orb.LineString {
	return r.geometry
}

func (r *Road) GetSrc() IntersectionID {
	return r.src
}

func (r *Road) GetDst() IntersectionID {
	return r.dst
}

func (r *Road) BikesAllowed() bool {
	return r.bikesAllowed
}

// GetLanes returns the lanes travelling in dir.
func (r *Road) GetLanes(dir Direction) []LaneID {
	if dir == Fwd {
		return r.lanesFwd
	}
	return r.lanesBack
}

func (r *Road) AllLanes() []LaneID {
	lanes := make([]LaneID, 0, len(r.lanesFwd)+len(r.lanesBack))
	lanes = append(lanes, r.lanesFwd...)
	return append(lanes, r.lanesBack...)
}

// EndpointsOf returns the (start, end) intersection of the road travelled in dir.
func (r *Road) EndpointsOf(dir Direction) (IntersectionID, IntersectionID) {
	if dir == Fwd {
		return r.src, r.dst
	}
	return r.dst, r.src
}

func (r *Road) IsHighStress() bool {
	_, ok := highStressHighway[r.highway]
	return ok
}

func (r *Road) addLane(id LaneID, dir Direction) {
	if dir == Fwd {
		r.lanesFwd = append(r.lanesFwd, id)
	} else {
		r.lanesBack = append(r.lanesBack, id)
	}
}

type Intersection struct {
	id    IntersectionID
	point orb.Point // lon, lat
	osmID int64
	roads []RoadID
}

func NewIntersection(id IntersectionID, osmID int64, point orb.Point) *Intersection {
	return &Intersection{id: id, osmID: osmID, point: point}
}

func (i *Intersection) GetID() IntersectionID {
	return i.id
}

func (i *Intersection) GetOsmID() int64 {
	return i.osmID
}

func (i *Intersection) GetPoint() orb.Point {
	return i.point
}

func (i *Intersection) GetRoads() []RoadID {
	return i.roads
}

func (i *Intersection) IsDeadEnd() bool {
	return len(i.roads) == 1
}
