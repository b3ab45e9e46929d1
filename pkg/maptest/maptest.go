// Package maptest builds small synthetic maps for tests.
package maptest

import (
	"time"

	"github.com/lintang-b-s/osm-reachability/pkg"
	"github.com/lintang-b-s/osm-reachability/pkg/datastructure"
	"github.com/paulmach/orb"
	"golang.org/x/exp/rand"
)

// Corridor is a chain of one-way roads I0 -> I1 -> ... -> In joined by straight turns.
type Corridor struct {
	Builder       *datastructure.MapBuilder
	Intersections []datastructure.IntersectionID
	Roads         []datastructure.RoadID
	Lanes         [][]datastructure.LaneID // road index -> forward lanes, one per lane type
}

// NewCorridor adds one road per length, every road carrying one forward lane of each of laneTypes.
// lanes of the same type on consecutive roads are joined by a STRAIGHT_ON turn.
func NewCorridor(lengths []float64, speed float64, laneTypes ...datastructure.LaneType) *Corridor {
	c := &Corridor{Builder: datastructure.NewMapBuilder("corridor")}
	b := c.Builder

	// ~111 m per 0.001 degree on the equator
	lon := 0.0
	c.Intersections = append(c.Intersections, b.AddIntersection(0, orb.Point{lon, 0}))
	for i, length := range lengths {
		lon += length / 111_320.0
		c.Intersections = append(c.Intersections, b.AddIntersection(int64(i+1), orb.Point{lon, 0}))
		r := b.AddRoad(datastructure.RoadSpec{
			OsmWayID:     int64(i + 1),
			Highway:      "residential",
			SpeedLimit:   speed,
			Length:       length,
			Src:          c.Intersections[i],
			Dst:          c.Intersections[i+1],
			BikesAllowed: true,
		})
		c.Roads = append(c.Roads, r)

		lanes := make([]datastructure.LaneID, 0, len(laneTypes))
		for _, lt := range laneTypes {
			lanes = append(lanes, b.AddLane(r, datastructure.Fwd, lt))
		}
		c.Lanes = append(c.Lanes, lanes)

		if i == 0 {
			continue
		}
		for k := range laneTypes {
			b.AddTurn(c.Intersections[i], c.Lanes[i-1][k], lanes[k], pkg.STRAIGHT_ON)
		}
	}
	return c
}

// Lane returns the lane of the k-th lane type on road i.
func (c *Corridor) Lane(i, k int) datastructure.LaneID {
	return c.Lanes[i][k]
}

// ThreeRoads is the R1 -> R2 -> R3 driving corridor where leaving R1 costs 30s and leaving R2 costs 40s.
// B1 is anchored on R1 and B2 on R3.
func ThreeRoads() (*datastructure.MapBuilder, *Corridor) {
	c := NewCorridor([]float64{300, 400, 500}, 10, datastructure.DRIVING)
	b := c.Builder
	b.AddBuilding(1, "B1", orb.Point{0, 0.0001},
		datastructure.NewAnchor(datastructure.NewPosition(c.Lane(0, 0), 100), 10), nil)
	b.AddBuilding(2, "B2", orb.Point{0.01, 0.0001},
		datastructure.NewAnchor(datastructure.NewPosition(c.Lane(2, 0), 250), 10), nil)
	return b, c
}

type RandomOptions struct {
	Intersections int
	Roads         int
	TurnProb      float64
	Buildings     int
	WithZone      bool
}

var randomLaneTypes = []datastructure.LaneType{
	datastructure.DRIVING,
	datastructure.BIKING,
	datastructure.BUS_LANE,
	datastructure.SIDEWALK,
	datastructure.LIGHT_RAIL,
}

var randomTurnTypes = []pkg.TurnType{pkg.STRAIGHT_ON, pkg.LEFT_TURN, pkg.RIGHT_TURN, pkg.U_TURN}

// Random builds a random map. turns are only added between lanes of the same type, each with
// probability opts.TurnProb.
func Random(rd *rand.Rand, opts RandomOptions) *datastructure.MapBuilder {
	b := datastructure.NewMapBuilder("random")
	n := opts.Intersections
	if n < 2 {
		n = 2
	}
	for i := 0; i < n; i++ {
		b.AddIntersection(int64(i), orb.Point{rd.Float64() * 0.05, rd.Float64() * 0.05})
	}

	highways := []string{"residential", "primary", "secondary", "tertiary"}
	roads := make([]datastructure.RoadID, 0, opts.Roads)
	for i := 0; i < opts.Roads; i++ {
		src := datastructure.IntersectionID(rd.Intn(n))
		dst := datastructure.IntersectionID(rd.Intn(n - 1))
		if dst >= src {
			dst++
		}
		r := b.AddRoad(datastructure.RoadSpec{
			OsmWayID:     int64(i),
			Highway:      highways[rd.Intn(len(highways))],
			SpeedLimit:   float64(5 + rd.Intn(25)),
			Length:       float64(20 + rd.Intn(500)),
			Src:          src,
			Dst:          dst,
			BikesAllowed: rd.Intn(2) == 0,
		})
		roads = append(roads, r)
		for _, dir := range []datastructure.Direction{datastructure.Fwd, datastructure.Back} {
			if dir == datastructure.Back && rd.Intn(2) == 0 {
				continue
			}
			lanes := 1 + rd.Intn(2)
			for k := 0; k < lanes; k++ {
				b.AddLane(r, dir, randomLaneTypes[rd.Intn(len(randomLaneTypes))])
			}
		}
	}

	// lanes entering and leaving every intersection
	incoming := make([][]datastructure.LaneID, n)
	outgoing := make([][]datastructure.LaneID, n)
	for id := 0; id < b.NumberOfLanes(); id++ {
		l := b.GetLane(datastructure.LaneID(id))
		start, end := b.GetRoad(l.GetRoad()).EndpointsOf(l.GetDir())
		outgoing[start] = append(outgoing[start], l.GetID())
		incoming[end] = append(incoming[end], l.GetID())
	}
	for i := 0; i < n; i++ {
		for _, src := range incoming[i] {
			for _, dst := range outgoing[i] {
				if b.GetLane(src).GetLaneType() != b.GetLane(dst).GetLaneType() {
					continue
				}
				if rd.Float64() >= opts.TurnProb {
					continue
				}
				b.AddTurn(datastructure.IntersectionID(i), src, dst, randomTurnTypes[rd.Intn(len(randomTurnTypes))])
			}
		}
	}

	for i := 0; i < opts.Buildings && b.NumberOfLanes() > 0; i++ {
		var driving, biking *datastructure.Anchor
		for try := 0; try < 4; try++ {
			l := b.GetLane(datastructure.LaneID(rd.Intn(b.NumberOfLanes())))
			pos := datastructure.NewPosition(l.GetID(), rd.Float64()*l.GetLength())
			switch {
			case l.IsDriving() && driving == nil:
				driving = datastructure.NewAnchor(pos, rd.Float64()*50)
			case l.IsBiking() && biking == nil:
				biking = datastructure.NewAnchor(pos, rd.Float64()*50)
			}
		}
		b.AddBuilding(int64(i), "", orb.Point{rd.Float64() * 0.05, rd.Float64() * 0.05}, driving, biking)
	}

	if opts.WithZone && len(roads) > 0 {
		members := make([]datastructure.RoadID, 0)
		for _, r := range roads {
			if rd.Intn(4) == 0 {
				members = append(members, r)
			}
		}
		if len(members) > 0 {
			b.AddZone(members, []datastructure.PathConstraints{datastructure.CAR}, time.Duration(1+rd.Intn(600))*time.Second)
		}
	}
	return b
}
