package geo

import (
	"math"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

func toS2(p orb.Point) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat(), p.Lon()))
}

func fromS2(p s2.Point) orb.Point {
	ll := s2.LatLngFromPoint(p)
	return orb.Point{ll.Lng.Degrees(), ll.Lat.Degrees()}
}

// ProjectPointToLineCoord projects snap onto the segment (a, b).
func ProjectPointToLineCoord(a, b, snap orb.Point) orb.Point {
	return fromS2(s2.Project(toS2(snap), toS2(a), toS2(b)))
}

// PointLinePerpendicularDistance returns the distance in meter between snap and its projection on (a, b).
func PointLinePerpendicularDistance(a, b, snap orb.Point) float64 {
	return PointDistance(snap, ProjectPointToLineCoord(a, b, snap))
}

// ProjectToLineString finds the closest point of ls to p. returns the distance along ls of that point
// and its distance to p, both in meter.
func ProjectToLineString(p orb.Point, ls orb.LineString) (distAlong float64, dist float64) {
	dist = math.MaxFloat64
	if len(ls) == 1 {
		return 0, PointDistance(p, ls[0])
	}

	walked := 0.0
	for i := 0; i < len(ls)-1; i++ {
		proj := ProjectPointToLineCoord(ls[i], ls[i+1], p)
		d := PointDistance(p, proj)
		if d < dist {
			dist = d
			distAlong = walked + PointDistance(ls[i], proj)
		}
		walked += PointDistance(ls[i], ls[i+1])
	}
	return distAlong, dist
}
