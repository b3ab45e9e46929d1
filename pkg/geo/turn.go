package geo

import (
	"math"

	"github.com/lintang-b-s/osm-reachability/pkg"
	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// ExitBearing is the bearing of the last segment of ls, in degrees.
func ExitBearing(ls orb.LineString) float64 {
	n := len(ls)
	return orbgeo.Bearing(ls[n-2], ls[n-1])
}

// EntryBearing is the bearing of the first segment of ls, in degrees.
func EntryBearing(ls orb.LineString) float64 {
	return orbgeo.Bearing(ls[0], ls[1])
}

// TurnAngle normalizes out-in to (-180, 180]. positive is clockwise.
func TurnAngle(in, out float64) float64 {
	angle := math.Mod(out-in, 360)
	if angle > 180 {
		angle -= 360
	} else if angle <= -180 {
		angle += 360
	}
	return angle
}

// ClassifyTurn maps the heading change between an incoming and outgoing segment to a turn type.
func ClassifyTurn(in, out float64) pkg.TurnType {
	angle := TurnAngle(in, out)
	switch {
	case math.Abs(angle) <= pkg.STRAIGHT_ANGLE:
		return pkg.STRAIGHT_ON
	case math.Abs(angle) >= pkg.U_TURN_ANGLE:
		return pkg.U_TURN
	case angle > 0:
		return pkg.RIGHT_TURN
	default:
		return pkg.LEFT_TURN
	}
}
