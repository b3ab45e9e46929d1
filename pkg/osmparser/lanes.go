package osmparser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lintang-b-s/osm-reachability/pkg/datastructure"
	"github.com/paulmach/osm"
)

func isRestricted(value string) bool {
	return value == "no" || value == "restricted"
}

func getReversedOneWay(way *osm.Way) (bool, bool, bool, bool) {
	vehicleForward := way.Tags.Find("vehicle:forward")
	motorVehicleForward := way.Tags.Find("motor_vehicle:forward")
	vehicleBackward := way.Tags.Find("vehicle:backward")
	motorVehicleBackward := way.Tags.Find("motor_vehicle:backward")
	return isRestricted(vehicleForward), isRestricted(motorVehicleForward), isRestricted(vehicleBackward), isRestricted(motorVehicleBackward)
}

// parseOneWay returns whether vehicles may only travel one way, and if so whether that is along the
// way's node order.
func parseOneWay(way *osm.Way) (oneWay bool, forward bool) {
	okvf, okmvf, okvb, okmvb := getReversedOneWay(way)
	val := way.Tags.Find("oneway")
	if val == "yes" || val == "1" || val == "true" || val == "-1" || okvf || okmvf || okvb || okmvb ||
		way.Tags.Find("junction") == "roundabout" {
		oneWay = true
	}
	// okvf / okmvf = not allowed forward
	forward = !(val == "-1" || okvf || okmvf)
	return oneWay, forward
}

func parseLaneCount(value string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// drivingLaneCounts splits the driving lanes of a way between both directions, before one-way handling.
func drivingLaneCounts(way *osm.Way, oneWay bool) (int, int) {
	fwd, okf := parseLaneCount(way.Tags.Find("lanes:forward"))
	back, okb := parseLaneCount(way.Tags.Find("lanes:backward"))
	if okf || okb {
		if oneWay {
			return max(fwd+back, 1), 0
		}
		return max(fwd, 1), max(back, 1)
	}

	total, ok := parseLaneCount(way.Tags.Find("lanes"))
	if !ok || total == 0 {
		if oneWay {
			return 1, 0
		}
		return 1, 1
	}
	if oneWay {
		return total, 0
	}
	return max((total+1)/2, 1), max(total/2, 1)
}

// sides decodes the both/left/right convention of side tags into (right side, left side).
func sides(way *osm.Way, key string, accept func(string) bool) (bool, bool) {
	right, left := false, false
	switch v := way.Tags.Find(key); {
	case v == "both" || v == "yes":
		right, left = true, true
	case v == "right":
		right = true
	case v == "left":
		left = true
	case accept(v):
		right, left = true, true
	}
	if accept(way.Tags.Find(key + ":both")) {
		right, left = true, true
	}
	if accept(way.Tags.Find(key + ":right")) {
		right = true
	}
	if accept(way.Tags.Find(key + ":left")) {
		left = true
	}
	return right, left
}

func isYes(v string) bool {
	return v == "yes" || v == "designated"
}

func isLane(v string) bool {
	return v == "lane" || v == "track" || v == "yes"
}

func isParking(v string) bool {
	return v == "parallel" || v == "diagonal" || v == "perpendicular" || v == "marked" || v == "lane" ||
		v == "street_side"
}

// lanesForWay derives the lanes of both directions, listed from the road center outwards.
func lanesForWay(way *osm.Way) laneSpec {
	highway := way.Tags.Find("highway")
	oneWay, forward := parseOneWay(way)
	if way.Tags.Find("oneway:bicycle") == "no" && highway == "cycleway" {
		oneWay = false
	}

	single := func(lt datastructure.LaneType) laneSpec {
		spec := laneSpec{fwd: []datastructure.LaneType{lt}, back: []datastructure.LaneType{lt}}
		switch {
		case oneWay && forward:
			spec.back = nil
		case oneWay:
			spec.fwd = nil
		}
		return spec
	}

	switch highway {
	case "":
		if way.Tags.Find("railway") == "tram" {
			return single(datastructure.LIGHT_RAIL)
		}
		return laneSpec{}
	case "footway", "pedestrian", "steps":
		return laneSpec{fwd: []datastructure.LaneType{datastructure.SIDEWALK}, back: []datastructure.LaneType{datastructure.SIDEWALK}}
	case "path":
		spec := laneSpec{fwd: []datastructure.LaneType{datastructure.SIDEWALK}, back: []datastructure.LaneType{datastructure.SIDEWALK}}
		if isYes(way.Tags.Find("bicycle")) {
			spec.fwd = append([]datastructure.LaneType{datastructure.BIKING}, spec.fwd...)
			spec.back = append([]datastructure.LaneType{datastructure.BIKING}, spec.back...)
		}
		return spec
	case "cycleway":
		return single(datastructure.BIKING)
	case "busway":
		return single(datastructure.BUS_LANE)
	}

	fwdN, backN := drivingLaneCounts(way, oneWay)
	var spec laneSpec
	for i := 0; i < fwdN; i++ {
		spec.fwd = append(spec.fwd, datastructure.DRIVING)
	}
	for i := 0; i < backN; i++ {
		spec.back = append(spec.back, datastructure.DRIVING)
	}
	if oneWay && !forward {
		spec.fwd, spec.back = spec.back, spec.fwd
	}

	// the right side travels forward, the left side backward
	busRight, busLeft := sides(way, "busway", func(v string) bool { return v == "lane" })
	if n, ok := parseLaneCount(way.Tags.Find("lanes:bus")); ok && n > 0 {
		busRight = busRight || len(spec.fwd) > 0
		busLeft = busLeft || len(spec.back) > 0
	}
	if busRight {
		spec.fwd = replaceOuterDriving(spec.fwd, datastructure.BUS_LANE)
	}
	if busLeft {
		spec.back = replaceOuterDriving(spec.back, datastructure.BUS_LANE)
	}

	bikeRight, bikeLeft := sides(way, "cycleway", isLane)
	switch way.Tags.Find("cycleway") {
	case "opposite_lane", "opposite_track":
		bikeRight, bikeLeft = false, true
	case "lane", "track":
		if oneWay && way.Tags.Find("oneway:bicycle") != "no" {
			bikeRight, bikeLeft = forward, !forward
		}
	}
	if bikeRight {
		spec.fwd = append(spec.fwd, datastructure.BIKING)
	}
	if bikeLeft {
		spec.back = append(spec.back, datastructure.BIKING)
	}

	parkRight, parkLeft := sides(way, "parking:lane", isParking)
	if r, l := sides(way, "parking", isParking); r || l {
		parkRight, parkLeft = parkRight || r, parkLeft || l
	}
	if parkRight {
		spec.fwd = append(spec.fwd, datastructure.PARKING)
	}
	if parkLeft {
		spec.back = append(spec.back, datastructure.PARKING)
	}

	shoulderRight, shoulderLeft := sides(way, "shoulder", isYes)
	if shoulderRight {
		spec.fwd = append(spec.fwd, datastructure.SHOULDER)
	}
	if shoulderLeft {
		spec.back = append(spec.back, datastructure.SHOULDER)
	}

	walkRight, walkLeft := sides(way, "sidewalk", isYes)
	if way.Tags.Find("sidewalk") == "" && !walkRight && !walkLeft {
		if _, ok := sidewalkByDefault[highway]; ok {
			walkRight, walkLeft = true, true
		}
	}
	if walkRight {
		spec.fwd = append(spec.fwd, datastructure.SIDEWALK)
	}
	if walkLeft {
		spec.back = append(spec.back, datastructure.SIDEWALK)
	}
	return spec
}

// replaceOuterDriving turns the outermost driving lane into lt, or adds lt when it is the only one.
func replaceOuterDriving(lanes []datastructure.LaneType, lt datastructure.LaneType) []datastructure.LaneType {
	driving := 0
	for _, l := range lanes {
		if l == datastructure.DRIVING {
			driving++
		}
	}
	if driving <= 1 {
		return append(lanes, lt)
	}
	out := append([]datastructure.LaneType{}, lanes...)
	for i := len(out) - 1; i >= 0; i-- {
		if out[i] == datastructure.DRIVING {
			out[i] = lt
			break
		}
	}
	return out
}

func bikesAllowed(way *osm.Way) bool {
	switch way.Tags.Find("bicycle") {
	case "no", "dismount":
		return false
	case "yes", "designated", "permissive":
		return true
	}
	_, banned := noBikeHighway[way.Tags.Find("highway")]
	return !banned
}

func parseAccess(way *osm.Way) accessKind {
	kind := publicAccess
	for _, key := range []string{"access", "motor_vehicle", "vehicle"} {
		switch way.Tags.Find(key) {
		case "private":
			return privateAccess
		case "destination":
			kind = destinationAccess
		}
	}
	return kind
}

// parseMaxSpeed returns the maxspeed tag in km/h. a value without unit is km/h. 0 when absent.
func parseMaxSpeed(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "none" || value == "signals" || value == "walk" {
		return 0, nil
	}
	factor := 1.0
	switch {
	case strings.HasSuffix(value, "mph"):
		factor = 1.60934
		value = strings.TrimSuffix(value, "mph")
	case strings.HasSuffix(value, "km/h"):
		value = strings.TrimSuffix(value, "km/h")
	case strings.HasSuffix(value, "knots"):
		factor = 1.852
		value = strings.TrimSuffix(value, "knots")
	}
	speed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid maxspeed %q: %w", value, err)
	}
	if speed < 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		return 0, fmt.Errorf("invalid maxspeed %q", value)
	}
	return speed * factor, nil
}
