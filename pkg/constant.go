package pkg

import "time"

// enum of turn_type
type TurnType uint8

const (
	LEFT_TURN TurnType = iota
	RIGHT_TURN
	STRAIGHT_ON
	U_TURN
	NO_ENTRY
	NONE
	CROSSWALK
	SHARED_SIDEWALK_CORNER
)

func (t TurnType) String() string {
	switch t {
	case LEFT_TURN:
		return "left"
	case RIGHT_TURN:
		return "right"
	case STRAIGHT_ON:
		return "straight"
	case U_TURN:
		return "u_turn"
	case NO_ENTRY:
		return "no_entry"
	case CROSSWALK:
		return "crosswalk"
	case SHARED_SIDEWALK_CORNER:
		return "shared_sidewalk_corner"
	default:
		return "none"
	}
}

const (
	// straight-on tolerance in degrees, left/right beyond it, u-turn past U_TURN_ANGLE
	STRAIGHT_ANGLE = 30.0
	U_TURN_ANGLE   = 160.0

	DEFAULT_MAX_ANCHOR_DISTANCE = 100.0 // meter
	DEFAULT_BIKE_SPEED          = 4.5   // m/s
	DEFAULT_SPEED               = 30.0  // km/h
)

const (
	DEFAULT_LEFT_TURN_PENALTY  = 10 * time.Second
	DEFAULT_RIGHT_TURN_PENALTY = 2 * time.Second
	DEFAULT_U_TURN_PENALTY     = 30 * time.Second
	DEFAULT_AVOID_ROAD_PENALTY = 10 * time.Minute
	DEFAULT_ZONE_PENALTY       = 15 * time.Minute
	DEFAULT_AVOID_HIGH_STRESS  = 2.0
)
