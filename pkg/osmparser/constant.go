package osmparser

import "time"

type NodeType int

const (
	END_NODE NodeType = iota
	BETWEEN_NODE
	JUNCTION_NODE
)

type TurnRestriction int

const (
	NO_LEFT_TURN TurnRestriction = iota
	NO_RIGHT_TURN
	NO_STRAIGHT_ON
	NO_U_TURN
	ONLY_LEFT_TURN
	ONLY_RIGHT_TURN
	ONLY_STRAIGHT_ON
	ONLY_U_TURN
	NO_ENTRY
	INVALID
	NONE
)

func parseTurnRestriction(s string) TurnRestriction {
	switch s {
	case "no_left_turn":
		return NO_LEFT_TURN
	case "no_right_turn":
		return NO_RIGHT_TURN
	case "no_straight_on":
		return NO_STRAIGHT_ON
	case "no_u_turn":
		return NO_U_TURN
	case "only_left_turn":
		return ONLY_LEFT_TURN
	case "only_right_turn":
		return ONLY_RIGHT_TURN
	case "only_straight_on":
		return ONLY_STRAIGHT_ON
	case "only_u_turn":
		return ONLY_U_TURN
	case "no_entry":
		return NO_ENTRY
	case "invalid":
		return INVALID
	default:
		return NONE
	}
}

func (t TurnRestriction) isOnly() bool {
	return t == ONLY_LEFT_TURN || t == ONLY_RIGHT_TURN || t == ONLY_STRAIGHT_ON || t == ONLY_U_TURN
}

func (t TurnRestriction) isBan() bool {
	return t == NO_LEFT_TURN || t == NO_RIGHT_TURN || t == NO_STRAIGHT_ON || t == NO_U_TURN || t == NO_ENTRY
}

const (
	DEFAULT_ZONE_PENALTY = 15 * time.Minute
)

var (
	// https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
	acceptedHighway = map[string]struct{}{
		"motorway":         {},
		"motorway_link":    {},
		"trunk":            {},
		"trunk_link":       {},
		"primary":          {},
		"primary_link":     {},
		"secondary":        {},
		"secondary_link":   {},
		"residential":      {},
		"residential_link": {},
		"service":          {},
		"tertiary":         {},
		"tertiary_link":    {},
		"road":             {},
		"track":            {},
		"unclassified":     {},
		"living_street":    {},
		"motorroad":        {},
		"busway":           {},
		"cycleway":         {},
		"footway":          {},
		"pedestrian":       {},
		"path":             {},
		"steps":            {},
	}

	// classes where a missing sidewalk tag means sidewalks on both sides
	sidewalkByDefault = map[string]struct{}{
		"primary":       {},
		"secondary":     {},
		"tertiary":      {},
		"residential":   {},
		"unclassified":  {},
		"living_street": {},
	}

	noBikeHighway = map[string]struct{}{
		"motorway":      {},
		"motorway_link": {},
		"motorroad":     {},
		"trunk":         {},
		"trunk_link":    {},
	}

	//https://wiki.openstreetmap.org/wiki/Key:barrier
	// a barrier node with access=no splits the way into two disconnected roads
	acceptedBarrierType = map[string]struct{}{
		"bollard":        {},
		"swing_gate":     {},
		"jersey_barrier": {},
		"lift_gate":      {},
		"block":          {},
		"gate":           {},
	}
)

// roadTypeMaxSpeed2 is the fallback speed in km/h of a highway class.
func roadTypeMaxSpeed2(roadType string) float64 {
	switch roadType {
	case "motorway":
		return 100
	case "trunk":
		return 70
	case "primary":
		return 65
	case "secondary":
		return 60
	case "tertiary":
		return 50
	case "unclassified":
		return 40
	case "residential":
		return 30
	case "service":
		return 20
	case "motorway_link":
		return 70
	case "trunk_link":
		return 65
	case "primary_link":
		return 60
	case "secondary_link":
		return 50
	case "tertiary_link":
		return 40
	case "living_street":
		return 5
	case "road":
		return 20
	case "track":
		return 15
	case "motorroad":
		return 90
	case "cycleway":
		return 20
	case "footway", "pedestrian", "path", "steps":
		return 5
	default:
		return 30
	}
}
