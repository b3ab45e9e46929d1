package datastructure

import "github.com/lintang-b-s/osm-reachability/pkg"

// PathConstraints selects a travel mode.
type PathConstraints uint8

const (
	PEDESTRIAN PathConstraints = iota
	CAR
	BIKE
	BUS
	TRAIN
)

// CostProfile holds the per-mode inputs of the vehicle cost function.
type CostProfile struct {
	MaxSpeed        float64 // m/s, 0 means the road speed limit
	AvoidHighStress bool
	Vehicle         bool
}

type capability struct {
	name    string
	canUse  func(l *Lane, m *Map) bool
	anchor  func(b *Building) (*Anchor, bool)
	profile CostProfile
}

var capabilities = [...]capability{
	PEDESTRIAN: {
		name: "pedestrian",
		canUse: func(l *Lane, m *Map) bool {
			return l.IsWalkable()
		},
		profile: CostProfile{},
	},
	CAR: {
		name: "car",
		canUse: func(l *Lane, m *Map) bool {
			return l.IsDriving()
		},
		anchor:  (*Building).DrivingConnection,
		profile: CostProfile{Vehicle: true},
	},
	BIKE: {
		name: "bike",
		canUse: func(l *Lane, m *Map) bool {
			switch {
			case l.IsBiking():
				return true
			case l.IsDriving():
				return m.GetRoad(l.GetRoad()).BikesAllowed()
			case l.IsBus():
				return m.params.BikesCanUseBusLanes && m.GetRoad(l.GetRoad()).BikesAllowed()
			default:
				return false
			}
		},
		anchor:  (*Building).BikingConnection,
		profile: CostProfile{MaxSpeed: pkg.DEFAULT_BIKE_SPEED, AvoidHighStress: true, Vehicle: true},
	},
	BUS: {
		name: "bus",
		canUse: func(l *Lane, m *Map) bool {
			return l.IsDriving() || l.IsBus()
		},
		profile: CostProfile{Vehicle: true},
	},
	TRAIN: {
		name: "train",
		canUse: func(l *Lane, m *Map) bool {
			return l.GetLaneType() == LIGHT_RAIL
		},
		profile: CostProfile{Vehicle: true},
	},
}

func AllPathConstraints() []PathConstraints {
	return []PathConstraints{PEDESTRIAN, CAR, BIKE, BUS, TRAIN}
}

func ParsePathConstraints(s string) (PathConstraints, bool) {
	for _, c := range AllPathConstraints() {
		if capabilities[c].name == s {
			return c, true
		}
	}
	return 0, false
}

func (c PathConstraints) IsValid() bool {
	return int(c) < len(capabilities)
}

func (c PathConstraints) String() string {
	return capabilities[c].name
}

// CanUse reports whether the mode may travel on lane l.
func (c PathConstraints) CanUse(l *Lane, m *Map) bool {
	return capabilities[c].canUse(l, m)
}

// Anchor returns where building b joins the network for this mode. modes without a building
// connection never have one.
func (c PathConstraints) Anchor(b *Building) (*Anchor, bool) {
	sel := capabilities[c].anchor
	if sel == nil {
		return nil, false
	}
	return sel(b)
}

func (c PathConstraints) Profile() CostProfile {
	return capabilities[c].profile
}

func (c PathConstraints) IsVehicle() bool {
	return capabilities[c].profile.Vehicle
}
