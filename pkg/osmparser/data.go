package osmparser

import (
	"github.com/lintang-b-s/osm-reachability/pkg/datastructure"
	"github.com/paulmach/orb"
)

type node struct {
	id    int64
	coord orb.Point
}

// restriction is a turn restriction relation from one way to another through a via node.
type restriction struct {
	from            int64
	via             int64
	to              int64
	turnRestriction TurnRestriction
}

type buildingWay struct {
	id    int64
	name  string
	nodes []int64
}

type accessKind uint8

const (
	publicAccess accessKind = iota
	destinationAccess
	privateAccess
)

// roadInfo is what the importer remembers about the way a road was cut from.
type roadInfo struct {
	wayID  int64
	access accessKind
}

// wayContext holds the tags of a way shared by every road cut from it.
type wayContext struct {
	id           int64
	name         string
	highway      string
	speed        float64 // km/h
	lanes        laneSpec
	bikesAllowed bool
	access       accessKind
}

type laneSpec struct {
	fwd  []datastructure.LaneType
	back []datastructure.LaneType
}

func (s laneSpec) empty() bool {
	return len(s.fwd) == 0 && len(s.back) == 0
}
