package datastructure

import (
	"time"

	"github.com/paulmach/orb"
)

// Zone is a group of access-restricted roads. entering it from outside costs an extra penalty
// for every mode it restricts.
type Zone struct {
	id         ZoneID
	members    map[RoadID]struct{}
	bound      orb.Bound
	restricted map[PathConstraints]struct{}
	penalty    time.Duration
}

func NewZone(id ZoneID, members []RoadID, bound orb.Bound, restricted []PathConstraints, penalty time.Duration) *Zone {
	z := &Zone{
		id:         id,
		members:    make(map[RoadID]struct{}, len(members)),
		bound:      bound,
		restricted: make(map[PathConstraints]struct{}, len(restricted)),
		penalty:    penalty,
	}
	for _, r := range members {
		z.members[r] = struct{}{}
	}
	for _, c := range restricted {
		z.restricted[c] = struct{}{}
	}
	return z
}

func (z *Zone) GetID() ZoneID {
	return z.id
}

func (z *Zone) GetBound() orb.Bound {
	return z.bound
}

func (z *Zone) GetPenalty() time.Duration {
	return z.penalty
}

func (z *Zone) Contains(r RoadID) bool {
	_, ok := z.members[r]
	return ok
}

func (z *Zone) Restricts(c PathConstraints) bool {
	_, ok := z.restricted[c]
	return ok
}

func (z *Zone) Members() []RoadID {
	roads := make([]RoadID, 0, len(z.members))
	for r := range z.members {
		roads = append(roads, r)
	}
	return roads
}

func (z *Zone) RestrictedModes() []PathConstraints {
	modes := make([]PathConstraints, 0, len(z.restricted))
	for _, c := range AllPathConstraints() {
		if z.Restricts(c) {
			modes = append(modes, c)
		}
	}
	return modes
}
