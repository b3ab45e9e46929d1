package datastructure

import (
	"fmt"

	"github.com/lintang-b-s/osm-reachability/pkg"
)

type TurnID struct {
	Parent IntersectionID
	Src    LaneID
	Dst    LaneID
}

func (t TurnID) String() string {
	return fmt.Sprintf("turn(%d->%d @%d)", t.Src, t.Dst, t.Parent)
}

// Turn is a permitted transition from one lane to another at an intersection.
type Turn struct {
	id       TurnID
	turnType pkg.TurnType
}

func NewTurn(id TurnID, turnType pkg.TurnType) *Turn {
	return &Turn{id: id, turnType: turnType}
}

func (t *Turn) GetID() TurnID {
	return t.id
}

func (t *Turn) GetTurnType() pkg.TurnType {
	return t.turnType
}

// MovementID aggregates every turn between two directed roads at one intersection.
type MovementID struct {
	From   DirectedRoadID
	To     DirectedRoadID
	Parent IntersectionID
}

func (m MovementID) String() string {
	return fmt.Sprintf("%s -> %s @%d", m.From, m.To, m.Parent)
}

type Movement struct {
	ID       MovementID
	TurnType pkg.TurnType
}

func NewMovement(id MovementID, turnType pkg.TurnType) Movement {
	return Movement{ID: id, TurnType: turnType}
}
