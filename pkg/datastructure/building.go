package datastructure

import "github.com/paulmach/orb"

// Anchor links a building to the nearest position of an eligible lane.
type Anchor struct {
	pos  Position
	dist float64 // meter from the building center
}

func NewAnchor(pos Position, dist float64) *Anchor {
	return &Anchor{pos: pos, dist: dist}
}

func (a *Anchor) GetPosition() Position {
	return a.pos
}

func (a *Anchor) GetDist() float64 {
	return a.dist
}

type Building struct {
	id      BuildingID
	osmID   int64
	name    string
	center  orb.Point
	driving *Anchor
	biking  *Anchor
}

func NewBuilding(id BuildingID, osmID int64, name string, center orb.Point, driving, biking *Anchor) *Building {
	return &Building{
		id:      id,
		osmID:   osmID,
		name:    name,
		center:  center,
		driving: driving,
		biking:  biking,
	}
}

func (b *Building) GetID() BuildingID {
	return b.id
}

func (b *Building) GetOsmID() int64 {
	return b.osmID
}

func (b *Building) GetName() string {
	return b.name
}

func (b *Building) GetCenter() orb.Point {
	return b.center
}

// DrivingConnection returns the driving anchor, if the building has one.
func (b *Building) DrivingConnection() (*Anchor, bool) {
	return b.driving, b.driving != nil
}

// BikingConnection returns the biking anchor, if the building has one.
func (b *Building) BikingConnection() (*Anchor, bool) {
	return b.biking, b.biking != nil
}
