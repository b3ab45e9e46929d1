package datastructure

import (
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/lintang-b-s/osm-reachability/pkg"
	"go.uber.org/multierr"
)

var ErrInvalidRoutingParams = errors.New("invalid routing params")

// RoutingParams weights the cost functions. it is owned by the map and never changes during a query.
type RoutingParams struct {
	LeftTurnPenalty     time.Duration
	RightTurnPenalty    time.Duration
	UTurnPenalty        time.Duration
	AvoidHighStress     float64 // multiplier >= 1 on high stress roads for modes that avoid them
	AvoidRoads          map[RoadID]struct{}
	AvoidRoadPenalty    time.Duration
	BikesCanUseBusLanes bool
}

func DefaultRoutingParams() RoutingParams {
	return RoutingParams{
		LeftTurnPenalty:     pkg.DEFAULT_LEFT_TURN_PENALTY,
		RightTurnPenalty:    pkg.DEFAULT_RIGHT_TURN_PENALTY,
		UTurnPenalty:        pkg.DEFAULT_U_TURN_PENALTY,
		AvoidHighStress:     pkg.DEFAULT_AVOID_HIGH_STRESS,
		AvoidRoads:          make(map[RoadID]struct{}),
		AvoidRoadPenalty:    pkg.DEFAULT_AVOID_ROAD_PENALTY,
		BikesCanUseBusLanes: true,
	}
}

// Clone returns a copy of p that shares no state with it.
func (p RoutingParams) Clone() RoutingParams {
	p.AvoidRoads = maps.Clone(p.AvoidRoads)
	return p
}

func (p RoutingParams) Validate() error {
	var err error
	if p.LeftTurnPenalty < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: left turn penalty %v is negative", ErrInvalidRoutingParams, p.LeftTurnPenalty))
	}
	if p.RightTurnPenalty < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: right turn penalty %v is negative", ErrInvalidRoutingParams, p.RightTurnPenalty))
	}
	if p.UTurnPenalty < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: u-turn penalty %v is negative", ErrInvalidRoutingParams, p.UTurnPenalty))
	}
	if p.AvoidRoadPenalty < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: avoid road penalty %v is negative", ErrInvalidRoutingParams, p.AvoidRoadPenalty))
	}
	if p.AvoidHighStress < 1 {
		err = multierr.Append(err, fmt.Errorf("%w: avoid high stress multiplier %v is below 1", ErrInvalidRoutingParams, p.AvoidHighStress))
	}
	return err
}

func (p RoutingParams) Avoids(r RoadID) bool {
	_, ok := p.AvoidRoads[r]
	return ok
}

// TurnPenalty returns the fixed cost of making a turn of type t.
func (p RoutingParams) TurnPenalty(t pkg.TurnType) time.Duration {
	switch t {
	case pkg.LEFT_TURN:
		return p.LeftTurnPenalty
	case pkg.RIGHT_TURN:
		return p.RightTurnPenalty
	case pkg.U_TURN:
		return p.UTurnPenalty
	default:
		return 0
	}
}
