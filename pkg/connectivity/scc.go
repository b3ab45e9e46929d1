// Package connectivity answers reachability questions about a Map for one travel mode at a time:
// which lanes form the dominant strongly connected network, and what it costs to reach buildings.
package connectivity

import (
	"github.com/lintang-b-s/osm-reachability/pkg/algorithm"
	"github.com/lintang-b-s/osm-reachability/pkg/datastructure"
	"github.com/lintang-b-s/osm-reachability/pkg/pathfind"
)

// FindSCC splits the lanes mode c can use into the largest strongly connected component of the
// lane graph (mainSet) and everything else (disconnected). among equally large components the one holding
// the lowest lane id wins. a lane graph without any edge yields two empty sets.
func FindSCC(m *datastructure.Map, c datastructure.PathConstraints) (mainSet, disconnected map[datastructure.LaneID]struct{}) {
	mainSet = make(map[datastructure.LaneID]struct{})
	disconnected = make(map[datastructure.LaneID]struct{})

	g := pathfind.BuildLaneGraph(m, c)
	if g.NumberOfEdges() == 0 {
		return mainSet, disconnected
	}

	components := algorithm.KosarajuSCC(g)
	best, bestLowest := -1, datastructure.LaneID(0)
	for i, comp := range components {
		lowest := comp[0]
		for _, l := range comp[1:] {
			if l < lowest {
				lowest = l
			}
		}
		if best == -1 || len(comp) > len(components[best]) ||
			(len(comp) == len(components[best]) && lowest < bestLowest) {
			best, bestLowest = i, lowest
		}
	}

	for _, l := range components[best] {
		mainSet[l] = struct{}{}
	}
	m.ForEachLane(func(l *datastructure.Lane) {
		if _, ok := mainSet[l.GetID()]; ok || !c.CanUse(l, m) {
			return
		}
		disconnected[l.GetID()] = struct{}{}
	})
	return mainSet, disconnected
}
