package geo

import (
	"math"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

const (
	cellLevel      = 16    // ~150m cell edge
	cellEdgeMeter  = 150.0 // lower bound used to size the search ring
	sampleInterval = 50.0  // meter between indexed samples of a line
)

// LineIndex buckets line strings by the s2 cells they pass through.
type LineIndex struct {
	cells map[s2.CellID][]int
	lines []orb.LineString
}

func NewLineIndex() *LineIndex {
	return &LineIndex{cells: make(map[s2.CellID][]int)}
}

func cellOf(p orb.Point) s2.CellID {
	return s2.CellIDFromLatLng(s2.LatLngFromDegrees(p.Lat(), p.Lon())).Parent(cellLevel)
}

// Insert adds ls under id. ids must be dense and inserted in order.
func (idx *LineIndex) Insert(id int, ls orb.LineString) {
	for len(idx.lines) <= id {
		idx.lines = append(idx.lines, nil)
	}
	idx.lines[id] = ls

	seen := make(map[s2.CellID]struct{})
	add := func(p orb.Point) {
		c := cellOf(p)
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		idx.cells[c] = append(idx.cells[c], id)
	}

	for i, p := range ls {
		add(p)
		if i == 0 {
			continue
		}
		seg := PointDistance(ls[i-1], p)
		for d := sampleInterval; d < seg; d += sampleInterval {
			add(PointAlong(orb.LineString{ls[i-1], p}, d))
		}
	}
}

// Nearest returns the accepted line closest to p within maxDist meter, with the distance along that
// line of the closest point and the distance to it.
func (idx *LineIndex) Nearest(p orb.Point, maxDist float64, accept func(id int) bool) (int, float64, float64, bool) {
	rings := int(math.Ceil(maxDist/cellEdgeMeter)) + 1

	frontier := []s2.CellID{cellOf(p)}
	visitedCells := map[s2.CellID]struct{}{frontier[0]: {}}
	candidates := make(map[int]struct{})
	for ring := 0; ring <= rings; ring++ {
		next := make([]s2.CellID, 0, len(frontier)*4)
		for _, c := range frontier {
			for _, id := range idx.cells[c] {
				candidates[id] = struct{}{}
			}
			for _, nb := range c.AllNeighbors(cellLevel) {
				if _, ok := visitedCells[nb]; ok {
					continue
				}
				visitedCells[nb] = struct{}{}
				next = append(next, nb)
			}
		}
		frontier = next
	}

	bestID, bestAlong, bestDist := -1, 0.0, math.MaxFloat64
	for id := range candidates {
		if accept != nil && !accept(id) {
			continue
		}
		along, dist := ProjectToLineString(p, idx.lines[id])
		// lowest id on ties keeps the result independent of map iteration order
		if dist < bestDist || (dist == bestDist && id < bestID) {
			bestID, bestAlong, bestDist = id, along, dist
		}
	}
	if bestID < 0 || bestDist > maxDist {
		return 0, 0, 0, false
	}
	return bestID, bestAlong, bestDist, true
}
