package geo_test

import (
	"testing"

	"github.com/lintang-b-s/osm-reachability/pkg"
	"github.com/lintang-b-s/osm-reachability/pkg/geo"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointDistance(t *testing.T) {
	// 0.001 degree of longitude on the equator
	assert.InDelta(t, 111.19, geo.PointDistance(orb.Point{0, 0}, orb.Point{0.001, 0}), 0.01)
	assert.Zero(t, geo.PointDistance(orb.Point{110.4, -7.8}, orb.Point{110.4, -7.8}))

	ls := orb.LineString{{0, 0}, {0.001, 0}, {0.002, 0}}
	assert.InDelta(t, 222.39, geo.LineStringLength(ls), 0.01)
	assert.Zero(t, geo.LineStringLength(orb.LineString{{0, 0}}))
}

func TestPointAlong(t *testing.T) {
	ls := orb.LineString{{0, 0}, {0.001, 0}, {0.002, 0}}
	half := geo.PointAlong(ls, geo.LineStringLength(ls)/2)
	assert.InDelta(t, 0.001, half.Lon(), 1e-9)

	assert.Equal(t, ls[0], geo.PointAlong(ls, -5))
	assert.Equal(t, ls[2], geo.PointAlong(ls, 1e6))
	assert.Equal(t, orb.Point{}, geo.PointAlong(nil, 10))
}

func TestReverse(t *testing.T) {
	ls := orb.LineString{{0, 0}, {1, 0}, {1, 1}}
	assert.Equal(t, orb.LineString{{1, 1}, {1, 0}, {0, 0}}, geo.Reverse(ls))
	assert.Equal(t, orb.LineString{{0, 0}, {1, 0}, {1, 1}}, ls)
}

func TestClassifyTurn(t *testing.T) {
	tests := []struct {
		name    string
		in, out float64
		want    pkg.TurnType
	}{
		{"straight", 90, 95, pkg.STRAIGHT_ON},
		{"left from east to north", 90, 0, pkg.LEFT_TURN},
		{"right from east to south", 90, 180, pkg.RIGHT_TURN},
		{"u-turn", 90, 270, pkg.U_TURN},
		{"straight across north", 350, 10, pkg.STRAIGHT_ON},
		{"right across north", 300, 30, pkg.RIGHT_TURN},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, geo.ClassifyTurn(tt.in, tt.out))
		})
	}
}

func TestBearings(t *testing.T) {
	east := orb.LineString{{0, 0}, {0.001, 0}}
	north := orb.LineString{{0.001, 0}, {0.001, 0.001}}
	assert.InDelta(t, 90, geo.ExitBearing(east), 1e-6)
	assert.InDelta(t, 0, geo.EntryBearing(north), 1e-6)
	assert.Equal(t, pkg.LEFT_TURN, geo.ClassifyTurn(geo.ExitBearing(east), geo.EntryBearing(north)))
}

func TestRamerDouglasPeucker(t *testing.T) {
	// the middle point is ~0.1m off the chord
	ls := orb.LineString{{0, 0}, {0.001, 0.000001}, {0.002, 0}}
	assert.Equal(t, orb.LineString{{0, 0}, {0.002, 0}}, geo.RamerDouglasPeucker(ls))

	bent := orb.LineString{{0, 0}, {0.001, 0.001}, {0.002, 0}}
	assert.Equal(t, bent, geo.RamerDouglasPeucker(bent))

	short := orb.LineString{{0, 0}, {1, 1}}
	assert.Equal(t, short, geo.RamerDouglasPeucker(short))
}

func TestPolylineRoundTrip(t *testing.T) {
	ls := orb.LineString{{110.36543, -7.80123}, {110.36601, -7.80098}, {110.3671, -7.8}}
	got, err := geo.LineStringFromPolyline(geo.PolylineFromLineString(ls))
	require.NoError(t, err)
	require.Len(t, got, len(ls))
	for i := range ls {
		assert.InDelta(t, ls[i].Lon(), got[i].Lon(), 1e-5)
		assert.InDelta(t, ls[i].Lat(), got[i].Lat(), 1e-5)
	}
}

func TestProjectToLineString(t *testing.T) {
	ls := orb.LineString{{0, 0}, {0.001, 0}, {0.002, 0}}
	along, dist := geo.ProjectToLineString(orb.Point{0.0015, 0.0001}, ls)
	assert.InDelta(t, 166.8, along, 0.5)
	assert.InDelta(t, 11.1, dist, 0.2)

	along, dist = geo.ProjectToLineString(orb.Point{0, 0.001}, orb.LineString{{0, 0}})
	assert.Zero(t, along)
	assert.InDelta(t, 111.2, dist, 0.1)
}

func TestLineIndexNearest(t *testing.T) {
	idx := geo.NewLineIndex()
	idx.Insert(0, orb.LineString{{0, 0}, {0.01, 0}})
	idx.Insert(1, orb.LineString{{0, 0.0005}, {0.01, 0.0005}})
	idx.Insert(2, orb.LineString{{1, 1}, {1.01, 1}})

	p := orb.Point{0.005, 0.0004}
	id, along, dist, ok := idx.Nearest(p, 100, nil)
	require.True(t, ok)
	assert.Equal(t, 1, id)
	assert.InDelta(t, 556, along, 1)
	assert.InDelta(t, 11.1, dist, 0.2)

	id, _, dist, ok = idx.Nearest(p, 100, func(id int) bool { return id != 1 })
	require.True(t, ok)
	assert.Equal(t, 0, id)
	assert.InDelta(t, 44.5, dist, 0.2)

	_, _, _, ok = idx.Nearest(p, 20, func(id int) bool { return id == 0 })
	assert.False(t, ok)

	_, _, _, ok = idx.Nearest(orb.Point{0.5, 0.5}, 100, nil)
	assert.False(t, ok)
}
