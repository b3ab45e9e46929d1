package datastructure_test

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/osm-reachability/pkg/connectivity"
	"github.com/lintang-b-s/osm-reachability/pkg/datastructure"
	"github.com/lintang-b-s/osm-reachability/pkg/maptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func roundTrip(t *testing.T, m *datastructure.Map) *datastructure.Map {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "map.bz2")
	require.NoError(t, datastructure.WriteMap(filename, m))
	got, err := datastructure.ReadMap(filename)
	require.NoError(t, err)
	return got
}

func TestWriteReadMap(t *testing.T) {
	b, c := maptest.ThreeRoads()
	params := datastructure.DefaultRoutingParams()
	params.AvoidRoads[c.Roads[1]] = struct{}{}
	params.BikesCanUseBusLanes = false
	b.SetRoutingParams(params)
	b.AddZone([]datastructure.RoadID{c.Roads[2]}, []datastructure.PathConstraints{datastructure.CAR}, 5*time.Minute)
	m, err := b.Build()
	require.NoError(t, err)

	got := roundTrip(t, m)

	assert.Equal(t, m.GetName(), got.GetName())
	assert.Equal(t, m.RoutingParams(), got.RoutingParams())
	assert.Len(t, got.AllIntersections(), len(m.AllIntersections()))
	assert.Equal(t, m.AllTurns(), got.AllTurns())
	assert.Equal(t, m.AllMovements(), got.AllMovements())

	for i, r := range m.AllRoads() {
		gr := got.GetRoad(r.GetID())
		assert.Equal(t, r.GetLength(), gr.GetLength(), "road %d", i)
		assert.Equal(t, r.GetSpeedLimit(), gr.GetSpeedLimit(), "road %d", i)
		assert.Equal(t, r.GetHighway(), gr.GetHighway(), "road %d", i)
		assert.Equal(t, r.AllLanes(), gr.AllLanes(), "road %d", i)
		require.Len(t, gr.GetGeometry(), len(r.GetGeometry()))
		for k, p := range r.GetGeometry() {
			assert.InDelta(t, p.Lon(), gr.GetGeometry()[k].Lon(), 1e-5)
			assert.InDelta(t, p.Lat(), gr.GetGeometry()[k].Lat(), 1e-5)
		}
	}

	for _, bld := range m.AllBuildings() {
		gb := got.GetBuilding(bld.GetID())
		assert.Equal(t, bld.GetName(), gb.GetName())
		assert.Equal(t, bld.GetCenter(), gb.GetCenter())
		want, ok := bld.DrivingConnection()
		require.True(t, ok)
		anchor, ok := gb.DrivingConnection()
		require.True(t, ok)
		assert.Equal(t, want.GetPosition(), anchor.GetPosition())
		assert.Equal(t, want.GetDist(), anchor.GetDist())
		_, ok = gb.BikingConnection()
		assert.False(t, ok)
	}

	require.Len(t, got.AllZones(), 1)
	zone, ok := got.ZoneOf(c.Roads[2])
	require.True(t, ok)
	assert.Equal(t, 5*time.Minute, zone.GetPenalty())
	assert.True(t, zone.Restricts(datastructure.CAR))
	assert.False(t, zone.Restricts(datastructure.BIKE))
}

func TestWriteReadMapPreservesConnectivity(t *testing.T) {
	rd := rand.New(rand.NewSource(11))
	for i := 0; i < 5; i++ {
		m, err := maptest.Random(rd, maptest.RandomOptions{
			Intersections: 12,
			Roads:         30,
			TurnProb:      0.6,
			Buildings:     4,
			WithZone:      true,
		}).Build()
		require.NoError(t, err)

		got := roundTrip(t, m)
		for _, mode := range datastructure.AllPathConstraints() {
			wantMain, wantDisconnected := connectivity.FindSCC(m, mode)
			gotMain, gotDisconnected := connectivity.FindSCC(got, mode)
			assert.Equal(t, wantMain, gotMain, "mode %s", mode)
			assert.Equal(t, wantDisconnected, gotDisconnected, "mode %s", mode)
		}
		for _, bld := range m.AllBuildings() {
			for _, mode := range []datastructure.PathConstraints{datastructure.CAR, datastructure.BIKE} {
				want := connectivity.AllVehicleCostsFrom(m, bld.GetID(), time.Hour, mode)
				assert.Equal(t, want, connectivity.AllVehicleCostsFrom(got, bld.GetID(), time.Hour, mode))
			}
		}
	}
}

func TestReadMapErrors(t *testing.T) {
	_, err := datastructure.ReadMap(filepath.Join(t.TempDir(), "missing.bz2"))
	assert.Error(t, err)

	filename := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(filename, []byte("not bzip2"), 0o644))
	_, err = datastructure.ReadMap(filename)
	assert.Error(t, err)
}

// editSnapshot decompresses filename, lets edit change its lines and writes it back compressed.
func editSnapshot(t *testing.T, filename string, edit func(lines []string)) {
	t.Helper()
	f, err := os.Open(filename)
	require.NoError(t, err)
	bz, err := bzip2.NewReader(f, nil)
	require.NoError(t, err)
	raw, err := io.ReadAll(bz)
	require.NoError(t, err)
	require.NoError(t, bz.Close())
	require.NoError(t, f.Close())

	lines := strings.Split(string(raw), "\n")
	edit(lines)

	out, err := os.Create(filename)
	require.NoError(t, err)
	bw, err := bzip2.NewWriter(out, &bzip2.WriterConfig{})
	require.NoError(t, err)
	_, err = io.WriteString(bw, strings.Join(lines, "\n"))
	require.NoError(t, err)
	require.NoError(t, bw.Close())
	require.NoError(t, out.Close())
}

func TestReadMapRejectsOutOfRangeValues(t *testing.T) {
	b, _ := maptest.ThreeRoads()
	m, err := b.Build()
	require.NoError(t, err)
	// name, counts and params precede the intersections, every road takes three lines
	firstLane := 3 + len(m.AllIntersections()) + 3*len(m.AllRoads())
	firstRoad := 3 + len(m.AllIntersections())

	tests := []struct {
		name string
		edit func(lines []string)
		want error
	}{
		{
			name: "lane type",
			edit: func(lines []string) { lines[firstLane] = "0 0 200" },
			want: datastructure.ErrInvalidLane,
		},
		{
			name: "lane direction",
			edit: func(lines []string) { lines[firstLane] = "0 7 0" },
			want: datastructure.ErrInvalidLane,
		},
		{
			name: "road length",
			edit: func(lines []string) {
				f := strings.Fields(lines[firstRoad])
				f[4] = "-100"
				lines[firstRoad] = strings.Join(f, " ")
			},
			want: datastructure.ErrInvalidRoad,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filename := filepath.Join(t.TempDir(), "map.bz2")
			require.NoError(t, datastructure.WriteMap(filename, m))
			editSnapshot(t, filename, tt.edit)

			got, err := datastructure.ReadMap(filename)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestWriteMapReportsCloseError(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full is not available")
	}
	b, _ := maptest.ThreeRoads()
	m, err := b.Build()
	require.NoError(t, err)

	// the compressed block only reaches the file on close, which then fails with ENOSPC
	assert.Error(t, datastructure.WriteMap("/dev/full", m))
}
