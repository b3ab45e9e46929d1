package datastructure

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/osm-reachability/pkg"
	"github.com/lintang-b-s/osm-reachability/pkg/geo"
	"github.com/paulmach/orb"
	"go.uber.org/multierr"
)

var ErrMalformedSnapshot = errors.New("malformed map snapshot")

// WriteMap stores m as a bzip2 compressed text snapshot. ReadMap rebuilds an equal map, ids included.
func WriteMap(filename string, m *Map) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	// the final block is only written on Close
	defer multierr.AppendInvoke(&err, multierr.Close(bz))

	w := bufio.NewWriter(bz)

	fmt.Fprintf(w, "%s\n", strconv.Quote(m.name))
	fmt.Fprintf(w, "%d %d %d %d %d %d\n",
		len(m.intersections), len(m.roads), len(m.lanes), len(m.turns), len(m.buildings), len(m.zones))

	p := m.params
	avoid := make([]RoadID, 0, len(p.AvoidRoads))
	for r := range p.AvoidRoads {
		avoid = append(avoid, r)
	}
	slices.Sort(avoid)
	fmt.Fprintf(w, "%d %d %d %s %d %t %d",
		p.LeftTurnPenalty, p.RightTurnPenalty, p.UTurnPenalty, formatFloat(p.AvoidHighStress),
		p.AvoidRoadPenalty, p.BikesCanUseBusLanes, len(avoid))
	for _, r := range avoid {
		fmt.Fprintf(w, " %d", r)
	}
	fmt.Fprintf(w, "\n")

	for _, in := range m.intersections {
		fmt.Fprintf(w, "%d %s %s\n", in.osmID, formatFloat(in.point.Lon()), formatFloat(in.point.Lat()))
	}

	for _, r := range m.roads {
		fmt.Fprintf(w, "%d %d %d %s %s %t %s\n",
			r.osmWayID, r.src, r.dst, formatFloat(r.speedLimit), formatFloat(r.length), r.bikesAllowed,
			r.highway)
		fmt.Fprintf(w, "%s\n", strconv.Quote(r.name))
		fmt.Fprintf(w, "%s\n", strconv.Quote(geo.PolylineFromLineString(r.geometry)))
	}

	for _, l := range m.lanes {
		fmt.Fprintf(w, "%d %d %d\n", l.road, l.dir, l.laneType)
	}

	for _, t := range m.turns {
		fmt.Fprintf(w, "%d %d %d %d\n", t.id.Parent, t.id.Src, t.id.Dst, t.turnType)
	}

	for _, b := range m.buildings {
		fmt.Fprintf(w, "%d %s %s %s %s\n", b.osmID, formatFloat(b.center.Lon()), formatFloat(b.center.Lat()),
			formatAnchor(b.driving), formatAnchor(b.biking))
		fmt.Fprintf(w, "%s\n", strconv.Quote(b.name))
	}

	for _, z := range m.zones {
		members := z.Members()
		slices.Sort(members)
		fmt.Fprintf(w, "%d %d", z.penalty, len(members))
		for _, r := range members {
			fmt.Fprintf(w, " %d", r)
		}
		restricted := z.RestrictedModes()
		fmt.Fprintf(w, " %d", len(restricted))
		for _, c := range restricted {
			fmt.Fprintf(w, " %d", c)
		}
		fmt.Fprintf(w, "\n")
	}

	return w.Flush()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatAnchor writes "-" for a missing anchor, "lane distAlong dist" otherwise.
func formatAnchor(a *Anchor) string {
	if a == nil {
		return "- - -"
	}
	return fmt.Sprintf("%d %s %s", a.pos.lane, formatFloat(a.pos.distAlong), formatFloat(a.dist))
}

type snapshotReader struct {
	br   *bufio.Reader
	line int
}

func (s *snapshotReader) readLine() (string, error) {
	line, err := s.br.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || len(line) == 0 {
			return "", fmt.Errorf("%w: line %d: %w", ErrMalformedSnapshot, s.line+1, err)
		}
	}
	s.line++
	return strings.TrimRight(line, "\r\n"), nil
}

// readFields reads the next line and checks it holds at least n fields.
func (s *snapshotReader) readFields(n int) ([]string, error) {
	line, err := s.readLine()
	if err != nil {
		return nil, err
	}
	tokens := strings.Fields(line)
	if len(tokens) < n {
		return nil, fmt.Errorf("%w: line %d: expected %d fields, got %d", ErrMalformedSnapshot, s.line, n, len(tokens))
	}
	return tokens, nil
}

func (s *snapshotReader) readQuoted() (string, error) {
	line, err := s.readLine()
	if err != nil {
		return "", err
	}
	v, err := strconv.Unquote(line)
	if err != nil {
		return "", fmt.Errorf("%w: line %d: %w", ErrMalformedSnapshot, s.line, err)
	}
	return v, nil
}

func parseIndex(s string) (Index, error) {
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if u > math.MaxUint32 {
		return 0, fmt.Errorf("value %s overflows uint32", s)
	}
	return Index(u), nil
}

// parseIndexes parses every token, stopping at the first error.
func parseIndexes(tokens []string) ([]Index, error) {
	out := make([]Index, len(tokens))
	for i, t := range tokens {
		v, err := parseIndex(t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseFloats(tokens []string) ([]float64, error) {
	out := make([]float64, len(tokens))
	for i, t := range tokens {
		v, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseAnchor(tokens []string) (*Anchor, error) {
	if tokens[0] == "-" {
		return nil, nil
	}
	lane, err := parseIndex(tokens[0])
	if err != nil {
		return nil, err
	}
	vals, err := parseFloats(tokens[1:3])
	if err != nil {
		return nil, err
	}
	return NewAnchor(NewPosition(LaneID(lane), vals[0]), vals[1]), nil
}

// ReadMap loads a snapshot written by WriteMap.
func ReadMap(filename string) (*Map, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		return nil, err
	}
	defer bz.Close()

	m, err := readMap(&snapshotReader{br: bufio.NewReader(bz)})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	return m, nil
}

func readMap(s *snapshotReader) (*Map, error) {
	name, err := s.readQuoted()
	if err != nil {
		return nil, err
	}
	tokens, err := s.readFields(6)
	if err != nil {
		return nil, err
	}
	counts, err := parseIndexes(tokens[:6])
	if err != nil {
		return nil, err
	}
	numIntersections, numRoads, numLanes, numTurns, numBuildings, numZones :=
		int(counts[0]), int(counts[1]), int(counts[2]), int(counts[3]), int(counts[4]), int(counts[5])

	b := NewMapBuilder(name)

	params, err := readRoutingParams(s)
	if err != nil {
		return nil, err
	}
	b.SetRoutingParams(params)

	for i := 0; i < numIntersections; i++ {
		tokens, err := s.readFields(3)
		if err != nil {
			return nil, err
		}
		osmID, err := strconv.ParseInt(tokens[0], 10, 64)
		if err != nil {
			return nil, err
		}
		coord, err := parseFloats(tokens[1:3])
		if err != nil {
			return nil, err
		}
		b.AddIntersection(osmID, orb.Point{coord[0], coord[1]})
	}

	for i := 0; i < numRoads; i++ {
		spec, err := readRoad(s)
		if err != nil {
			return nil, err
		}
		b.AddRoad(spec)
	}

	for i := 0; i < numLanes; i++ {
		tokens, err := s.readFields(3)
		if err != nil {
			return nil, err
		}
		vals, err := parseIndexes(tokens[:3])
		if err != nil {
			return nil, err
		}
		b.AddLane(RoadID(vals[0]), Direction(vals[1]), LaneType(vals[2]))
	}

	for i := 0; i < numTurns; i++ {
		tokens, err := s.readFields(4)
		if err != nil {
			return nil, err
		}
		vals, err := parseIndexes(tokens[:4])
		if err != nil {
			return nil, err
		}
		b.AddTurn(IntersectionID(vals[0]), LaneID(vals[1]), LaneID(vals[2]), pkg.TurnType(vals[3]))
	}

	for i := 0; i < numBuildings; i++ {
		tokens, err := s.readFields(9)
		if err != nil {
			return nil, err
		}
		osmID, err := strconv.ParseInt(tokens[0], 10, 64)
		if err != nil {
			return nil, err
		}
		center, err := parseFloats(tokens[1:3])
		if err != nil {
			return nil, err
		}
		driving, err := parseAnchor(tokens[3:6])
		if err != nil {
			return nil, err
		}
		biking, err := parseAnchor(tokens[6:9])
		if err != nil {
			return nil, err
		}
		bname, err := s.readQuoted()
		if err != nil {
			return nil, err
		}
		b.AddBuilding(osmID, bname, orb.Point{center[0], center[1]}, driving, biking)
	}

	for i := 0; i < numZones; i++ {
		if err := readZone(s, b); err != nil {
			return nil, err
		}
	}

	return b.Build()
}

func readRoutingParams(s *snapshotReader) (RoutingParams, error) {
	tokens, err := s.readFields(7)
	if err != nil {
		return RoutingParams{}, err
	}
	var durations [4]time.Duration
	for i, t := range []string{tokens[0], tokens[1], tokens[2], tokens[4]} {
		d, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return RoutingParams{}, err
		}
		durations[i] = time.Duration(d)
	}
	avoidHighStress, err := strconv.ParseFloat(tokens[3], 64)
	if err != nil {
		return RoutingParams{}, err
	}
	busLanes, err := strconv.ParseBool(tokens[5])
	if err != nil {
		return RoutingParams{}, err
	}
	numAvoid, err := parseIndex(tokens[6])
	if err != nil {
		return RoutingParams{}, err
	}
	if len(tokens) != 7+int(numAvoid) {
		return RoutingParams{}, fmt.Errorf("%w: line %d: expected %d avoided roads", ErrMalformedSnapshot, s.line, numAvoid)
	}
	avoid, err := parseIndexes(tokens[7:])
	if err != nil {
		return RoutingParams{}, err
	}

	p := RoutingParams{
		LeftTurnPenalty:     durations[0],
		RightTurnPenalty:    durations[1],
		UTurnPenalty:        durations[2],
		AvoidHighStress:     avoidHighStress,
		AvoidRoads:          make(map[RoadID]struct{}, len(avoid)),
		AvoidRoadPenalty:    durations[3],
		BikesCanUseBusLanes: busLanes,
	}
	for _, r := range avoid {
		p.AvoidRoads[RoadID(r)] = struct{}{}
	}
	return p, nil
}

func readRoad(s *snapshotReader) (RoadSpec, error) {
	tokens, err := s.readFields(6)
	if err != nil {
		return RoadSpec{}, err
	}
	osmWayID, err := strconv.ParseInt(tokens[0], 10, 64)
	if err != nil {
		return RoadSpec{}, err
	}
	ends, err := parseIndexes(tokens[1:3])
	if err != nil {
		return RoadSpec{}, err
	}
	vals, err := parseFloats(tokens[3:5])
	if err != nil {
		return RoadSpec{}, err
	}
	bikes, err := strconv.ParseBool(tokens[5])
	if err != nil {
		return RoadSpec{}, err
	}
	highway := ""
	if len(tokens) > 6 {
		highway = tokens[6]
	}
	name, err := s.readQuoted()
	if err != nil {
		return RoadSpec{}, err
	}
	encoded, err := s.readQuoted()
	if err != nil {
		return RoadSpec{}, err
	}
	geometry, err := geo.LineStringFromPolyline(encoded)
	if err != nil {
		return RoadSpec{}, fmt.Errorf("%w: line %d: %w", ErrMalformedSnapshot, s.line, err)
	}
	return RoadSpec{
		OsmWayID:     osmWayID,
		Name:         name,
		Highway:      highway,
		SpeedLimit:   vals[0],
		Geometry:     geometry,
		Length:       vals[1],
		Src:          IntersectionID(ends[0]),
		Dst:          IntersectionID(ends[1]),
		BikesAllowed: bikes,
	}, nil
}

func readZone(s *snapshotReader, b *MapBuilder) error {
	tokens, err := s.readFields(3)
	if err != nil {
		return err
	}
	penalty, err := strconv.ParseInt(tokens[0], 10, 64)
	if err != nil {
		return err
	}
	numMembers, err := parseIndex(tokens[1])
	if err != nil {
		return err
	}
	if len(tokens) < 3+int(numMembers) {
		return fmt.Errorf("%w: line %d: expected %d zone members", ErrMalformedSnapshot, s.line, numMembers)
	}
	memberIdx, err := parseIndexes(tokens[2 : 2+numMembers])
	if err != nil {
		return err
	}
	rest := tokens[2+numMembers:]
	numRestricted, err := parseIndex(rest[0])
	if err != nil {
		return err
	}
	if len(rest) != 1+int(numRestricted) {
		return fmt.Errorf("%w: line %d: expected %d restricted modes", ErrMalformedSnapshot, s.line, numRestricted)
	}
	modeIdx, err := parseIndexes(rest[1:])
	if err != nil {
		return err
	}

	members := make([]RoadID, len(memberIdx))
	for i, r := range memberIdx {
		members[i] = RoadID(r)
	}
	restricted := make([]PathConstraints, len(modeIdx))
	for i, c := range modeIdx {
		restricted[i] = PathConstraints(c)
	}
	b.AddZone(members, restricted, time.Duration(penalty))
	return nil
}
