package osmparser

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/lintang-b-s/osm-reachability/pkg"
	"github.com/lintang-b-s/osm-reachability/pkg/datastructure"
	"github.com/lintang-b-s/osm-reachability/pkg/geo"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type Options struct {
	Name                string
	MaxAnchorDistance   float64 // meter
	BikesCanUseBusLanes bool
	ZonePenalty         time.Duration
}

func DefaultOptions() Options {
	return Options{
		Name:                "map",
		MaxAnchorDistance:   pkg.DEFAULT_MAX_ANCHOR_DISTANCE,
		BikesCanUseBusLanes: true,
		ZonePenalty:         DEFAULT_ZONE_PENALTY,
	}
}

// OpenScanner returns a fresh scanner positioned at the start of the data.
type OpenScanner func() (osm.Scanner, error)

type OsmParser struct {
	opts            Options
	wayNodeMap      map[int64]NodeType
	buildingNodeMap map[int64]struct{}
	acceptedNodeMap map[int64]orb.Point
	barrierNodes    map[int64]bool
	maxNodeID       int64
	restrictions    map[int64][]restriction // via node -> restrictions
	buildings       []buildingWay

	builder       *datastructure.MapBuilder
	intersections map[int64]datastructure.IntersectionID
	roads         []roadInfo // road id -> source way

	// problems with single ways or buildings, reported but not fatal
	warnings error
}

func NewOSMParser(opts Options) *OsmParser {
	if opts.MaxAnchorDistance <= 0 {
		opts.MaxAnchorDistance = pkg.DEFAULT_MAX_ANCHOR_DISTANCE
	}
	return &OsmParser{
		opts:            opts,
		wayNodeMap:      make(map[int64]NodeType),
		buildingNodeMap: make(map[int64]struct{}),
		acceptedNodeMap: make(map[int64]orb.Point),
		barrierNodes:    make(map[int64]bool),
		restrictions:    make(map[int64][]restriction),
		intersections:   make(map[int64]datastructure.IntersectionID),
	}
}

// Warnings lists the ways and buildings that were skipped or imported with defaults.
func (p *OsmParser) Warnings() []error {
	return multierr.Errors(p.warnings)
}

// Parse imports an .osm.pbf file, or an .osm xml file for any other extension.
func (p *OsmParser) Parse(ctx context.Context, mapFile string, logger *zap.Logger) (*datastructure.Map, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, fmt.Errorf("open map file: %w", err)
	}
	defer f.Close()

	open := func() (osm.Scanner, error) {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		if strings.HasSuffix(mapFile, ".pbf") {
			// one decoder keeps objects in file order
			return osmpbf.New(ctx, f, 1), nil
		}
		return osmxml.New(ctx, f), nil
	}
	return p.ParseWith(open, logger)
}

// ParseWith runs both import passes over the scanners returned by open. nodes must precede ways in the data.
func (p *OsmParser) ParseWith(open OpenScanner, logger *zap.Logger) (*datastructure.Map, error) {
	p.builder = datastructure.NewMapBuilder(p.opts.Name)
	params := datastructure.DefaultRoutingParams()
	params.BikesCanUseBusLanes = p.opts.BikesCanUseBusLanes
	p.builder.SetRoutingParams(params)

	scanner, err := open()
	if err != nil {
		return nil, fmt.Errorf("open scanner: %w", err)
	}
	if err := p.scanWaysAndRelations(scanner, logger); err != nil {
		return nil, err
	}

	scanner, err = open()
	if err != nil {
		return nil, fmt.Errorf("open scanner: %w", err)
	}
	if err := p.scanNodesAndRoads(scanner, logger); err != nil {
		return nil, err
	}

	logger.Sugar().Infof("building turns of %d intersections...", len(p.intersections))
	p.buildTurns()
	logger.Sugar().Infof("anchoring %d buildings...", len(p.buildings))
	p.buildBuildings()
	p.buildZones()

	if p.warnings != nil {
		logger.Warn("skipped parts of the openstreetmap data",
			zap.Int("problems", len(p.Warnings())), zap.Error(p.warnings))
	}

	m, err := p.builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build map: %w", err)
	}
	logger.Info("map imported",
		zap.String("name", m.GetName()),
		zap.Int("intersections", len(m.AllIntersections())),
		zap.Int("roads", len(m.AllRoads())),
		zap.Int("lanes", m.NumberOfLanes()),
		zap.Int("turns", len(m.AllTurns())),
		zap.Int("buildings", len(m.AllBuildings())),
		zap.Int("zones", len(m.AllZones())),
	)
	return m, nil
}

// scanWaysAndRelations classifies the nodes of every accepted way and collects buildings and turn restrictions.
func (p *OsmParser) scanWaysAndRelations(scanner osm.Scanner, logger *zap.Logger) error {
	defer scanner.Close()
	countWays := 0
	for scanner.Scan() {
		o := scanner.Object()

		tipe := o.ObjectID().Type()

		switch tipe {
		case osm.TypeWay:
			{
				way := o.(*osm.Way)
				if isBuilding(way) {
					b := buildingWay{id: int64(way.ID), name: buildingName(way), nodes: make([]int64, 0, len(way.Nodes))}
					for _, n := range way.Nodes {
						b.nodes = append(b.nodes, int64(n.ID))
						p.buildingNodeMap[int64(n.ID)] = struct{}{}
					}
					p.buildings = append(p.buildings, b)
					continue
				}
				if len(way.Nodes) < 2 || !acceptOsmWay(way) {
					continue
				}
				if (countWays+1)%50000 == 0 {
					logger.Sugar().Infof("scanning openstreetmap ways: %d...", countWays+1)
				}
				countWays++

				for i, node := range way.Nodes {
					if _, ok := p.wayNodeMap[int64(node.ID)]; !ok {
						if i == 0 || i == len(way.Nodes)-1 {
							p.wayNodeMap[int64(node.ID)] = END_NODE
						} else {
							p.wayNodeMap[int64(node.ID)] = BETWEEN_NODE
						}
					} else {
						p.wayNodeMap[int64(node.ID)] = JUNCTION_NODE
					}
				}
			}
		case osm.TypeRelation:
			{
				relation := o.(*osm.Relation)
				if rest, ok := parseRestrictionRelation(relation); ok {
					p.restrictions[rest.via] = append(p.restrictions[rest.via], rest)
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan ways: %w", err)
	}
	return nil
}

func parseRestrictionRelation(relation *osm.Relation) (restriction, bool) {
	tagVal := relation.Tags.Find("restriction")
	if tagVal == "" {
		tagVal = relation.Tags.Find("restriction:motorcar")
	}
	if tagVal == "" {
		return restriction{}, false
	}

	rest := restriction{turnRestriction: parseTurnRestriction(tagVal)}
	for _, member := range relation.Members {
		switch member.Role {
		case "from":
			rest.from = member.Ref
		case "to":
			rest.to = member.Ref
		case "via":
			if member.Type != osm.TypeNode {
				// via ways are not supported
				return restriction{}, false
			}
			rest.via = member.Ref
		}
	}
	if rest.from == 0 || rest.to == 0 || rest.via == 0 {
		return restriction{}, false
	}
	if !rest.turnRestriction.isBan() && !rest.turnRestriction.isOnly() {
		return restriction{}, false
	}
	return rest, true
}

// scanNodesAndRoads stores node coordinates, then cuts every accepted way into roads.
func (p *OsmParser) scanNodesAndRoads(scanner osm.Scanner, logger *zap.Logger) error {
	defer scanner.Close()
	countWays := 0
	countNodes := 0
	for scanner.Scan() {
		o := scanner.Object()

		tipe := o.ObjectID().Type()

		switch tipe {
		case osm.TypeWay:
			{
				way := o.(*osm.Way)
				if len(way.Nodes) < 2 || isBuilding(way) || !acceptOsmWay(way) {
					continue
				}
				if (countWays+1)%50000 == 0 {
					logger.Sugar().Infof("processing openstreetmap ways: %d...", countWays+1)
				}
				countWays++

				if err := p.processWay(way); err != nil {
					p.warnings = multierr.Append(p.warnings, fmt.Errorf("way %d: %w", way.ID, err))
				}
			}
		case osm.TypeNode:
			{
				if (countNodes+1)%50000 == 0 {
					logger.Sugar().Infof("processing openstreetmap nodes: %d...", countNodes+1)
				}
				countNodes++
				node := o.(*osm.Node)

				p.maxNodeID = max(p.maxNodeID, int64(node.ID))

				_, onWay := p.wayNodeMap[int64(node.ID)]
				_, onBuilding := p.buildingNodeMap[int64(node.ID)]
				if onWay || onBuilding {
					p.acceptedNodeMap[int64(node.ID)] = orb.Point{node.Lon, node.Lat}
				}

				accessType := node.Tags.Find("access")
				barrierType := node.Tags.Find("barrier")
				if _, ok := acceptedBarrierType[barrierType]; ok && accessType == "no" {
					p.barrierNodes[int64(node.ID)] = true
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan nodes: %w", err)
	}
	return nil
}

func (p *OsmParser) processWay(way *osm.Way) error {
	var problems error
	highway := way.Tags.Find("highway")
	speed, err := parseMaxSpeed(way.Tags.Find("maxspeed"))
	if err != nil {
		problems = multierr.Append(problems, err)
	}
	if speed == 0 {
		speed = roadTypeMaxSpeed2(highway)
	}

	w := &wayContext{
		id:           int64(way.ID),
		name:         way.Tags.Find("name"),
		highway:      highway,
		speed:        speed,
		lanes:        lanesForWay(way),
		bikesAllowed: bikesAllowed(way),
		access:       parseAccess(way),
	}
	if w.highway == "" {
		w.highway = way.Tags.Find("railway")
	}
	if w.lanes.empty() {
		return multierr.Append(problems, fmt.Errorf("no lanes"))
	}

	waySegment := []node{}
	missing := 0
	for _, wayNode := range way.Nodes {
		coord, ok := p.acceptedNodeMap[int64(wayNode.ID)]
		if !ok {
			missing++
			continue
		}
		nodeData := node{
			id:    int64(wayNode.ID),
			coord: coord,
		}
		if p.isJunctionNode(nodeData.id) {
			waySegment = append(waySegment, nodeData)
			p.processSegment(waySegment, w)
			waySegment = []node{nodeData}
		} else {
			waySegment = append(waySegment, nodeData)
		}
	}
	if len(waySegment) > 1 {
		p.processSegment(waySegment, w)
	}
	if missing > 0 {
		problems = multierr.Append(problems, fmt.Errorf("%d nodes without coordinates", missing))
	}
	return problems
}

func (p *OsmParser) processSegment(segment []node, w *wayContext) {
	if len(segment) == 2 && segment[0].id == segment[1].id {
		return
	} else if len(segment) > 2 && segment[0].id == segment[len(segment)-1].id {
		// loop
		p.processSegment2(segment[0:len(segment)-1], w)
		p.processSegment2(segment[len(segment)-2:], w)
	} else {
		p.processSegment2(segment, w)
	}
}

// processSegment2 cuts the segment at barrier nodes. the part after a barrier starts at a copy of it, so
// both sides stay disconnected.
func (p *OsmParser) processSegment2(segment []node, w *wayContext) {
	waySegment := []node{}
	for i := 0; i < len(segment); i++ {
		nodeData := segment[i]
		if _, ok := p.barrierNodes[nodeData.id]; ok {
			if len(waySegment) != 0 {
				waySegment = append(waySegment, nodeData)
				p.addRoad(waySegment, w)
				waySegment = []node{}
			}
			nodeData = p.copyNode(nodeData)
		}
		waySegment = append(waySegment, nodeData)
	}
	if len(waySegment) > 1 {
		p.addRoad(waySegment, w)
	}
}

func (p *OsmParser) copyNode(nodeData node) node {
	// same coordinate under an unused id
	p.maxNodeID++
	p.acceptedNodeMap[p.maxNodeID] = nodeData.coord
	return node{id: p.maxNodeID, coord: nodeData.coord}
}

func (p *OsmParser) intersectionFor(n node) datastructure.IntersectionID {
	if id, ok := p.intersections[n.id]; ok {
		return id
	}
	id := p.builder.AddIntersection(n.id, n.coord)
	p.intersections[n.id] = id
	return id
}

func (p *OsmParser) addRoad(segment []node, w *wayContext) {
	from := segment[0]
	to := segment[len(segment)-1]
	if from.id == to.id {
		return
	}

	geometry := make(orb.LineString, 0, len(segment))
	for _, n := range segment {
		geometry = append(geometry, n.coord)
	}
	length := geo.LineStringLength(geometry)

	road := p.builder.AddRoad(datastructure.RoadSpec{
		OsmWayID:     w.id,
		Name:         w.name,
		Highway:      w.highway,
		SpeedLimit:   w.speed / 3.6,
		Geometry:     geo.RamerDouglasPeucker(geometry), // simplify road geometry
		Length:       length,
		Src:          p.intersectionFor(from),
		Dst:          p.intersectionFor(to),
		BikesAllowed: w.bikesAllowed,
	})
	p.roads = append(p.roads, roadInfo{wayID: w.id, access: w.access})

	for _, lt := range w.lanes.fwd {
		p.builder.AddLane(road, datastructure.Fwd, lt)
	}
	for _, lt := range w.lanes.back {
		p.builder.AddLane(road, datastructure.Back, lt)
	}
}

func (p *OsmParser) isJunctionNode(nodeID int64) bool {
	return p.wayNodeMap[nodeID] == JUNCTION_NODE
}

func acceptOsmWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	if highway != "" {
		_, ok := acceptedHighway[highway]
		return ok && way.Tags.Find("area") != "yes"
	}
	return way.Tags.Find("railway") == "tram"
}

func isBuilding(way *osm.Way) bool {
	if way.Tags.Find("building") == "" || len(way.Nodes) < 4 {
		return false
	}
	return way.Nodes[0].ID == way.Nodes[len(way.Nodes)-1].ID
}

func buildingName(way *osm.Way) string {
	if name := way.Tags.Find("name"); name != "" {
		return name
	}
	number, street := way.Tags.Find("addr:housenumber"), way.Tags.Find("addr:street")
	return strings.TrimSpace(number + " " + street)
}
