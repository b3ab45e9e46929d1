package connectivity

import (
	"fmt"
	"os"

	"github.com/lintang-b-s/osm-reachability/pkg/datastructure"
	"github.com/lintang-b-s/osm-reachability/pkg/geo"
	"github.com/paulmach/orb/geojson"
)

// DisconnectedFeatures returns one LineString feature per disconnected lane of every report.
func DisconnectedFeatures(m *datastructure.Map, reports []ModeReport) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, r := range reports {
		for _, id := range r.Disconnected {
			l := m.GetLane(id)
			if len(l.GetGeometry()) < 2 {
				continue
			}
			road := m.GetRoad(l.GetRoad())
			f := geojson.NewFeature(geo.RamerDouglasPeucker(l.GetGeometry()))
			f.ID = fmt.Sprintf("%s/%d", r.Mode, id)
			f.Properties["mode"] = r.Mode.String()
			f.Properties["lane"] = int(id)
			f.Properties["lane_type"] = l.GetLaneType().String()
			f.Properties["road"] = l.GetDirectedParent().String()
			f.Properties["osm_way_id"] = road.GetOsmWayID()
			f.Properties["name"] = road.GetName()
			f.Properties["polyline"] = geo.PolylineFromLineString(l.GetGeometry())
			fc.Append(f)
		}
	}
	return fc
}

// WriteDisconnectedGeoJSON writes DisconnectedFeatures to filename.
func WriteDisconnectedGeoJSON(filename string, m *datastructure.Map, reports []ModeReport) error {
	buf, err := DisconnectedFeatures(m, reports).MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal disconnected lanes: %w", err)
	}
	if err := os.WriteFile(filename, buf, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return nil
}
