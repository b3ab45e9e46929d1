package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/lintang-b-s/osm-reachability/pkg/connectivity"
	"github.com/lintang-b-s/osm-reachability/pkg/datastructure"
	"github.com/lintang-b-s/osm-reachability/pkg/logger"
	"github.com/lintang-b-s/osm-reachability/pkg/osmparser"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	viper.AutomaticEnv()
	viper.SetDefault("MAP_FILE", "./data/solo_jogja.osm.pbf")
	viper.SetDefault("SNAPSHOT_FILE", "./data/solo_jogja.map.bz2")
	viper.SetDefault("REPORT_FILE", "./data/disconnected.geojson")
	viper.SetDefault("NUM_WORKERS", 4)
	viper.SetDefault("MODES", "pedestrian,car,bike,bus,train")
	viper.SetDefault("MAX_ANCHOR_DISTANCE", 100.0)
	viper.SetDefault("BIKES_CAN_USE_BUS_LANES", true)
	viper.SetDefault("COST_FROM_BUILDING", -1)
	viper.SetDefault("COST_MODE", "car")
	viper.SetDefault("COST_TIME_LIMIT", "15m")

	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m, err := loadMap(ctx, logger)
	if err != nil {
		logger.Fatal("failed to load map", zap.Error(err))
	}
	logger.Info("map loaded",
		zap.String("name", m.GetName()),
		zap.Int("roads", len(m.AllRoads())),
		zap.Int("lanes", m.NumberOfLanes()),
		zap.Int("turns", len(m.AllTurns())),
		zap.Int("buildings", len(m.AllBuildings())),
		zap.Int("zones", len(m.AllZones())),
	)

	modes, err := parseModes(viper.GetString("MODES"))
	if err != nil {
		logger.Fatal("invalid MODES", zap.Error(err))
	}
	reports, err := connectivity.Validate(ctx, m, modes, viper.GetInt("NUM_WORKERS"), logger)
	if err != nil {
		logger.Fatal("connectivity validation failed", zap.Error(err))
	}

	reportFile := viper.GetString("REPORT_FILE")
	if err := connectivity.WriteDisconnectedGeoJSON(reportFile, m, reports); err != nil {
		logger.Fatal("failed to write report", zap.String("file", reportFile), zap.Error(err))
	}
	logger.Info("report written", zap.String("file", reportFile))

	if b := viper.GetInt("COST_FROM_BUILDING"); b >= 0 {
		reachableFrom(m, datastructure.BuildingID(b), logger)
	}
}

// loadMap reads SNAPSHOT_FILE when it exists, otherwise imports MAP_FILE and writes the snapshot.
func loadMap(ctx context.Context, logger *zap.Logger) (*datastructure.Map, error) {
	snapshot := viper.GetString("SNAPSHOT_FILE")
	if _, err := os.Stat(snapshot); err == nil {
		logger.Info("reading snapshot", zap.String("file", snapshot))
		return datastructure.ReadMap(snapshot)
	}

	opts := osmparser.DefaultOptions()
	mapFile := viper.GetString("MAP_FILE")
	opts.Name = strings.TrimSuffix(strings.TrimSuffix(filepath.Base(mapFile), ".pbf"), ".osm")
	opts.MaxAnchorDistance = viper.GetFloat64("MAX_ANCHOR_DISTANCE")
	opts.BikesCanUseBusLanes = viper.GetBool("BIKES_CAN_USE_BUS_LANES")

	parser := osmparser.NewOSMParser(opts)
	m, err := parser.Parse(ctx, mapFile, logger)
	if err != nil {
		return nil, err
	}
	for _, w := range parser.Warnings() {
		logger.Debug("import warning", zap.Error(w))
	}

	if err := datastructure.WriteMap(snapshot, m); err != nil {
		logger.Warn("failed to write snapshot", zap.String("file", snapshot), zap.Error(err))
	}
	return m, nil
}

func parseModes(s string) ([]datastructure.PathConstraints, error) {
	var modes []datastructure.PathConstraints
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		c, ok := datastructure.ParsePathConstraints(name)
		if !ok {
			return nil, errors.New("unknown mode " + name)
		}
		modes = append(modes, c)
	}
	if len(modes) == 0 {
		return nil, errors.New("no mode selected")
	}
	return modes, nil
}

func reachableFrom(m *datastructure.Map, start datastructure.BuildingID, logger *zap.Logger) {
	mode, ok := datastructure.ParsePathConstraints(viper.GetString("COST_MODE"))
	if !ok || !mode.IsVehicle() {
		logger.Error("COST_MODE must be a vehicle mode", zap.String("mode", viper.GetString("COST_MODE")))
		return
	}
	if !m.HasBuilding(start) {
		logger.Error("unknown building", zap.Uint32("building", uint32(start)))
		return
	}
	limit := viper.GetDuration("COST_TIME_LIMIT")
	costs := connectivity.AllVehicleCostsFrom(m, start, limit, mode)
	logger.Info("buildings reachable",
		zap.Uint32("from", uint32(start)),
		zap.Stringer("mode", mode),
		zap.Duration("limit", limit),
		zap.Int("buildings", len(costs)),
	)
}
