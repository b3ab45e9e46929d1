package connectivity

import (
	"context"
	"sort"
	"time"

	"github.com/lintang-b-s/osm-reachability/pkg/concurrent"
	"github.com/lintang-b-s/osm-reachability/pkg/datastructure"
	"go.uber.org/zap"
)

// ModeReport is the connectivity summary of one travel mode.
type ModeReport struct {
	Mode         datastructure.PathConstraints
	Eligible     int
	Main         []datastructure.LaneID
	Disconnected []datastructure.LaneID // sorted
	Elapsed      time.Duration
}

func (r ModeReport) DisconnectedRatio() float64 {
	if r.Eligible == 0 {
		return 0
	}
	return float64(len(r.Disconnected)) / float64(r.Eligible)
}

func sortedLanes(set map[datastructure.LaneID]struct{}) []datastructure.LaneID {
	lanes := make([]datastructure.LaneID, 0, len(set))
	for l := range set {
		lanes = append(lanes, l)
	}
	sort.Slice(lanes, func(i, j int) bool { return lanes[i] < lanes[j] })
	return lanes
}

// Validate runs FindSCC for every mode on numWorkers goroutines sharing m. reports come back in the
// order of modes. a mode with disconnected lanes is logged as a warning.
func Validate(ctx context.Context, m *datastructure.Map, modes []datastructure.PathConstraints, numWorkers int,
	logger *zap.Logger) ([]ModeReport, error) {
	type job struct {
		idx  int
		mode datastructure.PathConstraints
	}
	type result struct {
		idx    int
		report ModeReport
	}

	wp := concurrent.NewWorkerPool[job, result](numWorkers, len(modes))
	wp.Start(ctx, func(_ context.Context, j job) result {
		start := time.Now()
		mainSet, disconnected := FindSCC(m, j.mode)
		eligible := 0
		m.ForEachLane(func(l *datastructure.Lane) {
			if j.mode.CanUse(l, m) {
				eligible++
			}
		})
		return result{idx: j.idx, report: ModeReport{
			Mode:         j.mode,
			Eligible:     eligible,
			Main:         sortedLanes(mainSet),
			Disconnected: sortedLanes(disconnected),
			Elapsed:      time.Since(start),
		}}
	})
	for i, mode := range modes {
		wp.AddJob(job{idx: i, mode: mode})
	}
	wp.Close()
	wp.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reports := make([]ModeReport, len(modes))
	for res := range wp.CollectResults() {
		reports[res.idx] = res.report
	}

	for _, r := range reports {
		fields := []zap.Field{
			zap.String("mode", r.Mode.String()),
			zap.Int("eligible", r.Eligible),
			zap.Int("main", len(r.Main)),
			zap.Int("disconnected", len(r.Disconnected)),
			zap.Duration("elapsed", r.Elapsed),
		}
		if len(r.Disconnected) > 0 {
			logger.Warn("lanes disconnected from the main network", fields...)
			continue
		}
		logger.Info("network connected", fields...)
	}
	return reports, nil
}
