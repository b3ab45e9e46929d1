package concurrent_test

import (
	"context"
	"sort"
	"testing"

	"github.com/lintang-b-s/osm-reachability/pkg/concurrent"
	"github.com/stretchr/testify/assert"
)

func TestWorkerPool(t *testing.T) {
	jobs := []int{1, 2, 3, 4, 5, 6, 7, 8}
	wp := concurrent.NewWorkerPool[int, int](3, len(jobs))
	wp.Start(context.Background(), func(_ context.Context, job int) int {
		return job * job
	})
	for _, j := range jobs {
		wp.AddJob(j)
	}
	wp.Close()
	wp.Wait()

	got := make([]int, 0, len(jobs))
	for res := range wp.CollectResults() {
		got = append(got, res)
	}
	sort.Ints(got)
	assert.Equal(t, []int{1, 4, 9, 16, 25, 36, 49, 64}, got)
}

func TestWorkerPoolCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	wp := concurrent.NewWorkerPool[int, int](0, 4)
	wp.Start(ctx, func(_ context.Context, job int) int {
		return job
	})
	for j := 0; j < 4; j++ {
		wp.AddJob(j)
	}
	wp.Close()
	wp.Wait()

	assert.Empty(t, wp.CollectResults())
}
