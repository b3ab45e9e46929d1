package algorithm_test

import (
	"testing"
	"time"

	"github.com/lintang-b-s/osm-reachability/pkg/algorithm"
	"github.com/lintang-b-s/osm-reachability/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func weightCost(_, _ string, w time.Duration) time.Duration {
	return w
}

func triangle() *datastructure.DiGraphMap[string, time.Duration] {
	g := datastructure.NewDiGraphMap[string, time.Duration]()
	g.AddEdge("a", "b", 1*time.Second)
	g.AddEdge("b", "c", 2*time.Second)
	g.AddEdge("a", "c", 5*time.Second)
	g.AddNode("d")
	return g
}

func TestDijkstra(t *testing.T) {
	sp := algorithm.Dijkstra(triangle(), "a", weightCost)

	assert.Equal(t, map[string]time.Duration{
		"a": 0,
		"b": 1 * time.Second,
		"c": 3 * time.Second,
	}, sp.Dist)
	assert.Nil(t, sp.Prev)
}

func TestDijkstraMissingSource(t *testing.T) {
	sp := algorithm.Dijkstra(triangle(), "z", weightCost)
	assert.Empty(t, sp.Dist)
}

func TestDijkstraReturnPath(t *testing.T) {
	sp := algorithm.Dijkstra(triangle(), "a", weightCost, algorithm.WithReturnPath[string]())

	path, ok := sp.PathTo("c")
	require.True(t, ok)
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, path)

	path, ok = sp.PathTo("a")
	require.True(t, ok)
	assert.Empty(t, path)

	_, ok = sp.PathTo("d")
	assert.False(t, ok)
}

func TestDijkstraGoal(t *testing.T) {
	sp := algorithm.Dijkstra(triangle(), "a", weightCost, algorithm.WithGoal("b"))

	assert.Equal(t, 1*time.Second, sp.Dist["b"])
	assert.NotContains(t, sp.Dist, "c")
}

// the cost closure sees the tail of every relaxed edge.
func TestDijkstraCostDependsOnTail(t *testing.T) {
	g := datastructure.NewDiGraphMap[string, time.Duration]()
	g.AddEdge("a", "b", 0)
	g.AddEdge("b", "c", 0)
	tailCost := map[string]time.Duration{"a": 30 * time.Second, "b": 40 * time.Second}

	sp := algorithm.Dijkstra(g, "a", func(from, _ string, _ time.Duration) time.Duration {
		return tailCost[from]
	})
	assert.Equal(t, 70*time.Second, sp.Dist["c"])
}

func TestDijkstraNegativeCostPanics(t *testing.T) {
	g := datastructure.NewDiGraphMap[string, time.Duration]()
	g.AddEdge("a", "b", -1)
	assert.Panics(t, func() {
		algorithm.Dijkstra(g, "a", weightCost)
	})
}

// settled costs satisfy the triangle inequality on every edge.
func TestDijkstraRandomGraphs(t *testing.T) {
	rd := rand.New(rand.NewSource(7))
	for iter := 0; iter < 50; iter++ {
		n := rd.Intn(30) + 1
		g := datastructure.NewDiGraphMap[int, time.Duration]()
		for i := 0; i < n; i++ {
			g.AddNode(i)
		}
		for i := 0; i < 3*n; i++ {
			g.AddEdge(rd.Intn(n), rd.Intn(n), time.Duration(rd.Intn(100))*time.Second)
		}

		sp := algorithm.Dijkstra(g, 0, func(_, _ int, w time.Duration) time.Duration { return w },
			algorithm.WithReturnPath[int]())
		assert.Equal(t, time.Duration(0), sp.Dist[0])
		g.ForEdges(func(from, to int, w time.Duration) {
			df, ok := sp.Dist[from]
			if !ok {
				return
			}
			dt, ok := sp.Dist[to]
			require.True(t, ok)
			assert.LessOrEqual(t, dt, df+w)
		})
		for v, d := range sp.Dist {
			path, ok := sp.PathTo(v)
			require.True(t, ok)
			var sum time.Duration
			for _, w := range path {
				sum += w
			}
			assert.Equal(t, d, sum)
		}
	}
}
