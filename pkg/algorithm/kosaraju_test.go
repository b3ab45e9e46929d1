package algorithm_test

import (
	"sort"
	"testing"

	"github.com/lintang-b-s/osm-reachability/pkg/algorithm"
	"github.com/lintang-b-s/osm-reachability/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
)

func sortedComponents(components [][]int) [][]int {
	for _, c := range components {
		sort.Ints(c)
	}
	sort.Slice(components, func(i, j int) bool {
		return components[i][0] < components[j][0]
	})
	return components
}

func TestKosarajuSCC(t *testing.T) {
	tests := []struct {
		name  string
		edges [][2]int
		want  [][]int
	}{
		{
			name:  "empty graph",
			edges: nil,
			want:  [][]int{},
		},
		{
			name:  "single cycle",
			edges: [][2]int{{0, 1}, {1, 2}, {2, 0}},
			want:  [][]int{{0, 1, 2}},
		},
		{
			name:  "chain",
			edges: [][2]int{{0, 1}, {1, 2}},
			want:  [][]int{{0}, {1}, {2}},
		},
		{
			name:  "two cycles joined by a bridge",
			edges: [][2]int{{0, 1}, {1, 0}, {1, 2}, {2, 3}, {3, 4}, {4, 2}},
			want:  [][]int{{0, 1}, {2, 3, 4}},
		},
		{
			name:  "self loop",
			edges: [][2]int{{5, 5}, {5, 6}},
			want:  [][]int{{5}, {6}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := datastructure.NewDiGraphMap[int, struct{}]()
			for _, e := range tt.edges {
				g.AddEdge(e[0], e[1], struct{}{})
			}
			got := algorithm.KosarajuSCC(g)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, sortedComponents(got))
		})
	}
}

// every node lands in exactly one component and every edge inside a component lies on a cycle.
func TestKosarajuSCCPartitionsRandomGraphs(t *testing.T) {
	rd := rand.New(rand.NewSource(42))
	for iter := 0; iter < 50; iter++ {
		n := rd.Intn(40) + 1
		g := datastructure.NewDiGraphMap[int, struct{}]()
		for i := 0; i < n; i++ {
			g.AddNode(i)
		}
		m := rd.Intn(3 * n)
		for i := 0; i < m; i++ {
			g.AddEdge(rd.Intn(n), rd.Intn(n), struct{}{})
		}

		components := algorithm.KosarajuSCC(g)
		owner := make(map[int]int)
		for ci, c := range components {
			for _, v := range c {
				_, dup := owner[v]
				assert.False(t, dup)
				owner[v] = ci
			}
		}
		assert.Len(t, owner, n)

		for ci, c := range components {
			for _, u := range c {
				for _, v := range c {
					assert.True(t, reaches(g, u, v), "component %d: %d cannot reach %d", ci, u, v)
				}
			}
		}
	}
}

func reaches(g *datastructure.DiGraphMap[int, struct{}], from, to int) bool {
	s, _ := g.NodeIndex(from)
	t, _ := g.NodeIndex(to)
	seen := map[datastructure.Index]bool{s: true}
	stack := []datastructure.Index{s}
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if u == t {
			return true
		}
		g.ForOutEdgesOf(u, func(v datastructure.Index, _ struct{}) {
			if !seen[v] {
				seen[v] = true
				stack = append(stack, v)
			}
		})
	}
	return false
}
