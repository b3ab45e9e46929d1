// Package algorithm holds the graph algorithms used by the reachability analyses: strongly
// connected components and single-source cost propagation.
package algorithm

import (
	"github.com/lintang-b-s/osm-reachability/pkg/datastructure"
)

type dfsFrame struct {
	node datastructure.Index
	next int
}

// KosarajuSCC returns the strongly connected components of g. components come out in reverse
// topological order of the condensation; nodes within a component in discovery order. O(V+E), iterative.
func KosarajuSCC[N comparable, E any](g *datastructure.DiGraphMap[N, E]) [][]N {
	n := g.NumberOfNodes()
	if n == 0 {
		return nil
	}

	// first pass: finish order on the forward graph
	visited := make([]bool, n)
	finished := make([]datastructure.Index, 0, n)
	stack := make([]dfsFrame, 0)
	for s := 0; s < n; s++ {
		if visited[s] {
			continue
		}
		visited[s] = true
		stack = append(stack, dfsFrame{node: datastructure.Index(s)})
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < g.GetOutDegree(top.node) {
				v := g.GetOutNeighbor(top.node, top.next)
				top.next++
				if !visited[v] {
					visited[v] = true
					stack = append(stack, dfsFrame{node: v})
				}
				continue
			}
			finished = append(finished, top.node)
			stack = stack[:len(stack)-1]
		}
	}

	// second pass: reverse graph in decreasing finish time
	assigned := make([]bool, n)
	components := make([][]N, 0)
	queue := make([]datastructure.Index, 0)
	for i := len(finished) - 1; i >= 0; i-- {
		root := finished[i]
		if assigned[root] {
			continue
		}
		assigned[root] = true
		component := make([]N, 0, 1)
		queue = append(queue[:0], root)
		for len(queue) > 0 {
			u := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			component = append(component, g.Node(u))
			for k := 0; k < g.GetInDegree(u); k++ {
				w := g.GetInNeighbor(u, k)
				if !assigned[w] {
					assigned[w] = true
					queue = append(queue, w)
				}
			}
		}
		components = append(components, component)
	}
	return components
}
