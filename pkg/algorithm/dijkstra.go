package algorithm

import (
	"fmt"
	"time"

	"github.com/lintang-b-s/osm-reachability/pkg/datastructure"
)

// CostFunc returns the non-negative cost of traversing the edge (from, to) carrying weight.
type CostFunc[N comparable, E any] func(from, to N, weight E) time.Duration

type Options[N comparable] struct {
	goal       N
	hasGoal    bool
	returnPath bool
}

type Option[N comparable] func(*Options[N])

// WithGoal stops the search once goal is settled.
func WithGoal[N comparable](goal N) Option[N] {
	return func(o *Options[N]) {
		o.goal = goal
		o.hasGoal = true
	}
}

// WithReturnPath records the predecessor edge of every settled node.
func WithReturnPath[N comparable]() Option[N] {
	return func(o *Options[N]) {
		o.returnPath = true
	}
}

type PathEdge[N comparable, E any] struct {
	From   N
	Weight E
}

// ShortestPaths holds the settled cost of every node reached from the source.
type ShortestPaths[N comparable, E any] struct {
	source N
	Dist   map[N]time.Duration
	Prev   map[N]PathEdge[N, E] // nil unless WithReturnPath
}

// PathTo returns the edge weights along the shortest path from the source to target.
func (sp *ShortestPaths[N, E]) PathTo(target N) ([]E, bool) {
	if _, ok := sp.Dist[target]; !ok || sp.Prev == nil {
		return nil, false
	}
	reversed := make([]E, 0)
	for cur := target; cur != sp.source; {
		edge, ok := sp.Prev[cur]
		if !ok {
			return nil, false
		}
		reversed = append(reversed, edge.Weight)
		cur = edge.From
	}
	path := make([]E, len(reversed))
	for i := range reversed {
		path[len(reversed)-1-i] = reversed[i]
	}
	return path, true
}

// Dijkstra settles nodes of g in increasing cost from source. cost is evaluated lazily for every
// relaxed edge, so it may depend on the edge's tail. a source missing from g yields an empty result.
// O((V+E) logV)
func Dijkstra[N comparable, E any](g *datastructure.DiGraphMap[N, E], source N, cost CostFunc[N, E],
	opts ...Option[N]) *ShortestPaths[N, E] {
	cfg := Options[N]{}
	for _, opt := range opts {
		opt(&cfg)
	}

	sp := &ShortestPaths[N, E]{
		source: source,
		Dist:   make(map[N]time.Duration),
	}
	if cfg.returnPath {
		sp.Prev = make(map[N]PathEdge[N, E])
	}

	s, ok := g.NodeIndex(source)
	if !ok {
		return sp
	}

	n := g.NumberOfNodes()
	dist := make([]time.Duration, n)
	reached := make([]bool, n)
	settled := make([]bool, n)
	prev := make([]datastructure.Index, n)
	prevWeight := make([]E, n)

	pq := datastructure.NewMinHeap[datastructure.Index]()
	reached[s] = true
	pq.Insert(datastructure.NewPriorityQueueNode(0, s))

	for pq.Size() > 0 {
		item, _ := pq.ExtractMin()
		u := item.GetItem()
		settled[u] = true
		uNode := g.Node(u)
		sp.Dist[uNode] = dist[u]
		if cfg.returnPath && u != s {
			sp.Prev[uNode] = PathEdge[N, E]{From: g.Node(prev[u]), Weight: prevWeight[u]}
		}
		if cfg.hasGoal && uNode == cfg.goal {
			break
		}

		g.ForOutEdgesOf(u, func(v datastructure.Index, weight E) {
			if settled[v] {
				return
			}
			c := cost(uNode, g.Node(v), weight)
			if c < 0 {
				panic(fmt.Sprintf("negative edge cost %v on %v -> %v", c, uNode, g.Node(v)))
			}
			newDist := dist[u] + c
			if reached[v] && newDist >= dist[v] {
				return
			}
			reached[v] = true
			dist[v] = newDist
			prev[v] = u
			prevWeight[v] = weight
			pq.InsertOrDecrease(datastructure.NewPriorityQueueNode(float64(newDist), v))
		})
	}
	return sp
}
