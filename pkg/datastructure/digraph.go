package datastructure

// DiGraphMap is a directed graph keyed by comparable node values, with one weight per (from, to)
// pair. nodes and edges are iterated in insertion order so traversals are deterministic.
type DiGraphMap[N comparable, E any] struct {
	index     map[N]Index
	nodes     []N
	outEdges  [][]Index // node -> edge ids
	inEdges   [][]Index
	edges     []diEdge[E]
	edgeIndex map[[2]Index]Index
}

type diEdge[E any] struct {
	from   Index
	to     Index
	weight E
}

func NewDiGraphMap[N comparable, E any]() *DiGraphMap[N, E] {
	return &DiGraphMap[N, E]{
		index:     make(map[N]Index),
		edgeIndex: make(map[[2]Index]Index),
	}
}

// AddNode adds n if missing and returns its dense index.
func (g *DiGraphMap[N, E]) AddNode(n N) Index {
	if id, ok := g.index[n]; ok {
		return id
	}
	id := Index(len(g.nodes))
	g.index[n] = id
	g.nodes = append(g.nodes, n)
	g.outEdges = append(g.outEdges, nil)
	g.inEdges = append(g.inEdges, nil)
	return id
}

// AddEdge adds both endpoints if missing. an existing (from, to) edge keeps its position and gets the new weight.
func (g *DiGraphMap[N, E]) AddEdge(from, to N, weight E) {
	u := g.AddNode(from)
	v := g.AddNode(to)
	key := [2]Index{u, v}
	if e, ok := g.edgeIndex[key]; ok {
		g.edges[e].weight = weight
		return
	}
	e := Index(len(g.edges))
	g.edgeIndex[key] = e
	g.edges = append(g.edges, diEdge[E]{from: u, to: v, weight: weight})
	g.outEdges[u] = append(g.outEdges[u], e)
	g.inEdges[v] = append(g.inEdges[v], e)
}

func (g *DiGraphMap[N, E]) NumberOfNodes() int {
	return len(g.nodes)
}

func (g *DiGraphMap[N, E]) NumberOfEdges() int {
	return len(g.edges)
}

func (g *DiGraphMap[N, E]) ContainsNode(n N) bool {
	_, ok := g.index[n]
	return ok
}

func (g *DiGraphMap[N, E]) ContainsEdge(from, to N) bool {
	u, ok := g.index[from]
	if !ok {
		return false
	}
	v, ok := g.index[to]
	if !ok {
		return false
	}
	_, ok = g.edgeIndex[[2]Index{u, v}]
	return ok
}

func (g *DiGraphMap[N, E]) GetEdge(from, to N) (E, bool) {
	var zero E
	u, ok := g.index[from]
	if !ok {
		return zero, false
	}
	v, ok := g.index[to]
	if !ok {
		return zero, false
	}
	e, ok := g.edgeIndex[[2]Index{u, v}]
	if !ok {
		return zero, false
	}
	return g.edges[e].weight, true
}

func (g *DiGraphMap[N, E]) Nodes() []N {
	return g.nodes
}

func (g *DiGraphMap[N, E]) NodeIndex(n N) (Index, bool) {
	id, ok := g.index[n]
	return id, ok
}

func (g *DiGraphMap[N, E]) Node(id Index) N {
	return g.nodes[id]
}

// ForOutEdgesOf calls handle for every edge leaving the node with index u.
func (g *DiGraphMap[N, E]) ForOutEdgesOf(u Index, handle func(to Index, weight E)) {
	for _, e := range g.outEdges[u] {
		handle(g.edges[e].to, g.edges[e].weight)
	}
}

// ForInEdgesOf calls handle for every edge entering the node with index v.
func (g *DiGraphMap[N, E]) ForInEdgesOf(v Index, handle func(from Index, weight E)) {
	for _, e := range g.inEdges[v] {
		handle(g.edges[e].from, g.edges[e].weight)
	}
}

// ForEdges calls handle for every edge in insertion order.
func (g *DiGraphMap[N, E]) ForEdges(handle func(from, to N, weight E)) {
	for _, e := range g.edges {
		handle(g.nodes[e.from], g.nodes[e.to], e.weight)
	}
}

func (g *DiGraphMap[N, E]) GetOutDegree(u Index) int {
	return len(g.outEdges[u])
}

func (g *DiGraphMap[N, E]) GetInDegree(v Index) int {
	return len(g.inEdges[v])
}

// GetOutNeighbor returns the head of the i-th edge leaving u.
func (g *DiGraphMap[N, E]) GetOutNeighbor(u Index, i int) Index {
	return g.edges[g.outEdges[u][i]].to
}

// GetInNeighbor returns the tail of the i-th edge entering v.
func (g *DiGraphMap[N, E]) GetInNeighbor(v Index, i int) Index {
	return g.edges[g.inEdges[v][i]].from
}
