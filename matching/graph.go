package matching

import (
	"errors"
	"fmt"
)

// Sentinel errors of the dense graph structure.
var (
	// ErrVertexOutOfRange indicates an edge endpoint outside the dense
	// vertex range of a MatchingGraph.
	ErrVertexOutOfRange = errors.New("matching: vertex does not exist")

	// ErrEdgeMissing indicates an edge lookup by index or endpoints that
	// matches no stored edge.
	ErrEdgeMissing = errors.New("matching: edge does not exist")
)

// MatchingGraph is a dense simple-graph structure sized for the solver:
// vertex count n, an ordered edge list with stable indices, an n×n boolean
// adjacency matrix, per-vertex adjacency lists, and an n×n edge-index
// matrix holding -1 where no edge exists.
type MatchingGraph struct {
	n         int
	m         int
	adjMat    [][]bool
	adjList   [][]int
	edges     [][2]int
	edgeIndex [][]int
}

// NewMatchingGraph returns a graph on n vertices and no edges.
func NewMatchingGraph(n int) *MatchingGraph {
	g := &MatchingGraph{
		n:         n,
		adjMat:    make([][]bool, n),
		adjList:   make([][]int, n),
		edgeIndex: make([][]int, n),
	}
	for i := 0; i < n; i++ {
		g.adjMat[i] = make([]bool, n)
		g.edgeIndex[i] = make([]int, n)
		for j := 0; j < n; j++ {
			g.edgeIndex[i][j] = -1
		}
	}

	return g
}

// NumVertices returns the vertex count.
func (g *MatchingGraph) NumVertices() int { return g.n }

// NumEdges returns the edge count.
func (g *MatchingGraph) NumEdges() int { return g.m }

// EdgeAt returns the endpoints of the edge with the given index.
// An index outside [0, NumEdges) fails with ErrEdgeMissing.
func (g *MatchingGraph) EdgeAt(e int) (u, v int, err error) {
	if e < 0 || e >= g.m {
		return 0, 0, fmt.Errorf("%w: index %d with m = %d", ErrEdgeMissing, e, g.m)
	}
	pair := g.edges[e]

	return pair[0], pair[1], nil
}

// EdgeIndex returns the stable index of the edge joining u and v.
// Endpoints outside the vertex range fail with ErrVertexOutOfRange; a
// vertex pair with no edge fails with ErrEdgeMissing.
func (g *MatchingGraph) EdgeIndex(u, v int) (int, error) {
	if u < 0 || u >= g.n || v < 0 || v >= g.n {
		return -1, fmt.Errorf("%w: (%d, %d) with n = %d", ErrVertexOutOfRange, u, v, g.n)
	}
	if g.edgeIndex[u][v] == -1 {
		return -1, fmt.Errorf("%w: no edge between %d and %d", ErrEdgeMissing, u, v)
	}

	return g.edgeIndex[u][v], nil
}

// endpoints is the solver's unchecked fast path for a known-valid index.
func (g *MatchingGraph) endpoints(e int) (u, v int) {
	pair := g.edges[e]

	return pair[0], pair[1]
}

// indexOf is the solver's unchecked fast path for a known-adjacent pair.
func (g *MatchingGraph) indexOf(u, v int) int {
	return g.edgeIndex[u][v]
}

// AddVertex grows the graph by one isolated vertex.
func (g *MatchingGraph) AddVertex() {
	for i := range g.adjMat {
		g.adjMat[i] = append(g.adjMat[i], false)
		g.edgeIndex[i] = append(g.edgeIndex[i], -1)
	}
	g.n++
	newMat := make([]bool, g.n)
	newIdx := make([]int, g.n)
	for j := range newIdx {
		newIdx[j] = -1
	}
	g.adjMat = append(g.adjMat, newMat)
	g.edgeIndex = append(g.edgeIndex, newIdx)
	g.adjList = append(g.adjList, nil)
}

// AddEdge inserts the undirected edge {u, v}. Adding an edge that is
// already present is a no-op; endpoints outside the vertex range fail with
// ErrVertexOutOfRange.
func (g *MatchingGraph) AddEdge(u, v int) error {
	if u < 0 || u >= g.n || v < 0 || v >= g.n {
		return fmt.Errorf("%w: (%d, %d) with n = %d", ErrVertexOutOfRange, u, v, g.n)
	}
	if g.adjMat[u][v] {
		return nil
	}

	g.adjMat[u][v] = true
	g.adjMat[v][u] = true
	g.adjList[u] = append(g.adjList[u], v)
	g.adjList[v] = append(g.adjList[v], u)

	g.edges = append(g.edges, [2]int{u, v})
	g.edgeIndex[u][v] = g.m
	g.edgeIndex[v][u] = g.m
	g.m++

	return nil
}

// AdjList returns the adjacency list of v in insertion order.
func (g *MatchingGraph) AdjList(v int) []int { return g.adjList[v] }

// AdjMat returns the adjacency matrix.
func (g *MatchingGraph) AdjMat() [][]bool { return g.adjMat }
