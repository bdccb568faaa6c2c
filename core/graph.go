package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Graph is a multiset of undirected weighted edges plus the induced vertex
// set. Parallel edges are allowed; a vertex exists exactly while at least
// one edge touches it, so degree-0 vertices cannot be represented.
//
// The zero value is not usable; call NewGraph.
type Graph struct {
	edgeList []Edge
	nodeSet  map[int]struct{}
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{nodeSet: make(map[int]struct{})}
}

// AddEdge appends edge to the multiset and registers its endpoints.
func (g *Graph) AddEdge(edge Edge) {
	g.edgeList = append(g.edgeList, edge)
	g.nodeSet[edge.node1] = struct{}{}
	g.nodeSet[edge.node2] = struct{}{}
}

// RemoveEdge removes the first occurrence of edge and refreshes the vertex
// set. It reports whether an occurrence was found.
func (g *Graph) RemoveEdge(edge Edge) bool {
	for i, e := range g.edgeList {
		if e.Equal(edge) {
			g.edgeList = append(g.edgeList[:i], g.edgeList[i+1:]...)
			g.RefreshNodeSet()

			return true
		}
	}

	return false
}

// Nodes returns the vertex set as a sorted slice.
func (g *Graph) Nodes() []int {
	nodes := make([]int, 0, len(g.nodeSet))
	for n := range g.nodeSet {
		nodes = append(nodes, n)
	}
	sort.Ints(nodes)

	return nodes
}

// Edges returns a snapshot of the edge multiset in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edgeList))
	copy(out, g.edgeList)

	return out
}

// EdgeCount returns the number of edges, parallel copies included.
func (g *Graph) EdgeCount() int { return len(g.edgeList) }

// NodeCount returns the number of distinct vertices.
func (g *Graph) NodeCount() int { return len(g.nodeSet) }

// EdgeAt returns the edge at position i in insertion order.
func (g *Graph) EdgeAt(i int) Edge { return g.edgeList[i] }

// EdgeBetween returns the first edge joining node1 and node2.
// ok is false when no such edge exists.
func (g *Graph) EdgeBetween(node1, node2 int) (Edge, bool) {
	for _, e := range g.edgeList {
		if e.ContainsNodes(node1, node2) {
			return e, true
		}
	}

	return Edge{}, false
}

// EdgesByNode returns every edge in pool incident to node.
// A nil pool means the graph's own edge multiset.
func (g *Graph) EdgesByNode(node int, pool []Edge) []Edge {
	if pool == nil {
		pool = g.edgeList
	}
	var result []Edge
	for _, e := range pool {
		if e.node1 == node || e.node2 == node {
			result = append(result, e)
		}
	}

	return result
}

// Clear removes every edge and vertex.
func (g *Graph) Clear() {
	g.edgeList = g.edgeList[:0]
	g.nodeSet = make(map[int]struct{})
}

// Equal reports whether both graphs hold the same edge multiset,
// in any order.
func (g *Graph) Equal(other *Graph) bool {
	if other == nil {
		return false
	}

	return SameEdges(g.edgeList, other.edgeList)
}

// SameEdges reports whether two edge slices are equal as multisets.
func SameEdges(edges1, edges2 []Edge) bool {
	if len(edges1) != len(edges2) {
		return false
	}

	remaining := make([]Edge, len(edges2))
	copy(remaining, edges2)
	for _, e := range edges1 {
		found := false
		for i, r := range remaining {
			if e.Equal(r) {
				remaining = append(remaining[:i], remaining[i+1:]...)
				found = true

				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// Clone returns a graph with the same edge multiset. Edges are immutable
// values, so the copy shares nothing mutable with the receiver.
func (g *Graph) Clone() *Graph {
	clone := NewGraph()
	for _, e := range g.edgeList {
		clone.AddEdge(e)
	}

	return clone
}

// ContainsGraph reports whether the receiver contains every edge of other,
// multiplicities respected. An empty other is always contained.
func (g *Graph) ContainsGraph(other *Graph) bool {
	if other.IsEmpty() {
		return true
	}

	remaining := make([]Edge, len(g.edgeList))
	copy(remaining, g.edgeList)
	for _, e := range other.edgeList {
		found := false
		for i, r := range remaining {
			if e.Equal(r) {
				remaining = append(remaining[:i], remaining[i+1:]...)
				found = true

				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// IsEmpty reports whether the graph has no edges.
func (g *Graph) IsEmpty() bool { return len(g.edgeList) == 0 }

// TotalCost returns the sum of all edge costs.
func (g *Graph) TotalCost() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range g.edgeList {
		sum = sum.Add(e.cost)
	}

	return sum
}

// NodeFromNode returns some vertex adjacent to node, scanning edges in
// insertion order. ok is false when node has no incident edge.
func (g *Graph) NodeFromNode(node int) (neighbor int, ok bool) {
	for _, e := range g.edgeList {
		if n, hit := e.PairedNode(node); hit {
			return n, true
		}
	}

	return 0, false
}

// ContainsNode reports whether node is in the vertex set.
func (g *Graph) ContainsNode(node int) bool {
	_, ok := g.nodeSet[node]

	return ok
}

// ContainsEdge reports whether at least one occurrence of edge is present.
func (g *Graph) ContainsEdge(edge Edge) bool {
	for _, e := range g.edgeList {
		if e.Equal(edge) {
			return true
		}
	}

	return false
}

// RefreshNodeSet rebuilds the vertex set from the edge multiset.
func (g *Graph) RefreshNodeSet() {
	g.nodeSet = make(map[int]struct{}, len(g.nodeSet))
	for _, e := range g.edgeList {
		g.nodeSet[e.node1] = struct{}{}
		g.nodeSet[e.node2] = struct{}{}
	}
}

// Merge appends every edge of other to the receiver.
func (g *Graph) Merge(other *Graph) {
	g.edgeList = append(g.edgeList, other.edgeList...)
	g.RefreshNodeSet()
}

// IsConnected reports whether every vertex is reachable from every other
// across the current edge multiset. The empty graph is not connected.
//
// Complexity: O(V·E), a depth-first walk that rescans the edge list per
// visited vertex; adequate for the small route networks this tool targets.
func (g *Graph) IsConnected() bool {
	if len(g.edgeList) == 0 {
		return false
	}

	g.RefreshNodeSet()
	visited := make(map[int]struct{}, len(g.nodeSet))
	start := g.edgeList[0].node1
	visited[start] = struct{}{}
	stack := []int{start}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range g.edgeList {
			if m, ok := e.PairedNode(n); ok {
				if _, seen := visited[m]; !seen {
					visited[m] = struct{}{}
					stack = append(stack, m)
				}
			}
		}
	}

	return len(visited) == len(g.nodeSet)
}

// IsEulerGraph reports whether the graph is non-empty, connected, and every
// vertex has even degree.
func (g *Graph) IsEulerGraph() bool {
	if g.IsEmpty() {
		return false
	}
	if !g.IsConnected() {
		return false
	}

	for _, degree := range g.DegreeMap() {
		if degree%2 != 0 {
			return false
		}
	}

	return true
}

// CountEdge returns how many occurrences of edge the multiset holds.
func (g *Graph) CountEdge(edge Edge) int {
	counter := 0
	for _, e := range g.edgeList {
		if e.Equal(edge) {
			counter++
		}
	}

	return counter
}

// DegreeMap returns each vertex's degree. A self-loop contributes two.
func (g *Graph) DegreeMap() map[int]int {
	degree := make(map[int]int, len(g.nodeSet))
	for _, e := range g.edgeList {
		degree[e.node1]++
		degree[e.node2]++
	}

	return degree
}

// PickUpBranchAndRemove collects one incident edge for every degree-1 vertex
// into a new graph, removes those edges from the receiver, and returns the
// collected graph. A single call handles one layer only: removing a branch
// may expose new degree-1 vertices, so callers loop until the result is
// empty.
func (g *Graph) PickUpBranchAndRemove() *Graph {
	degree := g.DegreeMap()
	nodes := make([]int, 0, len(degree))
	for n := range degree {
		nodes = append(nodes, n)
	}
	sort.Ints(nodes)

	branch := NewGraph()
	for _, n := range nodes {
		if degree[n] == 1 {
			branch.AddEdge(g.EdgesByNode(n, nil)[0])
		}
	}
	for _, e := range branch.edgeList {
		g.RemoveEdge(e)
	}

	return branch
}
