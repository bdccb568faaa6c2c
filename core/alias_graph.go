package core

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// ErrConflictingAlias indicates a merge between graphs whose alias maps
// assign different aliases to the same real vertex.
var ErrConflictingAlias = errors.New("core: conflicting alias in merged graph")

// AliasGraph wraps a Graph with a vertex-equivalence relation.
//
// The alias map sends real vertices to alias ids drawn from a disjoint id
// space. Edges always keep their real endpoints; every query whose result
// depends on vertex identity (degree, connectivity, neighborhood, the
// Eulerian property) resolves identity at the alias level instead.
//
// Queries on aliased vertices must use the alias id: asking about a real
// vertex that has an alias yields nothing (see EdgesByNode, EdgeBetween).
type AliasGraph struct {
	graph    *Graph
	aliasMap map[int]int // real -> alias
}

// NewAliasGraph returns an empty alias graph.
func NewAliasGraph() *AliasGraph {
	return &AliasGraph{graph: NewGraph(), aliasMap: make(map[int]int)}
}

// AddEdge appends edge to the underlying multiset.
// Alias entries of endpoints that were absent from the graph are dropped
// first: a re-introduced real vertex starts with a clean alias slate.
func (a *AliasGraph) AddEdge(edge Edge) {
	if !a.graph.ContainsNode(edge.node1) {
		delete(a.aliasMap, edge.node1)
	}
	if !a.graph.ContainsNode(edge.node2) {
		delete(a.aliasMap, edge.node2)
	}
	a.graph.AddEdge(edge)
}

// RemoveEdge removes the first occurrence of edge.
// Alias entries of vertices that disappear are cleaned lazily by AddEdge.
func (a *AliasGraph) RemoveEdge(edge Edge) bool {
	return a.graph.RemoveEdge(edge)
}

// RemoveAliasKey drops the alias entry for n when n is no longer a vertex.
func (a *AliasGraph) RemoveAliasKey(n int) {
	if !a.graph.ContainsNode(n) {
		delete(a.aliasMap, n)
	}
}

// Nodes returns the vertex set at the alias level, sorted: every present
// real with an alias is replaced by its alias id.
func (a *AliasGraph) Nodes() []int {
	set := make(map[int]struct{}, a.graph.NodeCount())
	for _, n := range a.graph.Nodes() {
		if alias, ok := a.aliasMap[n]; ok {
			set[alias] = struct{}{}
		} else {
			set[n] = struct{}{}
		}
	}
	nodes := make([]int, 0, len(set))
	for n := range set {
		nodes = append(nodes, n)
	}
	sort.Ints(nodes)

	return nodes
}

// Edges returns a snapshot of the edge multiset in insertion order.
// Endpoints are real vertices.
func (a *AliasGraph) Edges() []Edge { return a.graph.Edges() }

// EdgeCount returns the number of edges, parallel copies included.
func (a *AliasGraph) EdgeCount() int { return a.graph.EdgeCount() }

// NodeCount returns the number of distinct alias-level vertices.
func (a *AliasGraph) NodeCount() int { return len(a.Nodes()) }

// RealNodeCount returns the number of distinct real vertices.
func (a *AliasGraph) RealNodeCount() int { return a.graph.NodeCount() }

// EdgeAt returns the edge at position i in insertion order.
func (a *AliasGraph) EdgeAt(i int) Edge { return a.graph.EdgeAt(i) }

// EdgeBetween returns one edge joining the two alias-level vertices.
//
// Both arguments must already be alias identities: when either one is a
// real vertex that has an alias entry, no edge is reported: callers must
// query through the alias. Each argument expands to its class members (or
// itself) and the first underlying edge between any cross pair wins.
func (a *AliasGraph) EdgeBetween(node1, node2 int) (Edge, bool) {
	if _, keyed := a.aliasMap[node1]; keyed {
		return Edge{}, false
	}
	if _, keyed := a.aliasMap[node2]; keyed {
		return Edge{}, false
	}

	aliasDict := a.AliasDict()
	nodes1, ok := aliasDict[node1]
	if !ok {
		nodes1 = []int{node1}
	}
	nodes2, ok := aliasDict[node2]
	if !ok {
		nodes2 = []int{node2}
	}
	for _, n1 := range nodes1 {
		for _, n2 := range nodes2 {
			if e, found := a.graph.EdgeBetween(n1, n2); found {
				return e, true
			}
		}
	}

	return Edge{}, false
}

// EdgeByRealNodes returns one edge joining the two real vertices, bypassing
// the alias map entirely.
func (a *AliasGraph) EdgeByRealNodes(node1, node2 int) (Edge, bool) {
	return a.graph.EdgeBetween(node1, node2)
}

// EdgesByNode returns the edges incident to the given alias-level vertex.
//
// A real vertex that has an alias entry yields nil: the query must use the
// alias. An alias id yields the deduplicated union of the incident edges of
// its present members. Anything else defers to the plain graph.
// A nil pool means the graph's own edge multiset.
func (a *AliasGraph) EdgesByNode(node int, pool []Edge) []Edge {
	if _, keyed := a.aliasMap[node]; keyed {
		return nil
	}
	if members, ok := a.AliasDict()[node]; ok {
		var edges []Edge
		for _, n := range members {
			for _, e := range a.graph.EdgesByNode(n, pool) {
				duplicate := false
				for _, have := range edges {
					if have.Equal(e) {
						duplicate = true

						break
					}
				}
				if !duplicate {
					edges = append(edges, e)
				}
			}
		}

		return edges
	}

	return a.graph.EdgesByNode(node, pool)
}

// Clear removes every edge, vertex, and alias entry.
func (a *AliasGraph) Clear() {
	a.graph.Clear()
	a.aliasMap = make(map[int]int)
}

// Equal reports whether both graphs hold the same edge multiset and the
// same alias map.
func (a *AliasGraph) Equal(other *AliasGraph) bool {
	if other == nil {
		return false
	}
	if len(a.aliasMap) != len(other.aliasMap) {
		return false
	}
	for k, v := range a.aliasMap {
		if ov, ok := other.aliasMap[k]; !ok || ov != v {
			return false
		}
	}

	return a.graph.Equal(other.graph)
}

// Clone returns a graph with the same edge multiset and an independent copy
// of the alias map.
func (a *AliasGraph) Clone() *AliasGraph {
	clone := NewAliasGraph()
	clone.graph = a.graph.Clone()
	for k, v := range a.aliasMap {
		clone.aliasMap[k] = v
	}

	return clone
}

// ContainsGraph reports whether the receiver's edge multiset contains
// other's, multiplicities respected. Alias maps are not compared.
func (a *AliasGraph) ContainsGraph(other *AliasGraph) bool {
	return a.graph.ContainsGraph(other.graph)
}

// IsEmpty reports whether the graph has no edges.
func (a *AliasGraph) IsEmpty() bool { return a.graph.IsEmpty() }

// TotalCost returns the sum of all edge costs.
func (a *AliasGraph) TotalCost() decimal.Decimal { return a.graph.TotalCost() }

// RealNodeFromRealNode returns some real vertex adjacent to the given real
// vertex. ok is false when it has no incident edge.
func (a *AliasGraph) RealNodeFromRealNode(node int) (int, bool) {
	return a.graph.NodeFromNode(node)
}

// RealNodeFromNode returns some real vertex adjacent to the given
// alias-level vertex: for an alias id, a neighbor of the first present
// class member; otherwise a neighbor of the vertex itself. ok is false when
// the class has no present member or no incident edge; callers must
// tolerate that and retry from a different vertex.
func (a *AliasGraph) RealNodeFromNode(node int) (int, bool) {
	if members, ok := a.AliasDict()[node]; ok {
		for _, n := range members {
			if a.graph.ContainsNode(n) {
				return a.graph.NodeFromNode(n)
			}
		}

		return 0, false
	}

	return a.graph.NodeFromNode(node)
}

// ContainsNode reports whether node is a present real vertex, or an alias
// with at least one present class member.
func (a *AliasGraph) ContainsNode(node int) bool {
	if a.graph.ContainsNode(node) {
		return true
	}
	if members, ok := a.AliasDict()[node]; ok {
		for _, n := range members {
			if a.graph.ContainsNode(n) {
				return true
			}
		}
	}

	return false
}

// ContainsEdge reports whether at least one occurrence of edge is present.
func (a *AliasGraph) ContainsEdge(edge Edge) bool { return a.graph.ContainsEdge(edge) }

// RefreshNodeSet rebuilds the underlying vertex set from the edge multiset.
func (a *AliasGraph) RefreshNodeSet() { a.graph.RefreshNodeSet() }

// Merge appends every edge of other and unions the alias maps.
// Fails with ErrConflictingAlias when the maps disagree on a shared key;
// edges are merged before the maps are validated.
func (a *AliasGraph) Merge(other *AliasGraph) error {
	a.graph.Merge(other.graph)
	for n, alias := range other.aliasMap {
		if have, ok := a.aliasMap[n]; ok {
			if have != alias {
				return fmt.Errorf("%w: node %d maps to both %d and %d", ErrConflictingAlias, n, have, alias)
			}
		} else {
			a.aliasMap[n] = alias
		}
	}

	return nil
}

// IsConnected reports connectivity of the alias quotient.
// The empty graph is not connected.
func (a *AliasGraph) IsConnected() bool {
	return a.generateAliasNodeGraph().IsConnected()
}

// IsEulerGraph reports whether the alias quotient is non-empty, connected,
// and has all degrees even.
func (a *AliasGraph) IsEulerGraph() bool {
	return a.generateAliasNodeGraph().IsEulerGraph()
}

// generateAliasNodeGraph builds the quotient graph: every edge (u, v, w)
// becomes (alias(u), alias(v), 1). Costs are irrelevant to connectivity and
// degree, so a unit weight keeps the quotient valid for any input.
func (a *AliasGraph) generateAliasNodeGraph() *Graph {
	quotient := NewGraph()
	one := decimal.NewFromInt(1)
	for _, e := range a.graph.Edges() {
		qe, err := NewEdge(a.AliasNode(e.node1), a.AliasNode(e.node2), one)
		if err != nil {
			continue // endpoints are non-negative by construction; unreachable
		}
		quotient.AddEdge(qe)
	}

	return quotient
}

// CountEdge returns how many occurrences of edge the multiset holds.
func (a *AliasGraph) CountEdge(edge Edge) int { return a.graph.CountEdge(edge) }

// DegreeMap returns the alias-level degree map: real-vertex degrees are
// collapsed into buckets keyed by alias where an alias entry exists.
func (a *AliasGraph) DegreeMap() map[int]int {
	aliasDegree := make(map[int]int)
	for n, degree := range a.graph.DegreeMap() {
		if alias, ok := a.aliasMap[n]; ok {
			aliasDegree[alias] += degree
		} else {
			aliasDegree[n] += degree
		}
	}

	return aliasDegree
}

// PickUpBranchAndRemove collects one incident edge per degree-1 alias
// vertex into a new alias graph, copies the endpoints' alias entries over,
// removes the collected edges from the receiver, and returns the branch
// graph. One layer per call; callers loop until the result is empty.
func (a *AliasGraph) PickUpBranchAndRemove() *AliasGraph {
	degree := a.DegreeMap()
	nodes := make([]int, 0, len(degree))
	for n := range degree {
		nodes = append(nodes, n)
	}
	sort.Ints(nodes)

	branch := NewAliasGraph()
	for _, n := range nodes {
		if degree[n] == 1 {
			branch.AddEdge(a.EdgesByNode(n, nil)[0])
		}
	}
	for _, e := range branch.Edges() {
		if alias, ok := a.aliasMap[e.node1]; ok {
			branch.SetAliasNode(e.node1, alias)
		}
		if alias, ok := a.aliasMap[e.node2]; ok {
			branch.SetAliasNode(e.node2, alias)
		}
		a.RemoveEdge(e)
	}

	return branch
}

// AliasNode returns the alias of a present real vertex, or the vertex
// itself when it is absent or unaliased.
func (a *AliasGraph) AliasNode(real int) int {
	if !a.graph.ContainsNode(real) {
		return real
	}
	if alias, ok := a.aliasMap[real]; ok {
		return alias
	}

	return real
}

// AliasOf maps n through the alias table regardless of presence: stripped
// vertices whose edges are gone still resolve to their alias. Route
// splicing relies on this to recognize revisits of a transfer class.
func (a *AliasGraph) AliasOf(n int) int {
	if alias, ok := a.aliasMap[n]; ok {
		return alias
	}

	return n
}

// SetAliasNode records real as a member of the given alias class.
func (a *AliasGraph) SetAliasNode(real, alias int) {
	a.aliasMap[real] = alias
}

// AliasDict returns the inverse image of the alias map: alias id to the
// sorted slice of its real members.
func (a *AliasGraph) AliasDict() map[int][]int {
	dict := make(map[int][]int)
	for real, alias := range a.aliasMap {
		dict[alias] = append(dict[alias], real)
	}
	for alias := range dict {
		sort.Ints(dict[alias])
	}

	return dict
}
