// Package eulerize turns a connected AliasGraph into an Eulerian multigraph
// of minimum added cost by duplicating existing edges.
//
// Pipeline:
//
//	input → branch strip → odd-vertex set → complete distance graph
//	      → minimum-cost perfect matching → path duplication
//	      → branch restore (doubled) → redundancy trim
//
// Branches (edges hanging off degree-1 vertices) are peeled layer by layer
// before matching and re-inserted doubled afterwards; the trim pass then
// cancels any even surplus the matching and the doubling introduced on the
// same edge. The result contains the input edge multiset and has all
// alias-level degrees even.
//
// Errors:
//
//   - ErrDisconnected: the alias quotient of the input is not connected.
//   - ErrEulerizationFailed: the post-condition (containment + Eulerian)
//     does not hold after the trim.
package eulerize

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/postway/core"
	"github.com/katalvlaran/postway/dijkstra"
	"github.com/katalvlaran/postway/matching"
)

// Sentinel errors of the eulerization pipeline.
var (
	// ErrDisconnected indicates the input graph is not connected at the
	// alias level; the pipeline refuses to proceed.
	ErrDisconnected = errors.New("eulerize: graph is not connected")

	// ErrEulerizationFailed indicates the pipeline post-condition was
	// violated: the result does not contain the input or is not Eulerian.
	ErrEulerizationFailed = errors.New("eulerize: failed to build an Eulerian graph")
)

// ToEulerianGraph augments g in place into an Eulerian multigraph and
// returns it. The input edge multiset is always preserved in the result.
func ToEulerianGraph(g *core.AliasGraph) (*core.AliasGraph, error) {
	if !g.IsConnected() {
		return nil, ErrDisconnected
	}

	initial := g.Clone()
	branches := stripBranches(g)
	if err := makeEulerGraph(g); err != nil {
		return nil, err
	}
	if err := restoreBranchesDoubled(g, branches); err != nil {
		return nil, err
	}
	// Branches must be restored before trimming, or a trimmed pair could
	// leave a restored branch floating.
	cutExtraRoute(g, initial)

	if !g.ContainsGraph(initial) || !g.IsEulerGraph() {
		return nil, ErrEulerizationFailed
	}

	return g, nil
}

// stripBranches peels branch layers off g until no degree-1 alias vertex
// remains. Layer i of the returned stack must be restored after layer i+1.
func stripBranches(g *core.AliasGraph) []*core.AliasGraph {
	var branches []*core.AliasGraph
	for {
		branch := g.PickUpBranchAndRemove()
		if branch.IsEmpty() {
			break
		}
		branches = append(branches, branch)
	}

	return branches
}

// makeEulerGraph duplicates a minimum-cost set of edges so every odd-degree
// alias vertex of g becomes even. The work happens on a local copy whose
// content replaces g's on success.
func makeEulerGraph(g *core.AliasGraph) error {
	local := g.Clone()
	odd := oddDegreeNodes(g)
	if len(odd) > 0 {
		if err := makeDegreeEven(odd, local); err != nil {
			return err
		}
	}

	return replaceGraph(g, local)
}

// oddDegreeNodes returns the odd-degree alias vertices in ascending order.
func oddDegreeNodes(g *core.AliasGraph) []int {
	var odd []int
	for node, degree := range g.DegreeMap() {
		if degree%2 != 0 {
			odd = append(odd, node)
		}
	}
	sort.Ints(odd)

	return odd
}

// makeDegreeEven matches the odd vertices over the complete graph of their
// pairwise shortest distances and duplicates each matched path into g.
func makeDegreeEven(odd []int, g *core.AliasGraph) error {
	complete, err := makeCompleteGraph(odd, g)
	if err != nil {
		return err
	}
	matched, err := matching.MinCostPerfectMatching(complete)
	if err != nil {
		return err
	}

	return addMatchingToGraph(matched, g)
}

// makeCompleteGraph builds the complete graph on the odd vertices, weighted
// by shortest-path distance in g.
func makeCompleteGraph(odd []int, g *core.AliasGraph) (*core.AliasGraph, error) {
	complete := core.NewAliasGraph()
	for i := 0; i < len(odd); i++ {
		for j := i + 1; j < len(odd); j++ {
			e, err := core.NewEdge(odd[i], odd[j], dijkstra.ShortestLength(g, odd[i], odd[j]))
			if err != nil {
				return nil, fmt.Errorf("%w: no distance between odd vertices %d and %d", ErrEulerizationFailed, odd[i], odd[j])
			}
			complete.AddEdge(e)
		}
	}

	return complete, nil
}

// addMatchingToGraph recovers, for each matched pair, the shortest path
// between its endpoints in g, and appends a duplicate of every edge on that
// path. Later pairs see the duplicates added by earlier ones.
func addMatchingToGraph(matched *core.AliasGraph, g *core.AliasGraph) error {
	for _, pair := range matched.Edges() {
		start := matched.AliasNode(pair.Node1())
		goal := matched.AliasNode(pair.Node2())

		path := dijkstra.ShortestPath(g, start, goal)
		if len(path) == 0 {
			return fmt.Errorf("%w: no path between matched vertices %d and %d", ErrEulerizationFailed, start, goal)
		}
		node2 := path[0]
		for i := 1; i < len(path); i++ {
			node1 := node2
			node2 = path[i]
			if e, ok := g.EdgeBetween(node1, node2); ok {
				g.AddEdge(e)
			}
		}
	}

	return nil
}

// replaceGraph swaps a's content for b's.
func replaceGraph(a, b *core.AliasGraph) error {
	a.Clear()

	return a.Merge(b)
}

// restoreBranchesDoubled re-inserts the stripped branch layers in reverse
// order, each edge twice, so every branch is walked out and back.
func restoreBranchesDoubled(g *core.AliasGraph, branches []*core.AliasGraph) error {
	for i := len(branches) - 1; i >= 0; i-- {
		doubled := branches[i].Clone()
		if err := doubled.Merge(branches[i]); err != nil {
			return err
		}
		if err := g.Merge(doubled); err != nil {
			return err
		}
	}

	return nil
}

// cutExtraRoute removes surplus edge pairs: for every distinct edge the
// pipeline added beyond the initial multiset with multiplicity m ≥ 2,
// ⌊m/2⌋·2 copies are dropped. Such pairs cancel under circuit semantics.
func cutExtraRoute(g, initial *core.AliasGraph) {
	waste := g.Clone()
	for _, e := range initial.Edges() {
		waste.RemoveEdge(e)
	}

	for !waste.IsEmpty() {
		e := waste.EdgeAt(0)
		count := waste.CountEdge(e)
		if count >= 2 {
			for i := 0; i < count/2*2; i++ {
				g.RemoveEdge(e)
			}
		}
		for i := 0; i < count; i++ {
			waste.RemoveEdge(e)
		}
	}
}
