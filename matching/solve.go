package matching

import (
	"github.com/shopspring/decimal"

	"github.com/katalvlaran/postway/core"
)

// MinCostPerfectMatching matches the alias-level vertices of the given
// complete graph at minimum total cost and returns one graph edge per
// matched pair. Pair edges carry a unit weight: only the pairing matters to
// callers, which recover the real path costs themselves.
//
// Dense indices are assigned over the sorted vertex set, so the result is
// deterministic for a fixed input graph.
func MinCostPerfectMatching(complete *core.AliasGraph) (*core.AliasGraph, error) {
	nodes := complete.Nodes()
	index := make(map[int]int, len(nodes))
	for i, n := range nodes {
		index[n] = i
	}

	g := NewMatchingGraph(len(nodes))
	cost := make([]decimal.Decimal, complete.EdgeCount())
	for _, edge := range complete.Edges() {
		u := index[complete.AliasNode(edge.Node1())]
		v := index[complete.AliasNode(edge.Node2())]
		if err := g.AddEdge(u, v); err != nil {
			return nil, err
		}
		idx, err := g.EdgeIndex(u, v)
		if err != nil {
			return nil, err
		}
		cost[idx] = edge.Cost()
	}

	solver := NewBlossomMatching(g)
	matched, _, err := solver.SolveMinimumCostPerfectMatching(cost[:g.NumEdges()])
	if err != nil {
		return nil, err
	}

	one := decimal.NewFromInt(1)
	result := core.NewAliasGraph()
	for _, i := range matched {
		u, v, err := g.EdgeAt(i)
		if err != nil {
			return nil, err
		}
		pair, err := core.NewEdge(nodes[u], nodes[v], one)
		if err != nil {
			return nil, err
		}
		result.AddEdge(pair)
	}

	return result, nil
}
