package matching_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/postway/core"
	"github.com/katalvlaran/postway/matching"
)

func completeGraph(t *testing.T, weights map[[2]int]string) *core.AliasGraph {
	t.Helper()
	g := core.NewAliasGraph()
	for pair, w := range weights {
		cost, err := decimal.NewFromString(w)
		require.NoError(t, err)
		e, err := core.NewEdge(pair[0], pair[1], cost)
		require.NoError(t, err)
		g.AddEdge(e)
	}

	return g
}

func TestMinCostPerfectMatching_PicksCheapPairs(t *testing.T) {
	// K4 where pairs (10,11) and (12,13) are cheap and every cross edge
	// is expensive.
	g := completeGraph(t, map[[2]int]string{
		{10, 11}: "1", {12, 13}: "1",
		{10, 12}: "9", {10, 13}: "9", {11, 12}: "9", {11, 13}: "9",
	})

	matched, err := matching.MinCostPerfectMatching(g)
	require.NoError(t, err)
	require.Equal(t, 2, matched.EdgeCount())

	pairs := make(map[[2]int]bool)
	for _, e := range matched.Edges() {
		lo, hi := e.Node1(), e.Node2()
		if hi < lo {
			lo, hi = hi, lo
		}
		pairs[[2]int{lo, hi}] = true
	}
	assert.True(t, pairs[[2]int{10, 11}])
	assert.True(t, pairs[[2]int{12, 13}])
}

func TestMinCostPerfectMatching_TwoVertices(t *testing.T) {
	g := completeGraph(t, map[[2]int]string{{3, 8}: "2.5"})

	matched, err := matching.MinCostPerfectMatching(g)
	require.NoError(t, err)
	require.Equal(t, 1, matched.EdgeCount())
	e := matched.EdgeAt(0)
	assert.True(t, e.ContainsNodes(3, 8))
}
