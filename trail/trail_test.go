// Package trail_test validates Eulerian trail construction on the alias
// quotient.
package trail_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/postway/core"
	"github.com/katalvlaran/postway/trail"
)

func edge(t *testing.T, n1, n2 int, cost string) core.Edge {
	t.Helper()
	c, err := decimal.NewFromString(cost)
	require.NoError(t, err)
	e, err := core.NewEdge(n1, n2, c)
	require.NoError(t, err)

	return e
}

// assertTrailCovers checks the defining trail invariants: one segment per
// edge, every segment backed by a distinct edge occurrence, and consecutive
// segments chained at the alias level.
func assertTrailCovers(t *testing.T, g *core.AliasGraph, walk []trail.Segment) {
	t.Helper()
	require.Equal(t, g.EdgeCount(), len(walk), "every edge exactly once")

	remaining := g.Clone()
	for _, segment := range walk {
		e, ok := remaining.EdgeByRealNodes(segment.From, segment.To)
		require.True(t, ok, "segment %v has no backing edge", segment)
		require.True(t, remaining.RemoveEdge(e))
	}
	assert.True(t, remaining.IsEmpty())

	for i := 1; i < len(walk); i++ {
		assert.Equal(t, g.AliasOf(walk[i-1].To), g.AliasOf(walk[i].From),
			"segments %d and %d share no alias endpoint", i-1, i)
	}
}

func TestEulerianRoute_Triangle(t *testing.T) {
	g := core.NewAliasGraph()
	g.AddEdge(edge(t, 0, 1, "1"))
	g.AddEdge(edge(t, 1, 2, "1"))
	g.AddEdge(edge(t, 2, 0, "1"))

	walk, err := trail.EulerianRoute(g, -1)
	require.NoError(t, err)
	assertTrailCovers(t, g, walk)
	assert.Equal(t, walk[0].From, walk[len(walk)-1].To, "closed circuit")
}

func TestEulerianRoute_StartNodeRespected(t *testing.T) {
	g := core.NewAliasGraph()
	g.AddEdge(edge(t, 0, 1, "1"))
	g.AddEdge(edge(t, 1, 2, "1"))
	g.AddEdge(edge(t, 2, 0, "1"))

	walk, err := trail.EulerianRoute(g, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, walk[0].From)
	assert.Equal(t, 2, walk[len(walk)-1].To)
}

func TestEulerianRoute_NotEulerian(t *testing.T) {
	g := core.NewAliasGraph()
	g.AddEdge(edge(t, 0, 1, "1"))
	g.AddEdge(edge(t, 1, 2, "1"))

	_, err := trail.EulerianRoute(g, -1)
	require.ErrorIs(t, err, trail.ErrNotEulerian)
}

func TestEulerianRoute_SpliceAcrossLoops(t *testing.T) {
	// Two cycles sharing vertex 1: the second loop splices into the first.
	g := core.NewAliasGraph()
	g.AddEdge(edge(t, 0, 1, "1"))
	g.AddEdge(edge(t, 1, 2, "1"))
	g.AddEdge(edge(t, 2, 3, "1"))
	g.AddEdge(edge(t, 3, 0, "1"))
	g.AddEdge(edge(t, 1, 4, "1"))
	g.AddEdge(edge(t, 4, 5, "1"))
	g.AddEdge(edge(t, 5, 1, "1"))

	walk, err := trail.EulerianRoute(g, -1)
	require.NoError(t, err)
	assertTrailCovers(t, g, walk)
}

func TestEulerianRoute_AliasTwoTriangles(t *testing.T) {
	// Two unit triangles joined only through alias 6 of vertices 0 and 3.
	g := core.NewAliasGraph()
	g.AddEdge(edge(t, 0, 1, "1"))
	g.AddEdge(edge(t, 1, 2, "1"))
	g.AddEdge(edge(t, 0, 2, "1"))
	g.AddEdge(edge(t, 3, 4, "1"))
	g.AddEdge(edge(t, 4, 5, "1"))
	g.AddEdge(edge(t, 3, 5, "1"))
	g.SetAliasNode(0, 6)
	g.SetAliasNode(3, 6)

	walk, err := trail.EulerianRoute(g, -1)
	require.NoError(t, err)
	assertTrailCovers(t, g, walk)

	// The walk jumps between the class members at least once: some
	// consecutive pair chains through distinct reals of alias 6.
	jump := false
	for i := 1; i < len(walk); i++ {
		if walk[i-1].To != walk[i].From {
			assert.Equal(t, 6, g.AliasOf(walk[i-1].To))
			assert.Equal(t, 6, g.AliasOf(walk[i].From))
			jump = true
		}
	}
	assert.True(t, jump)
}

func TestEulerianRoute_SingleAliasedEdge(t *testing.T) {
	// One edge whose two endpoints form an alias class is a closed loop at
	// the quotient.
	g := core.NewAliasGraph()
	g.AddEdge(edge(t, 0, 1, "1"))
	g.SetAliasNode(0, 2)
	g.SetAliasNode(1, 2)

	walk, err := trail.EulerianRoute(g, -1)
	require.NoError(t, err)
	require.Len(t, walk, 1)
	assert.Equal(t, 2, g.AliasOf(walk[0].From))
	assert.Equal(t, 2, g.AliasOf(walk[0].To))
}

func TestEulerianRoute_LoopThroughAliasPair(t *testing.T) {
	// 1-2 = 3-1 closes through the alias of 2 and 3.
	g := core.NewAliasGraph()
	g.AddEdge(edge(t, 1, 2, "1"))
	g.AddEdge(edge(t, 3, 1, "1"))
	g.SetAliasNode(2, 11)
	g.SetAliasNode(3, 11)

	walk, err := trail.EulerianRoute(g, 1)
	require.NoError(t, err)
	require.Len(t, walk, 2)
	assert.Equal(t, 1, walk[0].From)
	assert.Equal(t, 1, walk[len(walk)-1].To)
}

func TestEulerianRoute_ParallelEdges(t *testing.T) {
	g := core.NewAliasGraph()
	e := edge(t, 0, 1, "1")
	g.AddEdge(e)
	g.AddEdge(e)

	walk, err := trail.EulerianRoute(g, -1)
	require.NoError(t, err)
	require.Len(t, walk, 2)
	assert.Equal(t, walk[0].From, walk[1].To)
}

func TestEulerianRoute_DoesNotMutateInput(t *testing.T) {
	g := core.NewAliasGraph()
	g.AddEdge(edge(t, 0, 1, "1"))
	g.AddEdge(edge(t, 1, 2, "1"))
	g.AddEdge(edge(t, 2, 0, "1"))
	before := g.Clone()

	_, err := trail.EulerianRoute(g, -1)
	require.NoError(t, err)
	assert.True(t, g.Equal(before))
}

func TestAddAliasConnect_InsertsExcursion(t *testing.T) {
	// 0 and 3 share alias 6; a walk visiting 0 gains an out-and-back to 3.
	g := core.NewAliasGraph()
	g.AddEdge(edge(t, 0, 1, "1"))
	g.AddEdge(edge(t, 1, 2, "1"))
	g.AddEdge(edge(t, 2, 0, "1"))
	g.SetAliasNode(0, 6)
	g.SetAliasNode(3, 6)

	walk := []trail.Segment{{From: 1, To: 2}, {From: 2, To: 0}, {From: 0, To: 1}}
	got := trail.AddAliasConnect(walk, 3, g)
	require.Len(t, got, 5)
	assert.Equal(t, trail.Segment{From: 0, To: 3}, got[2])
	assert.Equal(t, trail.Segment{From: 3, To: 0}, got[3])
}

func TestAddAliasConnect_NoMateVisited(t *testing.T) {
	g := core.NewAliasGraph()
	g.AddEdge(edge(t, 0, 1, "1"))
	g.SetAliasNode(5, 6)
	g.SetAliasNode(7, 6)

	walk := []trail.Segment{{From: 0, To: 1}}
	assert.Equal(t, walk, trail.AddAliasConnect(walk, 5, g))
}

func TestNodeInRoute(t *testing.T) {
	walk := []trail.Segment{{From: 0, To: 1}, {From: 1, To: 2}}

	assert.True(t, trail.NodeInRoute(0, walk))
	assert.True(t, trail.NodeInRoute(2, walk))
	assert.False(t, trail.NodeInRoute(5, walk))
}
