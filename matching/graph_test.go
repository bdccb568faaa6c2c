// Package matching_test validates the dense matching structures and the
// blossom solver against hand-checked fixtures.
package matching_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/postway/matching"
)

func TestMatchingGraph_AddEdge(t *testing.T) {
	g := matching.NewMatchingGraph(3)
	require.NoError(t, g.AddEdge(0, 1))
	require.NoError(t, g.AddEdge(1, 2))

	assert.Equal(t, 3, g.NumVertices())
	assert.Equal(t, 2, g.NumEdges())

	u, v, err := g.EdgeAt(0)
	require.NoError(t, err)
	assert.Equal(t, 0, u)
	assert.Equal(t, 1, v)
	idx, err := g.EdgeIndex(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	idx, err = g.EdgeIndex(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, idx, "index is symmetric")
	idx, err = g.EdgeIndex(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestMatchingGraph_EdgeAtOutOfRange(t *testing.T) {
	g := matching.NewMatchingGraph(2)
	require.NoError(t, g.AddEdge(0, 1))

	_, _, err := g.EdgeAt(1)
	require.ErrorIs(t, err, matching.ErrEdgeMissing)
	_, _, err = g.EdgeAt(-1)
	require.ErrorIs(t, err, matching.ErrEdgeMissing)
}

func TestMatchingGraph_AddEdgeDuplicateIsNoOp(t *testing.T) {
	g := matching.NewMatchingGraph(2)
	require.NoError(t, g.AddEdge(0, 1))
	require.NoError(t, g.AddEdge(1, 0))

	assert.Equal(t, 1, g.NumEdges())
}

func TestMatchingGraph_AddEdgeOutOfRange(t *testing.T) {
	g := matching.NewMatchingGraph(2)
	require.ErrorIs(t, g.AddEdge(0, 2), matching.ErrVertexOutOfRange)
	require.ErrorIs(t, g.AddEdge(-1, 0), matching.ErrVertexOutOfRange)
}

func TestMatchingGraph_EdgeIndexAbsent(t *testing.T) {
	g := matching.NewMatchingGraph(3)
	require.NoError(t, g.AddEdge(0, 1))

	_, err := g.EdgeIndex(0, 2)
	require.ErrorIs(t, err, matching.ErrEdgeMissing)
	_, err = g.EdgeIndex(0, 9)
	require.ErrorIs(t, err, matching.ErrVertexOutOfRange)
}

func TestMatchingGraph_AdjListAndMat(t *testing.T) {
	g := matching.NewMatchingGraph(3)
	require.NoError(t, g.AddEdge(0, 1))
	require.NoError(t, g.AddEdge(0, 2))

	assert.Equal(t, []int{1, 2}, g.AdjList(0))
	assert.Equal(t, []int{0}, g.AdjList(1))
	assert.True(t, g.AdjMat()[0][2])
	assert.False(t, g.AdjMat()[1][2])
}

func TestMatchingGraph_AddVertex(t *testing.T) {
	g := matching.NewMatchingGraph(2)
	require.NoError(t, g.AddEdge(0, 1))

	g.AddVertex()
	assert.Equal(t, 3, g.NumVertices())
	require.NoError(t, g.AddEdge(1, 2))
	idx, err := g.EdgeIndex(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	_, err = g.EdgeIndex(0, 2)
	require.ErrorIs(t, err, matching.ErrEdgeMissing)
}
