package core

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidEdge indicates an edge construction with a negative endpoint or a
// non-positive cost.
var ErrInvalidEdge = errors.New("core: invalid edge")

// Edge is an immutable weighted undirected edge between two non-negative
// node ids. The zero value is not a valid edge; use NewEdge.
//
// Equality is unordered in the endpoints: (u, v, w) equals (v, u, w).
type Edge struct {
	node1 int
	node2 int
	cost  decimal.Decimal
}

// NewEdge builds an edge and validates its arguments.
// Both endpoints must be ≥ 0 and the cost strictly positive; anything else
// fails with ErrInvalidEdge.
func NewEdge(node1, node2 int, cost decimal.Decimal) (Edge, error) {
	if node1 < 0 || node2 < 0 || cost.Sign() <= 0 {
		return Edge{}, fmt.Errorf("%w: node = (%d, %d), cost = %s", ErrInvalidEdge, node1, node2, cost)
	}

	return Edge{node1: node1, node2: node2, cost: cost}, nil
}

// Node1 returns the first endpoint as given at construction.
func (e Edge) Node1() int { return e.node1 }

// Node2 returns the second endpoint as given at construction.
func (e Edge) Node2() int { return e.node2 }

// Cost returns the edge cost.
func (e Edge) Cost() decimal.Decimal { return e.cost }

// PairedNode returns the endpoint opposite to node.
// ok is false when the edge does not touch node at all.
func (e Edge) PairedNode(node int) (paired int, ok bool) {
	if node == e.node1 {
		return e.node2, true
	}
	if node == e.node2 {
		return e.node1, true
	}

	return 0, false
}

// ContainsNode reports whether node is one of the endpoints.
func (e Edge) ContainsNode(node int) bool {
	return e.node1 == node || e.node2 == node
}

// ContainsNodes reports whether {node1, node2} equals the endpoint set,
// in either order.
func (e Edge) ContainsNodes(node1, node2 int) bool {
	if e.node1 == node1 && e.node2 == node2 {
		return true
	}

	return e.node1 == node2 && e.node2 == node1
}

// Equal reports value equality, symmetric in the endpoints.
// Costs compare numerically: 1.0 equals 1.
func (e Edge) Equal(o Edge) bool {
	if !e.cost.Equal(o.cost) {
		return false
	}

	return e.ContainsNodes(o.node1, o.node2)
}

// Key returns a string identity symmetric in the endpoints, suitable as a
// map key. Two edges have the same key iff Equal reports true.
func (e Edge) Key() string {
	lo, hi := e.node1, e.node2
	if hi < lo {
		lo, hi = hi, lo
	}

	// Decimal.String trims trailing zeros, so numerically equal costs key alike.
	return fmt.Sprintf("%d|%d|%s", lo, hi, e.cost.String())
}

// String renders the edge as "[u - v, cost: w]".
func (e Edge) String() string {
	return fmt.Sprintf("[%d - %d, cost: %s]", e.node1, e.node2, e.cost)
}
