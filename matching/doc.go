// Package matching implements minimum-cost perfect matching on dense graphs
// via Edmonds' blossom algorithm with dual variables.
//
// What:
//
//   - MatchingGraph: a dense vertex/edge structure with a boolean adjacency
//     matrix, per-vertex adjacency lists, a stable edge list, and an
//     edge-index matrix.
//   - BlossomMatching: the solver. Index space is static: 0..n-1 are the
//     original vertices, n..2n-1 are blossom slots handed out from a free
//     stack as odd cycles get contracted.
//   - MinCostPerfectMatching: the bridge that matches the vertices of a
//     complete AliasGraph and returns the matched pairs as a graph.
//
// How:
//
//   - A maximum-cardinality pass first proves a perfect matching exists.
//   - Slacks start at the (shifted non-negative) edge costs. Each round
//     seeds the matching with a degree-ordered greedy heuristic, grows an
//     alternating forest over tight edges, then updates the duals by
//     ε = min(ε₁, ε₂/2, ε₃) over the EVEN–UNLABELED slacks, the EVEN–EVEN
//     cross-tree slacks, and the ODD outer blossom duals.
//   - Blossoms whose dual rises above zero are blocked and behave as
//     original vertices; blossoms whose dual returns to zero are expanded
//     or destroyed depending on their mate.
//   - Expansion reconnects through the regular edge of minimum index
//     between the two deep sets, so both endpoints of a matched pair agree
//     on the connection point.
//
// All costs, slacks, and duals are exact decimals; ε₂/2 is exact because
// halving a decimal always terminates.
//
// Errors:
//
//   - ErrNoPerfectMatching: the graph admits no perfect matching. On the
//     complete graphs the eulerization pipeline builds this indicates a
//     caller bug, not an input condition.
//   - ErrVertexOutOfRange: an endpoint outside the dense vertex range.
//   - ErrEdgeMissing: an edge lookup by index or endpoints that matches no
//     stored edge.
package matching
