// Package dijkstra computes shortest paths on an AliasGraph at the alias
// level: the node set is the set of distinct alias identities adjacent to
// any edge, and every edge weight is attached between alias endpoints.
//
// What:
//
//   - ShortestPath: the alias-id sequence of one minimum-cost path.
//   - ShortestLength: that path's exact decimal cost.
//   - SingleSourceShortestLength: one search, many goals.
//
// How:
//
//   - Search nodes live in an arena addressed by integer index; the
//     predecessor link is an optional index, not a pointer, so paths
//     reconstruct without reference cycles.
//   - The frontier is a satellite-indexed binary heap keyed by the current
//     best score; keys decrease via ChangeKey rather than lazy duplicates.
//   - Relaxation uses strict <, so the first-discovered path wins ties and
//     the result is deterministic for a fixed edge insertion order.
//
// Complexity:
//
//   - Time:  O((V + E) log V) per search.
//   - Space: O(V + E) for the arena and heap.
//
// Weights are exact decimals; scores are sums of edge costs with no
// rounding at any point.
package dijkstra
