// Package core defines the central Edge, Graph, and AliasGraph types used by
// every stage of the eulerization pipeline.
//
// What:
//
//   - Edge is an immutable weighted undirected edge value; equality and the
//     symmetric key ignore endpoint order.
//   - Graph is a multiset of edges plus the induced vertex set. Parallel
//     edges are allowed; degree-0 vertices cannot exist.
//   - AliasGraph wraps Graph with a vertex-equivalence relation: edges keep
//     their real endpoints, while degree, connectivity, neighborhood and the
//     Eulerian property are all evaluated on the alias quotient.
//
// Why:
//
//   - Transfer points in route networks are physically distinct stops that
//     count as one vertex for walk connectivity. The alias map models that
//     without losing the real endpoints the final walk must report.
//
// Weights are exact decimals (github.com/shopspring/decimal); no operation
// in this package rounds or converts a cost.
//
// Errors:
//
//   - ErrInvalidEdge: negative endpoint or non-positive cost at construction.
//   - ErrConflictingAlias: merging two graphs whose alias maps disagree.
//
// All types are single-goroutine values: the pipeline clones what it mutates
// and never shares a graph across goroutines.
package core
