// Package postway turns a weighted undirected multigraph into a minimum-cost
// Eulerian walk: the Chinese Postman problem, extended with node aliases
// (transfer points that share identity for connectivity but remain distinct
// physical nodes).
//
// 🚀 What is postway?
//
//	A library plus three small command-line tools that together:
//
//	  • Model aliased multigraphs: edges keep their real endpoints, every
//	    identity-sensitive query resolves through an equivalence class
//	  • Eulerize at minimum added cost: branch stripping, Dijkstra distance
//	    closure, Edmonds' blossom matching with dual variables, redundancy trim
//	  • Extract a concrete walk: Hierholzer circuits on the alias quotient,
//	    optionally pinned to a start and goal vertex
//
// Everything is organized under flat subpackages:
//
//	core/       — Edge, Graph and AliasGraph containers
//	binheap/    — satellite-indexed binary min-heap
//	dijkstra/   — alias-level shortest paths
//	matching/   — dense matching graph + minimum-cost perfect matching
//	eulerize/   — the strip → match → duplicate → trim pipeline
//	trail/      — Eulerian trail construction
//	graphfile/  — the `u v cost` / `u v transfer` text format
//	route/      — orchestration and terminal reports
//	cmd/        — gen_eulerian_graph, gen_eulerian_route, routecomp
//
// All weights are exact decimals (github.com/shopspring/decimal); no binary
// floating point touches a cost anywhere in the pipeline.
//
// Quick ASCII example:
//
//	    A───B        A B 3
//	    │   │        A C 2     ← input lines
//	    C───D        B D 2
//	                 C D 3
//
//	a square: every corner has even degree, so the graph is already
//	Eulerian and no edge is duplicated.
package postway
