// Package trail extracts Eulerian trails from an Eulerian AliasGraph using
// Hierholzer's method on the alias quotient.
//
// The outer loop peels closed loops off a working copy of the graph and
// splices each loop into the accumulated route at a vertex whose alias the
// route already visits. Segments carry real endpoints in traversal
// direction; consecutive segments share an alias, not necessarily a real
// vertex: a jump between distinct reals of one transfer class.
//
// Determinism follows from the graph's edge insertion order: neighbor and
// edge selection always take the first hit in that order.
//
// Errors:
//
//   - ErrNotEulerian: the input graph is not Eulerian, so no trail exists.
//   - ErrNoRoute: the walk could not continue or no start vertex with
//     remaining edges was found, indicating an alias/edge desync.
package trail

import (
	"errors"

	"github.com/katalvlaran/postway/core"
)

// Sentinel errors of trail construction.
var (
	// ErrNotEulerian indicates the input graph has no Eulerian circuit.
	ErrNotEulerian = errors.New("trail: graph is not Eulerian")

	// ErrNoRoute indicates the trail could not be completed.
	ErrNoRoute = errors.New("trail: no continuing route found")
)

// Segment is one traversed edge: real endpoints in traversal direction.
type Segment struct {
	From int
	To   int
}

// EulerianRoute returns an Eulerian circuit of g as a segment list.
// startNode, when ≥ 0, is the real vertex the circuit starts from.
// Fails with ErrNotEulerian when g has no Eulerian circuit.
func EulerianRoute(g *core.AliasGraph, startNode int) ([]Segment, error) {
	if !g.IsEulerGraph() {
		return nil, ErrNotEulerian
	}

	return generateInitialEulerCircuit(g, startNode)
}

// generateInitialEulerCircuit runs the outer Hierholzer loop on a working
// copy: pick a start, peel one closed loop, splice, repeat until no edge
// remains.
func generateInitialEulerCircuit(g *core.AliasGraph, startNode int) ([]Segment, error) {
	var route []Segment
	work := g.Clone()

	for !work.IsEmpty() {
		start, err := selectStartNode(work, route, startNode)
		if err != nil {
			return nil, err
		}
		loop, err := generateLoopRoute(work, start)
		if err != nil {
			return nil, err
		}
		route = mergeEulerCircuit(route, loop, work)
	}

	return route, nil
}

// generateLoopRoute walks from startNode until the walk returns to the
// start alias, removing each used edge from graph. Each step picks the
// first remaining neighbor of the current alias and the first edge joining
// it to the current alias class.
func generateLoopRoute(graph *core.AliasGraph, startNode int) ([]Segment, error) {
	startAlias := graph.AliasNode(startNode)
	fromAlias := startAlias
	toAlias := -1
	var loop []Segment
	for toAlias != startAlias {
		toNode, ok := graph.RealNodeFromNode(fromAlias)
		if !ok {
			return nil, ErrNoRoute
		}
		var routeEdge core.Edge
		found := false
		for _, e := range graph.EdgesByNode(fromAlias, nil) {
			if e.Node1() == toNode || e.Node2() == toNode {
				routeEdge = e
				found = true

				break
			}
		}
		if !found {
			return nil, ErrNoRoute
		}
		toAlias = graph.AliasNode(toNode)
		realFrom, _ := routeEdge.PairedNode(toNode)
		loop = append(loop, Segment{From: realFrom, To: toNode})
		fromAlias = graph.AliasNode(toNode)
		graph.RemoveEdge(routeEdge)
	}

	return loop, nil
}

// selectStartNode returns the real vertex the next loop starts from.
//
// The first loop starts at startNode when given, else at the first edge's
// first endpoint. Later loops must start where the accumulated route passes
// so the splice can connect: the route is scanned for a segment endpoint
// whose alias still has remaining edges, and the incident real of that
// alias is returned. No such vertex means the leftover edges are
// unreachable from the route: ErrNoRoute.
func selectStartNode(work *core.AliasGraph, route []Segment, startNode int) (int, error) {
	if len(route) == 0 {
		if startNode >= 0 {
			return startNode, nil
		}
		if work.IsEmpty() {
			return 0, ErrNoRoute
		}

		return work.EdgeAt(0).Node1(), nil
	}

	for _, segment := range route {
		for _, endpoint := range []int{segment.From, segment.To} {
			alias := work.AliasOf(endpoint)
			if !work.ContainsNode(alias) {
				continue
			}
			for _, edge := range work.EdgesByNode(alias, nil) {
				if work.AliasNode(edge.Node1()) == alias {
					return edge.Node1(), nil
				}
				if work.AliasNode(edge.Node2()) == alias {
					return edge.Node2(), nil
				}
			}
		}
	}

	return 0, ErrNoRoute
}

// mergeEulerCircuit splices loop into route. The scan runs from the tail
// backwards and inserts after the last segment whose destination alias
// matches the loop's start alias; failing that, a loop starting where the
// route starts is prepended. The loop start is chosen from the route, so
// one of the two always applies.
func mergeEulerCircuit(route, loop []Segment, g *core.AliasGraph) []Segment {
	if len(route) == 0 {
		return append(route, loop...)
	}

	startNode := loop[0].From
	for insertPoint := len(route) - 1; insertPoint >= 0; insertPoint-- {
		if g.AliasOf(startNode) != g.AliasOf(route[insertPoint].To) {
			continue
		}
		if insertPoint == len(route)-1 {
			return append(route, loop...)
		}
		spliced := make([]Segment, 0, len(route)+len(loop))
		spliced = append(spliced, route[:insertPoint+1]...)
		spliced = append(spliced, loop...)
		spliced = append(spliced, route[insertPoint+1:]...)

		return spliced
	}

	if g.AliasOf(startNode) == g.AliasOf(route[0].From) {
		return append(loop, route...)
	}

	return route
}

// AddAliasConnect stitches a start vertex that is an alias mate of a
// visited vertex into the route: the first visit of a fellow class member
// gains an out-and-back excursion to startNode. The route is returned
// unchanged when no class member is visited.
func AddAliasConnect(route []Segment, startNode int, g *core.AliasGraph) []Segment {
	var mates []int
	for alias, members := range g.AliasDict() {
		for _, member := range members {
			if member == startNode {
				for _, m := range g.AliasDict()[alias] {
					if m != startNode {
						mates = append(mates, m)
					}
				}
			}
		}
	}
	if len(mates) == 0 {
		return route
	}
	isMate := func(n int) bool {
		for _, m := range mates {
			if m == n {
				return true
			}
		}

		return false
	}

	for i, segment := range route {
		if isMate(segment.To) {
			out := make([]Segment, 0, len(route)+2)
			out = append(out, route[:i+1]...)
			out = append(out, Segment{From: segment.To, To: startNode}, Segment{From: startNode, To: segment.To})
			out = append(out, route[i+1:]...)

			return out
		}
	}

	return route
}

// NodeInRoute reports whether n appears as an endpoint of any segment.
func NodeInRoute(n int, route []Segment) bool {
	for _, segment := range route {
		if n == segment.From || n == segment.To {
			return true
		}
	}

	return false
}
