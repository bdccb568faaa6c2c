package dijkstra

import (
	"github.com/shopspring/decimal"

	"github.com/katalvlaran/postway/binheap"
	"github.com/katalvlaran/postway/core"
)

// searchNode is one arena slot: an alias-level vertex with its tentative
// score, predecessor index, and incident alias-level edges.
type searchNode struct {
	id     int         // alias-level vertex id
	score  decimal.Decimal
	scored bool        // score holds a tentative or final value
	closed bool        // score is final (extracted from the frontier)
	parent int         // arena index of the predecessor; -1 = none
	edges  []core.Edge // incident edges with alias endpoints
}

// buildArena walks the edge stream once, mapping each endpoint through the
// alias relation. Arena order is first-seen order, which pins down every
// later tie-break.
func buildArena(g *core.AliasGraph) (arena []searchNode, index map[int]int) {
	index = make(map[int]int)
	ensure := func(id int) int {
		if i, ok := index[id]; ok {
			return i
		}
		i := len(arena)
		arena = append(arena, searchNode{id: id, parent: -1})
		index[id] = i

		return i
	}

	for _, e := range g.Edges() {
		a1 := g.AliasNode(e.Node1())
		a2 := g.AliasNode(e.Node2())
		i1 := ensure(a1)
		i2 := ensure(a2)
		ae, err := core.NewEdge(a1, a2, e.Cost())
		if err != nil {
			continue // alias ids are non-negative and costs positive; unreachable
		}
		arena[i1].edges = append(arena[i1].edges, ae)
		if i2 != i1 {
			arena[i2].edges = append(arena[i2].edges, ae)
		}
	}

	return arena, index
}

// run executes the search from startIdx. When stop is non-nil, the search
// ends as soon as every index in stop is finalized; otherwise it drains the
// frontier.
func run(arena []searchNode, index map[int]int, startIdx int, stop map[int]struct{}) {
	frontier := binheap.New()
	arena[startIdx].score = decimal.Zero
	arena[startIdx].scored = true
	_ = frontier.Insert(decimal.Zero, startIdx) // fresh heap; insert cannot fail

	remaining := len(stop)
	for frontier.Len() > 0 {
		u, err := frontier.DeleteMin()
		if err != nil {
			return
		}
		arena[u].closed = true
		if stop != nil {
			if _, ok := stop[u]; ok {
				remaining--
				if remaining == 0 {
					return
				}
			}
		}

		for _, e := range arena[u].edges {
			opposite, ok := e.PairedNode(arena[u].id)
			if !ok {
				continue
			}
			// The arena indexes every edge endpoint, so the lookup always hits.
			v, ok := index[opposite]
			if !ok {
				continue
			}
			if arena[v].closed {
				continue
			}
			candidate := arena[u].score.Add(e.Cost())
			switch {
			case !arena[v].scored:
				arena[v].score = candidate
				arena[v].scored = true
				arena[v].parent = u
				_ = frontier.Insert(candidate, v)
			case candidate.Cmp(arena[v].score) < 0:
				// Strict < keeps the first-discovered path on equal scores.
				arena[v].score = candidate
				arena[v].parent = u
				_ = frontier.ChangeKey(candidate, v)
			}
		}
	}
}

// ShortestPath returns the alias-id sequence of one minimum-cost path from
// start to goal. The result is empty when either endpoint is absent or the
// goal is unreachable, and the single-element path when start equals goal.
func ShortestPath(g *core.AliasGraph, start, goal int) []int {
	arena, index := buildArena(g)
	startIdx, ok := index[start]
	if !ok {
		return nil
	}
	goalIdx, ok := index[goal]
	if !ok {
		return nil
	}
	if start == goal {
		return []int{start}
	}

	run(arena, index, startIdx, map[int]struct{}{goalIdx: {}})

	if !arena[goalIdx].scored {
		return nil
	}
	var path []int
	for i := goalIdx; i != -1; i = arena[i].parent {
		path = append(path, arena[i].id)
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}

	return path
}

// ShortestLength returns the exact cost of one minimum-cost path from start
// to goal: zero when the path is empty or a single node.
func ShortestLength(g *core.AliasGraph, start, goal int) decimal.Decimal {
	arena, index := buildArena(g)
	startIdx, ok := index[start]
	if !ok {
		return decimal.Zero
	}
	goalIdx, ok := index[goal]
	if !ok {
		return decimal.Zero
	}
	if start == goal {
		return decimal.Zero
	}

	run(arena, index, startIdx, map[int]struct{}{goalIdx: {}})

	if !arena[goalIdx].scored {
		return decimal.Zero
	}

	return arena[goalIdx].score
}

// SingleSourceShortestLength runs one search from start and returns the
// cost to each goal in argument order. The search stops once every goal is
// finalized or the frontier drains; goals never reached report zero.
func SingleSourceShortestLength(g *core.AliasGraph, start int, goals []int) []decimal.Decimal {
	arena, index := buildArena(g)
	result := make([]decimal.Decimal, len(goals))
	for i := range result {
		result[i] = decimal.Zero
	}
	startIdx, ok := index[start]
	if !ok {
		return result
	}

	stop := make(map[int]struct{}, len(goals))
	for _, goal := range goals {
		if gi, present := index[goal]; present {
			stop[gi] = struct{}{}
		}
	}
	run(arena, index, startIdx, stop)

	for i, goal := range goals {
		if gi, present := index[goal]; present && arena[gi].scored {
			result[i] = arena[gi].score
		}
	}

	return result
}
