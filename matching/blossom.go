package matching

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/katalvlaran/postway/binheap"
)

// ErrNoPerfectMatching indicates that the graph admits no perfect matching.
var ErrNoPerfectMatching = errors.New("matching: graph does not have a perfect matching")

// blossomLabel is the forest label of an outer vertex or blossom.
type blossomLabel uint8

const (
	labelUnlabeled blossomLabel = iota
	labelEven
	labelOdd
)

// BlossomMatching carries the full solver state for one MatchingGraph.
//
// All per-index vectors are flat arrays of size 2n: 0..n-1 are the original
// vertices, n..2n-1 the blossom slots. Unused slots are recycled through a
// free stack rather than allocated on demand.
type BlossomMatching struct {
	g *MatchingGraph
	m int // number of edges
	n int // number of original vertices

	outer   []int             // outer[v]: outermost blossom containing v, or v itself
	deep    [][]int           // deep[v]: original vertices nested anywhere inside v
	shallow [][]int           // shallow[v]: immediate children on v's odd cycle
	tip     []int             // tip[v]: tip vertex of blossom v
	active  []bool            // blossom slot in use
	label   []blossomLabel    // forest label of the outer index
	forest  []int             // forest[v]: parent of v in the alternating forest, -1 at roots
	root    []int             // root[v]: root of v's alternating tree
	blocked []bool            // blocked[v]: positive dual freezes the blossom
	dual    []decimal.Decimal // dual multipliers per index
	slack   []decimal.Decimal // reduced cost per edge; a positive slack blocks the edge
	mate    []int             // mate[v]: matched partner, -1 when exposed
	visited []bool

	free       []int // stack of free blossom indices
	forestList []int // BFS queue of vertices still to be explored
	perfect    bool
}

// NewBlossomMatching wires a solver to g. The graph must not change while
// the solver is in use.
func NewBlossomMatching(g *MatchingGraph) *BlossomMatching {
	n := g.NumVertices()
	size := 2 * n
	b := &BlossomMatching{
		g:       g,
		m:       g.NumEdges(),
		n:       n,
		outer:   make([]int, size),
		deep:    make([][]int, size),
		shallow: make([][]int, size),
		tip:     make([]int, size),
		active:  make([]bool, size),
		label:   make([]blossomLabel, size),
		forest:  make([]int, size),
		root:    make([]int, size),
		blocked: make([]bool, size),
		dual:    make([]decimal.Decimal, size),
		slack:   make([]decimal.Decimal, g.NumEdges()),
		mate:    make([]int, size),
		visited: make([]bool, size),
	}

	return b
}

// SolveMinimumCostPerfectMatching finds the perfect matching of minimum
// total cost. cost[i] is the cost of the edge with index i.
//
// Returns the indices of the matched edges and their total cost, or
// ErrNoPerfectMatching when the graph cannot be perfectly matched.
func (b *BlossomMatching) SolveMinimumCostPerfectMatching(cost []decimal.Decimal) ([]int, decimal.Decimal, error) {
	// A cardinality pass first proves feasibility on the unweighted graph.
	b.SolveMaximumMatching()
	if !b.perfect {
		return nil, decimal.Zero, ErrNoPerfectMatching
	}

	b.clear()

	// Initialize slacks with the costs, shifted so all are non-negative.
	b.slack = make([]decimal.Decimal, b.m)
	copy(b.slack, cost)
	b.positiveCosts()

	// Iterate until the matching on the compressed graph is perfect.
	b.perfect = false
	for !b.perfect {
		// Seed with a heuristic matching, grow a Hungarian forest, adjust
		// duals, then set up the next grow step.
		b.heuristic()
		b.grow()
		b.updateDualCosts()
		b.reset()
	}

	matched := b.retrieveMatching()

	obj := decimal.Zero
	for _, i := range matched {
		obj = obj.Add(cost[i])
	}

	return matched, obj, nil
}

// SolveMaximumMatching finds a maximum-cardinality matching and returns the
// indices of the matched edges.
func (b *BlossomMatching) SolveMaximumMatching() []int {
	b.clear()
	b.grow()

	return b.retrieveMatching()
}

// grow builds an alternating forest rooted at every unmatched vertex,
// extending through tight edges in BFS order. Reaching an unlabeled vertex
// grows the tree; reaching an EVEN vertex of another tree augments; reaching
// an EVEN vertex of the same tree contracts a blossom.
func (b *BlossomMatching) grow() {
	b.reset()

	for len(b.forestList) > 0 {
		w := b.outer[b.forestList[0]]
		b.forestList = b.forestList[1:]

		// w might be a blossom: explore the connections of every original
		// vertex inside it.
		for _, u := range b.deep[w] {
			cont := false
			for _, v := range b.g.AdjList(u) {
				if b.isEdgeBlockedPair(u, v) {
					continue
				}
				if b.label[b.outer[v]] == labelOdd {
					continue
				}

				if b.label[b.outer[v]] != labelEven {
					// Unlabeled: extend the forest through the matched edge.
					vm := b.mate[b.outer[v]]

					b.forest[b.outer[v]] = u
					b.label[b.outer[v]] = labelOdd
					b.root[b.outer[v]] = b.root[b.outer[u]]
					b.forest[b.outer[vm]] = v
					b.label[b.outer[vm]] = labelEven
					b.root[b.outer[vm]] = b.root[b.outer[u]]

					if !b.visited[b.outer[vm]] {
						b.forestList = append(b.forestList, vm)
						b.visited[b.outer[vm]] = true
					}
				} else if b.root[b.outer[v]] != b.root[b.outer[u]] {
					// EVEN in a different tree: augmenting path found.
					b.augment(u, v)
					b.reset()

					cont = true

					break
				} else if b.outer[u] != b.outer[v] {
					// EVEN in the same tree: contract the odd cycle.
					t := b.blossom(u, v)

					b.forestList = append([]int{t}, b.forestList...)
					b.visited[t] = true

					cont = true

					break
				}
			}
			if cont {
				break
			}
		}
	}

	b.perfect = true
	for i := 0; i < b.n; i++ {
		if b.mate[b.outer[i]] == -1 {
			b.perfect = false
		}
	}
}

// expand restores the odd cycle of blossom u. The connection point is the
// regular edge of minimum index between deep(u) and deep(mate(u)), so the
// two blossoms on either side of a matched edge agree on it. The cycle is
// rotated to that tip and alternating mates are assigned along the
// even-length remainder; shallow children expand recursively.
//
// Blocked blossoms stay contracted unless expandBlocked is set (the final
// retrieval pass).
func (b *BlossomMatching) expand(u int, expandBlocked bool) {
	v := b.outer[b.mate[u]]

	index := b.m
	p, q := -1, -1
	for _, di := range b.deep[u] {
		for _, dj := range b.deep[v] {
			if b.isAdjacent(di, dj) && b.g.indexOf(di, dj) < index {
				index = b.g.indexOf(di, dj)
				p = di
				q = dj
			}
		}
	}

	b.mate[u] = q
	b.mate[v] = p
	// Regular vertices and blocked blossoms go no further.
	if u < b.n || (b.blocked[u] && !expandBlocked) {
		return
	}

	// Rotate the cycle until the new tip (the child containing p) is first.
	found := false
	for it := 0; it < len(b.shallow[u]) && !found; {
		si := b.shallow[u][it]
		for jt := 0; jt < len(b.deep[si]) && !found; jt++ {
			if b.deep[si][jt] == p {
				found = true
			}
		}
		it++
		if !found {
			b.shallow[u] = append(b.shallow[u], si)
			b.shallow[u] = b.shallow[u][1:]
			it--
		}
	}

	// The tip inherits the blossom's mate.
	it := 0
	b.mate[b.shallow[u][it]] = b.mate[u]
	it++

	// Walk the rest of the odd circuit assigning alternating mates.
	for it < len(b.shallow[u]) {
		b.mate[b.shallow[u][it]] = b.shallow[u][it+1]
		b.mate[b.shallow[u][it+1]] = b.shallow[u][it]
		it += 2
	}

	// The blossom is deactivated: children become outermost again.
	for _, s := range b.shallow[u] {
		b.outer[s] = s
		for _, t := range b.deep[s] {
			b.outer[t] = s
		}
	}
	b.active[u] = false
	b.addFreeBlossomIndex(u)

	for _, t := range b.shallow[u] {
		b.expand(t, expandBlocked)
	}
}

// augment flips the matching along the path root(u), ..., u, v, ..., root(v)
// in the alternating forest, expanding each re-mated blossom on the way.
func (b *BlossomMatching) augment(u, v int) {
	p := b.outer[u]
	q := b.outer[v]
	outv := q
	fp := b.forest[p]
	b.mate[p] = q
	b.mate[q] = p
	b.expand(p, false)
	b.expand(q, false)
	for fp != -1 {
		q = b.outer[b.forest[p]]
		p = b.outer[b.forest[q]]
		fp = b.forest[p]

		b.mate[p] = q
		b.mate[q] = p
		b.expand(p, false)
		b.expand(q, false)
	}

	p = outv
	fp = b.forest[p]
	for fp != -1 {
		q = b.outer[b.forest[p]]
		p = b.outer[b.forest[q]]
		fp = b.forest[p]

		b.mate[p] = q
		b.mate[q] = p
		b.expand(p, false)
		b.expand(q, false)
	}
}

// reset clears the alternating forest and re-seeds it from every currently
// unmatched original vertex. Active top-level empty blossoms are destroyed.
func (b *BlossomMatching) reset() {
	for i := 0; i < 2*b.n; i++ {
		b.forest[i] = -1
		b.root[i] = i

		if i >= b.n && b.active[i] && b.outer[i] == i {
			b.destroyBlossom(i)
		}
	}

	b.visited = make([]bool, 2*b.n)
	b.forestList = b.forestList[:0]
	for i := 0; i < b.n; i++ {
		if b.mate[b.outer[i]] == -1 {
			b.label[b.outer[i]] = labelEven
			if !b.visited[b.outer[i]] {
				b.forestList = append(b.forestList, i)
			}
			b.visited[b.outer[i]] = true
		} else {
			b.label[b.outer[i]] = labelUnlabeled
		}
	}
}

// blossom contracts the odd cycle w, ..., u, v, ..., w, where w is the
// first common vertex on the paths from u and v to their roots, into a
// fresh blossom index. Returns that index.
func (b *BlossomMatching) blossom(u, v int) int {
	t := b.getFreeBlossomIndex()

	isInPath := make([]bool, 2*b.n)

	// Find the tip: walk u to its root, then walk v until the paths meet.
	cu := u
	for cu != -1 {
		isInPath[b.outer[cu]] = true
		cu = b.forest[b.outer[cu]]
	}

	cv := b.outer[v]
	for !isInPath[cv] {
		cv = b.outer[b.forest[cv]]
	}
	b.tip[t] = cv

	// Construct the odd circuit as shallow(t): u's branch reversed, the
	// tip, then v's branch.
	var circuit []int
	cu = b.outer[u]
	circuit = append([]int{cu}, circuit...)
	for cu != b.tip[t] {
		cu = b.outer[b.forest[cu]]
		circuit = append([]int{cu}, circuit...)
	}

	b.shallow[t] = b.shallow[t][:0]
	b.deep[t] = b.deep[t][:0]
	b.shallow[t] = append(b.shallow[t], circuit...)

	cv = b.outer[v]
	for cv != b.tip[t] {
		b.shallow[t] = append(b.shallow[t], cv)
		cv = b.outer[b.forest[cv]]
	}

	// Flatten deep(t) and redirect outer for everything contained.
	for _, s := range b.shallow[t] {
		b.outer[s] = t
		for _, j := range b.deep[s] {
			b.deep[t] = append(b.deep[t], j)
			b.outer[j] = t
		}
	}

	b.forest[t] = b.forest[b.tip[t]]
	b.label[t] = labelEven
	b.root[t] = b.root[b.tip[t]]
	b.active[t] = true
	b.outer[t] = t
	b.mate[t] = b.mate[b.tip[t]]

	return t
}

// updateDualCosts computes ε = min(ε₁, ε₂/2, ε₃) over the EVEN-UNLABELED
// edge slacks, the EVEN-EVEN cross-tree edge slacks, and the ODD outer
// blossom duals, each considered only when its set is non-empty. It then
// shifts duals and slacks by the label pattern and updates the blocked set.
func (b *BlossomMatching) updateDualCosts() {
	var (
		e1, e2, e3             decimal.Decimal
		inite1, inite2, inite3 bool
	)
	for i := 0; i < b.m; i++ {
		u, v := b.g.endpoints(i)

		lu, lv := b.label[b.outer[u]], b.label[b.outer[v]]
		if (lu == labelEven && lv == labelUnlabeled) || (lv == labelEven && lu == labelUnlabeled) {
			if !inite1 || e1.Cmp(b.slack[i]) > 0 {
				e1 = b.slack[i]
				inite1 = true
			}
		} else if b.outer[u] != b.outer[v] && lu == labelEven && lv == labelEven {
			if !inite2 || e2.Cmp(b.slack[i]) > 0 {
				e2 = b.slack[i]
				inite2 = true
			}
		}
	}
	for i := b.n; i < 2*b.n; i++ {
		if b.active[i] && i == b.outer[i] && b.label[b.outer[i]] == labelOdd && (!inite3 || e3.Cmp(b.dual[i]) > 0) {
			e3 = b.dual[i]
			inite3 = true
		}
	}

	e := decimal.Zero
	if inite1 {
		e = e1
	} else if inite2 {
		e = e2
	} else if inite3 {
		e = e3
	}

	if inite2 {
		if half := e2.Mul(decimal.New(5, -1)); e.Cmp(half) > 0 {
			e = half
		}
	}
	if inite3 && e.Cmp(e3) > 0 {
		e = e3
	}

	// Shift the duals of the outer roots by their label.
	for i := 0; i < 2*b.n; i++ {
		if i != b.outer[i] {
			continue
		}

		if b.active[i] && b.label[b.outer[i]] == labelEven {
			b.dual[i] = b.dual[i].Add(e)
		} else if b.active[i] && b.label[b.outer[i]] == labelOdd {
			b.dual[i] = b.dual[i].Sub(e)
		}
	}

	// Shift edge slacks by the label pattern of their outer endpoints.
	for i := 0; i < b.m; i++ {
		u, v := b.g.endpoints(i)

		if b.outer[u] == b.outer[v] {
			continue
		}
		lu, lv := b.label[b.outer[u]], b.label[b.outer[v]]
		switch {
		case lu == labelEven && lv == labelEven:
			b.slack[i] = b.slack[i].Sub(e).Sub(e)
		case lu == labelOdd && lv == labelOdd:
			b.slack[i] = b.slack[i].Add(e).Add(e)
		case (lv == labelUnlabeled && lu == labelEven) || (lu == labelUnlabeled && lv == labelEven):
			b.slack[i] = b.slack[i].Sub(e)
		case (lv == labelUnlabeled && lu == labelOdd) || (lu == labelUnlabeled && lv == labelOdd):
			b.slack[i] = b.slack[i].Add(e)
		}
	}

	// A positive dual blocks its blossom; a dual back at zero releases it.
	for i := b.n; i < 2*b.n; i++ {
		if b.dual[i].Sign() > 0 {
			b.blocked[i] = true
		} else if b.active[i] && b.blocked[i] {
			if b.mate[i] == -1 {
				b.destroyBlossom(i)
			} else {
				b.blocked[i] = false
				b.expand(i, false)
			}
		}
	}
}

// clear resets every vector for a fresh run.
func (b *BlossomMatching) clear() {
	b.clearBlossomIndices()

	for i := 0; i < 2*b.n; i++ {
		b.outer[i] = i
		b.deep[i] = b.deep[i][:0]
		if i < b.n {
			b.deep[i] = append(b.deep[i], i)
		}
		b.shallow[i] = b.shallow[i][:0]
		b.active[i] = i < b.n

		b.label[i] = labelUnlabeled
		b.forest[i] = -1
		b.root[i] = i

		b.blocked[i] = false
		b.dual[i] = decimal.Zero
		b.mate[i] = -1
		b.tip[i] = i
	}
	b.slack = make([]decimal.Decimal, b.m)
}

// destroyBlossom recursively dissolves an unmatched blossom, returning its
// slot to the free stack. Blocked blossoms with positive dual survive.
func (b *BlossomMatching) destroyBlossom(t int) {
	if t < b.n || (b.blocked[t] && b.dual[t].Sign() > 0) {
		return
	}

	for _, s := range b.shallow[t] {
		b.outer[s] = s
		for _, j := range b.deep[s] {
			b.outer[j] = s
		}

		b.destroyBlossom(s)
	}

	b.active[t] = false
	b.blocked[t] = false
	b.addFreeBlossomIndex(t)
	b.mate[t] = -1
}

// heuristic seeds the matching greedily: vertices are taken in
// non-decreasing degree order (over unblocked edges) via the indexed heap,
// and each unmatched vertex is matched to its unmatched neighbor of
// minimum degree.
func (b *BlossomMatching) heuristic() {
	degree := make([]int, b.n)
	heap := binheap.New()

	for i := 0; i < b.m; i++ {
		if b.isEdgeBlocked(i) {
			continue
		}

		u, v := b.g.endpoints(i)
		degree[u]++
		degree[v]++
	}

	for i := 0; i < b.n; i++ {
		_ = heap.Insert(decimal.NewFromInt(int64(degree[i])), i) // satellites are distinct
	}

	for heap.Len() > 0 {
		u, err := heap.DeleteMin()
		if err != nil {
			return
		}
		if b.mate[b.outer[u]] == -1 {
			min := -1
			for _, v := range b.g.AdjList(u) {
				if b.isEdgeBlockedPair(u, v) || b.outer[u] == b.outer[v] || b.mate[b.outer[v]] != -1 {
					continue
				}

				if min == -1 || degree[v] < degree[min] {
					min = v
				}
			}
			if min != -1 {
				b.mate[b.outer[u]] = min
				b.mate[b.outer[min]] = u
			}
		}
	}
}

// positiveCosts shifts all slacks by the minimum so none is negative.
func (b *BlossomMatching) positiveCosts() {
	minEdge := decimal.Zero
	for _, s := range b.slack {
		if minEdge.Cmp(s) > 0 {
			minEdge = s
		}
	}

	for i := 0; i < b.m; i++ {
		b.slack[i] = b.slack[i].Sub(minEdge)
	}
}

// retrieveMatching expands every remaining blossom (blocked ones included)
// and collects the edges whose endpoints are mutual mates.
func (b *BlossomMatching) retrieveMatching() []int {
	var matched []int

	for i := 0; i < 2*b.n; i++ {
		if b.active[i] && b.mate[i] != -1 && b.outer[i] == i {
			b.expand(i, true)
		}
	}

	for i := 0; i < b.m; i++ {
		u, v := b.g.endpoints(i)

		if b.mate[u] == v {
			matched = append(matched, i)
		}
	}

	return matched
}

func (b *BlossomMatching) getFreeBlossomIndex() int {
	i := b.free[len(b.free)-1]
	b.free = b.free[:len(b.free)-1]

	return i
}

func (b *BlossomMatching) addFreeBlossomIndex(i int) {
	b.free = append(b.free, i)
}

func (b *BlossomMatching) clearBlossomIndices() {
	b.free = b.free[:0]
	for i := b.n; i < 2*b.n; i++ {
		b.addFreeBlossomIndex(i)
	}
}

// isEdgeBlockedPair reports whether the edge joining u and v has positive
// slack under the current duals.
func (b *BlossomMatching) isEdgeBlockedPair(u, v int) bool {
	return b.slack[b.g.indexOf(u, v)].Sign() > 0
}

// isEdgeBlocked reports whether edge e has positive slack.
func (b *BlossomMatching) isEdgeBlocked(e int) bool {
	return b.slack[e].Sign() > 0
}

// isAdjacent reports whether u and v are adjacent in the graph through an
// unblocked edge.
func (b *BlossomMatching) isAdjacent(u, v int) bool {
	return b.g.AdjMat()[u][v] && !b.isEdgeBlockedPair(u, v)
}
