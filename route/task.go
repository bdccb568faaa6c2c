// Package route composes the full pipeline behind the command-line tools:
// load graph files, apply the optional start–goal bridge, eulerize, build
// the trail, and render the terminal reports.
//
// The start–goal constraint works by bridging: when both names are present
// and distinct, a single high-cost edge (five times the total input cost,
// so the matching never duplicates it) joins them before eulerization. The
// resulting circuit crosses that bridge exactly once; after trail
// construction the circuit is rotated (and reversed when the bridge was
// crossed start to goal) so the walk begins at the start, ends at the goal,
// and the bridge itself disappears.
package route

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/katalvlaran/postway/core"
	"github.com/katalvlaran/postway/eulerize"
	"github.com/katalvlaran/postway/graphfile"
	"github.com/katalvlaran/postway/trail"
)

// Task runs the pipeline, writing reports to Out and failure messages to
// ErrOut. The zero value is not usable; call NewTask.
type Task struct {
	// Out receives every report. Defaults to os.Stdout.
	Out io.Writer

	// ErrOut receives the localized message of every failure. Defaults to
	// os.Stderr.
	ErrOut io.Writer

	nodeList      []string
	startPoint    string
	goalPoint     string
	startGoalEdge *core.Edge
}

// NewTask returns a Task writing reports to standard output and failures
// to standard error.
func NewTask() *Task {
	return &Task{Out: os.Stdout, ErrOut: os.Stderr}
}

// fail writes the localized failure message to the error stream and passes
// the error through so callers can set the exit code. No partial route is
// ever emitted on Out after a failure.
func (t *Task) fail(err error) error {
	fmt.Fprintf(t.ErrOut, "ERROR: %v\n", err)

	return err
}

// GenEulerianGraphFromList reads a list file and runs GenEulerianGraph on
// the files it names.
func (t *Task) GenEulerianGraphFromList(listFile, start, goal string) error {
	files, err := graphfile.ReadDataList(listFile)
	if err != nil {
		return t.fail(err)
	}

	return t.GenEulerianGraph(files, start, goal)
}

// GenEulerianGraph eulerizes the loaded graph and prints its edge list
// followed by the transfer declarations. The bridge edge, when one was
// added, is excluded from the listing.
func (t *Task) GenEulerianGraph(dataFiles []string, start, goal string) error {
	t.setStartAndGoal(start, goal)
	graph, bigCost, nodeList, err := graphfile.GenerateGraphFromFiles(dataFiles)
	if err != nil {
		return t.fail(err)
	}
	t.nodeList = nodeList
	if err = t.overwriteStartGoalRoute(graph, bigCost); err != nil {
		return t.fail(err)
	}

	graph, err = eulerize.ToEulerianGraph(graph)
	if err != nil {
		return t.fail(err)
	}

	t.printEulerianGraph(graph)

	return nil
}

// GenEulerianRoute builds the trail of an already-Eulerian input and prints
// the visited node sequence, one name per line.
func (t *Task) GenEulerianRoute(dataFiles []string, start, goal string) error {
	t.setStartAndGoal(start, goal)
	graph, bigCost, nodeList, err := graphfile.GenerateGraphFromFiles(dataFiles)
	if err != nil {
		return t.fail(err)
	}
	t.nodeList = nodeList
	if err = t.overwriteStartGoalRoute(graph, bigCost); err != nil {
		return t.fail(err)
	}

	if !graph.IsEulerGraph() {
		return t.fail(fmt.Errorf("%w: input graph", trail.ErrNotEulerian))
	}

	walk, err := t.generateEulerRoute(graph)
	if err != nil {
		return t.fail(err)
	}
	t.printEulerianRoute(walk)

	return nil
}

// RunFromList reads a list file and runs Run on the files it names.
func (t *Task) RunFromList(listFile, start, goal string, showRouteList bool) error {
	files, err := graphfile.ReadDataList(listFile)
	if err != nil {
		return t.fail(err)
	}

	return t.Run(files, start, goal, showRouteList)
}

// Run executes the complete pipeline and prints the full report: loaded
// data, start/goal echo, eulerized totals, optionally every traversed edge,
// and an example route.
func (t *Task) Run(dataFiles []string, start, goal string, showRouteList bool) error {
	t.setStartAndGoal(start, goal)
	graph, bigCost, nodeList, err := graphfile.GenerateGraphFromFiles(dataFiles)
	if err != nil {
		return t.fail(err)
	}
	t.nodeList = nodeList
	t.showLoadedData(graph)
	t.showStartGoal()
	if err = t.overwriteStartGoalRoute(graph, bigCost); err != nil {
		return t.fail(err)
	}

	graph, err = eulerize.ToEulerianGraph(graph)
	if err != nil {
		return t.fail(err)
	}

	walk, err := t.generateEulerRoute(graph)
	if err != nil {
		return t.fail(err)
	}
	t.printResult(walk, graph.TotalCost(), showRouteList)

	return nil
}

func (t *Task) setStartAndGoal(start, goal string) {
	t.startPoint = start
	t.goalPoint = goal
}

// generateEulerRoute builds the trail and, when a bridge was added, rotates
// the circuit around it and drops the bridge from graph.
func (t *Task) generateEulerRoute(graph *core.AliasGraph) ([]trail.Segment, error) {
	startNode := -1
	if t.startPoint != "" {
		if i := t.nodeIndex(t.startPoint); i >= 0 {
			startNode = i
		}
	}
	walk, err := trail.EulerianRoute(graph, startNode)
	if err != nil {
		return nil, err
	}
	if t.startGoalEdge != nil {
		walk, err = t.removeAddedEdge(walk)
		if err != nil {
			return nil, err
		}
		graph.RemoveEdge(*t.startGoalEdge)
	}

	return walk, nil
}

// overwriteStartGoalRoute adds the start–goal bridge when both names are
// present in the data and distinct.
func (t *Task) overwriteStartGoalRoute(graph *core.AliasGraph, bigCost decimal.Decimal) error {
	t.startGoalEdge = nil
	if !t.isValidStationName(t.startPoint) || !t.isValidStationName(t.goalPoint) {
		return nil
	}
	if t.startPoint == t.goalPoint {
		return nil
	}

	edge, err := core.NewEdge(t.nodeIndex(t.startPoint), t.nodeIndex(t.goalPoint), bigCost)
	if err != nil {
		return err
	}
	graph.AddEdge(edge)
	t.startGoalEdge = &edge

	return nil
}

// removeAddedEdge locates the single bridge traversal and rewrites the
// circuit as an open trail from start to goal. A goal→start crossing means
// the circuit already runs start→...→goal around the bridge: rotate it
// there. A start→goal crossing needs the remainder reversed as well.
func (t *Task) removeAddedEdge(walk []trail.Segment) ([]trail.Segment, error) {
	startNode := t.nodeIndex(t.startPoint)
	goalNode := t.nodeIndex(t.goalPoint)

	for i, segment := range walk {
		if segment.From == goalNode && segment.To == startNode {
			rotated := make([]trail.Segment, 0, len(walk)-1)
			rotated = append(rotated, walk[i+1:]...)
			rotated = append(rotated, walk[:i]...)

			return rotated, nil
		}
		if segment.From == startNode && segment.To == goalNode {
			reversed := make([]trail.Segment, 0, len(walk)-1)
			for j := i - 1; j >= 0; j-- {
				reversed = append(reversed, trail.Segment{From: walk[j].To, To: walk[j].From})
			}
			for j := len(walk) - 1; j > i; j-- {
				reversed = append(reversed, trail.Segment{From: walk[j].To, To: walk[j].From})
			}

			return reversed, nil
		}
	}

	return nil, fmt.Errorf("%w: bridge edge not found in the trail", trail.ErrNoRoute)
}

// isValidStationName reports whether name is non-empty and known.
func (t *Task) isValidStationName(name string) bool {
	return name != "" && t.nodeIndex(name) >= 0
}

// nodeIndex returns the id of a node name, or -1 when unknown.
func (t *Task) nodeIndex(name string) int {
	for i, n := range t.nodeList {
		if n == name {
			return i
		}
	}

	return -1
}

// showLoadedData prints the node and edge counts and the node names,
// ten per line.
func (t *Task) showLoadedData(graph *core.AliasGraph) {
	fmt.Fprintf(t.Out, "nodes: %d  edges: %d\n", graph.RealNodeCount(), graph.EdgeCount())

	if graph.RealNodeCount() == 0 || len(t.nodeList) == 0 {
		return
	}
	index := 0
	fmt.Fprint(t.Out, t.nodeList[index])
	index++
	for index < graph.RealNodeCount() && index < len(t.nodeList) {
		fmt.Fprintf(t.Out, ", %s", t.nodeList[index])
		index++
		if index%10 == 0 {
			fmt.Fprintln(t.Out)
		}
	}
	fmt.Fprintln(t.Out)
}

// showStartGoal echoes the requested start and goal, flagging unknown names.
func (t *Task) showStartGoal() {
	if t.startPoint == "" {
		return
	}
	if t.nodeIndex(t.startPoint) < 0 {
		fmt.Fprintf(t.Out, "%q was not found\n", t.startPoint)

		return
	}
	fmt.Fprintf(t.Out, "start: %s", t.startPoint)
	if t.goalPoint == "" {
		fmt.Fprintln(t.Out)

		return
	}
	if t.nodeIndex(t.goalPoint) >= 0 {
		fmt.Fprintf(t.Out, "  goal: %s\n", t.goalPoint)
	} else {
		fmt.Fprintf(t.Out, "  %q was not found\n", t.goalPoint)
	}
}

// printEulerianGraph prints the eulerized edge list, sorted, followed by
// the transfer pairs. The bridge edge is removed first.
func (t *Task) printEulerianGraph(graph *core.AliasGraph) {
	if t.startGoalEdge != nil {
		graph.RemoveEdge(*t.startGoalEdge)
	}

	t.sortAndPrintEdges(graph)
	t.sortAndPrintTransfers(graph)
}

// edgeRecord is one output line of the edge listing: names ordered so that
// node1 ≤ node2.
type edgeRecord struct {
	node1 string
	node2 string
	cost  decimal.Decimal
}

func (t *Task) sortAndPrintEdges(graph *core.AliasGraph) {
	records := make([]edgeRecord, 0, graph.EdgeCount())
	for _, e := range graph.Edges() {
		name1, name2 := t.nodeList[e.Node1()], t.nodeList[e.Node2()]
		if name1 > name2 {
			name1, name2 = name2, name1
		}
		records = append(records, edgeRecord{node1: name1, node2: name2, cost: e.Cost()})
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].node1 != records[j].node1 {
			return records[i].node1 < records[j].node1
		}
		if records[i].node2 != records[j].node2 {
			return records[i].node2 < records[j].node2
		}

		return records[i].cost.Cmp(records[j].cost) < 0
	})
	for _, r := range records {
		fmt.Fprintf(t.Out, "%s %s %s\n", r.node1, r.node2, r.cost)
	}
}

func (t *Task) sortAndPrintTransfers(graph *core.AliasGraph) {
	var pairs [][2]string
	for _, members := range graph.AliasDict() {
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				name1, name2 := t.nodeList[members[i]], t.nodeList[members[j]]
				if name1 > name2 {
					name1, name2 = name2, name1
				}
				pairs = append(pairs, [2]string{name1, name2})
			}
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}

		return pairs[i][1] < pairs[j][1]
	})
	for _, p := range pairs {
		fmt.Fprintf(t.Out, "%s %s transfer\n", p[0], p[1])
	}
}

// printEulerianRoute prints the visited node names one per line, merging
// the shared endpoint of consecutive segments.
func (t *Task) printEulerianRoute(walk []trail.Segment) {
	if len(walk) == 0 {
		return
	}
	prevTo := walk[0].To
	fmt.Fprintln(t.Out, t.nodeList[walk[0].From])
	fmt.Fprintln(t.Out, t.nodeList[walk[0].To])

	for i := 1; i < len(walk); i++ {
		if prevTo != walk[i].From {
			fmt.Fprintln(t.Out, t.nodeList[walk[i].From])
		}
		fmt.Fprintln(t.Out, t.nodeList[walk[i].To])
		prevTo = walk[i].To
	}
}

// printResult prints the trail summary: edge count, exact total cost, the
// optional full edge listing, and the example route.
func (t *Task) printResult(walk []trail.Segment, totalCost decimal.Decimal, showRouteList bool) {
	fmt.Fprintln(t.Out)
	fmt.Fprintf(t.Out, "final edges: %d\n", len(walk))
	fmt.Fprintf(t.Out, "total cost: %s\n", totalCost)
	if showRouteList {
		t.printAllRoute(walk)
	}
	t.printEulerRoute(walk)
}

// printEulerRoute renders the walk with " - " between traversed edges and
// " = " at jumps between alias mates, wrapping after every tenth name.
func (t *Task) printEulerRoute(walk []trail.Segment) {
	fmt.Fprintln(t.Out, "example route:")
	if len(walk) == 0 {
		return
	}
	prevTo := walk[0].To
	fmt.Fprintf(t.Out, "%s - %s", t.nodeList[walk[0].From], t.nodeList[walk[0].To])
	numShow := 2

	for i := 1; i < len(walk); i++ {
		if prevTo != walk[i].From {
			fmt.Fprintf(t.Out, " = %s", t.nodeList[walk[i].From])
			numShow++
			if numShow%10 == 0 {
				fmt.Fprintln(t.Out)
			}
		}
		fmt.Fprintf(t.Out, " - %s", t.nodeList[walk[i].To])
		numShow++
		if numShow%10 == 0 {
			fmt.Fprintln(t.Out)
		}
		prevTo = walk[i].To
	}
	fmt.Fprintln(t.Out)
}

// printAllRoute lists every traversed edge, marking jumps with "=".
func (t *Task) printAllRoute(walk []trail.Segment) {
	fmt.Fprintln(t.Out)
	fmt.Fprintln(t.Out, "traversed edges:")
	if len(walk) == 0 {
		return
	}
	fmt.Fprintf(t.Out, "%s - %s\n", t.nodeList[walk[0].From], t.nodeList[walk[0].To])
	for i := 1; i < len(walk); i++ {
		if walk[i].From != walk[i-1].To {
			fmt.Fprintf(t.Out, "%s = %s\n", t.nodeList[walk[i-1].To], t.nodeList[walk[i].From])
		}
		fmt.Fprintf(t.Out, "%s - %s\n", t.nodeList[walk[i].From], t.nodeList[walk[i].To])
	}

	fmt.Fprintln(t.Out)
}
