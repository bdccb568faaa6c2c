// Package route_test drives the orchestrator end to end through real input
// files and asserts on the rendered reports.
package route_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/postway/route"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func newBufferedTask() (*route.Task, *bytes.Buffer, *bytes.Buffer) {
	task := route.NewTask()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	task.Out = out
	task.ErrOut = errOut

	return task, out, errOut
}

const squareData = `a b 1
b c 1
c d 1
d a 1
`

func TestGenEulerianGraph_PendantIsDoubled(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "net.txt", `a b 1
b c 1
c a 1
b d 2
`)
	task, buf, _ := newBufferedTask()

	require.NoError(t, task.GenEulerianGraph([]string{path}, "", ""))

	want := "a b 1\na c 1\nb c 1\nb d 2\nb d 2\n"
	assert.Equal(t, want, buf.String())
}

func TestGenEulerianGraph_TransfersListed(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "net.txt", `a b 1
b c 1
c a 1
d e 1
e f 1
f d 1
c f transfer
`)
	task, buf, _ := newBufferedTask()

	require.NoError(t, task.GenEulerianGraph([]string{path}, "", ""))

	want := "a b 1\na c 1\nb c 1\nd e 1\nd f 1\ne f 1\nc f transfer\n"
	assert.Equal(t, want, buf.String())
}

func TestGenEulerianGraph_BridgeExcludedFromListing(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "net.txt", squareData)
	task, buf, _ := newBufferedTask()

	require.NoError(t, task.GenEulerianGraph([]string{path}, "a", "c"))

	// The odd pair {a, c} closes through b; the bridge itself never shows.
	want := "a b 1\na b 1\na d 1\nb c 1\nb c 1\nc d 1\n"
	assert.Equal(t, want, buf.String())
}

func TestGenEulerianGraph_DisconnectedInput(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "net.txt", "a b 1\nc d 1\n")
	task, out, errOut := newBufferedTask()

	err := task.GenEulerianGraph([]string{path}, "", "")
	require.Error(t, err)
	assert.Contains(t, errOut.String(), "ERROR:")
	assert.Contains(t, errOut.String(), "not connected")
	assert.Empty(t, out.String(), "no partial route on the report stream")
}

func TestGenEulerianGraphFromList(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "net.txt", "a b 1\nb a 1\n")
	list := writeFile(t, dir, "list.txt", data+"\n")
	task, buf, _ := newBufferedTask()

	require.NoError(t, task.GenEulerianGraphFromList(list, "", ""))
	assert.Equal(t, "a b 1\na b 1\n", buf.String())
}

func TestGenEulerianRoute_Square(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "net.txt", squareData)
	task, buf, _ := newBufferedTask()

	require.NoError(t, task.GenEulerianRoute([]string{path}, "", ""))

	assert.Equal(t, "a\nb\nc\nd\na\n", buf.String())
}

func TestGenEulerianRoute_RejectsNonEulerianInput(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "net.txt", "a b 1\nb c 1\n")
	task, _, errOut := newBufferedTask()

	err := task.GenEulerianRoute([]string{path}, "", "")
	require.Error(t, err)
	assert.Contains(t, errOut.String(), "ERROR:")
	assert.Contains(t, errOut.String(), "not Eulerian")
}

func TestRun_SquareWithStartAndGoal(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "net.txt", squareData)
	task, buf, _ := newBufferedTask()

	require.NoError(t, task.Run([]string{path}, "a", "c", false))
	out := buf.String()

	assert.Contains(t, out, "nodes: 4  edges: 4")
	assert.Contains(t, out, "start: a  goal: c")
	assert.Contains(t, out, "final edges: 6")
	assert.Contains(t, out, "total cost: 6", "bridge cost never reaches the total")

	// The example route runs from the start to the goal.
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	last := lines[len(lines)-1]
	assert.True(t, strings.HasPrefix(last, "a - "), "route starts at a: %q", last)
	assert.True(t, strings.HasSuffix(last, " - c"), "route ends at c: %q", last)
}

func TestRun_ShowEdgeListsTraversedEdges(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "net.txt", "a b 1\nb a 1\n")
	task, buf, _ := newBufferedTask()

	require.NoError(t, task.Run([]string{path}, "", "", true))
	out := buf.String()

	assert.Contains(t, out, "traversed edges:")
	assert.Contains(t, out, "a - b\n")
	assert.Contains(t, out, "b - a\n")
}

func TestRun_UnknownStartIsReported(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "net.txt", squareData)
	task, buf, _ := newBufferedTask()

	require.NoError(t, task.Run([]string{path}, "z", "", false))
	assert.Contains(t, buf.String(), `"z" was not found`)
}

func TestRun_AliasJumpRenderedAsSeparator(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "net.txt", `a b 1
b c 1
c a 1
d e 1
e f 1
f d 1
a d transfer
`)
	task, buf, _ := newBufferedTask()

	require.NoError(t, task.Run([]string{path}, "", "", false))

	assert.Contains(t, buf.String(), " = ", "transfer crossing prints as a jump")
}

func TestRun_MalformedInputFails(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "net.txt", "a b\n")
	task, _, errOut := newBufferedTask()

	require.Error(t, task.Run([]string{path}, "", "", false))
	assert.Contains(t, errOut.String(), "ERROR:")
	assert.Contains(t, errOut.String(), "malformed input")
}

func TestRunFromList(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "net.txt", "a b 1\nb a 1\n")
	list := writeFile(t, dir, "list.txt", data+"\n")
	task, buf, _ := newBufferedTask()

	require.NoError(t, task.RunFromList(list, "", "", false))
	assert.Contains(t, buf.String(), "final edges: 2")
}
