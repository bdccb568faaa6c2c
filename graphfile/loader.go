// Package graphfile reads the text format describing aliased multigraphs.
//
// Format, one record per line, UTF-8, `#` starting a comment through end of
// line:
//
//	u v cost      — an edge between nodes u and v with a positive decimal cost
//	u v transfer  — u and v belong to the same alias class
//
// Node names are free strings; ids are assigned by first appearance across
// all files of one load. Transfer declarations merge transitively: the
// classes form a partition maintained with a disjoint-set union, and each
// final class receives a fresh alias id just past the real id range.
//
// A non-empty line with other than three tokens, a cost that does not parse
// as a decimal, or a non-positive cost all fail the load with
// ErrMalformedInput.
package graphfile

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/katalvlaran/postway/core"
)

// ErrMalformedInput indicates a data line that does not follow the format.
var ErrMalformedInput = errors.New("graphfile: malformed input")

// bridgeCostFactor scales the total loaded cost into the start–goal bridge
// cost: large enough that the matching never duplicates the bridge.
const bridgeCostFactor = 5

// ReadDataList reads a list file: one data-file path per line, `#` comments
// honored, blank lines skipped.
func ReadDataList(listFile string) ([]string, error) {
	f, err := os.Open(listFile)
	if err != nil {
		return nil, fmt.Errorf("graphfile: open list file: %w", err)
	}
	defer f.Close()

	var files []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(removeAfterHash(scanner.Text()))
		if line != "" {
			files = append(files, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("graphfile: read list file: %w", err)
	}

	return files, nil
}

// GenerateGraphFromFiles loads every data file in order into one graph.
//
// Returns the graph, the start–goal bridge cost (five times the total
// loaded edge cost), and the node-name table in first-seen order. Alias
// classes append one synthetic name each at the end.
func GenerateGraphFromFiles(dataFiles []string) (*core.AliasGraph, decimal.Decimal, []string, error) {
	graph := core.NewAliasGraph()
	transfers := newUnionFind()
	totalCost, nodeList, err := loadData(graph, dataFiles, transfers)
	if err != nil {
		return nil, decimal.Zero, nil, err
	}
	bigCost := totalCost.Mul(decimal.NewFromInt(bridgeCostFactor))

	nodeList = setAlias(graph, transfers, nodeList)

	return graph, bigCost, nodeList, nil
}

// loadData reads every file, filling graph with edges and transfers with
// alias-class unions. The node table grows in first-seen order.
func loadData(graph *core.AliasGraph, dataFiles []string, transfers *unionFind) (decimal.Decimal, []string, error) {
	loader := &fileLoader{
		graph:     graph,
		transfers: transfers,
		nodeIndex: make(map[string]int),
		totalCost: decimal.Zero,
	}
	for _, path := range dataFiles {
		if err := loader.loadFile(path); err != nil {
			return decimal.Zero, nil, err
		}
	}

	return loader.totalCost, loader.nodeList, nil
}

// fileLoader accumulates state across the data files of one load.
type fileLoader struct {
	graph     *core.AliasGraph
	transfers *unionFind
	nodeList  []string
	nodeIndex map[string]int
	totalCost decimal.Decimal
}

// intern returns the id of a node name, assigning the next id on first use.
func (l *fileLoader) intern(name string) int {
	if id, ok := l.nodeIndex[name]; ok {
		return id
	}
	id := len(l.nodeList)
	l.nodeList = append(l.nodeList, name)
	l.nodeIndex[name] = id

	return id
}

func (l *fileLoader) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("graphfile: open data file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if err := l.loadLine(scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("graphfile: read data file: %w", err)
	}

	return nil
}

func (l *fileLoader) loadLine(line string) error {
	tokens := strings.Fields(removeAfterHash(line))
	if len(tokens) == 0 {
		return nil
	}
	if len(tokens) != 3 {
		return fmt.Errorf("%w: %q", ErrMalformedInput, line)
	}

	n1 := l.intern(tokens[0])
	n2 := l.intern(tokens[1])

	if tokens[2] == "transfer" {
		l.transfers.union(n1, n2)

		return nil
	}

	weight, err := decimal.NewFromString(tokens[2])
	if err != nil {
		return fmt.Errorf("%w: %q: cost must be a decimal", ErrMalformedInput, line)
	}
	if weight.Sign() <= 0 {
		return fmt.Errorf("%w: %q: cost must be positive", ErrMalformedInput, line)
	}
	edge, err := core.NewEdge(n1, n2, weight)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrMalformedInput, line)
	}
	l.graph.AddEdge(edge)
	l.totalCost = l.totalCost.Add(weight)

	return nil
}

// setAlias materializes the transfer classes: each class, ordered by its
// smallest member id, gets a fresh alias id appended to the node table.
func setAlias(graph *core.AliasGraph, transfers *unionFind, nodeList []string) []string {
	classes := transfers.classes(len(nodeList))
	for _, members := range classes {
		alias := len(nodeList)
		nodeList = append(nodeList, strconv.Itoa(alias))
		for _, node := range members {
			graph.SetAliasNode(node, alias)
		}
	}

	return nodeList
}

// removeAfterHash strips a `#` comment through end of line.
func removeAfterHash(s string) string {
	if i := strings.IndexByte(s, '#'); i >= 0 {
		return s[:i]
	}

	return s
}

// unionFind is a disjoint-set union over node ids, path-compressed with
// union by rank. Only ids that took part in a union belong to a class.
type unionFind struct {
	parent map[int]int
	rank   map[int]int
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[int]int), rank: make(map[int]int)}
}

func (u *unionFind) find(x int) int {
	if _, ok := u.parent[x]; !ok {
		u.parent[x] = x
	}
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}

	return x
}

func (u *unionFind) union(x, y int) {
	rootX := u.find(x)
	rootY := u.find(y)
	if rootX == rootY {
		return
	}
	if u.rank[rootX] < u.rank[rootY] {
		u.parent[rootX] = rootY
	} else {
		u.parent[rootY] = rootX
		if u.rank[rootX] == u.rank[rootY] {
			u.rank[rootX]++
		}
	}
}

// classes returns every class with at least two members, ordered by
// smallest member, members ascending. n bounds the id range to scan.
func (u *unionFind) classes(n int) [][]int {
	byRoot := make(map[int][]int)
	var order []int
	for id := 0; id < n; id++ {
		if _, ok := u.parent[id]; !ok {
			continue
		}
		root := u.find(id)
		if _, seen := byRoot[root]; !seen {
			order = append(order, root)
		}
		byRoot[root] = append(byRoot[root], id)
	}

	var classes [][]int
	for _, root := range order {
		if members := byRoot[root]; len(members) >= 2 {
			classes = append(classes, members)
		}
	}

	return classes
}
