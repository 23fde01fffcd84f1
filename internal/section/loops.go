package section

import (
	"slices"
	"sort"
	"strconv"
	"strings"
)

type edge struct {
	id int
	to NodeKey
}

// FindClosedLoops enumerates closed cells of the element graph. Each search
// starts from the first node of an element that no earlier search has
// walked. Edges are consumed globally, so a redundant graph may report fewer
// loops than it has; this is accepted for cross-section sized inputs.
//
// Loops are returned without a repeated closing node, rotated to start at
// their lexicographically smallest node and sorted.
func FindClosedLoops(els []Element) [][]Node {
	adj := make(map[NodeKey][]edge)
	rep := make(map[NodeKey]Node)
	for i, e := range els {
		k1, k2 := e.Node1().Key(), e.Node2().Key()
		if _, ok := rep[k1]; !ok {
			rep[k1] = e.Node1()
		}
		if _, ok := rep[k2]; !ok {
			rep[k2] = e.Node2()
		}
		adj[k1] = append(adj[k1], edge{id: i, to: k2})
		adj[k2] = append(adj[k2], edge{id: i, to: k1})
	}

	visited := make(map[int]bool)
	var found [][]NodeKey
	for i, e := range els {
		if visited[i] {
			continue
		}
		start := e.Node1().Key()
		walkLoops(adj, start, start, []NodeKey{start}, visited, &found)
	}

	seen := make(map[string]bool)
	var loops [][]Node
	for _, keys := range found {
		nodes := make([]Node, len(keys))
		for i, k := range keys {
			nodes[i] = rep[k]
		}
		nodes = rotateToSmallest(nodes)
		id := loopID(nodes)
		if seen[id] {
			continue
		}
		seen[id] = true
		loops = append(loops, nodes)
	}

	sort.SliceStable(loops, func(i, j int) bool {
		a, b := loops[i], loops[j]
		if !a[0].Same(b[0]) {
			return a[0].Less(b[0])
		}
		return len(a) < len(b)
	})
	return loops
}

// walkLoops extends path from cur through edges not yet in visited, recording
// a loop whenever an edge leads back to start after at least three nodes.
func walkLoops(adj map[NodeKey][]edge, start, cur NodeKey, path []NodeKey, visited map[int]bool, found *[][]NodeKey) {
	for _, e := range adj[cur] {
		if visited[e.id] {
			continue
		}
		visited[e.id] = true
		if e.to == start {
			if len(path) > 2 {
				*found = append(*found, slices.Clone(path))
			}
			continue
		}
		if slices.Contains(path, e.to) {
			continue
		}
		walkLoops(adj, start, e.to, append(path, e.to), visited, found)
	}
}

func rotateToSmallest(nodes []Node) []Node {
	first := 0
	for i, n := range nodes {
		if n.Less(nodes[first]) {
			first = i
		}
	}
	return append(slices.Clone(nodes[first:]), nodes[:first]...)
}

func loopID(nodes []Node) string {
	var b strings.Builder
	for _, n := range nodes {
		k := n.Key()
		b.WriteString(strconv.FormatInt(k.X, 10))
		b.WriteByte(',')
		b.WriteString(strconv.FormatInt(k.Y, 10))
		b.WriteByte(';')
	}
	return b.String()
}
