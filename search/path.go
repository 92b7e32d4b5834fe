package search

import "github.com/katalvlaran/gridsearch/grid"

// Node is one search node: a position, the accumulated cost from its root,
// its depth and the arena index of its parent (-1 for a root).
type Node struct {
	Pos    grid.Position
	Cost   float64
	Depth  int
	Parent int
}

// Arena stores the nodes of one run. Parent links are indices into the
// same arena and always point to an earlier node, so chains never cycle.
type Arena struct {
	nodes []Node
}

// Add appends a node under parent (-1 for a root) and returns its index.
func (a *Arena) Add(pos grid.Position, cost float64, parent int) int {
	depth := 0
	if parent >= 0 {
		depth = a.nodes[parent].Depth + 1
	}
	a.nodes = append(a.nodes, Node{Pos: pos, Cost: cost, Depth: depth, Parent: parent})
	return len(a.nodes) - 1
}

// Node returns the node at idx.
func (a *Arena) Node(idx int) Node {
	return a.nodes[idx]
}

// Len returns the number of stored nodes.
func (a *Arena) Len() int {
	return len(a.nodes)
}

// Truncate drops every node at index ≥ n. Only valid when no live node
// refers to a dropped one.
func (a *Arena) Truncate(n int) {
	if n < len(a.nodes) {
		a.nodes = a.nodes[:n]
	}
}

// OnChain reports whether pos appears on the parent chain from idx (inclusive)
// back to its root.
// Complexity: O(depth).
func (a *Arena) OnChain(idx int, pos grid.Position) bool {
	for i := idx; i >= 0; i = a.nodes[i].Parent {
		if a.nodes[i].Pos == pos {
			return true
		}
	}
	return false
}

// Reconstruct follows parent links from idx and returns the positions from
// the root to nodes[idx] inclusive.
// Complexity: O(depth).
func (a *Arena) Reconstruct(idx int) []grid.Position {
	if idx < 0 || idx >= len(a.nodes) {
		return nil
	}
	path := make([]grid.Position, 0, a.nodes[idx].Depth+1)
	for i := idx; i >= 0; i = a.nodes[i].Parent {
		path = append(path, a.nodes[i].Pos)
	}
	// reverse to get root → node
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Splice joins a forward half (start → meeting) with a backward half
// (target → meeting), returning start → target with the meeting cell once.
// Returns nil when the halves do not end on the same cell.
func Splice(forward, backward []grid.Position) []grid.Position {
	if len(forward) == 0 || len(backward) == 0 || forward[len(forward)-1] != backward[len(backward)-1] {
		return nil
	}
	out := make([]grid.Position, 0, len(forward)+len(backward)-1)
	out = append(out, forward...)
	for i := len(backward) - 2; i >= 0; i-- {
		out = append(out, backward[i])
	}
	return out
}

// PathCost sums grid.StepCost over consecutive cells of path.
func PathCost(path []grid.Position) float64 {
	var total float64
	for i := 1; i < len(path); i++ {
		total += grid.StepCost(path[i-1], path[i])
	}
	return total
}
