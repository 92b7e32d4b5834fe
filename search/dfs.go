package search

import "github.com/katalvlaran/gridsearch/grid"

// dfsWalker holds mutable depth-first state: a LIFO of arena indices and
// the set of positions already discovered.
type dfsWalker struct {
	base
	stack   []int
	visited map[grid.Position]bool
}

func newDFS(env Env) *dfsWalker {
	w := &dfsWalker{
		base:    newBase(DFS, env),
		visited: make(map[grid.Position]bool),
	}
	w.push(w.start, 0, -1)
	return w
}

func (w *dfsWalker) push(pos grid.Position, cost float64, parent int) {
	w.visited[pos] = true
	w.stack = append(w.stack, w.arena.Add(pos, cost, parent))
}

func (w *dfsWalker) pop() int {
	idx := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]
	return idx
}

// Step pops one node and pushes its undiscovered neighbors in reverse
// generation order, so the first generated neighbor is expanded next.
func (w *dfsWalker) Step() StepResult {
	if r, ok := w.gate(); !ok {
		return r
	}
	if len(w.stack) == 0 {
		return w.exhausted()
	}
	w.tick()

	idx := w.pop()
	n := w.arena.Node(idx)
	if !w.g.IsPassable(n.Pos) {
		return StepResult{Current: n.Pos, Dropped: true}
	}
	if n.Pos == w.target {
		return w.found(w.arena.Reconstruct(idx), n.Pos)
	}

	w.explore(n.Pos)
	moves := w.g.Neighbors(n.Pos)
	for i := len(moves) - 1; i >= 0; i-- {
		m := moves[i]
		if w.visited[m.Pos] {
			continue
		}
		w.push(m.Pos, n.Cost+m.Cost, idx)
		w.discover(m.Pos)
	}
	return StepResult{Current: n.Pos}
}
