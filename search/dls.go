package search

import "github.com/katalvlaran/gridsearch/grid"

// dlsFrame is one level of the explicit recursion stack: the node being
// expanded, its remaining depth budget, its neighbors generated on entry
// and the index of the next neighbor to try.
type dlsFrame struct {
	node  int
	depth int
	moves []grid.Move
	next  int
}

// dlsWalker runs depth-limited search as an explicit stack so that it can be
// suspended after every discovered child.
//
// The visited set is branch-local: a position is blocked only while it is
// on the current root→node chain, so sibling branches may revisit it. The
// chain lives in the arena; when a frame picks its next child the arena is
// truncated back to that frame, discarding the previous child's subtree.
type dlsWalker struct {
	base
	limit        int
	stack        []dlsFrame
	pending      int // child to enter on the next step, -1 if none
	pendingDepth int
}

func newDLS(env Env, limit int) *dlsWalker {
	w := &dlsWalker{
		base:  newBase(DLS, env),
		limit: limit,
	}
	w.pending = w.arena.Add(w.start, 0, -1)
	w.pendingDepth = limit
	return w
}

// Step enters the pending child (target test, Explored mark, neighbor
// generation), then advances the stack to the next child that is passable
// and not on the current chain, marks it Frontier and suspends.
// When the stack unwinds completely the search is exhausted.
func (w *dlsWalker) Step() StepResult {
	if r, ok := w.gate(); !ok {
		return r
	}
	if w.pending < 0 && len(w.stack) == 0 {
		return w.exhausted()
	}
	w.tick()

	var cur grid.Position
	if w.pending >= 0 {
		idx, depth := w.pending, w.pendingDepth
		w.pending = -1
		n := w.arena.Node(idx)
		cur = n.Pos
		if depth >= 0 && w.g.IsPassable(n.Pos) {
			if n.Pos == w.target {
				return w.found(w.arena.Reconstruct(idx), n.Pos)
			}
			w.explore(n.Pos)
			w.stack = append(w.stack, dlsFrame{
				node:  idx,
				depth: depth,
				moves: w.g.Neighbors(n.Pos),
			})
		}
	}

	for len(w.stack) > 0 {
		top := &w.stack[len(w.stack)-1]
		for top.next < len(top.moves) {
			m := top.moves[top.next]
			top.next++
			if w.arena.OnChain(top.node, m.Pos) || !w.g.IsPassable(m.Pos) {
				continue
			}
			w.discover(m.Pos)
			parent := w.arena.Node(top.node)
			w.arena.Truncate(top.node + 1)
			w.pending = w.arena.Add(m.Pos, parent.Cost+m.Cost, top.node)
			w.pendingDepth = top.depth - 1
			return StepResult{Current: cur}
		}
		w.stack = w.stack[:len(w.stack)-1]
	}
	return w.exhausted()
}
