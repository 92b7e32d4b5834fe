package search

import "github.com/katalvlaran/gridsearch/grid"

// side is one breadth-first frontier of a bidirectional search.
type side struct {
	root    grid.Position
	arena   Arena
	queue   []int
	visited map[grid.Position]int // position → discovering node
}

func newSide(root grid.Position) *side {
	s := &side{root: root, visited: make(map[grid.Position]int)}
	idx := s.arena.Add(root, 0, -1)
	s.visited[root] = idx
	s.queue = append(s.queue, idx)
	return s
}

// bidiWalker alternates one forward (from Start) and one backward (from
// Target) breadth-first expansion per step. It meets as soon as either side
// dequeues a position present in the other side's visited map; the path is
// then spliced at the cheapest cell of the overlap, which keeps it no longer
// than a single-direction BFS path.
type bidiWalker struct {
	base
	fwd, bwd *side
}

func newBidirectional(env Env) *bidiWalker {
	w := &bidiWalker{base: newBase(Bidirectional, env)}
	w.fwd = newSide(w.start)
	w.bwd = newSide(w.target)
	return w
}

// Step runs the forward half-step, then the backward half-step.
func (w *bidiWalker) Step() StepResult {
	if r, ok := w.gate(); !ok {
		return r
	}
	if len(w.fwd.queue) == 0 && len(w.bwd.queue) == 0 {
		return w.exhausted()
	}
	w.tick()

	var cur grid.Position
	if len(w.fwd.queue) > 0 {
		r, met := w.expand(w.fwd, w.bwd, true)
		if met {
			return r
		}
		cur = r.Current
	}
	if len(w.bwd.queue) > 0 {
		r, met := w.expand(w.bwd, w.fwd, false)
		if met {
			return r
		}
		cur = r.Current
	}
	return StepResult{Current: cur}
}

// expand dequeues one node of own, checks for a meeting with other, and
// enqueues own's undiscovered passable neighbors.
func (w *bidiWalker) expand(own, other *side, forward bool) (StepResult, bool) {
	idx := own.queue[0]
	own.queue = own.queue[1:]
	n := own.arena.Node(idx)
	if !w.g.IsPassable(n.Pos) {
		return StepResult{Current: n.Pos, Dropped: true}, false
	}

	if _, ok := other.visited[n.Pos]; ok {
		at := bestMeeting(w.g, own, other, n.Pos)
		mine := own.arena.Reconstruct(own.visited[at])
		theirs := other.arena.Reconstruct(other.visited[at])
		if forward {
			return w.found(Splice(mine, theirs), at), true
		}
		return w.found(Splice(theirs, mine), at), true
	}

	w.explore(n.Pos)
	for _, m := range w.g.Neighbors(n.Pos) {
		if _, seen := own.visited[m.Pos]; seen {
			continue
		}
		child := own.arena.Add(m.Pos, n.Cost+m.Cost, idx)
		own.visited[m.Pos] = child
		own.queue = append(own.queue, child)
		w.discover(m.Pos)
	}
	return StepResult{Current: n.Pos}, false
}

// bestMeeting returns the passable overlap position with the fewest
// combined steps.
// The dequeued position wins ties; remaining ties go to the lowest
// (row, col) so the result does not depend on map order.
func bestMeeting(g *grid.Grid, own, other *side, dequeued grid.Position) grid.Position {
	hops := func(p grid.Position) int {
		return own.arena.Node(own.visited[p]).Depth + other.arena.Node(other.visited[p]).Depth
	}
	best, bestHops := dequeued, hops(dequeued)
	small, large := own.visited, other.visited
	if len(large) < len(small) {
		small, large = large, small
	}
	for p := range small {
		if _, ok := large[p]; !ok || !g.IsPassable(p) {
			continue
		}
		h := hops(p)
		if h < bestHops || (h == bestHops && best != dequeued && less(p, best)) {
			best, bestHops = p, h
		}
	}
	return best
}

func less(a, b grid.Position) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}
