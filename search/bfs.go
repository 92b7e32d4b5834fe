package search

import "github.com/katalvlaran/gridsearch/grid"

// bfsWalker holds mutable breadth-first state: a FIFO of arena indices and
// the set of positions already discovered.
type bfsWalker struct {
	base
	queue   []int
	visited map[grid.Position]bool
}

func newBFS(env Env) *bfsWalker {
	w := &bfsWalker{
		base:    newBase(BFS, env),
		visited: make(map[grid.Position]bool),
	}
	w.enqueue(w.start, 0, -1)
	return w
}

// enqueue marks pos visited on discovery and appends its node to the queue.
func (w *bfsWalker) enqueue(pos grid.Position, cost float64, parent int) {
	w.visited[pos] = true
	w.queue = append(w.queue, w.arena.Add(pos, cost, parent))
}

// dequeue pops the head of the queue.
func (w *bfsWalker) dequeue() int {
	idx := w.queue[0]
	w.queue = w.queue[1:]
	return idx
}

// Step dequeues one node, tests it against the target on dequeue, and
// enqueues every undiscovered passable neighbor in generation order.
// A dequeued cell that has turned into an obstacle is dropped.
func (w *bfsWalker) Step() StepResult {
	if r, ok := w.gate(); !ok {
		return r
	}
	if len(w.queue) == 0 {
		return w.exhausted()
	}
	w.tick()

	idx := w.dequeue()
	n := w.arena.Node(idx)
	if !w.g.IsPassable(n.Pos) {
		return StepResult{Current: n.Pos, Dropped: true}
	}
	if n.Pos == w.target {
		return w.found(w.arena.Reconstruct(idx), n.Pos)
	}

	w.explore(n.Pos)
	for _, m := range w.g.Neighbors(n.Pos) {
		if w.visited[m.Pos] {
			continue
		}
		w.enqueue(m.Pos, n.Cost+m.Cost, idx)
		w.discover(m.Pos)
	}
	return StepResult{Current: n.Pos}
}
