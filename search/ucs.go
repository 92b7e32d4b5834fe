package search

import (
	"container/heap"

	"github.com/katalvlaran/gridsearch/grid"
)

// ucsRunner holds uniform-cost state. It uses the lazy decrease-key
// pattern: an improved cost pushes a fresh heap entry and stale entries are
// skipped on pop via the closed set.
type ucsRunner struct {
	base
	pq     nodePQ
	seq    int
	cost   map[grid.Position]float64
	closed map[grid.Position]bool
}

func newUCS(env Env) *ucsRunner {
	r := &ucsRunner{
		base:   newBase(UCS, env),
		cost:   make(map[grid.Position]float64),
		closed: make(map[grid.Position]bool),
	}
	heap.Init(&r.pq)
	r.push(r.start, 0, -1)
	return r
}

func (r *ucsRunner) push(pos grid.Position, cost float64, parent int) {
	r.cost[pos] = cost
	heap.Push(&r.pq, &nodeItem{idx: r.arena.Add(pos, cost, parent), cost: cost, seq: r.seq})
	r.seq++
}

// popLive pops entries until one whose position is not closed; -1 if none.
func (r *ucsRunner) popLive() int {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		if !r.closed[r.arena.Node(item.idx).Pos] {
			return item.idx
		}
	}
	return -1
}

// Step closes the cheapest open node, tests it against the target, and
// relaxes its neighbors, re-pushing a position only on strict improvement.
func (r *ucsRunner) Step() StepResult {
	if res, ok := r.gate(); !ok {
		return res
	}
	idx := r.popLive()
	if idx < 0 {
		return r.exhausted()
	}
	r.tick()

	n := r.arena.Node(idx)
	r.closed[n.Pos] = true
	if !r.g.IsPassable(n.Pos) {
		return StepResult{Current: n.Pos, Dropped: true}
	}
	if n.Pos == r.target {
		return r.found(r.arena.Reconstruct(idx), n.Pos)
	}

	r.explore(n.Pos)
	for _, m := range r.g.Neighbors(n.Pos) {
		if r.closed[m.Pos] {
			continue
		}
		next := n.Cost + m.Cost
		if best, ok := r.cost[m.Pos]; ok && next >= best {
			continue
		}
		r.push(m.Pos, next, idx)
		r.discover(m.Pos)
	}
	return StepResult{Current: n.Pos}
}

// nodeItem is a heap entry: arena index, accumulated cost and insertion
// sequence for tie-breaking.
type nodeItem struct {
	idx  int
	cost float64
	seq  int
}

// nodePQ is a min-heap of *nodeItem ordered by cost, then by seq.
type nodePQ []*nodeItem

// Len returns the number of items in the heap.
func (pq nodePQ) Len() int { return len(pq) }

// Less orders by cost; equal costs keep discovery order.
func (pq nodePQ) Less(i, j int) bool {
	if pq[i].cost != pq[j].cost {
		return pq[i].cost < pq[j].cost
	}
	return pq[i].seq < pq[j].seq
}

// Swap swaps two elements in the heap.
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds x, which must be *nodeItem. Called by heap.Push.
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

// Pop removes and returns the last element. Called by heap.Pop.
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
