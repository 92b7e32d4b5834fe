package grid

// ConnectedComponents finds all 8-connected regions of passable cells.
// Each component lists its cells in flood-fill order; components appear in
// row-major order of their first cell.
//
// Time:   O(rows·cols·8).
// Memory: O(rows·cols) for seen flags and output.
func (g *Grid) ConnectedComponents() [][]Position {
	g.mu.RLock()
	defer g.mu.RUnlock()

	total := g.rows * g.cols
	seen := make([]bool, total)
	var comps [][]Position

	for i0 := 0; i0 < total; i0++ {
		if seen[i0] || !g.cells[i0].Passable() {
			continue
		}
		queue := []int{i0}
		seen[i0] = true
		var comp []Position

		for qi := 0; qi < len(queue); qi++ {
			u := g.Coordinate(queue[qi])
			comp = append(comp, u)
			for _, d := range directions {
				v := Pos(u.Row+d[0], u.Col+d[1])
				if !g.InBounds(v) {
					continue
				}
				vi := g.index(v)
				if !seen[vi] && g.cells[vi].Passable() {
					seen[vi] = true
					queue = append(queue, vi)
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

// Distances returns the minimal number of 8-connected steps from `from` to
// every reachable passable cell. An impassable or out-of-bounds origin
// yields an empty map.
//
// Time:   O(rows·cols·8).
// Memory: O(rows·cols).
func (g *Grid) Distances(from Position) map[Position]int {
	dist := make(map[Position]int)
	if !g.IsPassable(from) {
		return dist
	}
	dist[from] = 0
	queue := []Position{from}
	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		for _, m := range g.Neighbors(u) {
			if _, ok := dist[m.Pos]; ok {
				continue
			}
			dist[m.Pos] = dist[u] + 1
			queue = append(queue, m.Pos)
		}
	}
	return dist
}

// Reachable reports whether b can be reached from a over passable cells.
func (g *Grid) Reachable(a, b Position) bool {
	_, ok := g.Distances(a)[b]
	return ok
}
