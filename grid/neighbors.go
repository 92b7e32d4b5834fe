package grid

// Step costs. The diagonal cost is 1.4, not √2; traversal costs and UCS
// ordering depend on this exact value.
const (
	OrthogonalCost = 1.0
	DiagonalCost   = 1.4
)

// Move is one generated neighbor and the cost of stepping onto it.
type Move struct {
	Pos  Position
	Cost float64
}

// directions lists the 8-connected offsets as (dRow, dCol) in generation
// order: Up, Right, Down, Down-Right, Left, Up-Left, Up-Right, Down-Left.
// BFS/DFS tie-breaks depend on this order.
var directions = [8][2]int{
	{-1, 0},
	{0, 1},
	{1, 0},
	{1, 1},
	{0, -1},
	{-1, -1},
	{-1, 1},
	{1, -1},
}

// Neighbors returns the passable 8-connected neighbors of p in the fixed
// generation order, each with its step cost.
// Complexity: O(1).
func (g *Grid) Neighbors(p Position) []Move {
	out := make([]Move, 0, len(directions))
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, d := range directions {
		n := Pos(p.Row+d[0], p.Col+d[1])
		if !g.InBounds(n) || !g.cells[g.index(n)].Passable() {
			continue
		}
		cost := OrthogonalCost
		if d[0] != 0 && d[1] != 0 {
			cost = DiagonalCost
		}
		out = append(out, Move{Pos: n, Cost: cost})
	}
	return out
}

// StepCost returns the cost of moving between two 8-adjacent cells, or 0 when
// a and b are equal or not adjacent.
func StepCost(a, b Position) float64 {
	dr, dc := abs(a.Row-b.Row), abs(a.Col-b.Col)
	switch {
	case dr > 1 || dc > 1 || dr+dc == 0:
		return 0
	case dr+dc == 2:
		return DiagonalCost
	default:
		return OrthogonalCost
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
