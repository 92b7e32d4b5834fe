package grid

import (
	"fmt"
	"sync"
)

// change is a pending hook notification collected under the lock.
type change struct {
	pos      Position
	old, new CellState
}

// Grid is a fixed rows×cols occupancy grid with exactly one Start and one
// Target cell. Cells are stored row-major. All methods are safe for
// concurrent use; the change hook is invoked after the lock is released.
type Grid struct {
	mu        sync.RWMutex
	rows      int
	cols      int
	cells     []CellState
	start     Position
	target    Position
	obstacles []Position
	onChange  ChangeFunc
}

// New builds a rows×cols grid of Empty cells with Start and Target placed.
// Defaults follow the interactive layout: start (1,1) and target
// (rows-2, cols-2), both clamped into the grid. Walls from WithWalls that
// fall on Start or Target are skipped.
// Returns ErrEmptyGrid, ErrOptionViolation, ErrInvalidPosition or
// ErrStartIsTarget for bad input.
// Complexity: O(rows×cols).
func New(rows, cols int, opts ...Option) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyGrid, rows, cols)
	}
	if rows*cols < 2 {
		return nil, fmt.Errorf("%w: %dx%d cannot hold both start and target", ErrStartIsTarget, rows, cols)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	g := &Grid{
		rows:     rows,
		cols:     cols,
		cells:    make([]CellState, rows*cols),
		onChange: o.OnChange,
	}

	start := Pos(clamp(1, rows), clamp(1, cols))
	if o.Start != nil {
		start = *o.Start
	}
	target := Pos(clamp(rows-2, rows), clamp(cols-2, cols))
	if o.Target != nil {
		target = *o.Target
	} else if target == start {
		target = Pos(rows-1, cols-1)
		if target == start {
			target = Pos(0, 0)
		}
	}
	if !g.InBounds(start) {
		return nil, fmt.Errorf("%w: start %v", ErrInvalidPosition, start)
	}
	if !g.InBounds(target) {
		return nil, fmt.Errorf("%w: target %v", ErrInvalidPosition, target)
	}
	if start == target {
		return nil, fmt.Errorf("%w: %v", ErrStartIsTarget, start)
	}
	g.start, g.target = start, target
	g.cells[g.index(start)] = Start
	g.cells[g.index(target)] = Target

	for _, w := range o.Walls {
		if !g.InBounds(w) {
			return nil, fmt.Errorf("%w: wall %v", ErrInvalidPosition, w)
		}
		if w == start || w == target {
			continue
		}
		g.cells[g.index(w)] = Wall
	}

	return g, nil
}

func clamp(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// SetOnChange replaces the change hook; nil removes it.
func (g *Grid) SetOnChange(fn ChangeFunc) {
	g.mu.Lock()
	g.onChange = fn
	g.mu.Unlock()
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Start returns the current start cell.
func (g *Grid) Start() Position {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.start
}

// Target returns the current target cell.
func (g *Grid) Target() Position {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.target
}

// InBounds reports whether p lies within the grid.
// Complexity: O(1).
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// index maps p to its row-major slot: Row*cols + Col.
func (g *Grid) index(p Position) int {
	return p.Row*g.cols + p.Col
}

// Coordinate converts a row-major index back to a Position.
func (g *Grid) Coordinate(idx int) Position {
	return Pos(idx/g.cols, idx%g.cols)
}

// IsPassable reports whether p is in bounds and neither Wall nor
// DynamicObstacle.
// Complexity: O(1).
func (g *Grid) IsPassable(p Position) bool {
	if !g.InBounds(p) {
		return false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cells[g.index(p)].Passable()
}

// State returns the state of cell p, or ErrInvalidPosition.
func (g *Grid) State(p Position) (CellState, error) {
	if !g.InBounds(p) {
		return Empty, fmt.Errorf("%w: %v", ErrInvalidPosition, p)
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cells[g.index(p)], nil
}

// Snapshot returns a deep copy of all cell states indexed [row][col].
// Complexity: O(rows×cols).
func (g *Grid) Snapshot() [][]CellState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([][]CellState, g.rows)
	for r := 0; r < g.rows; r++ {
		out[r] = make([]CellState, g.cols)
		copy(out[r], g.cells[r*g.cols:(r+1)*g.cols])
	}
	return out
}

// EmptyCells lists every Empty cell in row-major order.
func (g *Grid) EmptyCells() []Position {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Position, 0, len(g.cells))
	for i, s := range g.cells {
		if s == Empty {
			out = append(out, g.Coordinate(i))
		}
	}
	return out
}

// Obstacles returns a copy of the dynamic obstacle log in insertion order.
func (g *Grid) Obstacles() []Position {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Position, len(g.obstacles))
	copy(out, g.obstacles)
	return out
}

// set writes s at p and records the change. Caller holds g.mu.
func (g *Grid) set(p Position, s CellState, changes []change) []change {
	i := g.index(p)
	old := g.cells[i]
	if old == s {
		return changes
	}
	g.cells[i] = s
	return append(changes, change{pos: p, old: old, new: s})
}

// notify delivers collected changes outside the lock.
func (g *Grid) notify(fn ChangeFunc, changes []change) {
	if fn == nil {
		return
	}
	for _, c := range changes {
		fn(c.pos, c.old, c.new)
	}
}

// SetStart relocates Start to p, resetting the previous start cell to Empty.
// Returns ErrInvalidPosition, ErrBlockedStartOrTarget when p is a Wall or
// DynamicObstacle, or ErrStartIsTarget when p is the Target.
func (g *Grid) SetStart(p Position) error {
	return g.relocate(p, true)
}

// SetTarget relocates Target to p; errors mirror SetStart.
func (g *Grid) SetTarget(p Position) error {
	return g.relocate(p, false)
}

func (g *Grid) relocate(p Position, isStart bool) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: %v", ErrInvalidPosition, p)
	}
	g.mu.Lock()
	cur := g.cells[g.index(p)]
	if !cur.Passable() {
		g.mu.Unlock()
		return fmt.Errorf("%w: %v is %v", ErrBlockedStartOrTarget, p, cur)
	}
	var changes []change
	if isStart {
		if p == g.target {
			g.mu.Unlock()
			return fmt.Errorf("%w: %v", ErrStartIsTarget, p)
		}
		changes = g.set(g.start, Empty, changes)
		g.start = p
		changes = g.set(p, Start, changes)
	} else {
		if p == g.start {
			g.mu.Unlock()
			return fmt.Errorf("%w: %v", ErrStartIsTarget, p)
		}
		changes = g.set(g.target, Empty, changes)
		g.target = p
		changes = g.set(p, Target, changes)
	}
	fn := g.onChange
	g.mu.Unlock()

	g.notify(fn, changes)
	return nil
}

// ToggleWall flips p between Wall and Empty. Every other state, overlay
// marks included, is left untouched.
func (g *Grid) ToggleWall(p Position) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: %v", ErrInvalidPosition, p)
	}
	g.mu.Lock()
	var changes []change
	switch g.cells[g.index(p)] {
	case Wall:
		changes = g.set(p, Empty, changes)
	case Empty:
		changes = g.set(p, Wall, changes)
	}
	fn := g.onChange
	g.mu.Unlock()

	g.notify(fn, changes)
	return nil
}

// SetWall turns an Empty p into a Wall (on=true) or clears a Wall back to
// Empty. Other states are left untouched.
func (g *Grid) SetWall(p Position, on bool) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: %v", ErrInvalidPosition, p)
	}
	g.mu.Lock()
	var changes []change
	cur := g.cells[g.index(p)]
	switch {
	case on && cur == Empty:
		changes = g.set(p, Wall, changes)
	case !on && cur == Wall:
		changes = g.set(p, Empty, changes)
	}
	fn := g.onChange
	g.mu.Unlock()

	g.notify(fn, changes)
	return nil
}

// Mark writes an overlay state (Frontier, Explored or Path) at p.
// Cells that are Start, Target, Wall or DynamicObstacle are never
// overwritten; out-of-bounds positions and non-overlay states are ignored.
// Reports whether the cell changed.
func (g *Grid) Mark(p Position, s CellState) bool {
	if !s.Overlay() || !g.InBounds(p) {
		return false
	}
	g.mu.Lock()
	var changes []change
	if cur := g.cells[g.index(p)]; cur == Empty || cur.Overlay() {
		changes = g.set(p, s, changes)
	}
	fn := g.onChange
	g.mu.Unlock()

	g.notify(fn, changes)
	return len(changes) > 0
}

// PlaceObstacle converts a passable, non-Start/Target cell into a
// DynamicObstacle and appends it to the obstacle log. A cell already queued
// in some frontier may be converted; strategies re-check on expansion.
// Reports whether the cell was converted.
func (g *Grid) PlaceObstacle(p Position) bool {
	if !g.InBounds(p) {
		return false
	}
	g.mu.Lock()
	var changes []change
	if cur := g.cells[g.index(p)]; cur == Empty || cur.Overlay() {
		changes = g.set(p, DynamicObstacle, changes)
		g.obstacles = append(g.obstacles, p)
	}
	fn := g.onChange
	g.mu.Unlock()

	g.notify(fn, changes)
	return len(changes) > 0
}

// ClearOverlay resets Frontier, Explored and Path cells to Empty and
// restores the Start/Target markers. Walls and dynamic obstacles stay.
// Complexity: O(rows×cols).
func (g *Grid) ClearOverlay() {
	g.mu.Lock()
	var changes []change
	for i, s := range g.cells {
		if s.Overlay() {
			changes = g.set(g.Coordinate(i), Empty, changes)
		}
	}
	changes = g.set(g.start, Start, changes)
	changes = g.set(g.target, Target, changes)
	fn := g.onChange
	g.mu.Unlock()

	g.notify(fn, changes)
}

// ClearAll resets every non-Start/Target cell to Empty and empties the
// obstacle log.
// Complexity: O(rows×cols).
func (g *Grid) ClearAll() {
	g.mu.Lock()
	var changes []change
	for i, s := range g.cells {
		if s != Start && s != Target {
			changes = g.set(g.Coordinate(i), Empty, changes)
		}
	}
	g.obstacles = nil
	fn := g.onChange
	g.mu.Unlock()

	g.notify(fn, changes)
}
