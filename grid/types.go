// Package grid defines cell states, positions, options, and sentinel errors
// for the occupancy grid searched by github.com/katalvlaran/gridsearch.
package grid

import (
	"errors"
	"fmt"
)

// Sentinel errors for grid operations.
var (
	// ErrEmptyGrid indicates a grid with no rows or no columns was requested.
	ErrEmptyGrid = errors.New("grid: grid must have at least one row and one column")

	// ErrInvalidPosition indicates a position outside [0,rows)×[0,cols).
	ErrInvalidPosition = errors.New("grid: position out of bounds")

	// ErrBlockedStartOrTarget indicates an attempt to place Start or Target
	// on an impassable cell.
	ErrBlockedStartOrTarget = errors.New("grid: start/target cannot be placed on a blocked cell")

	// ErrStartIsTarget indicates Start and Target would share one cell.
	ErrStartIsTarget = errors.New("grid: start and target must be different cells")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("grid: invalid option supplied")
)

// CellState is the single state held by every grid cell.
type CellState uint8

const (
	// Empty is a passable cell with no search overlay.
	Empty CellState = iota
	// Wall is a pre-placed impassable cell.
	Wall
	// Start marks the search root.
	Start
	// Target marks the search goal.
	Target
	// Frontier marks a discovered, not yet expanded cell.
	Frontier
	// Explored marks a cell whose neighbors were generated.
	Explored
	// Path marks a cell on the reconstructed path.
	Path
	// DynamicObstacle is a cell made impassable while searching.
	DynamicObstacle
)

var cellStateNames = [...]string{
	Empty:           "Empty",
	Wall:            "Wall",
	Start:           "Start",
	Target:          "Target",
	Frontier:        "Frontier",
	Explored:        "Explored",
	Path:            "Path",
	DynamicObstacle: "DynamicObstacle",
}

// String returns the state name.
func (s CellState) String() string {
	if int(s) < len(cellStateNames) {
		return cellStateNames[s]
	}
	return fmt.Sprintf("CellState(%d)", uint8(s))
}

// Passable reports whether a cell in state s can be entered.
func (s CellState) Passable() bool {
	return s != Wall && s != DynamicObstacle
}

// Overlay reports whether s is a transient search-visualization state.
func (s CellState) Overlay() bool {
	return s == Frontier || s == Explored || s == Path
}

// Position addresses one cell by row and column.
type Position struct {
	Row, Col int
}

// Pos is shorthand for Position{Row: row, Col: col}.
func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// String formats the position as "(row,col)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// ChangeFunc observes a cell transition from old to new.
type ChangeFunc func(pos Position, old, new CellState)

// Option configures a Grid at construction time.
// An invalid Option is recorded and surfaced as ErrOptionViolation by New.
type Option func(*GridOptions)

// GridOptions holds construction parameters for New.
type GridOptions struct {
	// Start is the initial start cell; nil selects the default (1,1).
	Start *Position

	// Target is the initial target cell; nil selects (rows-2, cols-2).
	Target *Position

	// Walls are placed after Start/Target; walls on either are ignored.
	Walls []Position

	// OnChange, if non-nil, observes every state change.
	OnChange ChangeFunc

	err error
}

// DefaultOptions returns GridOptions with default start/target placement,
// no walls and no change hook.
func DefaultOptions() GridOptions {
	return GridOptions{}
}

// WithStart sets the initial start cell.
func WithStart(p Position) Option {
	return func(o *GridOptions) {
		o.Start = &p
	}
}

// WithTarget sets the initial target cell.
func WithTarget(p Position) Option {
	return func(o *GridOptions) {
		o.Target = &p
	}
}

// WithWalls places static walls at construction time.
func WithWalls(walls ...Position) Option {
	return func(o *GridOptions) {
		o.Walls = append(o.Walls, walls...)
	}
}

// WithOnChange installs a change hook; a nil fn is an option violation.
func WithOnChange(fn ChangeFunc) Option {
	return func(o *GridOptions) {
		if fn == nil {
			o.err = fmt.Errorf("%w: OnChange hook is nil", ErrOptionViolation)
			return
		}
		o.OnChange = fn
	}
}
