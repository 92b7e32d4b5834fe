// Package search defines the algorithm set, run status, step results,
// options and sentinel errors shared by the grid search strategies.
package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/gridsearch/grid"
)

// Sentinel errors for strategy construction.
var (
	// ErrNilGrid is returned when Env.Grid is nil.
	ErrNilGrid = errors.New("search: grid is nil")

	// ErrUnknownAlgorithm is returned for names outside the supported set.
	ErrUnknownAlgorithm = errors.New("search: unknown algorithm")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("search: invalid option supplied")
)

// Algorithm names one of the closed set of strategies.
type Algorithm int

const (
	// BFS is breadth-first search.
	BFS Algorithm = iota
	// DFS is depth-first search.
	DFS
	// UCS is uniform-cost search.
	UCS
	// DLS is depth-limited search.
	DLS
	// IDDFS is iterative-deepening depth-first search.
	IDDFS
	// Bidirectional is two-frontier breadth-first search.
	Bidirectional
)

var algorithmNames = [...]string{
	BFS:           "BFS",
	DFS:           "DFS",
	UCS:           "UCS",
	DLS:           "DLS",
	IDDFS:         "IDDFS",
	Bidirectional: "Bidirectional",
}

// Algorithms lists every supported algorithm in presentation order.
func Algorithms() []Algorithm {
	return []Algorithm{BFS, DFS, UCS, DLS, IDDFS, Bidirectional}
}

// String returns the display name ("BFS", "Bidirectional", ...).
func (a Algorithm) String() string {
	if a >= 0 && int(a) < len(algorithmNames) {
		return algorithmNames[a]
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// Valid reports whether a is one of the supported algorithms.
func (a Algorithm) Valid() bool {
	return a >= BFS && a <= Bidirectional
}

// ParseAlgorithm maps a case-insensitive name to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	for i, n := range algorithmNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Algorithm(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Status is the run state shared by all strategies:
//
//	Idle → Running → {Paused ⇄ Running} → {Found | NotFound | Cancelled}
type Status int

const (
	// StatusIdle: constructed, no step taken yet.
	StatusIdle Status = iota
	// StatusRunning: at least one step taken, not finished.
	StatusRunning
	// StatusPaused: frozen between steps; frontier and visited are kept.
	StatusPaused
	// StatusFound: the target was reached.
	StatusFound
	// StatusNotFound: the frontier was exhausted.
	StatusNotFound
	// StatusCancelled: aborted from outside.
	StatusCancelled
)

var statusNames = [...]string{
	StatusIdle:      "Idle",
	StatusRunning:   "Running",
	StatusPaused:    "Paused",
	StatusFound:     "Found",
	StatusNotFound:  "NotFound",
	StatusCancelled: "Cancelled",
}

// String returns the status name.
func (s Status) String() string {
	if s >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Terminal reports whether s is Found, NotFound or Cancelled.
func (s Status) Terminal() bool {
	return s == StatusFound || s == StatusNotFound || s == StatusCancelled
}

// StepResult reports what one Step did.
type StepResult struct {
	// Done is true once the strategy reached a terminal status.
	Done bool
	// Found is true when Done and the target was reached.
	Found bool
	// Paused is true when the step was refused because the run is paused.
	Paused bool
	// IterationDone is set by IDDFS when one depth iteration failed and the
	// next one is about to begin.
	IterationDone bool
	// Depth is the depth limit of the current IDDFS iteration.
	Depth int
	// Current is the cell processed by this step, if any.
	Current grid.Position
	// Dropped is true when the dequeued cell had become impassable.
	Dropped bool
}

// Outcome is the final (or current) result of a strategy.
type Outcome struct {
	Status Status
	// Path lists cells from Start to Target inclusive when Found.
	Path []grid.Position
	// Cost is the sum of step costs along Path.
	Cost float64
	// Steps counts Step calls that did work.
	Steps int
	// Expanded counts cells whose neighbors were generated.
	Expanded int
}

// Found reports whether the outcome carries a path.
func (o Outcome) Found() bool {
	return o.Status == StatusFound
}

// ObstacleSource is consulted once per strategy step and may turn one cell
// of the grid into a dynamic obstacle. *grid.Injector implements it.
type ObstacleSource interface {
	MaybeInject(g *grid.Grid) (grid.Position, bool)
}

// Env is the shared world a strategy runs in.
type Env struct {
	// Grid is read for passability and written for overlay states.
	Grid *grid.Grid
	// Injector, if non-nil, is consulted at the start of every step.
	Injector ObstacleSource
}

// Default depth budgets.
const (
	DefaultDepthLimit = 15
	DefaultMaxDepth   = 30
)

// Option configures strategy construction.
type Option func(*Options)

// Options holds strategy parameters.
type Options struct {
	// DepthLimit bounds DLS recursion depth; default 15.
	DepthLimit int
	// MaxDepth caps IDDFS at depths 0..MaxDepth-1; default 30.
	MaxDepth int

	err error
}

// DefaultOptions returns DepthLimit=15 and MaxDepth=30.
func DefaultOptions() Options {
	return Options{
		DepthLimit: DefaultDepthLimit,
		MaxDepth:   DefaultMaxDepth,
	}
}

// WithDepthLimit sets the DLS depth budget; negative values are rejected.
func WithDepthLimit(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: DepthLimit cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.DepthLimit = d
	}
}

// WithMaxDepth sets the IDDFS iteration cap; it must be positive.
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d <= 0 {
			o.err = fmt.Errorf("%w: MaxDepth must be positive (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}
