// Package engine defines the controller options, events, run reports and
// sentinel errors of the execution controller.
package engine

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/gridsearch/grid"
	"github.com/katalvlaran/gridsearch/search"
)

// Sentinel errors for controller construction and edits.
var (
	// ErrRunActive is returned by edits attempted while a run is active.
	ErrRunActive = errors.New("engine: a run is already active")

	// ErrNilGrid is returned when New receives a nil grid.
	ErrNilGrid = errors.New("engine: grid is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("engine: invalid option supplied")
)

// Default pacing, matching the interactive shell.
const (
	DefaultStepDelay      = 50 * time.Millisecond
	DefaultPathDelay      = 50 * time.Millisecond
	DefaultIterationDelay = 200 * time.Millisecond
)

// EventKind tags an Event.
type EventKind int

const (
	// CellStateChanged: Pos moved to State.
	CellStateChanged EventKind = iota
	// ObstacleInjected: a dynamic obstacle appeared at Pos.
	ObstacleInjected
	// RunStarted: a run began with Algorithm.
	RunStarted
	// IterationStarted: IDDFS began the iteration with limit Depth.
	IterationStarted
	// RunCompleted: the run ended with Status; Found is set on success.
	RunCompleted
)

var eventKindNames = [...]string{
	CellStateChanged: "CellStateChanged",
	ObstacleInjected: "ObstacleInjected",
	RunStarted:       "RunStarted",
	IterationStarted: "IterationStarted",
	RunCompleted:     "RunCompleted",
}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is one notification for the presentation shell. Fields beyond
// Kind, RunID and Step are set only for the kinds that use them.
type Event struct {
	Kind  EventKind
	RunID uuid.UUID // uuid.Nil outside a run
	Step  int

	Pos   grid.Position
	State grid.CellState

	Algorithm search.Algorithm
	Depth     int
	Status    search.Status
	Found     bool
}

// EventHandler receives events synchronously on the goroutine that caused
// them. It must not block for long and must not call back into the
// Controller's run-control methods.
type EventHandler func(Event)

// Report summarizes one finished run.
type Report struct {
	RunID     uuid.UUID
	Algorithm search.Algorithm
	Outcome   search.Outcome
	// Obstacles lists dynamic obstacles placed while the run was active.
	Obstacles []grid.Position
	Elapsed   time.Duration
}

// Option configures a Controller.
type Option func(*Options)

// Options holds Controller parameters.
type Options struct {
	// Algorithm selected for the next run; default BFS.
	Algorithm search.Algorithm

	// StepDelay is slept after every strategy step; default 50ms.
	StepDelay time.Duration

	// PathDelay is slept after every path cell is marked; default 50ms.
	PathDelay time.Duration

	// IterationDelay is slept between IDDFS iterations; default 200ms.
	IterationDelay time.Duration

	// DepthLimit for DLS; MaxDepth for IDDFS.
	DepthLimit int
	MaxDepth   int

	// Injector is consulted once per step; nil builds the default one.
	Injector *grid.Injector

	// OnEvent observes controller events; nil drops them.
	OnEvent EventHandler

	// Logger receives run progress; default log.Default().
	Logger *log.Logger

	err error
}

// DefaultOptions returns BFS with the interactive pacing and depth budgets.
func DefaultOptions() Options {
	return Options{
		Algorithm:      search.BFS,
		StepDelay:      DefaultStepDelay,
		PathDelay:      DefaultPathDelay,
		IterationDelay: DefaultIterationDelay,
		DepthLimit:     search.DefaultDepthLimit,
		MaxDepth:       search.DefaultMaxDepth,
	}
}

// WithAlgorithm selects the initial algorithm.
func WithAlgorithm(a search.Algorithm) Option {
	return func(o *Options) {
		if !a.Valid() {
			o.err = fmt.Errorf("%w: %w %v", ErrOptionViolation, search.ErrUnknownAlgorithm, a)
			return
		}
		o.Algorithm = a
	}
}

// WithStepDelay sets the pause after every step; negative is rejected.
func WithStepDelay(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: StepDelay cannot be negative (%v)", ErrOptionViolation, d)
			return
		}
		o.StepDelay = d
	}
}

// WithPathDelay sets the pause after every marked path cell.
func WithPathDelay(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: PathDelay cannot be negative (%v)", ErrOptionViolation, d)
			return
		}
		o.PathDelay = d
	}
}

// WithIterationDelay sets the pause between IDDFS iterations.
func WithIterationDelay(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: IterationDelay cannot be negative (%v)", ErrOptionViolation, d)
			return
		}
		o.IterationDelay = d
	}
}

// WithDepthLimit sets the DLS depth budget.
func WithDepthLimit(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: DepthLimit cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.DepthLimit = d
	}
}

// WithMaxDepth sets the IDDFS iteration cap.
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d <= 0 {
			o.err = fmt.Errorf("%w: MaxDepth must be positive (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithInjector installs the obstacle injector.
func WithInjector(inj *grid.Injector) Option {
	return func(o *Options) {
		if inj == nil {
			o.err = fmt.Errorf("%w: Injector is nil", ErrOptionViolation)
			return
		}
		o.Injector = inj
	}
}

// WithEventHandler installs the event observer.
func WithEventHandler(fn EventHandler) Option {
	return func(o *Options) {
		if fn == nil {
			o.err = fmt.Errorf("%w: EventHandler is nil", ErrOptionViolation)
			return
		}
		o.OnEvent = fn
	}
}

// WithLogger redirects progress logging. Use log.New(io.Discard, "", 0)
// to silence it.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		if l == nil {
			o.err = fmt.Errorf("%w: Logger is nil", ErrOptionViolation)
			return
		}
		o.Logger = l
	}
}
