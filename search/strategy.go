package search

import (
	"context"
	"sync"

	"github.com/katalvlaran/gridsearch/grid"
)

// Strategy is one search run advanced a discrete step at a time. After
// every Step the caller regains control: it may render, sleep, pause,
// resume or cancel before the next Step.
//
// Step is not safe for concurrent use with itself; Pause, Resume, Cancel,
// Status and Outcome may be called from any goroutine.
type Strategy interface {
	// Algorithm reports which strategy this is.
	Algorithm() Algorithm
	// Step advances the search by one step. Once Done, it keeps returning
	// the terminal result. While paused it returns Paused and does nothing.
	Step() StepResult
	// Pause freezes a running search between steps.
	Pause() bool
	// Resume continues a paused search.
	Resume() bool
	// Cancel terminates a non-terminal search. The grid is left as-is and
	// no path is produced.
	Cancel() bool
	// Status returns the current status.
	Status() Status
	// Outcome returns a copy of the current outcome.
	Outcome() Outcome
}

// New builds the strategy for algo over env, applying opts.
// Start and Target are read from env.Grid at construction.
// Returns ErrNilGrid, ErrUnknownAlgorithm or ErrOptionViolation.
func New(algo Algorithm, env Env, opts ...Option) (Strategy, error) {
	if env.Grid == nil {
		return nil, ErrNilGrid
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	switch algo {
	case BFS:
		return newBFS(env), nil
	case DFS:
		return newDFS(env), nil
	case UCS:
		return newUCS(env), nil
	case DLS:
		return newDLS(env, o.DepthLimit), nil
	case IDDFS:
		return newIDDFS(env, o.MaxDepth), nil
	case Bidirectional:
		return newBidirectional(env), nil
	default:
		return nil, ErrUnknownAlgorithm
	}
}

// Run drives s to completion without pacing, cancelling it when ctx is done.
// It returns the final outcome.
func Run(ctx context.Context, s Strategy) Outcome {
	for {
		select {
		case <-ctx.Done():
			s.Cancel()
			return s.Outcome()
		default:
		}
		if r := s.Step(); r.Done {
			return s.Outcome()
		}
	}
}

// base carries the state every strategy shares: environment, node arena,
// outcome and the status machine.
type base struct {
	algo   Algorithm
	g      *grid.Grid
	inj    ObstacleSource
	start  grid.Position
	target grid.Position
	arena  Arena

	mu     sync.Mutex
	out    Outcome
	result StepResult // terminal result, valid once out.Status is terminal
}

func newBase(algo Algorithm, env Env) base {
	return base{
		algo:   algo,
		g:      env.Grid,
		inj:    env.Injector,
		start:  env.Grid.Start(),
		target: env.Grid.Target(),
	}
}

func (b *base) Algorithm() Algorithm { return b.algo }

func (b *base) Status() Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.out.Status
}

func (b *base) Outcome() Outcome {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.out
	out.Path = append([]grid.Position(nil), b.out.Path...)
	return out
}

func (b *base) Pause() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.out.Status != StatusRunning && b.out.Status != StatusIdle {
		return false
	}
	b.out.Status = StatusPaused
	return true
}

func (b *base) Resume() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.out.Status != StatusPaused {
		return false
	}
	b.out.Status = StatusRunning
	return true
}

func (b *base) Cancel() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.out.Status.Terminal() {
		return false
	}
	b.out.Status = StatusCancelled
	b.result = StepResult{Done: true}
	return true
}

// gate returns (result, false) when a step must not run because the
// strategy is terminal or paused.
func (b *base) gate() (StepResult, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch {
	case b.out.Status.Terminal():
		return b.result, false
	case b.out.Status == StatusPaused:
		return StepResult{Paused: true}, false
	}
	return StepResult{}, true
}

// tick counts a working step, moves Idle to Running and consults the
// obstacle injector once.
func (b *base) tick() {
	b.mu.Lock()
	if b.out.Status == StatusIdle {
		b.out.Status = StatusRunning
	}
	b.out.Steps++
	b.mu.Unlock()

	if b.inj != nil {
		b.inj.MaybeInject(b.g)
	}
}

// explore marks pos Explored and counts the expansion.
func (b *base) explore(pos grid.Position) {
	b.g.Mark(pos, grid.Explored)
	b.mu.Lock()
	b.out.Expanded++
	b.mu.Unlock()
}

// discover marks pos Frontier; Start and Target cells are never overwritten.
func (b *base) discover(pos grid.Position) {
	b.g.Mark(pos, grid.Frontier)
}

// found ends the run with path.
func (b *base) found(path []grid.Position, at grid.Position) StepResult {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.out.Status == StatusCancelled {
		return b.result
	}
	b.out.Status = StatusFound
	b.out.Path = path
	b.out.Cost = PathCost(path)
	b.result = StepResult{Done: true, Found: true, Current: at}
	return b.result
}

// exhausted ends the run without a path.
func (b *base) exhausted() StepResult {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.out.Status == StatusCancelled {
		return b.result
	}
	b.out.Status = StatusNotFound
	b.result = StepResult{Done: true}
	return b.result
}
