package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/gridsearch/grid"
	"github.com/katalvlaran/gridsearch/search"
)

// Controller owns the grid, the selected algorithm, pacing and the single
// active run. All methods are safe for concurrent use.
//
// The grid's change hook is taken over by the Controller and translated
// into CellStateChanged and ObstacleInjected events.
//
// Layout edits (start, target, walls) go through the Controller so that
// they are refused while a run is active.
type Controller struct {
	// edit serializes layout edits against run registration. It is taken
	// before mu and never held by the run goroutine.
	edit sync.Mutex
	mu   sync.Mutex
	g    *grid.Grid
	inj  *grid.Injector
	opts Options
	log  *log.Logger

	active *run
	last   Report
}

// run is the state of one active search.
type run struct {
	id       uuid.UUID
	algo     search.Algorithm
	strategy search.Strategy
	cancel   context.CancelFunc
	done     chan struct{}
	started  time.Time

	step      int
	obstacles []grid.Position
	paused    bool
	resume    chan struct{} // closed by Resume
	report    Report
}

// New builds a Controller over g. Without WithInjector a default injector
// (enabled, probability 0.001) is created.
// Returns ErrNilGrid or ErrOptionViolation.
func New(g *grid.Grid, opts ...Option) (*Controller, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if o.Injector == nil {
		inj, err := grid.NewInjector()
		if err != nil {
			return nil, err
		}
		o.Injector = inj
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}

	c := &Controller{g: g, inj: o.Injector, opts: o, log: o.Logger}
	g.SetOnChange(c.onCellChange)
	return c, nil
}

// Grid returns the grid currently driven by the controller. Treat it as
// read-only: layout edits made on it directly bypass the run guard, so use
// SetStart, SetTarget, ToggleWall and SetWall instead.
func (c *Controller) Grid() *grid.Grid {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.g
}

// Injector returns the obstacle injector.
func (c *Controller) Injector() *grid.Injector {
	return c.inj
}

// Algorithm returns the selected algorithm.
func (c *Controller) Algorithm() search.Algorithm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opts.Algorithm
}

// Active reports whether a run is in progress.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active != nil
}

// Status returns the status of the active run, or of the last finished run,
// or Idle when nothing ran yet.
func (c *Controller) Status() search.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != nil {
		return c.active.strategy.Status()
	}
	if c.last.RunID == uuid.Nil {
		return search.StatusIdle
	}
	return c.last.Outcome.Status
}

// Outcome returns the live outcome of the active run, or the last report's.
func (c *Controller) Outcome() search.Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != nil {
		return c.active.strategy.Outcome()
	}
	return c.last.Outcome
}

// ConfigureGrid replaces the grid with a fresh rows×cols grid holding walls,
// start and target. Start or Target on a wall is ErrBlockedStartOrTarget.
func (c *Controller) ConfigureGrid(rows, cols int, walls []grid.Position, start, target grid.Position) error {
	for _, w := range walls {
		if w == start || w == target {
			return fmt.Errorf("%w: wall at %v", grid.ErrBlockedStartOrTarget, w)
		}
	}
	g, err := grid.New(rows, cols,
		grid.WithStart(start),
		grid.WithTarget(target),
		grid.WithWalls(walls...),
		grid.WithOnChange(c.onCellChange),
	)
	if err != nil {
		return err
	}

	c.edit.Lock()
	defer c.edit.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != nil {
		return ErrRunActive
	}
	c.g.SetOnChange(nil)
	c.g = g
	return nil
}

// SetStart moves Start to p. Returns ErrRunActive during a run, otherwise
// the grid's error (ErrInvalidPosition, ErrBlockedStartOrTarget,
// ErrStartIsTarget).
func (c *Controller) SetStart(p grid.Position) error {
	return c.editGrid(func(g *grid.Grid) error { return g.SetStart(p) })
}

// SetTarget moves Target to p; errors mirror SetStart.
func (c *Controller) SetTarget(p grid.Position) error {
	return c.editGrid(func(g *grid.Grid) error { return g.SetTarget(p) })
}

// ToggleWall flips p between Empty and Wall.
// Returns ErrRunActive during a run.
func (c *Controller) ToggleWall(p grid.Position) error {
	return c.editGrid(func(g *grid.Grid) error { return g.ToggleWall(p) })
}

// SetWall places (on=true) or removes a wall at p.
// Returns ErrRunActive during a run.
func (c *Controller) SetWall(p grid.Position, on bool) error {
	return c.editGrid(func(g *grid.Grid) error { return g.SetWall(p, on) })
}

// editGrid applies fn to the grid when no run is active. The grid lock and
// change hook run outside c.mu.
func (c *Controller) editGrid(fn func(g *grid.Grid) error) error {
	c.edit.Lock()
	defer c.edit.Unlock()
	c.mu.Lock()
	g, active := c.g, c.active != nil
	c.mu.Unlock()
	if active {
		return ErrRunActive
	}
	return fn(g)
}

// SelectAlgorithm chooses the strategy for the next run and clears the
// search overlay.
func (c *Controller) SelectAlgorithm(a search.Algorithm) error {
	if !a.Valid() {
		return fmt.Errorf("%w: %v", search.ErrUnknownAlgorithm, a)
	}
	c.edit.Lock()
	defer c.edit.Unlock()
	c.mu.Lock()
	if c.active != nil {
		c.mu.Unlock()
		return ErrRunActive
	}
	c.opts.Algorithm = a
	g := c.g
	c.mu.Unlock()

	g.ClearOverlay()
	return nil
}

// SetStepDelay changes the per-step pause; it applies to an active run
// from its next step.
func (c *Controller) SetStepDelay(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("%w: StepDelay cannot be negative (%v)", ErrOptionViolation, d)
	}
	c.mu.Lock()
	c.opts.StepDelay = d
	c.mu.Unlock()
	return nil
}

// SetDynamicObstaclesEnabled toggles obstacle injection.
func (c *Controller) SetDynamicObstaclesEnabled(on bool) {
	c.inj.SetEnabled(on)
}

// SetObstacleProbability sets the per-step injection probability in [0,1].
func (c *Controller) SetObstacleProbability(p float64) error {
	return c.inj.SetProbability(p)
}

// Start launches a run of the selected algorithm in a new goroutine and
// returns true. When a run is already active it does nothing and returns
// false. Cancelling ctx cancels the run.
func (c *Controller) Start(ctx context.Context) bool {
	r, ctx, err := c.prepare(ctx)
	if err != nil {
		if !errors.Is(err, ErrRunActive) {
			c.log.Printf("[WARN] %v", err)
		}
		return false
	}
	go c.loop(ctx, r)
	return true
}

// Run executes a run of the selected algorithm on the calling goroutine
// and returns its report. Returns ErrRunActive when a run is active.
func (c *Controller) Run(ctx context.Context) (Report, error) {
	r, ctx, err := c.prepare(ctx)
	if err != nil {
		return Report{}, err
	}
	c.loop(ctx, r)
	return r.report, nil
}

// Wait blocks until the active run, if any, finishes, and returns the
// report of the most recent run.
func (c *Controller) Wait() Report {
	c.mu.Lock()
	r := c.active
	c.mu.Unlock()
	if r != nil {
		<-r.done
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Pause freezes the active run between steps. Reports whether it paused.
func (c *Controller) Pause() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	r := c.active
	if r == nil || r.paused || !r.strategy.Pause() {
		return false
	}
	r.paused = true
	r.resume = make(chan struct{})
	return true
}

// Resume continues a paused run. Reports whether it resumed.
func (c *Controller) Resume() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	r := c.active
	if r == nil || !r.paused {
		return false
	}
	r.strategy.Resume()
	r.paused = false
	close(r.resume)
	return true
}

// TogglePause pauses a running search or resumes a paused one.
func (c *Controller) TogglePause() bool {
	c.mu.Lock()
	paused := c.active != nil && c.active.paused
	c.mu.Unlock()
	if paused {
		return c.Resume()
	}
	return c.Pause()
}

// Cancel aborts the active run without marking a path. The overlay is left
// as it was. Reports whether a run was cancelled.
func (c *Controller) Cancel() bool {
	c.mu.Lock()
	r := c.active
	c.mu.Unlock()
	if r == nil {
		return false
	}
	r.cancel()
	return true
}

// Reset cancels the active run, waits for it, and clears the search
// overlay. Walls and dynamic obstacles stay.
func (c *Controller) Reset() {
	c.edit.Lock()
	defer c.edit.Unlock()
	c.Cancel()
	c.Wait()
	c.Grid().ClearOverlay()
}

// ClearAll cancels the active run, waits for it, and resets every cell
// except Start and Target to Empty.
func (c *Controller) ClearAll() {
	c.edit.Lock()
	defer c.edit.Unlock()
	c.Cancel()
	c.Wait()
	c.Grid().ClearAll()
}

// prepare builds the strategy for the selected algorithm and registers the run.
func (c *Controller) prepare(parent context.Context) (*run, context.Context, error) {
	c.edit.Lock()
	defer c.edit.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != nil {
		return nil, nil, ErrRunActive
	}
	s, err := search.New(c.opts.Algorithm, search.Env{Grid: c.g, Injector: c.inj},
		search.WithDepthLimit(c.opts.DepthLimit),
		search.WithMaxDepth(c.opts.MaxDepth),
	)
	if err != nil {
		return nil, nil, err
	}
	ctx, cancel := context.WithCancel(parent)
	r := &run{
		id:       uuid.New(),
		algo:     c.opts.Algorithm,
		strategy: s,
		cancel:   cancel,
		done:     make(chan struct{}),
		started:  time.Now(),
	}
	c.active = r
	return r, ctx, nil
}

// loop steps the strategy with pacing until it finishes or ctx is done,
// then animates the path and publishes the report.
func (c *Controller) loop(ctx context.Context, r *run) {
	defer close(r.done)
	defer r.cancel()

	c.Grid().ClearOverlay()
	c.log.Printf("[INFO] Running %s...", r.algo)
	c.emit(Event{Kind: RunStarted, RunID: r.id, Algorithm: r.algo})
	if r.algo == search.IDDFS {
		c.iteration(r, 0)
	}

	for {
		if !c.waitResumed(ctx, r) || ctx.Err() != nil {
			r.strategy.Cancel()
			break
		}

		res := r.strategy.Step()
		if res.Paused {
			continue
		}
		c.mu.Lock()
		r.step++
		delay, iterDelay := c.opts.StepDelay, c.opts.IterationDelay
		c.mu.Unlock()
		if res.Done {
			break
		}
		if res.IterationDone {
			c.iteration(r, res.Depth)
			delay = iterDelay
		}
		sleep(ctx, delay)
	}

	out := r.strategy.Outcome()
	if out.Found() {
		c.markPath(ctx, out.Path)
	}
	switch out.Status {
	case search.StatusFound:
		c.log.Printf("[INFO] %s: Path found!", r.algo)
	case search.StatusCancelled:
		c.log.Printf("[INFO] %s: Cancelled", r.algo)
	default:
		c.log.Printf("[INFO] %s: No path found!", r.algo)
	}

	c.mu.Lock()
	r.report = Report{
		RunID:     r.id,
		Algorithm: r.algo,
		Outcome:   out,
		Obstacles: append([]grid.Position(nil), r.obstacles...),
		Elapsed:   time.Since(r.started),
	}
	c.last = r.report
	c.active = nil
	step := r.step
	c.mu.Unlock()

	c.emit(Event{
		Kind:      RunCompleted,
		RunID:     r.id,
		Step:      step,
		Algorithm: r.algo,
		Status:    out.Status,
		Found:     out.Found(),
	})
}

// waitResumed blocks while r is paused. It returns false when ctx ends first.
func (c *Controller) waitResumed(ctx context.Context, r *run) bool {
	for {
		c.mu.Lock()
		paused, ch := r.paused, r.resume
		c.mu.Unlock()
		if !paused {
			return true
		}
		select {
		case <-ch:
		case <-ctx.Done():
			return false
		}
	}
}

// iteration logs and publishes the start of an IDDFS depth.
func (c *Controller) iteration(r *run, depth int) {
	c.log.Printf("[INFO] IDDFS: Searching at depth %d", depth)
	c.mu.Lock()
	step := r.step
	c.mu.Unlock()
	c.emit(Event{Kind: IterationStarted, RunID: r.id, Step: step, Algorithm: r.algo, Depth: depth})
}

// markPath paints path cells one at a time with PathDelay between them.
// Start and Target keep their markers. Stops early if ctx ends.
func (c *Controller) markPath(ctx context.Context, path []grid.Position) {
	c.mu.Lock()
	g, delay := c.g, c.opts.PathDelay
	c.mu.Unlock()
	for _, p := range path {
		g.Mark(p, grid.Path)
		if sleep(ctx, delay) != nil {
			return
		}
	}
}

// onCellChange translates grid changes into events.
func (c *Controller) onCellChange(pos grid.Position, old, new grid.CellState) {
	c.mu.Lock()
	var id uuid.UUID
	var step int
	if r := c.active; r != nil {
		id, step = r.id, r.step
		if new == grid.DynamicObstacle {
			r.obstacles = append(r.obstacles, pos)
		}
	}
	c.mu.Unlock()

	c.emit(Event{Kind: CellStateChanged, RunID: id, Step: step, Pos: pos, State: new})
	if new == grid.DynamicObstacle && old != grid.DynamicObstacle {
		c.log.Printf("[INFO] Dynamic obstacle added at %v", pos)
		c.emit(Event{Kind: ObstacleInjected, RunID: id, Step: step, Pos: pos, State: new})
	}
}

func (c *Controller) emit(e Event) {
	if c.opts.OnEvent != nil {
		c.opts.OnEvent(e)
	}
}

// sleep waits d or until ctx is done, returning ctx.Err() in the latter case.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
