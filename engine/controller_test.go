package engine_test

import (
	"bytes"
	"context"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/gridsearch/engine"
	"github.com/katalvlaran/gridsearch/grid"
	"github.com/katalvlaran/gridsearch/search"
)

// recorder collects events from the run goroutine.
type recorder struct {
	mu     sync.Mutex
	events []engine.Event
}

func (r *recorder) handle(e engine.Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recorder) all() []engine.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]engine.Event(nil), r.events...)
}

func (r *recorder) kind(k engine.EventKind) []engine.Event {
	var out []engine.Event
	for _, e := range r.all() {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

// syncBuffer is a bytes.Buffer safe for the logger and the test goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// ControllerSuite drives a Controller over a 5×5 open grid with zero
// pacing and injection disabled unless a test turns it on.
type ControllerSuite struct {
	suite.Suite
	g   *grid.Grid
	rec *recorder
	out *syncBuffer
	c   *engine.Controller
}

func (s *ControllerSuite) SetupTest() {
	g, err := grid.New(5, 5, grid.WithStart(grid.Pos(0, 0)), grid.WithTarget(grid.Pos(4, 4)))
	require.NoError(s.T(), err)
	inj, err := grid.NewInjector(grid.WithEnabled(false), grid.WithSeed(7))
	require.NoError(s.T(), err)

	s.g, s.rec, s.out = g, &recorder{}, &syncBuffer{}
	s.c, err = engine.New(g,
		engine.WithStepDelay(0),
		engine.WithPathDelay(0),
		engine.WithIterationDelay(0),
		engine.WithInjector(inj),
		engine.WithEventHandler(s.rec.handle),
		engine.WithLogger(log.New(s.out, "", 0)),
	)
	require.NoError(s.T(), err)
}

func (s *ControllerSuite) TearDownTest() {
	s.c.Cancel()
	s.c.Wait()
}

// overlay counts Frontier, Explored and Path cells.
func (s *ControllerSuite) overlay() int {
	n := 0
	for _, row := range s.c.Grid().Snapshot() {
		for _, st := range row {
			if st.Overlay() {
				n++
			}
		}
	}
	return n
}

// TestRunBFS checks the report, the event stream and the log lines.
func (s *ControllerSuite) TestRunBFS() {
	t := s.T()
	require.Equal(t, search.StatusIdle, s.c.Status())

	rep, err := s.c.Run(context.Background())
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, rep.RunID)
	require.Equal(t, search.BFS, rep.Algorithm)
	require.Equal(t, search.StatusFound, rep.Outcome.Status)
	require.Len(t, rep.Outcome.Path, 5)
	require.Empty(t, rep.Obstacles)
	require.Equal(t, search.StatusFound, s.c.Status())
	require.False(t, s.c.Active())

	events := s.rec.all()
	require.NotEmpty(t, events)
	require.Equal(t, engine.RunStarted, events[0].Kind)
	last := events[len(events)-1]
	require.Equal(t, engine.RunCompleted, last.Kind)
	require.True(t, last.Found)
	require.Equal(t, rep.Outcome.Steps, last.Step)
	for _, e := range events {
		require.Equal(t, rep.RunID, e.RunID, "%v", e.Kind)
	}

	var path int
	for _, e := range s.rec.kind(engine.CellStateChanged) {
		if e.State == grid.Path {
			path++
		}
	}
	require.Equal(t, 3, path, "Start and Target keep their markers")

	logged := s.out.String()
	require.Contains(t, logged, "[INFO] Running BFS...")
	require.Contains(t, logged, "[INFO] BFS: Path found!")
}

// TestRunActive: a second run, layout edits and algorithm changes are
// refused while a run is active.
func (s *ControllerSuite) TestRunActive() {
	t := s.T()
	require.NoError(t, s.c.SetStepDelay(time.Hour))
	require.True(t, s.c.Start(context.Background()))
	require.True(t, s.c.Active())

	require.False(t, s.c.Start(context.Background()))
	_, err := s.c.Run(context.Background())
	require.ErrorIs(t, err, engine.ErrRunActive)
	require.ErrorIs(t, s.c.ConfigureGrid(3, 3, nil, grid.Pos(0, 0), grid.Pos(2, 2)), engine.ErrRunActive)
	require.ErrorIs(t, s.c.SelectAlgorithm(search.DFS), engine.ErrRunActive)
	require.ErrorIs(t, s.c.SetStart(grid.Pos(2, 0)), engine.ErrRunActive)
	require.ErrorIs(t, s.c.SetTarget(grid.Pos(0, 4)), engine.ErrRunActive)
	require.ErrorIs(t, s.c.ToggleWall(grid.Pos(3, 3)), engine.ErrRunActive)
	require.ErrorIs(t, s.c.SetWall(grid.Pos(3, 3), true), engine.ErrRunActive)

	g := s.c.Grid()
	require.Equal(t, grid.Pos(0, 0), g.Start())
	require.Equal(t, grid.Pos(4, 4), g.Target())
	st, _ := g.State(grid.Pos(3, 3))
	require.NotEqual(t, grid.Wall, st)

	require.True(t, s.c.Cancel())
	rep := s.c.Wait()
	require.Equal(t, search.StatusCancelled, rep.Outcome.Status)
	require.Empty(t, rep.Outcome.Path)
	require.False(t, s.c.Active())
	require.False(t, s.c.Cancel())
	require.Contains(t, s.out.String(), "BFS: Cancelled")

	for _, row := range s.c.Grid().Snapshot() {
		require.NotContains(t, row, grid.Path, "cancelled runs never mark a path")
	}
}

// TestLayoutEditsBetweenRuns: edits apply when idle and the next run
// searches between the new endpoints.
func (s *ControllerSuite) TestLayoutEditsBetweenRuns() {
	t := s.T()
	_, err := s.c.Run(context.Background())
	require.NoError(t, err)
	s.c.Reset()

	require.NoError(t, s.c.SetStart(grid.Pos(2, 0)))
	require.NoError(t, s.c.SetTarget(grid.Pos(2, 4)))
	require.NoError(t, s.c.ToggleWall(grid.Pos(1, 1)))
	require.NoError(t, s.c.SetWall(grid.Pos(2, 2), true))
	require.ErrorIs(t, s.c.SetStart(grid.Pos(2, 2)), grid.ErrBlockedStartOrTarget)
	require.ErrorIs(t, s.c.SetTarget(grid.Pos(2, 0)), grid.ErrStartIsTarget)
	require.ErrorIs(t, s.c.ToggleWall(grid.Pos(5, 0)), grid.ErrInvalidPosition)

	rep, err := s.c.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, search.StatusFound, rep.Outcome.Status)
	path := rep.Outcome.Path
	require.Equal(t, grid.Pos(2, 0), path[0])
	require.Equal(t, grid.Pos(2, 4), path[len(path)-1])
	require.NotContains(t, path, grid.Pos(1, 1))
	require.NotContains(t, path, grid.Pos(2, 2))

	st, _ := s.c.Grid().State(grid.Pos(2, 0))
	require.Equal(t, grid.Start, st)
	st, _ = s.c.Grid().State(grid.Pos(2, 4))
	require.Equal(t, grid.Target, st)
}

// TestPauseResume freezes a run on a long corridor and resumes it.
func (s *ControllerSuite) TestPauseResume() {
	t := s.T()
	require.NoError(t, s.c.ConfigureGrid(1, 40, nil, grid.Pos(0, 0), grid.Pos(0, 39)))
	require.NoError(t, s.c.SetStepDelay(2*time.Millisecond))

	require.True(t, s.c.Start(context.Background()))
	require.True(t, s.c.Pause())
	require.False(t, s.c.Pause(), "already paused")
	require.Equal(t, search.StatusPaused, s.c.Status())

	time.Sleep(20 * time.Millisecond)
	steps := s.c.Outcome().Steps
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, steps, s.c.Outcome().Steps, "no progress while paused")

	require.True(t, s.c.TogglePause())
	rep := s.c.Wait()
	require.Equal(t, search.StatusFound, rep.Outcome.Status)
	require.Len(t, rep.Outcome.Path, 40)
	require.False(t, s.c.Resume())
}

// TestCancelWhilePaused unblocks a paused run.
func (s *ControllerSuite) TestCancelWhilePaused() {
	t := s.T()
	require.NoError(t, s.c.SetStepDelay(time.Hour))
	require.True(t, s.c.Start(context.Background()))
	require.True(t, s.c.Pause())
	require.True(t, s.c.Cancel())
	require.Equal(t, search.StatusCancelled, s.c.Wait().Outcome.Status)
}

// TestContextCancel: cancelling the caller's context cancels the run.
func (s *ControllerSuite) TestContextCancel() {
	t := s.T()
	require.NoError(t, s.c.SetStepDelay(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	require.True(t, s.c.Start(ctx))
	cancel()
	require.Equal(t, search.StatusCancelled, s.c.Wait().Outcome.Status)
}

// TestResetClearsOverlay keeps walls while removing search marks.
func (s *ControllerSuite) TestResetClearsOverlay() {
	t := s.T()
	require.NoError(t, s.c.ConfigureGrid(5, 5, []grid.Position{{Row: 2, Col: 2}}, grid.Pos(0, 0), grid.Pos(4, 4)))
	_, err := s.c.Run(context.Background())
	require.NoError(t, err)
	require.NotZero(t, s.overlay())

	s.c.Reset()
	require.Zero(t, s.overlay())
	st, _ := s.c.Grid().State(grid.Pos(2, 2))
	require.Equal(t, grid.Wall, st)
}

// TestClearAll removes walls and obstacles too.
func (s *ControllerSuite) TestClearAll() {
	t := s.T()
	require.NoError(t, s.c.ConfigureGrid(4, 4, []grid.Position{{Row: 1, Col: 1}, {Row: 2, Col: 2}}, grid.Pos(0, 0), grid.Pos(3, 3)))
	require.True(t, s.c.Grid().PlaceObstacle(grid.Pos(0, 3)))

	s.c.ClearAll()
	for r, row := range s.c.Grid().Snapshot() {
		for c, st := range row {
			switch grid.Pos(r, c) {
			case grid.Pos(0, 0):
				require.Equal(t, grid.Start, st)
			case grid.Pos(3, 3):
				require.Equal(t, grid.Target, st)
			default:
				require.Equal(t, grid.Empty, st, "cell (%d,%d)", r, c)
			}
		}
	}
	require.Empty(t, s.c.Grid().Obstacles())
}

// TestSelectAlgorithm switches strategy and clears the overlay.
func (s *ControllerSuite) TestSelectAlgorithm() {
	t := s.T()
	_, err := s.c.Run(context.Background())
	require.NoError(t, err)
	require.NotZero(t, s.overlay())

	require.NoError(t, s.c.SelectAlgorithm(search.UCS))
	require.Equal(t, search.UCS, s.c.Algorithm())
	require.Zero(t, s.overlay())
	require.ErrorIs(t, s.c.SelectAlgorithm(search.Algorithm(99)), search.ErrUnknownAlgorithm)

	rep, err := s.c.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, search.UCS, rep.Algorithm)
	require.InDelta(t, 4*grid.DiagonalCost, rep.Outcome.Cost, 1e-9)
}

// TestIDDFSIterations reports one IterationStarted event per depth.
func (s *ControllerSuite) TestIDDFSIterations() {
	t := s.T()
	require.NoError(t, s.c.ConfigureGrid(1, 6, nil, grid.Pos(0, 0), grid.Pos(0, 5)))
	require.NoError(t, s.c.SelectAlgorithm(search.IDDFS))

	rep, err := s.c.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, search.StatusFound, rep.Outcome.Status)

	var depths []int
	for _, e := range s.rec.kind(engine.IterationStarted) {
		depths = append(depths, e.Depth)
	}
	require.Equal(t, []int{0, 1, 2, 3, 4, 5}, depths)
	require.Contains(t, s.out.String(), "[INFO] IDDFS: Searching at depth 5")
}

// TestDynamicObstacles injects an obstacle on every step.
func (s *ControllerSuite) TestDynamicObstacles() {
	t := s.T()
	s.c.SetDynamicObstaclesEnabled(true)
	require.NoError(t, s.c.SetObstacleProbability(1))
	require.True(t, s.c.Injector().Enabled())

	rep, err := s.c.Run(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, rep.Obstacles)
	require.LessOrEqual(t, len(rep.Obstacles), rep.Outcome.Steps)
	require.Len(t, s.rec.kind(engine.ObstacleInjected), len(rep.Obstacles))
	require.Contains(t, s.out.String(), "Dynamic obstacle added at")

	for _, p := range rep.Obstacles {
		st, _ := s.c.Grid().State(p)
		require.Equal(t, grid.DynamicObstacle, st)
		require.NotContains(t, rep.Outcome.Path, p)
	}

	// Reset keeps obstacles.
	s.c.Reset()
	require.ElementsMatch(t, rep.Obstacles, s.c.Grid().Obstacles())
}

// TestSetters validates live setters.
func (s *ControllerSuite) TestSetters() {
	t := s.T()
	require.ErrorIs(t, s.c.SetStepDelay(-time.Second), engine.ErrOptionViolation)
	require.ErrorIs(t, s.c.SetObstacleProbability(1.5), grid.ErrOptionViolation)
	require.NoError(t, s.c.SetObstacleProbability(0.25))
	require.Equal(t, 0.25, s.c.Injector().Probability())
}

// TestConfigureGridErrors rejects blocked or out-of-bounds endpoints.
func (s *ControllerSuite) TestConfigureGridErrors() {
	t := s.T()
	err := s.c.ConfigureGrid(3, 3, []grid.Position{{Row: 0, Col: 0}}, grid.Pos(0, 0), grid.Pos(2, 2))
	require.ErrorIs(t, err, grid.ErrBlockedStartOrTarget)
	err = s.c.ConfigureGrid(3, 3, nil, grid.Pos(0, 0), grid.Pos(3, 3))
	require.ErrorIs(t, err, grid.ErrInvalidPosition)
	err = s.c.ConfigureGrid(0, 3, nil, grid.Pos(0, 0), grid.Pos(0, 1))
	require.ErrorIs(t, err, grid.ErrEmptyGrid)
	require.Same(t, s.g, s.c.Grid(), "failed configuration keeps the old grid")
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func TestNew_Errors(t *testing.T) {
	g, err := grid.New(3, 3)
	require.NoError(t, err)

	_, err = engine.New(nil)
	require.ErrorIs(t, err, engine.ErrNilGrid)

	cases := []struct {
		name string
		opt  engine.Option
	}{
		{"negative step delay", engine.WithStepDelay(-1)},
		{"negative path delay", engine.WithPathDelay(-1)},
		{"negative iteration delay", engine.WithIterationDelay(-1)},
		{"negative depth limit", engine.WithDepthLimit(-1)},
		{"zero max depth", engine.WithMaxDepth(0)},
		{"unknown algorithm", engine.WithAlgorithm(search.Algorithm(-1))},
		{"nil injector", engine.WithInjector(nil)},
		{"nil handler", engine.WithEventHandler(nil)},
		{"nil logger", engine.WithLogger(nil)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := engine.New(g, tc.opt)
			require.ErrorIs(t, err, engine.ErrOptionViolation)
		})
	}

	c, err := engine.New(g, engine.WithLogger(log.New(io.Discard, "", 0)), engine.WithAlgorithm(search.DLS))
	require.NoError(t, err)
	require.Equal(t, search.DLS, c.Algorithm())
	require.True(t, c.Injector().Enabled())
	require.Equal(t, grid.DefaultObstacleProbability, c.Injector().Probability())
}
