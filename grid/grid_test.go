package grid_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridsearch/grid"
)

//----------------------------------------------------------------------------//
// New and bounds
//----------------------------------------------------------------------------//

// TestNew_Errors verifies that New rejects empty grids and bad placements.
func TestNew_Errors(t *testing.T) {
	cases := []struct {
		name string
		rows int
		cols int
		opts []grid.Option
		err  error
	}{
		{"ZeroRows", 0, 5, nil, grid.ErrEmptyGrid},
		{"NegativeCols", 3, -1, nil, grid.ErrEmptyGrid},
		{"SingleCell", 1, 1, nil, grid.ErrStartIsTarget},
		{"StartOutOfBounds", 3, 3, []grid.Option{grid.WithStart(grid.Pos(3, 0))}, grid.ErrInvalidPosition},
		{"TargetOutOfBounds", 3, 3, []grid.Option{grid.WithTarget(grid.Pos(0, -1))}, grid.ErrInvalidPosition},
		{"SameCell", 3, 3, []grid.Option{grid.WithStart(grid.Pos(0, 0)), grid.WithTarget(grid.Pos(0, 0))}, grid.ErrStartIsTarget},
		{"WallOutOfBounds", 3, 3, []grid.Option{grid.WithWalls(grid.Pos(9, 9))}, grid.ErrInvalidPosition},
		{"NilHook", 3, 3, []grid.Option{grid.WithOnChange(nil)}, grid.ErrOptionViolation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := grid.New(tc.rows, tc.cols, tc.opts...)
			if !errors.Is(err, tc.err) {
				t.Errorf("New(%d,%d) error = %v; want %v", tc.rows, tc.cols, err, tc.err)
			}
		})
	}
}

// TestNew_Defaults checks default start/target placement.
func TestNew_Defaults(t *testing.T) {
	g, err := grid.New(20, 25)
	require.NoError(t, err)
	require.Equal(t, grid.Pos(1, 1), g.Start())
	require.Equal(t, grid.Pos(18, 23), g.Target())

	// On a 2x2 grid the defaults collapse onto (1,1); target moves away.
	g, err = grid.New(2, 2)
	require.NoError(t, err)
	require.NotEqual(t, g.Start(), g.Target())
}

// TestInBoundsAndPassable checks bounds and passability on a small grid.
func TestInBoundsAndPassable(t *testing.T) {
	g, err := grid.New(3, 4,
		grid.WithStart(grid.Pos(0, 0)),
		grid.WithTarget(grid.Pos(2, 3)),
		grid.WithWalls(grid.Pos(1, 1)),
	)
	require.NoError(t, err)

	for _, p := range []grid.Position{{0, 0}, {2, 3}, {1, 2}} {
		require.True(t, g.InBounds(p), "InBounds%v", p)
		require.True(t, g.IsPassable(p), "IsPassable%v", p)
	}
	for _, p := range []grid.Position{{-1, 0}, {3, 0}, {0, 4}, {0, -1}} {
		require.False(t, g.InBounds(p), "InBounds%v", p)
		require.False(t, g.IsPassable(p), "IsPassable%v", p)
	}
	require.False(t, g.IsPassable(grid.Pos(1, 1)), "wall must be impassable")

	_, err = g.State(grid.Pos(5, 5))
	require.ErrorIs(t, err, grid.ErrInvalidPosition)
}

//----------------------------------------------------------------------------//
// Start / Target / Walls
//----------------------------------------------------------------------------//

func TestSetStartAndTarget(t *testing.T) {
	g, err := grid.New(4, 4, grid.WithStart(grid.Pos(0, 0)), grid.WithTarget(grid.Pos(3, 3)))
	require.NoError(t, err)
	require.NoError(t, g.ToggleWall(grid.Pos(2, 2)))

	require.NoError(t, g.SetStart(grid.Pos(1, 0)))
	s, _ := g.State(grid.Pos(0, 0))
	require.Equal(t, grid.Empty, s, "old start must be cleared")
	s, _ = g.State(grid.Pos(1, 0))
	require.Equal(t, grid.Start, s)

	require.ErrorIs(t, g.SetTarget(grid.Pos(2, 2)), grid.ErrBlockedStartOrTarget)
	require.ErrorIs(t, g.SetTarget(grid.Pos(1, 0)), grid.ErrStartIsTarget)
	require.ErrorIs(t, g.SetStart(grid.Pos(3, 3)), grid.ErrStartIsTarget)
	require.ErrorIs(t, g.SetStart(grid.Pos(4, 0)), grid.ErrInvalidPosition)

	require.True(t, g.PlaceObstacle(grid.Pos(0, 3)))
	require.ErrorIs(t, g.SetStart(grid.Pos(0, 3)), grid.ErrBlockedStartOrTarget)

	require.NoError(t, g.SetTarget(grid.Pos(0, 2)))
	require.Equal(t, grid.Pos(0, 2), g.Target())
	s, _ = g.State(grid.Pos(3, 3))
	require.Equal(t, grid.Empty, s)
}

func TestToggleWall(t *testing.T) {
	g, err := grid.New(3, 3, grid.WithStart(grid.Pos(0, 0)), grid.WithTarget(grid.Pos(2, 2)))
	require.NoError(t, err)

	require.NoError(t, g.ToggleWall(grid.Pos(1, 1)))
	s, _ := g.State(grid.Pos(1, 1))
	require.Equal(t, grid.Wall, s)
	require.NoError(t, g.ToggleWall(grid.Pos(1, 1)))
	s, _ = g.State(grid.Pos(1, 1))
	require.Equal(t, grid.Empty, s)

	// no-op on Start/Target
	require.NoError(t, g.ToggleWall(grid.Pos(0, 0)))
	require.NoError(t, g.ToggleWall(grid.Pos(2, 2)))
	s, _ = g.State(grid.Pos(0, 0))
	require.Equal(t, grid.Start, s)
	s, _ = g.State(grid.Pos(2, 2))
	require.Equal(t, grid.Target, s)

	// overlay and obstacle cells are not walls to toggle
	g.Mark(grid.Pos(0, 1), grid.Explored)
	g.Mark(grid.Pos(0, 2), grid.Path)
	require.True(t, g.PlaceObstacle(grid.Pos(1, 0)))
	for p, want := range map[grid.Position]grid.CellState{
		grid.Pos(0, 1): grid.Explored,
		grid.Pos(0, 2): grid.Path,
		grid.Pos(1, 0): grid.DynamicObstacle,
	} {
		require.NoError(t, g.ToggleWall(p))
		require.NoError(t, g.SetWall(p, true))
		s, _ = g.State(p)
		require.Equal(t, want, s, "cell %v", p)
	}

	require.ErrorIs(t, g.ToggleWall(grid.Pos(-1, 1)), grid.ErrInvalidPosition)
}

func TestSetWall(t *testing.T) {
	g, err := grid.New(3, 3, grid.WithStart(grid.Pos(0, 0)), grid.WithTarget(grid.Pos(2, 2)))
	require.NoError(t, err)

	require.NoError(t, g.SetWall(grid.Pos(1, 1), true))
	require.NoError(t, g.SetWall(grid.Pos(1, 1), true))
	s, _ := g.State(grid.Pos(1, 1))
	require.Equal(t, grid.Wall, s, "setting twice keeps the wall")

	require.NoError(t, g.SetWall(grid.Pos(1, 1), false))
	s, _ = g.State(grid.Pos(1, 1))
	require.Equal(t, grid.Empty, s)

	require.NoError(t, g.SetWall(grid.Pos(0, 0), true))
	s, _ = g.State(grid.Pos(0, 0))
	require.Equal(t, grid.Start, s)

	require.ErrorIs(t, g.SetWall(grid.Pos(3, 0), true), grid.ErrInvalidPosition)
}

//----------------------------------------------------------------------------//
// Overlay, obstacles and clearing
//----------------------------------------------------------------------------//

func TestMarkNeverOverwritesFixedCells(t *testing.T) {
	g, err := grid.New(3, 3,
		grid.WithStart(grid.Pos(0, 0)),
		grid.WithTarget(grid.Pos(2, 2)),
		grid.WithWalls(grid.Pos(1, 1)),
	)
	require.NoError(t, err)
	require.True(t, g.PlaceObstacle(grid.Pos(0, 2)))

	for _, p := range []grid.Position{{0, 0}, {2, 2}, {1, 1}, {0, 2}} {
		before, _ := g.State(p)
		require.False(t, g.Mark(p, grid.Explored), "Mark%v", p)
		after, _ := g.State(p)
		require.Equal(t, before, after)
	}
	require.True(t, g.Mark(grid.Pos(1, 0), grid.Frontier))
	require.True(t, g.Mark(grid.Pos(1, 0), grid.Explored))
	require.False(t, g.Mark(grid.Pos(1, 0), grid.Wall), "non-overlay states are rejected")
}

func TestClearOverlayKeepsWallsAndObstacles(t *testing.T) {
	g, err := grid.New(4, 4,
		grid.WithStart(grid.Pos(0, 0)),
		grid.WithTarget(grid.Pos(3, 3)),
		grid.WithWalls(grid.Pos(1, 1)),
	)
	require.NoError(t, err)
	before := g.Snapshot()

	g.Mark(grid.Pos(0, 1), grid.Frontier)
	g.Mark(grid.Pos(1, 0), grid.Explored)
	g.Mark(grid.Pos(2, 2), grid.Path)
	require.True(t, g.PlaceObstacle(grid.Pos(2, 1)))

	g.ClearOverlay()
	after := g.Snapshot()
	before[2][1] = grid.DynamicObstacle
	require.Equal(t, before, after)
	require.Equal(t, []grid.Position{{2, 1}}, g.Obstacles())

	g.ClearAll()
	for r, row := range g.Snapshot() {
		for c, s := range row {
			p := grid.Pos(r, c)
			switch p {
			case g.Start():
				require.Equal(t, grid.Start, s)
			case g.Target():
				require.Equal(t, grid.Target, s)
			default:
				require.Equal(t, grid.Empty, s, "cell %v", p)
			}
		}
	}
	require.Empty(t, g.Obstacles())
}

func TestPlaceObstacleOnFrontierCell(t *testing.T) {
	g, err := grid.New(3, 3, grid.WithStart(grid.Pos(0, 0)), grid.WithTarget(grid.Pos(2, 2)))
	require.NoError(t, err)
	g.Mark(grid.Pos(0, 1), grid.Frontier)

	require.True(t, g.PlaceObstacle(grid.Pos(0, 1)))
	require.False(t, g.IsPassable(grid.Pos(0, 1)))
	require.False(t, g.PlaceObstacle(grid.Pos(0, 0)), "start cannot become an obstacle")
	require.False(t, g.PlaceObstacle(grid.Pos(0, 1)), "already an obstacle")
}

func TestOnChangeHook(t *testing.T) {
	type rec struct {
		pos      grid.Position
		old, new grid.CellState
	}
	var got []rec
	g, err := grid.New(2, 3,
		grid.WithStart(grid.Pos(0, 0)),
		grid.WithTarget(grid.Pos(1, 2)),
		grid.WithOnChange(func(p grid.Position, o, n grid.CellState) {
			got = append(got, rec{p, o, n})
		}),
	)
	require.NoError(t, err)

	g.Mark(grid.Pos(0, 1), grid.Frontier)
	g.Mark(grid.Pos(0, 1), grid.Frontier) // unchanged: no notification
	require.NoError(t, g.SetStart(grid.Pos(1, 0)))

	require.Equal(t, []rec{
		{grid.Pos(0, 1), grid.Empty, grid.Frontier},
		{grid.Pos(0, 0), grid.Start, grid.Empty},
		{grid.Pos(1, 0), grid.Empty, grid.Start},
	}, got)
}

func TestCellStateString(t *testing.T) {
	require.Equal(t, "DynamicObstacle", grid.DynamicObstacle.String())
	require.Equal(t, "CellState(42)", grid.CellState(42).String())
	require.Equal(t, "(3,4)", grid.Pos(3, 4).String())
}
