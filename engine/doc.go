// Package engine is the execution controller between a presentation shell
// and the search strategies.
//
// A Controller owns one grid, the selected algorithm, the pacing delays and
// at most one active run. Start launches a run on its own goroutine; Run
// executes one on the caller's. Between steps the run loop honours Pause,
// Resume and context cancellation, sleeps StepDelay, and after a success
// marks the path one cell at a time with PathDelay between cells. IDDFS
// additionally sleeps IterationDelay between depth iterations.
//
// Every grid change is forwarded to the EventHandler as CellStateChanged;
// dynamic obstacles also produce ObstacleInjected. RunStarted,
// IterationStarted and RunCompleted frame each run. Events carry the run's
// UUID and the step index at which they happened.
//
// Edits that would disturb an active run (ConfigureGrid, SelectAlgorithm,
// SetStart, SetTarget, ToggleWall, SetWall) return ErrRunActive; starting a
// second run is a no-op. Reset and ClearAll cancel the active run first.
// The grid returned by Grid is for reading.
//
// Progress is logged through a *log.Logger:
//
//	[INFO] Running BFS...
//	[INFO] Dynamic obstacle added at (3,7)
//	[INFO] BFS: Path found!
package engine
