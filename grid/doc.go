// Package grid provides the 2D occupancy grid explored by the search
// strategies: cell states, bounds and passability checks, the fixed-order
// 8-connected neighbor generator, and the random dynamic obstacle injector.
//
// What:
//
//   - Grid stores one CellState per cell, exactly one Start and one Target,
//     and an append-only log of dynamic obstacles.
//   - Neighbors yields passable neighbors in the order Up, Right, Down,
//     Down-Right, Left, Up-Left, Up-Right, Down-Left with costs 1.0
//     (orthogonal) and 1.4 (diagonal).
//   - Injector converts one random Empty cell into a DynamicObstacle with a
//     small probability per consultation (default 0.001).
//   - ConnectedComponents / Distances / Reachable give flood-fill
//     diagnostics over passable cells.
//
// Overlay states (Frontier, Explored, Path) are transient: ClearOverlay
// removes them without touching walls, obstacles, Start or Target. ClearAll
// also removes walls and dynamic obstacles.
//
// Concurrency:
//
//	All Grid methods are guarded by a sync.RWMutex. The optional change hook
//	runs after the lock is released, so it may call back into the Grid.
//
// Errors:
//
//   - ErrEmptyGrid: non-positive dimensions.
//   - ErrInvalidPosition: position outside [0,rows)×[0,cols).
//   - ErrBlockedStartOrTarget: Start/Target placed on Wall or DynamicObstacle.
//   - ErrStartIsTarget: Start and Target would coincide.
//   - ErrOptionViolation: invalid construction or injector option.
package grid
