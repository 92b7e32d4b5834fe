// Package search implements six uninformed grid search strategies behind a
// single step-wise contract: breadth-first (BFS), depth-first (DFS),
// uniform-cost (UCS), depth-limited (DLS), iterative-deepening (IDDFS) and
// bidirectional breadth-first search.
//
// Every Strategy advances one discrete step per Step call and then returns
// control to its driver, which may render, sleep, Pause, Resume or Cancel
// before the next call. Pausing freezes the run without touching frontier
// or visited state; cancelling ends it without producing a path.
//
// Each step consults the optional ObstacleSource once, so a cell may become
// a dynamic obstacle between two steps. Frontiers are not purged when that
// happens: a node whose cell became impassable is dropped when it is
// dequeued, never when it was discovered.
//
// Strategies:
//
//   - BFS: FIFO, visited on discovery, goal test on dequeue. Fewest steps.
//   - DFS: LIFO, neighbors pushed in reverse generation order.
//   - UCS: min-heap by accumulated cost (ties by discovery order), closed set
//     on pop, re-push only on strict improvement. Minimum cost.
//   - DLS: explicit-stack depth-first search with a depth budget (default
//     15) and a branch-local visited set.
//   - IDDFS: DLS with limits 0..MaxDepth-1 (default 30), overlay cleared
//     between iterations.
//   - Bidirectional: two FIFO frontiers alternated per step; the path is
//     spliced at the meeting cell.
//
// DLS and IDDFS report NotFound both when the space is exhausted and when
// no solution exists within the depth budget.
//
// Complexity:
//
//   - BFS, DFS, Bidirectional: O(R·C) time and memory.
//   - UCS: O(R·C·log(R·C)) time, O(R·C) memory.
//   - DLS: O(8^d) time in the worst case, O(d) live frames.
//
// Errors:
//
//   - ErrNilGrid: Env.Grid is nil.
//   - ErrUnknownAlgorithm: algorithm outside the supported set.
//   - ErrOptionViolation: negative DepthLimit or non-positive MaxDepth.
package search
