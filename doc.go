// Package gridsearch is a step-wise path search engine for 2D occupancy
// grids: six interchangeable uninformed strategies, a pause/resume/cancel
// execution model and obstacles that appear while a search is running.
//
// 🚀 What is gridsearch?
//
//	A small, thread-safe engine meant to sit behind a visual shell:
//		• Grid: cells, walls, start/target, overlay marks, change hooks
//		• Neighbors: 8-connected, clockwise from Up, costs 1.0 / 1.4
//		• Strategies: BFS, DFS, UCS, DLS, IDDFS, Bidirectional
//		• Dynamic obstacles: random injection between steps, lazy re-checks
//		• Controller: pacing, pause/resume, cancellation, event stream
//		• Scenarios: YAML layouts and run settings
//
// ✨ Why step-wise?
//
//   - Every strategy returns after one unit of work, so the caller can
//     render, sleep or stop between steps
//   - Pausing keeps the frontier intact; cancelling never marks a path
//   - An obstacle injected at step N is never undone, and nodes queued
//     before it are dropped on expansion
//
// Under the hood:
//
//	grid/           Grid, CellState, Position, neighbors, Injector, components
//	search/         Strategy contract, the six strategies, path arena
//	engine/         Controller, events, reports
//	scenario/       YAML scenario loading, validation and the sample maze
//	cmd/gridsearch  command-line runner with ASCII output
//
// Quick example:
//
//	g, _ := grid.New(20, 25)
//	c, _ := engine.New(g, engine.WithAlgorithm(search.UCS))
//	rep, _ := c.Run(context.Background())
//	fmt.Println(rep.Outcome.Status, rep.Outcome.Cost)
package gridsearch
