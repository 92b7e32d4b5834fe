// Package scenario loads grid layouts and run settings from YAML.
//
// A scenario document looks like:
//
//	rows: 20
//	cols: 25
//	start: [1, 1]
//	target: [18, 23]
//	walls: [[5, 8], [6, 8]]
//	algorithm: BFS
//	step_delay: 50ms
//	dynamic_obstacles: true
//	obstacle_probability: 0.001
//	depth_limit: 15
//	max_depth: 30
//	seed: 42
//
// Only rows and cols are required. Unknown keys are rejected so that typos
// do not silently fall back to defaults.
//
// Build turns a Scenario into a *grid.Grid, Injector into a *grid.Injector
// and EngineOptions into the engine.Option list for engine.New. Sample
// returns the 20×25 demonstration maze.
package scenario
