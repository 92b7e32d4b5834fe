package scenario

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/gridsearch/engine"
	"github.com/katalvlaran/gridsearch/grid"
	"github.com/katalvlaran/gridsearch/search"
)

// Load decodes one scenario document from r and validates it. Unknown keys
// are rejected.
func Load(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile opens path and calls Load.
func LoadFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Save writes s as YAML with two-space indentation.
func (s *Scenario) Save(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

// Sample returns the 20×25 demonstration maze with the interactive
// defaults: BFS, 50ms steps, dynamic obstacles on at 0.001.
func Sample() *Scenario {
	on := true
	p := grid.DefaultObstacleProbability
	depth := search.DefaultDepthLimit
	return &Scenario{
		Rows:   20,
		Cols:   25,
		Start:  &Cell{Row: 1, Col: 1},
		Target: &Cell{Row: 18, Col: 23},
		Walls: []Cell{
			{5, 8}, {6, 8}, {7, 8}, {8, 8}, {9, 8},
			{12, 5}, {12, 6}, {12, 7}, {12, 8}, {12, 9}, {12, 10},
			{15, 15}, {15, 16}, {15, 17}, {16, 17}, {17, 17},
			{3, 15}, {4, 15}, {10, 20}, {11, 20},
		},
		Algorithm:           search.BFS.String(),
		StepDelay:           engine.DefaultStepDelay,
		DynamicObstacles:    &on,
		ObstacleProbability: &p,
		DepthLimit:          &depth,
	}
}

// Validate checks dimensions, cell bounds, the algorithm name and numeric
// ranges. Every failure wraps ErrInvalidScenario.
func (s *Scenario) Validate() error {
	if s.Rows <= 0 || s.Cols <= 0 {
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidScenario, s.Rows, s.Cols)
	}
	in := func(c Cell) bool {
		return c.Row >= 0 && c.Row < s.Rows && c.Col >= 0 && c.Col < s.Cols
	}
	if s.Start != nil && !in(*s.Start) {
		return fmt.Errorf("%w: start %v out of bounds", ErrInvalidScenario, s.Start.Position())
	}
	if s.Target != nil && !in(*s.Target) {
		return fmt.Errorf("%w: target %v out of bounds", ErrInvalidScenario, s.Target.Position())
	}
	for _, w := range s.Walls {
		if !in(w) {
			return fmt.Errorf("%w: wall %v out of bounds", ErrInvalidScenario, w.Position())
		}
		if (s.Start != nil && w == *s.Start) || (s.Target != nil && w == *s.Target) {
			return fmt.Errorf("%w: %w at %v", ErrInvalidScenario, grid.ErrBlockedStartOrTarget, w.Position())
		}
	}
	if _, err := s.algorithm(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	if s.StepDelay < 0 {
		return fmt.Errorf("%w: step_delay %v is negative", ErrInvalidScenario, s.StepDelay)
	}
	if p := s.ObstacleProbability; p != nil && (*p < 0 || *p > 1) {
		return fmt.Errorf("%w: obstacle_probability %v not in [0,1]", ErrInvalidScenario, *p)
	}
	if d := s.DepthLimit; d != nil && *d < 0 {
		return fmt.Errorf("%w: depth_limit %d is negative", ErrInvalidScenario, *d)
	}
	if d := s.MaxDepth; d != nil && *d <= 0 {
		return fmt.Errorf("%w: max_depth %d must be positive", ErrInvalidScenario, *d)
	}
	return nil
}

// algorithm parses Algorithm; empty selects BFS.
func (s *Scenario) algorithm() (search.Algorithm, error) {
	if s.Algorithm == "" {
		return search.BFS, nil
	}
	return search.ParseAlgorithm(s.Algorithm)
}

// Build constructs the grid described by s.
func (s *Scenario) Build() (*grid.Grid, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	opts := make([]grid.Option, 0, 3)
	if s.Start != nil {
		opts = append(opts, grid.WithStart(s.Start.Position()))
	}
	if s.Target != nil {
		opts = append(opts, grid.WithTarget(s.Target.Position()))
	}
	walls := make([]grid.Position, len(s.Walls))
	for i, w := range s.Walls {
		walls[i] = w.Position()
	}
	opts = append(opts, grid.WithWalls(walls...))

	g, err := grid.New(s.Rows, s.Cols, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	return g, nil
}

// Injector builds the obstacle injector described by s.
func (s *Scenario) Injector() (*grid.Injector, error) {
	opts := []grid.InjectorOption{grid.WithSeed(s.Seed)}
	if s.DynamicObstacles != nil {
		opts = append(opts, grid.WithEnabled(*s.DynamicObstacles))
	}
	if s.ObstacleProbability != nil {
		opts = append(opts, grid.WithProbability(*s.ObstacleProbability))
	}
	inj, err := grid.NewInjector(opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	return inj, nil
}

// EngineOptions translates the run settings of s into controller options.
// StepDelay zero keeps the engine default.
func (s *Scenario) EngineOptions() ([]engine.Option, error) {
	algo, err := s.algorithm()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	inj, err := s.Injector()
	if err != nil {
		return nil, err
	}

	opts := []engine.Option{
		engine.WithAlgorithm(algo),
		engine.WithInjector(inj),
	}
	if s.StepDelay > 0 {
		opts = append(opts, engine.WithStepDelay(s.StepDelay))
	}
	if s.DepthLimit != nil {
		opts = append(opts, engine.WithDepthLimit(*s.DepthLimit))
	}
	if s.MaxDepth != nil {
		opts = append(opts, engine.WithMaxDepth(*s.MaxDepth))
	}
	return opts, nil
}
