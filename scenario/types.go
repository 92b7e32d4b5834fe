// Package scenario defines the YAML scenario document and its sentinel
// error.
package scenario

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/gridsearch/grid"
)

// ErrInvalidScenario wraps every decoding and validation failure.
var ErrInvalidScenario = errors.New("scenario: invalid scenario")

// Scenario is one grid layout plus run settings. Optional fields left out
// of the document keep the engine defaults.
type Scenario struct {
	Rows   int    `yaml:"rows"`
	Cols   int    `yaml:"cols"`
	Start  *Cell  `yaml:"start,omitempty"`
	Target *Cell  `yaml:"target,omitempty"`
	Walls  []Cell `yaml:"walls,omitempty"`

	Algorithm string        `yaml:"algorithm,omitempty"`
	StepDelay time.Duration `yaml:"step_delay,omitempty"`

	DynamicObstacles    *bool    `yaml:"dynamic_obstacles,omitempty"`
	ObstacleProbability *float64 `yaml:"obstacle_probability,omitempty"`
	Seed                int64    `yaml:"seed,omitempty"`

	DepthLimit *int `yaml:"depth_limit,omitempty"`
	MaxDepth   *int `yaml:"max_depth,omitempty"`
}

// Cell is a [row, col] pair in YAML.
type Cell grid.Position

// Position converts c to a grid.Position.
func (c Cell) Position() grid.Position {
	return grid.Position(c)
}

// UnmarshalYAML accepts a two-element integer sequence.
func (c *Cell) UnmarshalYAML(n *yaml.Node) error {
	var rc []int
	if err := n.Decode(&rc); err != nil {
		return err
	}
	if len(rc) != 2 {
		return fmt.Errorf("line %d: cell needs [row, col], got %d values", n.Line, len(rc))
	}
	c.Row, c.Col = rc[0], rc[1]
	return nil
}

// MarshalYAML emits a flow sequence: [row, col].
func (c Cell) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range []int{c.Row, c.Col} {
		n.Content = append(n.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!int",
			Value: fmt.Sprint(v),
		})
	}
	return n, nil
}
