package grid

import (
	"fmt"
	"math/rand"
	"sync"
)

// DefaultObstacleProbability is the per-step chance of injecting an obstacle.
const DefaultObstacleProbability = 0.001

// InjectorOption configures an Injector.
type InjectorOption func(*InjectorOptions)

// InjectorOptions holds Injector parameters.
type InjectorOptions struct {
	// Enabled turns injection on; default true.
	Enabled bool

	// Probability of one injection per MaybeInject call, in [0,1].
	Probability float64

	// Seed for the random stream; 0 selects the fixed default seed.
	Seed int64

	err error
}

// DefaultInjectorOptions returns enabled injection at
// DefaultObstacleProbability with the default seed.
func DefaultInjectorOptions() InjectorOptions {
	return InjectorOptions{
		Enabled:     true,
		Probability: DefaultObstacleProbability,
	}
}

// WithEnabled turns injection on or off.
func WithEnabled(on bool) InjectorOption {
	return func(o *InjectorOptions) {
		o.Enabled = on
	}
}

// WithProbability sets the injection probability; values outside [0,1]
// are recorded as ErrOptionViolation.
func WithProbability(p float64) InjectorOption {
	return func(o *InjectorOptions) {
		if p < 0 || p > 1 || p != p {
			o.err = fmt.Errorf("%w: probability %v not in [0,1]", ErrOptionViolation, p)
			return
		}
		o.Probability = p
	}
}

// WithSeed fixes the random stream.
func WithSeed(seed int64) InjectorOption {
	return func(o *InjectorOptions) {
		o.Seed = seed
	}
}

// Injector turns one random Empty cell into a DynamicObstacle with a small
// probability each time it is consulted. Safe for concurrent use.
type Injector struct {
	mu          sync.Mutex
	enabled     bool
	probability float64
	rng         *rand.Rand
}

// NewInjector builds an Injector. Returns ErrOptionViolation for invalid
// options.
func NewInjector(opts ...InjectorOption) (*Injector, error) {
	o := DefaultInjectorOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	return &Injector{
		enabled:     o.Enabled,
		probability: o.Probability,
		rng:         rngFromSeed(o.Seed),
	}, nil
}

// Enabled reports whether injection is on.
func (in *Injector) Enabled() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.enabled
}

// SetEnabled turns injection on or off.
func (in *Injector) SetEnabled(on bool) {
	in.mu.Lock()
	in.enabled = on
	in.mu.Unlock()
}

// Probability returns the current injection probability.
func (in *Injector) Probability() float64 {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.probability
}

// SetProbability changes the injection probability.
// Returns ErrOptionViolation outside [0,1].
func (in *Injector) SetProbability(p float64) error {
	if p < 0 || p > 1 || p != p {
		return fmt.Errorf("%w: probability %v not in [0,1]", ErrOptionViolation, p)
	}
	in.mu.Lock()
	in.probability = p
	in.mu.Unlock()
	return nil
}

// MaybeInject draws one uniform value; below the probability it converts a
// uniformly chosen Empty cell of g into a DynamicObstacle and returns it.
// Reports false when disabled, when the draw misses, or when g has no
// Empty cell left.
// Complexity: O(rows×cols) on a hit, O(1) otherwise.
func (in *Injector) MaybeInject(g *Grid) (Position, bool) {
	in.mu.Lock()
	if !in.enabled {
		in.mu.Unlock()
		return Position{}, false
	}
	if in.rng.Float64() >= in.probability {
		in.mu.Unlock()
		return Position{}, false
	}
	empty := g.EmptyCells()
	if len(empty) == 0 {
		in.mu.Unlock()
		return Position{}, false
	}
	p := empty[in.rng.Intn(len(empty))]
	in.mu.Unlock()

	if !g.PlaceObstacle(p) {
		return Position{}, false
	}
	return p, true
}
