package compose

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-augment/aug/grid"
)

var (
	// ErrInvalidRatio indicates an application probability outside [0, 1].
	ErrInvalidRatio = errors.New("compose: ratio must be in [0, 1]")
	// ErrNilTransform indicates a missing wrapped transform.
	ErrNilTransform = errors.New("compose: transform must not be nil")
)

// Transform is the capability shared by every 2-D augmentation: produce
// a new grid from an input grid without modifying it.
type Transform interface {
	Apply(g *grid.Grid) (*grid.Grid, error)
}

// TransformFunc adapts a function to the Transform interface.
type TransformFunc func(g *grid.Grid) (*grid.Grid, error)

// Apply calls f.
func (f TransformFunc) Apply(g *grid.Grid) (*grid.Grid, error) {
	return f(g)
}

// Identity returns its input unchanged.
func Identity() Transform {
	return TransformFunc(func(g *grid.Grid) (*grid.Grid, error) {
		return g, nil
	})
}

// Chain applies transforms in order, feeding each output to the next.
type Chain []Transform

// Apply runs every transform in sequence.
func (c Chain) Apply(g *grid.Grid) (*grid.Grid, error) {
	out := g

	for i, t := range c {
		var err error

		out, err = t.Apply(out)
		if err != nil {
			return nil, fmt.Errorf("compose: chain step %d: %w", i, err)
		}
	}

	return out, nil
}

// Augmentation wraps a transform with an application probability.
// On each call the wrapped transform runs with probability Ratio;
// otherwise the input passes through untouched.
type Augmentation struct {
	name      string
	ratio     float64
	transform Transform
	rng       *rand.Rand
}

// AugmentationOption configures an Augmentation.
type AugmentationOption func(*Augmentation) error

// WithName attaches a diagnostic name used in scheduler logs.
func WithName(name string) AugmentationOption {
	return func(a *Augmentation) error {
		a.name = name
		return nil
	}
}

// WithAugmentationRNG sets a deterministic random number generator for
// the probability gate.
func WithAugmentationRNG(rng *rand.Rand) AugmentationOption {
	return func(a *Augmentation) error {
		a.rng = rng
		return nil
	}
}

// NewAugmentation wraps t behind an application probability.
func NewAugmentation(t Transform, ratio float64, opts ...AugmentationOption) (*Augmentation, error) {
	if t == nil {
		return nil, ErrNilTransform
	}

	if ratio < 0 || ratio > 1 || math.IsNaN(ratio) {
		return nil, fmt.Errorf("%w: %f", ErrInvalidRatio, ratio)
	}

	a := &Augmentation{
		name:      fmt.Sprintf("%T", t),
		ratio:     ratio,
		transform: t,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(a)
		if err != nil {
			return nil, err
		}
	}

	if a.rng == nil {
		a.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return a, nil
}

// Name returns the diagnostic name.
func (a *Augmentation) Name() string { return a.name }

// Ratio returns the application probability.
func (a *Augmentation) Ratio() float64 { return a.ratio }

// Transform returns the wrapped transform.
func (a *Augmentation) Transform() Transform { return a.transform }

// Apply runs the wrapped transform with probability Ratio. When the
// gate does not fire the input grid is returned as-is, untouched.
func (a *Augmentation) Apply(g *grid.Grid) (*grid.Grid, error) {
	if a.rng.Float64() < a.ratio {
		return a.transform.Apply(g)
	}

	return g, nil
}
