// Package pointwise provides simple element-level spectrogram
// augmentations: flips, additive noise, and per-column/row random
// dropout. These complement the chunk-based transforms in package
// fractal.
package pointwise

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-augment/aug/grid"
)

const (
	defaultClampLo = -80
	defaultClampHi = 0
)

type config struct {
	lo  float64
	hi  float64
	rng *rand.Rand
}

func defaultConfig() config {
	return config{
		lo: defaultClampLo,
		hi: defaultClampHi,
	}
}

// Option configures a pointwise transform.
type Option func(*config) error

// WithClampRange sets the output clamp range (default [-80, 0], the
// usual dB range of a log spectrogram).
func WithClampRange(lo, hi float64) Option {
	return func(cfg *config) error {
		if lo >= hi || math.IsNaN(lo) || math.IsNaN(hi) {
			return fmt.Errorf("pointwise: clamp range must satisfy lo < hi: [%f, %f]", lo, hi)
		}

		cfg.lo = lo
		cfg.hi = hi

		return nil
	}
}

// WithRNG sets a deterministic random number generator for reproducible output.
func WithRNG(rng *rand.Rand) Option {
	return func(cfg *config) error {
		cfg.rng = rng
		return nil
	}
}

func applyOptions(opts []Option) (config, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return config{}, err
		}
	}

	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return cfg, nil
}

// VerticalFlip reverses the row order (frequency axis).
type VerticalFlip struct{}

// Apply returns a copy of g with rows reversed.
func (VerticalFlip) Apply(g *grid.Grid) (*grid.Grid, error) {
	return g.FlipRows(), nil
}

// HorizontalFlip reverses the column order (time axis).
type HorizontalFlip struct{}

// Apply returns a copy of g with columns reversed.
func (HorizontalFlip) Apply(g *grid.Grid) (*grid.Grid, error) {
	return g.FlipCols(), nil
}

// Noise adds uniform noise drawn from [lo, lo+snr] to every element and
// clamps the result to the configured range.
type Noise struct {
	snr float64
	cfg config
}

// NewNoise creates an additive-noise transform. snr sets the width of
// the noise band above the clamp floor.
func NewNoise(snr float64, opts ...Option) (*Noise, error) {
	if snr < 0 || math.IsNaN(snr) || math.IsInf(snr, 0) {
		return nil, fmt.Errorf("pointwise: snr must be >= 0 and finite: %f", snr)
	}

	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	return &Noise{snr: snr, cfg: cfg}, nil
}

// Apply returns a noisy copy of g, clamped to the configured range.
func (n *Noise) Apply(g *grid.Grid) (*grid.Grid, error) {
	out := g.Clone()

	for r := 0; r < out.Rows(); r++ {
		row := out.Row(r)
		for c := range row {
			noise := n.cfg.lo + n.cfg.rng.Float64()*n.snr
			row[c] += float32(noise)
		}
	}

	out.Clamp(float32(n.cfg.lo), float32(n.cfg.hi))

	return out, nil
}

// SignNoise perturbs every element by +epsilon or -epsilon with equal
// probability and clamps the result to the configured range.
type SignNoise struct {
	epsilon float64
	cfg     config
}

// NewSignNoise creates a sign-noise transform with the given
// perturbation magnitude.
func NewSignNoise(epsilon float64, opts ...Option) (*SignNoise, error) {
	if epsilon < 0 || math.IsNaN(epsilon) || math.IsInf(epsilon, 0) {
		return nil, fmt.Errorf("pointwise: epsilon must be >= 0 and finite: %f", epsilon)
	}

	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	return &SignNoise{epsilon: epsilon, cfg: cfg}, nil
}

// Apply returns a perturbed copy of g, clamped to the configured range.
func (s *SignNoise) Apply(g *grid.Grid) (*grid.Grid, error) {
	out := g.Clone()
	eps := float32(s.epsilon)

	for r := 0; r < out.Rows(); r++ {
		row := out.Row(r)
		for c := range row {
			if s.cfg.rng.Float64()*2-1 < 0 {
				row[c] -= eps
			} else {
				row[c] += eps
			}
		}
	}

	out.Clamp(float32(s.cfg.lo), float32(s.cfg.hi))

	return out, nil
}

// RandomTimeDropout sets individual columns to the grid's global
// minimum with a fixed per-column probability. The last column is never
// dropped, matching the reference implementation's iteration bound.
type RandomTimeDropout struct {
	dropout float64
	cfg     config
}

// NewRandomTimeDropout creates a per-column dropout transform.
func NewRandomTimeDropout(dropout float64, opts ...Option) (*RandomTimeDropout, error) {
	if dropout < 0 || dropout > 1 || math.IsNaN(dropout) {
		return nil, fmt.Errorf("pointwise: dropout must be in [0, 1]: %f", dropout)
	}

	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	return &RandomTimeDropout{dropout: dropout, cfg: cfg}, nil
}

// Apply returns a copy of g with randomly chosen columns filled with
// the global minimum.
func (d *RandomTimeDropout) Apply(g *grid.Grid) (*grid.Grid, error) {
	out := g.Clone()
	min := g.Min()

	for c := 0; c < out.Cols()-1; c++ {
		if d.cfg.rng.Float64() <= d.dropout {
			out.FillCol(c, min)
		}
	}

	return out, nil
}

// RandomFreqDropout sets individual rows to the grid's global minimum
// with a fixed per-row probability. The last row is never dropped,
// matching the reference implementation's iteration bound.
type RandomFreqDropout struct {
	dropout float64
	cfg     config
}

// NewRandomFreqDropout creates a per-row dropout transform.
func NewRandomFreqDropout(dropout float64, opts ...Option) (*RandomFreqDropout, error) {
	if dropout < 0 || dropout > 1 || math.IsNaN(dropout) {
		return nil, fmt.Errorf("pointwise: dropout must be in [0, 1]: %f", dropout)
	}

	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	return &RandomFreqDropout{dropout: dropout, cfg: cfg}, nil
}

// Apply returns a copy of g with randomly chosen rows filled with the
// global minimum.
func (d *RandomFreqDropout) Apply(g *grid.Grid) (*grid.Grid, error) {
	out := g.Clone()
	min := g.Min()

	for r := 0; r < out.Rows()-1; r++ {
		if d.cfg.rng.Float64() <= d.dropout {
			out.FillRow(r, min)
		}
	}

	return out, nil
}
