package fractal

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-augment/aug/chunk"
	"github.com/cwbudde/algo-augment/aug/grid"
	"github.com/cwbudde/algo-augment/aug/resize"
)

// ErrAxisMismatch indicates composite parts constructed for the wrong axis.
var ErrAxisMismatch = errors.New("fractal: axis mismatch")

// Stretch resamples random chunks along one axis by a random rate, then
// restores the original shape with a final Lanczos resize.
type Stretch struct {
	axis grid.Axis
	cfg  config

	minFrac float64
	maxFrac float64
}

// NewTimeStretch creates a stretch transform over the time axis.
// Unset chunk-size bounds derive as 10%/10% of the time-axis length,
// which rejects at apply time; pass WithChunkSizeBounds for usable
// defaults (kept from the reference implementation, see package doc).
func NewTimeStretch(opts ...Option) (*Stretch, error) {
	return newStretch(grid.AxisTime, 0.1, 0.1, opts)
}

// NewFreqStretch creates a stretch transform over the frequency axis.
// Unset chunk-size bounds derive as 1%/10% of the frequency-axis length.
func NewFreqStretch(opts ...Option) (*Stretch, error) {
	return newStretch(grid.AxisFreq, 0.01, 0.1, opts)
}

func newStretch(axis grid.Axis, minFrac, maxFrac float64, opts []Option) (*Stretch, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	return &Stretch{
		axis:    axis,
		cfg:     cfg,
		minFrac: minFrac,
		maxFrac: maxFrac,
	}, nil
}

// Axis returns the transform axis.
func (s *Stretch) Axis() grid.Axis { return s.axis }

// IntraRatio returns the per-chunk stretch probability.
func (s *Stretch) IntraRatio() float64 { return s.cfg.intraRatio }

// Rate returns the stretch-rate range.
func (s *Stretch) Rate() (min, max float64) { return s.cfg.rateMin, s.cfg.rateMax }

// Apply partitions the transform axis, stretches each chunk with
// probability IntraRatio, reassembles, and resizes back to the shape of
// g. The input is not modified.
func (s *Stretch) Apply(g *grid.Grid) (*grid.Grid, error) {
	length := g.Len(s.axis)
	lo, hi := sizeBounds(s.cfg, length, s.minFrac, s.maxFrac)

	spans, err := chunk.Partition(length, lo, hi, s.cfg.rng)
	if err != nil {
		return nil, err
	}

	parts := make([]*grid.Grid, 0, len(spans))

	for _, sp := range spans {
		part, err := g.Slice(s.axis, sp.Start, sp.Width)
		if err != nil {
			return nil, err
		}

		if s.cfg.rng.Float64() <= s.cfg.intraRatio {
			part, err = s.stretchChunk(part)
			if err != nil {
				return nil, err
			}
		}

		parts = append(parts, part)
	}

	joined, err := grid.Concat(s.axis, parts...)
	if err != nil {
		return nil, err
	}

	return resize.Resize(joined, g.Rows(), g.Cols(), resize.Lanczos)
}

func (s *Stretch) stretchChunk(part *grid.Grid) (*grid.Grid, error) {
	rate := s.cfg.rateMin + s.cfg.rng.Float64()*(s.cfg.rateMax-s.cfg.rateMin)

	target := int(math.Round(float64(part.Len(s.axis)) * rate))
	if target < 1 {
		target = 1
	}

	kern := resize.RandomKernel(s.cfg.rng)

	if s.axis == grid.AxisTime {
		return resize.Resize(part, part.Rows(), target, kern)
	}

	return resize.Resize(part, target, part.Cols(), kern)
}

// Stretch2D chains a frequency-axis and a time-axis stretch: frequency
// first, then time.
type Stretch2D struct {
	freq *Stretch
	time *Stretch
}

// NewStretch2D combines a frequency and a time stretch into a two-axis
// transform.
func NewStretch2D(freq, time *Stretch) (*Stretch2D, error) {
	if freq == nil || time == nil {
		return nil, fmt.Errorf("%w: nil part", ErrAxisMismatch)
	}

	if freq.axis != grid.AxisFreq {
		return nil, fmt.Errorf("%w: freq part transforms axis %v", ErrAxisMismatch, freq.axis)
	}

	if time.axis != grid.AxisTime {
		return nil, fmt.Errorf("%w: time part transforms axis %v", ErrAxisMismatch, time.axis)
	}

	return &Stretch2D{freq: freq, time: time}, nil
}

// Apply runs the frequency stretch, then the time stretch on its output.
func (s *Stretch2D) Apply(g *grid.Grid) (*grid.Grid, error) {
	out, err := s.freq.Apply(g)
	if err != nil {
		return nil, err
	}

	return s.time.Apply(out)
}
