package fractal

import (
	"github.com/cwbudde/algo-augment/aug/chunk"
	"github.com/cwbudde/algo-augment/aug/grid"
)

// Dropout replaces random chunks along one axis with the grid's global
// minimum value. Chunk widths are preserved, so the output shape always
// matches the input.
type Dropout struct {
	axis grid.Axis
	cfg  config

	minFrac float64
	maxFrac float64
}

// NewTimeDropout creates a dropout transform over the time axis.
// Unset chunk-size bounds derive as 1%/10% of the time-axis length.
func NewTimeDropout(opts ...Option) (*Dropout, error) {
	return newDropout(grid.AxisTime, 0.01, 0.1, opts)
}

// NewFreqDropout creates a dropout transform over the frequency axis.
// Unset chunk-size bounds derive as 10%/10% of the frequency-axis
// length, which rejects at apply time; pass WithChunkSizeBounds for
// usable defaults (kept from the reference implementation, see package
// doc).
func NewFreqDropout(opts ...Option) (*Dropout, error) {
	return newDropout(grid.AxisFreq, 0.1, 0.1, opts)
}

func newDropout(axis grid.Axis, minFrac, maxFrac float64, opts []Option) (*Dropout, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	return &Dropout{
		axis:    axis,
		cfg:     cfg,
		minFrac: minFrac,
		maxFrac: maxFrac,
	}, nil
}

// Axis returns the transform axis.
func (d *Dropout) Axis() grid.Axis { return d.axis }

// ChunkCountBounds returns the range the per-call drop count is drawn from.
func (d *Dropout) ChunkCountBounds() (min, max int) {
	return d.cfg.minChunks, d.cfg.maxChunks
}

// Apply partitions the transform axis and fills a randomly chosen set
// of chunks with the input's global minimum. The drop count is drawn
// uniformly from the configured chunk-count bounds and capped at the
// number of chunks; chosen indices are distinct. The input is not
// modified.
func (d *Dropout) Apply(g *grid.Grid) (*grid.Grid, error) {
	length := g.Len(d.axis)
	lo, hi := sizeBounds(d.cfg, length, d.minFrac, d.maxFrac)

	spans, err := chunk.Partition(length, lo, hi, d.cfg.rng)
	if err != nil {
		return nil, err
	}

	count := d.cfg.minChunks + d.cfg.rng.IntN(d.cfg.maxChunks-d.cfg.minChunks+1)
	if count > len(spans) {
		count = len(spans)
	}

	dropped := make(map[int]bool, count)
	for _, idx := range d.cfg.rng.Perm(len(spans))[:count] {
		dropped[idx] = true
	}

	fill := g.Min()
	parts := make([]*grid.Grid, 0, len(spans))

	for i, sp := range spans {
		part, err := g.Slice(d.axis, sp.Start, sp.Width)
		if err != nil {
			return nil, err
		}

		if dropped[i] {
			part, err = grid.NewFilled(part.Rows(), part.Cols(), fill)
			if err != nil {
				return nil, err
			}
		}

		parts = append(parts, part)
	}

	return grid.Concat(d.axis, parts...)
}

// Dropout2D chains a frequency-axis and a time-axis dropout: frequency
// first, then time.
type Dropout2D struct {
	freq *Dropout
	time *Dropout
}

// NewDropout2D combines a frequency and a time dropout into a two-axis
// transform.
func NewDropout2D(freq, time *Dropout) (*Dropout2D, error) {
	if freq == nil || time == nil {
		return nil, ErrAxisMismatch
	}

	if freq.axis != grid.AxisFreq || time.axis != grid.AxisTime {
		return nil, ErrAxisMismatch
	}

	return &Dropout2D{freq: freq, time: time}, nil
}

// Apply runs the frequency dropout, then the time dropout on its output.
func (d *Dropout2D) Apply(g *grid.Grid) (*grid.Grid, error) {
	out, err := d.freq.Apply(g)
	if err != nil {
		return nil, err
	}

	return d.time.Apply(out)
}
