// Package stripe implements the SpecAugment-style stripe regularizer:
// random zeroed bands along the time or frequency axis of a batched
// spectrogram tensor. Unlike the 2-D transforms in package fractal it
// operates in place on a 3-D batch and is intended for the training
// path only.
package stripe

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/cwbudde/algo-augment/aug/grid"
)

var (
	// ErrInvalidShape indicates non-positive tensor dimensions.
	ErrInvalidShape = errors.New("stripe: invalid shape")
	// ErrInvalidConfig indicates invalid dropper parameters.
	ErrInvalidConfig = errors.New("stripe: invalid config")
	// ErrStripeTooWide indicates a drop width exceeding the target axis.
	ErrStripeTooWide = errors.New("stripe: drop width exceeds axis length")
)

// Tensor3 is a dense items x time x freq float32 tensor.
type Tensor3 struct {
	data  []float32
	items int
	time  int
	freq  int
}

// NewTensor3 creates a zero-filled batch tensor.
func NewTensor3(items, timeSteps, freqBins int) (*Tensor3, error) {
	if items <= 0 || timeSteps <= 0 || freqBins <= 0 {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrInvalidShape, items, timeSteps, freqBins)
	}

	return &Tensor3{
		data:  make([]float32, items*timeSteps*freqBins),
		items: items,
		time:  timeSteps,
		freq:  freqBins,
	}, nil
}

// Items returns the batch size.
func (t *Tensor3) Items() int { return t.items }

// TimeSteps returns the time-axis length.
func (t *Tensor3) TimeSteps() int { return t.time }

// FreqBins returns the frequency-axis length.
func (t *Tensor3) FreqBins() int { return t.freq }

// At returns the element at batch item n, time step ts, frequency bin f.
func (t *Tensor3) At(n, ts, f int) float32 {
	return t.data[(n*t.time+ts)*t.freq+f]
}

// Set stores v at batch item n, time step ts, frequency bin f.
func (t *Tensor3) Set(n, ts, f int, v float32) {
	t.data[(n*t.time+ts)*t.freq+f] = v
}

// Fill sets every element to v.
func (t *Tensor3) Fill(v float32) {
	for i := range t.data {
		t.data[i] = v
	}
}

// Clone returns a deep copy of the tensor.
func (t *Tensor3) Clone() *Tensor3 {
	out := &Tensor3{
		data:  make([]float32, len(t.data)),
		items: t.items,
		time:  t.time,
		freq:  t.freq,
	}
	copy(out.data, t.data)

	return out
}

// Equal reports whether both tensors have identical shape and elements.
func (t *Tensor3) Equal(o *Tensor3) bool {
	if t.items != o.items || t.time != o.time || t.freq != o.freq {
		return false
	}

	for i, v := range t.data {
		if v != o.data[i] {
			return false
		}
	}

	return true
}

// Option configures a Dropper.
type Option func(*Dropper) error

// WithRNG sets a deterministic random number generator for reproducible output.
func WithRNG(rng *rand.Rand) Option {
	return func(d *Dropper) error {
		d.rng = rng
		return nil
	}
}

// WithTraining sets the initial training mode (default enabled).
func WithTraining(enabled bool) Option {
	return func(d *Dropper) error {
		d.training = enabled
		return nil
	}
}

// Dropper zeroes random stripes along one axis of every batch item.
// Stripe widths are drawn from [0, dropWidth) and positions uniformly
// over the axis. Outside training mode Apply is a no-op.
type Dropper struct {
	axis       grid.Axis
	dropWidth  int
	stripesNum int
	training   bool
	rng        *rand.Rand
}

// NewDropper creates a stripe dropper for the given axis. dropWidth is
// the exclusive upper bound on stripe width and must be >= 1;
// stripesNum is how many stripes to draw per batch item and may be 0.
func NewDropper(axis grid.Axis, dropWidth, stripesNum int, opts ...Option) (*Dropper, error) {
	if !axis.Valid() {
		return nil, fmt.Errorf("%w: axis %d", ErrInvalidConfig, int(axis))
	}

	if dropWidth < 1 {
		return nil, fmt.Errorf("%w: drop width must be >= 1: %d", ErrInvalidConfig, dropWidth)
	}

	if stripesNum < 0 {
		return nil, fmt.Errorf("%w: stripes num must be >= 0: %d", ErrInvalidConfig, stripesNum)
	}

	d := &Dropper{
		axis:       axis,
		dropWidth:  dropWidth,
		stripesNum: stripesNum,
		training:   true,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(d)
		if err != nil {
			return nil, err
		}
	}

	if d.rng == nil {
		d.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return d, nil
}

// Training reports whether the dropper is in training mode.
func (d *Dropper) Training() bool { return d.training }

// SetTraining toggles training mode. Outside training mode Apply leaves
// the batch untouched.
func (d *Dropper) SetTraining(enabled bool) { d.training = enabled }

// Apply zeroes stripesNum random stripes per batch item, in place.
func (d *Dropper) Apply(batch *Tensor3) error {
	if !d.training || d.stripesNum == 0 {
		return nil
	}

	total := batch.TimeSteps()
	if d.axis == grid.AxisFreq {
		total = batch.FreqBins()
	}

	if d.dropWidth > total {
		return fmt.Errorf("%w: drop width %d on axis length %d", ErrStripeTooWide, d.dropWidth, total)
	}

	for n := 0; n < batch.Items(); n++ {
		for s := 0; s < d.stripesNum; s++ {
			distance := d.rng.IntN(d.dropWidth)
			begin := d.rng.IntN(total - distance)
			d.zeroStripe(batch, n, begin, distance)
		}
	}

	return nil
}

func (d *Dropper) zeroStripe(batch *Tensor3, n, begin, distance int) {
	if d.axis == grid.AxisTime {
		for ts := begin; ts < begin+distance; ts++ {
			for f := 0; f < batch.FreqBins(); f++ {
				batch.Set(n, ts, f, 0)
			}
		}

		return
	}

	for ts := 0; ts < batch.TimeSteps(); ts++ {
		for f := begin; f < begin+distance; f++ {
			batch.Set(n, ts, f, 0)
		}
	}
}

// SpecAugment chains a time-axis and a frequency-axis stripe dropper,
// after Park et al., "SpecAugment: A Simple Data Augmentation Method
// for Automatic Speech Recognition" (2019).
type SpecAugment struct {
	time *Dropper
	freq *Dropper
}

// NewSpecAugment creates the classic two-axis stripe regularizer.
func NewSpecAugment(timeDropWidth, timeStripesNum, freqDropWidth, freqStripesNum int, opts ...Option) (*SpecAugment, error) {
	timeDropper, err := NewDropper(grid.AxisTime, timeDropWidth, timeStripesNum, opts...)
	if err != nil {
		return nil, err
	}

	freqDropper, err := NewDropper(grid.AxisFreq, freqDropWidth, freqStripesNum, opts...)
	if err != nil {
		return nil, err
	}

	return &SpecAugment{time: timeDropper, freq: freqDropper}, nil
}

// SetTraining toggles training mode on both droppers.
func (s *SpecAugment) SetTraining(enabled bool) {
	s.time.SetTraining(enabled)
	s.freq.SetTraining(enabled)
}

// Apply runs the time dropper, then the frequency dropper, in place.
func (s *SpecAugment) Apply(batch *Tensor3) error {
	err := s.time.Apply(batch)
	if err != nil {
		return err
	}

	return s.freq.Apply(batch)
}
