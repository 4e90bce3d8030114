// Package spectro computes log-magnitude spectrograms shaped for the
// augmentation transforms: frequency bins as rows, time frames as
// columns, values in decibels clamped to a fixed range.
package spectro

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-dsp/dsp/window"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-augment/aug/grid"
)

const (
	defaultFloorDB = -80
	defaultCeilDB  = 0
)

var (
	// ErrInvalidFrame indicates an unusable frame or hop size.
	ErrInvalidFrame = errors.New("spectro: invalid frame size")
	// ErrShortSignal indicates fewer samples than one frame.
	ErrShortSignal = errors.New("spectro: signal shorter than one frame")
)

// Analyzer converts time-domain signals into log-magnitude spectrogram
// grids. It is not thread-safe; create one analyzer per goroutine.
type Analyzer struct {
	frameSize  int
	hopSize    int
	windowType window.Type
	floorDB    float64
	ceilDB     float64

	coeffs   []float64
	coherent float64
	plan     *algofft.Plan[complex128]
	frame    []complex128
}

// Option configures an Analyzer.
type Option func(*Analyzer) error

// WithWindowType sets the analysis window (default Hann).
func WithWindowType(t window.Type) Option {
	return func(a *Analyzer) error {
		a.windowType = t
		return nil
	}
}

// WithRange sets the dB clamp range (default [-80, 0]).
func WithRange(floorDB, ceilDB float64) Option {
	return func(a *Analyzer) error {
		if floorDB >= ceilDB || math.IsNaN(floorDB) || math.IsNaN(ceilDB) {
			return fmt.Errorf("spectro: range must satisfy floor < ceil: [%f, %f]", floorDB, ceilDB)
		}

		a.floorDB = floorDB
		a.ceilDB = ceilDB

		return nil
	}
}

// NewAnalyzer creates a spectrogram analyzer. frameSize must be a power
// of two and hopSize must be in [1, frameSize].
func NewAnalyzer(frameSize, hopSize int, opts ...Option) (*Analyzer, error) {
	if frameSize < 2 || frameSize&(frameSize-1) != 0 {
		return nil, fmt.Errorf("%w: frame size must be a power of two >= 2: %d", ErrInvalidFrame, frameSize)
	}

	if hopSize < 1 || hopSize > frameSize {
		return nil, fmt.Errorf("%w: hop size must be in [1, %d]: %d", ErrInvalidFrame, frameSize, hopSize)
	}

	a := &Analyzer{
		frameSize:  frameSize,
		hopSize:    hopSize,
		windowType: window.TypeHann,
		floorDB:    defaultFloorDB,
		ceilDB:     defaultCeilDB,
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

	a.coeffs = window.Generate(a.windowType, frameSize)

	for _, c := range a.coeffs {
		a.coherent += c
	}

	if a.coherent == 0 {
		return nil, fmt.Errorf("spectro: window has zero coherent gain: %v", a.windowType)
	}

	plan, err := algofft.NewPlan64(frameSize)
	if err != nil {
		return nil, err
	}

	a.plan = plan
	a.frame = make([]complex128, frameSize)

	return a, nil
}

// FrameSize returns the FFT frame size.
func (a *Analyzer) FrameSize() int { return a.frameSize }

// HopSize returns the analysis hop size in samples.
func (a *Analyzer) HopSize() int { return a.hopSize }

// Bins returns the number of frequency bins per frame.
func (a *Analyzer) Bins() int { return a.frameSize/2 + 1 }

// Frames returns how many frames Spectrogram produces for a signal of
// the given length, or 0 if the signal is too short.
func (a *Analyzer) Frames(samples int) int {
	if samples < a.frameSize {
		return 0
	}

	return 1 + (samples-a.frameSize)/a.hopSize
}

// Spectrogram computes the log-magnitude spectrogram of samples. The
// result has Bins() rows and Frames(len(samples)) columns, with values
// in dB relative to full scale, clamped to the configured range.
func (a *Analyzer) Spectrogram(samples []float64) (*grid.Grid, error) {
	frames := a.Frames(len(samples))
	if frames == 0 {
		return nil, fmt.Errorf("%w: %d samples, frame size %d", ErrShortSignal, len(samples), a.frameSize)
	}

	bins := a.Bins()

	g, err := grid.New(bins, frames)
	if err != nil {
		return nil, err
	}

	windowed := make([]float64, a.frameSize)

	for f := 0; f < frames; f++ {
		start := f * a.hopSize

		copy(windowed, samples[start:start+a.frameSize])
		vecmath.MulBlockInPlace(windowed, a.coeffs)

		for i, v := range windowed {
			a.frame[i] = complex(v, 0)
		}

		err := a.plan.Forward(a.frame, a.frame)
		if err != nil {
			return nil, err
		}

		for b := 0; b < bins; b++ {
			// Single-sided amplitude, normalized by the window's
			// coherent gain.
			amp := 2 * cmplxAbs(a.frame[b]) / a.coherent

			db := a.floorDB
			if amp > 0 {
				db = 20 * math.Log10(amp)
			}

			if db < a.floorDB {
				db = a.floorDB
			} else if db > a.ceilDB {
				db = a.ceilDB
			}

			g.Set(b, f, float32(db))
		}
	}

	return g, nil
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}
