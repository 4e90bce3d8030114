// Package chunk partitions one axis of a grid into contiguous chunks of
// random width, the building block of the fractal stretch and dropout
// transforms.
package chunk

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

var (
	// ErrInvalidBounds indicates chunk-size bounds that cannot cover the axis.
	ErrInvalidBounds = errors.New("chunk: invalid size bounds")
	// ErrNilRNG indicates a missing random source.
	ErrNilRNG = errors.New("chunk: rng must not be nil")
)

// Span is one contiguous chunk along an axis. Width is the drawn width;
// the final span of a partition may reach past the axis end and is
// clipped by the caller when slicing.
type Span struct {
	Start int
	Width int
}

// Partition splits an axis of the given length into consecutive spans
// whose widths are drawn uniformly from [minSize, maxSize). Drawing
// stops as soon as the accumulated width reaches or exceeds length.
//
// Inverted bounds are swapped. Bounds that could never cover the axis,
// or that would admit zero-width spans, fail with [ErrInvalidBounds]
// instead of looping.
func Partition(length, minSize, maxSize int, rng *rand.Rand) ([]Span, error) {
	if rng == nil {
		return nil, ErrNilRNG
	}

	if minSize > maxSize {
		minSize, maxSize = maxSize, minSize
	}

	switch {
	case length <= 0:
		return nil, fmt.Errorf("%w: axis length %d", ErrInvalidBounds, length)
	case minSize < 1:
		return nil, fmt.Errorf("%w: min size %d admits zero-width chunks", ErrInvalidBounds, minSize)
	case minSize >= length:
		return nil, fmt.Errorf("%w: min size %d >= axis length %d", ErrInvalidBounds, minSize, length)
	case maxSize <= minSize:
		return nil, fmt.Errorf("%w: max size %d <= min size %d", ErrInvalidBounds, maxSize, minSize)
	}

	var spans []Span

	covered := 0
	for covered < length {
		width := minSize + rng.IntN(maxSize-minSize)
		spans = append(spans, Span{Start: covered, Width: width})
		covered += width
	}

	return spans, nil
}
