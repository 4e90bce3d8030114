// Package fractal implements chunk-based spectrogram augmentations:
// stretch and dropout transforms that partition one axis into chunks of
// random width and perturb each chunk independently.
//
// Stretch transforms resample a random subset of chunks by a random
// rate and kernel, then resize the reassembled grid back to its
// original shape with a Lanczos pass. Dropout transforms replace a
// random subset of chunks with the grid's global minimum value; chunk
// widths are preserved, so no final resize is needed.
//
// Single-axis constructors:
//
//   - [NewTimeStretch] / [NewFreqStretch]
//   - [NewTimeDropout] / [NewFreqDropout]
//
// Two-axis composites [Stretch2D] and [Dropout2D] run the frequency
// transform first, then the time transform.
//
// Chunk-size bounds left unset derive from the axis length at apply
// time. The derived defaults mirror the per-transform percentages of
// the reference implementation, including the collapsed 10%/10% bounds
// of the frequency variants, which reject with a configuration error
// unless explicit bounds are supplied.
package fractal
