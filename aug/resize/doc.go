// Package resize resamples a [grid.Grid] to a target shape using
// separable, support-based filter kernels.
//
// Available kernels, from cheapest to highest quality:
//
//   - [Nearest]:  nearest-neighbor pick
//   - [Box]:      averaging box filter
//   - [Bilinear]: triangle filter
//   - [Hamming]:  Hamming-windowed sinc, support 1
//   - [Bicubic]:  Keys cubic (a = -0.5), support 2
//   - [Lanczos]:  Lanczos windowed sinc (a = 3), support 3
//
// The per-output-sample weighting follows the usual image-resampling
// convention: sample centers sit at i + 0.5, the filter support widens
// by the scale factor when downsampling, edge taps clamp to the border,
// and weights are normalized to unit sum.
package resize
