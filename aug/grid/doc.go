// Package grid provides the 2-D float32 array type shared by all
// spectrogram augmentation transforms.
//
// A [Grid] holds rows x cols samples in row-major order. By convention
// rows are frequency bins and columns are time steps, selected through
// the [Axis] enum:
//
//   - [AxisFreq]: the row axis
//   - [AxisTime]: the column axis
//
// Transforms treat their input Grid as immutable and return a new Grid.
// Slicing past the end of an axis silently clips to the available
// length, which partition-based transforms rely on for their final,
// possibly overshooting chunk.
package grid
