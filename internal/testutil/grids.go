package testutil

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/cwbudde/algo-augment/aug/grid"
)

// RampGrid returns a rows x cols grid whose element at (r, c) is
// r*cols + c. Every element is distinct and the global minimum is 0 at
// the origin, which makes dropped regions easy to spot in tests.
func RampGrid(t *testing.T, rows, cols int) *grid.Grid {
	t.Helper()

	g, err := grid.New(rows, cols)
	if err != nil {
		t.Fatal(err)
	}

	for r := 0; r < rows; r++ {
		row := g.Row(r)
		for c := range row {
			row[c] = float32(r*cols + c)
		}
	}

	return g
}

// NoiseGrid returns a rows x cols grid of deterministic uniform noise
// in [-80, 0], the usual dB range of a log spectrogram.
func NoiseGrid(t *testing.T, rows, cols int, seed uint64) *grid.Grid {
	t.Helper()

	g, err := grid.New(rows, cols)
	if err != nil {
		t.Fatal(err)
	}

	rng := rand.New(rand.NewPCG(seed, 0))
	for r := 0; r < rows; r++ {
		row := g.Row(r)
		for c := range row {
			row[c] = float32(rng.Float64()*80 - 80)
		}
	}

	return g
}

// RequireSameShape fails t if got and want differ in either dimension.
func RequireSameShape(t *testing.T, got, want *grid.Grid) {
	t.Helper()

	if got.Rows() != want.Rows() || got.Cols() != want.Cols() {
		t.Fatalf("shape mismatch: got %dx%d, want %dx%d",
			got.Rows(), got.Cols(), want.Rows(), want.Cols())
	}
}

// RequireGridNearlyEqual fails t if the grids differ in shape or if any
// element pair exceeds eps (absolute tolerance).
func RequireGridNearlyEqual(t *testing.T, got, want *grid.Grid, eps float64) {
	t.Helper()

	RequireSameShape(t, got, want)

	for r := 0; r < got.Rows(); r++ {
		for c := 0; c < got.Cols(); c++ {
			diff := math.Abs(float64(got.At(r, c)) - float64(want.At(r, c)))
			if diff > eps {
				t.Fatalf("(%d,%d): got %v, want %v (diff %v > eps %v)",
					r, c, got.At(r, c), want.At(r, c), diff, eps)
			}
		}
	}
}

// RequireGridFinite fails t if any element is NaN or Inf.
func RequireGridFinite(t *testing.T, g *grid.Grid) {
	t.Helper()

	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			v := float64(g.At(r, c))
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("(%d,%d): non-finite value %v", r, c, v)
			}
		}
	}
}

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}
