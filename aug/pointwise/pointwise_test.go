package pointwise

import (
	"math/rand/v2"
	"testing"

	"github.com/cwbudde/algo-augment/internal/testutil"
)

func TestFlips(t *testing.T) {
	g := testutil.RampGrid(t, 5, 7)

	v, err := VerticalFlip{}.Apply(g)
	if err != nil {
		t.Fatal(err)
	}

	if v.At(0, 0) != g.At(4, 0) {
		t.Error("VerticalFlip should reverse rows")
	}

	h, err := HorizontalFlip{}.Apply(g)
	if err != nil {
		t.Fatal(err)
	}

	if h.At(0, 0) != g.At(0, 6) {
		t.Error("HorizontalFlip should reverse columns")
	}

	vv, _ := VerticalFlip{}.Apply(v)
	if !vv.Equal(g) {
		t.Error("double vertical flip should reproduce the input")
	}
}

func TestNoiseValidation(t *testing.T) {
	if _, err := NewNoise(-1); err == nil {
		t.Error("negative snr should fail")
	}

	if _, err := NewNoise(10, WithClampRange(0, -1)); err == nil {
		t.Error("inverted clamp range should fail")
	}
}

func TestNoiseStaysInRange(t *testing.T) {
	g := testutil.NoiseGrid(t, 16, 16, 1)

	n, err := NewNoise(20, WithRNG(rand.New(rand.NewPCG(42, 0))))
	if err != nil {
		t.Fatal(err)
	}

	out, err := n.Apply(g)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSameShape(t, out, g)

	if out.Min() < -80 || out.Max() > 0 {
		t.Errorf("output outside [-80, 0]: min %v max %v", out.Min(), out.Max())
	}

	if g.Equal(out) {
		t.Error("noise should change the grid")
	}
}

func TestSignNoisePerturbsByEpsilon(t *testing.T) {
	// Integer-valued input keeps the +-0.5 perturbation exact in float32.
	g := testutil.RampGrid(t, 8, 8)

	s, err := NewSignNoise(0.5, WithClampRange(-1000, 1000),
		WithRNG(rand.New(rand.NewPCG(42, 0))))
	if err != nil {
		t.Fatal(err)
	}

	out, err := s.Apply(g)
	if err != nil {
		t.Fatal(err)
	}

	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			d := out.At(r, c) - g.At(r, c)
			if d != 0.5 && d != -0.5 {
				t.Fatalf("(%d,%d): perturbation %v, want +-0.5", r, c, d)
			}
		}
	}
}

func TestRandomTimeDropoutFull(t *testing.T) {
	g := testutil.RampGrid(t, 4, 6)
	min := g.Min()

	d, err := NewRandomTimeDropout(1, WithRNG(rand.New(rand.NewPCG(42, 0))))
	if err != nil {
		t.Fatal(err)
	}

	out, err := d.Apply(g)
	if err != nil {
		t.Fatal(err)
	}

	// dropout = 1 fills every column except the last, which the
	// iteration bound always skips.
	for c := 0; c < 5; c++ {
		for r := 0; r < 4; r++ {
			if out.At(r, c) != min {
				t.Fatalf("(%d,%d) = %v, want min %v", r, c, out.At(r, c), min)
			}
		}
	}

	for r := 0; r < 4; r++ {
		if out.At(r, 5) != g.At(r, 5) {
			t.Error("last column must never be dropped")
		}
	}
}

func TestRandomFreqDropoutFull(t *testing.T) {
	g := testutil.RampGrid(t, 6, 4)
	min := g.Min()

	d, err := NewRandomFreqDropout(1, WithRNG(rand.New(rand.NewPCG(42, 0))))
	if err != nil {
		t.Fatal(err)
	}

	out, err := d.Apply(g)
	if err != nil {
		t.Fatal(err)
	}

	for r := 0; r < 5; r++ {
		for c := 0; c < 4; c++ {
			if out.At(r, c) != min {
				t.Fatalf("(%d,%d) = %v, want min %v", r, c, out.At(r, c), min)
			}
		}
	}

	for c := 0; c < 4; c++ {
		if out.At(5, c) != g.At(5, c) {
			t.Error("last row must never be dropped")
		}
	}
}

func TestRandomDropoutZeroProbability(t *testing.T) {
	g := testutil.NoiseGrid(t, 8, 8, 3)

	d, err := NewRandomTimeDropout(0, WithRNG(rand.New(rand.NewPCG(42, 0))))
	if err != nil {
		t.Fatal(err)
	}

	out, err := d.Apply(g)
	if err != nil {
		t.Fatal(err)
	}

	// Float64 returns exactly 0 with negligible probability, so a zero
	// dropout leaves the grid untouched for any practical seed.
	if !out.Equal(g) {
		t.Error("dropout = 0 should leave the grid unchanged")
	}
}

func TestDropoutValidation(t *testing.T) {
	if _, err := NewRandomTimeDropout(1.5); err == nil {
		t.Error("dropout above 1 should fail")
	}

	if _, err := NewRandomFreqDropout(-0.1); err == nil {
		t.Error("negative dropout should fail")
	}
}
