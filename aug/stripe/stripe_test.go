package stripe

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/cwbudde/algo-augment/aug/grid"
)

func onesBatch(t *testing.T, items, timeSteps, freqBins int) *Tensor3 {
	t.Helper()

	b, err := NewTensor3(items, timeSteps, freqBins)
	if err != nil {
		t.Fatal(err)
	}

	b.Fill(1)

	return b
}

func TestNewTensor3Validation(t *testing.T) {
	_, err := NewTensor3(0, 4, 4)
	if !errors.Is(err, ErrInvalidShape) {
		t.Errorf("NewTensor3 error = %v, want ErrInvalidShape", err)
	}
}

func TestNewDropperValidation(t *testing.T) {
	tests := []struct {
		name       string
		axis       grid.Axis
		dropWidth  int
		stripesNum int
	}{
		{"bad axis", grid.Axis(7), 4, 1},
		{"zero drop width", grid.AxisTime, 0, 1},
		{"negative stripes", grid.AxisTime, 4, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDropper(tt.axis, tt.dropWidth, tt.stripesNum)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("NewDropper error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestZeroStripesIsNoOp(t *testing.T) {
	b := onesBatch(t, 2, 10, 8)
	orig := b.Clone()

	d, err := NewDropper(grid.AxisTime, 5, 0, WithRNG(rand.New(rand.NewPCG(42, 0))))
	if err != nil {
		t.Fatal(err)
	}

	if err := d.Apply(b); err != nil {
		t.Fatal(err)
	}

	if !b.Equal(orig) {
		t.Error("stripesNum = 0 must leave the batch untouched")
	}
}

func TestEvalModeIsNoOp(t *testing.T) {
	b := onesBatch(t, 2, 10, 8)
	orig := b.Clone()

	d, err := NewDropper(grid.AxisTime, 5, 3,
		WithTraining(false),
		WithRNG(rand.New(rand.NewPCG(42, 0))),
	)
	if err != nil {
		t.Fatal(err)
	}

	if err := d.Apply(b); err != nil {
		t.Fatal(err)
	}

	if !b.Equal(orig) {
		t.Error("eval mode must leave the batch untouched")
	}

	if d.Training() {
		t.Error("Training() should report false")
	}
}

func TestTimeStripesZeroWholeRows(t *testing.T) {
	b := onesBatch(t, 3, 20, 8)

	d, err := NewDropper(grid.AxisTime, 6, 2, WithRNG(rand.New(rand.NewPCG(42, 0))))
	if err != nil {
		t.Fatal(err)
	}

	if err := d.Apply(b); err != nil {
		t.Fatal(err)
	}

	// A zeroed time step must be zero across every frequency bin.
	for n := 0; n < b.Items(); n++ {
		for ts := 0; ts < b.TimeSteps(); ts++ {
			zeros := 0

			for f := 0; f < b.FreqBins(); f++ {
				if b.At(n, ts, f) == 0 {
					zeros++
				}
			}

			if zeros != 0 && zeros != b.FreqBins() {
				t.Fatalf("item %d time step %d partially zeroed (%d of %d)",
					n, ts, zeros, b.FreqBins())
			}
		}
	}
}

func TestFreqStripesZeroWholeColumns(t *testing.T) {
	b := onesBatch(t, 2, 8, 30)

	d, err := NewDropper(grid.AxisFreq, 10, 2, WithRNG(rand.New(rand.NewPCG(7, 0))))
	if err != nil {
		t.Fatal(err)
	}

	if err := d.Apply(b); err != nil {
		t.Fatal(err)
	}

	for n := 0; n < b.Items(); n++ {
		for f := 0; f < b.FreqBins(); f++ {
			zeros := 0

			for ts := 0; ts < b.TimeSteps(); ts++ {
				if b.At(n, ts, f) == 0 {
					zeros++
				}
			}

			if zeros != 0 && zeros != b.TimeSteps() {
				t.Fatalf("item %d freq bin %d partially zeroed (%d of %d)",
					n, f, zeros, b.TimeSteps())
			}
		}
	}
}

func TestDropWidthBeyondAxisFails(t *testing.T) {
	b := onesBatch(t, 1, 4, 4)

	d, err := NewDropper(grid.AxisTime, 10, 1, WithRNG(rand.New(rand.NewPCG(42, 0))))
	if err != nil {
		t.Fatal(err)
	}

	if err := d.Apply(b); !errors.Is(err, ErrStripeTooWide) {
		t.Errorf("Apply error = %v, want ErrStripeTooWide", err)
	}
}

func TestDropperDeterministic(t *testing.T) {
	run := func() *Tensor3 {
		b := onesBatch(t, 2, 30, 16)

		d, err := NewDropper(grid.AxisTime, 8, 3, WithRNG(rand.New(rand.NewPCG(11, 0))))
		if err != nil {
			t.Fatal(err)
		}

		if err := d.Apply(b); err != nil {
			t.Fatal(err)
		}

		return b
	}

	if !run().Equal(run()) {
		t.Error("same seed should produce identical batches")
	}
}

func TestSpecAugment(t *testing.T) {
	b := onesBatch(t, 2, 40, 32)

	sa, err := NewSpecAugment(8, 2, 6, 2, WithRNG(rand.New(rand.NewPCG(42, 0))))
	if err != nil {
		t.Fatal(err)
	}

	if err := sa.Apply(b); err != nil {
		t.Fatal(err)
	}

	// Switching to eval mode freezes the batch.
	sa.SetTraining(false)
	frozen := b.Clone()

	if err := sa.Apply(b); err != nil {
		t.Fatal(err)
	}

	if !b.Equal(frozen) {
		t.Error("eval mode must leave the batch untouched")
	}
}
