package testutil

import (
	"testing"
)

func TestRampGrid(t *testing.T) {
	g := RampGrid(t, 3, 4)

	if g.At(0, 0) != 0 {
		t.Errorf("At(0,0) = %v, want 0", g.At(0, 0))
	}

	if g.At(2, 3) != 11 {
		t.Errorf("At(2,3) = %v, want 11", g.At(2, 3))
	}

	if g.Min() != 0 {
		t.Errorf("Min() = %v, want 0", g.Min())
	}
}

func TestNoiseGridDeterministic(t *testing.T) {
	a := NoiseGrid(t, 8, 8, 42)
	b := NoiseGrid(t, 8, 8, 42)

	if !a.Equal(b) {
		t.Error("same seed should produce the same grid")
	}

	if a.Min() < -80 || a.Max() > 0 {
		t.Errorf("values outside [-80, 0]: min %v max %v", a.Min(), a.Max())
	}
}

func TestRequireGridHelpers(t *testing.T) {
	g := RampGrid(t, 4, 4)

	RequireSameShape(t, g, g.Clone())
	RequireGridNearlyEqual(t, g, g.Clone(), 0)
	RequireGridFinite(t, g)
}
