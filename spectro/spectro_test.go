package spectro

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-augment/internal/testutil"
)

func sine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate

	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out
}

func TestNewAnalyzerValidation(t *testing.T) {
	tests := []struct {
		name  string
		frame int
		hop   int
	}{
		{"non power of two", 100, 25},
		{"frame too small", 1, 1},
		{"zero hop", 256, 0},
		{"hop beyond frame", 256, 512},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAnalyzer(tt.frame, tt.hop)
			if !errors.Is(err, ErrInvalidFrame) {
				t.Errorf("NewAnalyzer error = %v, want ErrInvalidFrame", err)
			}
		})
	}
}

func TestSpectrogramShape(t *testing.T) {
	a, err := NewAnalyzer(256, 64)
	if err != nil {
		t.Fatal(err)
	}

	samples := sine(1000, 16000, 0.5, 4096)

	g, err := a.Spectrogram(samples)
	if err != nil {
		t.Fatal(err)
	}

	if g.Rows() != a.Bins() {
		t.Errorf("rows = %d, want %d bins", g.Rows(), a.Bins())
	}

	if g.Cols() != a.Frames(len(samples)) {
		t.Errorf("cols = %d, want %d frames", g.Cols(), a.Frames(len(samples)))
	}

	testutil.RequireGridFinite(t, g)
}

func TestSpectrogramRange(t *testing.T) {
	a, err := NewAnalyzer(256, 128)
	if err != nil {
		t.Fatal(err)
	}

	g, err := a.Spectrogram(sine(440, 16000, 0.5, 2048))
	if err != nil {
		t.Fatal(err)
	}

	if g.Min() < -80 || g.Max() > 0 {
		t.Errorf("values outside [-80, 0]: min %v max %v", g.Min(), g.Max())
	}
}

func TestSpectrogramPeakBin(t *testing.T) {
	const (
		sampleRate = 16000.0
		frameSize  = 512
	)

	a, err := NewAnalyzer(frameSize, 128)
	if err != nil {
		t.Fatal(err)
	}

	// Put the tone exactly on a bin center to avoid leakage skew.
	binWidth := sampleRate / frameSize
	freq := 32 * binWidth

	g, err := a.Spectrogram(sine(freq, sampleRate, 0.5, 4096))
	if err != nil {
		t.Fatal(err)
	}

	// The loudest bin of the first frame should be the tone's bin.
	peak := 0
	for b := 1; b < g.Rows(); b++ {
		if g.At(b, 0) > g.At(peak, 0) {
			peak = b
		}
	}

	if peak != 32 {
		t.Errorf("peak bin = %d, want 32", peak)
	}
}

func TestSpectrogramShortSignal(t *testing.T) {
	a, err := NewAnalyzer(256, 64)
	if err != nil {
		t.Fatal(err)
	}

	_, err = a.Spectrogram(make([]float64, 100))
	if !errors.Is(err, ErrShortSignal) {
		t.Errorf("Spectrogram error = %v, want ErrShortSignal", err)
	}
}

func TestFrames(t *testing.T) {
	a, err := NewAnalyzer(256, 64)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		samples int
		want    int
	}{
		{0, 0},
		{255, 0},
		{256, 1},
		{320, 2},
		{1024, 13},
	}
	for _, tt := range tests {
		if got := a.Frames(tt.samples); got != tt.want {
			t.Errorf("Frames(%d) = %d, want %d", tt.samples, got, tt.want)
		}
	}
}
