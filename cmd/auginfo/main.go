// Command auginfo applies spectrogram augmentations to a synthetic test
// tone and prints before/after statistics.
//
// Usage:
//
//	auginfo [flags] [transform-name ...]
//
// Without arguments it runs every known transform.
//
// Examples:
//
//	auginfo time-dropout
//	auginfo -seed 7 time-stretch freq-stretch
//	auginfo -frame 1024 -hop 256 dropout
//	auginfo -list
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-dsp/dsp/signal"

	"github.com/cwbudde/algo-augment/aug/compose"
	"github.com/cwbudde/algo-augment/aug/fractal"
	"github.com/cwbudde/algo-augment/aug/grid"
	"github.com/cwbudde/algo-augment/aug/pointwise"
	"github.com/cwbudde/algo-augment/spectro"
)

type transformEntry struct {
	name  string
	build func(rng *rand.Rand) (compose.Transform, error)
}

var registry = []transformEntry{
	{"time-stretch", func(rng *rand.Rand) (compose.Transform, error) {
		return fractal.NewTimeStretch(
			fractal.WithChunkSizeBounds(4, 16),
			fractal.WithRNG(rng),
		)
	}},
	{"freq-stretch", func(rng *rand.Rand) (compose.Transform, error) {
		return fractal.NewFreqStretch(fractal.WithRNG(rng))
	}},
	{"stretch", func(rng *rand.Rand) (compose.Transform, error) {
		freq, err := fractal.NewFreqStretch(fractal.WithRNG(rng))
		if err != nil {
			return nil, err
		}

		time, err := fractal.NewTimeStretch(
			fractal.WithChunkSizeBounds(4, 16),
			fractal.WithRNG(rng),
		)
		if err != nil {
			return nil, err
		}

		return fractal.NewStretch2D(freq, time)
	}},
	{"time-dropout", func(rng *rand.Rand) (compose.Transform, error) {
		return fractal.NewTimeDropout(fractal.WithRNG(rng))
	}},
	{"freq-dropout", func(rng *rand.Rand) (compose.Transform, error) {
		return fractal.NewFreqDropout(
			fractal.WithChunkSizeBounds(2, 8),
			fractal.WithRNG(rng),
		)
	}},
	{"dropout", func(rng *rand.Rand) (compose.Transform, error) {
		freq, err := fractal.NewFreqDropout(
			fractal.WithChunkSizeBounds(2, 8),
			fractal.WithRNG(rng),
		)
		if err != nil {
			return nil, err
		}

		time, err := fractal.NewTimeDropout(fractal.WithRNG(rng))
		if err != nil {
			return nil, err
		}

		return fractal.NewDropout2D(freq, time)
	}},
	{"vflip", func(*rand.Rand) (compose.Transform, error) {
		return pointwise.VerticalFlip{}, nil
	}},
	{"hflip", func(*rand.Rand) (compose.Transform, error) {
		return pointwise.HorizontalFlip{}, nil
	}},
	{"noise", func(rng *rand.Rand) (compose.Transform, error) {
		return pointwise.NewNoise(20, pointwise.WithRNG(rng))
	}},
	{"sign-noise", func(rng *rand.Rand) (compose.Transform, error) {
		return pointwise.NewSignNoise(2, pointwise.WithRNG(rng))
	}},
	{"random-time-dropout", func(rng *rand.Rand) (compose.Transform, error) {
		return pointwise.NewRandomTimeDropout(0.1, pointwise.WithRNG(rng))
	}},
	{"random-freq-dropout", func(rng *rand.Rand) (compose.Transform, error) {
		return pointwise.NewRandomFreqDropout(0.1, pointwise.WithRNG(rng))
	}},
}

func main() {
	frame := flag.Int("frame", 512, "FFT frame size (power of two)")
	hop := flag.Int("hop", 128, "analysis hop size in samples")
	rate := flag.Float64("rate", 16000, "sample rate in Hz")
	freq := flag.Float64("freq", 1000, "test tone frequency in Hz")
	samples := flag.Int("samples", 16384, "test tone length in samples")
	seed := flag.Uint64("seed", 42, "random seed")
	list := flag.Bool("list", false, "list available transform names")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: auginfo [flags] [transform-name ...]\n\n")
		fmt.Fprintf(os.Stderr, "Applies spectrogram augmentations to a synthetic tone.\n")
		fmt.Fprintf(os.Stderr, "Without arguments, runs all transforms.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  auginfo time-dropout\n")
		fmt.Fprintf(os.Stderr, "  auginfo -seed 7 time-stretch\n")
		fmt.Fprintf(os.Stderr, "  auginfo -list\n")
	}
	flag.Parse()

	if *list {
		printList()
		return
	}

	names := flag.Args()
	if len(names) == 0 {
		for _, e := range registry {
			names = append(names, e.name)
		}
	}

	g, err := makeSpectrogram(*frame, *hop, *rate, *freq, *samples)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	err = printStats(g, names, *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printList() {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.name
	}

	sort.Strings(names)

	for _, n := range names {
		fmt.Println(n)
	}
}

func makeSpectrogram(frame, hop int, rate, freq float64, samples int) (*grid.Grid, error) {
	gen := signal.NewGenerator(core.WithSampleRate(rate))

	tone, err := gen.Sine(freq, 0.5, samples)
	if err != nil {
		return nil, err
	}

	analyzer, err := spectro.NewAnalyzer(frame, hop)
	if err != nil {
		return nil, err
	}

	return analyzer.Spectrogram(tone)
}

func printStats(g *grid.Grid, names []string, seed uint64) error {
	byName := make(map[string]transformEntry, len(registry))
	for _, e := range registry {
		byName[e.name] = e
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Transform\tShape\tMin\tMax\tMean\n")
	fmt.Fprintf(w, "(input)\t%dx%d\t%.2f\t%.2f\t%.2f\n",
		g.Rows(), g.Cols(), g.Min(), g.Max(), g.Mean())

	for _, name := range names {
		entry, ok := byName[name]
		if !ok {
			return fmt.Errorf("unknown transform %q (try -list)", name)
		}

		tr, err := entry.build(rand.New(rand.NewPCG(seed, 0)))
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		out, err := tr.Apply(g)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		fmt.Fprintf(w, "%s\t%dx%d\t%.2f\t%.2f\t%.2f\n",
			name, out.Rows(), out.Cols(), out.Min(), out.Max(), out.Mean())
	}

	return w.Flush()
}
