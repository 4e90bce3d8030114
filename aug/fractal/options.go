package fractal

import (
	"fmt"
	"math"
	"math/rand/v2"
)

const (
	defaultIntraRatio = 0.3
	defaultRateMin    = 0.8
	defaultRateMax    = 1.2
	defaultMinChunks  = 1
	defaultMaxChunks  = 3
)

type config struct {
	intraRatio float64
	rateMin    float64
	rateMax    float64

	// 0 means "derive from the axis length at apply time".
	minChunkSize int
	maxChunkSize int

	minChunks int
	maxChunks int

	rng *rand.Rand
}

func defaultConfig() config {
	return config{
		intraRatio: defaultIntraRatio,
		rateMin:    defaultRateMin,
		rateMax:    defaultRateMax,
		minChunks:  defaultMinChunks,
		maxChunks:  defaultMaxChunks,
	}
}

// Option configures a stretch or dropout transform. Options that do not
// apply to the transform being constructed are accepted and ignored.
type Option func(*config) error

// WithIntraRatio sets the per-chunk stretch probability (default 0.3).
func WithIntraRatio(v float64) Option {
	return func(cfg *config) error {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return fmt.Errorf("fractal: intra ratio must be in [0, 1]: %f", v)
		}

		cfg.intraRatio = v

		return nil
	}
}

// WithRate sets the stretch-rate range (default 0.8 to 1.2).
func WithRate(min, max float64) Option {
	return func(cfg *config) error {
		if min <= 0 || max < min || math.IsNaN(min) || math.IsNaN(max) {
			return fmt.Errorf("fractal: rate range must satisfy 0 < min <= max: [%f, %f]", min, max)
		}

		cfg.rateMin = min
		cfg.rateMax = max

		return nil
	}
}

// WithChunkSizeBounds sets explicit chunk-size bounds instead of
// deriving them from the axis length. Inverted bounds are swapped at
// partition time.
func WithChunkSizeBounds(min, max int) Option {
	return func(cfg *config) error {
		if min < 1 || max < 1 {
			return fmt.Errorf("fractal: chunk-size bounds must be >= 1: [%d, %d]", min, max)
		}

		cfg.minChunkSize = min
		cfg.maxChunkSize = max

		return nil
	}
}

// WithChunkCountBounds sets how many chunks a dropout transform drops:
// the count is drawn uniformly from [min, max] per call (default 1 to 3).
func WithChunkCountBounds(min, max int) Option {
	return func(cfg *config) error {
		if min < 0 || max < min {
			return fmt.Errorf("fractal: chunk-count bounds must satisfy 0 <= min <= max: [%d, %d]", min, max)
		}

		cfg.minChunks = min
		cfg.maxChunks = max

		return nil
	}
}

// WithRNG sets a deterministic random number generator for reproducible output.
func WithRNG(rng *rand.Rand) Option {
	return func(cfg *config) error {
		cfg.rng = rng
		return nil
	}
}

func applyOptions(opts []Option) (config, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return config{}, err
		}
	}

	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return cfg, nil
}

// sizeBounds resolves chunk-size bounds against an axis length, deriving
// unset fields from the per-transform default fractions. A derived lower
// bound is raised to 1 so short axes cannot request zero-width chunks.
func sizeBounds(cfg config, length int, minFrac, maxFrac float64) (int, int) {
	lo := cfg.minChunkSize
	if lo == 0 {
		lo = int(float64(length) * minFrac)
		if lo < 1 {
			lo = 1
		}
	}

	hi := cfg.maxChunkSize
	if hi == 0 {
		hi = int(float64(length) * maxFrac)
	}

	return lo, hi
}
