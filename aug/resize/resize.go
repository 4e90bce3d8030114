package resize

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-augment/aug/grid"
)

var (
	// ErrInvalidTarget indicates non-positive target dimensions.
	ErrInvalidTarget = errors.New("resize: invalid target shape")
	// ErrInvalidKernel indicates an unknown kernel.
	ErrInvalidKernel = errors.New("resize: invalid kernel")
)

// Kernel identifies a resampling filter.
type Kernel int

const (
	Nearest Kernel = iota
	Box
	Bilinear
	Hamming
	Bicubic
	Lanczos
)

// Valid reports whether k is a known kernel.
func (k Kernel) Valid() bool {
	return k >= Nearest && k <= Lanczos
}

// String returns the kernel name.
func (k Kernel) String() string {
	switch k {
	case Nearest:
		return "nearest"
	case Box:
		return "box"
	case Bilinear:
		return "bilinear"
	case Hamming:
		return "hamming"
	case Bicubic:
		return "bicubic"
	case Lanczos:
		return "lanczos"
	default:
		return fmt.Sprintf("Kernel(%d)", int(k))
	}
}

// chunkKernels is the pool RandomKernel draws from. Lanczos is reserved
// for the final shape-restoring pass of the stretch transforms.
var chunkKernels = []Kernel{Nearest, Box, Bilinear, Hamming, Bicubic}

// RandomKernel returns a kernel drawn uniformly from the per-chunk set
// {nearest, box, bilinear, hamming, bicubic}.
func RandomKernel(rng *rand.Rand) Kernel {
	return chunkKernels[rng.IntN(len(chunkKernels))]
}

func (k Kernel) support() float64 {
	switch k {
	case Box:
		return 0.5
	case Bilinear, Hamming:
		return 1
	case Bicubic:
		return 2
	case Lanczos:
		return 3
	default:
		return 0
	}
}

func (k Kernel) eval(x float64) float64 {
	switch k {
	case Box:
		if x >= -0.5 && x < 0.5 {
			return 1
		}

		return 0
	case Bilinear:
		x = math.Abs(x)
		if x < 1 {
			return 1 - x
		}

		return 0
	case Hamming:
		x = math.Abs(x)
		if x >= 1 {
			return 0
		}

		if x == 0 {
			return 1
		}

		w := math.Pi * x

		return math.Sin(w) / w * (0.54 + 0.46*math.Cos(w))
	case Bicubic:
		const a = -0.5

		x = math.Abs(x)
		if x < 1 {
			return ((a+2)*x-(a+3))*x*x + 1
		}

		if x < 2 {
			return (((x-5)*x+8)*x - 4) * a
		}

		return 0
	case Lanczos:
		x = math.Abs(x)
		if x >= 3 {
			return 0
		}

		return sinc(x) * sinc(x/3)
	default:
		return 0
	}
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}

	w := math.Pi * x

	return math.Sin(w) / w
}

// Resize resamples g to rows x cols using kernel k.
func Resize(g *grid.Grid, rows, cols int, k Kernel) (*grid.Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidTarget, rows, cols)
	}

	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKernel, int(k))
	}

	out := g
	if cols != g.Cols() {
		out = resizeAxis(out, grid.AxisTime, cols, k)
	}

	if rows != out.Rows() {
		out = resizeAxis(out, grid.AxisFreq, rows, k)
	}

	if out == g {
		out = g.Clone()
	}

	return out, nil
}

// resizeAxis resamples one axis of g to target indices, leaving the
// opposite axis untouched.
func resizeAxis(g *grid.Grid, a grid.Axis, target int, k Kernel) *grid.Grid {
	inSize := g.Len(a)
	scale := float64(inSize) / float64(target)

	if k == Nearest {
		return nearestAxis(g, a, target, scale)
	}

	// Widen the filter when downsampling so every input sample
	// contributes to some output sample.
	filterScale := scale
	if filterScale < 1 {
		filterScale = 1
	}

	support := k.support() * filterScale

	starts := make([]int, target)
	weights := make([][]float64, target)

	for i := 0; i < target; i++ {
		center := (float64(i) + 0.5) * scale

		lo := int(center - support + 0.5)
		if lo < 0 {
			lo = 0
		}

		hi := int(center + support + 0.5)
		if hi > inSize {
			hi = inSize
		}

		if hi <= lo {
			hi = lo + 1
			if hi > inSize {
				lo, hi = inSize-1, inSize
			}
		}

		w := make([]float64, hi-lo)
		sum := 0.0

		for x := lo; x < hi; x++ {
			v := k.eval((float64(x) - center + 0.5) / filterScale)
			w[x-lo] = v
			sum += v
		}

		if sum != 0 {
			for j := range w {
				w[j] /= sum
			}
		}

		starts[i] = lo
		weights[i] = w
	}

	if a == grid.AxisTime {
		out, _ := grid.New(g.Rows(), target)
		for r := 0; r < g.Rows(); r++ {
			src := g.Row(r)
			dst := out.Row(r)

			for i := 0; i < target; i++ {
				acc := 0.0
				for j, wv := range weights[i] {
					acc += wv * float64(src[starts[i]+j])
				}

				dst[i] = float32(acc)
			}
		}

		return out
	}

	out, _ := grid.New(target, g.Cols())
	for i := 0; i < target; i++ {
		dst := out.Row(i)

		for j, wv := range weights[i] {
			src := g.Row(starts[i] + j)
			for c := range dst {
				dst[c] += float32(wv * float64(src[c]))
			}
		}
	}

	return out
}

func nearestAxis(g *grid.Grid, a grid.Axis, target int, scale float64) *grid.Grid {
	pick := make([]int, target)
	inSize := g.Len(a)

	for i := 0; i < target; i++ {
		p := int((float64(i) + 0.5) * scale)
		if p >= inSize {
			p = inSize - 1
		}

		pick[i] = p
	}

	if a == grid.AxisTime {
		out, _ := grid.New(g.Rows(), target)
		for r := 0; r < g.Rows(); r++ {
			src := g.Row(r)
			dst := out.Row(r)

			for i, p := range pick {
				dst[i] = src[p]
			}
		}

		return out
	}

	out, _ := grid.New(target, g.Cols())
	for i, p := range pick {
		copy(out.Row(i), g.Row(p))
	}

	return out
}
