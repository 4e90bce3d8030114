package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidShape indicates non-positive grid dimensions.
	ErrInvalidShape = errors.New("grid: invalid shape")
	// ErrShapeMismatch indicates incompatible grid dimensions.
	ErrShapeMismatch = errors.New("grid: shape mismatch")
	// ErrInvalidSlice indicates an out-of-range slice request.
	ErrInvalidSlice = errors.New("grid: invalid slice")
)

// Axis identifies one of the two grid axes.
type Axis int

const (
	// AxisFreq is the row axis (frequency bins).
	AxisFreq Axis = iota
	// AxisTime is the column axis (time steps).
	AxisTime
)

// Valid reports whether a is a known axis.
func (a Axis) Valid() bool {
	return a == AxisFreq || a == AxisTime
}

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case AxisFreq:
		return "freq"
	case AxisTime:
		return "time"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Grid is a dense rows x cols float32 matrix in row-major order.
type Grid struct {
	data []float32
	rows int
	cols int
}

// New creates a zero-filled grid.
func New(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidShape, rows, cols)
	}

	return &Grid{
		data: make([]float32, rows*cols),
		rows: rows,
		cols: cols,
	}, nil
}

// NewFilled creates a grid with every element set to v.
func NewFilled(rows, cols int, v float32) (*Grid, error) {
	g, err := New(rows, cols)
	if err != nil {
		return nil, err
	}

	for i := range g.data {
		g.data[i] = v
	}

	return g, nil
}

// FromRows creates a grid from a slice of equal-length rows.
func FromRows(rows [][]float32) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty row data", ErrInvalidShape)
	}

	cols := len(rows[0])

	g, err := New(len(rows), cols)
	if err != nil {
		return nil, err
	}

	for r, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d",
				ErrShapeMismatch, r, len(row), cols)
		}

		copy(g.Row(r), row)
	}

	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Len returns the grid length along axis a.
func (g *Grid) Len(a Axis) int {
	if a == AxisFreq {
		return g.rows
	}

	return g.cols
}

// At returns the element at row r, column c.
func (g *Grid) At(r, c int) float32 {
	return g.data[r*g.cols+c]
}

// Set stores v at row r, column c.
func (g *Grid) Set(r, c int, v float32) {
	g.data[r*g.cols+c] = v
}

// Row returns row r as a view into the grid's backing storage.
func (g *Grid) Row(r int) []float32 {
	return g.data[r*g.cols : (r+1)*g.cols]
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	out := &Grid{
		data: make([]float32, len(g.data)),
		rows: g.rows,
		cols: g.cols,
	}
	copy(out.data, g.data)

	return out
}

// Slice extracts width consecutive indices along axis a starting at
// start. A width that reaches past the end of the axis is clipped to
// the available length, so the returned grid may be narrower than
// requested. start must lie inside the axis and width must be >= 1.
func (g *Grid) Slice(a Axis, start, width int) (*Grid, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: axis %d", ErrInvalidSlice, int(a))
	}

	length := g.Len(a)
	if start < 0 || start >= length || width < 1 {
		return nil, fmt.Errorf("%w: start %d width %d on axis length %d",
			ErrInvalidSlice, start, width, length)
	}

	if start+width > length {
		width = length - start
	}

	if a == AxisTime {
		out, _ := New(g.rows, width)
		for r := 0; r < g.rows; r++ {
			copy(out.Row(r), g.Row(r)[start:start+width])
		}

		return out, nil
	}

	out, _ := New(width, g.cols)
	for r := 0; r < width; r++ {
		copy(out.Row(r), g.Row(start+r))
	}

	return out, nil
}

// Concat joins parts along axis a. All parts must match in size along
// the opposite axis.
func Concat(a Axis, parts ...*Grid) (*Grid, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: axis %d", ErrInvalidSlice, int(a))
	}

	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: no parts to concatenate", ErrInvalidShape)
	}

	cross := parts[0].Len(1 - a)
	total := 0

	for i, p := range parts {
		if p.Len(1-a) != cross {
			return nil, fmt.Errorf("%w: part %d has cross size %d, want %d",
				ErrShapeMismatch, i, p.Len(1-a), cross)
		}

		total += p.Len(a)
	}

	if a == AxisTime {
		out, err := New(cross, total)
		if err != nil {
			return nil, err
		}

		offset := 0
		for _, p := range parts {
			for r := 0; r < cross; r++ {
				copy(out.Row(r)[offset:offset+p.cols], p.Row(r))
			}

			offset += p.cols
		}

		return out, nil
	}

	out, err := New(total, cross)
	if err != nil {
		return nil, err
	}

	offset := 0
	for _, p := range parts {
		for r := 0; r < p.rows; r++ {
			copy(out.Row(offset+r), p.Row(r))
		}

		offset += p.rows
	}

	return out, nil
}

// Min returns the smallest element in the grid.
func (g *Grid) Min() float32 {
	m := g.data[0]
	for _, v := range g.data[1:] {
		if v < m {
			m = v
		}
	}

	return m
}

// Max returns the largest element in the grid.
func (g *Grid) Max() float32 {
	m := g.data[0]
	for _, v := range g.data[1:] {
		if v > m {
			m = v
		}
	}

	return m
}

// Mean returns the arithmetic mean of all elements.
func (g *Grid) Mean() float64 {
	sum := 0.0
	for _, v := range g.data {
		sum += float64(v)
	}

	return sum / float64(len(g.data))
}

// Equal reports whether both grids have identical shape and elements.
func (g *Grid) Equal(o *Grid) bool {
	if g.rows != o.rows || g.cols != o.cols {
		return false
	}

	for i, v := range g.data {
		if v != o.data[i] {
			return false
		}
	}

	return true
}

// FlipRows returns a copy with the row order reversed.
func (g *Grid) FlipRows() *Grid {
	out, _ := New(g.rows, g.cols)
	for r := 0; r < g.rows; r++ {
		copy(out.Row(r), g.Row(g.rows-1-r))
	}

	return out
}

// FlipCols returns a copy with the column order reversed.
func (g *Grid) FlipCols() *Grid {
	out, _ := New(g.rows, g.cols)
	for r := 0; r < g.rows; r++ {
		src := g.Row(r)
		dst := out.Row(r)

		for c := 0; c < g.cols; c++ {
			dst[c] = src[g.cols-1-c]
		}
	}

	return out
}

// Clamp limits every element to [lo, hi] in place.
func (g *Grid) Clamp(lo, hi float32) {
	for i, v := range g.data {
		if v < lo {
			g.data[i] = lo
		} else if v > hi {
			g.data[i] = hi
		}
	}
}

// FillRow sets every element of row r to v.
func (g *Grid) FillRow(r int, v float32) {
	row := g.Row(r)
	for c := range row {
		row[c] = v
	}
}

// FillCol sets every element of column c to v.
func (g *Grid) FillCol(c int, v float32) {
	for r := 0; r < g.rows; r++ {
		g.data[r*g.cols+c] = v
	}
}
