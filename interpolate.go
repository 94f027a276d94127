package folio

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrEmptyTable is returned for a table without breakpoints.
	ErrEmptyTable = errors.New("folio: interpolation table has no breakpoints")
	// ErrTableShape is returned when breakpoints and values differ in count,
	// or vector values differ in dimension.
	ErrTableShape = errors.New("folio: interpolation table shape mismatch")
	// ErrBreakpointOrder is returned when breakpoints are not strictly increasing.
	ErrBreakpointOrder = errors.New("folio: breakpoints must be strictly increasing")
)

// Lerp returns a + (b-a)*t without clamping t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func validateBreakpoints(bp []float64) error {
	if len(bp) == 0 {
		return ErrEmptyTable
	}
	for i, b := range bp {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return fmt.Errorf("breakpoint %d is %v: %w", i, b, ErrBreakpointOrder)
		}
		if i > 0 && b <= bp[i-1] {
			return fmt.Errorf("breakpoint %d (%v) <= breakpoint %d (%v): %w", i, b, i-1, bp[i-1], ErrBreakpointOrder)
		}
	}
	return nil
}

// segment locates p within bp. It returns the index of the lower bracketing
// breakpoint and the local fraction in [0, 1]. Values outside the table clamp
// to the first or last breakpoint; a single breakpoint always yields (0, 0).
func segment(bp []float64, p float64) (int, float64) {
	n := len(bp)
	if n == 1 || math.IsNaN(p) || p <= bp[0] {
		return 0, 0
	}
	if p >= bp[n-1] {
		return n - 2, 1
	}
	// First breakpoint strictly greater than p; p lies in [bp[i-1], bp[i]).
	i := sort.Search(n, func(j int) bool { return bp[j] > p })
	lo, hi := bp[i-1], bp[i]
	return i - 1, (p - lo) / (hi - lo)
}

// Table maps a progress value through strictly increasing breakpoints to
// scalar outputs, interpolating linearly between the two bracketing
// breakpoints and clamping at both ends.
type Table struct {
	breakpoints []float64
	values      []float64
}

// NewTable validates and copies breakpoints and values.
func NewTable(breakpoints, values []float64) (*Table, error) {
	if err := validateBreakpoints(breakpoints); err != nil {
		return nil, err
	}
	if len(values) != len(breakpoints) {
		return nil, fmt.Errorf("%d breakpoints, %d values: %w", len(breakpoints), len(values), ErrTableShape)
	}
	return &Table{
		breakpoints: append([]float64(nil), breakpoints...),
		values:      append([]float64(nil), values...),
	}, nil
}

// MustTable is like NewTable but panics on invalid input. Use it for tables
// built from constants.
func MustTable(breakpoints, values []float64) *Table {
	t, err := NewTable(breakpoints, values)
	if err != nil {
		panic(err)
	}
	return t
}

// ConstTable returns a table that yields v for every input.
func ConstTable(v float64) *Table {
	return &Table{breakpoints: []float64{0}, values: []float64{v}}
}

// Keyframes spreads values evenly across [0, 1]. At least one value is required.
func Keyframes(values ...float64) (*Table, error) {
	if len(values) == 0 {
		return nil, ErrEmptyTable
	}
	if len(values) == 1 {
		return ConstTable(values[0]), nil
	}
	bp := make([]float64, len(values))
	last := float64(len(values) - 1)
	for i := range bp {
		bp[i] = float64(i) / last
	}
	return NewTable(bp, values)
}

// At returns the interpolated output for progress p.
func (t *Table) At(p float64) float64 {
	if len(t.values) == 1 {
		return t.values[0]
	}
	i, f := segment(t.breakpoints, p)
	return Lerp(t.values[i], t.values[i+1], f)
}

// AtEased is like At but shapes the position inside each segment with fn,
// the way keyframe animations apply their easing per segment.
func (t *Table) AtEased(p float64, fn func(float64) float64) float64 {
	if len(t.values) == 1 {
		return t.values[0]
	}
	i, f := segment(t.breakpoints, p)
	return Lerp(t.values[i], t.values[i+1], fn(f))
}

// Len returns the number of breakpoints.
func (t *Table) Len() int { return len(t.breakpoints) }

// Domain returns the first and last breakpoints.
func (t *Table) Domain() (lo, hi float64) {
	return t.breakpoints[0], t.breakpoints[len(t.breakpoints)-1]
}

// VecTable is a Table whose outputs are fixed-dimension vectors; each
// component is interpolated independently.
type VecTable struct {
	breakpoints []float64
	values      [][]float64
	dim         int
}

// NewVecTable validates breakpoints and requires every value to share one
// non-zero dimension.
func NewVecTable(breakpoints []float64, values [][]float64) (*VecTable, error) {
	if err := validateBreakpoints(breakpoints); err != nil {
		return nil, err
	}
	if len(values) != len(breakpoints) {
		return nil, fmt.Errorf("%d breakpoints, %d values: %w", len(breakpoints), len(values), ErrTableShape)
	}
	dim := len(values[0])
	if dim == 0 {
		return nil, fmt.Errorf("zero-dimension values: %w", ErrTableShape)
	}
	cp := make([][]float64, len(values))
	for i, v := range values {
		if len(v) != dim {
			return nil, fmt.Errorf("value %d has dimension %d, want %d: %w", i, len(v), dim, ErrTableShape)
		}
		cp[i] = append([]float64(nil), v...)
	}
	return &VecTable{
		breakpoints: append([]float64(nil), breakpoints...),
		values:      cp,
		dim:         dim,
	}, nil
}

// NewColorTable builds a four-component table over RGBA colors.
func NewColorTable(breakpoints []float64, colors []Color) (*VecTable, error) {
	values := make([][]float64, len(colors))
	for i, c := range colors {
		values[i] = []float64{c.R, c.G, c.B, c.A}
	}
	return NewVecTable(breakpoints, values)
}

// Dim returns the vector dimension.
func (t *VecTable) Dim() int { return t.dim }

// At writes the interpolated vector for p into dst and returns it. dst is
// allocated when it is shorter than Dim.
func (t *VecTable) At(p float64, dst []float64) []float64 {
	if len(dst) < t.dim {
		dst = make([]float64, t.dim)
	}
	dst = dst[:t.dim]
	if len(t.values) == 1 {
		copy(dst, t.values[0])
		return dst
	}
	i, f := segment(t.breakpoints, p)
	a, b := t.values[i], t.values[i+1]
	for k := range dst {
		dst[k] = Lerp(a[k], b[k], f)
	}
	return dst
}

// ColorAt interpolates a color table. Tables with fewer than four components
// leave the missing channels at 0 (alpha at 1).
func (t *VecTable) ColorAt(p float64) Color {
	var buf [4]float64
	var v []float64
	if t.dim <= 4 {
		v = t.At(p, buf[:t.dim])
	} else {
		v = t.At(p, nil)
	}
	c := Color{A: 1}
	if len(v) > 0 {
		c.R = v[0]
	}
	if len(v) > 1 {
		c.G = v[1]
	}
	if len(v) > 2 {
		c.B = v[2]
	}
	if len(v) > 3 {
		c.A = v[3]
	}
	return c
}
