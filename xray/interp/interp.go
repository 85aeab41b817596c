package interp

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-xfilter/xray/core"
)

var (
	// ErrEmptyTable is returned by [New] when no knots are given.
	ErrEmptyTable = errors.New("table must not be empty")
	// ErrLengthMismatch is returned by [New] when x and y differ in length.
	ErrLengthMismatch = errors.New("x and y must have same length")

	errNonFinite = errors.New("table values must be finite")
)

// Table is an immutable piecewise-linear interpolant. It is safe for
// concurrent use.
type Table struct {
	mode Mode
	xs   []float64 // working-space abscissae, non-decreasing
	ys   []float64
}

// New builds a table from knots (x[i], y[i]).
//
// Knots are ordered by x with a stable sort, so repeated x values keep the
// order in which they were given. In [ModeLogLog] x is floored at
// [core.MinEnergyMeV] and y at [core.MinMassAttenuation] before the logarithm
// is taken.
func New(x, y []float64, mode Mode) (*Table, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(x), len(y))
	}
	if len(x) == 0 {
		return nil, ErrEmptyTable
	}
	if mode != ModeLogLog && mode != ModeLinear {
		return nil, fmt.Errorf("unsupported interpolation mode: %v", mode)
	}

	t := &Table{
		mode: mode,
		xs:   make([]float64, len(x)),
		ys:   make([]float64, len(y)),
	}
	for i := range x {
		if !core.IsFinite(x[i]) || !core.IsFinite(y[i]) {
			return nil, fmt.Errorf("%w: knot %d = (%v, %v)", errNonFinite, i, x[i], y[i])
		}
		t.xs[i] = t.toWorkX(x[i])
		t.ys[i] = t.toWorkY(y[i])
	}

	if !sort.Float64sAreSorted(t.xs) {
		idx := make([]int, len(t.xs))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool { return t.xs[idx[a]] < t.xs[idx[b]] })

		xs := make([]float64, len(idx))
		ys := make([]float64, len(idx))
		for i, j := range idx {
			xs[i], ys[i] = t.xs[j], t.ys[j]
		}
		t.xs, t.ys = xs, ys
	}

	return t, nil
}

// Mode returns the working space of the table.
func (t *Table) Mode() Mode { return t.mode }

// Len returns the number of knots.
func (t *Table) Len() int { return len(t.xs) }

// At evaluates the interpolant at x.
func (t *Table) At(x float64) float64 {
	return t.fromWorkY(t.evalWork(t.toWorkX(x)))
}

// Eval evaluates the interpolant at every element of xs and writes the
// results into dst, which is grown when too short. It returns dst[:len(xs)].
func (t *Table) Eval(dst, xs []float64) []float64 {
	dst = core.EnsureLen(dst, len(xs))
	for i, x := range xs {
		dst[i] = t.At(x)
	}
	return dst
}

// evalWork evaluates the working-space segment that contains q. The segment is
// (i-1, i) where i is the first knot with xs[i] >= q, clamped to [1, n-1].
func (t *Table) evalWork(q float64) float64 {
	n := len(t.xs)
	if n == 1 {
		return t.ys[0]
	}

	i := sort.SearchFloat64s(t.xs, q)
	if i < 1 {
		i = 1
	} else if i > n-1 {
		i = n - 1
	}

	x0, x1 := t.xs[i-1], t.xs[i]
	y0, y1 := t.ys[i-1], t.ys[i]
	dx := x1 - x0
	if dx == 0 {
		// Only reachable when a repeated x sits at either end of the table.
		if q <= x0 {
			return y0
		}
		return y1
	}

	return y0 + (q-x0)*(y1-y0)/dx
}

func (t *Table) toWorkX(x float64) float64 {
	if t.mode == ModeLogLog {
		return math.Log(core.FloorPositive(x, core.MinEnergyMeV))
	}
	return x
}

func (t *Table) toWorkY(y float64) float64 {
	if t.mode == ModeLogLog {
		return math.Log(core.FloorPositive(y, core.MinMassAttenuation))
	}
	return y
}

func (t *Table) fromWorkY(y float64) float64 {
	if t.mode == ModeLogLog {
		return math.Exp(y)
	}
	return y
}
