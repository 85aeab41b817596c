package spectrum

import (
	"slices"

	"gonum.org/v1/gonum/floats"
)

// NormalizeToMax returns x divided by its maximum, so curves of different
// intensity can be compared by shape. When the maximum is not positive the
// result is an unchanged copy.
func NormalizeToMax(x []float64) []float64 {
	out := slices.Clone(x)
	if len(x) == 0 {
		return out
	}
	m := floats.Max(x)
	if !(m > 0) {
		return out
	}
	// Divide rather than scale by 1/m so the peak maps to exactly 1.
	for i := range out {
		out[i] /= m
	}
	return out
}

// NormalizeSum1 returns x divided by its sum, turning it into a discrete
// probability distribution. When the sum is not positive the result is an
// unchanged copy.
func NormalizeSum1(x []float64) []float64 {
	out := slices.Clone(x)
	if len(x) == 0 {
		return out
	}
	s := floats.Sum(x)
	if !(s > 0) {
		return out
	}
	floats.Scale(1/s, out)
	return out
}
