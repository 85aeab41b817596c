// Package core holds the small numeric and buffer helpers shared by the xray
// packages.
package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// ClampNonNegative writes src into dst with negative values replaced by 0.
// dst and src may alias. Only min(len(dst), len(src)) elements are written.
// It returns the number of clamped elements.
func ClampNonNegative(dst, src []float64) int {
	n := min(len(dst), len(src))
	clamped := 0
	for i, v := range src[:n] {
		if v < 0 {
			v = 0
			clamped++
		}
		dst[i] = v
	}
	return clamped
}
