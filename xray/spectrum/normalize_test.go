package spectrum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cwbudde/algo-xfilter/internal/testutil"
)

func TestNormalizeToMax(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want []float64
	}{
		{name: "positive", in: []float64{1, 4, 2}, want: []float64{0.25, 1, 0.5}},
		{name: "all zero", in: []float64{0, 0, 0}, want: []float64{0, 0, 0}},
		{name: "non-positive max", in: []float64{-1, -2}, want: []float64{-1, -2}},
		{name: "empty", in: []float64{}, want: []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeToMax(tt.in)
			testutil.RequireSliceNearlyEqual(t, got, tt.want, 1e-15)
			testutil.RequireFinite(t, got)
		})
	}
}

func TestNormalizeToMaxPeakIsExactlyOne(t *testing.T) {
	e := testutil.LinearGrid(0.01, 2, 400)
	counts := testutil.NoisyCounts(3, e, 2, 20)
	got := NormalizeToMax(counts)

	peak := math.Inf(-1)
	for _, v := range got {
		peak = math.Max(peak, v)
	}
	assert.Equal(t, 1.0, peak)
}

func TestNormalizeSum1(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want []float64
	}{
		{name: "positive", in: []float64{1, 1, 2}, want: []float64{0.25, 0.25, 0.5}},
		{name: "zero sum", in: []float64{0, 0, 0}, want: []float64{0, 0, 0}},
		{name: "negative sum", in: []float64{-1, 0.5}, want: []float64{-1, 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeSum1(tt.in)
			testutil.RequireSliceNearlyEqual(t, got, tt.want, 1e-15)
		})
	}
}

func TestNormalizeSum1SumsToOne(t *testing.T) {
	e := testutil.LinearGrid(0.001, 2, 2000)
	s, err := New(e, testutil.NoisyCounts(11, e, 2, 50))
	assert.NoError(t, err)

	w := NormalizeSum1(s.Counts)
	total := 0.0
	for _, v := range w {
		total += v
	}
	assert.InDelta(t, 1, total, 1e-12)
}

func TestNormalizersAreIdempotent(t *testing.T) {
	x := []float64{3, 9, 0, 1.5}

	once := NormalizeToMax(x)
	testutil.RequireSliceNearlyEqual(t, NormalizeToMax(once), once, 1e-15)

	p := NormalizeSum1(x)
	testutil.RequireSliceNearlyEqual(t, NormalizeSum1(p), p, 1e-15)
}

func TestNormalizersDoNotModifyInput(t *testing.T) {
	x := []float64{2, 4}
	_ = NormalizeToMax(x)
	_ = NormalizeSum1(x)
	assert.Equal(t, []float64{2, 4}, x)
}
