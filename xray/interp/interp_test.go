package interp

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-xfilter/internal/testutil"
)

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New(nil, nil, ModeLogLog); !errors.Is(err, ErrEmptyTable) {
		t.Fatalf("empty: err = %v, want ErrEmptyTable", err)
	}
	if _, err := New([]float64{1, 2}, []float64{1}, ModeLogLog); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("mismatch: err = %v, want ErrLengthMismatch", err)
	}
	if _, err := New([]float64{1, math.NaN()}, []float64{1, 2}, ModeLinear); err == nil {
		t.Fatal("expected error for NaN knot")
	}
	if _, err := New([]float64{1}, []float64{1}, Mode(9)); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestLogLogReproducesKnots(t *testing.T) {
	e, mac, _ := testutil.TungstenTable()
	tab, err := New(e, mac, ModeLogLog)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := range e {
		got := tab.At(e[i])
		// At a repeated energy the low side of the step is returned.
		want := mac[i]
		if i > 0 && e[i-1] == e[i] {
			want = mac[i-1]
		}
		if math.Abs(got-want)/want > 1e-9 {
			t.Fatalf("knot %d (E=%v): got %v, want %v", i, e[i], got, want)
		}
	}
}

func TestLogLogIsPowerLawBetweenKnots(t *testing.T) {
	// y = x^-3 is a straight line in log-log space.
	x := []float64{0.01, 0.1, 1}
	y := []float64{1e6, 1e3, 1}
	tab, err := New(x, y, ModeLogLog)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, q := range []float64{0.02, 0.05, 0.3, 0.7} {
		want := math.Pow(q, -3)
		if got := tab.At(q); math.Abs(got-want)/want > 1e-9 {
			t.Fatalf("At(%v) = %v, want %v", q, got, want)
		}
	}
}

func TestExtrapolatesBeyondRange(t *testing.T) {
	x := []float64{1, 2}
	y := []float64{10, 20}

	lin, err := New(x, y, ModeLinear)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := lin.At(3); math.Abs(got-30) > 1e-12 {
		t.Fatalf("linear At(3) = %v, want 30", got)
	}
	if got := lin.At(0); math.Abs(got) > 1e-12 {
		t.Fatalf("linear At(0) = %v, want 0", got)
	}

	ll, err := New(x, y, ModeLogLog)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// y = 10x in log-log space has unit slope.
	if got := ll.At(4); math.Abs(got-40) > 1e-9 {
		t.Fatalf("loglog At(4) = %v, want 40", got)
	}
}

func TestEdgeDiscontinuity(t *testing.T) {
	x := []float64{1, 2, 2, 3}
	y := []float64{1, 1, 5, 5}
	tab, err := New(x, y, ModeLinear)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		q    float64
		want float64
	}{
		{q: 1.5, want: 1},
		{q: 2, want: 1},
		{q: 2.0000001, want: 5},
		{q: 2.5, want: 5},
	}
	for _, tt := range tests {
		if got := tab.At(tt.q); math.Abs(got-tt.want) > 1e-9 {
			t.Fatalf("At(%v) = %v, want %v", tt.q, got, tt.want)
		}
	}
}

func TestRepeatedEnergyAtTableEnds(t *testing.T) {
	tab, err := New([]float64{1, 1, 2, 2}, []float64{3, 4, 6, 7}, ModeLinear)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, q := range []float64{0, 1, 2, 5} {
		if v := tab.At(q); math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("At(%v) = %v, want finite", q, v)
		}
	}
	if got := tab.At(0.5); got != 3 {
		t.Fatalf("At(0.5) = %v, want 3", got)
	}
	if got := tab.At(9); got != 7 {
		t.Fatalf("At(9) = %v, want 7", got)
	}
}

func TestUnsortedInputKeepsTableOrderForTies(t *testing.T) {
	tab, err := New([]float64{3, 2, 2, 1}, []float64{5, 1, 5, 1}, ModeLinear)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// Stable order: the (2,1) knot precedes (2,5).
	if got := tab.At(2); got != 1 {
		t.Fatalf("At(2) = %v, want 1", got)
	}
	if got := tab.At(2.5); got != 5 {
		t.Fatalf("At(2.5) = %v, want 5", got)
	}
}

func TestSingleKnotIsConstant(t *testing.T) {
	tab, err := New([]float64{1}, []float64{0.06618}, ModeLogLog)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, q := range []float64{0, 0.5, 1, 10} {
		if got := tab.At(q); math.Abs(got-0.06618) > 1e-15 {
			t.Fatalf("At(%v) = %v", q, got)
		}
	}
}

func TestLogLogFloorsNonPositiveValues(t *testing.T) {
	tab, err := New([]float64{0, 1}, []float64{0, 1}, ModeLogLog)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out := tab.Eval(nil, []float64{-1, 0, 1e-6, 0.5, 1})
	testutil.RequireFinite(t, out)
	for i, v := range out {
		if v <= 0 {
			t.Fatalf("index %d: %v, want > 0", i, v)
		}
	}
}

func TestEvalReusesBuffer(t *testing.T) {
	tab, err := New([]float64{1, 2}, []float64{1, 2}, ModeLinear)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	buf := make([]float64, 0, 8)
	out := tab.Eval(buf, []float64{1, 1.5, 2})
	if cap(out) != cap(buf) {
		t.Fatal("Eval did not reuse buffer capacity")
	}
	testutil.RequireSliceNearlyEqual(t, out, []float64{1, 1.5, 2}, 1e-15)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "loglog", want: ModeLogLog},
		{in: "Log-Log", want: ModeLogLog},
		{in: "", want: ModeLogLog},
		{in: "linear", want: ModeLinear},
		{in: "cubic", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseMode(%q) err = %v", tt.in, err)
		}
		if err == nil && got != tt.want {
			t.Fatalf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if ModeLinear.String() != "linear" || ModeLogLog.String() != "loglog" {
		t.Fatal("unexpected Mode.String output")
	}
}
