package core

import (
	"math"
	"testing"
)

func TestFloorPositive(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{name: "above floor", x: 0.5, want: 0.5},
		{name: "zero", x: 0, want: MinEnergyMeV},
		{name: "negative", x: -3, want: MinEnergyMeV},
		{name: "nan", x: math.NaN(), want: MinEnergyMeV},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FloorPositive(tt.x, MinEnergyMeV); got != tt.want {
				t.Fatalf("FloorPositive(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1) || IsFinite(math.Inf(1)) || IsFinite(math.NaN()) {
		t.Fatal("IsFinite misclassified a value")
	}
}
