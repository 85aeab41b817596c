package core

import "math"

const (
	// MinEnergyMeV is the floor applied to energies before taking logarithms.
	MinEnergyMeV = 1e-12
	// MinMassAttenuation is the floor applied to mass-attenuation values
	// (cm^2/g) before taking logarithms.
	MinMassAttenuation = 1e-30
)

// FloorPositive returns max(x, floor). NaN maps to floor.
func FloorPositive(x, floor float64) float64 {
	if math.IsNaN(x) || x < floor {
		return floor
	}
	return x
}

// IsFinite reports whether x is neither NaN nor Inf.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
