// Package units converts between the energy and length units that appear at
// the boundaries of the filtration engine.
//
// Every computation in the xray packages takes energies in MeV. Spectrum files
// and the CT simulator speak keV, legacy attenuation sweeps speak eV; callers
// convert explicitly at the boundary with the helpers below.
package units

const (
	keVPerMeV = 1e3
	eVPerMeV  = 1e6
	mmPerCM   = 10
)

// FromKeV converts an energy in keV to MeV.
func FromKeV(keV float64) float64 { return keV / keVPerMeV }

// FromEV converts an energy in eV to MeV.
func FromEV(eV float64) float64 { return eV / eVPerMeV }

// ToKeV converts an energy in MeV to keV.
func ToKeV(meV float64) float64 { return meV * keVPerMeV }

// ToEV converts an energy in MeV to eV.
func ToEV(meV float64) float64 { return meV * eVPerMeV }

// LengthMMToCM converts a path length in millimeters to centimeters.
func LengthMMToCM(mm float64) float64 { return mm / mmPerCM }

// SliceFromKeV returns a new slice with every keV value converted to MeV.
func SliceFromKeV(keV []float64) []float64 { return mapSlice(keV, FromKeV) }

// SliceFromEV returns a new slice with every eV value converted to MeV.
func SliceFromEV(eV []float64) []float64 { return mapSlice(eV, FromEV) }

// SliceToKeV returns a new slice with every MeV value converted to keV.
func SliceToKeV(meV []float64) []float64 { return mapSlice(meV, ToKeV) }

func mapSlice(in []float64, f func(float64) float64) []float64 {
	if in == nil {
		return nil
	}
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}
