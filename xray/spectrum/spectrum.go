// Package spectrum holds photon energy spectra and the normalizations used to
// compare them and to hand them to downstream simulators.
package spectrum

import (
	"errors"
	"fmt"
	"slices"

	"github.com/cwbudde/algo-xfilter/xray/core"
	"github.com/cwbudde/algo-xfilter/xray/units"
)

// ErrLengthMismatch is returned when energy and count arrays differ in length.
var ErrLengthMismatch = errors.New("energy and counts must have same length")

// Spectrum is a binned photon spectrum. Energy is in MeV; Counts are
// non-negative photon counts or intensities.
type Spectrum struct {
	Energy []float64
	Counts []float64
}

// New copies energy and counts into a Spectrum, replacing negative counts
// with zero.
func New(energy, counts []float64) (Spectrum, error) {
	if len(energy) != len(counts) {
		return Spectrum{}, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(energy), len(counts))
	}
	s := Spectrum{
		Energy: slices.Clone(energy),
		Counts: make([]float64, len(counts)),
	}
	core.ClampNonNegative(s.Counts, counts)
	return s, nil
}

// Len returns the number of bins.
func (s Spectrum) Len() int { return len(s.Energy) }

// EnergyKeV returns the bin energies in keV.
func (s Spectrum) EnergyKeV() []float64 { return units.SliceToKeV(s.Energy) }

// BeamWeights is the spectral input of the CT acquisition simulator: energy
// bins in keV with photon weights that sum to one.
type BeamWeights struct {
	EnergyKeV []float64
	Weights   []float64
}

// BeamWeights converts s into simulator input using [NormalizeSum1].
func (s Spectrum) BeamWeights() BeamWeights {
	return BeamWeights{
		EnergyKeV: s.EnergyKeV(),
		Weights:   NormalizeSum1(s.Counts),
	}
}
