package filter

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-xfilter/xray/material"
	"github.com/cwbudde/algo-xfilter/xray/spectrum"
	"github.com/cwbudde/algo-xfilter/xray/units"
)

// Apply returns countsIn * T element-wise.
func Apply(countsIn, t []float64) ([]float64, error) {
	if len(countsIn) != len(t) {
		return nil, fmt.Errorf("%w: %d counts, %d transmission values", ErrLengthMismatch, len(countsIn), len(t))
	}
	out := make([]float64, len(t))
	vecmath.MulBlock(out, countsIn, t)
	return out, nil
}

// ApplyInPlace multiplies counts by T element-wise, reusing counts.
func ApplyInPlace(counts, t []float64) error {
	if len(counts) != len(t) {
		return fmt.Errorf("%w: %d counts, %d transmission values", ErrLengthMismatch, len(counts), len(t))
	}
	vecmath.MulBlockInPlace(counts, t)
	return nil
}

// Result holds a filtered spectrum and the transmission that produced it.
type Result struct {
	EnergyMeV    []float64
	CountsIn     []float64
	CountsOut    []float64
	Transmission []float64
}

// EnergyKeV returns the bin energies in keV.
func (r Result) EnergyKeV() []float64 { return units.SliceToKeV(r.EnergyMeV) }

// Input returns the unfiltered spectrum.
func (r Result) Input() spectrum.Spectrum {
	return spectrum.Spectrum{Energy: r.EnergyMeV, Counts: r.CountsIn}
}

// Output returns the filtered spectrum.
func (r Result) Output() spectrum.Spectrum {
	return spectrum.Spectrum{Energy: r.EnergyMeV, Counts: r.CountsOut}
}

// Filter passes beam through stack.
func Filter(beam spectrum.Spectrum, stack *material.Stack, opts ...Option) (Result, error) {
	if len(beam.Energy) != len(beam.Counts) {
		return Result{}, fmt.Errorf("%w: %d energies, %d counts", ErrLengthMismatch, len(beam.Energy), len(beam.Counts))
	}

	t, err := Transmission(stack, beam.Energy, opts...)
	if err != nil {
		return Result{}, err
	}
	out, err := Apply(beam.Counts, t)
	if err != nil {
		return Result{}, err
	}

	return Result{
		EnergyMeV:    beam.Energy,
		CountsIn:     beam.Counts,
		CountsOut:    out,
		Transmission: t,
	}, nil
}
