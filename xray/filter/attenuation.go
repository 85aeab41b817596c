package filter

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-xfilter/xray/core"
	"github.com/cwbudde/algo-xfilter/xray/interp"
	"github.com/cwbudde/algo-xfilter/xray/material"
	"github.com/cwbudde/algo-xfilter/xray/units"
)

// Mu returns mu(E) in cm^-1 for rec, with E in MeV.
func Mu(rec *material.Record, opts ...Option) (func(eMeV float64) float64, error) {
	cfg := ApplyOptions(opts...)
	tab, err := interpolant(rec, cfg)
	if err != nil {
		return nil, err
	}
	rho := rec.Density()
	return func(eMeV float64) float64 {
		return tab.At(eMeV) * rho
	}, nil
}

// LinearAttenuation evaluates mu(E) in cm^-1 for every energy (MeV).
func LinearAttenuation(rec *material.Record, eMeV []float64, opts ...Option) ([]float64, error) {
	cfg := ApplyOptions(opts...)
	if err := checkEnergies(eMeV); err != nil {
		return nil, err
	}
	return linearAttenuation(nil, rec, eMeV, cfg)
}

func linearAttenuation(dst []float64, rec *material.Record, eMeV []float64, cfg Options) ([]float64, error) {
	tab, err := interpolant(rec, cfg)
	if err != nil {
		return nil, err
	}
	dst = tab.Eval(dst, eMeV)
	floats.Scale(rec.Density(), dst)
	return dst, nil
}

func interpolant(rec *material.Record, cfg Options) (*interp.Table, error) {
	if rec == nil {
		return nil, fmt.Errorf("nil layer: %w", ErrIncompleteMaterial)
	}
	tab, err := rec.Interpolant(cfg.Mode)
	if err != nil {
		return nil, err
	}
	if d := rec.Density(); math.IsNaN(d) || d <= 0 {
		return nil, fmt.Errorf("%s: %w (got %v)", rec.Name(), ErrInvalidDensity, d)
	}
	return tab, nil
}

// Curve is the attenuation of a single layer over an energy grid.
type Curve struct {
	EnergyMeV   []float64
	Mu          []float64 // cm^-1
	Transmitted []float64
	Attenuated  []float64 // 1 - Transmitted
}

// AttenuationCurve computes mu, the transmitted fraction and the attenuated
// fraction of one layer at every energy (MeV).
func AttenuationCurve(rec *material.Record, eMeV []float64, opts ...Option) (Curve, error) {
	cfg := ApplyOptions(opts...)
	if err := checkEnergies(eMeV); err != nil {
		return Curve{}, err
	}
	mu, err := linearAttenuation(nil, rec, eMeV, cfg)
	if err != nil {
		return Curve{}, err
	}

	c := Curve{
		EnergyMeV:   append([]float64(nil), eMeV...),
		Mu:          mu,
		Transmitted: make([]float64, len(eMeV)),
		Attenuated:  make([]float64, len(eMeV)),
	}
	tcm := units.LengthMMToCM(rec.ThicknessMM())
	for i, m := range mu {
		c.Transmitted[i] = transmissionFromDepth(m * tcm)
		c.Attenuated[i] = 1 - c.Transmitted[i]
	}
	return c, nil
}

// EnergyGrid returns start, start+step, ... up to and including stop (within
// rounding). Units are whatever the caller uses; convert with package units
// before passing the grid to MeV-based functions.
func EnergyGrid(start, stop, step float64) ([]float64, error) {
	if !(step > 0) || !core.IsFinite(start) || !core.IsFinite(stop) || stop < start {
		return nil, fmt.Errorf("%w: start=%v stop=%v step=%v", errInvalidGrid, start, stop, step)
	}
	n := int(math.Floor((stop-start)/step+1e-9)) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out, nil
}

// transmissionFromDepth returns exp(-tau) limited to (0, 1]. A negative
// optical depth can only come from linear extrapolation below zero mu/rho;
// NaN comes from a zero thickness times an infinite mu.
func transmissionFromDepth(tau float64) float64 {
	if !(tau > 0) {
		return 1
	}
	t := math.Exp(-tau)
	if t < math.SmallestNonzeroFloat64 {
		return math.SmallestNonzeroFloat64
	}
	return t
}

func checkEnergies(eMeV []float64) error {
	for i, e := range eMeV {
		if !core.IsFinite(e) {
			return fmt.Errorf("%w: index %d = %v", errNonFiniteEnergy, i, e)
		}
	}
	return nil
}
