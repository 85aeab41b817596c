package filter

import (
	"errors"

	"github.com/cwbudde/algo-xfilter/xray/material"
	"github.com/cwbudde/algo-xfilter/xray/spectrum"
)

var (
	// ErrIncompleteMaterial is returned when a layer has no attenuation table.
	ErrIncompleteMaterial = material.ErrIncompleteMaterial
	// ErrLengthMismatch is returned when spectrum and transmission arrays
	// differ in length.
	ErrLengthMismatch = spectrum.ErrLengthMismatch
	// ErrInvalidDensity is returned when a layer has a non-positive density.
	ErrInvalidDensity = errors.New("layer density must be > 0")

	errNonFiniteEnergy = errors.New("energies must be finite")
	errInvalidGrid     = errors.New("invalid energy grid")
)
