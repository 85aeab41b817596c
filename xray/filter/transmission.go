package filter

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-xfilter/xray/material"
	"github.com/cwbudde/algo-xfilter/xray/units"
)

// Transmission returns T(E) of stack at every energy (MeV).
//
// An empty or nil stack transmits everything. Layers are visited in stack
// order; the first layer that cannot be evaluated aborts the call with an
// error naming its position. The stack is never modified.
func Transmission(stack *material.Stack, eMeV []float64, opts ...Option) ([]float64, error) {
	cfg := ApplyOptions(opts...)
	if err := checkEnergies(eMeV); err != nil {
		return nil, err
	}

	depth := make([]float64, len(eMeV))
	if stack != nil {
		var layer []float64
		for i, rec := range stack.All() {
			var err error
			layer, err = opticalDepth(layer, rec, eMeV, cfg)
			if err != nil {
				return nil, fmt.Errorf("layer %d: %w", i+1, err)
			}
			floats.Add(depth, layer)
			cfg.Logger.V(1).Info("layer applied",
				"layer", i+1,
				"material", rec.Name(),
				"thicknessMM", rec.ThicknessMM(),
				"densityGcm3", rec.Density(),
			)
		}
	}

	t := depth
	for i, tau := range depth {
		t[i] = transmissionFromDepth(tau)
	}
	return t, nil
}

// LayerTransmission returns exp(-mu(E) * t) for a single layer.
func LayerTransmission(rec *material.Record, eMeV []float64, opts ...Option) ([]float64, error) {
	return Transmission(material.NewStack(rec), eMeV, opts...)
}

// opticalDepth writes mu(E) * t_cm of rec into dst. Negative depths from
// linear extrapolation are clamped to zero. A zero-thickness layer has zero
// depth even where mu is infinite.
func opticalDepth(dst []float64, rec *material.Record, eMeV []float64, cfg Options) ([]float64, error) {
	dst, err := linearAttenuation(dst, rec, eMeV, cfg)
	if err != nil {
		return nil, err
	}
	tcm := units.LengthMMToCM(rec.ThicknessMM())
	if tcm == 0 {
		clear(dst)
		return dst, nil
	}
	floats.Scale(tcm, dst)
	for i, v := range dst {
		if v < 0 {
			dst[i] = 0
		}
	}
	return dst, nil
}

// TransmissionParallel evaluates [Transmission] for several independent
// energy grids concurrently. The stack is snapshotted once; records are only
// read. Grids not yet started when ctx is cancelled are skipped and the
// context error is returned.
func TransmissionParallel(ctx context.Context, stack *material.Stack, grids [][]float64, opts ...Option) ([][]float64, error) {
	var snap *material.Stack
	if stack != nil {
		snap = material.NewStack(stack.Snapshot()...)
	}

	out := make([][]float64, len(grids))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, grid := range grids {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := Transmission(snap, grid, opts...)
			if err != nil {
				return fmt.Errorf("grid %d: %w", i, err)
			}
			out[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
