package main

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/cwbudde/algo-xfilter/internal/config"
	"github.com/cwbudde/algo-xfilter/xray/library"
	"github.com/cwbudde/algo-xfilter/xray/material"
)

// parseLayerFlags overrides configured layers with --layer values, if any.
func parseLayerFlags(cfg *config.Config, values []string) error {
	if len(values) == 0 {
		return nil
	}
	layers := make([]config.Layer, 0, len(values))
	for _, s := range values {
		l, err := config.ParseLayer(s)
		if err != nil {
			return commandError("--layer", err)
		}
		layers = append(layers, l)
	}
	cfg.Layers = layers
	return nil
}

// buildStack resolves the configured layers into a material stack. The
// element library is only read when a layer needs it.
func buildStack(cfg config.Config, log logr.Logger) (*material.Stack, error) {
	var lib *library.Library
	stack := material.NewStack()
	opts := []material.Option{material.WithLogger(log)}

	for i, l := range cfg.Layers {
		var rec *material.Record
		if l.FromLibrary() {
			if lib == nil {
				var err error
				if lib, err = library.Load(cfg.Library); err != nil {
					return nil, commandError("element library", err)
				}
			}
			var err error
			if rec, err = lib.Record(l.Material, l.Thickness, cfg.Tables, opts...); err != nil {
				return nil, commandError(fmt.Sprintf("layer %d", i+1), err)
			}
			// A configured density overrides the library value.
			if l.Density > 0 && rec.HasTable() {
				tab := rec.Table()
				rec = material.NewRecord(rec.Name(), l.Thickness, l.Density,
					material.InMemoryArrays{Energy: tab.Energy, MAC: tab.MAC, CoherentMAC: tab.CoherentMAC}, opts...)
			}
		} else {
			rec = material.NewRecordFromFile(l.Material, l.Thickness, l.Density, l.Table, opts...)
		}
		if err := stack.Append(rec); err != nil {
			return nil, err
		}
	}

	if bad := stack.Incomplete(); len(bad) > 0 {
		log.Info("stack has layers without attenuation data", "positions", bad)
	}
	log.V(1).Info("stack built", "layers", stack.Len(), "stack", stack.Labels())
	return stack, nil
}
