package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-xfilter/internal/config"
	"github.com/cwbudde/algo-xfilter/xray/export"
	"github.com/cwbudde/algo-xfilter/xray/filter"
	"github.com/cwbudde/algo-xfilter/xray/interp"
	"github.com/cwbudde/algo-xfilter/xray/units"
)

type transmissionOptions struct {
	layer   string
	mode    string
	startEV float64
	stopEV  float64
	stepEV  float64
	outPath string
}

func newTransmissionCommand(root *rootOptions) *cobra.Command {
	opts := &transmissionOptions{}

	cmd := &cobra.Command{
		Use:   "transmission",
		Short: "Attenuation curve of a single layer",
		Long: `Evaluates transmitted and attenuated fractions of one layer over an
energy sweep given in eV (1 keV to 2 MeV by default). The curve is printed
as CSV, or written to --out (.csv or .xlsx).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransmission(root, opts, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.layer, "layer", "", "layer NAME:MM or NAME:MM:DENSITY:TABLE")
	f.StringVar(&opts.mode, "mode", interp.ModeLinear.String(), "interpolation mode (loglog|linear)")
	f.Float64Var(&opts.startEV, "start-ev", 1e3, "first energy in eV")
	f.Float64Var(&opts.stopEV, "stop-ev", 2e6, "last energy in eV")
	f.Float64Var(&opts.stepEV, "step-ev", 1e3, "energy step in eV")
	f.StringVarP(&opts.outPath, "out", "o", "", "output file (.csv or .xlsx)")
	f.String("library", "", "element library file")
	f.String("tables", "", "directory of NN.csv attenuation tables")
	_ = cmd.MarkFlagRequired("layer")
	root.bind(cmd, map[string]string{
		"library": config.KeyLibrary,
		"tables":  config.KeyTables,
	})
	return cmd
}

func runTransmission(root *rootOptions, opts *transmissionOptions, out io.Writer) error {
	cfg := root.cfg
	if err := parseLayerFlags(&cfg, []string{opts.layer}); err != nil {
		return err
	}
	mode, err := interp.ParseMode(opts.mode)
	if err != nil {
		return commandError("--mode", err)
	}
	gridEV, err := filter.EnergyGrid(opts.startEV, opts.stopEV, opts.stepEV)
	if err != nil {
		return commandError("energy grid", err)
	}

	stack, err := buildStack(cfg, root.log)
	if err != nil {
		return err
	}
	rec, err := stack.At(0)
	if err != nil {
		return failure("layer", err)
	}

	curve, err := filter.AttenuationCurve(rec, units.SliceFromEV(gridEV), filter.WithMode(mode), filter.WithLogger(root.log))
	if err != nil {
		return failure("attenuation curve", err)
	}

	switch ext := strings.ToLower(filepath.Ext(opts.outPath)); {
	case opts.outPath == "":
		err = export.WriteCurveCSV(out, curve)
	case ext == ".xlsx":
		err = export.WriteCurveXLSX(opts.outPath, curve)
	case ext == ".csv":
		err = writeFile(opts.outPath, func(w io.Writer) error { return export.WriteCurveCSV(w, curve) })
	default:
		return commandError("--out", fmt.Errorf("unsupported extension %q", ext))
	}
	if err != nil {
		return failure("write curve", err)
	}
	if opts.outPath != "" {
		root.log.Info("wrote attenuation curve", "path", opts.outPath, "material", rec.String(), "points", len(gridEV))
		fmt.Fprintln(out, opts.outPath)
	}
	return nil
}
