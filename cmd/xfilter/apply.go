package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-xfilter/internal/config"
	"github.com/cwbudde/algo-xfilter/xray/export"
	"github.com/cwbudde/algo-xfilter/xray/filter"
	"github.com/cwbudde/algo-xfilter/xray/material"
	"github.com/cwbudde/algo-xfilter/xray/spectrum"
	"github.com/cwbudde/algo-xfilter/xray/units"
)

type applyOptions struct {
	layers []string
	keV    bool
	dryRun bool
}

func newApplyCommand(root *rootOptions) *cobra.Command {
	opts := &applyOptions{}

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Filter a spectrum through a material stack",
		Long: `Loads a two-column spectrum (energy, counts), passes it through the
configured layers and writes the filtered spectrum, its transmission and
the sum-normalized beam weights.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(root, opts, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.String("spectrum", "", "spectrum file (energy in MeV, counts)")
	f.String("library", "", "element library file")
	f.String("tables", "", "directory of NN.csv attenuation tables")
	f.String("mode", "", "interpolation mode (loglog|linear)")
	f.String("out-dir", "", "output directory")
	f.String("prefix", "", "output file prefix")
	f.Bool("xlsx", false, "also write an XLSX workbook")
	f.StringArrayVar(&opts.layers, "layer", nil, "layer NAME:MM or NAME:MM:DENSITY:TABLE, repeatable, in beam order")
	f.BoolVar(&opts.keV, "kev", false, "spectrum energies are in keV")
	f.BoolVar(&opts.dryRun, "dry-run", false, "print the summary without writing files")

	root.bind(cmd, map[string]string{
		"spectrum": config.KeySpectrum,
		"library":  config.KeyLibrary,
		"tables":   config.KeyTables,
		"mode":     config.KeyMode,
		"out-dir":  config.KeyOutDir,
		"prefix":   config.KeyOutPrefix,
		"xlsx":     config.KeyOutXLSX,
	})
	return cmd
}

func runApply(root *rootOptions, opts *applyOptions, out io.Writer) error {
	cfg := root.cfg
	if err := parseLayerFlags(&cfg, opts.layers); err != nil {
		return err
	}
	if err := cfg.ValidateApply(); err != nil {
		return commandError("configuration", err)
	}
	mode, err := cfg.InterpMode()
	if err != nil {
		return commandError("configuration", err)
	}
	log := root.log

	beam, err := spectrum.Load(cfg.Spectrum)
	if err != nil {
		return commandError("spectrum", err)
	}
	if opts.keV {
		beam.Energy = units.SliceFromKeV(beam.Energy)
	}
	log.Info("spectrum loaded", "path", cfg.Spectrum, "bins", beam.Len())

	stack, err := buildStack(cfg, log)
	if err != nil {
		return err
	}

	res, err := filter.Filter(beam, stack, filter.WithMode(mode), filter.WithLogger(log))
	if err != nil {
		return failure("filtration", err)
	}

	if err := printApplySummary(out, stack, res); err != nil {
		return failure("write summary", err)
	}
	if opts.dryRun {
		return nil
	}

	formats := export.DefaultFormats
	if cfg.Out.XLSX {
		formats |= export.FormatXLSX
	}
	w := export.Writer{Dir: cfg.Out.Dir, Prefix: cfg.Out.Prefix, Formats: formats, Logger: log}
	m, err := w.Write(res, stack)
	if err != nil {
		return failure("export", err)
	}
	for _, f := range m.Files {
		fmt.Fprintln(out, f)
	}
	return nil
}

func printApplySummary(out io.Writer, stack *material.Stack, res filter.Result) error {
	if stack.Len() == 0 {
		fmt.Fprintln(out, "Stack: (empty)")
	} else {
		fmt.Fprintf(out, "Stack:\n%s", stack)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Spectrum\tBins\tTotal\tMean [keV]\tPeak [keV]\n")
	fmt.Fprintf(tw, "--------\t----\t-----\t----------\t----------\n")
	for _, row := range []struct {
		name string
		s    spectrum.Spectrum
	}{
		{"in", res.Input()},
		{"out", res.Output()},
	} {
		sum := spectrum.Summarize(row.s)
		fmt.Fprintf(tw, "%s\t%d\t%.6g\t%.3f\t%.3f\n",
			row.name,
			sum.Bins,
			sum.Total,
			units.ToKeV(sum.MeanEnergy),
			units.ToKeV(sum.PeakEnergy),
		)
	}
	return tw.Flush()
}
