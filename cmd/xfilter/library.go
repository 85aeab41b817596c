package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-xfilter/internal/config"
	"github.com/cwbudde/algo-xfilter/xray/library"
)

func newLibraryCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "List the elements of the element library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLibrary(root, cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.String("library", "", "element library file")
	f.String("tables", "", "directory of NN.csv attenuation tables")
	root.bind(cmd, map[string]string{
		"library": config.KeyLibrary,
		"tables":  config.KeyTables,
	})
	return cmd
}

func runLibrary(root *rootOptions, out io.Writer) error {
	lib, err := library.Load(root.cfg.Library)
	if err != nil {
		return commandError("element library", err)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Symbol\tZ\tDensity [g/cm3]\tTable\n")
	fmt.Fprintf(tw, "------\t-\t---------------\t-----\n")
	for _, e := range lib.Elements() {
		path := e.TableFile(root.cfg.Tables)
		status := path
		if _, err := os.Stat(path); err != nil {
			status += " (missing)"
		}
		fmt.Fprintf(tw, "%s\t%d\t%g\t%s\n", e.Symbol, e.AtomicNumber, e.Density, status)
	}
	return tw.Flush()
}
