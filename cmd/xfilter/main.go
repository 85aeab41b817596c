// Command xfilter passes X-ray spectra through stacks of attenuating
// material layers.
//
// Usage:
//
//	xfilter apply --spectrum beam.txt --layer W:1 --layer Cu:0.5
//	xfilter transmission --layer W:1 --out w1mm.xlsx
//	xfilter library
//
// Settings may also come from a YAML file (--config) or XFILTER_*
// environment variables.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitCode(err))
	}
}
