// Package export writes filtration results in the layouts consumed by
// spreadsheets and by the CT acquisition simulator.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cwbudde/algo-xfilter/xray/filter"
	"github.com/cwbudde/algo-xfilter/xray/material"
	"github.com/cwbudde/algo-xfilter/xray/spectrum"
)

var errInconsistentResult = errors.New("inconsistent result lengths")

// Header is the column layout of the full result table.
var Header = []string{
	"Energy_keV",
	"Counts_In",
	"Counts_Out",
	"Transmission",
	"Weights_In_Sum1",
	"Weights_Out_Sum1",
}

// SheetName is the worksheet written by [WriteXLSX].
const SheetName = "Filtration"

// Row is one energy bin of a filtration result.
type Row struct {
	EnergyKeV      float64
	CountsIn       float64
	CountsOut      float64
	Transmission   float64
	WeightsInSum1  float64
	WeightsOutSum1 float64
}

func (r Row) values() []float64 {
	return []float64{r.EnergyKeV, r.CountsIn, r.CountsOut, r.Transmission, r.WeightsInSum1, r.WeightsOutSum1}
}

// Rows flattens res into table rows.
func Rows(res filter.Result) ([]Row, error) {
	n := len(res.EnergyMeV)
	if len(res.CountsIn) != n || len(res.CountsOut) != n || len(res.Transmission) != n {
		return nil, fmt.Errorf("%w: energy %d, in %d, out %d, transmission %d",
			errInconsistentResult, n, len(res.CountsIn), len(res.CountsOut), len(res.Transmission))
	}

	keV := res.EnergyKeV()
	wIn := spectrum.NormalizeSum1(res.CountsIn)
	wOut := spectrum.NormalizeSum1(res.CountsOut)

	rows := make([]Row, n)
	for i := range rows {
		rows[i] = Row{
			EnergyKeV:      keV[i],
			CountsIn:       res.CountsIn[i],
			CountsOut:      res.CountsOut[i],
			Transmission:   res.Transmission[i],
			WeightsInSum1:  wIn[i],
			WeightsOutSum1: wOut[i],
		}
	}
	return rows, nil
}

// WriteCSV writes rows with a [Header] line. Numbers use the shortest
// representation that round-trips.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	rec := make([]string, len(Header))
	for _, r := range rows {
		for i, v := range r.values() {
			rec[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTwoColumn writes x and y as "%.6f %.8e" lines under a "# header"
// comment, the plain text layout read back by [spectrum.Read].
func WriteTwoColumn(w io.Writer, header string, x, y []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("%w: %d vs %d", errInconsistentResult, len(x), len(y))
	}
	if header != "" {
		if _, err := fmt.Fprintf(w, "# %s\n", header); err != nil {
			return err
		}
	}
	for i := range x {
		if _, err := fmt.Fprintf(w, "%.6f %.8e\n", x[i], y[i]); err != nil {
			return err
		}
	}
	return nil
}

// WriteXLSX writes rows to a new workbook at path.
func WriteXLSX(path string, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return err
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	cells := make([]any, len(Header))
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		for j, v := range r.values() {
			cells[j] = v
		}
		if err := sw.SetRow(cell, cells); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(path)
}

// StackTag names a stack in file names: record labels joined by "_",
// e.g. "W1mm_Cu1mm". An empty stack gives "unfiltered".
func StackTag(stack *material.Stack) string {
	if stack == nil || stack.Len() == 0 {
		return "unfiltered"
	}
	return strings.Join(stack.Labels(), "_")
}
