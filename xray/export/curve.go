package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/cwbudde/algo-xfilter/xray/filter"
)

// CurveHeader is the column layout of a single-material attenuation curve.
var CurveHeader = []string{"Energy (MeV)", "Transmission", "Attenuation"}

// CurveSheetName is the worksheet written by [WriteCurveXLSX].
const CurveSheetName = "Attenuation"

func curveRow(c filter.Curve, i int) []float64 {
	return []float64{c.EnergyMeV[i], c.Transmitted[i], c.Attenuated[i]}
}

func checkCurve(c filter.Curve) error {
	n := len(c.EnergyMeV)
	if len(c.Transmitted) != n || len(c.Attenuated) != n {
		return fmt.Errorf("%w: energy %d, transmitted %d, attenuated %d",
			errInconsistentResult, n, len(c.Transmitted), len(c.Attenuated))
	}
	return nil
}

// WriteCurveCSV writes c with a [CurveHeader] line.
func WriteCurveCSV(w io.Writer, c filter.Curve) error {
	if err := checkCurve(c); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(CurveHeader); err != nil {
		return err
	}
	rec := make([]string, len(CurveHeader))
	for i := range c.EnergyMeV {
		for j, v := range curveRow(c, i) {
			rec[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCurveXLSX writes c to a new workbook at path.
func WriteCurveXLSX(path string, c filter.Curve) error {
	if err := checkCurve(c); err != nil {
		return err
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", CurveSheetName); err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(CurveSheetName)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", []any{CurveHeader[0], CurveHeader[1], CurveHeader[2]}); err != nil {
		return err
	}
	for i := range c.EnergyMeV {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		r := curveRow(c, i)
		if err := sw.SetRow(cell, []any{r[0], r[1], r[2]}); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(path)
}
