package material

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrUnsupportedFormat is returned when a table source is neither a
	// delimited table nor a spreadsheet.
	ErrUnsupportedFormat = errors.New("unsupported table format")
	// ErrSourceMissing is returned when a table file does not exist.
	ErrSourceMissing = errors.New("table source not found")
	// ErrMissingColumn is returned when a required column is absent.
	ErrMissingColumn = errors.New("missing table column")
)

// Source is where an attenuation table comes from. It is one of
// [DelimitedTable], [SpreadsheetTable] or [InMemoryArrays].
type Source interface {
	isSource()
}

// DelimitedTable is a text table with a header row, comma separated unless
// Comma is set. Reader takes precedence over Path.
type DelimitedTable struct {
	Path   string
	Reader io.Reader
	Comma  rune
}

// SpreadsheetTable is an XLSX workbook with a header row. The first sheet is
// read when Sheet is empty. Reader takes precedence over Path.
type SpreadsheetTable struct {
	Path   string
	Reader io.Reader
	Sheet  string
}

// InMemoryArrays is an already loaded table.
type InMemoryArrays struct {
	Energy      []float64
	MAC         []float64
	CoherentMAC []float64
}

func (DelimitedTable) isSource()   {}
func (SpreadsheetTable) isSource() {}
func (InMemoryArrays) isSource()   {}

// unreadable stands in for a table file whose format is not recognized. It
// fails on read, so the record degrades instead of construction failing.
type unreadable struct{ err error }

func (unreadable) isSource() {}

// SourceForPath picks the source variant for a table file from its extension.
func SourceForPath(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return DelimitedTable{Path: path}, nil
	case ".tsv":
		return DelimitedTable{Path: path, Comma: '\t'}, nil
	case ".xlsx", ".xlsm":
		return SpreadsheetTable{Path: path}, nil
	case ".xls":
		return nil, fmt.Errorf("%w: %q (legacy .xls workbooks are not readable, save as .xlsx)", ErrUnsupportedFormat, path)
	default:
		return nil, fmt.Errorf("%w: %q (use .csv or .xlsx)", ErrUnsupportedFormat, path)
	}
}

// ReadTable loads and validates the table described by src.
func ReadTable(src Source) (Table, error) {
	var (
		tab Table
		err error
	)
	switch s := src.(type) {
	case DelimitedTable:
		tab, err = readDelimited(s)
	case SpreadsheetTable:
		tab, err = readSpreadsheet(s)
	case InMemoryArrays:
		tab = Table{Energy: s.Energy, MAC: s.MAC, CoherentMAC: s.CoherentMAC}.Clone()
	case unreadable:
		err = s.err
	case nil:
		return Table{}, fmt.Errorf("%w: nil source", ErrUnsupportedFormat)
	default:
		return Table{}, fmt.Errorf("%w: %T", ErrUnsupportedFormat, src)
	}
	if err != nil {
		return Table{}, err
	}
	if err := tab.Validate(); err != nil {
		return Table{}, err
	}
	return tab, nil
}

func openSource(path string) (*os.File, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSourceMissing, path)
	}
	return f, err
}

func readDelimited(s DelimitedTable) (Table, error) {
	r := s.Reader
	if r == nil {
		f, err := openSource(s.Path)
		if err != nil {
			return Table{}, err
		}
		defer f.Close()
		r = f
	}

	cr := csv.NewReader(r)
	if s.Comma != 0 {
		cr.Comma = s.Comma
	}
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("read delimited table: %w", err)
	}
	return parseRecords(records)
}

func readSpreadsheet(s SpreadsheetTable) (Table, error) {
	var (
		f   *excelize.File
		err error
	)
	if s.Reader != nil {
		f, err = excelize.OpenReader(s.Reader)
	} else {
		if _, statErr := os.Stat(s.Path); errors.Is(statErr, fs.ErrNotExist) {
			return Table{}, fmt.Errorf("%w: %s", ErrSourceMissing, s.Path)
		}
		f, err = excelize.OpenFile(s.Path)
	}
	if err != nil {
		return Table{}, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := s.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return Table{}, errors.New("spreadsheet has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return Table{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return parseRecords(rows)
}

// parseRecords converts a header row plus data rows into a Table.
func parseRecords(records [][]string) (Table, error) {
	if len(records) == 0 {
		return Table{}, fmt.Errorf("%w: %s (no header row)", ErrMissingColumn, ColumnEnergy)
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := header[name]; !dup {
			header[name] = i
		}
	}

	cols := [3]int{}
	for i, name := range []string{ColumnEnergy, ColumnMAC, ColumnCoherentMAC} {
		idx, ok := header[name]
		if !ok {
			return Table{}, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		cols[i] = idx
	}

	tab := Table{
		Energy:      make([]float64, 0, len(records)-1),
		MAC:         make([]float64, 0, len(records)-1),
		CoherentMAC: make([]float64, 0, len(records)-1),
	}
	for r, rec := range records[1:] {
		if blankRecord(rec) {
			continue
		}
		var vals [3]float64
		for c, idx := range cols {
			if idx >= len(rec) {
				return Table{}, fmt.Errorf("row %d: missing field %d", r+2, idx+1)
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[idx]), 64)
			if err != nil {
				return Table{}, fmt.Errorf("row %d: %w", r+2, err)
			}
			vals[c] = v
		}
		tab.Energy = append(tab.Energy, vals[0])
		tab.MAC = append(tab.MAC, vals[1])
		tab.CoherentMAC = append(tab.CoherentMAC, vals[2])
	}
	return tab, nil
}

func blankRecord(rec []string) bool {
	for _, field := range rec {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
