package library

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-xfilter/internal/testutil"
	"github.com/cwbudde/algo-xfilter/xray/interp"
)

func TestLoad(t *testing.T) {
	lib, err := Load(filepath.Join("testdata", "symbol_key.json"))
	require.NoError(t, err)

	assert.Equal(t, 4, lib.Len())
	assert.Equal(t, []string{"Al", "Cu", "Pb", "W"}, lib.Symbols())

	w, ok := lib.Lookup("W")
	require.True(t, ok)
	assert.Equal(t, Element{Symbol: "W", AtomicNumber: 74, Density: 19.35}, w)

	_, ok = lib.Lookup("w")
	assert.False(t, ok)
}

func TestElementsOrderedByAtomicNumber(t *testing.T) {
	lib, err := Load(filepath.Join("testdata", "symbol_key.json"))
	require.NoError(t, err)

	var syms []string
	for _, e := range lib.Elements() {
		syms = append(syms, e.Symbol)
	}
	assert.Equal(t, []string{"Al", "Cu", "W", "Pb"}, syms)
}

func TestTableFile(t *testing.T) {
	assert.Equal(t, filepath.Join("tables", "08.csv"), Element{AtomicNumber: 8}.TableFile("tables"))
	assert.Equal(t, filepath.Join("tables", "74.csv"), Element{AtomicNumber: 74}.TableFile("tables"))
}

func TestParseYAML(t *testing.T) {
	lib, err := Parse(strings.NewReader("Fe:\n  atomic_number: 26\n  density: 7.874\n"))
	require.NoError(t, err)
	fe, ok := lib.Lookup("Fe")
	require.True(t, ok)
	assert.Equal(t, 26, fe.AtomicNumber)
}

func TestParseEmpty(t *testing.T) {
	lib, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, lib.Len())
}

func TestParseRejectsBadEntries(t *testing.T) {
	for name, in := range map[string]string{
		"zero atomic number": `{"X": {"atomic_number": 0, "density": 1}}`,
		"no density":         `{"X": {"atomic_number": 3}}`,
		"negative density":   `{"X": {"atomic_number": 3, "density": -1}}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(in))
			require.ErrorIs(t, err, errInvalidElement)
		})
	}

	_, err := Parse(strings.NewReader(`[1, 2]`))
	require.Error(t, err)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRecord(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "74.csv"), []byte(testutil.TungstenCSV()), 0o644))

	lib, err := Load(filepath.Join("testdata", "symbol_key.json"))
	require.NoError(t, err)

	rec, err := lib.Record("W", 1, dir)
	require.NoError(t, err)
	assert.Equal(t, "W", rec.Name())
	assert.Equal(t, 19.35, rec.Density())
	assert.True(t, rec.HasTable())

	tab, err := rec.Interpolant(interp.ModeLogLog)
	require.NoError(t, err)
	assert.InDelta(t, 0.06618, tab.At(1.0), 1e-12)
}

func TestRecordMissingTableIsDiagnostic(t *testing.T) {
	lib, err := Load(filepath.Join("testdata", "symbol_key.json"))
	require.NoError(t, err)

	rec, err := lib.Record("Pb", 2, t.TempDir())
	require.NoError(t, err)
	assert.False(t, rec.HasTable())
	assert.Error(t, rec.Diagnostic())
}

func TestRecordUnknownSymbol(t *testing.T) {
	lib, err := Load(filepath.Join("testdata", "symbol_key.json"))
	require.NoError(t, err)

	_, err = lib.Record("Xx", 1, ".")
	require.ErrorIs(t, err, ErrUnknownElement)
}
