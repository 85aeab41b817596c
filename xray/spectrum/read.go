package spectrum

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
)

var errTooFewColumns = errors.New("spectrum rows need two columns")

// Load reads a spectrum file. See [Read] for the format.
func Load(path string) (Spectrum, error) {
	f, err := os.Open(path)
	if err != nil {
		return Spectrum{}, err
	}
	defer f.Close()

	s, err := Read(f)
	if err != nil {
		return Spectrum{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Read parses a two-column spectrum: energy in MeV, then counts. Columns are
// separated by whitespace, commas or semicolons; further columns are ignored.
// Blank lines and lines starting with '#' are skipped, and a non-numeric first
// row is treated as a header. Negative counts are clamped to zero.
func Read(r io.Reader) (Spectrum, error) {
	var energy, counts []float64

	sc := bufio.NewScanner(r)
	lineNo := 0
	seenRow := false
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.FieldsFunc(line, func(r rune) bool {
			return unicode.IsSpace(r) || r == ',' || r == ';'
		})
		if len(fields) < 2 {
			return Spectrum{}, fmt.Errorf("line %d: %w", lineNo, errTooFewColumns)
		}

		e, errE := strconv.ParseFloat(fields[0], 64)
		c, errC := strconv.ParseFloat(fields[1], 64)
		if errE != nil || errC != nil {
			if !seenRow {
				seenRow = true
				continue
			}
			return Spectrum{}, fmt.Errorf("line %d: %w", lineNo, errors.Join(errE, errC))
		}
		seenRow = true

		energy = append(energy, e)
		counts = append(counts, c)
	}
	if err := sc.Err(); err != nil {
		return Spectrum{}, err
	}

	return New(energy, counts)
}
