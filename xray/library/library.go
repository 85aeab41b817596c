// Package library maps chemical element symbols to their atomic number,
// density and tabulated mass attenuation file.
//
// The library file is a JSON (or YAML) object keyed by symbol:
//
//	{"W": {"atomic_number": 74, "density": 19.35}, ...}
//
// Tables live next to it as NN.csv, with NN the zero-padded atomic number.
package library

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-xfilter/xray/material"
)

var (
	// ErrUnknownElement is returned when a symbol is not in the library.
	ErrUnknownElement = errors.New("unknown element")

	errInvalidElement = errors.New("invalid element entry")
)

// Element is a single library entry.
type Element struct {
	Symbol       string  `yaml:"-"`
	AtomicNumber int     `yaml:"atomic_number"`
	Density      float64 `yaml:"density"` // g/cm^3
}

// TableFile returns the path of the element's attenuation table in dir.
func (e Element) TableFile(dir string) string {
	return filepath.Join(dir, fmt.Sprintf("%02d.csv", e.AtomicNumber))
}

// Library is an immutable symbol lookup.
type Library struct {
	elements map[string]Element
}

// Load reads a library file from path.
func Load(path string) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open library: %w", err)
	}
	defer f.Close()

	lib, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lib, nil
}

// Parse decodes a library from r.
func Parse(r io.Reader) (*Library, error) {
	raw := map[string]Element{}
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode library: %w", err)
	}

	lib := &Library{elements: make(map[string]Element, len(raw))}
	for sym, el := range raw {
		sym = strings.TrimSpace(sym)
		el.Symbol = sym
		if err := el.validate(); err != nil {
			return nil, err
		}
		lib.elements[sym] = el
	}
	return lib, nil
}

func (e Element) validate() error {
	switch {
	case e.Symbol == "":
		return fmt.Errorf("%w: empty symbol", errInvalidElement)
	case e.AtomicNumber < 1:
		return fmt.Errorf("%w: %s: atomic number %d", errInvalidElement, e.Symbol, e.AtomicNumber)
	case math.IsNaN(e.Density) || e.Density <= 0:
		return fmt.Errorf("%w: %s: density %v", errInvalidElement, e.Symbol, e.Density)
	}
	return nil
}

// Len returns the number of elements.
func (l *Library) Len() int { return len(l.elements) }

// Symbols returns all symbols in ascending order.
func (l *Library) Symbols() []string {
	out := make([]string, 0, len(l.elements))
	for s := range l.elements {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// Elements returns all entries ordered by atomic number.
func (l *Library) Elements() []Element {
	out := make([]Element, 0, len(l.elements))
	for _, e := range l.elements {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Element) int {
		if a.AtomicNumber != b.AtomicNumber {
			return a.AtomicNumber - b.AtomicNumber
		}
		return strings.Compare(a.Symbol, b.Symbol)
	})
	return out
}

// Lookup returns the entry for symbol. Symbols are case sensitive.
func (l *Library) Lookup(symbol string) (Element, bool) {
	e, ok := l.elements[symbol]
	return e, ok
}

// Record builds a material record for symbol using the library density and
// the table file found in dir. A missing table file does not fail here; it
// becomes the record's diagnostic, as with any other source.
func (l *Library) Record(symbol string, thicknessMM float64, dir string, opts ...material.Option) (*material.Record, error) {
	e, ok := l.Lookup(symbol)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownElement, symbol)
	}
	src := material.DelimitedTable{Path: e.TableFile(dir)}
	return material.NewRecord(e.Symbol, thicknessMM, e.Density, src, opts...), nil
}
