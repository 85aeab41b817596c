package material

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/go-logr/logr"

	"github.com/cwbudde/algo-xfilter/xray/interp"
)

var (
	// ErrIncompleteMaterial is returned when a record without an attenuation
	// table is used in a computation.
	ErrIncompleteMaterial = errors.New("incomplete material: no attenuation table")

	errNegativeThickness = errors.New("thickness must be >= 0")
	errInvalidDensity    = errors.New("density must be > 0")
)

// Option configures record construction.
type Option func(*recordConfig)

type recordConfig struct {
	logger logr.Logger
}

// WithLogger reports construction diagnostics to l.
func WithLogger(l logr.Logger) Option {
	return func(c *recordConfig) {
		c.logger = l
	}
}

// Record is one filter layer. It is immutable after construction and may be
// shared read-only between goroutines.
type Record struct {
	name        string
	thicknessMM float64
	density     float64
	table       Table
	diag        error

	tables *interpolants
}

// interpolants lazily builds one interp.Table per mode. It is shared by
// records that differ only in thickness.
type interpolants struct {
	logLog func() (*interp.Table, error)
	linear func() (*interp.Table, error)
}

// NewRecord builds a layer named name with thickness in mm and density in
// g/cm^3, reading its table from src. A nil src gives a placeholder record.
//
// NewRecord never fails. Problems with the inputs or the table source are
// logged, kept as [Record.Diagnostic], and leave the record without a table
// when the table cannot be read.
func NewRecord(name string, thicknessMM, density float64, src Source, opts ...Option) *Record {
	cfg := recordConfig{logger: logr.Discard()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	r := &Record{name: name, thicknessMM: thicknessMM, density: density}
	var diags []error

	if math.IsNaN(thicknessMM) || thicknessMM < 0 {
		diags = append(diags, fmt.Errorf("%w: %v (using 0)", errNegativeThickness, thicknessMM))
		r.thicknessMM = 0
	}
	if math.IsNaN(density) || density <= 0 {
		diags = append(diags, fmt.Errorf("%w: %v", errInvalidDensity, density))
	}

	if src != nil {
		tab, err := ReadTable(src)
		if err != nil {
			diags = append(diags, fmt.Errorf("load table for %s: %w", name, err))
		} else {
			r.table = tab
		}
	}

	r.diag = errors.Join(diags...)
	if r.diag != nil {
		cfg.logger.Error(r.diag, "material record degraded", "material", name, "hasTable", r.HasTable())
	} else {
		cfg.logger.V(1).Info("material record loaded", "material", name, "rows", r.table.Len())
	}

	r.tables = newInterpolants(r.table)
	return r
}

// NewRecordFromFile is NewRecord with the source picked by [SourceForPath].
// An unsupported extension is kept as the record's diagnostic and leaves it
// without a table.
func NewRecordFromFile(name string, thicknessMM, density float64, path string, opts ...Option) *Record {
	src, err := SourceForPath(path)
	if err != nil {
		src = unreadable{err: err}
	}
	return NewRecord(name, thicknessMM, density, src, opts...)
}

func newInterpolants(tab Table) *interpolants {
	build := func(mode interp.Mode) func() (*interp.Table, error) {
		return sync.OnceValues(func() (*interp.Table, error) {
			return interp.New(tab.Energy, tab.MAC, mode)
		})
	}
	return &interpolants{
		logLog: build(interp.ModeLogLog),
		linear: build(interp.ModeLinear),
	}
}

// WithThickness returns a copy of r with a different thickness. The
// attenuation table is shared.
func (r *Record) WithThickness(mm float64) *Record {
	out := *r
	if math.IsNaN(mm) || mm < 0 {
		mm = 0
	}
	out.thicknessMM = mm
	return &out
}

// Name returns the material identifier.
func (r *Record) Name() string { return r.name }

// ThicknessMM returns the layer thickness in millimeters.
func (r *Record) ThicknessMM() float64 { return r.thicknessMM }

// Density returns the density in g/cm^3.
func (r *Record) Density() float64 { return r.density }

// HasTable reports whether an attenuation table is present.
func (r *Record) HasTable() bool { return !r.table.Empty() }

// Table returns a copy of the attenuation table.
func (r *Record) Table() Table { return r.table.Clone() }

// Diagnostic returns the problems found at construction, or nil.
func (r *Record) Diagnostic() error { return r.diag }

// Interpolant returns the mu/rho interpolant of the record for mode.
// It returns [ErrIncompleteMaterial] when the record has no table.
func (r *Record) Interpolant(mode interp.Mode) (*interp.Table, error) {
	if !r.HasTable() {
		return nil, fmt.Errorf("%s: %w", r.name, ErrIncompleteMaterial)
	}
	switch mode {
	case interp.ModeLogLog:
		return r.tables.logLog()
	case interp.ModeLinear:
		return r.tables.linear()
	default:
		return nil, fmt.Errorf("unsupported interpolation mode: %v", mode)
	}
}

// String formats the record as "W (1mm)".
func (r *Record) String() string {
	return fmt.Sprintf("%s (%smm)", r.name, strconv.FormatFloat(r.thicknessMM, 'g', -1, 64))
}

// Label formats the record for file names as "W1mm", with the thickness
// rounded to whole millimeters.
func (r *Record) Label() string {
	return fmt.Sprintf("%s%dmm", r.name, int(math.Round(r.thicknessMM)))
}
