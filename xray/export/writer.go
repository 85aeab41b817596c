package export

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-xfilter/xray/filter"
	"github.com/cwbudde/algo-xfilter/xray/material"
)

// Format selects the files produced by [Writer].
type Format uint8

const (
	// FormatCSV is the full result table.
	FormatCSV Format = 1 << iota
	// FormatText is the pair of two-column keV files for the simulator.
	FormatText
	// FormatXLSX is the full result table as a workbook.
	FormatXLSX

	// DefaultFormats is used when Writer.Formats is zero.
	DefaultFormats = FormatCSV | FormatText
)

// Writer saves a filtration result under Dir. Output names are
// <Prefix>_<stack tag><suffix>; an existing file is never overwritten, the
// name gets a unix time suffix instead.
type Writer struct {
	Dir     string
	Prefix  string
	Formats Format
	Now     func() time.Time
	Logger  logr.Logger
}

// Manifest describes one Write call. It is stored next to the outputs.
type Manifest struct {
	RunID   string          `yaml:"run_id"`
	Created time.Time       `yaml:"created"`
	Tag     string          `yaml:"tag"`
	Bins    int             `yaml:"bins"`
	Layers  []ManifestLayer `yaml:"layers"`
	Files   []string        `yaml:"files"`
}

// ManifestLayer is one stack layer in a [Manifest].
type ManifestLayer struct {
	Material    string  `yaml:"material"`
	ThicknessMM float64 `yaml:"thickness_mm"`
	Density     float64 `yaml:"density_g_cm3"`
}

// Write exports res, computed through stack, and returns the manifest.
func (w Writer) Write(res filter.Result, stack *material.Stack) (Manifest, error) {
	rows, err := Rows(res)
	if err != nil {
		return Manifest{}, err
	}

	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	formats := w.Formats
	if formats == 0 {
		formats = DefaultFormats
	}
	logger := w.Logger
	if logger.GetSink() == nil {
		logger = logr.Discard()
	}

	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return Manifest{}, fmt.Errorf("create output dir: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return Manifest{}, fmt.Errorf("run id: %w", err)
	}
	tag := StackTag(stack)
	m := Manifest{
		RunID:   id.String(),
		Created: now().UTC(),
		Tag:     tag,
		Bins:    len(rows),
	}
	if stack != nil {
		for _, rec := range stack.All() {
			m.Layers = append(m.Layers, ManifestLayer{
				Material:    rec.Name(),
				ThicknessMM: rec.ThicknessMM(),
				Density:     rec.Density(),
			})
		}
	}

	base := tag
	if w.Prefix != "" {
		base = w.Prefix + "_" + tag
	}

	save := func(suffix string, write func(path string) error) error {
		path, err := w.freeName(base+suffix, now)
		if err != nil {
			return err
		}
		if err := write(path); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		m.Files = append(m.Files, filepath.Base(path))
		logger.Info("wrote output", "path", path)
		return nil
	}

	if formats&FormatCSV != 0 {
		err := save(".csv", func(path string) error {
			var buf bytes.Buffer
			if err := WriteCSV(&buf, rows); err != nil {
				return err
			}
			return os.WriteFile(path, buf.Bytes(), 0o644)
		})
		if err != nil {
			return m, err
		}
	}

	if formats&FormatText != 0 {
		keV := make([]float64, len(rows))
		counts := make([]float64, len(rows))
		weights := make([]float64, len(rows))
		for i, r := range rows {
			keV[i], counts[i], weights[i] = r.EnergyKeV, r.CountsOut, r.WeightsOutSum1
		}
		texts := []struct {
			suffix, header string
			y              []float64
		}{
			{"_keV_counts.txt", "Energy_keV Counts_Out", counts},
			{"_keV_weights_sum1.txt", "Energy_keV Weights_Out_Sum1", weights},
		}
		for _, tx := range texts {
			err := save(tx.suffix, func(path string) error {
				var buf bytes.Buffer
				if err := WriteTwoColumn(&buf, tx.header, keV, tx.y); err != nil {
					return err
				}
				return os.WriteFile(path, buf.Bytes(), 0o644)
			})
			if err != nil {
				return m, err
			}
		}
	}

	if formats&FormatXLSX != 0 {
		if err := save(".xlsx", func(path string) error { return WriteXLSX(path, rows) }); err != nil {
			return m, err
		}
	}

	// The manifest lists itself.
	path, err := w.freeName(base+"_manifest.yaml", now)
	if err != nil {
		return m, err
	}
	m.Files = append(m.Files, filepath.Base(path))
	out, err := yaml.Marshal(m)
	if err != nil {
		return m, fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return m, fmt.Errorf("write %s: %w", path, err)
	}
	logger.Info("wrote manifest", "path", path, "runID", m.RunID)
	return m, nil
}

// freeName returns Dir/name, or Dir/<stem>_<unix><ext> (then _2, _3, ...)
// when the name is taken.
func (w Writer) freeName(name string, now func() time.Time) (string, error) {
	path := filepath.Join(w.Dir, name)
	ok, err := available(path)
	if err != nil || ok {
		return path, err
	}

	ext := filepath.Ext(name)
	stem := name[:len(name)-len(ext)] + "_" + strconv.FormatInt(now().Unix(), 10)
	for i := 1; ; i++ {
		candidate := stem
		if i > 1 {
			candidate += "_" + strconv.Itoa(i)
		}
		path = filepath.Join(w.Dir, candidate+ext)
		ok, err := available(path)
		if err != nil || ok {
			return path, err
		}
	}
}

func available(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, fs.ErrNotExist):
		return true, nil
	default:
		return false, err
	}
}
