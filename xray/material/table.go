package material

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Column names expected in attenuation table sources.
const (
	ColumnEnergy      = "Energy"
	ColumnMAC         = "MAC"
	ColumnCoherentMAC = "Coherent-Corrected MAC"
)

var errInvalidTable = errors.New("invalid attenuation table")

// Table is a tabulated mass-attenuation dataset. Energies are in MeV and
// attenuation coefficients in cm^2/g. Repeated energies mark absorption edges
// and are kept in table order.
type Table struct {
	Energy      []float64
	MAC         []float64
	CoherentMAC []float64
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Energy) }

// Empty reports whether the table has no rows.
func (t Table) Empty() bool { return len(t.Energy) == 0 }

// Clone returns a deep copy of t.
func (t Table) Clone() Table {
	return Table{
		Energy:      slices.Clone(t.Energy),
		MAC:         slices.Clone(t.MAC),
		CoherentMAC: slices.Clone(t.CoherentMAC),
	}
}

// Validate checks column lengths and value ranges. CoherentMAC may be nil.
func (t Table) Validate() error {
	if len(t.MAC) != len(t.Energy) {
		return fmt.Errorf("%w: %d energies, %d MAC values", errInvalidTable, len(t.Energy), len(t.MAC))
	}
	if t.CoherentMAC != nil && len(t.CoherentMAC) != len(t.Energy) {
		return fmt.Errorf("%w: %d energies, %d coherent MAC values", errInvalidTable, len(t.Energy), len(t.CoherentMAC))
	}
	for i, e := range t.Energy {
		if math.IsNaN(e) || math.IsInf(e, 0) || e < 0 {
			return fmt.Errorf("%w: row %d energy %v", errInvalidTable, i, e)
		}
		if v := t.MAC[i]; math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: row %d MAC %v", errInvalidTable, i, v)
		}
	}
	return nil
}
