// Package classify turns continuous scores into qualitative categories using
// declarative band tables. Bands are data, not branching logic: a table is an
// ordered list of (lower bound, label) pairs over a fixed scale, validated at
// construction so gaps and overlaps are configuration defects caught at
// startup rather than per call.
package classify

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTable marks a malformed band table (a configuration defect;
	// callers should treat it as fatal during initialization).
	ErrInvalidTable = errors.New("invalid band table")

	// ErrNoBand is returned when a score falls below every band. It cannot
	// happen for a validated table and a score within the table's scale.
	ErrNoBand = errors.New("no band matches score")
)

// Band couples a lower bound with its category label. A score belongs to the
// band when it meets or exceeds the bound and no higher band claimed it first.
type Band struct {
	Lower float64 `json:"lower"`
	Label string  `json:"label"`
}

// Table is an immutable, validated classification band table over [Min, Max].
type Table struct {
	min   float64
	max   float64
	bands []Band
}

// NewTable validates and builds a band table for the scale [min, max].
// Bands must be ordered by strictly descending lower bound, stay within the
// scale, and the last band's bound must equal min so the bands partition the
// full scale with no gap at the bottom.
func NewTable(min, max float64, bands []Band) (*Table, error) {
	if min >= max {
		return nil, fmt.Errorf("%w: scale [%v, %v] is empty", ErrInvalidTable, min, max)
	}
	if len(bands) == 0 {
		return nil, fmt.Errorf("%w: no bands defined", ErrInvalidTable)
	}

	for i, b := range bands {
		if b.Label == "" {
			return nil, fmt.Errorf("%w: band %d has an empty label", ErrInvalidTable, i)
		}
		if b.Lower < min || b.Lower > max {
			return nil, fmt.Errorf("%w: band %q bound %v outside scale [%v, %v]", ErrInvalidTable, b.Label, b.Lower, min, max)
		}
		if i > 0 && b.Lower >= bands[i-1].Lower {
			return nil, fmt.Errorf("%w: bounds must strictly descend, got %v after %v", ErrInvalidTable, b.Lower, bands[i-1].Lower)
		}
	}

	if last := bands[len(bands)-1].Lower; last != min {
		return nil, fmt.Errorf("%w: lowest bound %v does not cover scale minimum %v", ErrInvalidTable, last, min)
	}

	t := &Table{min: min, max: max, bands: make([]Band, len(bands))}
	copy(t.bands, bands)
	return t, nil
}

// MustTable is NewTable for static tables; it panics on a malformed table.
func MustTable(min, max float64, bands []Band) *Table {
	t, err := NewTable(min, max, bands)
	if err != nil {
		panic(err)
	}
	return t
}

// Classify returns the label of the first band, highest to lowest, whose
// lower bound the score meets or exceeds.
func (t *Table) Classify(score float64) (string, error) {
	for _, b := range t.bands {
		if score >= b.Lower {
			return b.Label, nil
		}
	}
	return "", fmt.Errorf("%w: %v below scale minimum %v", ErrNoBand, score, t.min)
}

// Bands returns a copy of the table's bands in evaluation order.
func (t *Table) Bands() []Band {
	out := make([]Band, len(t.bands))
	copy(out, t.bands)
	return out
}

// Scale returns the closed interval the table covers.
func (t *Table) Scale() (min, max float64) {
	return t.min, t.max
}
