// Package water scores aquatic health from a small set of field measurements.
// Each factor contributes its full weight while the measurement sits inside an
// optimal band and linearly less as it drifts away, so the weight table, not
// branching code, defines what healthy water looks like.
package water

import (
	"errors"
	"fmt"
	"math"

	"github.com/greenlab/ecotools/internal/classify"
	"github.com/greenlab/ecotools/internal/common"
)

// Measurement domains accepted by the scorer. Out-of-domain values are clamped
// before scoring; the HTTP layer rejects them outright.
const (
	PHMin = 0.0
	PHMax = 14.0

	DissolvedOxygenMin = 0.0
	DissolvedOxygenMax = 14.0

	TemperatureMin = 0.0
	TemperatureMax = 40.0

	NitratesMin = 0.0
	NitratesMax = 100.0
)

// ScaleMax is the top of the health score scale.
const ScaleMax = 10.0

// Factor names understood by the scorer.
const (
	FactorPH              = "ph"
	FactorDissolvedOxygen = "dissolvedOxygen"
	FactorTemperature     = "temperature"
	FactorNitrates        = "nitrates"
)

// Health score categories.
const (
	CategoryExcellent = "Excellent"
	CategoryGood      = "Good"
	CategoryPoor      = "Poor"
)

var categoryMessages = map[string]string{
	CategoryExcellent: "Water quality is excellent and supports a healthy aquatic ecosystem.",
	CategoryGood:      "Water quality is acceptable, though some factors sit outside their optimal bands.",
	CategoryPoor:      "Water quality is poor and likely stresses aquatic life. Review the lowest scoring factors.",
}

// ErrInvalidTable marks a malformed weight table, a configuration defect
// callers should treat as fatal during initialization.
var ErrInvalidTable = errors.New("invalid weight table")

// Sample is one set of water measurements.
type Sample struct {
	PH                 float64 `json:"ph"`
	DissolvedOxygenMgL float64 `json:"dissolvedOxygenMgL"`
	TemperatureC       float64 `json:"temperatureC"`
	NitratesMgL        float64 `json:"nitratesMgL"`
}

// Clamped returns a copy of the sample with every measurement forced into its
// domain.
func (s Sample) Clamped() Sample {
	s.PH = common.Clamp(s.PH, PHMin, PHMax)
	s.DissolvedOxygenMgL = common.Clamp(s.DissolvedOxygenMgL, DissolvedOxygenMin, DissolvedOxygenMax)
	s.TemperatureC = common.Clamp(s.TemperatureC, TemperatureMin, TemperatureMax)
	s.NitratesMgL = common.Clamp(s.NitratesMgL, NitratesMin, NitratesMax)
	return s
}

func (s Sample) value(name string) (float64, bool) {
	switch name {
	case FactorPH:
		return s.PH, true
	case FactorDissolvedOxygen:
		return s.DissolvedOxygenMgL, true
	case FactorTemperature:
		return s.TemperatureC, true
	case FactorNitrates:
		return s.NitratesMgL, true
	}
	return 0, false
}

// Factor weighs one measurement. The weight's magnitude sets the factor's
// influence on the total; a negative sign records that high readings degrade
// quality (the optimal band already points at the healthy end, so scoring
// uses the magnitude only). Decay is the distance beyond either band edge at
// which the contribution reaches zero.
type Factor struct {
	Name        string  `json:"name"`
	Weight      float64 `json:"weight"`
	OptimalLow  float64 `json:"optimalLow"`
	OptimalHigh float64 `json:"optimalHigh"`
	Decay       float64 `json:"decay"`
}

// WeightTable is an ordered list of scoring factors.
type WeightTable []Factor

// DefaultTable returns the standard freshwater factor set.
func DefaultTable() WeightTable {
	return WeightTable{
		{Name: FactorPH, Weight: 3.0, OptimalLow: 6.5, OptimalHigh: 8.5, Decay: 1.5},
		{Name: FactorDissolvedOxygen, Weight: 3.0, OptimalLow: 5.0, OptimalHigh: 11.0, Decay: 3.0},
		{Name: FactorTemperature, Weight: 2.0, OptimalLow: 10.0, OptimalHigh: 25.0, Decay: 15.0},
		{Name: FactorNitrates, Weight: -2.0, OptimalLow: 0.0, OptimalHigh: 10.0, Decay: 20.0},
	}
}

// FactorScore is one factor's share of an assessment.
type FactorScore struct {
	Name          string  `json:"name"`
	Value         float64 `json:"value"`
	Contribution  float64 `json:"contribution"`
	Possible      float64 `json:"possible"`
	InOptimalBand bool    `json:"inOptimalBand"`
}

// Category pairs a band label with its guidance message.
type Category struct {
	Label   string `json:"label"`
	Message string `json:"message"`
}

// Assessment is a scored sample with its per-factor breakdown.
type Assessment struct {
	Score    float64       `json:"score"`
	Category Category      `json:"category"`
	Factors  []FactorScore `json:"factors"`
}

// Scorer applies a validated weight table to samples.
type Scorer struct {
	table        WeightTable
	sumAbsWeight float64
	bands        *classify.Table
}

// NewScorer validates the weight table and builds a scorer. Factor names must
// be known and unique, decays positive, optimal bands ordered, and the
// absolute weights must not sum to zero (they normalize the total).
func NewScorer(table WeightTable) (*Scorer, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: no factors", ErrInvalidTable)
	}

	seen := make(map[string]bool, len(table))
	var sum float64
	for _, f := range table {
		if _, ok := (Sample{}).value(f.Name); !ok {
			return nil, fmt.Errorf("%w: unknown factor %q", ErrInvalidTable, f.Name)
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("%w: duplicate factor %q", ErrInvalidTable, f.Name)
		}
		seen[f.Name] = true
		if f.Decay <= 0 {
			return nil, fmt.Errorf("%w: factor %q decay must be positive, got %v", ErrInvalidTable, f.Name, f.Decay)
		}
		if f.OptimalLow > f.OptimalHigh {
			return nil, fmt.Errorf("%w: factor %q optimal band [%v, %v] is inverted", ErrInvalidTable, f.Name, f.OptimalLow, f.OptimalHigh)
		}
		sum += math.Abs(f.Weight)
	}
	if sum == 0 {
		return nil, fmt.Errorf("%w: absolute weights sum to zero", ErrInvalidTable)
	}

	bands, err := classify.NewTable(0, ScaleMax, []classify.Band{
		{Lower: 8, Label: CategoryExcellent},
		{Lower: 5, Label: CategoryGood},
		{Lower: 0, Label: CategoryPoor},
	})
	if err != nil {
		return nil, err
	}

	t := make(WeightTable, len(table))
	copy(t, table)
	return &Scorer{table: t, sumAbsWeight: sum, bands: bands}, nil
}

// Score assesses one sample. A sample with every measurement inside its
// optimal band scores exactly ScaleMax.
func (s *Scorer) Score(sample Sample) Assessment {
	sample = sample.Clamped()

	factors := make([]FactorScore, 0, len(s.table))
	var total float64
	for _, f := range s.table {
		v, _ := sample.value(f.Name)

		var dist float64
		switch {
		case v < f.OptimalLow:
			dist = f.OptimalLow - v
		case v > f.OptimalHigh:
			dist = v - f.OptimalHigh
		}

		closeness := common.Clamp(1-dist/f.Decay, 0, 1)
		contrib := math.Abs(f.Weight) * closeness
		total += contrib

		factors = append(factors, FactorScore{
			Name:          f.Name,
			Value:         v,
			Contribution:  contrib,
			Possible:      math.Abs(f.Weight),
			InOptimalBand: dist == 0,
		})
	}

	score := common.Clamp(total/s.sumAbsWeight*ScaleMax, 0, ScaleMax)
	// Cannot fail: the score is clamped onto a validated table's scale.
	label, _ := s.bands.Classify(score)

	return Assessment{
		Score:    score,
		Category: Category{Label: label, Message: categoryMessages[label]},
		Factors:  factors,
	}
}

// Table returns a copy of the scorer's weight table.
func (s *Scorer) Table() WeightTable {
	out := make(WeightTable, len(s.table))
	copy(out, s.table)
	return out
}
