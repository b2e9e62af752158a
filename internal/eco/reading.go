// Package eco models the interaction between abiotic conditions and biotic
// responses: a plant growth index, an animal survival probability, and an
// overall ecosystem stability score, all on a 0-100 scale.
package eco

import (
	"fmt"
	"strings"

	"github.com/greenlab/ecotools/internal/common"
)

// Input domains. Callers are expected to keep readings inside these ranges;
// the engine clamps defensively so every scoring function stays total.
const (
	TemperatureMin = -10.0
	TemperatureMax = 50.0
	CO2Min         = 250.0
	CO2Max         = 1000.0
	RainfallMin    = 0.0
	RainfallMax    = 1000.0
	HumidityMin    = 0.0
	HumidityMax    = 100.0
	SoilPHMin      = 3.5
	SoilPHMax      = 9.0
)

// Disturbance is the human disturbance level, a closed three-valued scale.
type Disturbance int

const (
	DisturbanceLow Disturbance = iota
	DisturbanceModerate
	DisturbanceHigh
)

var disturbanceNames = [...]string{"Low", "Moderate", "High"}

// survivalFactors scale animal survival multiplicatively per disturbance level.
var survivalFactors = [...]float64{1.0, 0.8, 0.6}

// stabilityPenalties are subtracted from ecosystem stability per disturbance level.
var stabilityPenalties = [...]float64{0, 10, 25}

// ParseDisturbance maps the wire representation onto the enum. Matching is
// case-insensitive; display names stay capitalized.
func ParseDisturbance(s string) (Disturbance, error) {
	for i, name := range disturbanceNames {
		if strings.EqualFold(s, name) {
			return Disturbance(i), nil
		}
	}
	return DisturbanceLow, fmt.Errorf("unknown disturbance level %q", s)
}

func (d Disturbance) String() string {
	if d < DisturbanceLow || d > DisturbanceHigh {
		return fmt.Sprintf("Disturbance(%d)", int(d))
	}
	return disturbanceNames[d]
}

// valid reports whether d is one of the three declared levels.
func (d Disturbance) valid() bool {
	return d >= DisturbanceLow && d <= DisturbanceHigh
}

// SurvivalFactor is the multiplicative penalty applied to animal survival.
func (d Disturbance) SurvivalFactor() float64 {
	if !d.valid() {
		return survivalFactors[DisturbanceLow]
	}
	return survivalFactors[d]
}

// StabilityPenalty is the additive penalty applied to ecosystem stability.
func (d Disturbance) StabilityPenalty() float64 {
	if !d.valid() {
		return stabilityPenalties[DisturbanceLow]
	}
	return stabilityPenalties[d]
}

// MarshalText renders the disturbance level as its display name.
func (d Disturbance) MarshalText() ([]byte, error) {
	if !d.valid() {
		return nil, fmt.Errorf("unknown disturbance level %d", int(d))
	}
	return []byte(disturbanceNames[d]), nil
}

// UnmarshalText parses a disturbance level from its display name.
func (d *Disturbance) UnmarshalText(text []byte) error {
	parsed, err := ParseDisturbance(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Reading is one immutable record of abiotic inputs. It is constructed fresh
// for every evaluation and never persisted.
type Reading struct {
	TemperatureC float64     `json:"temperatureC"`
	CO2PPM       float64     `json:"co2Ppm"`
	RainfallMM   float64     `json:"rainfallMm"` // monthly total
	HumidityPct  float64     `json:"humidityPercent"`
	SoilPH       float64     `json:"soilPh"`
	Disturbance  Disturbance `json:"disturbance"`
}

// Clamped returns a copy of the reading with every numeric field constrained
// to its declared domain.
func (r Reading) Clamped() Reading {
	r.TemperatureC = common.Clamp(r.TemperatureC, TemperatureMin, TemperatureMax)
	r.CO2PPM = common.Clamp(r.CO2PPM, CO2Min, CO2Max)
	r.RainfallMM = common.Clamp(r.RainfallMM, RainfallMin, RainfallMax)
	r.HumidityPct = common.Clamp(r.HumidityPct, HumidityMin, HumidityMax)
	r.SoilPH = common.Clamp(r.SoilPH, SoilPHMin, SoilPHMax)
	if !r.Disturbance.valid() {
		r.Disturbance = DisturbanceLow
	}
	return r
}
