package eco

import (
	"errors"
	"fmt"
)

// Parameter identifies one abiotic input for a sensitivity sweep.
type Parameter int

const (
	ParamTemperature Parameter = iota
	ParamCO2
	ParamRainfall
	ParamHumidity
	ParamSoilPH
)

var parameterNames = [...]string{"temperature", "co2", "rainfall", "humidity", "soilPh"}

// Sweep ranges per parameter. Temperature and rainfall deliberately sweep a
// narrower range than their input domains (the plotted window of interest).
var sweepRanges = [...][2]float64{
	{-5, 45},
	{250, 1000},
	{0, 800},
	{0, 100},
	{3.5, 9.0},
}

// ParseParameter maps the wire representation onto the enum.
func ParseParameter(s string) (Parameter, error) {
	for i, name := range parameterNames {
		if s == name {
			return Parameter(i), nil
		}
	}
	return ParamTemperature, fmt.Errorf("unknown sweep parameter %q", s)
}

func (p Parameter) String() string {
	if p < ParamTemperature || p > ParamSoilPH {
		return fmt.Sprintf("Parameter(%d)", int(p))
	}
	return parameterNames[p]
}

// SweepPoint is one sample of the sensitivity curve.
type SweepPoint struct {
	Value            float64 `json:"value"`
	PlantGrowthIndex float64 `json:"plantGrowthIndex"`
}

// Sweep bounds.
const (
	DefaultSweepPoints = 60
	MinSweepPoints     = 2
	MaxSweepPoints     = 500
)

// ErrSweepPoints is returned when the requested sample count is out of bounds.
var ErrSweepPoints = errors.New("sweep points out of range")

// Sweep recomputes the plant growth index while varying one parameter across
// its sweep range at points evenly spaced values, holding every other input
// of the base reading fixed. points <= 0 selects DefaultSweepPoints.
func Sweep(base Reading, p Parameter, points int) ([]SweepPoint, error) {
	if p < ParamTemperature || p > ParamSoilPH {
		return nil, fmt.Errorf("unknown sweep parameter %d", int(p))
	}
	if points <= 0 {
		points = DefaultSweepPoints
	}
	if points < MinSweepPoints || points > MaxSweepPoints {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrSweepPoints, points, MinSweepPoints, MaxSweepPoints)
	}

	lo, hi := sweepRanges[p][0], sweepRanges[p][1]
	step := (hi - lo) / float64(points-1)

	out := make([]SweepPoint, 0, points)
	for i := 0; i < points; i++ {
		x := lo + float64(i)*step

		r := base
		switch p {
		case ParamTemperature:
			r.TemperatureC = x
		case ParamCO2:
			r.CO2PPM = x
		case ParamRainfall:
			r.RainfallMM = x
		case ParamHumidity:
			r.HumidityPct = x
		case ParamSoilPH:
			r.SoilPH = x
		}

		out = append(out, SweepPoint{Value: x, PlantGrowthIndex: PlantGrowthIndex(r)})
	}
	return out, nil
}
