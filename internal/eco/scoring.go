package eco

import (
	"math"

	"github.com/greenlab/ecotools/internal/common"
)

// Result bundles the three biotic indices computed from one reading.
type Result struct {
	PlantGrowthIndex          float64 `json:"plantGrowthIndex"`
	AnimalSurvivalProbability float64 `json:"animalSurvivalProbability"`
	EcosystemStability        float64 `json:"ecosystemStability"`
}

// Sub-score weights for the plant growth index; they sum to 1.0.
const (
	plantWeightTemperature = 0.28
	plantWeightCO2         = 0.18
	plantWeightRainfall    = 0.22
	plantWeightHumidity    = 0.17
	plantWeightSoilPH      = 0.15
)

// PlantGrowthIndex scores how well a generic plant species grows under the
// given abiotic conditions, on a 0-100 scale.
//
// Each factor contributes a 0-100 sub-score that falls off linearly with the
// distance from its optimum (temperature 25 C, rainfall band 50-175 mm,
// humidity 60%, soil pH 7.0); CO2 contributes proportionally across its
// 250-1000 ppm domain. The index is the fixed convex combination of the five
// sub-scores, clamped to [0, 100].
func PlantGrowthIndex(r Reading) float64 {
	r = r.Clamped()

	t := math.Max(0, 100-math.Abs(r.TemperatureC-25)*4)
	c := common.Clamp((r.CO2PPM-250)/(1000-250)*100, 0, 100)
	rain := math.Max(0, 100-(math.Max(0, r.RainfallMM-175)+math.Max(0, 50-r.RainfallMM))*0.25)
	h := math.Max(0, 100-math.Abs(r.HumidityPct-60)*1.5)
	ph := math.Max(0, 100-math.Abs(r.SoilPH-7.0)*25)

	idx := plantWeightTemperature*t +
		plantWeightCO2*c +
		plantWeightRainfall*rain +
		plantWeightHumidity*h +
		plantWeightSoilPH*ph
	return common.Clamp(idx, 0, 100)
}

// AnimalSurvivalProbability scores animal survival under the given conditions
// as a 0-100 percentage.
//
// Temperature (optimum 22 C), rainfall (optimum 120 mm) and humidity
// (optimum 55%) form the habitat climate base. Vegetation availability
// scales the base between 0.5 and 1.0 as plantIndex rises, and the
// disturbance level applies its multiplicative penalty last.
func AnimalSurvivalProbability(r Reading, plantIndex float64) float64 {
	r = r.Clamped()
	plantIndex = common.Clamp(plantIndex, 0, 100)

	t := math.Max(0, 100-math.Abs(r.TemperatureC-22)*3)
	rain := math.Max(0, 100-math.Abs(r.RainfallMM-120)*0.3)
	h := math.Max(0, 100-math.Abs(r.HumidityPct-55)*1.2)

	base := 0.5*(t+rain)*0.01 + 0.5*h*0.01
	base *= 0.5 + 0.5*(plantIndex/100)

	prob := base * r.Disturbance.SurvivalFactor() * 100
	return common.Clamp(prob, 0, 100)
}

// EcosystemStability is the mean of the plant and animal indices minus the
// disturbance level's additive penalty, clamped to [0, 100].
func EcosystemStability(plantIndex, animalProb float64, d Disturbance) float64 {
	plantIndex = common.Clamp(plantIndex, 0, 100)
	animalProb = common.Clamp(animalProb, 0, 100)

	stab := (plantIndex+animalProb)/2 - d.StabilityPenalty()
	return common.Clamp(stab, 0, 100)
}

// Evaluate runs the full model for one reading: the plant index feeds the
// animal probability, and both feed stability.
func Evaluate(r Reading) Result {
	plant := PlantGrowthIndex(r)
	animal := AnimalSurvivalProbability(r, plant)
	return Result{
		PlantGrowthIndex:          plant,
		AnimalSurvivalProbability: animal,
		EcosystemStability:        EcosystemStability(plant, animal, r.Clamped().Disturbance),
	}
}
