// Package report renders a simulation outcome as a plain-text project report.
// It only formats values the engine already produced.
package report

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/greenlab/ecotools/internal/eco"
)

// Params collects everything one report needs.
type Params struct {
	GeneratedAt    time.Time
	Reading        eco.Reading
	Result         eco.Result
	Interpretation eco.Interpretation
}

const text = `Eco-Interact: Biotic-Abiotic Interaction Simulation Report
----------------------------------------------------------
Date: {{.GeneratedAt.Format "2006-01-02"}}

1. Objective
To simulate how abiotic factors (temperature, CO2 concentration, rainfall,
humidity, soil pH and human disturbance) influence biotic components (plant
growth and animal survival) and overall ecosystem stability.

2. Simulation Parameters
Temperature (C):   {{printf "%.2f" .Reading.TemperatureC}}
CO2 (ppm):         {{printf "%.2f" .Reading.CO2PPM}}
Rainfall (mm/mo):  {{printf "%.2f" .Reading.RainfallMM}}
Humidity (%):      {{printf "%.2f" .Reading.HumidityPct}}
Soil pH:           {{printf "%.2f" .Reading.SoilPH}}
Human disturbance: {{.Reading.Disturbance}}

3. Numeric Results
Plant Growth Index:              {{printf "%.2f" .Result.PlantGrowthIndex}}
Animal Survival Probability (%): {{printf "%.2f" .Result.AnimalSurvivalProbability}}
Ecosystem Stability:             {{printf "%.2f" .Result.EcosystemStability}}

4. Interpretation
Plants ({{.Interpretation.Plant.Label}}): {{.Interpretation.Plant.Message}}
Animals ({{.Interpretation.Animal.Label}}): {{.Interpretation.Animal.Message}}
Stability ({{.Interpretation.Stability.Label}}): {{.Interpretation.Stability.Message}}

5. Methodology
- Optimal ranges are defined for generic plant and animal responses.
- Indices combine weighted sub-scores with distance-from-optimum penalties,
  scaled to 0-100.
- Human disturbance applies a multiplicative penalty to animal survival and
  an additive penalty to ecosystem stability.

6. Limitations
- The model is illustrative and generic; species-specific responses vary.
- No stochastic population dynamics or spatial modeling is included.
`

var reportTmpl = template.Must(template.New("report").Parse(text))

// Render produces the report document for one simulation.
func Render(p Params) (string, error) {
	var b strings.Builder
	if err := reportTmpl.Execute(&b, p); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return b.String(), nil
}
