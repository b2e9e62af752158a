package conditions

import "time"

// Aggregate combines provider observations into one averaged observation.
// Numeric fields are averaged; the newest timestamp wins.
func Aggregate(observations []Observation) (Observation, []Contribution, error) {
	if len(observations) == 0 {
		return Observation{}, nil, ErrNoObservations
	}

	var (
		sumTemp     float64
		sumHumidity float64
		sumPrecip   float64
		newest      time.Time
	)
	contributions := make([]Contribution, 0, len(observations))

	for _, o := range observations {
		sumTemp += o.TemperatureC
		sumHumidity += o.HumidityPct
		sumPrecip += o.PrecipMM
		if o.ObservedAt.After(newest) {
			newest = o.ObservedAt
		}
		contributions = append(contributions, Contribution{Provider: o.Provider, ObservedAt: o.ObservedAt})
	}

	if newest.IsZero() {
		newest = time.Now().UTC()
	}

	n := float64(len(observations))
	return Observation{
		Provider:     "aggregate",
		ObservedAt:   newest,
		TemperatureC: sumTemp / n,
		HumidityPct:  sumHumidity / n,
		PrecipMM:     sumPrecip / n,
	}, contributions, nil
}
