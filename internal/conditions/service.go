package conditions

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/greenlab/ecotools/internal/common"
	"github.com/greenlab/ecotools/internal/eco"
)

// Defaults for the reading fields no weather provider can observe.
const (
	DefaultCO2PPM = 415.0
	DefaultSoilPH = 6.8

	// Monthly rainfall is estimated from precipitation over the last hour.
	hoursPerMonth = 24.0 * 30.0
)

// Prefill is a simulator reading assembled from live conditions. Defaulted
// lists the reading fields (by wire name) that came from defaults rather than
// measurements.
type Prefill struct {
	Reading    eco.Reading    `json:"reading"`
	ObservedAt time.Time      `json:"observedAt"`
	Defaulted  []string       `json:"defaulted"`
	Sources    []Contribution `json:"sources"`
}

// Service fans out to weather providers and turns their observations into
// simulator readings.
type Service struct {
	providers []Provider
	timeout   time.Duration
}

// NewService builds a service over the given providers. The timeout bounds
// each prefill's outbound calls.
func NewService(providers []Provider, timeout time.Duration) *Service {
	return &Service{providers: providers, timeout: timeout}
}

// Providers returns the configured provider names.
func (s *Service) Providers() []string {
	names := make([]string, 0, len(s.providers))
	for _, p := range s.providers {
		names = append(names, p.Name())
	}
	return names
}

// Prefill queries every provider concurrently, averages the successful
// observations and maps them onto a reading. Partial success is fine; only
// a full miss is an error.
func (s *Service) Prefill(ctx context.Context, loc Location) (Prefill, error) {
	if len(s.providers) == 0 {
		return Prefill{}, ErrNoProviders
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		observations []Observation
	)
	for _, p := range s.providers {
		p := p
		wg.Add(1)
		go func() {
			defer wg.Done()

			o, err := p.Current(ctx, loc)
			if err != nil {
				// Log and continue; partial success still prefills.
				log.Printf("provider %s failed for %s: %v", p.Name(), loc.Key(), err)
				return
			}

			mu.Lock()
			observations = append(observations, o)
			mu.Unlock()
		}()
	}
	wg.Wait()

	avg, sources, err := Aggregate(observations)
	if err != nil {
		return Prefill{}, err
	}

	reading := eco.Reading{
		TemperatureC: common.Clamp(avg.TemperatureC, eco.TemperatureMin, eco.TemperatureMax),
		HumidityPct:  common.Clamp(avg.HumidityPct, eco.HumidityMin, eco.HumidityMax),
		RainfallMM:   common.Clamp(avg.PrecipMM*hoursPerMonth, eco.RainfallMin, eco.RainfallMax),
		CO2PPM:       DefaultCO2PPM,
		SoilPH:       DefaultSoilPH,
		Disturbance:  eco.DisturbanceLow,
	}

	return Prefill{
		Reading:    reading,
		ObservedAt: avg.ObservedAt,
		Defaulted:  []string{"co2Ppm", "soilPh", "disturbance"},
		Sources:    sources,
	}, nil
}
