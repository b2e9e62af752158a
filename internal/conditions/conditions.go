// Package conditions prefills simulator inputs from live weather. Providers
// report current observations for a location; the service fans out, averages
// what succeeded and maps the result onto an abiotic reading, defaulting the
// fields no weather source can measure.
package conditions

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNoProviders means the service was built without any providers,
	// usually because no API keys are configured.
	ErrNoProviders = errors.New("no conditions providers configured")

	// ErrNoObservations means every configured provider failed for the
	// requested location.
	ErrNoObservations = errors.New("no successful observations")
)

// Location is a logical place to observe. City must be set; coordinates are
// optional and let coordinate-based providers skip geocoding.
type Location struct {
	City    string   `json:"city"`
	Country string   `json:"country,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
}

// Key returns a canonical string for indexing this location.
func (l Location) Key() string {
	return l.City + ":" + l.Country
}

// Observation is one provider's normalized current-weather reading. PrecipMM
// is the precipitation over roughly the last hour.
type Observation struct {
	Provider     string    `json:"provider"`
	ObservedAt   time.Time `json:"observedAt"`
	TemperatureC float64   `json:"temperatureC"`
	HumidityPct  float64   `json:"humidityPercent"`
	PrecipMM     float64   `json:"precipMm"`
}

// Contribution names a provider that fed an aggregate.
type Contribution struct {
	Provider   string    `json:"provider"`
	ObservedAt time.Time `json:"observedAt"`
}

// Provider abstracts a current-weather source.
type Provider interface {
	Name() string
	Current(ctx context.Context, loc Location) (Observation, error)
}
