package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/kelvins/geocoder"
	"github.com/sony/gobreaker"

	"github.com/greenlab/ecotools/internal/conditions"
)

// OpenMeteoProvider reads current conditions from Open-Meteo. The API is
// keyless but coordinate-based, so city-only locations are resolved through
// the geocoder once and cached.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker

	mu     sync.Mutex
	coords map[string]coordinate
}

type coordinate struct {
	lat float64
	lon float64
}

// NewOpenMeteoProvider builds the provider. geocoderAPIKey may be empty if
// every location will carry coordinates.
func NewOpenMeteoProvider(client *http.Client, geocoderAPIKey string) *OpenMeteoProvider {
	// The geocoder library is configured through a package global.
	if geocoderAPIKey != "" {
		geocoder.ApiKey = geocoderAPIKey
	}

	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: "https://api.open-meteo.com/v1/forecast",
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff(),
		},
		circuit: newCircuitBreaker("openmeteo"),
		coords:  make(map[string]coordinate),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) resolve(loc conditions.Location) (coordinate, error) {
	if loc.Lat != nil && loc.Lon != nil {
		return coordinate{lat: *loc.Lat, lon: *loc.Lon}, nil
	}

	p.mu.Lock()
	c, ok := p.coords[loc.Key()]
	p.mu.Unlock()
	if ok {
		return c, nil
	}

	if geocoder.ApiKey == "" {
		return coordinate{}, fmt.Errorf("openmeteo needs coordinates or a geocoder api key")
	}
	resolved, err := geocoder.Geocoding(geocoder.Address{City: loc.City, Country: loc.Country})
	if err != nil {
		return coordinate{}, fmt.Errorf("geocoding %s: %w", loc.Key(), err)
	}

	c = coordinate{lat: resolved.Latitude, lon: resolved.Longitude}
	p.mu.Lock()
	p.coords[loc.Key()] = c
	p.mu.Unlock()
	return c, nil
}

func (p *OpenMeteoProvider) Current(ctx context.Context, loc conditions.Location) (conditions.Observation, error) {
	coord, err := p.resolve(loc)
	if err != nil {
		return conditions.Observation{}, err
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", coord.lat))
		values.Set("longitude", fmt.Sprintf("%f", coord.lon))
		values.Set("current", "temperature_2m,relative_humidity_2m,precipitation")
		values.Set("timeformat", "unixtime")

		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return conditions.Observation{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Current struct {
			Time               int64   `json:"time"`
			Temperature2M      float64 `json:"temperature_2m"`
			RelativeHumidity2M float64 `json:"relative_humidity_2m"`
			Precipitation      float64 `json:"precipitation"`
		} `json:"current"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return conditions.Observation{}, err
	}

	ts := time.Unix(payload.Current.Time, 0).UTC()
	if payload.Current.Time == 0 {
		ts = time.Now().UTC()
	}

	return conditions.Observation{
		Provider:     p.name,
		ObservedAt:   ts,
		TemperatureC: payload.Current.Temperature2M,
		HumidityPct:  payload.Current.RelativeHumidity2M,
		PrecipMM:     payload.Current.Precipitation,
	}, nil
}
