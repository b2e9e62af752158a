package conditions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenlab/ecotools/internal/eco"
)

type fakeProvider struct {
	name string
	obs  Observation
	err  error
}

func (f fakeProvider) Name() string { return f.name }

func (f fakeProvider) Current(_ context.Context, _ Location) (Observation, error) {
	if f.err != nil {
		return Observation{}, f.err
	}
	return f.obs, nil
}

func TestPrefillAveragesAndDefaults(t *testing.T) {
	ts := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
	svc := NewService([]Provider{
		fakeProvider{name: "a", obs: Observation{Provider: "a", ObservedAt: ts, TemperatureC: 20, HumidityPct: 50, PrecipMM: 0.1}},
		fakeProvider{name: "b", obs: Observation{Provider: "b", ObservedAt: ts.Add(time.Minute), TemperatureC: 30, HumidityPct: 70, PrecipMM: 0.3}},
	}, time.Second)

	p, err := svc.Prefill(context.Background(), Location{City: "Pune", Country: "IN"})
	require.NoError(t, err)

	assert.InDelta(t, 25.0, p.Reading.TemperatureC, 1e-9)
	assert.InDelta(t, 60.0, p.Reading.HumidityPct, 1e-9)
	// 0.2 mm in the last hour extrapolates to 144 mm over a month.
	assert.InDelta(t, 144.0, p.Reading.RainfallMM, 1e-9)

	assert.Equal(t, DefaultCO2PPM, p.Reading.CO2PPM)
	assert.Equal(t, DefaultSoilPH, p.Reading.SoilPH)
	assert.Equal(t, eco.DisturbanceLow, p.Reading.Disturbance)
	assert.Equal(t, []string{"co2Ppm", "soilPh", "disturbance"}, p.Defaulted)

	assert.Equal(t, ts.Add(time.Minute), p.ObservedAt)
	assert.Len(t, p.Sources, 2)
}

func TestPrefillSurvivesPartialFailure(t *testing.T) {
	svc := NewService([]Provider{
		fakeProvider{name: "dead", err: errors.New("connection refused")},
		fakeProvider{name: "alive", obs: Observation{Provider: "alive", ObservedAt: time.Now().UTC(), TemperatureC: 22, HumidityPct: 55, PrecipMM: 0}},
	}, time.Second)

	p, err := svc.Prefill(context.Background(), Location{City: "Pune"})
	require.NoError(t, err)

	assert.Equal(t, 22.0, p.Reading.TemperatureC)
	require.Len(t, p.Sources, 1)
	assert.Equal(t, "alive", p.Sources[0].Provider)
}

func TestPrefillFailsWhenAllProvidersFail(t *testing.T) {
	svc := NewService([]Provider{
		fakeProvider{name: "a", err: errors.New("boom")},
		fakeProvider{name: "b", err: errors.New("boom")},
	}, time.Second)

	_, err := svc.Prefill(context.Background(), Location{City: "Pune"})
	assert.ErrorIs(t, err, ErrNoObservations)
}

func TestPrefillFailsWithoutProviders(t *testing.T) {
	svc := NewService(nil, time.Second)
	_, err := svc.Prefill(context.Background(), Location{City: "Pune"})
	assert.ErrorIs(t, err, ErrNoProviders)
}

func TestPrefillClampsOntoReadingDomains(t *testing.T) {
	svc := NewService([]Provider{
		fakeProvider{name: "extreme", obs: Observation{
			Provider:     "extreme",
			ObservedAt:   time.Now().UTC(),
			TemperatureC: 61,
			HumidityPct:  130,
			PrecipMM:     10, // extrapolates to 7200 mm/month
		}},
	}, time.Second)

	p, err := svc.Prefill(context.Background(), Location{City: "Atacama"})
	require.NoError(t, err)

	assert.Equal(t, eco.TemperatureMax, p.Reading.TemperatureC)
	assert.Equal(t, eco.HumidityMax, p.Reading.HumidityPct)
	assert.Equal(t, eco.RainfallMax, p.Reading.RainfallMM)
}

func TestProvidersListsNames(t *testing.T) {
	svc := NewService([]Provider{
		fakeProvider{name: "a"},
		fakeProvider{name: "b"},
	}, time.Second)
	assert.Equal(t, []string{"a", "b"}, svc.Providers())
}
