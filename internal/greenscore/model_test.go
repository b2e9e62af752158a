package greenscore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainDefault(t *testing.T) *Model {
	t.Helper()
	m, err := Train(DefaultConfig())
	require.NoError(t, err)
	return m
}

func TestTrainRecoversUnderlyingRelation(t *testing.T) {
	m := trainDefault(t)
	w := m.Weights()

	// 120 rows with sigma-3 noise pin the coefficients well inside these
	// tolerances.
	assert.InDelta(t, 92.0, w.Intercept, 5.0)
	assert.InDelta(t, -0.04, w.ElectricityKWh, 0.01)
	assert.InDelta(t, -0.02, w.WaterLiters, 0.01)
	assert.InDelta(t, -0.5, w.WasteKg, 0.1)
	assert.InDelta(t, -0.03, w.TransportKm, 0.01)

	assert.Greater(t, m.R2(), 0.9)
	assert.Equal(t, DefaultSamples, m.Samples())
	assert.Equal(t, int64(DefaultSeed), m.Seed())
}

func TestTrainIsDeterministic(t *testing.T) {
	first := trainDefault(t)
	second := trainDefault(t)

	require.Equal(t, first.Weights(), second.Weights(), "same seed must refit identically")
	assert.Equal(t, first.R2(), second.R2())

	other, err := Train(TrainConfig{Seed: 7, Samples: DefaultSamples})
	require.NoError(t, err)
	assert.NotEqual(t, first.Weights(), other.Weights())
}

func TestTrainSampleValidation(t *testing.T) {
	_, err := Train(TrainConfig{Seed: DefaultSeed, Samples: MinSamples - 1})
	assert.ErrorIs(t, err, ErrTooFewSamples)

	m, err := Train(TrainConfig{Seed: DefaultSeed})
	require.NoError(t, err)
	assert.Equal(t, DefaultSamples, m.Samples())

	m, err = Train(TrainConfig{Seed: DefaultSeed, Samples: MinSamples})
	require.NoError(t, err)
	assert.Equal(t, MinSamples, m.Samples())
}

func TestPredictClampsToScale(t *testing.T) {
	m := trainDefault(t)

	frugal := m.Predict(Inputs{})
	assert.InDelta(t, 92.0, frugal, 5.0)

	heavy := m.Predict(Inputs{ElectricityKWh: 1500, WaterLiters: 1500, WasteKg: 100, TransportKm: 1000})
	assert.Equal(t, 0.0, heavy)

	// Out-of-domain inputs clamp to the domain edge first.
	assert.Equal(t, heavy, m.Predict(Inputs{ElectricityKWh: 1e9, WaterLiters: 1e9, WasteKg: 1e9, TransportKm: 1e9}))
}

func TestPredictMoreConsumptionNeverScoresHigher(t *testing.T) {
	m := trainDefault(t)

	prev := m.Predict(Inputs{})
	for _, f := range []float64{0.2, 0.4, 0.6, 0.8, 1.0} {
		cur := m.Predict(Inputs{
			ElectricityKWh: ElectricityMax * f,
			WaterLiters:    WaterMax * f,
			WasteKg:        WasteMax * f,
			TransportKm:    TransportMax * f,
		})
		assert.LessOrEqual(t, cur, prev+1e-9, "factor %v", f)
		prev = cur
	}
}

func TestAssessCategories(t *testing.T) {
	m := trainDefault(t)

	cases := []struct {
		name  string
		in    Inputs
		label string
	}{
		{name: "frugal household", in: Inputs{ElectricityKWh: 100, WaterLiters: 100, WasteKg: 5, TransportKm: 50}, label: CategoryHigh},
		{name: "average household", in: Inputs{ElectricityKWh: 500, WaterLiters: 150, WasteKg: 10, TransportKm: 100}, label: CategoryModerate},
		{name: "heavy household", in: Inputs{ElectricityKWh: 1500, WaterLiters: 1500, WasteKg: 100, TransportKm: 1000}, label: CategoryPoor},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := m.Assess(tc.in)
			assert.Equal(t, tc.label, p.Category.Label)
			assert.Equal(t, categoryMessages[tc.label], p.Category.Message)
			assert.Equal(t, m.Predict(tc.in), p.Score)
		})
	}
}
