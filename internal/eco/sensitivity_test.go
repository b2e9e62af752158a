package eco

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepCoversRangeInclusive(t *testing.T) {
	base := nearOptimalReading()

	for _, p := range []Parameter{ParamTemperature, ParamCO2, ParamRainfall, ParamHumidity, ParamSoilPH} {
		t.Run(p.String(), func(t *testing.T) {
			points, err := Sweep(base, p, 25)
			require.NoError(t, err)
			require.Len(t, points, 25)

			lo, hi := sweepRanges[p][0], sweepRanges[p][1]
			assert.InDelta(t, lo, points[0].Value, 1e-9)
			assert.InDelta(t, hi, points[len(points)-1].Value, 1e-9)
			for i := 1; i < len(points); i++ {
				assert.Greater(t, points[i].Value, points[i-1].Value)
			}
		})
	}
}

func TestSweepMatchesDirectEvaluation(t *testing.T) {
	base := nearOptimalReading()
	points, err := Sweep(base, ParamHumidity, 11)
	require.NoError(t, err)

	for _, pt := range points {
		r := base
		r.HumidityPct = pt.Value
		assert.Equal(t, PlantGrowthIndex(r), pt.PlantGrowthIndex)
	}
}

func TestSweepHoldsOtherFactorsFixed(t *testing.T) {
	base := nearOptimalReading()
	points, err := Sweep(base, ParamTemperature, 5)
	require.NoError(t, err)

	// At the base temperature the swept curve must pass through the base index.
	found := false
	baseIdx := PlantGrowthIndex(base)
	for _, pt := range points {
		if pt.Value == base.TemperatureC {
			found = true
			assert.Equal(t, baseIdx, pt.PlantGrowthIndex)
		}
	}
	// 5 points over [-5, 45] lands one exactly on 25.
	assert.True(t, found)
}

func TestSweepPointCountValidation(t *testing.T) {
	base := nearOptimalReading()

	points, err := Sweep(base, ParamSoilPH, 0)
	require.NoError(t, err)
	assert.Len(t, points, DefaultSweepPoints)

	_, err = Sweep(base, ParamSoilPH, 1)
	assert.ErrorIs(t, err, ErrSweepPoints)

	_, err = Sweep(base, ParamSoilPH, MaxSweepPoints+1)
	assert.ErrorIs(t, err, ErrSweepPoints)

	_, err = Sweep(base, Parameter(99), DefaultSweepPoints)
	assert.Error(t, err)
}

func TestParseParameter(t *testing.T) {
	for _, p := range []Parameter{ParamTemperature, ParamCO2, ParamRainfall, ParamHumidity, ParamSoilPH} {
		got, err := ParseParameter(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	_, err := ParseParameter("wind")
	assert.Error(t, err)
}
