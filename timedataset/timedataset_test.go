package timedataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnivariateDataset(t *testing.T) {
	testData := map[string]struct {
		t   []float64
		y   []float64
		err error
	}{
		"valid":           {[]float64{1.0, 1.1, 1.2}, []float64{4, 5, 6}, nil},
		"empty":           {nil, nil, ErrNoTrainingData},
		"length mismatch": {[]float64{1.0, 1.1}, []float64{4, 5, 6}, ErrDatasetLenMismatch},
		"non-monotonic":   {[]float64{1.0, 1.0, 1.2}, []float64{4, 5, 6}, ErrNonMonotonic},
		"missing time":    {[]float64{1.0, math.NaN(), 1.2}, []float64{4, 5, 6}, ErrTimeNotObserved},
		"missing value ok": {
			[]float64{1.0, 1.1, 1.2}, []float64{4, math.NaN(), 6}, nil,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			ds, err := NewUnivariateDataset(td.t, td.y)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.t, ds.T)

			// container owns copies
			td.t[0] = -100.0
			assert.NotEqual(t, td.t[0], ds.T[0])
		})
	}
}

func TestValidateT(t *testing.T) {
	testData := map[string]struct {
		t   []float64
		err error
	}{
		"valid":         {[]float64{2000.0, 2000.5, 2001.0}, nil},
		"empty":         {nil, nil},
		"repeated":      {[]float64{2000.0, 2000.0}, ErrNonMonotonic},
		"decreasing":    {[]float64{2001.0, 2000.0}, ErrNonMonotonic},
		"missing value": {[]float64{2000.0, math.NaN()}, ErrTimeNotObserved},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			err := ValidateT(td.t)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			assert.Nil(t, err)
		})
	}
}

func TestGenerateT(t *testing.T) {
	axis := GenerateT(4, 2000.0, 1.0/23.0)
	require.Len(t, axis, 4)
	assert.Equal(t, 2000.0, axis[0])
	assert.InDelta(t, 2000.0+3.0/23.0, axis[3], 1e-12)
}

func TestGenerateWaveY(t *testing.T) {
	period := 12
	y := GenerateWaveY(48, period, 2.0, 1)
	require.Len(t, y, 48)
	for i := period; i < len(y); i++ {
		assert.InDelta(t, y[i-period], y[i], 1e-9)
	}
}

func TestGenerateShift(t *testing.T) {
	y := GenerateShift(10, 4, 3.0, 0.5)
	assert.Equal(t, 0.0, y[3])
	assert.Equal(t, 3.0, y[4])
	assert.Equal(t, 3.5, y[5])
}

func TestSeriesCompose(t *testing.T) {
	y := GenerateConstY(6, 1.0).
		Add(GenerateShift(6, 3, 2.0, 0.0)).
		MaskMissing(1)

	assert.True(t, math.IsNaN(y[1]))
	assert.Equal(t, 1.0, y[0])
	assert.Equal(t, 3.0, y[4])
}

func TestGenerateNoiseDeterministic(t *testing.T) {
	a := GenerateNoise(16, 0.3, 42)
	b := GenerateNoise(16, 0.3, 42)
	assert.Equal(t, a, b)
}
