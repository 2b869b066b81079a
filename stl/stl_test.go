package stl

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func harmonicSeries(n, period int, amp, offset, slope float64) []float64 {
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		y[i] = offset + slope*float64(i) + amp*math.Sin(2.0*math.Pi*float64(i)/float64(period))
	}
	return y
}

func TestDecomposeErrors(t *testing.T) {
	testData := map[string]struct {
		y      []float64
		period int
		err    error
	}{
		"invalid period": {harmonicSeries(24, 12, 1, 0, 0), 1, ErrInvalidPeriod},
		"too short":      {harmonicSeries(20, 12, 1, 0, 0), 12, ErrSeriesTooShort},
		"all missing": {
			[]float64{
				math.NaN(), math.NaN(), math.NaN(), math.NaN(),
				math.NaN(), math.NaN(), math.NaN(), math.NaN(),
			},
			4,
			ErrAllMissing,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			_, err := Decompose(td.y, td.period, nil)
			assert.ErrorIs(t, err, td.err)
		})
	}
}

func TestDecomposePeriodicSeries(t *testing.T) {
	period := 12
	n := 10 * period
	amp := 3.0
	y := harmonicSeries(n, period, amp, 10.0, 0.0)

	res, err := Decompose(y, period, nil)
	require.Nil(t, err)
	require.Len(t, res.Seasonal, n)
	require.Len(t, res.Trend, n)
	require.Len(t, res.Remainder, n)

	// the seasonal estimate repeats with the configured period and carries the
	// wave while the trend stays near the offset
	for i := period; i < n; i++ {
		assert.InDelta(t, res.Seasonal[i-period], res.Seasonal[i], 1e-9)
	}
	for i := period; i < n-period; i++ {
		assert.InDelta(t, amp*math.Sin(2.0*math.Pi*float64(i)/float64(period)), res.Seasonal[i], 0.5)
		assert.InDelta(t, 10.0, res.Trend[i], 0.5)
	}

	// seasonal sums to roughly zero over one period
	var sum float64
	for i := 0; i < period; i++ {
		sum += res.Seasonal[i]
	}
	assert.InDelta(t, 0.0, sum, 1e-6)
}

func TestDecomposeWithMissing(t *testing.T) {
	period := 6
	n := 8 * period
	y := harmonicSeries(n, period, 2.0, 5.0, 0.0)
	for _, idx := range []int{0, 7, 8, 23, n - 1} {
		y[idx] = math.NaN()
	}

	res, err := Decompose(y, period, nil)
	require.Nil(t, err)

	for i := 0; i < n; i++ {
		assert.False(t, math.IsNaN(res.Seasonal[i]), "seasonal NaN at %d", i)
		assert.False(t, math.IsNaN(res.Trend[i]), "trend NaN at %d", i)
	}
}

func TestOptionsValidate(t *testing.T) {
	opt, err := (*Options)(nil).Validate()
	require.Nil(t, err)
	assert.Equal(t, DefaultRobustIterations, opt.RobustIterations)

	opt, err = (&Options{RobustIterations: 0}).Validate()
	require.Nil(t, err)
	assert.Equal(t, DefaultRobustIterations, opt.RobustIterations)
}
