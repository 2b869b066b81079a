package timedataset

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
)

// GenerateT creates an equally spaced numeric time axis of n points starting at
// start, e.g. fractional years with step 1/23 for a 16-day satellite cadence.
func GenerateT(n int, start, step float64) []float64 {
	t := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		t = append(t, start+step*float64(i))
	}
	return t
}

// Series is a synthetic observation vector composable through addition and
// masking.
type Series []float64

// Add accumulates another series of the same length into this one.
func (s Series) Add(src Series) Series {
	floats.Add(s, src)
	return s
}

// MaskMissing replaces the values at the given indices with NaN.
func (s Series) MaskMissing(idxs ...int) Series {
	for _, idx := range idxs {
		s[idx] = math.NaN()
	}
	return s
}

// GenerateConstY creates a constant series.
func GenerateConstY(n int, val float64) Series {
	y := make([]float64, n)
	for i := range y {
		y[i] = val
	}
	return Series(y)
}

// GenerateWaveY creates a sinusoid repeating every period samples, phased so
// that sample i sits at seasonal position i+1 matching the harmonic seasonal
// design matrix.
func GenerateWaveY(n, period int, amp float64, order int) Series {
	y := make([]float64, n)
	for i := range y {
		y[i] = amp * math.Sin(2.0*math.Pi*float64(order)*float64(i+1)/float64(period))
	}
	return Series(y)
}

// GenerateShift creates a series that is zero before sample idx and a constant
// bias plus per-sample slope afterwards, modeling an abrupt disturbance.
func GenerateShift(n, idx int, bias, slope float64) Series {
	y := make([]float64, n)
	for i := idx; i < n; i++ {
		y[i] = bias + slope*float64(i-idx)
	}
	return Series(y)
}

// GenerateNoise creates normally distributed noise with a deterministic seed so
// simulations stay reproducible across runs.
func GenerateNoise(n int, scale float64, seed uint64) Series {
	rnd := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	y := make([]float64, n)
	for i := range y {
		y[i] = scale * rnd.NormFloat64()
	}
	return Series(y)
}
