// Package stl implements a simplified seasonal-trend decomposition used to seed
// the iterative break detection with an initial seasonal estimate. The trend is
// a weighted moving average, the seasonal a robustly weighted periodic mean, and
// a few biweight reweighting passes guard the estimates against outliers.
package stl

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

const DefaultRobustIterations = 2

var (
	ErrInvalidPeriod  = errors.New("period must be at least 2")
	ErrSeriesTooShort = errors.New("series must cover at least two full periods")
	ErrAllMissing     = errors.New("series has no observed values")
)

// Options represents input options for the seed decomposition.
type Options struct {
	// RobustIterations is the number of decomposition passes. Passes after the
	// first downweight observations with large remainders.
	RobustIterations int `json:"robust_iterations"`
}

// NewDefaultOptions returns a default set of decomposition options.
func NewDefaultOptions() *Options {
	return &Options{
		RobustIterations: DefaultRobustIterations,
	}
}

// Validate runs basic validation on the decomposition options.
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		return NewDefaultOptions(), nil
	}
	if o.RobustIterations < 1 {
		o.RobustIterations = DefaultRobustIterations
	}
	return o, nil
}

// Result represents the decomposition of a series into trend, seasonal, and
// remainder components of the same length as the input.
type Result struct {
	Trend     []float64 `json:"trend"`
	Seasonal  []float64 `json:"seasonal"`
	Remainder []float64 `json:"remainder"`
}

// Decompose splits the series into trend, seasonal, and remainder components.
// Missing values are bridged by linear interpolation before decomposing, so the
// returned components are fully observed even where the input is not.
func Decompose(y []float64, period int, opt *Options) (*Result, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	if period < 2 {
		return nil, fmt.Errorf("got period %d, %w", period, ErrInvalidPeriod)
	}
	n := len(y)
	if n < 2*period {
		return nil, fmt.Errorf("%d observations for period %d, %w", n, period, ErrSeriesTooShort)
	}

	filled, err := interpolateMissing(y)
	if err != nil {
		return nil, err
	}

	trend := make([]float64, n)
	seasonal := make([]float64, n)
	remainder := make([]float64, n)
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1.0
	}

	for iter := 0; iter < opt.RobustIterations; iter++ {
		// seasonal pass: weighted periodic means of the detrended series,
		// centered so the seasonal sums to zero over one period
		pattern := make([]float64, period)
		counts := make([]float64, period)
		for i := 0; i < n; i++ {
			idx := i % period
			pattern[idx] += (filled[i] - trend[i]) * weights[i]
			counts[idx] += weights[i]
		}
		var patternMean float64
		for i := 0; i < period; i++ {
			if counts[i] > 0 {
				pattern[i] /= counts[i]
			}
			patternMean += pattern[i]
		}
		patternMean /= float64(period)
		for i := 0; i < n; i++ {
			seasonal[i] = pattern[i%period] - patternMean
		}

		// trend pass: weighted triangular moving average of the deseasonalized
		// series over one period
		window := period
		if window%2 == 0 {
			window++
		}
		half := window / 2
		for i := 0; i < n; i++ {
			var sum, wSum float64
			for j := -half; j <= half; j++ {
				idx := i + j
				if idx < 0 || idx >= n {
					continue
				}
				w := weights[idx] * (1.0 - math.Abs(float64(j))/float64(half+1))
				sum += (filled[idx] - seasonal[idx]) * w
				wSum += w
			}
			if wSum > 0 {
				trend[i] = sum / wSum
			}
		}

		for i := 0; i < n; i++ {
			remainder[i] = filled[i] - trend[i] - seasonal[i]
		}

		if iter == opt.RobustIterations-1 {
			break
		}
		updateBiweights(weights, remainder)
	}

	return &Result{
		Trend:     trend,
		Seasonal:  seasonal,
		Remainder: remainder,
	}, nil
}

// updateBiweights recomputes robustness weights from the remainder using
// Tukey's biweight with a 6*MAD cutoff.
func updateBiweights(weights, remainder []float64) {
	absRem := make([]float64, len(remainder))
	for i, r := range remainder {
		absRem[i] = math.Abs(r)
	}
	sort.Float64s(absRem)
	cutoff := 6.0 * stat.Quantile(0.5, stat.Empirical, absRem, nil)
	if cutoff <= 0 {
		return
	}
	for i := range weights {
		u := math.Abs(remainder[i]) / cutoff
		if u >= 1.0 {
			weights[i] = 0.0
			continue
		}
		weights[i] = (1.0 - u*u) * (1.0 - u*u)
	}
}

// interpolateMissing bridges NaN gaps linearly between the nearest observed
// neighbors and extends the first and last observed values outward.
func interpolateMissing(y []float64) ([]float64, error) {
	n := len(y)
	filled := make([]float64, n)
	copy(filled, y)

	prev := -1
	for i := 0; i < n; i++ {
		if math.IsNaN(filled[i]) {
			continue
		}
		switch {
		case prev < 0:
			// leading gap takes the first observed value
			for j := 0; j < i; j++ {
				filled[j] = filled[i]
			}
		case i-prev > 1:
			step := (filled[i] - filled[prev]) / float64(i-prev)
			for j := prev + 1; j < i; j++ {
				filled[j] = filled[prev] + step*float64(j-prev)
			}
		}
		prev = i
	}
	if prev < 0 {
		return nil, ErrAllMissing
	}
	for j := prev + 1; j < n; j++ {
		filled[j] = filled[prev]
	}
	return filled, nil
}
