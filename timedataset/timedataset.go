// Package timedataset holds the observation series container validated and
// consumed by the fitting entry points along with generators for synthetic
// series used in tests and benchmarks. The time axis is numeric, e.g.
// fractional years for satellite acquisitions, strictly increasing but not
// necessarily equally spaced.
package timedataset

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNoTrainingData     = errors.New("no training data")
	ErrNonMonotonic       = errors.New("time axis is not strictly increasing")
	ErrDatasetLenMismatch = errors.New("time axis has a different length than observations")
	ErrTimeNotObserved    = errors.New("time axis contains a missing value")
)

// TimeDataset represents a univariate time series storing a numeric time axis
// and observed values of the same length. Values may be NaN to mark missing
// observations; time points may not.
type TimeDataset struct {
	T []float64
	Y []float64
}

// NewUnivariateDataset returns an instance of a TimeDataset given a time and
// value slice.
func NewUnivariateDataset(t, y []float64) (*TimeDataset, error) {
	if len(y) == 0 {
		return nil, ErrNoTrainingData
	}
	if len(t) != len(y) {
		return nil, fmt.Errorf(
			"time axis has length of %d, but values has a length of %d, %w",
			len(t), len(y), ErrDatasetLenMismatch,
		)
	}

	if err := ValidateT(t); err != nil {
		return nil, err
	}

	tSeries := make([]float64, len(t))
	ySeries := make([]float64, len(y))
	copy(tSeries, t)
	copy(ySeries, y)
	return &TimeDataset{
		T: tSeries,
		Y: ySeries,
	}, nil
}

// ValidateT checks that a time axis is fully observed and strictly increasing.
func ValidateT(t []float64) error {
	for i := 0; i < len(t); i++ {
		if math.IsNaN(t[i]) {
			return fmt.Errorf("at index %d, %w", i, ErrTimeNotObserved)
		}
		if i > 0 && t[i] <= t[i-1] {
			return fmt.Errorf("non-monotonic at index %d, %w", i, ErrNonMonotonic)
		}
	}
	return nil
}
