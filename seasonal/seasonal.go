// Package seasonal builds the design matrices encoding the seasonal model of a
// time series over a full-length time axis. Row i depends only on the seasonal
// position of time step i, never on observed values, so a single matrix is
// shared read-only across all pixels of a raster run.
package seasonal

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Type selects the seasonal model encoded in the design matrix.
type Type string

const (
	// Dummy uses one sum-to-zero indicator per seasonal position plus an
	// intercept column.
	Dummy Type = "dummy"

	// Harmonic uses three sine/cosine harmonic pairs of the base frequency.
	Harmonic Type = "harmonic"

	// None fits no seasonal component at all.
	None Type = "none"
)

// HarmonicOrders is the maximum number of sine/cosine pairs of the harmonic
// model. Orders above frequency/2 alias lower ones and are not generated.
const HarmonicOrders = 3

var (
	ErrUnknownType      = errors.New(`unknown seasonal model type, use "dummy", "harmonic" or "none"`)
	ErrInvalidFrequency = errors.New("seasonal frequency must be at least 2")
	ErrInvalidLength    = errors.New("series length must be positive")
)

// Validate returns an error if the seasonal model type is not one of the three
// recognized values.
func (t Type) Validate() error {
	switch t {
	case Dummy, Harmonic, None:
		return nil
	}
	return fmt.Errorf("%q, %w", string(t), ErrUnknownType)
}

// DesignMatrix builds the n row seasonal design matrix for the requested model
// type and frequency. A nil matrix is returned for the None type; callers must
// then treat the seasonal component as identically zero.
func DesignMatrix(seasonType Type, frequency, n int) (*mat.Dense, error) {
	if err := seasonType.Validate(); err != nil {
		return nil, err
	}
	if seasonType == None {
		return nil, nil
	}
	if frequency < 2 {
		return nil, fmt.Errorf("got frequency %d, %w", frequency, ErrInvalidFrequency)
	}
	if n < 1 {
		return nil, fmt.Errorf("got length %d, %w", n, ErrInvalidLength)
	}

	switch seasonType {
	case Harmonic:
		return harmonicMatrix(frequency, n), nil
	case Dummy:
		return dummyMatrix(frequency, n), nil
	}
	return nil, ErrUnknownType
}

// harmonicMatrix stacks cos/sin column pairs for harmonic orders 1 up to
// HarmonicOrders evaluated at time steps 1..n, truncated at the Nyquist order
// frequency/2 so no column aliases a lower order. At exactly the Nyquist order
// of an even frequency the sine column is identically zero and is omitted,
// keeping the design full rank for every admissible frequency. No intercept
// column is added; the seasonal fit is intentionally centered around zero.
func harmonicMatrix(frequency, n int) *mat.Dense {
	orders := HarmonicOrders
	if frequency/2 < orders {
		orders = frequency / 2
	}
	cols := 2 * orders
	if frequency%2 == 0 && orders == frequency/2 {
		cols--
	}

	w := 1.0 / float64(frequency)
	smod := mat.NewDense(n, cols, nil)
	for i := 0; i < n; i++ {
		tl := float64(i + 1)
		col := 0
		for k := 1; k <= orders; k++ {
			phase := 2.0 * math.Pi * tl * w * float64(k)
			smod.Set(i, col, math.Cos(phase))
			col++
			if col < cols {
				smod.Set(i, col, math.Sin(phase))
				col++
			}
		}
	}
	return smod
}

// dummyMatrix tiles one period block of frequency-1 indicator rows followed by
// a row of all -1 values, truncated to n rows, with a constant intercept column
// prepended. The -1 row constrains the indicator coefficients to sum to zero
// across the period keeping them identifiable against the intercept.
func dummyMatrix(frequency, n int) *mat.Dense {
	smod := mat.NewDense(n, frequency, nil)
	for i := 0; i < n; i++ {
		smod.Set(i, 0, 1.0)
		pos := i % frequency
		if pos == frequency-1 {
			for j := 1; j < frequency; j++ {
				smod.Set(i, j, -1.0)
			}
			continue
		}
		smod.Set(i, pos+1, 1.0)
	}
	return smod
}
