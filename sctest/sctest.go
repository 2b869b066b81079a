// Package sctest implements the structural change significance test guarding
// the breakpoint search. The test is an OLS-based MOSUM empirical fluctuation
// process: moving sums of the single-regime regression residuals drift away
// from zero when the regression coefficients change somewhere in the series.
package sctest

import (
	"errors"
	"fmt"
	"math"

	"github.com/bfast-go/bfast/models"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrSeriesTooShort   = errors.New("series has no residual degrees of freedom")
	ErrInvalidBandwidth = errors.New("bandwidth must be in (0, 0.5]")
)

// EFP is an empirical fluctuation process test over a design matrix and a
// response vector, producing a p-value for the hypothesis that a single
// regression regime spans the whole series.
type EFP struct{}

// New creates an OLS-MOSUM empirical fluctuation process test.
func New() *EFP {
	return &EFP{}
}

// Statistic computes the maximum absolute MOSUM of the single-regime OLS
// residuals, scaled by the residual standard error and series length.
func (e *EFP) Statistic(x mat.Matrix, y []float64, h float64) (float64, error) {
	if h <= 0 || h > 0.5 {
		return 0, fmt.Errorf("got bandwidth %f, %w", h, ErrInvalidBandwidth)
	}
	n, k := x.Dims()
	if n <= k {
		return 0, fmt.Errorf("%d observations for %d regressors, %w", n, k, ErrSeriesTooShort)
	}

	ols, err := models.NewOLS(&models.OLSOptions{FitIntercept: false, DropMissing: true})
	if err != nil {
		return 0, err
	}
	if err := ols.Fit(x, y); err != nil {
		return 0, fmt.Errorf("unable to fit single-regime model, %w", err)
	}
	fitted, err := ols.Predict(x)
	if err != nil {
		return 0, err
	}

	resid := make([]float64, n)
	var sse float64
	for i := 0; i < n; i++ {
		resid[i] = y[i] - fitted[i]
		sse += resid[i] * resid[i]
	}
	sigma := math.Sqrt(sse / float64(n-k))
	if sigma == 0 {
		// a perfect single-regime fit cannot fluctuate
		return 0, nil
	}

	nh := int(math.Floor(float64(n) * h))
	if nh < 1 {
		nh = 1
	}

	scale := sigma * math.Sqrt(float64(n))
	var winSum, statMax float64
	for i := 0; i < nh; i++ {
		winSum += resid[i]
	}
	statMax = math.Abs(winSum) / scale
	for i := nh; i < n; i++ {
		winSum += resid[i] - resid[i-nh]
		if stat := math.Abs(winSum) / scale; stat > statMax {
			statMax = stat
		}
	}
	return statMax, nil
}

// PValue computes the boundary-crossing p-value of the fluctuation process.
// Lower values indicate stronger evidence of a structural change.
func (e *EFP) PValue(x mat.Matrix, y []float64, h float64) (float64, error) {
	stat, err := e.Statistic(x, y, h)
	if err != nil {
		return 0, err
	}
	return crossingPValue(stat, h), nil
}
