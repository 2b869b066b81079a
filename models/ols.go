package models

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// OLSOptions represents input options for an ordinary least squares fit.
type OLSOptions struct {
	// FitIntercept prepends a constant 1.0 column to the design matrix before
	// fitting.
	FitIntercept bool

	// DropMissing removes observations whose response value is NaN along with
	// the matching design matrix row before fitting. Design matrix values are
	// assumed to be fully observed.
	DropMissing bool
}

// NewDefaultOLSOptions returns a default set of OLS options.
func NewDefaultOLSOptions() *OLSOptions {
	return &OLSOptions{
		FitIntercept: true,
		DropMissing:  true,
	}
}

// Validate runs basic validation on OLS options returning a default set if
// uninitialized.
func (o *OLSOptions) Validate() (*OLSOptions, error) {
	if o == nil {
		return NewDefaultOLSOptions(), nil
	}
	return o, nil
}

// OLS computes ordinary least squares using QR factorization.
type OLS struct {
	opt       *OLSOptions
	coef      []float64
	intercept float64
}

// NewOLS initializes an OLS model ready for fitting. If no options are provided
// a default is used.
func NewOLS(opt *OLSOptions) (*OLS, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &OLS{opt: opt}, nil
}

// Fit solves for the model coefficients minimizing the squared error against
// the response vector.
func (o *OLS) Fit(x mat.Matrix, y []float64) error {
	if o.opt == nil {
		return ErrNoOptions
	}
	if x == nil {
		return ErrNoTrainingMatrix
	}
	if y == nil {
		return ErrNoTargetVector
	}
	m, _ := x.Dims()
	if len(y) != m {
		return fmt.Errorf("design matrix has %d rows and target has %d values, %w", m, len(y), ErrTargetLenMismatch)
	}

	if o.opt.DropMissing {
		x, y = dropMissing(x, y)
		m = len(y)
	}
	if m == 0 {
		return ErrAllMissing
	}

	d := x
	if o.opt.FitIntercept {
		d = withIntercept(x)
	}
	_, n := d.Dims()
	if m < n {
		return fmt.Errorf("%d usable observations for %d coefficients, %w", m, n, ErrInsufficientRows)
	}

	var qr mat.QR
	qr.Factorize(d)

	var beta mat.Dense
	if err := qr.SolveTo(&beta, false, mat.NewDense(m, 1, y)); err != nil {
		return fmt.Errorf("unable to solve least squares system, %w", err)
	}
	c := mat.Col(nil, 0, &beta)

	if o.opt.FitIntercept {
		o.intercept = c[0]
		o.coef = c[1:]
	} else {
		o.coef = c
	}
	return nil
}

// Predict computes the fitted values for the rows of the input design matrix.
func (o *OLS) Predict(x mat.Matrix) ([]float64, error) {
	if o.opt == nil {
		return nil, ErrNoOptions
	}
	if x == nil {
		return nil, ErrNoDesignMatrix
	}

	w := o.coef
	d := x
	if o.opt.FitIntercept {
		w = append([]float64{o.intercept}, o.coef...)
		d = withIntercept(x)
	}
	_, n := d.Dims()
	if n != len(w) {
		return nil, fmt.Errorf("got %d features in design matrix, but expected %d, %w", n, len(w), ErrFeatureLenMismatch)
	}

	wMx := mat.NewDense(1, n, w)
	var res mat.Dense
	res.Mul(wMx, d.T())
	return mat.Row(nil, 0, &res), nil
}

// Score computes the coefficient of determination against the response vector
// skipping missing response values.
func (o *OLS) Score(x mat.Matrix, y []float64) (float64, error) {
	if x == nil {
		return 0.0, ErrNoDesignMatrix
	}
	if y == nil {
		return 0.0, ErrNoTargetVector
	}
	m, _ := x.Dims()
	if len(y) != m {
		return 0.0, fmt.Errorf("design matrix has %d rows and target has %d values, %w", m, len(y), ErrTargetLenMismatch)
	}

	res, err := o.Predict(x)
	if err != nil {
		return 0.0, err
	}

	predicted := make([]float64, 0, len(y))
	observed := make([]float64, 0, len(y))
	for i := 0; i < len(y); i++ {
		if math.IsNaN(y[i]) {
			continue
		}
		predicted = append(predicted, res[i])
		observed = append(observed, y[i])
	}
	return stat.RSquaredFrom(predicted, observed, nil), nil
}

// Intercept returns the intercept of the fit model.
func (o *OLS) Intercept() float64 {
	return o.intercept
}

// Coef returns the coefficients of the fit model.
func (o *OLS) Coef() []float64 {
	c := make([]float64, len(o.coef))
	copy(c, o.coef)
	return c
}

// dropMissing filters out observations whose response is NaN preserving the
// relative order of the remaining rows.
func dropMissing(x mat.Matrix, y []float64) (mat.Matrix, []float64) {
	keep := make([]int, 0, len(y))
	for i := 0; i < len(y); i++ {
		if math.IsNaN(y[i]) {
			continue
		}
		keep = append(keep, i)
	}
	if len(keep) == len(y) {
		return x, y
	}

	_, n := x.Dims()
	xKeep := mat.NewDense(len(keep), n, nil)
	yKeep := make([]float64, len(keep))
	for row, i := range keep {
		for j := 0; j < n; j++ {
			xKeep.Set(row, j, x.At(i, j))
		}
		yKeep[row] = y[i]
	}
	return xKeep, yKeep
}

// withIntercept returns a copy of the design matrix with a constant 1.0 column
// prepended.
func withIntercept(x mat.Matrix) *mat.Dense {
	m, n := x.Dims()
	d := mat.NewDense(m, n+1, nil)
	for i := 0; i < m; i++ {
		d.Set(i, 0, 1.0)
		for j := 0; j < n; j++ {
			d.Set(i, j+1, x.At(i, j))
		}
	}
	return d
}
