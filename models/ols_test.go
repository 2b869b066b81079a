package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func newDense(t *testing.T, rows [][]float64) *mat.Dense {
	t.Helper()
	require.NotEmpty(t, rows)
	d := mat.NewDense(len(rows), len(rows[0]), nil)
	for i, row := range rows {
		d.SetRow(i, row)
	}
	return d
}

func TestOLSOptionsValidate(t *testing.T) {
	testData := map[string]struct {
		opt      *OLSOptions
		expected *OLSOptions
	}{
		"nil": {nil, NewDefaultOLSOptions()},
		"valid": {
			&OLSOptions{FitIntercept: false, DropMissing: true},
			&OLSOptions{FitIntercept: false, DropMissing: true},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			opt, err := td.opt.Validate()
			require.Nil(t, err)
			assert.Equal(t, td.expected, opt)
		})
	}
}

func TestOLSFit(t *testing.T) {
	tol := 1e-8
	testData := map[string]struct {
		x         [][]float64
		y         []float64
		opt       *OLSOptions
		intercept float64
		coef      []float64
	}{
		"with intercept": {
			x: [][]float64{
				{0, 0},
				{3, 5},
				{9, 20},
				{12, 6},
				{15, 10},
			},
			y:         []float64{2, 31, 109, 62, 87},
			intercept: 2.0,
			coef:      []float64{3.0, 4.0},
		},
		"explicit constant column": {
			x: [][]float64{
				{1, 0, 0},
				{1, 3, 5},
				{1, 9, 20},
				{1, 12, 6},
				{1, 15, 10},
			},
			y:         []float64{2, 31, 109, 62, 87},
			opt:       &OLSOptions{FitIntercept: false, DropMissing: true},
			intercept: 0.0,
			coef:      []float64{2.0, 3.0, 4.0},
		},
		"missing responses dropped": {
			x: [][]float64{
				{0},
				{1},
				{2},
				{3},
				{4},
			},
			y:         []float64{1, 3, math.NaN(), 7, math.NaN()},
			intercept: 1.0,
			coef:      []float64{2.0},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			x := newDense(t, td.x)

			model, err := NewOLS(td.opt)
			require.Nil(t, err)
			require.Nil(t, model.Fit(x, td.y))

			assert.InDelta(t, td.intercept, model.Intercept(), tol)
			assert.InDeltaSlice(t, td.coef, model.Coef(), tol)

			r2, err := model.Score(x, td.y)
			require.Nil(t, err)
			assert.InDelta(t, 1.0, r2, tol)
		})
	}
}

func TestOLSFitErrors(t *testing.T) {
	x := newDense(t, [][]float64{{0}, {1}, {2}})

	testData := map[string]struct {
		x   mat.Matrix
		y   []float64
		err error
	}{
		"no training matrix": {nil, []float64{1, 2, 3}, ErrNoTrainingMatrix},
		"no target vector":   {x, nil, ErrNoTargetVector},
		"length mismatch":    {x, []float64{1, 2}, ErrTargetLenMismatch},
		"all missing":        {x, []float64{math.NaN(), math.NaN(), math.NaN()}, ErrAllMissing},
		"insufficient rows":  {x, []float64{1, math.NaN(), math.NaN()}, ErrInsufficientRows},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			model, err := NewOLS(nil)
			require.Nil(t, err)
			assert.ErrorIs(t, model.Fit(td.x, td.y), td.err)
		})
	}
}

func TestOLSPredictFeatureMismatch(t *testing.T) {
	x := newDense(t, [][]float64{{0, 1}, {1, 2}, {2, 5}})
	model, err := NewOLS(nil)
	require.Nil(t, err)
	require.Nil(t, model.Fit(x, []float64{1, 2, 3}))

	_, err = model.Predict(newDense(t, [][]float64{{1, 2, 3}}))
	assert.ErrorIs(t, err, ErrFeatureLenMismatch)
}
