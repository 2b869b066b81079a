// Package models holds the linear regression fitting implementations used by the
// decomposition.
package models

import (
	"gonum.org/v1/gonum/mat"
)

// Regression is a least squares fit over a design matrix and a response vector.
// The response may contain NaN values which implementations drop before fitting
// when configured to do so.
type Regression interface {
	Fit(x mat.Matrix, y []float64) error
	Predict(x mat.Matrix) ([]float64, error)
	Score(x mat.Matrix, y []float64) (float64, error)
	Intercept() float64
	Coef() []float64
}
