package decompose

import (
	"fmt"

	"github.com/bfast-go/bfast/models"
	"gonum.org/v1/gonum/mat"
)

// segmentedFit produces fitted values for the response over the whole compacted
// span, fitting one regression per regime when breakpoints partition the span
// and a single regression otherwise. The design matrix must carry its own
// intercept column when one is wanted.
func segmentedFit(x mat.Matrix, y []float64, bps []int) ([]float64, error) {
	d := x
	if len(bps) > 0 {
		d = partitionMatrix(x, bps)
	}

	ols, err := models.NewOLS(&models.OLSOptions{FitIntercept: false, DropMissing: true})
	if err != nil {
		return nil, err
	}
	if err := ols.Fit(d, y); err != nil {
		return nil, fmt.Errorf("unable to fit %d-regime model, %w", len(bps)+1, err)
	}
	fitted, err := ols.Predict(d)
	if err != nil {
		return nil, err
	}
	return fitted, nil
}

// partitionMatrix block-diagonalizes the design matrix over the regimes defined
// by the breakpoints: each regime gets its own copy of the regressor columns
// and zeros elsewhere, so regime boundaries are exact discontinuities in the
// fitted values rather than smoothed transitions.
func partitionMatrix(x mat.Matrix, bps []int) *mat.Dense {
	m, n := x.Dims()
	out := mat.NewDense(m, n*(len(bps)+1), nil)

	seg := 0
	for i := 0; i < m; i++ {
		if seg < len(bps) && i == bps[seg] {
			seg++
		}
		for j := 0; j < n; j++ {
			out.Set(i, seg*n+j, x.At(i, j))
		}
	}
	return out
}
