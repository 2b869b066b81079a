// Package breakpoints implements the optimal multiple-breakpoint search over a
// regression model, after Bai and Perron. A triangular matrix of per-segment
// residual sums of squares feeds a dynamic program that finds the best
// partition for every admissible number of breaks, and the number of breaks is
// chosen by the Bayesian information criterion.
package breakpoints

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrInvalidBandwidth = errors.New("minimum segment fraction must be in (0, 0.5]")
	ErrSingularSegment  = errors.New("segment design matrix is singular")
)

// rssFloor keeps the BIC defined when a partition fits the data exactly.
const rssFloor = 1e-12

// Search is a dynamic-programming optimal partition search. The zero value is
// ready to use.
type Search struct{}

// New creates a breakpoint search.
func New() *Search {
	return &Search{}
}

// Search locates the optimal set of breakpoints of the response over the rows
// of the design matrix. Every segment spans at least floor(h*n) observations
// and maxBreaks, when positive, caps the number of breaks considered. The
// returned indices mark the first row of each new regime in strictly increasing
// order; an empty result means a single regime fits best.
func (s *Search) Search(x mat.Matrix, y []float64, h float64, maxBreaks int) ([]int, error) {
	if h <= 0 || h > 0.5 {
		return nil, fmt.Errorf("got fraction %f, %w", h, ErrInvalidBandwidth)
	}
	n, k := x.Dims()
	if len(y) != n {
		return nil, fmt.Errorf("design matrix has %d rows and response has %d values", n, len(y))
	}

	minSeg := int(math.Floor(float64(n) * h))
	if minSeg < k+1 {
		minSeg = k + 1
	}
	if n < 2*minSeg {
		// no admissible split
		return nil, nil
	}

	maxM := n/minSeg - 1
	if maxBreaks > 0 && maxBreaks < maxM {
		maxM = maxBreaks
	}

	rss, err := segmentRSS(x, y, minSeg)
	if err != nil {
		return nil, err
	}

	cost, splits := partitionCosts(rss, n, minSeg, maxM)
	m := selectByBIC(cost, n, k, maxM)
	if m == 0 {
		return nil, nil
	}

	// walk the split table backwards collecting first-of-regime indices
	bps := make([]int, m)
	end := n - 1
	for i := m; i >= 1; i-- {
		start := splits[i][end]
		bps[i-1] = start
		end = start - 1
	}
	return bps, nil
}

// partitionCosts fills the dynamic program tables. cost[m][j] is the minimal
// total RSS of splitting rows 0..j into m+1 admissible segments and
// splits[m][j] the first row of the last segment achieving it.
func partitionCosts(rss [][]float64, n, minSeg, maxM int) ([][]float64, [][]int) {
	cost := make([][]float64, maxM+1)
	splits := make([][]int, maxM+1)
	for m := range cost {
		cost[m] = make([]float64, n)
		splits[m] = make([]int, n)
		for j := range cost[m] {
			cost[m][j] = math.Inf(1)
			splits[m][j] = -1
		}
	}

	copy(cost[0], rss[0])

	for m := 1; m <= maxM; m++ {
		for j := (m+1)*minSeg - 1; j < n; j++ {
			for start := m * minSeg; start <= j-minSeg+1; start++ {
				prev := cost[m-1][start-1]
				if math.IsInf(prev, 1) {
					continue
				}
				if c := prev + rss[start][j]; c < cost[m][j] {
					cost[m][j] = c
					splits[m][j] = start
				}
			}
		}
	}
	return cost, splits
}

// selectByBIC picks the number of breaks minimizing the information criterion,
// preferring fewer breaks on ties.
func selectByBIC(cost [][]float64, n, k, maxM int) int {
	best := 0
	bestBIC := math.Inf(1)
	logN := math.Log(float64(n))
	for m := 0; m <= maxM; m++ {
		rss := cost[m][n-1]
		if math.IsInf(rss, 1) {
			continue
		}
		if rss < rssFloor {
			rss = rssFloor
		}
		params := float64(k*(m+1) + m)
		bic := float64(n)*math.Log(rss/float64(n)) + params*logN
		if bic < bestBIC {
			bestBIC = bic
			best = m
		}
	}
	return best
}

// segmentRSS computes the residual sum of squares of an OLS fit on every
// admissible contiguous segment. Normal equation accumulators are updated
// incrementally per starting row, so each segment costs one small solve instead
// of a full regression.
func segmentRSS(x mat.Matrix, y []float64, minSeg int) ([][]float64, error) {
	n, k := x.Dims()

	rss := make([][]float64, n)
	for i := range rss {
		rss[i] = make([]float64, n)
		for j := range rss[i] {
			rss[i][j] = math.Inf(1)
		}
	}

	xtx := make([]float64, k*k)
	xty := make([]float64, k)
	row := make([]float64, k)
	for start := 0; start < n-minSeg+1; start++ {
		for i := range xtx {
			xtx[i] = 0
		}
		for i := range xty {
			xty[i] = 0
		}
		var yty float64

		for end := start; end < n; end++ {
			mat.Row(row, end, x)
			for a := 0; a < k; a++ {
				for b := a; b < k; b++ {
					xtx[a*k+b] += row[a] * row[b]
				}
				xty[a] += row[a] * y[end]
			}
			yty += y[end] * y[end]

			if end-start+1 < minSeg {
				continue
			}
			val, err := solveRSS(xtx, xty, yty, k)
			if err != nil {
				return nil, fmt.Errorf("segment [%d, %d]: %w", start, end, err)
			}
			rss[start][end] = val
		}
	}
	return rss, nil
}

// solveRSS solves the normal equations for one segment and returns
// yty - beta'Xty, clamped at zero against roundoff.
func solveRSS(xtx, xty []float64, yty float64, k int) (float64, error) {
	sym := mat.NewSymDense(k, nil)
	for a := 0; a < k; a++ {
		for b := a; b < k; b++ {
			sym.SetSym(a, b, xtx[a*k+b])
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return 0, ErrSingularSegment
	}

	var beta mat.VecDense
	if err := chol.SolveVecTo(&beta, mat.NewVecDense(k, xty)); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrSingularSegment, err)
	}

	val := yty - mat.Dot(&beta, mat.NewVecDense(k, xty))
	if val < 0 {
		val = 0
	}
	return val, nil
}
