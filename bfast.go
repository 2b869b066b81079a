// Package bfast detects structural breaks in satellite image time series by
// iteratively decomposing every pixel's series into trend, seasonal, and
// remainder components. The per-pixel algorithm lives in the decompose
// subpackage; this package drives it across a full cube with a bounded worker
// pool and assembles the cube-shaped outputs.
package bfast

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bfast-go/bfast/decompose"
	"github.com/bfast-go/bfast/timedataset"
	"gonum.org/v1/gonum/mat"
)

var ErrNoCube = errors.New("no observation cube")

// BFAST fits the iterative break detection model over every pixel of an image
// time series cube.
type BFAST struct {
	opt   *Options
	pixel *decompose.Decomposition
}

// New creates a new instance of BFAST using the provided options. If no
// options are provided a default is used.
func New(opt *Options) (*BFAST, error) {
	return NewWithCollaborators(opt, decompose.Collaborators{})
}

// NewWithCollaborators creates a new instance of BFAST substituting any of the
// numeric collaborators, e.g. a batched breakpoint search tuned for raster
// workloads.
func NewWithCollaborators(opt *Options, c decompose.Collaborators) (*BFAST, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}

	pixel, err := decompose.NewWithCollaborators(opt.Pixel, c)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize pixel decomposition, %w", err)
	}
	return &BFAST{
		opt:   opt,
		pixel: pixel,
	}, nil
}

// FitSeries decomposes a single series, the per-pixel public contract.
func (b *BFAST) FitSeries(t, y []float64) (*decompose.Result, error) {
	td, err := timedataset.NewUnivariateDataset(t, y)
	if err != nil {
		return nil, err
	}
	return b.pixel.FitSeries(td.T, td.Y, nil)
}

// Fit decomposes every pixel of the cube independently. Pixel failures are
// recorded in the results and mark only that pixel's output slots missing; the
// rest of the run is unaffected.
func (b *BFAST) Fit(t []float64, y *Cube) (*Results, error) {
	if y == nil {
		return nil, ErrNoCube
	}
	if len(t) != y.N {
		return nil, fmt.Errorf("time axis has %d values for %d time steps, %w", len(t), y.N, timedataset.ErrDatasetLenMismatch)
	}
	if err := timedataset.ValidateT(t); err != nil {
		return nil, err
	}

	// the seasonal design matrix depends only on configuration and series
	// length, shared read-only by all pixel workers
	var smod mat.Matrix
	if built, err := b.pixel.DesignMatrix(y.N); err != nil {
		return nil, fmt.Errorf("unable to build seasonal model, %w", err)
	} else if built != nil {
		smod = built
	}

	res := newResults(y.N, y.W, y.H)

	sem := make(chan struct{}, b.opt.Workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	for i := 0; i < y.W; i++ {
		slog.Debug("processing pixel row", "row", i)
		for j := 0; j < y.H; j++ {
			sem <- struct{}{}
			wg.Add(1)

			go func(i, j int) {
				defer wg.Done()
				defer func() { <-sem }()

				pr, err := b.pixel.FitSeries(t, y.Series(i, j), smod)
				if err != nil {
					slog.Warn("marking pixel degenerate", "row", i, "col", j, "error", err.Error())
					res.Trend.SetSeriesNaN(i, j)
					res.Season.SetSeriesNaN(i, j)
					res.Remainder.SetSeriesNaN(i, j)

					mu.Lock()
					res.Errors = append(res.Errors, PixelError{Row: i, Col: j, Message: err.Error()})
					mu.Unlock()
					return
				}

				res.Trend.SetSeries(i, j, pr.Trend)
				res.Season.SetSeries(i, j, pr.Season)
				res.Remainder.SetSeries(i, j, pr.Remainder)
				res.TrendBreakpoints.SetSeries(i, j, pr.TrendBreakpoints)
				res.SeasonBreakpoints.SetSeries(i, j, pr.SeasonBreakpoints)
				res.NumTrendBreakpoints.Set(i, j, pr.NumTrendBreakpoints)
				res.NumSeasonBreakpoints.Set(i, j, pr.NumSeasonBreakpoints)
			}(i, j)
		}
	}
	wg.Wait()

	return res, nil
}
