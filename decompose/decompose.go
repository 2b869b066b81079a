// Package decompose implements the per-pixel iterative decomposition of a
// noisy, irregularly-missing time series into trend, seasonal, and remainder
// components with joint detection of abrupt breaks in the trend and seasonal
// components. One invocation owns all of its state, so any number of series can
// be decomposed concurrently with a shared read-only seasonal design matrix.
package decompose

import (
	"errors"
	"fmt"

	"github.com/bfast-go/bfast/seasonal"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	DefaultFrequency = 12
	DefaultH         = 0.15
	DefaultMaxIter   = 10
	DefaultLevel     = 0.05
)

var (
	ErrMismatchedDataLen  = errors.New("input data has different length than time")
	ErrSeasonalMatrixRows = errors.New("seasonal design matrix rows do not match series length")
	ErrInvalidH           = errors.New("minimum segment fraction must be in (0, 0.5]")
	ErrInvalidLevel       = errors.New("significance level must be in (0, 1)")
	ErrNegativeMaxBreaks  = errors.New("maximum breakpoint count must not be negative")
)

// Options represents input options for decomposing a single series.
type Options struct {
	// Frequency is the number of observations per seasonal cycle, e.g. 23 for
	// 16-day satellite composites or 12 for monthly aggregates.
	Frequency int `json:"frequency"`

	// H is the minimum segment size as a fraction of the usable observations,
	// bounding both the fluctuation test bandwidth and the breakpoint search.
	H float64 `json:"h"`

	// Season selects the seasonal model.
	Season seasonal.Type `json:"season"`

	// MaxIter caps the trend/season re-estimation iterations. Hitting the cap
	// is not an error; the last estimates are accepted.
	MaxIter int `json:"max_iter"`

	// MaxBreaks optionally caps the number of breakpoints per component. Zero
	// leaves the count to the information criterion.
	MaxBreaks int `json:"max_breaks"`

	// Level is the significance level gating the breakpoint searches.
	Level float64 `json:"level"`
}

// NewDefaultOptions returns a default set of decomposition options.
func NewDefaultOptions() *Options {
	return &Options{
		Frequency: DefaultFrequency,
		H:         DefaultH,
		Season:    seasonal.Dummy,
		MaxIter:   DefaultMaxIter,
		Level:     DefaultLevel,
	}
}

// Validate runs basic validation on the decomposition options.
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		return NewDefaultOptions(), nil
	}
	if err := o.Season.Validate(); err != nil {
		return nil, err
	}
	if o.Season != seasonal.None && o.Frequency < 2 {
		return nil, fmt.Errorf("got frequency %d, %w", o.Frequency, seasonal.ErrInvalidFrequency)
	}
	if o.H <= 0 || o.H > 0.5 {
		return nil, fmt.Errorf("got %f, %w", o.H, ErrInvalidH)
	}
	if o.Level <= 0 || o.Level >= 1 {
		return nil, fmt.Errorf("got %f, %w", o.Level, ErrInvalidLevel)
	}
	if o.MaxBreaks < 0 {
		return nil, fmt.Errorf("got %d, %w", o.MaxBreaks, ErrNegativeMaxBreaks)
	}
	if o.MaxIter < 1 {
		o.MaxIter = DefaultMaxIter
	}
	return o, nil
}

// SeasonalSeeder produces the initial seasonal estimate the iteration starts
// from. The returned vector has the same length as the input series.
type SeasonalSeeder interface {
	Seasonal(y []float64, period int) ([]float64, error)
}

// StabilityTester decides how plausible a single regression regime is for the
// response, returning a p-value in [0, 1]. Lower values indicate stronger
// evidence of a structural change.
type StabilityTester interface {
	PValue(x mat.Matrix, y []float64, h float64) (float64, error)
}

// BreakpointSearcher locates the optimal breakpoint set of the response over
// the rows of the design matrix in compacted index space.
type BreakpointSearcher interface {
	Search(x mat.Matrix, y []float64, h float64, maxBreaks int) ([]int, error)
}

// Collaborators bundles the numeric engines driving the decomposition. Nil
// fields fall back to the package defaults, so batched or vectorized variants
// can be substituted without touching the loop.
type Collaborators struct {
	Seeder   SeasonalSeeder
	Tester   StabilityTester
	Searcher BreakpointSearcher
}

// Result represents the decomposition of one series. Component vectors have the
// full input length with NaN at originally-missing positions. Breakpoint arrays
// are fixed-length zero-padded buffers in original index coordinates; only the
// first Num*Breakpoints entries are meaningful. A series with no usable
// observations is reported as trivially converged in zero iterations.
type Result struct {
	Trend     []float64 `json:"trend"`
	Season    []float64 `json:"season"`
	Remainder []float64 `json:"remainder"`

	TrendBreakpoints     []int `json:"trend_breakpoints"`
	SeasonBreakpoints    []int `json:"season_breakpoints"`
	NumTrendBreakpoints  int   `json:"num_trend_breakpoints"`
	NumSeasonBreakpoints int   `json:"num_season_breakpoints"`

	Converged  bool `json:"converged"`
	Iterations int  `json:"iterations"`
}

// Decomposition fits the iterative trend/season break detection model for
// single series. A single instance is safe for concurrent use as long as its
// collaborators are.
type Decomposition struct {
	opt      *Options
	seeder   SeasonalSeeder
	tester   StabilityTester
	searcher BreakpointSearcher
}

// New creates a decomposition with the default collaborators. If no options are
// provided a default is used.
func New(opt *Options) (*Decomposition, error) {
	return NewWithCollaborators(opt, Collaborators{})
}

// NewWithCollaborators creates a decomposition substituting any non-nil
// collaborator for the package default.
func NewWithCollaborators(opt *Options, c Collaborators) (*Decomposition, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}

	d := &Decomposition{
		opt:      opt,
		seeder:   c.Seeder,
		tester:   c.Tester,
		searcher: c.Searcher,
	}
	if d.seeder == nil {
		d.seeder = defaultSeeder()
	}
	if d.tester == nil {
		d.tester = defaultTester()
	}
	if d.searcher == nil {
		d.searcher = defaultSearcher()
	}
	return d, nil
}

// DesignMatrix builds the seasonal design matrix for a series of length n. The
// matrix depends only on the configuration, so raster callers build it once and
// share it read-only across pixels.
func (d *Decomposition) DesignMatrix(n int) (*mat.Dense, error) {
	return seasonal.DesignMatrix(d.opt.Season, d.opt.Frequency, n)
}

// FitSeries decomposes one series. The time axis must match the observations in
// length; smod is the shared seasonal design matrix from DesignMatrix and may
// be nil to have one built on the fly.
func (d *Decomposition) FitSeries(t, y []float64, smod mat.Matrix) (*Result, error) {
	n := len(y)
	if len(t) != n {
		return nil, fmt.Errorf("time axis has %d values for %d observations, %w", len(t), n, ErrMismatchedDataLen)
	}

	if smod == nil && d.opt.Season != seasonal.None {
		built, err := d.DesignMatrix(n)
		if err != nil {
			return nil, err
		}
		smod = built
	}
	if smod != nil {
		if rows, _ := smod.Dims(); rows != n {
			return nil, fmt.Errorf("got %d rows for %d observations, %w", rows, n, ErrSeasonalMatrixRows)
		}
	}

	nanMap := indexMap(y)
	if len(nanMap) == 0 {
		return degenerateResult(n), nil
	}

	// initial seasonal estimate seeding the loop
	seasonSeed := make([]float64, n)
	if d.opt.Season != seasonal.None {
		seed, err := d.seeder.Seasonal(y, d.opt.Frequency)
		if err != nil {
			return nil, fmt.Errorf("unable to seed seasonal estimate, %w", err)
		}
		seasonSeed = seed
	}

	// restrict everything to the gap-free index space
	yc := compactVector(y, nanMap)
	sc := compactVector(seasonSeed, nanMap)
	var smodc *mat.Dense
	if smod != nil {
		smodc = compactRows(smod, nanMap)
	}
	xTrend := trendDesign(compactVector(t, nanMap))

	state, err := d.iterate(xTrend, smodc, yc, sc)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Trend:      expandVector(state.trend, nanMap, n),
		Season:     expandVector(state.season, nanMap, n),
		Remainder:  expandVector(state.remainder, nanMap, n),
		Converged:  state.converged,
		Iterations: state.iterations,
	}
	res.TrendBreakpoints, res.NumTrendBreakpoints = remapBreakpoints(state.trendBp, nanMap, n)
	res.SeasonBreakpoints, res.NumSeasonBreakpoints = remapBreakpoints(state.seasonBp, nanMap, n)
	return res, nil
}

// loopState carries the per-iteration estimates over compacted space.
type loopState struct {
	trend     []float64
	season    []float64
	remainder []float64
	trendBp   []int
	seasonBp  []int

	converged  bool
	iterations int
}

// iterate drives the trend/season re-estimation to a fixed point over the
// breakpoint sets, or until the iteration cap.
func (d *Decomposition) iterate(xTrend, smodc *mat.Dense, yc, sc []float64) (*loopState, error) {
	nc := len(yc)
	state := &loopState{season: sc}

	// sentinels distinct from the empty set so the first comparison never
	// terminates the loop
	prevTrendBp := []int{-1}
	prevSeasonBp := []int{-1}

	for iter := 1; iter <= d.opt.MaxIter; iter++ {
		state.iterations = iter

		// trend pass over the deseasonalized series
		deseason := subtract(yc, state.season)
		trendBp, err := d.componentBreaks(xTrend, deseason)
		if err != nil {
			return nil, fmt.Errorf("trend pass: %w", err)
		}
		state.trendBp = trendBp
		state.trend, err = segmentedFit(xTrend, deseason, trendBp)
		if err != nil {
			return nil, fmt.Errorf("trend pass: %w", err)
		}

		// seasonal pass over the detrended residual
		if smodc == nil {
			state.season = make([]float64, nc)
			state.seasonBp = nil
		} else {
			resid := subtract(yc, state.trend)
			seasonBp, err := d.componentBreaks(smodc, resid)
			if err != nil {
				return nil, fmt.Errorf("seasonal pass: %w", err)
			}
			state.seasonBp = seasonBp
			state.season, err = segmentedFit(smodc, resid, seasonBp)
			if err != nil {
				return nil, fmt.Errorf("seasonal pass: %w", err)
			}
		}

		if equalBreakpoints(state.trendBp, prevTrendBp) && equalBreakpoints(state.seasonBp, prevSeasonBp) {
			state.converged = true
			break
		}
		prevTrendBp = state.trendBp
		prevSeasonBp = state.seasonBp
	}

	state.remainder = subtract(subtract(yc, state.trend), state.season)
	return state, nil
}

// componentBreaks gates the expensive breakpoint search behind the structural
// change test and runs it when warranted. A search returning no breakpoints is
// a valid outcome equivalent to the gate having said no.
func (d *Decomposition) componentBreaks(x *mat.Dense, y []float64) ([]int, error) {
	p, err := d.tester.PValue(x, y, d.opt.H)
	if err != nil {
		return nil, fmt.Errorf("stability test: %w", err)
	}
	if p > d.opt.Level {
		return nil, nil
	}

	bps, err := d.searcher.Search(x, y, d.opt.H, d.opt.MaxBreaks)
	if err != nil {
		return nil, fmt.Errorf("breakpoint search: %w", err)
	}
	return bps, nil
}

// trendDesign builds the intercept plus time design matrix for the trend fits.
func trendDesign(tc []float64) *mat.Dense {
	x := mat.NewDense(len(tc), 2, nil)
	for i, tv := range tc {
		x.Set(i, 0, 1.0)
		x.Set(i, 1, tv)
	}
	return x
}

func subtract(a, b []float64) []float64 {
	dst := make([]float64, len(a))
	floats.SubTo(dst, a, b)
	return dst
}

// degenerateResult is the designed output for a series with zero usable
// observations: all-missing components and no breakpoints.
func degenerateResult(n int) *Result {
	nan := func() []float64 {
		return expandVector(nil, nil, n)
	}
	return &Result{
		Trend:             nan(),
		Season:            nan(),
		Remainder:         nan(),
		TrendBreakpoints:  make([]int, n),
		SeasonBreakpoints: make([]int, n),
		Converged:         true,
	}
}
