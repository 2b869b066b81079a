package decompose

import (
	"github.com/bfast-go/bfast/breakpoints"
	"github.com/bfast-go/bfast/sctest"
	"github.com/bfast-go/bfast/stl"
)

// stlSeeder adapts the stl package to the SeasonalSeeder interface.
type stlSeeder struct {
	opt *stl.Options
}

func (s stlSeeder) Seasonal(y []float64, period int) ([]float64, error) {
	res, err := stl.Decompose(y, period, s.opt)
	if err != nil {
		return nil, err
	}
	return res.Seasonal, nil
}

func defaultSeeder() SeasonalSeeder {
	return stlSeeder{}
}

func defaultTester() StabilityTester {
	return sctest.New()
}

func defaultSearcher() BreakpointSearcher {
	return breakpoints.New()
}
