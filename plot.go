package bfast

import (
	"io"
	"math"
	"os"

	"github.com/bfast-go/bfast/decompose"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LineDecomposition generates an echart multi-line chart for some arbitrary
// time/value combination. The input y is a slice of series that must have the
// same length as the numeric time axis. Missing values are dropped from their
// series.
func LineDecomposition(title string, seriesName []string, t []float64, y [][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	lineData := make([][]opts.LineData, len(y))

	filteredT := make([]float64, 0, len(t))
	for i := 0; i < len(y); i++ {
		lineData[i] = make([]opts.LineData, 0, len(y[i]))
		for j := 0; j < len(y[i]); j++ {
			if math.IsNaN(y[i][j]) {
				continue
			}
			if i == 0 {
				filteredT = append(filteredT, t[j])
			}
			lineData[i] = append(lineData[i], opts.LineData{Value: y[i][j]})
		}
	}

	line = line.SetXAxis(filteredT)
	for i, series := range seriesName {
		line = line.AddSeries(series, lineData[i])
	}

	return line
}

// PlotPixel uses the Apache Echarts library to generate an html file showing
// one pixel's observations, the fitted components, and the remainder.
func (b *BFAST) PlotPixel(path string, t, y []float64, res *decompose.Result) error {
	page := components.NewPage()
	page.AddCharts(
		LineDecomposition(
			"Observed and Fit",
			[]string{"Observed", "Trend", "Season"},
			t,
			[][]float64{y, res.Trend, res.Season},
		),
		LineDecomposition(
			"Remainder",
			[]string{"Remainder"},
			t,
			[][]float64{res.Remainder},
		),
	)
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	return page.Render(io.MultiWriter(file))
}
