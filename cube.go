package bfast

import (
	"math"
)

// Cube is a dense time x width x height array of float64 values, the shape of
// a satellite image time series stack. Per-pixel series occupy disjoint backing
// slices so pixel workers can write results without synchronization.
type Cube struct {
	N    int       `json:"n"`
	W    int       `json:"w"`
	H    int       `json:"h"`
	Data []float64 `json:"data"`
}

// NewCube creates a zero-filled cube of n time steps over a w x h pixel grid.
func NewCube(n, w, h int) *Cube {
	return &Cube{
		N:    n,
		W:    w,
		H:    h,
		Data: make([]float64, n*w*h),
	}
}

// At returns the value at time step t of pixel (i, j).
func (c *Cube) At(t, i, j int) float64 {
	return c.Data[(i*c.H+j)*c.N+t]
}

// Set stores the value at time step t of pixel (i, j).
func (c *Cube) Set(t, i, j int, val float64) {
	c.Data[(i*c.H+j)*c.N+t] = val
}

// Series returns a copy of the full time series of pixel (i, j).
func (c *Cube) Series(i, j int) []float64 {
	dst := make([]float64, c.N)
	copy(dst, c.Data[(i*c.H+j)*c.N:])
	return dst
}

// SetSeries stores a full time series at pixel (i, j).
func (c *Cube) SetSeries(i, j int, vals []float64) {
	copy(c.Data[(i*c.H+j)*c.N:(i*c.H+j)*c.N+c.N], vals)
}

// SetSeriesNaN marks the full time series of pixel (i, j) as missing.
func (c *Cube) SetSeriesNaN(i, j int) {
	base := (i*c.H + j) * c.N
	for t := 0; t < c.N; t++ {
		c.Data[base+t] = math.NaN()
	}
}

// IntCube is a dense time x width x height array of integer values used for
// the zero-padded per-pixel breakpoint index arrays.
type IntCube struct {
	N    int   `json:"n"`
	W    int   `json:"w"`
	H    int   `json:"h"`
	Data []int `json:"data"`
}

// NewIntCube creates a zero-filled integer cube.
func NewIntCube(n, w, h int) *IntCube {
	return &IntCube{
		N:    n,
		W:    w,
		H:    h,
		Data: make([]int, n*w*h),
	}
}

// At returns the value at slot t of pixel (i, j).
func (c *IntCube) At(t, i, j int) int {
	return c.Data[(i*c.H+j)*c.N+t]
}

// Series returns a copy of the full slot array of pixel (i, j).
func (c *IntCube) Series(i, j int) []int {
	dst := make([]int, c.N)
	copy(dst, c.Data[(i*c.H+j)*c.N:])
	return dst
}

// SetSeries stores a full slot array at pixel (i, j).
func (c *IntCube) SetSeries(i, j int, vals []int) {
	copy(c.Data[(i*c.H+j)*c.N:(i*c.H+j)*c.N+c.N], vals)
}

// Grid is a dense width x height array of integer values used for the
// per-pixel breakpoint counts.
type Grid struct {
	W    int   `json:"w"`
	H    int   `json:"h"`
	Data []int `json:"data"`
}

// NewGrid creates a zero-filled grid.
func NewGrid(w, h int) *Grid {
	return &Grid{
		W:    w,
		H:    h,
		Data: make([]int, w*h),
	}
}

// At returns the value at pixel (i, j).
func (g *Grid) At(i, j int) int {
	return g.Data[i*g.H+j]
}

// Set stores the value at pixel (i, j).
func (g *Grid) Set(i, j, val int) {
	g.Data[i*g.H+j] = val
}
