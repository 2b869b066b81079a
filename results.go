package bfast

// PixelError records a per-pixel decomposition failure. The failing pixel's
// output slots are marked missing while the rest of the raster run proceeds.
type PixelError struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// Results holds the cube-shaped outputs of a raster run. Component cubes
// preserve missing values as NaN; breakpoint cubes are zero-padded fixed
// capacity buffers with the count grids as the authoritative breakpoint counts.
type Results struct {
	Trend     *Cube `json:"trend"`
	Season    *Cube `json:"season"`
	Remainder *Cube `json:"remainder"`

	TrendBreakpoints     *IntCube `json:"trend_breakpoints"`
	SeasonBreakpoints    *IntCube `json:"season_breakpoints"`
	NumTrendBreakpoints  *Grid    `json:"num_trend_breakpoints"`
	NumSeasonBreakpoints *Grid    `json:"num_season_breakpoints"`

	Errors []PixelError `json:"errors,omitempty"`
}

// newResults allocates the output arrays for an n-step series over a w x h
// pixel grid.
func newResults(n, w, h int) *Results {
	return &Results{
		Trend:                NewCube(n, w, h),
		Season:               NewCube(n, w, h),
		Remainder:            NewCube(n, w, h),
		TrendBreakpoints:     NewIntCube(n, w, h),
		SeasonBreakpoints:    NewIntCube(n, w, h),
		NumTrendBreakpoints:  NewGrid(w, h),
		NumSeasonBreakpoints: NewGrid(w, h),
	}
}
