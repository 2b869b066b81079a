package bfast

import (
	"runtime"

	"github.com/bfast-go/bfast/decompose"
)

// Options represents input options for a raster run.
type Options struct {
	// Pixel configures the per-pixel decomposition.
	Pixel *decompose.Options `json:"pixel"`

	// Workers bounds the number of pixels decomposed concurrently. Zero or
	// negative uses one worker per available CPU.
	Workers int `json:"workers"`
}

// NewDefaultOptions returns a default set of raster options.
func NewDefaultOptions() *Options {
	return &Options{
		Pixel:   decompose.NewDefaultOptions(),
		Workers: runtime.GOMAXPROCS(0),
	}
}

// Validate runs basic validation on the raster options. Configuration errors
// surface here, before any pixel is processed.
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		return NewDefaultOptions(), nil
	}
	pixel, err := o.Pixel.Validate()
	if err != nil {
		return nil, err
	}
	o.Pixel = pixel
	if o.Workers < 1 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	return o, nil
}
