package fractal

import (
	"fmt"
	"image"
	"io"
	"log"
	"sync"
	"time"

	"github.com/willbeason/fractal-render/pkg/histogram"
	"github.com/willbeason/fractal-render/pkg/raster"
	"github.com/willbeason/fractal-render/pkg/render"
)

// A Fractal is a single render of Params.
type Fractal struct {
	params *Params
	grid   *raster.Grid

	once sync.Once
	ran  bool

	// Logf reports progress. Defaults to log.Printf.
	Logf func(format string, args ...any)
}

// New validates p and allocates the pixel grid. No rendering happens until Run.
func New(p *Params) (*Fractal, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	fill := p.Background
	if p.Kind.Histogram() {
		fill = raster.Black
	}

	return &Fractal{
		params: p,
		grid:   raster.NewGrid(p.Columns, p.Rows, fill),
	}, nil
}

func (f *Fractal) Params() *Params {
	return f.params
}

// Run renders the fractal and blocks until the grid is final. Calling Run again does nothing.
func (f *Fractal) Run() {
	f.once.Do(func() {
		start := time.Now()
		p := f.params
		f.logf("rendering %s %dx%d", p.Kind, p.Columns, p.Rows)

		if p.Kind.Histogram() {
			f.accumulate()
		} else {
			f.rasterize()
		}

		f.ran = true
		f.logf("rendered %s in %s", p.Kind, time.Since(start))
	})
}

func (f *Fractal) rasterize() {
	p := f.params
	kernel, color := p.kernel()

	r := &render.Rasterizer{
		Canvas:      p.Canvas(),
		Kernel:      kernel,
		Color:       color,
		Background:  p.Background,
		Supersample: p.Supersample,
		Mirror:      p.Kind == BurningCSpace || p.Kind == BurningZSpace,
		Workers:     p.Workers,
	}
	r.Run(f.grid)
}

func (f *Fractal) accumulate() {
	p := f.params

	a := &histogram.Accumulator{
		Canvas:     p.Canvas(),
		Map:        p.powerMap(),
		Thresholds: p.thresholds(),
		Target:     p.target(),
		Workers:    p.Workers,
		RandSeed:   p.RandSeed,
		Logf:       f.Logf,
	}
	a.Run(f.grid)

	p.Normalize(f.grid)
}

// Grid returns the rendered pixels. The grid is only final once Run has returned.
func (f *Fractal) Grid() *raster.Grid {
	return f.grid
}

// Image returns the rendered grid as an RGBA image.
func (f *Fractal) Image() (*image.RGBA, error) {
	if !f.ran {
		return nil, fmt.Errorf("%s has not been rendered", f.params.Name)
	}
	return f.grid.Image(), nil
}

// Dump writes the rendered grid as ASCII art, marking background pixels with '*'.
func (f *Fractal) Dump(w io.Writer) error {
	if !f.ran {
		return fmt.Errorf("%s has not been rendered", f.params.Name)
	}
	return f.grid.Dump(w, f.params.Background)
}

func (f *Fractal) logf(format string, args ...any) {
	if f.Logf != nil {
		f.Logf(format, args...)
		return
	}
	log.Printf(format, args...)
}
