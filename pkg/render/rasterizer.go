package render

import (
	"runtime"
	"sync"

	"github.com/willbeason/fractal-render/pkg/colors"
	"github.com/willbeason/fractal-render/pkg/geometry"
	"github.com/willbeason/fractal-render/pkg/raster"
	"github.com/willbeason/fractal-render/pkg/transforms"
)

// A RowRange is the half-open range of image rows [Start, End).
type RowRange struct {
	Start, End int
}

// Partition splits rows into workers contiguous ranges that cover every row exactly once.
// Ranges are empty when there are more workers than rows.
func Partition(rows, workers int) []RowRange {
	if workers < 1 {
		workers = 1
	}

	ranges := make([]RowRange, workers)
	for i := range ranges {
		ranges[i] = RowRange{
			Start: i * rows / workers,
			End:   (i + 1) * rows / workers,
		}
	}

	return ranges
}

// A Rasterizer evaluates a Kernel at every pixel of a Canvas.
//
// Every worker owns a fixed range of rows, so workers never write to the same pixel and the
// grid needs no locking. Ranges are not rebalanced, so workers covering the fractal's boundary
// finish last.
type Rasterizer struct {
	Canvas *geometry.Canvas
	Kernel transforms.Kernel

	// Color colors escaping samples. Background colors the rest.
	Color      colors.Func
	Background raster.RGB

	// Supersample is the level passed to Canvas.Supersample.
	Supersample int

	// Mirror writes image row y to row Rows-1-y.
	Mirror bool

	// Workers defaults to runtime.NumCPU().
	Workers int
}

// Run fills g, which must match the canvas dimensions, and returns once every worker has
// finished.
func (r *Rasterizer) Run(g *raster.Grid) {
	if g.Width != r.Canvas.Columns || g.Height != r.Canvas.Rows {
		panic("render: grid does not match canvas")
	}

	workers := r.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	offsets := r.Canvas.Supersample(r.Supersample)

	wg := sync.WaitGroup{}
	for _, rows := range Partition(g.Height, workers) {
		wg.Add(1)
		go func() {
			r.renderRows(g, rows, offsets)
			wg.Done()
		}()
	}
	wg.Wait()
}

func (r *Rasterizer) renderRows(g *raster.Grid, rows RowRange, offsets []complex128) {
	samples := make([]raster.RGB, len(offsets))

	for y := rows.Start; y < rows.End; y++ {
		out := y
		if r.Mirror {
			out = g.Height - 1 - y
		}
		row := g.Row(out)

		for x := range row {
			for s, dz := range offsets {
				samples[s] = r.sample(r.Canvas.At(x, y, dz))
			}
			row[x] = raster.Average(samples)
		}
	}
}

func (r *Rasterizer) sample(p complex128) raster.RGB {
	res := r.Kernel.Iterate(p)
	if !res.Escaped {
		return r.Background
	}
	return r.Color(res.Index, res.Terminal)
}
