package render

import (
	"math"
	"slices"
	"testing"

	"github.com/willbeason/fractal-render/pkg/colors"
	"github.com/willbeason/fractal-render/pkg/geometry"
	"github.com/willbeason/fractal-render/pkg/raster"
	"github.com/willbeason/fractal-render/pkg/transforms"
)

func TestPartition(t *testing.T) {
	for _, rows := range []int{0, 1, 7, 100, 1081} {
		for _, workers := range []int{1, 2, 3, 8, 13, 200} {
			seen := make([]int, rows)
			prev := 0
			for _, r := range Partition(rows, workers) {
				if r.Start != prev {
					t.Fatalf("Partition(%d, %d): range %v does not start at %d", rows, workers, r, prev)
				}
				if r.End < r.Start {
					t.Fatalf("Partition(%d, %d): inverted range %v", rows, workers, r)
				}
				for y := r.Start; y < r.End; y++ {
					seen[y]++
				}
				prev = r.End
			}
			if prev != rows {
				t.Fatalf("Partition(%d, %d) ends at %d", rows, workers, prev)
			}
			for y, n := range seen {
				if n != 1 {
					t.Fatalf("Partition(%d, %d) covers row %d %d times", rows, workers, y, n)
				}
			}
		}
	}

	if got := len(Partition(10, 0)); got != 1 {
		t.Errorf("len(Partition(10, 0)) = %d, want 1", got)
	}
}

func testRasterizer(workers int) *Rasterizer {
	return &Rasterizer{
		Canvas:      geometry.NewCanvas(complex(-0.5, 0), 3, 60, 45),
		Kernel:      transforms.NewMandelbrot(2, 0, 60),
		Color:       colors.Smooth(colors.Table([]colors.Stop{{Color: raster.Red, Length: 7}, {Color: raster.White, Length: 5}}), 2),
		Background:  raster.Black,
		Supersample: 3,
		Workers:     workers,
	}
}

func TestRunIndependentOfWorkers(t *testing.T) {
	want := raster.NewGrid(60, 45, raster.Black)
	testRasterizer(1).Run(want)

	for _, workers := range []int{2, 3, 7, 45, 64} {
		got := raster.NewGrid(60, 45, raster.Black)
		testRasterizer(workers).Run(got)

		if !slices.Equal(got.Pix, want.Pix) {
			t.Errorf("%d workers produced a different image than 1 worker", workers)
		}
	}
}

func TestRunEndToEnd(t *testing.T) {
	r := &Rasterizer{
		Canvas:     geometry.NewCanvas(0, 3, 100, 100),
		Kernel:     transforms.NewMandelbrot(2, 0, 50),
		Color:      colors.Solid(raster.White),
		Background: raster.Black,
	}

	g := raster.NewGrid(100, 100, raster.Black)
	r.Run(g)

	if got := g.At(50, 50); got != raster.Black {
		t.Errorf("center pixel = %v, want background", got)
	}
	if got := g.At(0, 0); got != raster.White {
		t.Errorf("corner pixel = %v, want escaped", got)
	}

	if res := r.Kernel.Iterate(r.Canvas.At(50, 50, 0)); res.Escaped {
		t.Errorf("center sample escaped at %d", res.Index)
	}
	if res := r.Kernel.Iterate(r.Canvas.At(0, 0, 0)); !res.Escaped || res.Index > 1 {
		t.Errorf("corner sample = %+v, want escape within 2 steps", res)
	}
}

func TestRunAveragesSamples(t *testing.T) {
	// Half of the supersamples of every pixel escape immediately, half never do.
	r := &Rasterizer{
		Canvas:      geometry.NewCanvas(0, 2, 3, 3),
		Kernel:      halfPlane{},
		Color:       colors.Solid(raster.RGB{200, 100, 50}),
		Background:  raster.RGB{0, 0, 10},
		Supersample: 1,
		Workers:     2,
	}

	g := raster.NewGrid(3, 3, raster.Black)
	r.Run(g)

	for i, c := range g.Pix {
		if c != (raster.RGB{100, 50, 30}) {
			t.Errorf("Pix[%d] = %v, want {100 50 30}", i, c)
		}
	}
}

func TestRunMirror(t *testing.T) {
	plain := testRasterizer(3)
	mirrored := testRasterizer(4)
	mirrored.Mirror = true

	a := raster.NewGrid(60, 45, raster.Black)
	b := raster.NewGrid(60, 45, raster.Black)
	plain.Run(a)
	mirrored.Run(b)

	for y := 0; y < 45; y++ {
		if !slices.Equal(a.Row(y), b.Row(44-y)) {
			t.Fatalf("mirrored row %d differs from row %d", 44-y, y)
		}
	}
}

// halfPlane escapes at step 0 for samples left of their pixel center.
type halfPlane struct{}

func (halfPlane) Iterate(p complex128) transforms.Result {
	x := real(p)
	return transforms.Result{Escaped: x-math.Round(x) < 0, Terminal: p}
}
