package histogram

import (
	"log"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/willbeason/fractal-render/pkg/geometry"
	"github.com/willbeason/fractal-render/pkg/raster"
	"github.com/willbeason/fractal-render/pkg/transforms"
)

// progressEvery is how many samples a worker traces between progress reports.
const progressEvery = 100000

// An Accumulator renders orbit densities: it traces the orbits of random escaping points and
// counts how often each pixel is visited.
//
// Each worker deposits into a private histogram and draws from a private generator. The only
// state workers share is the hit counter, which tells them when to stop.
type Accumulator struct {
	Canvas     *geometry.Canvas
	Map        transforms.PowerMap
	Thresholds Thresholds

	// Target is the number of canvas hits after which workers stop.
	Target int64

	// Workers defaults to runtime.NumCPU().
	Workers int

	// RandSeed seeds worker i with RandSeed+i. Zero seeds from the clock.
	RandSeed int64

	// Logf reports progress. Defaults to log.Printf.
	Logf func(format string, args ...any)

	hits atomic.Int64
}

// Hits returns the number of canvas hits deposited so far.
func (a *Accumulator) Hits() int64 {
	return a.hits.Load()
}

// Run accumulates hits until Target is reached, then adds every worker's histogram into dst.
func (a *Accumulator) Run(dst *raster.Grid) {
	if dst.Width != a.Canvas.Columns || dst.Height != a.Canvas.Rows {
		panic("histogram: grid does not match canvas")
	}

	workers := a.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	seed := a.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	a.hits.Store(0)

	hists := make([]*raster.Grid, workers)
	wg := sync.WaitGroup{}
	wg.Add(workers)
	for i := range hists {
		hists[i] = raster.NewGrid(dst.Width, dst.Height, raster.Black)
		w := a.newWorker(hists[i], seed+int64(i))

		go func() {
			w.run()
			wg.Done()
		}()
	}
	wg.Wait()

	Merge(dst, hists...)
}

// Merge adds every histogram into dst. The sum does not depend on the order of hists.
func Merge(dst *raster.Grid, hists ...*raster.Grid) {
	for _, h := range hists {
		dst.Add(h)
	}
}

func (a *Accumulator) logf(format string, args ...any) {
	if a.Logf != nil {
		a.Logf(format, args...)
		return
	}
	log.Printf(format, args...)
}

type worker struct {
	a       *Accumulator
	hist    *raster.Grid
	rng     *rand.Rand
	orbit   []complex128
	samples int
}

func (a *Accumulator) newWorker(hist *raster.Grid, seed int64) *worker {
	return &worker{
		a:     a,
		hist:  hist,
		rng:   rand.New(rand.NewSource(seed)),
		orbit: make([]complex128, 0, a.Map.MaxIterations),
	}
}

func (w *worker) run() {
	for w.a.hits.Load() < w.a.Target {
		w.sample()

		if w.samples%progressEvery == 0 {
			w.a.logf("total hits: %d, render hits: %d", w.a.hits.Load(), w.a.Target)
		}
	}
}

// sample traces one random seed and returns the number of hits it deposited.
func (w *worker) sample() int {
	w.samples++

	// √U(0,4) makes seeds uniform by area over the disk of radius 2.
	r := math.Sqrt(4 * w.rng.Float64())
	theta := 2 * math.Pi * w.rng.Float64()
	p := complex(r*math.Cos(theta), r*math.Sin(theta))

	var res transforms.Result
	w.orbit, res = w.a.Map.Orbit(p, w.orbit)
	if !res.Escaped {
		return 0
	}

	return w.deposit(res.Index)
}

// deposit credits every on-canvas point of the current orbit, which escaped at step k.
func (w *worker) deposit(k int) int {
	ch := w.a.Thresholds.Channel(k)

	n := 0
	for _, z := range w.orbit {
		x, y, ok := w.a.Canvas.Pixel(z)
		if !ok {
			continue
		}
		w.hist.Pix[x+y*w.hist.Width][ch]++
		n++
	}

	if n > 0 {
		w.a.hits.Add(int64(n))
	}
	return n
}
