package colors

import (
	"fmt"
	"math"

	"github.com/willbeason/fractal-render/pkg/raster"
)

// A Func colors one escaping sample from its escape step n and the iterate z at that step.
type Func func(n int, z complex128) raster.RGB

// A Stop is a gradient control point: Length table entries starting at Color.
type Stop struct {
	Color  raster.RGB
	Length int
}

// lerp returns a + (b-a)*k/n, truncating each channel toward a.
func lerp(a, b raster.RGB, k, n int) raster.RGB {
	f := float64(k) / float64(n)

	var c raster.RGB
	for i := range c {
		c[i] = a[i] + int64(float64(b[i]-a[i])*f)
	}
	return c
}

// Table expands cyclic stops into a flat color table of Σ Length entries. Each stop blends
// linearly into the next, and the last stop blends back into the first.
func Table(stops []Stop) []raster.RGB {
	var table []raster.RGB

	for i, s := range stops {
		next := stops[(i+1)%len(stops)]
		for k := 0; k < s.Length; k++ {
			table = append(table, lerp(s.Color, next.Color, k, s.Length))
		}
	}

	return table
}

// Ramp expands stops into an open gradient: like Table, except the last stop's Length is
// ignored and the ramp ends on the last stop's color.
func Ramp(stops []Stop) []raster.RGB {
	var ramp []raster.RGB

	for i := 0; i < len(stops)-1; i++ {
		s, next := stops[i], stops[i+1]
		for k := 0; k < s.Length; k++ {
			ramp = append(ramp, lerp(s.Color, next.Color, k, s.Length))
		}
	}

	if len(stops) > 0 {
		ramp = append(ramp, stops[len(stops)-1].Color)
	}

	return ramp
}

// Solid colors every escaping sample c.
func Solid(c raster.RGB) Func {
	return func(int, complex128) raster.RGB {
		return c
	}
}

// Discrete indexes table by the escape step, which shows one band per iteration.
func Discrete(table []raster.RGB) Func {
	return func(n int, _ complex128) raster.RGB {
		return table[n%len(table)]
	}
}

// Smooth indexes table by the continuous escape count n + 1 - ν, where
// ν = ln(ln|z|² / (2 ln p)) / ln p, which removes iteration banding. p is the degree the orbit
// grows with near escape, 2 for the classic Mandelbrot set.
func Smooth(table []raster.RGB, p float64) Func {
	lp := math.Log(p)
	size := len(table)

	return func(n int, z complex128) raster.RGB {
		nu := math.Log(math.Log(real(z)*real(z)+imag(z)*imag(z))/(2*lp)) / lp

		it := n
		if mu := math.Floor(float64(n) + 1 - nu); !math.IsNaN(mu) && !math.IsInf(mu, 0) {
			it = int(mu)
		}

		it %= size
		if it < 0 {
			it += size
		}
		return table[it]
	}
}

// Roots colors a terminal point with the color of its nearest root. points and palette must have
// the same length.
func Roots(points []complex128, palette []raster.RGB) Func {
	if len(points) != len(palette) {
		panic(fmt.Sprintf("colors: %d roots but %d colors", len(points), len(palette)))
	}

	return func(_ int, z complex128) raster.RGB {
		best, k := math.Inf(1), 0
		for i, r := range points {
			d := z - r
			if sq := real(d)*real(d) + imag(d)*imag(d); sq < best {
				best, k = sq, i
			}
		}
		return palette[k]
	}
}

// DefaultFunc returns one of the built-in escape-time palettes. Kind 0 is solid white, kinds 1 to
// 4 are smooth cycles of size entries per band: white/black, red/white, green/white and
// blue/white.
func DefaultFunc(kind, size int) (Func, error) {
	if kind != 0 && size <= 0 {
		return nil, fmt.Errorf("default palette %d: band size must be positive, got %d", kind, size)
	}

	switch kind {
	case 0:
		return Solid(raster.White), nil
	case 1:
		return Smooth(Table([]Stop{{raster.White, size}, {raster.Black, size}}), 2), nil
	case 2:
		return Smooth(Table([]Stop{{raster.Red, size}, {raster.White, size}}), 2), nil
	case 3:
		return Smooth(Table([]Stop{{raster.Green, size}, {raster.White, size}}), 2), nil
	case 4:
		return Smooth(Table([]Stop{{raster.Blue, size}, {raster.White, size}}), 2), nil
	default:
		return nil, fmt.Errorf("unknown default palette %d", kind)
	}
}
