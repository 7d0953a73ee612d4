package colors

import (
	"fmt"

	"github.com/willbeason/fractal-render/pkg/raster"
)

// A Normalizer rewrites a complete grid of hit counts into displayable colors. It runs once,
// after every worker contributing to the grid has finished.
type Normalizer func(g *raster.Grid)

// PerChannelMax rescales every channel independently so its largest count becomes 255.
// Channels without any hits stay at 0.
func PerChannelMax(g *raster.Grid) {
	var peak raster.RGB
	for _, c := range g.Pix {
		for i := range c {
			peak[i] = max(peak[i], c[i])
		}
	}

	for p, c := range g.Pix {
		for i := range c {
			if peak[i] > 0 {
				c[i] = 255 * c[i] / peak[i]
			}
		}
		g.Pix[p] = c
	}
}

// ThresholdMax scales every channel by one global maximum so that counts at or above
// (1-threshold)·max saturate at 255.
func ThresholdMax(threshold float64) Normalizer {
	return func(g *raster.Grid) {
		var peak int64
		for _, c := range g.Pix {
			peak = max(peak, c[raster.R], c[raster.G], c[raster.B])
		}
		if peak == 0 {
			return
		}

		denom := (1 - threshold) * float64(peak)
		for p, c := range g.Pix {
			for i := range c {
				c[i] = min(int64(255*float64(c[i])/denom), 255)
			}
			g.Pix[p] = c
		}
	}
}

// GradientScale maps the total count of every pixel onto an open ramp built from stops, so the
// most visited pixel receives the ramp's last color.
func GradientScale(stops []Stop) Normalizer {
	ramp := Ramp(stops)
	last := int64(len(ramp) - 1)

	return func(g *raster.Grid) {
		var peak int64
		for _, c := range g.Pix {
			peak = max(peak, total(c))
		}

		for p, c := range g.Pix {
			if peak == 0 {
				g.Pix[p] = ramp[0]
				continue
			}
			g.Pix[p] = ramp[total(c)*last/peak]
		}
	}
}

func total(c raster.RGB) int64 {
	return c[raster.R] + c[raster.G] + c[raster.B]
}

// DefaultNormalizer returns one of the built-in single-channel density palettes: white to
// black, black to white, white to red, white to green and white to blue.
func DefaultNormalizer(kind int) (Normalizer, error) {
	const size = 600

	switch kind {
	case 0:
		return GradientScale([]Stop{{raster.White, size}, {raster.Black, 0}}), nil
	case 1:
		return GradientScale([]Stop{{raster.Black, size}, {raster.White, 0}}), nil
	case 2:
		return GradientScale([]Stop{{raster.White, size}, {raster.Red, 0}}), nil
	case 3:
		return GradientScale([]Stop{{raster.White, size}, {raster.Green, 0}}), nil
	case 4:
		return GradientScale([]Stop{{raster.White, size}, {raster.Blue, 0}}), nil
	default:
		return nil, fmt.Errorf("unknown default density palette %d", kind)
	}
}
