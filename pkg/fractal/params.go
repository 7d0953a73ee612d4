package fractal

import (
	"errors"
	"fmt"

	"github.com/willbeason/fractal-render/pkg/colors"
	"github.com/willbeason/fractal-render/pkg/geometry"
	"github.com/willbeason/fractal-render/pkg/histogram"
	"github.com/willbeason/fractal-render/pkg/raster"
	"github.com/willbeason/fractal-render/pkg/transforms"
)

// ErrInvalidConfig is wrapped by every error reporting an unusable parameter combination.
var ErrInvalidConfig = errors.New("invalid fractal configuration")

// Kind selects the fractal family and which term of the iteration varies per pixel.
type Kind int

const (
	MandelCSpace Kind = iota
	MandelZSpace
	BurningCSpace
	BurningZSpace
	BuddhaCSpace
	BuddhaZSpace
	Newton
)

var kindNames = map[Kind]string{
	MandelCSpace:  "Mandel_CSpace",
	MandelZSpace:  "Mandel_ZSpace",
	BurningCSpace: "Burning_CSpace",
	BurningZSpace: "Burning_ZSpace",
	BuddhaCSpace:  "Buddha_CSpace",
	BuddhaZSpace:  "Buddha_ZSpace",
	Newton:        "Newton_Fractal",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the Kind named name, as written by Kind.String.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown fractal type %q", ErrInvalidConfig, name)
}

// Histogram reports whether k renders orbit densities rather than escape times.
func (k Kind) Histogram() bool {
	return k == BuddhaCSpace || k == BuddhaZSpace
}

// Geometry places the image on the complex plane.
type Geometry struct {
	Center complex128
	// Width is the extent of the real axis covered by the image.
	Width float64

	Columns, Rows int

	// Supersample is the supersampling level; 0 samples each pixel once.
	Supersample   int
	MaxIterations int
}

// A Root is one zero of a Newton fractal and the color of its basin.
type Root struct {
	Point complex128
	Color raster.RGB
}

// Params fully describe one render. Params must not be modified after being passed to New.
type Params struct {
	Kind Kind
	// Name is the requested output name, without extension.
	Name string
	Geometry

	// Exponent and Seed configure the power-map families. Seed is the fixed initial value in
	// C-space and the fixed constant in Z-space.
	Exponent complex128
	Seed     complex128

	// Roots, RadiusSq and Weight configure Newton fractals.
	Roots    []Root
	RadiusSq float64
	Weight   float64

	// Background colors samples that never escape or converge.
	Background raster.RGB

	// Color colors escaping samples of the power-map families. Newton fractals color by
	// nearest root.
	Color colors.Func

	// Thresholds, HitsPerPixel and Normalize configure orbit-density renders.
	Thresholds   [3]int
	HitsPerPixel int
	Normalize    colors.Normalizer

	// Workers defaults to runtime.NumCPU(). RandSeed seeds orbit-density sampling; zero seeds
	// from the clock.
	Workers  int
	RandSeed int64
}

// Validate reports the first problem that would make p impossible to render.
func (p *Params) Validate() error {
	if _, ok := kindNames[p.Kind]; !ok {
		return fmt.Errorf("%w: unknown fractal type %d", ErrInvalidConfig, int(p.Kind))
	}

	switch {
	case p.Columns <= 0 || p.Rows <= 0:
		return fmt.Errorf("%w: canvas must be at least 1x1, got %dx%d", ErrInvalidConfig, p.Columns, p.Rows)
	case !(p.Width > 0):
		return fmt.Errorf("%w: width must be positive, got %g", ErrInvalidConfig, p.Width)
	case p.MaxIterations < 1:
		return fmt.Errorf("%w: iteration cap must be positive, got %d", ErrInvalidConfig, p.MaxIterations)
	case p.Supersample < 0:
		return fmt.Errorf("%w: supersampling level must not be negative, got %d", ErrInvalidConfig, p.Supersample)
	case p.Workers < 0:
		return fmt.Errorf("%w: worker count must not be negative, got %d", ErrInvalidConfig, p.Workers)
	}

	switch {
	case p.Kind == Newton:
		if len(p.Roots) == 0 {
			return fmt.Errorf("%w: newton fractal needs at least one root", ErrInvalidConfig)
		}
		if !(p.RadiusSq > 0) {
			return fmt.Errorf("%w: convergence radius² must be positive, got %g", ErrInvalidConfig, p.RadiusSq)
		}
		if p.Weight == 0 {
			return fmt.Errorf("%w: root weight must not be zero", ErrInvalidConfig)
		}
	case p.Kind.Histogram():
		for i, t := range p.Thresholds {
			if t < 0 {
				return fmt.Errorf("%w: channel threshold %d is negative", ErrInvalidConfig, i)
			}
		}
		if p.HitsPerPixel <= 0 {
			return fmt.Errorf("%w: hits per pixel must be positive, got %d", ErrInvalidConfig, p.HitsPerPixel)
		}
		if p.Normalize == nil {
			return fmt.Errorf("%w: orbit-density render needs a normalizer", ErrInvalidConfig)
		}
	default:
		if p.Color == nil {
			return fmt.Errorf("%w: escape-time render needs a color function", ErrInvalidConfig)
		}
	}

	return nil
}

// Canvas returns the coordinate mapping of p.
func (p *Params) Canvas() *geometry.Canvas {
	return geometry.NewCanvas(p.Center, p.Width, p.Columns, p.Rows)
}

// powerMap returns the power-map kernel of the Mandel, Burning and Buddha families.
func (p *Params) powerMap() transforms.PowerMap {
	switch p.Kind {
	case MandelZSpace, BuddhaZSpace:
		return transforms.NewJulia(p.Exponent, p.Seed, p.MaxIterations)
	case BurningCSpace:
		return transforms.NewBurningShip(p.Exponent, p.Seed, transforms.CSpace, p.MaxIterations)
	case BurningZSpace:
		return transforms.NewBurningShip(p.Exponent, p.Seed, transforms.ZSpace, p.MaxIterations)
	default:
		return transforms.NewMandelbrot(p.Exponent, p.Seed, p.MaxIterations)
	}
}

// kernel returns the escape-time kernel and color function of p.
func (p *Params) kernel() (transforms.Kernel, colors.Func) {
	if p.Kind != Newton {
		return p.powerMap(), p.Color
	}

	n := transforms.Newton{
		Roots:         make([]complex128, len(p.Roots)),
		Weight:        complex(p.Weight, 0),
		RadiusSq:      p.RadiusSq,
		MaxIterations: p.MaxIterations,
	}
	palette := make([]raster.RGB, len(p.Roots))
	for i, r := range p.Roots {
		n.Roots[i] = r.Point
		palette[i] = r.Color
	}

	return n, colors.Roots(n.Roots, palette)
}

// target is the number of canvas hits an orbit-density render collects.
func (p *Params) target() int64 {
	return int64(p.HitsPerPixel) * int64(p.Columns) * int64(p.Rows)
}

func (p *Params) thresholds() histogram.Thresholds {
	return histogram.NewThresholds(p.Thresholds)
}
