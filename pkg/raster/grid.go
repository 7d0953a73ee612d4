package raster

import (
	"bufio"
	"image"
	"image/color"
	"io"
)

// RGB is a three-channel pixel value.
//
// Escape-time renders keep each channel in 0..255. Orbit-density renders store unbounded
// hit counts until a normalizer rescales them.
type RGB [3]int64

const (
	R = 0
	G = 1
	B = 2
)

var (
	Black = RGB{0x00, 0x00, 0x00}
	White = RGB{0xff, 0xff, 0xff}
	Red   = RGB{0xff, 0x00, 0x00}
	Green = RGB{0x00, 0xff, 0x00}
	Blue  = RGB{0x00, 0x00, 0xff}
)

// Add returns the channel-wise sum of c and o.
func (c RGB) Add(o RGB) RGB {
	return RGB{c[R] + o[R], c[G] + o[G], c[B] + o[B]}
}

// Average returns the truncated channel-wise mean of colors.
func Average(colors []RGB) RGB {
	if len(colors) == 0 {
		return Black
	}

	var sum RGB
	for _, c := range colors {
		sum = sum.Add(c)
	}

	n := int64(len(colors))
	return RGB{sum[R] / n, sum[G] / n, sum[B] / n}
}

// A Grid is a fixed-size, row-major rectangle of pixels.
type Grid struct {
	Width, Height int
	Pix           []RGB
}

// NewGrid returns a width × height grid with every pixel set to fill.
func NewGrid(width, height int, fill RGB) *Grid {
	g := &Grid{
		Width:  width,
		Height: height,
		Pix:    make([]RGB, width*height),
	}

	if fill != Black {
		for i := range g.Pix {
			g.Pix[i] = fill
		}
	}

	return g
}

func (g *Grid) At(x, y int) RGB {
	return g.Pix[x+y*g.Width]
}

func (g *Grid) Set(x, y int, c RGB) {
	g.Pix[x+y*g.Width] = c
}

// Row returns the pixels of row y. Writes to the slice are visible in g.
func (g *Grid) Row(y int) []RGB {
	return g.Pix[y*g.Width : (y+1)*g.Width]
}

// Add sums o into g element-wise. Both grids must have the same dimensions.
func (g *Grid) Add(o *Grid) {
	if g.Width != o.Width || g.Height != o.Height {
		panic("raster: adding grids of different sizes")
	}

	for i, c := range o.Pix {
		g.Pix[i] = g.Pix[i].Add(c)
	}
}

// Image converts g to an opaque RGBA image, clamping every channel to a byte.
func (g *Grid) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))

	for i, c := range g.Pix {
		img.SetRGBA(i%g.Width, i/g.Width, color.RGBA{
			R: clamp(c[R]),
			G: clamp(c[G]),
			B: clamp(c[B]),
			A: 0xff,
		})
	}

	return img
}

func clamp(v int64) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 0xff:
		return 0xff
	default:
		return uint8(v)
	}
}

// Dump writes g as ASCII art for debugging: '*' marks pixels exactly equal to background,
// ' ' marks everything else, and each row ends with '|'.
func (g *Grid) Dump(w io.Writer, background RGB) error {
	bw := bufio.NewWriter(w)

	for y := 0; y < g.Height; y++ {
		for _, c := range g.Row(y) {
			glyph := byte(' ')
			if c == background {
				glyph = '*'
			}
			if err := bw.WriteByte(glyph); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString("|\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}
