package geometry

import (
	"math"
)

// A Canvas maps between pixel indices and points on the complex plane.
//
// Pixel (0, 0) sits exactly on TopLeft and pixel (Columns-1, Rows-1) on BottomRight. Image rows
// grow downward while the imaginary part shrinks, so the imaginary axis is inverted.
type Canvas struct {
	Columns, Rows int

	TopLeft     complex128
	BottomRight complex128

	// dx and dy are the real and imaginary distances between neighbouring pixels.
	dx, dy float64
}

// NewCanvas returns the canvas centered on center whose real extent is width. The imaginary
// extent keeps the rows/columns aspect ratio of the pixel grid.
func NewCanvas(center complex128, width float64, columns, rows int) *Canvas {
	height := width * float64(rows) / float64(columns)

	tl := center + complex(-width/2, height/2)
	c := &Canvas{
		Columns:     columns,
		Rows:        rows,
		TopLeft:     tl,
		BottomRight: tl + complex(width, -height),
	}

	if columns > 1 {
		c.dx = width / float64(columns-1)
	}
	if rows > 1 {
		c.dy = height / float64(rows-1)
	}

	return c
}

// PixelSize is the distance between neighbouring pixel centers along each axis.
func (c *Canvas) PixelSize() (dx, dy float64) {
	return c.dx, c.dy
}

// Point returns the point at the possibly fractional pixel coordinates (x, y).
func (c *Canvas) Point(x, y float64) complex128 {
	return complex(real(c.TopLeft)+c.dx*x, imag(c.TopLeft)-c.dy*y)
}

// At returns the point of pixel (x, y) shifted by offset.
func (c *Canvas) At(x, y int, offset complex128) complex128 {
	return c.Point(float64(x), float64(y)) + offset
}

// Pixel returns the pixel nearest z. ok is false if z lies outside the canvas rectangle,
// which callers treat as a silent miss.
func (c *Canvas) Pixel(z complex128) (x, y int, ok bool) {
	re, im := real(z), imag(z)
	if math.IsNaN(re) || math.IsNaN(im) {
		return 0, 0, false
	}
	if re < real(c.TopLeft) || re > real(c.BottomRight) ||
		im > imag(c.TopLeft) || im < imag(c.BottomRight) {
		return 0, 0, false
	}

	if c.dx > 0 {
		x = min(int(math.Round((re-real(c.TopLeft))/c.dx)), c.Columns-1)
	}
	if c.dy > 0 {
		y = min(int(math.Round((imag(c.TopLeft)-im)/c.dy)), c.Rows-1)
	}

	return x, y, true
}

// Supersample returns the sub-pixel offsets sampled for every pixel.
//
// Level 0 samples only the pixel itself. Level n samples n+1 points laid out on an evenly
// spaced nx × ny grid inside one pixel cell and centered on the pixel.
func (c *Canvas) Supersample(level int) []complex128 {
	if level <= 0 {
		return []complex128{0}
	}

	n := level + 1
	nx := int(math.Ceil(math.Sqrt(float64(n))))
	ny := (n + nx - 1) / nx

	offsets := make([]complex128, 0, nx*ny)
	for j := 0; j < ny; j++ {
		oy := (float64(j)+0.5)/float64(ny) - 0.5
		for i := 0; i < nx; i++ {
			ox := (float64(i)+0.5)/float64(nx) - 0.5
			offsets = append(offsets, complex(ox*c.dx, -oy*c.dy))
		}
	}

	return offsets
}
