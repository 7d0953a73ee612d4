package geometry

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestNewCanvasCorners(t *testing.T) {
	c := NewCanvas(complex(-0.5, 0.25), 3, 300, 200)

	if c.TopLeft != complex(-2, 1.25) {
		t.Errorf("TopLeft = %v, want (-2+1.25i)", c.TopLeft)
	}
	if c.BottomRight != complex(1, -0.75) {
		t.Errorf("BottomRight = %v, want (1-0.75i)", c.BottomRight)
	}

	if got := c.At(0, 0, 0); got != c.TopLeft {
		t.Errorf("At(0, 0) = %v, want %v", got, c.TopLeft)
	}
	if got := c.At(299, 199, 0); cmplx.Abs(got-c.BottomRight) > 1e-12 {
		t.Errorf("At(299, 199) = %v, want %v", got, c.BottomRight)
	}
}

func TestImaginaryAxisInverted(t *testing.T) {
	c := NewCanvas(0, 2, 10, 10)

	if imag(c.At(0, 1, 0)) >= imag(c.At(0, 0, 0)) {
		t.Error("imaginary part should decrease as rows increase")
	}
	if real(c.At(1, 0, 0)) <= real(c.At(0, 0, 0)) {
		t.Error("real part should increase as columns increase")
	}
}

func TestRoundTrip(t *testing.T) {
	canvases := []*Canvas{
		NewCanvas(0, 3, 100, 100),
		NewCanvas(complex(-0.75, 0.1), 0.5, 64, 37),
		NewCanvas(complex(2, -1), 10, 17, 91),
	}

	for _, c := range canvases {
		for y := 1; y < c.Rows-1; y++ {
			for x := 1; x < c.Columns-1; x++ {
				gx, gy, ok := c.Pixel(c.At(x, y, 0))
				if !ok {
					t.Fatalf("Pixel(At(%d, %d)) missed the canvas", x, y)
				}
				if gx != x || gy != y {
					t.Fatalf("Pixel(At(%d, %d)) = (%d, %d)", x, y, gx, gy)
				}
			}
		}
	}
}

func TestRoundTripSubpixel(t *testing.T) {
	c := NewCanvas(complex(0.3, -0.2), 2, 50, 40)
	offsets := c.Supersample(8)

	for y := 1; y < c.Rows-1; y++ {
		for x := 1; x < c.Columns-1; x++ {
			for _, o := range offsets {
				gx, gy, ok := c.Pixel(c.At(x, y, o))
				if !ok {
					t.Fatalf("Pixel(At(%d, %d) + %v) missed the canvas", x, y, o)
				}
				if abs(gx-x) > 1 || abs(gy-y) > 1 {
					t.Fatalf("Pixel(At(%d, %d) + %v) = (%d, %d)", x, y, o, gx, gy)
				}
			}
		}
	}
}

func TestPixelMiss(t *testing.T) {
	c := NewCanvas(0, 4, 10, 10)

	for _, z := range []complex128{
		complex(2.1, 0),
		complex(-2.1, 0),
		complex(0, 2.1),
		complex(0, -2.1),
		cmplx.Inf(),
		cmplx.NaN(),
	} {
		if _, _, ok := c.Pixel(z); ok {
			t.Errorf("Pixel(%v) hit, want miss", z)
		}
	}

	if _, _, ok := c.Pixel(complex(2, -2)); !ok {
		t.Error("Pixel(bottom-right corner) missed, want hit")
	}
}

func TestSupersample(t *testing.T) {
	c := NewCanvas(0, 1, 11, 11)
	dx, dy := c.PixelSize()

	if got := c.Supersample(0); len(got) != 1 || got[0] != 0 {
		t.Errorf("Supersample(0) = %v, want [0]", got)
	}

	for level := 1; level < 20; level++ {
		offsets := c.Supersample(level)
		if len(offsets) < level+1 || len(offsets) > 2*(level+1) {
			t.Errorf("Supersample(%d) has %d offsets", level, len(offsets))
		}

		var sum complex128
		for _, o := range offsets {
			if math.Abs(real(o)) >= dx/2 || math.Abs(imag(o)) >= dy/2 {
				t.Errorf("Supersample(%d) offset %v leaves the pixel cell", level, o)
			}
			sum += o
		}
		if cmplx.Abs(sum) > 1e-12 {
			t.Errorf("Supersample(%d) offsets are not centered: sum %v", level, sum)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
