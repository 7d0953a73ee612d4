package transforms

import (
	"math/cmplx"
	"testing"
)

func TestPowerMapCSpace(t *testing.T) {
	m := NewMandelbrot(2, 0, 50)

	tcs := []struct {
		name    string
		p       complex128
		escaped bool
		index   int
	}{
		{name: "origin", p: 0, escaped: false},
		{name: "main cardioid", p: complex(-0.1, 0.1), escaped: false},
		{name: "period two bulb", p: -1, escaped: false},
		{name: "far corner", p: complex(-1.5, 1.5), escaped: true, index: 0},
		{name: "just outside", p: complex(1, 0), escaped: true, index: 2},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got := m.Iterate(tc.p)
			if got.Escaped != tc.escaped {
				t.Fatalf("Iterate(%v).Escaped = %t, want %t", tc.p, got.Escaped, tc.escaped)
			}
			if tc.escaped {
				if got.Index != tc.index {
					t.Errorf("Iterate(%v).Index = %d, want %d", tc.p, got.Index, tc.index)
				}
				if SqrMod(got.Terminal) <= EscapeRadiusSq {
					t.Errorf("Iterate(%v).Terminal = %v is inside the escape radius", tc.p, got.Terminal)
				}
			}
		})
	}
}

func TestPowerMapZSpace(t *testing.T) {
	// With c = 0 the filled Julia set of z^2 is the closed unit disk.
	m := NewJulia(2, 0, 100)

	if got := m.Iterate(complex(0.5, 0.5)); got.Escaped {
		t.Errorf("Iterate(0.5+0.5i) escaped at %d", got.Index)
	}
	if got := m.Iterate(complex(1.2, 0)); !got.Escaped {
		t.Error("Iterate(1.2) did not escape")
	}
}

func TestPowerMapGeneralExponent(t *testing.T) {
	square := NewMandelbrot(2, 0, 30)
	general := NewMandelbrot(complex(2, 1e-300), 0, 30)

	for _, p := range []complex128{0.5, complex(-1.8, 0.5), complex(0, 1.2)} {
		a, b := square.Iterate(p), general.Iterate(p)
		if a.Escaped != b.Escaped || a.Index != b.Index {
			t.Errorf("p = %v: fast path %+v, cmplx.Pow path %+v", p, a, b)
		}
	}
}

func TestBurningShipFolds(t *testing.T) {
	ship := NewBurningShip(2, 0, CSpace, 10)
	plain := NewMandelbrot(2, 0, 10)

	z := complex(-0.5, -0.75)
	c := complex(0.1, 0.2)
	if got, want := ship.Next(z, c), plain.Next(complex(0.5, 0.75), c); got != want {
		t.Errorf("Next(%v) = %v, want %v", z, got, want)
	}

	// The folded map differs from the plain one once orbits leave the first quadrant.
	p := complex(-1.75, -0.03)
	if ship.Iterate(p) == plain.Iterate(p) {
		t.Errorf("Iterate(%v) identical for reflected and plain maps", p)
	}
}

func TestOrbitMatchesIterate(t *testing.T) {
	maps := []PowerMap{
		NewMandelbrot(2, 0, 200),
		NewJulia(3, complex(0.4, 0.1), 200),
		NewBurningShip(2, 0, ZSpace, 200),
	}

	var buf []complex128
	for _, m := range maps {
		for _, p := range []complex128{complex(0.3, 0.5), complex(-0.7, 0.2), complex(1.1, -1.1)} {
			var res Result
			buf, res = m.Orbit(p, buf)
			if want := m.Iterate(p); res != want {
				t.Errorf("Orbit(%v) result %+v, Iterate %+v", p, res, want)
			}
			if res.Escaped {
				if len(buf) != res.Index+1 {
					t.Errorf("Orbit(%v) has %d points, want %d", p, len(buf), res.Index+1)
				}
				if buf[len(buf)-1] != res.Terminal {
					t.Errorf("Orbit(%v) last point %v, want %v", p, buf[len(buf)-1], res.Terminal)
				}
			} else if len(buf) != m.MaxIterations {
				t.Errorf("Orbit(%v) has %d points, want %d", p, len(buf), m.MaxIterations)
			}
		}
	}
}

func TestNewtonConverges(t *testing.T) {
	n := Newton{
		Roots:         []complex128{1, -1},
		Weight:        1,
		RadiusSq:      1e-6,
		MaxIterations: 50,
	}

	got := n.Iterate(1.2)
	if !got.Escaped {
		t.Fatal("Iterate(1.2) did not converge")
	}
	if got.Index > 6 {
		t.Errorf("Iterate(1.2) converged after %d steps, want at most 6", got.Index)
	}
	if n.Nearest(got.Terminal) != 0 {
		t.Errorf("Iterate(1.2) converged to %v, want root 1", got.Terminal)
	}

	if got := n.Iterate(complex(-3, 0.5)); !got.Escaped || n.Nearest(got.Terminal) != 1 {
		t.Errorf("Iterate(-3+0.5i) = %+v, want convergence to -1", got)
	}
}

func TestNewtonDegenerate(t *testing.T) {
	n := Newton{
		Roots:         []complex128{1, -1},
		Weight:        1,
		RadiusSq:      1e-6,
		MaxIterations: 50,
	}

	// On the imaginary axis the sum 1/(z-1) + 1/(z+1) vanishes at z = 0.
	if got := n.Iterate(0); got.Escaped {
		t.Errorf("Iterate(0) = %+v, want non-convergence", got)
	}

	// Starting exactly on a root is degenerate but already converged.
	if got := n.Iterate(1); !got.Escaped || got.Index != 0 {
		t.Errorf("Iterate(1) = %+v, want convergence at step 0", got)
	}

	if _, ok := n.Next(0); ok {
		t.Error("Next(0) ok, want degenerate")
	}
	if next, ok := n.Next(2); !ok || cmplx.Abs(next-1.25) > 1e-12 {
		t.Errorf("Next(2) = %v, %t, want 1.25, true", next, ok)
	}
}
