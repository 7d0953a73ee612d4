package transforms

import "math/cmplx"

// PowerMap iterates z ← z^Exponent + c.
//
// In CSpace, z starts at Seed and c is the sample point. In ZSpace, z starts at the sample point
// and c is Seed. With Reflect set, z is folded into the first quadrant before every power step,
// which gives the "burning ship" family.
type PowerMap struct {
	Exponent      complex128
	Seed          complex128
	Space         Space
	Reflect       bool
	MaxIterations int
}

// NewMandelbrot returns the multibrot kernel z ← z^n + p starting from z0.
func NewMandelbrot(n, z0 complex128, maxIterations int) PowerMap {
	return PowerMap{Exponent: n, Seed: z0, Space: CSpace, MaxIterations: maxIterations}
}

// Start returns the initial value and constant term for sample point p.
func (m PowerMap) Start(p complex128) (z, c complex128) {
	if m.Space == ZSpace {
		return p, m.Seed
	}
	return m.Seed, p
}

// Next applies one step of the map.
func (m PowerMap) Next(z, c complex128) complex128 {
	if m.Reflect {
		z = fold(z)
	}
	if m.Exponent == 2 {
		return z*z + c
	}
	return cmplx.Pow(z, m.Exponent) + c
}

func (m PowerMap) Iterate(p complex128) Result {
	z, c := m.Start(p)

	for i := 0; i < m.MaxIterations; i++ {
		z = m.Next(z, c)
		if SqrMod(z) > EscapeRadiusSq {
			return Result{Escaped: true, Index: i, Terminal: z}
		}
	}

	return Result{Terminal: z}
}

// Orbit iterates p like Iterate and also returns every iterate up to and including the escaping
// one. The iterates are appended to orbit[:0] so a worker can reuse one buffer for every sample.
func (m PowerMap) Orbit(p complex128, orbit []complex128) ([]complex128, Result) {
	orbit = orbit[:0]
	z, c := m.Start(p)

	for i := 0; i < m.MaxIterations; i++ {
		z = m.Next(z, c)
		orbit = append(orbit, z)
		if SqrMod(z) > EscapeRadiusSq {
			return orbit, Result{Escaped: true, Index: i, Terminal: z}
		}
	}

	return orbit, Result{Terminal: z}
}

var _ Kernel = PowerMap{}
