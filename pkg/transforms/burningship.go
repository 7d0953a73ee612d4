package transforms

import "math"

// NewBurningShip returns the reflected power map in the given space.
func NewBurningShip(n, seed complex128, space Space, maxIterations int) PowerMap {
	return PowerMap{Exponent: n, Seed: seed, Space: space, Reflect: true, MaxIterations: maxIterations}
}

// fold replaces both parts of z with their absolute values.
func fold(z complex128) complex128 {
	return complex(math.Abs(real(z)), math.Abs(imag(z)))
}
