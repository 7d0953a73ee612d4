package transforms

// NewJulia returns the Julia-style kernel z ← z^n + c where the sample point is the initial z.
func NewJulia(n, c complex128, maxIterations int) PowerMap {
	return PowerMap{Exponent: n, Seed: c, Space: ZSpace, MaxIterations: maxIterations}
}
