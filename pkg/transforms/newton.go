package transforms

import (
	"math"
	"math/cmplx"
)

// Newton iterates z ← z - 1/Σ(Weight/(z-r)) over Roots.
//
// With Weight 1 this is Newton's method for the polynomial whose zeros are Roots. An orbit
// converges once it comes within sqrt(RadiusSq) of any root.
type Newton struct {
	Roots         []complex128
	Weight        complex128
	RadiusSq      float64
	MaxIterations int
}

// Next applies one step. ok is false when the step is numerically degenerate: z sits on a root,
// the sum vanishes, or the result is not finite.
func (n Newton) Next(z complex128) (next complex128, ok bool) {
	var sum complex128
	for _, r := range n.Roots {
		d := z - r
		if d == 0 {
			return z, false
		}
		sum += n.Weight / d
	}

	if sum == 0 || cmplx.IsInf(sum) || cmplx.IsNaN(sum) {
		return z, false
	}

	next = z - 1/sum
	if cmplx.IsInf(next) || cmplx.IsNaN(next) {
		return z, false
	}

	return next, true
}

// Converged reports whether z lies inside the convergence radius of any root.
func (n Newton) Converged(z complex128) bool {
	for _, r := range n.Roots {
		if SqrMod(z-r) < n.RadiusSq {
			return true
		}
	}
	return false
}

// Nearest returns the index of the root closest to z.
func (n Newton) Nearest(z complex128) int {
	best, k := math.Inf(1), 0
	for i, r := range n.Roots {
		if d := SqrMod(z - r); d < best {
			best, k = d, i
		}
	}
	return k
}

func (n Newton) Iterate(p complex128) Result {
	z := p

	for i := 0; i < n.MaxIterations; i++ {
		next, ok := n.Next(z)
		if !ok {
			// A degenerate step can never move z again, so the orbit ends here.
			if n.Converged(z) {
				return Result{Escaped: true, Index: i, Terminal: z}
			}
			return Result{Terminal: z}
		}

		z = next
		if n.Converged(z) {
			return Result{Escaped: true, Index: i, Terminal: z}
		}
	}

	return Result{Terminal: z}
}

var _ Kernel = Newton{}
