package transforms

// A Result is the outcome of iterating a single sample point.
type Result struct {
	// Escaped is whether the orbit left the escape radius, or for root-basin kernels, whether
	// it settled near a root.
	Escaped bool

	// Index is the 0-based step at which the orbit escaped or converged.
	Index int

	// Terminal is the iterate at step Index.
	Terminal complex128
}

// A Kernel decides, for one sample point, whether and when its orbit escapes or converges.
type Kernel interface {
	Iterate(p complex128) Result
}

// Space selects which term of the iteration a sample point sets.
type Space int

const (
	// CSpace fixes the initial value and varies the constant term per sample.
	CSpace Space = iota
	// ZSpace fixes the constant term and varies the initial value per sample.
	ZSpace
)

func (s Space) String() string {
	switch s {
	case CSpace:
		return "C-space"
	case ZSpace:
		return "Z-space"
	default:
		return "unknown"
	}
}

// EscapeRadiusSq is the squared modulus beyond which power-map orbits are considered escaped.
const EscapeRadiusSq = 4.0

// SqrMod is the squared modulus of z.
func SqrMod(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}
