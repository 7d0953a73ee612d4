package histogram

import "github.com/willbeason/fractal-render/pkg/raster"

// Thresholds route an orbit's hits to a color channel by how quickly the orbit escaped.
//
// Limits are kept in ascending order. Order[i] is the channel that originally owned Limits[i].
type Thresholds struct {
	Limits [3]int
	Order  [3]int
}

// NewThresholds takes one escape-step limit per R, G and B channel, in that order.
func NewThresholds(limits [3]int) Thresholds {
	t := Thresholds{
		Limits: limits,
		Order:  [3]int{raster.R, raster.G, raster.B},
	}

	t.exchange(0, 1)
	t.exchange(1, 2)
	t.exchange(0, 1)

	return t
}

func (t *Thresholds) exchange(i, j int) {
	if t.Limits[i] > t.Limits[j] {
		t.Limits[i], t.Limits[j] = t.Limits[j], t.Limits[i]
		t.Order[i], t.Order[j] = t.Order[j], t.Order[i]
	}
}

// Channel returns the channel credited with an orbit that escaped at step k.
func (t Thresholds) Channel(k int) int {
	switch {
	case k < t.Limits[0]:
		return t.Order[0]
	case k < t.Limits[1]:
		return t.Order[1]
	default:
		return t.Order[2]
	}
}
