package spectral

import (
	"math"
)

// Flux computes spectral flux between two consecutive magnitude
// spectra. Only positive changes (energy increases) contribute, so
// onsets register strongly while decays do not. Returns 0 when the
// previous spectrum is absent or the sizes differ.
func Flux(current, previous []float64) float64 {
	if len(previous) == 0 || len(current) != len(previous) {
		return 0.0
	}

	sum := 0.0
	for i := range current {
		diff := current[i] - previous[i]
		if diff > 0 {
			sum += diff * diff
		}
	}

	return math.Sqrt(sum)
}
