package spectral

import (
	"math"
)

// Flatness computes spectral flatness (Wiener entropy): the ratio of
// the geometric mean to the arithmetic mean of the magnitude spectrum.
// Near 1 for noise-like spectra, near 0 for tonal spectra.
func Flatness(spectrum []float64) float64 {
	if len(spectrum) == 0 {
		return 0.0
	}

	logSum := 0.0
	count := 0

	for _, mag := range spectrum {
		if mag > 1e-10 { // avoid log(0)
			logSum += math.Log(mag)
			count++
		}
	}

	if count == 0 {
		return 0.0
	}

	geometricMean := math.Exp(logSum / float64(count))

	arithmeticMean := 0.0
	for _, mag := range spectrum {
		arithmeticMean += mag
	}
	arithmeticMean /= float64(len(spectrum))

	if arithmeticMean == 0 {
		return 0.0
	}

	return geometricMean / arithmeticMean
}
