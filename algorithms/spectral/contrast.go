package spectral

import (
	"math"
	"sort"
)

// contrastBands is the number of sub-bands used for contrast analysis
const contrastBands = 6

// Contrast computes a spectral contrast measure: the mean log ratio
// between peak and valley magnitudes across frequency sub-bands,
// expressed in dB. Tonal material with pronounced peaks scores high,
// flat or silent spectra score near 0.
func Contrast(spectrum []float64) float64 {
	if len(spectrum) < contrastBands*2 {
		return 0.0
	}

	bandSize := len(spectrum) / contrastBands
	total := 0.0

	for b := 0; b < contrastBands; b++ {
		start := b * bandSize
		end := start + bandSize
		if b == contrastBands-1 {
			end = len(spectrum)
		}

		band := make([]float64, end-start)
		copy(band, spectrum[start:end])
		sort.Float64s(band)

		// Top and bottom quintiles of the band
		n := len(band) / 5
		if n < 1 {
			n = 1
		}

		valley := 0.0
		for i := 0; i < n; i++ {
			valley += band[i]
		}
		valley /= float64(n)

		peak := 0.0
		for i := len(band) - n; i < len(band); i++ {
			peak += band[i]
		}
		peak /= float64(n)

		total += 20.0 * math.Log10((peak+1e-10)/(valley+1e-10))
	}

	return total / float64(contrastBands)
}
