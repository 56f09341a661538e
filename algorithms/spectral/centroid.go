package spectral

import (
	"math"

	"github.com/mixtape-labs/moodcore/algorithms/common"
)

// Centroid computes the spectral centroid (magnitude-weighted mean
// frequency) of a magnitude spectrum
func Centroid(spectrum, freqs []float64) float64 {
	if len(spectrum) != len(freqs) {
		return 0.0
	}

	numerator := 0.0
	denominator := 0.0

	for i := range spectrum {
		numerator += freqs[i] * spectrum[i]
		denominator += spectrum[i]
	}

	return numerator / (denominator + common.Epsilon)
}

// Spread computes the spectral spread (second moment around the
// centroid), a measure of how wide the spectrum is
func Spread(spectrum, freqs []float64, centroid float64) float64 {
	if len(spectrum) != len(freqs) {
		return 0.0
	}

	numerator := 0.0
	denominator := 0.0

	for i := range spectrum {
		diff := freqs[i] - centroid
		numerator += diff * diff * spectrum[i]
		denominator += spectrum[i]
	}

	return math.Sqrt(numerator / (denominator + common.Epsilon))
}

// Brightness maps the centroid to [0, 1] relative to the Nyquist
// frequency. A centroid at Nyquist yields 1, a centroid at DC yields 0.
func Brightness(centroid float64, sampleRate int) float64 {
	nyquist := float64(sampleRate) / 2.0
	return common.Clamp01(centroid / (nyquist + common.Epsilon))
}
