package tonal

import (
	"github.com/mixtape-labs/moodcore/algorithms/common"
)

// Pitch search range for periodicity analysis, in Hz
const (
	MinPitchHz = 80.0
	MaxPitchHz = 1000.0
)

// HarmonicRatio estimates how harmonic (periodic) a signal is, in
// [0, 1]. It is the peak normalized autocorrelation within the pitch
// lag range: near 1 for a pure tone, near 0 for noise or silence.
func HarmonicRatio(signal []float64, sampleRate int) float64 {
	if len(signal) == 0 || sampleRate <= 0 {
		return 0.0
	}

	minLag := int(float64(sampleRate) / MaxPitchHz)
	maxLag := int(float64(sampleRate) / MinPitchHz)

	if minLag < 1 {
		minLag = 1
	}
	if maxLag >= len(signal)/2 {
		maxLag = len(signal)/2 - 1
	}
	if maxLag <= minLag {
		return 0.0
	}

	autocorr := common.Autocorrelation(signal, maxLag+1)
	if len(autocorr) <= minLag {
		return 0.0
	}

	peak := 0.0
	for lag := minLag; lag < len(autocorr); lag++ {
		if autocorr[lag] > peak {
			peak = autocorr[lag]
		}
	}

	return common.Clamp01(peak)
}
