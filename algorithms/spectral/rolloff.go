package spectral

// Rolloff computes the frequency below which the given fraction of
// total spectral energy lies. The conventional threshold is 0.85.
func Rolloff(spectrum, freqs []float64, threshold float64) float64 {
	if len(spectrum) == 0 || len(spectrum) != len(freqs) {
		return 0.0
	}

	totalEnergy := 0.0
	for _, mag := range spectrum {
		totalEnergy += mag * mag
	}

	if totalEnergy == 0 {
		return 0.0
	}

	targetEnergy := threshold * totalEnergy
	cumulativeEnergy := 0.0

	for i := range spectrum {
		cumulativeEnergy += spectrum[i] * spectrum[i]
		if cumulativeEnergy >= targetEnergy {
			return freqs[i]
		}
	}

	return freqs[len(freqs)-1]
}
