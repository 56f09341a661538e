package spectral

// ZeroCrossingRate computes the zero-crossing rate of a time-domain
// signal in crossings per second. Noisy and speech-like signals cross
// often, low tonal content crosses rarely.
func ZeroCrossingRate(signal []float64, sampleRate int) float64 {
	if len(signal) < 2 || sampleRate <= 0 {
		return 0.0
	}

	crossings := 0
	for i := 1; i < len(signal); i++ {
		if (signal[i-1] >= 0) != (signal[i] >= 0) {
			crossings++
		}
	}

	duration := float64(len(signal)) / float64(sampleRate)
	return float64(crossings) / duration
}
