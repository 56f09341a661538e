package temporal

import (
	"math"
)

// ComputeRMSEnvelope computes the frame-wise RMS energy envelope of a
// signal. Frames shorter than frameSize at the tail are dropped.
func ComputeRMSEnvelope(signal []float64, frameSize, hopSize int) []float64 {
	if len(signal) < frameSize || frameSize <= 0 || hopSize <= 0 {
		return nil
	}

	numFrames := (len(signal)-frameSize)/hopSize + 1
	envelope := make([]float64, numFrames)

	for f := 0; f < numFrames; f++ {
		start := f * hopSize
		sumSquares := 0.0
		for i := start; i < start+frameSize; i++ {
			sumSquares += signal[i] * signal[i]
		}
		envelope[f] = math.Sqrt(sumSquares / float64(frameSize))
	}

	return envelope
}
