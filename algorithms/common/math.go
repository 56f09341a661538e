package common

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Epsilon guards denominators against division by zero on silent input
const Epsilon = 1e-10

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// Variance calculates the sample variance of a slice using gonum
func Variance(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return stat.Variance(data, nil)
}

// StandardDeviation calculates the sample standard deviation
func StandardDeviation(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return math.Sqrt(Variance(data))
}

// Sum calculates the sum of a slice using gonum
func Sum(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Sum(data)
}

// Max returns the largest value in data, or 0 for an empty slice
func Max(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Max(data)
}

// Min returns the smallest value in data, or 0 for an empty slice
func Min(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Min(data)
}

// RMS calculates root mean square
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sumSquares := 0.0
	for _, val := range data {
		sumSquares += val * val
	}

	return math.Sqrt(sumSquares / float64(len(data)))
}

// Clamp01 clamps v to the [0, 1] interval. NaN clamps to 0 so a
// degenerate upstream ratio can never escape the bounded range.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0.0
	}
	if v > 1 {
		return 1.0
	}
	return v
}

// Autocorrelation calculates the normalized autocorrelation function of
// signal up to maxLag. The signal mean is removed first so a constant
// offset does not dominate the correlation. Result[0] is 1 for any
// non-constant signal; a constant or empty signal yields all zeros.
func Autocorrelation(signal []float64, maxLag int) []float64 {
	if maxLag > len(signal) {
		maxLag = len(signal)
	}
	if maxLag <= 0 {
		return nil
	}

	centered := make([]float64, len(signal))
	copy(centered, signal)
	mean := Mean(signal)
	for i := range centered {
		centered[i] -= mean
	}

	autocorr := make([]float64, maxLag)
	for lag := 0; lag < maxLag; lag++ {
		sum := 0.0
		count := 0
		for i := 0; i < len(centered)-lag; i++ {
			sum += centered[i] * centered[i+lag]
			count++
		}
		if count > 0 {
			autocorr[lag] = sum / float64(count)
		}
	}

	// Normalize by zero-lag energy
	if autocorr[0] > Epsilon {
		norm := autocorr[0]
		for i := range autocorr {
			autocorr[i] /= norm
		}
	} else {
		for i := range autocorr {
			autocorr[i] = 0.0
		}
	}

	return autocorr
}
