package spectral

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// FFT wraps the go-dsp FFT for real-valued audio frames
type FFT struct{}

// NewFFT creates a new FFT wrapper
func NewFFT() *FFT {
	return &FFT{}
}

// Compute computes the FFT of a real signal
func (f *FFT) Compute(signal []float64) []complex128 {
	if len(signal) == 0 {
		return []complex128{}
	}
	return fft.FFTReal(signal)
}

// MagnitudeSpectrum computes the single-sided amplitude spectrum of a
// real signal. Only positive frequencies (DC through Nyquist) are
// returned, scaled by 2/N so bin values approximate component
// amplitudes of the time-domain signal.
func (f *FFT) MagnitudeSpectrum(signal []float64) []float64 {
	if len(signal) == 0 {
		return nil
	}

	spectrum := f.Compute(signal)
	numBins := len(spectrum)/2 + 1
	numBins = min(len(spectrum), numBins)

	scale := 2.0 / float64(len(signal))
	magnitude := make([]float64, numBins)
	for i := 0; i < numBins; i++ {
		magnitude[i] = cmplx.Abs(spectrum[i]) * scale
	}

	return magnitude
}

// FrequencyBins returns the center frequency of each positive-frequency
// bin for the given FFT size and sample rate
func FrequencyBins(fftSize, sampleRate int) []float64 {
	numBins := fftSize/2 + 1
	freqs := make([]float64, numBins)
	for i := 0; i < numBins; i++ {
		freqs[i] = float64(i) * float64(sampleRate) / float64(fftSize)
	}
	return freqs
}
