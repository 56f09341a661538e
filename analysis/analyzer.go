package analysis

import (
	"sync"

	"github.com/mixtape-labs/moodcore/algorithms/spectral"
	"github.com/mixtape-labs/moodcore/algorithms/temporal"
	"github.com/mixtape-labs/moodcore/algorithms/tonal"
	"github.com/mixtape-labs/moodcore/algorithms/windowing"
	"github.com/mixtape-labs/moodcore/logging"
)

// AnalyzerConfig holds spectral analyzer parameters
type AnalyzerConfig struct {
	SampleRate int `json:"sample_rate"` // Hz
	FFTSize    int `json:"fft_size"`    // Frame size for the spectrum
}

// DefaultAnalyzerConfig returns the default analyzer configuration:
// 4096-sample FFT at 44100 Hz
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		SampleRate: 44100,
		FFTSize:    4096,
	}
}

// SpectralAnalyzer converts raw sample buffers into SpectralFeatures.
//
// The analyzer is deterministic except for one piece of state: the
// previous frame's magnitude spectrum, retained solely for flux
// computation and guarded by a mutex. Concurrent analyses must each use
// their own analyzer instance so flux state is never shared; the
// streaming coordinator maintains one analyzer per worker.
type SpectralAnalyzer struct {
	cfg    AnalyzerConfig
	fft    *spectral.FFT
	window *windowing.Hann
	freqs  []float64
	tempo  *temporal.TempoEstimator
	logger logging.Logger

	mu            sync.Mutex
	prevMagnitude []float64
}

// NewSpectralAnalyzer creates a spectral analyzer with the default
// configuration
func NewSpectralAnalyzer(sampleRate int) *SpectralAnalyzer {
	cfg := DefaultAnalyzerConfig()
	cfg.SampleRate = sampleRate
	return NewSpectralAnalyzerWithConfig(cfg)
}

// NewSpectralAnalyzerWithConfig creates a spectral analyzer with custom
// parameters
func NewSpectralAnalyzerWithConfig(cfg AnalyzerConfig) *SpectralAnalyzer {
	return &SpectralAnalyzer{
		cfg:    cfg,
		fft:    spectral.NewFFT(),
		window: windowing.NewHann(cfg.FFTSize, true),
		freqs:  spectral.FrequencyBins(cfg.FFTSize, cfg.SampleRate),
		tempo:  temporal.NewTempoEstimator(cfg.SampleRate),
		logger: logging.WithFields(logging.Fields{
			"component":   "spectral_analyzer",
			"sample_rate": cfg.SampleRate,
			"fft_size":    cfg.FFTSize,
		}),
	}
}

// Analyze computes the spectral feature set for a buffer of samples.
// An empty buffer yields nil; callers treat the absence of a result as
// a no-op, not an error.
//
// The spectrum is computed over the first FFTSize samples (zero-padded
// when the buffer is shorter); time-domain measures use the full
// buffer.
func (sa *SpectralAnalyzer) Analyze(samples []float64) *SpectralFeatures {
	if len(samples) == 0 {
		return nil
	}

	// Windowed frame for the spectrum
	frame := make([]float64, sa.cfg.FFTSize)
	copy(frame, samples)
	if err := sa.window.ApplyInPlace(frame); err != nil {
		sa.logger.Error(err, "Failed to apply analysis window")
		return nil
	}

	magnitude := sa.fft.MagnitudeSpectrum(frame)

	// Flux needs the previous frame's magnitude spectrum, the one piece
	// of analyzer state
	sa.mu.Lock()
	flux := spectral.Flux(magnitude, sa.prevMagnitude)
	sa.prevMagnitude = magnitude
	sa.mu.Unlock()

	bands := spectral.ComputeBandEnergies(magnitude, sa.freqs)
	centroid := spectral.Centroid(magnitude, sa.freqs)

	tempo, beatStrength := sa.tempo.Estimate(samples)

	// 10 ms envelope frames so dynamic range resolves inside a single
	// analysis buffer
	drFrame := sa.cfg.SampleRate / 100
	if drFrame < 2 {
		drFrame = 2
	}

	features := &SpectralFeatures{
		Centroid:         centroid,
		Spread:           spectral.Spread(magnitude, sa.freqs, centroid),
		Rolloff:          spectral.Rolloff(magnitude, sa.freqs, 0.85),
		Flux:             flux,
		BassEnergy:       bands.Bass,
		MidEnergy:        bands.Mid,
		TrebleEnergy:     bands.Treble,
		Brightness:       spectral.Brightness(centroid, sa.cfg.SampleRate),
		HarmonicRatio:    tonal.HarmonicRatio(samples, sa.cfg.SampleRate),
		SpectralContrast: spectral.Contrast(magnitude),
		ZeroCrossingRate: spectral.ZeroCrossingRate(samples, sa.cfg.SampleRate),
		SpectralFlatness: spectral.Flatness(magnitude),
		DynamicRange:     temporal.DynamicRange(samples, drFrame, drFrame/2),
		EstimatedTempo:   tempo,
		BeatStrength:     beatStrength,
	}

	sa.logger.Debug("Buffer analyzed", logging.Fields{
		"frame_length": len(samples),
		"centroid":     features.Centroid,
		"tempo":        features.EstimatedTempo,
	})

	return features
}

// Reset clears the flux state so the next analyzed frame starts a new
// stream
func (sa *SpectralAnalyzer) Reset() {
	sa.mu.Lock()
	sa.prevMagnitude = nil
	sa.mu.Unlock()
}

// Config returns the analyzer configuration
func (sa *SpectralAnalyzer) Config() AnalyzerConfig {
	return sa.cfg
}
