package temporal

import (
	"github.com/mixtape-labs/moodcore/algorithms/common"
)

// Tempo search range in BPM. Estimates outside this range fold into
// the default.
const (
	MinTempoBPM     = 60.0
	MaxTempoBPM     = 180.0
	DefaultTempoBPM = 120.0
)

// TempoEstimator estimates tempo and beat strength from the
// periodicity of a signal's energy envelope
type TempoEstimator struct {
	sampleRate int
	frameSize  int
	hopSize    int
}

// NewTempoEstimator creates a tempo estimator for the given sample rate.
// Envelope analysis uses 100 ms frames with 25% hop.
func NewTempoEstimator(sampleRate int) *TempoEstimator {
	frameSize := sampleRate / 10
	return &TempoEstimator{
		sampleRate: sampleRate,
		frameSize:  frameSize,
		hopSize:    frameSize / 4,
	}
}

// Estimate returns the estimated tempo in BPM and a beat strength in
// [0, 1]. Signals too short for envelope analysis, or with no periodic
// envelope peak in the search range, yield the default tempo with zero
// beat strength.
func (te *TempoEstimator) Estimate(signal []float64) (tempo, beatStrength float64) {
	envelope := ComputeRMSEnvelope(signal, te.frameSize, te.hopSize)
	if len(envelope) < 8 {
		return DefaultTempoBPM, 0.0
	}

	// An envelope without real modulation has no beat; without this
	// guard the normalized autocorrelation amplifies numerical ripple
	// on steady tones into phantom periodicity
	if common.StandardDeviation(envelope) < 0.01*common.Mean(envelope) {
		return DefaultTempoBPM, 0.0
	}

	maxLag := len(envelope) * 3 / 4
	autocorr := common.Autocorrelation(envelope, maxLag)
	if len(autocorr) == 0 {
		return DefaultTempoBPM, 0.0
	}

	// Convert the BPM search range to envelope-frame lags
	timePerFrame := float64(te.hopSize) / float64(te.sampleRate)
	minLag := int((60.0 / MaxTempoBPM) / timePerFrame)
	maxSearchLag := int((60.0 / MinTempoBPM) / timePerFrame)

	if minLag < 1 {
		minLag = 1
	}
	if maxSearchLag >= len(autocorr)-1 {
		maxSearchLag = len(autocorr) - 2
	}
	if maxSearchLag < minLag {
		return DefaultTempoBPM, 0.0
	}

	// Highest local maximum in the search range marks the beat period
	bestLag := 0
	bestVal := 0.0
	for lag := minLag; lag <= maxSearchLag; lag++ {
		if autocorr[lag] > autocorr[lag-1] &&
			autocorr[lag] >= autocorr[lag+1] &&
			autocorr[lag] > bestVal {
			bestVal = autocorr[lag]
			bestLag = lag
		}
	}

	if bestLag == 0 {
		return DefaultTempoBPM, 0.0
	}

	period := float64(bestLag) * timePerFrame
	return 60.0 / period, common.Clamp01(bestVal)
}
