package temporal

import (
	"math"

	"github.com/mixtape-labs/moodcore/algorithms/common"
)

// DynamicRange computes the ratio between the loudest and quietest
// envelope frames of a signal, in dB. Signals too short for at least
// two envelope frames, or fully silent signals, yield 0.
func DynamicRange(signal []float64, frameSize, hopSize int) float64 {
	envelope := ComputeRMSEnvelope(signal, frameSize, hopSize)
	if len(envelope) < 2 {
		return 0.0
	}

	loudest := common.Max(envelope)
	quietest := common.Min(envelope)

	if loudest < common.Epsilon {
		return 0.0
	}

	// Floor the quiet frame so a single silent frame does not blow the
	// ratio out to infinity
	const floor = 1e-5
	if quietest < floor {
		quietest = floor
	}

	return 20.0 * math.Log10(loudest/quietest)
}
