package analysis

import (
	"math"

	"github.com/mixtape-labs/moodcore/algorithms/common"
)

// FeatureExtractor maps spectral statistics to the normalized
// AudioFeatures vector using fixed heuristic formulas. The extractor is
// pure and stateless: identical input always yields identical output.
//
// Every bounded output is clamped to [0, 1] after computation; the
// formulas are heuristics and the raw results are never trusted to stay
// in range on their own.
type FeatureExtractor struct{}

// NewFeatureExtractor creates a feature extractor
func NewFeatureExtractor() *FeatureExtractor {
	return &FeatureExtractor{}
}

// Extract computes the normalized feature vector from spectral
// statistics. Tempo passes through unclamped.
func (fe *FeatureExtractor) Extract(sf *SpectralFeatures) AudioFeatures {
	bass := sf.BassEnergy
	mid := sf.MidEnergy
	treble := sf.TrebleEnergy

	energy := common.Clamp01(
		0.7*(0.4*bass+0.3*mid+0.3*treble) +
			0.3*math.Min(1, sf.Brightness*1.2))

	valence := common.Clamp01(
		0.3*sf.HarmonicRatio +
			0.3*sf.Brightness +
			0.4*math.Min(1, (mid+treble)/(bass+1)))

	danceability := common.Clamp01(
		0.7*sf.BeatStrength +
			0.3*(1-math.Abs(sf.EstimatedTempo-110)/50))

	acousticness := common.Clamp01(1 - (bass+treble)/2)

	instrumentalness := common.Clamp01(
		0.6*math.Min(1, sf.SpectralContrast/20) +
			0.4*math.Min(1, sf.HarmonicRatio))

	speechiness := common.Clamp01(
		0.7*math.Min(1, sf.ZeroCrossingRate/3000) +
			0.3*math.Min(1, sf.SpectralFlatness*2))

	liveness := common.Clamp01(
		0.6*math.Min(1, sf.DynamicRange/60) +
			0.4*math.Min(1, sf.Flux/10))

	return AudioFeatures{
		Tempo:            sf.EstimatedTempo,
		Energy:           energy,
		Valence:          valence,
		Danceability:     danceability,
		Acousticness:     acousticness,
		Instrumentalness: instrumentalness,
		Speechiness:      speechiness,
		Liveness:         liveness,
	}
}
