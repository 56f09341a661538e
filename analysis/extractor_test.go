package analysis

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertBounded(t *testing.T, f AudioFeatures) {
	t.Helper()
	for name, v := range map[string]float64{
		"energy":           f.Energy,
		"valence":          f.Valence,
		"danceability":     f.Danceability,
		"acousticness":     f.Acousticness,
		"instrumentalness": f.Instrumentalness,
		"speechiness":      f.Speechiness,
		"liveness":         f.Liveness,
	} {
		assert.GreaterOrEqual(t, v, 0.0, "%s below range", name)
		assert.LessOrEqual(t, v, 1.0, "%s above range", name)
	}
}

func TestExtractAllZero(t *testing.T) {
	f := NewFeatureExtractor().Extract(&SpectralFeatures{})

	assertBounded(t, f)
	assert.Equal(t, 0.0, f.Energy)
	assert.Equal(t, 0.0, f.Valence)
	// Empty spectrum still carries full acousticness by formula
	assert.Equal(t, 1.0, f.Acousticness)
}

func TestExtractAllMax(t *testing.T) {
	sf := &SpectralFeatures{
		Centroid:         math.MaxFloat64,
		Spread:           math.MaxFloat64,
		Rolloff:          math.MaxFloat64,
		Flux:             math.MaxFloat64,
		BassEnergy:       math.MaxFloat64,
		MidEnergy:        math.MaxFloat64,
		TrebleEnergy:     math.MaxFloat64,
		Brightness:       math.MaxFloat64,
		HarmonicRatio:    math.MaxFloat64,
		SpectralContrast: math.MaxFloat64,
		ZeroCrossingRate: math.MaxFloat64,
		SpectralFlatness: math.MaxFloat64,
		DynamicRange:     math.MaxFloat64,
		EstimatedTempo:   math.MaxFloat64,
		BeatStrength:     math.MaxFloat64,
	}

	assertBounded(t, NewFeatureExtractor().Extract(sf))
}

func TestExtractFuzzedInputsStayBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	extractor := NewFeatureExtractor()

	// Adversarial magnitudes, including negatives the analyzer would
	// never produce: the clamp must hold regardless
	wild := func() float64 {
		return (rng.Float64() - 0.5) * math.Pow(10, float64(rng.Intn(9)-2))
	}

	for i := 0; i < 10000; i++ {
		sf := &SpectralFeatures{
			Flux:             wild(),
			BassEnergy:       wild(),
			MidEnergy:        wild(),
			TrebleEnergy:     wild(),
			Brightness:       wild(),
			HarmonicRatio:    wild(),
			SpectralContrast: wild(),
			ZeroCrossingRate: wild(),
			SpectralFlatness: wild(),
			DynamicRange:     wild(),
			EstimatedTempo:   wild(),
			BeatStrength:     wild(),
		}
		assertBounded(t, extractor.Extract(sf))
	}
}

func TestExtractDeterministic(t *testing.T) {
	sf := &SpectralFeatures{
		BassEnergy:       0.4,
		MidEnergy:        0.3,
		TrebleEnergy:     0.2,
		Brightness:       0.5,
		HarmonicRatio:    0.6,
		SpectralContrast: 12,
		ZeroCrossingRate: 1500,
		SpectralFlatness: 0.25,
		DynamicRange:     30,
		Flux:             4,
		EstimatedTempo:   110,
		BeatStrength:     0.8,
	}

	extractor := NewFeatureExtractor()
	first := extractor.Extract(sf)
	second := extractor.Extract(sf)
	assert.Equal(t, first, second)
}

func TestExtractFormulaValues(t *testing.T) {
	// Hand-computed expectations for a representative input
	sf := &SpectralFeatures{
		BassEnergy:       0.5,
		MidEnergy:        0.4,
		TrebleEnergy:     0.2,
		Brightness:       0.5,
		HarmonicRatio:    0.6,
		SpectralContrast: 10,
		ZeroCrossingRate: 1500,
		SpectralFlatness: 0.25,
		DynamicRange:     30,
		Flux:             5,
		EstimatedTempo:   110,
		BeatStrength:     0.8,
	}

	f := NewFeatureExtractor().Extract(sf)

	// energy = 0.7*(0.4*0.5 + 0.3*0.4 + 0.3*0.2) + 0.3*min(1, 0.5*1.2)
	require.InDelta(t, 0.7*0.38+0.3*0.6, f.Energy, 1e-12)
	// valence = 0.3*0.6 + 0.3*0.5 + 0.4*min(1, 0.6/1.5)
	require.InDelta(t, 0.18+0.15+0.4*0.4, f.Valence, 1e-12)
	// danceability = 0.7*0.8 + 0.3*(1 - 0/50)
	require.InDelta(t, 0.56+0.3, f.Danceability, 1e-12)
	// acousticness = 1 - (0.5+0.2)/2
	require.InDelta(t, 0.65, f.Acousticness, 1e-12)
	// instrumentalness = 0.6*(10/20) + 0.4*0.6
	require.InDelta(t, 0.3+0.24, f.Instrumentalness, 1e-12)
	// speechiness = 0.7*(1500/3000) + 0.3*(0.25*2)
	require.InDelta(t, 0.35+0.15, f.Speechiness, 1e-12)
	// liveness = 0.6*(30/60) + 0.4*(5/10)
	require.InDelta(t, 0.3+0.2, f.Liveness, 1e-12)
	// tempo passes through unclamped
	require.Equal(t, 110.0, f.Tempo)
}
