package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClamp01(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"in range", 0.5, 0.5},
		{"lower bound", 0.0, 0.0},
		{"upper bound", 1.0, 1.0},
		{"negative", -0.3, 0.0},
		{"above one", 1.7, 1.0},
		{"large negative", -1e9, 0.0},
		{"large positive", 1e9, 1.0},
		{"nan", math.NaN(), 0.0},
		{"positive infinity", math.Inf(1), 1.0},
		{"negative infinity", math.Inf(-1), 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clamp01(tt.input))
		})
	}
}

func TestRMS(t *testing.T) {
	assert.Equal(t, 0.0, RMS(nil))
	assert.InDelta(t, 1.0, RMS([]float64{1, -1, 1, -1}), 1e-12)
	assert.InDelta(t, 2.0, RMS([]float64{2, 2, 2}), 1e-12)
}

func TestMeanVariance(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}
	assert.InDelta(t, 3.0, Mean(data), 1e-12)
	assert.InDelta(t, 2.5, Variance(data), 1e-12)
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, Variance([]float64{1}))
}

func TestAutocorrelationPeriodicSignal(t *testing.T) {
	// Period-8 sinusoid: normalized autocorrelation must peak near 1
	// at lag 8
	signal := make([]float64, 256)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * float64(i) / 8.0)
	}

	autocorr := Autocorrelation(signal, 32)
	require.Len(t, autocorr, 32)

	assert.InDelta(t, 1.0, autocorr[0], 1e-9)
	assert.Greater(t, autocorr[8], 0.9)
	// Half period is anti-correlated
	assert.Less(t, autocorr[4], -0.9)
}

func TestAutocorrelationConstantSignal(t *testing.T) {
	// Mean removal leaves nothing; result must be all zeros, not NaN
	signal := make([]float64, 64)
	for i := range signal {
		signal[i] = 0.7
	}

	autocorr := Autocorrelation(signal, 16)
	require.Len(t, autocorr, 16)
	for _, v := range autocorr {
		assert.Equal(t, 0.0, v)
	}
}

func TestAutocorrelationEmpty(t *testing.T) {
	assert.Nil(t, Autocorrelation(nil, 10))
	assert.Nil(t, Autocorrelation([]float64{1, 2}, 0))
}
