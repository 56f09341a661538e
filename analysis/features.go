package analysis

// SpectralFeatures holds the derived spectral statistics for a single
// analyzed buffer. Produced fresh per buffer, immutable once produced.
// All fields are non-negative except SpectralFlux, which is naturally
// signed by definition; energies and ratios are expected, but not
// strictly guaranteed, to lie in [0, 1] before downstream clamping.
type SpectralFeatures struct {
	Centroid         float64 `json:"centroid"`           // Magnitude-weighted mean frequency (Hz)
	Spread           float64 `json:"spread"`             // Second moment around the centroid (Hz)
	Rolloff          float64 `json:"rolloff"`            // Frequency below which 85% of energy lies (Hz)
	Flux             float64 `json:"flux"`               // Frame-to-frame magnitude change
	BassEnergy       float64 `json:"bass_energy"`        // Band energy <250 Hz
	MidEnergy        float64 `json:"mid_energy"`         // Band energy 250 Hz - 4 kHz
	TrebleEnergy     float64 `json:"treble_energy"`      // Band energy >4 kHz
	Brightness       float64 `json:"brightness"`         // Centroid relative to Nyquist [0, 1]
	HarmonicRatio    float64 `json:"harmonic_ratio"`     // Periodicity strength [0, 1]
	SpectralContrast float64 `json:"spectral_contrast"`  // Peak/valley spread across sub-bands (dB)
	ZeroCrossingRate float64 `json:"zero_crossing_rate"` // Crossings per second
	SpectralFlatness float64 `json:"spectral_flatness"`  // Geometric/arithmetic mean ratio [0, 1]
	DynamicRange     float64 `json:"dynamic_range"`      // Envelope max/min ratio (dB)
	EstimatedTempo   float64 `json:"estimated_tempo"`    // BPM
	BeatStrength     float64 `json:"beat_strength"`      // Envelope periodicity strength [0, 1]
}

// AudioFeatures is the normalized public feature vector derived from
// SpectralFeatures. Every field except Tempo is clamped to [0, 1] at
// extraction time. Immutable value type; one produced per processed
// buffer.
type AudioFeatures struct {
	Tempo            float64 `json:"tempo"` // BPM, unbounded positive
	Energy           float64 `json:"energy"`
	Valence          float64 `json:"valence"`
	Danceability     float64 `json:"danceability"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
	Speechiness      float64 `json:"speechiness"`
	Liveness         float64 `json:"liveness"`
}
