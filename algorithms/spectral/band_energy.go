package spectral

// Conventional band-split boundaries. Exact boundaries are not
// load-bearing for downstream heuristics, only directional behavior is.
const (
	BassUpperHz = 250.0
	MidUpperHz  = 4000.0
)

// BandEnergies holds per-band energy integrated over the magnitude
// spectrum, normalized by band width (bin count) so narrow and wide
// bands are comparable
type BandEnergies struct {
	Bass   float64 `json:"bass"`
	Mid    float64 `json:"mid"`
	Treble float64 `json:"treble"`
}

// ComputeBandEnergies integrates magnitude-squared over the bass
// (<250 Hz), mid (250 Hz - 4 kHz) and treble (>4 kHz) bands
func ComputeBandEnergies(spectrum, freqs []float64) BandEnergies {
	var be BandEnergies
	if len(spectrum) == 0 || len(spectrum) != len(freqs) {
		return be
	}

	var bassBins, midBins, trebleBins int

	for i := range spectrum {
		energy := spectrum[i] * spectrum[i]
		switch {
		case freqs[i] < BassUpperHz:
			be.Bass += energy
			bassBins++
		case freqs[i] < MidUpperHz:
			be.Mid += energy
			midBins++
		default:
			be.Treble += energy
			trebleBins++
		}
	}

	if bassBins > 0 {
		be.Bass /= float64(bassBins)
	}
	if midBins > 0 {
		be.Mid /= float64(midBins)
	}
	if trebleBins > 0 {
		be.Treble /= float64(trebleBins)
	}

	return be
}
