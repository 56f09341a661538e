package analysis

// Mood is the discrete label derived from an AudioFeatures vector
type Mood string

const (
	MoodEnergetic   Mood = "energetic"
	MoodRelaxed     Mood = "relaxed"
	MoodHappy       Mood = "happy"
	MoodMelancholic Mood = "melancholic"
	MoodFocused     Mood = "focused"
	MoodRomantic    Mood = "romantic"
	MoodAngry       Mood = "angry"
	MoodNeutral     Mood = "neutral"
)

// AllMoods returns every mood label in classification order
func AllMoods() []Mood {
	return []Mood{
		MoodEnergetic,
		MoodRelaxed,
		MoodHappy,
		MoodMelancholic,
		MoodFocused,
		MoodRomantic,
		MoodAngry,
		MoodNeutral,
	}
}

// ClassifyMood maps a feature vector to a mood label via ordered
// threshold rules. Evaluation order is load-bearing: the raw predicates
// overlap, and the first matching rule wins. Deterministic and
// stateless.
func ClassifyMood(f AudioFeatures) Mood {
	switch {
	case f.Energy > 0.7 && f.Tempo > 120:
		if f.Valence > 0.6 {
			return MoodEnergetic
		}
		return MoodAngry

	case f.Energy < 0.4 && f.Tempo < 100:
		if f.Valence > 0.5 {
			return MoodRelaxed
		}
		return MoodMelancholic

	case f.Valence > 0.7:
		return MoodHappy

	case f.Energy > 0.5 && f.Valence > 0.4 && f.Valence < 0.6:
		return MoodFocused

	case f.Energy < 0.6 && f.Valence > 0.5 && f.Valence < 0.8:
		return MoodRomantic

	default:
		return MoodNeutral
	}
}
