package dictionary

// Frequency tiers for "Frequency bonus" step: a suggestion whose
// dictionary word is observed more often than these thresholds earns a
// bigger discount off its score.
const (
	FreqTier1 = 10
	FreqTier2 = 100
)

// Common-word bonuses, halved when the suggestion came from a split.
const (
	ScoreCommon1 = 30
	ScoreCommon2 = 40
	ScoreCommon3 = 50
)

// WordCountTable is the external word-count collaborator the engine requires:
// word -> observed corpus frequency, absent meaning "never observed".
type WordCountTable struct {
	counts map[string]uint32
}

// NewWordCountTable wraps a prebuilt frequency map.
func NewWordCountTable(counts map[string]uint32) *WordCountTable {
	if counts == nil {
		counts = map[string]uint32{}
	}
	return &WordCountTable{counts: counts}
}

// Count returns the observed frequency of word, and whether it is known
// at all.
func (w *WordCountTable) Count(word string) (uint32, bool) {
	if w == nil {
		return 0, false
	}
	c, ok := w.counts[word]
	return c, ok
}

// Bonus returns the frequency-tier score discount for word, halved if
// split is true (the word is one piece of a split suggestion).
func (w *WordCountTable) Bonus(word string, split bool) int {
	count, ok := w.Count(word)
	if !ok {
		return 0
	}
	var bonus int
	switch {
	case count > FreqTier2:
		bonus = ScoreCommon3
	case count > FreqTier1:
		bonus = ScoreCommon2
	default:
		bonus = ScoreCommon1
	}
	if split {
		bonus /= 2
	}
	return bonus
}
