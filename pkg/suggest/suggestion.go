package suggest

// Suggestion is one candidate correction for a bad word.
type Suggestion struct {
	Word string
	// OrgLen is the length, in bytes of the original bad-word text,
	// that this suggestion replaces (a split/compound suggestion can
	// replace more than the word that triggered it).
	OrgLen int
	// Score is the primary score; lower is better.
	Score int
	// AltScore is the secondary score (typically the sound-alike
	// rescoring, or the edit-distance rescoring in 'double' mode).
	AltScore int
	// HasAltScore reports whether AltScore has actually been computed.
	HasAltScore bool
	// Language names which dictionary produced this suggestion.
	Language string
	// Phonetic marks a suggestion that came from the sound-fold search
	// rather than the direct trie walk.
	Phonetic bool
}

// withAltScore returns a copy of s with its alt score set.
func (s Suggestion) withAltScore(alt int) Suggestion {
	s.AltScore = alt
	s.HasAltScore = true
	return s
}
