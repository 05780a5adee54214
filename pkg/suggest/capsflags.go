package suggest

import "unicode"

// CapsFlags classifies the capitalization pattern of a word: computed
// once from the original bad word and carried through the search so a
// produced dictionary word can be re-cased to match, or penalized when
// it can't be.
type CapsFlags int

const (
	// NoCap means the word has no uppercase letters at all.
	NoCap CapsFlags = iota
	// OneCap means exactly the first letter is uppercase.
	OneCap
	// AllCap means every letter is uppercase.
	AllCap
	// MixCap means uppercase letters appear in some other pattern
	// (not just the first letter, not all of them).
	MixCap
)

// ClassifyCaps inspects word and returns its fold-cased form alongside
// the caps-flags pattern it exhibited.
func ClassifyCaps(word string) (string, CapsFlags) {
	runes := []rune(word)
	if len(runes) == 0 {
		return word, NoCap
	}

	upperCount := 0
	letterCount := 0
	firstIsUpper := false
	for i, r := range runes {
		if !unicode.IsLetter(r) {
			continue
		}
		letterCount++
		if unicode.IsUpper(r) {
			upperCount++
			if i == 0 {
				firstIsUpper = true
			}
		}
	}

	folded := make([]rune, len(runes))
	for i, r := range runes {
		folded[i] = unicode.ToLower(r)
	}

	switch {
	case upperCount == 0:
		return string(folded), NoCap
	case upperCount == letterCount:
		return string(folded), AllCap
	case upperCount == 1 && firstIsUpper:
		return string(folded), OneCap
	default:
		return string(folded), MixCap
	}
}

// Apply re-cases a fold-case dictionary word to match flags, the way
// vim-spell's make_case_word re-cases a suggestion. AllCap upcases
// everything; OneCap upcases the first letter only; MixCap and NoCap
// leave word untouched (MixCap patterns are irregular enough that the
// caller should prefer an exact KEEPCAP match instead of guessing).
func (flags CapsFlags) Apply(word string) string {
	switch flags {
	case AllCap:
		runes := []rune(word)
		for i, r := range runes {
			runes[i] = unicode.ToUpper(r)
		}
		return string(runes)
	case OneCap:
		runes := []rune(word)
		if len(runes) > 0 {
			runes[0] = unicode.ToUpper(runes[0])
		}
		return string(runes)
	default:
		return word
	}
}

// Mismatch reports whether a produced word's own casing disagrees with
// flags enough to earn the case penalty: the word came out of the
// fold-case trie in lowercase, so a mismatch exists whenever flags asks
// for anything but NoCap and the caller hasn't already re-cased it
// through Apply.
func (flags CapsFlags) Mismatch() bool {
	return flags != NoCap
}
