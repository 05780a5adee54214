// Package dictionary implements the read-only collaborator the
// suggestion engine requires: fold-case, keep-case, prefix and
// sound-fold tries, the REP/REPSAL/MAP affix tables, compound
// constraints, a word-count table, and the phonetic-to-original-word
// expansion buffer. Parsing a dictionary source file and compiling it
// into these structures lives entirely in this package; the engine
// only ever sees the compiled result.
package dictionary

import (
	"github.com/dexgs/spellsuggest/pkg/compound"
	"github.com/dexgs/spellsuggest/pkg/trie"
)

// Dictionary is one loaded language: the tries the TrieWalker searches
// plus the affix-derived tables that shape the search.
type Dictionary struct {
	Name string

	FoldCase  *trie.Trie // primary lookup
	KeepCase  *trie.Trie // exact-case words (KEEPCAP)
	Prefix    *trie.Trie // postponed prefixes
	SoundFold *trie.Trie // phonetic forms

	Rep    *ReplacementTable
	RepSal *ReplacementTable
	Map    *MapTable

	Compound    *compound.RuleSet
	Constraints compound.Constraints

	WordCount *WordCountTable
	SugBuf    *SugBuf

	// SoundFoldFunc is the black-box sound_fold(lang, word) -> phonetic
	// primitive the engine expects; the engine never inspects SAL rules
	// directly.
	SoundFoldFunc func(word string) string
}

// HasSoundFold reports whether this dictionary can sound-fold words at
// all; callers expect 'double' mode to degrade to 'best' silently when it
// can't.
func (d *Dictionary) HasSoundFold() bool {
	return d != nil && d.SoundFoldFunc != nil && d.SoundFold != nil
}

// Fold returns the sound-folded form of word, or word unchanged if this
// dictionary has no sound-folding.
func (d *Dictionary) Fold(word string) string {
	if !d.HasSoundFold() {
		return word
	}
	return d.SoundFoldFunc(word)
}

// SugBuf maps a phonetic spelling to every original word that folds to
// it. vim-spell stores this as delta-encoded ordinal lines into a
// shared text buffer; this package keeps the same logical contract
// (phonetic -> original words) without reproducing the ordinal/delta
// byte layout, which is purely a load-time compression detail of the
// source format and not observable by any engine operation.
type SugBuf struct {
	lines map[string][]string
}

// NewSugBuf builds a SugBuf from a prebuilt phonetic->originals map.
func NewSugBuf(lines map[string][]string) *SugBuf {
	if lines == nil {
		lines = map[string][]string{}
	}
	return &SugBuf{lines: lines}
}

// Lookup returns the original words that sound-fold to phonetic,
// mirroring vim-spell's soundfold_find. The second return is false if
// the phonetic form is entirely unknown; a phonetic string that the
// sound-fold trie itself produced but that Lookup can't expand is a
// logic error elsewhere, not something this method treats as fatal —
// callers should log once and skip the expansion.
func (s *SugBuf) Lookup(phonetic string) ([]string, bool) {
	if s == nil {
		return nil, false
	}
	words, ok := s.lines[phonetic]
	return words, ok
}
