package suggest

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/dexgs/spellsuggest/pkg/dictionary"
	"github.com/dexgs/spellsuggest/pkg/edit"
	"github.com/dexgs/spellsuggest/pkg/soundalike"
)

// SoundFoldSearch walks the sound-fold trie with the same operator set
// the TrieWalker uses, then expands every phonetic hit back into real
// dictionary words and rescores each one against the original bad
// word.
type SoundFoldSearch struct {
	dict  *dictionary.Dictionary
	lang  string
	bad   string // original (not sound-folded) case-folded bad word
	flags CapsFlags
	done  map[string]bool // sl_sounddone: phonetics already expanded
}

// NewSoundFoldSearch prepares a phonetic search for one dictionary.
// Returns false if the dictionary cannot sound-fold at all, per the
// 'double'-without-SAL degrade rule.
func NewSoundFoldSearch(dict *dictionary.Dictionary, lang, badFolded string, flags CapsFlags) (*SoundFoldSearch, bool) {
	if !dict.HasSoundFold() {
		return nil, false
	}
	return &SoundFoldSearch{
		dict:  dict,
		lang:  lang,
		bad:   badFolded,
		flags: flags,
		done:  map[string]bool{},
	}, true
}

// Run walks the phonetic trie at three progressively looser ceilings
// (SCORE_SFMAX1/2/3), stopping early once out has enough candidates,
// expanding and rescoring each phonetic hit into out.
func (s *SoundFoldSearch) Run(out *SuggestionSet, deadline time.Time, minWanted int) {
	badPhon := s.dict.Fold(s.bad)

	for _, ceiling := range []int{ScoreSfMax1, ScoreSfMax2, ScoreSfMax3} {
		if out.Len() >= minWanted {
			return
		}
		phonHits := NewSuggestionSet(minWanted, ceiling)
		walker := NewSoundFoldWalker(s.dict, s.lang, badPhon, phonHits, deadline)
		if err := walker.Run(); err != nil {
			log.Warnf("soundfold search %s: %v", s.lang, err)
			return
		}

		for _, hit := range phonHits.Finish() {
			if s.done[hit.Word] {
				continue
			}
			s.done[hit.Word] = true
			s.expand(hit, out)
		}
	}
}

// expand resolves one phonetic hit back into original spellings via the
// dictionary's expansion buffer, and adds a rescored Suggestion for
// each.
func (s *SoundFoldSearch) expand(hit Suggestion, out *SuggestionSet) {
	originals, ok := s.dict.SugBuf.Lookup(hit.Word)
	if !ok {
		log.Warnf("soundfold search %s: %v for %q", s.lang, ErrPhoneticExpansion, hit.Word)
		return
	}

	for _, orig := range originals {
		regionPenalty := 0
		casePenalty := 0
		if s.flags.Mismatch() {
			casePenalty = edit.ScoreICase
		}
		editScore := edit.Bounded(s.bad, orig, ScoreLimitMax, edit.DefaultOptions())
		if editScore >= ScoreMaxMax {
			continue
		}
		goodScore := regionPenalty + casePenalty + editScore
		final := soundalike.Rescore(goodScore, hit.Score)

		word := orig
		if s.flags.Mismatch() {
			word = s.flags.Apply(orig)
		}
		out.Add(Suggestion{
			Word:        word,
			OrgLen:      len(s.bad),
			Score:       final,
			HasAltScore: true,
			AltScore:    hit.Score,
			Language:    s.lang,
			Phonetic:    true,
		})
	}
}
