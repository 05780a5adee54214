package suggest

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dexgs/spellsuggest/internal/utils"
	"github.com/dexgs/spellsuggest/pkg/dictionary"
	"github.com/dexgs/spellsuggest/pkg/edit"
	"github.com/dexgs/spellsuggest/pkg/soundalike"
)

// Orchestrator sequences the whole suggestion pipeline the engine runs:
// build the bad-word context, run the special-case/trie/sound-fold
// searches across every loaded language in order, and return a single
// merged, capped, sorted list.
type Orchestrator struct {
	dicts []*dictionary.Dictionary
	opts  Options
	cache *ResultCache
	expr  ExprSuggester
}

// NewOrchestrator builds an Orchestrator over dicts, searched in the
// given order, using opts as the default 'spellsuggest' configuration.
func NewOrchestrator(dicts []*dictionary.Dictionary, opts Options) *Orchestrator {
	return &Orchestrator{dicts: dicts, opts: opts}
}

// SetExprSuggester installs the expr: collaborator.
func (o *Orchestrator) SetExprSuggester(e ExprSuggester) { o.expr = e }

// SetCache installs a ResultCache so repeat lookups of an unchanged
// word skip the search entirely.
func (o *Orchestrator) SetCache(c *ResultCache) { o.cache = c }

// Suggest runs the full pipeline for one bad word, using modeRaw as its
// 'spellsuggest' option string (pass "" to use the Orchestrator's
// default Options).
func (o *Orchestrator) Suggest(ctx context.Context, badWord, modeRaw string) ([]Suggestion, error) {
	if badWord == "" || strings.TrimSpace(badWord) == "" {
		return nil, nil
	}
	if !utils.IsValidInput(badWord) {
		return nil, nil
	}

	opts := o.opts
	if modeRaw != "" {
		parsed, err := ParseSpellsuggest(modeRaw)
		if err != nil {
			log.Warnf("spellsuggest: %v, reverting to defaults", err)
		} else {
			opts = parsed
		}
	}

	if o.cache != nil {
		if cached, ok := o.cache.Get(badWord, modeRaw); ok {
			return cached, nil
		}
	}

	folded, flags := ClassifyCaps(badWord)
	if len(folded) > MaxWordLen {
		return nil, ErrWordTooLong
	}

	banned := dictionary.NewBannedSet(folded)
	set := NewSuggestionSet(opts.MaxCount, ScoreMaxInit)

	o.runKnownCapitalized(folded, flags, set)

	deadline := time.Time{}
	if opts.Timeout > 0 {
		deadline = time.Now().Add(opts.Timeout)
	}
	if dl, ok := ctx.Deadline(); ok && (deadline.IsZero() || dl.Before(deadline)) {
		deadline = dl
	}

	// expr:/file: are additional suggestion sources layered onto the
	// internal method, not alternatives to it; the internal method
	// (trySpecial, TrieWalker, SoundFoldSearch) always runs exactly once
	// regardless of which of them are also present in the option string.
	if opts.HasExpr() {
		o.runExpr(folded, flags, set)
	}
	if opts.HasFile() {
		o.runFile(opts.File, folded, flags, set)
	}
	o.runInternal(folded, flags, banned, set, opts, deadline)

	results := set.Finish()
	results = filterBanned(results, banned)

	if o.cache != nil {
		o.cache.Put(badWord, modeRaw, results)
	}
	return results, nil
}

func filterBanned(sugs []Suggestion, banned *dictionary.BannedSet) []Suggestion {
	out := sugs[:0]
	for _, s := range sugs {
		if banned.Banned(s.Word) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// runKnownCapitalized implements step 2 of the orchestrator pipeline:
// when the bad word is already all-lowercase and exactly matches a
// known word, it isn't actually misspelled, but the dictionary may
// still carry a capitalized spelling of the same letters (a proper
// noun homograph). Offer that capitalized form as a SCORE_ICASE
// suggestion rather than silently returning nothing.
func (o *Orchestrator) runKnownCapitalized(word string, flags CapsFlags, set *SuggestionSet) {
	if flags != NoCap {
		return
	}
	titled := OneCap.Apply(word)
	if titled == word {
		return
	}
	for _, dict := range o.dicts {
		if _, ok := dict.FoldCase.Lookup(word); !ok {
			continue
		}
		if _, ok := dict.KeepCase.Lookup(titled); !ok {
			continue
		}
		set.Add(Suggestion{
			Word:     titled,
			OrgLen:   len(word),
			Score:    edit.ScoreICase,
			Language: dict.Name,
		})
	}
}

func (o *Orchestrator) runExpr(word string, flags CapsFlags, set *SuggestionSet) {
	if o.expr == nil {
		return
	}
	goods, err := o.expr.Evaluate(word)
	if err != nil {
		log.Warnf("expr suggester: %v", err)
		return
	}
	for _, g := range goods {
		set.Add(Suggestion{Word: g, OrgLen: len(word), Score: ScoreFile})
	}
}

func (o *Orchestrator) runFile(path string, word string, flags CapsFlags, set *SuggestionSet) {
	fs, err := LoadFileSuggester(path)
	if err != nil {
		log.Warnf("file suggester %s: %v", path, err)
		return
	}
	for _, g := range fs.Suggest(word, flags) {
		set.Add(Suggestion{Word: g, OrgLen: len(word), Score: ScoreFile})
	}
}

// runInternal runs suggest_try_special, TrieWalker, then
// SoundFoldSearch (skipped in 'fast' mode), with 'best' rescoring edit
// hits by phonetic similarity and 'double' keeping both lists apart
// before merging.
func (o *Orchestrator) runInternal(word string, flags CapsFlags, banned *dictionary.BannedSet, set *SuggestionSet, opts Options, deadline time.Time) {
	trySpecial(word, set)

	for _, dict := range o.dicts {
		lang := dict.Name
		editSet := NewSuggestionSet(opts.MaxCount, ScoreMaxInit)
		walker := NewTrieWalker(dict, lang, word, flags, banned, editSet, deadline)
		if err := walker.Run(); err != nil {
			log.Warnf("trie walk %s: %v", lang, err)
		}

		var soundSet *SuggestionSet
		if opts.Method != MethodFast {
			if search, ok := NewSoundFoldSearch(dict, lang, word, flags); ok {
				soundSet = NewSuggestionSet(opts.MaxCount, ScoreMaxInit)
				search.Run(soundSet, deadline, opts.MaxCount)
			}
		}

		switch {
		case opts.Method == MethodDouble && soundSet != nil:
			mergeDouble(editSet.Finish(), soundSet.Finish(), set)
		case opts.Method == MethodBest:
			for _, s := range editSet.Finish() {
				if soundSet != nil {
					s = rescoreAgainstPhonetic(s, soundSet)
				}
				set.Add(s)
			}
			if soundSet != nil {
				for _, s := range soundSet.Finish() {
					set.Add(s)
				}
			}
		default:
			for _, s := range editSet.Finish() {
				set.Add(s)
			}
			if soundSet != nil {
				for _, s := range soundSet.Finish() {
					set.Add(s)
				}
			}
		}
	}
}

// rescoreAgainstPhonetic blends an edit-distance hit's score with the
// phonetic score of the same word, if the sound-fold search also found
// it, using a similar "rescore with SoundAlikeScorer" pass for 'best' mode.
func rescoreAgainstPhonetic(s Suggestion, soundSet *SuggestionSet) Suggestion {
	for _, p := range soundSet.items {
		if p.Word == s.Word {
			return s.withAltScore(soundalike.Rescore(s.Score, p.Score))
		}
	}
	return s
}

// mergeDouble implements the final merge: keep the edit-distance and
// phonetic lists separate, rescore each entry against the other list
// when the same word appears in both, then merge the distinct entries.
func mergeDouble(editHits, soundHits []Suggestion, out *SuggestionSet) {
	soundByWord := make(map[string]Suggestion, len(soundHits))
	for _, s := range soundHits {
		soundByWord[s.Word] = s
	}
	editByWord := make(map[string]Suggestion, len(editHits))
	for _, e := range editHits {
		editByWord[e.Word] = e
	}

	for _, e := range editHits {
		if p, ok := soundByWord[e.Word]; ok {
			e.Score = soundalike.Rescore(e.Score, p.Score)
		}
		out.Add(e)
	}
	for _, p := range soundHits {
		if _, ok := editByWord[p.Word]; ok {
			continue // already merged above
		}
		out.Add(p)
	}
}

// trySpecial is suggest_try_special's doubled-word collapse: "the the"
// folds to "the" at RESCORE(ScoreRep, 0).
func trySpecial(word string, set *SuggestionSet) {
	fields := strings.Fields(word)
	if len(fields) != 2 || fields[0] != fields[1] {
		return
	}
	set.Add(Suggestion{
		Word:        fields[0],
		OrgLen:      len(word),
		Score:       soundalike.Rescore(ScoreRep, 0),
		HasAltScore: true,
		AltScore:    0,
	})
}
