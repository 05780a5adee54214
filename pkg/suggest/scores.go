package suggest

import "github.com/dexgs/spellsuggest/pkg/edit"

// Score constants used directly by the TrieWalker/SoundFoldSearch/
// Orchestrator, beyond the ones already defined alongside the scorers
// that own them (edit.Score*, soundalike package, dictionary.Score*).
const (
	ScoreMaxMax = edit.ScoreMaxMax

	ScoreDelDup  = 66
	ScoreDelComp = 28
	ScoreInsDup  = 67
	ScoreInsComp = 30

	ScoreSwap3 = 110
	ScoreRep   = 65

	ScoreSplit   = 149
	ScoreSplitNo = 249

	ScoreRegion = 200
	ScoreRare   = 180

	ScoreFile = 30

	ScoreSfMax1 = 200
	ScoreSfMax2 = 300
	ScoreSfMax3 = 400

	// ScoreMaxInit is the ceiling a fresh TrieWalker search starts with,
	// before the SuggestionSet's soft cap has had a chance to tighten
	// it.
	ScoreMaxInit = 350
	// ScoreLimitMax bounds how far the ceiling can be pushed back out
	// once a search has narrowed it; the overall bound is expressed in
	// terms of this plus the sound-fold ceilings.
	ScoreLimitMax = 350
)

// defaultMaxSuggestions is the display count used when the caller
// hasn't asked for a specific number via the bare-integer grammar.
const defaultMaxSuggestions = 9999

// breakCheckCount is how many search steps elapse between deadline and
// interrupt checks.
const breakCheckCount = 1000

// defaultTimeoutMS is the walker's wall-clock budget when the caller
// hasn't overridden it with 'timeout:'.
const defaultTimeoutMS = 5000
