package suggest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dexgs/spellsuggest/pkg/dictionary"
	"github.com/dexgs/spellsuggest/pkg/edit"
)

func loadTestDict(t *testing.T, source string) *dictionary.Dictionary {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.dict")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("writing source: %v", err)
	}
	dict, err := dictionary.Load("en", path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return dict
}

func bestScore(t *testing.T, dict *dictionary.Dictionary, bad, want string) (int, bool) {
	t.Helper()
	folded, flags := ClassifyCaps(bad)
	set := NewSuggestionSet(50, ScoreMaxInit)
	banned := dictionary.NewBannedSet()
	walker := NewTrieWalker(dict, "en", folded, flags, banned, set, time.Time{})
	if err := walker.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, s := range set.Finish() {
		if s.Word == want {
			return s.Score, true
		}
	}
	return 0, false
}

func TestTrieWalkerSwapScoresBelowThreshold(t *testing.T) {
	dict := loadTestDict(t, "[WORDS]\nthe\t500\n")
	for _, bad := range []string{"hte", "teh"} {
		score, ok := bestScore(t, dict, bad, "the")
		if !ok {
			t.Fatalf("expected %q to suggest 'the'", bad)
		}
		if score > edit.ScoreSwap {
			t.Fatalf("%q -> the scored %d, want <= %d", bad, score, edit.ScoreSwap)
		}
	}
}

func TestTrieWalkerDuplicateInsertBelowThreshold(t *testing.T) {
	dict := loadTestDict(t, "[WORDS]\nbook\t500\n")
	score, ok := bestScore(t, dict, "bok", "book")
	if !ok {
		t.Fatalf("expected 'bok' to suggest 'book'")
	}
	if score > ScoreInsDup {
		t.Fatalf("bok -> book scored %d, want <= %d", score, ScoreInsDup)
	}
}

func TestTrieWalkerCaseMismatchBelowThreshold(t *testing.T) {
	dict := loadTestDict(t, "[WORDS]\nthe\t500\n")
	score, ok := bestScore(t, dict, "THE", "THE")
	if !ok {
		t.Fatalf("expected 'THE' to suggest itself re-cased")
	}
	if score > edit.ScoreICase {
		t.Fatalf("THE scored %d, want <= %d", score, edit.ScoreICase)
	}
}

func TestTrieWalkerRepRule(t *testing.T) {
	dict := loadTestDict(t, "[WORDS]\nfone\t500\n[REP]\nph\tf\n")
	score, ok := bestScore(t, dict, "phone", "fone")
	if !ok {
		t.Fatalf("expected 'phone' to suggest 'fone' via REP rule")
	}
	if score > ScoreRep {
		t.Fatalf("phone -> fone scored %d, want <= %d", score, ScoreRep)
	}
}

func TestTrieWalkerBannedWordSuppressed(t *testing.T) {
	dict := loadTestDict(t, "[WORDS]\nmonday\t1\tB\ntuesday\t500\n")
	folded, flags := ClassifyCaps("monday")
	set := NewSuggestionSet(50, ScoreMaxInit)
	banned := dictionary.NewBannedSet("monday")
	walker := NewTrieWalker(dict, "en", folded, flags, banned, set, time.Time{})
	if err := walker.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, s := range set.Finish() {
		if s.Word == "monday" {
			t.Fatalf("banned word 'monday' should never be suggested, got %+v", s)
		}
	}
}

func TestTrieWalkerPrefixAcceptedByFlaggedStem(t *testing.T) {
	dict := loadTestDict(t, "[WORDS]\nhappy\t500\tP=1\n[PREFIX]\nun\t1\n")
	score, ok := bestScore(t, dict, "unhappy", "unhappy")
	if !ok {
		t.Fatalf("expected 'unhappy' to be suggested via the postponed prefix")
	}
	if score > edit.ScoreICase {
		t.Fatalf("exact prefix+stem match scored %d, want a near-zero score", score)
	}
}

func TestTrieWalkerPrefixRejectedWithoutStemFlag(t *testing.T) {
	dict := loadTestDict(t, "[WORDS]\nhappy\t500\n[PREFIX]\nun\t1\n")
	_, ok := bestScore(t, dict, "unhappy", "unhappy")
	if ok {
		t.Fatalf("stem without a P=1 flag should not accept the 'un' prefix")
	}
}

func TestTrieWalkerRarePrefixPenalized(t *testing.T) {
	free := loadTestDict(t, "[WORDS]\nhappy\t500\tP=1\n[PREFIX]\nun\t1\n")
	rare := loadTestDict(t, "[WORDS]\nhappy\t500\tPR=1\n[PREFIX]\nun\t1\n")

	freeScore, ok := bestScore(t, free, "unhappy", "unhappy")
	if !ok {
		t.Fatalf("expected free prefix combination to be suggested")
	}
	rareScore, ok := bestScore(t, rare, "unhappy", "unhappy")
	if !ok {
		t.Fatalf("expected rare prefix combination to still be suggested")
	}
	if rareScore <= freeScore {
		t.Fatalf("rare prefix combination scored %d, want higher than the free combination's %d", rareScore, freeScore)
	}
}

func TestTrieWalkerComposingMarkDeleteDiscount(t *testing.T) {
	dict := loadTestDict(t, "[WORDS]\ncafe\t500\n")
	bad := "café" // "e" plus a stray combining acute accent
	score, ok := bestScore(t, dict, bad, "cafe")
	if !ok {
		t.Fatalf("expected %q to suggest 'cafe'", bad)
	}
	if score > ScoreDelComp {
		t.Fatalf("%q -> cafe scored %d, want <= %d", bad, score, ScoreDelComp)
	}
}

func TestTrieWalkerComposingMarkInsertDiscount(t *testing.T) {
	accented := "café" // "e" plus a combining acute accent
	dict := loadTestDict(t, "[WORDS]\n"+accented+"\t500\n")
	score, ok := bestScore(t, dict, "cafe", accented)
	if !ok {
		t.Fatalf("expected 'cafe' to suggest the accented form")
	}
	if score > ScoreInsComp {
		t.Fatalf("cafe -> accented form scored %d, want <= %d", score, ScoreInsComp)
	}
}

func TestTrieWalkerPastDeadlineDoesNotPanic(t *testing.T) {
	dict := loadTestDict(t, "[WORDS]\nthe\t500\nbook\t500\n")
	folded, flags := ClassifyCaps("hte")
	set := NewSuggestionSet(50, ScoreMaxInit)
	banned := dictionary.NewBannedSet()
	walker := NewTrieWalker(dict, "en", folded, flags, banned, set, time.Now().Add(-time.Hour))
	if err := walker.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
}
