package suggest

import (
	"context"
	"os"
	"testing"

	"github.com/dexgs/spellsuggest/pkg/dictionary"
	"github.com/dexgs/spellsuggest/pkg/edit"
)

func suggestWords(sugs []Suggestion) []string {
	out := make([]string, len(sugs))
	for i, s := range sugs {
		out[i] = s.Word
	}
	return out
}

func containsWord(sugs []Suggestion, word string) bool {
	for _, s := range sugs {
		if s.Word == word {
			return true
		}
	}
	return false
}

func TestOrchestratorSuggestBasic(t *testing.T) {
	dict := loadTestDict(t, "[WORDS]\nthe\t500\n")
	orch := NewOrchestrator([]*dictionary.Dictionary{dict}, DefaultOptions())
	got, err := orch.Suggest(context.Background(), "hte", "")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if !containsWord(got, "the") {
		t.Fatalf("expected 'the' among suggestions, got %v", suggestWords(got))
	}
}

func TestOrchestratorEmptyWord(t *testing.T) {
	dict := loadTestDict(t, "[WORDS]\nthe\t500\n")
	orch := NewOrchestrator([]*dictionary.Dictionary{dict}, DefaultOptions())
	got, err := orch.Suggest(context.Background(), "", "")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil suggestions for empty word, got %v", got)
	}
}

func TestOrchestratorDoubledWordCollapse(t *testing.T) {
	dict := loadTestDict(t, "[WORDS]\nthe\t500\n")
	orch := NewOrchestrator([]*dictionary.Dictionary{dict}, DefaultOptions())
	got, err := orch.Suggest(context.Background(), "the the", "")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	found := false
	for _, s := range got {
		if s.Word == "the" {
			found = true
			if s.Score > 48 {
				t.Fatalf("doubled word collapse scored %d, want <= 48", s.Score)
			}
		}
	}
	if !found {
		t.Fatalf("expected 'the' among suggestions for doubled word, got %v", suggestWords(got))
	}
}

func TestOrchestratorFastModeSkipsSoundFold(t *testing.T) {
	dict := loadTestDict(t, "[WORDS]\nthe\t500\n")
	orch := NewOrchestrator([]*dictionary.Dictionary{dict}, DefaultOptions())
	got, err := orch.Suggest(context.Background(), "hte", "fast")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if !containsWord(got, "the") {
		t.Fatalf("expected 'the' among fast-mode suggestions, got %v", suggestWords(got))
	}
}

func TestOrchestratorTinyTimeoutDoesNotPanic(t *testing.T) {
	dict := loadTestDict(t, "[WORDS]\nthe\t500\nbook\t500\nbanana\t500\n")
	orch := NewOrchestrator([]*dictionary.Dictionary{dict}, DefaultOptions())
	if _, err := orch.Suggest(context.Background(), "hte", "timeout:1"); err != nil {
		t.Fatalf("Suggest with tiny timeout: %v", err)
	}
}

func TestOrchestratorBannedWordFilteredFromResults(t *testing.T) {
	dict := loadTestDict(t, "[WORDS]\nmonday\t1\tB\ntuesday\t500\n")
	orch := NewOrchestrator([]*dictionary.Dictionary{dict}, DefaultOptions())
	got, err := orch.Suggest(context.Background(), "monday", "")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if containsWord(got, "monday") {
		t.Fatalf("banned word leaked into suggestions: %v", suggestWords(got))
	}
}

type fakeExprSuggester struct {
	words []string
}

func (f fakeExprSuggester) Evaluate(word string) ([]string, error) {
	return f.words, nil
}

func TestOrchestratorExprClauseRunsAlongsideInternal(t *testing.T) {
	dict := loadTestDict(t, "[WORDS]\nthe\t500\n")
	orch := NewOrchestrator([]*dictionary.Dictionary{dict}, DefaultOptions())
	orch.SetExprSuggester(fakeExprSuggester{words: []string{"thx"}})

	got, err := orch.Suggest(context.Background(), "hte", "expr:ignored")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if !containsWord(got, "thx") {
		t.Fatalf("expected expr: suggestion 'thx' present, got %v", suggestWords(got))
	}
	if !containsWord(got, "the") {
		t.Fatalf("expr: clause should not disable the internal method; expected 'the' too, got %v", suggestWords(got))
	}
}

func TestOrchestratorFileClauseRunsAlongsideInternal(t *testing.T) {
	dict := loadTestDict(t, "[WORDS]\nthe\t500\n")
	dir := t.TempDir()
	path := dir + "/replacements.tsv"
	if err := os.WriteFile(path, []byte("hte\tthx\n"), 0o644); err != nil {
		t.Fatalf("writing file suggester source: %v", err)
	}
	orch := NewOrchestrator([]*dictionary.Dictionary{dict}, DefaultOptions())

	got, err := orch.Suggest(context.Background(), "hte", "file:"+path)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if !containsWord(got, "thx") {
		t.Fatalf("expected file: suggestion 'thx' present, got %v", suggestWords(got))
	}
	if !containsWord(got, "the") {
		t.Fatalf("file: clause should not disable the internal method; expected 'the' too, got %v", suggestWords(got))
	}
}

func TestOrchestratorKnownWordOffersCapitalizedVariant(t *testing.T) {
	dict := loadTestDict(t, "[WORDS]\nparis\t500\nParis\t500\tK\n")
	orch := NewOrchestrator([]*dictionary.Dictionary{dict}, DefaultOptions())

	got, err := orch.Suggest(context.Background(), "paris", "")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	found := false
	for _, s := range got {
		if s.Word == "Paris" {
			found = true
			if s.Score > edit.ScoreICase {
				t.Fatalf("capitalized variant scored %d, want <= %d", s.Score, edit.ScoreICase)
			}
		}
	}
	if !found {
		t.Fatalf("expected capitalized variant 'Paris' among suggestions, got %v", suggestWords(got))
	}
}

func TestOrchestratorCacheHit(t *testing.T) {
	dict := loadTestDict(t, "[WORDS]\nthe\t500\n")
	orch := NewOrchestrator([]*dictionary.Dictionary{dict}, DefaultOptions())
	cache := NewResultCache(10)
	orch.SetCache(cache)

	first, err := orch.Suggest(context.Background(), "hte", "")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	stats := cache.Stats()
	if stats["entries"] != 1 {
		t.Fatalf("expected the result to be cached, got stats %+v", stats)
	}

	second, err := orch.Suggest(context.Background(), "hte", "")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("expected cached result to match, got %v vs %v", suggestWords(first), suggestWords(second))
	}
}
