package suggest

import (
	"sort"
	"strconv"
	"strings"
)

// SuggestionSet is the deduplicating, bounded, score-ordered collection
// every search stage accumulates into. Zero value is not usable; use
// NewSuggestionSet.
type SuggestionSet struct {
	maxCount int
	ceiling  int
	items    []Suggestion
	index    map[string]int // (word, orglen) -> position in items
}

// NewSuggestionSet returns an empty set capped, after final cleanup, to
// maxCount visible suggestions, with the search ceiling starting at
// initialCeiling (typically ScoreMaxInit).
func NewSuggestionSet(maxCount, initialCeiling int) *SuggestionSet {
	if maxCount <= 0 {
		maxCount = 9999
	}
	return &SuggestionSet{
		maxCount: maxCount,
		ceiling:  initialCeiling,
		index:    make(map[string]int),
	}
}

// Ceiling is the score a candidate must beat to be worth searching
// further; it tightens every time the soft cap fires.
func (s *SuggestionSet) Ceiling() int { return s.ceiling }

// Len reports the set's current size, before final cleanup.
func (s *SuggestionSet) Len() int { return len(s.items) }

func dedupKey(word string, orgLen int) string {
	var b strings.Builder
	b.WriteString(word)
	b.WriteByte(0)
	b.WriteString(strconv.Itoa(orgLen))
	return b.String()
}

// Add inserts sug, applying the dedup rule on (word, orglen): the lower
// score wins, and if exactly one side already has an alt score it is
// carried over rather than discarded. Add may trigger the soft cap and
// return a tightened ceiling.
func (s *SuggestionSet) Add(sug Suggestion) int {
	key := dedupKey(sug.Word, sug.OrgLen)
	if pos, ok := s.index[key]; ok {
		existing := s.items[pos]
		if sug.Score < existing.Score {
			if !sug.HasAltScore && existing.HasAltScore {
				sug.AltScore, sug.HasAltScore = existing.AltScore, true
			}
			s.items[pos] = sug
		} else if sug.HasAltScore && !existing.HasAltScore {
			existing.AltScore, existing.HasAltScore = sug.AltScore, true
			s.items[pos] = existing
		}
		return s.ceiling
	}

	s.index[key] = len(s.items)
	s.items = append(s.items, sug)

	softCap := sugMaxCount(s.maxCount)
	if len(s.items) > softCap {
		s.sortItems()
		cleanCount := sugCleanCount(s.maxCount)
		if cleanCount < len(s.items) {
			s.items = s.items[:cleanCount]
			s.reindex()
		}
		if n := len(s.items); n > 0 {
			s.ceiling = s.items[n-1].Score
		}
	}
	return s.ceiling
}

// sugMaxCount is SUG_MAX_COUNT: the soft cap that triggers a sort and
// truncate pass.
func sugMaxCount(maxCount int) int {
	base := maxCount + 20
	if base < 150 {
		base = 150
	}
	return base + 50
}

// sugCleanCount is SUG_CLEAN_COUNT: how many entries survive a
// soft-cap trim. Kept comfortably above maxCount so later, better
// insertions still have room to displace worse ones before the final
// cleanup pass applies the user-visible limit.
func sugCleanCount(maxCount int) int {
	clean := maxCount + 20
	if clean < 150 {
		clean = 150
	}
	return clean
}

func (s *SuggestionSet) reindex() {
	for k := range s.index {
		delete(s.index, k)
	}
	for i, it := range s.items {
		s.index[dedupKey(it.Word, it.OrgLen)] = i
	}
}

func (s *SuggestionSet) sortItems() {
	sort.SliceStable(s.items, func(i, j int) bool {
		return less(s.items[i], s.items[j])
	})
}

func less(a, b Suggestion) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	if a.AltScore != b.AltScore {
		return a.AltScore < b.AltScore
	}
	return strings.ToLower(a.Word) < strings.ToLower(b.Word)
}

// Finish performs the final cleanup: sort by (score, altscore,
// lowercase word) and truncate to the user-visible maxCount.
func (s *SuggestionSet) Finish() []Suggestion {
	s.sortItems()
	if len(s.items) > s.maxCount {
		return append([]Suggestion(nil), s.items[:s.maxCount]...)
	}
	return append([]Suggestion(nil), s.items...)
}
