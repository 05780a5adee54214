package suggest

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dexgs/spellsuggest/pkg/dictionary"
	"github.com/dexgs/spellsuggest/pkg/edit"
	"github.com/dexgs/spellsuggest/pkg/trie"
)

// MaxWordLen bounds how long a case-folded bad word, or a good word the
// walker is assembling, may grow. A bad word longer than this is
// ErrWordTooLong; a good word is simply not extended past it.
const MaxWordLen = 256

// TrieWalker is the bounded edit-distance search over a dictionary's
// trie. Vim-spell's own implementation drives the search from a fixed
// array of frames so it never allocates mid-walk; here the walk is
// expressed as native recursion instead. Go's call stack already gives
// the same bounded, copy-on-push-and-pop frame discipline the array was
// emulating, and the depth invariant (depth < MaxWordLen) is checked
// explicitly at every recursive step so the bound still holds.
type TrieWalker struct {
	dict   *dictionary.Dictionary
	lang   string
	bad    string // folded search key (case-folded word, or sound-folded form)
	flags  CapsFlags
	banned *dictionary.BannedSet
	set    *SuggestionSet

	searchTrie *trie.Trie
	repTable   *dictionary.ReplacementTable

	deadline   time.Time
	iterations int
	timedOut   bool
}

// NewTrieWalker prepares a walker for one dictionary against one
// already case-folded bad word, searching the dictionary's fold-case
// trie with its REP table.
func NewTrieWalker(dict *dictionary.Dictionary, lang, badFolded string, flags CapsFlags, banned *dictionary.BannedSet, set *SuggestionSet, deadline time.Time) *TrieWalker {
	return &TrieWalker{
		dict:       dict,
		lang:       lang,
		bad:        badFolded,
		flags:      flags,
		banned:     banned,
		set:        set,
		searchTrie: dict.FoldCase,
		repTable:   dict.Rep,
		deadline:   deadline,
	}
}

// NewSoundFoldWalker prepares a walker over dict's sound-fold trie using
// REPSAL instead of REP, for SoundFoldSearch . The walker's
// terminal handling still applies case/region/frequency scoring, but
// callers treat its SuggestionSet entries as phonetic-form matches to
// be expanded, not final suggestions.
func NewSoundFoldWalker(dict *dictionary.Dictionary, lang, badFolded string, set *SuggestionSet, deadline time.Time) *TrieWalker {
	return &TrieWalker{
		dict:       dict,
		lang:       lang,
		bad:        badFolded,
		set:        set,
		searchTrie: dict.SoundFold,
		repTable:   dict.RepSal,
		deadline:   deadline,
	}
}

// TimedOut reports whether the walk stopped early because its deadline
// or an interrupt fired. Results already in the SuggestionSet remain
// valid either way (deadline or interrupt).
func (w *TrieWalker) TimedOut() bool { return w.timedOut }

// Run walks the dictionary's postponed-prefix tree (if any) and its
// fold-case trie, adding every suggestion found to the SuggestionSet.
func (w *TrieWalker) Run() error {
	if len(w.bad) > MaxWordLen {
		return ErrWordTooLong
	}
	st := walkState{
		good:           make([]byte, 0, MaxWordLen),
		forbidInsertAt: -1,
	}
	if w.dict.Prefix != nil && w.dict.Prefix.Len(w.dict.Prefix.Root()) > 0 && w.searchTrie == w.dict.FoldCase {
		w.walkPrefix(w.dict.Prefix.Root(), st)
	}
	w.walkNode(w.searchTrie, w.searchTrie.Root(), st)
	return nil
}

// walkState carries exactly the per-depth bookkeeping a SearchStack
// frame lists, minus the multi-byte tracking fields: operating on bad
// word bytes directly (ASCII-safe, and UTF-8-safe for the common case
// where edits land on rune boundaries) makes those unnecessary here.
type walkState struct {
	fidx           int
	fidxTry        int
	good           []byte
	score          int
	depth          int
	splitDone      bool
	compoundPieces int
	compoundFlags  string
	forbidInsertAt int
	fromPrefix     bool
	prefixID       uint16
}

func (w *TrieWalker) budgetExceeded() bool {
	w.iterations++
	if w.iterations%breakCheckCount != 0 {
		return false
	}
	if !w.deadline.IsZero() && time.Now().After(w.deadline) {
		w.timedOut = true
	}
	return w.timedOut
}

// walkPrefix walks the postponed-prefix trie; at each prefix terminator
// it jumps into the fold-case tree, remembering (via fromPrefix) that a
// stem terminator there must still validate the prefix against the
// stem's flags.
func (w *TrieWalker) walkPrefix(node int, st walkState) {
	if w.budgetExceeded() || st.depth >= MaxWordLen-1 {
		return
	}
	t := w.dict.Prefix
	for _, e := range t.Terminals(node) {
		next := st
		next.fromPrefix = true
		next.prefixID = e.PrefixID
		w.walkNode(w.dict.FoldCase, w.dict.FoldCase.Root(), next)
	}
	n := t.Len(node)
	for i := 0; i < n; i++ {
		child := t.ChildAt(node, i)
		if child.Terminal {
			continue
		}
		if st.fidx >= len(w.bad) || w.bad[st.fidx] != child.Byte {
			continue
		}
		next := st
		next.good = append(append([]byte{}, st.good...), child.Byte)
		next.fidx++
		next.depth++
		w.walkPrefix(child.Child, next)
	}
}

// walkNode is the core of the state machine: terminal handling, then
// PLAIN and INS, DEL, SWAP, SWAP3/ROT3 and REP, attempted in that order
// at every node.
func (w *TrieWalker) walkNode(t *trie.Trie, node int, st walkState) {
	if w.budgetExceeded() || st.depth >= MaxWordLen-1 {
		return
	}
	ceiling := w.set.Ceiling()
	if st.score >= ceiling {
		return
	}

	w.handleTerminals(t, node, st, ceiling)
	w.tryPlainAndInsert(t, node, st, ceiling)
	w.tryDelete(t, node, st, ceiling)
	w.trySwap(t, node, st, ceiling)
	w.trySwap3Rot3(t, node, st, ceiling)
	w.tryRep(t, node, st, ceiling)
}

// tryPlainAndInsert implements PLAIN (consume a bad-word byte against a
// child) and INS (insert a child byte without consuming one), since
// both iterate the same child set.
func (w *TrieWalker) tryPlainAndInsert(t *trie.Trie, node int, st walkState, ceiling int) {
	n := t.Len(node)
	for i := 0; i < n; i++ {
		child := t.ChildAt(node, i)
		if child.Terminal {
			continue
		}
		if len(st.good) >= MaxWordLen {
			continue
		}

		// PLAIN: match or substitute against the current bad-word byte.
		if st.fidx < len(w.bad) {
			cost := w.substCost(child.Byte, w.bad[st.fidx])
			if st.score+cost < ceiling {
				next := st
				next.good = append(append([]byte{}, st.good...), child.Byte)
				next.fidx++
				next.score += cost
				next.depth++
				w.walkNode(t, child.Child, next)
			}
		}

		// INS: add this child byte without consuming the bad word,
		// forbidden right after a DEL landed at the same position.
		if st.forbidInsertAt != st.fidx {
			cost := edit.ScoreIns
			switch {
			case isComposingMarkLeadByte(child.Byte):
				cost = ScoreInsComp
			case len(st.good) > 0 && st.good[len(st.good)-1] == child.Byte:
				cost = ScoreInsDup
			}
			if st.score+cost < ceiling {
				next := st
				next.good = append(append([]byte{}, st.good...), child.Byte)
				next.score += cost
				next.depth++
				next.forbidInsertAt = -1
				if !isComposingMarkLeadByte(child.Byte) {
					w.walkNode(t, child.Child, next)
					continue
				}
				// A combining mark is inserted as a whole rune: the
				// continuation byte comes along at no extra cost.
				for j := 0; j < t.Len(child.Child); j++ {
					cont := t.ChildAt(child.Child, j)
					if cont.Terminal {
						continue
					}
					full := next
					full.good = append(append([]byte{}, next.good...), cont.Byte)
					full.depth++
					w.walkNode(t, cont.Child, full)
				}
			}
		}
	}
}

// tryDelete implements DEL: skip one byte of the bad word without
// consuming a trie byte.
func (w *TrieWalker) tryDelete(t *trie.Trie, node int, st walkState, ceiling int) {
	if st.fidx >= len(w.bad) {
		return
	}
	cost := edit.ScoreDel
	width := 1
	switch {
	case isComposingMarkAt(w.bad, st.fidx):
		// A combining mark is deleted as a whole rune.
		cost = ScoreDelComp
		_, width = utf8.DecodeRuneInString(w.bad[st.fidx:])
	case st.fidx > 0 && w.bad[st.fidx] == w.bad[st.fidx-1]:
		cost = ScoreDelDup
	case st.fidx == 0 && w.bad[st.fidx] == '*':
		cost = (2 * edit.ScoreDel) / 3
	}
	if st.score+cost >= ceiling {
		return
	}
	next := st
	next.fidx += width
	next.score += cost
	next.depth++
	next.forbidInsertAt = next.fidx
	w.walkNode(t, node, next)
}

// trySwap implements SWAP: adjacent transposition of the next two bad-
// word bytes, taken only when both match a two-deep trie path.
func (w *TrieWalker) trySwap(t *trie.Trie, node int, st walkState, ceiling int) {
	if st.fidx+1 >= len(w.bad) || st.score+edit.ScoreSwap >= ceiling {
		return
	}
	first, ok := t.Find(node, w.bad[st.fidx+1])
	if !ok || first.Terminal {
		return
	}
	second, ok := t.Find(first.Child, w.bad[st.fidx])
	if !ok || second.Terminal {
		return
	}
	next := st
	next.good = append(append([]byte{}, st.good...), w.bad[st.fidx+1], w.bad[st.fidx])
	next.fidx += 2
	next.score += edit.ScoreSwap
	next.depth += 2
	w.walkNode(t, second.Child, next)
}

// trySwap3Rot3 implements SWAP3 (transpose positions 0 and 2, middle
// free) and the two three-letter rotations, all sharing ScoreSwap3.
func (w *TrieWalker) trySwap3Rot3(t *trie.Trie, node int, st walkState, ceiling int) {
	if st.fidx+2 >= len(w.bad) || st.score+ScoreSwap3 >= ceiling {
		return
	}
	b0, b1, b2 := w.bad[st.fidx], w.bad[st.fidx+1], w.bad[st.fidx+2]
	orders := [][3]byte{
		{b2, b1, b0}, // SWAP3: swap outer two, keep middle
		{b1, b2, b0}, // ROT3L: rotate left
		{b2, b0, b1}, // ROT3R: rotate right
	}
	for _, order := range orders {
		n1, ok := t.Find(node, order[0])
		if !ok || n1.Terminal {
			continue
		}
		n2, ok := t.Find(n1.Child, order[1])
		if !ok || n2.Terminal {
			continue
		}
		n3, ok := t.Find(n2.Child, order[2])
		if !ok || n3.Terminal {
			continue
		}
		next := st
		next.good = append(append([]byte{}, st.good...), order[0], order[1], order[2])
		next.fidx += 3
		next.score += ScoreSwap3
		next.depth += 3
		w.walkNode(t, n3.Child, next)
	}
}

// tryRep implements REP: substitute a REP-table rule's "from" for "to"
// in the bad word and continue the walk as if that had been typed.
func (w *TrieWalker) tryRep(t *trie.Trie, node int, st walkState, ceiling int) {
	if w.repTable == nil || st.score+ScoreRep >= ceiling {
		return
	}
	for _, rule := range w.repTable.Matching(w.bad, st.fidx) {
		good := append([]byte{}, st.good...)
		idx := node
		valid := true
		for i := 0; i < len(rule.To); i++ {
			child, found := t.Find(idx, rule.To[i])
			if !found || child.Terminal {
				valid = false
				break
			}
			good = append(good, rule.To[i])
			idx = child.Child
		}
		if !valid {
			continue
		}
		next := st
		next.good = good
		next.fidx += len(rule.From)
		next.score += ScoreRep
		next.depth += len(rule.To)
		w.walkNode(t, idx, next)
	}
}

// handleTerminals is word-boundary handling: for each entry
// recorded at this node, decide whether to emit a suggestion, and
// whether to keep extending via split or compound.
func (w *TrieWalker) handleTerminals(t *trie.Trie, node int, st walkState, ceiling int) {
	entries := t.Terminals(node)
	if len(entries) == 0 {
		return
	}
	wordEnded := st.fidx == len(w.bad)

	for _, e := range entries {
		word := string(st.good)
		if e.Banned || w.banned.Banned(word) {
			continue
		}
		if e.NoSuggest {
			continue
		}

		prefixPenalty := 0
		if st.fromPrefix {
			ok, rare := e.AcceptsPrefix(st.prefixID)
			if !ok {
				continue
			}
			if rare {
				prefixPenalty = ScoreRare
			}
		}

		cost := st.score + prefixPenalty
		if e.Rare {
			cost += ScoreRare
		}
		if e.Region != 0 {
			cost += ScoreRegion
		}
		caseMismatch := w.flags.Mismatch()
		if caseMismatch {
			cost += edit.ScoreICase
		}
		cost -= w.dict.WordCount.Bonus(word, st.splitDone)
		if cost < 0 {
			cost = 0
		}

		if wordEnded {
			if cost < ceiling {
				cased := word
				switch {
				case e.KeepCase && e.Word != "":
					cased = e.Word
				case caseMismatch:
					cased = w.flags.Apply(word)
				}
				w.set.Add(Suggestion{
					Word:     cased,
					OrgLen:   len(w.bad),
					Score:    cost,
					Language: w.lang,
				})
			}
			continue
		}

		if e.CompoundFlag == 0 {
			continue
		}
		w.tryContinuation(t, st, e, cost)
	}
}

// tryContinuation implements the split/compound continuation
// item 6 describes: once a stem ends but the bad word hasn't, either
// insert a space and restart at the trie root, or concatenate directly
// subject to the dictionary's compound constraints.
func (w *TrieWalker) tryContinuation(t *trie.Trie, st walkState, e trie.Entry, cost int) {
	cons := w.dict.Constraints
	if cons.MaxPieces > 0 && st.compoundPieces+1 >= cons.MaxPieces {
		return
	}
	if len(st.good) < cons.MinLength {
		return
	}

	flagsOK := st.compoundPieces == 0 && (len(cons.StartFlags) == 0 || cons.StartFlags[e.CompoundFlag]) ||
		st.compoundPieces > 0 && (len(cons.AllFlags) == 0 || cons.AllFlags[e.CompoundFlag])
	if !flagsOK {
		return
	}
	accum := st.compoundFlags + string(e.CompoundFlag)
	if w.dict.Compound != nil && !w.dict.Compound.Allows(accum) {
		return
	}
	if w.dict.Compound != nil && w.dict.Compound.Forbidden(accum) {
		return
	}

	if !cons.NoBreak && !st.splitDone && !cons.NoSplitSugs {
		splitCost := ScoreSplit
		if cons.NoSplitSugs {
			splitCost = ScoreSplitNo
		}
		next := st
		next.good = append(append([]byte{}, st.good...), ' ')
		next.score = cost + splitCost
		next.splitDone = true
		next.compoundPieces++
		next.compoundFlags = accum
		next.depth++
		w.walkNode(t, t.Root(), next)
	}

	if !cons.NoCompoundSugs {
		next := st
		next.good = append([]byte{}, st.good...)
		next.score = cost
		next.compoundPieces++
		next.compoundFlags = accum
		w.walkNode(t, t.Root(), next)
	}
}

func (w *TrieWalker) substCost(goodByte, badByte byte) int {
	if goodByte == badByte {
		return 0
	}
	gr, br := rune(goodByte), rune(badByte)
	if w.dict.Map != nil && w.dict.Map.Equal(gr, br) {
		return edit.ScoreSimilar
	}
	if foldEqualByte(goodByte, badByte) {
		return edit.ScoreICase
	}
	return edit.ScoreSubst
}

func foldEqualByte(a, b byte) bool {
	return strings.EqualFold(string(a), string(b))
}

// isComposingMarkAt reports whether s[i] begins a combining mark
// (Unicode category Mn/Mc/Me), so deleting it is a cheap fix for a
// stray or misplaced diacritic rather than a regular DEL.
func isComposingMarkAt(s string, i int) bool {
	if i < 0 || i >= len(s) || !utf8.RuneStart(s[i]) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return unicode.IsMark(r)
}

// isComposingMarkLeadByte reports whether b begins the UTF-8 encoding
// of a rune in the combining diacritical marks block (U+0300-U+036F),
// the common case the INS discount targets; INS adds the continuation
// byte that completes the rune in the same step.
func isComposingMarkLeadByte(b byte) bool {
	return b == 0xCC || b == 0xCD
}
