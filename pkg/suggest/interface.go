/*
Package suggest implements error-tolerant spelling suggestion over a
dictionary's fold-case, keep-case, prefix and sound-fold tries.

The package forms the computational core: given a word a dictionary
doesn't recognize, it searches for nearby dictionary words under a
bounded edit-distance budget, folds in a phonetic ("sounds like") pass,
and ranks the results by a single integer score where lower is better.

# Walker

The search itself is a depth-first walk over a trie.Trie (TrieWalker):
each step either accepts a byte of the trie for free, or spends part of
the edit budget on a deletion, insertion, substitution, transposition
or three-letter rotation. The walk is expressed as native recursion,
with an explicit depth check standing in for the fixed frame array a
lower-level implementation would need.

	w := NewTrieWalker(dict, lang, badFolded, flags, banned, set, deadline)
	err := w.Run() // suggestions land in set

# Sound-fold

A second, independent walk runs over the dictionary's phonetic trie
using the same edit-distance machinery but over sound-folded spellings.
Its hits are expanded back into real words via the dictionary's
phonetic buffer and re-scored by blending the original edit score with
the phonetic search's own score.

# Orchestrator

Orchestrator sequences both walks according to the caller's
'spellsuggest' option string (best, fast or double, plus optional
clauses such as a bare maximum suggestion count), merges and
deduplicates their output through a SuggestionSet, and returns a
capped, sorted suggestion list.

	opts, err := ParseSpellsuggest("best")
	best, err := NewOrchestrator(dicts, opts).Suggest(ctx, "wrold", "")

# Caching

A ResultCache in front of the orchestrator remembers recent
(word, mode) results so a caller re-triggering suggestions on text it
hasn't changed doesn't repeat the walk.
*/
package suggest

import "context"

// Suggester is the interface the server and CLI front ends drive: given
// a bad word and a raw 'spellsuggest' option string, return its ranked
// suggestion list. *Orchestrator implements it.
type Suggester interface {
	Suggest(ctx context.Context, word, modeRaw string) ([]Suggestion, error)
}
