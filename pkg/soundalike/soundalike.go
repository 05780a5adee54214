// Package soundalike scores two already sound-folded strings against each
// other. It is deliberately shallow: phonetic strings that differ by more
// than two edits are never close enough to matter, so the search explores
// at most two operations instead of running a full bounded edit distance.
package soundalike

import (
	"strings"

	"github.com/dexgs/spellsuggest/pkg/edit"
)

// ScoreMaxMax mirrors edit.ScoreMaxMax: returned when good and bad cannot
// be reconciled within the fixed two-operation budget.
const ScoreMaxMax = edit.ScoreMaxMax

// maxLengthDelta bounds how different two phonetic strings may be in
// length before they are rejected outright.
const maxLengthDelta = 2

// maxOps is the fixed search depth: at most two of {delete, insert, swap,
// substitute} are tried before giving up.
const maxOps = 2

// vowelStartCost is the cost of gaining or losing a leading vowel marker
// ('*'), two thirds of a full delete per spec.
const vowelStartCost = (2 * edit.ScoreDel) / 3

// Score returns the phonetic distance between two sound-folded strings.
// A leading '*' in either string marks "starts with a vowel"; a mismatch
// in that marker is charged separately from the rest of the comparison.
func Score(good, bad string) int {
	goodVowel := strings.HasPrefix(good, "*")
	badVowel := strings.HasPrefix(bad, "*")
	g := strings.TrimPrefix(good, "*")
	b := strings.TrimPrefix(bad, "*")

	preamble := 0
	if goodVowel != badVowel {
		preamble = vowelStartCost
	}

	if n := len(g) - len(b); n < -maxLengthDelta || n > maxLengthDelta {
		return ScoreMaxMax
	}

	best := ScoreMaxMax

	var search func(gi, bi, ops, score int)
	search = func(gi, bi, ops, score int) {
		if score >= best {
			return
		}
		for gi < len(g) && bi < len(b) && g[gi] == b[bi] {
			gi++
			bi++
		}
		if gi == len(g) && bi == len(b) {
			if score < best {
				best = score
			}
			return
		}
		if ops >= maxOps {
			return
		}
		if bi < len(b) {
			search(gi, bi+1, ops+1, score+edit.ScoreDel)
		}
		if gi < len(g) {
			search(gi+1, bi, ops+1, score+edit.ScoreIns)
		}
		if gi+1 < len(g) && bi+1 < len(b) && g[gi] == b[bi+1] && g[gi+1] == b[bi] {
			search(gi+2, bi+2, ops+1, score+edit.ScoreSwap)
		}
		if gi < len(g) && bi < len(b) {
			search(gi+1, bi+1, ops+1, score+edit.ScoreSubst)
		}
	}
	search(0, 0, 0, 0)
	// Insert and delete carry different weights, so the search runs again
	// with the two strings' roles swapped and the cheaper result is kept;
	// this makes Score symmetric in its arguments.
	g, b = b, g
	search(0, 0, 0, 0)

	if best >= ScoreMaxMax {
		return ScoreMaxMax
	}
	return best + preamble
}

// Rescore combines a primary word score with a phonetic score, weighting
// the word score three to one: RESCORE(w, s) = (3w + s) / 4.
func Rescore(word, sound int) int {
	return (3*word + sound) / 4
}
