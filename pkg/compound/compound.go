// Package compound validates candidate compound words against a
// dictionary's COMPOUNDRULE and CHECKCOMPOUNDPATTERN definitions. Both
// are "regex-like" flag-sequence matchers, so this package compiles
// them with a real regex engine (coregex) instead of hand-rolling a
// second one: each COMPOUNDRULE pattern is anchored and matched
// against the accumulated compound-flag string, and
// CHECKCOMPOUNDPATTERN vetoes an otherwise-legal join the same way.
package compound

import (
	"fmt"

	"github.com/coregx/coregex"
)

// Constraints holds the non-pattern compounding limits.
type Constraints struct {
	MinLength    int // sl_compminlen
	MinSyllables int // minimum syllable (character) count per piece
	MaxPieces    int
	StartFlags   map[byte]bool // sl_compstartflags
	AllFlags     map[byte]bool // sl_compallflags
	NoBreak      bool          // NOBREAK: splitting is never tried
	NoSplitSugs  bool
	NoCompoundSugs bool
}

// RuleSet compiles a dictionary's COMPOUNDRULE and CHECKCOMPOUNDPATTERN
// lists once at load time.
type RuleSet struct {
	rules    []*coregex.Regex
	forbid   []*coregex.Regex
}

// Compile builds a RuleSet from raw COMPOUNDRULE patterns (each written
// over the dictionary's compound-flag alphabet, e.g. "A*B" meaning "any
// number of A-flagged pieces then one B-flagged piece") and raw
// CHECKCOMPOUNDPATTERN patterns (forbidden adjacent-flag sequences).
func Compile(compoundRules, checkPatterns []string) (*RuleSet, error) {
	rs := &RuleSet{}
	for _, p := range compoundRules {
		re, err := coregex.Compile(anchor(p))
		if err != nil {
			return nil, fmt.Errorf("compound: bad COMPOUNDRULE %q: %w", p, err)
		}
		rs.rules = append(rs.rules, re)
	}
	for _, p := range checkPatterns {
		re, err := coregex.Compile(anchor(p))
		if err != nil {
			return nil, fmt.Errorf("compound: bad CHECKCOMPOUNDPATTERN %q: %w", p, err)
		}
		rs.forbid = append(rs.forbid, re)
	}
	return rs, nil
}

func anchor(pattern string) string {
	if len(pattern) > 0 && pattern[0] == '^' {
		return pattern
	}
	return "^(?:" + pattern + ")$"
}

// Allows reports whether the accumulated flag string is a legal compound
// according to the loaded COMPOUNDRULE patterns. A dictionary with no
// rules at all permits any join that otherwise satisfies Constraints:
// the pattern engine only vetoes a join when rules are actually
// defined and none of them match.
func (rs *RuleSet) Allows(flags string) bool {
	if rs == nil || len(rs.rules) == 0 {
		return true
	}
	for _, re := range rs.rules {
		if re.MatchString(flags) {
			return true
		}
	}
	return false
}

// Forbidden reports whether the given adjacent-flag sequence is vetoed by
// a CHECKCOMPOUNDPATTERN entry, overriding an otherwise-legal join.
func (rs *RuleSet) Forbidden(flags string) bool {
	if rs == nil {
		return false
	}
	for _, re := range rs.forbid {
		if re.MatchString(flags) {
			return true
		}
	}
	return false
}
