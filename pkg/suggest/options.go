package suggest

import (
	"strconv"
	"strings"
	"time"
)

// Method selects the Orchestrator's scoring strategy ('best' |
// 'fast' | 'double').
type Method int

const (
	MethodBest Method = iota
	MethodFast
	MethodDouble
)

// Options is the parsed form of the 'spellsuggest' option string.
type Options struct {
	Method      Method
	Expr        string // set when an expr: clause was given
	File        string // set when a file: clause was given
	Timeout     time.Duration
	MaxCount    int
	hasExpr     bool
	hasFile     bool
	hasTimeout  bool
	hasMaxCount bool
}

// DefaultOptions is what the engine falls back to on any grammar error,
// or when no 'spellsuggest' string has been set at all.
func DefaultOptions() Options {
	return Options{
		Method:   MethodBest,
		Timeout:  defaultTimeoutMS * time.Millisecond,
		MaxCount: defaultMaxSuggestions,
	}
}

// HasExpr reports whether an expr: clause was present.
func (o Options) HasExpr() bool { return o.hasExpr }

// HasFile reports whether a file: clause was present.
func (o Options) HasFile() bool { return o.hasFile }

// ParseSpellsuggest parses the comma-separated 'spellsuggest' option
// grammar: at most one of best|fast|double, an optional expr:, an
// optional file:, an optional timeout:, and an optional bare integer
// giving the display count. Invalid grammar resets to defaults and
// reports the failure via a ConfigInvalid error; the returned Options
// is always usable even when err != nil.
func ParseSpellsuggest(raw string) (Options, error) {
	opts := DefaultOptions()
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return opts, nil
	}

	methodSeen := false
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		switch {
		case part == "best" || part == "fast" || part == "double":
			if methodSeen {
				return DefaultOptions(), newError(ConfigInvalid, "more than one method flag in spellsuggest")
			}
			methodSeen = true
			switch part {
			case "best":
				opts.Method = MethodBest
			case "fast":
				opts.Method = MethodFast
			case "double":
				opts.Method = MethodDouble
			}
		case strings.HasPrefix(part, "expr:"):
			opts.Expr = strings.TrimPrefix(part, "expr:")
			opts.hasExpr = true
		case strings.HasPrefix(part, "file:"):
			opts.File = strings.TrimPrefix(part, "file:")
			opts.hasFile = true
		case strings.HasPrefix(part, "timeout:"):
			v := strings.TrimPrefix(part, "timeout:")
			neg := strings.HasPrefix(v, "-")
			v = strings.TrimPrefix(v, "-")
			ms, err := strconv.Atoi(v)
			if err != nil || ms < 0 {
				return DefaultOptions(), newError(ConfigInvalid, "bad timeout: clause in spellsuggest")
			}
			if neg {
				ms = -ms
			}
			opts.Timeout = time.Duration(ms) * time.Millisecond
			opts.hasTimeout = true
		default:
			n, err := strconv.Atoi(part)
			if err != nil {
				return DefaultOptions(), newError(ConfigInvalid, "unrecognized spellsuggest clause: "+part)
			}
			if opts.hasMaxCount {
				return DefaultOptions(), newError(ConfigInvalid, "more than one count in spellsuggest")
			}
			opts.MaxCount = n
			opts.hasMaxCount = true
		}
	}
	return opts, nil
}
