package suggest

import "errors"

// Kind classifies an engine failure: every failure is local to a
// stage, already-collected suggestions remain valid, and nothing
// propagates as a hard exception.
type Kind int

const (
	// ConfigInvalid means the 'spellsuggest' option string failed to
	// parse; the caller has already reverted to defaults.
	ConfigInvalid Kind = iota
	// ResourceExhausted means a stage aborted early (allocation limit,
	// depth limit); partial results are still valid.
	ResourceExhausted
	// InputInvalid means there was no work to do (empty bad word).
	InputInvalid
	// Deadline means the walker's cooperative timeout fired.
	Deadline
	// Interrupt means a caller-supplied cancellation fired.
	Interrupt
	// InternalInvariantViolation means an assumption the engine relies
	// on did not hold (e.g. a phonetic form believed present in the
	// trie could not be expanded); the affected step is skipped.
	InternalInvariantViolation
)

func (k Kind) String() string {
	switch k {
	case ConfigInvalid:
		return "config_invalid"
	case ResourceExhausted:
		return "resource_exhausted"
	case InputInvalid:
		return "input_invalid"
	case Deadline:
		return "deadline"
	case Interrupt:
		return "interrupt"
	case InternalInvariantViolation:
		return "internal_invariant_violation"
	default:
		return "unknown"
	}
}

// Error wraps a Kind with the message describing it. The engine never
// returns a bare error from a search stage; callers that care about the
// kind use errors.As.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Kind.String() + ": " + e.Msg }

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// ErrEmptyWord (InputInvalid) describes a request with nothing to
// suggest for. Orchestrator.Suggest does not return it: an empty bad
// word yields an empty suggestion list and a nil error.
var ErrEmptyWord = newError(InputInvalid, "empty bad word")

// ErrWordTooLong is returned (InputInvalid) when the case-folded form
// of the bad word is longer than MaxWordLen bytes. Only the folded byte
// length is checked; byte and rune offsets are not tracked separately,
// and the walker steps through the folded word byte by byte.
var ErrWordTooLong = newError(InputInvalid, "word exceeds maximum search length")

// ErrPhoneticExpansion is returned (InternalInvariantViolation) when a
// phonetic form believed reachable from the sound-fold trie has no
// entry in the dictionary's expansion buffer. Skip the expansion and
// keep going rather than emit a sentinel word.
var ErrPhoneticExpansion = newError(InternalInvariantViolation, "phonetic form has no known expansion")

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}
