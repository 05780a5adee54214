// Package trie defines the twin-array trie representation the search
// engine walks: a node is a length byte followed by that many child
// bytes, NUL bytes sorted first to mark "the word may end here". A
// parallel index array resolves each child byte to either the next
// node (a plain continuation) or a terminal's flag set, resolved at the
// interface boundary as the Node sum type rather than by inspecting the
// raw byte value at every call site.
package trie

// Entry is the per-terminal metadata a dictionary attaches to a word
// ending at a trie node: KEEPCAP/BANNED/NOSUGGEST-style flags, a
// region mask, and the compound-flag byte used by compounding
// rules.
type Entry struct {
	Word         string
	Rare         bool
	KeepCase     bool
	NeedCompound bool
	Banned       bool
	NoSuggest    bool
	CompoundFlag byte
	Region       uint16
	PrefixID     uint16

	// PrefixIDs lists the postponed-prefix ids this stem accepts when a
	// prefix search jumps into the fold-case tree ahead of it; nil means
	// the stem accepts no postponed prefix at all.
	PrefixIDs []uint16
	// RarePrefixIDs is the subset of PrefixIDs that combine with this
	// stem only rarely, drawing a penalty rather than combining for free.
	RarePrefixIDs []uint16
}

// AcceptsPrefix reports whether id is in PrefixIDs, and if so whether
// that combination is rare.
func (e Entry) AcceptsPrefix(id uint16) (ok, rare bool) {
	for _, p := range e.PrefixIDs {
		if p == id {
			ok = true
			break
		}
	}
	if !ok {
		return false, false
	}
	for _, p := range e.RarePrefixIDs {
		if p == id {
			return true, true
		}
	}
	return true, false
}

// Node is a read-only view of one child of a trie node: either a
// continuation into another node, or a terminal carrying one or more
// Entry variants (homographs with different flags resolve to the same
// spelling but different entries).
type Node struct {
	Byte     byte
	Terminal bool
	Child    int     // valid when !Terminal: index of the child's node header in Bytes
	Variants []Entry // valid when Terminal
}

// Trie is the flat, load-time-fixed representation produced by Compile.
// It is never mutated after construction and is safe to share across
// concurrent suggestion requests.
type Trie struct {
	Bytes []byte
	next  []int32
	terms [][]Entry
}

// Root returns the index of the root node's header in Bytes.
func (t *Trie) Root() int { return 0 }

// Len reports how many children the node at idx has.
func (t *Trie) Len(idx int) int {
	if idx < 0 || idx >= len(t.Bytes) {
		return 0
	}
	return int(t.Bytes[idx])
}

// ChildAt resolves the i-th child of the node at idx.
func (t *Trie) ChildAt(idx, i int) Node {
	pos := idx + 1 + i
	b := t.Bytes[pos]
	if b != 0 {
		return Node{Byte: b, Child: int(t.next[pos])}
	}
	return Node{Byte: 0, Terminal: true, Variants: t.terms[t.next[pos]]}
}

// Find walks idx's children looking for byte b, returning ok=false if
// there is no such child. NUL is never a valid search byte; use
// ChildAt(idx, i) with a terminal child to read word-end entries.
func (t *Trie) Find(idx int, b byte) (Node, bool) {
	if b == 0 {
		return Node{}, false
	}
	n := t.Len(idx)
	for i := 0; i < n; i++ {
		c := t.Bytes[idx+1+i]
		if c == 0 {
			continue
		}
		if c == b {
			return t.ChildAt(idx, i), true
		}
		if c > b {
			break
		}
	}
	return Node{}, false
}

// Terminals returns the word-end entries attached directly to idx, if
// any (idx's first child is NUL).
func (t *Trie) Terminals(idx int) []Entry {
	if t.Len(idx) == 0 {
		return nil
	}
	if t.Bytes[idx+1] != 0 {
		return nil
	}
	return t.terms[t.next[idx+1]]
}

// Lookup reports whether word is stored in t, returning its entries if
// so.
func (t *Trie) Lookup(word string) ([]Entry, bool) {
	if t == nil {
		return nil, false
	}
	idx := t.Root()
	for i := 0; i < len(word); i++ {
		child, ok := t.Find(idx, word[i])
		if !ok {
			return nil, false
		}
		idx = child.Child
	}
	entries := t.Terminals(idx)
	return entries, len(entries) > 0
}

// Walk visits every word stored in t in byte order, calling fn with the
// spelling and its entries. Walking stops early if fn returns false.
// This exists for callers that need the whole vocabulary back out of
// the packed form, such as building a derived trie from this one.
func (t *Trie) Walk(fn func(word string, entries []Entry) bool) {
	if t == nil {
		return
	}
	var buf []byte
	var walk func(idx int) bool
	walk = func(idx int) bool {
		n := t.Len(idx)
		for i := 0; i < n; i++ {
			c := t.ChildAt(idx, i)
			if c.Terminal {
				if !fn(string(buf), c.Variants) {
					return false
				}
				continue
			}
			buf = append(buf, c.Byte)
			if !walk(c.Child) {
				buf = buf[:len(buf)-1]
				return false
			}
			buf = buf[:len(buf)-1]
		}
		return true
	}
	walk(t.Root())
}
