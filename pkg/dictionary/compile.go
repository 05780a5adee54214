package dictionary

import (
	"fmt"

	"github.com/dexgs/spellsuggest/pkg/trie"
	"github.com/tchap/go-patricia/v2/patricia"
)

// compileTrie flattens a patricia.Trie, built incrementally while the
// source file is parsed, into the immutable twin-array trie.Trie the
// search engine actually walks. Using go-patricia here gives the loader
// cheap prefix-ordered incremental inserts while the source is read in
// whatever order it appears on disk; Compile then pays the flattening
// cost once, up front, instead of on every suggestion request.
func compileTrie(src *patricia.Trie) (*trie.Trie, error) {
	var words []trie.Word
	var visitErr error
	src.Visit(func(prefix patricia.Prefix, item patricia.Item) error {
		entries, ok := item.([]trie.Entry)
		if !ok {
			visitErr = fmt.Errorf("dictionary: unexpected item type %T for %q", item, prefix)
			return visitErr
		}
		words = append(words, trie.Word{Key: string(prefix), Entries: entries})
		return nil
	})
	if visitErr != nil {
		return nil, visitErr
	}
	return trie.Compile(words), nil
}

// insertEntry adds entry under key in src, merging with any entries
// already stored at that key (homographs: same spelling, different
// flags).
func insertEntry(src *patricia.Trie, key string, entry trie.Entry) {
	p := patricia.Prefix(key)
	if existing := src.Get(p); existing != nil {
		src.Set(p, append(existing.([]trie.Entry), entry))
		return
	}
	src.Insert(p, []trie.Entry{entry})
}
