package trie

import "sort"

// Word is one dictionary entry fed to Compile: the fold-case (or
// keep-case, prefix, sound-fold) spelling and the terminal metadata it
// should carry. Two Words with the same Key are homographs and both
// sets of Entries are kept at that node.
type Word struct {
	Key     string
	Entries []Entry
}

type builder struct {
	bytesArr []byte
	nextArr  []int32
	terms    [][]Entry
}

// Compile builds a twin-array Trie from an unordered word list. Compile
// is the one place construction cost is paid; the resulting Trie is
// immutable and every lookup after this is O(key length).
//
// Upstream, a dictionary is typically assembled into a
// github.com/tchap/go-patricia/v2/patricia.Trie first (for its cheap
// incremental inserts while merging affix/frequency sources), then
// flattened into this representation via a single Visit pass — see
// compileTrie in pkg/dictionary.
func Compile(words []Word) *Trie {
	sorted := make([]Word, len(words))
	copy(sorted, words)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })

	b := &builder{}
	b.buildNode(sorted, 0)
	return &Trie{Bytes: b.bytesArr, next: b.nextArr, terms: b.terms}
}

func (b *builder) buildNode(words []Word, depth int) int {
	headerIdx := len(b.bytesArr)
	b.bytesArr = append(b.bytesArr, 0)
	b.nextArr = append(b.nextArr, 0)

	var termEntries []Entry
	order := make([]byte, 0, 8)
	groups := make(map[byte][]Word, 8)

	for _, w := range words {
		if depth == len(w.Key) {
			termEntries = append(termEntries, w.Entries...)
			continue
		}
		c := w.Key[depth]
		if _, seen := groups[c]; !seen {
			order = append(order, c)
		}
		groups[c] = append(groups[c], w)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	childCount := len(order)
	if termEntries != nil {
		childCount++
	}
	b.bytesArr[headerIdx] = byte(childCount)

	childStart := len(b.bytesArr)
	for i := 0; i < childCount; i++ {
		b.bytesArr = append(b.bytesArr, 0)
		b.nextArr = append(b.nextArr, 0)
	}

	pos := childStart
	if termEntries != nil {
		b.bytesArr[pos] = 0
		b.nextArr[pos] = int32(len(b.terms))
		b.terms = append(b.terms, termEntries)
		pos++
	}
	for _, c := range order {
		b.bytesArr[pos] = c
		childIdx := b.buildNode(groups[c], depth+1)
		b.nextArr[pos] = int32(childIdx)
		pos++
	}
	return headerIdx
}
