package suggest

import (
	"sync"

	"github.com/charmbracelet/log"
)

// ResultCache is a bounded, LRU-evicted cache of already-computed
// suggestion lists, keyed by the bad word and the spellsuggest mode
// that produced them. Repeated lookups of the same misspelling within
// a session (a user re-triggering suggestions on an unchanged word)
// skip the TrieWalker/SoundFoldSearch entirely.
type ResultCache struct {
	mu          sync.RWMutex
	entries     map[cacheKey][]Suggestion
	accessTime  map[cacheKey]int64
	accessCount int64
	maxEntries  int
}

type cacheKey struct {
	word string
	mode string
}

// NewResultCache returns a cache holding at most maxEntries result
// lists.
func NewResultCache(maxEntries int) *ResultCache {
	return &ResultCache{
		entries:    make(map[cacheKey][]Suggestion, maxEntries),
		accessTime: make(map[cacheKey]int64, maxEntries),
		maxEntries: maxEntries,
	}
}

// Get returns the cached suggestions for word under mode, if present.
func (c *ResultCache) Get(word, mode string) ([]Suggestion, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := cacheKey{word, mode}
	sugs, ok := c.entries[key]
	if ok {
		c.accessCount++
		c.accessTime[key] = c.accessCount
	}
	return sugs, ok
}

// Put stores sugs for word under mode, evicting the least recently
// used entry if the cache is full.
func (c *ResultCache) Put(word, mode string, sugs []Suggestion) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := cacheKey{word, mode}
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictLRU()
	}
	c.entries[key] = sugs
	c.accessCount++
	c.accessTime[key] = c.accessCount
}

func (c *ResultCache) evictLRU() {
	var oldestKey cacheKey
	var oldestTime int64 = 1<<63 - 1
	found := false
	for key, t := range c.accessTime {
		if t < oldestTime {
			oldestTime = t
			oldestKey = key
			found = true
		}
	}
	if found {
		delete(c.entries, oldestKey)
		delete(c.accessTime, oldestKey)
		log.Debugf("result cache: evicted %q/%s", oldestKey.word, oldestKey.mode)
	}
}

// Stats reports the cache's current occupancy.
func (c *ResultCache) Stats() map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return map[string]int{
		"entries":    len(c.entries),
		"maxEntries": c.maxEntries,
		"hits":       int(c.accessCount),
	}
}
