package dictionary

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
)

// RuntimeLoader manages dynamic loading and unloading of per-language
// dictionaries while a server is live, so a 'double' or multi-locale
// deployment can add or drop a language without a restart.
type RuntimeLoader struct {
	mu        sync.RWMutex
	sources   map[string]string // language -> source file path
	loaded    map[string]*Dictionary
	soundFold func(lang, word string) string
}

// NewRuntimeLoader creates a runtime loader over the given language ->
// source-file mapping. No dictionary is loaded until Load is called.
func NewRuntimeLoader(sources map[string]string) *RuntimeLoader {
	if sources == nil {
		sources = map[string]string{}
	}
	return &RuntimeLoader{
		sources: sources,
		loaded:  map[string]*Dictionary{},
	}
}

// SetSoundFold installs the sound-folding primitive this loader attaches
// to every dictionary it loads from here on. Already-loaded dictionaries
// are unaffected; reload them to pick up a new fold function.
func (rl *RuntimeLoader) SetSoundFold(fold func(lang, word string) string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.soundFold = fold
}

// AvailableLanguages returns every language this loader knows a source
// path for, loaded or not.
func (rl *RuntimeLoader) AvailableLanguages() []string {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	langs := make([]string, 0, len(rl.sources))
	for lang := range rl.sources {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// LoadedLanguages returns every language currently resident in memory.
func (rl *RuntimeLoader) LoadedLanguages() []string {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	langs := make([]string, 0, len(rl.loaded))
	for lang := range rl.loaded {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Get returns the loaded dictionary for lang, or false if it isn't
// resident.
func (rl *RuntimeLoader) Get(lang string) (*Dictionary, bool) {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	d, ok := rl.loaded[lang]
	return d, ok
}

// Load reads and compiles lang's source file if it isn't already
// resident, attaching sound-folding if this loader has one configured.
// Loading an already-loaded language is a no-op.
func (rl *RuntimeLoader) Load(lang string) (*Dictionary, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if d, ok := rl.loaded[lang]; ok {
		return d, nil
	}
	path, ok := rl.sources[lang]
	if !ok {
		return nil, fmt.Errorf("dictionary: unknown language %q", lang)
	}

	dict, err := Load(lang, path)
	if err != nil {
		return nil, fmt.Errorf("dictionary: load %q: %w", lang, err)
	}
	if rl.soundFold != nil {
		fold := rl.soundFold
		if err := AttachSoundFold(dict, func(word string) string { return fold(lang, word) }); err != nil {
			log.Warnf("dictionary %s: sound-fold attach failed: %v", lang, err)
		}
	}

	rl.loaded[lang] = dict
	log.Debugf("runtime loader: loaded %q from %s", lang, path)
	return dict, nil
}

// Unload evicts lang from memory. It is not an error to unload a
// language that was never loaded.
func (rl *RuntimeLoader) Unload(lang string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.loaded[lang]; ok {
		delete(rl.loaded, lang)
		log.Debugf("runtime loader: unloaded %q", lang)
	}
}

// Reload unloads then reloads lang, picking up on-disk changes to its
// source file without restarting the process.
func (rl *RuntimeLoader) Reload(lang string) (*Dictionary, error) {
	rl.Unload(lang)
	return rl.Load(lang)
}

// Stats summarizes the loader's current state for diagnostics.
type Stats struct {
	Available int
	Loaded    int
}

// GetStats reports how many languages are known versus resident.
func (rl *RuntimeLoader) GetStats() Stats {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	return Stats{Available: len(rl.sources), Loaded: len(rl.loaded)}
}
