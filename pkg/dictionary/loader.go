package dictionary

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/dexgs/spellsuggest/pkg/compound"
	"github.com/dexgs/spellsuggest/pkg/trie"
)

// Load reads a dictionary source file and compiles it into a Dictionary.
// Real vim .spl/.sug binary compilation is out of scope; this plain-text
// format is the stand-in the loader actually parses:
//
//	[WORDS]
//	word<TAB>frequency<TAB>flags
//	[PREFIX]
//	prefix<TAB>id
//	[REP]
//	from<TAB>to
//	[REPSAL]
//	from<TAB>to
//	[MAP]
//	<one equivalence class of runes per line>
//	[COMPOUNDRULE]
//	<coregex pattern over the compound-flag alphabet>
//	[CHECKCOMPOUNDPATTERN]
//	<coregex pattern vetoing an adjacent-flag sequence>
//	[COMPOUND]
//	key=value (minlen, minsyl, maxpieces, startflags, allflags, nobreak,
//	nosplitsugs, nocompoundsugs)
//
// flags on a WORDS line is a comma-separated set of K (keep-case), B
// (banned), N (nosuggest), R (rare), C=<byte> (this word's compound
// flag), P=<id> (this stem accepts postponed prefix <id>), or PR=<id>
// (same, but the combination is rare and scored accordingly).
func Load(name, path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dictionary: open %s: %w", path, err)
	}
	defer f.Close()

	p := &parser{
		name:   name,
		fold:   patricia.NewTrie(),
		keep:   patricia.NewTrie(),
		prefix: patricia.NewTrie(),
		counts: map[string]uint32{},
		cons:   compound.Constraints{StartFlags: map[byte]bool{}, AllFlags: map[byte]bool{}},
	}

	scanner := bufio.NewScanner(f)
	section := ""
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToUpper(line[1 : len(line)-1])
			continue
		}
		if err := p.parseLine(section, line); err != nil {
			log.Warnf("dictionary %s: skipping bad line in [%s]: %v", name, section, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dictionary: read %s: %w", path, err)
	}

	dict, err := p.build()
	if err != nil {
		return nil, err
	}
	log.Debugf("loaded dictionary %q from %s: %d words", name, path, p.wordCount)
	return dict, nil
}

type parser struct {
	name string

	fold   *patricia.Trie
	keep   *patricia.Trie
	prefix *patricia.Trie

	counts map[string]uint32

	rep, repsal []ReplacementRule
	mapClasses  [][]rune
	compRules   []string
	checkPats   []string
	cons        compound.Constraints

	wordCount int
}

func (p *parser) parseLine(section, line string) error {
	switch section {
	case "WORDS":
		return p.parseWord(line)
	case "PREFIX":
		fields := strings.SplitN(line, "\t", 2)
		if len(fields) != 2 {
			return fmt.Errorf("want prefix<TAB>id, got %q", line)
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			return err
		}
		insertEntry(p.prefix, fields[0], trie.Entry{Word: fields[0], PrefixID: uint16(id)})
	case "REP":
		r, err := parseRepLine(line)
		if err != nil {
			return err
		}
		p.rep = append(p.rep, r)
	case "REPSAL":
		r, err := parseRepLine(line)
		if err != nil {
			return err
		}
		p.repsal = append(p.repsal, r)
	case "MAP":
		p.mapClasses = append(p.mapClasses, []rune(line))
	case "COMPOUNDRULE":
		p.compRules = append(p.compRules, line)
	case "CHECKCOMPOUNDPATTERN":
		p.checkPats = append(p.checkPats, line)
	case "COMPOUND":
		return p.parseCompoundLine(line)
	default:
		return fmt.Errorf("line outside any known section")
	}
	return nil
}

func parseRepLine(line string) (ReplacementRule, error) {
	fields := strings.SplitN(line, "\t", 2)
	if len(fields) != 2 {
		return ReplacementRule{}, fmt.Errorf("want from<TAB>to, got %q", line)
	}
	return ReplacementRule{From: fields[0], To: fields[1]}, nil
}

func (p *parser) parseWord(line string) error {
	fields := strings.Split(line, "\t")
	if len(fields) < 1 || fields[0] == "" {
		return fmt.Errorf("empty word")
	}
	word := fields[0]
	var freq uint64
	if len(fields) > 1 && fields[1] != "" {
		var err error
		freq, err = strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return fmt.Errorf("bad frequency %q: %w", fields[1], err)
		}
	}
	entry := trie.Entry{Word: word}
	if len(fields) > 2 {
		for _, flag := range strings.Split(fields[2], ",") {
			flag = strings.TrimSpace(flag)
			switch {
			case flag == "K":
				entry.KeepCase = true
			case flag == "B":
				entry.Banned = true
			case flag == "N":
				entry.NoSuggest = true
			case flag == "R":
				entry.Rare = true
			case strings.HasPrefix(flag, "C="):
				if v := strings.TrimPrefix(flag, "C="); v != "" {
					entry.CompoundFlag = v[0]
				}
			case strings.HasPrefix(flag, "PR="):
				if v := strings.TrimPrefix(flag, "PR="); v != "" {
					id, err := strconv.Atoi(v)
					if err != nil {
						return fmt.Errorf("bad prefix id %q: %w", v, err)
					}
					pid := uint16(id)
					entry.PrefixIDs = append(entry.PrefixIDs, pid)
					entry.RarePrefixIDs = append(entry.RarePrefixIDs, pid)
				}
			case strings.HasPrefix(flag, "P="):
				if v := strings.TrimPrefix(flag, "P="); v != "" {
					id, err := strconv.Atoi(v)
					if err != nil {
						return fmt.Errorf("bad prefix id %q: %w", v, err)
					}
					entry.PrefixIDs = append(entry.PrefixIDs, uint16(id))
				}
			}
		}
	}

	lower := strings.ToLower(word)
	insertEntry(p.fold, lower, entry)
	if entry.KeepCase || lower != word {
		insertEntry(p.keep, word, entry)
	}
	p.counts[lower] = uint32(freq)
	p.wordCount++
	return nil
}

func (p *parser) parseCompoundLine(line string) error {
	kv := strings.SplitN(line, "=", 2)
	if len(kv) != 2 {
		return fmt.Errorf("want key=value, got %q", line)
	}
	key, val := strings.TrimSpace(kv[0]), strings.TrimSpace(kv[1])
	switch strings.ToLower(key) {
	case "minlen":
		n, err := strconv.Atoi(val)
		if err != nil {
			return err
		}
		p.cons.MinLength = n
	case "minsyl":
		n, err := strconv.Atoi(val)
		if err != nil {
			return err
		}
		p.cons.MinSyllables = n
	case "maxpieces":
		n, err := strconv.Atoi(val)
		if err != nil {
			return err
		}
		p.cons.MaxPieces = n
	case "startflags":
		for _, b := range []byte(val) {
			p.cons.StartFlags[b] = true
		}
	case "allflags":
		for _, b := range []byte(val) {
			p.cons.AllFlags[b] = true
		}
	case "nobreak":
		p.cons.NoBreak = val == "true"
	case "nosplitsugs":
		p.cons.NoSplitSugs = val == "true"
	case "nocompoundsugs":
		p.cons.NoCompoundSugs = val == "true"
	default:
		return fmt.Errorf("unknown compound key %q", key)
	}
	return nil
}

func (p *parser) build() (*Dictionary, error) {
	foldTrie, err := compileTrie(p.fold)
	if err != nil {
		return nil, err
	}
	keepTrie, err := compileTrie(p.keep)
	if err != nil {
		return nil, err
	}
	prefixTrie, err := compileTrie(p.prefix)
	if err != nil {
		return nil, err
	}
	rules, err := compound.Compile(p.compRules, p.checkPats)
	if err != nil {
		return nil, err
	}

	d := &Dictionary{
		Name:        p.name,
		FoldCase:    foldTrie,
		KeepCase:    keepTrie,
		Prefix:      prefixTrie,
		Rep:         NewReplacementTable(p.rep),
		RepSal:      NewReplacementTable(p.repsal),
		Map:         NewMapTable(p.mapClasses),
		Compound:    rules,
		Constraints: p.cons,
		WordCount:   NewWordCountTable(p.counts),
		SugBuf:      NewSugBuf(nil),
	}
	return d, nil
}

// AttachSoundFold equips dict with a sound-folding primitive and builds
// its phonetic trie and expansion buffer from the already-loaded
// fold-case words. Kept separate from Load because sound-folding rules
// are themselves an opaque black box supplied by the affix
// collaborator rather than something this loader's source format
// parses.
func AttachSoundFold(dict *Dictionary, fold func(word string) string) error {
	dict.SoundFoldFunc = fold
	src := patricia.NewTrie()
	lines := map[string][]string{}

	dict.FoldCase.Walk(func(word string, _ []trie.Entry) bool {
		phon := fold(word)
		lines[phon] = append(lines[phon], word)
		insertEntry(src, phon, trie.Entry{Word: phon})
		return true
	})

	sfTrie, err := compileTrie(src)
	if err != nil {
		return err
	}
	dict.SoundFold = sfTrie
	dict.SugBuf = NewSugBuf(lines)
	return nil
}
