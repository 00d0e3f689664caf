// Package dictionary loads per-language word lists and answers membership
// and coverage queries against them. Unlike langmodel, which loads every
// language eagerly at engine construction, a Dictionary is loaded lazily
// the first time a language is actually needed (spec §3's lifecycle
// rule) and failure to load is never fatal: dependent logic simply skips
// dictionary validation for that language.
package dictionary

import (
	"embed"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"github.com/tjanssen/cryptanalyst/internal/langmodel"
)

//go:embed data/*.json
var embeddedData embed.FS

// minWordLen is the shortest word length counted toward coverage, per
// spec §4.7 ("words ≥ 3 letters").
const minWordLen = 3

// Dictionary is one language's immutable word set.
type Dictionary struct {
	Language langmodel.Language
	words    map[string]struct{}
}

// Contains reports whether word is in the set; the lookup uppercases
// word first, so it is case-insensitive.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.words[strings.ToUpper(word)]
	return ok
}

// Coverage splits text on non-letter runes, keeps words of at least
// minWordLen letters, and returns the fraction found in the dictionary.
// Returns 0 when text has no qualifying words.
func (d *Dictionary) Coverage(text string) float64 {
	words := splitWords(text)
	if len(words) == 0 {
		return 0
	}
	var hits int
	for _, w := range words {
		if d.Contains(w) {
			hits++
		}
	}
	return float64(hits) / float64(len(words))
}

func splitWords(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	out := fields[:0]
	for _, w := range fields {
		if len([]rune(w)) >= minWordLen {
			out = append(out, w)
		}
	}
	return out
}

// Store caches dictionaries loaded on demand, one per language. It is
// safe for concurrent use: concurrent Run/Stream calls on one engine
// share a single Store and may request the same language's dictionary
// at the same time.
type Store struct {
	mu    sync.Mutex
	cache map[langmodel.Language]*Dictionary
}

// NewStore returns an empty, ready-to-use Store.
func NewStore() *Store {
	return &Store{cache: make(map[langmodel.Language]*Dictionary)}
}

// Get returns the dictionary for lang, loading it on first use. ok is
// false when no dictionary resource could be found or parsed for lang;
// callers must treat that as "skip dictionary validation", never as an
// error, per spec §7's non-fatal resource policy.
func (s *Store) Get(lang langmodel.Language) (*Dictionary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d, ok := s.cache[lang]; ok {
		return d, true
	}

	d, err := load(lang)
	if err != nil {
		return nil, false
	}
	s.cache[lang] = d
	return d, true
}

// load resolves a dictionary resource for lang through the ordered path
// list from SPEC_FULL.md §3: embedded data first, then an XDG config
// override, then a working-directory override. The first existing,
// parseable source wins.
func load(lang langmodel.Language) (*Dictionary, error) {
	name := string(lang) + "-dictionary.json"

	if raw, err := embeddedData.ReadFile("data/" + name); err == nil {
		return parse(lang, raw)
	}

	for _, dir := range overridePaths() {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		if d, err := parse(lang, raw); err == nil {
			return d, nil
		}
	}

	return nil, os.ErrNotExist
}

func overridePaths() []string {
	var paths []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "cryptanalyst", "dictionaries"))
	}
	paths = append(paths, filepath.Join(".", "dictionaries"))
	return paths
}

type jsonDictionary struct {
	Language string   `json:"language"`
	Words    []string `json:"words"`
}

func parse(lang langmodel.Language, raw []byte) (*Dictionary, error) {
	var jd jsonDictionary
	if err := json.Unmarshal(raw, &jd); err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(jd.Words))
	for _, w := range jd.Words {
		set[strings.ToUpper(w)] = struct{}{}
	}
	return &Dictionary{Language: lang, words: set}, nil
}
