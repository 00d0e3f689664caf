// Package langmodel loads and serves the per-language n-gram frequency
// tables the classifier, language detector, and scorer all depend on.
// Models are process-lifetime immutable once loaded, per spec §3's
// lifecycle rule.
package langmodel

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"sort"
	"sync"
)

//go:embed data/*.json
var embeddedData embed.FS

// Language identifies one of the eight language models the engine ships.
type Language string

const (
	English       Language = "english"
	Spanish       Language = "spanish"
	French        Language = "french"
	German        Language = "german"
	Italian       Language = "italian"
	Portuguese    Language = "portuguese"
	Russian       Language = "russian"
	ChinesePinyin Language = "chinese-pinyin"
)

// All lists every language the engine has a model for, in the order
// resources should be probed (english first: it is the most common
// default hint and the cheapest to keep hot).
var All = []Language{English, Spanish, French, German, Italian, Portuguese, Russian, ChinesePinyin}

// ParseLanguage maps a user-facing code ("auto", "en", "es", "zh-pinyin",
// or a full name) to a Language. ok is false for "auto" or anything
// unrecognized.
func ParseLanguage(code string) (lang Language, ok bool) {
	switch code {
	case "en", "english":
		return English, true
	case "es", "spanish":
		return Spanish, true
	case "fr", "french":
		return French, true
	case "de", "german":
		return German, true
	case "it", "italian":
		return Italian, true
	case "pt", "portuguese":
		return Portuguese, true
	case "ru", "russian":
		return Russian, true
	case "zh", "zh-pinyin", "chinese-pinyin":
		return ChinesePinyin, true
	default:
		return "", false
	}
}

// Script identifies the writing system a language model's n-gram tables
// are keyed over. The classifier and solvers only ever operate on the
// cleaned Latin (A-Z) form of a ciphertext (spec §9's "mixed Unicode
// handling" note); Script exists so LangDetect's script gate can compare
// a Cyrillic or CJK-pinyin ciphertext against the right table before
// that reduction happens.
type Script string

const (
	ScriptLatin    Script = "latin"
	ScriptCyrillic Script = "cyrillic"
)

// Model is one language's immutable frequency tables. Percentages sum to
// roughly 100 across the entries present; entries are a representative
// high-frequency subset, not an exhaustive corpus dump (see SPEC_FULL.md).
type Model struct {
	Language  Language
	Script    Script
	Monograms map[string]float64
	Bigrams   map[string]float64
	Trigrams  map[string]float64
	Quadgrams map[string]float64

	// floors caches the per-width floor probabilities, computed once on
	// first use by floor.
	floors map[int]float64
	once   sync.Once
}

type jsonModel struct {
	Language  string             `json:"language"`
	Script    string             `json:"script"`
	Monograms map[string]float64 `json:"monograms"`
	Bigrams   map[string]float64 `json:"bigrams"`
	Trigrams  map[string]float64 `json:"trigrams"`
	Quadgrams map[string]float64 `json:"quadgrams"`
}

func (m *Model) table(n int) map[string]float64 {
	switch n {
	case 1:
		return m.Monograms
	case 2:
		return m.Bigrams
	case 3:
		return m.Trigrams
	case 4:
		return m.Quadgrams
	default:
		return nil
	}
}

// floor returns the floor probability (not percentage) for unseen
// n-grams of length n: min_observed/10 in probability space, per spec
// §4.2. Computed once per model and cached.
func (m *Model) floor(n int) float64 {
	m.once.Do(func() {
		m.floors = make(map[int]float64, 4)
		for _, width := range []int{1, 2, 3, 4} {
			tbl := m.table(width)
			min := math.Inf(1)
			for _, pct := range tbl {
				if pct > 0 && pct < min {
					min = pct
				}
			}
			if math.IsInf(min, 1) {
				min = 1.0
			}
			m.floors[width] = (min / 10.0) / 100.0
		}
	})
	return m.floors[n]
}

// LogProb returns log(P(ngram)) for the given n-gram (n = len([]rune(ngram))),
// falling back to the model's floor probability when the n-gram was not
// observed.
func (m *Model) LogProb(ngram string) float64 {
	n := len([]rune(ngram))
	tbl := m.table(n)
	if tbl == nil {
		return math.Log(m.floor(n))
	}
	if pct, ok := tbl[ngram]; ok && pct > 0 {
		return math.Log(pct / 100.0)
	}
	return math.Log(m.floor(n))
}

// Score returns the summed log-probability of every length-n window of
// text (Σ log P(ngram) over all overlapping windows), per spec §4.2.
func (m *Model) Score(text string, n int) float64 {
	runes := []rune(text)
	if len(runes) < n {
		return 0
	}
	var total float64
	for i := 0; i+n <= len(runes); i++ {
		total += m.LogProb(string(runes[i : i+n]))
	}
	return total
}

// SortedMonogramValues returns the model's monogram percentages sorted
// descending, used by LangDetect's shape score (chi-squared between
// sorted value vectors is invariant under monoalphabetic substitution).
func (m *Model) SortedMonogramValues() []float64 {
	return sortedValues(m.Monograms)
}

// SortedBigramValues is the bigram analogue of SortedMonogramValues.
func (m *Model) SortedBigramValues() []float64 { return sortedValues(m.Bigrams) }

// SortedTrigramValues is the trigram analogue of SortedMonogramValues.
func (m *Model) SortedTrigramValues() []float64 { return sortedValues(m.Trigrams) }

// SortedQuadgramValues is the quadgram analogue of SortedMonogramValues.
func (m *Model) SortedQuadgramValues() []float64 { return sortedValues(m.Quadgrams) }

func sortedValues(tbl map[string]float64) []float64 {
	values := make([]float64, 0, len(tbl))
	for _, v := range tbl {
		values = append(values, v)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(values)))
	return values
}

// Store holds every loaded Model, keyed by Language. It is safe for
// concurrent read access once Load returns; nothing mutates it
// afterward (spec §5's shared-resource rule).
type Store struct {
	models map[Language]*Model
}

// Load reads every embedded language model once. It never fails on a
// missing optional language: a model simply absent from the returned
// Store degrades candidate lists gracefully, matching the
// ResourceMissing non-fatal policy in spec §7. It does return an error
// if the embedded data itself is malformed, since that indicates a
// packaging bug rather than a runtime resource-availability issue.
func Load() (*Store, error) {
	store := &Store{models: make(map[Language]*Model, len(All))}
	for _, lang := range All {
		model, err := loadOne(lang)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("langmodel: loading %s: %w", lang, err)
		}
		store.models[lang] = model
	}
	return store, nil
}

func loadOne(lang Language) (*Model, error) {
	raw, err := embeddedData.ReadFile("data/" + string(lang) + ".json")
	if err != nil {
		return nil, err
	}
	var jm jsonModel
	if err := json.Unmarshal(raw, &jm); err != nil {
		return nil, fmt.Errorf("parsing %s.json: %w", lang, err)
	}
	script := ScriptLatin
	if jm.Script == string(ScriptCyrillic) {
		script = ScriptCyrillic
	}
	return &Model{
		Language:  lang,
		Script:    script,
		Monograms: jm.Monograms,
		Bigrams:   jm.Bigrams,
		Trigrams:  jm.Trigrams,
		Quadgrams: jm.Quadgrams,
	}, nil
}

// Get returns the model for lang and whether it was loaded.
func (s *Store) Get(lang Language) (*Model, bool) {
	m, ok := s.models[lang]
	return m, ok
}

// Languages returns every language this store has a model for, in the
// canonical order from All.
func (s *Store) Languages() []Language {
	out := make([]Language, 0, len(s.models))
	for _, lang := range All {
		if _, ok := s.models[lang]; ok {
			out = append(out, lang)
		}
	}
	return out
}
