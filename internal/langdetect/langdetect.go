// Package langdetect ranks candidate languages for a ciphertext using a
// two-stage process: a script gate that restricts candidates to the
// dominant writing system, followed by a substitution-invariant shape
// score over each candidate's n-gram tables.
package langdetect

import (
	"sort"
	"unicode"

	"golang.org/x/text/language"

	"github.com/tjanssen/cryptanalyst/internal/langmodel"
	"github.com/tjanssen/cryptanalyst/internal/stats"
	"github.com/tjanssen/cryptanalyst/internal/textnorm"
)

// topK is the number of language candidates the engine consumes for the
// Orchestrator, per spec §4.5.
const topK = 5

// bcp47 maps a Language to its closest BCP-47 tag, used only to give
// CLI output and logs a standard identifier; it plays no role in
// ranking.
var bcp47 = map[langmodel.Language]language.Tag{
	langmodel.English:       language.English,
	langmodel.Spanish:       language.Spanish,
	langmodel.French:        language.French,
	langmodel.German:        language.German,
	langmodel.Italian:       language.Italian,
	langmodel.Portuguese:    language.Portuguese,
	langmodel.Russian:       language.Russian,
	langmodel.ChinesePinyin: language.Chinese,
}

// Candidate is one ranked language guess.
type Candidate struct {
	Language langmodel.Language
	Tag      language.Tag
	Score    float64 // lower is better
}

// script identifies the writing system dominating a raw (pre-cleaning)
// ciphertext.
type script int

const (
	scriptUnknown script = iota
	scriptLatin
	scriptCyrillic
	scriptHan
)

// gate counts Latin, Cyrillic, and Han runes among non-space characters
// and reports the dominant script when it exceeds 50%, per spec §4.5.
func gate(raw string) script {
	var latin, cyrillic, han, total int
	for _, r := range raw {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		switch {
		case unicode.Is(unicode.Latin, r):
			latin++
		case unicode.Is(unicode.Cyrillic, r):
			cyrillic++
		case unicode.Is(unicode.Han, r):
			han++
		}
	}
	if total == 0 {
		return scriptUnknown
	}
	switch {
	case float64(latin)/float64(total) > 0.5:
		return scriptLatin
	case float64(cyrillic)/float64(total) > 0.5:
		return scriptCyrillic
	case float64(han)/float64(total) > 0.5:
		return scriptHan
	default:
		return scriptUnknown
	}
}

func matchesScript(modelScript langmodel.Script, s script) bool {
	switch s {
	case scriptLatin:
		return modelScript == langmodel.ScriptLatin
	case scriptCyrillic:
		return modelScript == langmodel.ScriptCyrillic
	default:
		// scriptHan has no dedicated model (Chinese is modeled as
		// already-Latin pinyin romanization); scriptUnknown means the
		// gate couldn't decide. Both degrade to "consider everything"
		// rather than returning zero candidates.
		return true
	}
}

// Detect ranks every language whose script matches raw's dominant
// script by ascending weighted shape score, and returns the top five.
func Detect(store *langmodel.Store, raw string) []Candidate {
	dominant := gate(raw)
	cleaned := textnorm.CleanLetters(raw)

	n := len([]rune(cleaned))
	h := stats.Histogram(cleaned)
	observedMono := stats.Percentages(h, n)
	observedBi := ngramPercentages(cleaned, 2)
	observedTri := ngramPercentages(cleaned, 3)
	observedQuad := ngramPercentages(cleaned, 4)

	var candidates []Candidate
	for _, lang := range store.Languages() {
		model, _ := store.Get(lang)
		if !matchesScript(model.Script, dominant) {
			continue
		}

		monoScore := stats.ShapeScore(valuesOf(observedMono), model.SortedMonogramValues())
		biScore := stats.ShapeScore(valuesOf(observedBi), model.SortedBigramValues())
		triScore := stats.ShapeScore(valuesOf(observedTri), model.SortedTrigramValues())
		quadScore := stats.ShapeScore(valuesOf(observedQuad), model.SortedQuadgramValues())

		weighted := (monoScore + 2*biScore + 2*triScore + quadScore) / 6.0

		candidates = append(candidates, Candidate{
			Language: lang,
			Tag:      bcp47[lang],
			Score:    weighted,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Score < candidates[j].Score
	})

	if len(candidates) > topK {
		candidates = candidates[:topK]
	}
	return candidates
}

func valuesOf(pct map[string]float64) []float64 {
	values := make([]float64, 0, len(pct))
	for _, v := range pct {
		values = append(values, v)
	}
	return values
}

// ngramPercentages computes the percentage distribution of every
// overlapping length-n window of cleaned text.
func ngramPercentages(cleaned string, n int) map[string]float64 {
	runes := []rune(cleaned)
	counts := make(map[string]int)
	var total int
	for i := 0; i+n <= len(runes); i++ {
		counts[string(runes[i:i+n])]++
		total++
	}
	pct := make(map[string]float64, len(counts))
	if total == 0 {
		return pct
	}
	for gram, c := range counts {
		pct[gram] = 100.0 * float64(c) / float64(total)
	}
	return pct
}
