// Package classifier maps a ciphertext to a ranked list of candidate
// cipher families using the multi-signal heuristics from spec §4.6:
// index of coincidence, Kasiski examination, entropy, a quick Caesar
// probe, dictionary coverage, and simple pattern detection.
package classifier

import (
	"sort"
	"unicode"

	"github.com/tjanssen/cryptanalyst/internal/dictionary"
	"github.com/tjanssen/cryptanalyst/internal/kasiski"
	"github.com/tjanssen/cryptanalyst/internal/stats"
	"github.com/tjanssen/cryptanalyst/internal/textnorm"
)

const (
	shortTextLen  = 20
	lengthShort   = 50
	lengthMedium  = 150
	maxFamilyDrop = 0.2
)

// Classify scores every cipher family for ciphertext and returns them
// ranked by confidence, dropping anything below 0.2 after normalizing
// the top family to 1.0. dict should be the dictionary for the
// caller's language hint (spec §4.6's "language hint, used only for
// optional dictionary bonus"); it may be nil, in which case the
// dictionary-backed heuristics are skipped entirely, per spec §7's
// non-fatal resource rule.
func Classify(ciphertext string, dict *dictionary.Dictionary) Result {
	cleaned := textnorm.CleanLetters(ciphertext)
	length := len([]rune(cleaned))

	if length < shortTextLen {
		return Result{
			Families: []Family{{Kind: Unknown, Confidence: 1.0, Reason: "text too short"}},
			Stats:    Stats{Length: length},
		}
	}

	ic := stats.IndexOfCoincidence(cleaned)
	entropy := stats.Entropy(cleaned)
	kas := kasiski.Examine(cleaned)

	votes := map[FamilyKind]float64{
		MonoalphabeticSubstitution: 0,
		CaesarShift:                0,
		VigenereLike:               0,
		Transposition:              0,
		RandomOrUnknown:            0,
	}

	voteIoC(votes, ic, length)
	voteKasiski(votes, kas, ic, length)
	voteEntropy(votes, entropy, ic)
	voteTransposition(votes, ic, entropy, length, ciphertext)
	voteCaesarQuickTest(votes, ciphertext, length, dict)
	voteDictionary(votes, ciphertext, ic, dict)
	votePatterns(votes, ciphertext, cleaned, ic, kas)

	families := finalize(votes, kas)

	return Result{
		Families: families,
		Stats: Stats{
			Length:              length,
			IC:                  ic,
			Entropy:             entropy,
			HasRepetitions:      kas.HasRepetitions,
			SuggestedKeyLengths: suggestedKeyLengths(kas),
		},
	}
}

// voteIoC implements heuristic 1: length-aware IoC thresholds.
func voteIoC(votes map[FamilyKind]float64, ic float64, length int) {
	highThreshold := 1.35
	switch {
	case length >= lengthMedium:
		highThreshold = 1.5
	case length < lengthShort:
		highThreshold = 1.2
	}

	switch {
	case ic >= highThreshold:
		votes[MonoalphabeticSubstitution] += 1.0
		votes[CaesarShift] += 0.8
		votes[Transposition] += 0.5
	case ic > 1.0:
		if length < lengthShort {
			// Short texts have high IoC variance; prefer the simpler
			// monoalphabetic hypothesis over Vigenère here.
			votes[MonoalphabeticSubstitution] += 0.6
		} else {
			votes[VigenereLike] += 1.0
		}
	default:
		votes[VigenereLike] += 0.6
		votes[RandomOrUnknown] += 0.8
	}
}

// voteKasiski implements heuristic 2.
func voteKasiski(votes map[FamilyKind]float64, kas kasiski.Result, ic float64, length int) {
	reliable := length >= 100 && kas.HasRepetitions && ic < 1.6
	if !reliable || len(kas.KeyLengths) == 0 {
		return
	}
	top := kas.KeyLengths[0].Score
	switch {
	case top > 0.3:
		votes[VigenereLike] += 1.2
	case top > 0.1:
		votes[VigenereLike] += 0.5
	}
}

// voteEntropy implements heuristic 3.
func voteEntropy(votes map[FamilyKind]float64, entropy, ic float64) {
	switch {
	case entropy >= 4.3:
		votes[RandomOrUnknown] += 1.0
	case entropy >= 3.8:
		if ic >= 1.35 {
			votes[Transposition] += 0.8
		}
	default:
		votes[MonoalphabeticSubstitution] += 0.6
	}
}

// voteTransposition implements heuristic 4.
func voteTransposition(votes map[FamilyKind]float64, ic, entropy float64, length int, raw string) {
	if ic >= 1.5 && entropy >= 3.8 && entropy <= 4.3 && length >= 50 && onlyLatinLetters(raw) {
		votes[Transposition] += 1.0
		votes[MonoalphabeticSubstitution] -= 0.8
	}
}

// voteCaesarQuickTest implements heuristic 5: try shifts {1, 13, 25},
// dictionary-check the first ten words of each layout-restored
// candidate.
func voteCaesarQuickTest(votes map[FamilyKind]float64, raw string, length int, dict *dictionary.Dictionary) {
	if dict == nil || length < 20 || length >= 200 {
		return
	}
	for _, shift := range []int{1, 13, 25} {
		candidate := shiftLettersPreservingLayout(raw, shift)
		coverage := firstTenWordsCoverage(candidate, dict)
		if coverage > 0.3 {
			votes[CaesarShift] += 1.0
			votes[VigenereLike] -= 0.5
			return
		}
	}
}

// voteDictionary implements heuristic 6: coverage of the raw text
// itself (before any shift hypothesis), which is only informative when
// the ciphertext leaks real words, e.g. a weak or partial cipher.
func voteDictionary(votes map[FamilyKind]float64, raw string, ic float64, dict *dictionary.Dictionary) {
	if dict == nil {
		return
	}
	coverage := dict.Coverage(raw)
	switch {
	case coverage > 0.5 && ic >= 1.35:
		votes[MonoalphabeticSubstitution] += 0.6
		votes[CaesarShift] += 0.6
	case coverage < 0.2:
		votes[RandomOrUnknown] += 0.5
		votes[VigenereLike] += 0.5
	}
}

// votePatterns implements heuristic 7.
func votePatterns(votes map[FamilyKind]float64, raw, cleaned string, ic float64, kas kasiski.Result) {
	if countPolybiusPairs(raw) >= 5 {
		votes[MonoalphabeticSubstitution] += 0.5
	}
	if hasLongBinaryRun(raw, 'A', 'B', 5) || hasLongBinaryRun(raw, '0', '1', 5) {
		votes[MonoalphabeticSubstitution] += 0.5
	}
	if ic >= 1.6 && !kas.HasRepetitions {
		votes[MonoalphabeticSubstitution] += 0.5
	}
}

func finalize(votes map[FamilyKind]float64, kas kasiski.Result) []Family {
	// Clamp every family's additive score to [0, ∞) before normalizing,
	// since negative votes (heuristic 4) can otherwise push a score
	// below zero ahead of the max-normalize step.
	var max float64
	for kind, v := range votes {
		if v < 0 {
			votes[kind] = 0
			v = 0
		}
		if v > max {
			max = v
		}
	}

	order := []FamilyKind{MonoalphabeticSubstitution, CaesarShift, VigenereLike, Transposition, RandomOrUnknown}
	var families []Family
	for _, kind := range order {
		v := votes[kind]
		var confidence float64
		if max > 0 {
			confidence = v / max
		}
		if confidence < maxFamilyDrop {
			continue
		}
		f := Family{Kind: kind, Confidence: confidence}
		if kind == VigenereLike && len(kas.KeyLengths) > 0 {
			f.SuggestedKeyLength = kas.KeyLengths[0].KeyLength
		}
		families = append(families, f)
	}

	sort.Slice(families, func(i, j int) bool {
		return families[i].Confidence > families[j].Confidence
	})

	if len(families) == 0 {
		families = []Family{{Kind: Unknown, Confidence: 1.0, Reason: "no family cleared the confidence floor"}}
	}

	return families
}

func suggestedKeyLengths(kas kasiski.Result) []KeyLengthCandidate {
	n := len(kas.KeyLengths)
	if n > 5 {
		n = 5
	}
	out := make([]KeyLengthCandidate, n)
	for i := 0; i < n; i++ {
		out[i] = KeyLengthCandidate{KeyLength: kas.KeyLengths[i].KeyLength, Score: kas.KeyLengths[i].Score}
	}
	return out
}

func onlyLatinLetters(raw string) bool {
	var letters, nonSpace int
	for _, r := range raw {
		if unicode.IsSpace(r) {
			continue
		}
		nonSpace++
		if unicode.Is(unicode.Latin, r) {
			letters++
		}
	}
	if nonSpace == 0 {
		return false
	}
	return float64(letters)/float64(nonSpace) >= 0.95
}

// shiftLettersPreservingLayout applies a Caesar shift to every letter
// of raw while leaving case, digits, and punctuation untouched, the
// same layout-preserving shape as solvers.shiftCaesar but kept local
// here since the classifier only needs a cheap three-shift probe, not
// the full brute-force sweep.
func shiftLettersPreservingLayout(raw string, shift int) string {
	out := make([]rune, 0, len(raw))
	for _, r := range raw {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, 'A'+(r-'A'+rune(shift))%26)
		case r >= 'a' && r <= 'z':
			out = append(out, 'a'+(r-'a'+rune(shift))%26)
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

func firstTenWordsCoverage(text string, dict *dictionary.Dictionary) float64 {
	words := splitIntoWords(text)
	if len(words) > 10 {
		words = words[:10]
	}
	if len(words) == 0 {
		return 0
	}
	var hits int
	for _, w := range words {
		if len([]rune(w)) >= 3 && dict.Contains(w) {
			hits++
		}
	}
	return float64(hits) / float64(len(words))
}

func splitIntoWords(text string) []string {
	var words []string
	var current []rune
	for _, r := range text {
		if unicode.IsLetter(r) {
			current = append(current, r)
			continue
		}
		if len(current) > 0 {
			words = append(words, string(current))
			current = nil
		}
	}
	if len(current) > 0 {
		words = append(words, string(current))
	}
	return words
}

func countPolybiusPairs(raw string) int {
	var digits []rune
	for _, r := range raw {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
		}
	}
	var count int
	for i := 0; i+2 <= len(digits); i += 2 {
		n := int(digits[i]-'0')*10 + int(digits[i+1]-'0')
		if n >= 11 && n <= 55 {
			count++
		}
	}
	return count
}

func hasLongBinaryRun(raw string, a, b rune, minRun int) bool {
	run := 0
	for _, r := range raw {
		if r == a || r == b {
			run++
			if run >= minRun {
				return true
			}
			continue
		}
		run = 0
	}
	return false
}
