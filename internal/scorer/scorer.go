// Package scorer combines quadgram log-likelihood with dictionary word
// coverage into the single comparative score solvers use to rank
// candidate plaintexts, per spec §4.7.
package scorer

import "github.com/tjanssen/cryptanalyst/internal/dictionary"

// quadgramWidth is the n-gram window the scorer always uses: solvers
// compare candidates relatively, not against an absolute scale, so a
// fixed width is sufficient (spec §4.7).
const quadgramWidth = 4

// coverageWeight is the dictionary-coverage multiplier in the combined
// score: `combined = ngram_score + 50 · coverage`, chosen so that a
// coverage near 0.7 decisively dominates any plausible quadgram score.
const coverageWeight = 50.0

// NGramScorer scores a length-4 window sum; satisfied by *langmodel.Model.
type NGramScorer interface {
	Score(text string, n int) float64
}

// Score returns the quadgram log-likelihood of cleanedPlaintext.
// Higher is better; typical "good" English scores are > -3.0 per
// quadgram, compared relatively rather than against an absolute bar.
func Score(model NGramScorer, cleanedPlaintext string) float64 {
	return model.Score(cleanedPlaintext, quadgramWidth)
}

// Coverage computes the fraction of dictionary-valid words (length >= 3)
// in text. Returns 0 when dict is nil, so callers can combine scores
// unconditionally without a nil check at every call site.
func Coverage(dict *dictionary.Dictionary, text string) float64 {
	if dict == nil {
		return 0
	}
	return dict.Coverage(text)
}

// Combined blends a quadgram log-likelihood with a dictionary coverage
// fraction: ngram_score + 50*coverage, per spec §4.7.
func Combined(ngramScore, coverage float64) float64 {
	return ngramScore + coverageWeight*coverage
}
