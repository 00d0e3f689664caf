// Package stats implements the statistical primitives the classifier,
// Kasiski examination, and solvers share: index of coincidence, Shannon
// entropy, chi-squared, and the substitution-invariant "shape score".
package stats

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// alphabetSize is the Latin alphabet size used to scale the index of
// coincidence, per spec §4.3.
const alphabetSize = 26.0

// Histogram counts letter occurrences in cleaned (A-Z only) text, keyed
// by rune.
func Histogram(cleaned string) map[rune]int {
	h := make(map[rune]int)
	for _, r := range cleaned {
		h[r]++
	}
	return h
}

// Percentages converts a histogram into a percentage distribution keyed
// by single-character string, matching the shape of the embedded
// langmodel monogram tables so the two can be compared directly.
func Percentages(h map[rune]int, total int) map[string]float64 {
	pct := make(map[string]float64, len(h))
	if total == 0 {
		return pct
	}
	for r, n := range h {
		pct[string(r)] = 100.0 * float64(n) / float64(total)
	}
	return pct
}

// IndexOfCoincidence computes the normalized (k=26) index of
// coincidence over cleaned A-Z text: κ = 26 · Σ fᵢ(fᵢ−1) / (N(N−1)).
// Returns 0 for N < 2, per spec §4.3.
func IndexOfCoincidence(cleaned string) float64 {
	n := len([]rune(cleaned))
	if n < 2 {
		return 0
	}
	h := Histogram(cleaned)
	var sum float64
	for _, f := range h {
		sum += float64(f) * float64(f-1)
	}
	return alphabetSize * sum / (float64(n) * float64(n-1))
}

// Entropy computes the Shannon entropy, in bits, of cleaned text's
// letter distribution.
func Entropy(cleaned string) float64 {
	n := len([]rune(cleaned))
	if n == 0 {
		return 0
	}
	h := Histogram(cleaned)
	var e float64
	for _, f := range h {
		p := float64(f) / float64(n)
		e -= p * math.Log2(p)
	}
	return e
}

// ChiSquared computes Σ (obs − exp)² / exp over expected's keys, per
// spec §4.3. Keys present in observed but absent from expected are
// ignored, since expected defines the summation domain; observed
// values absent for an expected key are treated as 0.
func ChiSquared(observedPct, expectedPct map[string]float64) float64 {
	var total float64
	for key, exp := range expectedPct {
		if exp == 0 {
			continue
		}
		obs := observedPct[key]
		diff := obs - exp
		total += diff * diff / exp
	}
	return total
}

// ShapeScore computes chi-squared between the descending-sorted value
// vectors of observed and expected, ignoring key alignment. Invariant
// under any bijective remapping of the alphabet (monoalphabetic
// substitution), which makes it usable for language detection on
// enciphered text (spec §4.3, §4.5).
func ShapeScore(observed, expected []float64) float64 {
	obs := sortedDescending(observed)
	exp := sortedDescending(expected)

	n := len(exp)
	if len(obs) < n {
		n = len(obs)
	}

	var total float64
	for i := 0; i < n; i++ {
		e := exp[i]
		if e == 0 {
			continue
		}
		diff := obs[i] - e
		total += diff * diff / e
	}
	// Any expected bucket with no matching observed entry contributes
	// its full square against an assumed-zero observation.
	for i := n; i < len(exp); i++ {
		e := exp[i]
		if e == 0 {
			continue
		}
		total += e
	}
	return total
}

func sortedDescending(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	sort.Sort(sort.Reverse(sort.Float64Slice(out)))
	return out
}

// Mean delegates to montanaflynn/stats for the plain descriptive
// statistic the Vigenère solver needs (average column IoC across
// key-length candidates), rather than re-deriving it.
func Mean(values []float64) float64 {
	m, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return m
}

// StandardDeviation delegates to montanaflynn/stats, population form.
func StandardDeviation(values []float64) float64 {
	sd, err := stats.StandardDeviation(values)
	if err != nil {
		return 0
	}
	return sd
}

// Median delegates to montanaflynn/stats.
func Median(values []float64) float64 {
	m, err := stats.Median(values)
	if err != nil {
		return 0
	}
	return m
}
