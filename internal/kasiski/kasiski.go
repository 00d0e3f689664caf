// Package kasiski implements the Kasiski examination: finding repeated
// trigrams in ciphertext and using the distances between their
// occurrences to vote for candidate Vigenère key lengths.
package kasiski

import "sort"

const (
	trigramLen = 3
	minKeyLen  = 2
	maxKeyLen  = 20
)

// KeyLengthScore is one candidate key length and its vote fraction.
type KeyLengthScore struct {
	KeyLength int
	Score     float64
}

// Result is the full output of examining a ciphertext, per spec §4.4.
type Result struct {
	Repetitions    map[string][]int
	Distances      []int
	KeyLengths     []KeyLengthScore
	HasRepetitions bool
}

// Examine builds the trigram → occurrence-positions map over cleaned
// text, collects every pairwise distance between repeats of the same
// trigram, and scores each candidate key length k in [2, 20] by the
// fraction of those distances divisible by k.
func Examine(cleaned string) Result {
	runes := []rune(cleaned)
	positions := make(map[string][]int)
	for i := 0; i+trigramLen <= len(runes); i++ {
		tri := string(runes[i : i+trigramLen])
		positions[tri] = append(positions[tri], i)
	}

	repeated := make(map[string][]int)
	var distances []int
	for tri, pos := range positions {
		if len(pos) < 2 {
			continue
		}
		repeated[tri] = pos
		for i := 0; i < len(pos); i++ {
			for j := i + 1; j < len(pos); j++ {
				distances = append(distances, pos[j]-pos[i])
			}
		}
	}

	var scores []KeyLengthScore
	if len(distances) > 0 {
		for k := minKeyLen; k <= maxKeyLen; k++ {
			var hits int
			for _, d := range distances {
				if d%k == 0 {
					hits++
				}
			}
			scores = append(scores, KeyLengthScore{
				KeyLength: k,
				Score:     float64(hits) / float64(len(distances)),
			})
		}
		sort.Slice(scores, func(i, j int) bool {
			return scores[i].Score > scores[j].Score
		})
	}

	return Result{
		Repetitions:    repeated,
		Distances:      distances,
		KeyLengths:     scores,
		HasRepetitions: len(repeated) > 0,
	}
}
