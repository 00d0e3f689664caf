package solvers

import (
	"context"
	"math"
	"math/rand"
	"sort"

	"github.com/tjanssen/cryptanalyst/internal/dictionary"
	"github.com/tjanssen/cryptanalyst/internal/langmodel"
	"github.com/tjanssen/cryptanalyst/internal/textnorm"
)

const (
	defaultRestarts     = 2
	hillClimbSweepSize  = 325 // C(26,2): every distinct swap of a 26-letter key
	hillClimbMaxIter    = 5000
	annealingIterations = 20000
	annealingT0         = 10.0
	annealingTMin       = 0.01
	progressStride      = 400 // ~2% of annealingIterations, per spec's yield cadence
)

// permutation is a substitution key: permutation[i] is the plaintext
// letter (0-25) that cipher letter i decrypts to.
type permutation [26]int

func identityPermutation() permutation {
	var p permutation
	for i := range p {
		p[i] = i
	}
	return p
}

// frequencyInit builds a warm-start permutation: ciphertext letters
// sorted by observed frequency descending are mapped to the language
// model's monogram rank, per spec §4.10's "frequency init".
func frequencyInit(cleaned string, model *langmodel.Model) permutation {
	var counts [26]int
	for _, r := range cleaned {
		counts[r-'A']++
	}
	cipherByFreq := make([]int, 26)
	for i := range cipherByFreq {
		cipherByFreq[i] = i
	}
	sort.Slice(cipherByFreq, func(i, j int) bool {
		return counts[cipherByFreq[i]] > counts[cipherByFreq[j]]
	})

	type ranked struct {
		letter int
		pct    float64
	}
	plainByFreq := make([]ranked, 26)
	for i := 0; i < 26; i++ {
		letter := string(rune('A' + i))
		plainByFreq[i] = ranked{letter: i, pct: model.Monograms[letter]}
	}
	sort.Slice(plainByFreq, func(i, j int) bool {
		return plainByFreq[i].pct > plainByFreq[j].pct
	})

	var p permutation
	for rank, cipherLetter := range cipherByFreq {
		p[cipherLetter] = plainByFreq[rank].letter
	}
	return p
}

func randomPermutation(rng *rand.Rand) permutation {
	p := identityPermutation()
	rng.Shuffle(26, func(i, j int) { p[i], p[j] = p[j], p[i] })
	return p
}

func (p permutation) decrypt(cleaned string) string {
	out := make([]rune, 0, len(cleaned))
	for _, r := range cleaned {
		out = append(out, rune('A'+p[r-'A']))
	}
	return string(out)
}

func scorePermutation(p permutation, cleaned string, model *langmodel.Model) float64 {
	return model.Score(p.decrypt(cleaned), 4)
}

// runHillClimb implements spec §4.10's hill-climbing search: warm-start
// from frequency init plus random restarts, swap neighbor moves,
// strictly-improving acceptance, termination on a dry sweep or the
// iteration cap.
func runHillClimb(ctx context.Context, ciphertext string, model *langmodel.Model, dict *dictionary.Dictionary, progress func(Progress)) (Result, error) {
	cleaned := textnorm.CleanLetters(ciphertext)
	if len(cleaned) == 0 {
		return Result{}, errShortCiphertext
	}

	rng := rand.New(rand.NewSource(1))
	var bestPerm permutation
	bestScore := math.Inf(-1)

	for restart := 0; restart < defaultRestarts; restart++ {
		if err := ctx.Err(); err != nil {
			return buildSubstitutionResult(bestPerm, cleaned, ciphertext, model, dict, MethodHillClimb), err
		}

		current := frequencyInit(cleaned, model)
		if restart > 0 {
			current = randomPermutation(rng)
		}
		currentScore := scorePermutation(current, cleaned, model)

		iterations := 0
		for iterations < hillClimbMaxIter {
			improved := false
			for i := 0; i < 26 && iterations < hillClimbMaxIter; i++ {
				for j := i + 1; j < 26 && iterations < hillClimbMaxIter; j++ {
					iterations++
					candidate := current
					candidate[i], candidate[j] = candidate[j], candidate[i]
					candidateScore := scorePermutation(candidate, cleaned, model)
					if candidateScore > currentScore {
						current = candidate
						currentScore = candidateScore
						improved = true
					}
				}
			}
			if progress != nil {
				progress(Progress{Iteration: iterations, Total: hillClimbMaxIter, CurrentPlaintext: current.decrypt(cleaned), CurrentScore: currentScore})
			}
			if !improved {
				break
			}
		}

		if currentScore > bestScore {
			bestScore = currentScore
			bestPerm = current
		}
	}

	return buildSubstitutionResult(bestPerm, cleaned, ciphertext, model, dict, MethodHillClimb), nil
}

// runAnnealing implements spec §4.10's simulated annealing: geometric
// temperature decay from T0 to TMin over the full iteration budget,
// Metropolis acceptance for worsening moves, global-best tracking.
func runAnnealing(ctx context.Context, ciphertext string, model *langmodel.Model, dict *dictionary.Dictionary, progress func(Progress)) (Result, error) {
	cleaned := textnorm.CleanLetters(ciphertext)
	if len(cleaned) == 0 {
		return Result{}, errShortCiphertext
	}

	rng := rand.New(rand.NewSource(1))
	current := frequencyInit(cleaned, model)
	currentScore := scorePermutation(current, cleaned, model)

	best := current
	bestScore := currentScore

	decay := math.Pow(annealingTMin/annealingT0, 1.0/float64(annealingIterations))
	temperature := annealingT0

	for iter := 0; iter < annealingIterations; iter++ {
		if iter%progressStride == 0 {
			if err := ctx.Err(); err != nil {
				return buildSubstitutionResult(best, cleaned, ciphertext, model, dict, MethodAnnealing), err
			}
		}

		i := rng.Intn(26)
		j := rng.Intn(26)
		for j == i {
			j = rng.Intn(26)
		}
		candidate := current
		candidate[i], candidate[j] = candidate[j], candidate[i]
		candidateScore := scorePermutation(candidate, cleaned, model)

		delta := candidateScore - currentScore
		if delta >= 0 || rng.Float64() < math.Exp(delta/temperature) {
			current = candidate
			currentScore = candidateScore
			if currentScore > bestScore {
				bestScore = currentScore
				best = current
			}
		}

		if progress != nil && iter%progressStride == 0 {
			progress(Progress{Iteration: iter, Total: annealingIterations, CurrentPlaintext: best.decrypt(cleaned), CurrentScore: bestScore})
		}

		temperature *= decay
		if temperature < annealingTMin {
			temperature = annealingTMin
		}
	}

	return buildSubstitutionResult(best, cleaned, ciphertext, model, dict, MethodAnnealing), nil
}

func buildSubstitutionResult(best permutation, cleaned, originalCiphertext string, model *langmodel.Model, dict *dictionary.Dictionary, method string) Result {
	decryptedCleaned := best.decrypt(cleaned)
	restored, _ := textnorm.MatchLayout(originalCiphertext, decryptedCleaned)

	key := make([]rune, 26)
	for cipherLetter, plainLetter := range best {
		key[cipherLetter] = rune('A' + plainLetter)
	}

	score := model.Score(decryptedCleaned, 4)
	coverage := 0.0
	hasCoverage := dict != nil
	if dict != nil {
		coverage = dict.Coverage(restored)
	}

	confidence := 1.0 + score/10.0
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 0.95 {
		confidence = 0.95
	}

	return Result{
		Plaintext:       restored,
		MethodTag:       method,
		Key:             string(key),
		RawScore:        score,
		Confidence:      confidence,
		WordCoverage:    coverage,
		HasWordCoverage: hasCoverage,
	}
}
