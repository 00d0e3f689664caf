package solvers

import (
	"context"
	"strconv"

	"github.com/tjanssen/cryptanalyst/internal/dictionary"
	"github.com/tjanssen/cryptanalyst/internal/langmodel"
	"github.com/tjanssen/cryptanalyst/internal/scorer"
	"github.com/tjanssen/cryptanalyst/internal/textnorm"
)

const (
	caesarAlphabetSize   = 26
	rot47AlphabetSize    = 94
	rot47Base            = 33
	earlyStopCoverage    = 0.70
	highConfidenceCutoff = 0.80
	midConfidenceCutoff  = 0.70
)

// shiftCaesar applies a Caesar shift to every A-Z letter of raw,
// preserving case and passing every other rune through unchanged.
func shiftCaesar(raw string, shift int) string {
	out := make([]rune, 0, len(raw))
	for _, r := range raw {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, 'A'+(r-'A'+rune(shift))%caesarAlphabetSize)
		case r >= 'a' && r <= 'z':
			out = append(out, 'a'+(r-'a'+rune(shift))%caesarAlphabetSize)
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

// shiftRot47 applies a ROT47-style shift over printable ASCII (33-126)
// to every rune in that range; everything else passes through.
func shiftRot47(raw string, shift int) string {
	out := make([]rune, 0, len(raw))
	for _, r := range raw {
		if r < rot47Base || r > rot47Base+rot47AlphabetSize-1 {
			out = append(out, r)
			continue
		}
		n := ((int(r) - rot47Base - shift) % rot47AlphabetSize) + rot47AlphabetSize
		n = n % rot47AlphabetSize
		out = append(out, rune(n+rot47Base))
	}
	return string(out)
}

func confidenceFromCoverage(coverage, ngramScore float64, hasDict bool) float64 {
	if hasDict {
		switch {
		case coverage > highConfidenceCutoff:
			return 0.98
		case coverage > midConfidenceCutoff:
			return 0.95
		}
	}
	// No dictionary, or coverage too low to hit the fixed buckets:
	// fall back to a bounded mapping of the quadgram score so
	// confidence still lands in [0,1]. English "good" scores are
	// typically > -3.0 per quadgram (spec §4.7); clamp accordingly.
	c := 1.0 + ngramScore/10.0
	if c < 0 {
		c = 0
	}
	if c > 0.9 {
		c = 0.9
	}
	return c
}

// runCaesar implements spec §4.8's Caesar sweep: all 26 shifts scored
// by combined quadgram+coverage score, with early termination as soon
// as any shift's decryption reaches 70% word coverage.
func runCaesar(ctx context.Context, ciphertext string, model *langmodel.Model, dict *dictionary.Dictionary, progress func(Progress)) (Result, error) {
	var best Result
	var bestCombined = -1e18

	for shift := 0; shift < caesarAlphabetSize; shift++ {
		if err := ctx.Err(); err != nil {
			return best, err
		}

		candidateRaw := shiftCaesar(ciphertext, shift)
		cleaned := textnorm.CleanLetters(candidateRaw)
		ngramScore := model.Score(cleaned, 4)
		coverage := scorer.Coverage(dict, candidateRaw)
		combined := scorer.Combined(ngramScore, coverage)

		if progress != nil {
			progress(Progress{Iteration: shift + 1, Total: caesarAlphabetSize, CurrentPlaintext: candidateRaw, CurrentScore: combined})
		}

		if combined > bestCombined {
			bestCombined = combined
			best = Result{
				Plaintext:       candidateRaw,
				MethodTag:       MethodCaesarShift,
				Key:             string(rune('A' + shift)),
				RawScore:        ngramScore,
				Confidence:      confidenceFromCoverage(coverage, ngramScore, dict != nil),
				WordCoverage:    coverage,
				HasWordCoverage: dict != nil,
			}
		}

		if dict != nil && coverage >= earlyStopCoverage {
			best.Confidence = confidenceFromCoverage(coverage, ngramScore, true)
			return best, nil
		}
	}

	return best, nil
}

// runRot47Single sweeps all 94 ROT47 shifts for one model/dict pair,
// returning early once a shift's decryption has dictionary coverage
// above 0.50 or confidence above highConfidenceCutoff. It does not
// import internal/langdetect (which would create an import cycle back
// through the orchestrator); the Orchestrator's language loop invokes
// it once per candidate language.
func runRot47Single(ctx context.Context, ciphertext string, model *langmodel.Model, dict *dictionary.Dictionary, progress func(Progress)) (Result, error) {
	var best Result
	var bestCombined = -1e18

	for shift := 0; shift < rot47AlphabetSize; shift++ {
		if err := ctx.Err(); err != nil {
			return best, err
		}

		candidateRaw := shiftRot47(ciphertext, shift)
		cleaned := textnorm.CleanLetters(candidateRaw)
		ngramScore := model.Score(cleaned, 4)
		coverage := scorer.Coverage(dict, candidateRaw)
		combined := scorer.Combined(ngramScore, coverage)

		if progress != nil {
			progress(Progress{Iteration: shift + 1, Total: rot47AlphabetSize, CurrentPlaintext: candidateRaw, CurrentScore: combined})
		}

		if combined > bestCombined {
			bestCombined = combined
			best = Result{
				Plaintext:       candidateRaw,
				MethodTag:       MethodRot47,
				Key:             strconv.Itoa(shift),
				RawScore:        ngramScore,
				Confidence:      confidenceFromCoverage(coverage, ngramScore, dict != nil),
				WordCoverage:    coverage,
				HasWordCoverage: dict != nil,
			}
		}

		if dict != nil && (coverage > 0.50 || best.Confidence > highConfidenceCutoff) {
			return best, nil
		}
	}

	return best, nil
}
