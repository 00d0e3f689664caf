package orchestrator

import (
	"context"
	"log/slog"
	"time"
	"unicode"

	"github.com/tjanssen/cryptanalyst/internal/classifier"
	"github.com/tjanssen/cryptanalyst/internal/dictionary"
	"github.com/tjanssen/cryptanalyst/internal/langdetect"
	"github.com/tjanssen/cryptanalyst/internal/langmodel"
	"github.com/tjanssen/cryptanalyst/internal/solvers"
)

// Resources bundles the process-wide, read-only-after-load stores every
// orchestrator run shares, per spec §9's "constructor-injected Resources
// record" redesign note (replacing the source's global mutable
// dictionary-patching pattern).
type Resources struct {
	Models        *langmodel.Store
	Dictionaries  *dictionary.Store
	UseDictionary bool
}

const (
	innerConfidenceCutoff = 0.85
	innerCoverageCutoff   = 0.50
	outerConfidenceCutoff = 0.80
	outerCoverageCutoff   = 0.40
)

// Run implements spec §4.11's Steps A-E as a single-threaded cooperative
// pipeline: pick language candidates, classify against the first one to
// choose a strategy portfolio, then nest language over strategy with
// the early-exit rules Step D specifies.
func Run(ctx context.Context, ciphertext string, opts Options, res *Resources) FinalResult {
	deadline := time.Now().Add(time.Duration(opts.MaxTimeMS) * time.Millisecond)

	candidates := languageCandidates(res, ciphertext, opts.Language)
	if len(candidates) == 0 {
		return noneResult("no language candidates available", classifier.Result{}, nil)
	}

	firstDict := dictFor(res, candidates[0].Language)
	classification := classifier.Classify(ciphertext, firstDict)

	// Spec §4.11 Step C's strategy table has no row for the classifier's
	// Unknown family (only RandomOrUnknown gets a fallback portfolio):
	// an Unknown classification — always the length<20 edge rule (spec
	// §4.6) — short-circuits straight to the "no successful decryption"
	// sentinel, per end-to-end scenario 5.
	if topFamily(classification) == classifier.Unknown {
		return noneResult(unknownReason(classification), classification, candidates)
	}

	hints := buildHints(ciphertext, classification)
	strategies := strategyPortfolio(topFamily(classification), hints)

	var best FinalResult
	bestCombined := -1.0
	found := false

	for _, cand := range candidates {
		if time.Now().After(deadline) {
			break
		}

		model, ok := res.Models.Get(cand.Language)
		if !ok {
			continue
		}
		dict := dictFor(res, cand.Language)

		languageBestCombined := -1.0
		for _, strat := range strategies {
			if time.Now().After(deadline) {
				break
			}

			runner, ok := solvers.Registry[strat.Kind]
			if !ok {
				continue
			}

			result, err := runner(ctx, ciphertext, model, dict, nil)
			if err != nil {
				slog.Warn("strategy failed", "strategy", strat.Kind, "language", cand.Language, "err", err)
				continue
			}
			if result.Plaintext == "" {
				continue
			}

			// Step D.3's "dictionary validation" is the same coverage
			// fraction solvers already compute against the chosen
			// language's dictionary; the Orchestrator doesn't re-derive
			// a second measure, it just names it separately in the
			// combined-score formula the spec gives.
			dictConfidence := 0.0
			if result.HasWordCoverage {
				dictConfidence = result.WordCoverage
			}
			combined := result.Confidence + 0.5*result.WordCoverage + 0.3*dictConfidence

			if combined > bestCombined {
				bestCombined = combined
				found = true
				best = FinalResult{
					Plaintext:      result.Plaintext,
					MethodTag:      result.MethodTag,
					Key:            result.Key,
					Language:       string(cand.Language),
					Confidence:     result.Confidence,
					WordCoverage:   result.WordCoverage,
					DictConfidence: dictConfidence,
					CombinedScore:  combined,
					ClassifierTop:  topFamily(classification),
					Classification: classification,
					Candidates:     candidates,
				}
			}
			if combined > languageBestCombined {
				languageBestCombined = combined
			}

			// Inner early exit (Step D.5).
			if result.Confidence > innerConfidenceCutoff && result.WordCoverage > innerCoverageCutoff {
				return best
			}
		}

		// Outer early exit (Step D.6): stop trying further languages
		// once the running best clears the looser bar.
		if found && best.Confidence > outerConfidenceCutoff && best.WordCoverage > outerCoverageCutoff {
			break
		}
	}

	if !found {
		return noneResult("no successful decryption", classification, candidates)
	}
	return best
}

// languageCandidates implements Step A: LangDetect's top-5 when
// language is "auto", else the single requested language.
func languageCandidates(res *Resources, ciphertext, language string) []langdetect.Candidate {
	if language == "" || language == "auto" {
		return langdetect.Detect(res.Models, ciphertext)
	}
	lang, ok := langmodel.ParseLanguage(language)
	if !ok {
		return langdetect.Detect(res.Models, ciphertext)
	}
	return []langdetect.Candidate{{Language: lang}}
}

func dictFor(res *Resources, lang langmodel.Language) *dictionary.Dictionary {
	if !res.UseDictionary || res.Dictionaries == nil {
		return nil
	}
	dict, ok := res.Dictionaries.Get(lang)
	if !ok {
		return nil
	}
	return dict
}

// buildHints derives the Step C portfolio conditionals from the raw
// ciphertext and the classifier's own statistics.
func buildHints(ciphertext string, classification classifier.Result) portfolioHints {
	hints := portfolioHints{
		hasNonLetterASCII: hasNonLetterPrintableASCII(ciphertext),
		hasDigitPairs:     countDigitPairs(ciphertext) >= 5,
		hasBinaryRuns:     hasLongBinaryOrABRun(ciphertext),
	}
	if len(classification.Stats.SuggestedKeyLengths) > 0 {
		hints.suggestedKeyLength = classification.Stats.SuggestedKeyLengths[0].KeyLength
	}
	return hints
}

func hasNonLetterPrintableASCII(s string) bool {
	for _, r := range s {
		if r >= 33 && r <= 126 && !unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func countDigitPairs(s string) int {
	var digits []rune
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
		}
	}
	count := 0
	for i := 0; i+2 <= len(digits); i += 2 {
		count++
	}
	return count
}

func hasLongBinaryOrABRun(s string) bool {
	const minRun = 5
	run := 0
	for _, r := range s {
		if r == 'A' || r == 'B' || r == '0' || r == '1' {
			run++
			if run >= minRun {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}
