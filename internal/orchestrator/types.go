// Package orchestrator drives the classifier, langdetect, and solvers
// packages through the language × strategy portfolio described in
// spec §4.11: pick language candidates, pick a strategy portfolio from
// the top cipher family, run the nested (language, strategy)
// loop with early-exit rules, and return the best result found.
package orchestrator

import (
	"github.com/tjanssen/cryptanalyst/internal/classifier"
	"github.com/tjanssen/cryptanalyst/internal/langdetect"
	"github.com/tjanssen/cryptanalyst/internal/solvers"
)

// Options mirrors spec §6's engine Options: language selection, the
// TryMultiple flag, the soft time budget, and whether dictionary
// validation is used. TryMultiple is carried through from configuration
// but Run and Stream do not read it; their early-exit rules alone
// decide when to stop trying further languages/strategies.
type Options struct {
	Language      string // "auto" or a langmodel.ParseLanguage code
	TryMultiple   bool
	MaxTimeMS     int64
	UseDictionary bool
}

// DefaultOptions matches spec §6's defaults.
func DefaultOptions() Options {
	return Options{Language: "auto", TryMultiple: true, MaxTimeMS: 60000, UseDictionary: true}
}

// FinalResult is the Orchestrator's aggregated output, per spec §4.11
// Step E.
type FinalResult struct {
	Plaintext      string
	MethodTag      string
	Key            string
	Language       string
	Confidence     float64
	WordCoverage   float64
	DictConfidence float64
	CombinedScore  float64
	ClassifierTop  classifier.FamilyKind
	Classification classifier.Result
	Candidates     []langdetect.Candidate
	Error          string
}

// noneResult is the sentinel FinalResult spec §4.11 Step E and §7
// describe for "no successful decryption".
func noneResult(reason string, classification classifier.Result, candidates []langdetect.Candidate) FinalResult {
	return FinalResult{
		MethodTag:      "none",
		Confidence:     0,
		ClassifierTop:  topFamily(classification),
		Classification: classification,
		Candidates:     candidates,
		Error:          reason,
	}
}

func topFamily(c classifier.Result) classifier.FamilyKind {
	if len(c.Families) == 0 {
		return classifier.Unknown
	}
	return c.Families[0].Kind
}

// unknownReason extracts the classifier's Reason for an Unknown
// verdict, falling back to a generic message when Families is empty.
func unknownReason(c classifier.Result) string {
	if len(c.Families) == 0 || c.Families[0].Reason == "" {
		return "classifier could not determine a cipher family"
	}
	return c.Families[0].Reason
}

// StatusEvent is one entry in the progress stream, per spec §4.11's
// "Progress surface" table of stages.
type StatusEvent struct {
	RunID    string
	Stage    string
	Message  string
	Progress int // 0-100
}

// Stage tags, matching spec §4.11 verbatim.
const (
	StageLanguageDetection = "language-detection"
	StageLanguageDetected  = "language-detected"
	StageCipherDetection   = "cipher-detection"
	StageCipherDetected    = "cipher-detected"
	StageStrategiesPicked  = "strategies-selected"
	StageTryingLanguage    = "trying-language"
	StageTryingStrategy    = "trying-strategy"
	StageSolving           = "solving"
	StageStrategyComplete  = "strategy-complete"
	StageStrategyFailed    = "strategy-failed"
	StageEarlyStop         = "early-stop"
	StageLanguageComplete  = "language-complete"
	StageComplete          = "complete"
	StageFailed            = "failed"
)

// strategyPortfolio returns the ordered strategy list for a cipher
// family, per spec §4.11 Step C's table. hasNonLetterASCII and
// hasDigitPairs/hasBinaryRuns are classifier-stat-derived conditionals
// gating ROT47/Polybius/Baconian entries.
func strategyPortfolio(family classifier.FamilyKind, hints portfolioHints) []solvers.Strategy {
	switch family {
	case classifier.CaesarShift:
		s := []solvers.Strategy{{Kind: solvers.Atbash}}
		if hints.hasNonLetterASCII {
			s = append(s, solvers.Strategy{Kind: solvers.Rot47})
		}
		return append(s, solvers.Strategy{Kind: solvers.ShiftBrute})

	case classifier.VigenereLike:
		return []solvers.Strategy{
			{Kind: solvers.Vigenere, SuggestedKeyLength: hints.suggestedKeyLength},
			{Kind: solvers.Autokey},
			{Kind: solvers.Polyalphabetic},
			{Kind: solvers.SubstitutionHillClimb},
			{Kind: solvers.ShiftBrute},
		}

	case classifier.MonoalphabeticSubstitution:
		s := []solvers.Strategy{{Kind: solvers.Atbash}}
		if hints.hasDigitPairs {
			s = append(s, solvers.Strategy{Kind: solvers.Polybius})
		}
		if hints.hasBinaryRuns {
			s = append(s, solvers.Strategy{Kind: solvers.Baconian})
		}
		s = append(s, solvers.Strategy{Kind: solvers.ShiftBrute})
		if hints.hasNonLetterASCII {
			s = append(s, solvers.Strategy{Kind: solvers.Rot47})
		}
		return append(s, solvers.Strategy{Kind: solvers.SubstitutionHillClimb}, solvers.Strategy{Kind: solvers.SubstitutionAnnealing})

	case classifier.Transposition:
		// Transposition cryptanalysis is a documented gap (spec §9):
		// the substitution hill-climber is the only fallback.
		return []solvers.Strategy{{Kind: solvers.SubstitutionHillClimb}}

	default: // RandomOrUnknown, Unknown
		s := []solvers.Strategy{{Kind: solvers.Atbash}}
		if hints.hasDigitPairs {
			s = append(s, solvers.Strategy{Kind: solvers.Polybius})
		}
		if hints.hasBinaryRuns {
			s = append(s, solvers.Strategy{Kind: solvers.Baconian})
		}
		return append(s,
			solvers.Strategy{Kind: solvers.ShiftBrute},
			solvers.Strategy{Kind: solvers.Autokey},
			solvers.Strategy{Kind: solvers.SubstitutionHillClimb},
		)
	}
}

// portfolioHints carries the classifier-stat-derived conditionals
// strategyPortfolio needs to gate ROT47/Polybius/Baconian entries, per
// spec §4.11 Step C's parenthetical conditions.
type portfolioHints struct {
	hasNonLetterASCII  bool
	hasDigitPairs      bool
	hasBinaryRuns      bool
	suggestedKeyLength int
}
