// Package solvers implements the concrete cipher-breaking strategies
// the Orchestrator drives: exhaustive shift search, Friedman/Kasiski
// Vigenère recovery, and hill-climbing/simulated-annealing substitution
// search, plus the smaller keyed and pattern ciphers from the
// Orchestrator's strategy table.
//
// Strategies are represented as tagged variants (spec §9's "dynamic
// strategy list built via closures" redesign note) rather than an
// interface hierarchy: a Kind plus whatever parameters that kind needs,
// dispatched through Registry by tag.
package solvers

import (
	"context"

	"github.com/tjanssen/cryptanalyst/internal/dictionary"
	"github.com/tjanssen/cryptanalyst/internal/langmodel"
)

// Kind tags one concrete strategy variant.
type Kind string

const (
	ShiftBrute            Kind = "shift-brute"
	Rot47                 Kind = "rot47"
	Vigenere              Kind = "vigenere"
	Autokey               Kind = "autokey"
	Polyalphabetic        Kind = "polyalphabetic"
	SubstitutionHillClimb Kind = "substitution-hill-climb"
	SubstitutionAnnealing Kind = "substitution-annealing"
	Atbash                Kind = "atbash"
	Polybius              Kind = "polybius"
	Baconian              Kind = "baconian"
)

// Method tags standardized per spec §9's open-question resolution: the
// A-Z Caesar domain is always "caesar-shift", the printable-ASCII
// domain is always "rot47". No "rotN" tags are ever produced.
const (
	MethodCaesarShift = "caesar-shift"
	MethodRot47       = "rot47"
	MethodVigenere    = "vigenere"
	MethodAutokey     = "autokey"
	MethodPorta       = "porta"
	MethodBeaufort    = "beaufort"
	MethodGronsfeld   = "gronsfeld"
	MethodQuagmire    = "quagmire"
	MethodAtbash      = "atbash"
	MethodPolybius    = "polybius"
	MethodBaconian    = "baconian"
	MethodHillClimb   = "substitution-hill-climb"
	MethodAnnealing   = "substitution-annealing"
)

// Strategy is one entry in the Orchestrator's strategy portfolio for a
// given cipher family: a Kind plus any hint the classifier already
// produced (e.g. a Kasiski-suggested Vigenère key length).
type Strategy struct {
	Kind               Kind
	SuggestedKeyLength int
}

// Progress is an iteration snapshot emitted by the iterative solvers
// (hill climbing, annealing) at bounded frequency, feeding the
// Orchestrator's status-event stream (spec §4.10, §4.11).
type Progress struct {
	Iteration        int
	Total            int
	CurrentPlaintext string
	CurrentScore     float64
}

// Result is a strategy's output: a candidate plaintext, the key/method
// that produced it, and the scores the Orchestrator needs to rank it
// against every other attempted strategy, per spec §3's StrategyResult.
type Result struct {
	Plaintext         string
	MethodTag         string
	Key               string
	RawScore          float64
	Confidence        float64
	WordCoverage      float64
	HasWordCoverage   bool
	DictConfidence    float64
	HasDictConfidence bool
}

// Runner executes one strategy variant against ciphertext in the given
// language context. progress may be nil; when non-nil, iterative
// solvers call it at bounded frequency (spec: "≤ 1 event per ~2%
// progress"). ctx cancellation is checked between solver iteration
// windows, matching the Orchestrator's soft-timeout model (spec §5).
type Runner func(ctx context.Context, ciphertext string, model *langmodel.Model, dict *dictionary.Dictionary, progress func(Progress)) (Result, error)

// Registry dispatches a Strategy's Kind to its Runner. The Orchestrator
// never switches on Kind itself; it always goes through this table, so
// adding a new strategy variant never requires touching orchestrator
// code.
var Registry = map[Kind]Runner{
	ShiftBrute:            runCaesar,
	Rot47:                 runRot47Single,
	Vigenere:              runVigenere,
	Autokey:               runAutokey,
	Polyalphabetic:        runPolyalphabetic,
	SubstitutionHillClimb: runHillClimb,
	SubstitutionAnnealing: runAnnealing,
	Atbash:                runAtbash,
	Polybius:              runPolybius,
	Baconian:              runBaconian,
}
