package orchestrator

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tjanssen/cryptanalyst/internal/classifier"
	"github.com/tjanssen/cryptanalyst/internal/dictionary"
	"github.com/tjanssen/cryptanalyst/internal/langdetect"
	"github.com/tjanssen/cryptanalyst/internal/langmodel"
	"github.com/tjanssen/cryptanalyst/internal/solvers"
)

// eventBuffer is sized so a run's status events don't block the
// producer goroutine behind a slow consumer for the common case; a
// consumer that falls far behind still eventually applies backpressure,
// which is fine since Stream's producer always checks ctx between
// sends.
const eventBuffer = 64

// Stream implements spec §4.11's "Progress surface": the same Steps
// A-E as Run, except each stage emits a StatusEvent over the returned
// channel instead of only returning a final value. It is a pull-based
// iterator (spec §9's redesign note replacing the source's async
// generator protocol): the channel is closed after the terminal
// `complete`/`failed` event, and the one producer goroutine is the
// smallest form of the goroutine/channel lifecycle
// `rbscholtus-keycraft`'s `LoadAnalysers` uses for concurrent work,
// scaled to a single producer since the Orchestrator's ordering
// guarantees are otherwise easiest to prove sequentially (spec §5).
func Stream(ctx context.Context, ciphertext string, opts Options, res *Resources) <-chan StatusEvent {
	events := make(chan StatusEvent, eventBuffer)
	runID := uuid.NewString()

	go func() {
		defer close(events)
		runStreamed(ctx, runID, ciphertext, opts, res, events)
	}()

	return events
}

func emit(ctx context.Context, events chan<- StatusEvent, ev StatusEvent) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func runStreamed(ctx context.Context, runID, ciphertext string, opts Options, res *Resources, events chan<- StatusEvent) {
	deadline := time.Now().Add(time.Duration(opts.MaxTimeMS) * time.Millisecond)

	if !emit(ctx, events, StatusEvent{RunID: runID, Stage: StageLanguageDetection, Message: "detecting language", Progress: 0}) {
		return
	}
	candidates := languageCandidates(res, ciphertext, opts.Language)
	if len(candidates) == 0 {
		emit(ctx, events, StatusEvent{RunID: runID, Stage: StageFailed, Message: "no language candidates available", Progress: 100})
		return
	}
	if !emit(ctx, events, StatusEvent{RunID: runID, Stage: StageLanguageDetected, Message: candidateSummary(candidates), Progress: 10}) {
		return
	}

	if !emit(ctx, events, StatusEvent{RunID: runID, Stage: StageCipherDetection, Message: "classifying cipher family", Progress: 12}) {
		return
	}
	firstDict := dictFor(res, candidates[0].Language)
	classification := classifier.Classify(ciphertext, firstDict)
	top := topFamily(classification)
	if !emit(ctx, events, StatusEvent{RunID: runID, Stage: StageCipherDetected, Message: string(top), Progress: 15}) {
		return
	}

	if top == classifier.Unknown {
		emit(ctx, events, StatusEvent{RunID: runID, Stage: StageFailed, Message: unknownReason(classification), Progress: 100})
		return
	}

	hints := buildHints(ciphertext, classification)
	strategies := strategyPortfolio(top, hints)
	if !emit(ctx, events, StatusEvent{RunID: runID, Stage: StageStrategiesPicked, Message: strategySummary(strategies), Progress: 18}) {
		return
	}

	var best FinalResult
	bestCombined := -1.0
	found := false

	languageSlice := 80.0 / float64(len(candidates))

	for li, cand := range candidates {
		if time.Now().After(deadline) {
			break
		}
		langBase := 18.0 + float64(li)*languageSlice

		if !emit(ctx, events, StatusEvent{RunID: runID, Stage: StageTryingLanguage, Message: string(cand.Language), Progress: int(langBase)}) {
			return
		}

		model, ok := res.Models.Get(cand.Language)
		if !ok {
			continue
		}
		dict := dictFor(res, cand.Language)

		for si, strat := range strategies {
			if time.Now().After(deadline) {
				break
			}
			stratProgress := int(langBase + float64(si)/float64(len(strategies))*languageSlice)

			if !emit(ctx, events, StatusEvent{RunID: runID, Stage: StageTryingStrategy, Message: string(strat.Kind), Progress: stratProgress}) {
				return
			}

			result, ok := runStrategy(ctx, runID, strat.Kind, ciphertext, model, dict, events, stratProgress)
			if !ok {
				continue
			}

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
					ClassifierTop:  top,
					Classification: classification,
					Candidates:     candidates,
				}
			}

			if result.Confidence > innerConfidenceCutoff && result.WordCoverage > innerCoverageCutoff {
				emit(ctx, events, StatusEvent{RunID: runID, Stage: StageEarlyStop, Message: string(strat.Kind), Progress: 99})
				emit(ctx, events, StatusEvent{RunID: runID, Stage: StageComplete, Message: best.MethodTag, Progress: 100})
				return
			}
		}

		emit(ctx, events, StatusEvent{RunID: runID, Stage: StageLanguageComplete, Message: string(cand.Language), Progress: int(langBase + languageSlice)})

		if found && best.Confidence > outerConfidenceCutoff && best.WordCoverage > outerCoverageCutoff {
			break
		}
	}

	if !found {
		emit(ctx, events, StatusEvent{RunID: runID, Stage: StageFailed, Message: "no successful decryption", Progress: 100})
		return
	}
	emit(ctx, events, StatusEvent{RunID: runID, Stage: StageComplete, Message: best.MethodTag, Progress: 100})
}

// runStrategy wraps one Registry lookup+invocation so a strategy
// failure becomes a strategy-failed event instead of aborting the
// portfolio, per spec §4.11's failure semantics.
func runStrategy(ctx context.Context, runID string, kind solvers.Kind, ciphertext string, model *langmodel.Model, dict *dictionary.Dictionary, events chan<- StatusEvent, progress int) (solvers.Result, bool) {
	runner, ok := solvers.Registry[kind]
	if !ok {
		emit(ctx, events, StatusEvent{RunID: runID, Stage: StageStrategyFailed, Message: string(kind) + ": no runner registered", Progress: progress})
		return solvers.Result{}, false
	}

	onProgress := func(p solvers.Progress) {
		emit(ctx, events, StatusEvent{RunID: runID, Stage: StageSolving, Message: string(kind), Progress: progress})
	}

	result, err := runner(ctx, ciphertext, model, dict, onProgress)
	if err != nil || result.Plaintext == "" {
		msg := string(kind)
		if err != nil {
			msg = string(kind) + ": " + err.Error()
			slog.Warn("strategy failed", "strategy", kind, "err", err)
		}
		emit(ctx, events, StatusEvent{RunID: runID, Stage: StageStrategyFailed, Message: msg, Progress: progress})
		return solvers.Result{}, false
	}

	emit(ctx, events, StatusEvent{RunID: runID, Stage: StageStrategyComplete, Message: string(kind), Progress: progress})
	return result, true
}

func candidateSummary(candidates []langdetect.Candidate) string {
	if len(candidates) == 0 {
		return ""
	}
	return string(candidates[0].Language)
}

func strategySummary(strategies []solvers.Strategy) string {
	if len(strategies) == 0 {
		return ""
	}
	return string(strategies[0].Kind)
}
