// Package engine is the library surface cmd/cryptanalyst and any other
// host consumes: one constructor that loads every shared resource once,
// plus the four entry points spec §6 specifies.
package engine

import (
	"context"

	"github.com/tjanssen/cryptanalyst/internal/classifier"
	"github.com/tjanssen/cryptanalyst/internal/dictionary"
	"github.com/tjanssen/cryptanalyst/internal/errkind"
	"github.com/tjanssen/cryptanalyst/internal/langdetect"
	"github.com/tjanssen/cryptanalyst/internal/langmodel"
	"github.com/tjanssen/cryptanalyst/internal/orchestrator"
)

// Options mirrors spec §6's engine Options record.
type Options struct {
	Language      string
	TryMultiple   bool
	MaxTimeMS     int64
	UseDictionary bool
}

// DefaultOptions matches spec §6's defaults: auto language, try
// multiple, 60s budget, dictionary on.
func DefaultOptions() Options {
	d := orchestrator.DefaultOptions()
	return Options{Language: d.Language, TryMultiple: d.TryMultiple, MaxTimeMS: d.MaxTimeMS, UseDictionary: d.UseDictionary}
}

func (o Options) toOrchestrator() orchestrator.Options {
	return orchestrator.Options{
		Language:      o.Language,
		TryMultiple:   o.TryMultiple,
		MaxTimeMS:     o.MaxTimeMS,
		UseDictionary: o.UseDictionary,
	}
}

// FinalResult re-exports orchestrator.FinalResult so callers never need
// to import internal/orchestrator directly.
type FinalResult = orchestrator.FinalResult

// StatusEvent re-exports orchestrator.StatusEvent.
type StatusEvent = orchestrator.StatusEvent

// Engine wraps the process-lifetime resources (language models,
// dictionaries) every auto-decrypt, classify, or detect-language call
// shares, loaded once at construction per spec §3's lifecycle rule.
type Engine struct {
	resources *orchestrator.Resources
}

// Option configures Engine construction.
type Option func(*engineConfig)

type engineConfig struct {
	useDictionary bool
}

// WithDictionary toggles whether dictionary validation runs at all;
// defaults to true. Individual calls can still override this via
// Options.UseDictionary.
func WithDictionary(enabled bool) Option {
	return func(c *engineConfig) { c.useDictionary = enabled }
}

// New loads every embedded language model and constructs a lazy
// dictionary store, returning an Engine ready for concurrent read-only
// use. Per spec §7's ResourceMissing policy, a missing *optional*
// resource never fails New; only malformed embedded data does, which
// indicates a packaging bug.
func New(opts ...Option) (*Engine, error) {
	cfg := engineConfig{useDictionary: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	models, err := langmodel.Load()
	if err != nil {
		return nil, errkind.Wrap("engine.New", errkind.ResourceMissing, err)
	}

	return &Engine{
		resources: &orchestrator.Resources{
			Models:        models,
			Dictionaries:  dictionary.NewStore(),
			UseDictionary: cfg.useDictionary,
		},
	}, nil
}

// AutoDecrypt runs the full classify → orchestrate → solve pipeline and
// returns the single best FinalResult, per spec §6.
func (e *Engine) AutoDecrypt(ctx context.Context, ciphertext string, opts Options) FinalResult {
	res := *e.resources
	res.UseDictionary = res.UseDictionary && opts.UseDictionary
	return orchestrator.Run(ctx, ciphertext, opts.toOrchestrator(), &res)
}

// AutoDecryptStream is the streaming counterpart of AutoDecrypt: a
// pull-based channel of StatusEvents terminated by `complete` or
// `failed`, per spec §4.11's progress surface.
func (e *Engine) AutoDecryptStream(ctx context.Context, ciphertext string, opts Options) <-chan StatusEvent {
	res := *e.resources
	res.UseDictionary = res.UseDictionary && opts.UseDictionary
	return orchestrator.Stream(ctx, ciphertext, opts.toOrchestrator(), &res)
}

// Classify runs only the classifier, per spec §6's
// `classify(ciphertext, language_hint) → Classification`. languageHint
// selects which language's dictionary backs the classifier's
// dictionary-coverage vote; nil uses no dictionary vote at all.
func (e *Engine) Classify(ciphertext string, languageHint *langmodel.Language) classifier.Result {
	var dict *dictionary.Dictionary
	if languageHint != nil && e.resources.UseDictionary {
		dict, _ = e.resources.Dictionaries.Get(*languageHint)
	}
	return classifier.Classify(ciphertext, dict)
}

// DetectLanguage runs LangDetect alone, per spec §6's
// `detect_language(ciphertext) → Vec<LangCandidate>`.
func (e *Engine) DetectLanguage(ciphertext string) []langdetect.Candidate {
	return langdetect.Detect(e.resources.Models, ciphertext)
}
