// Package translator implements the terminology-controlled translation
// pipeline: candidate extraction, span matching, placeholder injection,
// the external translation call, and tolerant placeholder restoration.
package translator

import (
	"context"
	"sync"
	"time"

	"ghana-translator/internal/extractor"
	"ghana-translator/internal/langcodes"
	"ghana-translator/internal/logger"
	"ghana-translator/internal/terminology"
	"ghana-translator/internal/types"
)

const (
	// DefaultTimeout bounds a single external translation call
	DefaultTimeout = 30 * time.Second
	// DefaultConcurrency is the batch worker limit
	DefaultConcurrency = 3
)

// Client is the external translation service consumed by the engine.
// Implementations return SERVICE_ERROR AppErrors on failure and never
// retry internally.
type Client interface {
	Translate(ctx context.Context, text, srcLang, destLang string) (string, error)
	Name() string
}

// Result is the outcome of one translation. It is immutable once
// returned.
type Result struct {
	Text              string  `json:"text"`
	Original          string  `json:"original"`
	Preprocessed      string  `json:"preprocessed"`
	ServiceOutput     string  `json:"service_output"`
	ReplacementsCount int     `json:"replacements_count"`
	ReplacedTerms     []int   `json:"replaced_terms"`
	SrcLang           string  `json:"src_lang"`
	DestLang          string  `json:"dest_lang"`
	ElapsedSeconds    float64 `json:"elapsed_seconds"`
}

// BatchResult pairs one batch item's result or error with its input
// position.
type BatchResult struct {
	Index  int
	Result *Result
	Err    error
}

// EngineConfig configures a translation engine.
type EngineConfig struct {
	// Client is the external translation service. Required.
	Client Client
	// Table is the terminology table. Nil or empty enables
	// pass-through mode.
	Table *terminology.Table
	// Extractor proposes candidate spans. Defaults to the extractor
	// for the source language.
	Extractor extractor.Extractor
	// SrcLang defaults to "en"; DestLang is required. Both accept
	// 2-letter or ISO 639-3 codes.
	SrcLang  string
	DestLang string
	// Timeout bounds each external call; Concurrency bounds batch
	// workers.
	Timeout     time.Duration
	Concurrency int
	// PreserveTermCase carries the matched surface's casing onto the
	// replacement. CapitalizeSentences uppercases sentence starts in
	// the final text. Both default off, leaving restoration output
	// byte-exact.
	PreserveTermCase    bool
	CapitalizeSentences bool
}

// Engine sequences the translation pipeline. The terminology table is
// shared read-only across invocations; every invocation owns its own
// matches and placeholder numbering, so an Engine is safe for
// concurrent use.
type Engine struct {
	client              Client
	table               *terminology.Table
	extractor           extractor.Extractor
	srcLang             string
	destLang            string
	timeout             time.Duration
	concurrency         int
	preserveTermCase    bool
	capitalizeSentences bool
}

// NewEngine validates the configuration and creates an engine.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.Client == nil {
		return nil, types.NewAppError(types.ErrInvalidInput, "translation client is required", nil)
	}
	if cfg.DestLang == "" {
		return nil, types.NewAppError(types.ErrInvalidInput, "target language is required", nil)
	}

	src := cfg.SrcLang
	if src == "" {
		src = "en"
	}
	srcLang, err := langcodes.Normalize(src)
	if err != nil {
		return nil, err
	}
	destLang, err := langcodes.Normalize(cfg.DestLang)
	if err != nil {
		return nil, err
	}

	ex := cfg.Extractor
	if ex == nil {
		ex = extractor.ForLanguage(srcLang, cfg.Table.MaxTokens())
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	return &Engine{
		client:              cfg.Client,
		table:               cfg.Table,
		extractor:           ex,
		srcLang:             srcLang,
		destLang:            destLang,
		timeout:             timeout,
		concurrency:         concurrency,
		preserveTermCase:    cfg.PreserveTermCase,
		capitalizeSentences: cfg.CapitalizeSentences,
	}, nil
}

// SrcLang returns the normalized source language code.
func (e *Engine) SrcLang() string { return e.srcLang }

// DestLang returns the normalized target language code.
func (e *Engine) DestLang() string { return e.destLang }

// Translate runs the full pipeline for one text.
//
// With no terminology the raw text goes straight to the client and its
// output is returned untouched. Otherwise matched terms are replaced
// by placeholder tokens before the external call and the caller's
// replacements are restored into the service output afterwards.
// Placeholders the service dropped are reported through the result
// counts, never as an error.
func (e *Engine) Translate(ctx context.Context, text string) (*Result, error) {
	start := time.Now()

	if e.table.Len() == 0 {
		output, err := e.callService(ctx, text)
		if err != nil {
			return nil, err
		}
		return &Result{
			Text:           output,
			Original:       text,
			Preprocessed:   text,
			ServiceOutput:  output,
			ReplacedTerms:  []int{},
			SrcLang:        e.srcLang,
			DestLang:       e.destLang,
			ElapsedSeconds: time.Since(start).Seconds(),
		}, nil
	}

	candidates, err := e.extractor.Extract(text)
	if err != nil {
		return nil, types.NewAppError(types.ErrInternal, "candidate extraction failed", err)
	}

	matches := resolveMatches(text, candidates, e.table)
	if e.preserveTermCase {
		for i := range matches {
			matches[i].Replacement = applySurfaceCase(matches[i].Span.Surface, matches[i].Replacement)
		}
	}

	preprocessed := injectPlaceholders(text, matches)
	if len(matches) > 0 {
		logger.Debug("terms protected",
			logger.Int("matches", len(matches)),
			logger.String("preprocessed", preprocessed))
	}

	output, err := e.callService(ctx, preprocessed)
	if err != nil {
		return nil, err
	}

	final, restored := restorePlaceholders(output, matches)
	if len(restored) < len(matches) {
		logger.Warn("service dropped placeholder tokens",
			logger.Int("matched", len(matches)),
			logger.Int("restored", len(restored)))
	}

	if e.capitalizeSentences {
		final = capitalizeSentences(final)
	}

	return &Result{
		Text:              final,
		Original:          text,
		Preprocessed:      preprocessed,
		ServiceOutput:     output,
		ReplacementsCount: len(restored),
		ReplacedTerms:     restored,
		SrcLang:           e.srcLang,
		DestLang:          e.destLang,
		ElapsedSeconds:    time.Since(start).Seconds(),
	}, nil
}

// callService invokes the external client under the configured
// timeout. Cancellation of ctx cancels the in-flight call.
func (e *Engine) callService(ctx context.Context, text string) (string, error) {
	callCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	return e.client.Translate(callCtx, text, e.srcLang, e.destLang)
}

// TranslateBatch runs the pipeline for each text independently and
// returns results in input order. One item's failure is captured in
// its BatchResult and never aborts the others.
func (e *Engine) TranslateBatch(ctx context.Context, texts []string) []BatchResult {
	results := make([]BatchResult, len(texts))
	sem := make(chan struct{}, e.concurrency)
	var wg sync.WaitGroup

	for i, text := range texts {
		wg.Add(1)
		go func(idx int, t string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			res, err := e.Translate(ctx, t)
			results[idx] = BatchResult{Index: idx, Result: res, Err: err}
		}(i, text)
	}
	wg.Wait()

	return results
}
