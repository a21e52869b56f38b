// Package extraction turns OCR text into structured results by prompting an
// LLM backend once per extraction kind and decoding its free-text answers.
package extraction

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"docextract/internal/domain"
	"docextract/internal/port"
)

// Config tunes backend calls made by the Extractor.
type Config struct {
	Temperature float64
	// Concurrency bounds how many kinds are in flight at once in ExtractAll.
	// Values below 1 mean sequential.
	Concurrency int
	// CallTimeout bounds each kind's backend call including retries. Zero disables it.
	CallTimeout time.Duration
}

// Extractor implements port.Extractor.
type Extractor struct {
	backend   port.CompletionBackend
	templates *Templates
	cfg       Config
}

// NewExtractor creates an Extractor over a shared backend.
func NewExtractor(backend port.CompletionBackend, templates *Templates, cfg Config) *Extractor {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &Extractor{backend: backend, templates: templates, cfg: cfg}
}

// ExtractOne runs a single extraction kind. On failure the returned result
// is still the kind's empty default, and the error wraps either the backend
// failure or a *domain.DecodeError.
func (e *Extractor) ExtractOne(ctx context.Context, ocrText string, kind domain.ExtractionKind) (domain.ExtractionResult, error) {
	fallback := domain.EmptyResult(kind)
	if fallback == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidExtractionKind, kind)
	}

	prompt, err := e.templates.Render(kind, ocrText)
	if err != nil {
		return fallback, err
	}

	if e.cfg.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.CallTimeout)
		defer cancel()
	}

	raw, err := e.backend.Complete(ctx, port.CompletionRequest{
		Prompt:      prompt,
		Temperature: e.cfg.Temperature,
		NumPredict:  domain.NumPredict[kind],
	})
	if err != nil {
		return fallback, fmt.Errorf("extracting %s: %w", kind, err)
	}

	return Decode(kind, raw)
}

// ExtractAll fans out every composite kind against the same OCR text. A
// failing kind is logged and left at its empty default; it never aborts the
// others and never fails the call.
func (e *Extractor) ExtractAll(ctx context.Context, ocrText string) domain.CompositeExtraction {
	results := make([]domain.ExtractionResult, len(domain.CompositeKinds))

	var g errgroup.Group
	g.SetLimit(e.cfg.Concurrency)
	for i, kind := range domain.CompositeKinds {
		g.Go(func() error {
			res, err := e.ExtractOne(ctx, ocrText, kind)
			if err != nil {
				logDegraded(kind, err)
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	out := domain.EmptyComposite()
	for _, res := range results {
		if res != nil {
			out.Set(res)
		}
	}
	return out
}

func logDegraded(kind domain.ExtractionKind, err error) {
	var decErr *domain.DecodeError
	if errors.As(err, &decErr) {
		log.Printf("extraction.Extractor: %s output malformed, using empty default: %v (raw: %q)",
			kind, decErr.Err, domain.Truncate(decErr.Raw, 200))
		return
	}
	log.Printf("extraction.Extractor: %s failed, using empty default: %v", kind, err)
}
