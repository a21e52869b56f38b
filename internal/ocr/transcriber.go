// Package ocr invokes the vision-language model that transcribes a page.
package ocr

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"docextract/internal/config"
	"docextract/internal/domain"
	"docextract/internal/port"
	"docextract/internal/retry"
)

// Transcriber implements port.Transcriber. It is built once per process
// around a long-lived model client and gates generations so that at most
// cfg.Concurrency are in flight.
type Transcriber struct {
	model       port.VisionModel
	gate        chan struct{}
	temperature float64
	maxTokens   int
	timeout     time.Duration
	policy      retry.Policy
}

// NewTranscriber creates a Transcriber over model.
func NewTranscriber(model port.VisionModel, cfg *config.OCRConfig) *Transcriber {
	n := cfg.Concurrency
	if n < 1 {
		n = 1
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 300
	}
	return &Transcriber{
		model:       model,
		gate:        make(chan struct{}, n),
		temperature: cfg.Temperature,
		maxTokens:   maxTokens,
		timeout:     time.Duration(cfg.TimeoutSecs) * time.Second,
		policy:      retry.DefaultPolicy(cfg.MaxRetries),
	}
}

// WithRetryPolicy overrides the retry policy.
func (t *Transcriber) WithRetryPolicy(p retry.Policy) *Transcriber {
	t.policy = p
	return t
}

// Transcribe runs one generation for the prepared page. Every failure wraps
// domain.ErrModelInvocation.
func (t *Transcriber) Transcribe(ctx context.Context, input *domain.PreparedInput) (*domain.OCRResult, error) {
	select {
	case t.gate <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: waiting for model: %w", domain.ErrModelInvocation, ctx.Err())
	}
	defer func() { <-t.gate }()

	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	req := port.VisionRequest{
		Prompt:      BuildPrompt(input.AnchorText),
		ImageBase64: input.ImageBase64,
		Temperature: t.temperature,
		MaxTokens:   t.maxTokens,
	}

	start := time.Now()
	var raw string
	err := retry.Do(ctx, "ocr", t.policy, func(ctx context.Context) error {
		out, err := t.model.Generate(ctx, req)
		if err != nil {
			return err
		}
		raw = out
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrModelInvocation, err)
	}
	log.Printf("ocr.Transcriber: generated %d chars in %s", len(raw), time.Since(start).Round(time.Millisecond))

	res := ParseOutput(raw)
	return &res, nil
}

type pageEnvelope struct {
	domain.PageResponse
	NaturalText *string `json:"natural_text"`
}

// ParseOutput interprets a model completion. When it is an olmOCR page
// response with a natural_text field, that text becomes the transcription;
// otherwise the trimmed completion is used as-is.
func ParseOutput(raw string) domain.OCRResult {
	res := domain.OCRResult{Raw: raw, Text: strings.TrimSpace(raw)}

	var env pageEnvelope
	if err := json.Unmarshal([]byte(res.Text), &env); err != nil || env.NaturalText == nil {
		return res
	}
	page := env.PageResponse
	page.NaturalText = *env.NaturalText
	res.Page = &page
	res.Text = page.NaturalText
	return res
}
