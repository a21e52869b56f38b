package service

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"docextract/internal/domain"
	"docextract/internal/port"
)

// DocumentInput is one uploaded document handed to the pipeline.
type DocumentInput struct {
	Filename string
	Body     io.Reader
	// Page is the 1-indexed PDF page; zero selects the first page.
	Page int
}

// PipelineConfig holds request-level pipeline settings.
type PipelineConfig struct {
	MaxUploadBytes   int64
	BatchConcurrency int
}

// PipelineService runs classify -> preprocess -> OCR -> extract over uploads.
type PipelineService interface {
	// Extract runs every composite kind; failed kinds hold empty defaults.
	Extract(ctx context.Context, in DocumentInput) (*domain.CompositeExtraction, error)
	// ExtractKind runs one kind and reports its failure.
	ExtractKind(ctx context.Context, in DocumentInput, kind domain.ExtractionKind) (domain.ExtractionResult, error)
	// BatchExtract never fails as a whole; each slot carries its own error.
	BatchExtract(ctx context.Context, inputs []DocumentInput) []domain.BatchItem
	OCR(ctx context.Context, in DocumentInput) (*domain.TranscribedDocument, error)
	LLMExtract(ctx context.Context, ocrText string) domain.CompositeExtraction
	FullPipeline(ctx context.Context, in DocumentInput) (*domain.PipelineResult, error)
}

type pipelineService struct {
	preparer    port.Preparer
	transcriber port.Transcriber
	extractor   port.Extractor
	cfg         PipelineConfig
}

// NewPipelineService creates a new PipelineService implementation.
func NewPipelineService(
	preparer port.Preparer,
	transcriber port.Transcriber,
	extractor port.Extractor,
	cfg PipelineConfig,
) PipelineService {
	if cfg.BatchConcurrency < 1 {
		cfg.BatchConcurrency = 1
	}
	return &pipelineService{
		preparer:    preparer,
		transcriber: transcriber,
		extractor:   extractor,
		cfg:         cfg,
	}
}

// transcribe stages the upload, prepares the requested page and runs OCR.
// The temp file is released on every path before it returns. The
// fingerprint is returned whenever staging succeeded.
func (s *pipelineService) transcribe(ctx context.Context, in DocumentInput) (*domain.TranscribedDocument, string, error) {
	staged, err := stageFile(in.Filename, in.Body, s.cfg.MaxUploadBytes)
	if err != nil {
		log.Printf("pipelineService.transcribe: staging %q failed: %v", in.Filename, err)
		return nil, "", err
	}
	defer staged.Release()

	page := in.Page
	if page < 1 {
		page = 1
	}

	start := time.Now()
	input, err := s.preparer.Prepare(ctx, staged.Path, staged.Kind, page)
	if err != nil {
		log.Printf("pipelineService.transcribe: preparing %q page %d failed: %v", in.Filename, page, err)
		return nil, staged.Fingerprint, err
	}

	res, err := s.transcriber.Transcribe(ctx, input)
	if err != nil {
		log.Printf("pipelineService.transcribe: OCR of %q page %d failed: %v", in.Filename, page, err)
		return nil, staged.Fingerprint, err
	}

	log.Printf("pipelineService.transcribe: %q (%s, page %d) transcribed to %d chars in %s",
		in.Filename, staged.Kind, page, len(res.Text), time.Since(start).Round(time.Millisecond))

	return &domain.TranscribedDocument{
		OCRResult:   *res,
		Filename:    in.Filename,
		Fingerprint: staged.Fingerprint,
	}, staged.Fingerprint, nil
}

func (s *pipelineService) Extract(ctx context.Context, in DocumentInput) (*domain.CompositeExtraction, error) {
	doc, _, err := s.transcribe(ctx, in)
	if err != nil {
		return nil, err
	}
	composite := s.extractor.ExtractAll(ctx, doc.Text)
	return &composite, nil
}

func (s *pipelineService) ExtractKind(ctx context.Context, in DocumentInput, kind domain.ExtractionKind) (domain.ExtractionResult, error) {
	if domain.EmptyResult(kind) == nil {
		return nil, domain.ErrInvalidExtractionKind
	}
	doc, _, err := s.transcribe(ctx, in)
	if err != nil {
		return nil, err
	}
	return extractOrDefault(ctx, s.extractor, doc.Text, kind)
}

// extractOrDefault runs one kind and reports backend failures. Malformed model
// output is not a request failure; the kind's empty default is returned.
func extractOrDefault(ctx context.Context, extractor port.Extractor, text string, kind domain.ExtractionKind) (domain.ExtractionResult, error) {
	result, err := extractor.ExtractOne(ctx, text, kind)
	if err != nil && errors.Is(err, domain.ErrMalformedOutput) {
		log.Printf("service.extractOrDefault: %s output degraded to empty default: %v", kind, err)
		if result == nil {
			result = domain.EmptyResult(kind)
		}
		return result, nil
	}
	return result, err
}

func (s *pipelineService) BatchExtract(ctx context.Context, inputs []DocumentInput) []domain.BatchItem {
	items := make([]domain.BatchItem, len(inputs))

	var g errgroup.Group
	g.SetLimit(s.cfg.BatchConcurrency)
	for i := range inputs {
		in := inputs[i]
		g.Go(func() error {
			items[i] = s.batchItem(ctx, in)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i := range items {
		if items[i].Error != "" {
			failed++
		}
	}
	log.Printf("pipelineService.BatchExtract: processed %d documents, %d failed", len(items), failed)

	return items
}

func (s *pipelineService) batchItem(ctx context.Context, in DocumentInput) domain.BatchItem {
	item := domain.BatchItem{Filename: in.Filename}

	doc, fingerprint, err := s.transcribe(ctx, in)
	item.Fingerprint = fingerprint
	if err != nil {
		item.CompositeExtraction = domain.EmptyComposite()
		item.Error = err.Error()
		return item
	}

	item.CompositeExtraction = s.extractor.ExtractAll(ctx, doc.Text)
	return item
}

func (s *pipelineService) OCR(ctx context.Context, in DocumentInput) (*domain.TranscribedDocument, error) {
	doc, _, err := s.transcribe(ctx, in)
	return doc, err
}

func (s *pipelineService) LLMExtract(ctx context.Context, ocrText string) domain.CompositeExtraction {
	return s.extractor.ExtractAll(ctx, ocrText)
}

func (s *pipelineService) FullPipeline(ctx context.Context, in DocumentInput) (*domain.PipelineResult, error) {
	doc, _, err := s.transcribe(ctx, in)
	if err != nil {
		return nil, err
	}
	return &domain.PipelineResult{
		OCR:        doc.OCRResult,
		Extraction: s.extractor.ExtractAll(ctx, doc.Text),
	}, nil
}
