package port

import (
	"context"

	"docextract/internal/domain"
)

// PageRenderer rasterizes one 1-indexed PDF page to PNG bytes whose longest
// edge is at most longestDim.
type PageRenderer interface {
	RenderPage(ctx context.Context, pdfPath string, page, longestDim int) ([]byte, error)
}

// AnchorTextBuilder summarizes a PDF page's layout into at most maxLen characters.
type AnchorTextBuilder interface {
	AnchorText(pdfPath string, page, maxLen int) (string, error)
}

// Preparer turns a classified document on disk into OCR model input.
type Preparer interface {
	Prepare(ctx context.Context, path string, kind domain.DocumentKind, page int) (*domain.PreparedInput, error)
}

// Transcriber runs the OCR model over prepared input.
type Transcriber interface {
	Transcribe(ctx context.Context, input *domain.PreparedInput) (*domain.OCRResult, error)
}

// Extractor runs structured extraction over OCR text.
type Extractor interface {
	// ExtractAll fans out every composite kind; failed kinds hold empty defaults.
	ExtractAll(ctx context.Context, ocrText string) domain.CompositeExtraction
	// ExtractOne runs a single kind and reports backend and decode failures.
	ExtractOne(ctx context.Context, ocrText string, kind domain.ExtractionKind) (domain.ExtractionResult, error)
}
