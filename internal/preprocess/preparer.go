// Package preprocess turns a classified document into the bounded image and
// anchor text the OCR model consumes.
package preprocess

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"log"
	"os"

	"docextract/internal/config"
	"docextract/internal/domain"
	"docextract/internal/port"
)

// Preparer implements port.Preparer.
type Preparer struct {
	renderer   port.PageRenderer
	anchors    port.AnchorTextBuilder
	longestDim int
	anchorLen  int
	maxPixels  int64
}

// NewPreparer creates a Preparer that delegates PDF work to renderer and anchors.
func NewPreparer(renderer port.PageRenderer, anchors port.AnchorTextBuilder, cfg *config.OCRConfig) *Preparer {
	longestDim := cfg.TargetLongestDim
	if longestDim <= 0 {
		longestDim = 1024
	}
	anchorLen := cfg.TargetAnchorLen
	if anchorLen <= 0 {
		anchorLen = 4000
	}
	maxPixels := cfg.MaxImagePixels
	if maxPixels <= 0 {
		maxPixels = DefaultMaxImagePixels
	}
	return &Preparer{
		renderer:   renderer,
		anchors:    anchors,
		longestDim: longestDim,
		anchorLen:  anchorLen,
		maxPixels:  maxPixels,
	}
}

// Prepare builds the model input for page (1-indexed) of the document at path.
// Images are single-page and ignore page.
func (p *Preparer) Prepare(ctx context.Context, path string, kind domain.DocumentKind, page int) (*domain.PreparedInput, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrFileIO, err)
	}

	switch kind {
	case domain.DocumentKindImage:
		return p.prepareImage(path)
	case domain.DocumentKindPDF:
		return p.preparePDF(ctx, path, page)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, path)
	}
}

func (p *Preparer) prepareImage(path string) (*domain.PreparedInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFileIO, err)
	}
	defer f.Close()

	return PrepareImage(f, p.longestDim, p.maxPixels)
}

func (p *Preparer) preparePDF(ctx context.Context, path string, page int) (*domain.PreparedInput, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page %d", domain.ErrPageOutOfRange, page)
	}

	anchor, err := p.anchors.AnchorText(path, page, p.anchorLen)
	if err != nil {
		if errors.Is(err, domain.ErrPageOutOfRange) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		// the rendered image alone is still usable input
		log.Printf("preprocess.Preparer: anchor text unavailable for %s page %d: %v", path, page, err)
		anchor = ""
	}

	data, err := p.renderer.RenderPage(ctx, path, page, p.longestDim)
	if err != nil {
		return nil, err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding rendered page %d: %w", page, err)
	}

	return &domain.PreparedInput{
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		AnchorText:  anchor,
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, nil
}
