package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"docextract/internal/domain"
	"docextract/internal/port"
)

// UploadService implements the two-phase flow: an upload is transcribed
// once and addressed by an opaque token, then extracted from on demand.
type UploadService interface {
	Upload(ctx context.Context, in DocumentInput) (*domain.UploadReceipt, error)
	ExtractFromUpload(ctx context.Context, token string, kind domain.ExtractionKind) (domain.ExtractionResult, error)
}

type uploadService struct {
	pipeline  PipelineService
	extractor port.Extractor
	repo      port.UploadRepository
	tokens    port.TokenIssuer
	ttl       time.Duration
	now       func() time.Time
}

// NewUploadService creates a new UploadService implementation.
func NewUploadService(
	pipeline PipelineService,
	extractor port.Extractor,
	repo port.UploadRepository,
	tokens port.TokenIssuer,
	ttl time.Duration,
) UploadService {
	return &uploadService{
		pipeline:  pipeline,
		extractor: extractor,
		repo:      repo,
		tokens:    tokens,
		ttl:       ttl,
		now:       time.Now,
	}
}

func (s *uploadService) Upload(ctx context.Context, in DocumentInput) (*domain.UploadReceipt, error) {
	doc, err := s.pipeline.OCR(ctx, in)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	rec := &domain.UploadRecord{
		ID:          uuid.New(),
		Filename:    in.Filename,
		Fingerprint: doc.Fingerprint,
		OCR:         doc.OCRResult,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.ttl),
	}
	if err := s.repo.Save(ctx, rec); err != nil {
		log.Printf("uploadService.Upload: failed to save upload %s: %v", rec.ID, err)
		return nil, fmt.Errorf("saving upload: %w", err)
	}

	token, err := s.tokens.Issue(rec.ID, rec.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("issuing upload token: %w", err)
	}

	log.Printf("uploadService.Upload: stored upload %s for %q (expires %s)",
		rec.ID, rec.Filename, rec.ExpiresAt.Format(time.RFC3339))

	return &domain.UploadReceipt{
		Token:     token,
		UploadID:  rec.ID,
		Filename:  rec.Filename,
		ExpiresAt: rec.ExpiresAt,
	}, nil
}

func (s *uploadService) ExtractFromUpload(ctx context.Context, token string, kind domain.ExtractionKind) (domain.ExtractionResult, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrUploadNotFound
	}

	id, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Expired(s.now()) {
		return nil, domain.ErrUploadExpired
	}

	return s.extractor.ExtractOne(ctx, rec.OCR.Text, kind)
}
