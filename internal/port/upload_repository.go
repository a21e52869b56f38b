package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"docextract/internal/domain"
)

// UploadRepository persists first-phase OCR output keyed by upload id.
type UploadRepository interface {
	Save(ctx context.Context, rec *domain.UploadRecord) error
	// Get returns domain.ErrUploadNotFound for unknown ids.
	Get(ctx context.Context, id uuid.UUID) (*domain.UploadRecord, error)
	// DeleteExpired removes records whose expiry is at or before now.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
	Ping(ctx context.Context) error
}
