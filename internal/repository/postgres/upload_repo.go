package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docextract/internal/domain"
	"docextract/internal/port"
)

type uploadRepo struct {
	db *sqlx.DB
}

// NewUploadRepo creates a new PostgreSQL-backed UploadRepository.
func NewUploadRepo(db *sqlx.DB) port.UploadRepository {
	return &uploadRepo{db: db}
}

// uploadRow carries the OCR result as its jsonb column.
type uploadRow struct {
	domain.UploadRecord
	OCRJSON []byte `db:"ocr"`
}

func (r *uploadRepo) Save(ctx context.Context, rec *domain.UploadRecord) error {
	ocr, err := json.Marshal(rec.OCR)
	if err != nil {
		return fmt.Errorf("uploadRepo.Save marshal: %w", err)
	}

	query := `INSERT INTO uploads (id, filename, fingerprint, ocr, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			filename = EXCLUDED.filename,
			fingerprint = EXCLUDED.fingerprint,
			ocr = EXCLUDED.ocr,
			expires_at = EXCLUDED.expires_at`

	_, err = r.db.ExecContext(ctx, query,
		rec.ID, rec.Filename, rec.Fingerprint, ocr, rec.CreatedAt, rec.ExpiresAt)
	if err != nil {
		return fmt.Errorf("uploadRepo.Save: %w", err)
	}
	return nil
}

func (r *uploadRepo) Get(ctx context.Context, id uuid.UUID) (*domain.UploadRecord, error) {
	var row uploadRow
	err := r.db.GetContext(ctx, &row,
		"SELECT id, filename, fingerprint, ocr, created_at, expires_at FROM uploads WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUploadNotFound
		}
		return nil, fmt.Errorf("uploadRepo.Get: %w", err)
	}

	rec := row.UploadRecord
	if err := json.Unmarshal(row.OCRJSON, &rec.OCR); err != nil {
		return nil, fmt.Errorf("uploadRepo.Get unmarshal: %w", err)
	}
	return &rec, nil
}

func (r *uploadRepo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM uploads WHERE expires_at <= $1", now)
	if err != nil {
		return 0, fmt.Errorf("uploadRepo.DeleteExpired: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("uploadRepo.DeleteExpired rows: %w", err)
	}
	return int(n), nil
}

func (r *uploadRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
