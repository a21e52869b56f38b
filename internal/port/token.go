package port

import (
	"time"

	"github.com/google/uuid"
)

// TokenIssuer mints and verifies opaque upload tokens.
type TokenIssuer interface {
	Issue(uploadID uuid.UUID, expiresAt time.Time) (string, error)
	// Parse returns domain.ErrUploadExpired or domain.ErrInvalidUploadToken on failure.
	Parse(token string) (uuid.UUID, error)
}
