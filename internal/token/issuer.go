// Package token signs and verifies the opaque upload tokens of the two-phase flow.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"docextract/internal/config"
	"docextract/internal/domain"
	"docextract/internal/port"
)

const audience = "upload"

type issuer struct {
	secret []byte
	issuer string
}

// NewIssuer creates an HS256 TokenIssuer from cfg.
func NewIssuer(cfg *config.TokenConfig) port.TokenIssuer {
	return &issuer{secret: []byte(cfg.Secret), issuer: cfg.Issuer}
}

func (i *issuer) Issue(uploadID uuid.UUID, expiresAt time.Time) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   uploadID.String(),
		Issuer:    i.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		ID:        uuid.New().String(),
		Audience:  jwt.ClaimStrings{audience},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("signing upload token: %w", err)
	}
	return signed, nil
}

func (i *issuer) Parse(tokenString string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	},
		jwt.WithAudience(audience),
		jwt.WithIssuer(i.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, domain.ErrUploadExpired
		}
		return uuid.Nil, fmt.Errorf("%w: %w", domain.ErrInvalidUploadToken, err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad subject", domain.ErrInvalidUploadToken)
	}
	return id, nil
}
