package domain_test

import (
	"errors"
	"fmt"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"docextract/internal/domain"
)

func TestBackendError_Unreachable(t *testing.T) {
	underlying := fmt.Errorf("connection refused")
	err := domain.NewUnreachableError("ollama", underlying)

	assert.Contains(t, err.Error(), "ollama unreachable")
	assert.ErrorIs(t, err, domain.ErrBackendUnreachable)
	assert.ErrorIs(t, err, underlying)
	assert.NotErrorIs(t, err, domain.ErrBackendHTTP)
	assert.True(t, err.Transient())
}

func TestBackendError_HTTPStatus(t *testing.T) {
	err := domain.NewHTTPError("ollama", 500, "model crashed", 0)

	assert.Contains(t, err.Error(), "status 500")
	assert.Contains(t, err.Error(), "model crashed")
	assert.ErrorIs(t, err, domain.ErrBackendHTTP)
	assert.NotErrorIs(t, err, domain.ErrBackendUnreachable)
	assert.True(t, err.Transient())
	assert.Zero(t, err.RetryAfter)
}

func TestBackendError_ErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("extract tables: %w", domain.NewHTTPError("ollama", 429, "slow down", 30))

	var target *domain.BackendError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, 429, target.StatusCode)
	assert.Equal(t, 30*time.Second, target.RetryAfter)
	assert.True(t, target.Transient())
}

func TestBackendError_ClientStatusNotTransient(t *testing.T) {
	assert.False(t, domain.NewHTTPError("ollama", 400, "bad request", 0).Transient())
	assert.False(t, domain.NewHTTPError("ollama", 404, "model not found", 0).Transient())
}

func TestDecodeError(t *testing.T) {
	cause := fmt.Errorf("unexpected end of JSON input")
	err := &domain.DecodeError{Kind: domain.KindTables, Raw: "{", Err: cause}

	assert.ErrorIs(t, err, domain.ErrMalformedOutput)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "tables")

	bare := &domain.DecodeError{Kind: domain.KindEntities}
	assert.ErrorIs(t, bare, domain.ErrMalformedOutput)
	assert.Contains(t, bare.Error(), "entities")
}

func TestParseRetryAfterHeader(t *testing.T) {
	assert.Equal(t, 0, domain.ParseRetryAfterHeader(""))
	assert.Equal(t, 30, domain.ParseRetryAfterHeader("30"))
	assert.Equal(t, 0, domain.ParseRetryAfterHeader("invalid"))
	assert.Equal(t, 120, domain.ParseRetryAfterHeader("120"))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{"short", "abc", 5, "abc"},
		{"exact", "abcde", 5, "abcde"},
		{"ascii", "abcdef", 3, "abc..."},
		{"inside two-byte rune", "añb", 2, "a..."},
		{"inside three-byte rune", "€€", 4, "€..."},
		{"first rune split", "日本", 1, "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.Truncate(tt.in, tt.maxLen)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
