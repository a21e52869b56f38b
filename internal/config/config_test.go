package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docextract/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Minute, cfg.Server.WriteTimeout)
	assert.Equal(t, int64(50<<20), cfg.Server.MaxUploadBytes())

	assert.Equal(t, "allenai/olmOCR-7B-0225-preview", cfg.OCR.Model)
	assert.InDelta(t, 0.8, cfg.OCR.Temperature, 1e-9)
	assert.Equal(t, 300, cfg.OCR.MaxTokens)
	assert.Equal(t, 1024, cfg.OCR.TargetLongestDim)
	assert.Equal(t, 4000, cfg.OCR.TargetAnchorLen)
	assert.Equal(t, 1, cfg.OCR.Concurrency)
	assert.Equal(t, int64(89478485), cfg.OCR.MaxImagePixels)

	assert.Equal(t, "http://localhost:11434", cfg.Extractor.BaseURL)
	assert.Equal(t, "qwen2.5vl:7b", cfg.Extractor.Model)
	assert.InDelta(t, 0.1, cfg.Extractor.Temperature, 1e-9)
	assert.Equal(t, 1, cfg.Extractor.Concurrency)

	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, time.Hour, cfg.Store.TTL)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DOCEXTRACT_EXTRACTOR_MODEL", "llama3.1:8b")
	t.Setenv("DOCEXTRACT_EXTRACTOR_CONCURRENCY", "4")
	t.Setenv("DOCEXTRACT_OCR_TARGET_LONGEST_DIM", "2048")
	t.Setenv("DOCEXTRACT_OCR_MAX_IMAGE_PIXELS", "1000000")
	t.Setenv("DOCEXTRACT_STORE_DRIVER", "Postgres")
	t.Setenv("DOCEXTRACT_STORE_TTL", "15m")
	t.Setenv("DOCEXTRACT_CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test ,")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "llama3.1:8b", cfg.Extractor.Model)
	assert.Equal(t, 4, cfg.Extractor.Concurrency)
	assert.Equal(t, 2048, cfg.OCR.TargetLongestDim)
	assert.Equal(t, int64(1000000), cfg.OCR.MaxImagePixels)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, 15*time.Minute, cfg.Store.TTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_PlatformPort(t *testing.T) {
	t.Setenv("PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)

	t.Setenv("DOCEXTRACT_SERVER_PORT", ":7070")
	cfg, err = config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Port)
}

func TestLoad_RejectsUnknownStoreDriver(t *testing.T) {
	t.Setenv("DOCEXTRACT_STORE_DRIVER", "redis")

	_, err := config.Load()
	assert.ErrorContains(t, err, "unknown store driver")
}

func TestDBConfig_DSN(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/n?sslmode=disable", db.DSN())
}

func TestExtractorConfig_CallTimeout(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.ExtractorConfig
		want time.Duration
	}{
		{"single attempt", config.ExtractorConfig{TimeoutSecs: 30}, 30 * time.Second},
		{"retries multiply", config.ExtractorConfig{TimeoutSecs: 30, MaxRetries: 2}, 90 * time.Second},
		{"unset timeout", config.ExtractorConfig{MaxRetries: 1}, 240 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.CallTimeout())
		})
	}
}
