package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Token     TokenConfig
	S3        S3Config
	Log       LogConfig
	OCR       OCRConfig
	Extractor ExtractorConfig
	Store     StoreConfig
	Batch     BatchConfig
	CORS      CORSConfig
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// OCRConfig holds settings for the vision-language OCR model endpoint and
// the page preprocessing that feeds it.
type OCRConfig struct {
	BaseURL          string  `mapstructure:"base_url"`
	APIKey           string  `mapstructure:"api_key"`
	Model            string  `mapstructure:"model"`
	Temperature      float64 `mapstructure:"temperature"`
	MaxTokens        int     `mapstructure:"max_tokens"`
	TimeoutSecs      int     `mapstructure:"timeout_secs"`
	MaxRetries       int     `mapstructure:"max_retries"`
	TargetLongestDim int     `mapstructure:"target_longest_dim"`
	TargetAnchorLen  int     `mapstructure:"target_anchor_len"`
	PdftoppmPath     string  `mapstructure:"pdftoppm"`
	// MaxImagePixels rejects uploaded images whose width*height exceeds it
	// before any pixel data is decoded.
	MaxImagePixels int64 `mapstructure:"max_image_pixels"`
	// Concurrency is the number of generations allowed in flight per model instance.
	Concurrency int `mapstructure:"concurrency"`
}

// ExtractorConfig holds settings for the extraction LLM backend.
type ExtractorConfig struct {
	BaseURL      string  `mapstructure:"base_url"`
	Model        string  `mapstructure:"model"`
	Temperature  float64 `mapstructure:"temperature"`
	TimeoutSecs  int     `mapstructure:"timeout_secs"`
	MaxRetries   int     `mapstructure:"max_retries"`
	Concurrency  int     `mapstructure:"concurrency"`
	RatePerSec   float64 `mapstructure:"rate_per_sec"`
	TemplatesDir string  `mapstructure:"templates_dir"`
}

// CallTimeout bounds one extraction kind across all of its attempts.
func (c *ExtractorConfig) CallTimeout() time.Duration {
	perCall := time.Duration(c.TimeoutSecs) * time.Second
	if perCall <= 0 {
		perCall = 120 * time.Second
	}
	return perCall * time.Duration(c.MaxRetries+1)
}

// StoreConfig selects where first-phase upload results are kept.
type StoreConfig struct {
	Driver string        `mapstructure:"driver"`
	TTL    time.Duration `mapstructure:"ttl"`
	// SweepInterval is how often expired uploads are purged.
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// BatchConfig holds batch extraction settings.
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	MaxUploadMB  int64         `mapstructure:"max_upload_mb"`
}

// MaxUploadBytes returns the per-file upload limit in bytes.
func (s *ServerConfig) MaxUploadBytes() int64 {
	return s.MaxUploadMB << 20
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// TokenConfig holds upload token signing settings.
type TokenConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

var storeDrivers = map[string]bool{"memory": true, "postgres": true, "s3": true}

// Load reads configuration from environment variables with the DOCEXTRACT_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DOCEXTRACT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "10m")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.max_upload_mb", 50)

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "docextract")
	v.SetDefault("db.password", "docextract_secret")
	v.SetDefault("db.name", "docextract_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// Token defaults
	v.SetDefault("token.secret", "change-me-in-production")
	v.SetDefault("token.issuer", "docextract")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "docextract-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.prefix", "uploads/")

	// Log defaults
	v.SetDefault("log.level", "debug")

	// CORS defaults
	v.SetDefault("cors.allowed_origins", "*")

	// OCR model defaults
	v.SetDefault("ocr.base_url", "http://localhost:30024/v1")
	v.SetDefault("ocr.api_key", "")
	v.SetDefault("ocr.model", "allenai/olmOCR-7B-0225-preview")
	v.SetDefault("ocr.temperature", 0.8)
	v.SetDefault("ocr.max_tokens", 300)
	v.SetDefault("ocr.timeout_secs", 300)
	v.SetDefault("ocr.max_retries", 2)
	v.SetDefault("ocr.target_longest_dim", 1024)
	v.SetDefault("ocr.target_anchor_len", 4000)
	v.SetDefault("ocr.pdftoppm", "pdftoppm")
	v.SetDefault("ocr.concurrency", 1)
	v.SetDefault("ocr.max_image_pixels", 89478485)

	// Extraction backend defaults
	v.SetDefault("extractor.base_url", "http://localhost:11434")
	v.SetDefault("extractor.model", "qwen2.5vl:7b")
	v.SetDefault("extractor.temperature", 0.1)
	v.SetDefault("extractor.timeout_secs", 120)
	v.SetDefault("extractor.max_retries", 2)
	v.SetDefault("extractor.concurrency", 1)
	v.SetDefault("extractor.rate_per_sec", 0)
	v.SetDefault("extractor.templates_dir", "")

	// Upload store defaults
	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.ttl", "1h")
	v.SetDefault("store.sweep_interval", "5m")

	v.SetDefault("batch.concurrency", 1)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "DOCEXTRACT_SERVER_PORT",
		"server.read_timeout":     "DOCEXTRACT_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "DOCEXTRACT_SERVER_WRITE_TIMEOUT",
		"server.environment":      "DOCEXTRACT_SERVER_ENVIRONMENT",
		"server.max_upload_mb":    "DOCEXTRACT_SERVER_MAX_UPLOAD_MB",
		"db.host":                 "DOCEXTRACT_DB_HOST",
		"db.port":                 "DOCEXTRACT_DB_PORT",
		"db.user":                 "DOCEXTRACT_DB_USER",
		"db.password":             "DOCEXTRACT_DB_PASSWORD",
		"db.name":                 "DOCEXTRACT_DB_NAME",
		"db.sslmode":              "DOCEXTRACT_DB_SSLMODE",
		"db.max_open":             "DOCEXTRACT_DB_MAX_OPEN",
		"db.max_idle":             "DOCEXTRACT_DB_MAX_IDLE",
		"token.secret":            "DOCEXTRACT_TOKEN_SECRET",
		"token.issuer":            "DOCEXTRACT_TOKEN_ISSUER",
		"s3.region":               "DOCEXTRACT_S3_REGION",
		"s3.bucket":               "DOCEXTRACT_S3_BUCKET",
		"s3.endpoint":             "DOCEXTRACT_S3_ENDPOINT",
		"s3.access_key":           "DOCEXTRACT_S3_ACCESS_KEY",
		"s3.secret_key":           "DOCEXTRACT_S3_SECRET_KEY",
		"s3.prefix":               "DOCEXTRACT_S3_PREFIX",
		"log.level":               "DOCEXTRACT_LOG_LEVEL",
		"cors.allowed_origins":    "DOCEXTRACT_CORS_ALLOWED_ORIGINS",
		"ocr.base_url":            "DOCEXTRACT_OCR_BASE_URL",
		"ocr.api_key":             "DOCEXTRACT_OCR_API_KEY",
		"ocr.model":               "DOCEXTRACT_OCR_MODEL",
		"ocr.temperature":         "DOCEXTRACT_OCR_TEMPERATURE",
		"ocr.max_tokens":          "DOCEXTRACT_OCR_MAX_TOKENS",
		"ocr.timeout_secs":        "DOCEXTRACT_OCR_TIMEOUT_SECS",
		"ocr.max_retries":         "DOCEXTRACT_OCR_MAX_RETRIES",
		"ocr.target_longest_dim":  "DOCEXTRACT_OCR_TARGET_LONGEST_DIM",
		"ocr.target_anchor_len":   "DOCEXTRACT_OCR_TARGET_ANCHOR_LEN",
		"ocr.pdftoppm":            "DOCEXTRACT_OCR_PDFTOPPM",
		"ocr.concurrency":         "DOCEXTRACT_OCR_CONCURRENCY",
		"ocr.max_image_pixels":    "DOCEXTRACT_OCR_MAX_IMAGE_PIXELS",
		"extractor.base_url":      "DOCEXTRACT_EXTRACTOR_BASE_URL",
		"extractor.model":         "DOCEXTRACT_EXTRACTOR_MODEL",
		"extractor.temperature":   "DOCEXTRACT_EXTRACTOR_TEMPERATURE",
		"extractor.timeout_secs":  "DOCEXTRACT_EXTRACTOR_TIMEOUT_SECS",
		"extractor.max_retries":   "DOCEXTRACT_EXTRACTOR_MAX_RETRIES",
		"extractor.concurrency":   "DOCEXTRACT_EXTRACTOR_CONCURRENCY",
		"extractor.rate_per_sec":  "DOCEXTRACT_EXTRACTOR_RATE_PER_SEC",
		"extractor.templates_dir": "DOCEXTRACT_EXTRACTOR_TEMPLATES_DIR",
		"store.driver":            "DOCEXTRACT_STORE_DRIVER",
		"store.ttl":               "DOCEXTRACT_STORE_TTL",
		"store.sweep_interval":    "DOCEXTRACT_STORE_SWEEP_INTERVAL",
		"batch.concurrency":       "DOCEXTRACT_BATCH_CONCURRENCY",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Container platforms set a PORT env var. Use it if DOCEXTRACT_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DOCEXTRACT_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
		MaxUploadMB:  v.GetInt64("server.max_upload_mb"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Token = TokenConfig{
		Secret: v.GetString("token.secret"),
		Issuer: v.GetString("token.issuer"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
		Prefix:    v.GetString("s3.prefix"),
	}
	cfg.Log = LogConfig{
		Level: v.GetString("log.level"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.OCR = OCRConfig{
		BaseURL:          v.GetString("ocr.base_url"),
		APIKey:           v.GetString("ocr.api_key"),
		Model:            v.GetString("ocr.model"),
		Temperature:      v.GetFloat64("ocr.temperature"),
		MaxTokens:        v.GetInt("ocr.max_tokens"),
		TimeoutSecs:      v.GetInt("ocr.timeout_secs"),
		MaxRetries:       v.GetInt("ocr.max_retries"),
		TargetLongestDim: v.GetInt("ocr.target_longest_dim"),
		TargetAnchorLen:  v.GetInt("ocr.target_anchor_len"),
		PdftoppmPath:     v.GetString("ocr.pdftoppm"),
		Concurrency:      v.GetInt("ocr.concurrency"),
		MaxImagePixels:   v.GetInt64("ocr.max_image_pixels"),
	}
	cfg.Extractor = ExtractorConfig{
		BaseURL:      v.GetString("extractor.base_url"),
		Model:        v.GetString("extractor.model"),
		Temperature:  v.GetFloat64("extractor.temperature"),
		TimeoutSecs:  v.GetInt("extractor.timeout_secs"),
		MaxRetries:   v.GetInt("extractor.max_retries"),
		Concurrency:  v.GetInt("extractor.concurrency"),
		RatePerSec:   v.GetFloat64("extractor.rate_per_sec"),
		TemplatesDir: v.GetString("extractor.templates_dir"),
	}
	cfg.Store = StoreConfig{
		Driver:        strings.ToLower(v.GetString("store.driver")),
		TTL:           v.GetDuration("store.ttl"),
		SweepInterval: v.GetDuration("store.sweep_interval"),
	}
	cfg.Batch = BatchConfig{
		Concurrency: v.GetInt("batch.concurrency"),
	}

	if !storeDrivers[cfg.Store.Driver] {
		return nil, fmt.Errorf("unknown store driver %q (want memory, postgres or s3)", cfg.Store.Driver)
	}
	if cfg.Store.TTL <= 0 {
		return nil, fmt.Errorf("store ttl must be positive, got %s", cfg.Store.TTL)
	}

	return cfg, nil
}
