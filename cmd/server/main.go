package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"docextract/internal/config"
	"docextract/internal/extraction"
	"docextract/internal/handler"
	"docextract/internal/llm/ollama"
	"docextract/internal/ocr"
	ocropenai "docextract/internal/ocr/openai"
	"docextract/internal/port"
	"docextract/internal/preprocess"
	"docextract/internal/repository/blob"
	"docextract/internal/repository/memory"
	"docextract/internal/repository/postgres"
	"docextract/internal/router"
	"docextract/internal/service"
	s3storage "docextract/internal/storage/s3"
	"docextract/internal/token"
)

// @title docextract API
// @version 1.0
// @description OCR and LLM document extraction service.
// @BasePath /
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize upload store
	uploadRepo, closeStore, err := newUploadRepo(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	// OCR stage: one model client for the life of the process
	model := ocropenai.NewModel(&cfg.OCR)
	transcriber := ocr.NewTranscriber(model, &cfg.OCR)
	preparer := preprocess.NewPreparer(
		preprocess.NewPdftoppmRenderer(cfg.OCR.PdftoppmPath),
		preprocess.NewPDFAnchorBuilder(),
		&cfg.OCR,
	)

	// Extraction stage
	templates, err := extraction.LoadTemplates(cfg.Extractor.TemplatesDir)
	if err != nil {
		return fmt.Errorf("failed to load prompt templates: %w", err)
	}
	backend := ollama.NewClient(&cfg.Extractor)
	extractor := extraction.NewExtractor(backend, templates, extraction.Config{
		Temperature: cfg.Extractor.Temperature,
		Concurrency: cfg.Extractor.Concurrency,
		CallTimeout: cfg.Extractor.CallTimeout(),
	})

	// Initialize services
	pipelineSvc := service.NewPipelineService(preparer, transcriber, extractor, service.PipelineConfig{
		MaxUploadBytes:   cfg.Server.MaxUploadBytes(),
		BatchConcurrency: cfg.Batch.Concurrency,
	})
	uploadSvc := service.NewUploadService(pipelineSvc, extractor, uploadRepo, token.NewIssuer(&cfg.Token), cfg.Store.TTL)

	janitor := service.NewUploadJanitor(uploadRepo, cfg.Store.SweepInterval)
	go janitor.Start(ctx)

	// Initialize handlers
	extractH := handler.NewExtractHandler(pipelineSvc)
	uploadH := handler.NewUploadHandler(uploadSvc)
	healthH := handler.NewHealthHandler(uploadRepo)

	r := router.Setup(router.Options{
		AllowedOrigins:     cfg.CORS.AllowedOrigins,
		MaxMultipartMemory: 32 << 20,
	}, extractH, uploadH, healthH)

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s (store=%s, ocr=%s, extractor=%s)",
			cfg.Server.Port, cfg.Store.Driver, cfg.OCR.Model, cfg.Extractor.Model)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Printf("Server stopped")
	return nil
}

// newUploadRepo builds the two-phase upload store selected by store.driver.
// The returned func releases its resources.
func newUploadRepo(ctx context.Context, cfg *config.Config) (port.UploadRepository, func(), error) {
	switch cfg.Store.Driver {
	case "postgres":
		db, err := postgres.NewDB(ctx, &cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return postgres.NewUploadRepo(db), func() { _ = db.Close() }, nil
	case "s3":
		storage, err := s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		return blob.NewUploadRepo(storage, cfg.S3.Prefix), func() {}, nil
	default:
		return memory.NewUploadRepo(), func() {}, nil
	}
}
