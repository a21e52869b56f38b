package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "docextract/docs" // registers swagger docs
	"docextract/internal/handler"
	"docextract/internal/middleware"
)

// Options holds router-level settings.
type Options struct {
	AllowedOrigins []string
	// MaxMultipartMemory bounds the part of a multipart body held in memory;
	// the rest spills to temp files.
	MaxMultipartMemory int64
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	opts Options,
	extractH *handler.ExtractHandler,
	uploadH *handler.UploadHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()
	if opts.MaxMultipartMemory > 0 {
		r.MaxMultipartMemory = opts.MaxMultipartMemory
	}

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(opts.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Single-request extraction
	r.POST("/extract", extractH.Extract)
	r.POST("/batch_extract", extractH.BatchExtract)
	r.POST("/extract_form_fields", extractH.ExtractFormFields)
	r.POST("/extract_structure", extractH.ExtractStructure)
	r.POST("/export_tables", extractH.ExportTables)

	// Two-phase flow
	r.POST("/upload", uploadH.Upload)
	r.POST("/extract_names", uploadH.ExtractNames)
	r.POST("/extract_phones", uploadH.ExtractPhones)
	r.POST("/extract_tables", uploadH.ExtractTables)

	// Stage-level pipeline routes
	r.POST("/ocr-extract", extractH.OCRExtract)
	r.POST("/llm-extract", extractH.LLMExtract)
	r.POST("/full-pipeline", extractH.FullPipeline)

	return r
}
