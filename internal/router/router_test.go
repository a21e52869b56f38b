package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"docextract/internal/handler"
	"docextract/internal/router"
	"docextract/mocks"
)

func setup() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return router.Setup(
		router.Options{AllowedOrigins: []string{"*"}},
		handler.NewExtractHandler(new(mocks.MockPipelineService)),
		handler.NewUploadHandler(new(mocks.MockUploadService)),
		handler.NewHealthHandler(new(mocks.MockUploadRepo)),
	)
}

func TestSetup_Routes(t *testing.T) {
	r := setup()

	want := map[string]bool{
		"GET /healthz":              true,
		"GET /readyz":               true,
		"GET /swagger/*any":         true,
		"POST /extract":             true,
		"POST /batch_extract":       true,
		"POST /extract_form_fields": true,
		"POST /extract_structure":   true,
		"POST /export_tables":       true,
		"POST /upload":              true,
		"POST /extract_names":       true,
		"POST /extract_phones":      true,
		"POST /extract_tables":      true,
		"POST /ocr-extract":         true,
		"POST /llm-extract":         true,
		"POST /full-pipeline":       true,
	}
	got := map[string]bool{}
	for _, route := range r.Routes() {
		got[route.Method+" "+route.Path] = true
	}
	assert.Equal(t, want, got)
}

func TestSetup_RequestIDAndCORS(t *testing.T) {
	r := setup()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	req.Header.Set("Origin", "https://ui.example.com")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "https://ui.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSetup_ExtractWithoutFile(t *testing.T) {
	r := setup()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/extract", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_FILE")
}
