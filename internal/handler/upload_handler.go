package handler

import (
	"github.com/gin-gonic/gin"

	"docextract/internal/domain"
	"docextract/internal/service"
)

// UploadHandler handles the two-phase upload-then-extract endpoints.
type UploadHandler struct {
	uploads service.UploadService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploads service.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// Upload handles POST /upload
// @Summary Transcribe a document for later extraction
// @Description Runs OCR once and returns a token that the extract_names, extract_phones and extract_tables endpoints accept.
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF or image"
// @Param page formData int false "1-indexed PDF page" default(1)
// @Success 201 {object} APIResponse{data=domain.UploadReceipt}
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 500 {object} ErrorResponseBody "OCR failed"
// @Router /upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	in, file, ok := singleDocument(c)
	if !ok {
		return
	}
	defer func() { _ = file.Close() }()

	receipt, err := h.uploads.Upload(c.Request.Context(), in)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, receipt)
}

// ExtractNames handles POST /extract_names
// @Summary Extract person names from an upload
// @Tags upload
// @Produce json
// @Param upload_token formData string false "Token from /upload (or query, or X-Upload-Token header)"
// @Success 200 {object} domain.NameList
// @Failure 400 {object} ErrorResponseBody "No prior upload found"
// @Failure 410 {object} ErrorResponseBody "Upload expired"
// @Failure 500 {object} ErrorResponseBody "Extraction failed"
// @Router /extract_names [post]
func (h *UploadHandler) ExtractNames(c *gin.Context) {
	h.extract(c, domain.KindNames)
}

// ExtractPhones handles POST /extract_phones
// @Summary Extract phone numbers from an upload
// @Tags upload
// @Produce json
// @Param upload_token formData string false "Token from /upload (or query, or X-Upload-Token header)"
// @Success 200 {object} domain.PhoneList
// @Failure 400 {object} ErrorResponseBody "No prior upload found"
// @Failure 410 {object} ErrorResponseBody "Upload expired"
// @Failure 500 {object} ErrorResponseBody "Extraction failed"
// @Router /extract_phones [post]
func (h *UploadHandler) ExtractPhones(c *gin.Context) {
	h.extract(c, domain.KindPhones)
}

// ExtractTables handles POST /extract_tables
// @Summary Extract tables from an upload
// @Tags upload
// @Produce json
// @Param upload_token formData string false "Token from /upload (or query, or X-Upload-Token header)"
// @Success 200 {object} TablesResponse
// @Failure 400 {object} ErrorResponseBody "No prior upload found"
// @Failure 410 {object} ErrorResponseBody "Upload expired"
// @Failure 500 {object} ErrorResponseBody "Extraction failed"
// @Router /extract_tables [post]
func (h *UploadHandler) ExtractTables(c *gin.Context) {
	h.extract(c, domain.KindAllTables)
}

func (h *UploadHandler) extract(c *gin.Context, kind domain.ExtractionKind) {
	result, err := h.uploads.ExtractFromUpload(c.Request.Context(), uploadToken(c), kind)
	if err != nil {
		HandleError(c, err)
		return
	}
	if tables, ok := result.(domain.AllTables); ok {
		RespondOK(c, TablesResponse{Tables: domain.Tables(tables)})
		return
	}
	RespondOK(c, result)
}
