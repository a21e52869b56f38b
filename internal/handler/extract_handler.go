package handler

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"docextract/internal/domain"
	"docextract/internal/export"
	"docextract/internal/service"
)

// ExtractHandler handles the single-request extraction endpoints.
type ExtractHandler struct {
	pipeline service.PipelineService
}

// NewExtractHandler creates a new ExtractHandler.
func NewExtractHandler(pipeline service.PipelineService) *ExtractHandler {
	return &ExtractHandler{pipeline: pipeline}
}

// Extract handles POST /extract
// @Summary Extract everything from a document
// @Description OCR one page, then extract entities, tables, form fields and structure. A failed kind holds its empty default.
// @Tags extraction
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF or image"
// @Param page formData int false "1-indexed PDF page" default(1)
// @Success 200 {object} domain.CompositeExtraction
// @Failure 400 {object} ErrorResponseBody "Missing file, unsupported type or bad page"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 500 {object} ErrorResponseBody "OCR failed"
// @Router /extract [post]
func (h *ExtractHandler) Extract(c *gin.Context) {
	in, file, ok := singleDocument(c)
	if !ok {
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.pipeline.Extract(c.Request.Context(), in)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// BatchExtract handles POST /batch_extract
// @Summary Extract everything from several documents
// @Description Items keep request order. A document that fails gets an error slot instead of failing the request.
// @Tags extraction
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "PDFs or images (repeat the field)"
// @Param page formData int false "1-indexed PDF page applied to every document" default(1)
// @Success 200 {array} domain.BatchItem
// @Failure 400 {object} ErrorResponseBody "No files"
// @Router /batch_extract [post]
func (h *ExtractHandler) BatchExtract(c *gin.Context) {
	inputs, closeAll, ok := batchDocuments(c)
	if !ok {
		return
	}
	defer closeAll()

	RespondOK(c, h.pipeline.BatchExtract(c.Request.Context(), inputs))
}

// ExtractFormFields handles POST /extract_form_fields
// @Summary Extract form fields
// @Tags extraction
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF or image"
// @Param page formData int false "1-indexed PDF page" default(1)
// @Success 200 {object} FormFieldsResponse
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 500 {object} ErrorResponseBody "OCR or extraction failed"
// @Router /extract_form_fields [post]
func (h *ExtractHandler) ExtractFormFields(c *gin.Context) {
	result, ok := h.extractKind(c, domain.KindFormFields)
	if !ok {
		return
	}
	RespondOK(c, gin.H{"form_fields": result})
}

// ExtractStructure handles POST /extract_structure
// @Summary Extract document structure
// @Tags extraction
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF or image"
// @Param page formData int false "1-indexed PDF page" default(1)
// @Success 200 {object} StructureResponse
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 500 {object} ErrorResponseBody "OCR or extraction failed"
// @Router /extract_structure [post]
func (h *ExtractHandler) ExtractStructure(c *gin.Context) {
	result, ok := h.extractKind(c, domain.KindStructure)
	if !ok {
		return
	}
	RespondOK(c, gin.H{"structure": result})
}

func (h *ExtractHandler) extractKind(c *gin.Context, kind domain.ExtractionKind) (domain.ExtractionResult, bool) {
	in, file, ok := singleDocument(c)
	if !ok {
		return nil, false
	}
	defer func() { _ = file.Close() }()

	result, err := h.pipeline.ExtractKind(c.Request.Context(), in, kind)
	if err != nil {
		HandleError(c, err)
		return nil, false
	}
	return result, true
}

// OCRExtract handles POST /ocr-extract
// @Summary Transcribe a document
// @Tags pipeline
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF or image"
// @Param page formData int false "1-indexed PDF page" default(1)
// @Success 200 {object} domain.TranscribedDocument
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 500 {object} ErrorResponseBody "OCR failed"
// @Router /ocr-extract [post]
func (h *ExtractHandler) OCRExtract(c *gin.Context) {
	in, file, ok := singleDocument(c)
	if !ok {
		return
	}
	defer func() { _ = file.Close() }()

	doc, err := h.pipeline.OCR(c.Request.Context(), in)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, doc)
}

// LLMExtract handles POST /llm-extract
// @Summary Extract everything from OCR text
// @Tags pipeline
// @Accept json
// @Produce json
// @Param request body LLMExtractRequest true "Previously transcribed text"
// @Success 200 {object} domain.CompositeExtraction
// @Failure 400 {object} ErrorResponseBody "Missing ocr_text"
// @Router /llm-extract [post]
func (h *ExtractHandler) LLMExtract(c *gin.Context) {
	var req LLMExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "ocr_text is required")
		return
	}
	RespondOK(c, h.pipeline.LLMExtract(c.Request.Context(), req.OCRText))
}

// FullPipeline handles POST /full-pipeline
// @Summary Transcribe and extract, returning both stages
// @Tags pipeline
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF or image"
// @Param page formData int false "1-indexed PDF page" default(1)
// @Success 200 {object} domain.PipelineResult
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 500 {object} ErrorResponseBody "OCR failed"
// @Router /full-pipeline [post]
func (h *ExtractHandler) FullPipeline(c *gin.Context) {
	in, file, ok := singleDocument(c)
	if !ok {
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.pipeline.FullPipeline(c.Request.Context(), in)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// ExportTables handles POST /export_tables
// @Summary Extract tables and download them as a spreadsheet
// @Tags extraction
// @Accept multipart/form-data
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce text/csv
// @Param file formData file true "PDF or image"
// @Param page formData int false "1-indexed PDF page" default(1)
// @Param format query string false "xlsx or csv" default(xlsx)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponseBody "Bad format, missing file or unsupported type"
// @Failure 500 {object} ErrorResponseBody "OCR or extraction failed"
// @Router /export_tables [post]
func (h *ExtractHandler) ExportTables(c *gin.Context) {
	format, err := export.ParseFormat(c.DefaultQuery("format", c.PostForm("format")))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be xlsx or csv")
		return
	}

	in, file, ok := singleDocument(c)
	if !ok {
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.pipeline.ExtractKind(c.Request.Context(), in, domain.KindTables)
	if err != nil {
		HandleError(c, err)
		return
	}
	tables, _ := result.(domain.Tables)

	data, err := export.Render(format, tables)
	if err != nil {
		log.Printf("extractHandler.ExportTables: render %s: %v", format, err)
		RespondError(c, http.StatusInternalServerError, "EXPORT_FAILED", "failed to render tables")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.BuildFilename(in.Filename, format)))
	c.Data(http.StatusOK, format.ContentType(), data)
}
