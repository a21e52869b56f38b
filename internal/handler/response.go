package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"docextract/internal/domain"
)

// APIResponse is the standard envelope for error responses and
// acknowledgements. Extraction results are written unwrapped.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 response with data as the body.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
// Server-side pipeline failures carry the wrapped error text.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf, png, jpg, jpeg, gif, bmp, tiff, webp"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrPageOutOfRange):
		return http.StatusBadRequest, "PAGE_OUT_OF_RANGE", "page number out of range"
	case errors.Is(err, domain.ErrInvalidExtractionKind):
		return http.StatusBadRequest, "INVALID_EXTRACTION_KIND", err.Error()
	case errors.Is(err, domain.ErrUploadNotFound):
		return http.StatusBadRequest, "UPLOAD_NOT_FOUND", "no prior upload found; call /upload first"
	case errors.Is(err, domain.ErrInvalidUploadToken):
		return http.StatusBadRequest, "INVALID_UPLOAD_TOKEN", "upload token is invalid"
	case errors.Is(err, domain.ErrUploadExpired):
		return http.StatusGone, "UPLOAD_EXPIRED", "upload has expired; upload the document again"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrModelInvocation):
		return http.StatusInternalServerError, "OCR_FAILED", err.Error()
	case errors.Is(err, domain.ErrBackendUnreachable), errors.Is(err, domain.ErrBackendHTTP):
		return http.StatusInternalServerError, "EXTRACTION_FAILED", err.Error()
	case errors.Is(err, domain.ErrMalformedOutput):
		return http.StatusInternalServerError, "MALFORMED_OUTPUT", err.Error()
	case errors.Is(err, domain.ErrFileIO):
		return http.StatusInternalServerError, "FILE_IO_ERROR", err.Error()
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
