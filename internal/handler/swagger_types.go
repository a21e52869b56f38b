package handler

import "docextract/internal/domain"

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// LLMExtractRequest is the body of POST /llm-extract.
type LLMExtractRequest struct {
	OCRText string `json:"ocr_text" binding:"required" example:"INVOICE #42\nBill to: Jane Doe\nTotal: $120.00"`
}

// FormFieldsResponse wraps a form-field extraction.
type FormFieldsResponse struct {
	FormFields domain.FormFields `json:"form_fields"`
}

// StructureResponse wraps a structure extraction.
type StructureResponse struct {
	Structure domain.Structure `json:"structure"`
}

// TablesResponse wraps a table extraction.
type TablesResponse struct {
	Tables domain.Tables `json:"tables"`
}

// HealthResponse is the body of the health endpoints.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty"`
}

// ErrorResponseBody is the envelope of every error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
