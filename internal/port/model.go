package port

import "context"

// VisionRequest is a single multimodal OCR generation request.
type VisionRequest struct {
	Prompt      string
	ImageBase64 string
	Temperature float64
	MaxTokens   int
}

// VisionModel abstracts the OCR vision-language model. Implementations
// return only the newly generated text of the single requested completion.
type VisionModel interface {
	Generate(ctx context.Context, req VisionRequest) (string, error)
}

// CompletionRequest is one prompt sent to the extraction LLM.
type CompletionRequest struct {
	Prompt      string
	Temperature float64
	NumPredict  int
}

// CompletionBackend abstracts the extraction LLM endpoint. The returned text
// is free-form and is expected, but not guaranteed, to contain JSON.
type CompletionBackend interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
