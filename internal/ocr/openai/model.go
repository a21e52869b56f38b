// Package openai implements port.VisionModel against an OpenAI-compatible
// chat completions server (vLLM, sglang) hosting the OCR checkpoint.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"docextract/internal/config"
	"docextract/internal/domain"
	"docextract/internal/port"
)

const (
	backendName  = "ocr-model"
	defaultModel = "allenai/olmOCR-7B-0225-preview"
)

// Model is a long-lived client shared by every request.
type Model struct {
	client openai.Client
	model  string
}

// NewModel creates a Model from OCR settings.
func NewModel(cfg *config.OCRConfig) *Model {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 300 * time.Second
	}
	apiKey := cfg.APIKey
	if apiKey == "" {
		// self-hosted servers ignore the key but the client requires one
		apiKey = "EMPTY"
	}
	client := openai.NewClient(
		option.WithBaseURL(cfg.BaseURL),
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
		option.WithMaxRetries(0),
	)
	return &Model{client: client, model: model}
}

// Generate sends the prompt and the PNG page image as one user message and
// returns the text of the single completion.
func (m *Model) Generate(ctx context.Context, req port.VisionRequest) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(m.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(req.Prompt),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: "data:image/png;base64," + req.ImageBase64,
				}),
			}),
		},
		Temperature: openai.Float(req.Temperature),
		MaxTokens:   openai.Int(int64(req.MaxTokens)),
		N:           openai.Int(1),
	}

	completion, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", convertError(err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("empty response from %s", backendName)
	}
	return completion.Choices[0].Message.Content, nil
}

func convertError(err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		retryAfter := 0
		if apierr.Response != nil {
			retryAfter = domain.ParseRetryAfterHeader(apierr.Response.Header.Get("Retry-After"))
		}
		return domain.NewHTTPError(backendName, apierr.StatusCode, domain.Truncate(apierr.Message, 500), retryAfter)
	}
	return domain.NewUnreachableError(backendName, err)
}
