// Package ollama implements port.CompletionBackend over the Ollama chat API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"docextract/internal/config"
	"docextract/internal/domain"
	"docextract/internal/port"
	"docextract/internal/retry"
)

const (
	backendName  = "ollama"
	chatPath     = "/api/chat"
	defaultModel = "qwen2.5vl:7b"
)

// Client is safe for concurrent use; it holds no per-call state beyond the
// pooled HTTP connections.
type Client struct {
	endpoint string
	model    string
	client   *http.Client
	limiter  *rate.Limiter
	policy   retry.Policy
}

// NewClient creates a Client from extractor settings.
func NewClient(cfg *config.ExtractorConfig) *Client {
	return newClient(cfg, strings.TrimRight(cfg.BaseURL, "/")+chatPath)
}

// NewClientWithEndpoint creates a Client that posts to endpoint directly (for testing).
func NewClientWithEndpoint(cfg *config.ExtractorConfig, endpoint string) *Client {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.ExtractorConfig, endpoint string) *Client {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RatePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSec), 1)
	}
	return &Client{
		endpoint: endpoint,
		model:    model,
		client:   &http.Client{Timeout: timeout},
		limiter:  limiter,
		policy:   retry.DefaultPolicy(cfg.MaxRetries),
	}
}

// WithRetryPolicy overrides the retry policy.
func (c *Client) WithRetryPolicy(p retry.Policy) *Client {
	c.policy = p
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  chatOptions   `json:"options"`
}

type chatResponse struct {
	Message *struct {
		Content string `json:"content"`
	} `json:"message"`
	Response string `json:"response"`
}

func (c *Client) Complete(ctx context.Context, req port.CompletionRequest) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: req.Prompt}},
		Stream:   false,
		Options: chatOptions{
			Temperature: req.Temperature,
			NumPredict:  req.NumPredict,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	var content string
	err = retry.Do(ctx, backendName, c.policy, func(ctx context.Context) error {
		if err := c.limiter.Wait(ctx); err != nil {
			return domain.NewUnreachableError(backendName, err)
		}
		out, err := c.post(ctx, body)
		if err != nil {
			return err
		}
		content = out
		return nil
	})
	if err != nil {
		return "", err
	}
	return content, nil
}

func (c *Client) post(ctx context.Context, body []byte) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", domain.NewUnreachableError(backendName, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domain.NewUnreachableError(backendName, fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		retryAfter := domain.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
		return "", domain.NewHTTPError(backendName, resp.StatusCode, domain.Truncate(string(respBody), 500), retryAfter)
	}

	return parseResponse(respBody)
}

// parseResponse reads message.content, falling back to the generate-style
// response field.
func parseResponse(body []byte) (string, error) {
	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: unmarshaling response envelope: %v", domain.ErrMalformedOutput, err)
	}
	if resp.Message != nil {
		return resp.Message.Content, nil
	}
	return resp.Response, nil
}
