package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"exitplan-backend/internal/llm"
)

const (
	// DefaultBaseURL is the public OpenAI API root.
	DefaultBaseURL = "https://api.openai.com/v1"

	completionsPath = "/chat/completions"
	maxResponseSize = 4 << 20
	defaultTimeout  = 120 * time.Second
)

// Client implements llm.Client against any OpenAI-compatible Chat Completions endpoint.
type Client struct {
	httpClient *http.Client
}

// NewClient constructs a client. A non-positive timeout selects the default.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewClientWithHTTP wraps an existing http.Client, mostly for tests.
func NewClientWithHTTP(httpClient *http.Client) *Client {
	if httpClient == nil {
		return NewClient(0)
	}
	return &Client{httpClient: httpClient}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []llm.Message `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message llm.Message `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *providerError `json:"error,omitempty"`
}

type providerError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Complete performs one chat completion call and returns the first choice content.
func (c *Client) Complete(ctx context.Context, in llm.CompletionRequest) (llm.Completion, error) {
	if strings.TrimSpace(in.BaseURL) == "" {
		return llm.Completion{}, fmt.Errorf("%w: base url is empty", llm.ErrTransport)
	}
	reqBody := chatRequest{
		Model:       in.Model,
		Messages:    in.Messages,
		MaxTokens:   in.MaxTokens,
		Temperature: in.Temperature,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return llm.Completion{}, fmt.Errorf("openai marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, Endpoint(in.BaseURL), bytes.NewReader(payload))
	if err != nil {
		return llm.Completion{}, fmt.Errorf("%w: build request: %w", llm.ErrTransport, err)
	}
	req.Header.Set("Authorization", "Bearer "+in.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return llm.Completion{}, fmt.Errorf("%w: openai request timeout: %w", llm.ErrTransport, err)
		}
		return llm.Completion{}, fmt.Errorf("%w: %w", llm.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return llm.Completion{}, fmt.Errorf("%w: read body: %w", llm.ErrTransport, err)
	}

	var parsed chatResponse
	parseErr := json.Unmarshal(body, &parsed)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(body))
		if parseErr == nil && parsed.Error != nil {
			msg = fmt.Sprintf("%s (%s)", parsed.Error.Message, parsed.Error.Type)
		}
		return llm.Completion{}, &llm.StatusError{StatusCode: resp.StatusCode, Message: truncate(msg, 512)}
	}
	if parseErr != nil {
		return llm.Completion{}, fmt.Errorf("%w: openai response parse: %w", llm.ErrMalformedResponse, parseErr)
	}
	if parsed.Error != nil {
		return llm.Completion{}, &llm.StatusError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("%s (%s)", parsed.Error.Message, parsed.Error.Type),
		}
	}
	if len(parsed.Choices) == 0 {
		return llm.Completion{}, fmt.Errorf("%w: openai response missing choices", llm.ErrMalformedResponse)
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return llm.Completion{}, fmt.Errorf("%w: openai response empty content", llm.ErrMalformedResponse)
	}
	return llm.Completion{
		Content: content,
		Model:   parsed.Model,
		Usage:   toUsage(parsed),
	}, nil
}

// Endpoint joins a provider base URL with the chat completions path.
func Endpoint(baseURL string) string {
	return strings.TrimRight(strings.TrimSpace(baseURL), "/") + completionsPath
}

func toUsage(parsed chatResponse) *llm.Usage {
	if parsed.Usage == nil {
		return nil
	}
	return &llm.Usage{
		PromptTokens:     parsed.Usage.PromptTokens,
		CompletionTokens: parsed.Usage.CompletionTokens,
		TotalTokens:      parsed.Usage.TotalTokens,
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

var _ llm.Client = (*Client)(nil)
