package llm

import (
	"context"
	"errors"
	"fmt"
)

// Client abstracts chat-completion providers used by the advisor.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (Completion, error)
}

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest carries everything needed for one provider call. Endpoint and
// credentials travel with the request so a client holds no provider state.
type CompletionRequest struct {
	BaseURL     string
	APIKey      string
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// Completion is the first choice content returned by the provider.
type Completion struct {
	Content string
	Model   string
	Usage   *Usage
}

// Usage reports token consumption when the provider includes it.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

var (
	// ErrTransport marks failures before a response status was received.
	ErrTransport = errors.New("llm transport failure")
	// ErrStatus marks non-success HTTP statuses and provider error envelopes.
	ErrStatus = errors.New("llm provider status")
	// ErrMalformedResponse marks bodies that do not match the chat completions shape.
	ErrMalformedResponse = errors.New("llm malformed response")
)

// StatusError reports a non-success provider response.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("llm provider status %d", e.StatusCode)
	}
	return fmt.Sprintf("llm provider status %d: %s", e.StatusCode, e.Message)
}

// Is lets errors.Is(err, ErrStatus) match any StatusError.
func (e *StatusError) Is(target error) bool {
	return target == ErrStatus
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("llm client not configured")

// PlaceholderClient stands in when no transport is wired.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, req CompletionRequest) (Completion, error) {
	_ = ctx
	_ = req
	return Completion{}, ErrNotConfigured
}
