package advisor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"exitplan-backend/internal/llm"
	"exitplan-backend/internal/llm/openai"
)

const testAPIKey = "sk-test-secret-value"

var testBusiness = BusinessContext{
	Industry:              "Manufacturing",
	Revenue:               2500000,
	ProfitMargin:          12.5,
	Employees:             40,
	OwnerCentricityScore:  45,
	TopCustomerPercentage: 38,
}

func testBaseline() []Recommendation {
	return []Recommendation{
		{Priority: 1, Action: "Reduce customer concentration", Reasoning: "38% of revenue from one customer", Impact: "High", Timeline: "12-18 months"},
		{Priority: 2, Action: "Develop management team depth", Reasoning: "One management level", Impact: "Medium-High", Timeline: "12-24 months"},
	}
}

// fakeProvider is an OpenAI-compatible endpoint backed by httptest.
type fakeProvider struct {
	server *httptest.Server
	calls  atomic.Int32
}

func newFakeProvider(t *testing.T, handler http.HandlerFunc) *fakeProvider {
	t.Helper()
	p := &fakeProvider{}
	p.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(p.server.Close)
	return p
}

func (p *fakeProvider) config(t *testing.T) Config {
	t.Helper()
	cfg, err := NewConfig(ProviderOpenAI, Options{
		APIKey:  testAPIKey,
		Model:   "gpt-test",
		BaseURL: p.server.URL + "/v1",
		Timeout: 2 * time.Second,
	})
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return cfg
}

func newTestEnhancer() *Enhancer {
	return NewEnhancer(openai.NewClient(5 * time.Second))
}

func chatBody(content string) []byte {
	body, _ := json.Marshal(map[string]any{
		"id":    "chatcmpl-1",
		"model": "gpt-test",
		"choices": []map[string]any{
			{"index": 0, "message": map[string]any{"role": "assistant", "content": content}},
		},
	})
	return body
}

func respondContent(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(chatBody(content))
	}
}

// stubLLM is an in-process llm.Client.
type stubLLM struct {
	calls atomic.Int32
	fn    func(ctx context.Context, req llm.CompletionRequest) (llm.Completion, error)
}

func (s *stubLLM) Complete(ctx context.Context, req llm.CompletionRequest) (llm.Completion, error) {
	s.calls.Add(1)
	return s.fn(ctx, req)
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}
