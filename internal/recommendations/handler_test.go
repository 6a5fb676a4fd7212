package recommendations

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exitplan-backend/internal/advisor"
	"exitplan-backend/internal/llm/openai"
)

func newTestRouter(settings *advisor.Settings) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := &Service{
		Settings: settings,
		Enhancer: advisor.NewEnhancer(openai.NewClient(5 * time.Second)),
	}
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func providerReturning(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"role": "assistant", "content": content}}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func configured(t *testing.T, baseURL string) *advisor.Settings {
	t.Helper()
	settings := advisor.NewSettings(advisor.Disabled())
	require.NoError(t, settings.Configure(advisor.ProviderOpenAI, advisor.Options{
		APIKey:  "sk-test",
		Model:   "gpt-test",
		BaseURL: baseURL,
	}))
	return settings
}

const enhanceBody = `{
  "businessContext": {"industry": "Retail", "revenue": 900000, "profitMargin": 6, "employees": 12, "ownerCentricityScore": 60, "topCustomerPercentage": 45},
  "recommendations": [
    {"priority": 1, "action": "Reduce customer concentration", "reasoning": "45% from one customer", "impact": "High", "timeline": "6mo"}
  ]
}`

func TestEnhanceDisabledEchoesBaseline(t *testing.T) {
	r := newTestRouter(advisor.NewSettings(advisor.Disabled()))

	resp := post(r, "/api/v1/recommendations/enhance", enhanceBody)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"recommendations":[{"priority":1,"action":"Reduce customer concentration","reasoning":"45% from one customer","impact":"High","timeline":"6mo"}],"enhanced":false}`, resp.Body.String())
}

func TestEnhanceProviderFailureStillReturns200(t *testing.T) {
	srv := providerReturning(t, http.StatusInternalServerError, "")
	r := newTestRouter(configured(t, srv.URL))

	resp := post(r, "/api/v1/recommendations/enhance", enhanceBody)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"recommendations":[{"priority":1,"action":"Reduce customer concentration","reasoning":"45% from one customer","impact":"High","timeline":"6mo"}],"enhanced":false}`, resp.Body.String())
}

func TestEnhanceSuccess(t *testing.T) {
	srv := providerReturning(t, http.StatusOK, `[{"implementationTactics":["Diversify sales channels"],"industryInsights":"i","potentialObstacles":[],"mitigationStrategies":[],"encouragingGuidance":"g"}]`)
	r := newTestRouter(configured(t, srv.URL))

	resp := post(r, "/api/v1/recommendations/enhance", enhanceBody)
	require.Equal(t, http.StatusOK, resp.Code)

	var payload struct {
		Recommendations []advisor.EnhancedRecommendation `json:"recommendations"`
		Enhanced        bool                             `json:"enhanced"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
	assert.True(t, payload.Enhanced)
	require.Len(t, payload.Recommendations, 1)
	assert.True(t, payload.Recommendations[0].Enhanced)
	assert.Equal(t, []string{"Diversify sales channels"}, payload.Recommendations[0].ImplementationTactics)
	assert.Equal(t, "Reduce customer concentration", payload.Recommendations[0].Action)
}

func TestRecommendRunsPlanningThenAdvisor(t *testing.T) {
	srv := providerReturning(t, http.StatusOK, `[{"industryInsights":"first only"}]`)
	r := newTestRouter(configured(t, srv.URL))

	body := `{"industry":"Precision manufacturing","revenue":4000000,"profitMargin":8,"employees":35,"ownerCentricityScore":40,"topCustomerPercentage":35,"managementLevels":2,"processDocumentation":40,"contractedRevenuePercentage":60}`
	resp := post(r, "/api/v1/recommendations", body)
	require.Equal(t, http.StatusOK, resp.Code)

	var payload struct {
		Report struct {
			Industry        string                   `json:"industry"`
			Recommendations []advisor.Recommendation `json:"recommendations"`
		} `json:"report"`
		Recommendations []advisor.EnhancedRecommendation `json:"recommendations"`
		Enhanced        bool                             `json:"enhanced"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
	assert.Equal(t, "manufacturing", payload.Report.Industry)
	assert.True(t, payload.Enhanced)
	require.NotEmpty(t, payload.Report.Recommendations)
	require.Len(t, payload.Recommendations, len(payload.Report.Recommendations))
	assert.Equal(t, "first only", payload.Recommendations[0].IndustryInsights)
	for i, rec := range payload.Recommendations {
		assert.True(t, rec.Enhanced)
		assert.Equal(t, payload.Report.Recommendations[i], rec.Recommendation)
	}
}

func TestInvalidBodies(t *testing.T) {
	r := newTestRouter(advisor.NewSettings(advisor.Disabled()))

	for _, tc := range []struct{ path, body string }{
		{"/api/v1/recommendations", `{"revenue":"lots"}`},
		{"/api/v1/recommendations", `not json`},
		{"/api/v1/recommendations/enhance", `{"businessContext":{}}`},
		{"/api/v1/recommendations/enhance", `{"recommendations":[{"priority":"first"}]}`},
	} {
		resp := post(r, tc.path, tc.body)
		require.Equal(t, http.StatusBadRequest, resp.Code, "%s %s", tc.path, tc.body)
		assert.Contains(t, resp.Body.String(), `"invalid_request"`)
	}
}

func TestOversizedBodyIsRejected(t *testing.T) {
	r := newTestRouter(advisor.NewSettings(advisor.Disabled()))

	body := `{"industry":"` + strings.Repeat("a", maxBodySize) + `"}`
	resp := post(r, "/api/v1/recommendations", body)

	require.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)
	assert.Contains(t, resp.Body.String(), `"payload_too_large"`)
}
