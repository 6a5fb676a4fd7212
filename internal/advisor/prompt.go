package advisor

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"exitplan-backend/internal/llm"
)

var (
	//go:embed prompts/persona.txt
	systemPersona string
	//go:embed prompts/enhance_v1.txt
	enhancePromptV1 string
)

var amountPrinter = message.NewPrinter(language.English)

// BuildMessages renders the system persona and the user prompt.
func BuildMessages(business BusinessContext, baseline []Recommendation) []llm.Message {
	return []llm.Message{
		{Role: "system", Content: strings.TrimSpace(systemPersona)},
		{Role: "user", Content: buildUserPrompt(business, baseline)},
	}
}

// BuildRequest assembles the provider call for a configuration snapshot.
func BuildRequest(cfg Config, business BusinessContext, baseline []Recommendation) llm.CompletionRequest {
	return llm.CompletionRequest{
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.Credential,
		Model:       cfg.Model,
		Messages:    BuildMessages(business, baseline),
		MaxTokens:   cfg.MaxOutputTokens,
		Temperature: cfg.Temperature,
	}
}

func buildUserPrompt(business BusinessContext, baseline []Recommendation) string {
	industry := strings.TrimSpace(business.Industry)
	if industry == "" {
		industry = "not specified"
	}
	replacer := strings.NewReplacer(
		"{{INDUSTRY}}", industry,
		"{{REVENUE}}", amountPrinter.Sprintf("%.0f", business.Revenue),
		"{{PROFIT_MARGIN}}", formatNumber(business.ProfitMargin),
		"{{EMPLOYEES}}", strconv.Itoa(business.Employees),
		"{{OWNER_CENTRICITY}}", formatNumber(business.OwnerCentricityScore),
		"{{TOP_CUSTOMER}}", formatNumber(business.TopCustomerPercentage),
		"{{RECOMMENDATIONS}}", renderRecommendations(baseline),
		"{{COUNT}}", strconv.Itoa(len(baseline)),
	)
	return strings.TrimSpace(replacer.Replace(enhancePromptV1))
}

func renderRecommendations(baseline []Recommendation) string {
	var b strings.Builder
	for i, r := range baseline {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s\n", r.Priority, r.Action)
		fmt.Fprintf(&b, "   - Why: %s\n", r.Reasoning)
		fmt.Fprintf(&b, "   - Expected Impact: %s\n", r.Impact)
		fmt.Fprintf(&b, "   - Timeline: %s\n", r.Timeline)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
