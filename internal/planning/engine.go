package planning

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"exitplan-backend/internal/advisor"
)

// Report is the rule-based exit-planning analysis of one profile.
type Report struct {
	Industry          string                   `json:"industry"`
	KeySuccessFactors []string                 `json:"keySuccessFactors"`
	Valuation         Valuation                `json:"valuation"`
	Position          Position                 `json:"position"`
	Recommendations   []advisor.Recommendation `json:"recommendations"`
	ValueEnhancements []ValueEnhancement       `json:"valueEnhancements"`
	Timeline          Timeline                 `json:"timeline"`
	Readiness         Readiness                `json:"readiness"`
}

// Position holds the 0-100 position scores.
type Position struct {
	OwnerDependencyLevel  float64 `json:"ownerDependencyLevel"`
	CustomerRiskLevel     float64 `json:"customerRiskLevel"`
	ProfitabilityPosition float64 `json:"profitabilityPosition"`
	ManagementStrength    float64 `json:"managementStrength"`
}

// Analyze scores the profile and derives the baseline recommendations.
func Analyze(profile Profile) Report {
	p := profile.withDefaults()
	industry := ResolveIndustry(p.Industry)
	bench := BenchmarkFor(industry)
	pos := assessPosition(p, bench)
	valuation := EstimateValue(p, bench)

	return Report{
		Industry:          industry,
		KeySuccessFactors: append([]string(nil), bench.KeySuccessFactors...),
		Valuation:         valuation,
		Position:          pos,
		Recommendations:   GenerateRecommendations(p, pos, bench),
		ValueEnhancements: IdentifyValueEnhancements(p, bench, valuation),
		Timeline:          OptimalTimeline(p),
		Readiness:         ScoreReadiness(p, pos, bench),
	}
}

func assessPosition(p Profile, bench Benchmark) Position {
	profitability := 0.0
	if bench.ProfitMargin.Average > 0 {
		profitability = clamp(p.ProfitMargin/bench.ProfitMargin.Average*50, 0, 100)
	}
	return Position{
		OwnerDependencyLevel:  clamp(100-p.OwnerCentricityScore, 0, 100),
		CustomerRiskLevel:     clamp(p.TopCustomerPercentage*2, 0, 100),
		ProfitabilityPosition: profitability,
		ManagementStrength:    math.Min(float64(p.ManagementLevels)*20, 100)*0.6 + clamp(p.ProcessDocumentation, 0, 100)*0.4,
	}
}

// GenerateRecommendations builds the baseline list, highest impact first, with
// priorities numbered from 1.
func GenerateRecommendations(p Profile, pos Position, bench Benchmark) []advisor.Recommendation {
	recs := make([]advisor.Recommendation, 0, 5)

	if p.OwnerCentricityScore < 70 {
		timeline := "3-9 months"
		action := "Reduce owner dependency by promoting a senior employee into a management role"
		if p.OwnerCentricityScore < 50 {
			timeline = "6-12 months"
			action = "Reduce owner dependency by hiring a General Manager or COO"
		}
		recs = append(recs, advisor.Recommendation{
			Action:    action,
			Reasoning: fmt.Sprintf("An owner-centricity score of %s/100 signals key-person risk that buyers discount heavily.", formatNumber(p.OwnerCentricityScore)),
			Impact:    "High",
			Timeline:  timeline,
		})
	}

	if p.TopCustomerPercentage > 25 {
		recs = append(recs, advisor.Recommendation{
			Action:    "Reduce customer concentration",
			Reasoning: fmt.Sprintf("%s%% of revenue comes from a single customer; buyers look for less than 20%%.", formatNumber(p.TopCustomerPercentage)),
			Impact:    "High",
			Timeline:  "12-18 months",
		})
	}

	if pos.ProfitabilityPosition < 50 {
		recs = append(recs, advisor.Recommendation{
			Action:    "Improve profitability through pricing and cost controls",
			Reasoning: fmt.Sprintf("A profit margin of %s%% trails the %s%% industry average, which lowers EBITDA and the multiple applied to it.", formatNumber(p.ProfitMargin), formatNumber(bench.ProfitMargin.Average)),
			Impact:    "Medium-High",
			Timeline:  "6-12 months",
		})
	}

	if pos.ManagementStrength < 60 {
		recs = append(recs, advisor.Recommendation{
			Action:    "Develop management team depth",
			Reasoning: fmt.Sprintf("%d management level(s) and %s%% documented processes leave the business thin below the owner.", p.ManagementLevels, formatNumber(p.ProcessDocumentation)),
			Impact:    "Medium-High",
			Timeline:  "12-24 months",
		})
	}

	if p.ContractedRevenuePercentage < 50 {
		recs = append(recs, advisor.Recommendation{
			Action:    "Increase contracted revenue base",
			Reasoning: fmt.Sprintf("Only %s%% of revenue is contracted; more than 70%% improves predictability and the valuation multiple.", formatNumber(p.ContractedRevenuePercentage)),
			Impact:    "Medium",
			Timeline:  "6-12 months",
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return impactRank(recs[i].Impact) > impactRank(recs[j].Impact)
	})
	for i := range recs {
		recs[i].Priority = i + 1
	}
	return recs
}

func impactRank(value string) int {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "high":
		return 3
	case "medium-high":
		return 2
	case "medium":
		return 1
	default:
		return 0
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
