package planning

import "math"

var readinessWeights = ReadinessBreakdown{
	Financial: 0.3,
	Business:  0.35,
	Personal:  0.2,
	Market:    0.15,
}

type Readiness struct {
	Score          int                `json:"score"`
	Interpretation string             `json:"interpretation"`
	Breakdown      ReadinessBreakdown `json:"breakdown"`
}

type ReadinessBreakdown struct {
	Financial float64 `json:"financial"`
	Business  float64 `json:"business"`
	Personal  float64 `json:"personal"`
	Market    float64 `json:"market"`
}

// ScoreReadiness combines the four readiness dimensions into a weighted score.
func ScoreReadiness(p Profile, pos Position, bench Benchmark) Readiness {
	b := ReadinessBreakdown{
		Financial: math.Round(pos.ProfitabilityPosition*0.6 + clamp(p.ContractedRevenuePercentage, 0, 100)*0.4),
		Business:  math.Round((100-pos.OwnerDependencyLevel)*0.4 + pos.ManagementStrength*0.3 + (100-pos.CustomerRiskLevel)*0.3),
		Personal:  math.Round(clamp(p.PersonalReadiness, 0, 100)),
		Market:    math.Round(clamp(bench.MarketReadiness, 0, 100)),
	}
	weighted := b.Financial*readinessWeights.Financial +
		b.Business*readinessWeights.Business +
		b.Personal*readinessWeights.Personal +
		b.Market*readinessWeights.Market
	score := int(math.Round(weighted))
	return Readiness{
		Score:          score,
		Interpretation: Interpret(score),
		Breakdown:      b,
	}
}

// Interpret maps a 0-100 score onto its band.
func Interpret(score int) string {
	switch {
	case score >= 85:
		return "Excellent"
	case score >= 70:
		return "Good"
	case score >= 55:
		return "Average"
	case score >= 40:
		return "Below Average"
	default:
		return "Poor"
	}
}
