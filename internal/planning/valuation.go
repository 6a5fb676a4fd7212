package planning

import "math"

// Valuation is a multiple-of-EBITDA estimate adjusted for owner and customer risk.
type Valuation struct {
	EBITDA                    float64 `json:"ebitda"`
	BaseMultiple              float64 `json:"baseMultiple"`
	OwnerCentricityMultiplier float64 `json:"ownerCentricityMultiplier"`
	CustomerRiskMultiplier    float64 `json:"customerRiskMultiplier"`
	AdjustedMultiple          float64 `json:"adjustedMultiple"`
	EstimatedValue            float64 `json:"estimatedValue"`
}

// EstimateValue expects a profile with defaults applied.
func EstimateValue(p Profile, bench Benchmark) Valuation {
	ebitda := p.Revenue * p.ProfitMargin / 100
	owner := OwnerCentricityMultiplier(p.OwnerCentricityScore)
	customer := CustomerRiskMultiplier(p.TopCustomerPercentage)
	adjusted := bench.Multiples.Average * owner * customer
	return Valuation{
		EBITDA:                    ebitda,
		BaseMultiple:              bench.Multiples.Average,
		OwnerCentricityMultiplier: owner,
		CustomerRiskMultiplier:    customer,
		AdjustedMultiple:          adjusted,
		EstimatedValue:            math.Round(ebitda * adjusted),
	}
}

func OwnerCentricityMultiplier(score float64) float64 {
	switch {
	case score >= 85:
		return 1.2
	case score >= 70:
		return 1.1
	case score >= 55:
		return 1.0
	case score >= 40:
		return 0.9
	default:
		return 0.8
	}
}

// CustomerRiskMultiplier treats an unknown (zero) concentration as low risk.
func CustomerRiskMultiplier(topCustomerPct float64) float64 {
	switch {
	case topCustomerPct <= 0 || topCustomerPct < 15:
		return 1.1
	case topCustomerPct < 25:
		return 1.0
	case topCustomerPct < 40:
		return 0.95
	case topCustomerPct < 60:
		return 0.85
	default:
		return 0.75
	}
}
