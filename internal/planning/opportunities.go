package planning

import (
	"fmt"
	"math"
	"sort"
)

const (
	targetOwnerCentricity   = 85
	targetTopCustomerPct    = 15
	managementInvestment    = 150_000
	customerInvestment      = 80_000
	profitabilityInvestment = 50_000

	managementMinROI    = 200
	profitabilityMinROI = 150
	customerMinROI      = 100
)

// ValueEnhancement is an investment that is expected to raise the sale value
// by more than it costs. ROI is the value increase as a percentage of the
// investment.
type ValueEnhancement struct {
	Enhancement   string   `json:"enhancement"`
	Description   string   `json:"description"`
	ValueIncrease float64  `json:"valueIncrease"`
	Investment    float64  `json:"investmentRequired"`
	ROI           int      `json:"roi"`
	Timeline      string   `json:"timeline"`
	Difficulty    string   `json:"difficulty"`
	Actions       []string `json:"specificActions"`
}

// IdentifyValueEnhancements lists the management, profitability and customer
// opportunities whose ROI clears their threshold, best ROI first. It expects a
// profile with defaults applied and the valuation computed from it.
func IdentifyValueEnhancements(p Profile, bench Benchmark, v Valuation) []ValueEnhancement {
	out := make([]ValueEnhancement, 0, 3)

	if e, ok := managementEnhancement(p, v); ok && e.ROI > managementMinROI {
		out = append(out, e)
	}
	if e, ok := profitabilityEnhancement(p, bench, v); ok && e.ROI > profitabilityMinROI {
		out = append(out, e)
	}
	if e, ok := customerEnhancement(p, v); ok && e.ROI > customerMinROI {
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].ROI > out[j].ROI })
	return out
}

// managementEnhancement values a general manager hire: 15% of the current
// value plus a quarter of it scaled by the distance to the target score.
func managementEnhancement(p Profile, v Valuation) (ValueEnhancement, bool) {
	if p.OwnerCentricityScore >= targetOwnerCentricity {
		return ValueEnhancement{}, false
	}
	improvement := (targetOwnerCentricity - p.OwnerCentricityScore) / 100
	increase := v.EstimatedValue*0.15 + v.EstimatedValue*improvement*0.25
	difficulty := "Medium"
	if p.OwnerCentricityScore < 40 {
		difficulty = "High"
	}
	return ValueEnhancement{
		Enhancement:   "Management Team Development",
		Description:   "Put a general manager in place so the business runs without the owner",
		ValueIncrease: math.Round(increase),
		Investment:    managementInvestment,
		ROI:           roi(increase, managementInvestment),
		Timeline:      "12 months",
		Difficulty:    difficulty,
		Actions: []string{
			"Recruit or promote a General Manager",
			"Hand over key client relationships",
			"Document decision rights and core processes",
		},
	}, true
}

// profitabilityEnhancement values closing the gap to the industry's average
// margin at the current adjusted multiple.
func profitabilityEnhancement(p Profile, bench Benchmark, v Valuation) (ValueEnhancement, bool) {
	gap := bench.ProfitMargin.Average - p.ProfitMargin
	if gap <= 0 {
		return ValueEnhancement{}, false
	}
	increase := p.Revenue * gap / 100 * v.AdjustedMultiple
	return ValueEnhancement{
		Enhancement:   "Financial Performance Optimization",
		Description:   "Improve profit margins and financial controls",
		ValueIncrease: math.Round(increase),
		Investment:    profitabilityInvestment,
		ROI:           roi(increase, profitabilityInvestment),
		Timeline:      "6-12 months",
		Difficulty:    "Medium",
		Actions: []string{
			"Implement cost reduction program",
			"Optimize pricing strategy",
			"Improve financial reporting and KPIs",
			"Strengthen cash flow management",
		},
	}, true
}

// customerEnhancement values a lower top-customer share: a 20% premium scaled
// by the reduction plus a 10% stability bonus. Unknown concentration is skipped.
func customerEnhancement(p Profile, v Valuation) (ValueEnhancement, bool) {
	if p.TopCustomerPercentage <= targetTopCustomerPct {
		return ValueEnhancement{}, false
	}
	reduction := (p.TopCustomerPercentage - targetTopCustomerPct) / 100
	increase := v.EstimatedValue*reduction*0.20 + v.EstimatedValue*0.10
	return ValueEnhancement{
		Enhancement:   "Customer Portfolio Optimization",
		Description:   "Spread revenue across more customers and lock it in with contracts",
		ValueIncrease: math.Round(increase),
		Investment:    customerInvestment,
		ROI:           roi(increase, customerInvestment),
		Timeline:      "18 months",
		Difficulty:    "Medium",
		Actions: []string{
			fmt.Sprintf("Reduce top customer dependency from %s%% to <20%%", formatNumber(p.TopCustomerPercentage)),
			"Implement customer retention program",
			"Develop new customer acquisition channels",
			"Strengthen customer contracts and terms",
		},
	}, true
}

func roi(increase, investment float64) int {
	if investment <= 0 {
		return 0
	}
	return int(math.Round(increase / investment * 100))
}
