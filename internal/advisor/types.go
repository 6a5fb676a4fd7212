package advisor

import "encoding/json"

// BusinessContext is the owner profile embedded into the provider prompt.
type BusinessContext struct {
	Industry              string  `json:"industry"`
	Revenue               float64 `json:"revenue"`
	ProfitMargin          float64 `json:"profitMargin"`
	Employees             int     `json:"employees"`
	OwnerCentricityScore  float64 `json:"ownerCentricityScore"`
	TopCustomerPercentage float64 `json:"topCustomerPercentage"`
}

// Recommendation is a rule-based baseline entry. The advisor treats the list as
// opaque and never reorders it.
type Recommendation struct {
	Priority  int    `json:"priority"`
	Action    string `json:"action"`
	Reasoning string `json:"reasoning"`
	Impact    string `json:"impact"`
	Timeline  string `json:"timeline"`
}

// Enhancement holds the provider-supplied fields for one recommendation.
type Enhancement struct {
	ImplementationTactics []string `json:"implementationTactics"`
	IndustryInsights      string   `json:"industryInsights"`
	PotentialObstacles    []string `json:"potentialObstacles"`
	MitigationStrategies  []string `json:"mitigationStrategies"`
	EncouragingGuidance   string   `json:"encouragingGuidance"`
}

// IsZero reports whether no enhancement field is set.
func (e Enhancement) IsZero() bool {
	return len(e.ImplementationTactics) == 0 &&
		e.IndustryInsights == "" &&
		len(e.PotentialObstacles) == 0 &&
		len(e.MitigationStrategies) == 0 &&
		e.EncouragingGuidance == ""
}

func (e Enhancement) normalized() Enhancement {
	if e.ImplementationTactics == nil {
		e.ImplementationTactics = []string{}
	}
	if e.PotentialObstacles == nil {
		e.PotentialObstacles = []string{}
	}
	if e.MitigationStrategies == nil {
		e.MitigationStrategies = []string{}
	}
	return e
}

// EnhancedRecommendation is a baseline entry plus optional provider fields.
// Enhanced is false when the entry is the untouched baseline.
type EnhancedRecommendation struct {
	Recommendation
	Enhancement
	Enhanced bool `json:"enhanced"`
}

// MarshalJSON emits only the baseline fields for unenhanced entries, so a
// fallback response is byte-identical to the baseline list.
func (r EnhancedRecommendation) MarshalJSON() ([]byte, error) {
	if !r.Enhanced {
		return json.Marshal(r.Recommendation)
	}
	type wire struct {
		Recommendation
		Enhancement
		Enhanced bool `json:"enhanced"`
	}
	return json.Marshal(wire{
		Recommendation: r.Recommendation,
		Enhancement:    r.Enhancement.normalized(),
		Enhanced:       true,
	})
}

// Baseline wraps recommendations without enhancement.
func Baseline(recs []Recommendation) []EnhancedRecommendation {
	out := make([]EnhancedRecommendation, len(recs))
	for i, rec := range recs {
		out[i] = EnhancedRecommendation{Recommendation: rec}
	}
	return out
}

// Merge attaches enhancements positionally. Entries beyond len(enhancements) get
// empty defaults; every entry is flagged enhanced because the provider call
// succeeded as a whole.
func Merge(baseline []Recommendation, enhancements []Enhancement) []EnhancedRecommendation {
	out := make([]EnhancedRecommendation, len(baseline))
	for i, rec := range baseline {
		var enh Enhancement
		if i < len(enhancements) {
			enh = enhancements[i]
		}
		out[i] = EnhancedRecommendation{
			Recommendation: rec,
			Enhancement:    enh.normalized(),
			Enhanced:       true,
		}
	}
	return out
}

// Recommendations strips enhancement fields.
func Recommendations(recs []EnhancedRecommendation) []Recommendation {
	out := make([]Recommendation, len(recs))
	for i, rec := range recs {
		out[i] = rec.Recommendation
	}
	return out
}
