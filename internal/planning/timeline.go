package planning

const (
	baseTimelineYears = 2
	maxTimelineYears  = 7
)

type Timeline struct {
	RecommendedYears int                  `json:"recommendedYears"`
	Adjustments      []TimelineAdjustment `json:"adjustments"`
}

type TimelineAdjustment struct {
	Factor     string `json:"factor"`
	Adjustment string `json:"adjustment"`
	Reasoning  string `json:"reasoning"`
}

// OptimalTimeline starts from a two year runway and extends it for each
// weakness that takes time to fix.
func OptimalTimeline(p Profile) Timeline {
	years := baseTimelineYears
	adjustments := make([]TimelineAdjustment, 0, 3)

	switch {
	case p.OwnerCentricityScore < 60:
		years += 2
		adjustments = append(adjustments, TimelineAdjustment{
			Factor:     "High owner dependency",
			Adjustment: "+2 years",
			Reasoning:  "Need time to develop management independence",
		})
	case p.OwnerCentricityScore < 75:
		years++
		adjustments = append(adjustments, TimelineAdjustment{
			Factor:     "Moderate owner dependency",
			Adjustment: "+1 year",
			Reasoning:  "Need time to strengthen management team",
		})
	}

	if p.ProfitMargin < 10 {
		years++
		adjustments = append(adjustments, TimelineAdjustment{
			Factor:     "Below-average profitability",
			Adjustment: "+1 year",
			Reasoning:  "Need time to improve financial performance",
		})
	}

	if p.WealthGap > 500_000 {
		years++
		adjustments = append(adjustments, TimelineAdjustment{
			Factor:     "Significant wealth gap",
			Adjustment: "+1 year",
			Reasoning:  "Need additional time to build business value",
		})
	}

	if years > maxTimelineYears {
		years = maxTimelineYears
	}
	return Timeline{RecommendedYears: years, Adjustments: adjustments}
}
