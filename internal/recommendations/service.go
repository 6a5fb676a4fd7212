package recommendations

import (
	"context"

	"exitplan-backend/internal/advisor"
	"exitplan-backend/internal/planning"
	"exitplan-backend/internal/shared/metrics"
)

// Service runs the planning engine and passes its baseline through the advisor.
type Service struct {
	Settings *advisor.Settings
	Enhancer *advisor.Enhancer
}

// Result is the outcome of one enhancement pass.
type Result struct {
	Recommendations []advisor.EnhancedRecommendation
	Outcome         string
}

// Recommend analyzes the profile and enhances its baseline recommendations with
// the settings in effect when the call starts.
func (s *Service) Recommend(ctx context.Context, profile planning.Profile) (planning.Report, Result) {
	report := planning.Analyze(profile)
	return report, s.Enhance(ctx, profile.BusinessContext(), report.Recommendations)
}

// Enhance passes a caller-supplied baseline through the advisor.
func (s *Service) Enhance(ctx context.Context, business advisor.BusinessContext, baseline []advisor.Recommendation) Result {
	cfg := advisor.Disabled()
	if s.Settings != nil {
		cfg = s.Settings.Snapshot()
	}
	out := s.Enhancer.Enhance(ctx, cfg, business, baseline)
	return Result{Recommendations: out, Outcome: outcome(cfg, out)}
}

func outcome(cfg advisor.Config, out []advisor.EnhancedRecommendation) string {
	switch {
	case !cfg.Enabled:
		return metrics.OutcomeDisabled
	case len(out) == 0 || out[0].Enhanced:
		return metrics.OutcomeEnhanced
	default:
		return metrics.OutcomeFallback
	}
}
