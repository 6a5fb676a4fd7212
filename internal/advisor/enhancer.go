package advisor

import (
	"context"
	"fmt"
	"time"

	"exitplan-backend/internal/llm"
	"exitplan-backend/internal/shared/metrics"
	"exitplan-backend/internal/shared/telemetry"
)

// Enhancer augments baseline recommendations through an optional provider. It
// holds no configuration; each call receives the snapshot to use.
type Enhancer struct {
	LLM llm.Client
}

// NewEnhancer constructs an Enhancer around a provider client.
func NewEnhancer(client llm.Client) *Enhancer {
	return &Enhancer{LLM: client}
}

// Enhance returns the baseline unchanged when cfg is disabled or when anything
// about the provider call fails, and the positionally merged list otherwise. It
// never returns an error and never panics.
func (e *Enhancer) Enhance(ctx context.Context, cfg Config, business BusinessContext, baseline []Recommendation) (out []EnhancedRecommendation) {
	if !cfg.Enabled {
		metrics.RecordEnhance(metrics.OutcomeDisabled)
		return Baseline(baseline)
	}

	defer func() {
		if rec := recover(); rec != nil {
			out = OrBaseline(nil, newFailure(KindTransport, fmt.Errorf("panic: %v", rec)), baseline, cfg)
		}
	}()

	result, err := e.TryEnhance(ctx, cfg, business, baseline)
	return OrBaseline(result, err, baseline, cfg)
}

// TryEnhance performs at most one provider call and reports failures as a
// *Failure instead of falling back.
func (e *Enhancer) TryEnhance(ctx context.Context, cfg Config, business BusinessContext, baseline []Recommendation) ([]EnhancedRecommendation, error) {
	if !cfg.Enabled {
		return Baseline(baseline), nil
	}
	if err := cfg.ready(); err != nil {
		return nil, newFailure(KindConfigIncomplete, err)
	}
	if e == nil || e.LLM == nil {
		return nil, newFailure(KindConfigIncomplete, llm.ErrNotConfigured)
	}
	if len(baseline) == 0 {
		return []EnhancedRecommendation{}, nil
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	completion, err := e.LLM.Complete(ctx, BuildRequest(cfg, business, baseline))
	metrics.ObserveProvider(cfg.Provider, time.Since(start))
	if err != nil {
		return nil, classify(err)
	}

	enhancements, err := ParseEnhancements(completion.Content)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{
		"provider":        cfg.Provider,
		"model":           cfg.Model,
		"recommendations": len(baseline),
		"enhancements":    len(enhancements),
		"duration_ms":     float64(time.Since(start).Microseconds()) / 1000.0,
	}
	if completion.Usage != nil {
		fields["total_tokens"] = completion.Usage.TotalTokens
	}
	telemetry.Info("advisor.enhance.ok", fields)
	return Merge(baseline, enhancements), nil
}

// OrBaseline is the fallback combinator: on error it logs a warning, records the
// failure kind and returns the baseline untouched.
func OrBaseline(result []EnhancedRecommendation, err error, baseline []Recommendation, cfg Config) []EnhancedRecommendation {
	if err == nil {
		metrics.RecordEnhance(metrics.OutcomeEnhanced)
		return result
	}
	kind := KindOf(err)
	if kind == "" {
		kind = KindTransport
	}
	metrics.RecordFailure(string(kind))
	telemetry.Warn("advisor.enhance.fallback", map[string]any{
		"provider": cfg.Provider,
		"model":    cfg.Model,
		"kind":     string(kind),
		"error":    err.Error(),
	})
	return Baseline(baseline)
}
