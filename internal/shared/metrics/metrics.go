// Package metrics provides Prometheus instrumentation for the API.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Enhancement outcomes.
const (
	OutcomeDisabled = "disabled"
	OutcomeEnhanced = "enhanced"
	OutcomeFallback = "fallback"
)

var (
	// EnhanceTotal counts enhance calls by outcome.
	EnhanceTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_enhance_total",
			Help: "Recommendation enhance calls by outcome.",
		},
		[]string{"outcome"},
	)

	// EnhanceFailuresTotal counts fallbacks by failure kind.
	EnhanceFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_enhance_failures_total",
			Help: "Enhance calls that fell back to the baseline, by failure kind.",
		},
		[]string{"kind"},
	)

	// ProviderLatency tracks provider round trips in seconds.
	ProviderLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "advisor_provider_latency_seconds",
			Help:    "Advisor provider call latency in seconds.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"provider"},
	)

	// HTTPRequestsTotal counts served requests.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	// PanicsTotal counts handler panics caught by the recovery middleware.
	PanicsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_panics_total",
			Help: "Recovered handler panics by route.",
		},
		[]string{"route"},
	)
)

// RecordEnhance records one enhance outcome.
func RecordEnhance(outcome string) {
	EnhanceTotal.WithLabelValues(outcome).Inc()
}

// RecordFailure records one fallback with its failure kind.
func RecordFailure(kind string) {
	EnhanceTotal.WithLabelValues(OutcomeFallback).Inc()
	EnhanceFailuresTotal.WithLabelValues(kind).Inc()
}

// RecordPanic records one recovered panic.
func RecordPanic(route string) {
	PanicsTotal.WithLabelValues(route).Inc()
}

// ObserveProvider records a provider round trip.
func ObserveProvider(provider string, d time.Duration) {
	ProviderLatency.WithLabelValues(provider).Observe(d.Seconds())
}

// Middleware counts requests by matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
