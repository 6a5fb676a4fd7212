package planning

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	IndustryProfessionalServices = "professional-services"
	IndustryManufacturing        = "manufacturing"
	IndustryRetail               = "retail"
	IndustryTechnology           = "technology"
	IndustryGeneral              = "general"
)

//go:embed benchmarks.yaml
var benchmarksYAML []byte

// Range is a low/average/high band.
type Range struct {
	Low     float64 `yaml:"low" json:"low"`
	Average float64 `yaml:"average" json:"average"`
	High    float64 `yaml:"high" json:"high"`
}

// Benchmark holds the reference figures for one industry.
type Benchmark struct {
	Multiples         Range    `yaml:"multiples" json:"multiples"`
	ProfitMargin      Range    `yaml:"profit_margin" json:"profitMargin"`
	MarketReadiness   float64  `yaml:"market_readiness" json:"marketReadiness"`
	KeySuccessFactors []string `yaml:"key_success_factors" json:"keySuccessFactors"`
}

var benchmarks = mustLoadBenchmarks(benchmarksYAML)

func loadBenchmarks(data []byte) (map[string]Benchmark, error) {
	var out map[string]Benchmark
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse benchmarks: %w", err)
	}
	if _, ok := out[IndustryProfessionalServices]; !ok {
		return nil, fmt.Errorf("parse benchmarks: missing %s", IndustryProfessionalServices)
	}
	return out, nil
}

func mustLoadBenchmarks(data []byte) map[string]Benchmark {
	out, err := loadBenchmarks(data)
	if err != nil {
		panic(err)
	}
	return out
}

// ResolveIndustry maps free-form industry text onto a benchmark key.
func ResolveIndustry(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(s, "professional") || strings.Contains(s, "consulting") || strings.Contains(s, "accounting"):
		return IndustryProfessionalServices
	case strings.Contains(s, "manufacturing") || strings.Contains(s, "production"):
		return IndustryManufacturing
	case strings.Contains(s, "retail") || strings.Contains(s, "store"):
		return IndustryRetail
	case strings.Contains(s, "technology") || strings.Contains(s, "software"):
		return IndustryTechnology
	default:
		return IndustryGeneral
	}
}

// BenchmarkFor returns the benchmark for an industry key. General businesses
// are valued against professional services.
func BenchmarkFor(industry string) Benchmark {
	if b, ok := benchmarks[industry]; ok {
		return b
	}
	return benchmarks[IndustryProfessionalServices]
}
