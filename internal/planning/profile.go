package planning

import "exitplan-backend/internal/advisor"

const (
	defaultRevenue              = 1_000_000
	defaultProfitMargin         = 10
	defaultOwnerCentricity      = 50
	defaultManagementLevels     = 1
	defaultProcessDocumentation = 30
	defaultContractedRevenue    = 30
	defaultPersonalReadiness    = 50
)

// Profile is the owner-supplied description of the business. Zero values mean
// "not provided" and are replaced by defaults before scoring.
type Profile struct {
	Industry                    string  `json:"industry"`
	Revenue                     float64 `json:"revenue"`
	ProfitMargin                float64 `json:"profitMargin"`
	Employees                   int     `json:"employees"`
	OwnerCentricityScore        float64 `json:"ownerCentricityScore"`
	TopCustomerPercentage       float64 `json:"topCustomerPercentage"`
	ManagementLevels            int     `json:"managementLevels"`
	ProcessDocumentation        float64 `json:"processDocumentation"`
	ContractedRevenuePercentage float64 `json:"contractedRevenuePercentage"`
	WealthGap                   float64 `json:"wealthGap"`
	PersonalReadiness           float64 `json:"personalReadiness"`
}

func (p Profile) withDefaults() Profile {
	if p.Revenue <= 0 {
		p.Revenue = defaultRevenue
	}
	if p.ProfitMargin == 0 {
		p.ProfitMargin = defaultProfitMargin
	}
	if p.OwnerCentricityScore <= 0 {
		p.OwnerCentricityScore = defaultOwnerCentricity
	}
	if p.ManagementLevels <= 0 {
		p.ManagementLevels = defaultManagementLevels
	}
	if p.ProcessDocumentation <= 0 {
		p.ProcessDocumentation = defaultProcessDocumentation
	}
	if p.ContractedRevenuePercentage <= 0 {
		p.ContractedRevenuePercentage = defaultContractedRevenue
	}
	if p.PersonalReadiness <= 0 {
		p.PersonalReadiness = defaultPersonalReadiness
	}
	return p
}

// BusinessContext is the subset of the profile passed to the advisor prompt.
// It carries the values as supplied, not the scoring defaults.
func (p Profile) BusinessContext() advisor.BusinessContext {
	return advisor.BusinessContext{
		Industry:              p.Industry,
		Revenue:               p.Revenue,
		ProfitMargin:          p.ProfitMargin,
		Employees:             p.Employees,
		OwnerCentricityScore:  p.OwnerCentricityScore,
		TopCustomerPercentage: p.TopCustomerPercentage,
	}
}
