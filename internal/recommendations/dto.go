package recommendations

import (
	"exitplan-backend/internal/advisor"
	"exitplan-backend/internal/planning"
)

type enhanceRequest struct {
	BusinessContext advisor.BusinessContext  `json:"businessContext"`
	Recommendations []advisor.Recommendation `json:"recommendations" binding:"required"`
}

type recommendResponse struct {
	Report          planning.Report                  `json:"report"`
	Recommendations []advisor.EnhancedRecommendation `json:"recommendations"`
	Enhanced        bool                             `json:"enhanced"`
}

type enhanceResponse struct {
	Recommendations []advisor.EnhancedRecommendation `json:"recommendations"`
	Enhanced        bool                             `json:"enhanced"`
}
