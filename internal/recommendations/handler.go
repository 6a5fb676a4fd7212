package recommendations

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"exitplan-backend/internal/planning"
	"exitplan-backend/internal/shared/metrics"
	"exitplan-backend/internal/shared/server/respond"
)

const maxBodySize = 1 << 20 // 1MB

// EnhancePath is the enhance-only route, rate limited separately.
const EnhancePath = "/recommendations/enhance"

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches recommendation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/recommendations", h.recommend)
	rg.POST(EnhancePath, h.enhance)
}

func (h *Handler) recommend(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)

	var profile planning.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		respond.BadBody(c, err)
		return
	}

	report, result := h.Svc.Recommend(c.Request.Context(), profile)
	c.Set("enhanceOutcome", result.Outcome)
	respond.OK(c, recommendResponse{
		Report:          report,
		Recommendations: result.Recommendations,
		Enhanced:        result.Outcome == metrics.OutcomeEnhanced,
	})
}

func (h *Handler) enhance(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)

	var req enhanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadBody(c, err)
		return
	}

	result := h.Svc.Enhance(c.Request.Context(), req.BusinessContext, req.Recommendations)
	c.Set("enhanceOutcome", result.Outcome)
	respond.OK(c, enhanceResponse{
		Recommendations: result.Recommendations,
		Enhanced:        result.Outcome == metrics.OutcomeEnhanced,
	})
}
