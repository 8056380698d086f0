package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/udyogerp/backend/internal/application/tax"
	"github.com/udyogerp/backend/internal/interfaces/http/dto"
)

// ComplianceHandler handles compliance reporting endpoints
type ComplianceHandler struct {
	BaseHandler
	service *tax.ComplianceService
}

// NewComplianceHandler creates a new ComplianceHandler
func NewComplianceHandler(service *tax.ComplianceService) *ComplianceHandler {
	return &ComplianceHandler{service: service}
}

// RegisterRoutes registers the compliance routes
func (h *ComplianceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("/tax")
	{
		grp.GET("/compliance/summary", h.PeriodSummary)
		grp.GET("/gstin/:gstin", h.ValidateGSTIN)
	}
}

// PeriodSummary handles GET /api/v1/tax/compliance/summary
func (h *ComplianceHandler) PeriodSummary(c *gin.Context) {
	var req tax.PeriodSummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeValidation), dto.ErrCodeValidation, err.Error())
		return
	}

	summary, err := h.service.PeriodSummary(c.Request.Context(), h.getTenantID(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, summary)
}

// ValidateGSTIN handles GET /api/v1/tax/gstin/:gstin
func (h *ComplianceHandler) ValidateGSTIN(c *gin.Context) {
	gstin := c.Param("gstin")
	if gstin == "" {
		h.BadRequest(c, "GSTIN is required")
		return
	}
	h.Success(c, h.service.ValidateGSTIN(gstin))
}
