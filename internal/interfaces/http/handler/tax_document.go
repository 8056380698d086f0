package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/udyogerp/backend/internal/application/tax"
	"github.com/udyogerp/backend/internal/interfaces/http/dto"
)

// TaxDocumentHandler handles tax document endpoints
type TaxDocumentHandler struct {
	BaseHandler
	service *tax.DocumentService
}

// NewTaxDocumentHandler creates a new TaxDocumentHandler
func NewTaxDocumentHandler(service *tax.DocumentService) *TaxDocumentHandler {
	return &TaxDocumentHandler{service: service}
}

// RegisterRoutes registers the tax document routes
func (h *TaxDocumentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	docs := rg.Group("/tax/documents")
	{
		docs.POST("", h.Create)
		docs.POST("/preview", h.Preview)
		docs.GET("", h.List)
		docs.GET("/:id", h.GetByID)
		docs.POST("/:id/void", h.Void)
	}
}

// Create handles POST /api/v1/tax/documents
func (h *TaxDocumentHandler) Create(c *gin.Context) {
	var req tax.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeValidation), dto.ErrCodeValidation, err.Error())
		return
	}

	doc, err := h.service.Create(c.Request.Context(), h.getTenantID(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, doc)
}

// Preview handles POST /api/v1/tax/documents/preview
func (h *TaxDocumentHandler) Preview(c *gin.Context) {
	var req tax.PreviewDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeValidation), dto.ErrCodeValidation, err.Error())
		return
	}

	result, err := h.service.Preview(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// GetByID handles GET /api/v1/tax/documents/:id
func (h *TaxDocumentHandler) GetByID(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}
	id := uuid.MustParse(req.ID)

	doc, err := h.service.GetByID(c.Request.Context(), h.getTenantID(c), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, doc)
}

// List handles GET /api/v1/tax/documents
func (h *TaxDocumentHandler) List(c *gin.Context) {
	var filter tax.DocumentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeValidation), dto.ErrCodeValidation, err.Error())
		return
	}

	docs, total, err := h.service.List(c.Request.Context(), h.getTenantID(c), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, docs, total, page, pageSize)
}

// Void handles POST /api/v1/tax/documents/:id/void
func (h *TaxDocumentHandler) Void(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}
	id := uuid.MustParse(idReq.ID)

	var req tax.VoidDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeValidation), dto.ErrCodeValidation, err.Error())
		return
	}

	doc, err := h.service.Void(c.Request.Context(), h.getTenantID(c), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, doc)
}
