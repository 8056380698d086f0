package tax

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/udyogerp/backend/internal/domain/gst"
	"github.com/udyogerp/backend/internal/domain/shared"
)

// DocumentService provides application-level tax document operations
type DocumentService struct {
	repo  gst.TaxDocumentRepository
	cache SummaryCache
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(repo gst.TaxDocumentRepository, cache SummaryCache) *DocumentService {
	return &DocumentService{
		repo:  repo,
		cache: cache,
	}
}

// LineItemRequest represents one document line in API requests
type LineItemRequest struct {
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	UnitRate        decimal.Decimal `json:"unit_rate" binding:"required"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	TaxRatePercent  decimal.Decimal `json:"tax_rate_percent"`
	HSNCode         string          `json:"hsn_code"`
	Description     string          `json:"description"`
}

// PreviewDocumentRequest represents a tax computation request that records nothing
type PreviewDocumentRequest struct {
	Lines                   []LineItemRequest `json:"lines" binding:"required,min=1"`
	DocumentDiscountPercent decimal.Decimal   `json:"document_discount_percent"`
	SupplyState             string            `json:"supply_state" binding:"required,len=2"`
	PlaceOfSupply           string            `json:"place_of_supply" binding:"required,len=2"`
}

// CreateDocumentRequest represents a request to compute and record a tax document
type CreateDocumentRequest struct {
	DocumentNumber          string            `json:"document_number" binding:"required"`
	CounterpartyID          uuid.UUID         `json:"counterparty_id" binding:"required"`
	CounterpartyName        string            `json:"counterparty_name" binding:"required"`
	CounterpartyGSTIN       string            `json:"counterparty_gstin"`
	Lines                   []LineItemRequest `json:"lines" binding:"required,min=1"`
	DocumentDiscountPercent decimal.Decimal   `json:"document_discount_percent"`
	SupplyState             string            `json:"supply_state" binding:"required,len=2"`
	PlaceOfSupply           string            `json:"place_of_supply" binding:"required,len=2"`
	IssuedAt                time.Time         `json:"issued_at" binding:"required"`
}

// VoidDocumentRequest represents a request to void a recorded document
type VoidDocumentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// DocumentListFilter defines filtering options for document list queries
type DocumentListFilter struct {
	Status   string    `form:"status"`
	From     time.Time `form:"from" time_format:"2006-01-02"`
	To       time.Time `form:"to" time_format:"2006-01-02"`
	Page     int       `form:"page"`
	PageSize int       `form:"page_size"`
}

// DocumentResponse represents a recorded tax document in API responses
type DocumentResponse struct {
	ID                      uuid.UUID             `json:"id"`
	TenantID                uuid.UUID             `json:"tenant_id"`
	DocumentNumber          string                `json:"document_number"`
	CounterpartyID          uuid.UUID             `json:"counterparty_id"`
	CounterpartyName        string                `json:"counterparty_name"`
	CounterpartyGSTIN       string                `json:"counterparty_gstin"`
	GSTINValid              bool                  `json:"gstin_valid"`
	SupplyState             string                `json:"supply_state"`
	PlaceOfSupply           string                `json:"place_of_supply"`
	DocumentDiscountPercent decimal.Decimal       `json:"document_discount_percent"`
	IssuedAt                time.Time             `json:"issued_at"`
	Status                  string                `json:"status"`
	VoidReason              string                `json:"void_reason,omitempty"`
	VoidedAt                *time.Time            `json:"voided_at,omitempty"`
	Result                  gst.DocumentTaxResult `json:"result"`
	CreatedAt               time.Time             `json:"created_at"`
	UpdatedAt               time.Time             `json:"updated_at"`
	Version                 int                   `json:"version"`
}

func toDocumentInput(lines []LineItemRequest, docDiscount decimal.Decimal, supplyState, placeOfSupply string) gst.DocumentInput {
	items := make([]gst.LineItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, gst.LineItem{
			Quantity:        l.Quantity,
			UnitRate:        l.UnitRate,
			DiscountPercent: l.DiscountPercent,
			TaxRatePercent:  l.TaxRatePercent,
			HSNCode:         l.HSNCode,
			Description:     l.Description,
		})
	}
	return gst.DocumentInput{
		Lines:                   items,
		DocumentDiscountPercent: docDiscount,
		SupplyState:             gst.StateCode(supplyState),
		PlaceOfSupply:           gst.StateCode(placeOfSupply),
	}
}

func toDocumentResponse(doc *gst.TaxDocument) *DocumentResponse {
	return &DocumentResponse{
		ID:                      doc.ID,
		TenantID:                doc.TenantID,
		DocumentNumber:          doc.DocumentNumber,
		CounterpartyID:          doc.CounterpartyID,
		CounterpartyName:        doc.CounterpartyName,
		CounterpartyGSTIN:       doc.CounterpartyGSTIN,
		GSTINValid:              doc.HasValidGSTIN(),
		SupplyState:             doc.SupplyState.String(),
		PlaceOfSupply:           doc.PlaceOfSupply.String(),
		DocumentDiscountPercent: doc.DocumentDiscountPercent,
		IssuedAt:                doc.IssuedAt,
		Status:                  doc.Status.String(),
		VoidReason:              doc.VoidReason,
		VoidedAt:                doc.VoidedAt,
		Result:                  doc.Result,
		CreatedAt:               doc.CreatedAt,
		UpdatedAt:               doc.UpdatedAt,
		Version:                 doc.Version,
	}
}

// Preview computes the tax for a document without recording anything
func (s *DocumentService) Preview(ctx context.Context, req PreviewDocumentRequest) (*gst.DocumentTaxResult, error) {
	input := toDocumentInput(req.Lines, req.DocumentDiscountPercent, req.SupplyState, req.PlaceOfSupply)
	return gst.ComputeDocumentTax(input)
}

// Create computes and records a tax document
func (s *DocumentService) Create(ctx context.Context, tenantID uuid.UUID, req CreateDocumentRequest) (*DocumentResponse, error) {
	existing, err := s.repo.FindByDocumentNumber(ctx, tenantID, req.DocumentNumber)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_DOCUMENT_NUMBER", "Document number already exists")
	}

	input := toDocumentInput(req.Lines, req.DocumentDiscountPercent, req.SupplyState, req.PlaceOfSupply)
	doc, err := gst.NewTaxDocument(
		tenantID,
		req.DocumentNumber,
		req.CounterpartyID,
		req.CounterpartyName,
		req.CounterpartyGSTIN,
		input,
		req.IssuedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, err
	}

	// A new document changes any summary covering its period.
	s.invalidateSummaries(ctx, tenantID)

	return toDocumentResponse(doc), nil
}

// GetByID returns a single document of the tenant
func (s *DocumentService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*DocumentResponse, error) {
	doc, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toDocumentResponse(doc), nil
}

// List returns the tenant's documents with pagination
func (s *DocumentService) List(ctx context.Context, tenantID uuid.UUID, filter DocumentListFilter) ([]*DocumentResponse, int64, error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		if !gst.DocumentStatus(filter.Status).IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", "Unknown document status")
		}
		f.Filters["status"] = filter.Status
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		return nil, 0, shared.NewDomainError("INVALID_PERIOD", "Period end must not be before period start")
	}
	if !filter.From.IsZero() {
		f.Filters["issued_from"] = filter.From
	}
	if !filter.To.IsZero() {
		f.Filters["issued_to"] = filter.To
	}

	docs, total, err := s.repo.List(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		responses = append(responses, toDocumentResponse(doc))
	}
	return responses, total, nil
}

// Void voids a recorded document
func (s *DocumentService) Void(ctx context.Context, tenantID, id uuid.UUID, req VoidDocumentRequest) (*DocumentResponse, error) {
	doc, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := doc.Void(req.Reason); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, err
	}

	s.invalidateSummaries(ctx, tenantID)

	return toDocumentResponse(doc), nil
}

func (s *DocumentService) invalidateSummaries(ctx context.Context, tenantID uuid.UUID) {
	if s.cache == nil {
		return
	}
	// Cache invalidation is best effort; a stale summary expires via TTL.
	_ = s.cache.InvalidateTenant(ctx, tenantID)
}
