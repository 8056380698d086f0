package tax

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/udyogerp/backend/internal/domain/gst"
	"github.com/udyogerp/backend/internal/domain/shared"
)

// SummaryCache caches serialized compliance summaries per tenant and period
type SummaryCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	InvalidateTenant(ctx context.Context, tenantID uuid.UUID) error
}

// ComplianceService builds filing-period compliance summaries
type ComplianceService struct {
	repo      gst.TaxDocumentRepository
	cache     SummaryCache
	threshold decimal.Decimal
	logger    *zap.Logger
}

// NewComplianceService creates a new ComplianceService.
// A non-positive threshold falls back to the default reporting threshold.
func NewComplianceService(repo gst.TaxDocumentRepository, cache SummaryCache, threshold decimal.Decimal, log *zap.Logger) *ComplianceService {
	if !threshold.IsPositive() {
		threshold = decimal.NewFromInt(gst.DefaultReportingThreshold)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ComplianceService{
		repo:      repo,
		cache:     cache,
		threshold: threshold,
		logger:    log,
	}
}

// PeriodSummaryRequest defines the filing period to summarize
type PeriodSummaryRequest struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
}

// PeriodSummaryResponse wraps the summary with the period it covers
type PeriodSummaryResponse struct {
	From      time.Time             `json:"from"`
	To        time.Time             `json:"to"`
	Threshold decimal.Decimal       `json:"threshold"`
	Summary   gst.ComplianceSummary `json:"summary"`
}

func summaryCacheKey(tenantID uuid.UUID, from, to time.Time) string {
	return fmt.Sprintf("compliance:summary:%s:%s:%s",
		tenantID, from.Format("2006-01-02"), to.Format("2006-01-02"))
}

// PeriodSummary aggregates the tenant's recorded documents over the period.
// Voided documents are excluded. The result is cached per tenant and period;
// recording or voiding a document invalidates the tenant's cached summaries.
func (s *ComplianceService) PeriodSummary(ctx context.Context, tenantID uuid.UUID, req PeriodSummaryRequest) (*PeriodSummaryResponse, error) {
	if req.To.Before(req.From) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period end must not be before period start")
	}

	key := summaryCacheKey(tenantID, req.From, req.To)
	if s.cache != nil {
		if raw, ok, err := s.cache.Get(ctx, key); err == nil && ok {
			var cached PeriodSummaryResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
			s.logger.Warn("discarding unreadable cached summary", zap.String("key", key))
		}
	}

	docs, err := s.repo.FindByPeriod(ctx, tenantID, req.From, req.To)
	if err != nil {
		return nil, err
	}

	filing := make([]gst.FilingDocument, 0, len(docs))
	for _, doc := range docs {
		if doc.IsVoided() {
			continue
		}
		filing = append(filing, doc.ToFilingDocument())
	}

	response := &PeriodSummaryResponse{
		From:      req.From,
		To:        req.To,
		Threshold: s.threshold,
		Summary:   gst.AggregateCompliance(filing, s.threshold),
	}

	if s.cache != nil {
		if raw, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, key, raw); err != nil {
				s.logger.Warn("failed to cache compliance summary", zap.Error(err))
			}
		}
	}

	return response, nil
}

// ValidateGSTIN checks an identifier against the GSTIN grammar and resolves
// its state
func (s *ComplianceService) ValidateGSTIN(gstin string) GSTINValidationResponse {
	valid := gst.IsValidGSTIN(gstin)
	resp := GSTINValidationResponse{
		GSTIN: gstin,
		Valid: valid,
	}
	if valid {
		code := gst.GSTINStateCode(gstin)
		resp.StateCode = code.String()
		resp.StateName = code.Name()
	}
	return resp
}

// GSTINValidationResponse is the result of a GSTIN format check
type GSTINValidationResponse struct {
	GSTIN     string `json:"gstin"`
	Valid     bool   `json:"valid"`
	StateCode string `json:"state_code,omitempty"`
	StateName string `json:"state_name,omitempty"`
}
