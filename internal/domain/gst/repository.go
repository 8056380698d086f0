package gst

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/udyogerp/backend/internal/domain/shared"
)

// TaxDocumentRepository defines the persistence operations for tax documents
type TaxDocumentRepository interface {
	Save(ctx context.Context, doc *TaxDocument) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*TaxDocument, error)
	FindByDocumentNumber(ctx context.Context, tenantID uuid.UUID, documentNumber string) (*TaxDocument, error)
	FindByPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*TaxDocument, error)
	List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*TaxDocument, int64, error)
}
