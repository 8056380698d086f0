package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/udyogerp/backend/internal/domain/gst"
	"github.com/udyogerp/backend/internal/domain/shared"
	"github.com/udyogerp/backend/internal/infrastructure/persistence/models"
)

// GormTaxDocumentRepository implements gst.TaxDocumentRepository using GORM
type GormTaxDocumentRepository struct {
	db *gorm.DB
}

// NewGormTaxDocumentRepository creates a new GormTaxDocumentRepository
func NewGormTaxDocumentRepository(db *gorm.DB) *GormTaxDocumentRepository {
	return &GormTaxDocumentRepository{db: db}
}

// Save creates or updates a tax document. Updates use the version column
// for optimistic locking.
func (r *GormTaxDocumentRepository) Save(ctx context.Context, doc *gst.TaxDocument) error {
	model := models.TaxDocumentModelFromDomain(doc)

	if doc.Version <= 1 {
		if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
			return err
		}
		return nil
	}

	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", doc.ID, doc.Version-1).
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByIDForTenant finds a tax document by ID for a specific tenant
func (r *GormTaxDocumentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*gst.TaxDocument, error) {
	var model models.TaxDocumentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByDocumentNumber finds a tax document by document number for a tenant
func (r *GormTaxDocumentRepository) FindByDocumentNumber(ctx context.Context, tenantID uuid.UUID, documentNumber string) (*gst.TaxDocument, error) {
	var model models.TaxDocumentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND document_number = ?", tenantID, documentNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPeriod finds the tenant's documents issued within [from, to]
func (r *GormTaxDocumentRepository) FindByPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*gst.TaxDocument, error) {
	var docModels []models.TaxDocumentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND issued_at >= ? AND issued_at <= ?", tenantID, from, to).
		Order("issued_at ASC, document_number ASC").
		Find(&docModels).Error; err != nil {
		return nil, err
	}

	docs := make([]*gst.TaxDocument, len(docModels))
	for i := range docModels {
		docs[i] = docModels[i].ToDomain()
	}
	return docs, nil
}

// List returns the tenant's documents with pagination and the total count
func (r *GormTaxDocumentRepository) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*gst.TaxDocument, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.TaxDocumentModel{}).
		Where("tenant_id = ?", tenantID)

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if from, ok := filter.Filters["issued_from"]; ok {
		query = query.Where("issued_at >= ?", from)
	}
	if to, ok := filter.Filters["issued_to"]; ok {
		query = query.Where("issued_at <= ?", to)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := "issued_at"
	if filter.OrderBy != "" {
		orderBy = filter.OrderBy
	}
	if !isAllowedSortColumn(orderBy) {
		return nil, 0, shared.NewDomainError("INVALID_SORT", fmt.Sprintf("Cannot sort by %q", orderBy))
	}
	direction := "DESC"
	if filter.OrderDir == "asc" {
		direction = "ASC"
	}

	var docModels []models.TaxDocumentModel
	if err := query.
		Order(fmt.Sprintf("%s %s", orderBy, direction)).
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&docModels).Error; err != nil {
		return nil, 0, err
	}

	docs := make([]*gst.TaxDocument, len(docModels))
	for i := range docModels {
		docs[i] = docModels[i].ToDomain()
	}
	return docs, total, nil
}

// isAllowedSortColumn guards Order() against injection through filter input
func isAllowedSortColumn(column string) bool {
	switch column {
	case "issued_at", "document_number", "after_tax_amount", "created_at", "status":
		return true
	}
	return false
}
