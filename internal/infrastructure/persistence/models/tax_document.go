package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/udyogerp/backend/internal/domain/gst"
)

// ResolvedLines stores a document's resolved line items as JSONB.
// The lines are a computed snapshot, not independently editable rows,
// so they live with the document instead of a child table.
type ResolvedLines []gst.ResolvedLineItem

// Value implements driver.Valuer for GORM to write to JSONB
func (l ResolvedLines) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for GORM to read from JSONB
func (l *ResolvedLines) Scan(value interface{}) error {
	if value == nil {
		*l = ResolvedLines{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ResolvedLines", value)
	}
	return json.Unmarshal(raw, l)
}

// TaxDocumentModel is the persistence model for the TaxDocument aggregate root.
type TaxDocumentModel struct {
	TenantAggregateModel
	DocumentNumber          string             `gorm:"type:varchar(50);not null;uniqueIndex:idx_tax_doc_tenant_number,priority:2"`
	CounterpartyID          uuid.UUID          `gorm:"type:uuid;not null;index"`
	CounterpartyName        string             `gorm:"type:varchar(200);not null"`
	CounterpartyGSTIN       string             `gorm:"type:varchar(15);index"`
	SupplyState             string             `gorm:"type:varchar(2);not null"`
	PlaceOfSupply           string             `gorm:"type:varchar(2);not null"`
	DocumentDiscountPercent decimal.Decimal    `gorm:"type:decimal(8,4);not null"`
	IssuedAt                time.Time          `gorm:"not null;index"`
	Status                  gst.DocumentStatus `gorm:"type:varchar(20);not null;default:'RECORDED';index"`
	VoidReason              string             `gorm:"type:varchar(500)"`
	VoidedAt                *time.Time
	BeforeTaxAmount         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalDiscount           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TaxableAmount           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CGST                    decimal.Decimal `gorm:"column:cgst;type:decimal(18,4);not null"`
	SGST                    decimal.Decimal `gorm:"column:sgst;type:decimal(18,4);not null"`
	IGST                    decimal.Decimal `gorm:"column:igst;type:decimal(18,4);not null"`
	TotalTax                decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AfterTaxAmount          decimal.Decimal `gorm:"type:decimal(18,4);not null;index"`
	GrandTotal              decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Interstate              bool            `gorm:"not null;default:false"`
	Lines                   ResolvedLines   `gorm:"type:jsonb;default:'[]'"`
}

// TableName returns the table name for GORM
func (TaxDocumentModel) TableName() string {
	return "tax_documents"
}

// ToDomain converts the persistence model to a domain TaxDocument
func (m *TaxDocumentModel) ToDomain() *gst.TaxDocument {
	return &gst.TaxDocument{
		TenantAggregateRoot:     m.ToDomainTenantAggregateRoot(),
		DocumentNumber:          m.DocumentNumber,
		CounterpartyID:          m.CounterpartyID,
		CounterpartyName:        m.CounterpartyName,
		CounterpartyGSTIN:       m.CounterpartyGSTIN,
		SupplyState:             gst.StateCode(m.SupplyState),
		PlaceOfSupply:           gst.StateCode(m.PlaceOfSupply),
		DocumentDiscountPercent: m.DocumentDiscountPercent,
		IssuedAt:                m.IssuedAt,
		Status:                  m.Status,
		VoidReason:              m.VoidReason,
		VoidedAt:                m.VoidedAt,
		Result: gst.DocumentTaxResult{
			BeforeTaxAmount: m.BeforeTaxAmount,
			TotalDiscount:   m.TotalDiscount,
			TaxableAmount:   m.TaxableAmount,
			CGST:            m.CGST,
			SGST:            m.SGST,
			IGST:            m.IGST,
			TotalTax:        m.TotalTax,
			AfterTaxAmount:  m.AfterTaxAmount,
			GrandTotal:      m.GrandTotal,
			Interstate:      m.Interstate,
			Lines:           m.Lines,
		},
	}
}

// TaxDocumentModelFromDomain creates a persistence model from a domain TaxDocument
func TaxDocumentModelFromDomain(doc *gst.TaxDocument) *TaxDocumentModel {
	m := &TaxDocumentModel{
		DocumentNumber:          doc.DocumentNumber,
		CounterpartyID:          doc.CounterpartyID,
		CounterpartyName:        doc.CounterpartyName,
		CounterpartyGSTIN:       doc.CounterpartyGSTIN,
		SupplyState:             doc.SupplyState.String(),
		PlaceOfSupply:           doc.PlaceOfSupply.String(),
		DocumentDiscountPercent: doc.DocumentDiscountPercent,
		IssuedAt:                doc.IssuedAt,
		Status:                  doc.Status,
		VoidReason:              doc.VoidReason,
		VoidedAt:                doc.VoidedAt,
		BeforeTaxAmount:         doc.Result.BeforeTaxAmount,
		TotalDiscount:           doc.Result.TotalDiscount,
		TaxableAmount:           doc.Result.TaxableAmount,
		CGST:                    doc.Result.CGST,
		SGST:                    doc.Result.SGST,
		IGST:                    doc.Result.IGST,
		TotalTax:                doc.Result.TotalTax,
		AfterTaxAmount:          doc.Result.AfterTaxAmount,
		GrandTotal:              doc.Result.GrandTotal,
		Interstate:              doc.Result.Interstate,
		Lines:                   doc.Result.Lines,
	}
	m.FromDomainTenantAggregateRoot(doc.TenantAggregateRoot)
	return m
}
