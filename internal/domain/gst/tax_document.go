package gst

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/udyogerp/backend/internal/domain/shared"
)

// DocumentStatus represents the status of a recorded tax document
type DocumentStatus string

const (
	DocumentStatusRecorded DocumentStatus = "RECORDED"
	DocumentStatusVoided   DocumentStatus = "VOIDED"
)

// IsValid checks if the status is a valid DocumentStatus
func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocumentStatusRecorded, DocumentStatusVoided:
		return true
	}
	return false
}

// String returns the string representation of DocumentStatus
func (s DocumentStatus) String() string {
	return string(s)
}

// TaxDocument is the aggregate root for a computed and recorded tax
// document. The tax figures are computed once at creation and never
// recomputed; a mistaken document is voided, not edited, so that
// previously filed totals stay reproducible.
type TaxDocument struct {
	shared.TenantAggregateRoot
	DocumentNumber          string
	CounterpartyID          uuid.UUID
	CounterpartyName        string
	CounterpartyGSTIN       string
	SupplyState             StateCode
	PlaceOfSupply           StateCode
	DocumentDiscountPercent decimal.Decimal
	IssuedAt                time.Time
	Status                  DocumentStatus
	VoidReason              string
	VoidedAt                *time.Time
	Result                  DocumentTaxResult
}

// NewTaxDocument computes the tax for the given input and records it as a
// new document. The counterparty GSTIN is stored as supplied, even when it
// fails the format check; invalid identifiers are a data-quality condition
// surfaced at filing time, not a reason to reject the document.
func NewTaxDocument(
	tenantID uuid.UUID,
	documentNumber string,
	counterpartyID uuid.UUID,
	counterpartyName, counterpartyGSTIN string,
	input DocumentInput,
	issuedAt time.Time,
) (*TaxDocument, error) {
	if documentNumber == "" {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_NUMBER", "Document number cannot be empty")
	}
	if len(documentNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_NUMBER", "Document number cannot exceed 50 characters")
	}
	if counterpartyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COUNTERPARTY", "Counterparty ID cannot be empty")
	}
	if counterpartyName == "" {
		return nil, shared.NewDomainError("INVALID_COUNTERPARTY_NAME", "Counterparty name cannot be empty")
	}
	if issuedAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_ISSUE_DATE", "Issue date is required")
	}

	result, err := ComputeDocumentTax(input)
	if err != nil {
		return nil, err
	}

	return &TaxDocument{
		TenantAggregateRoot:     shared.NewTenantAggregateRoot(tenantID),
		DocumentNumber:          documentNumber,
		CounterpartyID:          counterpartyID,
		CounterpartyName:        counterpartyName,
		CounterpartyGSTIN:       counterpartyGSTIN,
		SupplyState:             input.SupplyState,
		PlaceOfSupply:           input.PlaceOfSupply,
		DocumentDiscountPercent: input.DocumentDiscountPercent,
		IssuedAt:                issuedAt,
		Status:                  DocumentStatusRecorded,
		Result:                  *result,
	}, nil
}

// Void marks the document as voided. Voided documents are excluded from
// compliance aggregation but kept for audit.
func (d *TaxDocument) Void(reason string) error {
	if d.Status != DocumentStatusRecorded {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot void document in %s status", d.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Void reason is required")
	}

	now := time.Now()
	d.Status = DocumentStatusVoided
	d.VoidReason = reason
	d.VoidedAt = &now
	d.UpdatedAt = now
	d.IncrementVersion()

	return nil
}

// IsVoided returns true if the document has been voided
func (d *TaxDocument) IsVoided() bool {
	return d.Status == DocumentStatusVoided
}

// HasValidGSTIN returns true if the stored counterparty GSTIN passes the
// format check
func (d *TaxDocument) HasValidGSTIN() bool {
	return IsValidGSTIN(d.CounterpartyGSTIN)
}

// ToFilingDocument projects the document into the shape consumed by
// compliance aggregation
func (d *TaxDocument) ToFilingDocument() FilingDocument {
	return FilingDocument{
		DocumentID:        d.ID,
		DocumentNumber:    d.DocumentNumber,
		CounterpartyName:  d.CounterpartyName,
		CounterpartyGSTIN: d.CounterpartyGSTIN,
		TaxableAmount:     d.Result.TaxableAmount,
		TotalTax:          d.Result.TotalTax,
		AfterTaxAmount:    d.Result.AfterTaxAmount,
		Lines:             d.Result.Lines,
	}
}
