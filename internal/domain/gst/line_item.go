package gst

import (
	"github.com/shopspring/decimal"

	"github.com/udyogerp/backend/internal/domain/shared"
)

// LineItem is a single taxable line of a document as supplied by the caller
type LineItem struct {
	Quantity        decimal.Decimal `json:"quantity"`
	UnitRate        decimal.Decimal `json:"unit_rate"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	TaxRatePercent  decimal.Decimal `json:"tax_rate_percent"`
	HSNCode         string          `json:"hsn_code"`
	Description     string          `json:"description"`
}

// Validate checks the line item inputs
func (i LineItem) Validate() error {
	if i.Quantity.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Quantity cannot be negative")
	}
	if i.UnitRate.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Unit rate cannot be negative")
	}
	if i.DiscountPercent.IsNegative() || i.DiscountPercent.GreaterThan(hundred) {
		return shared.NewDomainError("INVALID_INPUT", "Discount percent must be between 0 and 100")
	}
	if i.TaxRatePercent.IsNegative() || i.TaxRatePercent.GreaterThan(hundred) {
		return shared.NewDomainError("INVALID_INPUT", "Tax rate percent must be between 0 and 100")
	}
	return nil
}

// ResolvedLineItem is a line item with its tax computation applied.
// It is immutable once produced; downstream aggregation never mutates it.
// Monetary fields are rounded to two decimals at construction, which is
// their finalization point.
type ResolvedLineItem struct {
	LineItem
	LineTotal      decimal.Decimal `json:"line_total"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxableAmount  decimal.Decimal `json:"taxable_amount"`
	Breakup        TaxBreakup      `json:"breakup"`
	AfterTaxAmount decimal.Decimal `json:"after_tax_amount"`
}

// ResolveLineItem applies the tax computation to a single line item.
//
//	lineTotal = quantity * unitRate
//	discount  = lineTotal * discountPercent / 100
//	taxable   = lineTotal - discount
//	afterTax  = taxable + breakup.Total
//
// The supply state and place of supply are document-level attributes passed
// through to the breakup; they are not stored on the line.
func ResolveLineItem(item LineItem, supplyState, placeOfSupply StateCode) (*ResolvedLineItem, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}

	lineTotal := item.Quantity.Mul(item.UnitRate)
	discount := lineTotal.Mul(item.DiscountPercent).Div(hundred)
	taxable := lineTotal.Sub(discount)

	breakup, err := CalculateBreakup(taxable, item.TaxRatePercent, supplyState, placeOfSupply)
	if err != nil {
		return nil, err
	}

	return &ResolvedLineItem{
		LineItem:       item,
		LineTotal:      lineTotal.Round(2),
		DiscountAmount: discount.Round(2),
		TaxableAmount:  taxable.Round(2),
		Breakup:        breakup,
		AfterTaxAmount: taxable.Add(breakup.Total).Round(2),
	}, nil
}
