package gst

import (
	"github.com/shopspring/decimal"

	"github.com/udyogerp/backend/internal/domain/shared"
)

// DocumentInput is the tax computation request for one document.
// A document has a single place of supply; every line is resolved
// against the same supply state and place of supply.
type DocumentInput struct {
	Lines                   []LineItem      `json:"lines"`
	DocumentDiscountPercent decimal.Decimal `json:"document_discount_percent"`
	SupplyState             StateCode       `json:"supply_state"`
	PlaceOfSupply           StateCode       `json:"place_of_supply"`
}

// Validate checks the document-level inputs
func (d DocumentInput) Validate() error {
	if d.DocumentDiscountPercent.IsNegative() || d.DocumentDiscountPercent.GreaterThan(hundred) {
		return shared.NewDomainError("INVALID_INPUT", "Document discount percent must be between 0 and 100")
	}
	if d.SupplyState == "" || d.PlaceOfSupply == "" {
		return shared.NewDomainError("INVALID_INPUT", "Supply state and place of supply are required")
	}
	return nil
}

// DocumentTaxResult is the finalized tax computation for one document.
// All monetary fields are rounded to two decimals; intermediate sums are
// carried at full precision and rounded only here.
type DocumentTaxResult struct {
	BeforeTaxAmount decimal.Decimal    `json:"before_tax_amount"`
	TotalDiscount   decimal.Decimal    `json:"total_discount"`
	TaxableAmount   decimal.Decimal    `json:"taxable_amount"`
	CGST            decimal.Decimal    `json:"cgst"`
	SGST            decimal.Decimal    `json:"sgst"`
	IGST            decimal.Decimal    `json:"igst"`
	TotalTax        decimal.Decimal    `json:"total_tax"`
	AfterTaxAmount  decimal.Decimal    `json:"after_tax_amount"`
	GrandTotal      decimal.Decimal    `json:"grand_total"`
	Interstate      bool               `json:"interstate"`
	Lines           []ResolvedLineItem `json:"lines"`
}

// ComputeDocumentTax resolves every line of a document and aggregates the
// document totals.
//
// The document-level discount is applied once at the aggregate level, on top
// of the already line-discounted total; it does not feed back into the
// per-line taxable amounts. The CGST/SGST/IGST totals are therefore the
// plain sums of the per-line breakups and are NOT reduced by the document
// discount. This reproduces the totals of historically filed documents and
// must not be changed without sign-off from whoever owns the filings.
//
// A failing line aborts the whole computation; no partial result is
// produced, since an incomplete tax total is worse than none.
func ComputeDocumentTax(input DocumentInput) (*DocumentTaxResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	resolved := make([]ResolvedLineItem, 0, len(input.Lines))
	beforeTax := decimal.Zero
	lineDiscounts := decimal.Zero
	taxTotals := ZeroBreakup()

	for _, line := range input.Lines {
		r, err := ResolveLineItem(line, input.SupplyState, input.PlaceOfSupply)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, *r)
		beforeTax = beforeTax.Add(r.LineTotal)
		lineDiscounts = lineDiscounts.Add(r.DiscountAmount)
		taxTotals = taxTotals.Add(r.Breakup)
	}

	// Document discount applies to the line-discounted subtotal, additively
	// to the per-line discounts.
	netOfLineDiscounts := beforeTax.Sub(lineDiscounts)
	documentDiscount := netOfLineDiscounts.Mul(input.DocumentDiscountPercent).Div(hundred)
	totalDiscount := lineDiscounts.Add(documentDiscount)
	taxable := beforeTax.Sub(totalDiscount)

	// Finalize: round the aggregates, then derive the totals from the
	// rounded values so that grand_total == round(taxable + tax) holds
	// exactly for any consumer reconciling the exposed fields.
	taxableFinal := taxable.Round(2)
	totalTax := taxTotals.CGST.Add(taxTotals.SGST).Add(taxTotals.IGST).Round(2)
	afterTax := taxableFinal.Add(totalTax)

	return &DocumentTaxResult{
		BeforeTaxAmount: beforeTax.Round(2),
		TotalDiscount:   totalDiscount.Round(2),
		TaxableAmount:   taxableFinal,
		CGST:            taxTotals.CGST,
		SGST:            taxTotals.SGST,
		IGST:            taxTotals.IGST,
		TotalTax:        totalTax,
		AfterTaxAmount:  afterTax.Round(2),
		GrandTotal:      afterTax.Round(2),
		Interstate:      input.SupplyState != input.PlaceOfSupply,
		Lines:           resolved,
	}, nil
}
