package gst

import (
	"github.com/shopspring/decimal"

	"github.com/udyogerp/backend/internal/domain/shared"
)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// TaxBreakup holds the GST components of a taxable amount.
// For an intra-state supply the tax is split equally between CGST and SGST;
// for an inter-state supply the whole amount is levied as IGST. Exactly one
// of the two forms is ever populated.
//
// CGST, SGST and Total are each rounded to two decimals independently of one
// another. When the raw tax amount carries an odd half-cent, CGST+SGST may
// differ from Total by one cent; the components are deliberately not
// reconciled, so that filed component totals reproduce historical behavior.
type TaxBreakup struct {
	CGST  decimal.Decimal `json:"cgst"`
	SGST  decimal.Decimal `json:"sgst"`
	IGST  decimal.Decimal `json:"igst"`
	Total decimal.Decimal `json:"total"`
}

// ZeroBreakup returns a breakup with all components zero
func ZeroBreakup() TaxBreakup {
	return TaxBreakup{
		CGST:  decimal.Zero,
		SGST:  decimal.Zero,
		IGST:  decimal.Zero,
		Total: decimal.Zero,
	}
}

// Add returns the component-wise sum of two breakups
func (b TaxBreakup) Add(other TaxBreakup) TaxBreakup {
	return TaxBreakup{
		CGST:  b.CGST.Add(other.CGST),
		SGST:  b.SGST.Add(other.SGST),
		IGST:  b.IGST.Add(other.IGST),
		Total: b.Total.Add(other.Total),
	}
}

// CalculateBreakup computes the GST breakup of a taxable amount.
//
// The raw tax is taxableAmount * ratePercent / 100. When the supply state
// equals the place of supply, CGST and SGST each receive half of the raw
// tax, rounded to two decimals independently; otherwise the full raw tax
// becomes IGST. Total is the raw tax rounded to two decimals.
func CalculateBreakup(taxableAmount, ratePercent decimal.Decimal, supplyState, placeOfSupply StateCode) (TaxBreakup, error) {
	if taxableAmount.IsNegative() {
		return TaxBreakup{}, shared.NewDomainError("INVALID_INPUT", "Taxable amount cannot be negative")
	}
	if ratePercent.IsNegative() {
		return TaxBreakup{}, shared.NewDomainError("INVALID_INPUT", "Tax rate cannot be negative")
	}
	if ratePercent.GreaterThan(hundred) {
		return TaxBreakup{}, shared.NewDomainError("INVALID_INPUT", "Tax rate cannot exceed 100 percent")
	}
	if supplyState == "" || placeOfSupply == "" {
		return TaxBreakup{}, shared.NewDomainError("INVALID_INPUT", "Supply state and place of supply are required")
	}

	rawTax := taxableAmount.Mul(ratePercent).Div(hundred)
	total := rawTax.Round(2)

	if supplyState == placeOfSupply {
		half := rawTax.Div(two).Round(2)
		return TaxBreakup{
			CGST:  half,
			SGST:  half,
			IGST:  decimal.Zero,
			Total: total,
		}, nil
	}

	return TaxBreakup{
		CGST:  decimal.Zero,
		SGST:  decimal.Zero,
		IGST:  total,
		Total: total,
	}, nil
}
