package gst

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultReportingThreshold is the after-tax amount at and above which a
// document with a valid counterparty GSTIN is reported in the B2B section
const DefaultReportingThreshold = 250000

// UnclassifiedHSNKey groups lines that carry no HSN code
const UnclassifiedHSNKey = "UNCLASSIFIED"

// FilingDocument is the projection of a recorded document that compliance
// aggregation consumes
type FilingDocument struct {
	DocumentID        uuid.UUID          `json:"document_id"`
	DocumentNumber    string             `json:"document_number"`
	CounterpartyName  string             `json:"counterparty_name"`
	CounterpartyGSTIN string             `json:"counterparty_gstin"`
	TaxableAmount     decimal.Decimal    `json:"taxable_amount"`
	TotalTax          decimal.Decimal    `json:"total_tax"`
	AfterTaxAmount    decimal.Decimal    `json:"after_tax_amount"`
	Lines             []ResolvedLineItem `json:"lines"`
}

// DocumentRef identifies one document contributing to a summary row
type DocumentRef struct {
	DocumentID     uuid.UUID `json:"document_id"`
	DocumentNumber string    `json:"document_number"`
}

// B2BSummaryRow aggregates the qualifying documents of one counterparty GSTIN
type B2BSummaryRow struct {
	GSTIN            string          `json:"gstin"`
	CounterpartyName string          `json:"counterparty_name"`
	StateCode        StateCode       `json:"state_code"`
	StateName        string          `json:"state_name"`
	DocumentCount    int             `json:"document_count"`
	Documents        []DocumentRef   `json:"documents"`
	TaxableAmount    decimal.Decimal `json:"taxable_amount"`
	TotalTax         decimal.Decimal `json:"total_tax"`
	AfterTaxAmount   decimal.Decimal `json:"after_tax_amount"`
}

// ResidualDocument is a document that does not qualify for the B2B section
type ResidualDocument struct {
	DocumentID     uuid.UUID       `json:"document_id"`
	DocumentNumber string          `json:"document_number"`
	GSTIN          string          `json:"gstin"`
	GSTINValid     bool            `json:"gstin_valid"`
	AfterTaxAmount decimal.Decimal `json:"after_tax_amount"`
}

// HSNSummaryRow aggregates all lines sharing one HSN code across the period
type HSNSummaryRow struct {
	HSNCode       string          `json:"hsn_code"`
	LineCount     int             `json:"line_count"`
	Quantity      decimal.Decimal `json:"quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
	IGST          decimal.Decimal `json:"igst"`
	TotalTax      decimal.Decimal `json:"total_tax"`
}

// FilingError records a document that could not be aggregated
type FilingError struct {
	DocumentID     uuid.UUID `json:"document_id"`
	DocumentNumber string    `json:"document_number"`
	Reason         string    `json:"reason"`
}

// ComplianceSummary is the filing-period report. All slices are sorted so
// that the same inputs always produce the same serialized output.
type ComplianceSummary struct {
	B2B      []B2BSummaryRow    `json:"b2b"`
	Residual []ResidualDocument `json:"residual"`
	HSN      []HSNSummaryRow    `json:"hsn"`
	Errors   []FilingError      `json:"errors"`
}

// AggregateCompliance builds the filing-period summary over a set of
// documents.
//
// A document qualifies for the B2B section when its counterparty GSTIN is
// format-valid and its after-tax amount is at or above the threshold; the
// threshold boundary itself is inclusive. Everything else lands in the
// residual section. The HSN section covers the lines of every aggregable
// document regardless of which section the document went to.
//
// Aggregation is per-document fault tolerant: a document with unusable
// figures is reported under Errors and skipped, and the rest of the period
// still aggregates. This is the one place partial results are acceptable,
// because a filing run over a month of documents must not be held hostage
// by one bad row.
func AggregateCompliance(docs []FilingDocument, threshold decimal.Decimal) ComplianceSummary {
	b2bRows := make(map[string]*B2BSummaryRow)
	hsnRows := make(map[string]*HSNSummaryRow)
	residual := make([]ResidualDocument, 0)
	errs := make([]FilingError, 0)

	for _, doc := range docs {
		if doc.TaxableAmount.IsNegative() || doc.AfterTaxAmount.IsNegative() {
			errs = append(errs, FilingError{
				DocumentID:     doc.DocumentID,
				DocumentNumber: doc.DocumentNumber,
				Reason:         "negative amounts",
			})
			continue
		}

		gstinValid := IsValidGSTIN(doc.CounterpartyGSTIN)
		if gstinValid && doc.AfterTaxAmount.GreaterThanOrEqual(threshold) {
			row, ok := b2bRows[doc.CounterpartyGSTIN]
			if !ok {
				code := GSTINStateCode(doc.CounterpartyGSTIN)
				row = &B2BSummaryRow{
					GSTIN:            doc.CounterpartyGSTIN,
					CounterpartyName: doc.CounterpartyName,
					StateCode:        code,
					StateName:        code.Name(),
					Documents:        make([]DocumentRef, 0, 1),
					TaxableAmount:    decimal.Zero,
					TotalTax:         decimal.Zero,
					AfterTaxAmount:   decimal.Zero,
				}
				b2bRows[doc.CounterpartyGSTIN] = row
			}
			row.DocumentCount++
			row.Documents = append(row.Documents, DocumentRef{
				DocumentID:     doc.DocumentID,
				DocumentNumber: doc.DocumentNumber,
			})
			row.TaxableAmount = row.TaxableAmount.Add(doc.TaxableAmount)
			row.TotalTax = row.TotalTax.Add(doc.TotalTax)
			row.AfterTaxAmount = row.AfterTaxAmount.Add(doc.AfterTaxAmount)
		} else {
			residual = append(residual, ResidualDocument{
				DocumentID:     doc.DocumentID,
				DocumentNumber: doc.DocumentNumber,
				GSTIN:          doc.CounterpartyGSTIN,
				GSTINValid:     gstinValid,
				AfterTaxAmount: doc.AfterTaxAmount,
			})
		}

		for _, line := range doc.Lines {
			key := line.HSNCode
			if key == "" {
				key = UnclassifiedHSNKey
			}
			row, ok := hsnRows[key]
			if !ok {
				row = &HSNSummaryRow{
					HSNCode:       key,
					Quantity:      decimal.Zero,
					TotalValue:    decimal.Zero,
					TaxableAmount: decimal.Zero,
					CGST:          decimal.Zero,
					SGST:          decimal.Zero,
					IGST:          decimal.Zero,
					TotalTax:      decimal.Zero,
				}
				hsnRows[key] = row
			}
			row.LineCount++
			row.Quantity = row.Quantity.Add(line.Quantity)
			row.TotalValue = row.TotalValue.Add(line.LineTotal)
			row.TaxableAmount = row.TaxableAmount.Add(line.TaxableAmount)
			row.CGST = row.CGST.Add(line.Breakup.CGST)
			row.SGST = row.SGST.Add(line.Breakup.SGST)
			row.IGST = row.IGST.Add(line.Breakup.IGST)
			row.TotalTax = row.TotalTax.Add(line.Breakup.Total)
		}
	}

	b2b := make([]B2BSummaryRow, 0, len(b2bRows))
	for _, row := range b2bRows {
		sort.Slice(row.Documents, func(i, j int) bool {
			return row.Documents[i].DocumentNumber < row.Documents[j].DocumentNumber
		})
		b2b = append(b2b, *row)
	}
	sort.Slice(b2b, func(i, j int) bool { return b2b[i].GSTIN < b2b[j].GSTIN })

	hsn := make([]HSNSummaryRow, 0, len(hsnRows))
	for _, row := range hsnRows {
		hsn = append(hsn, *row)
	}
	sort.Slice(hsn, func(i, j int) bool { return hsn[i].HSNCode < hsn[j].HSNCode })

	sort.Slice(residual, func(i, j int) bool {
		return residual[i].DocumentNumber < residual[j].DocumentNumber
	})
	sort.Slice(errs, func(i, j int) bool {
		return errs[i].DocumentNumber < errs[j].DocumentNumber
	})

	return ComplianceSummary{
		B2B:      b2b,
		Residual: residual,
		HSN:      hsn,
		Errors:   errs,
	}
}
