package gst

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filingDoc(number, gstin string, afterTax float64, lines ...ResolvedLineItem) FilingDocument {
	after := decimal.NewFromFloat(afterTax)
	// Keep the figures self-consistent at an 18% effective rate.
	taxable := after.Div(decimal.NewFromFloat(1.18)).Round(2)
	return FilingDocument{
		DocumentID:        uuid.New(),
		DocumentNumber:    number,
		CounterpartyName:  "Counterparty " + number,
		CounterpartyGSTIN: gstin,
		TaxableAmount:     taxable,
		TotalTax:          after.Sub(taxable),
		AfterTaxAmount:    after,
		Lines:             lines,
	}
}

func resolvedLine(t *testing.T, hsn string, quantity, unitRate int64) ResolvedLineItem {
	t.Helper()
	r, err := ResolveLineItem(LineItem{
		Quantity:       decimal.NewFromInt(quantity),
		UnitRate:       decimal.NewFromInt(unitRate),
		TaxRatePercent: decimal.NewFromInt(18),
		HSNCode:        hsn,
	}, "27", "27")
	require.NoError(t, err)
	return *r
}

func TestAggregateCompliance_B2BQualification(t *testing.T) {
	threshold := decimal.NewFromInt(DefaultReportingThreshold)

	t.Run("valid GSTIN above threshold qualifies", func(t *testing.T) {
		summary := AggregateCompliance([]FilingDocument{
			filingDoc("INV-001", "27AAAAA0000A1Z5", 300000),
		}, threshold)

		require.Len(t, summary.B2B, 1)
		assert.Empty(t, summary.Residual)
		assert.Equal(t, "27AAAAA0000A1Z5", summary.B2B[0].GSTIN)
		assert.Equal(t, "Counterparty INV-001", summary.B2B[0].CounterpartyName)
		assert.Equal(t, StateCode("27"), summary.B2B[0].StateCode)
		assert.Equal(t, "Maharashtra", summary.B2B[0].StateName)
		assert.Equal(t, 1, summary.B2B[0].DocumentCount)
		require.Len(t, summary.B2B[0].Documents, 1)
		assert.Equal(t, "INV-001", summary.B2B[0].Documents[0].DocumentNumber)
	})

	t.Run("after-tax exactly at threshold qualifies", func(t *testing.T) {
		summary := AggregateCompliance([]FilingDocument{
			filingDoc("INV-001", "27AAAAA0000A1Z5", 250000),
		}, threshold)

		require.Len(t, summary.B2B, 1)
		assert.Empty(t, summary.Residual)
	})

	t.Run("one cent below threshold is residual", func(t *testing.T) {
		summary := AggregateCompliance([]FilingDocument{
			filingDoc("INV-001", "27AAAAA0000A1Z5", 249999.99),
		}, threshold)

		assert.Empty(t, summary.B2B)
		require.Len(t, summary.Residual, 1)
		assert.True(t, summary.Residual[0].GSTINValid)
	})

	t.Run("invalid GSTIN is residual regardless of amount", func(t *testing.T) {
		summary := AggregateCompliance([]FilingDocument{
			filingDoc("INV-001", "27AAAAA0000A1Z", 900000),
		}, threshold)

		assert.Empty(t, summary.B2B)
		require.Len(t, summary.Residual, 1)
		assert.False(t, summary.Residual[0].GSTINValid)
	})

	t.Run("documents of one GSTIN merge into one row", func(t *testing.T) {
		docs := []FilingDocument{
			filingDoc("INV-002", "27AAAAA0000A1Z5", 400000),
			filingDoc("INV-001", "27AAAAA0000A1Z5", 300000),
		}
		summary := AggregateCompliance(docs, threshold)

		require.Len(t, summary.B2B, 1)
		assert.Equal(t, 2, summary.B2B[0].DocumentCount)
		assert.True(t, summary.B2B[0].AfterTaxAmount.Equal(decimal.NewFromInt(700000)))

		// Each contributing document is referenced, sorted by number.
		require.Len(t, summary.B2B[0].Documents, 2)
		assert.Equal(t, "INV-001", summary.B2B[0].Documents[0].DocumentNumber)
		assert.Equal(t, "INV-002", summary.B2B[0].Documents[1].DocumentNumber)
		assert.Equal(t, docs[1].DocumentID, summary.B2B[0].Documents[0].DocumentID)
	})
}

func TestAggregateCompliance_ThresholdBoundaryAcrossMany(t *testing.T) {
	threshold := decimal.NewFromInt(DefaultReportingThreshold)

	docs := make([]FilingDocument, 0, 100)
	for i := 0; i < 99; i++ {
		docs = append(docs, filingDoc(
			fmt.Sprintf("INV-%03d", i),
			"07ABCDE1234F2ZK",
			500000,
		))
	}
	boundary := filingDoc("INV-BOUNDARY", "27AAAAA0000A1Z5", 250000)
	docs = append(docs, boundary)

	summary := AggregateCompliance(docs, threshold)

	assert.Empty(t, summary.Residual)
	require.Len(t, summary.B2B, 2)
	// Sorted by GSTIN, so the boundary counterparty comes second.
	assert.Equal(t, "27AAAAA0000A1Z5", summary.B2B[1].GSTIN)
	assert.Equal(t, 1, summary.B2B[1].DocumentCount)
	assert.Equal(t, 99, summary.B2B[0].DocumentCount)
}

func TestAggregateCompliance_HSNGrouping(t *testing.T) {
	threshold := decimal.NewFromInt(DefaultReportingThreshold)

	t.Run("lines grouped by classification code", func(t *testing.T) {
		summary := AggregateCompliance([]FilingDocument{
			filingDoc("INV-001", "27AAAAA0000A1Z5", 300000,
				resolvedLine(t, "8471", 2, 1000),
				resolvedLine(t, "8471", 3, 500),
				resolvedLine(t, "9403", 1, 200),
			),
		}, threshold)

		require.Len(t, summary.HSN, 2)
		assert.Equal(t, "8471", summary.HSN[0].HSNCode)
		assert.Equal(t, 2, summary.HSN[0].LineCount)
		assert.True(t, summary.HSN[0].Quantity.Equal(decimal.NewFromInt(5)))
		// Total value is the undiscounted sum of line totals: 2*1000 + 3*500.
		assert.True(t, summary.HSN[0].TotalValue.Equal(decimal.NewFromInt(3500)))
		assert.True(t, summary.HSN[0].TaxableAmount.Equal(decimal.NewFromInt(3500)))
		assert.Equal(t, "9403", summary.HSN[1].HSNCode)
		assert.True(t, summary.HSN[1].TotalValue.Equal(decimal.NewFromInt(200)))
	})

	t.Run("missing code groups under unclassified", func(t *testing.T) {
		summary := AggregateCompliance([]FilingDocument{
			filingDoc("INV-001", "27AAAAA0000A1Z5", 300000,
				resolvedLine(t, "", 1, 100),
			),
		}, threshold)

		require.Len(t, summary.HSN, 1)
		assert.Equal(t, UnclassifiedHSNKey, summary.HSN[0].HSNCode)
	})

	t.Run("residual document lines still counted", func(t *testing.T) {
		summary := AggregateCompliance([]FilingDocument{
			filingDoc("INV-001", "BAD-GSTIN", 100,
				resolvedLine(t, "8471", 1, 100),
			),
		}, threshold)

		require.Len(t, summary.Residual, 1)
		require.Len(t, summary.HSN, 1)
		assert.Equal(t, 1, summary.HSN[0].LineCount)
	})

	t.Run("grouping is complete", func(t *testing.T) {
		// Every line of every aggregable document appears in exactly one group.
		summary := AggregateCompliance([]FilingDocument{
			filingDoc("INV-001", "27AAAAA0000A1Z5", 300000,
				resolvedLine(t, "8471", 1, 100),
				resolvedLine(t, "", 1, 100),
			),
			filingDoc("INV-002", "NOPE", 50,
				resolvedLine(t, "9403", 1, 100),
			),
		}, threshold)

		total := 0
		for _, row := range summary.HSN {
			total += row.LineCount
		}
		assert.Equal(t, 3, total)
	})
}

func TestAggregateCompliance_FaultTolerance(t *testing.T) {
	threshold := decimal.NewFromInt(DefaultReportingThreshold)

	bad := filingDoc("INV-BAD", "27AAAAA0000A1Z5", 300000)
	bad.TaxableAmount = decimal.NewFromInt(-1)

	summary := AggregateCompliance([]FilingDocument{
		bad,
		filingDoc("INV-GOOD", "27AAAAA0000A1Z5", 300000),
	}, threshold)

	require.Len(t, summary.Errors, 1)
	assert.Equal(t, "INV-BAD", summary.Errors[0].DocumentNumber)
	assert.Contains(t, summary.Errors[0].Reason, "negative")

	// The good document still aggregates.
	require.Len(t, summary.B2B, 1)
	assert.Equal(t, 1, summary.B2B[0].DocumentCount)
}

func TestAggregateCompliance_Deterministic(t *testing.T) {
	threshold := decimal.NewFromInt(DefaultReportingThreshold)
	docs := []FilingDocument{
		filingDoc("INV-003", "29ABCDE1234F1Z8", 300000, resolvedLine(t, "9403", 1, 100)),
		filingDoc("INV-001", "27AAAAA0000A1Z5", 300000, resolvedLine(t, "8471", 1, 100)),
		filingDoc("INV-002", "BAD", 100, resolvedLine(t, "1001", 1, 100)),
	}

	first := AggregateCompliance(docs, threshold)
	// Reversed input order must not change the output.
	reversed := []FilingDocument{docs[2], docs[1], docs[0]}
	second := AggregateCompliance(reversed, threshold)

	assert.Equal(t, first, second)
	require.Len(t, first.B2B, 2)
	assert.Equal(t, "27AAAAA0000A1Z5", first.B2B[0].GSTIN)
	assert.Equal(t, "29ABCDE1234F1Z8", first.B2B[1].GSTIN)
	require.Len(t, first.HSN, 3)
	assert.Equal(t, "1001", first.HSN[0].HSNCode)
}

func TestAggregateCompliance_Empty(t *testing.T) {
	summary := AggregateCompliance(nil, decimal.NewFromInt(DefaultReportingThreshold))

	assert.Empty(t, summary.B2B)
	assert.Empty(t, summary.Residual)
	assert.Empty(t, summary.HSN)
	assert.Empty(t, summary.Errors)
}
