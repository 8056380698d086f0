package gst

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestDocumentInput() DocumentInput {
	return DocumentInput{
		Lines: []LineItem{{
			Quantity:       decimal.NewFromInt(10),
			UnitRate:       decimal.NewFromInt(100),
			TaxRatePercent: decimal.NewFromInt(18),
			HSNCode:        "8471",
		}},
		SupplyState:   "27",
		PlaceOfSupply: "27",
	}
}

func createTestTaxDocument(t *testing.T) *TaxDocument {
	t.Helper()
	doc, err := NewTaxDocument(
		uuid.New(),
		"INV-2026-001",
		uuid.New(),
		"Acme Industries",
		"27AAAAA0000A1Z5",
		createTestDocumentInput(),
		time.Now(),
	)
	require.NoError(t, err)
	return doc
}

func TestNewTaxDocument(t *testing.T) {
	tenantID := uuid.New()
	counterpartyID := uuid.New()

	t.Run("successful creation", func(t *testing.T) {
		doc, err := NewTaxDocument(
			tenantID,
			"INV-2026-001",
			counterpartyID,
			"Acme Industries",
			"27AAAAA0000A1Z5",
			createTestDocumentInput(),
			time.Now(),
		)

		require.NoError(t, err)
		assert.NotNil(t, doc)
		assert.Equal(t, tenantID, doc.TenantID)
		assert.Equal(t, "INV-2026-001", doc.DocumentNumber)
		assert.Equal(t, counterpartyID, doc.CounterpartyID)
		assert.Equal(t, DocumentStatusRecorded, doc.Status)
		assert.True(t, doc.Result.AfterTaxAmount.Equal(decimal.NewFromInt(1180)))
		assert.True(t, doc.HasValidGSTIN())
	})

	t.Run("invalid GSTIN is stored not rejected", func(t *testing.T) {
		doc, err := NewTaxDocument(
			tenantID,
			"INV-2026-002",
			counterpartyID,
			"Acme Industries",
			"NOT-A-GSTIN",
			createTestDocumentInput(),
			time.Now(),
		)

		require.NoError(t, err)
		assert.Equal(t, "NOT-A-GSTIN", doc.CounterpartyGSTIN)
		assert.False(t, doc.HasValidGSTIN())
	})

	t.Run("empty document number", func(t *testing.T) {
		_, err := NewTaxDocument(tenantID, "", counterpartyID, "Acme", "", createTestDocumentInput(), time.Now())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Document number cannot be empty")
	})

	t.Run("empty counterparty ID", func(t *testing.T) {
		_, err := NewTaxDocument(tenantID, "INV-001", uuid.Nil, "Acme", "", createTestDocumentInput(), time.Now())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Counterparty ID cannot be empty")
	})

	t.Run("empty counterparty name", func(t *testing.T) {
		_, err := NewTaxDocument(tenantID, "INV-001", counterpartyID, "", "", createTestDocumentInput(), time.Now())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Counterparty name cannot be empty")
	})

	t.Run("zero issue date", func(t *testing.T) {
		_, err := NewTaxDocument(tenantID, "INV-001", counterpartyID, "Acme", "", createTestDocumentInput(), time.Time{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Issue date is required")
	})

	t.Run("failing line aborts creation", func(t *testing.T) {
		input := createTestDocumentInput()
		input.Lines[0].Quantity = decimal.NewFromInt(-1)

		_, err := NewTaxDocument(tenantID, "INV-001", counterpartyID, "Acme", "", input, time.Now())
		require.Error(t, err)
	})
}

func TestTaxDocument_Void(t *testing.T) {
	t.Run("successful void", func(t *testing.T) {
		doc := createTestTaxDocument(t)

		err := doc.Void("duplicate entry")
		require.NoError(t, err)
		assert.Equal(t, DocumentStatusVoided, doc.Status)
		assert.Equal(t, "duplicate entry", doc.VoidReason)
		assert.NotNil(t, doc.VoidedAt)
		assert.True(t, doc.IsVoided())
	})

	t.Run("void bumps the version for the optimistic update", func(t *testing.T) {
		doc := createTestTaxDocument(t)
		require.Equal(t, 1, doc.Version)

		require.NoError(t, doc.Void("duplicate entry"))
		assert.Equal(t, 2, doc.Version)
	})

	t.Run("failed void leaves the version untouched", func(t *testing.T) {
		doc := createTestTaxDocument(t)

		require.Error(t, doc.Void(""))
		assert.Equal(t, 1, doc.Version)
	})

	t.Run("void requires a reason", func(t *testing.T) {
		doc := createTestTaxDocument(t)

		err := doc.Void("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Void reason is required")
	})

	t.Run("cannot void twice", func(t *testing.T) {
		doc := createTestTaxDocument(t)
		require.NoError(t, doc.Void("duplicate entry"))

		err := doc.Void("again")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Cannot void document in VOIDED status")
	})
}

func TestTaxDocument_ToFilingDocument(t *testing.T) {
	doc := createTestTaxDocument(t)

	filing := doc.ToFilingDocument()
	assert.Equal(t, doc.ID, filing.DocumentID)
	assert.Equal(t, doc.DocumentNumber, filing.DocumentNumber)
	assert.Equal(t, doc.CounterpartyGSTIN, filing.CounterpartyGSTIN)
	assert.True(t, filing.AfterTaxAmount.Equal(doc.Result.AfterTaxAmount))
	assert.Len(t, filing.Lines, 1)
}
