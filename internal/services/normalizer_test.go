package services

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"taxinator/internal/models"
	"taxinator/internal/testutil"
)

func TestNormalizeRecord(t *testing.T) {
	t.Run("canonical_keys", func(t *testing.T) {
		tx, err := NormalizeRecord(testutil.SampleRawRecord())
		testutil.AssertNoError(t, err)

		if tx.TransactionID != "T-1" {
			t.Errorf("expected T-1, got %s", tx.TransactionID)
		}
		if !tx.Quantity.Equal(decimal.RequireFromString("10")) {
			t.Errorf("expected quantity 10, got %s", tx.Quantity)
		}
		if !tx.GainLoss().Equal(decimal.RequireFromString("500.00")) {
			t.Errorf("expected gain 500.00, got %s", tx.GainLoss())
		}
		if tx.LotMethod != "FIFO" {
			t.Errorf("expected default lot method FIFO, got %s", tx.LotMethod)
		}
	})

	t.Run("synonym_fallback", func(t *testing.T) {
		raw := models.RawRecord{
			"txn_id":   "T-2",
			"account":  "ACC-002",
			"symbol":   "ETH",
			"qty":      "2.5",
			"basis":    "3000.00",
			"proceeds": "2800.00",
			"acquired": "2022-05-05",
			"disposed": "2024-03-01",
			"wallet":   "0xabc123",
			"note":     "crypto sale",
		}
		tx, err := NormalizeRecord(raw)
		testutil.AssertNoError(t, err)

		if tx.AccountID != "ACC-002" {
			t.Errorf("account fallback failed: %s", tx.AccountID)
		}
		if !tx.Quantity.Equal(decimal.RequireFromString("2.5")) {
			t.Errorf("qty fallback failed: %s", tx.Quantity)
		}
		if tx.WalletAddress != "0xabc123" {
			t.Errorf("wallet fallback failed: %s", tx.WalletAddress)
		}
		if tx.Memo != "crypto sale" {
			t.Errorf("memo fallback failed: %s", tx.Memo)
		}
	})

	t.Run("primary_key_wins_over_synonym", func(t *testing.T) {
		raw := testutil.SampleRawRecord()
		raw["account"] = "WRONG"
		tx, err := NormalizeRecord(raw)
		testutil.AssertNoError(t, err)
		if tx.AccountID != "ACC-001" {
			t.Errorf("expected primary key to win, got %s", tx.AccountID)
		}
	})

	t.Run("generates_missing_transaction_id", func(t *testing.T) {
		raw := testutil.SampleRawRecord()
		delete(raw, "transaction_id")
		tx, err := NormalizeRecord(raw)
		testutil.AssertNoError(t, err)
		if !strings.HasPrefix(tx.TransactionID, "TXN-") {
			t.Errorf("expected generated TXN- id, got %s", tx.TransactionID)
		}
	})

	t.Run("numeric_defaults_to_zero", func(t *testing.T) {
		raw := testutil.SampleRawRecord()
		delete(raw, "cost_basis")
		tx, err := NormalizeRecord(raw)
		testutil.AssertNoError(t, err)
		if !tx.CostBasis.IsZero() {
			t.Errorf("expected zero cost basis, got %s", tx.CostBasis)
		}
	})

	t.Run("json_number_amounts", func(t *testing.T) {
		raw := testutil.SampleRawRecord()
		raw["quantity"] = json.Number("0.1")
		tx, err := NormalizeRecord(raw)
		testutil.AssertNoError(t, err)
		if tx.Quantity.String() != "0.1" {
			t.Errorf("expected exact 0.1, got %s", tx.Quantity)
		}
	})

	t.Run("missing_account_id", func(t *testing.T) {
		raw := testutil.SampleRawRecord()
		delete(raw, "account_id")
		_, err := NormalizeRecord(raw)
		testutil.AssertAppError(t, err, "MALFORMED_RECORD")
	})

	t.Run("missing_symbol", func(t *testing.T) {
		raw := testutil.SampleRawRecord()
		delete(raw, "asset_symbol")
		_, err := NormalizeRecord(raw)
		testutil.AssertAppError(t, err, "MALFORMED_RECORD")
	})

	t.Run("unparseable_date", func(t *testing.T) {
		raw := testutil.SampleRawRecord()
		raw["acquisition_date"] = "01/10/2023"
		_, err := NormalizeRecord(raw)
		testutil.AssertAppError(t, err, "MALFORMED_RECORD")
	})

	t.Run("unparseable_decimal", func(t *testing.T) {
		raw := testutil.SampleRawRecord()
		raw["proceeds"] = "$1,500.00"
		_, err := NormalizeRecord(raw)
		testutil.AssertAppError(t, err, "MALFORMED_RECORD")
	})
}

func TestNormalizeBatch(t *testing.T) {
	t.Run("all_or_nothing", func(t *testing.T) {
		bad := testutil.SampleRawRecord()
		bad["disposition_date"] = "not-a-date"
		_, err := NormalizeBatch([]models.RawRecord{testutil.SampleRawRecord(), bad})
		testutil.AssertAppError(t, err, "MALFORMED_RECORD")
	})

	t.Run("preserves_order", func(t *testing.T) {
		second := testutil.SampleRawRecord()
		second["transaction_id"] = "T-2"
		normalized, err := NormalizeBatch([]models.RawRecord{testutil.SampleRawRecord(), second})
		testutil.AssertNoError(t, err)
		if len(normalized) != 2 || normalized[0].TransactionID != "T-1" || normalized[1].TransactionID != "T-2" {
			t.Errorf("batch order not preserved: %+v", normalized)
		}
	})
}
