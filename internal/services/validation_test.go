package services

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"taxinator/internal/models"
	"taxinator/internal/testutil"
)

func issueCodes(issues []models.ValidationIssue) []string {
	codes := make([]string, len(issues))
	for i, issue := range issues {
		codes[i] = issue.Code
	}
	return codes
}

func knownCustomer() []models.PersonalInfoRecord {
	return []models.PersonalInfoRecord{testutil.SamplePersonalInfo()}
}

func TestValidateJob(t *testing.T) {
	t.Run("clean_transaction", func(t *testing.T) {
		report := ValidateJob([]models.NormalizedTransaction{testutil.SampleTransaction()}, knownCustomer(), "fis")
		if len(report.Errors) != 0 {
			t.Errorf("expected no errors, got %v", issueCodes(report.Errors))
		}
		if len(report.Warnings) != 0 {
			t.Errorf("expected no warnings, got %v", issueCodes(report.Warnings))
		}
		if len(report.SuggestedFixes) == 0 {
			t.Error("expected static suggested fixes")
		}
	})

	t.Run("acquisition_after_sale", func(t *testing.T) {
		tx := testutil.SampleTransaction()
		tx.AcquisitionDate = models.NewDate(2023, time.December, 1)
		report := ValidateJob([]models.NormalizedTransaction{tx}, knownCustomer(), "fis")
		codes := issueCodes(report.Errors)
		if len(codes) != 1 || codes[0] != "acquisition_after_sale" {
			t.Errorf("expected acquisition_after_sale, got %v", codes)
		}
	})

	t.Run("negative_quantity", func(t *testing.T) {
		tx := testutil.SampleTransaction()
		tx.Quantity = decimal.RequireFromString("-1")
		report := ValidateJob([]models.NormalizedTransaction{tx}, knownCustomer(), "fis")
		if codes := issueCodes(report.Errors); len(codes) != 1 || codes[0] != "negative_quantity" {
			t.Errorf("expected negative_quantity, got %v", codes)
		}
	})

	t.Run("zero_cost_basis_warns", func(t *testing.T) {
		tx := testutil.SampleTransaction()
		tx.CostBasis = decimal.Zero
		report := ValidateJob([]models.NormalizedTransaction{tx}, knownCustomer(), "fis")
		if codes := issueCodes(report.Warnings); len(codes) != 1 || codes[0] != "zero_cost_basis" {
			t.Errorf("expected zero_cost_basis warning, got %v", codes)
		}
		if len(report.Errors) != 0 {
			t.Errorf("zero cost basis should not be an error: %v", issueCodes(report.Errors))
		}
	})

	t.Run("gift_exempt_from_zero_basis", func(t *testing.T) {
		tx := testutil.SampleTransaction()
		tx.CostBasis = decimal.Zero
		tx.AssetSymbol = "gift" // exemption is case-insensitive
		report := ValidateJob([]models.NormalizedTransaction{tx}, knownCustomer(), "fis")
		if len(report.Warnings) != 0 {
			t.Errorf("GIFT should be exempt, got %v", issueCodes(report.Warnings))
		}
	})

	t.Run("missing_wallet_address", func(t *testing.T) {
		tx := testutil.SampleTransaction()
		tx.AssetSymbol = "btc"
		report := ValidateJob([]models.NormalizedTransaction{tx}, knownCustomer(), "fis")
		if codes := issueCodes(report.Warnings); len(codes) != 1 || codes[0] != "missing_wallet_address" {
			t.Errorf("expected missing_wallet_address, got %v", codes)
		}

		tx.WalletAddress = "0xabc"
		report = ValidateJob([]models.NormalizedTransaction{tx}, knownCustomer(), "fis")
		if len(report.Warnings) != 0 {
			t.Errorf("wallet present, expected no warning, got %v", issueCodes(report.Warnings))
		}
	})

	t.Run("unknown_customer", func(t *testing.T) {
		tx := testutil.SampleTransaction()
		tx.AccountID = "ACC-999"
		report := ValidateJob([]models.NormalizedTransaction{tx}, knownCustomer(), "fis")
		if codes := issueCodes(report.Errors); len(codes) != 1 || codes[0] != "unknown_customer" {
			t.Errorf("expected unknown_customer, got %v", codes)
		}
	})

	t.Run("no_personal_info_means_all_unknown", func(t *testing.T) {
		report := ValidateJob([]models.NormalizedTransaction{testutil.SampleTransaction()}, nil, "fis")
		if codes := issueCodes(report.Errors); len(codes) != 1 || codes[0] != "unknown_customer" {
			t.Errorf("expected unknown_customer, got %v", codes)
		}
	})

	t.Run("vendor_compatibility_passes_for_catalog_vendors", func(t *testing.T) {
		// fis and wsc require only canonical fields, which every
		// normalized transaction exposes.
		for _, vendor := range []string{"fis", "wsc"} {
			report := ValidateJob([]models.NormalizedTransaction{testutil.SampleTransaction()}, knownCustomer(), vendor)
			if len(report.Errors) != 0 {
				t.Errorf("vendor %s: expected no errors, got %v", vendor, issueCodes(report.Errors))
			}
		}
	})

	t.Run("unknown_target_vendor_skips_compat_check", func(t *testing.T) {
		report := ValidateJob([]models.NormalizedTransaction{testutil.SampleTransaction()}, knownCustomer(), "nope")
		if len(report.Errors) != 0 {
			t.Errorf("expected no errors for uncataloged target, got %v", issueCodes(report.Errors))
		}
	})

	t.Run("issue_order_mirrors_input_order", func(t *testing.T) {
		first := testutil.SampleTransaction()
		first.TransactionID = "T-1"
		first.AccountID = "ACC-X"
		second := testutil.SampleTransaction()
		second.TransactionID = "T-2"
		second.AccountID = "ACC-Y"

		report := ValidateJob([]models.NormalizedTransaction{first, second}, knownCustomer(), "fis")
		if len(report.Errors) != 2 {
			t.Fatalf("expected 2 errors, got %v", issueCodes(report.Errors))
		}
		if report.Errors[0].TransactionID != "T-1" || report.Errors[1].TransactionID != "T-2" {
			t.Errorf("issue order does not mirror input order: %+v", report.Errors)
		}
	})

	t.Run("pure_and_deterministic", func(t *testing.T) {
		txs := []models.NormalizedTransaction{testutil.SampleTransaction()}
		txs[0].AccountID = "ACC-999"
		txs[0].AssetSymbol = "BTC"
		txs[0].CostBasis = decimal.Zero

		first := ValidateJob(txs, knownCustomer(), "fis")
		second := ValidateJob(txs, knownCustomer(), "fis")
		if !reflect.DeepEqual(first, second) {
			t.Error("identical inputs produced different reports")
		}
	})
}

func TestValidateLegacyBatch(t *testing.T) {
	t.Run("duplicate_ids", func(t *testing.T) {
		tx := testutil.SampleTransaction()
		warnings := ValidateLegacyBatch([]models.NormalizedTransaction{tx, tx})
		if codes := issueCodes(warnings); len(codes) != 1 || codes[0] != "duplicate_transaction_id" {
			t.Errorf("expected duplicate_transaction_id, got %v", codes)
		}
	})

	t.Run("negative_holding_period", func(t *testing.T) {
		tx := testutil.SampleTransaction()
		tx.AcquisitionDate = models.NewDate(2024, time.January, 1)
		warnings := ValidateLegacyBatch([]models.NormalizedTransaction{tx})
		if codes := issueCodes(warnings); len(codes) != 1 || codes[0] != "negative_holding_period" {
			t.Errorf("expected negative_holding_period, got %v", codes)
		}
	})

	t.Run("negative_amount", func(t *testing.T) {
		tx := testutil.SampleTransaction()
		tx.Proceeds = decimal.RequireFromString("-5")
		warnings := ValidateLegacyBatch([]models.NormalizedTransaction{tx})
		if codes := issueCodes(warnings); len(codes) != 1 || codes[0] != "negative_amount" {
			t.Errorf("expected negative_amount, got %v", codes)
		}
	})

	t.Run("clean_batch", func(t *testing.T) {
		if warnings := ValidateLegacyBatch([]models.NormalizedTransaction{testutil.SampleTransaction()}); len(warnings) != 0 {
			t.Errorf("expected no warnings, got %v", issueCodes(warnings))
		}
	})
}
