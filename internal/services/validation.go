package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"taxinator/internal/models"
	"taxinator/internal/vendors"
)

// Symbols exempt from the zero-cost-basis warning.
var exemptSymbols = map[string]bool{
	"GIFT":     true,
	"DONATION": true,
}

// Recognized digital assets whose disposals should carry a wallet address.
var digitalAssets = map[string]bool{
	"BTC":  true,
	"ETH":  true,
	"SOL":  true,
	"USDC": true,
}

// generalFixes is static advisory text attached to every validation report.
// It is not computed per issue.
var generalFixes = []string{
	"Confirm acquisition and disposition dates use the YYYY-MM-DD format.",
	"Upload personal-info records for every account before cost-basis ingestion.",
	"Provide wallet addresses for digital-asset disposals (BTC, ETH, SOL, USDC).",
	"Check the target vendor template for required fields before transforming.",
}

// ValidateJob runs the full rule battery over a job's normalized
// transactions. Pure: identical inputs always yield an identical report,
// and issue ordering mirrors input transaction ordering.
func ValidateJob(normalized []models.NormalizedTransaction, personalInfo []models.PersonalInfoRecord, vendorTarget string) models.ValidationReport {
	report := models.ValidationReport{
		Errors:         []models.ValidationIssue{},
		Warnings:       []models.ValidationIssue{},
		SuggestedFixes: append([]string(nil), generalFixes...),
	}

	knownCustomers := make(map[string]bool, len(personalInfo))
	for _, rec := range personalInfo {
		knownCustomers[rec.CustomerID] = true
	}

	for _, tx := range normalized {
		if tx.HoldingPeriodDays() < 0 {
			report.Errors = append(report.Errors, models.ValidationIssue{
				Code:          "acquisition_after_sale",
				Message:       "Acquisition date is after the disposition date",
				Severity:      models.SeverityError,
				TransactionID: tx.TransactionID,
				SuggestedFix:  "Verify upstream timestamps; disposition must not precede acquisition",
			})
		}

		if tx.Quantity.IsNegative() {
			report.Errors = append(report.Errors, models.ValidationIssue{
				Code:          "negative_quantity",
				Message:       "Quantity is negative",
				Severity:      models.SeverityError,
				TransactionID: tx.TransactionID,
			})
		}

		if tx.CostBasis.Equal(decimal.Zero) && !exemptSymbols[strings.ToUpper(tx.AssetSymbol)] {
			report.Warnings = append(report.Warnings, models.ValidationIssue{
				Code:          "zero_cost_basis",
				Message:       "Cost basis is zero for a non-gift asset",
				Severity:      models.SeverityWarning,
				TransactionID: tx.TransactionID,
				SuggestedFix:  "Confirm the provider supplied basis data, or tag the lot as GIFT/DONATION",
			})
		}

		if digitalAssets[strings.ToUpper(tx.AssetSymbol)] && tx.WalletAddress == "" {
			report.Warnings = append(report.Warnings, models.ValidationIssue{
				Code:          "missing_wallet_address",
				Message:       fmt.Sprintf("Digital asset %s disposal has no wallet address", tx.AssetSymbol),
				Severity:      models.SeverityWarning,
				TransactionID: tx.TransactionID,
			})
		}

		if !knownCustomers[tx.AccountID] {
			report.Errors = append(report.Errors, models.ValidationIssue{
				Code:          "unknown_customer",
				Message:       fmt.Sprintf("Account %s has no uploaded personal-info record", tx.AccountID),
				Severity:      models.SeverityError,
				TransactionID: tx.TransactionID,
				SuggestedFix:  "Upload a personal-info record for this account before re-validating",
			})
		}
	}

	// Vendor compatibility: the template's required fields must appear
	// among the canonical field names of the first transaction. Only the
	// first transaction is sampled; the batch is assumed homogeneous.
	if template, ok := vendors.Lookup(vendorTarget); ok && len(normalized) > 0 {
		fields, err := normalized[0].CanonicalFields()
		if err == nil {
			for _, required := range template.RequiredFields {
				if _, present := fields[required]; !present {
					report.Errors = append(report.Errors, models.ValidationIssue{
						Code:     "missing_required_field",
						Message:  fmt.Sprintf("Vendor %s requires field %q, absent from normalized data", template.VendorKey, required),
						Severity: models.SeverityError,
					})
				}
			}
		}
	}

	return report
}

// ValidateLegacyBatch runs the simpler legacy ruleset over a typed batch:
// duplicate ids, negative holding periods, and negative amounts, all as
// non-blocking warnings.
func ValidateLegacyBatch(transactions []models.NormalizedTransaction) []models.ValidationIssue {
	warnings := []models.ValidationIssue{}
	seen := make(map[string]bool, len(transactions))

	for _, tx := range transactions {
		if seen[tx.TransactionID] {
			warnings = append(warnings, models.ValidationIssue{
				Code:          "duplicate_transaction_id",
				Message:       "Duplicate transaction IDs detected; downstream vendors require uniqueness",
				Severity:      models.SeverityWarning,
				TransactionID: tx.TransactionID,
			})
		}
		seen[tx.TransactionID] = true

		if tx.HoldingPeriodDays() < 0 {
			warnings = append(warnings, models.ValidationIssue{
				Code:          "negative_holding_period",
				Message:       "Disposition precedes acquisition date; verify upstream timestamps",
				Severity:      models.SeverityWarning,
				TransactionID: tx.TransactionID,
			})
		}

		if tx.Proceeds.IsNegative() || tx.CostBasis.IsNegative() {
			warnings = append(warnings, models.ValidationIssue{
				Code:          "negative_amount",
				Message:       "Negative proceeds or cost basis detected; vendor requires signed abs values",
				Severity:      models.SeverityWarning,
				TransactionID: tx.TransactionID,
			})
		}
	}

	return warnings
}
