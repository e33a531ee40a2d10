package services

import (
	"testing"

	"taxinator/internal/models"
	"taxinator/internal/testutil"
)

func TestBuildReconciliation(t *testing.T) {
	matchedTx := testutil.SampleTransaction()
	info := []models.PersonalInfoRecord{testutil.SamplePersonalInfo()}

	t.Run("all_matched_with_alignment", func(t *testing.T) {
		summary := &models.TransformationSummary{VendorKey: "fis", GainLossRecords: 1}
		report := BuildReconciliation([]models.NormalizedTransaction{matchedTx}, info, summary)

		if report.MatchedAccounts != 1 {
			t.Errorf("matched = %d", report.MatchedAccounts)
		}
		if len(report.MismatchedAccounts) != 0 {
			t.Errorf("mismatched = %v", report.MismatchedAccounts)
		}
		if !report.GainLossAlignment {
			t.Error("expected gain/loss alignment")
		}
		if report.Notes == "" {
			t.Error("expected advisory notes")
		}
	})

	t.Run("mismatches_keep_duplicates", func(t *testing.T) {
		orphan := matchedTx
		orphan.AccountID = "ACC-404"
		report := BuildReconciliation([]models.NormalizedTransaction{orphan, orphan, matchedTx}, info, nil)

		if report.MatchedAccounts != 1 {
			t.Errorf("matched = %d", report.MatchedAccounts)
		}
		if len(report.MismatchedAccounts) != 2 {
			t.Fatalf("mismatched = %v, want two entries for the same account", report.MismatchedAccounts)
		}
		if report.MismatchedAccounts[0] != "ACC-404" || report.MismatchedAccounts[1] != "ACC-404" {
			t.Errorf("mismatched = %v", report.MismatchedAccounts)
		}
	})

	t.Run("matched_plus_mismatched_covers_all_transactions", func(t *testing.T) {
		orphan := matchedTx
		orphan.AccountID = "ACC-404"
		normalized := []models.NormalizedTransaction{matchedTx, orphan, matchedTx, orphan}
		report := BuildReconciliation(normalized, info, nil)

		if report.MatchedAccounts+len(report.MismatchedAccounts) != len(normalized) {
			t.Errorf("matched %d + mismatched %d != %d transactions",
				report.MatchedAccounts, len(report.MismatchedAccounts), len(normalized))
		}
	})

	t.Run("no_transform_means_no_alignment", func(t *testing.T) {
		report := BuildReconciliation([]models.NormalizedTransaction{matchedTx}, info, nil)
		if report.GainLossAlignment {
			t.Error("alignment should require a prior transform")
		}
	})

	t.Run("stale_transform_breaks_alignment", func(t *testing.T) {
		summary := &models.TransformationSummary{VendorKey: "fis", GainLossRecords: 3}
		report := BuildReconciliation([]models.NormalizedTransaction{matchedTx}, info, summary)
		if report.GainLossAlignment {
			t.Error("record-count mismatch should break alignment")
		}
	})

	t.Run("empty_job", func(t *testing.T) {
		report := BuildReconciliation(nil, nil, nil)
		if report.MatchedAccounts != 0 || len(report.MismatchedAccounts) != 0 {
			t.Errorf("unexpected counts: %+v", report)
		}
	})
}
