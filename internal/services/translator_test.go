package services

import (
	"strings"
	"testing"

	"taxinator/internal/models"
	"taxinator/internal/testutil"
	"taxinator/internal/vendors"
)

func mustTemplate(t *testing.T, key string) models.VendorTemplate {
	t.Helper()
	template, ok := vendors.Lookup(key)
	if !ok {
		t.Fatalf("vendor %q not in catalog", key)
	}
	return template
}

func TestRenderTranslation(t *testing.T) {
	normalized := []models.NormalizedTransaction{testutil.SampleTransaction()}

	t.Run("fis_shape", func(t *testing.T) {
		payload, err := RenderTranslation(normalized, mustTemplate(t, "fis"))
		testutil.AssertNoError(t, err)

		if payload.VendorKey != "fis" {
			t.Errorf("vendor key = %s", payload.VendorKey)
		}
		if payload.SchemaVersion != "2024.1" {
			t.Errorf("schema version = %s", payload.SchemaVersion)
		}
		if len(payload.Records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(payload.Records))
		}

		rec := payload.Records[0]
		if rec["gainLoss"] != "500.00" {
			t.Errorf("gainLoss = %v, want 500.00", rec["gainLoss"])
		}
		if rec["treatment"] != models.TreatmentShortTerm {
			t.Errorf("treatment = %v", rec["treatment"])
		}
		if rec["accountId"] != "ACC-001" || rec["asset"] != "AAPL" {
			t.Errorf("identity fields wrong: %v", rec)
		}
		if rec["acquired"] != "2023-01-01" || rec["disposed"] != "2023-06-01" {
			t.Errorf("date fields wrong: %v", rec)
		}
		if _, present := rec["transaction_id"]; present {
			t.Error("fis payload leaked a canonical field name")
		}
	})

	t.Run("wsc_shape", func(t *testing.T) {
		payload, err := RenderTranslation(normalized, mustTemplate(t, "wsc"))
		testutil.AssertNoError(t, err)

		rec := payload.Records[0]
		if rec["id"] != "T-1" || rec["symbol"] != "AAPL" {
			t.Errorf("identity fields wrong: %v", rec)
		}
		if rec["quantity"] != "10" {
			t.Errorf("quantity = %v", rec["quantity"])
		}
		if rec["gainLoss"] != "500.00" {
			t.Errorf("gainLoss = %v, want 500.00", rec["gainLoss"])
		}
	})

	t.Run("uncataloged_key_falls_back_to_canonical", func(t *testing.T) {
		template := models.VendorTemplate{VendorKey: "acme", Version: "1.0"}
		payload, err := RenderTranslation(normalized, template)
		testutil.AssertNoError(t, err)

		rec := payload.Records[0]
		if rec["transaction_id"] != "T-1" {
			t.Errorf("expected canonical keys, got %v", rec)
		}
		// Derived fields travel with the canonical shape.
		if rec["gain_loss"] != "500.00" {
			t.Errorf("gain_loss = %v", rec["gain_loss"])
		}
	})

	t.Run("summary_line", func(t *testing.T) {
		payload, err := RenderTranslation(normalized, mustTemplate(t, "fis"))
		testutil.AssertNoError(t, err)
		if !strings.HasPrefix(payload.HumanReadable, "FIS payload with 1 record(s)") {
			t.Errorf("summary = %q", payload.HumanReadable)
		}

		empty, err := RenderTranslation(nil, mustTemplate(t, "fis"))
		testutil.AssertNoError(t, err)
		if empty.HumanReadable != "no records" {
			t.Errorf("empty summary = %q", empty.HumanReadable)
		}
	})
}
