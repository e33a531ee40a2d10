package services

import (
	"fmt"
	"strings"

	apperrors "taxinator/internal/errors"
	"taxinator/internal/models"
)

// RenderTranslation produces a vendor-shaped payload from normalized
// transactions. Rendering is table-driven per vendor key; a cataloged vendor
// without a bespoke branch gets the full canonical record as-is. Callers
// resolve the template before rendering, so an unknown key never reaches
// this function.
func RenderTranslation(normalized []models.NormalizedTransaction, template models.VendorTemplate) (models.TranslationPayload, error) {
	records := make([]map[string]any, 0, len(normalized))

	for _, tx := range normalized {
		switch template.VendorKey {
		case "fis":
			records = append(records, map[string]any{
				"accountId": tx.AccountID,
				"asset":     tx.AssetSymbol,
				"proceeds":  tx.Proceeds.StringFixed(2),
				"costBasis": tx.CostBasis.StringFixed(2),
				"gainLoss":  tx.GainLoss().StringFixed(2),
				"treatment": tx.Treatment(),
				"acquired":  tx.AcquisitionDate.String(),
				"disposed":  tx.DispositionDate.String(),
				"lotMethod": tx.LotMethod,
			})
		case "wsc":
			records = append(records, map[string]any{
				"id":              tx.TransactionID,
				"symbol":          tx.AssetSymbol,
				"quantity":        models.MoneyString(tx.Quantity),
				"treatment":       tx.Treatment(),
				"gainLoss":        models.MoneyString(tx.GainLoss()),
				"dispositionDate": tx.DispositionDate.String(),
				"memo":            tx.Memo,
			})
		default:
			canonical, err := tx.CanonicalFields()
			if err != nil {
				return models.TranslationPayload{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			records = append(records, canonical)
		}
	}

	return models.TranslationPayload{
		VendorKey:     template.VendorKey,
		ExportedAt:    models.Today(),
		Records:       records,
		SchemaVersion: template.Version,
		HumanReadable: summarizeRecords(records, template.VendorKey),
	}, nil
}

// summarizeRecords builds the one-line human-readable payload summary.
func summarizeRecords(records []map[string]any, vendorKey string) string {
	if len(records) == 0 {
		return "no records"
	}
	return fmt.Sprintf("%s payload with %d record(s); sample: %v",
		strings.ToUpper(vendorKey), len(records), records[0])
}
