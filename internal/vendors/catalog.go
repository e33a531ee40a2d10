// Package vendors holds the static catalog of downstream vendor templates.
// Templates are read-only reference data; in production this would be
// DB-backed or fetched from the vendors themselves.
package vendors

import "taxinator/internal/models"

var catalog = map[string]models.VendorTemplate{
	"fis": {
		VendorKey:   "fis",
		DisplayName: "FIS Tax Gateway",
		Version:     "2024.1",
		Format:      "json",
		RequiredFields: []string{
			"account_id", "asset_symbol", "quantity", "proceeds", "cost_basis",
		},
		MappingNotes: []string{
			"FIS expects monetary values as decimal strings with two places.",
			"Short-term vs long-term drives their Box 1b mapping for 1099-B.",
		},
	},
	"wsc": {
		VendorKey:   "wsc",
		DisplayName: "WSC Reporting",
		Version:     "2023.4",
		Format:      "csv",
		RequiredFields: []string{
			"transaction_id", "treatment", "gain_loss", "disposition_date",
		},
		MappingNotes: []string{
			"CSV must retain vendor-provided transaction IDs for reconciliation.",
			"Long-term lots require supplemental statement if proceeds exceed $1M.",
		},
	},
}

// keyOrder fixes the listing order for /templates.
var keyOrder = []string{"fis", "wsc"}

// Lookup resolves a vendor template by key.
func Lookup(key string) (models.VendorTemplate, bool) {
	template, ok := catalog[key]
	return template, ok
}

// All returns every template in catalog order.
func All() []models.VendorTemplate {
	templates := make([]models.VendorTemplate, 0, len(catalog))
	for _, key := range keyOrder {
		templates = append(templates, catalog[key])
	}
	return templates
}
