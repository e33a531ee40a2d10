// Package testutil provides assertion helpers and domain fixtures shared
// across service and integration tests.
package testutil

import (
	"time"

	"github.com/shopspring/decimal"

	"taxinator/internal/models"
)

// SampleRawRecord returns a raw cost-basis row the way a provider would
// send it: canonical keys, string-typed numbers and dates.
func SampleRawRecord() models.RawRecord {
	return models.RawRecord{
		"transaction_id":   "T-1",
		"account_id":       "ACC-001",
		"asset_symbol":     "AAPL",
		"quantity":         "10",
		"cost_basis":       "1000.00",
		"proceeds":         "1500.00",
		"acquisition_date": "2023-01-01",
		"disposition_date": "2023-06-01",
	}
}

// SamplePersonalInfo returns an identity record matching SampleRawRecord's
// account id.
func SamplePersonalInfo() models.PersonalInfoRecord {
	return models.PersonalInfoRecord{
		CustomerID: "ACC-001",
		TIN:        "123-45-6789",
		FullName:   "Jamie Example",
		Address:    "123 Market St",
		Email:      "jamie@example.com",
	}
}

// SampleTransaction returns a normalized transaction with a short-term
// 500.00 gain, built from exact decimal strings.
func SampleTransaction() models.NormalizedTransaction {
	return models.NormalizedTransaction{
		TransactionID:   "T-1",
		AccountID:       "ACC-001",
		AssetSymbol:     "AAPL",
		Quantity:        decimal.RequireFromString("10"),
		CostBasis:       decimal.RequireFromString("1000.00"),
		Proceeds:        decimal.RequireFromString("1500.00"),
		AcquisitionDate: models.NewDate(2023, time.January, 1),
		DispositionDate: models.NewDate(2023, time.June, 1),
		LotMethod:       "FIFO",
	}
}
