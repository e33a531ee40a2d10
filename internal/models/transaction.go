package models

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Treatment classifications for capital gains.
const (
	TreatmentShortTerm = "short_term"
	TreatmentLongTerm  = "long_term"
)

// Holding periods at or above this many days are long-term.
const longTermThresholdDays = 365

// RawRecord is an untyped row as uploaded by a cost-basis or trade provider.
// Field names are not guaranteed to match canonical names; the normalizer
// resolves them through an ordered candidate-key table.
type RawRecord map[string]any

// UnmarshalJSON decodes with json.Number so numeric amounts survive as
// exact decimal text instead of being forced through float64.
func (r *RawRecord) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return err
	}
	*r = m
	return nil
}

// NormalizedTransaction is the canonical transaction shape. Monetary fields
// are exact decimals, never binary floats. Gain/loss, holding period, and
// treatment are derived at read time and are not stored.
type NormalizedTransaction struct {
	TransactionID   string          `json:"transaction_id"`
	AccountID       string          `json:"account_id"`
	AssetSymbol     string          `json:"asset_symbol"`
	Quantity        decimal.Decimal `json:"quantity"`
	CostBasis       decimal.Decimal `json:"cost_basis"`
	Proceeds        decimal.Decimal `json:"proceeds"`
	AcquisitionDate Date            `json:"acquisition_date"`
	DispositionDate Date            `json:"disposition_date"`
	LotMethod       string          `json:"lot_method"`
	CostBasisSource string          `json:"cost_basis_source,omitempty"`
	WalletAddress   string          `json:"wallet_address,omitempty"`
	Memo            string          `json:"memo,omitempty"`
}

// GainLoss returns proceeds minus cost basis, exact.
func (t NormalizedTransaction) GainLoss() decimal.Decimal {
	return t.Proceeds.Sub(t.CostBasis)
}

// HoldingPeriodDays returns the signed day count between acquisition and
// disposition. Negative when the data claims disposition before acquisition.
func (t NormalizedTransaction) HoldingPeriodDays() int {
	return t.AcquisitionDate.DaysUntil(t.DispositionDate)
}

// Treatment classifies the lot as short- or long-term. Anything under 365
// days is short-term, negative holding periods included; the validator flags
// those separately rather than special-casing them here.
func (t NormalizedTransaction) Treatment() string {
	if t.HoldingPeriodDays() < longTermThresholdDays {
		return TreatmentShortTerm
	}
	return TreatmentLongTerm
}

// MoneyString renders a decimal with its full stored scale. shopspring's
// String trims trailing zeros, which would turn 500.00 into "500" on the
// wire; downstream vendors treat scale as significant, so amounts must
// leave exactly as scaled as they arrived.
func MoneyString(d decimal.Decimal) string {
	if d.Exponent() < 0 {
		return d.StringFixed(-d.Exponent())
	}
	return d.String()
}

// MarshalJSON surfaces the derived fields alongside the stored ones so API
// consumers see gain_loss, holding_period_days, and treatment without the
// store ever persisting them. Monetary fields are rendered scale-preserving
// (see MoneyString).
func (t NormalizedTransaction) MarshalJSON() ([]byte, error) {
	type stored NormalizedTransaction
	return json.Marshal(struct {
		stored
		Quantity          string `json:"quantity"`
		CostBasis         string `json:"cost_basis"`
		Proceeds          string `json:"proceeds"`
		GainLoss          string `json:"gain_loss"`
		HoldingPeriodDays int    `json:"holding_period_days"`
		Treatment         string `json:"treatment"`
	}{
		stored:            stored(t),
		Quantity:          MoneyString(t.Quantity),
		CostBasis:         MoneyString(t.CostBasis),
		Proceeds:          MoneyString(t.Proceeds),
		GainLoss:          MoneyString(t.GainLoss()),
		HoldingPeriodDays: t.HoldingPeriodDays(),
		Treatment:         t.Treatment(),
	})
}

// CanonicalFields returns the JSON field set this transaction exposes,
// derived fields included. Used by the vendor compatibility check.
func (t NormalizedTransaction) CanonicalFields() (map[string]any, error) {
	raw, err := t.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
