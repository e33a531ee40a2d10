package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "taxinator/internal/errors"
	"taxinator/internal/models"
	"taxinator/internal/uuid"
)

// fieldCandidates maps each canonical field to an ordered list of raw key
// names. Resolution walks the list and the first present-and-non-empty key
// wins. Providers disagree on naming, so this table is the single place new
// synonyms get added.
var fieldCandidates = map[string][]string{
	"transaction_id":    {"transaction_id", "txn_id", "id"},
	"account_id":        {"account_id", "account"},
	"asset_symbol":      {"asset_symbol", "symbol", "asset"},
	"quantity":          {"quantity", "qty"},
	"cost_basis":        {"cost_basis", "basis"},
	"proceeds":          {"proceeds", "gross_proceeds", "sale_proceeds"},
	"acquisition_date":  {"acquisition_date", "acquired", "purchase_date"},
	"disposition_date":  {"disposition_date", "disposed", "sale_date"},
	"lot_method":        {"lot_method", "method"},
	"cost_basis_source": {"cost_basis_source", "basis_source"},
	"wallet_address":    {"wallet_address", "wallet"},
	"memo":              {"memo", "note", "description"},
}

// resolveField returns the first non-empty value for a canonical field,
// rendered as a string. The bool reports whether any candidate key held a
// usable value.
func resolveField(raw models.RawRecord, field string) (string, bool) {
	for _, key := range fieldCandidates[field] {
		value, ok := raw[key]
		if !ok || value == nil {
			continue
		}
		var s string
		switch v := value.(type) {
		case string:
			s = strings.TrimSpace(v)
		case json.Number:
			s = v.String()
		default:
			s = strings.TrimSpace(fmt.Sprintf("%v", v))
		}
		if s != "" {
			return s, true
		}
	}
	return "", false
}

// resolveDecimal parses a monetary or quantity field exactly, defaulting to
// zero when the field is entirely absent.
func resolveDecimal(raw models.RawRecord, field string) (decimal.Decimal, error) {
	s, ok := resolveField(raw, field)
	if !ok {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrMalformedRecord,
			fmt.Sprintf("field %q: %q is not a valid decimal", field, s))
	}
	return d, nil
}

// resolveDate parses a required calendar date field.
func resolveDate(raw models.RawRecord, field string) (models.Date, error) {
	s, ok := resolveField(raw, field)
	if !ok {
		return models.Date{}, apperrors.WithMessage(apperrors.ErrMalformedRecord,
			fmt.Sprintf("field %q is missing", field))
	}
	d, err := models.ParseDate(s)
	if err != nil {
		return models.Date{}, apperrors.WithMessage(apperrors.ErrMalformedRecord,
			fmt.Sprintf("field %q: %v", field, err))
	}
	return d, nil
}

// NormalizeRecord maps one raw provider row into the canonical transaction
// shape. Numeric fields default to zero, transaction ids are generated when
// absent, and account/symbol are required after fallback.
func NormalizeRecord(raw models.RawRecord) (models.NormalizedTransaction, error) {
	var tx models.NormalizedTransaction

	txID, ok := resolveField(raw, "transaction_id")
	if !ok {
		txID = uuid.NewTransactionID()
	}
	tx.TransactionID = txID

	accountID, ok := resolveField(raw, "account_id")
	if !ok {
		return tx, apperrors.WithMessage(apperrors.ErrMalformedRecord, "field \"account_id\" is missing")
	}
	tx.AccountID = accountID

	symbol, ok := resolveField(raw, "asset_symbol")
	if !ok {
		return tx, apperrors.WithMessage(apperrors.ErrMalformedRecord, "field \"asset_symbol\" is missing")
	}
	tx.AssetSymbol = symbol

	var err error
	if tx.Quantity, err = resolveDecimal(raw, "quantity"); err != nil {
		return tx, err
	}
	if tx.CostBasis, err = resolveDecimal(raw, "cost_basis"); err != nil {
		return tx, err
	}
	if tx.Proceeds, err = resolveDecimal(raw, "proceeds"); err != nil {
		return tx, err
	}

	if tx.AcquisitionDate, err = resolveDate(raw, "acquisition_date"); err != nil {
		return tx, err
	}
	if tx.DispositionDate, err = resolveDate(raw, "disposition_date"); err != nil {
		return tx, err
	}

	if method, ok := resolveField(raw, "lot_method"); ok {
		tx.LotMethod = method
	} else {
		tx.LotMethod = "FIFO"
	}

	tx.CostBasisSource, _ = resolveField(raw, "cost_basis_source")
	tx.WalletAddress, _ = resolveField(raw, "wallet_address")
	tx.Memo, _ = resolveField(raw, "memo")

	return tx, nil
}

// NormalizeBatch maps a full upload, failing on the first malformed row so
// a bad batch never half-applies.
func NormalizeBatch(raws []models.RawRecord) ([]models.NormalizedTransaction, error) {
	normalized := make([]models.NormalizedTransaction, 0, len(raws))
	for i, raw := range raws {
		tx, err := NormalizeRecord(raw)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrMalformedRecord,
				fmt.Sprintf("row %d: %s", i, err.Error()))
		}
		normalized = append(normalized, tx)
	}
	return normalized, nil
}
