package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ValidationSeverity classifies a validation issue.
type ValidationSeverity string

const (
	SeverityError   ValidationSeverity = "error"
	SeverityWarning ValidationSeverity = "warning"
)

// ValidationIssue is a single classified finding from the rule battery.
// Errors block progression to ready_for_transformation; warnings do not.
type ValidationIssue struct {
	Code          string             `json:"code"`
	Message       string             `json:"message"`
	Severity      ValidationSeverity `json:"severity"`
	TransactionID string             `json:"transaction_id,omitempty"`
	SuggestedFix  string             `json:"suggested_fix,omitempty"`
}

// ValidationReport is the full output of validating a job's dataset.
// SuggestedFixes is static advisory text, not computed per issue.
type ValidationReport struct {
	Errors         []ValidationIssue `json:"errors"`
	Warnings       []ValidationIssue `json:"warnings"`
	SuggestedFixes []string          `json:"suggested_fixes"`
}

// HasErrors reports whether any blocking issue was found.
func (r *ValidationReport) HasErrors() bool {
	return len(r.Errors) > 0
}

// IngestionSummary is the rollup attached to a job after cost-basis ingestion.
type IngestionSummary struct {
	TotalRows       int             `json:"total_rows"`
	NormalizedCount int             `json:"normalized_count"`
	TotalProceeds   decimal.Decimal `json:"total_proceeds"`
	TotalCostBasis  decimal.Decimal `json:"total_cost_basis"`
	TotalGainLoss   decimal.Decimal `json:"total_gain_loss"`
	ShortTermCount  int             `json:"short_term_count"`
	LongTermCount   int             `json:"long_term_count"`
}

// MarshalJSON renders the monetary totals scale-preserving (see MoneyString).
func (s IngestionSummary) MarshalJSON() ([]byte, error) {
	type stored IngestionSummary
	return json.Marshal(struct {
		stored
		TotalProceeds  string `json:"total_proceeds"`
		TotalCostBasis string `json:"total_cost_basis"`
		TotalGainLoss  string `json:"total_gain_loss"`
	}{
		stored:         stored(s),
		TotalProceeds:  MoneyString(s.TotalProceeds),
		TotalCostBasis: MoneyString(s.TotalCostBasis),
		TotalGainLoss:  MoneyString(s.TotalGainLoss),
	})
}

// JobSummary is the legacy single-shot ingestion rollup shape.
type JobSummary struct {
	TotalTransactions int             `json:"total_transactions"`
	TotalProceeds     decimal.Decimal `json:"total_proceeds"`
	TotalCostBasis    decimal.Decimal `json:"total_cost_basis"`
	TotalGainLoss     decimal.Decimal `json:"total_gain_loss"`
	ShortTermCount    int             `json:"short_term_count"`
	LongTermCount     int             `json:"long_term_count"`
}

// MarshalJSON renders the monetary totals scale-preserving (see MoneyString).
func (s JobSummary) MarshalJSON() ([]byte, error) {
	type stored JobSummary
	return json.Marshal(struct {
		stored
		TotalProceeds  string `json:"total_proceeds"`
		TotalCostBasis string `json:"total_cost_basis"`
		TotalGainLoss  string `json:"total_gain_loss"`
	}{
		stored:         stored(s),
		TotalProceeds:  MoneyString(s.TotalProceeds),
		TotalCostBasis: MoneyString(s.TotalCostBasis),
		TotalGainLoss:  MoneyString(s.TotalGainLoss),
	})
}

// VendorTemplate describes a downstream tax engine payload contract.
// Read-only reference data, not job-scoped.
type VendorTemplate struct {
	VendorKey      string   `json:"vendor_key"`
	DisplayName    string   `json:"display_name"`
	Version        string   `json:"version"`
	Format         string   `json:"format"` // json, csv, xml
	RequiredFields []string `json:"required_fields"`
	MappingNotes   []string `json:"mapping_notes"`
}

// TranslationPayload is a vendor-shaped rendering of normalized transactions.
type TranslationPayload struct {
	VendorKey     string           `json:"vendor_key"`
	ExportedAt    Date             `json:"exported_at"`
	Records       []map[string]any `json:"records"`
	SchemaVersion string           `json:"schema_version"`
	HumanReadable string           `json:"human_readable,omitempty"`
}

// TransformationSummary records that a transform ran and how many gain/loss
// records it rendered. The reconciler compares this count against the
// current normalized set.
type TransformationSummary struct {
	VendorKey       string `json:"vendor_key"`
	GainLossRecords int    `json:"gain_loss_records"`
	GeneratedAt     Date   `json:"generated_at"`
}

// ReconciliationReport cross-checks transaction accounts against uploaded
// personal-info identities.
type ReconciliationReport struct {
	MatchedAccounts    int      `json:"matched_accounts"`
	MismatchedAccounts []string `json:"mismatched_accounts"`
	GainLossAlignment  bool     `json:"gain_loss_alignment"`
	Notes              string   `json:"notes"`
}

// ExportReport is emitted when a job's vendor payload is finalized.
type ExportReport struct {
	JobID        string    `json:"job_id"`
	VendorTarget string    `json:"vendor_target"`
	Status       JobStatus `json:"status"`
	RecordCount  int       `json:"record_count"`
	WebhookEvent string    `json:"webhook_event"`
	ExportedAt   Date      `json:"exported_at"`
}
