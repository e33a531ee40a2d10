package models

// JobStatus tracks where a job sits in the ingest → export workflow.
type JobStatus string

const (
	StatusPendingUpload        JobStatus = "pending_upload"
	StatusIngested             JobStatus = "ingested"
	StatusNormalized           JobStatus = "normalized" // legacy single-shot ingestion
	StatusValidationFailed     JobStatus = "validation_failed"
	StatusReadyForTransform    JobStatus = "ready_for_transformation"
	StatusTransformed          JobStatus = "transformed"
	StatusReadyForExport       JobStatus = "ready_for_export"
	StatusReconciliationFailed JobStatus = "reconciliation_failed"
	StatusCompleted            JobStatus = "completed"
)

// Party represents an actor or vendor in the pipeline (legacy ingestion path).
type Party struct {
	Name    string `json:"name" binding:"required"`
	Kind    string `json:"kind" binding:"required"` // broker, exchange, tax_engine, cost_basis
	Contact string `json:"contact,omitempty"`
}

// Job is the central aggregate: one tax-year/vendor-pair dataset tracked
// through ingestion, validation, transformation, reconciliation, and export.
// Status is advanced by each operation but is not checked as a precondition
// by later operations; the presence of a snapshot field is the source of
// truth for whether a stage has run.
type Job struct {
	JobID        string    `json:"job_id"`
	TaxYear      int       `json:"tax_year,omitempty"`
	VendorSource string    `json:"vendor_source,omitempty"`
	VendorTarget string    `json:"vendor_target,omitempty"`
	Status       JobStatus `json:"status"`
	StartedBy    UserRole  `json:"started_by,omitempty"`

	Normalized []NormalizedTransaction `json:"normalized"`
	Warnings   []ValidationIssue       `json:"warnings"`

	// Stage snapshots. Each operation overwrites its own snapshot; none are
	// accumulated except Translations, which keeps one payload per vendor.
	IngestionSummary *IngestionSummary             `json:"ingestion_summary,omitempty"`
	Validation       *ValidationReport             `json:"validation,omitempty"`
	Transformation   *TransformationSummary        `json:"transformation,omitempty"`
	Reconciliation   *ReconciliationReport         `json:"reconciliation,omitempty"`
	Export           *ExportReport                 `json:"export,omitempty"`
	Translations     map[string]TranslationPayload `json:"translations"`

	PersonalInfo []PersonalInfoRecord `json:"personal_info,omitempty"`
	RawCostBasis []RawRecord          `json:"raw_cost_basis,omitempty"`
	RawTrades    []RawRecord          `json:"raw_trades,omitempty"`

	// Legacy single-shot ingestion fields.
	Vendor        *Party   `json:"vendor,omitempty"`
	PayloadSource string   `json:"payload_source,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

// Clone returns a deep copy. The store hands copies to callers so no one
// mutates a stored job outside a locked read-modify-write.
func (j *Job) Clone() *Job {
	c := *j

	c.Normalized = append([]NormalizedTransaction(nil), j.Normalized...)
	c.Warnings = append([]ValidationIssue(nil), j.Warnings...)
	c.PersonalInfo = append([]PersonalInfoRecord(nil), j.PersonalInfo...)
	c.Tags = append([]string(nil), j.Tags...)

	c.RawCostBasis = cloneRawRecords(j.RawCostBasis)
	c.RawTrades = cloneRawRecords(j.RawTrades)

	if j.Translations != nil {
		c.Translations = make(map[string]TranslationPayload, len(j.Translations))
		for key, payload := range j.Translations {
			payload.Records = append([]map[string]any(nil), payload.Records...)
			c.Translations[key] = payload
		}
	}

	if j.IngestionSummary != nil {
		summary := *j.IngestionSummary
		c.IngestionSummary = &summary
	}
	if j.Validation != nil {
		report := *j.Validation
		report.Errors = append([]ValidationIssue(nil), j.Validation.Errors...)
		report.Warnings = append([]ValidationIssue(nil), j.Validation.Warnings...)
		report.SuggestedFixes = append([]string(nil), j.Validation.SuggestedFixes...)
		c.Validation = &report
	}
	if j.Transformation != nil {
		summary := *j.Transformation
		c.Transformation = &summary
	}
	if j.Reconciliation != nil {
		report := *j.Reconciliation
		report.MismatchedAccounts = append([]string(nil), j.Reconciliation.MismatchedAccounts...)
		c.Reconciliation = &report
	}
	if j.Export != nil {
		report := *j.Export
		c.Export = &report
	}
	if j.Vendor != nil {
		vendor := *j.Vendor
		c.Vendor = &vendor
	}

	return &c
}

func cloneRawRecords(records []RawRecord) []RawRecord {
	if records == nil {
		return nil
	}
	out := make([]RawRecord, len(records))
	for i, rec := range records {
		copied := make(RawRecord, len(rec))
		for k, v := range rec {
			copied[k] = v
		}
		out[i] = copied
	}
	return out
}
