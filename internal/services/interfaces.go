package services

import "taxinator/internal/models"

// CostBasisIngestion is the result of normalizing and validating a
// cost-basis upload against a job.
type CostBasisIngestion struct {
	JobID            string                         `json:"job_id"`
	Status           models.JobStatus               `json:"status"`
	IngestionSummary models.IngestionSummary        `json:"ingestion_summary"`
	Validation       models.ValidationReport        `json:"validation"`
	Normalized       []models.NormalizedTransaction `json:"normalized"`
}

// Transformation is the result of rendering a job for a vendor.
type Transformation struct {
	JobID      string                         `json:"job_id"`
	VendorKey  string                         `json:"vendor_key"`
	Status     models.JobStatus               `json:"status"`
	Payload    models.TranslationPayload      `json:"payload"`
	Normalized []models.NormalizedTransaction `json:"normalized,omitempty"`
}

// LegacyIngestion is a single-shot batch from the earlier API generation:
// typed transactions, no separate start_job step.
type LegacyIngestion struct {
	Vendor        models.Party
	PayloadSource string
	Transactions  []models.NormalizedTransaction
	Tags          []string
}

// LegacyIngestionResult mirrors the legacy response envelope.
type LegacyIngestionResult struct {
	JobID      string                         `json:"job_id"`
	Summary    models.JobSummary              `json:"summary"`
	Normalized []models.NormalizedTransaction `json:"normalized"`
	Warnings   []models.ValidationIssue       `json:"warnings"`
}

// JobServicer defines the contract for the job workflow.
type JobServicer interface {
	StartJob(taxYear int, vendorSource, vendorTarget string, startedBy models.UserRole) (*models.Job, error)
	IngestCostBasis(jobID string, records []models.RawRecord) (*CostBasisIngestion, error)
	IngestPersonalInfo(jobID string, records []models.PersonalInfoRecord) (int, error)
	IngestTrades(jobID string, records []models.RawRecord) (int, error)
	Transform(jobID, vendorKey string, includeNormalized bool) (*Transformation, error)
	Reconcile(jobID string) (*models.ReconciliationReport, error)
	Export(jobID string) (*models.ExportReport, error)
	GetJob(jobID string) (*models.Job, error)
	GetOutput(jobID string) (*models.TranslationPayload, error)
	ListJobs() []*models.Job
	ListVendorTemplates() []models.VendorTemplate
	IngestLegacy(batch LegacyIngestion) (*LegacyIngestionResult, error)
	Reset()
}
