package services

import (
	"fmt"

	"go.uber.org/zap"

	apperrors "taxinator/internal/errors"
	"taxinator/internal/logger"
	"taxinator/internal/models"
	"taxinator/internal/store"
	"taxinator/internal/uuid"
	"taxinator/internal/vendors"
)

// jobService drives the job workflow over the in-memory store. Each
// operation sets the job's status; later operations do not check status as
// a precondition (snapshot presence is the gate where one exists, e.g.
// export requires a rendered payload).
type jobService struct {
	store *store.JobStore
	log   *zap.SugaredLogger
}

// NewJobService creates a JobServicer backed by the given store.
func NewJobService(jobStore *store.JobStore) JobServicer {
	return &jobService{
		store: jobStore,
		log:   logger.Named("jobs"),
	}
}

// StartJob allocates a new job id and seeds the record awaiting uploads.
func (s *jobService) StartJob(taxYear int, vendorSource, vendorTarget string, startedBy models.UserRole) (*models.Job, error) {
	job := &models.Job{
		JobID:        uuid.New(),
		TaxYear:      taxYear,
		VendorSource: vendorSource,
		VendorTarget: vendorTarget,
		Status:       models.StatusPendingUpload,
		StartedBy:    startedBy,
		Normalized:   []models.NormalizedTransaction{},
		Warnings:     []models.ValidationIssue{},
		Translations: map[string]models.TranslationPayload{},
	}
	s.store.Put(job)

	s.log.Infow("job started",
		"job_id", job.JobID,
		"tax_year", taxYear,
		"vendor_target", vendorTarget,
		"started_by", startedBy,
	)
	return job, nil
}

// IngestCostBasis normalizes and validates a cost-basis upload. The job
// lands in ready_for_transformation when validation finds no errors, and
// validation_failed otherwise. Re-ingestion replaces the prior dataset.
func (s *jobService) IngestCostBasis(jobID string, records []models.RawRecord) (*CostBasisIngestion, error) {
	var result *CostBasisIngestion

	_, err := s.store.Update(jobID, func(job *models.Job) error {
		normalized, err := NormalizeBatch(records)
		if err != nil {
			return err
		}

		report := ValidateJob(normalized, job.PersonalInfo, job.VendorTarget)
		summary := buildIngestionSummary(len(records), normalized)

		job.RawCostBasis = records
		job.Normalized = normalized
		job.Warnings = report.Warnings
		job.IngestionSummary = &summary
		job.Validation = &report
		if report.HasErrors() {
			job.Status = models.StatusValidationFailed
		} else {
			job.Status = models.StatusReadyForTransform
		}

		result = &CostBasisIngestion{
			JobID:            job.JobID,
			Status:           job.Status,
			IngestionSummary: summary,
			Validation:       report,
			Normalized:       normalized,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Infow("cost basis ingested",
		"job_id", jobID,
		"rows", len(records),
		"errors", len(result.Validation.Errors),
		"warnings", len(result.Validation.Warnings),
		"status", result.Status,
	)
	return result, nil
}

// IngestPersonalInfo appends identity records to the job's dataset.
func (s *jobService) IngestPersonalInfo(jobID string, records []models.PersonalInfoRecord) (int, error) {
	_, err := s.store.Update(jobID, func(job *models.Job) error {
		job.PersonalInfo = append(job.PersonalInfo, records...)
		if job.Status == models.StatusPendingUpload {
			job.Status = models.StatusIngested
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Infow("personal info ingested", "job_id", jobID, "records", len(records))
	return len(records), nil
}

// IngestTrades stores raw trade activity rows against the job.
func (s *jobService) IngestTrades(jobID string, records []models.RawRecord) (int, error) {
	_, err := s.store.Update(jobID, func(job *models.Job) error {
		job.RawTrades = append(job.RawTrades, records...)
		if job.Status == models.StatusPendingUpload {
			job.Status = models.StatusIngested
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Infow("trades ingested", "job_id", jobID, "records", len(records))
	return len(records), nil
}

// Transform renders the job's normalized data for a vendor. The payload is
// accumulated in the translations map; rendering for one vendor never
// removes another's prior rendering.
func (s *jobService) Transform(jobID, vendorKey string, includeNormalized bool) (*Transformation, error) {
	var result *Transformation

	_, err := s.store.Update(jobID, func(job *models.Job) error {
		template, ok := vendors.Lookup(vendorKey)
		if !ok {
			return apperrors.WithMessage(apperrors.ErrUnknownVendor,
				fmt.Sprintf("Unknown vendor template: %s", vendorKey))
		}

		payload, err := RenderTranslation(job.Normalized, template)
		if err != nil {
			return err
		}

		if job.Translations == nil {
			job.Translations = map[string]models.TranslationPayload{}
		}
		job.Translations[template.VendorKey] = payload
		job.Transformation = &models.TransformationSummary{
			VendorKey:       template.VendorKey,
			GainLossRecords: len(payload.Records),
			GeneratedAt:     models.Today(),
		}
		job.Status = models.StatusTransformed

		result = &Transformation{
			JobID:     job.JobID,
			VendorKey: template.VendorKey,
			Status:    job.Status,
			Payload:   payload,
		}
		if includeNormalized {
			result.Normalized = job.Normalized
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Infow("job transformed",
		"job_id", jobID,
		"vendor_key", vendorKey,
		"records", len(result.Payload.Records),
	)
	return result, nil
}

// Reconcile cross-checks the job's transactions against its personal-info
// set. A clean report moves the job to ready_for_export; mismatches move it
// to reconciliation_failed but do not block a later export attempt.
func (s *jobService) Reconcile(jobID string) (*models.ReconciliationReport, error) {
	var result *models.ReconciliationReport

	_, err := s.store.Update(jobID, func(job *models.Job) error {
		report := BuildReconciliation(job.Normalized, job.PersonalInfo, job.Transformation)
		job.Reconciliation = &report
		if len(report.MismatchedAccounts) == 0 {
			job.Status = models.StatusReadyForExport
		} else {
			job.Status = models.StatusReconciliationFailed
		}
		result = &report
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Infow("job reconciled",
		"job_id", jobID,
		"matched", result.MatchedAccounts,
		"mismatched", len(result.MismatchedAccounts),
	)
	return result, nil
}

// Export finalizes the job. Its only precondition, independent of status:
// a payload must already be rendered for the job's configured target vendor.
func (s *jobService) Export(jobID string) (*models.ExportReport, error) {
	var result *models.ExportReport

	_, err := s.store.Update(jobID, func(job *models.Job) error {
		payload, ok := job.Translations[job.VendorTarget]
		if !ok {
			return apperrors.ErrNothingToExport
		}

		job.Status = models.StatusCompleted
		report := models.ExportReport{
			JobID:        job.JobID,
			VendorTarget: job.VendorTarget,
			Status:       job.Status,
			RecordCount:  len(payload.Records),
			WebhookEvent: "job.completed",
			ExportedAt:   models.Today(),
		}
		job.Export = &report
		result = &report
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Infow("job exported", "job_id", jobID, "vendor_target", result.VendorTarget)
	return result, nil
}

// GetJob returns a read-only copy of a job.
func (s *jobService) GetJob(jobID string) (*models.Job, error) {
	return s.store.Get(jobID)
}

// GetOutput returns the exported payload for the job's target vendor.
func (s *jobService) GetOutput(jobID string) (*models.TranslationPayload, error) {
	job, err := s.store.Get(jobID)
	if err != nil {
		return nil, err
	}
	payload, ok := job.Translations[job.VendorTarget]
	if !ok {
		return nil, apperrors.WithMessage(apperrors.ErrNothingToExport, "No exported payload available")
	}
	return &payload, nil
}

// ListJobs returns copies of every job in creation order.
func (s *jobService) ListJobs() []*models.Job {
	return s.store.List()
}

// ListVendorTemplates returns the static vendor catalog.
func (s *jobService) ListVendorTemplates() []models.VendorTemplate {
	return vendors.All()
}

// IngestLegacy is the single-shot path from the earlier API generation:
// normalize, run the simpler legacy ruleset, and store the job directly in
// the normalized state.
func (s *jobService) IngestLegacy(batch LegacyIngestion) (*LegacyIngestionResult, error) {
	normalized := batch.Transactions
	for i := range normalized {
		if normalized[i].LotMethod == "" {
			normalized[i].LotMethod = "FIFO"
		}
	}
	warnings := ValidateLegacyBatch(normalized)

	vendor := batch.Vendor
	job := &models.Job{
		JobID:         uuid.New(),
		VendorSource:  vendor.Name,
		Status:        models.StatusNormalized,
		Normalized:    normalized,
		Warnings:      warnings,
		Translations:  map[string]models.TranslationPayload{},
		Vendor:        &vendor,
		PayloadSource: batch.PayloadSource,
		Tags:          append([]string(nil), batch.Tags...),
	}
	s.store.Put(job)

	s.log.Infow("legacy batch ingested",
		"job_id", job.JobID,
		"vendor", vendor.Name,
		"transactions", len(normalized),
		"warnings", len(warnings),
	)

	return &LegacyIngestionResult{
		JobID:      job.JobID,
		Summary:    buildJobSummary(normalized),
		Normalized: normalized,
		Warnings:   warnings,
	}, nil
}

// Reset discards every job. Administrative operation for test isolation.
func (s *jobService) Reset() {
	s.store.Reset()
	s.log.Warnw("job store reset")
}
