package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "taxinator/internal/errors"
	"taxinator/internal/middleware"
	"taxinator/internal/models"
	"taxinator/internal/services"
	"taxinator/internal/uuid"
)

// JobHandler handles job lifecycle requests.
type JobHandler struct {
	jobService services.JobServicer
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobService services.JobServicer) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// StartJobRequest represents the request payload for starting a tax job.
type StartJobRequest struct {
	TaxYear      int    `json:"tax_year" binding:"required,tax_year"`
	VendorSource string `json:"vendor_source" binding:"required"`
	VendorTarget string `json:"vendor_target" binding:"required"`
	StartedBy    string `json:"started_by" binding:"required,user_role"`
}

// TranslationRequest represents the request payload for transforming a job.
type TranslationRequest struct {
	VendorKey         string `json:"vendor_key" binding:"required"`
	IncludeNormalized bool   `json:"include_normalized"`
}

// jobIDParam resolves the :id path parameter. Job ids are always UUIDs, so
// anything else is reported as not found before touching the store.
func jobIDParam(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if !uuid.IsValid(id) {
		respondWithError(c, apperrors.ErrJobNotFound)
		return "", false
	}
	return id, true
}

// StartJob allocates a new job awaiting uploads.
func (h *JobHandler) StartJob(c *gin.Context) {
	var req StartJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	startedBy, _ := models.ParseRole(req.StartedBy)
	job, err := h.jobService.StartJob(req.TaxYear, req.VendorSource, req.VendorTarget, startedBy)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"job_id": job.JobID,
		"status": job.Status,
	})
}

// GetJob returns the full job record.
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID, ok := jobIDParam(c)
	if !ok {
		return
	}
	job, err := h.jobService.GetJob(jobID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// ListJobs returns every job in creation order.
func (h *JobHandler) ListJobs(c *gin.Context) {
	c.JSON(http.StatusOK, h.jobService.ListJobs())
}

// Transform renders the job's normalized data for a downstream vendor.
// Also bound to the legacy /translate alias.
func (h *JobHandler) Transform(c *gin.Context) {
	jobID, ok := jobIDParam(c)
	if !ok {
		return
	}

	var req TranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.jobService.Transform(jobID, req.VendorKey, req.IncludeNormalized)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Reconcile cross-checks the job's transactions against its personal info.
func (h *JobHandler) Reconcile(c *gin.Context) {
	jobID, ok := jobIDParam(c)
	if !ok {
		return
	}
	report, err := h.jobService.Reconcile(jobID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Export finalizes the job's vendor payload and reports the webhook event.
func (h *JobHandler) Export(c *gin.Context) {
	jobID, ok := jobIDParam(c)
	if !ok {
		return
	}
	report, err := h.jobService.Export(jobID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetOutput retrieves the payload exported for the job's target vendor.
func (h *JobHandler) GetOutput(c *gin.Context) {
	jobID, ok := jobIDParam(c)
	if !ok {
		return
	}
	payload, err := h.jobService.GetOutput(jobID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

// Reset clears the whole job store. Administrative use only.
func (h *JobHandler) Reset(c *gin.Context) {
	h.jobService.Reset()
	if role, ok := middleware.ResolvedRole(c); ok {
		c.JSON(http.StatusOK, gin.H{"status": "reset", "requested_by": role})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}
