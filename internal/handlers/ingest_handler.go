package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "taxinator/internal/errors"
	"taxinator/internal/models"
	"taxinator/internal/services"
)

// IngestHandler handles dataset uploads, both the job-scoped paths and the
// legacy single-shot batch.
type IngestHandler struct {
	jobService services.JobServicer
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(jobService services.JobServicer) *IngestHandler {
	return &IngestHandler{jobService: jobService}
}

// CostBasisIngestRequest uploads raw cost-basis rows against a job.
type CostBasisIngestRequest struct {
	JobID   string             `json:"job_id" binding:"required"`
	Records []models.RawRecord `json:"records" binding:"required"`
}

// PersonalInfoIngestRequest uploads identity records against a job.
type PersonalInfoIngestRequest struct {
	JobID   string                      `json:"job_id" binding:"required"`
	Records []models.PersonalInfoRecord `json:"records" binding:"required,dive"`
}

// TradesIngestRequest uploads raw trade activity against a job.
type TradesIngestRequest struct {
	JobID   string             `json:"job_id" binding:"required"`
	Records []models.RawRecord `json:"records" binding:"required"`
}

// TransactionInput is a typed transaction row on the legacy path. Unlike
// the raw job-scoped upload, field names here are already canonical.
type TransactionInput struct {
	TransactionID   string          `json:"transaction_id" binding:"required"`
	AccountID       string          `json:"account_id" binding:"required"`
	AssetSymbol     string          `json:"asset_symbol" binding:"required"`
	Quantity        decimal.Decimal `json:"quantity"`
	CostBasis       decimal.Decimal `json:"cost_basis"`
	Proceeds        decimal.Decimal `json:"proceeds"`
	AcquisitionDate models.Date     `json:"acquisition_date"`
	DispositionDate models.Date     `json:"disposition_date"`
	LotMethod       string          `json:"lot_method"`
	CostBasisSource string          `json:"cost_basis_source"`
	Memo            string          `json:"memo"`
}

// LegacyIngestionRequest is the single-shot batch payload accepted from
// cost-basis vendors on the earlier API generation.
type LegacyIngestionRequest struct {
	Vendor        models.Party       `json:"vendor" binding:"required"`
	PayloadSource string             `json:"payload_source" binding:"required"`
	Transactions  []TransactionInput `json:"transactions" binding:"required,dive"`
	Tags          []string           `json:"tags"`
}

// IngestCostBasis normalizes and validates a cost-basis upload for a job.
func (h *IngestHandler) IngestCostBasis(c *gin.Context) {
	var req CostBasisIngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.jobService.IngestCostBasis(req.JobID, req.Records)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// IngestPersonalInfo stores identity records against a job.
func (h *IngestHandler) IngestPersonalInfo(c *gin.Context) {
	var req PersonalInfoIngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	count, err := h.jobService.IngestPersonalInfo(req.JobID, req.Records)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job_id": req.JobID, "ingested": count})
}

// IngestTrades stores raw trade rows against a job.
func (h *IngestHandler) IngestTrades(c *gin.Context) {
	var req TradesIngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	count, err := h.jobService.IngestTrades(req.JobID, req.Records)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job_id": req.JobID, "ingested": count})
}

// IngestLegacy handles the legacy single-shot ingestion endpoint, which
// auto-creates a job in the normalized state.
func (h *IngestHandler) IngestLegacy(c *gin.Context) {
	var req LegacyIngestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transactions := make([]models.NormalizedTransaction, len(req.Transactions))
	for i, in := range req.Transactions {
		transactions[i] = models.NormalizedTransaction{
			TransactionID:   in.TransactionID,
			AccountID:       in.AccountID,
			AssetSymbol:     in.AssetSymbol,
			Quantity:        in.Quantity,
			CostBasis:       in.CostBasis,
			Proceeds:        in.Proceeds,
			AcquisitionDate: in.AcquisitionDate,
			DispositionDate: in.DispositionDate,
			LotMethod:       in.LotMethod,
			CostBasisSource: in.CostBasisSource,
			Memo:            in.Memo,
		}
	}

	result, err := h.jobService.IngestLegacy(services.LegacyIngestion{
		Vendor:        req.Vendor,
		PayloadSource: req.PayloadSource,
		Transactions:  transactions,
		Tags:          req.Tags,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
