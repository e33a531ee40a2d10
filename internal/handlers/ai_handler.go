package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxinator/internal/ai"
	apperrors "taxinator/internal/errors"
)

// AIHandler exposes the AI-assisted translation helper.
type AIHandler struct {
	client *ai.Client
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(client *ai.Client) *AIHandler {
	return &AIHandler{client: client}
}

// Translate asks the AI collaborator for a vendor-ready rendering of
// free-form source material. Unavailability is reported in-band with
// status "unavailable", never as an HTTP error.
func (h *AIHandler) Translate(c *gin.Context) {
	var req ai.TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	c.JSON(http.StatusOK, h.client.Translate(c.Request.Context(), req))
}
