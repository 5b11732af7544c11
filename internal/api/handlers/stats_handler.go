package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/formbricks/answers/internal/api/response"
	apperrors "github.com/formbricks/answers/internal/errors"
	"github.com/formbricks/answers/internal/models"
)

// StatsService defines the interface for knowledge-base stats.
type StatsService interface {
	GetStats(ctx context.Context, organizationID uuid.UUID) (models.KnowledgeStats, error)
}

// StatsHandler handles HTTP requests for knowledge-base stats.
type StatsHandler struct {
	service StatsService
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(service StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// StatsResponse is the response for GET /v1/organizations/{id}/stats.
// API contract uses camelCase.
type StatsResponse struct {
	DocumentsWithEmbeddings int64 `json:"documentsWithEmbeddings"` //nolint:tagliatelle // API contract
	FAQsWithEmbeddings      int64 `json:"faqsWithEmbeddings"`      //nolint:tagliatelle // API contract
	UnansweredQuestions     int64 `json:"unansweredQuestions"`     //nolint:tagliatelle // API contract
}

// Get handles GET /v1/organizations/{id}/stats.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.RespondError(w, http.StatusMethodNotAllowed, "Method Not Allowed", "GET required")

		return
	}

	idStr := r.PathValue("id")
	if idStr == "" {
		response.RespondBadRequest(w, "Organization ID is required")

		return
	}

	organizationID, err := uuid.Parse(idStr)
	if err != nil {
		response.RespondBadRequest(w, "Invalid organization ID")

		return
	}

	stats, err := h.service.GetStats(r.Context(), organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.RespondNotFound(w, "Organization not found")

			return
		}

		response.RespondInternalServerError(w, "Stats lookup failed")

		return
	}

	response.RespondJSON(w, http.StatusOK, StatsResponse{
		DocumentsWithEmbeddings: stats.DocumentsWithEmbeddings,
		FAQsWithEmbeddings:      stats.FAQsWithEmbeddings,
		UnansweredQuestions:     stats.UnansweredQuestions,
	})
}
