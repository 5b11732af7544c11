package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/formbricks/answers/internal/api/response"
	apperrors "github.com/formbricks/answers/internal/errors"
	"github.com/formbricks/answers/internal/models"
	"github.com/formbricks/answers/internal/service"
)

// AskService defines the interface for answering questions.
type AskService interface {
	Ask(ctx context.Context, organizationID uuid.UUID, question string) (models.AnswerResult, error)
}

// AskHandler handles HTTP requests for the answering pipeline.
type AskHandler struct {
	service AskService
}

// NewAskHandler creates a new ask handler.
func NewAskHandler(service AskService) *AskHandler {
	return &AskHandler{service: service}
}

// AskRequest is the body for POST /v1/ask.
// API contract uses camelCase (organizationId).
type AskRequest struct {
	OrganizationID string `json:"organizationId"` //nolint:tagliatelle // API contract
	Question       string `json:"question"`
}

// AskResponse is the response for POST /v1/ask.
type AskResponse struct {
	Answer       string       `json:"answer"`
	Sources      []SourceItem `json:"sources"`
	UsedFallback bool         `json:"usedFallback"` //nolint:tagliatelle // API contract
	Confidence   float64      `json:"confidence"`
}

// SourceItem is one knowledge source that contributed to the answer.
// Text is the document title or the FAQ question, depending on kind.
type SourceItem struct {
	ID         uuid.UUID         `json:"id"`
	Kind       models.SourceKind `json:"kind"`
	Similarity float64           `json:"similarity"`
	Text       string            `json:"text"`
}

// Ask handles POST /v1/ask.
func (h *AskHandler) Ask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.RespondError(w, http.StatusMethodNotAllowed, "Method Not Allowed", "POST required")

		return
	}

	var req AskRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		response.RespondBadRequest(w, "Invalid request body")

		return
	}

	if req.OrganizationID == "" {
		response.RespondBadRequest(w, "organizationId is required")

		return
	}

	organizationID, err := uuid.Parse(req.OrganizationID)
	if err != nil {
		response.RespondBadRequest(w, "Invalid organizationId")

		return
	}

	result, err := h.service.Ask(r.Context(), organizationID, req.Question)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuestion) {
			response.RespondBadRequest(w, "question is required and must be non-empty")

			return
		}

		if errors.Is(err, apperrors.ErrNotFound) {
			response.RespondNotFound(w, "Organization not found")

			return
		}

		response.RespondInternalServerError(w, "Answering failed")

		return
	}

	response.RespondJSON(w, http.StatusOK, AskResponse{
		Answer:       result.Answer,
		Sources:      toSourceItems(result.Sources),
		UsedFallback: result.UsedFallback,
		Confidence:   result.Confidence,
	})
}

func toSourceItems(sources []models.SearchResult) []SourceItem {
	items := make([]SourceItem, len(sources))
	for i := range sources {
		text := sources[i].Title
		if sources[i].Kind == models.SourceKindFAQ {
			text = sources[i].Question
		}

		items[i] = SourceItem{
			ID:         sources[i].ID,
			Kind:       sources[i].Kind,
			Similarity: sources[i].Similarity,
			Text:       text,
		}
	}

	return items
}
