package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/formbricks/answers/internal/errors"
	"github.com/formbricks/answers/internal/models"
	"github.com/formbricks/answers/internal/service"
)

type mockAskService struct {
	askFunc func(ctx context.Context, organizationID uuid.UUID, question string) (models.AnswerResult, error)
}

func (m *mockAskService) Ask(
	ctx context.Context, organizationID uuid.UUID, question string,
) (models.AnswerResult, error) {
	if m.askFunc != nil {
		return m.askFunc(ctx, organizationID, question)
	}

	return models.AnswerResult{}, nil
}

func postAsk(t *testing.T, handler *AskHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/v1/ask", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	handler.Ask(rec, req)

	return rec
}

func TestAskHandler_Ask(t *testing.T) {
	orgID := uuid.MustParse("018e1234-5678-9abc-def0-444444444444")

	t.Run("returns the answer with sources", func(t *testing.T) {
		sourceID := uuid.New()
		handler := NewAskHandler(&mockAskService{
			askFunc: func(_ context.Context, id uuid.UUID, question string) (models.AnswerResult, error) {
				assert.Equal(t, orgID, id)
				assert.Equal(t, "what is the refund policy?", question)

				return models.AnswerResult{
					Answer: "30 days, no questions asked.",
					Sources: []models.SearchResult{{
						ID:         sourceID,
						Kind:       models.SourceKindFAQ,
						Similarity: 0.91,
						Question:   "refund policy",
						Answer:     "30 days",
					}},
					Confidence: 0.8,
				}, nil
			},
		})

		rec := postAsk(t, handler, `{"organizationId":"`+orgID.String()+`","question":"what is the refund policy?"}`)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp AskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "30 days, no questions asked.", resp.Answer)
		assert.False(t, resp.UsedFallback)
		assert.InDelta(t, 0.8, resp.Confidence, 1e-9)
		require.Len(t, resp.Sources, 1)
		assert.Equal(t, sourceID, resp.Sources[0].ID)
		assert.Equal(t, models.SourceKindFAQ, resp.Sources[0].Kind)
		assert.InDelta(t, 0.91, resp.Sources[0].Similarity, 1e-9)
		assert.Equal(t, "refund policy", resp.Sources[0].Text)
	})

	t.Run("sources serialize as empty array, never null", func(t *testing.T) {
		handler := NewAskHandler(&mockAskService{
			askFunc: func(_ context.Context, _ uuid.UUID, _ string) (models.AnswerResult, error) {
				return models.AnswerResult{Answer: "answer", Sources: nil, Confidence: 0.1}, nil
			},
		})

		rec := postAsk(t, handler, `{"organizationId":"`+orgID.String()+`","question":"q"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"sources":[]`)
	})

	t.Run("fallback flag is surfaced", func(t *testing.T) {
		handler := NewAskHandler(&mockAskService{
			askFunc: func(_ context.Context, _ uuid.UUID, _ string) (models.AnswerResult, error) {
				return models.AnswerResult{Answer: "answer", UsedFallback: true, Confidence: 0.5}, nil
			},
		})

		rec := postAsk(t, handler, `{"organizationId":"`+orgID.String()+`","question":"q"}`)

		var resp AskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.UsedFallback)
	})

	t.Run("invalid JSON body returns 400", func(t *testing.T) {
		handler := NewAskHandler(&mockAskService{})

		rec := postAsk(t, handler, `{not json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		handler := NewAskHandler(&mockAskService{})

		rec := postAsk(t, handler, `{"organizationId":"`+orgID.String()+`","question":"q","extra":true}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing organizationId returns 400", func(t *testing.T) {
		handler := NewAskHandler(&mockAskService{})

		rec := postAsk(t, handler, `{"question":"q"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed organizationId returns 400", func(t *testing.T) {
		handler := NewAskHandler(&mockAskService{})

		rec := postAsk(t, handler, `{"organizationId":"not-a-uuid","question":"q"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty question maps to 400", func(t *testing.T) {
		handler := NewAskHandler(&mockAskService{
			askFunc: func(_ context.Context, _ uuid.UUID, _ string) (models.AnswerResult, error) {
				return models.AnswerResult{}, service.ErrEmptyQuestion
			},
		})

		rec := postAsk(t, handler, `{"organizationId":"`+orgID.String()+`","question":"  "}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown organization maps to 404", func(t *testing.T) {
		handler := NewAskHandler(&mockAskService{
			askFunc: func(_ context.Context, _ uuid.UUID, _ string) (models.AnswerResult, error) {
				return models.AnswerResult{}, apperrors.NewNotFoundError("organization", "organization not found")
			},
		})

		rec := postAsk(t, handler, `{"organizationId":"`+orgID.String()+`","question":"q"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	})

	t.Run("unexpected service error maps to 500", func(t *testing.T) {
		handler := NewAskHandler(&mockAskService{
			askFunc: func(_ context.Context, _ uuid.UUID, _ string) (models.AnswerResult, error) {
				return models.AnswerResult{}, errors.New("boom")
			},
		})

		rec := postAsk(t, handler, `{"organizationId":"`+orgID.String()+`","question":"q"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "boom")
	})
}
