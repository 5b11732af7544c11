package service

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formbricks/answers/internal/models"
)

func TestBuildContext_Rendering(t *testing.T) {
	t.Run("faq results render as FAQ blocks", func(t *testing.T) {
		built := BuildContext([]models.SearchResult{
			{Kind: models.SourceKindFAQ, Question: "refund policy", Answer: "30 days"},
		}, MaxContextChars)

		assert.Equal(t, "FAQ: refund policy\nAnswer: 30 days\n\n", built.Text)
		assert.Equal(t, len(built.Text), built.TotalLength)
		require.Len(t, built.Included, 1)
	})

	t.Run("document results render as Document blocks", func(t *testing.T) {
		built := BuildContext([]models.SearchResult{
			{Kind: models.SourceKindDocument, Title: "Handbook", Content: "Welcome aboard"},
		}, MaxContextChars)

		assert.Equal(t, "Document: Handbook\nContent: Welcome aboard\n\n", built.Text)
	})

	t.Run("blocks concatenate in rank order", func(t *testing.T) {
		built := BuildContext([]models.SearchResult{
			{Kind: models.SourceKindDocument, Title: "A", Content: "first"},
			{Kind: models.SourceKindFAQ, Question: "B", Answer: "second"},
		}, MaxContextChars)

		assert.True(t, strings.HasPrefix(built.Text, "Document: A"))
		assert.Contains(t, built.Text, "FAQ: B")
		require.Len(t, built.Included, 2)
	})

	t.Run("unknown kind is skipped entirely", func(t *testing.T) {
		built := BuildContext([]models.SearchResult{
			{Kind: models.SourceKind("unknown")},
			{Kind: models.SourceKindFAQ, Question: "q", Answer: "a"},
		}, MaxContextChars)

		require.Len(t, built.Included, 1)
		assert.Equal(t, models.SourceKindFAQ, built.Included[0].Kind)
	})
}

func TestBuildContext_Budget(t *testing.T) {
	t.Run("block that would exceed the budget is omitted whole", func(t *testing.T) {
		small := models.SearchResult{Kind: models.SourceKindFAQ, Question: "q", Answer: "a"}
		smallLen := len("FAQ: q\nAnswer: a\n\n")

		big := models.SearchResult{
			Kind:     models.SourceKindFAQ,
			Question: "q2",
			Answer:   strings.Repeat("x", 500),
		}

		built := BuildContext([]models.SearchResult{small, big}, smallLen+10)

		require.Len(t, built.Included, 1)
		assert.Equal(t, small.Question, built.Included[0].Question)
		assert.Equal(t, smallLen, built.TotalLength)
		assert.NotContains(t, built.Text, "q2")
	})

	t.Run("iteration stops at the first overflowing block", func(t *testing.T) {
		big := models.SearchResult{
			Kind:    models.SourceKindDocument,
			Title:   "big",
			Content: strings.Repeat("x", 300),
		}
		tiny := models.SearchResult{Kind: models.SourceKindFAQ, Question: "q", Answer: "a"}

		// The tiny block would fit, but it ranks after the overflowing one.
		built := BuildContext([]models.SearchResult{big, tiny}, 100)

		assert.Empty(t, built.Included)
		assert.Empty(t, built.Text)
		assert.Zero(t, built.TotalLength)
	})

	t.Run("total length never exceeds the budget", func(t *testing.T) {
		var results []models.SearchResult
		for range 20 {
			results = append(results, models.SearchResult{
				Kind:    models.SourceKindDocument,
				Title:   "doc",
				Content: strings.Repeat("y", 400),
			})
		}

		built := BuildContext(results, MaxContextChars)

		assert.LessOrEqual(t, built.TotalLength, MaxContextChars)
		assert.LessOrEqual(t, len(built.Text), MaxContextChars)
		assert.Equal(t, len(built.Text), built.TotalLength)
	})

	t.Run("empty input produces empty context", func(t *testing.T) {
		built := BuildContext(nil, MaxContextChars)

		assert.Empty(t, built.Text)
		assert.Empty(t, built.Included)
		assert.Zero(t, built.TotalLength)
	})

	t.Run("exact fit is included", func(t *testing.T) {
		result := models.SearchResult{Kind: models.SourceKindFAQ, Question: "q", Answer: "a"}
		exact := len("FAQ: q\nAnswer: a\n\n")

		built := BuildContext([]models.SearchResult{result}, exact)

		require.Len(t, built.Included, 1)
		assert.Equal(t, exact, built.TotalLength)
	})

	t.Run("uuid identity of included results is preserved", func(t *testing.T) {
		id := uuid.New()
		built := BuildContext([]models.SearchResult{
			{ID: id, Kind: models.SourceKindFAQ, Question: "q", Answer: "a"},
		}, MaxContextChars)

		require.Len(t, built.Included, 1)
		assert.Equal(t, id, built.Included[0].ID)
	})
}
