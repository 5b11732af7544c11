package service

import (
	"context"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/formbricks/answers/internal/models"
)

const (
	// SimilarityThreshold is the minimum vector similarity a result must reach
	// to be usable. Filtering happens after retrieval, so a search may yield
	// fewer than the limit, or zero, usable results.
	SimilarityThreshold = 0.82

	// FallbackSimilarity is assigned to every keyword-fallback match. It is a
	// deliberately low, non-competitive signal distinct from vector similarity.
	FallbackSimilarity = 0.5

	vectorSearchLimit   = 5
	fallbackSearchLimit = 3
	maxMergedResults    = 5
)

// DocumentSearcher provides nearest-neighbor search over an organization's documents.
type DocumentSearcher interface {
	NearestByEmbedding(ctx context.Context, organizationID uuid.UUID, queryEmbedding []float32, limit int) ([]models.SearchResult, error)
}

// FAQSearcher provides nearest-neighbor and keyword search over an organization's FAQ entries.
type FAQSearcher interface {
	NearestByEmbedding(ctx context.Context, organizationID uuid.UUID, queryEmbedding []float32, limit int) ([]models.SearchResult, error)
	SearchByKeyword(ctx context.Context, organizationID uuid.UUID, query string, limit int) ([]models.FAQEntry, error)
}

// RetrievalService runs the two vector searches concurrently, filters by the
// similarity threshold, and merges the survivors into one ranked list. It also
// exposes the keyword fallback used when vector retrieval is empty or weak.
type RetrievalService struct {
	documents DocumentSearcher
	faqs      FAQSearcher
	logger    *slog.Logger
}

// NewRetrievalService creates a RetrievalService. A nil logger uses slog.Default.
func NewRetrievalService(documents DocumentSearcher, faqs FAQSearcher, logger *slog.Logger) *RetrievalService {
	if logger == nil {
		logger = slog.Default()
	}

	return &RetrievalService{documents: documents, faqs: faqs, logger: logger}
}

// Search runs the document and FAQ vector searches concurrently for the given
// organization and returns a single list sorted by similarity descending,
// truncated to five entries. Results below SimilarityThreshold are dropped.
// A failure in one corpus degrades to an empty set for that corpus only; ties
// keep source order (documents before FAQ entries).
func (s *RetrievalService) Search(
	ctx context.Context, organizationID uuid.UUID, queryEmbedding []float32,
) []models.SearchResult {
	var docResults, faqResults []models.SearchResult

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		results, err := s.documents.NearestByEmbedding(gctx, organizationID, queryEmbedding, vectorSearchLimit)
		if err != nil {
			s.logger.Warn("retrieval: document search failed, continuing without documents",
				"error", err, "organization_id", organizationID.String())

			return nil
		}

		docResults = results

		return nil
	})

	g.Go(func() error {
		results, err := s.faqs.NearestByEmbedding(gctx, organizationID, queryEmbedding, vectorSearchLimit)
		if err != nil {
			s.logger.Warn("retrieval: faq search failed, continuing without faq entries",
				"error", err, "organization_id", organizationID.String())

			return nil
		}

		faqResults = results

		return nil
	})

	// Partial failures are degraded to empty sets above, never returned.
	_ = g.Wait()

	return mergeResults(docResults, faqResults)
}

// Fallback runs the case-insensitive keyword search over active FAQ entries
// and assigns each match the fixed FallbackSimilarity. Matches come back
// ordered by weight descending. An empty slice means no knowledge exists for
// the query at all.
func (s *RetrievalService) Fallback(
	ctx context.Context, organizationID uuid.UUID, query string,
) ([]models.SearchResult, error) {
	entries, err := s.faqs.SearchByKeyword(ctx, organizationID, query, fallbackSearchLimit)
	if err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(entries))
	for _, entry := range entries {
		results = append(results, models.SearchResult{
			ID:         entry.ID,
			Kind:       models.SourceKindFAQ,
			Similarity: FallbackSimilarity,
			Question:   entry.Question,
			Answer:     entry.Answer,
		})
	}

	return results, nil
}

// mergeResults filters both result sets by the similarity threshold, combines
// them preserving source order for ties, sorts by similarity descending, and
// truncates to maxMergedResults.
func mergeResults(docResults, faqResults []models.SearchResult) []models.SearchResult {
	merged := make([]models.SearchResult, 0, len(docResults)+len(faqResults))

	for _, r := range docResults {
		if r.Similarity >= SimilarityThreshold {
			merged = append(merged, r)
		}
	}

	for _, r := range faqResults {
		if r.Similarity >= SimilarityThreshold {
			merged = append(merged, r)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Similarity > merged[j].Similarity
	})

	if len(merged) > maxMergedResults {
		merged = merged[:maxMergedResults]
	}

	return merged
}
