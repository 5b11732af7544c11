package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/formbricks/answers/internal/models"
	"github.com/formbricks/answers/pkg/cache"
	"github.com/formbricks/answers/pkg/embeddings"
)

// Sentinel errors for the answering pipeline (used by handlers for status mapping).
var ErrEmptyQuestion = errors.New("question is required and must be non-empty")

// Confidence values produced by the pipeline. The answer confidence is a
// heuristic over context length, not a signal from the generation provider.
const (
	// HighConfidence is assigned when the assembled context is substantial.
	HighConfidence = 0.8
	// ShortContextConfidence is assigned when the context is short.
	ShortContextConfidence = 0.5
	// NoKnowledgeConfidence marks the terminal "no knowledge found" state.
	NoKnowledgeConfidence = 0.1
	// ErrorConfidence marks a fatal provider failure.
	ErrorConfidence = 0.0

	// LowConfidenceThreshold flags answers for the unanswered-question log.
	LowConfidenceThreshold = 0.5

	// minContextForHighConfidence is the context length above which the
	// heuristic trusts the evidence.
	minContextForHighConfidence = 100
)

// Fixed user-facing sentences. Abort paths never surface raw errors.
const (
	// ApologyMessage is returned when an AI provider fails mid-request.
	ApologyMessage = "We're sorry, something went wrong while answering your question. Please try again in a few minutes."
	// NoKnowledgeMessage is returned when neither vector search nor the
	// keyword fallback found anything. No model call is made for this path.
	NoKnowledgeMessage = "I couldn't find information about this in our knowledge base. Please contact our support team so we can help you directly."
	// EmptyCompletionMessage substitutes an empty provider completion.
	EmptyCompletionMessage = "I'm sorry, I couldn't produce an answer to that question right now."
)

const usageTrackingTimeout = 5 * time.Second

const systemPromptTemplate = `You are the support assistant for %s. Answer the user's question using only the knowledge provided below. If the knowledge does not contain enough information, say so honestly and suggest contacting support. Respond in %s's voice: helpful, concise, and friendly.

Knowledge:
%s`

// OrganizationDirectory resolves tenants. Absence aborts the request.
type OrganizationDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
}

// Retriever runs the vector searches and the keyword fallback.
type Retriever interface {
	Search(ctx context.Context, organizationID uuid.UUID, queryEmbedding []float32) []models.SearchResult
	Fallback(ctx context.Context, organizationID uuid.UUID, query string) ([]models.SearchResult, error)
}

// FAQUsageRecorder bumps usage counters for FAQ entries that contributed to an answer.
type FAQUsageRecorder interface {
	RecordUsage(ctx context.Context, ids []uuid.UUID) error
}

// UnansweredRecorder persists deduplicated low-confidence questions for curation.
type UnansweredRecorder interface {
	Record(ctx context.Context, organizationID uuid.UUID, normalizedMessage string, confidence float64) error
}

// AnswerService orchestrates the answering pipeline: tenant lookup, query
// embedding, concurrent retrieval, keyword fallback, context assembly, answer
// synthesis, confidence scoring, usage tracking, and unanswered recording.
type AnswerService struct {
	organizations   OrganizationDirectory
	retrieval       Retriever
	faqUsage        FAQUsageRecorder
	unanswered      UnansweredRecorder
	embeddingClient EmbeddingClient
	chatClient      ChatClient
	queryCache      *cache.LoaderCache[[]float32]
	logger          *slog.Logger
}

// AnswerServiceParams configures AnswerService. QueryCache may be nil (no caching).
type AnswerServiceParams struct {
	Organizations   OrganizationDirectory
	Retrieval       Retriever
	FAQUsage        FAQUsageRecorder
	Unanswered      UnansweredRecorder
	EmbeddingClient EmbeddingClient
	ChatClient      ChatClient
	QueryCache      *cache.LoaderCache[[]float32]
	Logger          *slog.Logger
}

// NewAnswerService creates an AnswerService.
func NewAnswerService(p AnswerServiceParams) *AnswerService {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &AnswerService{
		organizations:   p.Organizations,
		retrieval:       p.Retrieval,
		faqUsage:        p.FAQUsage,
		unanswered:      p.Unanswered,
		embeddingClient: p.EmbeddingClient,
		chatClient:      p.ChatClient,
		queryCache:      p.QueryCache,
		logger:          logger,
	}
}

// Ask answers a question against the organization's knowledge base.
//
// An unknown organization returns a NotFoundError before anything is recorded.
// Provider failures (embedding or generation) are recovered into the fixed
// apology response with confidence 0 and the question is recorded as
// unanswered; they are not surfaced as errors. When neither vector search nor
// the keyword fallback finds anything, the fixed "no knowledge" response is
// returned with confidence 0.1 and no model call is made.
func (s *AnswerService) Ask(ctx context.Context, organizationID uuid.UUID, question string) (models.AnswerResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return models.AnswerResult{}, ErrEmptyQuestion
	}

	org, err := s.organizations.GetByID(ctx, organizationID)
	if err != nil {
		// Unknown tenants abort before any unanswered record is written:
		// they are noise, not curation signal.
		return models.AnswerResult{}, fmt.Errorf("lookup organization: %w", err)
	}

	queryEmbedding, err := s.queryEmbedding(ctx, question)
	if err != nil {
		s.logger.Error("ask: create embedding failed", "error", err, "organization_id", organizationID.String())
		s.recordUnanswered(ctx, organizationID, question, ErrorConfidence)

		return apologyResult(), nil
	}

	results := s.retrieval.Search(ctx, organizationID, queryEmbedding)

	usedFallback := false

	if len(results) == 0 || results[0].Similarity < SimilarityThreshold {
		fallbackResults, fbErr := s.retrieval.Fallback(ctx, organizationID, question)
		if fbErr != nil {
			s.logger.Warn("ask: keyword fallback failed, continuing with no results",
				"error", fbErr, "organization_id", organizationID.String())

			fallbackResults = nil
		}

		if len(fallbackResults) == 0 {
			s.recordUnanswered(ctx, organizationID, question, NoKnowledgeConfidence)

			return models.AnswerResult{
				Answer:     NoKnowledgeMessage,
				Sources:    []models.SearchResult{},
				Confidence: NoKnowledgeConfidence,
			}, nil
		}

		// Fallback results replace the merged list entirely.
		results = fallbackResults
		usedFallback = true
	}

	built := BuildContext(results, MaxContextChars)

	system := fmt.Sprintf(systemPromptTemplate, org.DisplayName, org.DisplayName, built.Text)

	answer, err := s.chatClient.CreateChatCompletion(ctx, system, question)
	if err != nil {
		s.logger.Error("ask: chat completion failed", "error", err, "organization_id", organizationID.String())
		s.recordUnanswered(ctx, organizationID, question, ErrorConfidence)

		return apologyResult(), nil
	}

	if answer == "" {
		answer = EmptyCompletionMessage
	}

	confidence := ShortContextConfidence
	if built.TotalLength > minContextForHighConfidence {
		confidence = HighConfidence
	}

	s.trackUsage(built.Included)

	// Low confidence degrades transparency, not delivery: the answer is still
	// returned while the question is flagged for curation.
	if confidence < LowConfidenceThreshold {
		s.recordUnanswered(ctx, organizationID, question, confidence)
	}

	return models.AnswerResult{
		Answer:       answer,
		Sources:      built.Included,
		UsedFallback: usedFallback,
		Confidence:   confidence,
	}, nil
}

func apologyResult() models.AnswerResult {
	return models.AnswerResult{
		Answer:     ApologyMessage,
		Sources:    []models.SearchResult{},
		Confidence: ErrorConfidence,
	}
}

// queryEmbedding embeds the question, going through the loader cache when
// caching is enabled. Fresh embeddings are L2-normalized before use so cosine
// distances stay well-behaved.
func (s *AnswerService) queryEmbedding(ctx context.Context, question string) ([]float32, error) {
	if s.queryCache == nil {
		return s.loadQueryEmbedding(ctx, question)
	}

	return s.queryCache.Get(ctx, question, s.loadQueryEmbedding)
}

func (s *AnswerService) loadQueryEmbedding(ctx context.Context, question string) ([]float32, error) {
	vec, err := s.embeddingClient.CreateEmbedding(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("create embedding: %w", err)
	}

	embeddings.NormalizeL2(vec)

	return vec, nil
}

// trackUsage bumps usage counters for the FAQ entries that made it into the
// final context. Fire-and-forget relative to the response; failures are
// logged, never surfaced.
func (s *AnswerService) trackUsage(included []models.SearchResult) {
	var faqIDs []uuid.UUID

	for _, result := range included {
		if result.Kind == models.SourceKindFAQ {
			faqIDs = append(faqIDs, result.ID)
		}
	}

	if len(faqIDs) == 0 {
		return
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), usageTrackingTimeout)
		defer cancel()

		if err := s.faqUsage.RecordUsage(bgCtx, faqIDs); err != nil {
			s.logger.Error("ask: record faq usage failed", "error", err, "faq_count", len(faqIDs))
		}
	}()
}

// recordUnanswered normalizes the question and upserts it into the
// unanswered-question log. Failures are logged, never surfaced.
func (s *AnswerService) recordUnanswered(ctx context.Context, organizationID uuid.UUID, question string, confidence float64) {
	normalized := NormalizeMessage(question)

	if err := s.unanswered.Record(ctx, organizationID, normalized, confidence); err != nil {
		s.logger.Error("ask: record unanswered question failed",
			"error", err, "organization_id", organizationID.String())
	}
}

// NormalizeMessage is the dedup key normalization for unanswered questions:
// trimmed, case-insensitive exact match.
func NormalizeMessage(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
