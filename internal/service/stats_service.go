package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/formbricks/answers/internal/models"
)

// DocumentCounter reports how many searchable documents an organization has.
type DocumentCounter interface {
	CountWithEmbeddings(ctx context.Context, organizationID uuid.UUID) (int64, error)
}

// FAQCounter reports how many searchable FAQ entries an organization has.
type FAQCounter interface {
	CountWithEmbeddings(ctx context.Context, organizationID uuid.UUID) (int64, error)
}

// UnansweredCounter reports how many unanswered questions await curation.
type UnansweredCounter interface {
	CountUnprocessed(ctx context.Context, organizationID uuid.UUID) (int64, error)
}

// StatsService reports knowledge-base coverage for one organization.
type StatsService struct {
	organizations OrganizationDirectory
	documents     DocumentCounter
	faqs          FAQCounter
	unanswered    UnansweredCounter
}

// NewStatsService creates a StatsService.
func NewStatsService(
	organizations OrganizationDirectory,
	documents DocumentCounter,
	faqs FAQCounter,
	unanswered UnansweredCounter,
) *StatsService {
	return &StatsService{
		organizations: organizations,
		documents:     documents,
		faqs:          faqs,
		unanswered:    unanswered,
	}
}

// GetStats returns searchable-corpus and unanswered-question counts for the
// organization. An unknown organization returns a NotFoundError.
func (s *StatsService) GetStats(ctx context.Context, organizationID uuid.UUID) (models.KnowledgeStats, error) {
	var stats models.KnowledgeStats

	if _, err := s.organizations.GetByID(ctx, organizationID); err != nil {
		return stats, fmt.Errorf("lookup organization: %w", err)
	}

	docs, err := s.documents.CountWithEmbeddings(ctx, organizationID)
	if err != nil {
		return stats, fmt.Errorf("count documents: %w", err)
	}

	faqs, err := s.faqs.CountWithEmbeddings(ctx, organizationID)
	if err != nil {
		return stats, fmt.Errorf("count faq entries: %w", err)
	}

	unanswered, err := s.unanswered.CountUnprocessed(ctx, organizationID)
	if err != nil {
		return stats, fmt.Errorf("count unanswered questions: %w", err)
	}

	stats.DocumentsWithEmbeddings = docs
	stats.FAQsWithEmbeddings = faqs
	stats.UnansweredQuestions = unanswered

	return stats, nil
}
