package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/formbricks/answers/internal/models"
)

// FAQRepository handles data access for the faq_entries table.
type FAQRepository struct {
	db *pgxpool.Pool
}

// NewFAQRepository creates a new FAQ repository.
func NewFAQRepository(db *pgxpool.Pool) *FAQRepository {
	return &FAQRepository{db: db}
}

// NearestByEmbedding returns up to limit active FAQ entries belonging to the
// organization, ordered by ascending cosine distance (<=>) to queryEmbedding.
// Similarity is 1 - distance. Only entries with a stored embedding are considered.
func (r *FAQRepository) NearestByEmbedding(
	ctx context.Context, organizationID uuid.UUID, queryEmbedding []float32, limit int,
) ([]models.SearchResult, error) {
	queryVec := pgvector.NewVector(queryEmbedding)

	rows, err := r.db.Query(ctx, `
		SELECT f.id, f.question, f.answer, (1 - (f.embedding <=> $1)) AS similarity
		FROM faq_entries f
		WHERE f.organization_id = $2 AND f.is_active AND f.embedding IS NOT NULL
		ORDER BY f.embedding <=> $1
		LIMIT $3`, queryVec, organizationID, limit)
	if err != nil {
		return nil, fmt.Errorf("nearest faq entries: %w", err)
	}

	defer rows.Close()

	var results []models.SearchResult

	for rows.Next() {
		result := models.SearchResult{Kind: models.SourceKindFAQ}

		if err := rows.Scan(&result.ID, &result.Question, &result.Answer, &result.Similarity); err != nil {
			return nil, fmt.Errorf("scan faq result: %w", err)
		}

		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating nearest faq entries: %w", err)
	}

	return results, nil
}

// SearchByKeyword returns up to limit active FAQ entries whose question or
// answer contains the query as a case-insensitive substring, ordered by weight
// descending. Used as the low-precision fallback when vector retrieval is
// empty or weak.
func (r *FAQRepository) SearchByKeyword(
	ctx context.Context, organizationID uuid.UUID, query string, limit int,
) ([]models.FAQEntry, error) {
	pattern := "%" + query + "%"

	rows, err := r.db.Query(ctx, `
		SELECT id, organization_id, question, answer, weight, is_active, times_used, last_used_at, created_at, updated_at
		FROM faq_entries
		WHERE organization_id = $1 AND is_active AND (question ILIKE $2 OR answer ILIKE $2)
		ORDER BY weight DESC
		LIMIT $3`, organizationID, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("keyword search faq entries: %w", err)
	}

	defer rows.Close()

	var entries []models.FAQEntry

	for rows.Next() {
		var entry models.FAQEntry

		err := rows.Scan(
			&entry.ID, &entry.OrganizationID, &entry.Question, &entry.Answer,
			&entry.Weight, &entry.IsActive, &entry.TimesUsed, &entry.LastUsedAt,
			&entry.CreatedAt, &entry.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan faq entry: %w", err)
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating keyword faq entries: %w", err)
	}

	return entries, nil
}

// RecordUsage increments times_used and sets last_used_at for the given
// entries. The increment happens in SQL so concurrent identical queries do not
// lose updates.
func (r *FAQRepository) RecordUsage(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	_, err := r.db.Exec(ctx, `
		UPDATE faq_entries
		SET times_used = times_used + 1, last_used_at = now()
		WHERE id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("record faq usage: %w", err)
	}

	return nil
}

// CountWithEmbeddings returns how many active FAQ entries with embeddings the organization has.
func (r *FAQRepository) CountWithEmbeddings(ctx context.Context, organizationID uuid.UUID) (int64, error) {
	var count int64

	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM faq_entries
		WHERE organization_id = $1 AND is_active AND embedding IS NOT NULL`,
		organizationID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count faq entries with embeddings: %w", err)
	}

	return count, nil
}
