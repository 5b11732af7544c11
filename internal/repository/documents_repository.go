package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/formbricks/answers/internal/models"
)

// DocumentsRepository handles data access for the documents table.
type DocumentsRepository struct {
	db *pgxpool.Pool
}

// NewDocumentsRepository creates a new documents repository.
func NewDocumentsRepository(db *pgxpool.Pool) *DocumentsRepository {
	return &DocumentsRepository{db: db}
}

// NearestByEmbedding returns up to limit completed documents belonging to the
// organization, ordered by ascending cosine distance (<=>) to queryEmbedding.
// Similarity is 1 - distance. Only documents with a stored embedding are
// considered; rows for other organizations are never returned.
func (r *DocumentsRepository) NearestByEmbedding(
	ctx context.Context, organizationID uuid.UUID, queryEmbedding []float32, limit int,
) ([]models.SearchResult, error) {
	queryVec := pgvector.NewVector(queryEmbedding)

	rows, err := r.db.Query(ctx, `
		SELECT d.id, d.title, d.content, (1 - (d.embedding <=> $1)) AS similarity
		FROM documents d
		WHERE d.organization_id = $2 AND d.status = $3 AND d.embedding IS NOT NULL
		ORDER BY d.embedding <=> $1
		LIMIT $4`, queryVec, organizationID, models.DocumentStatusCompleted, limit)
	if err != nil {
		return nil, fmt.Errorf("nearest documents: %w", err)
	}

	defer rows.Close()

	var results []models.SearchResult

	for rows.Next() {
		result := models.SearchResult{Kind: models.SourceKindDocument}

		if err := rows.Scan(&result.ID, &result.Title, &result.Content, &result.Similarity); err != nil {
			return nil, fmt.Errorf("scan document result: %w", err)
		}

		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating nearest documents: %w", err)
	}

	return results, nil
}

// CountWithEmbeddings returns how many completed documents with embeddings the organization has.
func (r *DocumentsRepository) CountWithEmbeddings(ctx context.Context, organizationID uuid.UUID) (int64, error) {
	var count int64

	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM documents
		WHERE organization_id = $1 AND status = $2 AND embedding IS NOT NULL`,
		organizationID, models.DocumentStatusCompleted,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count documents with embeddings: %w", err)
	}

	return count, nil
}
