package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UnansweredRepository handles data access for the unanswered_questions table.
type UnansweredRepository struct {
	db *pgxpool.Pool
}

// NewUnansweredRepository creates a new unanswered questions repository.
func NewUnansweredRepository(db *pgxpool.Pool) *UnansweredRepository {
	return &UnansweredRepository{db: db}
}

// Record upserts an unanswered question keyed by (organization_id,
// normalized_message). First occurrence creates the row with count 1; repeats
// increment count, bump last_asked_at, and keep the minimum confidence ever
// seen. The whole operation is one atomic statement so concurrent identical
// queries do not lose counts.
func (r *UnansweredRepository) Record(
	ctx context.Context, organizationID uuid.UUID, normalizedMessage string, confidence float64,
) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO unanswered_questions
			(id, organization_id, normalized_message, count, confidence, first_asked_at, last_asked_at, is_processed)
		VALUES (gen_random_uuid(), $1, $2, 1, $3, now(), now(), false)
		ON CONFLICT (organization_id, normalized_message)
		DO UPDATE SET
			count = unanswered_questions.count + 1,
			last_asked_at = now(),
			confidence = LEAST(unanswered_questions.confidence, EXCLUDED.confidence)`,
		organizationID, normalizedMessage, confidence,
	)
	if err != nil {
		return fmt.Errorf("record unanswered question: %w", err)
	}

	return nil
}

// CountUnprocessed returns how many unanswered questions are still awaiting curation.
func (r *UnansweredRepository) CountUnprocessed(ctx context.Context, organizationID uuid.UUID) (int64, error) {
	var count int64

	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM unanswered_questions
		WHERE organization_id = $1 AND NOT is_processed`,
		organizationID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unanswered questions: %w", err)
	}

	return count, nil
}
