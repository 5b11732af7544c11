package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	apperrors "github.com/formbricks/answers/internal/errors"
	"github.com/formbricks/answers/internal/models"
)

// OrganizationsRepository handles data access for organizations (tenants).
type OrganizationsRepository struct {
	db *pgxpool.Pool
}

// NewOrganizationsRepository creates a new organizations repository.
func NewOrganizationsRepository(db *pgxpool.Pool) *OrganizationsRepository {
	return &OrganizationsRepository{db: db}
}

// GetByID retrieves a single organization by ID.
// Returns a NotFoundError when no organization exists with that ID.
func (r *OrganizationsRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	var org models.Organization

	err := r.db.QueryRow(ctx, `
		SELECT id, name, display_name, created_at, updated_at
		FROM organizations
		WHERE id = $1`, id,
	).Scan(&org.ID, &org.Name, &org.DisplayName, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("organization", "organization not found")
		}

		return nil, fmt.Errorf("get organization: %w", err)
	}

	return &org, nil
}
