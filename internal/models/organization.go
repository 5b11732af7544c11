package models

import (
	"time"

	"github.com/google/uuid"
)

// Organization is a tenant of the answering service. Every document, FAQ entry,
// and unanswered question belongs to exactly one organization.
type Organization struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
