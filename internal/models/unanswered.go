package models

import (
	"time"

	"github.com/google/uuid"
)

// UnansweredQuestion is a deduplicated counter of queries the pipeline could
// not answer confidently. Keyed by (organization_id, normalized_message);
// Confidence holds the worst confidence ever observed for that phrasing.
type UnansweredQuestion struct {
	ID                uuid.UUID `json:"id"`
	OrganizationID    uuid.UUID `json:"organization_id"`
	NormalizedMessage string    `json:"normalized_message"`
	Count             int64     `json:"count"`
	Confidence        float64   `json:"confidence"`
	FirstAskedAt      time.Time `json:"first_asked_at"`
	LastAskedAt       time.Time `json:"last_asked_at"`
	IsProcessed       bool      `json:"is_processed"`
}
