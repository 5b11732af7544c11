package models

import (
	"time"

	"github.com/google/uuid"
)

// FAQEntry is a curated question/answer pair owned by one organization.
// Only active entries are searchable. Weight orders keyword-fallback matches;
// TimesUsed and LastUsedAt track how often an entry contributed to answers.
type FAQEntry struct {
	ID             uuid.UUID  `json:"id"`
	OrganizationID uuid.UUID  `json:"organization_id"`
	Question       string     `json:"question"`
	Answer         string     `json:"answer"`
	Weight         int        `json:"weight"`
	IsActive       bool       `json:"is_active"`
	TimesUsed      int64      `json:"times_used"`
	LastUsedAt     *time.Time `json:"last_used_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
