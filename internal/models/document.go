package models

import (
	"time"

	"github.com/google/uuid"
)

// DocumentStatus tracks a document's ingestion state. Only completed documents
// with a stored embedding are searchable.
type DocumentStatus string

const (
	DocumentStatusPending    DocumentStatus = "pending"
	DocumentStatusProcessing DocumentStatus = "processing"
	DocumentStatusCompleted  DocumentStatus = "completed"
	DocumentStatusFailed     DocumentStatus = "failed"
)

// Document is a free-form knowledge document owned by one organization.
type Document struct {
	ID             uuid.UUID      `json:"id"`
	OrganizationID uuid.UUID      `json:"organization_id"`
	Title          string         `json:"title"`
	Content        string         `json:"content"`
	Status         DocumentStatus `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
