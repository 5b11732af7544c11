package models

import "github.com/google/uuid"

// SourceKind tags which corpus a search result came from.
type SourceKind string

const (
	SourceKindDocument SourceKind = "document"
	SourceKindFAQ      SourceKind = "faq"
)

// SearchResult is one retrieved knowledge item with its similarity score (0..1).
// Document results carry Title/Content; FAQ results carry Question/Answer.
// Created transiently per query, never persisted.
type SearchResult struct {
	ID         uuid.UUID  `json:"id"`
	Kind       SourceKind `json:"kind"`
	Similarity float64    `json:"similarity"`
	Title      string     `json:"title,omitempty"`
	Content    string     `json:"content,omitempty"`
	Question   string     `json:"question,omitempty"`
	Answer     string     `json:"answer,omitempty"`
}

// AnswerResult is the final response of the answering pipeline.
type AnswerResult struct {
	Answer       string         `json:"answer"`
	Sources      []SearchResult `json:"sources"`
	UsedFallback bool           `json:"used_fallback"`
	Confidence   float64        `json:"confidence"`
}

// KnowledgeStats summarizes the searchable corpus for one organization.
type KnowledgeStats struct {
	DocumentsWithEmbeddings int64 `json:"documents_with_embeddings"`
	FAQsWithEmbeddings      int64 `json:"faqs_with_embeddings"`
	UnansweredQuestions     int64 `json:"unanswered_questions"`
}
