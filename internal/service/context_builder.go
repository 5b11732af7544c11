package service

import (
	"fmt"
	"strings"

	"github.com/formbricks/answers/internal/models"
)

// MaxContextChars is the character budget for the evidence context passed to
// the generation provider.
const MaxContextChars = 4000

// BuiltContext is the outcome of folding ranked search results into a bounded
// evidence string. Included holds exactly the results whose blocks made it
// into Text, in rank order.
type BuiltContext struct {
	Included    []models.SearchResult
	Text        string
	TotalLength int
}

// BuildContext greedily assembles the evidence context from results in rank
// order. Each result is rendered as a kind-specific block; a block that would
// push the total past maxChars is omitted whole and iteration stops there.
// Entries are never truncated mid-block.
func BuildContext(results []models.SearchResult, maxChars int) BuiltContext {
	out := BuiltContext{Included: []models.SearchResult{}}

	var b strings.Builder

	for _, result := range results {
		block := renderBlock(result)
		if block == "" {
			continue
		}

		if out.TotalLength+len(block) > maxChars {
			break
		}

		b.WriteString(block)
		out.TotalLength += len(block)
		out.Included = append(out.Included, result)
	}

	out.Text = b.String()

	return out
}

// renderBlock renders one search result as its kind-specific context block.
// Unknown kinds render empty and are skipped by BuildContext.
func renderBlock(result models.SearchResult) string {
	switch result.Kind {
	case models.SourceKindFAQ:
		return fmt.Sprintf("FAQ: %s\nAnswer: %s\n\n", result.Question, result.Answer)
	case models.SourceKindDocument:
		return fmt.Sprintf("Document: %s\nContent: %s\n\n", result.Title, result.Content)
	default:
		return ""
	}
}
