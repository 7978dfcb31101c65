// Package engine ranks candidate rhymes for a query word.
package engine

import (
	"context"

	"github.com/nikogura/rhymer/pkg/lexicon"
	"github.com/nikogura/rhymer/pkg/scoring"
	"github.com/nikogura/rhymer/pkg/theme"
)

// Engine returns ranked candidates for one query.
type Engine interface {
	Find(ctx context.Context, q Query) ([]Candidate, error)
}

// Query is a single ranking request.
type Query struct {
	Word     lexicon.Word
	Settings scoring.Config
	// Theme is nil when no theme is selected.
	Theme theme.Handle
	// Exclude lists part-of-speech codes to drop from the results.
	Exclude []string
	// Limit caps the number of candidates. Zero or less means no cap.
	Limit int
}

// Candidate is one ranked result.
type Candidate struct {
	Word  string  `json:"word"`
	POS   string  `json:"pos"`
	Score float64 `json:"score"`
}

// Words extracts the candidate words in rank order.
func Words(candidates []Candidate) (words []string) {
	words = make([]string, len(candidates))
	for i, c := range candidates {
		words[i] = c.Word
	}
	return words
}
