// Package meaning is the reference semantic theme model: a theme is the centroid of its
// words' corpus vectors and relevance is cosine similarity to that centroid.
package meaning

import (
	"gonum.org/v1/gonum/floats"

	"github.com/nikogura/rhymer/pkg/lexicon"
	"github.com/nikogura/rhymer/pkg/theme"
)

// Model builds themes from corpus vectors.
type Model struct {
	lex *lexicon.Lexicon
}

// NewModel creates a model over a shared lexicon.
func NewModel(lex *lexicon.Lexicon) (model *Model) {
	model = &Model{lex: lex}
	return model
}

// Theme is a resolved semantic theme.
type Theme struct {
	lex      *lexicon.Lexicon
	words    []string
	centroid []float64
}

// NewTheme resolves every word to a corpus vector. Words missing from the corpus, lacking a
// vector, or with a vector of a different dimension are reported as unresolved. An empty word
// list fails with no unresolved words.
func (m *Model) NewTheme(words []string) (handle theme.Handle, err error) {
	var unresolved []string
	var vectors [][]float64
	normalized := make([]string, 0, len(words))

	for _, raw := range words {
		text := lexicon.Normalize(raw)
		word, ok := m.lex.Lookup(text)
		if !ok || len(word.Vector) == 0 {
			unresolved = append(unresolved, raw)
			continue
		}
		if len(vectors) > 0 && len(word.Vector) != len(vectors[0]) {
			unresolved = append(unresolved, raw)
			continue
		}
		vectors = append(vectors, word.Vector)
		normalized = append(normalized, text)
	}

	if len(words) == 0 || len(unresolved) > 0 {
		err = &theme.UnresolvedWordsError{Words: unresolved}
		return handle, err
	}

	centroid := make([]float64, len(vectors[0]))
	for _, v := range vectors {
		floats.Add(centroid, v)
	}
	floats.Scale(1/float64(len(vectors)), centroid)

	handle = &Theme{
		lex:      m.lex,
		words:    normalized,
		centroid: centroid,
	}
	return handle, err
}

// Words returns the normalized theme words.
func (t *Theme) Words() (words []string) {
	words = append([]string(nil), t.words...)
	return words
}

// Relevance is the cosine similarity between word and the theme centroid, clamped at 0.
func (t *Theme) Relevance(text string) (relevance float64, ok bool) {
	word, found := t.lex.Lookup(text)
	if !found || len(word.Vector) != len(t.centroid) {
		return relevance, ok
	}
	ok = true

	norm := floats.Norm(word.Vector, 2) * floats.Norm(t.centroid, 2)
	if norm == 0 {
		return relevance, ok
	}

	relevance = floats.Dot(word.Vector, t.centroid) / norm
	if relevance < 0 {
		relevance = 0
	}
	return relevance, ok
}
