package theme

import (
	"strings"

	"github.com/pkg/errors"
)

// Handle is a resolved semantic theme usable by the ranking engine.
type Handle interface {
	// Words returns the words the theme was built from.
	Words() []string
	// Relevance returns the closeness of word to the theme, and false when the word has no
	// semantic entry.
	Relevance(word string) (float64, bool)
}

// SemanticModel builds theme handles from word lists. On failure it returns an
// *UnresolvedWordsError naming the words it could not resolve.
type SemanticModel interface {
	NewTheme(words []string) (Handle, error)
}

// Resolver turns a Selection into an optional Handle.
type Resolver struct {
	table *Table
	model SemanticModel
}

// NewResolver creates a resolver over a shared theme table and semantic model.
func NewResolver(table *Table, model SemanticModel) (resolver *Resolver) {
	resolver = &Resolver{
		table: table,
		model: model,
	}
	return resolver
}

// Table exposes the theme table, for listing presets.
func (r *Resolver) Table() (table *Table) {
	table = r.table
	return table
}

// Resolve returns nil for KindNone, otherwise a theme built from the preset words or from the
// whitespace-separated customText.
func (r *Resolver) Resolve(sel Selection, customText string) (handle Handle, err error) {
	var words []string

	switch sel.Kind {
	case KindPreset:
		var ok bool
		words, ok = r.table.Words(sel.Name)
		if !ok {
			err = &UnknownPresetError{Name: sel.Name}
			return handle, err
		}
	case KindCustom:
		words = strings.Fields(customText)
	default:
		return handle, err
	}

	handle, err = r.model.NewTheme(words)
	if err != nil {
		var unresolved *UnresolvedWordsError
		if errors.As(err, &unresolved) && len(unresolved.Words) == 0 {
			err = ErrEmptyTheme
			return nil, err
		}
		return nil, err
	}

	return handle, err
}
