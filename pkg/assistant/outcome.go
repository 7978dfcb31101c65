package assistant

import (
	"github.com/pkg/errors"

	"github.com/nikogura/rhymer/pkg/theme"
)

// FailureKind classifies why a query produced no result list.
type FailureKind string

const (
	QueryUnparsable    FailureKind = "query_unparsable"
	ThemeEmpty         FailureKind = "theme_empty"
	ThemeUnknownWords  FailureKind = "theme_unknown_words"
	ThemeUnknownPreset FailureKind = "theme_unknown_preset"
	EngineFailure      FailureKind = "engine_failure"
)

// Failure is a user-visible query failure. It replaces the result list and is never fatal.
type Failure struct {
	Kind    FailureKind
	Message string
	Err     error
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Outcome is the current result: either ranked words or a failure.
type Outcome struct {
	Words   []string
	Scores  []float64
	Failure *Failure
}

// Failed reports whether the outcome carries a failure.
func (o Outcome) Failed() (failed bool) {
	failed = o.Failure != nil
	return failed
}

func failure(kind FailureKind, message string, err error) (out Outcome) {
	out.Failure = &Failure{Kind: kind, Message: message, Err: err}
	return out
}

// classifyTheme maps a theme resolution error onto its failure.
func classifyTheme(err error) (out Outcome) {
	var unresolved *theme.UnresolvedWordsError
	var preset *theme.UnknownPresetError

	kind := EngineFailure
	switch {
	case errors.Is(err, theme.ErrEmptyTheme):
		kind = ThemeEmpty
	case errors.As(err, &unresolved):
		kind = ThemeUnknownWords
	case errors.As(err, &preset):
		kind = ThemeUnknownPreset
	}

	out = failure(kind, theme.UserMessage(err), err)
	return out
}
