package theme

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrEmptyTheme is returned when the semantic model rejected the theme without naming any
// unknown word, which happens when the word list is empty.
var ErrEmptyTheme = errors.New("empty theme")

// UnresolvedWordsError lists the theme words the semantic model could not resolve.
type UnresolvedWordsError struct {
	Words []string
}

func (e *UnresolvedWordsError) Error() string {
	return fmt.Sprintf("unknown words: [%s]", strings.Join(e.Words, " "))
}

// UnknownPresetError is returned for a preset name missing from the theme table.
type UnknownPresetError struct {
	Name string
}

func (e *UnknownPresetError) Error() string {
	return fmt.Sprintf("unknown preset theme: %q", e.Name)
}

// UserMessage renders a resolution failure as the text shown to the user.
func UserMessage(err error) (msg string) {
	var unresolved *UnresolvedWordsError
	var preset *UnknownPresetError

	switch {
	case err == nil:
		msg = ""
	case errors.Is(err, ErrEmptyTheme):
		msg = "Empty theme"
	case errors.As(err, &unresolved):
		msg = fmt.Sprintf("Unknown words: %q", unresolved.Words)
	case errors.As(err, &preset):
		msg = fmt.Sprintf("Unknown theme: %s", preset.Name)
	default:
		msg = err.Error()
	}

	return msg
}
